package http

import (
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/sigescola/sigescola-api/internal/application/dto"
	"github.com/sigescola/sigescola-api/internal/application/prestacao"
)

// PrestacaoHandler trata o processo de prestação de contas (protegido,
// exceto a validação pública do documento impresso).
type PrestacaoHandler struct {
	uc   *prestacao.PrestacaoUseCase
	save *prestacao.SaveProcessUseCase
}

// NewPrestacaoHandler constrói o handler.
func NewPrestacaoHandler(uc *prestacao.PrestacaoUseCase, save *prestacao.SaveProcessUseCase) *PrestacaoHandler {
	return &PrestacaoHandler{uc: uc, save: save}
}

// AvailableEntries lista os lançamentos de saída ainda sem processo.
// GET /api/prestacoes/lancamentos-disponiveis
func (h *PrestacaoHandler) AvailableEntries(c *fiber.Ctx) error {
	var in dto.EntryFilterRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "filtros inválidos"})
	}
	out, err := h.uc.AvailableEntries(GetScope(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List lista os processos do escopo, com filtro opcional por status.
// GET /api/prestacoes
func (h *PrestacaoHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginação inválida"})
	}
	out, err := h.uc.List(GetScope(c), c.Query("status"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Get busca um processo completo (itens, cotações, conferência).
// GET /api/prestacoes/:id
func (h *PrestacaoHandler) Get(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id obrigatório"})
	}
	out, err := h.uc.Get(GetScope(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByEntry busca o processo vinculado a um lançamento.
// GET /api/prestacoes/por-lancamento/:entryID
func (h *PrestacaoHandler) GetByEntry(c *fiber.Ctx) error {
	entryID := c.Params("entryID")
	if entryID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id do lançamento obrigatório"})
	}
	out, err := h.uc.GetByEntry(GetScope(c), entryID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Save cria ou atualiza o processo completo em uma única transação.
// POST /api/prestacoes
func (h *PrestacaoHandler) Save(c *fiber.Ctx) error {
	var in dto.SaveProcessRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.save.Save(c.Context(), GetScope(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete remove um processo, revertendo o lançamento consolidado para Pago.
// DELETE /api/prestacoes/:id
func (h *PrestacaoHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id obrigatório"})
	}
	if err := h.uc.Delete(c.Context(), GetScope(c), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ImportItems interpreta texto colado (planilha ou CSV) em linhas de itens.
// POST /api/prestacoes/importar
func (h *PrestacaoHandler) ImportItems(c *fiber.Ctx) error {
	var in dto.ImportItemsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.ImportItems(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ImportInvoice interpreta o XML de uma NF-e ou NFS-e em linhas de itens.
// Aceita multipart (campo "file") ou o XML direto no corpo.
// POST /api/prestacoes/importar-xml
func (h *PrestacaoHandler) ImportInvoice(c *fiber.Ctx) error {
	content := c.Body()
	if fileHeader, err := c.FormFile("file"); err == nil {
		f, err := fileHeader.Open()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "arquivo inválido"})
		}
		defer f.Close()
		content, err = io.ReadAll(f)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "arquivo inválido"})
		}
	}
	if len(content) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "XML da nota obrigatório"})
	}
	out, err := h.uc.ImportInvoice(content)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CSVTemplate baixa o modelo de CSV para importação em massa.
// GET /api/prestacoes/modelo-csv
func (h *PrestacaoHandler) CSVTemplate(c *fiber.Ctx) error {
	data, filename := h.uc.CSVTemplate()
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Send(data)
}

// Report gera o PDF de Consolidação da Pesquisa de Preços.
// GET /api/prestacoes/:id/consolidacao
func (h *PrestacaoHandler) Report(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id obrigatório"})
	}
	pdf, err := h.uc.Report(GetScope(c), id)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="consolidacao-%s.pdf"`, id))
	return c.Send(pdf)
}

// Validate confere a autenticidade de um documento impresso pelo token do QR.
// Rota pública, sem autenticação: é acessada pelo celular de quem recebe o papel.
// GET /validar?t=<token>
func (h *PrestacaoHandler) Validate(c *fiber.Ctx) error {
	out, err := h.uc.ValidateToken(c.Query("t"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
