package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sigescola/sigescola-api/internal/application/dto"
	"github.com/sigescola/sigescola-api/internal/application/financeiro"
)

// FinanceiroHandler trata os lançamentos financeiros (protegido).
type FinanceiroHandler struct {
	uc *financeiro.FinanceiroUseCase
}

// NewFinanceiroHandler constrói o handler.
func NewFinanceiroHandler(uc *financeiro.FinanceiroUseCase) *FinanceiroHandler {
	return &FinanceiroHandler{uc: uc}
}

// List lista os lançamentos do escopo com filtros.
// GET /api/lancamentos
func (h *FinanceiroHandler) List(c *fiber.Ctx) error {
	var in dto.EntryFilterRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "filtros inválidos"})
	}
	out, err := h.uc.List(GetScope(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Get busca um lançamento do escopo.
// GET /api/lancamentos/:id
func (h *FinanceiroHandler) Get(c *fiber.Ctx) error {
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

// Create cria um lançamento financeiro.
// POST /api/lancamentos
func (h *FinanceiroHandler) Create(c *fiber.Ctx) error {
	var in dto.EntryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.Create(GetScope(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update atualiza um lançamento ainda não consolidado.
// PUT /api/lancamentos/:id
func (h *FinanceiroHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id obrigatório"})
	}
	var in dto.EntryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.Update(GetScope(c), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ToggleEstorno alterna o lançamento entre Estornado e Pendente.
// POST /api/lancamentos/:id/estorno
func (h *FinanceiroHandler) ToggleEstorno(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id obrigatório"})
	}
	out, err := h.uc.ToggleEstorno(GetScope(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// HardDelete remove definitivamente um lançamento (apenas Administrador,
// imposto pelo RequireRole na rota).
// DELETE /api/lancamentos/:id
func (h *FinanceiroHandler) HardDelete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id obrigatório"})
	}
	if err := h.uc.HardDelete(id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
