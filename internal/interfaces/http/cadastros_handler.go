package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sigescola/sigescola-api/internal/application/cadastros"
	"github.com/sigescola/sigescola-api/internal/application/dto"
)

// CadastrosHandler trata fornecedores, escolas, programas e rubricas (protegido).
type CadastrosHandler struct {
	uc *cadastros.CadastrosUseCase
}

// NewCadastrosHandler constrói o handler.
func NewCadastrosHandler(uc *cadastros.CadastrosUseCase) *CadastrosHandler {
	return &CadastrosHandler{uc: uc}
}

// CreateSupplier cadastra um fornecedor.
// POST /api/fornecedores
func (h *CadastrosHandler) CreateSupplier(c *fiber.Ctx) error {
	var in dto.SupplierRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.CreateSupplier(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetSupplier busca um fornecedor.
// GET /api/fornecedores/:id
func (h *CadastrosHandler) GetSupplier(c *fiber.Ctx) error {
	out, err := h.uc.GetSupplier(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateSupplier atualiza um fornecedor.
// PUT /api/fornecedores/:id
func (h *CadastrosHandler) UpdateSupplier(c *fiber.Ctx) error {
	var in dto.SupplierRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.UpdateSupplier(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListSuppliers lista fornecedores com busca por nome ou CNPJ.
// GET /api/fornecedores?search=
func (h *CadastrosHandler) ListSuppliers(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginação inválida"})
	}
	out, err := h.uc.ListSuppliers(c.Query("search"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteSupplier remove um fornecedor.
// DELETE /api/fornecedores/:id
func (h *CadastrosHandler) DeleteSupplier(c *fiber.Ctx) error {
	if err := h.uc.DeleteSupplier(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListSchools lista as escolas visíveis no escopo do usuário.
// GET /api/escolas
func (h *CadastrosHandler) ListSchools(c *fiber.Ctx) error {
	out, err := h.uc.ListSchools(GetScope(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetSchool busca uma escola do escopo.
// GET /api/escolas/:id
func (h *CadastrosHandler) GetSchool(c *fiber.Ctx) error {
	out, err := h.uc.GetSchool(GetScope(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListPrograms lista os programas de repasse.
// GET /api/programas
func (h *CadastrosHandler) ListPrograms(c *fiber.Ctx) error {
	out, err := h.uc.ListPrograms()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListRubrics lista as rubricas de um programa.
// GET /api/programas/:id/rubricas
func (h *CadastrosHandler) ListRubrics(c *fiber.Ctx) error {
	out, err := h.uc.ListRubrics(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
