package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sigescola/sigescola-api/internal/application/cofre"
	"github.com/sigescola/sigescola-api/internal/application/dto"
)

// CofreHandler trata o cofre de documentos (protegido).
type CofreHandler struct {
	uc *cofre.CofreUseCase
}

// NewCofreHandler constrói o handler.
func NewCofreHandler(uc *cofre.CofreUseCase) *CofreHandler {
	return &CofreHandler{uc: uc}
}

// ListDocuments lista os documentos de uma escola com o resumo por status.
// GET /api/cofre/:schoolID
func (h *CofreHandler) ListDocuments(c *fiber.Ctx) error {
	schoolID := c.Params("schoolID")
	if schoolID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id da escola obrigatório"})
	}
	out, err := h.uc.ListDocuments(GetScope(c), schoolID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetChecklist busca a conferência de um documento (Pendente quando não há).
// GET /api/cofre/documentos/:attachmentID/conferencia
func (h *CofreHandler) GetChecklist(c *fiber.Ctx) error {
	attachmentID := c.Params("attachmentID")
	if attachmentID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id do documento obrigatório"})
	}
	out, err := h.uc.GetChecklist(attachmentID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SaveChecklist grava a conferência de um documento.
// PUT /api/cofre/documentos/:attachmentID/conferencia
func (h *CofreHandler) SaveChecklist(c *fiber.Ctx) error {
	attachmentID := c.Params("attachmentID")
	if attachmentID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id do documento obrigatório"})
	}
	var in dto.DocumentChecklistRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.SaveChecklist(GetScope(c), attachmentID, GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
