package http

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/sigescola/sigescola-api/internal/application/dto"
)

// uploader é o contrato mínimo do object storage para o handler de upload.
type uploader interface {
	Upload(ctx context.Context, objectPath, contentType string, data []byte) (string, error)
}

// StorageHandler trata o upload de anexos para o object storage (protegido).
type StorageHandler struct {
	storage uploader
}

// NewStorageHandler constrói o handler.
func NewStorageHandler(storage uploader) *StorageHandler {
	return &StorageHandler{storage: storage}
}

// Upload recebe um arquivo multipart (campo "file") e devolve o anexo com a
// URL pública. O objeto é gravado sob a escola para facilitar auditoria.
// POST /api/documentos/upload
func (h *StorageHandler) Upload(c *fiber.Ctx) error {
	schoolID := c.FormValue("school_id")
	if schoolID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "school_id obrigatório"})
	}
	if !GetScope(c).Allows(schoolID) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "escola fora do escopo do usuário"})
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "arquivo (campo file) obrigatório"})
	}
	f, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "arquivo inválido"})
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "arquivo inválido"})
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	objectPath := fmt.Sprintf("%s/%s%s", schoolID, uuid.New().String(), path.Ext(fileHeader.Filename))
	url, err := h.storage.Upload(c.Context(), objectPath, contentType, data)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.AttachmentDTO{
		Name:     fileHeader.Filename,
		URL:      url,
		Type:     contentType,
		Size:     fileHeader.Size,
		Category: c.FormValue("category"),
	})
}
