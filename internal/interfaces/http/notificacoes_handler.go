package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sigescola/sigescola-api/internal/application/dto"
	"github.com/sigescola/sigescola-api/internal/application/notificacoes"
)

// NotificacoesHandler trata os avisos do sino do painel (protegido).
type NotificacoesHandler struct {
	uc *notificacoes.NotificacoesUseCase
}

// NewNotificacoesHandler constrói o handler.
func NewNotificacoesHandler(uc *notificacoes.NotificacoesUseCase) *NotificacoesHandler {
	return &NotificacoesHandler{uc: uc}
}

// List lista os avisos do usuário autenticado.
// GET /api/notificacoes?unread=true
func (h *NotificacoesHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginação inválida"})
	}
	out, err := h.uc.List(GetUserID(c), c.QueryBool("unread"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create envia um aviso a um usuário (secretaria).
// POST /api/notificacoes
func (h *NotificacoesHandler) Create(c *fiber.Ctx) error {
	var in dto.NotificationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.Notify(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// MarkRead marca um aviso como lido.
// POST /api/notificacoes/:id/lida
func (h *NotificacoesHandler) MarkRead(c *fiber.Ctx) error {
	if err := h.uc.MarkRead(c.Params("id"), GetUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// MarkAllRead marca todos os avisos do usuário como lidos.
// POST /api/notificacoes/lidas
func (h *NotificacoesHandler) MarkAllRead(c *fiber.Ctx) error {
	if err := h.uc.MarkAllRead(GetUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
