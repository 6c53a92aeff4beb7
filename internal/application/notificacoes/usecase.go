// Package notificacoes cobre os avisos do sino do painel.
package notificacoes

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sigescola/sigescola-api/internal/application/dto"
	"github.com/sigescola/sigescola-api/internal/domain"
	"github.com/sigescola/sigescola-api/internal/domain/entity"
	"github.com/sigescola/sigescola-api/internal/domain/repository"
)

// NotificacoesUseCase orquestra a criação e a leitura de avisos.
type NotificacoesUseCase struct {
	repo repository.NotificationRepository
}

// NewNotificacoesUseCase constrói o caso de uso.
func NewNotificacoesUseCase(repo repository.NotificationRepository) *NotificacoesUseCase {
	return &NotificacoesUseCase{repo: repo}
}

// Notify cria um aviso dirigido a um usuário.
func (uc *NotificacoesUseCase) Notify(in dto.NotificationRequest) (*dto.NotificationResponse, error) {
	if in.UserID == "" || strings.TrimSpace(in.Title) == "" {
		return nil, domain.ErrInvalidInput
	}
	kind := in.Kind
	switch kind {
	case entity.NotificationInfo, entity.NotificationAlerta, entity.NotificationPendente:
	case "":
		kind = entity.NotificationInfo
	default:
		return nil, domain.ErrInvalidInput
	}
	n := &entity.Notification{
		ID:        uuid.New().String(),
		UserID:    in.UserID,
		Title:     strings.TrimSpace(in.Title),
		Message:   strings.TrimSpace(in.Message),
		Kind:      kind,
		Link:      in.Link,
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.repo.Create(n); err != nil {
		return nil, err
	}
	return toResponse(n), nil
}

// List devolve os avisos do usuário autenticado, mais recentes primeiro.
func (uc *NotificacoesUseCase) List(userID string, onlyUnread bool, page dto.PageRequest) ([]dto.NotificationResponse, error) {
	page.DefaultPage()
	notifications, err := uc.repo.ListByUser(userID, onlyUnread, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		out = append(out, *toResponse(n))
	}
	return out, nil
}

// MarkRead marca um aviso do próprio usuário como lido.
func (uc *NotificacoesUseCase) MarkRead(id, userID string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	return uc.repo.MarkRead(id, userID)
}

// MarkAllRead marca todos os avisos do usuário como lidos.
func (uc *NotificacoesUseCase) MarkAllRead(userID string) error {
	return uc.repo.MarkAllRead(userID)
}

func toResponse(n *entity.Notification) *dto.NotificationResponse {
	return &dto.NotificationResponse{
		ID:        n.ID,
		Title:     n.Title,
		Message:   n.Message,
		Kind:      n.Kind,
		Link:      n.Link,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}
