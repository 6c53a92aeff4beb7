package postgres

import (
	"context"
	"fmt"

	"github.com/sigescola/sigescola-api/internal/domain/entity"
	"github.com/sigescola/sigescola-api/internal/domain/repository"
)

var _ repository.NotificationRepository = (*NotificationRepo)(nil)

// NotificationRepo implementação de NotificationRepository (usável com pool ou tx).
type NotificationRepo struct {
	q Querier
}

// NewNotificationRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewNotificationRepository(q Querier) *NotificationRepo {
	return &NotificationRepo{q: q}
}

// Create grava uma notificação.
func (r *NotificationRepo) Create(notification *entity.Notification) error {
	query := `
		INSERT INTO notifications (id, user_id, title, message, kind, link, read, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`
	_, err := r.q.Exec(context.Background(), query,
		notification.ID, notification.UserID, notification.Title,
		notification.Message, notification.Kind, nullIfEmpty(notification.Link),
		notification.Read, notification.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	return nil
}

// ListByUser devolve as notificações do usuário, mais recentes primeiro.
func (r *NotificationRepo) ListByUser(userID string, onlyUnread bool, limit, offset int) ([]*entity.Notification, error) {
	query := `
		SELECT id, user_id, title, message, kind, COALESCE(link, ''), read, created_at
		FROM notifications
		WHERE user_id = $1`
	if onlyUnread {
		query += ` AND read = FALSE`
	}
	query += ` ORDER BY created_at DESC LIMIT $2 OFFSET $3`

	rows, err := r.q.Query(context.Background(), query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()
	var list []*entity.Notification
	for rows.Next() {
		var n entity.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Kind, &n.Link, &n.Read, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		list = append(list, &n)
	}
	return list, rows.Err()
}

// MarkRead marca uma notificação do usuário como lida. O filtro por user_id
// impede marcar avisos de outra pessoa; id desconhecido é um no-op.
func (r *NotificationRepo) MarkRead(id, userID string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE notifications SET read = TRUE WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	return nil
}

// MarkAllRead marca todas as notificações do usuário como lidas.
func (r *NotificationRepo) MarkAllRead(userID string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE notifications SET read = TRUE WHERE user_id = $1 AND read = FALSE`, userID)
	if err != nil {
		return fmt.Errorf("mark all notifications read: %w", err)
	}
	return nil
}
