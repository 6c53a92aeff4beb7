package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sigescola/sigescola-api/internal/domain/entity"
	"github.com/sigescola/sigescola-api/internal/domain/repository"
)

var _ repository.DocumentChecklistRepository = (*DocumentChecklistRepo)(nil)

// DocumentChecklistRepo implementação de DocumentChecklistRepository
// (usável com pool ou tx).
type DocumentChecklistRepo struct {
	q Querier
}

// NewDocumentChecklistRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewDocumentChecklistRepository(q Querier) *DocumentChecklistRepo {
	return &DocumentChecklistRepo{q: q}
}

// Upsert grava a conferência do anexo. A chave é o próprio attachment_id:
// cada documento tem no máximo uma conferência.
func (r *DocumentChecklistRepo) Upsert(checklist *entity.DocumentChecklist) error {
	query := `
		INSERT INTO document_checklists (
			attachment_id, school_id, has_signature, has_stamp, is_legible,
			is_correct_value, is_correct_date, notes, checked_by, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		ON CONFLICT (attachment_id) DO UPDATE SET
			has_signature    = EXCLUDED.has_signature,
			has_stamp        = EXCLUDED.has_stamp,
			is_legible       = EXCLUDED.is_legible,
			is_correct_value = EXCLUDED.is_correct_value,
			is_correct_date  = EXCLUDED.is_correct_date,
			notes            = EXCLUDED.notes,
			checked_by       = EXCLUDED.checked_by,
			updated_at       = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		checklist.AttachmentID, checklist.SchoolID,
		checklist.HasSignature, checklist.HasStamp, checklist.IsLegible,
		checklist.IsCorrectValue, checklist.IsCorrectDate,
		nullIfEmpty(checklist.Notes), nullIfEmpty(checklist.CheckedBy),
		checklist.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert document checklist: %w", err)
	}
	return nil
}

const documentChecklistSelect = `
	SELECT attachment_id, school_id, has_signature, has_stamp, is_legible,
	       is_correct_value, is_correct_date, COALESCE(notes, ''),
	       COALESCE(checked_by, ''), updated_at
	FROM document_checklists`

// GetByAttachmentID obtém a conferência de um anexo. Sem linha devolve nil:
// o chamador trata como status Pendente.
func (r *DocumentChecklistRepo) GetByAttachmentID(attachmentID string) (*entity.DocumentChecklist, error) {
	row := r.q.QueryRow(context.Background(),
		documentChecklistSelect+` WHERE attachment_id = $1`, attachmentID)
	checklist, err := scanDocumentChecklist(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document checklist: %w", err)
	}
	return checklist, nil
}

// ListBySchool devolve as conferências de uma escola.
func (r *DocumentChecklistRepo) ListBySchool(schoolID string) ([]*entity.DocumentChecklist, error) {
	rows, err := r.q.Query(context.Background(),
		documentChecklistSelect+` WHERE school_id = $1 ORDER BY updated_at DESC`, schoolID)
	if err != nil {
		return nil, fmt.Errorf("list document checklists: %w", err)
	}
	defer rows.Close()
	var list []*entity.DocumentChecklist
	for rows.Next() {
		checklist, err := scanDocumentChecklist(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document checklist: %w", err)
		}
		list = append(list, checklist)
	}
	return list, rows.Err()
}

func scanDocumentChecklist(row pgx.Row) (*entity.DocumentChecklist, error) {
	var c entity.DocumentChecklist
	err := row.Scan(
		&c.AttachmentID, &c.SchoolID, &c.HasSignature, &c.HasStamp, &c.IsLegible,
		&c.IsCorrectValue, &c.IsCorrectDate, &c.Notes, &c.CheckedBy, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
