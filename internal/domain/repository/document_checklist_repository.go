package repository

import "github.com/sigescola/sigescola-api/internal/domain/entity"

// DocumentChecklistRepository define o porto de persistência para a
// conferência documental do cofre (DIP). A ausência de linha para um anexo
// significa status Pendente.
type DocumentChecklistRepository interface {
	// Upsert grava a conferência do anexo, substituindo a existente.
	Upsert(checklist *entity.DocumentChecklist) error
	GetByAttachmentID(attachmentID string) (*entity.DocumentChecklist, error)
	ListBySchool(schoolID string) ([]*entity.DocumentChecklist, error)
}
