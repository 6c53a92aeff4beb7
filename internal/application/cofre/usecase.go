package cofre

import (
	"time"

	"github.com/sigescola/sigescola-api/internal/application/dto"
	"github.com/sigescola/sigescola-api/internal/domain"
	"github.com/sigescola/sigescola-api/internal/domain/entity"
	"github.com/sigescola/sigescola-api/internal/domain/repository"
	"github.com/sigescola/sigescola-api/internal/domain/visibility"
)

// CofreUseCase casos de uso do cofre de documentos: listagem dos anexos da
// escola com o status de conferência e a gravação da conferência documental.
type CofreUseCase struct {
	entryRepo     repository.FinancialEntryRepository
	checklistRepo repository.DocumentChecklistRepository
}

// NewCofreUseCase constrói o caso de uso.
func NewCofreUseCase(entryRepo repository.FinancialEntryRepository, checklistRepo repository.DocumentChecklistRepository) *CofreUseCase {
	return &CofreUseCase{entryRepo: entryRepo, checklistRepo: checklistRepo}
}

// ListDocuments devolve os anexos dos lançamentos da escola com o status de
// conferência derivado e os contadores por status.
func (uc *CofreUseCase) ListDocuments(scope visibility.Scope, schoolID string) (*dto.VaultListResponse, error) {
	if !scope.Allows(schoolID) {
		return nil, domain.ErrForbidden
	}
	entries, err := uc.entryRepo.List(repository.EntryFilter{
		Scope:    scope,
		SchoolID: schoolID,
	}, 1000, 0)
	if err != nil {
		return nil, err
	}
	checklists, err := uc.checklistRepo.ListBySchool(schoolID)
	if err != nil {
		return nil, err
	}
	byAttachment := make(map[string]*entity.DocumentChecklist, len(checklists))
	for _, c := range checklists {
		byAttachment[c.AttachmentID] = c
	}

	out := &dto.VaultListResponse{}
	for _, entry := range entries {
		for _, att := range entry.Attachments {
			checklist := byAttachment[att.ID]
			status := checklist.Status()
			doc := dto.VaultDocumentResponse{
				Attachment: dto.AttachmentDTO{
					ID:       att.ID,
					Name:     att.Name,
					URL:      att.URL,
					Type:     att.Type,
					Size:     att.Size,
					Category: att.Category,
				},
				EntryID:  entry.ID,
				SchoolID: entry.SchoolID,
				Status:   status,
			}
			if checklist != nil {
				doc.Checklist = toChecklistResponse(checklist)
			}
			out.Documents = append(out.Documents, doc)

			out.Summary.Total++
			switch status {
			case entity.DocValidado:
				out.Summary.Validado++
			case entity.DocRessalvas:
				out.Summary.Ressalvas++
			default:
				out.Summary.Pendente++
			}
		}
	}
	return out, nil
}

// SaveChecklist grava a conferência de um documento e devolve o status
// derivado.
func (uc *CofreUseCase) SaveChecklist(scope visibility.Scope, attachmentID, checkedBy string, in dto.DocumentChecklistRequest) (*dto.DocumentChecklistResponse, error) {
	if !scope.Allows(in.SchoolID) {
		return nil, domain.ErrForbidden
	}
	if attachmentID == "" {
		return nil, domain.ErrInvalidInput
	}
	checklist := &entity.DocumentChecklist{
		AttachmentID:   attachmentID,
		SchoolID:       in.SchoolID,
		HasSignature:   in.HasSignature,
		HasStamp:       in.HasStamp,
		IsLegible:      in.IsLegible,
		IsCorrectValue: in.IsCorrectValue,
		IsCorrectDate:  in.IsCorrectDate,
		Notes:          in.Notes,
		CheckedBy:      checkedBy,
		UpdatedAt:      time.Now(),
	}
	if err := uc.checklistRepo.Upsert(checklist); err != nil {
		return nil, err
	}
	return toChecklistResponse(checklist), nil
}

// GetChecklist devolve a conferência de um anexo; sem registro devolve o
// status Pendente com os critérios zerados.
func (uc *CofreUseCase) GetChecklist(attachmentID string) (*dto.DocumentChecklistResponse, error) {
	checklist, err := uc.checklistRepo.GetByAttachmentID(attachmentID)
	if err != nil {
		return nil, err
	}
	if checklist == nil {
		return &dto.DocumentChecklistResponse{
			AttachmentID: attachmentID,
			Status:       entity.DocPendente,
		}, nil
	}
	return toChecklistResponse(checklist), nil
}

func toChecklistResponse(c *entity.DocumentChecklist) *dto.DocumentChecklistResponse {
	return &dto.DocumentChecklistResponse{
		AttachmentID:   c.AttachmentID,
		SchoolID:       c.SchoolID,
		HasSignature:   c.HasSignature,
		HasStamp:       c.HasStamp,
		IsLegible:      c.IsLegible,
		IsCorrectValue: c.IsCorrectValue,
		IsCorrectDate:  c.IsCorrectDate,
		Notes:          c.Notes,
		CheckedBy:      c.CheckedBy,
		Status:         c.Status(),
		UpdatedAt:      c.UpdatedAt,
	}
}
