package cofre_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sigescola/sigescola-api/internal/application/cofre"
	"github.com/sigescola/sigescola-api/internal/application/dto"
	"github.com/sigescola/sigescola-api/internal/domain"
	"github.com/sigescola/sigescola-api/internal/domain/entity"
	"github.com/sigescola/sigescola-api/internal/domain/repository"
	"github.com/sigescola/sigescola-api/internal/domain/visibility"
)

// fakeEntryRepo devolve lançamentos fixos; só List importa para o cofre.
type fakeEntryRepo struct {
	entries []*entity.FinancialEntry
}

func (f *fakeEntryRepo) Create(*entity.FinancialEntry) error                { return nil }
func (f *fakeEntryRepo) GetByID(string) (*entity.FinancialEntry, error)     { return nil, nil }
func (f *fakeEntryRepo) Update(*entity.FinancialEntry) error                { return nil }
func (f *fakeEntryRepo) UpdateStatus(string, string) error                  { return nil }
func (f *fakeEntryRepo) Delete(string) error                                { return nil }
func (f *fakeEntryRepo) List(filter repository.EntryFilter, limit, offset int) ([]*entity.FinancialEntry, error) {
	return f.entries, nil
}
func (f *fakeEntryRepo) ListWithoutProcess(repository.EntryFilter, int, int) ([]*entity.FinancialEntry, error) {
	return nil, nil
}

// fakeChecklistRepo guarda conferências em memória por attachment_id.
type fakeChecklistRepo struct {
	byAttachment map[string]*entity.DocumentChecklist
}

func (f *fakeChecklistRepo) Upsert(c *entity.DocumentChecklist) error {
	f.byAttachment[c.AttachmentID] = c
	return nil
}

func (f *fakeChecklistRepo) GetByAttachmentID(id string) (*entity.DocumentChecklist, error) {
	return f.byAttachment[id], nil
}

func (f *fakeChecklistRepo) ListBySchool(schoolID string) ([]*entity.DocumentChecklist, error) {
	var out []*entity.DocumentChecklist
	for _, c := range f.byAttachment {
		if c.SchoolID == schoolID {
			out = append(out, c)
		}
	}
	return out, nil
}

func newVault() (*cofre.CofreUseCase, *fakeChecklistRepo) {
	entries := []*entity.FinancialEntry{{
		ID:       "lanc-1",
		SchoolID: "esc-1",
		Attachments: []entity.Attachment{
			{ID: "doc-nota", Name: "nf-123.pdf", Category: "Nota Fiscal"},
			{ID: "doc-ata", Name: "ata.pdf", Category: "Ata de Assembleia"},
			{ID: "doc-comprovante", Name: "pix.pdf", Category: "Comprovante"},
		},
	}}
	checklists := &fakeChecklistRepo{byAttachment: map[string]*entity.DocumentChecklist{
		// Todos os critérios atendidos → Validado
		"doc-nota": {
			AttachmentID: "doc-nota", SchoolID: "esc-1",
			HasSignature: true, HasStamp: true, IsLegible: true,
			IsCorrectValue: true, IsCorrectDate: true,
		},
		// Conferido com pendências → Ressalvas
		"doc-ata": {
			AttachmentID: "doc-ata", SchoolID: "esc-1",
			HasSignature: true, IsLegible: true,
			Notes: "falta carimbo do conselho",
		},
		// doc-comprovante sem registro → Pendente
	}}
	return cofre.NewCofreUseCase(&fakeEntryRepo{entries: entries}, checklists), checklists
}

func TestListDocuments_DerivaStatusEContadores(t *testing.T) {
	uc, _ := newVault()

	out, err := uc.ListDocuments(visibility.School("esc-1"), "esc-1")
	require.NoError(t, err)
	require.Len(t, out.Documents, 3)

	byID := map[string]dto.VaultDocumentResponse{}
	for _, doc := range out.Documents {
		byID[doc.Attachment.ID] = doc
	}
	assert.Equal(t, entity.DocValidado, byID["doc-nota"].Status)
	assert.Equal(t, entity.DocRessalvas, byID["doc-ata"].Status)
	assert.Equal(t, entity.DocPendente, byID["doc-comprovante"].Status)
	assert.Nil(t, byID["doc-comprovante"].Checklist, "documento pendente não carrega conferência")

	assert.Equal(t, 3, out.Summary.Total)
	assert.Equal(t, 1, out.Summary.Validado)
	assert.Equal(t, 1, out.Summary.Ressalvas)
	assert.Equal(t, 1, out.Summary.Pendente)
}

func TestListDocuments_EscolaForaDoEscopo(t *testing.T) {
	uc, _ := newVault()

	_, err := uc.ListDocuments(visibility.School("esc-2"), "esc-1")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// Registro existente com nenhum critério marcado ainda é Ressalvas: Pendente
// significa ausência de conferência, não conferência reprovada.
func TestSaveChecklist_TodosFalsosViraRessalvas(t *testing.T) {
	uc, _ := newVault()

	out, err := uc.SaveChecklist(visibility.School("esc-1"), "doc-comprovante", "user-1", dto.DocumentChecklistRequest{
		SchoolID: "esc-1",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.DocRessalvas, out.Status)
	assert.Equal(t, "user-1", out.CheckedBy)
}

func TestGetChecklist_SemRegistroDevolvePendente(t *testing.T) {
	uc, _ := newVault()

	out, err := uc.GetChecklist("doc-inexistente")
	require.NoError(t, err)
	assert.Equal(t, entity.DocPendente, out.Status)
	assert.False(t, out.HasSignature)
}
