package prestacao_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sigescola/sigescola-api/internal/domain/entity"
	"github.com/sigescola/sigescola-api/internal/domain/prestacao"
)

func TestNewChecklist_CincoCriteriosDesmarcados(t *testing.T) {
	list := prestacao.NewChecklist()
	require.Len(t, list, 5)
	assert.Equal(t, prestacao.CheckQuotations, list[0].ID)
	assert.Equal(t, prestacao.CheckMinutes, list[4].ID)
	for _, item := range list {
		assert.False(t, item.Checked, "critério %s deveria iniciar desmarcado", item.ID)
		assert.NotEmpty(t, item.Label)
	}
}

func TestNormalizeChecklist_PreservaMarcadosEDescartaDesconhecidos(t *testing.T) {
	persisted := []entity.ChecklistItem{
		{ID: prestacao.CheckInvoice, Checked: true},
		{ID: "criterio-antigo-removido", Checked: true},
	}
	out := prestacao.NormalizeChecklist(persisted)
	require.Len(t, out, 5)
	for _, item := range out {
		assert.Equal(t, item.ID == prestacao.CheckInvoice, item.Checked, "critério %s", item.ID)
	}
}

func TestSuggestedByAttachments_SugereSemMarcar(t *testing.T) {
	hints := prestacao.SuggestedByAttachments([]entity.Attachment{
		{Category: "Nota Fiscal"},
		{Category: "Ata de Assembleia"},
		{Category: "Outros"},
	})
	assert.Equal(t, map[string]bool{
		prestacao.CheckInvoice: true,
		prestacao.CheckMinutes: true,
	}, hints)
}
