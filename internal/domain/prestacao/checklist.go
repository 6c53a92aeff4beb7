package prestacao

import "github.com/sigescola/sigescola-api/internal/domain/entity"

// IDs estáveis dos cinco critérios fixos do checklist do processo.
const (
	CheckQuotations   = "quotations"
	CheckWinnerPrice  = "winner_price"
	CheckInvoice      = "invoice"
	CheckCertificates = "certificates"
	CheckMinutes      = "minutes"
)

// checklistLabels na ordem de exibição do formulário oficial.
var checklistLabels = []entity.ChecklistItem{
	{ID: CheckQuotations, Label: "3 Orçamentos anexados"},
	{ID: CheckWinnerPrice, Label: "Vencedor validado com menor preço"},
	{ID: CheckInvoice, Label: "Nota Fiscal anexa"},
	{ID: CheckCertificates, Label: "Certidões negativas válidas"},
	{ID: CheckMinutes, Label: "Ata de Assembleia assinada"},
}

// NewChecklist devolve o checklist padrão com os cinco critérios desmarcados.
func NewChecklist() []entity.ChecklistItem {
	out := make([]entity.ChecklistItem, len(checklistLabels))
	copy(out, checklistLabels)
	return out
}

// NormalizeChecklist garante os cinco critérios fixos na ordem canônica,
// preservando o estado marcado do que veio persistido e ignorando ids
// desconhecidos.
func NormalizeChecklist(persisted []entity.ChecklistItem) []entity.ChecklistItem {
	checked := make(map[string]bool, len(persisted))
	for _, item := range persisted {
		checked[item.ID] = item.Checked
	}
	out := NewChecklist()
	for i := range out {
		out[i].Checked = checked[out[i].ID]
	}
	return out
}

// Categorias de anexo que sugerem critérios do checklist.
var categoryHints = map[string]string{
	"Pesquisa de Preços (Cotações)": CheckQuotations,
	"Nota Fiscal":                   CheckInvoice,
	"Certidão de Regularidade":      CheckCertificates,
	"Certidão de Proponente":        CheckCertificates,
	"Ata de Assembleia":             CheckMinutes,
}

// SuggestedByAttachments devolve os critérios provavelmente satisfeitos pelos
// anexos do processo, por categoria. É só uma sugestão de interface: nunca
// marca o critério automaticamente.
func SuggestedByAttachments(attachments []entity.Attachment) map[string]bool {
	hints := make(map[string]bool)
	for _, att := range attachments {
		if id, ok := categoryHints[att.Category]; ok {
			hints[id] = true
		}
	}
	return hints
}
