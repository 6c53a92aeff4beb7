// Package pdf implementa a geração do documento de Consolidação da Pesquisa
// de Preços da prestação de contas.
//
// Layout da página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  CABEÇALHO: Escola + CNPJ  │  Lançamento + Data             │
//	│  ───────────────────────────────────────────────────────── │
//	│  TABELA: Item | Qtd | Unid | Vencedor | Conc. 1 | Conc. 2   │
//	│  TOTAIS: Subtotal / Desconto / Total conciliado             │
//	│  CHECKLIST: critérios da prestação de contas                │
//	│  ASSINATURAS: Diretor(a) + Conselho Escolar                 │
//	│  RODAPÉ: QR de validação pública                            │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	appprestacao "github.com/sigescola/sigescola-api/internal/application/prestacao"
	"github.com/sigescola/sigescola-api/internal/domain/entity"
	"github.com/sigescola/sigescola-api/internal/domain/prestacao"
)

var _ appprestacao.ReportGenerator = (*MarotoReportGenerator)(nil)

// ── Paleta de cores ───────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorOK      = &props.Color{Red: 0, Green: 120, Blue: 60}
	colorAlert   = &props.Color{Red: 180, Green: 60, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa prestacao.ReportGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator constrói o gerador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// ConsolidationReport gera o PDF oficial do processo e devolve seus bytes.
func (g *MarotoReportGenerator) ConsolidationReport(
	process *entity.AccountabilityProcess,
	school *entity.School,
	validationURL string,
) ([]byte, error) {
	if process == nil || process.Entry == nil {
		return nil, fmt.Errorf("pdf: processo sem lançamento carregado")
	}
	schoolName := ""
	schoolCNPJ := ""
	if school != nil {
		schoolName = school.Name
		schoolCNPJ = school.CNPJ
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Consolidação da Pesquisa de Preços", true).
		WithAuthor(schoolName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(process, schoolName, schoolCNPJ))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(entryRow(process.Entry))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow(process.Quotes))
	for _, r := range tableItemRows(process) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(process))

	m.AddRows(line.NewRow(2))
	for _, r := range checklistRows(process) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(4))
	m.AddRows(signatureRow(school))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	for _, r := range validationFooterRows(validationURL) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: gerar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Seções ────────────────────────────────────────────────────────────────────

// headerRow: escola + CNPJ (esq) e identificação do processo (dir).
func headerRow(process *entity.AccountabilityProcess, schoolName, schoolCNPJ string) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(schoolName, "Unidade Escolar"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("CNPJ: "+nonEmpty(schoolCNPJ, "—"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("CONSOLIDAÇÃO DA PESQUISA DE PREÇOS", props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 1, Color: colorPrimary,
			}),
			text.New("Processo: "+process.ID, props.Text{
				Size: 7, Align: align.Right, Top: 8, Color: colorGray,
			}),
			text.New("Atualizado em "+process.UpdatedAt.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 13,
			}),
		),
	)
}

// entryRow: dados do lançamento prestado.
func entryRow(entry *entity.FinancialEntry) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("DESPESA", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(entry.Description, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Programa: %s   |   Fornecedor: %s   |   NF: %s   |   Data: %s",
				nonEmpty(entry.ProgramName, "—"),
				nonEmpty(entry.SupplierName, "—"),
				nonEmpty(entry.DocumentNumber, "—"),
				entry.Date.Format("02/01/2006"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabeçalho do quadro comparativo com os três proponentes.
func tableHeaderRow(quotes []entity.AccountabilityQuote) core.Row {
	names := quoteNames(quotes)
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 7, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(9).Add(
		h("Item", 4, align.Left),
		h("Qtd", 1, align.Center),
		h("Unid", 1, align.Center),
		h(names[0]+" (vencedor)", 2, align.Right),
		h(names[1], 2, align.Right),
		h(names[2], 2, align.Right),
	)
}

// tableItemRows: uma linha por item, com os preços dos três proponentes
// alinhados pelo id do item.
func tableItemRows(process *entity.AccountabilityProcess) []core.Row {
	competitorPrices := make([]map[string]decimal.Decimal, 0, 2)
	for _, quote := range process.Quotes {
		if quote.IsWinner {
			continue
		}
		prices := make(map[string]decimal.Decimal, len(quote.Items))
		for _, line := range quote.Items {
			prices[line.ItemID] = line.UnitPrice
		}
		competitorPrices = append(competitorPrices, prices)
	}

	cell := func(value string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(value, props.Text{
			Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
		}))
	}
	priceCell := func(prices []map[string]decimal.Decimal, slot int, itemID string) core.Col {
		value := "—"
		if slot < len(prices) {
			if p, ok := prices[slot][itemID]; ok && !p.IsZero() {
				value = "R$ " + prestacao.FormatNumberBR(p)
			}
		}
		return cell(value, 2, align.Right)
	}

	result := make([]core.Row, 0, len(process.Items))
	for _, item := range process.Items {
		result = append(result, row.New(7).Add(
			cell(item.Description, 4, align.Left),
			cell(item.Quantity.String(), 1, align.Center),
			cell(item.Unit, 1, align.Center),
			cell("R$ "+prestacao.FormatNumberBR(item.WinnerUnitPrice), 2, align.Right),
			priceCell(competitorPrices, 0, item.ID),
			priceCell(competitorPrices, 1, item.ID),
		))
	}
	return result
}

// totalsRow: subtotal, desconto e conferência contra o valor do lançamento.
func totalsRow(process *entity.AccountabilityProcess) core.Row {
	rec := prestacao.Reconcile(process.Items, process.Discount, process.Entry.TargetValue())

	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}

	status := "VALORES CONFEREM"
	statusColor := colorOK
	if !rec.Matched {
		status = "VALORES DIVERGENTES"
		statusColor = colorAlert
	}

	return row.New(26).Add(
		col.New(4).Add(
			text.New(status, props.Text{
				Style: fontstyle.Bold, Size: 10, Color: statusColor, Top: 8,
			}),
		),
		col.New(4).Add(
			label("Subtotal:"),
			label("Desconto:"),
			label("Valor da despesa:"),
		),
		col.New(4).Add(
			value("R$ "+prestacao.FormatNumberBR(rec.Subtotal)),
			value("R$ "+prestacao.FormatNumberBR(rec.Discount)),
			value("R$ "+prestacao.FormatNumberBR(rec.Target)),
		),
	)
}

// checklistRows: critérios da prestação de contas com marcação.
func checklistRows(process *entity.AccountabilityProcess) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("CHECKLIST DA PRESTAÇÃO DE CONTAS", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
	}
	for _, item := range prestacao.NormalizeChecklist(process.Checklist) {
		mark := "[  ]"
		if item.Checked {
			mark = "[X]"
		}
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New(mark+" "+item.Label, props.Text{Size: 8, Top: 1, Left: 2}),
		)))
	}
	if process.ChecklistNotes != "" {
		rows = append(rows, row.New(6).Add(col.New(12).Add(
			text.New("Observações: "+process.ChecklistNotes, props.Text{
				Size: 7, Top: 1, Left: 2, Color: colorGray,
			}),
		)))
	}
	return rows
}

// signatureRow: linhas de assinatura do diretor e do conselho escolar.
func signatureRow(school *entity.School) core.Row {
	director := "Diretor(a)"
	council := "Conselho Escolar"
	if school != nil {
		if school.Director != "" {
			director = school.Director + " — Diretor(a)"
		}
		if school.ConselhoEscolar != "" {
			council = school.ConselhoEscolar
		}
	}
	sig := func(label string) core.Col {
		return col.New(6).Add(
			text.New("_________________________________", props.Text{
				Size: 9, Align: align.Center, Top: 2,
			}),
			text.New(label, props.Text{Size: 8, Align: align.Center, Top: 8, Color: colorGray}),
		)
	}
	return row.New(16).Add(sig(director), sig(council))
}

// validationFooterRows: QR com o link público de validação do documento.
func validationFooterRows(validationURL string) []core.Row {
	if validationURL == "" {
		return nil
	}
	return []core.Row{
		row.New(35).Add(
			col.New(4).Add(code.NewQr(validationURL, props.Rect{
				Percent: 90,
				Center:  true,
			})),
			col.New(8).Add(
				text.New("Aponte a câmera para o código QR para\nconfirmar a autenticidade deste documento.", props.Text{
					Size: 8, Top: 4, Left: 3, Color: colorGray,
				}),
				text.New("DOCUMENTO DE PRESTAÇÃO DE CONTAS", props.Text{
					Style: fontstyle.Bold, Size: 10, Top: 18, Left: 3, Color: colorPrimary,
				}),
				text.New(validationURL, props.Text{
					Size: 6.5, Top: 26, Left: 3, Color: colorGray,
				}),
			),
		),
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

// quoteNames devolve os nomes dos proponentes na ordem vencedor, 1, 2.
func quoteNames(quotes []entity.AccountabilityQuote) [3]string {
	names := [3]string{"Vencedor", "Concorrente 1", "Concorrente 2"}
	slot := 1
	for _, quote := range quotes {
		if quote.SupplierName == "" {
			continue
		}
		if quote.IsWinner {
			names[0] = quote.SupplierName
		} else if slot < 3 {
			names[slot] = quote.SupplierName
			slot++
		}
	}
	return names
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
