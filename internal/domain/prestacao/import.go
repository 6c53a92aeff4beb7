package prestacao

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sigescola/sigescola-api/internal/domain"
)

// ImportedRow é uma linha da importação em massa: o item do vencedor mais os
// preços dos dois concorrentes, atribuídos posicionalmente aos slots 1 e 2.
type ImportedRow struct {
	Description      string
	Quantity         decimal.Decimal
	Unit             string
	WinnerUnitPrice  decimal.Decimal
	CompetitorPrices [CompetitorSlots]decimal.Decimal
}

// defaultUnit usada quando a coluna de unidade vem vazia.
const defaultUnit = "Unid."

// ParseTable interpreta texto colado de planilha (tab) ou conteúdo de CSV
// (ponto e vírgula ou vírgula), colunas em ordem fixa: Descrição, Quantidade,
// Unidade, Preço Vencedor, Preço Concorrente 1, Preço Concorrente 2.
// Uma linha de cabeçalho é detectada e descartada; linhas vazias ou com menos
// de duas colunas são ignoradas. Números aceitam o formato brasileiro de
// vírgula decimal, com símbolo de moeda e espaços descartados.
func ParseTable(text string) ([]ImportedRow, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, domain.ErrInvalidInput
	}
	lines := splitLines(trimmed)

	delimiter := sniffDelimiter(lines[0])

	start := 0
	if isHeaderLine(lines[0]) {
		start = 1
	}

	var rows []ImportedRow
	for _, line := range lines[start:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		cols := strings.Split(line, delimiter)
		if len(cols) < 2 {
			continue
		}
		row := ImportedRow{
			Description:     strings.TrimSpace(col(cols, 0)),
			Quantity:        ParseNumberBR(col(cols, 1)),
			Unit:            strings.TrimSpace(col(cols, 2)),
			WinnerUnitPrice: ParseNumberBR(col(cols, 3)),
		}
		if row.Unit == "" {
			row.Unit = defaultUnit
		}
		row.CompetitorPrices[0] = ParseNumberBR(col(cols, 4))
		row.CompetitorPrices[1] = ParseNumberBR(col(cols, 5))
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, domain.ErrInvalidInput
	}
	return rows, nil
}

// sniffDelimiter escolhe o separador pela primeira linha. Tab tem prioridade:
// uma linha tabulada com preços "5,50" contém vírgulas e seria separada errado
// se a vírgula fosse testada antes.
func sniffDelimiter(firstLine string) string {
	switch {
	case strings.Contains(firstLine, "\t"):
		return "\t"
	case strings.Contains(firstLine, ";"):
		return ";"
	case strings.Contains(firstLine, ","):
		return ","
	default:
		return "\t"
	}
}

func isHeaderLine(line string) bool {
	lower := strings.ToLower(line)
	return strings.Contains(lower, "descrição") || strings.Contains(lower, "quantidade")
}

func splitLines(text string) []string {
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}

func col(cols []string, i int) string {
	if i < len(cols) {
		return cols[i]
	}
	return ""
}

// ParseNumberBR interpreta um número em notação brasileira: descarta "R$",
// espaços e, havendo vírgula, trata pontos como separador de milhar e a
// vírgula como decimal. Entrada não numérica vale zero.
func ParseNumberBR(s string) decimal.Decimal {
	clean := strings.NewReplacer("R$", "", " ", "", " ", "").Replace(strings.TrimSpace(s))
	if clean == "" {
		return decimal.Zero
	}
	if strings.Contains(clean, ",") {
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.Replace(clean, ",", ".", 1)
	}
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// FormatNumberBR formata um decimal com vírgula decimal e duas casas,
// inverso exato de ParseNumberBR para valores monetários.
func FormatNumberBR(d decimal.Decimal) string {
	return strings.Replace(d.StringFixed(2), ".", ",", 1)
}

// Cabeçalho e linha de exemplo do modelo CSV distribuído aos usuários.
var (
	templateHeaders = []string{
		"Descrição Detalhada", "Quantidade", "Unidade",
		"Preço Vencedor (R$)", "Preço Concorrente 1 (R$)", "Preço Concorrente 2 (R$)",
	}
	templateExample = []string{"Arroz Parboilizado Tipo 1", "50", "kg", "5,50", "5,90", "6,15"}
)

// CSVTemplate gera o modelo de importação para download: BOM UTF-8 (para o
// Excel reconhecer a codificação) e ponto e vírgula como separador — distinto
// do tab da colagem direta.
func CSVTemplate() []byte {
	var b strings.Builder
	b.WriteString("\uFEFF")
	b.WriteString(strings.Join(templateHeaders, ";"))
	b.WriteString("\n")
	b.WriteString(strings.Join(templateExample, ";"))
	return []byte(b.String())
}

// CSVTemplateFilename nome sugerido para o arquivo do modelo.
const CSVTemplateFilename = "modelo_importacao_itens.csv"
