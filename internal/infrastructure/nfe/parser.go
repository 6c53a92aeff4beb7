// Package nfe interpreta XMLs fiscais brasileiros (NF-e e NFS-e) para a
// importação de itens da prestação de contas.
package nfe

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	"github.com/sigescola/sigescola-api/internal/domain"
	"github.com/sigescola/sigescola-api/internal/domain/prestacao"
)

// Fatores de sugestão dos preços dos concorrentes. O documento fiscal só traz
// o preço praticado pelo vencedor; as duas colunas restantes entram como
// sugestão um pouco acima, para o usuário ajustar com os orçamentos reais.
var (
	suggestionFactor1 = decimal.RequireFromString("1.016")
	suggestionFactor2 = decimal.RequireFromString("1.0185")
)

// Parser adaptador do porto de importação de XML fiscal.
type Parser struct{}

// NewParser constrói o adaptador.
func NewParser() *Parser {
	return &Parser{}
}

// ParseInvoice implementa o porto da aplicação.
func (p *Parser) ParseInvoice(xmlContent []byte) ([]prestacao.ImportedRow, error) {
	return ParseInvoice(xmlContent)
}

// ParseInvoice detecta o modelo do documento (NF-e de produtos ou NFS-e de
// serviços) e devolve as linhas de importação com os preços dos concorrentes
// sugeridos.
func ParseInvoice(xmlContent []byte) ([]prestacao.ImportedRow, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(xmlContent); err != nil {
		return nil, fmt.Errorf("nfe: ler XML: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, domain.ErrInvalidInput
	}

	if rows := parseNFe(doc); len(rows) > 0 {
		return rows, nil
	}
	if rows := parseNFSe(doc); len(rows) > 0 {
		return rows, nil
	}
	return nil, domain.ErrInvalidInput
}

// parseNFe extrai os itens de uma NF-e de produtos: um det/prod por linha,
// com descrição (xProd), quantidade (qCom), unidade (uCom) e preço unitário
// comercial (vUnCom).
func parseNFe(doc *etree.Document) []prestacao.ImportedRow {
	var rows []prestacao.ImportedRow
	for _, det := range doc.FindElements("//det") {
		prod := det.SelectElement("prod")
		if prod == nil {
			continue
		}
		description := childText(prod, "xProd")
		if description == "" {
			continue
		}
		quantity := parseDecimal(childText(prod, "qCom"))
		if quantity.IsZero() {
			quantity = decimal.NewFromInt(1)
		}
		unit := childText(prod, "uCom")
		if unit == "" {
			unit = "Unid."
		}
		price := parseDecimal(childText(prod, "vUnCom"))
		rows = append(rows, newRow(description, quantity, unit, price))
	}
	return rows
}

// Padrão "descrição ... R$ 1.234,56" usado nos discriminativos de NFS-e que
// listam vários serviços em um único campo de texto.
var nfsePriceLine = regexp.MustCompile(`^(.*?)\s*R\$\s*([\d.,]+)\s*$`)

// parseNFSe extrai itens de uma NFS-e de serviços. O discriminativo
// (xDescServ ou Discriminacao) pode trazer vários serviços separados por
// "***"; linhas com "R$" viram itens com preço próprio e o restante vira um
// item único com o valor total do serviço (vServ/ValorServicos).
func parseNFSe(doc *etree.Document) []prestacao.ImportedRow {
	description := firstElementText(doc, "//xDescServ", "//Discriminacao")
	if description == "" {
		return nil
	}
	total := parseDecimal(firstElementText(doc, "//vServ", "//ValorServicos"))

	var rows []prestacao.ImportedRow
	for _, part := range strings.Split(description, "***") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if m := nfsePriceLine.FindStringSubmatch(part); m != nil {
			rows = append(rows, newRow(strings.TrimSpace(m[1]), decimal.NewFromInt(1), "Serviço", prestacao.ParseNumberBR(m[2])))
			continue
		}
		rows = append(rows, newRow(part, decimal.NewFromInt(1), "Serviço", decimal.Zero))
	}
	// Discriminativo de serviço único sem preço embutido: usar o valor total.
	if len(rows) == 1 && rows[0].WinnerUnitPrice.IsZero() {
		rows[0].WinnerUnitPrice = total
		rows[0].CompetitorPrices = suggest(total)
	}
	return rows
}

func newRow(description string, quantity decimal.Decimal, unit string, price decimal.Decimal) prestacao.ImportedRow {
	return prestacao.ImportedRow{
		Description:      description,
		Quantity:         quantity,
		Unit:             unit,
		WinnerUnitPrice:  price,
		CompetitorPrices: suggest(price),
	}
}

// suggest devolve os dois preços concorrentes sugeridos, arredondados a
// centavos.
func suggest(price decimal.Decimal) [2]decimal.Decimal {
	return [2]decimal.Decimal{
		price.Mul(suggestionFactor1).Round(2),
		price.Mul(suggestionFactor2).Round(2),
	}
}

func childText(parent *etree.Element, tag string) string {
	if el := parent.SelectElement(tag); el != nil {
		return strings.TrimSpace(el.Text())
	}
	return ""
}

func firstElementText(doc *etree.Document, paths ...string) string {
	for _, path := range paths {
		if el := doc.FindElement(path); el != nil {
			return strings.TrimSpace(el.Text())
		}
	}
	return ""
}

// parseDecimal interpreta números dos XMLs fiscais: NF-e usa ponto decimal,
// mas discriminativos de NFS-e costumam vir em notação brasileira.
func parseDecimal(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	if strings.Contains(s, ",") {
		return prestacao.ParseNumberBR(s)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
