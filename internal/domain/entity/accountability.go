package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status do processo de prestação de contas.
const (
	ProcessEmAndamento = "Em Andamento"
	ProcessConcluido   = "Concluído"
)

// ChecklistItem é um critério fixo do checklist do processo, persistido
// literalmente como jsonb ({id, label, checked}).
type ChecklistItem struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Checked bool   `json:"checked"`
}

// AccountabilityProcess vincula exatamente um lançamento de saída à sua
// justificativa de compra (pesquisa de preços com três cotações).
// A unicidade por lançamento é garantida por índice único em
// financial_entry_id no storage, não apenas pelo filtro da aplicação.
type AccountabilityProcess struct {
	ID               string
	FinancialEntryID string
	SchoolID         string
	Status           string // Em Andamento | Concluído
	Discount         decimal.Decimal
	Checklist        []ChecklistItem
	ChecklistNotes   string
	Attachments      []Attachment
	ReportToken      string // token embutido no QR do documento impresso
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// Agregados carregados sob demanda.
	Entry  *FinancialEntry
	Items  []AccountabilityItem
	Quotes []AccountabilityQuote
}

// AccountabilityItem é uma linha do lote comprado, com o preço unitário do
// fornecedor vencedor. O ID é gerado localmente na edição e serve de chave
// estável para alinhar os preços dos concorrentes.
type AccountabilityItem struct {
	ID              string
	ProcessID       string
	Description     string
	Quantity        decimal.Decimal
	Unit            string
	WinnerUnitPrice decimal.Decimal
}

// Subtotal devolve quantidade × preço unitário do vencedor.
func (it AccountabilityItem) Subtotal() decimal.Decimal {
	return it.Quantity.Mul(it.WinnerUnitPrice)
}

// AccountabilityQuote é a proposta de um fornecedor para o lote inteiro.
// Cada processo tem exatamente uma cotação vencedora (o fornecedor do
// lançamento) e duas cotações concorrentes de fornecedores distintos.
type AccountabilityQuote struct {
	ID           string
	ProcessID    string
	SupplierID   string
	SupplierName string
	SupplierCNPJ string
	IsWinner     bool
	TotalValue   decimal.Decimal
	Items        []AccountabilityQuoteItem
}

// AccountabilityQuoteItem é a linha de uma cotação concorrente. ItemID
// referencia o AccountabilityItem correspondente do vencedor — chave estável
// no lugar do alinhamento posicional da interface original.
type AccountabilityQuoteItem struct {
	ID          string
	QuoteID     string
	ItemID      string
	Description string
	Quantity    decimal.Decimal
	Unit        string
	UnitPrice   decimal.Decimal
}
