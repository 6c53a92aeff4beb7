package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de lançamento.
const (
	EntryTypeEntrada = "Entrada"
	EntryTypeSaida   = "Saída"
)

// Status de lançamento financeiro.
const (
	StatusPendente    = "Pendente"
	StatusPago        = "Pago"
	StatusRecebido    = "Recebido"
	StatusAgendado    = "Agendado"
	StatusEstornado   = "Estornado"
	StatusConciliado  = "Conciliado"
	StatusConsolidado = "Consolidado" // prestação de contas concluída
)

// Natureza da despesa.
const (
	NatureCusteio = "Custeio"
	NatureCapital = "Capital"
)

// Attachment é um anexo armazenado no object storage, persistido como jsonb
// junto do lançamento ou do processo de prestação de contas.
type Attachment struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	URL      string `json:"url"`
	Type     string `json:"type,omitempty"`
	Size     int64  `json:"size,omitempty"`
	Category string `json:"category,omitempty"`
}

// FinancialEntry representa um lançamento financeiro (receita ou despesa).
// Invariante de sinal: Saída armazena valor negativo, Entrada positivo;
// toda comparação de valores usa o módulo (TargetValue).
type FinancialEntry struct {
	ID              string
	SchoolID        string
	SchoolName      string
	ProgramID       string
	ProgramName     string
	RubricID        string
	RubricName      string
	SupplierID      string
	SupplierName    string
	SupplierCNPJ    string
	Description     string
	Value           decimal.Decimal
	Type            string // Entrada | Saída
	Status          string
	Nature          string // Custeio | Capital
	Category        string
	Date            time.Time
	InvoiceDate     *time.Time
	PaymentDate     *time.Time
	DocumentNumber  string // número da nota
	AuthNumber      string // número do pagamento/doc
	BankAccountID   string
	PaymentMethodID string
	Attachments     []Attachment
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TargetValue devolve o valor absoluto do lançamento, usado como alvo da
// conferência de valores da prestação de contas.
func (e *FinancialEntry) TargetValue() decimal.Decimal {
	return e.Value.Abs()
}

// IsExpense informa se o lançamento é de saída (despesa).
func (e *FinancialEntry) IsExpense() bool {
	return e.Type == EntryTypeSaida
}
