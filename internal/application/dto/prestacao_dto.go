package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProcessItemDTO linha do lote do vencedor. O id vem do cliente quando o item
// já existia (edição) e vazio quando é novo.
type ProcessItemDTO struct {
	ID              string          `json:"id,omitempty"`
	Description     string          `json:"description" validate:"required"`
	Quantity        decimal.Decimal `json:"quantity" validate:"required"`
	Unit            string          `json:"unit"`
	WinnerUnitPrice decimal.Decimal `json:"winner_unit_price"`
}

// CompetitorDTO proponente concorrente: fornecedor e preços por item,
// indexados pelo id do item do vencedor.
type CompetitorDTO struct {
	SupplierID   string                     `json:"supplier_id"`
	SupplierName string                     `json:"supplier_name"`
	SupplierCNPJ string                     `json:"supplier_cnpj,omitempty"`
	Prices       map[string]decimal.Decimal `json:"prices"`
}

// ChecklistItemDTO critério do checklist do processo.
type ChecklistItemDTO struct {
	ID      string `json:"id"`
	Label   string `json:"label,omitempty"`
	Checked bool   `json:"checked"`
}

// SaveProcessRequest salvamento (criação ou edição) do processo completo.
// ConfirmMismatch autoriza salvar com a conferência de valores divergente.
type SaveProcessRequest struct {
	FinancialEntryID string             `json:"financial_entry_id" validate:"required"`
	Status           string             `json:"status"`
	Discount         decimal.Decimal    `json:"discount"`
	Items            []ProcessItemDTO   `json:"items" validate:"required,min=1"`
	Competitors      [2]CompetitorDTO   `json:"competitors"`
	Checklist        []ChecklistItemDTO `json:"checklist"`
	ChecklistNotes   string             `json:"checklist_notes"`
	Attachments      []AttachmentDTO    `json:"attachments"`
	ConfirmMismatch  bool               `json:"confirm_mismatch"`
}

// ReconciliationDTO resultado da conferência de valores.
type ReconciliationDTO struct {
	Subtotal  decimal.Decimal `json:"subtotal"`
	Discount  decimal.Decimal `json:"discount"`
	Net       decimal.Decimal `json:"net"`
	Target    decimal.Decimal `json:"target"`
	Remaining decimal.Decimal `json:"remaining"`
	Matched   bool            `json:"matched"`
}

// QuoteItemDTO linha de uma cotação.
type QuoteItemDTO struct {
	ItemID      string          `json:"item_id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// QuoteDTO cotação de um fornecedor no processo.
type QuoteDTO struct {
	ID           string          `json:"id"`
	SupplierID   string          `json:"supplier_id,omitempty"`
	SupplierName string          `json:"supplier_name"`
	SupplierCNPJ string          `json:"supplier_cnpj,omitempty"`
	IsWinner     bool            `json:"is_winner"`
	TotalValue   decimal.Decimal `json:"total_value"`
	Items        []QuoteItemDTO  `json:"items"`
}

// ProcessResponse processo completo com agregados e conferência.
type ProcessResponse struct {
	ID               string             `json:"id"`
	FinancialEntryID string             `json:"financial_entry_id"`
	SchoolID         string             `json:"school_id"`
	Status           string             `json:"status"`
	Discount         decimal.Decimal    `json:"discount"`
	Checklist        []ChecklistItemDTO `json:"checklist"`
	ChecklistNotes   string             `json:"checklist_notes,omitempty"`
	Attachments      []AttachmentDTO    `json:"attachments,omitempty"`
	Entry            *EntryResponse     `json:"entry,omitempty"`
	Items            []ProcessItemDTO   `json:"items"`
	Quotes           []QuoteDTO         `json:"quotes"`
	Reconciliation   *ReconciliationDTO `json:"reconciliation,omitempty"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

// ImportItemsRequest texto colado ou conteúdo de CSV para importação em massa.
type ImportItemsRequest struct {
	Text string `json:"text" validate:"required"`
}

// ImportedRowDTO linha interpretada da importação.
type ImportedRowDTO struct {
	Description      string             `json:"description"`
	Quantity         decimal.Decimal    `json:"quantity"`
	Unit             string             `json:"unit"`
	WinnerUnitPrice  decimal.Decimal    `json:"winner_unit_price"`
	CompetitorPrices [2]decimal.Decimal `json:"competitor_prices"`
}

// ImportItemsResponse linhas aceitas para revisão antes de aplicar ao rascunho.
type ImportItemsResponse struct {
	Rows []ImportedRowDTO `json:"rows"`
}

// ReportValidationResponse resposta da validação pública do documento impresso.
type ReportValidationResponse struct {
	Valid       bool      `json:"valid"`
	ProcessID   string    `json:"process_id,omitempty"`
	SchoolName  string    `json:"school_name,omitempty"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status,omitempty"`
	UpdatedAt   time.Time `json:"updated_at,omitempty"`
}
