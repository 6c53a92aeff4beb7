package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryRequest criação/edição de lançamento financeiro. O valor vem sempre
// positivo; o sinal é derivado do tipo no caso de uso.
type EntryRequest struct {
	SchoolID        string          `json:"school_id" validate:"required"`
	ProgramID       string          `json:"program_id"`
	RubricID        string          `json:"rubric_id"`
	SupplierID      string          `json:"supplier_id"`
	Description     string          `json:"description" validate:"required"`
	Value           decimal.Decimal `json:"value" validate:"required"`
	Type            string          `json:"type" validate:"required,oneof=Entrada Saída"`
	Status          string          `json:"status"`
	Nature          string          `json:"nature"`
	Category        string          `json:"category"`
	Date            time.Time       `json:"date" validate:"required"`
	InvoiceDate     *time.Time      `json:"invoice_date"`
	PaymentDate     *time.Time      `json:"payment_date"`
	DocumentNumber  string          `json:"document_number"`
	AuthNumber      string          `json:"auth_number"`
	BankAccountID   string          `json:"bank_account_id"`
	PaymentMethodID string          `json:"payment_method_id"`
	Attachments     []AttachmentDTO `json:"attachments"`
}

// EntryFilterRequest filtros de listagem de lançamentos. As datas vêm como
// string (YYYY-MM-DD) porque o parser de query do Fiber não converte time.Time.
type EntryFilterRequest struct {
	SchoolID  string `query:"school_id"`
	ProgramID string `query:"program_id"`
	RubricID  string `query:"rubric_id"`
	Status    string `query:"status"`
	Type      string `query:"type"`
	Nature    string `query:"nature"`
	From      string `query:"from"`
	To        string `query:"to"`
	Search    string `query:"search"`
	PageRequest
}

// EntryResponse lançamento com os nomes denormalizados dos relacionamentos.
type EntryResponse struct {
	ID              string          `json:"id"`
	SchoolID        string          `json:"school_id"`
	SchoolName      string          `json:"school_name,omitempty"`
	ProgramID       string          `json:"program_id,omitempty"`
	ProgramName     string          `json:"program_name,omitempty"`
	RubricID        string          `json:"rubric_id,omitempty"`
	RubricName      string          `json:"rubric_name,omitempty"`
	SupplierID      string          `json:"supplier_id,omitempty"`
	SupplierName    string          `json:"supplier_name,omitempty"`
	SupplierCNPJ    string          `json:"supplier_cnpj,omitempty"`
	Description     string          `json:"description"`
	Value           decimal.Decimal `json:"value"`
	Type            string          `json:"type"`
	Status          string          `json:"status"`
	Nature          string          `json:"nature,omitempty"`
	Category        string          `json:"category,omitempty"`
	Date            time.Time       `json:"date"`
	InvoiceDate     *time.Time      `json:"invoice_date,omitempty"`
	PaymentDate     *time.Time      `json:"payment_date,omitempty"`
	DocumentNumber  string          `json:"document_number,omitempty"`
	AuthNumber      string          `json:"auth_number,omitempty"`
	BankAccountID   string          `json:"bank_account_id,omitempty"`
	PaymentMethodID string          `json:"payment_method_id,omitempty"`
	Attachments     []AttachmentDTO `json:"attachments,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
