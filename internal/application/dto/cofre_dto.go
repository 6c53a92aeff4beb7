package dto

import "time"

// DocumentChecklistRequest conferência de um documento do cofre.
type DocumentChecklistRequest struct {
	SchoolID       string `json:"school_id" validate:"required"`
	HasSignature   bool   `json:"has_signature"`
	HasStamp       bool   `json:"has_stamp"`
	IsLegible      bool   `json:"is_legible"`
	IsCorrectValue bool   `json:"is_correct_value"`
	IsCorrectDate  bool   `json:"is_correct_date"`
	Notes          string `json:"notes"`
}

// DocumentChecklistResponse conferência com o status derivado.
type DocumentChecklistResponse struct {
	AttachmentID   string    `json:"attachment_id"`
	SchoolID       string    `json:"school_id"`
	HasSignature   bool      `json:"has_signature"`
	HasStamp       bool      `json:"has_stamp"`
	IsLegible      bool      `json:"is_legible"`
	IsCorrectValue bool      `json:"is_correct_value"`
	IsCorrectDate  bool      `json:"is_correct_date"`
	Notes          string    `json:"notes,omitempty"`
	CheckedBy      string    `json:"checked_by,omitempty"`
	Status         string    `json:"status"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// VaultDocumentResponse documento do cofre: anexo + status de conferência.
type VaultDocumentResponse struct {
	Attachment AttachmentDTO              `json:"attachment"`
	EntryID    string                     `json:"entry_id"`
	SchoolID   string                     `json:"school_id"`
	Status     string                     `json:"status"`
	Checklist  *DocumentChecklistResponse `json:"checklist,omitempty"`
}

// VaultSummaryResponse contadores por status de conferência.
type VaultSummaryResponse struct {
	Total     int `json:"total"`
	Validado  int `json:"validado"`
	Ressalvas int `json:"ressalvas"`
	Pendente  int `json:"pendente"`
}

// VaultListResponse listagem do cofre com o resumo.
type VaultListResponse struct {
	Documents []VaultDocumentResponse `json:"documents"`
	Summary   VaultSummaryResponse    `json:"summary"`
}
