package dto

// BankInfoDTO dados bancários do fornecedor.
type BankInfoDTO struct {
	Bank    string `json:"bank"`
	Agency  string `json:"agency"`
	Account string `json:"account"`
}

// SupplierRequest cadastro/edição de fornecedor.
type SupplierRequest struct {
	Name     string       `json:"name" validate:"required"`
	CNPJ     string       `json:"cnpj" validate:"required"`
	Email    string       `json:"email"`
	Phone    string       `json:"phone"`
	CEP      string       `json:"cep"`
	Address  string       `json:"address"`
	City     string       `json:"city"`
	UF       string       `json:"uf"`
	BankInfo *BankInfoDTO `json:"bank_info"`
	StampURL string       `json:"stamp_url"`
}

// SupplierResponse fornecedor cadastrado.
type SupplierResponse struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	CNPJ     string       `json:"cnpj"`
	Email    string       `json:"email,omitempty"`
	Phone    string       `json:"phone,omitempty"`
	CEP      string       `json:"cep,omitempty"`
	Address  string       `json:"address,omitempty"`
	City     string       `json:"city,omitempty"`
	UF       string       `json:"uf,omitempty"`
	BankInfo *BankInfoDTO `json:"bank_info,omitempty"`
	StampURL string       `json:"stamp_url,omitempty"`
}

// SchoolResponse escola visível no escopo do usuário.
type SchoolResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	INEP            string `json:"inep,omitempty"`
	CNPJ            string `json:"cnpj,omitempty"`
	ConselhoEscolar string `json:"conselho_escolar,omitempty"`
	Director        string `json:"director,omitempty"`
	City            string `json:"city,omitempty"`
	UF              string `json:"uf,omitempty"`
	GEE             string `json:"gee,omitempty"`
	ImageURL        string `json:"image_url,omitempty"`
}

// ProgramResponse programa de repasse.
type ProgramResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// RubricResponse rubrica orçamentária.
type RubricResponse struct {
	ID            string `json:"id"`
	ProgramID     string `json:"program_id"`
	Name          string `json:"name"`
	DefaultNature string `json:"default_nature,omitempty"`
	SchoolID      string `json:"school_id,omitempty"`
}
