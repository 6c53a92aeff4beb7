package entity

// BankInfo dados bancários do fornecedor para pagamento.
type BankInfo struct {
	Bank    string `json:"bank"`
	Agency  string `json:"agency"`
	Account string `json:"account"`
}

// Supplier representa um fornecedor cadastrado.
type Supplier struct {
	ID       string
	Name     string
	CNPJ     string
	Email    string
	Phone    string
	CEP      string
	Address  string
	City     string
	UF       string
	BankInfo *BankInfo
	StampURL string
}
