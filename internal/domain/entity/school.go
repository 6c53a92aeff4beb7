package entity

// School representa uma unidade escolar atendida pelos programas de repasse.
type School struct {
	ID              string
	Name            string
	INEP            string
	CNPJ            string
	ConselhoEscolar string
	Director        string
	Secretary       string
	Address         string
	City            string
	UF              string
	GEE             string // gerência executiva de educação (dimensão de escopo)
	GEEID           string
	ImageURL        string
}
