package entity

// Program representa um programa de repasse (ex.: PDDE, PDRE).
type Program struct {
	ID          string
	Name        string
	Description string
}

// Rubric representa uma rubrica orçamentária de um programa.
type Rubric struct {
	ID            string
	ProgramID     string
	Name          string
	DefaultNature string // Custeio | Capital
	SchoolID      string // vazio quando a rubrica é global
}
