package entity

import "time"

// Status derivado de conferência no cofre de documentos.
const (
	DocValidado  = "Validado"  // todos os critérios atendidos
	DocRessalvas = "Ressalvas" // conferido com pendências
	DocPendente  = "Pendente"  // sem conferência registrada
)

// DocumentChecklist é a conferência de um anexo no cofre de documentos.
// Conceito distinto do checklist do processo de prestação de contas: aqui os
// critérios são por documento (assinatura, carimbo, legibilidade, valor, data).
type DocumentChecklist struct {
	AttachmentID   string
	SchoolID       string
	HasSignature   bool
	HasStamp       bool
	IsLegible      bool
	IsCorrectValue bool
	IsCorrectDate  bool
	Notes          string
	CheckedBy      string
	UpdatedAt      time.Time
}

// Status deriva o estado de conferência do documento.
func (c *DocumentChecklist) Status() string {
	if c == nil {
		return DocPendente
	}
	checks := []bool{c.HasSignature, c.HasStamp, c.IsLegible, c.IsCorrectValue, c.IsCorrectDate}
	passed := 0
	for _, ok := range checks {
		if ok {
			passed++
		}
	}
	// Registro existente sem nenhum critério atendido ainda conta como
	// conferido com ressalvas; Pendente é só a ausência de conferência.
	if passed == len(checks) {
		return DocValidado
	}
	return DocRessalvas
}
