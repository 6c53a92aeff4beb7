package repository

import (
	"time"

	"github.com/sigescola/sigescola-api/internal/domain/entity"
	"github.com/sigescola/sigescola-api/internal/domain/visibility"
)

// EntryFilter parametriza as listagens de lançamentos. O Scope é sempre
// aplicado; os demais campos são opcionais (zero = sem filtro).
type EntryFilter struct {
	Scope     visibility.Scope
	SchoolID  string
	ProgramID string
	RubricID  string
	Status    string
	Type      string
	Nature    string
	From      *time.Time
	To        *time.Time
	Search    string
}

// FinancialEntryRepository define o porto de persistência para lançamentos
// financeiros (DIP).
type FinancialEntryRepository interface {
	Create(entry *entity.FinancialEntry) error
	GetByID(id string) (*entity.FinancialEntry, error)
	Update(entry *entity.FinancialEntry) error
	// UpdateStatus altera só o status (estorno, consolidação e reversões).
	UpdateStatus(id, status string) error
	List(filter EntryFilter, limit, offset int) ([]*entity.FinancialEntry, error)
	// ListWithoutProcess devolve lançamentos de saída ainda sem processo de
	// prestação de contas, candidatos do seletor.
	ListWithoutProcess(filter EntryFilter, limit, offset int) ([]*entity.FinancialEntry, error)
	Delete(id string) error
}
