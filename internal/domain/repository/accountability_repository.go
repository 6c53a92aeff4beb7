package repository

import (
	"github.com/sigescola/sigescola-api/internal/domain/entity"
	"github.com/sigescola/sigescola-api/internal/domain/visibility"
)

// AccountabilityRepository define o porto de persistência para processos de
// prestação de contas e seus agregados (itens e cotações).
type AccountabilityRepository interface {
	Create(process *entity.AccountabilityProcess) error
	// Update persiste o cabeçalho do processo: status, desconto, checklist,
	// observações e anexos. Itens e cotações vão pelos Replace*.
	Update(process *entity.AccountabilityProcess) error
	// ReplaceItems apaga e regrava os itens do processo. Dentro de uma
	// transação junto com ReplaceQuotes para o salvamento atômico.
	ReplaceItems(processID string, items []entity.AccountabilityItem) error
	// ReplaceQuotes apaga e regrava as três cotações e suas linhas.
	ReplaceQuotes(processID string, quotes []entity.AccountabilityQuote) error
	// GetByID carrega o processo com lançamento, itens e cotações.
	GetByID(id string) (*entity.AccountabilityProcess, error)
	GetByEntryID(entryID string) (*entity.AccountabilityProcess, error)
	// GetByReportToken localiza o processo pelo token do QR do documento
	// impresso, para a validação pública.
	GetByReportToken(token string) (*entity.AccountabilityProcess, error)
	List(scope visibility.Scope, status string, limit, offset int) ([]*entity.AccountabilityProcess, error)
	Delete(id string) error
}
