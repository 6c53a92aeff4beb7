package prestacao

import (
	"context"

	"github.com/sigescola/sigescola-api/internal/domain/entity"
	"github.com/sigescola/sigescola-api/internal/domain/prestacao"
	"github.com/sigescola/sigescola-api/internal/domain/repository"
)

// TxRunner executa uma função dentro de uma transação de BD, passando
// repositórios atados à tx. Garante o salvamento tudo-ou-nada do processo:
// cabeçalho, itens, cotações e status do lançamento na mesma transação.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		entryRepo repository.FinancialEntryRepository,
		processRepo repository.AccountabilityRepository,
	) error) error
}

// ReportGenerator gera o documento de Consolidação da Pesquisa de Preços.
type ReportGenerator interface {
	ConsolidationReport(process *entity.AccountabilityProcess, school *entity.School, validationURL string) ([]byte, error)
}

// InvoiceParser interpreta XMLs fiscais (NF-e/NFS-e) em linhas de importação.
type InvoiceParser interface {
	ParseInvoice(xmlContent []byte) ([]prestacao.ImportedRow, error)
}
