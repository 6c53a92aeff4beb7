package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sigescola/sigescola-api/internal/application/prestacao"
	"github.com/sigescola/sigescola-api/internal/domain/repository"
)

var _ prestacao.TxRunner = (*TxRunner)(nil)

// TxRunner executa callbacks dentro de uma transação PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner constrói o runner com o pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia a transação, executa fn com repos atados à tx e faz Commit ou
// Rollback. Usado no salvamento do processo de prestação de contas.
func (r *TxRunner) Run(ctx context.Context, fn func(
	entryRepo repository.FinancialEntryRepository,
	processRepo repository.AccountabilityRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	entryRepo := NewFinancialEntryRepository(tx)
	processRepo := NewAccountabilityRepository(tx)

	if err := fn(entryRepo, processRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
