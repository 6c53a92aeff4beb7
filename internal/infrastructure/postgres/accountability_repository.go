package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/sigescola/sigescola-api/internal/domain"
	"github.com/sigescola/sigescola-api/internal/domain/entity"
	"github.com/sigescola/sigescola-api/internal/domain/repository"
	"github.com/sigescola/sigescola-api/internal/domain/visibility"
)

var _ repository.AccountabilityRepository = (*AccountabilityRepo)(nil)

// AccountabilityRepo implementação de AccountabilityRepository (usável com pool ou tx).
type AccountabilityRepo struct {
	q Querier
}

// NewAccountabilityRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewAccountabilityRepository(q Querier) *AccountabilityRepo {
	return &AccountabilityRepo{q: q}
}

// Create persiste o cabeçalho do processo. O índice único em
// financial_entry_id garante no máximo um processo por lançamento; a violação
// vira domain.ErrEntryAlreadyProcessed para o caso de dois salvamentos
// concorrentes do mesmo lançamento.
func (r *AccountabilityRepo) Create(process *entity.AccountabilityProcess) error {
	if process.ID == "" {
		process.ID = uuid.New().String()
	}
	checklist, err := json.Marshal(process.Checklist)
	if err != nil {
		return fmt.Errorf("marshal checklist: %w", err)
	}
	attachments, err := json.Marshal(process.Attachments)
	if err != nil {
		return fmt.Errorf("marshal attachments: %w", err)
	}
	query := `
		INSERT INTO accountability_processes (
			id, financial_entry_id, school_id, status, discount,
			checklist, checklist_notes, attachments, report_token,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`
	_, err = r.q.Exec(context.Background(), query,
		process.ID, process.FinancialEntryID, process.SchoolID, process.Status,
		process.Discount, checklist, nullIfEmpty(process.ChecklistNotes),
		attachments, process.ReportToken,
		process.CreatedAt, process.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEntryAlreadyProcessed
		}
		return fmt.Errorf("insert accountability process: %w", err)
	}
	return nil
}

// Update regrava o cabeçalho do processo.
func (r *AccountabilityRepo) Update(process *entity.AccountabilityProcess) error {
	checklist, err := json.Marshal(process.Checklist)
	if err != nil {
		return fmt.Errorf("marshal checklist: %w", err)
	}
	attachments, err := json.Marshal(process.Attachments)
	if err != nil {
		return fmt.Errorf("marshal attachments: %w", err)
	}
	query := `
		UPDATE accountability_processes
		SET status          = $2,
		    discount        = $3,
		    checklist       = $4,
		    checklist_notes = $5,
		    attachments     = $6,
		    updated_at      = $7
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		process.ID, process.Status, process.Discount,
		checklist, nullIfEmpty(process.ChecklistNotes), attachments,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("update accountability process: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// ReplaceItems apaga e regrava os itens do lote. Chamar dentro da mesma
// transação que ReplaceQuotes: o salvamento do processo é tudo-ou-nada.
func (r *AccountabilityRepo) ReplaceItems(processID string, items []entity.AccountabilityItem) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM accountability_items WHERE process_id = $1`, processID); err != nil {
		return fmt.Errorf("delete accountability items: %w", err)
	}
	for i := range items {
		it := &items[i]
		if it.ID == "" {
			it.ID = uuid.New().String()
		}
		it.ProcessID = processID
		_, err := r.q.Exec(ctx, `
			INSERT INTO accountability_items (id, process_id, position, description, quantity, unit, winner_unit_price)
			VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			it.ID, processID, i, it.Description, it.Quantity, it.Unit, it.WinnerUnitPrice,
		)
		if err != nil {
			return fmt.Errorf("insert accountability item: %w", err)
		}
	}
	return nil
}

// ReplaceQuotes apaga e regrava as cotações e suas linhas. As linhas de
// accountability_quote_items caem por ON DELETE CASCADE.
func (r *AccountabilityRepo) ReplaceQuotes(processID string, quotes []entity.AccountabilityQuote) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM accountability_quotes WHERE process_id = $1`, processID); err != nil {
		return fmt.Errorf("delete accountability quotes: %w", err)
	}
	for qi := range quotes {
		quote := &quotes[qi]
		if quote.ID == "" {
			quote.ID = uuid.New().String()
		}
		quote.ProcessID = processID
		_, err := r.q.Exec(ctx, `
			INSERT INTO accountability_quotes (id, process_id, supplier_id, supplier_name, supplier_cnpj, is_winner, total_value)
			VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			quote.ID, processID, nullIfEmpty(quote.SupplierID), quote.SupplierName,
			nullIfEmpty(quote.SupplierCNPJ), quote.IsWinner, quote.TotalValue,
		)
		if err != nil {
			return fmt.Errorf("insert accountability quote: %w", err)
		}
		for li := range quote.Items {
			line := &quote.Items[li]
			if line.ID == "" {
				line.ID = uuid.New().String()
			}
			line.QuoteID = quote.ID
			_, err := r.q.Exec(ctx, `
				INSERT INTO accountability_quote_items (id, quote_id, item_id, position, description, quantity, unit, unit_price)
				VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
				line.ID, quote.ID, line.ItemID, li, line.Description, line.Quantity, line.Unit, line.UnitPrice,
			)
			if err != nil {
				return fmt.Errorf("insert accountability quote item: %w", err)
			}
		}
	}
	return nil
}

const processSelect = `
	SELECT id, financial_entry_id, school_id, status, discount,
	       COALESCE(checklist, '[]'::jsonb), COALESCE(checklist_notes, ''),
	       COALESCE(attachments, '[]'::jsonb), report_token,
	       created_at, updated_at
	FROM accountability_processes`

// GetByID carrega o processo completo: cabeçalho, lançamento, itens e cotações.
func (r *AccountabilityRepo) GetByID(id string) (*entity.AccountabilityProcess, error) {
	return r.getOne(processSelect+` WHERE id = $1`, id)
}

// GetByEntryID localiza o processo de um lançamento.
func (r *AccountabilityRepo) GetByEntryID(entryID string) (*entity.AccountabilityProcess, error) {
	return r.getOne(processSelect+` WHERE financial_entry_id = $1`, entryID)
}

// GetByReportToken localiza o processo pelo token do documento impresso.
func (r *AccountabilityRepo) GetByReportToken(token string) (*entity.AccountabilityProcess, error) {
	return r.getOne(processSelect+` WHERE report_token = $1`, token)
}

func (r *AccountabilityRepo) getOne(query string, arg any) (*entity.AccountabilityProcess, error) {
	row := r.q.QueryRow(context.Background(), query, arg)
	process, err := scanProcess(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get accountability process: %w", err)
	}
	if err := r.loadAggregates(process); err != nil {
		return nil, err
	}
	return process, nil
}

// List devolve os processos do escopo, sem agregados (listagem leve).
func (r *AccountabilityRepo) List(scope visibility.Scope, status string, limit, offset int) ([]*entity.AccountabilityProcess, error) {
	query := processSelect
	var args []any

	switch scope.Kind() {
	case visibility.KindAll:
		query += ` WHERE TRUE`
	case visibility.KindNone:
		query += ` WHERE FALSE`
	default:
		args = append(args, scope.SchoolIDs())
		query += fmt.Sprintf(` WHERE school_id = ANY($%d)`, len(args))
	}
	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(` AND status = $%d`, len(args))
	}
	query += fmt.Sprintf(` ORDER BY updated_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list accountability processes: %w", err)
	}
	defer rows.Close()
	var list []*entity.AccountabilityProcess
	for rows.Next() {
		process, err := scanProcess(rows)
		if err != nil {
			return nil, fmt.Errorf("scan accountability process: %w", err)
		}
		list = append(list, process)
	}
	return list, rows.Err()
}

// Delete remove o processo; itens e cotações caem por ON DELETE CASCADE.
func (r *AccountabilityRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM accountability_processes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete accountability process: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *AccountabilityRepo) loadAggregates(process *entity.AccountabilityProcess) error {
	ctx := context.Background()

	entryRepo := NewFinancialEntryRepository(r.q)
	entry, err := entryRepo.GetByID(process.FinancialEntryID)
	if err != nil {
		return err
	}
	process.Entry = entry

	rows, err := r.q.Query(ctx, `
		SELECT id, process_id, description, quantity, unit, winner_unit_price
		FROM accountability_items WHERE process_id = $1 ORDER BY position`, process.ID)
	if err != nil {
		return fmt.Errorf("list accountability items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.AccountabilityItem
		if err := rows.Scan(&it.ID, &it.ProcessID, &it.Description, &it.Quantity, &it.Unit, &it.WinnerUnitPrice); err != nil {
			return fmt.Errorf("scan accountability item: %w", err)
		}
		process.Items = append(process.Items, it)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	quoteRows, err := r.q.Query(ctx, `
		SELECT id, process_id, COALESCE(supplier_id, ''), supplier_name, COALESCE(supplier_cnpj, ''), is_winner, total_value
		FROM accountability_quotes WHERE process_id = $1 ORDER BY is_winner DESC, id`, process.ID)
	if err != nil {
		return fmt.Errorf("list accountability quotes: %w", err)
	}
	defer quoteRows.Close()
	for quoteRows.Next() {
		var quote entity.AccountabilityQuote
		if err := quoteRows.Scan(&quote.ID, &quote.ProcessID, &quote.SupplierID, &quote.SupplierName,
			&quote.SupplierCNPJ, &quote.IsWinner, &quote.TotalValue); err != nil {
			return fmt.Errorf("scan accountability quote: %w", err)
		}
		process.Quotes = append(process.Quotes, quote)
	}
	if err := quoteRows.Err(); err != nil {
		return err
	}

	for i := range process.Quotes {
		quote := &process.Quotes[i]
		lineRows, err := r.q.Query(ctx, `
			SELECT id, quote_id, item_id, description, quantity, unit, unit_price
			FROM accountability_quote_items WHERE quote_id = $1 ORDER BY position`, quote.ID)
		if err != nil {
			return fmt.Errorf("list accountability quote items: %w", err)
		}
		for lineRows.Next() {
			var line entity.AccountabilityQuoteItem
			if err := lineRows.Scan(&line.ID, &line.QuoteID, &line.ItemID, &line.Description,
				&line.Quantity, &line.Unit, &line.UnitPrice); err != nil {
				lineRows.Close()
				return fmt.Errorf("scan accountability quote item: %w", err)
			}
			quote.Items = append(quote.Items, line)
		}
		lineRows.Close()
		if err := lineRows.Err(); err != nil {
			return err
		}
	}
	return nil
}

func scanProcess(row pgx.Row) (*entity.AccountabilityProcess, error) {
	var p entity.AccountabilityProcess
	var checklist, attachments []byte
	err := row.Scan(
		&p.ID, &p.FinancialEntryID, &p.SchoolID, &p.Status, &p.Discount,
		&checklist, &p.ChecklistNotes, &attachments, &p.ReportToken,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(checklist) > 0 {
		if err := json.Unmarshal(checklist, &p.Checklist); err != nil {
			return nil, fmt.Errorf("unmarshal checklist: %w", err)
		}
	}
	if len(attachments) > 0 {
		if err := json.Unmarshal(attachments, &p.Attachments); err != nil {
			return nil, fmt.Errorf("unmarshal attachments: %w", err)
		}
	}
	return &p, nil
}
