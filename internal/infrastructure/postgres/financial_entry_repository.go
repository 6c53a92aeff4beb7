package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/sigescola/sigescola-api/internal/domain/entity"
	"github.com/sigescola/sigescola-api/internal/domain/repository"
	"github.com/sigescola/sigescola-api/internal/domain/visibility"
)

var _ repository.FinancialEntryRepository = (*FinancialEntryRepo)(nil)

// FinancialEntryRepo implementação de FinancialEntryRepository (usável com pool ou tx).
type FinancialEntryRepo struct {
	q Querier
}

// NewFinancialEntryRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewFinancialEntryRepository(q Querier) *FinancialEntryRepo {
	return &FinancialEntryRepo{q: q}
}

const entrySelect = `
	SELECT e.id, e.school_id, COALESCE(s.name, ''),
	       COALESCE(e.program_id, ''), COALESCE(p.name, ''),
	       COALESCE(e.rubric_id, ''), COALESCE(r.name, ''),
	       COALESCE(e.supplier_id, ''), COALESCE(f.name, ''), COALESCE(f.cnpj, ''),
	       e.description, e.value, e.type, e.status,
	       COALESCE(e.nature, ''), COALESCE(e.category, ''),
	       e.date, e.invoice_date, e.payment_date,
	       COALESCE(e.document_number, ''), COALESCE(e.auth_number, ''),
	       COALESCE(e.bank_account_id, ''), COALESCE(e.payment_method_id, ''),
	       COALESCE(e.attachments, '[]'::jsonb),
	       e.created_at, e.updated_at
	FROM financial_entries e
	JOIN schools s ON s.id = e.school_id
	LEFT JOIN programs p ON p.id = e.program_id
	LEFT JOIN rubrics r ON r.id = e.rubric_id
	LEFT JOIN suppliers f ON f.id = e.supplier_id`

// Create persiste o lançamento. Gera o id quando vazio.
func (r *FinancialEntryRepo) Create(entry *entity.FinancialEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	attachments, err := json.Marshal(entry.Attachments)
	if err != nil {
		return fmt.Errorf("marshal attachments: %w", err)
	}
	query := `
		INSERT INTO financial_entries (
			id, school_id, program_id, rubric_id, supplier_id, description,
			value, type, status, nature, category, date, invoice_date,
			payment_date, document_number, auth_number, bank_account_id,
			payment_method_id, attachments, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21)`
	_, err = r.q.Exec(context.Background(), query,
		entry.ID, entry.SchoolID, nullIfEmpty(entry.ProgramID), nullIfEmpty(entry.RubricID),
		nullIfEmpty(entry.SupplierID), entry.Description,
		entry.Value, entry.Type, entry.Status, nullIfEmpty(entry.Nature), nullIfEmpty(entry.Category),
		entry.Date, entry.InvoiceDate, entry.PaymentDate,
		nullIfEmpty(entry.DocumentNumber), nullIfEmpty(entry.AuthNumber),
		nullIfEmpty(entry.BankAccountID), nullIfEmpty(entry.PaymentMethodID),
		attachments, entry.CreatedAt, entry.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert financial entry: %w", err)
	}
	return nil
}

// GetByID obtém um lançamento com os nomes denormalizados dos relacionamentos.
func (r *FinancialEntryRepo) GetByID(id string) (*entity.FinancialEntry, error) {
	row := r.q.QueryRow(context.Background(), entrySelect+` WHERE e.id = $1`, id)
	entry, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get financial entry: %w", err)
	}
	return entry, nil
}

// Update regrava os campos editáveis do lançamento.
func (r *FinancialEntryRepo) Update(entry *entity.FinancialEntry) error {
	attachments, err := json.Marshal(entry.Attachments)
	if err != nil {
		return fmt.Errorf("marshal attachments: %w", err)
	}
	query := `
		UPDATE financial_entries
		SET school_id         = $2,
		    program_id        = $3,
		    rubric_id         = $4,
		    supplier_id       = $5,
		    description       = $6,
		    value             = $7,
		    type              = $8,
		    status            = $9,
		    nature            = $10,
		    category          = $11,
		    date              = $12,
		    invoice_date      = $13,
		    payment_date      = $14,
		    document_number   = $15,
		    auth_number       = $16,
		    bank_account_id   = $17,
		    payment_method_id = $18,
		    attachments       = $19,
		    updated_at        = $20
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.SchoolID, nullIfEmpty(entry.ProgramID), nullIfEmpty(entry.RubricID),
		nullIfEmpty(entry.SupplierID), entry.Description,
		entry.Value, entry.Type, entry.Status, nullIfEmpty(entry.Nature), nullIfEmpty(entry.Category),
		entry.Date, entry.InvoiceDate, entry.PaymentDate,
		nullIfEmpty(entry.DocumentNumber), nullIfEmpty(entry.AuthNumber),
		nullIfEmpty(entry.BankAccountID), nullIfEmpty(entry.PaymentMethodID),
		attachments, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("update financial entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// UpdateStatus altera apenas o status do lançamento.
func (r *FinancialEntryRepo) UpdateStatus(id, status string) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE financial_entries SET status = $2, updated_at = $3 WHERE id = $1`,
		id, status, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update entry status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// List aplica o escopo de visibilidade e os filtros opcionais.
func (r *FinancialEntryRepo) List(filter repository.EntryFilter, limit, offset int) ([]*entity.FinancialEntry, error) {
	where, args := entryWhere(filter, nil)
	query := entrySelect + where + fmt.Sprintf(" ORDER BY e.date DESC, e.created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)
	return r.list(query, args)
}

// ListWithoutProcess devolve lançamentos de saída não estornados e ainda sem
// processo de prestação de contas.
func (r *FinancialEntryRepo) ListWithoutProcess(filter repository.EntryFilter, limit, offset int) ([]*entity.FinancialEntry, error) {
	filter.Type = entity.EntryTypeSaida
	extra := []string{
		fmt.Sprintf("e.status <> '%s'", entity.StatusEstornado),
		"NOT EXISTS (SELECT 1 FROM accountability_processes ap WHERE ap.financial_entry_id = e.id)",
	}
	where, args := entryWhere(filter, extra)
	query := entrySelect + where + fmt.Sprintf(" ORDER BY e.date DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)
	return r.list(query, args)
}

// Delete remove o lançamento definitivamente (exclusão física, só Administrador).
func (r *FinancialEntryRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM financial_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete financial entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *FinancialEntryRepo) list(query string, args []any) ([]*entity.FinancialEntry, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list financial entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.FinancialEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan financial entry: %w", err)
		}
		list = append(list, entry)
	}
	return list, rows.Err()
}

// entryWhere monta a cláusula WHERE com placeholders numerados. O escopo de
// visibilidade entra sempre; KindNone vira condição impossível em vez de
// consulta irrestrita.
func entryWhere(filter repository.EntryFilter, extra []string) (string, []any) {
	var conds []string
	var args []any

	switch filter.Scope.Kind() {
	case visibility.KindAll:
		// sem restrição de escola
	case visibility.KindNone:
		conds = append(conds, "FALSE")
	default:
		args = append(args, filter.Scope.SchoolIDs())
		conds = append(conds, fmt.Sprintf("e.school_id = ANY($%d)", len(args)))
	}
	if filter.SchoolID != "" {
		args = append(args, filter.SchoolID)
		conds = append(conds, fmt.Sprintf("e.school_id = $%d", len(args)))
	}
	if filter.ProgramID != "" {
		args = append(args, filter.ProgramID)
		conds = append(conds, fmt.Sprintf("e.program_id = $%d", len(args)))
	}
	if filter.RubricID != "" {
		args = append(args, filter.RubricID)
		conds = append(conds, fmt.Sprintf("e.rubric_id = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conds = append(conds, fmt.Sprintf("e.status = $%d", len(args)))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		conds = append(conds, fmt.Sprintf("e.type = $%d", len(args)))
	}
	if filter.Nature != "" {
		args = append(args, filter.Nature)
		conds = append(conds, fmt.Sprintf("e.nature = $%d", len(args)))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		conds = append(conds, fmt.Sprintf("e.date >= $%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		conds = append(conds, fmt.Sprintf("e.date <= $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		conds = append(conds, fmt.Sprintf("(e.description ILIKE $%d OR f.name ILIKE $%d)", len(args), len(args)))
	}
	conds = append(conds, extra...)

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func scanEntry(row pgx.Row) (*entity.FinancialEntry, error) {
	var e entity.FinancialEntry
	var attachments []byte
	err := row.Scan(
		&e.ID, &e.SchoolID, &e.SchoolName,
		&e.ProgramID, &e.ProgramName,
		&e.RubricID, &e.RubricName,
		&e.SupplierID, &e.SupplierName, &e.SupplierCNPJ,
		&e.Description, &e.Value, &e.Type, &e.Status,
		&e.Nature, &e.Category,
		&e.Date, &e.InvoiceDate, &e.PaymentDate,
		&e.DocumentNumber, &e.AuthNumber,
		&e.BankAccountID, &e.PaymentMethodID,
		&attachments,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(attachments) > 0 {
		if err := json.Unmarshal(attachments, &e.Attachments); err != nil {
			return nil, fmt.Errorf("unmarshal attachments: %w", err)
		}
	}
	return &e, nil
}
