package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/sigescola/sigescola-api/internal/domain"
	"github.com/sigescola/sigescola-api/internal/domain/entity"
	"github.com/sigescola/sigescola-api/internal/domain/repository"
)

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// SupplierRepo implementação de SupplierRepository (usável com pool ou tx).
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

const supplierSelect = `
	SELECT id, name, cnpj, COALESCE(email, ''), COALESCE(phone, ''),
	       COALESCE(cep, ''), COALESCE(address, ''), COALESCE(city, ''), COALESCE(uf, ''),
	       bank_info, COALESCE(stamp_url, '')
	FROM suppliers`

// Create persiste o fornecedor. CNPJ duplicado vira domain.ErrConflict.
func (r *SupplierRepo) Create(supplier *entity.Supplier) error {
	if supplier.ID == "" {
		supplier.ID = uuid.New().String()
	}
	bankInfo, err := marshalBankInfo(supplier.BankInfo)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO suppliers (id, name, cnpj, email, phone, cep, address, city, uf, bank_info, stamp_url)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`
	_, err = r.q.Exec(context.Background(), query,
		supplier.ID, supplier.Name, supplier.CNPJ,
		nullIfEmpty(supplier.Email), nullIfEmpty(supplier.Phone), nullIfEmpty(supplier.CEP),
		nullIfEmpty(supplier.Address), nullIfEmpty(supplier.City), nullIfEmpty(supplier.UF),
		bankInfo, nullIfEmpty(supplier.StampURL),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

// GetByID obtém um fornecedor por id.
func (r *SupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	row := r.q.QueryRow(context.Background(), supplierSelect+` WHERE id = $1`, id)
	return scanSupplier(row)
}

// GetByCNPJ obtém um fornecedor pelo CNPJ.
func (r *SupplierRepo) GetByCNPJ(cnpj string) (*entity.Supplier, error) {
	row := r.q.QueryRow(context.Background(), supplierSelect+` WHERE cnpj = $1`, cnpj)
	return scanSupplier(row)
}

// Update regrava o cadastro do fornecedor.
func (r *SupplierRepo) Update(supplier *entity.Supplier) error {
	bankInfo, err := marshalBankInfo(supplier.BankInfo)
	if err != nil {
		return err
	}
	query := `
		UPDATE suppliers
		SET name = $2, cnpj = $3, email = $4, phone = $5, cep = $6,
		    address = $7, city = $8, uf = $9, bank_info = $10, stamp_url = $11
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		supplier.ID, supplier.Name, supplier.CNPJ,
		nullIfEmpty(supplier.Email), nullIfEmpty(supplier.Phone), nullIfEmpty(supplier.CEP),
		nullIfEmpty(supplier.Address), nullIfEmpty(supplier.City), nullIfEmpty(supplier.UF),
		bankInfo, nullIfEmpty(supplier.StampURL),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("update supplier: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// List filtra por nome ou CNPJ quando search não é vazio.
func (r *SupplierRepo) List(search string, limit, offset int) ([]*entity.Supplier, error) {
	query := supplierSelect
	var args []any
	if search != "" {
		args = append(args, "%"+search+"%")
		query += ` WHERE name ILIKE $1 OR cnpj ILIKE $1`
	}
	query += fmt.Sprintf(` ORDER BY name LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Supplier
	for rows.Next() {
		supplier, err := scanSupplier(rows)
		if err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		list = append(list, supplier)
	}
	return list, rows.Err()
}

// Delete remove o fornecedor.
func (r *SupplierRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM suppliers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete supplier: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func marshalBankInfo(info *entity.BankInfo) ([]byte, error) {
	if info == nil {
		return nil, nil
	}
	b, err := json.Marshal(info)
	if err != nil {
		return nil, fmt.Errorf("marshal bank info: %w", err)
	}
	return b, nil
}

func scanSupplier(row pgx.Row) (*entity.Supplier, error) {
	var s entity.Supplier
	var bankInfo []byte
	err := row.Scan(
		&s.ID, &s.Name, &s.CNPJ, &s.Email, &s.Phone,
		&s.CEP, &s.Address, &s.City, &s.UF,
		&bankInfo, &s.StampURL,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	if len(bankInfo) > 0 {
		s.BankInfo = &entity.BankInfo{}
		if err := json.Unmarshal(bankInfo, s.BankInfo); err != nil {
			return nil, fmt.Errorf("unmarshal bank info: %w", err)
		}
	}
	return &s, nil
}
