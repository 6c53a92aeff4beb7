package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/sigescola/sigescola-api/internal/domain"
	"github.com/sigescola/sigescola-api/internal/domain/entity"
	"github.com/sigescola/sigescola-api/internal/domain/repository"
	"github.com/sigescola/sigescola-api/internal/domain/visibility"
)

var _ repository.SchoolRepository = (*SchoolRepo)(nil)

// SchoolRepo implementação de SchoolRepository (usável com pool ou tx).
type SchoolRepo struct {
	q Querier
}

// NewSchoolRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewSchoolRepository(q Querier) *SchoolRepo {
	return &SchoolRepo{q: q}
}

const schoolSelect = `
	SELECT id, name, COALESCE(inep, ''), COALESCE(cnpj, ''),
	       COALESCE(conselho_escolar, ''), COALESCE(director, ''), COALESCE(secretary, ''),
	       COALESCE(address, ''), COALESCE(city, ''), COALESCE(uf, ''),
	       COALESCE(gee, ''), COALESCE(gee_id, ''), COALESCE(image_url, '')
	FROM schools`

// Create persiste a escola. INEP duplicado vira domain.ErrConflict.
func (r *SchoolRepo) Create(school *entity.School) error {
	if school.ID == "" {
		school.ID = uuid.New().String()
	}
	query := `
		INSERT INTO schools (id, name, inep, cnpj, conselho_escolar, director, secretary, address, city, uf, gee, gee_id, image_url)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`
	_, err := r.q.Exec(context.Background(), query,
		school.ID, school.Name, nullIfEmpty(school.INEP), nullIfEmpty(school.CNPJ),
		nullIfEmpty(school.ConselhoEscolar), nullIfEmpty(school.Director), nullIfEmpty(school.Secretary),
		nullIfEmpty(school.Address), nullIfEmpty(school.City), nullIfEmpty(school.UF),
		nullIfEmpty(school.GEE), nullIfEmpty(school.GEEID), nullIfEmpty(school.ImageURL),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert school: %w", err)
	}
	return nil
}

// GetByID obtém uma escola por id.
func (r *SchoolRepo) GetByID(id string) (*entity.School, error) {
	row := r.q.QueryRow(context.Background(), schoolSelect+` WHERE id = $1`, id)
	school, err := scanSchool(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get school: %w", err)
	}
	return school, nil
}

// Update regrava o cadastro da escola.
func (r *SchoolRepo) Update(school *entity.School) error {
	query := `
		UPDATE schools
		SET name = $2, inep = $3, cnpj = $4, conselho_escolar = $5, director = $6,
		    secretary = $7, address = $8, city = $9, uf = $10, gee = $11, gee_id = $12, image_url = $13
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		school.ID, school.Name, nullIfEmpty(school.INEP), nullIfEmpty(school.CNPJ),
		nullIfEmpty(school.ConselhoEscolar), nullIfEmpty(school.Director), nullIfEmpty(school.Secretary),
		nullIfEmpty(school.Address), nullIfEmpty(school.City), nullIfEmpty(school.UF),
		nullIfEmpty(school.GEE), nullIfEmpty(school.GEEID), nullIfEmpty(school.ImageURL),
	)
	if err != nil {
		return fmt.Errorf("update school: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// List devolve as escolas visíveis no escopo, ordenadas por nome.
func (r *SchoolRepo) List(scope visibility.Scope) ([]*entity.School, error) {
	query := schoolSelect
	var args []any
	switch scope.Kind() {
	case visibility.KindAll:
		// sem restrição
	case visibility.KindNone:
		query += ` WHERE FALSE`
	default:
		args = append(args, scope.SchoolIDs())
		query += ` WHERE id = ANY($1)`
	}
	query += ` ORDER BY name`
	return r.list(query, args)
}

// ListByGEE devolve as escolas de uma gerência executiva.
func (r *SchoolRepo) ListByGEE(gee string) ([]*entity.School, error) {
	return r.list(schoolSelect+` WHERE gee = $1 ORDER BY name`, []any{gee})
}

// Delete remove a escola.
func (r *SchoolRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM schools WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete school: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *SchoolRepo) list(query string, args []any) ([]*entity.School, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list schools: %w", err)
	}
	defer rows.Close()
	var list []*entity.School
	for rows.Next() {
		school, err := scanSchool(rows)
		if err != nil {
			return nil, fmt.Errorf("scan school: %w", err)
		}
		list = append(list, school)
	}
	return list, rows.Err()
}

func scanSchool(row pgx.Row) (*entity.School, error) {
	var s entity.School
	err := row.Scan(
		&s.ID, &s.Name, &s.INEP, &s.CNPJ,
		&s.ConselhoEscolar, &s.Director, &s.Secretary,
		&s.Address, &s.City, &s.UF,
		&s.GEE, &s.GEEID, &s.ImageURL,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
