package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/sigescola/sigescola-api/internal/domain/entity"
	"github.com/sigescola/sigescola-api/internal/domain/repository"
)

var _ repository.ProgramRepository = (*ProgramRepo)(nil)

// ProgramRepo implementação de ProgramRepository (usável com pool ou tx).
type ProgramRepo struct {
	q Querier
}

// NewProgramRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewProgramRepository(q Querier) *ProgramRepo {
	return &ProgramRepo{q: q}
}

// Create persiste o programa.
func (r *ProgramRepo) Create(program *entity.Program) error {
	if program.ID == "" {
		program.ID = uuid.New().String()
	}
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO programs (id, name, description) VALUES ($1,$2,$3)`,
		program.ID, program.Name, nullIfEmpty(program.Description))
	if err != nil {
		return fmt.Errorf("insert program: %w", err)
	}
	return nil
}

// GetByID obtém um programa por id.
func (r *ProgramRepo) GetByID(id string) (*entity.Program, error) {
	var p entity.Program
	err := r.q.QueryRow(context.Background(),
		`SELECT id, name, COALESCE(description, '') FROM programs WHERE id = $1`, id).
		Scan(&p.ID, &p.Name, &p.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get program: %w", err)
	}
	return &p, nil
}

// Update regrava o programa.
func (r *ProgramRepo) Update(program *entity.Program) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE programs SET name = $2, description = $3 WHERE id = $1`,
		program.ID, program.Name, nullIfEmpty(program.Description))
	if err != nil {
		return fmt.Errorf("update program: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// List devolve todos os programas, ordenados por nome.
func (r *ProgramRepo) List() ([]*entity.Program, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, name, COALESCE(description, '') FROM programs ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list programs: %w", err)
	}
	defer rows.Close()
	var list []*entity.Program
	for rows.Next() {
		var p entity.Program
		if err := rows.Scan(&p.ID, &p.Name, &p.Description); err != nil {
			return nil, fmt.Errorf("scan program: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Delete remove o programa.
func (r *ProgramRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM programs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete program: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// CreateRubric persiste uma rubrica do programa.
func (r *ProgramRepo) CreateRubric(rubric *entity.Rubric) error {
	if rubric.ID == "" {
		rubric.ID = uuid.New().String()
	}
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO rubrics (id, program_id, name, default_nature, school_id) VALUES ($1,$2,$3,$4,$5)`,
		rubric.ID, rubric.ProgramID, rubric.Name, nullIfEmpty(rubric.DefaultNature), nullIfEmpty(rubric.SchoolID))
	if err != nil {
		return fmt.Errorf("insert rubric: %w", err)
	}
	return nil
}

// GetRubricByID obtém uma rubrica por id.
func (r *ProgramRepo) GetRubricByID(id string) (*entity.Rubric, error) {
	var rb entity.Rubric
	err := r.q.QueryRow(context.Background(),
		`SELECT id, program_id, name, COALESCE(default_nature, ''), COALESCE(school_id, '')
		 FROM rubrics WHERE id = $1`, id).
		Scan(&rb.ID, &rb.ProgramID, &rb.Name, &rb.DefaultNature, &rb.SchoolID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get rubric: %w", err)
	}
	return &rb, nil
}

// ListRubricsByProgram devolve as rubricas de um programa (globais e por escola).
func (r *ProgramRepo) ListRubricsByProgram(programID string) ([]*entity.Rubric, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, program_id, name, COALESCE(default_nature, ''), COALESCE(school_id, '')
		 FROM rubrics WHERE program_id = $1 ORDER BY name`, programID)
	if err != nil {
		return nil, fmt.Errorf("list rubrics: %w", err)
	}
	defer rows.Close()
	var list []*entity.Rubric
	for rows.Next() {
		var rb entity.Rubric
		if err := rows.Scan(&rb.ID, &rb.ProgramID, &rb.Name, &rb.DefaultNature, &rb.SchoolID); err != nil {
			return nil, fmt.Errorf("scan rubric: %w", err)
		}
		list = append(list, &rb)
	}
	return list, rows.Err()
}
