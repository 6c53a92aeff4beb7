package repository

import "github.com/sigescola/sigescola-api/internal/domain/entity"

// ProgramRepository define o porto de persistência para programas de repasse
// e suas rubricas (DIP).
type ProgramRepository interface {
	Create(program *entity.Program) error
	GetByID(id string) (*entity.Program, error)
	Update(program *entity.Program) error
	List() ([]*entity.Program, error)
	Delete(id string) error

	CreateRubric(rubric *entity.Rubric) error
	GetRubricByID(id string) (*entity.Rubric, error)
	ListRubricsByProgram(programID string) ([]*entity.Rubric, error)
}
