package repository

import (
	"github.com/sigescola/sigescola-api/internal/domain/entity"
	"github.com/sigescola/sigescola-api/internal/domain/visibility"
)

// SchoolRepository define o porto de persistência para escolas (DIP).
type SchoolRepository interface {
	Create(school *entity.School) error
	GetByID(id string) (*entity.School, error)
	Update(school *entity.School) error
	List(scope visibility.Scope) ([]*entity.School, error)
	ListByGEE(gee string) ([]*entity.School, error)
	Delete(id string) error
}
