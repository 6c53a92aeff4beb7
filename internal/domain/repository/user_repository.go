package repository

import "github.com/sigescola/sigescola-api/internal/domain/entity"

// UserRepository define o porto de persistência para usuários (DIP).
// Update também regrava as escolas atribuídas do Técnico GEE.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	Update(user *entity.User) error
	List(limit, offset int) ([]*entity.User, error)
	Delete(id string) error
}
