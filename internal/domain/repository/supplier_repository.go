package repository

import "github.com/sigescola/sigescola-api/internal/domain/entity"

// SupplierRepository define o porto de persistência para fornecedores (DIP).
type SupplierRepository interface {
	Create(supplier *entity.Supplier) error
	GetByID(id string) (*entity.Supplier, error)
	GetByCNPJ(cnpj string) (*entity.Supplier, error)
	Update(supplier *entity.Supplier) error
	// List filtra por nome ou CNPJ quando search não é vazio.
	List(search string, limit, offset int) ([]*entity.Supplier, error)
	Delete(id string) error
}
