package entity

import "time"

// Perfis de acesso. Os rótulos seguem a nomenclatura oficial do programa.
const (
	RoleAdministrador = "Administrador"
	RoleOperador      = "Operador"
	RoleDiretor       = "Diretor"
	RoleTecnicoGEE    = "Técnico GEE"
	RoleCliente       = "Cliente"
)

// User representa um usuário da plataforma.
// Diretor e Cliente enxergam apenas a própria escola (SchoolID); o Técnico GEE
// enxerga a lista de escolas atribuídas (AssignedSchools).
type User struct {
	ID              string
	Name            string
	Email           string
	PasswordHash    string
	Role            string
	SchoolID        string   // vazio para perfis sem escola fixa
	AssignedSchools []string // apenas Técnico GEE
	GEE             string   // gerência executiva do técnico
	Active          bool
	AvatarURL       string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
