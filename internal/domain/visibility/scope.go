// Package visibility centraliza o escopo de visibilidade por perfil.
// O escopo é calculado uma única vez por sessão e repassado a toda consulta,
// em vez de rederivar a lógica de perfis em cada ponto de acesso a dados.
package visibility

import "github.com/sigescola/sigescola-api/internal/domain/entity"

// Kind discrimina o alcance do escopo.
type Kind int

const (
	// KindAll enxerga todas as escolas (Administrador e Operador).
	KindAll Kind = iota
	// KindSchool enxerga uma única escola (Diretor e Cliente).
	KindSchool
	// KindSchools enxerga uma lista de escolas atribuídas (Técnico GEE).
	KindSchools
	// KindNone não enxerga escola alguma. Técnico sem atribuição cai aqui:
	// ausência de atribuição significa nenhum acesso, não acesso total.
	KindNone
)

// Scope é o escopo de visibilidade de um usuário autenticado.
type Scope struct {
	kind      Kind
	schoolIDs []string
}

// All devolve o escopo irrestrito.
func All() Scope { return Scope{kind: KindAll} }

// School devolve o escopo restrito a uma escola.
func School(id string) Scope { return Scope{kind: KindSchool, schoolIDs: []string{id}} }

// Schools devolve o escopo restrito a uma lista de escolas.
func Schools(ids []string) Scope {
	if len(ids) == 0 {
		return None()
	}
	return Scope{kind: KindSchools, schoolIDs: ids}
}

// None devolve o escopo vazio.
func None() Scope { return Scope{kind: KindNone} }

// ForUser calcula o escopo a partir do perfil do usuário.
func ForUser(u *entity.User) Scope {
	switch u.Role {
	case entity.RoleAdministrador, entity.RoleOperador:
		return All()
	case entity.RoleDiretor, entity.RoleCliente:
		if u.SchoolID == "" {
			return None()
		}
		return School(u.SchoolID)
	case entity.RoleTecnicoGEE:
		return Schools(u.AssignedSchools)
	default:
		return None()
	}
}

// Kind devolve o alcance do escopo.
func (s Scope) Kind() Kind { return s.kind }

// SchoolIDs devolve as escolas visíveis (vazio para All e None).
func (s Scope) SchoolIDs() []string { return s.schoolIDs }

// IsEmpty informa se nenhuma escola é visível.
func (s Scope) IsEmpty() bool { return s.kind == KindNone }

// Allows informa se uma escola está dentro do escopo.
func (s Scope) Allows(schoolID string) bool {
	switch s.kind {
	case KindAll:
		return true
	case KindNone:
		return false
	default:
		for _, id := range s.schoolIDs {
			if id == schoolID {
				return true
			}
		}
		return false
	}
}
