package visibility_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sigescola/sigescola-api/internal/domain/entity"
	"github.com/sigescola/sigescola-api/internal/domain/visibility"
)

func TestForUser_AdminEOperadorEnxergamTudo(t *testing.T) {
	for _, role := range []string{entity.RoleAdministrador, entity.RoleOperador} {
		scope := visibility.ForUser(&entity.User{Role: role})
		assert.Equal(t, visibility.KindAll, scope.Kind(), "perfil %s deve ter escopo irrestrito", role)
		assert.True(t, scope.Allows("qualquer-escola"))
	}
}

func TestForUser_DiretorEClienteRestritosAPropriaEscola(t *testing.T) {
	for _, role := range []string{entity.RoleDiretor, entity.RoleCliente} {
		scope := visibility.ForUser(&entity.User{Role: role, SchoolID: "esc-1"})
		assert.Equal(t, visibility.KindSchool, scope.Kind())
		assert.True(t, scope.Allows("esc-1"))
		assert.False(t, scope.Allows("esc-2"), "perfil %s não deve enxergar outra escola", role)
	}
}

func TestForUser_TecnicoComEscolasAtribuidas(t *testing.T) {
	scope := visibility.ForUser(&entity.User{
		Role:            entity.RoleTecnicoGEE,
		AssignedSchools: []string{"esc-1", "esc-3"},
	})
	assert.Equal(t, visibility.KindSchools, scope.Kind())
	assert.True(t, scope.Allows("esc-1"))
	assert.True(t, scope.Allows("esc-3"))
	assert.False(t, scope.Allows("esc-2"))
}

// Técnico sem atribuição recebe escopo vazio, nunca irrestrito: ausência de
// atribuição significa nenhum acesso.
func TestForUser_TecnicoSemEscolasNaoEnxergaNada(t *testing.T) {
	scope := visibility.ForUser(&entity.User{Role: entity.RoleTecnicoGEE})
	assert.Equal(t, visibility.KindNone, scope.Kind())
	assert.True(t, scope.IsEmpty())
	assert.False(t, scope.Allows("esc-1"))
}

func TestForUser_DiretorSemEscolaNaoEnxergaNada(t *testing.T) {
	scope := visibility.ForUser(&entity.User{Role: entity.RoleDiretor})
	assert.True(t, scope.IsEmpty())
}

func TestForUser_PerfilDesconhecidoNaoEnxergaNada(t *testing.T) {
	scope := visibility.ForUser(&entity.User{Role: "Convidado"})
	assert.True(t, scope.IsEmpty())
}
