package scope_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/despacho/expedientes-api/internal/domain/scope"
)

func TestAdminVeTodo(t *testing.T) {
	s := scope.Scope{UserID: "u-1", Rol: "admin"}
	f := s.Filtro(scope.ColumnaCreador)

	assert.True(t, f.EsTodo(), "admin no debe tener restricción de propiedad")
	assert.True(t, f.Permite("u-1"))
	assert.True(t, f.Permite("u-otro"), "admin ve registros ajenos")
}

func TestAdministrativoSoloVeLoPropio(t *testing.T) {
	s := scope.Scope{UserID: "u-1", Rol: "administrativo"}
	f := s.Filtro(scope.ColumnaCreador)

	assert.False(t, f.EsTodo())
	assert.Equal(t, scope.ColumnaCreador, f.Columna)
	assert.True(t, f.Permite("u-1"))
	assert.False(t, f.Permite("u-otro"), "registros ajenos quedan fuera de alcance")
}

// La columna de propiedad es un parámetro: el mismo resolutor sirve para
// usuario_creador_id y para abogado_responsable_id.
func TestColumnaParametrizada(t *testing.T) {
	s := scope.Scope{UserID: "abog-9", Rol: "administrativo"}
	f := s.Filtro(scope.ColumnaAbogado)

	assert.Equal(t, scope.ColumnaAbogado, f.Columna)
	assert.True(t, f.Permite("abog-9"))
	assert.False(t, f.Permite("abog-1"))
}

func TestFiltroTodo(t *testing.T) {
	f := scope.Todo()
	assert.True(t, f.EsTodo())
	assert.True(t, f.Permite("cualquiera"))
}
