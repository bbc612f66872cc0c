package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/despacho/expedientes-api/internal/application/dto"
	"github.com/despacho/expedientes-api/internal/application/usecase"
	"github.com/despacho/expedientes-api/internal/domain"
	"github.com/despacho/expedientes-api/internal/domain/entity"
)

func buildUserUC() (*usecase.UserUseCase, *fakeUsuarioRepo, *fakeExpSimpleRepo) {
	usuarios := newFakeUsuarioRepo()
	expedientes := newFakeExpSimpleRepo()
	uc := usecase.NewUserUseCase(usuarios, expedientes, relojFijo)
	return uc, usuarios, expedientes
}

func TestUserCreate_EmailDuplicado(t *testing.T) {
	uc, _, _ := buildUserUC()

	_, err := uc.Create(context.Background(), dto.CreateUsuarioRequest{
		Nombre: "Laura", Apellido: "Martínez", Email: "laura@despacho.com",
		Password: "secreta123", Rol: entity.RolAdministrativo,
	})
	require.NoError(t, err)

	_, err = uc.Create(context.Background(), dto.CreateUsuarioRequest{
		Nombre: "Otra", Apellido: "Laura", Email: "laura@despacho.com",
		Password: "secreta123", Rol: entity.RolAdmin,
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

// La propia cuenta no se puede dar de baja ni desactivar.
func TestUserDelete_PropiaCuentaRechazada(t *testing.T) {
	uc, _, _ := buildUserUC()

	admin, err := uc.Create(context.Background(), dto.CreateUsuarioRequest{
		Nombre: "Admin", Apellido: "Uno", Email: "admin@despacho.com",
		Password: "secreta123", Rol: entity.RolAdmin,
	})
	require.NoError(t, err)

	assert.ErrorIs(t, uc.Delete(context.Background(), admin.ID, admin.ID), domain.ErrSelfAction)

	inactivo := false
	_, err = uc.Update(context.Background(), admin.ID, admin.ID, dto.UpdateUsuarioRequest{Activo: &inactivo})
	assert.ErrorIs(t, err, domain.ErrSelfAction)
}

// La baja se bloquea mientras el usuario tenga registros cargados.
func TestUserDelete_BloqueadaConRegistros(t *testing.T) {
	uc, usuarios, expedientes := buildUserUC()

	admin, err := uc.Create(context.Background(), dto.CreateUsuarioRequest{
		Nombre: "Admin", Apellido: "Uno", Email: "admin@despacho.com",
		Password: "secreta123", Rol: entity.RolAdmin,
	})
	require.NoError(t, err)
	otro, err := uc.Create(context.Background(), dto.CreateUsuarioRequest{
		Nombre: "Carlos", Apellido: "Díaz", Email: "carlos@despacho.com",
		Password: "secreta123", Rol: entity.RolAdministrativo,
	})
	require.NoError(t, err)

	expedientes.items["e1"] = &entity.ExpedienteSimple{
		ID: "e1", NumeroExpediente: "1/25", TipoExpediente: true,
		UsuarioCreadorID: otro.ID,
	}
	assert.ErrorIs(t, uc.Delete(context.Background(), admin.ID, otro.ID), domain.ErrConflict)

	// Sin registros, la baja procede y es lógica.
	delete(expedientes.items, "e1")
	require.NoError(t, uc.Delete(context.Background(), admin.ID, otro.ID))
	assert.False(t, usuarios.items[otro.ID].Activo)

	visto, err := uc.GetByID(context.Background(), otro.ID)
	require.NoError(t, err)
	assert.False(t, visto.Activo, "la baja lógica mantiene el registro legible")
}

func TestUserStats(t *testing.T) {
	uc, _, _ := buildUserUC()

	_, err := uc.Create(context.Background(), dto.CreateUsuarioRequest{
		Nombre: "Admin", Apellido: "Uno", Email: "admin@despacho.com",
		Password: "secreta123", Rol: entity.RolAdmin,
	})
	require.NoError(t, err)
	carlos, err := uc.Create(context.Background(), dto.CreateUsuarioRequest{
		Nombre: "Carlos", Apellido: "Díaz", Email: "carlos@despacho.com",
		Password: "secreta123", Rol: entity.RolAdministrativo,
	})
	require.NoError(t, err)

	inactivo := false
	_, err = uc.Update(context.Background(), "otro-admin", carlos.ID, dto.UpdateUsuarioRequest{Activo: &inactivo})
	require.NoError(t, err)

	st, err := uc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, st.Total)
	assert.Equal(t, 1, st.Activos)
	assert.Equal(t, 1, st.Inactivos)
	assert.Equal(t, 1, st.Admins)
	assert.Equal(t, 1, st.Administrativos)
}
