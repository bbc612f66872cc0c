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

func buildDecretoUC() (*usecase.DecretoUseCase, *fakeDecretoRepo, *fakeExpSimpleRepo) {
	decretos := newFakeDecretoRepo()
	expedientes := newFakeExpSimpleRepo()
	uc := usecase.NewDecretoUseCase(decretos, expedientes, newFakeFileStore(), relojFijo, testLogger())
	return uc, decretos, expedientes
}

func decretoValido(numero string) dto.CreateDecretoRequest {
	return dto.CreateDecretoRequest{
		NumeroDecreto: numero,
		TipoDocumento: entity.TipoDocumentoDecreto,
		Titulo:        "Decreto de prueba",
		FechaEmision:  "2025-06-01",
	}
}

// Un número repetido es conflicto (409), distinto de un error de validación.
func TestDecretoCreate_NumeroDuplicadoEsConflicto(t *testing.T) {
	uc, _, _ := buildDecretoUC()

	_, err := uc.Create(context.Background(), scopeAdmin(), decretoValido("DEC-001"), nil)
	require.NoError(t, err)

	_, err = uc.Create(context.Background(), scopeAdmin(), decretoValido("DEC-001"), nil)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	_, esValidacion := domain.AsValidation(err)
	assert.False(t, esValidacion, "el duplicado no es un error de validación")

	// Los campos faltantes sí son validación.
	_, err = uc.Create(context.Background(), scopeAdmin(), dto.CreateDecretoRequest{}, nil)
	ve, ok := domain.AsValidation(err)
	require.True(t, ok)
	assert.NotEmpty(t, ve.Fields)
}

// El vínculo debe apuntar a un expediente existente.
func TestDecretoCreate_VinculoInexistente(t *testing.T) {
	uc, _, expedientes := buildDecretoUC()

	in := decretoValido("DEC-002")
	in.ExpedienteSimpleID = "no-existe"
	_, err := uc.Create(context.Background(), scopeAdmin(), in, nil)
	_, ok := domain.AsValidation(err)
	assert.True(t, ok, "vínculo roto debe ser error de validación")

	expedientes.items["exp-1"] = &entity.ExpedienteSimple{
		ID: "exp-1", NumeroExpediente: "1/25", TipoExpediente: true,
		UsuarioCreadorID: "user-a",
	}
	in.ExpedienteSimpleID = "exp-1"
	resp, err := uc.Create(context.Background(), scopeAdmin(), in, nil)
	require.NoError(t, err)
	assert.Equal(t, "exp-1", resp.ExpedienteSimpleID)
}

// Al editar, el número se re-verifica excluyendo el propio registro.
func TestDecretoUpdate_NumeroExcluyePropioID(t *testing.T) {
	uc, _, _ := buildDecretoUC()
	s := scopeAdmin()

	a, err := uc.Create(context.Background(), s, decretoValido("DEC-001"), nil)
	require.NoError(t, err)
	_, err = uc.Create(context.Background(), s, decretoValido("DEC-002"), nil)
	require.NoError(t, err)

	// Reafirmar el propio número no es conflicto.
	mismo := "DEC-001"
	_, err = uc.Update(context.Background(), s, a.ID, dto.UpdateDecretoRequest{NumeroDecreto: &mismo}, nil)
	require.NoError(t, err)

	// Tomar el número de otro sí.
	ajeno := "DEC-002"
	_, err = uc.Update(context.Background(), s, a.ID, dto.UpdateDecretoRequest{NumeroDecreto: &ajeno}, nil)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

// El borrado de decretos es físico.
func TestDecretoDelete_Fisico(t *testing.T) {
	uc, decretos, _ := buildDecretoUC()
	s := scopeAdmin()

	resp, err := uc.Create(context.Background(), s, decretoValido("DEC-001"), nil)
	require.NoError(t, err)

	require.NoError(t, uc.Delete(context.Background(), s, resp.ID))
	assert.Empty(t, decretos.items)

	// El número queda libre.
	_, err = uc.Create(context.Background(), s, decretoValido("DEC-001"), nil)
	assert.NoError(t, err)
}

// El alcance del creador aplica también a decretos.
func TestDecretoGetByID_FueraDeAlcance(t *testing.T) {
	uc, _, _ := buildDecretoUC()

	resp, err := uc.Create(context.Background(), scopeAdministrativo("user-a"), decretoValido("DEC-001"), nil)
	require.NoError(t, err)

	_, err = uc.GetByID(context.Background(), scopeAdministrativo("user-b"), resp.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.GetByID(context.Background(), scopeAdmin(), resp.ID)
	assert.NoError(t, err)
}
