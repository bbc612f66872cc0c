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

func buildClienteUC() (*usecase.ClienteUseCase, *fakeClienteRepo, *fakeExpedienteRepo) {
	clientes := newFakeClienteRepo()
	expedientes := newFakeExpedienteRepo()
	uc := usecase.NewClienteUseCase(clientes, expedientes, relojFijo)
	return uc, clientes, expedientes
}

func TestClienteCreate_DNIDuplicado(t *testing.T) {
	uc, _, _ := buildClienteUC()

	_, err := uc.Create(context.Background(), dto.CreateClienteRequest{
		Nombre: "María", Apellido: "López", DNI: "12345678",
		TipoCliente: entity.ClientePersonaFisica,
	})
	require.NoError(t, err)

	_, err = uc.Create(context.Background(), dto.CreateClienteRequest{
		Nombre: "Otra", Apellido: "Persona", DNI: "12345678",
		TipoCliente: entity.ClientePersonaFisica,
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

// La baja se bloquea mientras el cliente tenga expedientes sin archivar.
func TestClienteDelete_BloqueadaConExpedientesVivos(t *testing.T) {
	uc, clientes, expedientes := buildClienteUC()

	resp, err := uc.Create(context.Background(), dto.CreateClienteRequest{
		Nombre: "María", Apellido: "López", DNI: "12345678",
		TipoCliente: entity.ClientePersonaFisica,
	})
	require.NoError(t, err)

	expedientes.items["exp-1"] = &entity.Expediente{
		ID: "exp-1", NumeroExpediente: "2025-0001", ClienteID: resp.ID,
		Estado: entity.ExpedienteActivo, AbogadoResponsableID: "abogado-a",
	}

	assert.ErrorIs(t, uc.Delete(context.Background(), resp.ID), domain.ErrConflict)
	assert.True(t, clientes.items[resp.ID].Activo, "el cliente sigue activo tras la baja bloqueada")

	// Archivado el expediente, la baja procede y es lógica.
	expedientes.items["exp-1"].Estado = entity.ExpedienteArchivado
	require.NoError(t, uc.Delete(context.Background(), resp.ID))
	assert.False(t, clientes.items[resp.ID].Activo)

	// El registro sigue recuperable por id para el historial.
	visto, err := uc.GetByID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.False(t, visto.Activo)

	// Repetir la baja es conflicto.
	assert.ErrorIs(t, uc.Delete(context.Background(), resp.ID), domain.ErrConflict)
}

// Los listados solo devuelven clientes activos.
func TestClienteList_SoloActivos(t *testing.T) {
	uc, clientes, _ := buildClienteUC()

	a, err := uc.Create(context.Background(), dto.CreateClienteRequest{
		Nombre: "María", Apellido: "López", DNI: "111",
		TipoCliente: entity.ClientePersonaFisica,
	})
	require.NoError(t, err)
	_, err = uc.Create(context.Background(), dto.CreateClienteRequest{
		Nombre: "Pedro", Apellido: "Ruiz", DNI: "222",
		TipoCliente: entity.ClientePersonaFisica,
	})
	require.NoError(t, err)

	clientes.items[a.ID].Activo = false

	lista, err := uc.List(context.Background(), dto.ListClientesRequest{})
	require.NoError(t, err)
	items := lista.Items.([]dto.ClienteResponse)
	require.Len(t, items, 1)
	assert.Equal(t, "Pedro", items[0].Nombre)
	assert.Equal(t, 1, lista.Pagination.TotalItems)
}
