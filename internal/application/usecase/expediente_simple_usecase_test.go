package usecase_test

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/despacho/expedientes-api/internal/application/dto"
	"github.com/despacho/expedientes-api/internal/application/usecase"
	"github.com/despacho/expedientes-api/internal/domain"
	"github.com/despacho/expedientes-api/internal/domain/entity"
	"github.com/despacho/expedientes-api/internal/domain/scope"
)

func buildExpSimpleUC(gen *fakeGenerator) (*usecase.ExpedienteSimpleUseCase, *fakeExpSimpleRepo, *fakeFileStore) {
	repo := newFakeExpSimpleRepo()
	files := newFakeFileStore()
	uc := usecase.NewExpedienteSimpleUseCase(repo, gen, files, relojFijo, testLogger())
	return uc, repo, files
}

func scopeAdmin() scope.Scope {
	return scope.Scope{UserID: "admin-1", Rol: entity.RolAdmin}
}

func scopeAdministrativo(id string) scope.Scope {
	return scope.Scope{UserID: id, Rol: entity.RolAdministrativo}
}

// La primera carga del año arranca la serie en 1/aa y la siguiente incrementa.
func TestCreate_AsignaNumeroDeSerie(t *testing.T) {
	uc, _, _ := buildExpSimpleUC(&fakeGenerator{})

	primero, err := uc.Create(context.Background(), scopeAdmin(),
		dto.CreateExpedienteSimpleRequest{NombreSolicitante: "Juan Pérez"}, nil, true)
	require.NoError(t, err)
	assert.Equal(t, "1/25", primero.NumeroExpediente)

	segundo, err := uc.Create(context.Background(), scopeAdmin(),
		dto.CreateExpedienteSimpleRequest{NombreSolicitante: "Ana Gómez"}, nil, true)
	require.NoError(t, err)
	assert.Equal(t, "2/25", segundo.NumeroExpediente)
}

// Expedientes y actuaciones corren series independientes sobre la misma tabla.
func TestCreate_SeriesIndependientesPorTipo(t *testing.T) {
	uc, _, _ := buildExpSimpleUC(&fakeGenerator{})

	exp, err := uc.Create(context.Background(), scopeAdmin(),
		dto.CreateExpedienteSimpleRequest{NombreSolicitante: "Juan Pérez"}, nil, true)
	require.NoError(t, err)
	act, err := uc.Create(context.Background(), scopeAdmin(),
		dto.CreateExpedienteSimpleRequest{NombreSolicitante: "Ana Gómez"}, nil, false)
	require.NoError(t, err)

	assert.Equal(t, "1/25", exp.NumeroExpediente)
	assert.Equal(t, "1/25", act.NumeroExpediente)
}

// N cargas concurrentes en la misma serie terminan todas con número distinto.
func TestCreate_ConcurrenteNumerosDistintos(t *testing.T) {
	uc, _, _ := buildExpSimpleUC(&fakeGenerator{})
	const n = 25

	numeros := make([]string, n)
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp, err := uc.Create(context.Background(), scopeAdmin(),
				dto.CreateExpedienteSimpleRequest{
					NombreSolicitante: fmt.Sprintf("Solicitante %d", i),
				}, nil, true)
			if err != nil {
				errs[i] = err
				return
			}
			numeros[i] = resp.NumeroExpediente
		}(i)
	}
	wg.Wait()

	re := regexp.MustCompile(`^\d+/25$`)
	vistos := make(map[string]bool)
	for i := 0; i < n; i++ {
		// Bajo disputa extrema un intento puede agotar sus reintentos; lo que
		// nunca puede pasar es que dos cargas compartan número.
		if errs[i] != nil {
			assert.ErrorIs(t, errs[i], domain.ErrSerieAgotada)
			continue
		}
		assert.Regexp(t, re, numeros[i])
		assert.False(t, vistos[numeros[i]], "número repetido: %s", numeros[i])
		vistos[numeros[i]] = true
	}
	assert.NotEmpty(t, vistos, "al menos una carga debe prosperar")
}

// Un número manual se respeta tal cual; repetirlo es conflicto, no validación.
func TestCreate_NumeroManualDuplicado(t *testing.T) {
	uc, _, _ := buildExpSimpleUC(&fakeGenerator{})

	_, err := uc.Create(context.Background(), scopeAdmin(),
		dto.CreateExpedienteSimpleRequest{NombreSolicitante: "Juan", NumeroExpediente: "7/25"}, nil, true)
	require.NoError(t, err)

	_, err = uc.Create(context.Background(), scopeAdmin(),
		dto.CreateExpedienteSimpleRequest{NombreSolicitante: "Ana", NumeroExpediente: "7/25"}, nil, true)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

// El solicitante es obligatorio y el error llega por campo.
func TestCreate_ValidacionPorCampo(t *testing.T) {
	uc, _, _ := buildExpSimpleUC(&fakeGenerator{})

	_, err := uc.Create(context.Background(), scopeAdmin(),
		dto.CreateExpedienteSimpleRequest{}, nil, true)
	ve, ok := domain.AsValidation(err)
	require.True(t, ok, "debe ser un error de validación")
	require.Len(t, ve.Fields, 1)
	assert.Equal(t, "nombreSolicitante", ve.Fields[0].Field)
}

// El fallo del generador de comprobantes no bloquea la carga.
func TestCreate_ComprobanteFallaNoBloquea(t *testing.T) {
	uc, repo, _ := buildExpSimpleUC(&fakeGenerator{fail: true})

	resp, err := uc.Create(context.Background(), scopeAdmin(),
		dto.CreateExpedienteSimpleRequest{NombreSolicitante: "Juan Pérez"}, nil, true)
	require.NoError(t, err)
	assert.False(t, resp.TieneComprobante)

	guardado, err := repo.GetByID(context.Background(), resp.ID, scope.Todo())
	require.NoError(t, err)
	require.NotNil(t, guardado, "el registro debe persistir aunque falle el PDF")
	assert.Empty(t, guardado.RutaComprobantePDF)
}

// Con generador sano el comprobante queda en disco y registrado.
func TestCreate_ComprobanteGenerado(t *testing.T) {
	uc, repo, files := buildExpSimpleUC(&fakeGenerator{})

	resp, err := uc.Create(context.Background(), scopeAdmin(),
		dto.CreateExpedienteSimpleRequest{NombreSolicitante: "Juan Pérez"}, nil, true)
	require.NoError(t, err)
	assert.True(t, resp.TieneComprobante)

	guardado, err := repo.GetByID(context.Background(), resp.ID, scope.Todo())
	require.NoError(t, err)
	assert.True(t, files.Exists(guardado.RutaComprobantePDF))
}

// Un administrativo no ve registros ajenos: fuera de alcance es 404, no 403.
func TestGetByID_FueraDeAlcance(t *testing.T) {
	uc, _, _ := buildExpSimpleUC(&fakeGenerator{})

	resp, err := uc.Create(context.Background(), scopeAdministrativo("user-a"),
		dto.CreateExpedienteSimpleRequest{NombreSolicitante: "Juan Pérez"}, nil, true)
	require.NoError(t, err)

	_, err = uc.GetByID(context.Background(), scopeAdministrativo("user-b"), resp.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// El admin sí lo ve.
	visto, err := uc.GetByID(context.Background(), scopeAdmin(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, resp.ID, visto.ID)
}

// El borrado es físico: el registro desaparece y su número vuelve a la serie.
func TestDelete_FisicoLiberaNumero(t *testing.T) {
	uc, _, _ := buildExpSimpleUC(&fakeGenerator{})

	resp, err := uc.Create(context.Background(), scopeAdmin(),
		dto.CreateExpedienteSimpleRequest{NombreSolicitante: "Juan Pérez"}, nil, true)
	require.NoError(t, err)
	require.Equal(t, "1/25", resp.NumeroExpediente)

	require.NoError(t, uc.Delete(context.Background(), scopeAdmin(), resp.ID))

	_, err = uc.GetByID(context.Background(), scopeAdmin(), resp.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	otra, err := uc.Create(context.Background(), scopeAdmin(),
		dto.CreateExpedienteSimpleRequest{NombreSolicitante: "Ana Gómez"}, nil, true)
	require.NoError(t, err)
	assert.Equal(t, "1/25", otra.NumeroExpediente, "el número liberado se reasigna")
}

// Descargas: registro sin archivo y archivo perdido se distinguen.
func TestDownloadFile_SinArchivoYArchivoPerdido(t *testing.T) {
	uc, _, files := buildExpSimpleUC(&fakeGenerator{})

	sinArchivo, err := uc.Create(context.Background(), scopeAdmin(),
		dto.CreateExpedienteSimpleRequest{NombreSolicitante: "Juan"}, nil, true)
	require.NoError(t, err)

	_, _, err = uc.DownloadFile(context.Background(), scopeAdmin(), sinArchivo.ID)
	assert.ErrorIs(t, err, domain.ErrNoFile)

	conArchivo, err := uc.Create(context.Background(), scopeAdmin(),
		dto.CreateExpedienteSimpleRequest{NombreSolicitante: "Ana"},
		&usecase.ArchivoSubido{Nombre: "escaneo.pdf", Content: strings.NewReader("contenido")}, true)
	require.NoError(t, err)

	ruta, nombre, err := uc.DownloadFile(context.Background(), scopeAdmin(), conArchivo.ID)
	require.NoError(t, err)
	assert.Equal(t, "escaneo.pdf", nombre)

	require.NoError(t, files.Delete(ruta))
	_, _, err = uc.DownloadFile(context.Background(), scopeAdmin(), conArchivo.ID)
	assert.ErrorIs(t, err, domain.ErrFileMissing)
}

// El generador recibe el registro con su creador: el comprobante imprime
// quién recibió la carga también en el alta, no solo al regenerarlo.
func TestCreate_ComprobanteConCreador(t *testing.T) {
	gen := &fakeGenerator{}
	uc, _, _ := buildExpSimpleUC(gen)

	_, err := uc.Create(context.Background(), scopeAdministrativo("user-a"),
		dto.CreateExpedienteSimpleRequest{NombreSolicitante: "Juan Pérez"}, nil, true)
	require.NoError(t, err)

	require.NotNil(t, gen.ultimoExp)
	require.NotNil(t, gen.ultimoExp.Creador, "el comprobante imprime al creador en recibido por")
	assert.Equal(t, "user-a", gen.ultimoExp.Creador.ID)
}

// La fecha de carga editada queda persistida, no solo en la respuesta.
func TestUpdate_PersisteFechaCarga(t *testing.T) {
	uc, repo, _ := buildExpSimpleUC(&fakeGenerator{})

	resp, err := uc.Create(context.Background(), scopeAdmin(),
		dto.CreateExpedienteSimpleRequest{NombreSolicitante: "Juan Pérez"}, nil, true)
	require.NoError(t, err)

	nueva := "2025-02-10"
	out, err := uc.Update(context.Background(), scopeAdmin(), resp.ID,
		dto.UpdateExpedienteSimpleRequest{FechaCarga: &nueva}, nil)
	require.NoError(t, err)
	assert.Equal(t, nueva, out.FechaCarga.Format("2006-01-02"))

	guardado, err := repo.GetByID(context.Background(), resp.ID, scope.Todo())
	require.NoError(t, err)
	require.NotNil(t, guardado)
	assert.Equal(t, nueva, guardado.FechaCarga.Format("2006-01-02"))
}
