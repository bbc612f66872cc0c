package usecase_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/despacho/expedientes-api/internal/application/dto"
	"github.com/despacho/expedientes-api/internal/application/usecase"
	"github.com/despacho/expedientes-api/internal/domain"
	"github.com/despacho/expedientes-api/internal/domain/entity"
)

func buildDocumentoUC() (*usecase.DocumentoUseCase, *fakeDocumentoRepo, *fakeExpedienteRepo, *fakeFileStore) {
	repo := newFakeDocumentoRepo()
	expRepo := newFakeExpedienteRepo()
	files := newFakeFileStore()
	uc := usecase.NewDocumentoUseCase(repo, expRepo, files, relojFijo, testLogger())
	return uc, repo, expRepo, files
}

func seedExpediente(t *testing.T, expRepo *fakeExpedienteRepo, id, abogadoID string) {
	t.Helper()
	err := expRepo.Create(context.Background(), &entity.Expediente{
		ID:                   id,
		NumeroExpediente:     "2025-0001",
		Titulo:               "Juicio ordinario",
		Estado:               entity.ExpedienteActivo,
		ClienteID:            "cli-1",
		AbogadoResponsableID: abogadoID,
	})
	require.NoError(t, err)
}

func adjuntoValido() (dto.CreateDocumentoRequest, *usecase.ArchivoSubido) {
	in := dto.CreateDocumentoRequest{
		Nombre:        "Contrato de servicios",
		TipoDocumento: "contrato",
	}
	archivo := &usecase.ArchivoSubido{
		Nombre:  "contrato.pdf",
		Tamano:  9,
		Mime:    "application/pdf",
		Content: strings.NewReader("contenido"),
	}
	return in, archivo
}

// El archivo es obligatorio al adjuntar.
func TestDocumentoCreate_ArchivoObligatorio(t *testing.T) {
	uc, _, expRepo, _ := buildDocumentoUC()
	seedExpediente(t, expRepo, "exp-1", "user-a")

	in, _ := adjuntoValido()
	_, err := uc.Create(context.Background(), scopeAdmin(), "exp-1", in, nil)

	ve, ok := domain.AsValidation(err)
	require.True(t, ok, "sin archivo debe ser un error de validación")
	assert.Equal(t, "documento", ve.Fields[0].Field)
}

// Crear sobre un expediente ajeno responde como inexistente.
func TestDocumentoCreate_ExpedienteFueraDeAlcance(t *testing.T) {
	uc, _, expRepo, _ := buildDocumentoUC()
	seedExpediente(t, expRepo, "exp-1", "user-a")

	in, archivo := adjuntoValido()
	_, err := uc.Create(context.Background(), scopeAdministrativo("user-b"), "exp-1", in, archivo)
	assert.ErrorIs(t, err, domain.ErrNotFound,
		"un expediente ajeno no debe distinguirse de uno inexistente")
}

// Alta correcta: versión 1, estado borrador y archivo persistido.
func TestDocumentoCreate_GuardaArchivo(t *testing.T) {
	uc, _, expRepo, files := buildDocumentoUC()
	seedExpediente(t, expRepo, "exp-1", "user-a")

	in, archivo := adjuntoValido()
	out, err := uc.Create(context.Background(), scopeAdministrativo("user-a"), "exp-1", in, archivo)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Version)
	assert.Equal(t, entity.DocumentoBorrador, out.Estado)
	assert.Len(t, files.files, 1, "el archivo debe quedar en el almacenamiento")

	// La visibilidad del documento sigue al expediente padre.
	_, err = uc.GetByID(context.Background(), scopeAdministrativo("user-b"), out.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := uc.GetByID(context.Background(), scopeAdministrativo("user-a"), out.ID)
	require.NoError(t, err)
	assert.Equal(t, "Contrato de servicios", got.Nombre)
}

// El borrado elimina el registro y su archivo.
func TestDocumentoDelete_EliminaArchivo(t *testing.T) {
	uc, _, expRepo, files := buildDocumentoUC()
	seedExpediente(t, expRepo, "exp-1", "user-a")

	in, archivo := adjuntoValido()
	out, err := uc.Create(context.Background(), scopeAdmin(), "exp-1", in, archivo)
	require.NoError(t, err)

	require.NoError(t, uc.Delete(context.Background(), scopeAdmin(), out.ID))
	assert.Empty(t, files.files, "el archivo debe borrarse junto al documento")

	_, err = uc.GetByID(context.Background(), scopeAdmin(), out.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Descargar distingue archivo perdido de documento inexistente.
func TestDocumentoDownload_ArchivoPerdido(t *testing.T) {
	uc, _, expRepo, files := buildDocumentoUC()
	seedExpediente(t, expRepo, "exp-1", "user-a")

	in, archivo := adjuntoValido()
	out, err := uc.Create(context.Background(), scopeAdmin(), "exp-1", in, archivo)
	require.NoError(t, err)

	ruta, nombre, err := uc.Download(context.Background(), scopeAdmin(), out.ID)
	require.NoError(t, err)
	assert.Equal(t, "contrato.pdf", nombre)

	require.NoError(t, files.Delete(ruta))
	_, _, err = uc.Download(context.Background(), scopeAdmin(), out.ID)
	assert.ErrorIs(t, err, domain.ErrFileMissing)
}
