package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/despacho/expedientes-api/internal/application/dto"
	"github.com/despacho/expedientes-api/internal/application/usecase"
	"github.com/despacho/expedientes-api/internal/domain"
	"github.com/despacho/expedientes-api/internal/domain/entity"
)

func buildPagoUC(gen *fakeGenerator) (*usecase.PagoUseCase, *fakePagoRepo, *fakeExpedienteRepo, *fakeFileStore) {
	repo := newFakePagoRepo()
	expRepo := newFakeExpedienteRepo()
	files := newFakeFileStore()
	uc := usecase.NewPagoUseCase(repo, expRepo, gen, files, relojFijo, testLogger())
	return uc, repo, expRepo, files
}

func pagoValido(expedienteID string) dto.CreatePagoRequest {
	return dto.CreatePagoRequest{
		NumeroRecibo: "REC-001",
		Concepto:     "Anticipo de honorarios",
		Monto:        decimal.NewFromInt(1500),
		MetodoPago:   "transferencia",
		ExpedienteID: expedienteID,
	}
}

// El pago acumula el monto en los honorarios pagados del expediente.
func TestPagoCreate_AcumulaHonorarios(t *testing.T) {
	uc, _, expRepo, _ := buildPagoUC(&fakeGenerator{})
	seedExpediente(t, expRepo, "exp-1", "user-a")

	out, err := uc.Create(context.Background(), scopeAdministrativo("user-a"), pagoValido("exp-1"))
	require.NoError(t, err)
	assert.Equal(t, entity.PagoPagado, out.Estado)
	assert.Equal(t, "cli-1", out.ClienteID, "el cliente se toma del expediente")

	e := expRepo.items["exp-1"]
	assert.True(t, e.HonorariosPagados.Equal(decimal.NewFromInt(1500)),
		"los honorarios pagados deben reflejar el pago, quedaron %s", e.HonorariosPagados)

	in2 := pagoValido("exp-1")
	in2.NumeroRecibo = "REC-002"
	in2.Monto = decimal.NewFromInt(500)
	_, err = uc.Create(context.Background(), scopeAdministrativo("user-a"), in2)
	require.NoError(t, err)

	e = expRepo.items["exp-1"]
	assert.True(t, e.HonorariosPagados.Equal(decimal.NewFromInt(2000)))
}

// Número de recibo repetido es conflicto, y monto no positivo es validación.
func TestPagoCreate_ReciboDuplicadoYMontoInvalido(t *testing.T) {
	uc, _, expRepo, _ := buildPagoUC(&fakeGenerator{})
	seedExpediente(t, expRepo, "exp-1", "user-a")

	_, err := uc.Create(context.Background(), scopeAdmin(), pagoValido("exp-1"))
	require.NoError(t, err)

	_, err = uc.Create(context.Background(), scopeAdmin(), pagoValido("exp-1"))
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	in := pagoValido("exp-1")
	in.NumeroRecibo = "REC-003"
	in.Monto = decimal.Zero
	_, err = uc.Create(context.Background(), scopeAdmin(), in)
	_, ok := domain.AsValidation(err)
	assert.True(t, ok, "monto cero debe ser un error de validación")
}

// Un expediente ajeno no admite pagos y responde como inexistente.
func TestPagoCreate_ExpedienteFueraDeAlcance(t *testing.T) {
	uc, _, expRepo, _ := buildPagoUC(&fakeGenerator{})
	seedExpediente(t, expRepo, "exp-1", "user-a")

	_, err := uc.Create(context.Background(), scopeAdministrativo("user-b"), pagoValido("exp-1"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// El recibo PDF es de mejor esfuerzo: su fallo no tumba el alta.
func TestPagoCreate_ReciboFallaNoBloquea(t *testing.T) {
	uc, repo, expRepo, _ := buildPagoUC(&fakeGenerator{fail: true})
	seedExpediente(t, expRepo, "exp-1", "user-a")

	out, err := uc.Create(context.Background(), scopeAdmin(), pagoValido("exp-1"))
	require.NoError(t, err, "el fallo del generador no debe bloquear el pago")
	assert.False(t, out.ComprobanteGenerado)

	_, _, err = uc.DownloadRecibo(context.Background(), scopeAdmin(), out.ID)
	assert.ErrorIs(t, err, domain.ErrNoFile)

	// El pago quedó persistido pese al recibo fallido.
	p, err := repo.GetByID(context.Background(), out.ID)
	require.NoError(t, err)
	require.NotNil(t, p)
}

// Con generador sano el recibo queda descargable.
func TestPagoDownloadRecibo(t *testing.T) {
	uc, _, expRepo, files := buildPagoUC(&fakeGenerator{})
	seedExpediente(t, expRepo, "exp-1", "user-a")

	out, err := uc.Create(context.Background(), scopeAdmin(), pagoValido("exp-1"))
	require.NoError(t, err)
	assert.True(t, out.ComprobanteGenerado)

	ruta, nombre, err := uc.DownloadRecibo(context.Background(), scopeAdmin(), out.ID)
	require.NoError(t, err)
	assert.Equal(t, "recibo-REC-001.pdf", nombre)
	assert.True(t, files.Exists(ruta))

	// Fuera de alcance el recibo tampoco existe.
	_, _, err = uc.DownloadRecibo(context.Background(), scopeAdministrativo("user-b"), out.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Los pagos se listan por expediente visible.
func TestPagoListByExpediente(t *testing.T) {
	uc, _, expRepo, _ := buildPagoUC(&fakeGenerator{})
	seedExpediente(t, expRepo, "exp-1", "user-a")

	_, err := uc.Create(context.Background(), scopeAdmin(), pagoValido("exp-1"))
	require.NoError(t, err)

	items, err := uc.ListByExpediente(context.Background(), scopeAdministrativo("user-a"), "exp-1")
	require.NoError(t, err)
	assert.Len(t, items, 1)

	_, err = uc.ListByExpediente(context.Background(), scopeAdministrativo("user-b"), "exp-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// El generador recibe el pago con el usuario receptor: el recibo imprime
// quién lo recibió también en el alta.
func TestPagoCreate_ReciboConUsuarioReceptor(t *testing.T) {
	gen := &fakeGenerator{}
	uc, _, expRepo, _ := buildPagoUC(gen)
	seedExpediente(t, expRepo, "exp-1", "user-a")

	_, err := uc.Create(context.Background(), scopeAdministrativo("user-a"), pagoValido("exp-1"))
	require.NoError(t, err)

	require.NotNil(t, gen.ultimoPago)
	require.NotNil(t, gen.ultimoPago.UsuarioRecibio, "el recibo imprime al receptor en recibido por")
	assert.Equal(t, "user-a", gen.ultimoPago.UsuarioRecibio.ID)
}
