package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/despacho/expedientes-api/internal/application/dto"
	"github.com/despacho/expedientes-api/internal/domain"
	"github.com/despacho/expedientes-api/internal/domain/entity"
	"github.com/despacho/expedientes-api/internal/domain/repository"
	"github.com/despacho/expedientes-api/internal/domain/scope"
	"github.com/despacho/expedientes-api/internal/domain/serie"
	"github.com/despacho/expedientes-api/internal/infrastructure/storage"
	"github.com/despacho/expedientes-api/pkg/logger"
)

// PagoUseCase registro de pagos de honorarios. Es contabilidad interna, no
// una pasarela: el pago nace pagado y el recibo PDF es de mejor esfuerzo.
type PagoUseCase struct {
	repo    repository.PagoRepository
	expRepo repository.ExpedienteRepository
	gen     ComprobanteGenerator
	files   FileStore
	now     serie.Reloj
	log     *logger.Logger
}

// NewPagoUseCase construye el caso de uso.
func NewPagoUseCase(
	repo repository.PagoRepository,
	expRepo repository.ExpedienteRepository,
	gen ComprobanteGenerator,
	files FileStore,
	now serie.Reloj,
	log *logger.Logger,
) *PagoUseCase {
	return &PagoUseCase{repo: repo, expRepo: expRepo, gen: gen, files: files, now: now, log: log}
}

// Create registra un pago sobre un expediente visible, actualiza los
// honorarios pagados y genera el recibo.
func (uc *PagoUseCase) Create(ctx context.Context, s scope.Scope, in dto.CreatePagoRequest) (*dto.PagoResponse, error) {
	ve := &domain.ValidationError{}
	if in.NumeroRecibo == "" {
		ve.Add("numeroRecibo", "el número de recibo es obligatorio")
	}
	if in.Concepto == "" {
		ve.Add("concepto", "el concepto es obligatorio")
	}
	if !in.Monto.IsPositive() {
		ve.Add("monto", "el monto debe ser mayor que cero")
	}
	if !entity.MetodoPagoValido(in.MetodoPago) {
		ve.Add("metodoPago", "método de pago inválido")
	}
	if in.ExpedienteID == "" {
		ve.Add("expedienteId", "el expediente es obligatorio")
	}
	fechaPago := uc.now()
	if in.FechaPago != "" {
		t, err := time.Parse("2006-01-02", in.FechaPago)
		if err != nil {
			ve.Add("fechaPago", "fecha inválida, formato esperado aaaa-mm-dd")
		} else {
			fechaPago = t
		}
	}
	if ve.HasErrors() {
		return nil, ve
	}

	e, err := uc.expRepo.GetByID(ctx, in.ExpedienteID, s.Filtro(scope.ColumnaAbogado))
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}

	now := uc.now()
	p := &entity.Pago{
		ID:               uuid.New().String(),
		NumeroRecibo:     in.NumeroRecibo,
		Concepto:         in.Concepto,
		Monto:            in.Monto,
		FechaPago:        fechaPago,
		MetodoPago:       in.MetodoPago,
		Estado:           entity.PagoPagado,
		ReferenciaPago:   in.ReferenciaPago,
		Notas:            in.Notas,
		ExpedienteID:     e.ID,
		ClienteID:        e.ClienteID,
		UsuarioRecibioID: s.UserID,
		CreatedAt:        now,
		UpdatedAt:        now,

		Cliente: e.Cliente,
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	e.HonorariosPagados = e.HonorariosPagados.Add(p.Monto)
	e.UpdatedAt = now
	if err := uc.expRepo.Update(ctx, e); err != nil {
		uc.log.Error().Err(err).Str("expediente", e.NumeroExpediente).
			Msg("no se pudieron actualizar los honorarios pagados")
	}

	// Se relee el pago persistido: el join trae al usuario que lo recibió,
	// que el recibo imprime como "recibido por".
	if completo, err := uc.repo.GetByID(ctx, p.ID); err == nil && completo != nil {
		p = completo
	}
	uc.generarRecibo(ctx, p, e)

	resp := dto.FromPago(p)
	return &resp, nil
}

// generarRecibo es de mejor esfuerzo: un fallo se registra y el pago queda.
func (uc *PagoUseCase) generarRecibo(ctx context.Context, p *entity.Pago, e *entity.Expediente) {
	pdf, err := uc.gen.GenerarReciboPago(p, e)
	if err != nil {
		uc.log.Error().Err(err).Str("recibo", p.NumeroRecibo).Msg("no se pudo generar el recibo PDF")
		return
	}
	nombre := storage.UniqueFilename("recibo", p.NumeroRecibo, ".pdf")
	ruta, err := uc.files.SaveBytes(storage.DirComprobantes, nombre, pdf)
	if err != nil {
		uc.log.Error().Err(err).Str("recibo", p.NumeroRecibo).Msg("no se pudo guardar el recibo PDF")
		return
	}
	if err := uc.repo.SetComprobante(ctx, p.ID, ruta); err != nil {
		uc.log.Error().Err(err).Str("recibo", p.NumeroRecibo).Msg("no se pudo registrar la ruta del recibo")
		return
	}
	p.ComprobanteGenerado = true
	p.RutaComprobante = ruta
}

// ListByExpediente lista los pagos de un expediente visible.
func (uc *PagoUseCase) ListByExpediente(ctx context.Context, s scope.Scope, expedienteID string) ([]dto.PagoResponse, error) {
	e, err := uc.expRepo.GetByID(ctx, expedienteID, s.Filtro(scope.ColumnaAbogado))
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.repo.ListByExpediente(ctx, expedienteID)
	if err != nil {
		return nil, err
	}
	return dto.FromPagos(items), nil
}

// DownloadRecibo devuelve el recibo PDF de un pago visible.
func (uc *PagoUseCase) DownloadRecibo(ctx context.Context, s scope.Scope, id string) (ruta, nombre string, err error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return "", "", err
	}
	if p == nil {
		return "", "", domain.ErrNotFound
	}
	e, err := uc.expRepo.GetByID(ctx, p.ExpedienteID, s.Filtro(scope.ColumnaAbogado))
	if err != nil {
		return "", "", err
	}
	if e == nil {
		return "", "", domain.ErrNotFound
	}
	if p.RutaComprobante == "" {
		return "", "", domain.ErrNoFile
	}
	if !uc.files.Exists(p.RutaComprobante) {
		return "", "", domain.ErrFileMissing
	}
	return p.RutaComprobante, "recibo-" + p.NumeroRecibo + ".pdf", nil
}
