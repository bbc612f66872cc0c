package usecase

import (
	"context"
	"path/filepath"
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

// DocumentoUseCase documentos adjuntos a expedientes completos. El alcance se
// resuelve a través del expediente: quien no ve el expediente no ve su archivo.
type DocumentoUseCase struct {
	repo    repository.DocumentoRepository
	expRepo repository.ExpedienteRepository
	files   FileStore
	now     serie.Reloj
	log     *logger.Logger
}

// NewDocumentoUseCase construye el caso de uso.
func NewDocumentoUseCase(
	repo repository.DocumentoRepository,
	expRepo repository.ExpedienteRepository,
	files FileStore,
	now serie.Reloj,
	log *logger.Logger,
) *DocumentoUseCase {
	return &DocumentoUseCase{repo: repo, expRepo: expRepo, files: files, now: now, log: log}
}

// expedienteVisible verifica que el expediente exista dentro del alcance.
func (uc *DocumentoUseCase) expedienteVisible(ctx context.Context, s scope.Scope, expedienteID string) (*entity.Expediente, error) {
	e, err := uc.expRepo.GetByID(ctx, expedienteID, s.Filtro(scope.ColumnaAbogado))
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	return e, nil
}

// Create adjunta un documento a un expediente. El archivo es obligatorio.
func (uc *DocumentoUseCase) Create(
	ctx context.Context,
	s scope.Scope,
	expedienteID string,
	in dto.CreateDocumentoRequest,
	archivo *ArchivoSubido,
) (*dto.DocumentoResponse, error) {
	if _, err := uc.expedienteVisible(ctx, s, expedienteID); err != nil {
		return nil, err
	}

	ve := &domain.ValidationError{}
	if in.Nombre == "" {
		ve.Add("nombre", "el nombre es obligatorio")
	}
	if !entity.TipoDocumentoAdjuntoValido(in.TipoDocumento) {
		ve.Add("tipoDocumento", "tipo de documento inválido")
	}
	if archivo == nil {
		ve.Add("documento", "el archivo es obligatorio")
	}
	var fechaDocumento, fechaVencimiento *time.Time
	if in.FechaDocumento != "" {
		t, err := time.Parse("2006-01-02", in.FechaDocumento)
		if err != nil {
			ve.Add("fechaDocumento", "fecha inválida, formato esperado aaaa-mm-dd")
		} else {
			fechaDocumento = &t
		}
	}
	if in.FechaVencimiento != "" {
		t, err := time.Parse("2006-01-02", in.FechaVencimiento)
		if err != nil {
			ve.Add("fechaVencimiento", "fecha inválida, formato esperado aaaa-mm-dd")
		} else {
			fechaVencimiento = &t
		}
	}
	if ve.HasErrors() {
		return nil, ve
	}

	nombre := storage.UniqueFilename("adjunto", in.Nombre, filepath.Ext(archivo.Nombre))
	ruta, err := uc.files.Save(storage.DirDocumentos, nombre, archivo.Content)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	d := &entity.Documento{
		ID:               uuid.New().String(),
		Nombre:           in.Nombre,
		Descripcion:      in.Descripcion,
		TipoDocumento:    in.TipoDocumento,
		NombreArchivo:    archivo.Nombre,
		RutaArchivo:      ruta,
		TamanoArchivo:    archivo.Tamano,
		TipoMime:         archivo.Mime,
		FechaDocumento:   fechaDocumento,
		FechaVencimiento: fechaVencimiento,
		EsConfidencial:   in.EsConfidencial,
		Version:          1,
		Estado:           entity.DocumentoBorrador,
		Tags:             in.Tags,
		ExpedienteID:     expedienteID,
		SubidoPor:        s.UserID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.repo.Create(ctx, d); err != nil {
		if derr := uc.files.Delete(ruta); derr != nil {
			uc.log.Warn().Err(derr).Msg("no se pudo borrar el archivo tras fallo de alta")
		}
		return nil, err
	}
	resp := dto.FromDocumento(d)
	return &resp, nil
}

// ListByExpediente lista los documentos de un expediente visible.
func (uc *DocumentoUseCase) ListByExpediente(ctx context.Context, s scope.Scope, expedienteID string) ([]dto.DocumentoResponse, error) {
	if _, err := uc.expedienteVisible(ctx, s, expedienteID); err != nil {
		return nil, err
	}
	items, err := uc.repo.ListByExpediente(ctx, expedienteID)
	if err != nil {
		return nil, err
	}
	return dto.FromDocumentos(items), nil
}

// GetByID devuelve un documento cuyo expediente esté dentro del alcance.
func (uc *DocumentoUseCase) GetByID(ctx context.Context, s scope.Scope, id string) (*dto.DocumentoResponse, error) {
	d, err := uc.visible(ctx, s, id)
	if err != nil {
		return nil, err
	}
	resp := dto.FromDocumento(d)
	return &resp, nil
}

// Download devuelve ruta y nombre del archivo adjunto.
func (uc *DocumentoUseCase) Download(ctx context.Context, s scope.Scope, id string) (ruta, nombre string, err error) {
	d, err := uc.visible(ctx, s, id)
	if err != nil {
		return "", "", err
	}
	if !uc.files.Exists(d.RutaArchivo) {
		return "", "", domain.ErrFileMissing
	}
	return d.RutaArchivo, d.NombreArchivo, nil
}

// Delete borra el documento y su archivo.
func (uc *DocumentoUseCase) Delete(ctx context.Context, s scope.Scope, id string) error {
	d, err := uc.visible(ctx, s, id)
	if err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, d.ID); err != nil {
		return err
	}
	if err := uc.files.Delete(d.RutaArchivo); err != nil {
		uc.log.Warn().Err(err).Str("ruta", d.RutaArchivo).Msg("no se pudo borrar el archivo del documento")
	}
	return nil
}

func (uc *DocumentoUseCase) visible(ctx context.Context, s scope.Scope, id string) (*entity.Documento, error) {
	d, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	if _, err := uc.expedienteVisible(ctx, s, d.ExpedienteID); err != nil {
		return nil, err
	}
	return d, nil
}
