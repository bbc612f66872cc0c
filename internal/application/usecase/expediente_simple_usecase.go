package usecase

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
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

// maxIntentosSerie acota el reintento de numeración cuando dos cargas
// concurrentes calculan el mismo candidato.
const maxIntentosSerie = 5

// ExpedienteSimpleUseCase casos de uso de la mesa de entradas: expedientes
// simples y actuaciones sobre la misma tabla, discriminados por tipo.
type ExpedienteSimpleUseCase struct {
	repo  repository.ExpedienteSimpleRepository
	gen   ComprobanteGenerator
	files FileStore
	now   serie.Reloj
	log   *logger.Logger
}

// NewExpedienteSimpleUseCase construye el caso de uso.
func NewExpedienteSimpleUseCase(
	repo repository.ExpedienteSimpleRepository,
	gen ComprobanteGenerator,
	files FileStore,
	now serie.Reloj,
	log *logger.Logger,
) *ExpedienteSimpleUseCase {
	return &ExpedienteSimpleUseCase{repo: repo, gen: gen, files: files, now: now, log: log}
}

func (uc *ExpedienteSimpleUseCase) filtro(s scope.Scope) scope.Filtro {
	return s.Filtro(scope.ColumnaCreador)
}

// Create carga un registro. Con número manual se respeta tal cual (duplicado
// devuelve domain.ErrDuplicate); sin número se asigna el siguiente de la serie
// n/aa del año y tipo en curso, reintentando ante choques concurrentes.
func (uc *ExpedienteSimpleUseCase) Create(
	ctx context.Context,
	s scope.Scope,
	in dto.CreateExpedienteSimpleRequest,
	archivo *ArchivoSubido,
	tipoExpediente bool,
) (*dto.ExpedienteSimpleResponse, error) {
	ve := &domain.ValidationError{}
	if in.NombreSolicitante == "" {
		ve.Add("nombreSolicitante", "el nombre del solicitante es obligatorio")
	}
	fechaCarga := uc.now()
	if in.FechaCarga != "" {
		t, err := time.Parse("2006-01-02", in.FechaCarga)
		if err != nil {
			ve.Add("fechaCarga", "fecha inválida, formato esperado aaaa-mm-dd")
		} else {
			fechaCarga = t
		}
	}
	if in.NumeroExpediente != "" {
		if _, _, err := serie.Parsear(serie.FormatoBarra, in.NumeroExpediente); err != nil {
			ve.Add("numeroExpediente", "número inválido, formato esperado n/aa")
		}
	}
	if ve.HasErrors() {
		return nil, ve
	}

	now := uc.now()
	e := &entity.ExpedienteSimple{
		ID:                uuid.New().String(),
		FechaCarga:        fechaCarga,
		NombreSolicitante: in.NombreSolicitante,
		DNI:               in.DNI,
		Area:              in.Area,
		Descripcion:       in.Descripcion,
		TipoExpediente:    tipoExpediente,
		UsuarioCreadorID:  s.UserID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if archivo != nil {
		nombre := storage.UniqueFilename("doc", in.NombreSolicitante, filepath.Ext(archivo.Nombre))
		ruta, err := uc.files.Save(storage.DirDocumentos, nombre, archivo.Content)
		if err != nil {
			return nil, err
		}
		e.NombreArchivoEscaneado = archivo.Nombre
		e.RutaArchivoEscaneado = ruta
	}

	if in.NumeroExpediente != "" {
		e.NumeroExpediente = in.NumeroExpediente
		if err := uc.repo.Create(ctx, e); err != nil {
			return nil, err
		}
	} else if err := uc.createConSerie(ctx, e); err != nil {
		return nil, err
	}

	// Se relee el registro persistido: el join trae al creador, que el
	// comprobante imprime como "recibido por".
	if completo, err := uc.repo.GetByID(ctx, e.ID, uc.filtro(s)); err == nil && completo != nil {
		e = completo
	}
	uc.generarComprobante(ctx, e)

	resp := dto.FromExpedienteSimple(e)
	return &resp, nil
}

// createConSerie asigna el siguiente número de la serie y persiste. El
// constraint único de la tabla cierra la carrera: ante duplicado se recalcula
// el candidato; agotados los intentos se devuelve domain.ErrSerieAgotada.
func (uc *ExpedienteSimpleUseCase) createConSerie(ctx context.Context, e *entity.ExpedienteSimple) error {
	anio := serie.AnioCorto(uc.now)
	for i := 0; i < maxIntentosSerie; i++ {
		max, err := uc.repo.MaxSecuencia(ctx, e.TipoExpediente, anio)
		if err != nil {
			return err
		}
		e.NumeroExpediente = serie.Formatear(serie.FormatoBarra, serie.Siguiente(max), anio)

		err = uc.repo.Create(ctx, e)
		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrDuplicate) {
			return err
		}
		uc.log.Warn().
			Str("numero", e.NumeroExpediente).
			Int("intento", i+1).
			Msg("número de serie en disputa, reintentando")
	}
	return domain.ErrSerieAgotada
}

// generarComprobante es de mejor esfuerzo: un fallo se registra y la carga
// sigue adelante sin comprobante.
func (uc *ExpedienteSimpleUseCase) generarComprobante(ctx context.Context, e *entity.ExpedienteSimple) {
	pdf, err := uc.gen.GenerarComprobanteExpediente(e)
	if err != nil {
		uc.log.Error().Err(err).Str("numero", e.NumeroExpediente).
			Msg("no se pudo generar el comprobante PDF")
		return
	}
	nombre := storage.UniqueFilename("comprobante", e.NumeroExpediente, ".pdf")
	ruta, err := uc.files.SaveBytes(storage.DirComprobantes, nombre, pdf)
	if err != nil {
		uc.log.Error().Err(err).Str("numero", e.NumeroExpediente).
			Msg("no se pudo guardar el comprobante PDF")
		return
	}
	if err := uc.repo.SetComprobante(ctx, e.ID, ruta); err != nil {
		uc.log.Error().Err(err).Str("numero", e.NumeroExpediente).
			Msg("no se pudo registrar la ruta del comprobante")
		return
	}
	e.RutaComprobantePDF = ruta
}

// GetByID devuelve el registro visible para el usuario; fuera de alcance es 404.
func (uc *ExpedienteSimpleUseCase) GetByID(ctx context.Context, s scope.Scope, id string) (*dto.ExpedienteSimpleResponse, error) {
	e, err := uc.repo.GetByID(ctx, id, uc.filtro(s))
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	resp := dto.FromExpedienteSimple(e)
	return &resp, nil
}

// List lista los registros del tipo dado visibles para el usuario.
func (uc *ExpedienteSimpleUseCase) List(
	ctx context.Context,
	s scope.Scope,
	in dto.ListExpedientesSimpleRequest,
	tipoExpediente bool,
) (*dto.ListResponse, error) {
	in.DefaultPage()
	items, total, err := uc.repo.List(ctx, repository.ListExpedientesSimpleParams{
		Filtro:    uc.filtro(s),
		Page:      in.Page,
		Limit:     in.Limit,
		Search:    in.Search,
		Area:      in.Area,
		Tipo:      &tipoExpediente,
		UsuarioID: in.UsuarioID,
	})
	if err != nil {
		return nil, err
	}
	return &dto.ListResponse{
		Items:      dto.FromExpedientesSimple(items),
		Pagination: dto.NewPagination(in.Page, in.Limit, total),
	}, nil
}

// Update edición parcial; el número asignado nunca se reexpide. Un archivo
// nuevo reemplaza al anterior en disco.
func (uc *ExpedienteSimpleUseCase) Update(
	ctx context.Context,
	s scope.Scope,
	id string,
	in dto.UpdateExpedienteSimpleRequest,
	archivo *ArchivoSubido,
) (*dto.ExpedienteSimpleResponse, error) {
	e, err := uc.repo.GetByID(ctx, id, uc.filtro(s))
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}

	if in.FechaCarga != nil {
		t, err := time.Parse("2006-01-02", *in.FechaCarga)
		if err != nil {
			ve := &domain.ValidationError{}
			ve.Add("fechaCarga", "fecha inválida, formato esperado aaaa-mm-dd")
			return nil, ve
		}
		e.FechaCarga = t
	}
	if in.NombreSolicitante != nil {
		e.NombreSolicitante = *in.NombreSolicitante
	}
	if in.DNI != nil {
		e.DNI = *in.DNI
	}
	if in.Area != nil {
		e.Area = *in.Area
	}
	if in.Descripcion != nil {
		e.Descripcion = *in.Descripcion
	}

	if archivo != nil {
		nombre := storage.UniqueFilename("doc", e.NombreSolicitante, filepath.Ext(archivo.Nombre))
		ruta, err := uc.files.Save(storage.DirDocumentos, nombre, archivo.Content)
		if err != nil {
			return nil, err
		}
		if e.RutaArchivoEscaneado != "" {
			if err := uc.files.Delete(e.RutaArchivoEscaneado); err != nil {
				uc.log.Warn().Err(err).Msg("no se pudo borrar el archivo reemplazado")
			}
		}
		e.NombreArchivoEscaneado = archivo.Nombre
		e.RutaArchivoEscaneado = ruta
	}

	e.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	resp := dto.FromExpedienteSimple(e)
	return &resp, nil
}

// Delete borra físicamente el registro y sus archivos. El número queda libre
// para reasignarse: la serie trabaja sobre el máximo vivo.
func (uc *ExpedienteSimpleUseCase) Delete(ctx context.Context, s scope.Scope, id string) error {
	e, err := uc.repo.GetByID(ctx, id, uc.filtro(s))
	if err != nil {
		return err
	}
	if e == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.Delete(ctx, e.ID); err != nil {
		return err
	}
	for _, ruta := range []string{e.RutaArchivoEscaneado, e.RutaComprobantePDF} {
		if err := uc.files.Delete(ruta); err != nil {
			uc.log.Warn().Err(err).Str("ruta", ruta).Msg("no se pudo borrar archivo del registro eliminado")
		}
	}
	return nil
}

// DownloadFile devuelve ruta y nombre del archivo escaneado. Distingue entre
// registro sin archivo y archivo perdido en disco.
func (uc *ExpedienteSimpleUseCase) DownloadFile(ctx context.Context, s scope.Scope, id string) (ruta, nombre string, err error) {
	e, err := uc.repo.GetByID(ctx, id, uc.filtro(s))
	if err != nil {
		return "", "", err
	}
	if e == nil {
		return "", "", domain.ErrNotFound
	}
	if e.RutaArchivoEscaneado == "" {
		return "", "", domain.ErrNoFile
	}
	if !uc.files.Exists(e.RutaArchivoEscaneado) {
		return "", "", domain.ErrFileMissing
	}
	return e.RutaArchivoEscaneado, e.NombreArchivoEscaneado, nil
}

// DownloadComprobante devuelve la ruta del comprobante PDF del registro.
func (uc *ExpedienteSimpleUseCase) DownloadComprobante(ctx context.Context, s scope.Scope, id string) (ruta, nombre string, err error) {
	e, err := uc.repo.GetByID(ctx, id, uc.filtro(s))
	if err != nil {
		return "", "", err
	}
	if e == nil {
		return "", "", domain.ErrNotFound
	}
	if e.RutaComprobantePDF == "" {
		return "", "", domain.ErrNoFile
	}
	if !uc.files.Exists(e.RutaComprobantePDF) {
		return "", "", domain.ErrFileMissing
	}
	nombre = "comprobante-" + strings.ReplaceAll(e.NumeroExpediente, "/", "-") + ".pdf"
	return e.RutaComprobantePDF, nombre, nil
}
