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

// DecretoUseCase casos de uso de decretos y resoluciones. El número lo
// suministra el usuario: aquí no hay serie, solo unicidad global.
type DecretoUseCase struct {
	repo     repository.DecretoRepository
	expRepo  repository.ExpedienteSimpleRepository
	files    FileStore
	now      serie.Reloj
	log      *logger.Logger
}

// NewDecretoUseCase construye el caso de uso.
func NewDecretoUseCase(
	repo repository.DecretoRepository,
	expRepo repository.ExpedienteSimpleRepository,
	files FileStore,
	now serie.Reloj,
	log *logger.Logger,
) *DecretoUseCase {
	return &DecretoUseCase{repo: repo, expRepo: expRepo, files: files, now: now, log: log}
}

func (uc *DecretoUseCase) filtro(s scope.Scope) scope.Filtro {
	return s.Filtro(scope.ColumnaCreador)
}

// Create registra un decreto o resolución. El número se pre-verifica para dar
// un conflicto claro; el constraint único de la tabla cubre la carrera.
func (uc *DecretoUseCase) Create(
	ctx context.Context,
	s scope.Scope,
	in dto.CreateDecretoRequest,
	archivo *ArchivoSubido,
) (*dto.DecretoResponse, error) {
	ve := &domain.ValidationError{}
	if in.NumeroDecreto == "" {
		ve.Add("numeroDecreto", "el número es obligatorio")
	}
	if !entity.TipoDocumentoValido(in.TipoDocumento) {
		ve.Add("tipoDocumento", "tipo inválido: decreto o resolucion")
	}
	if in.Titulo == "" {
		ve.Add("titulo", "el título es obligatorio")
	}
	var fechaEmision time.Time
	if in.FechaEmision == "" {
		ve.Add("fechaEmision", "la fecha de emisión es obligatoria")
	} else {
		t, err := time.Parse("2006-01-02", in.FechaEmision)
		if err != nil {
			ve.Add("fechaEmision", "fecha inválida, formato esperado aaaa-mm-dd")
		} else {
			fechaEmision = t
		}
	}
	var fechaVigencia *time.Time
	if in.FechaVigencia != "" {
		t, err := time.Parse("2006-01-02", in.FechaVigencia)
		if err != nil {
			ve.Add("fechaVigencia", "fecha inválida, formato esperado aaaa-mm-dd")
		} else {
			fechaVigencia = &t
		}
	}
	estado := in.Estado
	if estado == "" {
		estado = entity.DecretoVigente
	} else if !entity.EstadoDecretoValido(estado) {
		ve.Add("estado", "estado inválido")
	}
	if ve.HasErrors() {
		return nil, ve
	}

	existe, err := uc.repo.ExistsNumero(ctx, in.NumeroDecreto, "")
	if err != nil {
		return nil, err
	}
	if existe {
		return nil, domain.ErrDuplicate
	}

	// El vínculo, si viene, debe apuntar a un registro existente.
	if in.ExpedienteSimpleID != "" {
		vinculado, err := uc.expRepo.GetByID(ctx, in.ExpedienteSimpleID, scope.Todo())
		if err != nil {
			return nil, err
		}
		if vinculado == nil {
			ve.Add("expedienteSimpleId", "el expediente vinculado no existe")
			return nil, ve
		}
	}

	now := uc.now()
	d := &entity.Decreto{
		ID:                        uuid.New().String(),
		NumeroDecreto:             in.NumeroDecreto,
		TipoDocumento:             in.TipoDocumento,
		Titulo:                    in.Titulo,
		Descripcion:               in.Descripcion,
		FechaEmision:              fechaEmision,
		FechaVigencia:             fechaVigencia,
		Estado:                    estado,
		AutoridadEmisora:          in.AutoridadEmisora,
		Secretaria:                in.Secretaria,
		NumeroExpedienteVinculado: in.NumeroExpedienteVinculado,
		TipoExpedienteVinculado:   in.TipoExpedienteVinculado,
		ExpedienteSimpleID:        in.ExpedienteSimpleID,
		Notas:                     in.Notas,
		UsuarioCreadorID:          s.UserID,
		CreatedAt:                 now,
		UpdatedAt:                 now,
	}

	if archivo != nil {
		nombre := storage.UniqueFilename("decreto", in.NumeroDecreto, filepath.Ext(archivo.Nombre))
		ruta, err := uc.files.Save(storage.DirDocumentos, nombre, archivo.Content)
		if err != nil {
			return nil, err
		}
		d.NombreArchivo = archivo.Nombre
		d.RutaArchivo = ruta
	}

	if err := uc.repo.Create(ctx, d); err != nil {
		return nil, err
	}
	resp := dto.FromDecreto(d)
	return &resp, nil
}

// GetByID devuelve el decreto visible para el usuario; fuera de alcance es 404.
func (uc *DecretoUseCase) GetByID(ctx context.Context, s scope.Scope, id string) (*dto.DecretoResponse, error) {
	d, err := uc.repo.GetByID(ctx, id, uc.filtro(s))
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	resp := dto.FromDecreto(d)
	return &resp, nil
}

// List lista decretos visibles con búsqueda y filtros.
func (uc *DecretoUseCase) List(ctx context.Context, s scope.Scope, in dto.ListDecretosRequest) (*dto.ListResponse, error) {
	in.DefaultPage()
	items, total, err := uc.repo.List(ctx, repository.ListDecretosParams{
		Filtro:        uc.filtro(s),
		Page:          in.Page,
		Limit:         in.Limit,
		Search:        in.Search,
		TipoDocumento: in.TipoDocumento,
		Estado:        in.Estado,
	})
	if err != nil {
		return nil, err
	}
	return &dto.ListResponse{
		Items:      dto.FromDecretos(items),
		Pagination: dto.NewPagination(in.Page, in.Limit, total),
	}, nil
}

// Update edición parcial. Si cambia el número se re-verifica la unicidad
// excluyendo el propio registro.
func (uc *DecretoUseCase) Update(
	ctx context.Context,
	s scope.Scope,
	id string,
	in dto.UpdateDecretoRequest,
	archivo *ArchivoSubido,
) (*dto.DecretoResponse, error) {
	d, err := uc.repo.GetByID(ctx, id, uc.filtro(s))
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}

	ve := &domain.ValidationError{}
	if in.NumeroDecreto != nil && *in.NumeroDecreto != d.NumeroDecreto {
		if *in.NumeroDecreto == "" {
			ve.Add("numeroDecreto", "el número no puede quedar vacío")
		} else {
			existe, err := uc.repo.ExistsNumero(ctx, *in.NumeroDecreto, d.ID)
			if err != nil {
				return nil, err
			}
			if existe {
				return nil, domain.ErrDuplicate
			}
			d.NumeroDecreto = *in.NumeroDecreto
		}
	}
	if in.TipoDocumento != nil {
		if !entity.TipoDocumentoValido(*in.TipoDocumento) {
			ve.Add("tipoDocumento", "tipo inválido: decreto o resolucion")
		} else {
			d.TipoDocumento = *in.TipoDocumento
		}
	}
	if in.Titulo != nil {
		if *in.Titulo == "" {
			ve.Add("titulo", "el título no puede quedar vacío")
		} else {
			d.Titulo = *in.Titulo
		}
	}
	if in.Descripcion != nil {
		d.Descripcion = *in.Descripcion
	}
	if in.FechaEmision != nil {
		t, err := time.Parse("2006-01-02", *in.FechaEmision)
		if err != nil {
			ve.Add("fechaEmision", "fecha inválida, formato esperado aaaa-mm-dd")
		} else {
			d.FechaEmision = t
		}
	}
	if in.FechaVigencia != nil {
		if *in.FechaVigencia == "" {
			d.FechaVigencia = nil
		} else {
			t, err := time.Parse("2006-01-02", *in.FechaVigencia)
			if err != nil {
				ve.Add("fechaVigencia", "fecha inválida, formato esperado aaaa-mm-dd")
			} else {
				d.FechaVigencia = &t
			}
		}
	}
	if in.Estado != nil {
		if !entity.EstadoDecretoValido(*in.Estado) {
			ve.Add("estado", "estado inválido")
		} else {
			d.Estado = *in.Estado
		}
	}
	if in.AutoridadEmisora != nil {
		d.AutoridadEmisora = *in.AutoridadEmisora
	}
	if in.Secretaria != nil {
		d.Secretaria = *in.Secretaria
	}
	if in.NumeroExpedienteVinculado != nil {
		d.NumeroExpedienteVinculado = *in.NumeroExpedienteVinculado
	}
	if in.TipoExpedienteVinculado != nil {
		d.TipoExpedienteVinculado = *in.TipoExpedienteVinculado
	}
	if in.ExpedienteSimpleID != nil {
		if *in.ExpedienteSimpleID == "" {
			d.ExpedienteSimpleID = ""
		} else {
			vinculado, err := uc.expRepo.GetByID(ctx, *in.ExpedienteSimpleID, scope.Todo())
			if err != nil {
				return nil, err
			}
			if vinculado == nil {
				ve.Add("expedienteSimpleId", "el expediente vinculado no existe")
			} else {
				d.ExpedienteSimpleID = *in.ExpedienteSimpleID
			}
		}
	}
	if in.Notas != nil {
		d.Notas = *in.Notas
	}
	if ve.HasErrors() {
		return nil, ve
	}

	if archivo != nil {
		nombre := storage.UniqueFilename("decreto", d.NumeroDecreto, filepath.Ext(archivo.Nombre))
		ruta, err := uc.files.Save(storage.DirDocumentos, nombre, archivo.Content)
		if err != nil {
			return nil, err
		}
		if d.RutaArchivo != "" {
			if err := uc.files.Delete(d.RutaArchivo); err != nil {
				uc.log.Warn().Err(err).Msg("no se pudo borrar el archivo reemplazado")
			}
		}
		d.NombreArchivo = archivo.Nombre
		d.RutaArchivo = ruta
	}

	d.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, d); err != nil {
		return nil, err
	}
	resp := dto.FromDecreto(d)
	return &resp, nil
}

// Delete borra físicamente el decreto y su archivo adjunto.
func (uc *DecretoUseCase) Delete(ctx context.Context, s scope.Scope, id string) error {
	d, err := uc.repo.GetByID(ctx, id, uc.filtro(s))
	if err != nil {
		return err
	}
	if d == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.Delete(ctx, d.ID); err != nil {
		return err
	}
	if err := uc.files.Delete(d.RutaArchivo); err != nil {
		uc.log.Warn().Err(err).Str("ruta", d.RutaArchivo).Msg("no se pudo borrar el archivo del decreto")
	}
	return nil
}

// ExpedientesForLink devuelve todos los registros de mesa de entradas para el
// selector de vinculación, sin filtro de propiedad: vincular requiere ver todo.
func (uc *DecretoUseCase) ExpedientesForLink(ctx context.Context) ([]dto.ExpedienteSimpleResponse, error) {
	items, err := uc.expRepo.ListTodos(ctx)
	if err != nil {
		return nil, err
	}
	return dto.FromExpedientesSimple(items), nil
}

// ExpedienteVinculado devuelve el registro vinculado a un decreto.
func (uc *DecretoUseCase) ExpedienteVinculado(ctx context.Context, s scope.Scope, id string) (*dto.ExpedienteSimpleResponse, error) {
	d, err := uc.repo.GetByID(ctx, id, uc.filtro(s))
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	if d.ExpedienteSimpleID == "" {
		return nil, domain.ErrNotFound
	}
	e, err := uc.expRepo.GetByID(ctx, d.ExpedienteSimpleID, scope.Todo())
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	resp := dto.FromExpedienteSimple(e)
	return &resp, nil
}

// DownloadFile devuelve el archivo propio del decreto.
func (uc *DecretoUseCase) DownloadFile(ctx context.Context, s scope.Scope, id string) (ruta, nombre string, err error) {
	d, err := uc.repo.GetByID(ctx, id, uc.filtro(s))
	if err != nil {
		return "", "", err
	}
	if d == nil {
		return "", "", domain.ErrNotFound
	}
	if d.RutaArchivo == "" {
		return "", "", domain.ErrNoFile
	}
	if !uc.files.Exists(d.RutaArchivo) {
		return "", "", domain.ErrFileMissing
	}
	return d.RutaArchivo, d.NombreArchivo, nil
}

// DownloadExpedienteFile devuelve el archivo escaneado del expediente vinculado.
func (uc *DecretoUseCase) DownloadExpedienteFile(ctx context.Context, s scope.Scope, id string) (ruta, nombre string, err error) {
	d, err := uc.repo.GetByID(ctx, id, uc.filtro(s))
	if err != nil {
		return "", "", err
	}
	if d == nil {
		return "", "", domain.ErrNotFound
	}
	if d.ExpedienteSimpleID == "" {
		return "", "", domain.ErrNoFile
	}
	e, err := uc.expRepo.GetByID(ctx, d.ExpedienteSimpleID, scope.Todo())
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
