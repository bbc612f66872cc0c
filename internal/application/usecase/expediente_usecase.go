package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/despacho/expedientes-api/internal/application/dto"
	"github.com/despacho/expedientes-api/internal/domain"
	"github.com/despacho/expedientes-api/internal/domain/entity"
	"github.com/despacho/expedientes-api/internal/domain/repository"
	"github.com/despacho/expedientes-api/internal/domain/scope"
	"github.com/despacho/expedientes-api/internal/domain/serie"
	"github.com/despacho/expedientes-api/pkg/logger"
)

// ExpedienteUseCase casos de uso de expedientes jurídicos completos. La
// numeración aaaa-nnnn sale del conteo anual: como la baja es lógica el conteo
// nunca retrocede y el siguiente número siempre es nuevo.
type ExpedienteUseCase struct {
	repo        repository.ExpedienteRepository
	clienteRepo repository.ClienteRepository
	userRepo    repository.UsuarioRepository
	now         serie.Reloj
	log         *logger.Logger
}

// NewExpedienteUseCase construye el caso de uso.
func NewExpedienteUseCase(
	repo repository.ExpedienteRepository,
	clienteRepo repository.ClienteRepository,
	userRepo repository.UsuarioRepository,
	now serie.Reloj,
	log *logger.Logger,
) *ExpedienteUseCase {
	return &ExpedienteUseCase{repo: repo, clienteRepo: clienteRepo, userRepo: userRepo, now: now, log: log}
}

func (uc *ExpedienteUseCase) filtro(s scope.Scope) scope.Filtro {
	return s.Filtro(scope.ColumnaAbogado)
}

// Create abre un expediente. El abogado responsable por defecto es el creador;
// el cliente debe existir y estar activo.
func (uc *ExpedienteUseCase) Create(ctx context.Context, s scope.Scope, in dto.CreateExpedienteRequest) (*dto.ExpedienteResponse, error) {
	ve := &domain.ValidationError{}
	if in.Titulo == "" {
		ve.Add("titulo", "el título es obligatorio")
	}
	if !entity.TipoCasoValido(in.TipoCaso) {
		ve.Add("tipoCaso", "tipo de caso inválido")
	}
	prioridad := in.Prioridad
	if prioridad == "" {
		prioridad = "media"
	} else if !entity.PrioridadValida(prioridad) {
		ve.Add("prioridad", "prioridad inválida")
	}
	fechaInicio := uc.now()
	if in.FechaInicio != "" {
		t, err := time.Parse("2006-01-02", in.FechaInicio)
		if err != nil {
			ve.Add("fechaInicio", "fecha inválida, formato esperado aaaa-mm-dd")
		} else {
			fechaInicio = t
		}
	}
	if in.HonorariosEstimados.IsNegative() {
		ve.Add("honorariosEstimados", "los honorarios no pueden ser negativos")
	}
	if in.ClienteID == "" {
		ve.Add("clienteId", "el cliente es obligatorio")
	}
	if ve.HasErrors() {
		return nil, ve
	}

	cliente, err := uc.clienteRepo.GetByID(ctx, in.ClienteID)
	if err != nil {
		return nil, err
	}
	if cliente == nil || !cliente.Activo {
		ve.Add("clienteId", "el cliente no existe o está dado de baja")
		return nil, ve
	}

	abogadoID := in.AbogadoResponsableID
	if abogadoID == "" {
		abogadoID = s.UserID
	} else if abogadoID != s.UserID {
		abogado, err := uc.userRepo.GetByID(ctx, abogadoID)
		if err != nil {
			return nil, err
		}
		if abogado == nil || !abogado.Activo {
			ve.Add("abogadoResponsableId", "el abogado responsable no existe o está inactivo")
			return nil, ve
		}
	}

	now := uc.now()
	e := &entity.Expediente{
		ID:                   uuid.New().String(),
		Titulo:               in.Titulo,
		Descripcion:          in.Descripcion,
		TipoCaso:             in.TipoCaso,
		Estado:               entity.ExpedienteActivo,
		Prioridad:            prioridad,
		FechaInicio:          fechaInicio,
		HonorariosEstimados:  in.HonorariosEstimados,
		HonorariosPagados:    decimal.Zero,
		Juzgado:              in.Juzgado,
		NumeroJuzgado:        in.NumeroJuzgado,
		Juez:                 in.Juez,
		Contraparte:          in.Contraparte,
		Notas:                in.Notas,
		ClienteID:            in.ClienteID,
		AbogadoResponsableID: abogadoID,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if err := uc.createConNumero(ctx, e); err != nil {
		return nil, err
	}
	e.Cliente = cliente

	resp := dto.FromExpediente(e)
	return &resp, nil
}

// createConNumero asigna el correlativo anual aaaa-nnnn y persiste. El
// constraint único cierra la carrera entre aperturas concurrentes.
func (uc *ExpedienteUseCase) createConNumero(ctx context.Context, e *entity.Expediente) error {
	anio := serie.AnioLargo(uc.now)
	for i := 0; i < maxIntentosSerie; i++ {
		count, err := uc.repo.CountAnio(ctx, anio)
		if err != nil {
			return err
		}
		e.NumeroExpediente = serie.Formatear(serie.FormatoAnioPadded, count+1, anio)

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
			Msg("número de expediente en disputa, reintentando")
	}
	return domain.ErrSerieAgotada
}

// GetByID devuelve el expediente visible para el usuario; fuera de alcance es 404.
func (uc *ExpedienteUseCase) GetByID(ctx context.Context, s scope.Scope, id string) (*dto.ExpedienteResponse, error) {
	e, err := uc.repo.GetByID(ctx, id, uc.filtro(s))
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	resp := dto.FromExpediente(e)
	return &resp, nil
}

// List lista expedientes visibles con búsqueda y filtros.
func (uc *ExpedienteUseCase) List(ctx context.Context, s scope.Scope, in dto.ListExpedientesRequest) (*dto.ListResponse, error) {
	in.DefaultPage()
	items, total, err := uc.repo.List(ctx, repository.ListExpedientesParams{
		Filtro:    uc.filtro(s),
		Page:      in.Page,
		Limit:     in.Limit,
		Search:    in.Search,
		Estado:    in.Estado,
		TipoCaso:  in.TipoCaso,
		AbogadoID: in.AbogadoID,
		ClienteID: in.ClienteID,
	})
	if err != nil {
		return nil, err
	}
	return &dto.ListResponse{
		Items:      dto.FromExpedientes(items),
		Pagination: dto.NewPagination(in.Page, in.Limit, total),
	}, nil
}

// Update edición parcial; el número nunca se reexpide.
func (uc *ExpedienteUseCase) Update(ctx context.Context, s scope.Scope, id string, in dto.UpdateExpedienteRequest) (*dto.ExpedienteResponse, error) {
	e, err := uc.repo.GetByID(ctx, id, uc.filtro(s))
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}

	ve := &domain.ValidationError{}
	if in.Titulo != nil {
		if *in.Titulo == "" {
			ve.Add("titulo", "el título no puede quedar vacío")
		} else {
			e.Titulo = *in.Titulo
		}
	}
	if in.Descripcion != nil {
		e.Descripcion = *in.Descripcion
	}
	if in.TipoCaso != nil {
		if !entity.TipoCasoValido(*in.TipoCaso) {
			ve.Add("tipoCaso", "tipo de caso inválido")
		} else {
			e.TipoCaso = *in.TipoCaso
		}
	}
	if in.Estado != nil {
		if !entity.EstadoExpedienteValido(*in.Estado) {
			ve.Add("estado", "estado inválido")
		} else {
			e.Estado = *in.Estado
		}
	}
	if in.Prioridad != nil {
		if !entity.PrioridadValida(*in.Prioridad) {
			ve.Add("prioridad", "prioridad inválida")
		} else {
			e.Prioridad = *in.Prioridad
		}
	}
	if in.FechaInicio != nil {
		t, err := time.Parse("2006-01-02", *in.FechaInicio)
		if err != nil {
			ve.Add("fechaInicio", "fecha inválida, formato esperado aaaa-mm-dd")
		} else {
			e.FechaInicio = t
		}
	}
	if in.FechaCierre != nil {
		if *in.FechaCierre == "" {
			e.FechaCierre = nil
		} else {
			t, err := time.Parse("2006-01-02", *in.FechaCierre)
			if err != nil {
				ve.Add("fechaCierre", "fecha inválida, formato esperado aaaa-mm-dd")
			} else {
				e.FechaCierre = &t
			}
		}
	}
	if in.HonorariosEstimados != nil {
		if in.HonorariosEstimados.IsNegative() {
			ve.Add("honorariosEstimados", "los honorarios no pueden ser negativos")
		} else {
			e.HonorariosEstimados = *in.HonorariosEstimados
		}
	}
	if in.HonorariosPagados != nil {
		if in.HonorariosPagados.IsNegative() {
			ve.Add("honorariosPagados", "los honorarios no pueden ser negativos")
		} else {
			e.HonorariosPagados = *in.HonorariosPagados
		}
	}
	if in.Juzgado != nil {
		e.Juzgado = *in.Juzgado
	}
	if in.NumeroJuzgado != nil {
		e.NumeroJuzgado = *in.NumeroJuzgado
	}
	if in.Juez != nil {
		e.Juez = *in.Juez
	}
	if in.Contraparte != nil {
		e.Contraparte = *in.Contraparte
	}
	if in.Notas != nil {
		e.Notas = *in.Notas
	}
	if in.ClienteID != nil && *in.ClienteID != e.ClienteID {
		cliente, err := uc.clienteRepo.GetByID(ctx, *in.ClienteID)
		if err != nil {
			return nil, err
		}
		if cliente == nil || !cliente.Activo {
			ve.Add("clienteId", "el cliente no existe o está dado de baja")
		} else {
			e.ClienteID = *in.ClienteID
			e.Cliente = cliente
		}
	}
	if in.AbogadoResponsableID != nil && *in.AbogadoResponsableID != e.AbogadoResponsableID {
		abogado, err := uc.userRepo.GetByID(ctx, *in.AbogadoResponsableID)
		if err != nil {
			return nil, err
		}
		if abogado == nil || !abogado.Activo {
			ve.Add("abogadoResponsableId", "el abogado responsable no existe o está inactivo")
		} else {
			e.AbogadoResponsableID = *in.AbogadoResponsableID
			e.AbogadoResponsable = abogado
		}
	}
	if ve.HasErrors() {
		return nil, ve
	}

	e.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	resp := dto.FromExpediente(e)
	return &resp, nil
}

// Archive es la baja lógica: el expediente pasa a archivado y conserva su
// número, que por eso nunca se reasigna.
func (uc *ExpedienteUseCase) Archive(ctx context.Context, s scope.Scope, id string) error {
	e, err := uc.repo.GetByID(ctx, id, uc.filtro(s))
	if err != nil {
		return err
	}
	if e == nil {
		return domain.ErrNotFound
	}
	if e.Estado == entity.ExpedienteArchivado {
		return domain.ErrConflict
	}
	e.Estado = entity.ExpedienteArchivado
	now := uc.now()
	e.FechaCierre = &now
	e.UpdatedAt = now
	return uc.repo.Update(ctx, e)
}
