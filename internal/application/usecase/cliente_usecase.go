package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/despacho/expedientes-api/internal/application/dto"
	"github.com/despacho/expedientes-api/internal/domain"
	"github.com/despacho/expedientes-api/internal/domain/entity"
	"github.com/despacho/expedientes-api/internal/domain/repository"
	"github.com/despacho/expedientes-api/internal/domain/serie"
)

// ClienteUseCase casos de uso de clientes. Sin filtro de propiedad: la cartera
// es compartida por todo el despacho.
type ClienteUseCase struct {
	repo    repository.ClienteRepository
	expRepo repository.ExpedienteRepository
	now     serie.Reloj
}

// NewClienteUseCase construye el caso de uso.
func NewClienteUseCase(repo repository.ClienteRepository, expRepo repository.ExpedienteRepository, now serie.Reloj) *ClienteUseCase {
	return &ClienteUseCase{repo: repo, expRepo: expRepo, now: now}
}

// Create da de alta un cliente. dni y rfc duplicados devuelven ErrDuplicate.
func (uc *ClienteUseCase) Create(ctx context.Context, in dto.CreateClienteRequest) (*dto.ClienteResponse, error) {
	ve := &domain.ValidationError{}
	if in.Nombre == "" {
		ve.Add("nombre", "el nombre es obligatorio")
	}
	if in.Apellido == "" {
		ve.Add("apellido", "el apellido es obligatorio")
	}
	if in.DNI == "" {
		ve.Add("dni", "el dni es obligatorio")
	}
	if !entity.TipoClienteValido(in.TipoCliente) {
		ve.Add("tipoCliente", "tipo inválido: persona_fisica o persona_moral")
	}
	var fechaNacimiento *time.Time
	if in.FechaNacimiento != "" {
		t, err := time.Parse("2006-01-02", in.FechaNacimiento)
		if err != nil {
			ve.Add("fechaNacimiento", "fecha inválida, formato esperado aaaa-mm-dd")
		} else {
			fechaNacimiento = &t
		}
	}
	if ve.HasErrors() {
		return nil, ve
	}

	now := uc.now()
	c := &entity.Cliente{
		ID:              uuid.New().String(),
		Nombre:          in.Nombre,
		Apellido:        in.Apellido,
		Email:           in.Email,
		Telefono:        in.Telefono,
		Direccion:       in.Direccion,
		DNI:             in.DNI,
		RFC:             in.RFC,
		TipoCliente:     in.TipoCliente,
		FechaNacimiento: fechaNacimiento,
		Profesion:       in.Profesion,
		EstadoCivil:     in.EstadoCivil,
		Activo:          true,
		Notas:           in.Notas,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	resp := dto.FromCliente(c)
	return &resp, nil
}

// GetByID devuelve el cliente, incluidos los dados de baja (historial).
func (uc *ClienteUseCase) GetByID(ctx context.Context, id string) (*dto.ClienteResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	resp := dto.FromCliente(c)
	return &resp, nil
}

// List lista clientes activos.
func (uc *ClienteUseCase) List(ctx context.Context, in dto.ListClientesRequest) (*dto.ListResponse, error) {
	in.DefaultPage()
	items, total, err := uc.repo.List(ctx, repository.ListClientesParams{
		Page:        in.Page,
		Limit:       in.Limit,
		Search:      in.Search,
		TipoCliente: in.TipoCliente,
	})
	if err != nil {
		return nil, err
	}
	return &dto.ListResponse{
		Items:      dto.FromClientes(items),
		Pagination: dto.NewPagination(in.Page, in.Limit, total),
	}, nil
}

// Update edición parcial; dni y rfc se re-verifican vía constraint único.
func (uc *ClienteUseCase) Update(ctx context.Context, id string, in dto.UpdateClienteRequest) (*dto.ClienteResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}

	ve := &domain.ValidationError{}
	if in.Nombre != nil {
		if *in.Nombre == "" {
			ve.Add("nombre", "el nombre no puede quedar vacío")
		} else {
			c.Nombre = *in.Nombre
		}
	}
	if in.Apellido != nil {
		if *in.Apellido == "" {
			ve.Add("apellido", "el apellido no puede quedar vacío")
		} else {
			c.Apellido = *in.Apellido
		}
	}
	if in.Email != nil {
		c.Email = *in.Email
	}
	if in.Telefono != nil {
		c.Telefono = *in.Telefono
	}
	if in.Direccion != nil {
		c.Direccion = *in.Direccion
	}
	if in.DNI != nil {
		if *in.DNI == "" {
			ve.Add("dni", "el dni no puede quedar vacío")
		} else {
			c.DNI = *in.DNI
		}
	}
	if in.RFC != nil {
		c.RFC = *in.RFC
	}
	if in.TipoCliente != nil {
		if !entity.TipoClienteValido(*in.TipoCliente) {
			ve.Add("tipoCliente", "tipo inválido: persona_fisica o persona_moral")
		} else {
			c.TipoCliente = *in.TipoCliente
		}
	}
	if in.FechaNacimiento != nil {
		if *in.FechaNacimiento == "" {
			c.FechaNacimiento = nil
		} else {
			t, err := time.Parse("2006-01-02", *in.FechaNacimiento)
			if err != nil {
				ve.Add("fechaNacimiento", "fecha inválida, formato esperado aaaa-mm-dd")
			} else {
				c.FechaNacimiento = &t
			}
		}
	}
	if in.Profesion != nil {
		c.Profesion = *in.Profesion
	}
	if in.EstadoCivil != nil {
		c.EstadoCivil = *in.EstadoCivil
	}
	if in.Notas != nil {
		c.Notas = *in.Notas
	}
	if ve.HasErrors() {
		return nil, ve
	}

	c.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	resp := dto.FromCliente(c)
	return &resp, nil
}

// Delete es la baja lógica. Se bloquea mientras el cliente tenga expedientes
// sin archivar: primero se cierra el trabajo, después se da de baja.
func (uc *ClienteUseCase) Delete(ctx context.Context, id string) error {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrNotFound
	}
	if !c.Activo {
		return domain.ErrConflict
	}
	vivos, err := uc.expRepo.CountNoArchivadosPorCliente(ctx, id)
	if err != nil {
		return err
	}
	if vivos > 0 {
		return domain.ErrConflict
	}
	return uc.repo.Desactivar(ctx, id)
}
