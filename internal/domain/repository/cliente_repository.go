package repository

import (
	"context"

	"github.com/despacho/expedientes-api/internal/domain/entity"
)

// ListClientesParams filtros de listado de clientes. Solo se listan activos.
type ListClientesParams struct {
	Page        int
	Limit       int
	Search      string // nombre, apellido, email, dni, rfc
	TipoCliente string
}

// ClienteRepository define el puerto de persistencia para Cliente.
// Sin filtro de propiedad: todo usuario autenticado accede a todos.
type ClienteRepository interface {
	// Create devuelve domain.ErrDuplicate ante dni o rfc repetidos.
	Create(ctx context.Context, c *entity.Cliente) error
	GetByID(ctx context.Context, id string) (*entity.Cliente, error)
	List(ctx context.Context, p ListClientesParams) ([]*entity.Cliente, int, error)
	Update(ctx context.Context, c *entity.Cliente) error
	// Desactivar es la baja lógica (activo = false).
	Desactivar(ctx context.Context, id string) error
}
