package repository

import (
	"context"

	"github.com/despacho/expedientes-api/internal/domain/entity"
	"github.com/despacho/expedientes-api/internal/domain/scope"
)

// ListDecretosParams filtros de listado de decretos y resoluciones.
type ListDecretosParams struct {
	Filtro               scope.Filtro
	Page                 int
	Limit                int
	Search               string // numero, titulo, autoridad emisora
	TipoDocumento        string
	Estado               string
	ExpedienteVinculado  string // numero_expediente_vinculado exacto
}

// DecretoRepository define el puerto de persistencia para Decreto.
type DecretoRepository interface {
	// Create devuelve domain.ErrDuplicate si numero_decreto ya existe.
	Create(ctx context.Context, d *entity.Decreto) error
	GetByID(ctx context.Context, id string, f scope.Filtro) (*entity.Decreto, error)
	List(ctx context.Context, p ListDecretosParams) ([]*entity.Decreto, int, error)
	// ExistsNumero verifica unicidad global del número excluyendo excludeID
	// (vacío en creación).
	ExistsNumero(ctx context.Context, numero, excludeID string) (bool, error)
	Update(ctx context.Context, d *entity.Decreto) error
	Delete(ctx context.Context, id string) error
}
