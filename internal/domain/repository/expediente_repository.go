package repository

import (
	"context"

	"github.com/despacho/expedientes-api/internal/domain/entity"
	"github.com/despacho/expedientes-api/internal/domain/scope"
)

// ListExpedientesParams filtros de listado de expedientes completos.
type ListExpedientesParams struct {
	Filtro    scope.Filtro
	Page      int
	Limit     int
	Search    string // numero, titulo, descripción
	Estado    string
	TipoCaso  string
	AbogadoID string
	ClienteID string
}

// ExpedienteRepository define el puerto de persistencia para Expediente.
// La propiedad se filtra por abogado_responsable_id, no por el creador.
type ExpedienteRepository interface {
	// Create devuelve domain.ErrDuplicate ante numero_expediente repetido.
	Create(ctx context.Context, e *entity.Expediente) error
	GetByID(ctx context.Context, id string, f scope.Filtro) (*entity.Expediente, error)
	List(ctx context.Context, p ListExpedientesParams) ([]*entity.Expediente, int, error)
	// CountAnio cuenta los expedientes cuyo número pertenece al año dado
	// (4 dígitos); alimenta la numeración aaaa-nnnn.
	CountAnio(ctx context.Context, anio string) (int, error)
	Update(ctx context.Context, e *entity.Expediente) error
	// CountNoArchivadosPorCliente bloquea la baja de clientes con expedientes
	// sin archivar.
	CountNoArchivadosPorCliente(ctx context.Context, clienteID string) (int, error)
}
