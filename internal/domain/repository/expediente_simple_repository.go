package repository

import (
	"context"

	"github.com/despacho/expedientes-api/internal/domain/entity"
	"github.com/despacho/expedientes-api/internal/domain/scope"
)

// ListExpedientesSimpleParams filtros de listado para expedientes simple y
// actuaciones (misma tabla, discriminada por tipo_expediente).
type ListExpedientesSimpleParams struct {
	Filtro    scope.Filtro
	Page      int
	Limit     int
	Search    string // numero, solicitante, dni, descripción
	Area      string
	Tipo      *bool // nil = ambos tipos
	UsuarioID string
}

// ExpedienteSimpleRepository define el puerto de persistencia para la mesa de
// entradas. Create devuelve domain.ErrDuplicate ante violación del constraint
// único de numero_expediente: ese es el cierre de la carrera de numeración.
type ExpedienteSimpleRepository interface {
	Create(ctx context.Context, e *entity.ExpedienteSimple) error
	// GetByID aplica el filtro de propiedad; devuelve nil si no existe o está
	// fuera de alcance (indistinguibles para el llamador).
	GetByID(ctx context.Context, id string, f scope.Filtro) (*entity.ExpedienteSimple, error)
	List(ctx context.Context, p ListExpedientesSimpleParams) ([]*entity.ExpedienteSimple, int, error)
	// ListTodos devuelve todos los registros sin filtro, para el selector de
	// vinculación de decretos.
	ListTodos(ctx context.Context) ([]*entity.ExpedienteSimple, error)
	// MaxSecuencia devuelve la secuencia más alta asignada en el año (2 dígitos)
	// y tipo dados, 0 si la serie está vacía.
	MaxSecuencia(ctx context.Context, tipo bool, anio string) (int, error)
	Update(ctx context.Context, e *entity.ExpedienteSimple) error
	Delete(ctx context.Context, id string) error
	SetComprobante(ctx context.Context, id, ruta string) error
	CountByCreador(ctx context.Context, usuarioID string) (int, error)
}
