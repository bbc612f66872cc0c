package repository

import (
	"context"

	"github.com/despacho/expedientes-api/internal/domain/entity"
)

// PagoRepository define el puerto de persistencia para Pago.
type PagoRepository interface {
	// Create devuelve domain.ErrDuplicate ante numero_recibo repetido.
	Create(ctx context.Context, p *entity.Pago) error
	GetByID(ctx context.Context, id string) (*entity.Pago, error)
	ListByExpediente(ctx context.Context, expedienteID string) ([]*entity.Pago, error)
	SetComprobante(ctx context.Context, id, ruta string) error
}
