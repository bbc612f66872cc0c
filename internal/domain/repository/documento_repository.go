package repository

import (
	"context"

	"github.com/despacho/expedientes-api/internal/domain/entity"
)

// DocumentoRepository define el puerto de persistencia para Documento.
// El alcance se resuelve a través del expediente al que pertenece.
type DocumentoRepository interface {
	Create(ctx context.Context, d *entity.Documento) error
	GetByID(ctx context.Context, id string) (*entity.Documento, error)
	ListByExpediente(ctx context.Context, expedienteID string) ([]*entity.Documento, error)
	Delete(ctx context.Context, id string) error
}
