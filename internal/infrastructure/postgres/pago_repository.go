package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/despacho/expedientes-api/internal/domain"
	"github.com/despacho/expedientes-api/internal/domain/entity"
	"github.com/despacho/expedientes-api/internal/domain/repository"
)

var _ repository.PagoRepository = (*PagoRepo)(nil)

const pagoSelect = `
	SELECT p.id, p.numero_recibo, p.concepto, p.monto, p.fecha_pago,
	       p.metodo_pago, p.estado, p.referencia_pago, p.notas,
	       p.comprobante_generado, p.ruta_comprobante, p.expediente_id,
	       p.cliente_id, p.usuario_recibio_id, p.created_at, p.updated_at,
	       c.id, c.nombre, c.apellido, c.email, c.telefono, c.tipo_cliente,
	       u.id, u.nombre, u.apellido, u.email
	FROM pagos p
	JOIN clientes c ON c.id = p.cliente_id
	JOIN usuarios u ON u.id = p.usuario_recibio_id`

// PagoRepo implementación del puerto sobre PostgreSQL. numero_recibo lleva
// constraint UNIQUE.
type PagoRepo struct {
	pool *pgxpool.Pool
}

// NewPagoRepository construye el adaptador de persistencia.
func NewPagoRepository(pool *pgxpool.Pool) *PagoRepo {
	return &PagoRepo{pool: pool}
}

func scanPago(row pgx.Row) (*entity.Pago, error) {
	var p entity.Pago
	var c entity.Cliente
	var u entity.Usuario
	err := row.Scan(
		&p.ID, &p.NumeroRecibo, &p.Concepto, &p.Monto, &p.FechaPago,
		&p.MetodoPago, &p.Estado, &p.ReferenciaPago, &p.Notas,
		&p.ComprobanteGenerado, &p.RutaComprobante, &p.ExpedienteID,
		&p.ClienteID, &p.UsuarioRecibioID, &p.CreatedAt, &p.UpdatedAt,
		&c.ID, &c.Nombre, &c.Apellido, &c.Email, &c.Telefono, &c.TipoCliente,
		&u.ID, &u.Nombre, &u.Apellido, &u.Email,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	p.Cliente = &c
	p.UsuarioRecibio = &u
	return &p, nil
}

// Create inserta el registro. domain.ErrDuplicate ante recibo repetido.
func (r *PagoRepo) Create(ctx context.Context, p *entity.Pago) error {
	query := `
		INSERT INTO pagos (
			id, numero_recibo, concepto, monto, fecha_pago, metodo_pago,
			estado, referencia_pago, notas, comprobante_generado,
			ruta_comprobante, expediente_id, cliente_id, usuario_recibio_id,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.pool.Exec(ctx, query,
		p.ID, p.NumeroRecibo, p.Concepto, p.Monto, p.FechaPago, p.MetodoPago,
		p.Estado, p.ReferenciaPago, p.Notas, p.ComprobanteGenerado,
		p.RutaComprobante, p.ExpedienteID, p.ClienteID, p.UsuarioRecibioID,
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert pago: %w", err)
	}
	return nil
}

// GetByID devuelve nil si no existe.
func (r *PagoRepo) GetByID(ctx context.Context, id string) (*entity.Pago, error) {
	p, err := scanPago(r.pool.QueryRow(ctx, pagoSelect+` WHERE p.id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get pago: %w", err)
	}
	return p, nil
}

// ListByExpediente lista los pagos de un expediente, más recientes primero.
func (r *PagoRepo) ListByExpediente(ctx context.Context, expedienteID string) ([]*entity.Pago, error) {
	rows, err := r.pool.Query(ctx, pagoSelect+` WHERE p.expediente_id = $1 ORDER BY p.fecha_pago DESC`, expedienteID)
	if err != nil {
		return nil, fmt.Errorf("list pagos: %w", err)
	}
	defer rows.Close()

	var out []*entity.Pago
	for rows.Next() {
		p, err := scanPago(rows)
		if err != nil {
			return nil, fmt.Errorf("scan pago: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// SetComprobante registra la ruta del recibo PDF generado.
func (r *PagoRepo) SetComprobante(ctx context.Context, id, ruta string) error {
	query := `UPDATE pagos SET comprobante_generado = TRUE, ruta_comprobante = $2, updated_at = NOW() WHERE id = $1`
	if _, err := r.pool.Exec(ctx, query, id, ruta); err != nil {
		return fmt.Errorf("set comprobante de pago: %w", err)
	}
	return nil
}
