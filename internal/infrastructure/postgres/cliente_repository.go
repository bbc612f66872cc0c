package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/despacho/expedientes-api/internal/domain"
	"github.com/despacho/expedientes-api/internal/domain/entity"
	"github.com/despacho/expedientes-api/internal/domain/repository"
)

var _ repository.ClienteRepository = (*ClienteRepo)(nil)

const clienteSelect = `
	SELECT id, nombre, apellido, email, telefono, direccion, dni, rfc,
	       tipo_cliente, fecha_nacimiento, profesion, estado_civil, activo,
	       notas, created_at, updated_at
	FROM clientes`

// ClienteRepo implementación del puerto sobre PostgreSQL. dni y rfc llevan
// constraint UNIQUE; la baja es lógica y los listados solo devuelven activos.
type ClienteRepo struct {
	pool *pgxpool.Pool
}

// NewClienteRepository construye el adaptador de persistencia.
func NewClienteRepository(pool *pgxpool.Pool) *ClienteRepo {
	return &ClienteRepo{pool: pool}
}

func scanCliente(row pgx.Row) (*entity.Cliente, error) {
	var c entity.Cliente
	err := row.Scan(
		&c.ID, &c.Nombre, &c.Apellido, &c.Email, &c.Telefono, &c.Direccion,
		&c.DNI, &c.RFC, &c.TipoCliente, &c.FechaNacimiento, &c.Profesion,
		&c.EstadoCivil, &c.Activo, &c.Notas, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// Create inserta el registro. domain.ErrDuplicate ante dni o rfc repetidos.
func (r *ClienteRepo) Create(ctx context.Context, c *entity.Cliente) error {
	query := `
		INSERT INTO clientes (
			id, nombre, apellido, email, telefono, direccion, dni, rfc,
			tipo_cliente, fecha_nacimiento, profesion, estado_civil, activo,
			notas, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.pool.Exec(ctx, query,
		c.ID, c.Nombre, c.Apellido, c.Email, c.Telefono, c.Direccion, c.DNI,
		c.RFC, c.TipoCliente, c.FechaNacimiento, c.Profesion, c.EstadoCivil,
		c.Activo, c.Notas, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert cliente: %w", err)
	}
	return nil
}

// GetByID devuelve nil si no existe. Incluye clientes dados de baja para que
// sus expedientes históricos sigan mostrando al titular.
func (r *ClienteRepo) GetByID(ctx context.Context, id string) (*entity.Cliente, error) {
	c, err := scanCliente(r.pool.QueryRow(ctx, clienteSelect+` WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get cliente: %w", err)
	}
	return c, nil
}

// List lista clientes activos con búsqueda y paginación.
func (r *ClienteRepo) List(ctx context.Context, p repository.ListClientesParams) ([]*entity.Cliente, int, error) {
	where := []string{"activo = TRUE"}
	var args []any

	if p.Search != "" {
		args = append(args, likePattern(p.Search))
		where = append(where, clausulaBusqueda(len(args), "nombre", "apellido", "email", "dni", "rfc"))
	}
	if p.TipoCliente != "" {
		args = append(args, p.TipoCliente)
		where = append(where, fmt.Sprintf("tipo_cliente = $%d", len(args)))
	}
	cond := strings.Join(where, " AND ")

	var total int
	countQuery := `SELECT COUNT(*) FROM clientes WHERE ` + cond
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count clientes: %w", err)
	}

	limit, offset := paginacion(p.Page, p.Limit)
	args = append(args, limit, offset)
	query := fmt.Sprintf("%s WHERE %s ORDER BY apellido, nombre LIMIT $%d OFFSET $%d",
		clienteSelect, cond, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list clientes: %w", err)
	}
	defer rows.Close()

	var out []*entity.Cliente
	for rows.Next() {
		c, err := scanCliente(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan cliente: %w", err)
		}
		out = append(out, c)
	}
	return out, total, rows.Err()
}

// Update persiste los campos editables. domain.ErrDuplicate si dni o rfc chocan.
func (r *ClienteRepo) Update(ctx context.Context, c *entity.Cliente) error {
	query := `
		UPDATE clientes SET
			nombre = $2, apellido = $3, email = $4, telefono = $5,
			direccion = $6, dni = $7, rfc = $8, tipo_cliente = $9,
			fecha_nacimiento = $10, profesion = $11, estado_civil = $12,
			notas = $13, updated_at = $14
		WHERE id = $1`
	_, err := r.pool.Exec(ctx, query,
		c.ID, c.Nombre, c.Apellido, c.Email, c.Telefono,
		c.Direccion, c.DNI, c.RFC, c.TipoCliente,
		c.FechaNacimiento, c.Profesion, c.EstadoCivil,
		c.Notas, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update cliente: %w", err)
	}
	return nil
}

// Desactivar marca la baja lógica.
func (r *ClienteRepo) Desactivar(ctx context.Context, id string) error {
	query := `UPDATE clientes SET activo = FALSE, updated_at = NOW() WHERE id = $1`
	if _, err := r.pool.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("desactivar cliente: %w", err)
	}
	return nil
}
