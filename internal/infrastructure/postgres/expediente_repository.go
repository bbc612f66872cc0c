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
	"github.com/despacho/expedientes-api/internal/domain/scope"
)

var _ repository.ExpedienteRepository = (*ExpedienteRepo)(nil)

const expedienteSelect = `
	SELECT e.id, e.numero_expediente, e.titulo, e.descripcion, e.tipo_caso,
	       e.estado, e.prioridad, e.fecha_inicio, e.fecha_cierre,
	       e.honorarios_estimados, e.honorarios_pagados, e.juzgado,
	       e.numero_juzgado, e.juez, e.contraparte, e.notas,
	       e.cliente_id, e.abogado_responsable_id, e.created_at, e.updated_at,
	       c.id, c.nombre, c.apellido, c.email, c.telefono, c.tipo_cliente,
	       u.id, u.nombre, u.apellido, u.email
	FROM expedientes e
	JOIN clientes c ON c.id = e.cliente_id
	JOIN usuarios u ON u.id = e.abogado_responsable_id`

// ExpedienteRepo implementación del puerto sobre PostgreSQL. La visibilidad se
// filtra por abogado_responsable_id y el borrado es lógico (estado archivado),
// por lo que el conteo anual de numeración nunca decrece.
type ExpedienteRepo struct {
	pool *pgxpool.Pool
}

// NewExpedienteRepository construye el adaptador de persistencia.
func NewExpedienteRepository(pool *pgxpool.Pool) *ExpedienteRepo {
	return &ExpedienteRepo{pool: pool}
}

func scanExpediente(row pgx.Row) (*entity.Expediente, error) {
	var e entity.Expediente
	var c entity.Cliente
	var a entity.Usuario
	err := row.Scan(
		&e.ID, &e.NumeroExpediente, &e.Titulo, &e.Descripcion, &e.TipoCaso,
		&e.Estado, &e.Prioridad, &e.FechaInicio, &e.FechaCierre,
		&e.HonorariosEstimados, &e.HonorariosPagados, &e.Juzgado,
		&e.NumeroJuzgado, &e.Juez, &e.Contraparte, &e.Notas,
		&e.ClienteID, &e.AbogadoResponsableID, &e.CreatedAt, &e.UpdatedAt,
		&c.ID, &c.Nombre, &c.Apellido, &c.Email, &c.Telefono, &c.TipoCliente,
		&a.ID, &a.Nombre, &a.Apellido, &a.Email,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	e.Cliente = &c
	e.AbogadoResponsable = &a
	return &e, nil
}

// Create inserta el registro. domain.ErrDuplicate ante número repetido.
func (r *ExpedienteRepo) Create(ctx context.Context, e *entity.Expediente) error {
	query := `
		INSERT INTO expedientes (
			id, numero_expediente, titulo, descripcion, tipo_caso, estado,
			prioridad, fecha_inicio, fecha_cierre, honorarios_estimados,
			honorarios_pagados, juzgado, numero_juzgado, juez, contraparte,
			notas, cliente_id, abogado_responsable_id, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
		          $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`
	_, err := r.pool.Exec(ctx, query,
		e.ID, e.NumeroExpediente, e.Titulo, e.Descripcion, e.TipoCaso, e.Estado,
		e.Prioridad, e.FechaInicio, e.FechaCierre, e.HonorariosEstimados,
		e.HonorariosPagados, e.Juzgado, e.NumeroJuzgado, e.Juez, e.Contraparte,
		e.Notas, e.ClienteID, e.AbogadoResponsableID, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert expediente: %w", err)
	}
	return nil
}

// GetByID aplica el filtro de propiedad. nil si no existe o está fuera de alcance.
func (r *ExpedienteRepo) GetByID(ctx context.Context, id string, f scope.Filtro) (*entity.Expediente, error) {
	where := []string{"e.id = $1"}
	args := []any{id}
	where, args = scopeClauseAliased(where, args, f, "e")

	query := expedienteSelect + ` WHERE ` + strings.Join(where, " AND ")
	e, err := scanExpediente(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("get expediente: %w", err)
	}
	return e, nil
}

// List lista con búsqueda, filtros y paginación; total para calcular páginas.
func (r *ExpedienteRepo) List(ctx context.Context, p repository.ListExpedientesParams) ([]*entity.Expediente, int, error) {
	where := []string{"TRUE"}
	var args []any

	if p.Search != "" {
		args = append(args, likePattern(p.Search))
		where = append(where, clausulaBusqueda(len(args), "e.numero_expediente", "e.titulo", "e.descripcion"))
	}
	if p.Estado != "" {
		args = append(args, p.Estado)
		where = append(where, fmt.Sprintf("e.estado = $%d", len(args)))
	}
	if p.TipoCaso != "" {
		args = append(args, p.TipoCaso)
		where = append(where, fmt.Sprintf("e.tipo_caso = $%d", len(args)))
	}
	if p.AbogadoID != "" {
		args = append(args, p.AbogadoID)
		where = append(where, fmt.Sprintf("e.abogado_responsable_id = $%d", len(args)))
	}
	if p.ClienteID != "" {
		args = append(args, p.ClienteID)
		where = append(where, fmt.Sprintf("e.cliente_id = $%d", len(args)))
	}
	where, args = scopeClauseAliased(where, args, p.Filtro, "e")
	cond := strings.Join(where, " AND ")

	var total int
	countQuery := `SELECT COUNT(*) FROM expedientes e WHERE ` + cond
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count expedientes: %w", err)
	}

	limit, offset := paginacion(p.Page, p.Limit)
	args = append(args, limit, offset)
	query := fmt.Sprintf("%s WHERE %s ORDER BY e.created_at DESC LIMIT $%d OFFSET $%d",
		expedienteSelect, cond, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list expedientes: %w", err)
	}
	defer rows.Close()

	var out []*entity.Expediente
	for rows.Next() {
		e, err := scanExpediente(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan expediente: %w", err)
		}
		out = append(out, e)
	}
	return out, total, rows.Err()
}

// CountAnio cuenta los números asignados en el año; como no hay borrado físico
// el conteo coincide con el máximo correlativo emitido.
func (r *ExpedienteRepo) CountAnio(ctx context.Context, anio string) (int, error) {
	var n int
	query := `SELECT COUNT(*) FROM expedientes WHERE numero_expediente LIKE $1 || '-%'`
	if err := r.pool.QueryRow(ctx, query, anio).Scan(&n); err != nil {
		return 0, fmt.Errorf("count expedientes por año: %w", err)
	}
	return n, nil
}

// Update persiste los campos editables, incluido el estado (archivado).
func (r *ExpedienteRepo) Update(ctx context.Context, e *entity.Expediente) error {
	query := `
		UPDATE expedientes SET
			titulo = $2, descripcion = $3, tipo_caso = $4, estado = $5,
			prioridad = $6, fecha_inicio = $7, fecha_cierre = $8,
			honorarios_estimados = $9, honorarios_pagados = $10, juzgado = $11,
			numero_juzgado = $12, juez = $13, contraparte = $14, notas = $15,
			cliente_id = $16, abogado_responsable_id = $17, updated_at = $18
		WHERE id = $1`
	_, err := r.pool.Exec(ctx, query,
		e.ID, e.Titulo, e.Descripcion, e.TipoCaso, e.Estado,
		e.Prioridad, e.FechaInicio, e.FechaCierre,
		e.HonorariosEstimados, e.HonorariosPagados, e.Juzgado,
		e.NumeroJuzgado, e.Juez, e.Contraparte, e.Notas,
		e.ClienteID, e.AbogadoResponsableID, e.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update expediente: %w", err)
	}
	return nil
}

// CountNoArchivadosPorCliente cuenta los expedientes vivos de un cliente.
func (r *ExpedienteRepo) CountNoArchivadosPorCliente(ctx context.Context, clienteID string) (int, error) {
	var n int
	query := `SELECT COUNT(*) FROM expedientes WHERE cliente_id = $1 AND estado <> 'archivado'`
	if err := r.pool.QueryRow(ctx, query, clienteID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count expedientes de cliente: %w", err)
	}
	return n, nil
}
