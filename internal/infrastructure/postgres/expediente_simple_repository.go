package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/despacho/expedientes-api/internal/domain"
	"github.com/despacho/expedientes-api/internal/domain/entity"
	"github.com/despacho/expedientes-api/internal/domain/repository"
	"github.com/despacho/expedientes-api/internal/domain/scope"
)

var _ repository.ExpedienteSimpleRepository = (*ExpedienteSimpleRepo)(nil)

const expSimpleSelect = `
	SELECT e.id, e.numero_expediente, e.fecha_carga, e.nombre_solicitante, e.dni,
	       e.area, e.descripcion, e.nombre_archivo_escaneado, e.ruta_archivo_escaneado,
	       e.tipo_expediente, e.usuario_creador_id, e.ruta_comprobante_pdf,
	       e.created_at, e.updated_at,
	       u.id, u.nombre, u.apellido, u.email
	FROM expedientes_simple e
	JOIN usuarios u ON u.id = e.usuario_creador_id`

// ExpedienteSimpleRepo implementación del puerto sobre PostgreSQL.
// (numero_expediente, tipo_expediente) lleva constraint UNIQUE: cada tipo
// corre su propia serie y la violación se mapea a domain.ErrDuplicate, que
// cierra la carrera de numeración concurrente.
type ExpedienteSimpleRepo struct {
	pool *pgxpool.Pool
}

// NewExpedienteSimpleRepository construye el adaptador de persistencia.
func NewExpedienteSimpleRepository(pool *pgxpool.Pool) *ExpedienteSimpleRepo {
	return &ExpedienteSimpleRepo{pool: pool}
}

func scanExpSimple(row pgx.Row) (*entity.ExpedienteSimple, error) {
	var e entity.ExpedienteSimple
	var c entity.Usuario
	err := row.Scan(
		&e.ID, &e.NumeroExpediente, &e.FechaCarga, &e.NombreSolicitante, &e.DNI,
		&e.Area, &e.Descripcion, &e.NombreArchivoEscaneado, &e.RutaArchivoEscaneado,
		&e.TipoExpediente, &e.UsuarioCreadorID, &e.RutaComprobantePDF,
		&e.CreatedAt, &e.UpdatedAt,
		&c.ID, &c.Nombre, &c.Apellido, &c.Email,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	e.Creador = &c
	return &e, nil
}

// Create inserta el registro. domain.ErrDuplicate ante número repetido.
func (r *ExpedienteSimpleRepo) Create(ctx context.Context, e *entity.ExpedienteSimple) error {
	query := `
		INSERT INTO expedientes_simple (
			id, numero_expediente, fecha_carga, nombre_solicitante, dni, area,
			descripcion, nombre_archivo_escaneado, ruta_archivo_escaneado,
			tipo_expediente, usuario_creador_id, ruta_comprobante_pdf,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.pool.Exec(ctx, query,
		e.ID, e.NumeroExpediente, e.FechaCarga, e.NombreSolicitante, e.DNI, e.Area,
		e.Descripcion, e.NombreArchivoEscaneado, e.RutaArchivoEscaneado,
		e.TipoExpediente, e.UsuarioCreadorID, e.RutaComprobantePDF,
		e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert expediente simple: %w", err)
	}
	return nil
}

// GetByID aplica el filtro de propiedad. nil si no existe o está fuera de alcance.
func (r *ExpedienteSimpleRepo) GetByID(ctx context.Context, id string, f scope.Filtro) (*entity.ExpedienteSimple, error) {
	where := []string{"e.id = $1"}
	args := []any{id}
	where, args = scopeClauseAliased(where, args, f, "e")

	query := expSimpleSelect + ` WHERE ` + strings.Join(where, " AND ")
	e, err := scanExpSimple(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("get expediente simple: %w", err)
	}
	return e, nil
}

// List lista con búsqueda, filtros y paginación; total para calcular páginas.
func (r *ExpedienteSimpleRepo) List(ctx context.Context, p repository.ListExpedientesSimpleParams) ([]*entity.ExpedienteSimple, int, error) {
	where := []string{"TRUE"}
	var args []any

	if p.Search != "" {
		args = append(args, likePattern(p.Search))
		where = append(where, clausulaBusqueda(len(args),
			"e.numero_expediente", "e.nombre_solicitante", "e.dni", "e.descripcion"))
	}
	if p.Area != "" {
		args = append(args, p.Area)
		where = append(where, fmt.Sprintf("e.area = $%d", len(args)))
	}
	if p.Tipo != nil {
		args = append(args, *p.Tipo)
		where = append(where, fmt.Sprintf("e.tipo_expediente = $%d", len(args)))
	}
	if p.UsuarioID != "" {
		args = append(args, p.UsuarioID)
		where = append(where, fmt.Sprintf("e.usuario_creador_id = $%d", len(args)))
	}
	where, args = scopeClauseAliased(where, args, p.Filtro, "e")

	cond := strings.Join(where, " AND ")

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM expedientes_simple e WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count expedientes simple: %w", err)
	}

	limit, offset := paginacion(p.Page, p.Limit)
	args = append(args, limit, offset)
	query := fmt.Sprintf(expSimpleSelect+` WHERE %s ORDER BY e.fecha_carga DESC LIMIT $%d OFFSET $%d`,
		cond, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list expedientes simple: %w", err)
	}
	defer rows.Close()

	list, err := collectExpSimple(rows)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListTodos devuelve todos los registros (selector de vinculación de decretos).
func (r *ExpedienteSimpleRepo) ListTodos(ctx context.Context) ([]*entity.ExpedienteSimple, error) {
	rows, err := r.pool.Query(ctx, expSimpleSelect+` ORDER BY e.fecha_carga DESC`)
	if err != nil {
		return nil, fmt.Errorf("list todos expedientes simple: %w", err)
	}
	defer rows.Close()
	return collectExpSimple(rows)
}

func collectExpSimple(rows pgx.Rows) ([]*entity.ExpedienteSimple, error) {
	var list []*entity.ExpedienteSimple
	for rows.Next() {
		var e entity.ExpedienteSimple
		var c entity.Usuario
		if err := rows.Scan(
			&e.ID, &e.NumeroExpediente, &e.FechaCarga, &e.NombreSolicitante, &e.DNI,
			&e.Area, &e.Descripcion, &e.NombreArchivoEscaneado, &e.RutaArchivoEscaneado,
			&e.TipoExpediente, &e.UsuarioCreadorID, &e.RutaComprobantePDF,
			&e.CreatedAt, &e.UpdatedAt,
			&c.ID, &c.Nombre, &c.Apellido, &c.Email,
		); err != nil {
			return nil, fmt.Errorf("scan expediente simple: %w", err)
		}
		e.Creador = &c
		list = append(list, &e)
	}
	return list, rows.Err()
}

// MaxSecuencia devuelve la secuencia más alta asignada en el año y tipo dados.
// El prefijo entero se extrae con split_part; 0 si la serie está vacía.
func (r *ExpedienteSimpleRepo) MaxSecuencia(ctx context.Context, tipo bool, anio string) (int, error) {
	query := `
		SELECT COALESCE(MAX(CAST(split_part(numero_expediente, '/', 1) AS INTEGER)), 0)
		FROM expedientes_simple
		WHERE tipo_expediente = $1
		  AND numero_expediente LIKE '%/' || $2
		  AND numero_expediente ~ '^[0-9]+/[0-9]{2}$'`
	var max int
	if err := r.pool.QueryRow(ctx, query, tipo, anio).Scan(&max); err != nil {
		return 0, fmt.Errorf("max secuencia: %w", err)
	}
	return max, nil
}

// Update actualiza los campos descriptivos y de archivo (el número no cambia).
func (r *ExpedienteSimpleRepo) Update(ctx context.Context, e *entity.ExpedienteSimple) error {
	query := `
		UPDATE expedientes_simple
		SET fecha_carga = $2, nombre_solicitante = $3, dni = $4, area = $5,
		    descripcion = $6, nombre_archivo_escaneado = $7,
		    ruta_archivo_escaneado = $8, tipo_expediente = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.pool.Exec(ctx, query,
		e.ID, e.FechaCarga, e.NombreSolicitante, e.DNI, e.Area, e.Descripcion,
		e.NombreArchivoEscaneado, e.RutaArchivoEscaneado, e.TipoExpediente,
		time.Now(),
	)
	if err != nil {
		return fmt.Errorf("update expediente simple: %w", err)
	}
	return nil
}

// Delete borra físicamente el registro (política HARD de esta entidad).
func (r *ExpedienteSimpleRepo) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM expedientes_simple WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete expediente simple: %w", err)
	}
	return nil
}

// SetComprobante persiste la ruta del comprobante PDF generado.
func (r *ExpedienteSimpleRepo) SetComprobante(ctx context.Context, id, ruta string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE expedientes_simple SET ruta_comprobante_pdf = $2, updated_at = $3 WHERE id = $1`,
		id, ruta, time.Now())
	if err != nil {
		return fmt.Errorf("set comprobante: %w", err)
	}
	return nil
}

// CountByCreador cuenta registros del usuario; bloquea la baja de usuarios.
func (r *ExpedienteSimpleRepo) CountByCreador(ctx context.Context, usuarioID string) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM expedientes_simple WHERE usuario_creador_id = $1`, usuarioID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count por creador: %w", err)
	}
	return n, nil
}
