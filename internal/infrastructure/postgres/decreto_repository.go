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

var _ repository.DecretoRepository = (*DecretoRepo)(nil)

const decretoSelect = `
	SELECT d.id, d.numero_decreto, d.tipo_documento, d.titulo, d.descripcion,
	       d.fecha_emision, d.fecha_vigencia, d.estado, d.autoridad_emisora,
	       d.secretaria, d.numero_expediente_vinculado, d.tipo_expediente_vinculado,
	       d.nombre_archivo, d.ruta_archivo, d.notas, COALESCE(d.expediente_simple_id, ''),
	       d.usuario_creador_id, d.created_at, d.updated_at,
	       u.id, u.nombre, u.apellido, u.email
	FROM decretos d
	JOIN usuarios u ON u.id = d.usuario_creador_id`

// DecretoRepo implementación del puerto DecretoRepository sobre PostgreSQL.
// numero_decreto lleva constraint UNIQUE global.
type DecretoRepo struct {
	pool *pgxpool.Pool
}

// NewDecretoRepository construye el adaptador de persistencia para decretos.
func NewDecretoRepository(pool *pgxpool.Pool) *DecretoRepo {
	return &DecretoRepo{pool: pool}
}

func scanDecretoRow(row pgx.Row) (*entity.Decreto, error) {
	var d entity.Decreto
	var c entity.Usuario
	err := row.Scan(
		&d.ID, &d.NumeroDecreto, &d.TipoDocumento, &d.Titulo, &d.Descripcion,
		&d.FechaEmision, &d.FechaVigencia, &d.Estado, &d.AutoridadEmisora,
		&d.Secretaria, &d.NumeroExpedienteVinculado, &d.TipoExpedienteVinculado,
		&d.NombreArchivo, &d.RutaArchivo, &d.Notas, &d.ExpedienteSimpleID,
		&d.UsuarioCreadorID, &d.CreatedAt, &d.UpdatedAt,
		&c.ID, &c.Nombre, &c.Apellido, &c.Email,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	d.Creador = &c
	return &d, nil
}

// Create inserta el decreto. domain.ErrDuplicate ante número repetido.
func (r *DecretoRepo) Create(ctx context.Context, d *entity.Decreto) error {
	query := `
		INSERT INTO decretos (
			id, numero_decreto, tipo_documento, titulo, descripcion, fecha_emision,
			fecha_vigencia, estado, autoridad_emisora, secretaria,
			numero_expediente_vinculado, tipo_expediente_vinculado, nombre_archivo,
			ruta_archivo, notas, expediente_simple_id, usuario_creador_id,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
		          NULLIF($16, ''), $17, $18, $19)`
	_, err := r.pool.Exec(ctx, query,
		d.ID, d.NumeroDecreto, d.TipoDocumento, d.Titulo, d.Descripcion, d.FechaEmision,
		d.FechaVigencia, d.Estado, d.AutoridadEmisora, d.Secretaria,
		d.NumeroExpedienteVinculado, d.TipoExpedienteVinculado, d.NombreArchivo,
		d.RutaArchivo, d.Notas, d.ExpedienteSimpleID, d.UsuarioCreadorID,
		d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert decreto: %w", err)
	}
	return nil
}

// GetByID aplica el filtro de propiedad. nil si no existe o está fuera de alcance.
func (r *DecretoRepo) GetByID(ctx context.Context, id string, f scope.Filtro) (*entity.Decreto, error) {
	where := []string{"d.id = $1"}
	args := []any{id}
	where, args = scopeClauseAliased(where, args, f, "d")

	d, err := scanDecretoRow(r.pool.QueryRow(ctx, decretoSelect+` WHERE `+strings.Join(where, " AND "), args...))
	if err != nil {
		return nil, fmt.Errorf("get decreto: %w", err)
	}
	return d, nil
}

// List lista decretos con búsqueda y filtros; ordena por fecha de emisión.
func (r *DecretoRepo) List(ctx context.Context, p repository.ListDecretosParams) ([]*entity.Decreto, int, error) {
	where := []string{"TRUE"}
	var args []any

	if p.Search != "" {
		args = append(args, likePattern(p.Search))
		where = append(where, clausulaBusqueda(len(args), "d.numero_decreto", "d.titulo", "d.autoridad_emisora"))
	}
	if p.TipoDocumento != "" {
		args = append(args, p.TipoDocumento)
		where = append(where, fmt.Sprintf("d.tipo_documento = $%d", len(args)))
	}
	if p.Estado != "" {
		args = append(args, p.Estado)
		where = append(where, fmt.Sprintf("d.estado = $%d", len(args)))
	}
	if p.ExpedienteVinculado != "" {
		args = append(args, p.ExpedienteVinculado)
		where = append(where, fmt.Sprintf("d.numero_expediente_vinculado = $%d", len(args)))
	}
	where, args = scopeClauseAliased(where, args, p.Filtro, "d")

	cond := strings.Join(where, " AND ")

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM decretos d WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count decretos: %w", err)
	}

	limit, offset := paginacion(p.Page, p.Limit)
	args = append(args, limit, offset)
	query := fmt.Sprintf(decretoSelect+` WHERE %s ORDER BY d.fecha_emision DESC LIMIT $%d OFFSET $%d`,
		cond, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list decretos: %w", err)
	}
	defer rows.Close()

	var list []*entity.Decreto
	for rows.Next() {
		var d entity.Decreto
		var c entity.Usuario
		if err := rows.Scan(
			&d.ID, &d.NumeroDecreto, &d.TipoDocumento, &d.Titulo, &d.Descripcion,
			&d.FechaEmision, &d.FechaVigencia, &d.Estado, &d.AutoridadEmisora,
			&d.Secretaria, &d.NumeroExpedienteVinculado, &d.TipoExpedienteVinculado,
			&d.NombreArchivo, &d.RutaArchivo, &d.Notas, &d.ExpedienteSimpleID,
			&d.UsuarioCreadorID, &d.CreatedAt, &d.UpdatedAt,
			&c.ID, &c.Nombre, &c.Apellido, &c.Email,
		); err != nil {
			return nil, 0, fmt.Errorf("scan decreto: %w", err)
		}
		d.Creador = &c
		list = append(list, &d)
	}
	return list, total, rows.Err()
}

// existsNumeroSQL arma la consulta de unicidad. En el alta no hay registro
// propio que excluir y el parámetro vacío no se manda: la columna id es uuid
// y la cadena vacía no es casteable.
func existsNumeroSQL(numero, excludeID string) (string, []any) {
	if excludeID == "" {
		return `SELECT EXISTS(SELECT 1 FROM decretos WHERE numero_decreto = $1)`, []any{numero}
	}
	return `SELECT EXISTS(SELECT 1 FROM decretos WHERE numero_decreto = $1 AND id <> $2)`,
		[]any{numero, excludeID}
}

// ExistsNumero verifica unicidad global del número; excludeID excluye el
// registro propio en una edición y va vacío en el alta.
func (r *DecretoRepo) ExistsNumero(ctx context.Context, numero, excludeID string) (bool, error) {
	query, args := existsNumeroSQL(numero, excludeID)
	var exists bool
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists numero decreto: %w", err)
	}
	return exists, nil
}

// Update actualiza el decreto completo. domain.ErrDuplicate si el número editado choca.
func (r *DecretoRepo) Update(ctx context.Context, d *entity.Decreto) error {
	query := `
		UPDATE decretos
		SET numero_decreto = $2, tipo_documento = $3, titulo = $4, descripcion = $5,
		    fecha_emision = $6, fecha_vigencia = $7, estado = $8, autoridad_emisora = $9,
		    secretaria = $10, numero_expediente_vinculado = $11,
		    tipo_expediente_vinculado = $12, nombre_archivo = $13, ruta_archivo = $14,
		    notas = $15, expediente_simple_id = NULLIF($16, ''), updated_at = $17
		WHERE id = $1`
	_, err := r.pool.Exec(ctx, query,
		d.ID, d.NumeroDecreto, d.TipoDocumento, d.Titulo, d.Descripcion,
		d.FechaEmision, d.FechaVigencia, d.Estado, d.AutoridadEmisora,
		d.Secretaria, d.NumeroExpedienteVinculado, d.TipoExpedienteVinculado,
		d.NombreArchivo, d.RutaArchivo, d.Notas, d.ExpedienteSimpleID,
		time.Now(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update decreto: %w", err)
	}
	return nil
}

// Delete borra físicamente el decreto (política HARD de esta entidad).
func (r *DecretoRepo) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM decretos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete decreto: %w", err)
	}
	return nil
}
