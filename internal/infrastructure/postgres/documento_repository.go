package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/despacho/expedientes-api/internal/domain/entity"
	"github.com/despacho/expedientes-api/internal/domain/repository"
)

var _ repository.DocumentoRepository = (*DocumentoRepo)(nil)

const documentoSelect = `
	SELECT id, nombre, descripcion, tipo_documento, nombre_archivo,
	       ruta_archivo, tamano_archivo, tipo_mime, fecha_documento,
	       fecha_vencimiento, es_confidencial, version, estado, tags,
	       expediente_id, subido_por, created_at, updated_at
	FROM documentos`

// DocumentoRepo implementación del puerto sobre PostgreSQL. No aplica filtro
// de propiedad propio: el alcance se verifica contra el expediente padre.
type DocumentoRepo struct {
	pool *pgxpool.Pool
}

// NewDocumentoRepository construye el adaptador de persistencia.
func NewDocumentoRepository(pool *pgxpool.Pool) *DocumentoRepo {
	return &DocumentoRepo{pool: pool}
}

func scanDocumento(row pgx.Row) (*entity.Documento, error) {
	var d entity.Documento
	err := row.Scan(
		&d.ID, &d.Nombre, &d.Descripcion, &d.TipoDocumento, &d.NombreArchivo,
		&d.RutaArchivo, &d.TamanoArchivo, &d.TipoMime, &d.FechaDocumento,
		&d.FechaVencimiento, &d.EsConfidencial, &d.Version, &d.Estado, &d.Tags,
		&d.ExpedienteID, &d.SubidoPor, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

// Create inserta el registro.
func (r *DocumentoRepo) Create(ctx context.Context, d *entity.Documento) error {
	query := `
		INSERT INTO documentos (
			id, nombre, descripcion, tipo_documento, nombre_archivo,
			ruta_archivo, tamano_archivo, tipo_mime, fecha_documento,
			fecha_vencimiento, es_confidencial, version, estado, tags,
			expediente_id, subido_por, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
		          $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.pool.Exec(ctx, query,
		d.ID, d.Nombre, d.Descripcion, d.TipoDocumento, d.NombreArchivo,
		d.RutaArchivo, d.TamanoArchivo, d.TipoMime, d.FechaDocumento,
		d.FechaVencimiento, d.EsConfidencial, d.Version, d.Estado, d.Tags,
		d.ExpedienteID, d.SubidoPor, d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert documento: %w", err)
	}
	return nil
}

// GetByID devuelve nil si no existe.
func (r *DocumentoRepo) GetByID(ctx context.Context, id string) (*entity.Documento, error) {
	d, err := scanDocumento(r.pool.QueryRow(ctx, documentoSelect+` WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get documento: %w", err)
	}
	return d, nil
}

// ListByExpediente lista los documentos de un expediente, más recientes primero.
func (r *DocumentoRepo) ListByExpediente(ctx context.Context, expedienteID string) ([]*entity.Documento, error) {
	rows, err := r.pool.Query(ctx, documentoSelect+` WHERE expediente_id = $1 ORDER BY created_at DESC`, expedienteID)
	if err != nil {
		return nil, fmt.Errorf("list documentos: %w", err)
	}
	defer rows.Close()

	var out []*entity.Documento
	for rows.Next() {
		d, err := scanDocumento(rows)
		if err != nil {
			return nil, fmt.Errorf("scan documento: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// Delete borra físicamente el registro; el archivo en disco lo retira el caso de uso.
func (r *DocumentoRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM documentos WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete documento: %w", err)
	}
	return nil
}
