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

var _ repository.UsuarioRepository = (*UsuarioRepo)(nil)

const usuarioColumns = `id, nombre, apellido, email, password_hash, rol, telefono, activo, ultimo_acceso, created_at, updated_at`

// UsuarioRepo implementación del puerto UsuarioRepository sobre PostgreSQL.
type UsuarioRepo struct {
	pool *pgxpool.Pool
}

// NewUsuarioRepository construye el adaptador de persistencia para usuarios.
func NewUsuarioRepository(pool *pgxpool.Pool) *UsuarioRepo {
	return &UsuarioRepo{pool: pool}
}

func scanUsuario(row pgx.Row) (*entity.Usuario, error) {
	var u entity.Usuario
	err := row.Scan(
		&u.ID, &u.Nombre, &u.Apellido, &u.Email, &u.PasswordHash, &u.Rol,
		&u.Telefono, &u.Activo, &u.UltimoAcceso, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// Create persiste un nuevo usuario. domain.ErrEmailAlreadyExists ante email repetido.
func (r *UsuarioRepo) Create(ctx context.Context, u *entity.Usuario) error {
	query := `
		INSERT INTO usuarios (` + usuarioColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.pool.Exec(ctx, query,
		u.ID, u.Nombre, u.Apellido, u.Email, u.PasswordHash, u.Rol,
		u.Telefono, u.Activo, u.UltimoAcceso, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert usuario: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID. nil si no existe.
func (r *UsuarioRepo) GetByID(ctx context.Context, id string) (*entity.Usuario, error) {
	query := `SELECT ` + usuarioColumns + ` FROM usuarios WHERE id = $1`
	u, err := scanUsuario(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("get usuario by id: %w", err)
	}
	return u, nil
}

// GetByEmail obtiene un usuario por email. nil si no existe.
func (r *UsuarioRepo) GetByEmail(ctx context.Context, email string) (*entity.Usuario, error) {
	query := `SELECT ` + usuarioColumns + ` FROM usuarios WHERE email = $1 LIMIT 1`
	u, err := scanUsuario(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		return nil, fmt.Errorf("get usuario by email: %w", err)
	}
	return u, nil
}

// List lista usuarios con búsqueda y filtro por rol. Devuelve total para paginar.
func (r *UsuarioRepo) List(ctx context.Context, p repository.ListUsuariosParams) ([]*entity.Usuario, int, error) {
	where := []string{"TRUE"}
	var args []any

	if p.Search != "" {
		args = append(args, likePattern(p.Search))
		where = append(where, clausulaBusqueda(len(args), "nombre", "apellido", "email"))
	}
	if p.Rol != "" {
		args = append(args, p.Rol)
		where = append(where, fmt.Sprintf("rol = $%d", len(args)))
	}

	cond := strings.Join(where, " AND ")

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM usuarios WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count usuarios: %w", err)
	}

	limit, offset := paginacion(p.Page, p.Limit)
	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT `+usuarioColumns+` FROM usuarios WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		cond, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list usuarios: %w", err)
	}
	defer rows.Close()

	var list []*entity.Usuario
	for rows.Next() {
		var u entity.Usuario
		if err := rows.Scan(&u.ID, &u.Nombre, &u.Apellido, &u.Email, &u.PasswordHash, &u.Rol,
			&u.Telefono, &u.Activo, &u.UltimoAcceso, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan usuario: %w", err)
		}
		list = append(list, &u)
	}
	return list, total, rows.Err()
}

// Update actualiza un usuario. domain.ErrEmailAlreadyExists ante email repetido.
func (r *UsuarioRepo) Update(ctx context.Context, u *entity.Usuario) error {
	query := `
		UPDATE usuarios
		SET nombre = $2, apellido = $3, email = $4, password_hash = $5, rol = $6,
		    telefono = $7, activo = $8, ultimo_acceso = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.pool.Exec(ctx, query,
		u.ID, u.Nombre, u.Apellido, u.Email, u.PasswordHash, u.Rol,
		u.Telefono, u.Activo, u.UltimoAcceso, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update usuario: %w", err)
	}
	return nil
}

// Stats agregados de usuarios por rol y actividad.
func (r *UsuarioRepo) Stats(ctx context.Context) (repository.UsuarioStats, error) {
	var s repository.UsuarioStats
	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE activo),
		       COUNT(*) FILTER (WHERE rol = 'admin'),
		       COUNT(*) FILTER (WHERE rol = 'administrativo')
		FROM usuarios`
	if err := r.pool.QueryRow(ctx, query).Scan(&s.Total, &s.Activos, &s.Admins, &s.Administrativos); err != nil {
		return s, fmt.Errorf("stats usuarios: %w", err)
	}
	return s, nil
}
