package repository

import (
	"context"

	"github.com/despacho/expedientes-api/internal/domain/entity"
)

// ListUsuariosParams filtros de listado de usuarios (solo admin).
type ListUsuariosParams struct {
	Page   int
	Limit  int
	Search string // nombre, apellido, email
	Rol    string
}

// UsuarioStats agregados para el panel de administración.
type UsuarioStats struct {
	Total           int
	Activos         int
	Admins          int
	Administrativos int
}

// UsuarioRepository define el puerto de persistencia para Usuario (DIP).
type UsuarioRepository interface {
	Create(ctx context.Context, u *entity.Usuario) error
	GetByID(ctx context.Context, id string) (*entity.Usuario, error)
	GetByEmail(ctx context.Context, email string) (*entity.Usuario, error)
	List(ctx context.Context, p ListUsuariosParams) ([]*entity.Usuario, int, error)
	Update(ctx context.Context, u *entity.Usuario) error
	Stats(ctx context.Context) (UsuarioStats, error)
}
