package dto

import (
	"time"

	"github.com/despacho/expedientes-api/internal/domain/entity"
)

// CreateUsuarioRequest alta de usuario desde el panel admin.
type CreateUsuarioRequest struct {
	Nombre   string `json:"nombre" validate:"required,min=1,max=100"`
	Apellido string `json:"apellido" validate:"required,min=1,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Rol      string `json:"rol" validate:"required,oneof=admin administrativo"`
	Telefono string `json:"telefono" validate:"omitempty,max=30"`
}

// UpdateUsuarioRequest edición parcial de un usuario.
type UpdateUsuarioRequest struct {
	Nombre   *string `json:"nombre" validate:"omitempty,min=1,max=100"`
	Apellido *string `json:"apellido" validate:"omitempty,min=1,max=100"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Rol      *string `json:"rol" validate:"omitempty,oneof=admin administrativo"`
	Telefono *string `json:"telefono" validate:"omitempty,max=30"`
	Activo   *bool   `json:"activo"`
}

// ResetPasswordRequest cambio de contraseña forzado por un admin.
type ResetPasswordRequest struct {
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

// ListUsuariosRequest filtros de listado de usuarios.
type ListUsuariosRequest struct {
	PageRequest
	Search string `query:"search"`
	Rol    string `query:"rol" validate:"omitempty,oneof=admin administrativo"`
}

// UsuarioResponse salida de un usuario (sin hash de contraseña).
type UsuarioResponse struct {
	ID           string     `json:"id"`
	Nombre       string     `json:"nombre"`
	Apellido     string     `json:"apellido"`
	Email        string     `json:"email"`
	Rol          string     `json:"rol"`
	Telefono     string     `json:"telefono,omitempty"`
	Activo       bool       `json:"activo"`
	UltimoAcceso *time.Time `json:"ultimoAcceso,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// UsuarioStatsResponse métricas agregadas del panel de usuarios.
type UsuarioStatsResponse struct {
	Total           int `json:"total"`
	Activos         int `json:"activos"`
	Inactivos       int `json:"inactivos"`
	Admins          int `json:"admins"`
	Administrativos int `json:"administrativos"`
}

// FromUsuario mapea la entidad a su representación pública.
func FromUsuario(u *entity.Usuario) UsuarioResponse {
	return UsuarioResponse{
		ID:           u.ID,
		Nombre:       u.Nombre,
		Apellido:     u.Apellido,
		Email:        u.Email,
		Rol:          u.Rol,
		Telefono:     u.Telefono,
		Activo:       u.Activo,
		UltimoAcceso: u.UltimoAcceso,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

// FromUsuarios mapea una lista de entidades.
func FromUsuarios(us []*entity.Usuario) []UsuarioResponse {
	out := make([]UsuarioResponse, 0, len(us))
	for _, u := range us {
		out = append(out, FromUsuario(u))
	}
	return out
}
