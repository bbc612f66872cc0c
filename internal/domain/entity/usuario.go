package entity

import "time"

// Roles válidos para Usuario.
const (
	RolAdmin          = "admin"
	RolAdministrativo = "administrativo"
)

// Usuario representa un usuario del sistema (admin o administrativo).
type Usuario struct {
	ID           string
	Nombre       string
	Apellido     string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Rol          string // admin, administrativo
	Telefono     string
	Activo       bool
	UltimoAcceso *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NombreCompleto devuelve "Nombre Apellido" para los comprobantes.
func (u *Usuario) NombreCompleto() string {
	return u.Nombre + " " + u.Apellido
}
