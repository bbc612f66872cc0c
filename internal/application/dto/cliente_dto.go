package dto

import (
	"time"

	"github.com/despacho/expedientes-api/internal/domain/entity"
)

// CreateClienteRequest alta de cliente.
type CreateClienteRequest struct {
	Nombre          string `json:"nombre" validate:"required,min=1,max=100"`
	Apellido        string `json:"apellido" validate:"required,min=1,max=100"`
	Email           string `json:"email" validate:"omitempty,email"`
	Telefono        string `json:"telefono" validate:"omitempty,max=30"`
	Direccion       string `json:"direccion" validate:"omitempty,max=300"`
	DNI             string `json:"dni" validate:"required,min=1,max=20"`
	RFC             string `json:"rfc" validate:"omitempty,max=20"`
	TipoCliente     string `json:"tipoCliente" validate:"required,oneof=persona_fisica persona_moral"`
	FechaNacimiento string `json:"fechaNacimiento" validate:"omitempty,datetime=2006-01-02"`
	Profesion       string `json:"profesion" validate:"omitempty,max=100"`
	EstadoCivil     string `json:"estadoCivil" validate:"omitempty,oneof=soltero casado divorciado viudo union_libre"`
	Notas           string `json:"notas" validate:"omitempty,max=2000"`
}

// UpdateClienteRequest edición parcial; dni y rfc se re-verifican únicos.
type UpdateClienteRequest struct {
	Nombre          *string `json:"nombre" validate:"omitempty,min=1,max=100"`
	Apellido        *string `json:"apellido" validate:"omitempty,min=1,max=100"`
	Email           *string `json:"email" validate:"omitempty,email"`
	Telefono        *string `json:"telefono" validate:"omitempty,max=30"`
	Direccion       *string `json:"direccion" validate:"omitempty,max=300"`
	DNI             *string `json:"dni" validate:"omitempty,min=1,max=20"`
	RFC             *string `json:"rfc" validate:"omitempty,max=20"`
	TipoCliente     *string `json:"tipoCliente" validate:"omitempty,oneof=persona_fisica persona_moral"`
	FechaNacimiento *string `json:"fechaNacimiento" validate:"omitempty,datetime=2006-01-02"`
	Profesion       *string `json:"profesion" validate:"omitempty,max=100"`
	EstadoCivil     *string `json:"estadoCivil" validate:"omitempty,oneof=soltero casado divorciado viudo union_libre"`
	Notas           *string `json:"notas" validate:"omitempty,max=2000"`
}

// ListClientesRequest filtros de listado.
type ListClientesRequest struct {
	PageRequest
	Search      string `query:"search"`
	TipoCliente string `query:"tipoCliente" validate:"omitempty,oneof=persona_fisica persona_moral"`
}

// ClienteResponse salida de un cliente.
type ClienteResponse struct {
	ID              string     `json:"id"`
	Nombre          string     `json:"nombre"`
	Apellido        string     `json:"apellido"`
	Email           string     `json:"email,omitempty"`
	Telefono        string     `json:"telefono,omitempty"`
	Direccion       string     `json:"direccion,omitempty"`
	DNI             string     `json:"dni"`
	RFC             string     `json:"rfc,omitempty"`
	TipoCliente     string     `json:"tipoCliente"`
	FechaNacimiento *time.Time `json:"fechaNacimiento,omitempty"`
	Profesion       string     `json:"profesion,omitempty"`
	EstadoCivil     string     `json:"estadoCivil,omitempty"`
	Activo          bool       `json:"activo"`
	Notas           string     `json:"notas,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// FromCliente mapea la entidad a su representación pública.
func FromCliente(c *entity.Cliente) ClienteResponse {
	return ClienteResponse{
		ID:              c.ID,
		Nombre:          c.Nombre,
		Apellido:        c.Apellido,
		Email:           c.Email,
		Telefono:        c.Telefono,
		Direccion:       c.Direccion,
		DNI:             c.DNI,
		RFC:             c.RFC,
		TipoCliente:     c.TipoCliente,
		FechaNacimiento: c.FechaNacimiento,
		Profesion:       c.Profesion,
		EstadoCivil:     c.EstadoCivil,
		Activo:          c.Activo,
		Notas:           c.Notas,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

// FromClientes mapea una lista de entidades.
func FromClientes(cs []*entity.Cliente) []ClienteResponse {
	out := make([]ClienteResponse, 0, len(cs))
	for _, c := range cs {
		out = append(out, FromCliente(c))
	}
	return out
}
