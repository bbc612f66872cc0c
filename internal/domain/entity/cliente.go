package entity

import "time"

// Tipos de cliente.
const (
	ClientePersonaFisica = "persona_fisica"
	ClientePersonaMoral  = "persona_moral"
)

// Cliente representa un cliente del despacho. Sin filtro de propiedad: todo
// usuario autenticado ve todos los clientes. El borrado es lógico (activo=false).
type Cliente struct {
	ID              string
	Nombre          string
	Apellido        string
	Email           string
	Telefono        string
	Direccion       string
	DNI             string // único
	RFC             string // único
	TipoCliente     string // persona_fisica | persona_moral
	FechaNacimiento *time.Time
	Profesion       string
	EstadoCivil     string // soltero | casado | divorciado | viudo | union_libre
	Activo          bool
	Notas           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TipoClienteValido verifica que el tipo pertenezca al enum.
func TipoClienteValido(s string) bool {
	return s == ClientePersonaFisica || s == ClientePersonaMoral
}
