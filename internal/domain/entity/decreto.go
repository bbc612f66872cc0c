package entity

import "time"

// Tipos de documento para Decreto.
const (
	TipoDocumentoDecreto    = "decreto"
	TipoDocumentoResolucion = "resolucion"
)

// Estados de vigencia de un decreto o resolución.
const (
	DecretoVigente    = "vigente"
	DecretoSuspendido = "suspendido"
	DecretoDerogado   = "derogado"
	DecretoVencido    = "vencido"
)

// Decreto representa un decreto o resolución administrativa. El número es
// suministrado por el usuario y único a nivel global; puede vincularse a lo
// sumo a un expediente simple.
type Decreto struct {
	ID                         string
	NumeroDecreto              string // único global, formato libre
	TipoDocumento              string // decreto | resolucion
	Titulo                     string
	Descripcion                string
	FechaEmision               time.Time
	FechaVigencia              *time.Time
	Estado                     string // vigente | suspendido | derogado | vencido
	AutoridadEmisora           string
	Secretaria                 string // secretaría específica para resoluciones
	NumeroExpedienteVinculado  string
	TipoExpedienteVinculado    string // expediente | actuacion
	NombreArchivo              string
	RutaArchivo                string
	Notas                      string
	ExpedienteSimpleID         string // FK opcional
	UsuarioCreadorID           string
	CreatedAt                  time.Time
	UpdatedAt                  time.Time

	Creador             *Usuario
	ExpedienteVinculado *ExpedienteSimple
}

// EstadoDecretoValido verifica que el estado pertenezca al enum.
func EstadoDecretoValido(s string) bool {
	switch s {
	case DecretoVigente, DecretoSuspendido, DecretoDerogado, DecretoVencido:
		return true
	}
	return false
}

// TipoDocumentoValido verifica que el tipo pertenezca al enum.
func TipoDocumentoValido(s string) bool {
	return s == TipoDocumentoDecreto || s == TipoDocumentoResolucion
}
