package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un expediente completo. El borrado es lógico: pasa a "archivado".
const (
	ExpedienteActivo     = "activo"
	ExpedienteEnProceso  = "en_proceso"
	ExpedienteSuspendido = "suspendido"
	ExpedienteCerrado    = "cerrado"
	ExpedienteArchivado  = "archivado"
)

// Tipos de caso admitidos.
var TiposCaso = []string{
	"civil", "penal", "mercantil", "familiar", "laboral",
	"administrativo", "fiscal", "corporativo", "otro",
}

// Prioridades admitidas.
var Prioridades = []string{"baja", "media", "alta", "urgente"}

// Expediente representa un expediente jurídico completo, con cliente y abogado
// responsable. La numeración usa el formato "aaaa-nnnn" y la visibilidad se
// filtra por el abogado responsable, no por el creador.
type Expediente struct {
	ID                    string
	NumeroExpediente      string // único; formato "aaaa-nnnn"
	Titulo                string
	Descripcion           string
	TipoCaso              string
	Estado                string
	Prioridad             string
	FechaInicio           time.Time
	FechaCierre           *time.Time
	HonorariosEstimados   decimal.Decimal
	HonorariosPagados     decimal.Decimal
	Juzgado               string
	NumeroJuzgado         string
	Juez                  string
	Contraparte           string
	Notas                 string
	ClienteID             string
	AbogadoResponsableID  string
	CreatedAt             time.Time
	UpdatedAt             time.Time

	Cliente            *Cliente
	AbogadoResponsable *Usuario
}

// EstadoExpedienteValido verifica que el estado pertenezca al enum.
func EstadoExpedienteValido(s string) bool {
	switch s {
	case ExpedienteActivo, ExpedienteEnProceso, ExpedienteSuspendido, ExpedienteCerrado, ExpedienteArchivado:
		return true
	}
	return false
}

// TipoCasoValido verifica que el tipo de caso pertenezca al enum.
func TipoCasoValido(s string) bool {
	for _, t := range TiposCaso {
		if t == s {
			return true
		}
	}
	return false
}

// PrioridadValida verifica que la prioridad pertenezca al enum.
func PrioridadValida(s string) bool {
	for _, p := range Prioridades {
		if p == s {
			return true
		}
	}
	return false
}
