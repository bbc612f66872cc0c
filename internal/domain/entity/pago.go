package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago admitidos.
var MetodosPago = []string{"efectivo", "transferencia", "cheque", "tarjeta", "otro"}

// Estados de un pago.
const (
	PagoPendiente   = "pendiente"
	PagoPagado      = "pagado"
	PagoCancelado   = "cancelado"
	PagoReembolsado = "reembolsado"
)

// Pago representa un asiento de honorarios cobrados sobre un expediente.
// Es un renglón contable simple, no una integración de pasarela.
type Pago struct {
	ID                  string
	NumeroRecibo        string // único, suministrado por el usuario
	Concepto            string
	Monto               decimal.Decimal
	FechaPago           time.Time
	MetodoPago          string
	Estado              string
	ReferenciaPago      string
	Notas               string
	ComprobanteGenerado bool
	RutaComprobante     string
	ExpedienteID        string
	ClienteID           string
	UsuarioRecibioID    string
	CreatedAt           time.Time
	UpdatedAt           time.Time

	Cliente        *Cliente
	Expediente     *Expediente
	UsuarioRecibio *Usuario
}

// MetodoPagoValido verifica que el método pertenezca al enum.
func MetodoPagoValido(s string) bool {
	for _, m := range MetodosPago {
		if m == s {
			return true
		}
	}
	return false
}
