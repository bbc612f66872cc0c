package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/despacho/expedientes-api/internal/domain/entity"
)

// CreatePagoRequest registra un pago de honorarios sobre un expediente.
// El número de recibo lo suministra el usuario y es único.
type CreatePagoRequest struct {
	NumeroRecibo   string          `json:"numeroRecibo" validate:"required,min=1,max=50"`
	Concepto       string          `json:"concepto" validate:"required,min=1,max=300"`
	Monto          decimal.Decimal `json:"monto" validate:"required"`
	FechaPago      string          `json:"fechaPago" validate:"omitempty,datetime=2006-01-02"`
	MetodoPago     string          `json:"metodoPago" validate:"required,oneof=efectivo transferencia cheque tarjeta otro"`
	ReferenciaPago string          `json:"referenciaPago" validate:"omitempty,max=100"`
	Notas          string          `json:"notas" validate:"omitempty,max=2000"`
	ExpedienteID   string          `json:"expedienteId" validate:"required,uuid"`
}

// PagoResponse salida de un pago.
type PagoResponse struct {
	ID                  string           `json:"id"`
	NumeroRecibo        string           `json:"numeroRecibo"`
	Concepto            string           `json:"concepto"`
	Monto               decimal.Decimal  `json:"monto"`
	FechaPago           time.Time        `json:"fechaPago"`
	MetodoPago          string           `json:"metodoPago"`
	Estado              string           `json:"estado"`
	ReferenciaPago      string           `json:"referenciaPago,omitempty"`
	Notas               string           `json:"notas,omitempty"`
	ComprobanteGenerado bool             `json:"comprobanteGenerado"`
	ExpedienteID        string           `json:"expedienteId"`
	ClienteID           string           `json:"clienteId"`
	Cliente             *ClienteResponse `json:"cliente,omitempty"`
	UsuarioRecibio      *UsuarioResponse `json:"usuarioRecibio,omitempty"`
	CreatedAt           time.Time        `json:"createdAt"`
}

// FromPago mapea la entidad a su representación pública.
func FromPago(p *entity.Pago) PagoResponse {
	resp := PagoResponse{
		ID:                  p.ID,
		NumeroRecibo:        p.NumeroRecibo,
		Concepto:            p.Concepto,
		Monto:               p.Monto,
		FechaPago:           p.FechaPago,
		MetodoPago:          p.MetodoPago,
		Estado:              p.Estado,
		ReferenciaPago:      p.ReferenciaPago,
		Notas:               p.Notas,
		ComprobanteGenerado: p.ComprobanteGenerado,
		ExpedienteID:        p.ExpedienteID,
		ClienteID:           p.ClienteID,
		CreatedAt:           p.CreatedAt,
	}
	if p.Cliente != nil {
		c := FromCliente(p.Cliente)
		resp.Cliente = &c
	}
	if p.UsuarioRecibio != nil {
		u := FromUsuario(p.UsuarioRecibio)
		resp.UsuarioRecibio = &u
	}
	return resp
}

// FromPagos mapea una lista de entidades.
func FromPagos(ps []*entity.Pago) []PagoResponse {
	out := make([]PagoResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, FromPago(p))
	}
	return out
}
