package dto

import (
	"time"

	"github.com/despacho/expedientes-api/internal/domain/entity"
)

// CreateDecretoRequest alta de decreto o resolución. Multipart con archivo
// opcional "documento". El número lo suministra el usuario y es único global.
type CreateDecretoRequest struct {
	NumeroDecreto             string `form:"numeroDecreto" validate:"required,min=1,max=50"`
	TipoDocumento             string `form:"tipoDocumento" validate:"required,oneof=decreto resolucion"`
	Titulo                    string `form:"titulo" validate:"required,min=1,max=300"`
	Descripcion               string `form:"descripcion" validate:"omitempty,max=2000"`
	FechaEmision              string `form:"fechaEmision" validate:"required,datetime=2006-01-02"`
	FechaVigencia             string `form:"fechaVigencia" validate:"omitempty,datetime=2006-01-02"`
	Estado                    string `form:"estado" validate:"omitempty,oneof=vigente suspendido derogado vencido"`
	AutoridadEmisora          string `form:"autoridadEmisora" validate:"omitempty,max=200"`
	Secretaria                string `form:"secretaria" validate:"omitempty,max=200"`
	NumeroExpedienteVinculado string `form:"numeroExpedienteVinculado" validate:"omitempty,max=20"`
	TipoExpedienteVinculado   string `form:"tipoExpedienteVinculado" validate:"omitempty,oneof=expediente actuacion"`
	ExpedienteSimpleID        string `form:"expedienteSimpleId" validate:"omitempty,uuid"`
	Notas                     string `form:"notas" validate:"omitempty,max=2000"`
}

// UpdateDecretoRequest edición parcial; numeroDecreto se re-verifica único
// excluyendo el propio registro.
type UpdateDecretoRequest struct {
	NumeroDecreto             *string `form:"numeroDecreto" validate:"omitempty,min=1,max=50"`
	TipoDocumento             *string `form:"tipoDocumento" validate:"omitempty,oneof=decreto resolucion"`
	Titulo                    *string `form:"titulo" validate:"omitempty,min=1,max=300"`
	Descripcion               *string `form:"descripcion" validate:"omitempty,max=2000"`
	FechaEmision              *string `form:"fechaEmision" validate:"omitempty,datetime=2006-01-02"`
	FechaVigencia             *string `form:"fechaVigencia" validate:"omitempty,datetime=2006-01-02"`
	Estado                    *string `form:"estado" validate:"omitempty,oneof=vigente suspendido derogado vencido"`
	AutoridadEmisora          *string `form:"autoridadEmisora" validate:"omitempty,max=200"`
	Secretaria                *string `form:"secretaria" validate:"omitempty,max=200"`
	NumeroExpedienteVinculado *string `form:"numeroExpedienteVinculado" validate:"omitempty,max=20"`
	TipoExpedienteVinculado   *string `form:"tipoExpedienteVinculado" validate:"omitempty,oneof=expediente actuacion"`
	ExpedienteSimpleID        *string `form:"expedienteSimpleId" validate:"omitempty,uuid"`
	Notas                     *string `form:"notas" validate:"omitempty,max=2000"`
}

// ListDecretosRequest filtros de listado.
type ListDecretosRequest struct {
	PageRequest
	Search        string `query:"search"`
	TipoDocumento string `query:"tipoDocumento" validate:"omitempty,oneof=decreto resolucion"`
	Estado        string `query:"estado" validate:"omitempty,oneof=vigente suspendido derogado vencido"`
}

// DecretoResponse salida de un decreto o resolución.
type DecretoResponse struct {
	ID                        string                    `json:"id"`
	NumeroDecreto             string                    `json:"numeroDecreto"`
	TipoDocumento             string                    `json:"tipoDocumento"`
	Titulo                    string                    `json:"titulo"`
	Descripcion               string                    `json:"descripcion,omitempty"`
	FechaEmision              time.Time                 `json:"fechaEmision"`
	FechaVigencia             *time.Time                `json:"fechaVigencia,omitempty"`
	Estado                    string                    `json:"estado"`
	AutoridadEmisora          string                    `json:"autoridadEmisora,omitempty"`
	Secretaria                string                    `json:"secretaria,omitempty"`
	NumeroExpedienteVinculado string                    `json:"numeroExpedienteVinculado,omitempty"`
	TipoExpedienteVinculado   string                    `json:"tipoExpedienteVinculado,omitempty"`
	NombreArchivo             string                    `json:"nombreArchivo,omitempty"`
	TieneArchivo              bool                      `json:"tieneArchivo"`
	ExpedienteSimpleID        string                    `json:"expedienteSimpleId,omitempty"`
	ExpedienteVinculado       *ExpedienteSimpleResponse `json:"expedienteVinculado,omitempty"`
	Notas                     string                    `json:"notas,omitempty"`
	Creador                   *UsuarioResponse          `json:"creador,omitempty"`
	CreatedAt                 time.Time                 `json:"createdAt"`
	UpdatedAt                 time.Time                 `json:"updatedAt"`
}

// FromDecreto mapea la entidad a su representación pública.
func FromDecreto(d *entity.Decreto) DecretoResponse {
	resp := DecretoResponse{
		ID:                        d.ID,
		NumeroDecreto:             d.NumeroDecreto,
		TipoDocumento:             d.TipoDocumento,
		Titulo:                    d.Titulo,
		Descripcion:               d.Descripcion,
		FechaEmision:              d.FechaEmision,
		FechaVigencia:             d.FechaVigencia,
		Estado:                    d.Estado,
		AutoridadEmisora:          d.AutoridadEmisora,
		Secretaria:                d.Secretaria,
		NumeroExpedienteVinculado: d.NumeroExpedienteVinculado,
		TipoExpedienteVinculado:   d.TipoExpedienteVinculado,
		NombreArchivo:             d.NombreArchivo,
		TieneArchivo:              d.RutaArchivo != "",
		ExpedienteSimpleID:        d.ExpedienteSimpleID,
		Notas:                     d.Notas,
		CreatedAt:                 d.CreatedAt,
		UpdatedAt:                 d.UpdatedAt,
	}
	if d.Creador != nil {
		u := FromUsuario(d.Creador)
		resp.Creador = &u
	}
	if d.ExpedienteVinculado != nil {
		e := FromExpedienteSimple(d.ExpedienteVinculado)
		resp.ExpedienteVinculado = &e
	}
	return resp
}

// FromDecretos mapea una lista de entidades.
func FromDecretos(ds []*entity.Decreto) []DecretoResponse {
	out := make([]DecretoResponse, 0, len(ds))
	for _, d := range ds {
		out = append(out, FromDecreto(d))
	}
	return out
}
