package dto

import (
	"time"

	"github.com/despacho/expedientes-api/internal/domain/entity"
)

// CreateExpedienteSimpleRequest carga de un expediente simple o actuación.
// Llega como multipart: campos de formulario + archivo opcional "documento".
// NumeroExpediente vacío dispara la numeración automática n/aa.
type CreateExpedienteSimpleRequest struct {
	NumeroExpediente  string `form:"numeroExpediente" validate:"omitempty,max=20"`
	FechaCarga        string `form:"fechaCarga" validate:"omitempty,datetime=2006-01-02"`
	NombreSolicitante string `form:"nombreSolicitante" validate:"required,min=1,max=200"`
	DNI               string `form:"dni" validate:"omitempty,max=20"`
	Area              string `form:"area" validate:"omitempty,max=100"`
	Descripcion       string `form:"descripcion" validate:"omitempty,max=2000"`
}

// UpdateExpedienteSimpleRequest edición parcial; el número no se reexpide.
type UpdateExpedienteSimpleRequest struct {
	FechaCarga        *string `form:"fechaCarga" validate:"omitempty,datetime=2006-01-02"`
	NombreSolicitante *string `form:"nombreSolicitante" validate:"omitempty,min=1,max=200"`
	DNI               *string `form:"dni" validate:"omitempty,max=20"`
	Area              *string `form:"area" validate:"omitempty,max=100"`
	Descripcion       *string `form:"descripcion" validate:"omitempty,max=2000"`
}

// ListExpedientesSimpleRequest filtros de listado.
type ListExpedientesSimpleRequest struct {
	PageRequest
	Search    string `query:"search"`
	Area      string `query:"area"`
	UsuarioID string `query:"usuarioId"`
}

// ExpedienteSimpleResponse salida de un registro de mesa de entradas.
type ExpedienteSimpleResponse struct {
	ID                     string           `json:"id"`
	NumeroExpediente       string           `json:"numeroExpediente"`
	FechaCarga             time.Time        `json:"fechaCarga"`
	NombreSolicitante      string           `json:"nombreSolicitante"`
	DNI                    string           `json:"dni,omitempty"`
	Area                   string           `json:"area,omitempty"`
	Descripcion            string           `json:"descripcion,omitempty"`
	NombreArchivoEscaneado string           `json:"nombreArchivoEscaneado,omitempty"`
	TieneArchivo           bool             `json:"tieneArchivo"`
	TieneComprobante       bool             `json:"tieneComprobante"`
	TipoExpediente         bool             `json:"tipoExpediente"`
	Creador                *UsuarioResponse `json:"creador,omitempty"`
	CreatedAt              time.Time        `json:"createdAt"`
	UpdatedAt              time.Time        `json:"updatedAt"`
}

// FromExpedienteSimple mapea la entidad; las rutas de disco nunca se exponen.
func FromExpedienteSimple(e *entity.ExpedienteSimple) ExpedienteSimpleResponse {
	resp := ExpedienteSimpleResponse{
		ID:                     e.ID,
		NumeroExpediente:       e.NumeroExpediente,
		FechaCarga:             e.FechaCarga,
		NombreSolicitante:      e.NombreSolicitante,
		DNI:                    e.DNI,
		Area:                   e.Area,
		Descripcion:            e.Descripcion,
		NombreArchivoEscaneado: e.NombreArchivoEscaneado,
		TieneArchivo:           e.RutaArchivoEscaneado != "",
		TieneComprobante:       e.RutaComprobantePDF != "",
		TipoExpediente:         e.TipoExpediente,
		CreatedAt:              e.CreatedAt,
		UpdatedAt:              e.UpdatedAt,
	}
	if e.Creador != nil {
		u := FromUsuario(e.Creador)
		resp.Creador = &u
	}
	return resp
}

// FromExpedientesSimple mapea una lista de entidades.
func FromExpedientesSimple(es []*entity.ExpedienteSimple) []ExpedienteSimpleResponse {
	out := make([]ExpedienteSimpleResponse, 0, len(es))
	for _, e := range es {
		out = append(out, FromExpedienteSimple(e))
	}
	return out
}
