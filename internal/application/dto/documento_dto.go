package dto

import (
	"time"

	"github.com/despacho/expedientes-api/internal/domain/entity"
)

// CreateDocumentoRequest adjunta un documento a un expediente. Multipart con
// archivo obligatorio "documento"; el expediente sale de la ruta.
type CreateDocumentoRequest struct {
	Nombre           string `form:"nombre" validate:"required,min=1,max=300"`
	Descripcion      string `form:"descripcion" validate:"omitempty,max=2000"`
	TipoDocumento    string `form:"tipoDocumento" validate:"required"`
	FechaDocumento   string `form:"fechaDocumento" validate:"omitempty,datetime=2006-01-02"`
	FechaVencimiento string `form:"fechaVencimiento" validate:"omitempty,datetime=2006-01-02"`
	EsConfidencial   bool   `form:"esConfidencial"`
	Tags             string `form:"tags" validate:"omitempty,max=500"`
}

// DocumentoResponse salida de un documento adjunto.
type DocumentoResponse struct {
	ID               string     `json:"id"`
	Nombre           string     `json:"nombre"`
	Descripcion      string     `json:"descripcion,omitempty"`
	TipoDocumento    string     `json:"tipoDocumento"`
	NombreArchivo    string     `json:"nombreArchivo"`
	TamanoArchivo    int64      `json:"tamanoArchivo"`
	TipoMime         string     `json:"tipoMime"`
	FechaDocumento   *time.Time `json:"fechaDocumento,omitempty"`
	FechaVencimiento *time.Time `json:"fechaVencimiento,omitempty"`
	EsConfidencial   bool       `json:"esConfidencial"`
	Version          int        `json:"version"`
	Estado           string     `json:"estado"`
	Tags             string     `json:"tags,omitempty"`
	ExpedienteID     string     `json:"expedienteId"`
	SubidoPor        string     `json:"subidoPor"`
	CreatedAt        time.Time  `json:"createdAt"`
}

// FromDocumento mapea la entidad; la ruta de disco nunca se expone.
func FromDocumento(d *entity.Documento) DocumentoResponse {
	return DocumentoResponse{
		ID:               d.ID,
		Nombre:           d.Nombre,
		Descripcion:      d.Descripcion,
		TipoDocumento:    d.TipoDocumento,
		NombreArchivo:    d.NombreArchivo,
		TamanoArchivo:    d.TamanoArchivo,
		TipoMime:         d.TipoMime,
		FechaDocumento:   d.FechaDocumento,
		FechaVencimiento: d.FechaVencimiento,
		EsConfidencial:   d.EsConfidencial,
		Version:          d.Version,
		Estado:           d.Estado,
		Tags:             d.Tags,
		ExpedienteID:     d.ExpedienteID,
		SubidoPor:        d.SubidoPor,
		CreatedAt:        d.CreatedAt,
	}
}

// FromDocumentos mapea una lista de entidades.
func FromDocumentos(ds []*entity.Documento) []DocumentoResponse {
	out := make([]DocumentoResponse, 0, len(ds))
	for _, d := range ds {
		out = append(out, FromDocumento(d))
	}
	return out
}
