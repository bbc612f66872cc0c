package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/despacho/expedientes-api/internal/domain/entity"
)

// CreateExpedienteRequest alta de expediente completo. La numeración aaaa-nnnn
// es siempre automática.
type CreateExpedienteRequest struct {
	Titulo               string          `json:"titulo" validate:"required,min=1,max=300"`
	Descripcion          string          `json:"descripcion" validate:"omitempty,max=2000"`
	TipoCaso             string          `json:"tipoCaso" validate:"required"`
	Prioridad            string          `json:"prioridad" validate:"omitempty,oneof=baja media alta urgente"`
	FechaInicio          string          `json:"fechaInicio" validate:"omitempty,datetime=2006-01-02"`
	HonorariosEstimados  decimal.Decimal `json:"honorariosEstimados"`
	Juzgado              string          `json:"juzgado" validate:"omitempty,max=200"`
	NumeroJuzgado        string          `json:"numeroJuzgado" validate:"omitempty,max=50"`
	Juez                 string          `json:"juez" validate:"omitempty,max=200"`
	Contraparte          string          `json:"contraparte" validate:"omitempty,max=200"`
	Notas                string          `json:"notas" validate:"omitempty,max=2000"`
	ClienteID            string          `json:"clienteId" validate:"required,uuid"`
	AbogadoResponsableID string          `json:"abogadoResponsableId" validate:"omitempty,uuid"`
}

// UpdateExpedienteRequest edición parcial; el número nunca se reexpide.
type UpdateExpedienteRequest struct {
	Titulo               *string          `json:"titulo" validate:"omitempty,min=1,max=300"`
	Descripcion          *string          `json:"descripcion" validate:"omitempty,max=2000"`
	TipoCaso             *string          `json:"tipoCaso"`
	Estado               *string          `json:"estado"`
	Prioridad            *string          `json:"prioridad" validate:"omitempty,oneof=baja media alta urgente"`
	FechaInicio          *string          `json:"fechaInicio" validate:"omitempty,datetime=2006-01-02"`
	FechaCierre          *string          `json:"fechaCierre" validate:"omitempty,datetime=2006-01-02"`
	HonorariosEstimados  *decimal.Decimal `json:"honorariosEstimados"`
	HonorariosPagados    *decimal.Decimal `json:"honorariosPagados"`
	Juzgado              *string          `json:"juzgado" validate:"omitempty,max=200"`
	NumeroJuzgado        *string          `json:"numeroJuzgado" validate:"omitempty,max=50"`
	Juez                 *string          `json:"juez" validate:"omitempty,max=200"`
	Contraparte          *string          `json:"contraparte" validate:"omitempty,max=200"`
	Notas                *string          `json:"notas" validate:"omitempty,max=2000"`
	ClienteID            *string          `json:"clienteId" validate:"omitempty,uuid"`
	AbogadoResponsableID *string          `json:"abogadoResponsableId" validate:"omitempty,uuid"`
}

// ListExpedientesRequest filtros de listado.
type ListExpedientesRequest struct {
	PageRequest
	Search    string `query:"search"`
	Estado    string `query:"estado"`
	TipoCaso  string `query:"tipoCaso"`
	AbogadoID string `query:"abogadoId"`
	ClienteID string `query:"clienteId"`
}

// ExpedienteResponse salida de un expediente completo.
type ExpedienteResponse struct {
	ID                   string           `json:"id"`
	NumeroExpediente     string           `json:"numeroExpediente"`
	Titulo               string           `json:"titulo"`
	Descripcion          string           `json:"descripcion,omitempty"`
	TipoCaso             string           `json:"tipoCaso"`
	Estado               string           `json:"estado"`
	Prioridad            string           `json:"prioridad"`
	FechaInicio          time.Time        `json:"fechaInicio"`
	FechaCierre          *time.Time       `json:"fechaCierre,omitempty"`
	HonorariosEstimados  decimal.Decimal  `json:"honorariosEstimados"`
	HonorariosPagados    decimal.Decimal  `json:"honorariosPagados"`
	Juzgado              string           `json:"juzgado,omitempty"`
	NumeroJuzgado        string           `json:"numeroJuzgado,omitempty"`
	Juez                 string           `json:"juez,omitempty"`
	Contraparte          string           `json:"contraparte,omitempty"`
	Notas                string           `json:"notas,omitempty"`
	ClienteID            string           `json:"clienteId"`
	AbogadoResponsableID string           `json:"abogadoResponsableId"`
	Cliente              *ClienteResponse `json:"cliente,omitempty"`
	AbogadoResponsable   *UsuarioResponse `json:"abogadoResponsable,omitempty"`
	CreatedAt            time.Time        `json:"createdAt"`
	UpdatedAt            time.Time        `json:"updatedAt"`
}

// FromExpediente mapea la entidad a su representación pública.
func FromExpediente(e *entity.Expediente) ExpedienteResponse {
	resp := ExpedienteResponse{
		ID:                   e.ID,
		NumeroExpediente:     e.NumeroExpediente,
		Titulo:               e.Titulo,
		Descripcion:          e.Descripcion,
		TipoCaso:             e.TipoCaso,
		Estado:               e.Estado,
		Prioridad:            e.Prioridad,
		FechaInicio:          e.FechaInicio,
		FechaCierre:          e.FechaCierre,
		HonorariosEstimados:  e.HonorariosEstimados,
		HonorariosPagados:    e.HonorariosPagados,
		Juzgado:              e.Juzgado,
		NumeroJuzgado:        e.NumeroJuzgado,
		Juez:                 e.Juez,
		Contraparte:          e.Contraparte,
		Notas:                e.Notas,
		ClienteID:            e.ClienteID,
		AbogadoResponsableID: e.AbogadoResponsableID,
		CreatedAt:            e.CreatedAt,
		UpdatedAt:            e.UpdatedAt,
	}
	if e.Cliente != nil {
		c := FromCliente(e.Cliente)
		resp.Cliente = &c
	}
	if e.AbogadoResponsable != nil {
		u := FromUsuario(e.AbogadoResponsable)
		resp.AbogadoResponsable = &u
	}
	return resp
}

// FromExpedientes mapea una lista de entidades.
func FromExpedientes(es []*entity.Expediente) []ExpedienteResponse {
	out := make([]ExpedienteResponse, 0, len(es))
	for _, e := range es {
		out = append(out, FromExpediente(e))
	}
	return out
}
