package entity

import "time"

// Tipos de documento adjuntable a un expediente.
var TiposDocumento = []string{
	"contrato", "demanda", "contestacion", "escrito", "promocion",
	"oficio", "acuerdo", "sentencia", "comprobante_pago", "identificacion",
	"poder", "certificado", "factura", "recibo", "otro",
}

// Estados del ciclo de vida de un documento.
const (
	DocumentoBorrador  = "borrador"
	DocumentoRevision  = "revision"
	DocumentoAprobado  = "aprobado"
	DocumentoArchivado = "archivado"
)

// Documento representa un archivo adjunto a un expediente completo.
type Documento struct {
	ID               string
	Nombre           string
	Descripcion      string
	TipoDocumento    string
	NombreArchivo    string
	RutaArchivo      string
	TamanoArchivo    int64
	TipoMime         string
	FechaDocumento   *time.Time
	FechaVencimiento *time.Time
	EsConfidencial   bool
	Version          int
	Estado           string
	Tags             string // JSON array serializado
	ExpedienteID     string
	SubidoPor        string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TipoDocumentoAdjuntoValido verifica que el tipo pertenezca al enum.
func TipoDocumentoAdjuntoValido(s string) bool {
	for _, t := range TiposDocumento {
		if t == s {
			return true
		}
	}
	return false
}
