package usecase

import (
	"io"

	"github.com/despacho/expedientes-api/internal/domain/entity"
)

// ComprobanteGenerator genera los PDF de comprobantes y recibos. Operación
// hoja: los casos de uso deciden si su fallo bloquea la operación.
type ComprobanteGenerator interface {
	GenerarComprobanteExpediente(e *entity.ExpedienteSimple) ([]byte, error)
	GenerarReciboPago(p *entity.Pago, e *entity.Expediente) ([]byte, error)
}

// FileStore abstrae el almacenamiento de archivos en disco.
type FileStore interface {
	Save(sub, filename string, r io.Reader) (string, error)
	SaveBytes(sub, filename string, data []byte) (string, error)
	Exists(ruta string) bool
	Delete(ruta string) error
}

// ArchivoSubido describe un archivo ya validado por la capa HTTP.
type ArchivoSubido struct {
	Nombre  string
	Tamano  int64
	Mime    string
	Content io.Reader
}
