package entity

import "time"

// ExpedienteSimple representa un registro de mesa de entradas: expediente o
// actuación según TipoExpediente (true = expediente, false = actuación).
// Ambos comparten tabla y numeración en formato "n/aa" por año y tipo.
type ExpedienteSimple struct {
	ID                     string
	NumeroExpediente       string // único; formato "n/aa"
	FechaCarga             time.Time
	NombreSolicitante      string
	DNI                    string
	Area                   string
	Descripcion            string
	NombreArchivoEscaneado string
	RutaArchivoEscaneado   string
	TipoExpediente         bool // true = expediente, false = actuación
	UsuarioCreadorID       string
	RutaComprobantePDF     string
	CreatedAt              time.Time
	UpdatedAt              time.Time

	// Creador se completa en lecturas para mostrar quién cargó el registro.
	Creador *Usuario
}
