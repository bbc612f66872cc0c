package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrInactiveUser       = errors.New("usuario inactivo")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrSelfAction         = errors.New("no puedes realizar esta acción sobre tu propia cuenta")
	ErrNoFile             = errors.New("el registro no tiene archivo asociado")
	ErrFileMissing        = errors.New("archivo no encontrado en el servidor")
	// ErrSerieAgotada: la asignación de número de serie agotó sus reintentos
	// sin conseguir insertar un número único.
	ErrSerieAgotada = errors.New("no se pudo asignar un número único para la serie")
)

// FieldError describe un error de validación sobre un campo concreto.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError agrupa errores por campo. Se mapea a HTTP 400 con la lista completa.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "datos de entrada inválidos: " + strings.Join(parts, "; ")
}

// Add acumula un error de campo. Devuelve el receptor para encadenar.
func (e *ValidationError) Add(field, message string) *ValidationError {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
	return e
}

// HasErrors indica si se acumuló al menos un error.
func (e *ValidationError) HasErrors() bool { return len(e.Fields) > 0 }

// AsValidation extrae un *ValidationError de la cadena de errores, si lo hay.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
