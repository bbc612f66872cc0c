package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/despacho/expedientes-api/internal/application/dto"
	"github.com/despacho/expedientes-api/internal/domain"
	"github.com/despacho/expedientes-api/pkg/logger"
)

// LocalLogger clave de contexto para el logger de la petición.
const LocalLogger = "logger"

// conLogger deja el logger a disposición de los handlers de la petición.
func conLogger(l *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(LocalLogger, l)
		return c.Next()
	}
}

// respondData responde con el envoltorio uniforme de éxito.
func respondData(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(dto.Response{Success: true, Message: message, Data: data})
}

// respondError traduce errores de dominio a códigos HTTP. Los errores de
// validación bajan con la lista de campos; todo lo no reconocido es un 500
// sin detalle interno.
func respondError(c *fiber.Ctx, err error) error {
	if ve, ok := domain.AsValidation(err); ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Response{
			Success: false,
			Message: "datos de entrada inválidos",
			Errors:  ve.Fields,
		})
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		return respondFail(c, fiber.StatusNotFound, "recurso no encontrado")
	case errors.Is(err, domain.ErrUserNotFound):
		return respondFail(c, fiber.StatusNotFound, "usuario no encontrado")
	case errors.Is(err, domain.ErrNoFile):
		return respondFail(c, fiber.StatusNotFound, "el registro no tiene archivo asociado")
	case errors.Is(err, domain.ErrFileMissing):
		return respondFail(c, fiber.StatusNotFound, "archivo no encontrado en el servidor")
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return respondFail(c, fiber.StatusConflict, "el email ya está registrado")
	case errors.Is(err, domain.ErrDuplicate):
		return respondFail(c, fiber.StatusConflict, "ya existe un registro con ese número o identificador")
	case errors.Is(err, domain.ErrSelfAction):
		return respondFail(c, fiber.StatusConflict, "no puedes realizar esta acción sobre tu propia cuenta")
	case errors.Is(err, domain.ErrConflict):
		return respondFail(c, fiber.StatusConflict, "la operación entra en conflicto con el estado actual del recurso")
	case errors.Is(err, domain.ErrUnauthorized):
		return respondFail(c, fiber.StatusUnauthorized, "credenciales inválidas")
	case errors.Is(err, domain.ErrInactiveUser):
		return respondFail(c, fiber.StatusUnauthorized, "la cuenta está desactivada")
	case errors.Is(err, domain.ErrForbidden):
		return respondFail(c, fiber.StatusForbidden, "no tienes permisos para esta operación")
	case errors.Is(err, domain.ErrSerieAgotada):
		return respondFail(c, fiber.StatusServiceUnavailable, "no se pudo asignar un número de serie, reintenta")
	case errors.Is(err, domain.ErrInvalidInput):
		return respondFail(c, fiber.StatusBadRequest, err.Error())
	}

	// El cliente recibe el 500 genérico; el detalle completo queda en el log.
	if l, ok := c.Locals(LocalLogger).(*logger.Logger); ok && l != nil {
		l.Error().Err(err).
			Str("metodo", c.Method()).
			Str("ruta", c.Path()).
			Msg("error no controlado")
	}
	return respondFail(c, fiber.StatusInternalServerError, "error interno del servidor")
}

// respondFail responde con el envoltorio uniforme de error.
func respondFail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(dto.Response{Success: false, Message: message})
}
