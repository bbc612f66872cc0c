package http

import (
	"bytes"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/despacho/expedientes-api/pkg/logger"
)

// Un error no reconocido baja como 500 genérico, pero el detalle completo
// con método y ruta queda en el log.
func TestRespondError_ErrorInesperadoSeLoguea(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Level: "error", Salida: &buf})

	app := fiber.New()
	app.Use(conLogger(l))
	app.Get("/fallo", func(c *fiber.Ctx) error {
		return respondError(c, errors.New("conexión perdida con la base"))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/fallo", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, string(raw), "error interno del servidor")
	assert.NotContains(t, string(raw), "conexión perdida", "el detalle interno no se expone al cliente")

	logged := buf.String()
	assert.Contains(t, logged, "error no controlado")
	assert.Contains(t, logged, "conexión perdida con la base")
	assert.Contains(t, logged, "/fallo")
	assert.Contains(t, logged, "GET")
}

// Un id de ruta que no es UUID no identifica ningún registro: 404 directo,
// sin llegar a la base.
func TestValidarID_IDMalformadoEs404(t *testing.T) {
	app := fiber.New()
	app.Get("/recursos/:id", validarID(), func(c *fiber.Ctx) error {
		return respondData(c, fiber.StatusOK, "ok", nil)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/recursos/no-soy-uuid", nil))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/recursos/5f1c9b1e-9d1a-4e6b-8f33-2a7c640d8aa1", nil))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
