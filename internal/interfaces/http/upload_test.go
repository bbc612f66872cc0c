package http

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const maxBytesPrueba = 1 << 20

func appConParseArchivo() *fiber.App {
	app := fiber.New()
	app.Post("/subir", func(c *fiber.Ctx) error {
		archivo, err := parseArchivo(c, maxBytesPrueba)
		if err != nil {
			return respondError(c, err)
		}
		if archivo == nil {
			return respondData(c, fiber.StatusOK, "sin archivo", nil)
		}
		return respondData(c, fiber.StatusOK, "archivo recibido", fiber.Map{"nombre": archivo.Nombre})
	})
	return app
}

type parteArchivo struct {
	campo  string
	nombre string
	mime   string
}

func cuerpoMultipart(t *testing.T, partes []parteArchivo) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, p := range partes {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name=%q; filename=%q`, p.campo, p.nombre))
		h.Set("Content-Type", p.mime)
		parte, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = parte.Write([]byte("%PDF-contenido"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func subir(t *testing.T, app *fiber.App, body io.Reader, contentType string) (int, string) {
	t.Helper()
	req := httptest.NewRequest("POST", "/subir", body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(raw)
}

func TestParseArchivo_ArchivoValido(t *testing.T) {
	app := appConParseArchivo()
	body, ct := cuerpoMultipart(t, []parteArchivo{
		{campo: CampoArchivo, nombre: "escrito.pdf", mime: "application/pdf"},
	})

	status, out := subir(t, app, body, ct)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, out, "escrito.pdf")
}

func TestParseArchivo_SinMultipartEsSinArchivo(t *testing.T) {
	app := appConParseArchivo()

	status, out := subir(t, app, strings.NewReader(`{"nombre":"x"}`), "application/json")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, out, "sin archivo")
}

func TestParseArchivo_CampoInesperado(t *testing.T) {
	app := appConParseArchivo()
	body, ct := cuerpoMultipart(t, []parteArchivo{
		{campo: "adjunto", nombre: "escrito.pdf", mime: "application/pdf"},
	})

	status, out := subir(t, app, body, ct)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, out, "adjunto")
	assert.Contains(t, out, "no esperado")
}

func TestParseArchivo_MasDeUnArchivo(t *testing.T) {
	app := appConParseArchivo()
	body, ct := cuerpoMultipart(t, []parteArchivo{
		{campo: CampoArchivo, nombre: "uno.pdf", mime: "application/pdf"},
		{campo: CampoArchivo, nombre: "dos.pdf", mime: "application/pdf"},
	})

	status, out := subir(t, app, body, ct)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, out, "un archivo por petición")
}

func TestParseArchivo_TipoNoPermitido(t *testing.T) {
	app := appConParseArchivo()
	body, ct := cuerpoMultipart(t, []parteArchivo{
		{campo: CampoArchivo, nombre: "virus.exe", mime: "application/octet-stream"},
	})

	status, out := subir(t, app, body, ct)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, out, "tipo de archivo no permitido")
}
