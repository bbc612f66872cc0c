package http

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"github.com/despacho/expedientes-api/internal/application/usecase"
	"github.com/despacho/expedientes-api/internal/domain"
)

// CampoArchivo es el nombre del campo multipart para adjuntos.
const CampoArchivo = "documento"

// mimePermitidos tipos de contenido aceptados para adjuntos.
var mimePermitidos = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/vnd.ms-excel": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true,
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"text/plain": true,
}

// parseArchivo extrae el adjunto opcional del formulario multipart. Devuelve
// nil sin error cuando el campo no viene: los handlers deciden si el archivo
// es obligatorio. Un campo de archivo ajeno o más de un archivo en el campo
// esperado se rechazan con 400.
func parseArchivo(c *fiber.Ctx, maxBytes int64) (*usecase.ArchivoSubido, error) {
	form, err := c.MultipartForm()
	if err != nil {
		// Petición sin cuerpo multipart: cuenta como "sin archivo".
		return nil, nil
	}

	ve := &domain.ValidationError{}
	for campo := range form.File {
		if campo != CampoArchivo {
			ve.Add(campo, "campo de archivo no esperado, usa \""+CampoArchivo+"\"")
		}
	}
	if ve.HasErrors() {
		return nil, ve
	}

	fhs := form.File[CampoArchivo]
	if len(fhs) == 0 {
		return nil, nil
	}
	if len(fhs) > 1 {
		ve.Add(CampoArchivo, "solo se admite un archivo por petición")
		return nil, ve
	}
	return leerArchivo(fhs[0], maxBytes)
}

func leerArchivo(fh *multipart.FileHeader, maxBytes int64) (*usecase.ArchivoSubido, error) {
	ve := &domain.ValidationError{}
	if fh.Size > maxBytes {
		ve.Add(CampoArchivo, fmt.Sprintf("el archivo supera el tamaño máximo de %d MB", maxBytes/(1024*1024)))
		return nil, ve
	}
	mime := fh.Header.Get("Content-Type")
	if !mimePermitidos[mime] {
		ve.Add(CampoArchivo, "tipo de archivo no permitido")
		return nil, ve
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("abrir archivo subido: %w", err)
	}
	defer f.Close()

	// Se lee en memoria con tope: el límite del handler ya acota el tamaño.
	data, err := io.ReadAll(io.LimitReader(f, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("leer archivo subido: %w", err)
	}
	if int64(len(data)) > maxBytes {
		ve.Add(CampoArchivo, fmt.Sprintf("el archivo supera el tamaño máximo de %d MB", maxBytes/(1024*1024)))
		return nil, ve
	}

	return &usecase.ArchivoSubido{
		Nombre:  fh.Filename,
		Tamano:  int64(len(data)),
		Mime:    mime,
		Content: bytes.NewReader(data),
	}, nil
}
