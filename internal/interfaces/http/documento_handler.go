package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/despacho/expedientes-api/internal/application/dto"
	"github.com/despacho/expedientes-api/internal/application/usecase"
)

// DocumentoHandler maneja los documentos adjuntos a expedientes. La
// visibilidad se hereda del expediente padre.
type DocumentoHandler struct {
	uc        *usecase.DocumentoUseCase
	maxUpload int64
}

// NewDocumentoHandler construye el handler de documentos.
func NewDocumentoHandler(uc *usecase.DocumentoUseCase, maxUpload int64) *DocumentoHandler {
	return &DocumentoHandler{uc: uc, maxUpload: maxUpload}
}

// Create godoc
// @Summary      Adjuntar documento a un expediente
// @Description  Multipart. El archivo es obligatorio.
// @Tags         documentos
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        id             path      string  true   "ID del expediente"
// @Param        nombre         formData  string  true   "Nombre del documento"
// @Param        tipoDocumento  formData  string  true   "Tipo de documento"
// @Param        documento      formData  file    true   "Archivo"
// @Success      201  {object}  dto.Response
// @Failure      400  {object}  dto.Response
// @Failure      404  {object}  dto.Response
// @Router       /api/expedientes/{id}/documentos [post]
func (h *DocumentoHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDocumentoRequest
	if err := c.BodyParser(&in); err != nil {
		return respondFail(c, fiber.StatusBadRequest, "formulario inválido")
	}
	archivo, err := parseArchivo(c, h.maxUpload)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), GetScope(c), c.Params("id"), in, archivo)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusCreated, "documento adjuntado", out)
}

// ListByExpediente godoc
// @Summary      Listar documentos de un expediente
// @Tags         documentos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del expediente"
// @Success      200  {object}  dto.Response
// @Failure      404  {object}  dto.Response
// @Router       /api/expedientes/{id}/documentos [get]
func (h *DocumentoHandler) ListByExpediente(c *fiber.Ctx) error {
	out, err := h.uc.ListByExpediente(c.UserContext(), GetScope(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, "", out)
}

// GetByID godoc
// @Summary      Obtener documento por ID
// @Tags         documentos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del documento"
// @Success      200  {object}  dto.Response
// @Failure      404  {object}  dto.Response
// @Router       /api/documentos/{id} [get]
func (h *DocumentoHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), GetScope(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, "", out)
}

// Download godoc
// @Summary      Descargar archivo del documento
// @Tags         documentos
// @Security     Bearer
// @Produce      application/octet-stream
// @Param        id   path  string  true  "ID del documento"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.Response
// @Router       /api/documentos/{id}/download [get]
func (h *DocumentoHandler) Download(c *fiber.Ctx) error {
	ruta, nombre, err := h.uc.Download(c.UserContext(), GetScope(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.Download(ruta, nombre)
}

// Delete godoc
// @Summary      Eliminar documento
// @Description  Borrado físico del registro y su archivo.
// @Tags         documentos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del documento"
// @Success      200  {object}  dto.Response
// @Failure      404  {object}  dto.Response
// @Router       /api/documentos/{id} [delete]
func (h *DocumentoHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetScope(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, "documento eliminado", nil)
}
