package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/despacho/expedientes-api/internal/application/dto"
	"github.com/despacho/expedientes-api/internal/application/usecase"
)

// ExpedienteSimpleHandler maneja los registros de mesa de entradas. El mismo
// handler sirve /api/expedientes-simple (tipo expediente) y /api/actuaciones
// (tipo actuación): cada montaje fija su tipo y con él su serie de numeración.
type ExpedienteSimpleHandler struct {
	uc        *usecase.ExpedienteSimpleUseCase
	maxUpload int64
	tipo      bool
}

// NewExpedienteSimpleHandler construye el handler para el tipo dado
// (true = expediente, false = actuación).
func NewExpedienteSimpleHandler(uc *usecase.ExpedienteSimpleUseCase, maxUpload int64, tipo bool) *ExpedienteSimpleHandler {
	return &ExpedienteSimpleHandler{uc: uc, maxUpload: maxUpload, tipo: tipo}
}

// Create godoc
// @Summary      Cargar expediente o actuación
// @Description  Multipart. Sin numeroExpediente se asigna el siguiente número n/aa de la serie del tipo.
// @Tags         expedientes-simple
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        nombreSolicitante  formData  string  true   "Nombre del solicitante"
// @Param        numeroExpediente   formData  string  false  "Número manual n/aa"
// @Param        fechaCarga         formData  string  false  "aaaa-mm-dd"
// @Param        dni                formData  string  false  "DNI del solicitante"
// @Param        area               formData  string  false  "Área de destino"
// @Param        descripcion        formData  string  false  "Descripción"
// @Param        documento          formData  file    false  "Archivo escaneado"
// @Success      201  {object}  dto.Response
// @Failure      400  {object}  dto.Response
// @Failure      409  {object}  dto.Response
// @Router       /api/expedientes-simple [post]
func (h *ExpedienteSimpleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateExpedienteSimpleRequest
	if err := c.BodyParser(&in); err != nil {
		return respondFail(c, fiber.StatusBadRequest, "formulario inválido")
	}
	archivo, err := parseArchivo(c, h.maxUpload)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), GetScope(c), in, archivo, h.tipo)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusCreated, "registro cargado", out)
}

// List godoc
// @Summary      Listar expedientes o actuaciones
// @Tags         expedientes-simple
// @Security     Bearer
// @Produce      json
// @Param        page       query  int     false  "Página"  default(1)
// @Param        limit      query  int     false  "Tamaño de página"  default(10)
// @Param        search     query  string  false  "Busca en número, solicitante y descripción"
// @Param        area       query  string  false  "Filtra por área"
// @Param        usuarioId  query  string  false  "Filtra por usuario que cargó (solo admin tiene efecto)"
// @Success      200  {object}  dto.Response
// @Router       /api/expedientes-simple [get]
func (h *ExpedienteSimpleHandler) List(c *fiber.Ctx) error {
	var in dto.ListExpedientesSimpleRequest
	if err := c.QueryParser(&in); err != nil {
		return respondFail(c, fiber.StatusBadRequest, "parámetros de consulta inválidos")
	}
	out, err := h.uc.List(c.UserContext(), GetScope(c), in, h.tipo)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, "", out)
}

// GetByID godoc
// @Summary      Obtener registro por ID
// @Tags         expedientes-simple
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del registro"
// @Success      200  {object}  dto.Response
// @Failure      404  {object}  dto.Response
// @Router       /api/expedientes-simple/{id} [get]
func (h *ExpedienteSimpleHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), GetScope(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, "", out)
}

// Update godoc
// @Summary      Actualizar registro
// @Description  Multipart parcial. El número asignado no se reexpide; un archivo nuevo reemplaza al anterior.
// @Tags         expedientes-simple
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        id   path  string  true  "ID del registro"
// @Success      200  {object}  dto.Response
// @Failure      404  {object}  dto.Response
// @Router       /api/expedientes-simple/{id} [put]
func (h *ExpedienteSimpleHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateExpedienteSimpleRequest
	if err := c.BodyParser(&in); err != nil {
		return respondFail(c, fiber.StatusBadRequest, "formulario inválido")
	}
	archivo, err := parseArchivo(c, h.maxUpload)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), GetScope(c), c.Params("id"), in, archivo)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, "registro actualizado", out)
}

// Delete godoc
// @Summary      Eliminar registro
// @Description  Borrado físico. El número queda libre y puede reasignarse.
// @Tags         expedientes-simple
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del registro"
// @Success      200  {object}  dto.Response
// @Failure      404  {object}  dto.Response
// @Router       /api/expedientes-simple/{id} [delete]
func (h *ExpedienteSimpleHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetScope(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, "registro eliminado", nil)
}

// Download godoc
// @Summary      Descargar archivo escaneado
// @Tags         expedientes-simple
// @Security     Bearer
// @Produce      application/octet-stream
// @Param        id   path  string  true  "ID del registro"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.Response
// @Router       /api/expedientes-simple/{id}/download-file [get]
func (h *ExpedienteSimpleHandler) Download(c *fiber.Ctx) error {
	ruta, nombre, err := h.uc.DownloadFile(c.UserContext(), GetScope(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.Download(ruta, nombre)
}

// DownloadComprobante godoc
// @Summary      Descargar comprobante PDF de carga
// @Tags         expedientes-simple
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del registro"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.Response
// @Router       /api/expedientes-simple/{id}/download-comprobante [get]
func (h *ExpedienteSimpleHandler) DownloadComprobante(c *fiber.Ctx) error {
	ruta, nombre, err := h.uc.DownloadComprobante(c.UserContext(), GetScope(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.Download(ruta, nombre)
}
