package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/despacho/expedientes-api/internal/application/dto"
	"github.com/despacho/expedientes-api/internal/application/usecase"
)

// DecretoHandler maneja decretos y resoluciones.
type DecretoHandler struct {
	uc        *usecase.DecretoUseCase
	maxUpload int64
}

// NewDecretoHandler construye el handler de decretos.
func NewDecretoHandler(uc *usecase.DecretoUseCase, maxUpload int64) *DecretoHandler {
	return &DecretoHandler{uc: uc, maxUpload: maxUpload}
}

// Create godoc
// @Summary      Registrar decreto o resolución
// @Description  Multipart con archivo opcional. El número lo da el usuario y es único global.
// @Tags         decretos
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        numeroDecreto  formData  string  true   "Número del documento"
// @Param        tipoDocumento  formData  string  true   "decreto | resolucion"
// @Param        titulo         formData  string  true   "Título"
// @Param        fechaEmision   formData  string  true   "aaaa-mm-dd"
// @Param        documento      formData  file    false  "Archivo del documento"
// @Success      201  {object}  dto.Response
// @Failure      400  {object}  dto.Response
// @Failure      409  {object}  dto.Response
// @Router       /api/decretos [post]
func (h *DecretoHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDecretoRequest
	if err := c.BodyParser(&in); err != nil {
		return respondFail(c, fiber.StatusBadRequest, "formulario inválido")
	}
	archivo, err := parseArchivo(c, h.maxUpload)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), GetScope(c), in, archivo)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusCreated, "documento registrado", out)
}

// List godoc
// @Summary      Listar decretos y resoluciones
// @Tags         decretos
// @Security     Bearer
// @Produce      json
// @Param        page           query  int     false  "Página"  default(1)
// @Param        limit          query  int     false  "Tamaño de página"  default(10)
// @Param        search         query  string  false  "Busca en número, título y descripción"
// @Param        tipoDocumento  query  string  false  "decreto | resolucion"
// @Param        estado         query  string  false  "vigente | suspendido | derogado | vencido"
// @Success      200  {object}  dto.Response
// @Router       /api/decretos [get]
func (h *DecretoHandler) List(c *fiber.Ctx) error {
	var in dto.ListDecretosRequest
	if err := c.QueryParser(&in); err != nil {
		return respondFail(c, fiber.StatusBadRequest, "parámetros de consulta inválidos")
	}
	out, err := h.uc.List(c.UserContext(), GetScope(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, "", out)
}

// ExpedientesForLink godoc
// @Summary      Expedientes disponibles para vincular
// @Description  Lista completa sin filtro de alcance: el selector de vínculo muestra todos los registros.
// @Tags         decretos
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Response
// @Router       /api/decretos/expedientes-for-link [get]
func (h *DecretoHandler) ExpedientesForLink(c *fiber.Ctx) error {
	out, err := h.uc.ExpedientesForLink(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, "", out)
}

// GetByID godoc
// @Summary      Obtener decreto por ID
// @Tags         decretos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del documento"
// @Success      200  {object}  dto.Response
// @Failure      404  {object}  dto.Response
// @Router       /api/decretos/{id} [get]
func (h *DecretoHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), GetScope(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, "", out)
}

// ExpedienteVinculado godoc
// @Summary      Expediente vinculado al decreto
// @Tags         decretos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del documento"
// @Success      200  {object}  dto.Response
// @Failure      404  {object}  dto.Response
// @Router       /api/decretos/{id}/expedientes [get]
func (h *DecretoHandler) ExpedienteVinculado(c *fiber.Ctx) error {
	out, err := h.uc.ExpedienteVinculado(c.UserContext(), GetScope(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, "", out)
}

// Update godoc
// @Summary      Actualizar decreto
// @Description  Multipart parcial. Un cambio de número se re-verifica único excluyendo el propio registro.
// @Tags         decretos
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        id   path  string  true  "ID del documento"
// @Success      200  {object}  dto.Response
// @Failure      404  {object}  dto.Response
// @Failure      409  {object}  dto.Response
// @Router       /api/decretos/{id} [put]
func (h *DecretoHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateDecretoRequest
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
	return respondData(c, fiber.StatusOK, "documento actualizado", out)
}

// Delete godoc
// @Summary      Eliminar decreto
// @Description  Borrado físico. El número queda libre.
// @Tags         decretos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del documento"
// @Success      200  {object}  dto.Response
// @Failure      404  {object}  dto.Response
// @Router       /api/decretos/{id} [delete]
func (h *DecretoHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetScope(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, "documento eliminado", nil)
}

// Download godoc
// @Summary      Descargar archivo del decreto
// @Tags         decretos
// @Security     Bearer
// @Produce      application/octet-stream
// @Param        id   path  string  true  "ID del documento"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.Response
// @Router       /api/decretos/{id}/download-file [get]
func (h *DecretoHandler) Download(c *fiber.Ctx) error {
	ruta, nombre, err := h.uc.DownloadFile(c.UserContext(), GetScope(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.Download(ruta, nombre)
}

// DownloadExpediente godoc
// @Summary      Descargar archivo del expediente vinculado
// @Tags         decretos
// @Security     Bearer
// @Produce      application/octet-stream
// @Param        id   path  string  true  "ID del documento"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.Response
// @Router       /api/decretos/{id}/download-expediente-file [get]
func (h *DecretoHandler) DownloadExpediente(c *fiber.Ctx) error {
	ruta, nombre, err := h.uc.DownloadExpedienteFile(c.UserContext(), GetScope(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.Download(ruta, nombre)
}
