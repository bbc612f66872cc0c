package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/despacho/expedientes-api/internal/application/dto"
	"github.com/despacho/expedientes-api/internal/application/usecase"
)

// ExpedienteHandler maneja los expedientes jurídicos completos.
type ExpedienteHandler struct {
	uc *usecase.ExpedienteUseCase
}

// NewExpedienteHandler construye el handler de expedientes.
func NewExpedienteHandler(uc *usecase.ExpedienteUseCase) *ExpedienteHandler {
	return &ExpedienteHandler{uc: uc}
}

// Create godoc
// @Summary      Abrir expediente
// @Description  El número aaaa-nnnn se asigna siempre en el servidor. Sin abogado explícito se asigna el usuario autenticado.
// @Tags         expedientes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateExpedienteRequest  true  "Datos del expediente"
// @Success      201   {object}  dto.Response
// @Failure      400   {object}  dto.Response
// @Router       /api/expedientes [post]
func (h *ExpedienteHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateExpedienteRequest
	if err := c.BodyParser(&in); err != nil {
		return respondFail(c, fiber.StatusBadRequest, "cuerpo inválido")
	}
	out, err := h.uc.Create(c.UserContext(), GetScope(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusCreated, "expediente abierto", out)
}

// List godoc
// @Summary      Listar expedientes
// @Tags         expedientes
// @Security     Bearer
// @Produce      json
// @Param        page       query  int     false  "Página"  default(1)
// @Param        limit      query  int     false  "Tamaño de página"  default(10)
// @Param        search     query  string  false  "Busca en número, título y descripción"
// @Param        estado     query  string  false  "activo | suspendido | archivado"
// @Param        tipoCaso   query  string  false  "Filtra por tipo de caso"
// @Param        abogadoId  query  string  false  "Filtra por abogado responsable"
// @Param        clienteId  query  string  false  "Filtra por cliente"
// @Success      200  {object}  dto.Response
// @Router       /api/expedientes [get]
func (h *ExpedienteHandler) List(c *fiber.Ctx) error {
	var in dto.ListExpedientesRequest
	if err := c.QueryParser(&in); err != nil {
		return respondFail(c, fiber.StatusBadRequest, "parámetros de consulta inválidos")
	}
	out, err := h.uc.List(c.UserContext(), GetScope(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, "", out)
}

// GetByID godoc
// @Summary      Obtener expediente por ID
// @Tags         expedientes
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del expediente"
// @Success      200  {object}  dto.Response
// @Failure      404  {object}  dto.Response
// @Router       /api/expedientes/{id} [get]
func (h *ExpedienteHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), GetScope(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, "", out)
}

// Update godoc
// @Summary      Actualizar expediente
// @Description  Edición parcial. El número asignado nunca cambia.
// @Tags         expedientes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del expediente"
// @Param        body  body  dto.UpdateExpedienteRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.Response
// @Failure      404   {object}  dto.Response
// @Router       /api/expedientes/{id} [put]
func (h *ExpedienteHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateExpedienteRequest
	if err := c.BodyParser(&in); err != nil {
		return respondFail(c, fiber.StatusBadRequest, "cuerpo inválido")
	}
	out, err := h.uc.Update(c.UserContext(), GetScope(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, "expediente actualizado", out)
}

// Archive godoc
// @Summary      Archivar expediente
// @Description  Baja lógica: el expediente pasa a estado archivado y conserva su número. Archivar dos veces da 409.
// @Tags         expedientes
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del expediente"
// @Success      200  {object}  dto.Response
// @Failure      404  {object}  dto.Response
// @Failure      409  {object}  dto.Response
// @Router       /api/expedientes/{id} [delete]
func (h *ExpedienteHandler) Archive(c *fiber.Ctx) error {
	if err := h.uc.Archive(c.UserContext(), GetScope(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, "expediente archivado", nil)
}
