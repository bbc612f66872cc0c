package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/despacho/expedientes-api/internal/application/dto"
	"github.com/despacho/expedientes-api/internal/application/usecase"
)

// ClienteHandler maneja los clientes del despacho.
type ClienteHandler struct {
	uc *usecase.ClienteUseCase
}

// NewClienteHandler construye el handler de clientes.
func NewClienteHandler(uc *usecase.ClienteUseCase) *ClienteHandler {
	return &ClienteHandler{uc: uc}
}

// Create godoc
// @Summary      Crear cliente
// @Tags         clientes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateClienteRequest  true  "Datos del cliente"
// @Success      201   {object}  dto.Response
// @Failure      400   {object}  dto.Response
// @Failure      409   {object}  dto.Response
// @Router       /api/clientes [post]
func (h *ClienteHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateClienteRequest
	if err := c.BodyParser(&in); err != nil {
		return respondFail(c, fiber.StatusBadRequest, "cuerpo inválido")
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusCreated, "cliente creado", out)
}

// List godoc
// @Summary      Listar clientes activos
// @Tags         clientes
// @Security     Bearer
// @Produce      json
// @Param        page         query  int     false  "Página"  default(1)
// @Param        limit        query  int     false  "Tamaño de página"  default(10)
// @Param        search       query  string  false  "Busca en nombre, apellido, email, DNI y RFC"
// @Param        tipoCliente  query  string  false  "persona_fisica | persona_moral"
// @Success      200  {object}  dto.Response
// @Router       /api/clientes [get]
func (h *ClienteHandler) List(c *fiber.Ctx) error {
	var in dto.ListClientesRequest
	if err := c.QueryParser(&in); err != nil {
		return respondFail(c, fiber.StatusBadRequest, "parámetros de consulta inválidos")
	}
	out, err := h.uc.List(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, "", out)
}

// GetByID godoc
// @Summary      Obtener cliente por ID
// @Description  Incluye clientes dados de baja: el historial sigue siendo consultable.
// @Tags         clientes
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del cliente"
// @Success      200  {object}  dto.Response
// @Failure      404  {object}  dto.Response
// @Router       /api/clientes/{id} [get]
func (h *ClienteHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, "", out)
}

// Update godoc
// @Summary      Actualizar cliente
// @Tags         clientes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del cliente"
// @Param        body  body  dto.UpdateClienteRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.Response
// @Failure      404   {object}  dto.Response
// @Router       /api/clientes/{id} [put]
func (h *ClienteHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateClienteRequest
	if err := c.BodyParser(&in); err != nil {
		return respondFail(c, fiber.StatusBadRequest, "cuerpo inválido")
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, "cliente actualizado", out)
}

// Delete godoc
// @Summary      Dar de baja un cliente
// @Description  Baja lógica. Se bloquea mientras el cliente tenga expedientes sin archivar.
// @Tags         clientes
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del cliente"
// @Success      200  {object}  dto.Response
// @Failure      404  {object}  dto.Response
// @Failure      409  {object}  dto.Response
// @Router       /api/clientes/{id} [delete]
func (h *ClienteHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, "cliente dado de baja", nil)
}
