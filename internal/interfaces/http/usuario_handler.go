package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/despacho/expedientes-api/internal/application/dto"
	"github.com/despacho/expedientes-api/internal/application/usecase"
)

// UsuarioHandler administración de cuentas (solo admin; el router aplica
// RequireAdmin al grupo completo).
type UsuarioHandler struct {
	uc *usecase.UserUseCase
}

// NewUsuarioHandler construye el handler de usuarios.
func NewUsuarioHandler(uc *usecase.UserUseCase) *UsuarioHandler {
	return &UsuarioHandler{uc: uc}
}

// Create godoc
// @Summary      Crear usuario
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateUsuarioRequest  true  "Datos del usuario"
// @Success      201   {object}  dto.Response
// @Failure      400   {object}  dto.Response
// @Failure      409   {object}  dto.Response
// @Router       /api/users [post]
func (h *UsuarioHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUsuarioRequest
	if err := c.BodyParser(&in); err != nil {
		return respondFail(c, fiber.StatusBadRequest, "cuerpo inválido")
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusCreated, "usuario creado", out)
}

// List godoc
// @Summary      Listar usuarios
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        page    query  int     false  "Página"  default(1)
// @Param        limit   query  int     false  "Tamaño de página"  default(10)
// @Param        search  query  string  false  "Busca en nombre, apellido y email"
// @Param        rol     query  string  false  "admin | administrativo"
// @Success      200     {object}  dto.Response
// @Router       /api/users [get]
func (h *UsuarioHandler) List(c *fiber.Ctx) error {
	var in dto.ListUsuariosRequest
	if err := c.QueryParser(&in); err != nil {
		return respondFail(c, fiber.StatusBadRequest, "parámetros de consulta inválidos")
	}
	out, err := h.uc.List(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, "", out)
}

// Stats godoc
// @Summary      Estadísticas de usuarios
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Response
// @Router       /api/users/stats [get]
func (h *UsuarioHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, "", out)
}

// GetByID godoc
// @Summary      Obtener usuario por ID
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del usuario"
// @Success      200  {object}  dto.Response
// @Failure      404  {object}  dto.Response
// @Router       /api/users/{id} [get]
func (h *UsuarioHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, "", out)
}

// Update godoc
// @Summary      Actualizar usuario
// @Description  Desactivar la propia cuenta se rechaza con 409.
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del usuario"
// @Param        body  body  dto.UpdateUsuarioRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.Response
// @Failure      404   {object}  dto.Response
// @Failure      409   {object}  dto.Response
// @Router       /api/users/{id} [put]
func (h *UsuarioHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateUsuarioRequest
	if err := c.BodyParser(&in); err != nil {
		return respondFail(c, fiber.StatusBadRequest, "cuerpo inválido")
	}
	out, err := h.uc.Update(c.UserContext(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, "usuario actualizado", out)
}

// Delete godoc
// @Summary      Dar de baja un usuario
// @Description  Baja lógica. Se bloquea si el usuario tiene registros cargados o si es la propia cuenta.
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del usuario"
// @Success      200  {object}  dto.Response
// @Failure      404  {object}  dto.Response
// @Failure      409  {object}  dto.Response
// @Router       /api/users/{id} [delete]
func (h *UsuarioHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetUserID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, "usuario dado de baja", nil)
}

// ResetPassword godoc
// @Summary      Restablecer contraseña de un usuario
// @Description  Acción de administrador. No exige la contraseña actual.
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del usuario"
// @Param        body  body  dto.ResetPasswordRequest  true  "newPassword"
// @Success      200   {object}  dto.Response
// @Failure      404   {object}  dto.Response
// @Router       /api/users/{id}/reset-password [put]
func (h *UsuarioHandler) ResetPassword(c *fiber.Ctx) error {
	var in dto.ResetPasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return respondFail(c, fiber.StatusBadRequest, "cuerpo inválido")
	}
	if err := h.uc.ResetPassword(c.UserContext(), c.Params("id"), in); err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, "contraseña restablecida", nil)
}
