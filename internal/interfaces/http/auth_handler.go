package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/despacho/expedientes-api/internal/application/auth"
	"github.com/despacho/expedientes-api/internal/application/dto"
)

// AuthHandler maneja registro, login, refresh y perfil propio.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Register godoc
// @Summary      Registrar usuario
// @Description  El registro público crea siempre una cuenta con rol administrativo.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "nombre, apellido, email, password"
// @Success      201   {object}  dto.Response
// @Failure      400   {object}  dto.Response
// @Failure      409   {object}  dto.Response
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return respondFail(c, fiber.StatusBadRequest, "cuerpo inválido")
	}
	out, err := h.uc.Register(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusCreated, "usuario registrado", out)
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.Response
// @Failure      401   {object}  dto.Response
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return respondFail(c, fiber.StatusBadRequest, "cuerpo inválido")
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, "sesión iniciada", out)
}

// Refresh godoc
// @Summary      Renovar tokens
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RefreshRequest  true  "refreshToken"
// @Success      200   {object}  dto.Response
// @Failure      401   {object}  dto.Response
// @Router       /api/auth/refresh [post]
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var in dto.RefreshRequest
	if err := c.BodyParser(&in); err != nil {
		return respondFail(c, fiber.StatusBadRequest, "cuerpo inválido")
	}
	if in.RefreshToken == "" {
		return respondFail(c, fiber.StatusBadRequest, "refreshToken es requerido")
	}
	out, err := h.uc.Refresh(c.UserContext(), in.RefreshToken)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, "tokens renovados", out)
}

// Profile godoc
// @Summary      Perfil del usuario autenticado
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Response
// @Failure      401  {object}  dto.Response
// @Router       /api/auth/profile [get]
func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	out, err := h.uc.Profile(c.UserContext(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, "", out)
}

// UpdateProfile godoc
// @Summary      Actualizar perfil propio
// @Tags         auth
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateProfileRequest  true  "campos a actualizar"
// @Success      200   {object}  dto.Response
// @Failure      400   {object}  dto.Response
// @Router       /api/auth/profile [put]
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	var in dto.UpdateProfileRequest
	if err := c.BodyParser(&in); err != nil {
		return respondFail(c, fiber.StatusBadRequest, "cuerpo inválido")
	}
	out, err := h.uc.UpdateProfile(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, "perfil actualizado", out)
}

// ChangePassword godoc
// @Summary      Cambiar la contraseña propia
// @Description  Exige la contraseña actual.
// @Tags         auth
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ChangePasswordRequest  true  "currentPassword, newPassword"
// @Success      200   {object}  dto.Response
// @Failure      401   {object}  dto.Response
// @Router       /api/auth/change-password [put]
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var in dto.ChangePasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return respondFail(c, fiber.StatusBadRequest, "cuerpo inválido")
	}
	if err := h.uc.ChangePassword(c.UserContext(), GetUserID(c), in); err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, "contraseña actualizada", nil)
}
