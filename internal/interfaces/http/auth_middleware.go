package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/despacho/expedientes-api/internal/domain/entity"
	"github.com/despacho/expedientes-api/internal/domain/scope"
	"github.com/despacho/expedientes-api/pkg/jwt"
)

// Locals keys para el usuario autenticado en Fiber.
const (
	LocalUserID = "user_id"
	LocalEmail  = "email"
	LocalRol    = "rol"
)

// AuthMiddleware valida el Bearer Token JWT y carga UserID, Email y Rol en
// c.Locals. Solo acepta tokens de acceso: un refresh token no abre rutas.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return respondFail(c, fiber.StatusUnauthorized, "Authorization header requerido")
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return respondFail(c, fiber.StatusUnauthorized, "formato: Bearer <token>")
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return respondFail(c, fiber.StatusUnauthorized, "token vacío")
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return respondFail(c, fiber.StatusUnauthorized, "token inválido o expirado")
		}
		if claims.TokenType != jwt.TypeAccess {
			return respondFail(c, fiber.StatusUnauthorized, "se requiere un token de acceso")
		}
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalEmail, claims.Email)
		c.Locals(LocalRol, claims.Rol)
		return c.Next()
	}
}

// RequireAdmin autoriza solo al rol admin. A diferencia de los recursos con
// dueño, aquí sí se responde 403: la ruta completa está vedada por rol.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetRol(c) != entity.RolAdmin {
			return respondFail(c, fiber.StatusForbidden, "se requiere rol de administrador")
		}
		return c.Next()
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	v := c.Locals(LocalUserID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetRol devuelve el rol del contexto (después del middleware de auth).
func GetRol(c *fiber.Ctx) string {
	v := c.Locals(LocalRol)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetScope arma el alcance del principal autenticado para los casos de uso.
func GetScope(c *fiber.Ctx) scope.Scope {
	return scope.Scope{UserID: GetUserID(c), Rol: GetRol(c)}
}
