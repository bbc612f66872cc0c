package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/despacho/expedientes-api/internal/application/auth"
	"github.com/despacho/expedientes-api/internal/application/usecase"
	"github.com/despacho/expedientes-api/internal/domain"
	"github.com/despacho/expedientes-api/pkg/logger"
)

// validarID corta con 404 los ids de ruta que no son UUID: un id malformado
// no identifica ningún registro y no debe llegar a la base como error de cast.
func validarID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := uuid.Parse(c.Params("id")); err != nil {
			return respondError(c, domain.ErrNotFound)
		}
		return c.Next()
	}
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC            *auth.AuthUseCase
	UserUC            *usecase.UserUseCase
	ExpedienteSimple  *usecase.ExpedienteSimpleUseCase
	DecretoUC         *usecase.DecretoUseCase
	ClienteUC         *usecase.ClienteUseCase
	ExpedienteUC      *usecase.ExpedienteUseCase
	DocumentoUC       *usecase.DocumentoUseCase
	PagoUC            *usecase.PagoUseCase
	JWTSecret         string
	MaxUploadBytes    int64
	Log               *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", conLogger(deps.Log))

	// Auth (registro, login y refresh públicos; perfil protegido)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/refresh", authHandler.Refresh)

	authProtected := authGroup.Group("/", AuthMiddleware(deps.JWTSecret))
	authProtected.Get("/profile", authHandler.Profile)
	authProtected.Put("/profile", authHandler.UpdateProfile)
	authProtected.Put("/change-password", authHandler.ChangePassword)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Usuarios (solo admin: el grupo completo responde 403 a otros roles)
	users := protected.Group("/users", RequireAdmin())
	userHandler := NewUsuarioHandler(deps.UserUC)
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)
	users.Get("/stats", userHandler.Stats)
	users.Get("/:id", validarID(), userHandler.GetByID)
	users.Put("/:id", validarID(), userHandler.Update)
	users.Delete("/:id", validarID(), userHandler.Delete)
	users.Put("/:id/reset-password", validarID(), userHandler.ResetPassword)

	// Mesa de entradas: expedientes simples y actuaciones comparten handler,
	// cada montaje con su tipo y por tanto su serie de numeración.
	registrarMesaEntradas(protected.Group("/expedientes-simple"),
		NewExpedienteSimpleHandler(deps.ExpedienteSimple, deps.MaxUploadBytes, true))
	registrarMesaEntradas(protected.Group("/actuaciones"),
		NewExpedienteSimpleHandler(deps.ExpedienteSimple, deps.MaxUploadBytes, false))

	// Decretos y resoluciones
	decretos := protected.Group("/decretos")
	decretoHandler := NewDecretoHandler(deps.DecretoUC, deps.MaxUploadBytes)
	decretos.Post("/", decretoHandler.Create)
	decretos.Get("/", decretoHandler.List)
	decretos.Get("/expedientes-for-link", decretoHandler.ExpedientesForLink)
	decretos.Get("/:id", validarID(), decretoHandler.GetByID)
	decretos.Put("/:id", validarID(), decretoHandler.Update)
	decretos.Delete("/:id", validarID(), decretoHandler.Delete)
	decretos.Get("/:id/download-file", validarID(), decretoHandler.Download)
	decretos.Get("/:id/expedientes", validarID(), decretoHandler.ExpedienteVinculado)
	decretos.Get("/:id/download-expediente-file", validarID(), decretoHandler.DownloadExpediente)

	// Clientes (la baja es solo admin)
	clientes := protected.Group("/clientes")
	clienteHandler := NewClienteHandler(deps.ClienteUC)
	clientes.Post("/", clienteHandler.Create)
	clientes.Get("/", clienteHandler.List)
	clientes.Get("/:id", validarID(), clienteHandler.GetByID)
	clientes.Put("/:id", validarID(), clienteHandler.Update)
	clientes.Delete("/:id", RequireAdmin(), validarID(), clienteHandler.Delete)

	// Expedientes jurídicos (DELETE archiva, solo admin)
	expedientes := protected.Group("/expedientes")
	expedienteHandler := NewExpedienteHandler(deps.ExpedienteUC)
	expedientes.Post("/", expedienteHandler.Create)
	expedientes.Get("/", expedienteHandler.List)
	expedientes.Get("/:id", validarID(), expedienteHandler.GetByID)
	expedientes.Put("/:id", validarID(), expedienteHandler.Update)
	expedientes.Delete("/:id", RequireAdmin(), validarID(), expedienteHandler.Archive)

	// Documentos adjuntos (anidados en el expediente para alta y listado)
	documentoHandler := NewDocumentoHandler(deps.DocumentoUC, deps.MaxUploadBytes)
	expedientes.Post("/:id/documentos", validarID(), documentoHandler.Create)
	expedientes.Get("/:id/documentos", validarID(), documentoHandler.ListByExpediente)

	documentos := protected.Group("/documentos")
	documentos.Get("/:id", validarID(), documentoHandler.GetByID)
	documentos.Get("/:id/download", validarID(), documentoHandler.Download)
	documentos.Delete("/:id", validarID(), documentoHandler.Delete)

	// Pagos y recibos
	pagoHandler := NewPagoHandler(deps.PagoUC)
	expedientes.Get("/:id/pagos", validarID(), pagoHandler.ListByExpediente)
	pagos := protected.Group("/pagos")
	pagos.Post("/", pagoHandler.Create)
	pagos.Get("/:id/recibo", validarID(), pagoHandler.DownloadRecibo)
}

func registrarMesaEntradas(g fiber.Router, h *ExpedienteSimpleHandler) {
	g.Post("/", h.Create)
	g.Get("/", h.List)
	g.Get("/:id", validarID(), h.GetByID)
	g.Put("/:id", validarID(), h.Update)
	g.Delete("/:id", validarID(), h.Delete)
	g.Get("/:id/download-file", validarID(), h.Download)
	g.Get("/:id/download-comprobante", validarID(), h.DownloadComprobante)
}
