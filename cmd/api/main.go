package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/despacho/expedientes-api/docs"
	"github.com/despacho/expedientes-api/internal/application/auth"
	"github.com/despacho/expedientes-api/internal/application/usecase"
	infrapdf "github.com/despacho/expedientes-api/internal/infrastructure/pdf"
	"github.com/despacho/expedientes-api/internal/infrastructure/postgres"
	"github.com/despacho/expedientes-api/internal/infrastructure/storage"
	httpRouter "github.com/despacho/expedientes-api/internal/interfaces/http"
	"github.com/despacho/expedientes-api/pkg/config"
	"github.com/despacho/expedientes-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:      cfg.App.Env,
		Level:    "info",
		Servicio: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	files, err := storage.NewLocalStore(cfg.Uploads.Dir)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento de archivos")
	}

	userRepo := postgres.NewUsuarioRepository(pool)
	expSimpleRepo := postgres.NewExpedienteSimpleRepository(pool)
	decretoRepo := postgres.NewDecretoRepository(pool)
	clienteRepo := postgres.NewClienteRepository(pool)
	expedienteRepo := postgres.NewExpedienteRepository(pool)
	documentoRepo := postgres.NewDocumentoRepository(pool)
	pagoRepo := postgres.NewPagoRepository(pool)

	comprobantes := infrapdf.NewMarotoComprobanteGenerator()
	reloj := time.Now

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:          cfg.JWT.Secret,
		ExpMinutes:      cfg.JWT.ExpMinutes,
		RefreshExpHours: cfg.JWT.RefreshExpHours,
		Issuer:          cfg.JWT.Issuer,
	})
	userUC := usecase.NewUserUseCase(userRepo, expSimpleRepo, reloj)
	expSimpleUC := usecase.NewExpedienteSimpleUseCase(expSimpleRepo, comprobantes, files, reloj, log)
	decretoUC := usecase.NewDecretoUseCase(decretoRepo, expSimpleRepo, files, reloj, log)
	clienteUC := usecase.NewClienteUseCase(clienteRepo, expedienteRepo, reloj)
	expedienteUC := usecase.NewExpedienteUseCase(expedienteRepo, clienteRepo, userRepo, reloj, log)
	documentoUC := usecase.NewDocumentoUseCase(documentoRepo, expedienteRepo, files, reloj, log)
	pagoUC := usecase.NewPagoUseCase(pagoRepo, expedienteRepo, comprobantes, files, reloj, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    int(cfg.Uploads.MaxFileSizeBytes()) + 1024*1024,
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.FrontendURL,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))
	app.Use(limiter.New(limiter.Config{
		Max:        300,
		Expiration: time.Minute,
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Expedientes API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:           authUC,
		UserUC:           userUC,
		ExpedienteSimple: expSimpleUC,
		DecretoUC:        decretoUC,
		ClienteUC:        clienteUC,
		ExpedienteUC:     expedienteUC,
		DocumentoUC:      documentoUC,
		PagoUC:           pagoUC,
		JWTSecret:        cfg.JWT.Secret,
		MaxUploadBytes:   cfg.Uploads.MaxFileSizeBytes(),
		Log:              log.Componente("http"),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
