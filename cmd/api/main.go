package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/tu-usuario/lavadero-pro/internal/application/auth"
	"github.com/tu-usuario/lavadero-pro/internal/application/comprobantes"
	"github.com/tu-usuario/lavadero-pro/internal/application/dashboard"
	"github.com/tu-usuario/lavadero-pro/internal/application/lavaderos"
	"github.com/tu-usuario/lavadero-pro/internal/application/usuarios"
	"github.com/tu-usuario/lavadero-pro/internal/infrastructure/postgres"
	"github.com/tu-usuario/lavadero-pro/internal/infrastructure/puente"
	"github.com/tu-usuario/lavadero-pro/internal/infrastructure/sesiones"
	httpRouter "github.com/tu-usuario/lavadero-pro/internal/interfaces/http"
	"github.com/tu-usuario/lavadero-pro/pkg/config"
	"github.com/tu-usuario/lavadero-pro/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
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

	usuarioRepo := postgres.NewUsuarioRepository(pool)
	lavaderoRepo := postgres.NewLavaderoRepository(pool)
	comprobanteRepo := postgres.NewComprobanteRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	sesionStore, err := sesiones.New(cfg.Sesion)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Sesion.Driver).Msg("store de sesiones")
	}
	puenteCliente := puente.New(cfg.Puente)

	sesionTTL := time.Duration(cfg.Sesion.TTLMinutos) * time.Minute
	authUC := auth.NewAuthUseCase(usuarioRepo, lavaderoRepo, sesionStore, puenteCliente, txRunner,
		auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		},
		auth.SuscripcionConfig{
			AliasBancario: cfg.Suscripcion.AliasBancario,
			Monto:         cfg.Suscripcion.Monto,
			Dias:          cfg.Suscripcion.Dias,
		},
		sesionTTL,
	)
	lavaderoUC := lavaderos.NewLavaderoUseCase(lavaderoRepo, comprobanteRepo)
	comprobanteUC := comprobantes.NewComprobanteUseCase(comprobanteRepo, lavaderoRepo, txRunner, cfg.Suscripcion.Dias)
	dashboardUC := dashboard.NewDashboardUseCase(usuarioRepo, lavaderoRepo, comprobanteRepo)
	usuarioUC := usuarios.NewUsuarioUseCase(usuarioRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Lavadero Pro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		LavaderoUC:    lavaderoUC,
		ComprobanteUC: comprobanteUC,
		DashboardUC:   dashboardUC,
		UsuarioUC:     usuarioUC,
		CookieNombre:  cfg.Sesion.CookieNombre,
		CookieSegura:  cfg.Sesion.CookieSegura,
		CookieTTL:     sesionTTL,
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
