package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/lavadero-pro/internal/application/auth"
	"github.com/tu-usuario/lavadero-pro/internal/application/comprobantes"
	"github.com/tu-usuario/lavadero-pro/internal/application/dashboard"
	"github.com/tu-usuario/lavadero-pro/internal/application/lavaderos"
	"github.com/tu-usuario/lavadero-pro/internal/application/usuarios"
	"github.com/tu-usuario/lavadero-pro/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	LavaderoUC    *lavaderos.LavaderoUseCase
	ComprobanteUC *comprobantes.ComprobanteUseCase
	DashboardUC   *dashboard.DashboardUseCase
	UsuarioUC     *usuarios.UsuarioUseCase
	CookieNombre  string
	CookieSegura  bool
	CookieTTL     time.Duration
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	requireAuth := AuthMiddleware(deps.CookieNombre, deps.AuthUC)

	// Auth: los primeros cinco son públicos, /me y /logout trabajan con lo que haya.
	authHandler := NewAuthHandler(deps.AuthUC, deps.CookieNombre, deps.CookieSegura, deps.CookieTTL)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/register-admin", authHandler.RegisterAdmin)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/session-data", authHandler.SessionData)
	authGroup.Post("/set-session-cookie", authHandler.SetSessionCookie)
	authGroup.Get("/check-session", authHandler.CheckSession)
	authGroup.Get("/me", requireAuth, authHandler.Me)
	authGroup.Post("/logout", authHandler.Logout)

	// Lavaderos: el directorio es público, el resto es del ADMIN dueño.
	lavHandler := NewLavaderoHandler(deps.LavaderoUC)
	lavGroup := api.Group("/lavaderos")
	lavGroup.Get("/operativos", lavHandler.Operativos)
	lavGroup.Get("/mi", requireAuth, RequireRol(entity.RolAdmin), lavHandler.MiLavadero)
	lavGroup.Get("/mi/pago-pendiente", requireAuth, RequireRol(entity.RolAdmin), lavHandler.PagoPendiente)

	// Comprobantes: envío y consulta para ADMIN, revisión solo SUPER_ADMIN.
	compHandler := NewComprobanteHandler(deps.ComprobanteUC)
	compGroup := api.Group("/comprobantes", requireAuth)
	compGroup.Post("/", RequireRol(entity.RolAdmin), compHandler.Enviar)
	compGroup.Get("/mios", RequireRol(entity.RolAdmin), compHandler.MisComprobantes)
	compGroup.Get("/pendientes", RequireRol(entity.RolSuperAdmin), compHandler.Pendientes)
	compGroup.Post("/:id/aprobar", RequireRol(entity.RolSuperAdmin), compHandler.Aprobar)
	compGroup.Post("/:id/rechazar", RequireRol(entity.RolSuperAdmin), compHandler.Rechazar)

	// Dashboard: cualquier actor autenticado, la respuesta depende del rol.
	dashHandler := NewDashboardHandler(deps.DashboardUC)
	api.Get("/dashboard/stats", requireAuth, dashHandler.Stats)

	// Administración de plataforma.
	adminHandler := NewAdminHandler(deps.UsuarioUC)
	adminGroup := api.Group("/admin", requireAuth, RequireRol(entity.RolSuperAdmin))
	adminGroup.Get("/usuarios", adminHandler.ListUsuarios)
	adminGroup.Post("/usuarios/:id/toggle-activo", adminHandler.ToggleActivo)
	adminGroup.Delete("/usuarios/:id", adminHandler.EliminarUsuario)
}
