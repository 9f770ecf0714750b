package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/lavadero-pro/internal/application/auth"
	"github.com/tu-usuario/lavadero-pro/internal/domain"
	"github.com/tu-usuario/lavadero-pro/pkg/dto"
)

// AuthHandler maneja registro, login, el puente OAuth y el ciclo de sesión.
type AuthHandler struct {
	uc           *auth.AuthUseCase
	cookieNombre string
	cookieSegura bool
	cookieTTL    time.Duration
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, cookieNombre string, cookieSegura bool, cookieTTL time.Duration) *AuthHandler {
	return &AuthHandler{uc: uc, cookieNombre: cookieNombre, cookieSegura: cookieSegura, cookieTTL: cookieTTL}
}

// Register godoc
// @Summary      Registrar cliente
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "email, password, nombre"
// @Success      201   {object}  dto.UsuarioResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Email == "" || in.Password == "" || in.Nombre == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email, password y nombre son requeridos"})
	}
	if len(in.Password) < 8 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "password debe tener al menos 8 caracteres"})
	}
	user, err := h.uc.RegistrarCliente(in)
	if err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "EMAIL_EXISTS", Message: "el email ya está registrado"})
		}
		if errors.Is(err, domain.ErrEntradaInvalida) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// RegisterAdmin godoc
// @Summary      Registrar administrador con su lavadero
// @Description  Crea el usuario ADMIN y su lavadero en PENDIENTE_APROBACION; devuelve las instrucciones de pago.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterAdminRequest  true  "datos del admin y del lavadero"
// @Success      201   {object}  dto.RegisterAdminResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/register-admin [post]
func (h *AuthHandler) RegisterAdmin(c *fiber.Ctx) error {
	var in dto.RegisterAdminRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Email == "" || in.Password == "" || in.Nombre == "" || in.Lavadero.Nombre == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email, password, nombre y lavadero.nombre son requeridos"})
	}
	if len(in.Password) < 8 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "password debe tener al menos 8 caracteres"})
	}
	out, err := h.uc.RegistrarAdmin(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "EMAIL_EXISTS", Message: "el email ya está registrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Login godoc
// @Summary      Iniciar sesión con email y password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Email == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email y password son requeridos"})
	}
	out, err := h.uc.Login(in)
	if err != nil {
		if errors.Is(err, domain.ErrUsuarioNotFound) || errors.Is(err, domain.ErrNoAutorizado) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
		}
		if errors.Is(err, domain.ErrCuentaInactiva) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "ACCOUNT_DISABLED", Message: "la cuenta está deshabilitada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// SessionData godoc
// @Summary      Canjear el session_id del puente OAuth
// @Description  Recibe el session_id efímero en X-Session-ID, lo canjea contra el puente y devuelve un session_token propio.
// @Tags         auth
// @Produce      json
// @Param        X-Session-ID  header  string  true  "session id del fragmento del redirect"
// @Success      200  {object}  dto.SessionDataResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/auth/session-data [get]
func (h *AuthHandler) SessionData(c *fiber.Ctx) error {
	sessionID := c.Get("X-Session-ID")
	if sessionID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_SESSION_ID", Message: "X-Session-ID requerido"})
	}
	out, err := h.uc.CanjearSesionPuente(c.Context(), sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrNoAutorizado) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "BRIDGE_REJECTED", Message: "el puente rechazó el session id"})
		}
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "BRIDGE_UNAVAILABLE", Message: "no se pudo canjear la sesión"})
	}
	return c.JSON(out)
}

// SetSessionCookie godoc
// @Summary      Fijar la cookie de sesión
// @Description  Valida el session_token recibido y lo fija como cookie HttpOnly.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SetSessionCookieRequest  true  "session_token"
// @Success      200   {object}  dto.MensajeResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/set-session-cookie [post]
func (h *AuthHandler) SetSessionCookie(c *fiber.Ctx) error {
	var in dto.SetSessionCookieRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.SessionToken == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "session_token es requerido"})
	}
	if _, err := h.uc.ValidarSesion(c.Context(), in.SessionToken); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_SESSION", Message: "la sesión no existe o expiró"})
	}
	c.Cookie(&fiber.Cookie{
		Name:     h.cookieNombre,
		Value:    in.SessionToken,
		Expires:  time.Now().Add(h.cookieTTL),
		HTTPOnly: true,
		Secure:   h.cookieSegura,
		SameSite: fiber.CookieSameSiteNoneMode,
		Path:     "/",
	})
	return c.JSON(dto.MensajeResponse{Message: "cookie de sesión establecida"})
}

// CheckSession godoc
// @Summary      Verificar la sesión de la cookie
// @Description  Nunca responde error: authenticated=false cubre cookie ausente, inválida o expirada.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.CheckSessionResponse
// @Router       /api/auth/check-session [get]
func (h *AuthHandler) CheckSession(c *fiber.Ctx) error {
	tok := c.Cookies(h.cookieNombre)
	if tok == "" {
		return c.JSON(dto.CheckSessionResponse{Authenticated: false})
	}
	u, err := h.uc.ValidarSesion(c.Context(), tok)
	if err != nil {
		return c.JSON(dto.CheckSessionResponse{Authenticated: false})
	}
	resp := auth.ToUsuarioResponse(u)
	return c.JSON(dto.CheckSessionResponse{Authenticated: true, User: resp})
}

// Me godoc
// @Summary      Actor autenticado actual
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.UsuarioResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	u := GetUsuario(c)
	if u == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "no autenticado"})
	}
	return c.JSON(auth.ToUsuarioResponse(u))
}

// Logout godoc
// @Summary      Cerrar sesión
// @Description  Borra la sesión del store si hay cookie y la expira en el navegador. Idempotente.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.MensajeResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if tok := c.Cookies(h.cookieNombre); tok != "" {
		// Best effort: un store caído no impide expirar la cookie.
		_ = h.uc.Logout(c.Context(), tok)
	}
	c.Cookie(&fiber.Cookie{
		Name:     h.cookieNombre,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   h.cookieSegura,
		SameSite: fiber.CookieSameSiteNoneMode,
		Path:     "/",
	})
	return c.JSON(dto.MensajeResponse{Message: "sesión cerrada"})
}
