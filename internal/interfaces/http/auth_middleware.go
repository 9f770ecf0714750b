package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/lavadero-pro/internal/domain/entity"
	"github.com/tu-usuario/lavadero-pro/pkg/dto"
)

// Locals keys para el actor autenticado en Fiber.
const (
	LocalUsuario = "usuario"
	LocalUserID  = "user_id"
	LocalRol     = "rol"
)

// sesionValidator es el contrato mínimo que necesita el middleware; lo
// implementa *auth.AuthUseCase (la interfaz evita el import circular).
type sesionValidator interface {
	ValidarSesion(ctx context.Context, token string) (*entity.Usuario, error)
	ValidarBearer(token string) (*entity.Usuario, error)
}

// AuthMiddleware resuelve el actor con ambos transportes de credencial, en
// orden: cookie de sesión primero, bearer JWT después. Los dos se intentan
// siempre; el camino de fallback del cliente depende de que nunca se asuman
// mutuamente excluyentes. El snapshot del usuario queda en c.Locals.
func AuthMiddleware(cookieNombre string, va sesionValidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if tok := c.Cookies(cookieNombre); tok != "" {
			if u, err := va.ValidarSesion(c.Context(), tok); err == nil {
				return adoptarActor(c, u)
			}
			// Cookie rechazada: se sigue con bearer, no se corta acá.
		}

		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "sesión o Authorization header requeridos"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		u, err := va.ValidarBearer(tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		return adoptarActor(c, u)
	}
}

func adoptarActor(c *fiber.Ctx, u *entity.Usuario) error {
	c.Locals(LocalUsuario, u)
	c.Locals(LocalUserID, u.ID)
	c.Locals(LocalRol, u.Rol)
	return c.Next()
}

// RequireRol autoriza por igualdad exacta de rol (tras normalizar el alias
// legado EMPLEADO→CLIENTE). Sin jerarquía: SUPER_ADMIN no satisface una ruta
// de ADMIN. Debe usarse DESPUÉS de AuthMiddleware.
func RequireRol(roles ...entity.Rol) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rol := GetRol(c)
		if rol == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "actor sin rol"})
		}
		efectivo := rol.Normalizar()
		for _, permitido := range roles {
			if efectivo == permitido.Normalizar() {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "no tenés permisos para esta operación"})
	}
}

// GetUsuario devuelve el snapshot del actor (después del middleware de auth).
func GetUsuario(c *fiber.Ctx) *entity.Usuario {
	u, _ := c.Locals(LocalUsuario).(*entity.Usuario)
	return u
}

// GetUserID devuelve el ID del actor del contexto.
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetRol devuelve el rol del actor del contexto.
func GetRol(c *fiber.Ctx) entity.Rol {
	r, _ := c.Locals(LocalRol).(entity.Rol)
	return r
}
