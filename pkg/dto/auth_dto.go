package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// UsuarioResponse proyección de solo lectura de un usuario (sin hash).
// El cliente reemplaza su copia completa en cada resolución; nunca la parchea.
type UsuarioResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Nombre    string    `json:"nombre"`
	Rol       string    `json:"rol"`
	GoogleID  string    `json:"google_id,omitempty"`
	Picture   string    `json:"picture,omitempty"`
	Activo    bool      `json:"activo"`
	CreatedAt time.Time `json:"created_at"`
}

// RegisterRequest registro de cuenta final (CLIENTE; EMPLEADO se acepta como alias legado).
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Nombre   string `json:"nombre" validate:"required,max=200"`
	Rol      string `json:"rol" validate:"omitempty,oneof=CLIENTE EMPLEADO"`
}

// LavaderoAltaRequest datos del tenant en el registro de admin.
type LavaderoAltaRequest struct {
	Nombre      string `json:"nombre" validate:"required,max=200"`
	Direccion   string `json:"direccion" validate:"required,max=300"`
	Descripcion string `json:"descripcion" validate:"omitempty,max=500"`
}

// RegisterAdminRequest alta conjunta de Admin + Lavadero.
type RegisterAdminRequest struct {
	Email    string              `json:"email" validate:"required,email"`
	Password string              `json:"password" validate:"required,min=8"`
	Nombre   string              `json:"nombre" validate:"required,max=200"`
	Lavadero LavaderoAltaRequest `json:"lavadero" validate:"required"`
}

// RegisterAdminResponse instrucciones de pago devueltas tras el alta.
type RegisterAdminResponse struct {
	Message       string          `json:"message"`
	AliasBancario string          `json:"alias_bancario"`
	Monto         decimal.Decimal `json:"monto"`
	Estado        string          `json:"estado"`
}

// LoginRequest credenciales locales.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token bearer + proyección del usuario.
type LoginResponse struct {
	Token string          `json:"token"`
	User  UsuarioResponse `json:"user"`
}

// CheckSessionResponse resultado de la verificación de cookie de sesión.
// Siempre 200: "sin sesión" no es un error, es authenticated=false.
type CheckSessionResponse struct {
	Authenticated bool             `json:"authenticated"`
	User          *UsuarioResponse `json:"user,omitempty"`
}

// SessionDataResponse token de sesión acuñado al canjear el id de un solo uso del puente OAuth.
type SessionDataResponse struct {
	SessionToken string `json:"session_token"`
}

// SetSessionCookieRequest cuerpo de set-session-cookie.
type SetSessionCookieRequest struct {
	SessionToken string `json:"session_token" validate:"required"`
}
