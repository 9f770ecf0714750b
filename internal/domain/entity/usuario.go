package entity

import (
	"time"

	"github.com/tu-usuario/lavadero-pro/pkg/dto"
)

// Rol vive junto al contrato de wire (pkg/dto) para que el SDK y el servidor
// comparen contra el mismo conjunto cerrado; acá se reexporta como vocabulario
// del dominio.
type Rol = dto.Rol

const (
	RolSuperAdmin = dto.RolSuperAdmin
	RolAdmin      = dto.RolAdmin
	RolCliente    = dto.RolCliente
	RolEmpleado   = dto.RolEmpleado
)

// Usuario representa un actor del sistema. El cliente solo recibe proyecciones
// de solo lectura; las mutaciones ocurren del lado del servidor.
type Usuario struct {
	ID           string
	Email        string
	Nombre       string
	Rol          Rol
	PasswordHash string // bcrypt; vacío para cuentas creadas vía puente OAuth
	GoogleID     string // marcador de identidad externa; vacío si es cuenta local
	Picture      string
	Activo       bool
	CreatedAt    time.Time
}
