package dto

// Rol de usuario. Conjunto cerrado compartido por el servidor y el SDK: las
// comparaciones de autorización pasan siempre por Normalizar, nunca por
// strings sueltos en las vistas.
type Rol string

const (
	RolSuperAdmin Rol = "SUPER_ADMIN"
	RolAdmin      Rol = "ADMIN"
	RolCliente    Rol = "CLIENTE"
	// RolEmpleado existe en datos históricos; para autorización equivale a CLIENTE.
	RolEmpleado Rol = "EMPLEADO"
)

// Normalizar colapsa los alias legados al rol canónico.
func (r Rol) Normalizar() Rol {
	if r == RolEmpleado {
		return RolCliente
	}
	return r
}

// EsValido indica si el rol pertenece al conjunto aceptado (incluye el alias legado).
func (r Rol) EsValido() bool {
	switch r {
	case RolSuperAdmin, RolAdmin, RolCliente, RolEmpleado:
		return true
	}
	return false
}
