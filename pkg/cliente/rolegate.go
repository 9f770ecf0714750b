package cliente

import (
	"github.com/tu-usuario/lavadero-pro/pkg/dto"
)

// Decision resultado de un chequeo de acceso.
type Decision int

const (
	// Esperar la resolución sigue en curso; no decidir todavía.
	Esperar Decision = iota
	// Permitir el actor satisface el requisito.
	Permitir
	// RedirigirLogin no hay actor resuelto.
	RedirigirLogin
	// DenegarConAviso hay actor pero su rol no es el requerido.
	DenegarConAviso
)

// String para logs y mensajes.
func (d Decision) String() string {
	switch d {
	case Esperar:
		return "ESPERAR"
	case Permitir:
		return "PERMITIR"
	case RedirigirLogin:
		return "REDIRIGIR_LOGIN"
	case DenegarConAviso:
		return "DENEGAR_CON_AVISO"
	}
	return "DESCONOCIDA"
}

// RoleGate decide el acceso a una vista a partir del IdentityContext. Es el
// único lugar donde se comparan roles: las vistas consumen la Decision, no
// comparan strings por su cuenta.
type RoleGate struct {
	identidad *IdentityContext
}

// NewRoleGate construye el gate sobre el contexto de identidad dado.
func NewRoleGate(identidad *IdentityContext) *RoleGate {
	return &RoleGate{identidad: identidad}
}

// Revisar evalúa el acceso. Rol vacío significa "cualquier actor autenticado".
// La comparación es por igualdad exacta tras normalizar el alias legado:
// no hay jerarquía, SUPER_ADMIN no satisface un requisito de ADMIN.
func (g *RoleGate) Revisar(requerido dto.Rol) Decision {
	if g.identidad.Cargando() {
		return Esperar
	}
	actor := g.identidad.Actor()
	if actor == nil {
		return RedirigirLogin
	}
	if requerido == "" {
		return Permitir
	}
	if dto.Rol(actor.Rol).Normalizar() == requerido.Normalizar() {
		return Permitir
	}
	return DenegarConAviso
}
