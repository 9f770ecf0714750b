package cliente

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/lavadero-pro/pkg/dto"
)

func contextoConActor(rol string) *IdentityContext {
	c := NewIdentityContext()
	c.adoptar(&dto.UsuarioResponse{ID: "u-1", Email: "actor@test.com", Rol: rol, Activo: true})
	return c
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// La comparación es por igualdad exacta: ningún rol implica a otro.
func TestRoleGate_Matriz(t *testing.T) {
	casos := []struct {
		nombre    string
		identidad *IdentityContext
		requerido dto.Rol
		quiere    Decision
	}{
		{"sin actor redirige a login", NewIdentityContext(), dto.RolAdmin, RedirigirLogin},
		{"sin actor y sin requisito tambien redirige", NewIdentityContext(), "", RedirigirLogin},
		{"admin entra a vista de admin", contextoConActor("ADMIN"), dto.RolAdmin, Permitir},
		{"admin no entra a vista de super admin", contextoConActor("ADMIN"), dto.RolSuperAdmin, DenegarConAviso},
		{"super admin no entra a vista de admin", contextoConActor("SUPER_ADMIN"), dto.RolAdmin, DenegarConAviso},
		{"cliente no entra a vista de admin", contextoConActor("CLIENTE"), dto.RolAdmin, DenegarConAviso},
		{"requisito vacio admite a cualquier autenticado", contextoConActor("CLIENTE"), "", Permitir},
		{"el alias legado equivale a cliente", contextoConActor("EMPLEADO"), dto.RolCliente, Permitir},
	}

	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			got := NewRoleGate(c.identidad).Revisar(c.requerido)
			assert.Equal(t, c.quiere, got)
		})
	}
}

// Mientras la resolución está en curso el gate no decide: ni permite ni
// redirige, solo pide esperar.
func TestRoleGate_EsperaDuranteCarga(t *testing.T) {
	identidad := NewIdentityContext()
	identidad.comenzarCarga()

	assert.Equal(t, Esperar, NewRoleGate(identidad).Revisar(dto.RolAdmin))
}

func TestDecision_String(t *testing.T) {
	assert.Equal(t, "ESPERAR", Esperar.String())
	assert.Equal(t, "PERMITIR", Permitir.String())
	assert.Equal(t, "REDIRIGIR_LOGIN", RedirigirLogin.String())
	assert.Equal(t, "DENEGAR_CON_AVISO", DenegarConAviso.String())
}
