package cliente

import (
	"sync"

	"github.com/tu-usuario/lavadero-pro/pkg/dto"
)

// IdentityContext estado compartido del actor resuelto. Escritor único: solo
// el resolver, Login y Logout escriben; el resto (RoleGate, paneles) solo lee.
// Cada escritura reemplaza el snapshot completo del actor, nunca se parchea.
//
// La generación descarta escrituras viejas: una resolución en vuelo cuando se
// invoca Logout puede terminar después y no debe pisar el estado limpio.
type IdentityContext struct {
	mu       sync.RWMutex
	actor    *dto.UsuarioResponse
	cargando bool
	gen      uint64
}

// NewIdentityContext arranca vacío y sin carga en curso.
func NewIdentityContext() *IdentityContext {
	return &IdentityContext{}
}

// Actor devuelve el snapshot actual, o nil si no hay actor resuelto.
func (c *IdentityContext) Actor() *dto.UsuarioResponse {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.actor
}

// Cargando informa si hay una resolución en curso.
func (c *IdentityContext) Cargando() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cargando
}

// comenzarCarga marca el inicio de una resolución y devuelve la generación
// vigente; la escritura final solo vale si la generación no cambió.
func (c *IdentityContext) comenzarCarga() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cargando = true
	return c.gen
}

// terminar escribe el resultado de la resolución. Si la generación avanzó en
// el medio (hubo un Logout o un Login) la escritura se descarta; devuelve si
// la escritura fue aplicada.
func (c *IdentityContext) terminar(gen uint64, actor *dto.UsuarioResponse) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return false
	}
	c.actor = actor
	c.cargando = false
	return true
}

// adoptar escribe un actor de forma incondicional (login exitoso) y avanza la
// generación para invalidar resoluciones en vuelo.
func (c *IdentityContext) adoptar(actor *dto.UsuarioResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.actor = actor
	c.cargando = false
}

// limpiar borra el actor y avanza la generación (logout).
func (c *IdentityContext) limpiar() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.actor = nil
	c.cargando = false
}
