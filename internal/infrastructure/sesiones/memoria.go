package sesiones

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/tu-usuario/lavadero-pro/internal/domain/entity"
)

// MemoriaStore almacén in-process sobre go-cache, con expiración propia del
// backend además de la marca ExpiraEn de la sesión. Para desarrollo y tests.
type MemoriaStore struct {
	c   *gocache.Cache
	ttl time.Duration
}

// NewMemoria crea el almacén en memoria.
func NewMemoria(ttl time.Duration) *MemoriaStore {
	return &MemoriaStore{
		c:   gocache.New(ttl, 10*time.Minute),
		ttl: ttl,
	}
}

// Guardar persiste la sesión hasta su ExpiraEn.
func (s *MemoriaStore) Guardar(_ context.Context, ses *entity.Sesion) error {
	copia := *ses
	s.c.Set(ses.Token, &copia, time.Until(ses.ExpiraEn))
	return nil
}

// Obtener devuelve la sesión o nil si no existe.
func (s *MemoriaStore) Obtener(_ context.Context, token string) (*entity.Sesion, error) {
	v, ok := s.c.Get(token)
	if !ok {
		return nil, nil
	}
	ses, ok := v.(*entity.Sesion)
	if !ok {
		return nil, nil
	}
	copia := *ses
	return &copia, nil
}

// Eliminar borra la sesión; un token desconocido no es un error.
func (s *MemoriaStore) Eliminar(_ context.Context, token string) error {
	s.c.Delete(token)
	return nil
}
