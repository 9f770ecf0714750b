// Package sesiones implementa el almacén de sesiones por cookie con soporte
// multi-backend:
//
//   - Memory (in-process, para desarrollo/testing)
//   - Redis (distribuido, para producción)
//
// Las sesiones son credenciales opacas con TTL; el contenido nunca viaja al
// cliente, solo el token.
package sesiones

import (
	"time"

	"github.com/tu-usuario/lavadero-pro/internal/application/auth"
	"github.com/tu-usuario/lavadero-pro/pkg/config"
)

// New crea un almacén de sesiones según la configuración.
func New(cfg config.SesionConfig) (auth.SesionStore, error) {
	ttl := time.Duration(cfg.TTLMinutos) * time.Minute
	switch cfg.Driver {
	case "redis":
		return NewRedis(cfg, ttl)
	case "memory", "":
		return NewMemoria(ttl), nil
	default:
		return NewMemoria(ttl), nil
	}
}
