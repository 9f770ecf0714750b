package auth

import (
	"context"
	"time"

	"github.com/tu-usuario/lavadero-pro/internal/domain/entity"
	"github.com/tu-usuario/lavadero-pro/internal/domain/repository"
)

// SesionStore abstrae el almacén de sesiones por cookie (memoria o redis).
type SesionStore interface {
	Guardar(ctx context.Context, s *entity.Sesion) error
	Obtener(ctx context.Context, token string) (*entity.Sesion, error)
	Eliminar(ctx context.Context, token string) error
}

// PerfilPuente identidad que devuelve el puente OAuth al canjear un id de un solo uso.
type PerfilPuente struct {
	GoogleID string
	Email    string
	Nombre   string
	Picture  string
}

// PuenteOAuth abstrae el proveedor de identidad externo. Canjear consume el
// session id de un solo uso del fragmento de redirección; un id ya usado o
// desconocido devuelve error.
type PuenteOAuth interface {
	Canjear(ctx context.Context, sessionID string) (*PerfilPuente, error)
}

// RegistroTxRunner ejecuta el alta conjunta Admin + Lavadero en una transacción.
type RegistroTxRunner interface {
	RunRegistro(ctx context.Context, fn func(
		usuarios repository.UsuarioRepository,
		lavaderos repository.LavaderoRepository,
	) error) error
}

// Reloj inyectable para pruebas; producción usa time.Now.
type Reloj func() time.Time
