package sesiones

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tu-usuario/lavadero-pro/internal/domain/entity"
	"github.com/tu-usuario/lavadero-pro/pkg/config"
)

const prefijoSesion = "sesion:"

// RedisStore almacén de sesiones distribuido sobre Redis; las sesiones se
// serializan como JSON y expiran por TTL del lado del servidor.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedis crea el almacén y verifica la conexión.
func NewRedis(cfg config.SesionConfig, ttl time.Duration) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RedisStore{rdb: rdb, ttl: ttl}, nil
}

// Guardar persiste la sesión con expiración en su ExpiraEn.
func (s *RedisStore) Guardar(ctx context.Context, ses *entity.Sesion) error {
	b, err := json.Marshal(ses)
	if err != nil {
		return fmt.Errorf("serializar sesión: %w", err)
	}
	if err := s.rdb.Set(ctx, prefijoSesion+ses.Token, b, time.Until(ses.ExpiraEn)).Err(); err != nil {
		return fmt.Errorf("guardar sesión en redis: %w", err)
	}
	return nil
}

// Obtener devuelve la sesión o nil si no existe.
func (s *RedisStore) Obtener(ctx context.Context, token string) (*entity.Sesion, error) {
	b, err := s.rdb.Get(ctx, prefijoSesion+token).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("leer sesión de redis: %w", err)
	}
	var ses entity.Sesion
	if err := json.Unmarshal(b, &ses); err != nil {
		return nil, fmt.Errorf("deserializar sesión: %w", err)
	}
	return &ses, nil
}

// Eliminar borra la sesión; un token desconocido no es un error.
func (s *RedisStore) Eliminar(ctx context.Context, token string) error {
	if err := s.rdb.Del(ctx, prefijoSesion+token).Err(); err != nil {
		return fmt.Errorf("eliminar sesión de redis: %w", err)
	}
	return nil
}
