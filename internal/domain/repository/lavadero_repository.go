package repository

import (
	"time"

	"github.com/tu-usuario/lavadero-pro/internal/domain/entity"
)

// LavaderoRepository define el puerto de persistencia para Lavadero.
type LavaderoRepository interface {
	Create(l *entity.Lavadero) error
	GetByID(id string) (*entity.Lavadero, error)
	GetByAdminID(adminID string) (*entity.Lavadero, error)
	Update(l *entity.Lavadero) error
	// ListOperativos devuelve los lavaderos ACTIVO (selección pública de tenants).
	ListOperativos() ([]*entity.Lavadero, error)
	// ExpirarVencidos aplica en lote ACTIVO → VENCIDO para períodos expirados
	// (barrido perezoso antes de lecturas). Devuelve cuántos cambiaron.
	ExpirarVencidos(ahora time.Time) (int, error)
	CountByEstado(estado string) (int, error)
}
