package repository

import "github.com/tu-usuario/lavadero-pro/internal/domain/entity"

// ComprobantePendiente es el modelo de lectura para la bandeja del SUPER_ADMIN:
// el comprobante más el nombre del lavadero y del admin que lo envió.
type ComprobantePendiente struct {
	Comprobante    entity.Comprobante
	LavaderoNombre string
	AdminNombre    string
}

// ComprobanteRepository define el puerto de persistencia para Comprobante.
type ComprobanteRepository interface {
	Create(c *entity.Comprobante) error
	GetByID(id string) (*entity.Comprobante, error)
	// GetActivoPorPeriodo devuelve el comprobante PENDIENTE o CONFIRMADO del
	// período, o nil si no hay (un RECHAZADO no cuenta como activo).
	GetActivoPorPeriodo(lavaderoID, periodo string) (*entity.Comprobante, error)
	// GetUltimoPorPeriodo devuelve el comprobante más reciente del período sin
	// importar su estado, o nil.
	GetUltimoPorPeriodo(lavaderoID, periodo string) (*entity.Comprobante, error)
	Update(c *entity.Comprobante) error
	ListPendientes() ([]*ComprobantePendiente, error)
	ListByLavadero(lavaderoID string, limit, offset int) ([]*entity.Comprobante, error)
	CountByLavadero(lavaderoID string) (int, error)
	CountPendientes() (int, error)
}
