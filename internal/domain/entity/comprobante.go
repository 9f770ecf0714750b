package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/lavadero-pro/internal/domain"
)

// Estados de revisión de un Comprobante.
const (
	ComprobantePendiente  = "PENDIENTE"
	ComprobanteConfirmado = "CONFIRMADO"
	ComprobanteRechazado  = "RECHAZADO"
)

// Comprobante es la evidencia de pago de suscripción que un Admin envía para
// revisión manual. Invariante: a lo sumo un comprobante activo (PENDIENTE o
// CONFIRMADO) por lavadero y período; un RECHAZADO reabre el envío.
type Comprobante struct {
	ID                 string
	LavaderoID         string
	AdminID            string
	ImagenURL          string
	Monto              decimal.Decimal
	Periodo            string // período facturado, formato YYYY-MM
	Estado             string // ver constantes Comprobante*
	ComentarioRevision string
	RevisadoPor        string
	EnviadoEn          time.Time
	RevisadoEn         *time.Time
}

// EsActivo indica si el comprobante bloquea un nuevo envío para su período.
func (c *Comprobante) EsActivo() bool {
	return c.Estado == ComprobantePendiente || c.Estado == ComprobanteConfirmado
}

// Aprobar marca el comprobante CONFIRMADO. Las decisiones son de un solo uso:
// sobre un comprobante ya decidido devuelve ErrConflicto.
func (c *Comprobante) Aprobar(revisorID string, en time.Time) error {
	if c.Estado != ComprobantePendiente {
		return domain.ErrConflicto
	}
	c.Estado = ComprobanteConfirmado
	c.RevisadoPor = revisorID
	c.RevisadoEn = &en
	return nil
}

// Rechazar marca el comprobante RECHAZADO con un comentario obligatorio.
func (c *Comprobante) Rechazar(revisorID, comentario string, en time.Time) error {
	if strings.TrimSpace(comentario) == "" {
		return domain.ErrEntradaInvalida
	}
	if c.Estado != ComprobantePendiente {
		return domain.ErrConflicto
	}
	c.Estado = ComprobanteRechazado
	c.RevisadoPor = revisorID
	c.ComentarioRevision = comentario
	c.RevisadoEn = &en
	return nil
}

// PeriodoDe devuelve el período de facturación (YYYY-MM) para un instante.
func PeriodoDe(t time.Time) string {
	return t.Format("2006-01")
}
