package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/lavadero-pro/internal/domain"
)

// Estados operativos de un Lavadero.
//
// PENDIENTE_APROBACION es el estado inicial al registrarse; un lavadero que ya
// alcanzó ACTIVO alguna vez nunca vuelve a PENDIENTE_APROBACION: los lapsos
// posteriores van a VENCIDO (son motivos de bloqueo distintos y no se mezclan).
const (
	EstadoPendienteAprobacion = "PENDIENTE_APROBACION"
	EstadoActivo              = "ACTIVO"
	EstadoVencido             = "VENCIDO"
)

// Lavadero representa un tenant de la plataforma: el negocio de un Admin.
// Las transiciones de estado las conduce la revisión de comprobantes y el
// vencimiento del período; nunca se deduce el estado en el cliente.
type Lavadero struct {
	ID               string
	AdminID          string
	Nombre           string
	Direccion        string
	Descripcion      string
	Estado           string // ver constantes Estado*
	VenceEl          *time.Time
	MontoSuscripcion decimal.Decimal
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Aprobar aplica la transición por aprobación de comprobante: cualquier estado
// pasa a ACTIVO con vencimiento revisadoEn + dias. Si el lavadero ya está
// ACTIVO con un vencimiento futuro, el nuevo período extiende al actual.
func (l *Lavadero) Aprobar(revisadoEn time.Time, dias int) error {
	if dias <= 0 {
		return domain.ErrEntradaInvalida
	}
	base := revisadoEn
	if l.Estado == EstadoActivo && l.VenceEl != nil && l.VenceEl.After(revisadoEn) {
		base = *l.VenceEl
	}
	vence := base.AddDate(0, 0, dias)
	l.Estado = EstadoActivo
	l.VenceEl = &vence
	l.UpdatedAt = revisadoEn
	return nil
}

// NormalizarVencimiento aplica la transición ACTIVO → VENCIDO si el período
// expiró. Devuelve true si hubo cambio (el llamador debe persistirlo).
// Un lavadero PENDIENTE_APROBACION nunca se toca aquí.
func (l *Lavadero) NormalizarVencimiento(ahora time.Time) bool {
	if l.Estado != EstadoActivo || l.VenceEl == nil || !l.VenceEl.Before(ahora) {
		return false
	}
	l.Estado = EstadoVencido
	l.UpdatedAt = ahora
	return true
}

// DiasRestantes calcula los días hasta el vencimiento (redondeo hacia arriba).
// nil si no hay vencimiento asignado; nunca negativo.
func (l *Lavadero) DiasRestantes(ahora time.Time) *int {
	if l.VenceEl == nil {
		return nil
	}
	d := l.VenceEl.Sub(ahora)
	dias := int((d + 24*time.Hour - time.Nanosecond) / (24 * time.Hour))
	if dias < 0 {
		dias = 0
	}
	return &dias
}

// Operativo indica si el lavadero puede operar (reservas habilitadas).
func (l *Lavadero) Operativo() bool {
	return l.Estado == EstadoActivo
}
