package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LavaderoResponse proyección de un lavadero con el contador de días que
// computa el servidor (el cliente solo lo renderiza).
type LavaderoResponse struct {
	ID            string     `json:"id"`
	Nombre        string     `json:"nombre"`
	Direccion     string     `json:"direccion"`
	Descripcion   string     `json:"descripcion,omitempty"`
	Estado        string     `json:"estado"`
	VenceEl       *time.Time `json:"vence_el,omitempty"`
	DiasRestantes *int       `json:"dias_restantes,omitempty"`
}

// PagoPendienteResponse estado de cobro del lavadero del admin autenticado.
type PagoPendienteResponse struct {
	HasPending  bool            `json:"has_pending"`
	Monto       decimal.Decimal `json:"monto"`
	Periodo     string          `json:"periodo"`
	VenceEl     *time.Time      `json:"vence_el,omitempty"`
	HasProof    bool            `json:"has_proof"`
	ProofStatus string          `json:"proof_status,omitempty"`
}
