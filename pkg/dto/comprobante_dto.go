package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// EnviarComprobanteRequest envío de evidencia de pago por un Admin.
type EnviarComprobanteRequest struct {
	ImagenURL string `json:"imagen_url" validate:"required,url"`
}

// RechazarComprobanteRequest el comentario es obligatorio al rechazar.
type RechazarComprobanteRequest struct {
	Comentario string `json:"comentario" validate:"required"`
}

// ComprobanteResponse proyección de un comprobante.
type ComprobanteResponse struct {
	ID                 string          `json:"id"`
	LavaderoID         string          `json:"lavadero_id"`
	ImagenURL          string          `json:"imagen_url"`
	Monto              decimal.Decimal `json:"monto"`
	Periodo            string          `json:"periodo"`
	Estado             string          `json:"estado"`
	ComentarioRevision string          `json:"comentario_revision,omitempty"`
	EnviadoEn          time.Time       `json:"enviado_en"`
	RevisadoEn         *time.Time      `json:"revisado_en,omitempty"`
}

// ComprobantePendienteResponse fila de la bandeja de revisión del SUPER_ADMIN.
type ComprobantePendienteResponse struct {
	ID             string          `json:"id"`
	LavaderoID     string          `json:"lavadero_id"`
	LavaderoNombre string          `json:"lavadero_nombre"`
	AdminNombre    string          `json:"admin_nombre"`
	ImagenURL      string          `json:"imagen_url"`
	Monto          decimal.Decimal `json:"monto"`
	Periodo        string          `json:"periodo"`
	EnviadoEn      time.Time       `json:"enviado_en"`
}
