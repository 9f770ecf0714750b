package cliente

import (
	"context"
	"strings"

	"github.com/tu-usuario/lavadero-pro/pkg/dto"
)

// Workflow cliente del circuito de comprobantes. Todas las mutaciones son
// "disparar y refrescar": después de enviar, aprobar o rechazar se vuelve a
// pedir la lista completa en lugar de parchear caches locales, así dos
// revisores concurrentes convergen a la verdad del servidor.
type Workflow struct {
	api *API
}

// NewWorkflow construye el cliente del workflow sobre el transporte dado.
func NewWorkflow(api *API) *Workflow {
	return &Workflow{api: api}
}

// PagoPendiente consulta al servidor si el lavadero necesita pagar. El
// servidor es la fuente de verdad: enviar sin consultar primero se rechaza
// con conflicto si ya hay un comprobante activo.
func (w *Workflow) PagoPendiente(ctx context.Context) (*dto.PagoPendienteResponse, error) {
	return w.api.PagoPendiente(ctx)
}

// Enviar sube un comprobante y devuelve el estado de pago refrescado.
func (w *Workflow) Enviar(ctx context.Context, imagenURL string) (*dto.PagoPendienteResponse, error) {
	if strings.TrimSpace(imagenURL) == "" {
		return nil, ErrEntradaInvalida
	}
	if _, err := w.api.EnviarComprobante(ctx, imagenURL); err != nil {
		return nil, err
	}
	return w.api.PagoPendiente(ctx)
}

// Pendientes lista los comprobantes a revisar (SUPER_ADMIN).
func (w *Workflow) Pendientes(ctx context.Context) ([]*dto.ComprobantePendienteResponse, error) {
	return w.api.ComprobantesPendientes(ctx)
}

// Aprobar confirma un comprobante y devuelve la lista de pendientes
// refrescada. Un comprobante ya decidido produce ConflictoWorkflow.
func (w *Workflow) Aprobar(ctx context.Context, id string) ([]*dto.ComprobantePendienteResponse, error) {
	if err := w.api.AprobarComprobante(ctx, id); err != nil {
		return nil, err
	}
	return w.api.ComprobantesPendientes(ctx)
}

// Rechazar marca un comprobante como rechazado. Un comentario vacío aborta
// localmente, sin llegar al servidor.
func (w *Workflow) Rechazar(ctx context.Context, id, comentario string) ([]*dto.ComprobantePendienteResponse, error) {
	if strings.TrimSpace(comentario) == "" {
		return nil, ErrEntradaInvalida
	}
	if err := w.api.RechazarComprobante(ctx, id, comentario); err != nil {
		return nil, err
	}
	return w.api.ComprobantesPendientes(ctx)
}
