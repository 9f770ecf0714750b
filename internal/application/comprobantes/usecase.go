package comprobantes

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/lavadero-pro/internal/domain"
	"github.com/tu-usuario/lavadero-pro/internal/domain/entity"
	"github.com/tu-usuario/lavadero-pro/internal/domain/repository"
	"github.com/tu-usuario/lavadero-pro/pkg/dto"
)

// RevisionTxRunner ejecuta la decisión sobre un comprobante y la transición del
// lavadero en una sola transacción.
type RevisionTxRunner interface {
	RunRevision(ctx context.Context, fn func(
		comprobantes repository.ComprobanteRepository,
		lavaderos repository.LavaderoRepository,
	) error) error
}

// ComprobanteUseCase protocolo de envío/aprobación/rechazo que conduce las
// transiciones de TenantLifecycle. Las decisiones son de un solo uso; los
// clientes refrescan la lista después de cada mutación en vez de parchearla.
type ComprobanteUseCase struct {
	comprobanteRepo repository.ComprobanteRepository
	lavaderoRepo    repository.LavaderoRepository
	txRunner        RevisionTxRunner
	diasPeriodo     int
	ahora           func() time.Time
}

// NewComprobanteUseCase construye el caso de uso del workflow.
func NewComprobanteUseCase(
	comprobanteRepo repository.ComprobanteRepository,
	lavaderoRepo repository.LavaderoRepository,
	txRunner RevisionTxRunner,
	diasPeriodo int,
) *ComprobanteUseCase {
	return &ComprobanteUseCase{
		comprobanteRepo: comprobanteRepo,
		lavaderoRepo:    lavaderoRepo,
		txRunner:        txRunner,
		diasPeriodo:     diasPeriodo,
		ahora:           time.Now,
	}
}

// ConReloj fija un reloj inyectado (pruebas).
func (uc *ComprobanteUseCase) ConReloj(r func() time.Time) *ComprobanteUseCase {
	uc.ahora = r
	return uc
}

// Enviar registra un comprobante PENDIENTE para el período corriente.
// Falla con ErrComprobanteActivo si ya hay uno PENDIENTE o CONFIRMADO para el
// período; un RECHAZADO previo no bloquea el reenvío.
func (uc *ComprobanteUseCase) Enviar(adminID, imagenURL string) (*dto.ComprobanteResponse, error) {
	if strings.TrimSpace(imagenURL) == "" {
		return nil, domain.ErrEntradaInvalida
	}
	l, err := uc.lavaderoRepo.GetByAdminID(adminID)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, domain.ErrProhibido
	}
	now := uc.ahora()
	periodo := entity.PeriodoDe(now)
	activo, err := uc.comprobanteRepo.GetActivoPorPeriodo(l.ID, periodo)
	if err != nil {
		return nil, err
	}
	if activo != nil {
		return nil, domain.ErrComprobanteActivo
	}
	c := &entity.Comprobante{
		ID:         uuid.New().String(),
		LavaderoID: l.ID,
		AdminID:    adminID,
		ImagenURL:  imagenURL,
		Monto:      l.MontoSuscripcion,
		Periodo:    periodo,
		Estado:     entity.ComprobantePendiente,
		EnviadoEn:  now,
	}
	if err := uc.comprobanteRepo.Create(c); err != nil {
		return nil, err
	}
	return toComprobanteResponse(c), nil
}

// ListarPendientes bandeja de revisión del SUPER_ADMIN.
func (uc *ComprobanteUseCase) ListarPendientes() ([]*dto.ComprobantePendienteResponse, error) {
	list, err := uc.comprobanteRepo.ListPendientes()
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ComprobantePendienteResponse, 0, len(list))
	for _, p := range list {
		out = append(out, &dto.ComprobantePendienteResponse{
			ID:             p.Comprobante.ID,
			LavaderoID:     p.Comprobante.LavaderoID,
			LavaderoNombre: p.LavaderoNombre,
			AdminNombre:    p.AdminNombre,
			ImagenURL:      p.Comprobante.ImagenURL,
			Monto:          p.Comprobante.Monto,
			Periodo:        p.Comprobante.Periodo,
			EnviadoEn:      p.Comprobante.EnviadoEn,
		})
	}
	return out, nil
}

// ListarDelLavadero historial de comprobantes del lavadero del admin.
func (uc *ComprobanteUseCase) ListarDelLavadero(adminID string, limit, offset int) ([]*dto.ComprobanteResponse, error) {
	l, err := uc.lavaderoRepo.GetByAdminID(adminID)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, domain.ErrProhibido
	}
	list, err := uc.comprobanteRepo.ListByLavadero(l.ID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ComprobanteResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toComprobanteResponse(c))
	}
	return out, nil
}

// Aprobar confirma el comprobante y conduce el lavadero a ACTIVO con un
// período fresco, en una sola transacción. Un comprobante ya decidido devuelve
// ErrConflicto (la decisión es de un solo uso).
func (uc *ComprobanteUseCase) Aprobar(ctx context.Context, revisorID, comprobanteID string) error {
	now := uc.ahora()
	return uc.txRunner.RunRevision(ctx, func(comprobantes repository.ComprobanteRepository, lavaderos repository.LavaderoRepository) error {
		c, err := comprobantes.GetByID(comprobanteID)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.ErrNotFound
		}
		if err := c.Aprobar(revisorID, now); err != nil {
			return err
		}
		l, err := lavaderos.GetByID(c.LavaderoID)
		if err != nil {
			return err
		}
		if l == nil {
			return domain.ErrNotFound
		}
		if err := l.Aprobar(now, uc.diasPeriodo); err != nil {
			return err
		}
		if err := comprobantes.Update(c); err != nil {
			return err
		}
		return lavaderos.Update(l)
	})
}

// Rechazar marca el comprobante RECHAZADO con comentario obligatorio; el
// estado del lavadero no cambia y el admin queda habilitado para reenviar.
func (uc *ComprobanteUseCase) Rechazar(ctx context.Context, revisorID, comprobanteID, comentario string) error {
	if strings.TrimSpace(comentario) == "" {
		return domain.ErrEntradaInvalida
	}
	now := uc.ahora()
	return uc.txRunner.RunRevision(ctx, func(comprobantes repository.ComprobanteRepository, _ repository.LavaderoRepository) error {
		c, err := comprobantes.GetByID(comprobanteID)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.ErrNotFound
		}
		if err := c.Rechazar(revisorID, comentario, now); err != nil {
			return err
		}
		return comprobantes.Update(c)
	})
}

func toComprobanteResponse(c *entity.Comprobante) *dto.ComprobanteResponse {
	return &dto.ComprobanteResponse{
		ID:                 c.ID,
		LavaderoID:         c.LavaderoID,
		ImagenURL:          c.ImagenURL,
		Monto:              c.Monto,
		Periodo:            c.Periodo,
		Estado:             c.Estado,
		ComentarioRevision: c.ComentarioRevision,
		EnviadoEn:          c.EnviadoEn,
		RevisadoEn:         c.RevisadoEn,
	}
}
