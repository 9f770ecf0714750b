package lavaderos

import (
	"time"

	"github.com/tu-usuario/lavadero-pro/internal/domain"
	"github.com/tu-usuario/lavadero-pro/internal/domain/entity"
	"github.com/tu-usuario/lavadero-pro/internal/domain/repository"
	"github.com/tu-usuario/lavadero-pro/pkg/dto"
)

// LavaderoUseCase lecturas del ciclo de vida de tenants. Los vencimientos se
// normalizan con un barrido perezoso antes de cada lectura: el cliente nunca
// infiere VENCIDO a partir del reloj local, siempre lo informa el servidor.
type LavaderoUseCase struct {
	lavaderoRepo    repository.LavaderoRepository
	comprobanteRepo repository.ComprobanteRepository
	ahora           func() time.Time
}

// NewLavaderoUseCase construye el caso de uso con los puertos de persistencia.
func NewLavaderoUseCase(lavaderoRepo repository.LavaderoRepository, comprobanteRepo repository.ComprobanteRepository) *LavaderoUseCase {
	return &LavaderoUseCase{lavaderoRepo: lavaderoRepo, comprobanteRepo: comprobanteRepo, ahora: time.Now}
}

// ConReloj fija un reloj inyectado (pruebas).
func (uc *LavaderoUseCase) ConReloj(r func() time.Time) *LavaderoUseCase {
	uc.ahora = r
	return uc
}

// Operativos lista los lavaderos ACTIVO para la selección pública de tenants.
func (uc *LavaderoUseCase) Operativos() ([]*dto.LavaderoResponse, error) {
	now := uc.ahora()
	if _, err := uc.lavaderoRepo.ExpirarVencidos(now); err != nil {
		return nil, err
	}
	list, err := uc.lavaderoRepo.ListOperativos()
	if err != nil {
		return nil, err
	}
	out := make([]*dto.LavaderoResponse, 0, len(list))
	for _, l := range list {
		out = append(out, toLavaderoResponse(l, now))
	}
	return out, nil
}

// MiLavadero devuelve el lavadero del admin con su estado ya normalizado.
func (uc *LavaderoUseCase) MiLavadero(adminID string) (*dto.LavaderoResponse, error) {
	l, err := uc.lavaderoNormalizado(adminID)
	if err != nil {
		return nil, err
	}
	return toLavaderoResponse(l, uc.ahora()), nil
}

// PagoPendiente arma el estado de cobro del lavadero del admin: si necesita
// pagar, el período corriente y el estado del último comprobante del período.
func (uc *LavaderoUseCase) PagoPendiente(adminID string) (*dto.PagoPendienteResponse, error) {
	l, err := uc.lavaderoNormalizado(adminID)
	if err != nil {
		return nil, err
	}
	now := uc.ahora()
	periodo := entity.PeriodoDe(now)
	resp := &dto.PagoPendienteResponse{
		HasPending: !l.Operativo(),
		Monto:      l.MontoSuscripcion,
		Periodo:    periodo,
		VenceEl:    l.VenceEl,
	}
	ultimo, err := uc.comprobanteRepo.GetUltimoPorPeriodo(l.ID, periodo)
	if err != nil {
		return nil, err
	}
	if ultimo != nil {
		resp.HasProof = true
		resp.ProofStatus = ultimo.Estado
	}
	return resp, nil
}

// lavaderoNormalizado carga el lavadero del admin y persiste la transición
// ACTIVO → VENCIDO si el período expiró.
func (uc *LavaderoUseCase) lavaderoNormalizado(adminID string) (*entity.Lavadero, error) {
	l, err := uc.lavaderoRepo.GetByAdminID(adminID)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, domain.ErrNotFound
	}
	if l.NormalizarVencimiento(uc.ahora()) {
		if err := uc.lavaderoRepo.Update(l); err != nil {
			return nil, err
		}
	}
	return l, nil
}

func toLavaderoResponse(l *entity.Lavadero, now time.Time) *dto.LavaderoResponse {
	return &dto.LavaderoResponse{
		ID:            l.ID,
		Nombre:        l.Nombre,
		Direccion:     l.Direccion,
		Descripcion:   l.Descripcion,
		Estado:        l.Estado,
		VenceEl:       l.VenceEl,
		DiasRestantes: l.DiasRestantes(now),
	}
}
