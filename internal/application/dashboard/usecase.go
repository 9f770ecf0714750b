package dashboard

import (
	"time"

	"github.com/tu-usuario/lavadero-pro/internal/domain"
	"github.com/tu-usuario/lavadero-pro/internal/domain/entity"
	"github.com/tu-usuario/lavadero-pro/internal/domain/repository"
	"github.com/tu-usuario/lavadero-pro/pkg/dto"
)

// DashboardUseCase estadísticas por rol para el panel de cada actor.
type DashboardUseCase struct {
	usuarioRepo     repository.UsuarioRepository
	lavaderoRepo    repository.LavaderoRepository
	comprobanteRepo repository.ComprobanteRepository
	ahora           func() time.Time
}

// NewDashboardUseCase construye el caso de uso de estadísticas.
func NewDashboardUseCase(
	usuarioRepo repository.UsuarioRepository,
	lavaderoRepo repository.LavaderoRepository,
	comprobanteRepo repository.ComprobanteRepository,
) *DashboardUseCase {
	return &DashboardUseCase{
		usuarioRepo:     usuarioRepo,
		lavaderoRepo:    lavaderoRepo,
		comprobanteRepo: comprobanteRepo,
		ahora:           time.Now,
	}
}

// ConReloj fija un reloj inyectado (pruebas).
func (uc *DashboardUseCase) ConReloj(r func() time.Time) *DashboardUseCase {
	uc.ahora = r
	return uc
}

// Plataforma totales globales (SUPER_ADMIN). Normaliza vencimientos antes de contar.
func (uc *DashboardUseCase) Plataforma() (*dto.EstadisticasPlataforma, error) {
	if _, err := uc.lavaderoRepo.ExpirarVencidos(uc.ahora()); err != nil {
		return nil, err
	}
	total, err := uc.usuarioRepo.Count()
	if err != nil {
		return nil, err
	}
	// Las filas históricas pueden conservar el alias EMPLEADO: se cuentan juntas.
	clientes, err := uc.usuarioRepo.CountByRol(entity.RolCliente)
	if err != nil {
		return nil, err
	}
	legados, err := uc.usuarioRepo.CountByRol(entity.RolEmpleado)
	if err != nil {
		return nil, err
	}
	pendientes, err := uc.lavaderoRepo.CountByEstado(entity.EstadoPendienteAprobacion)
	if err != nil {
		return nil, err
	}
	activos, err := uc.lavaderoRepo.CountByEstado(entity.EstadoActivo)
	if err != nil {
		return nil, err
	}
	vencidos, err := uc.lavaderoRepo.CountByEstado(entity.EstadoVencido)
	if err != nil {
		return nil, err
	}
	porRevisar, err := uc.comprobanteRepo.CountPendientes()
	if err != nil {
		return nil, err
	}
	return &dto.EstadisticasPlataforma{
		TotalUsuarios:          total,
		TotalClientes:          clientes + legados,
		LavaderosPendientes:    pendientes,
		LavaderosActivos:       activos,
		LavaderosVencidos:      vencidos,
		ComprobantesPendientes: porRevisar,
	}, nil
}

// Lavadero estado del tenant propio (ADMIN).
func (uc *DashboardUseCase) Lavadero(adminID string) (*dto.EstadisticasLavadero, error) {
	l, err := uc.lavaderoRepo.GetByAdminID(adminID)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, domain.ErrNotFound
	}
	now := uc.ahora()
	if l.NormalizarVencimiento(now) {
		if err := uc.lavaderoRepo.Update(l); err != nil {
			return nil, err
		}
	}
	total, err := uc.comprobanteRepo.CountByLavadero(l.ID)
	if err != nil {
		return nil, err
	}
	return &dto.EstadisticasLavadero{
		Estado:            l.Estado,
		DiasRestantes:     l.DiasRestantes(now),
		TotalComprobantes: total,
	}, nil
}

// Cliente datos mínimos para la vista de selección de lavaderos.
func (uc *DashboardUseCase) Cliente() (*dto.EstadisticasCliente, error) {
	if _, err := uc.lavaderoRepo.ExpirarVencidos(uc.ahora()); err != nil {
		return nil, err
	}
	operativos, err := uc.lavaderoRepo.CountByEstado(entity.EstadoActivo)
	if err != nil {
		return nil, err
	}
	return &dto.EstadisticasCliente{LavaderosOperativos: operativos}, nil
}
