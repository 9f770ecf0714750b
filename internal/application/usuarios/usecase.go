package usuarios

import (
	"github.com/tu-usuario/lavadero-pro/internal/application/auth"
	"github.com/tu-usuario/lavadero-pro/internal/domain"
	"github.com/tu-usuario/lavadero-pro/internal/domain/repository"
	"github.com/tu-usuario/lavadero-pro/pkg/dto"
)

// UsuarioUseCase administración de cuentas (SUPER_ADMIN).
type UsuarioUseCase struct {
	repo repository.UsuarioRepository
}

// NewUsuarioUseCase construye el caso de uso con el puerto de persistencia.
func NewUsuarioUseCase(repo repository.UsuarioRepository) *UsuarioUseCase {
	return &UsuarioUseCase{repo: repo}
}

// List lista usuarios con paginación.
func (uc *UsuarioUseCase) List(limit, offset int) ([]*dto.UsuarioResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.UsuarioResponse, 0, len(list))
	for _, u := range list {
		out = append(out, auth.ToUsuarioResponse(u))
	}
	return out, nil
}

// Eliminar borra una cuenta de forma definitiva. Devuelve ErrUsuarioNotFound
// si el id no existe; la operación no toca el lavadero asociado.
func (uc *UsuarioUseCase) Eliminar(id string) error {
	return uc.repo.Delete(id)
}

// ToggleActivo invierte la bandera Activo. Un usuario desactivado no puede
// iniciar sesión ni validar sesiones existentes.
func (uc *UsuarioUseCase) ToggleActivo(id string) (*dto.UsuarioResponse, error) {
	u, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUsuarioNotFound
	}
	u.Activo = !u.Activo
	if err := uc.repo.Update(u); err != nil {
		return nil, err
	}
	return auth.ToUsuarioResponse(u), nil
}
