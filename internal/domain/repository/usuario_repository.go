package repository

import "github.com/tu-usuario/lavadero-pro/internal/domain/entity"

// UsuarioRepository define el puerto de persistencia para Usuario (DIP).
type UsuarioRepository interface {
	Create(u *entity.Usuario) error
	GetByID(id string) (*entity.Usuario, error)
	GetByEmail(email string) (*entity.Usuario, error)
	GetByGoogleID(googleID string) (*entity.Usuario, error)
	Update(u *entity.Usuario) error
	Delete(id string) error
	List(limit, offset int) ([]*entity.Usuario, error)
	Count() (int, error)
	CountByRol(rol entity.Rol) (int, error)
}
