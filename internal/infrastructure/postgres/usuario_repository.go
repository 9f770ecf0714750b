package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/lavadero-pro/internal/domain"
	"github.com/tu-usuario/lavadero-pro/internal/domain/entity"
	"github.com/tu-usuario/lavadero-pro/internal/domain/repository"
)

var _ repository.UsuarioRepository = (*UsuarioRepo)(nil)

const usuarioColumnas = `id, email, nombre, rol, password_hash, google_id, picture, activo, created_at`

// UsuarioRepo implementación del puerto UsuarioRepository sobre PostgreSQL (usable con pool o tx).
type UsuarioRepo struct {
	q Querier
}

// NewUsuarioRepository construye el adaptador de persistencia para usuarios.
func NewUsuarioRepository(q Querier) *UsuarioRepo {
	return &UsuarioRepo{q: q}
}

// Create persiste un nuevo usuario.
func (r *UsuarioRepo) Create(u *entity.Usuario) error {
	query := `
		INSERT INTO usuarios (id, email, nombre, rol, password_hash, google_id, picture, activo, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		u.ID, u.Email, u.Nombre, string(u.Rol), u.PasswordHash, u.GoogleID, u.Picture, u.Activo, u.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert usuario: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UsuarioRepo) GetByID(id string) (*entity.Usuario, error) {
	return r.uno(`SELECT `+usuarioColumnas+` FROM usuarios WHERE id = $1`, id)
}

// GetByEmail obtiene un usuario por email.
func (r *UsuarioRepo) GetByEmail(email string) (*entity.Usuario, error) {
	return r.uno(`SELECT `+usuarioColumnas+` FROM usuarios WHERE email = $1 LIMIT 1`, email)
}

// GetByGoogleID obtiene un usuario por su identidad externa.
func (r *UsuarioRepo) GetByGoogleID(googleID string) (*entity.Usuario, error) {
	if googleID == "" {
		return nil, nil
	}
	return r.uno(`SELECT `+usuarioColumnas+` FROM usuarios WHERE google_id = $1 LIMIT 1`, googleID)
}

func (r *UsuarioRepo) uno(query string, arg any) (*entity.Usuario, error) {
	var u entity.Usuario
	var rol string
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&u.ID, &u.Email, &u.Nombre, &rol, &u.PasswordHash, &u.GoogleID, &u.Picture, &u.Activo, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get usuario: %w", err)
	}
	u.Rol = entity.Rol(rol)
	return &u, nil
}

// Update actualiza un usuario.
func (r *UsuarioRepo) Update(u *entity.Usuario) error {
	query := `
		UPDATE usuarios SET email = $2, nombre = $3, rol = $4, password_hash = $5,
			google_id = $6, picture = $7, activo = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		u.ID, u.Email, u.Nombre, string(u.Rol), u.PasswordHash, u.GoogleID, u.Picture, u.Activo,
	)
	if err != nil {
		return fmt.Errorf("update usuario: %w", err)
	}
	return nil
}

// Delete elimina un usuario. Devuelve ErrUsuarioNotFound si el id no existe.
func (r *UsuarioRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM usuarios WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete usuario: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUsuarioNotFound
	}
	return nil
}

// List lista usuarios con paginación.
func (r *UsuarioRepo) List(limit, offset int) ([]*entity.Usuario, error) {
	query := `SELECT ` + usuarioColumnas + ` FROM usuarios ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list usuarios: %w", err)
	}
	defer rows.Close()
	var list []*entity.Usuario
	for rows.Next() {
		var u entity.Usuario
		var rol string
		if err := rows.Scan(&u.ID, &u.Email, &u.Nombre, &rol, &u.PasswordHash, &u.GoogleID, &u.Picture, &u.Activo, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan usuario: %w", err)
		}
		u.Rol = entity.Rol(rol)
		list = append(list, &u)
	}
	return list, rows.Err()
}

// Count total de usuarios.
func (r *UsuarioRepo) Count() (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM usuarios`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count usuarios: %w", err)
	}
	return n, nil
}

// CountByRol total de usuarios por rol.
func (r *UsuarioRepo) CountByRol(rol entity.Rol) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM usuarios WHERE rol = $1`, string(rol)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count usuarios por rol: %w", err)
	}
	return n, nil
}
