package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/lavadero-pro/internal/domain/entity"
	"github.com/tu-usuario/lavadero-pro/internal/domain/repository"
)

var _ repository.LavaderoRepository = (*LavaderoRepo)(nil)

const lavaderoColumnas = `id, admin_id, nombre, direccion, descripcion, estado, vence_el, monto_suscripcion, created_at, updated_at`

// LavaderoRepo implementación del puerto LavaderoRepository sobre PostgreSQL (usable con pool o tx).
type LavaderoRepo struct {
	q Querier
}

// NewLavaderoRepository construye el adaptador de persistencia para lavaderos.
func NewLavaderoRepository(q Querier) *LavaderoRepo {
	return &LavaderoRepo{q: q}
}

// Create persiste un nuevo lavadero.
func (r *LavaderoRepo) Create(l *entity.Lavadero) error {
	query := `
		INSERT INTO lavaderos (id, admin_id, nombre, direccion, descripcion, estado, vence_el, monto_suscripcion, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		l.ID, l.AdminID, l.Nombre, l.Direccion, l.Descripcion, l.Estado, l.VenceEl, l.MontoSuscripcion,
		l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert lavadero: %w", err)
	}
	return nil
}

// GetByID obtiene un lavadero por ID.
func (r *LavaderoRepo) GetByID(id string) (*entity.Lavadero, error) {
	return r.uno(`SELECT `+lavaderoColumnas+` FROM lavaderos WHERE id = $1`, id)
}

// GetByAdminID obtiene el lavadero del admin (relación uno a uno).
func (r *LavaderoRepo) GetByAdminID(adminID string) (*entity.Lavadero, error) {
	return r.uno(`SELECT `+lavaderoColumnas+` FROM lavaderos WHERE admin_id = $1 LIMIT 1`, adminID)
}

func (r *LavaderoRepo) uno(query string, arg any) (*entity.Lavadero, error) {
	var l entity.Lavadero
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&l.ID, &l.AdminID, &l.Nombre, &l.Direccion, &l.Descripcion, &l.Estado, &l.VenceEl,
		&l.MontoSuscripcion, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lavadero: %w", err)
	}
	return &l, nil
}

// Update actualiza un lavadero.
func (r *LavaderoRepo) Update(l *entity.Lavadero) error {
	query := `
		UPDATE lavaderos SET nombre = $2, direccion = $3, descripcion = $4, estado = $5,
			vence_el = $6, monto_suscripcion = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		l.ID, l.Nombre, l.Direccion, l.Descripcion, l.Estado, l.VenceEl, l.MontoSuscripcion, l.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update lavadero: %w", err)
	}
	return nil
}

// ListOperativos lista los lavaderos ACTIVO (selección pública).
func (r *LavaderoRepo) ListOperativos() ([]*entity.Lavadero, error) {
	query := `SELECT ` + lavaderoColumnas + ` FROM lavaderos WHERE estado = $1 ORDER BY nombre`
	rows, err := r.q.Query(context.Background(), query, entity.EstadoActivo)
	if err != nil {
		return nil, fmt.Errorf("list lavaderos operativos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Lavadero
	for rows.Next() {
		var l entity.Lavadero
		if err := rows.Scan(&l.ID, &l.AdminID, &l.Nombre, &l.Direccion, &l.Descripcion, &l.Estado,
			&l.VenceEl, &l.MontoSuscripcion, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan lavadero: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// ExpirarVencidos aplica en lote ACTIVO → VENCIDO para vencimientos pasados.
func (r *LavaderoRepo) ExpirarVencidos(ahora time.Time) (int, error) {
	query := `
		UPDATE lavaderos SET estado = $1, updated_at = $2
		WHERE estado = $3 AND vence_el IS NOT NULL AND vence_el < $2`
	tag, err := r.q.Exec(context.Background(), query, entity.EstadoVencido, ahora, entity.EstadoActivo)
	if err != nil {
		return 0, fmt.Errorf("expirar lavaderos: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// CountByEstado total de lavaderos por estado.
func (r *LavaderoRepo) CountByEstado(estado string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM lavaderos WHERE estado = $1`, estado).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count lavaderos: %w", err)
	}
	return n, nil
}
