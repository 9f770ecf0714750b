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

var _ repository.ComprobanteRepository = (*ComprobanteRepo)(nil)

const comprobanteColumnas = `id, lavadero_id, admin_id, imagen_url, monto, periodo, estado, comentario_revision, revisado_por, enviado_en, revisado_en`

// ComprobanteRepo implementación del puerto ComprobanteRepository sobre PostgreSQL (usable con pool o tx).
type ComprobanteRepo struct {
	q Querier
}

// NewComprobanteRepository construye el adaptador de persistencia para comprobantes.
func NewComprobanteRepository(q Querier) *ComprobanteRepo {
	return &ComprobanteRepo{q: q}
}

// Create persiste un comprobante. El índice único parcial sobre
// (lavadero_id, periodo) con estado activo respalda en la DB el invariante
// "un comprobante activo por período".
func (r *ComprobanteRepo) Create(c *entity.Comprobante) error {
	query := `
		INSERT INTO comprobantes (id, lavadero_id, admin_id, imagen_url, monto, periodo, estado, comentario_revision, revisado_por, enviado_en, revisado_en)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.LavaderoID, c.AdminID, c.ImagenURL, c.Monto, c.Periodo, c.Estado,
		c.ComentarioRevision, c.RevisadoPor, c.EnviadoEn, c.RevisadoEn,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrComprobanteActivo
		}
		return fmt.Errorf("insert comprobante: %w", err)
	}
	return nil
}

// GetByID obtiene un comprobante por ID, bloqueando la fila para la revisión
// (las decisiones corren dentro de una transacción).
func (r *ComprobanteRepo) GetByID(id string) (*entity.Comprobante, error) {
	return r.uno(`SELECT `+comprobanteColumnas+` FROM comprobantes WHERE id = $1 FOR UPDATE`, id)
}

// GetActivoPorPeriodo devuelve el comprobante PENDIENTE o CONFIRMADO del período, o nil.
func (r *ComprobanteRepo) GetActivoPorPeriodo(lavaderoID, periodo string) (*entity.Comprobante, error) {
	query := `
		SELECT ` + comprobanteColumnas + ` FROM comprobantes
		WHERE lavadero_id = $1 AND periodo = $2 AND estado IN ($3, $4)
		ORDER BY enviado_en DESC LIMIT 1`
	return r.unoArgs(query, lavaderoID, periodo, entity.ComprobantePendiente, entity.ComprobanteConfirmado)
}

// GetUltimoPorPeriodo devuelve el comprobante más reciente del período, cualquier estado.
func (r *ComprobanteRepo) GetUltimoPorPeriodo(lavaderoID, periodo string) (*entity.Comprobante, error) {
	query := `
		SELECT ` + comprobanteColumnas + ` FROM comprobantes
		WHERE lavadero_id = $1 AND periodo = $2
		ORDER BY enviado_en DESC LIMIT 1`
	return r.unoArgs(query, lavaderoID, periodo)
}

func (r *ComprobanteRepo) uno(query string, arg any) (*entity.Comprobante, error) {
	return r.unoArgs(query, arg)
}

func (r *ComprobanteRepo) unoArgs(query string, args ...any) (*entity.Comprobante, error) {
	var c entity.Comprobante
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&c.ID, &c.LavaderoID, &c.AdminID, &c.ImagenURL, &c.Monto, &c.Periodo, &c.Estado,
		&c.ComentarioRevision, &c.RevisadoPor, &c.EnviadoEn, &c.RevisadoEn,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get comprobante: %w", err)
	}
	return &c, nil
}

// Update persiste la decisión de revisión.
func (r *ComprobanteRepo) Update(c *entity.Comprobante) error {
	query := `
		UPDATE comprobantes SET estado = $2, comentario_revision = $3, revisado_por = $4, revisado_en = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.Estado, c.ComentarioRevision, c.RevisadoPor, c.RevisadoEn,
	)
	if err != nil {
		return fmt.Errorf("update comprobante: %w", err)
	}
	return nil
}

// ListPendientes bandeja de revisión con nombre de lavadero y de admin.
func (r *ComprobanteRepo) ListPendientes() ([]*repository.ComprobantePendiente, error) {
	query := `
		SELECT c.id, c.lavadero_id, c.admin_id, c.imagen_url, c.monto, c.periodo, c.estado,
			c.comentario_revision, c.revisado_por, c.enviado_en, c.revisado_en,
			l.nombre, u.nombre
		FROM comprobantes c
		JOIN lavaderos l ON l.id = c.lavadero_id
		JOIN usuarios u ON u.id = c.admin_id
		WHERE c.estado = $1
		ORDER BY c.enviado_en ASC`
	rows, err := r.q.Query(context.Background(), query, entity.ComprobantePendiente)
	if err != nil {
		return nil, fmt.Errorf("list comprobantes pendientes: %w", err)
	}
	defer rows.Close()
	var list []*repository.ComprobantePendiente
	for rows.Next() {
		var p repository.ComprobantePendiente
		c := &p.Comprobante
		if err := rows.Scan(&c.ID, &c.LavaderoID, &c.AdminID, &c.ImagenURL, &c.Monto, &c.Periodo, &c.Estado,
			&c.ComentarioRevision, &c.RevisadoPor, &c.EnviadoEn, &c.RevisadoEn,
			&p.LavaderoNombre, &p.AdminNombre); err != nil {
			return nil, fmt.Errorf("scan comprobante pendiente: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// ListByLavadero historial de un lavadero con paginación.
func (r *ComprobanteRepo) ListByLavadero(lavaderoID string, limit, offset int) ([]*entity.Comprobante, error) {
	query := `
		SELECT ` + comprobanteColumnas + ` FROM comprobantes
		WHERE lavadero_id = $1 ORDER BY enviado_en DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, lavaderoID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list comprobantes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Comprobante
	for rows.Next() {
		var c entity.Comprobante
		if err := rows.Scan(&c.ID, &c.LavaderoID, &c.AdminID, &c.ImagenURL, &c.Monto, &c.Periodo, &c.Estado,
			&c.ComentarioRevision, &c.RevisadoPor, &c.EnviadoEn, &c.RevisadoEn); err != nil {
			return nil, fmt.Errorf("scan comprobante: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// CountByLavadero total de comprobantes de un lavadero.
func (r *ComprobanteRepo) CountByLavadero(lavaderoID string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM comprobantes WHERE lavadero_id = $1`, lavaderoID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count comprobantes: %w", err)
	}
	return n, nil
}

// CountPendientes total de comprobantes a revisar.
func (r *ComprobanteRepo) CountPendientes() (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM comprobantes WHERE estado = $1`, entity.ComprobantePendiente).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count comprobantes pendientes: %w", err)
	}
	return n, nil
}
