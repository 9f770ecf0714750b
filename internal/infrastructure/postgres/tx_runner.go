package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/lavadero-pro/internal/application/auth"
	"github.com/tu-usuario/lavadero-pro/internal/application/comprobantes"
	"github.com/tu-usuario/lavadero-pro/internal/domain/repository"
)

// Ensure TxRunner implements auth.RegistroTxRunner and comprobantes.RevisionTxRunner.
var _ auth.RegistroTxRunner = (*TxRunner)(nil)
var _ comprobantes.RevisionTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunRegistro inicia una transacción para el alta conjunta Admin + Lavadero.
func (r *TxRunner) RunRegistro(ctx context.Context, fn func(
	usuarios repository.UsuarioRepository,
	lavaderos repository.LavaderoRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewUsuarioRepository(tx), NewLavaderoRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunRevision inicia una transacción para decidir un comprobante y aplicar la
// transición del lavadero como una sola unidad.
func (r *TxRunner) RunRevision(ctx context.Context, fn func(
	comprobantesRepo repository.ComprobanteRepository,
	lavaderosRepo repository.LavaderoRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewComprobanteRepository(tx), NewLavaderoRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
