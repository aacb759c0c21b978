package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gestium/gestium-api/internal/application/sales"
	"github.com/gestium/gestium-api/internal/domain/repository"
)

var _ sales.VentasTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunVentas inicia una transacción, ejecuta fn con los repos de venta atados a
// la tx y hace Commit o Rollback. Cabecera y líneas se escriben juntas o no
// se escriben.
func (r *TxRunner) RunVentas(ctx context.Context, fn func(
	cotizacionRepo repository.CotizacionRepository,
	ordenRepo repository.OrdenVentaRepository,
	facturaRepo repository.FacturaRepository,
	notaRepo repository.NotaRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	cotizacionRepo := NewCotizacionRepository(tx)
	ordenRepo := NewOrdenVentaRepository(tx)
	facturaRepo := NewFacturaRepository(tx)
	notaRepo := NewNotaRepository(tx)

	if err := fn(cotizacionRepo, ordenRepo, facturaRepo, notaRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
