package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Tienda-api/internal/application/catalog"
	"github.com/jhoicas/Tienda-api/internal/application/sales"
	"github.com/jhoicas/Tienda-api/internal/application/usecase"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

var (
	_ sales.TxRunner          = (*TxRunner)(nil)
	_ usecase.RestockTxRunner = (*TxRunner)(nil)
	_ catalog.TxRunner        = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// run inicia la tx, ejecuta fn y hace Commit; cualquier error hace Rollback.
func (r *TxRunner) run(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return wrapErr("begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return wrapErr("commit transaction", err)
	}
	return nil
}

// RunSale cabecera y líneas de una venta en la misma transacción.
func (r *TxRunner) RunSale(ctx context.Context, fn func(sales repository.SaleRepository) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewSaleRepository(tx))
	})
}

// RunRestock cabecera e ítems de una nota de pedido en la misma transacción.
func (r *TxRunner) RunRestock(ctx context.Context, fn func(notes repository.RestockNoteRepository) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewRestockNoteRepository(tx))
	})
}

// RunCatalog importación masiva: lectura de nombres y COPY ven el mismo snapshot.
// El lock de tabla evita que un alta concurrente cuele un duplicado entre ambos pasos.
func (r *TxRunner) RunCatalog(ctx context.Context, fn func(products repository.ProductRepository) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `LOCK TABLE products IN SHARE ROW EXCLUSIVE MODE`); err != nil {
			return fmt.Errorf("lock products: %w", wrapErr("lock", err))
		}
		return fn(NewProductRepository(tx))
	})
}
