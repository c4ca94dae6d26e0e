package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pawanbhattarai/thehotelmountain-sub002/internal/application/consumption"
	"github.com/pawanbhattarai/thehotelmountain-sub002/internal/application/inventory"
	"github.com/pawanbhattarai/thehotelmountain-sub002/internal/application/procurement"
	"github.com/pawanbhattarai/thehotelmountain-sub002/internal/domain/repository"
)

// Ensure TxRunner implements the application tx ports.
var _ consumption.TxRunner = (*TxRunner)(nil)
var _ inventory.TxRunner = (*TxRunner)(nil)
var _ procurement.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback. Es la frontera todo-o-nada del motor de consumo y de
// los ajustes de inventario.
func (r *TxRunner) Run(ctx context.Context, fn func(
	lotRepo repository.CostLotRepository,
	consumptionRepo repository.ConsumptionRepository,
	itemRepo repository.StockItemRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	lotRepo := NewCostLotRepository(tx)
	consumptionRepo := NewConsumptionRepository(tx)
	itemRepo := NewStockItemRepository(tx)

	if err := fn(lotRepo, consumptionRepo, itemRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunReceiving inicia una transacción con los repos de recepción de órdenes
// de compra (cabecera bloqueada, lotes nuevos y agregado de stock en una
// sola tx).
func (r *TxRunner) RunReceiving(ctx context.Context, fn func(
	poRepo repository.PurchaseOrderRepository,
	lotRepo repository.CostLotRepository,
	itemRepo repository.StockItemRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	poRepo := NewPurchaseOrderRepository(tx)
	lotRepo := NewCostLotRepository(tx)
	itemRepo := NewStockItemRepository(tx)

	if err := fn(poRepo, lotRepo, itemRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
