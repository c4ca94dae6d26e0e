package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/pawanbhattarai/thehotelmountain-sub002/internal/domain/entity"
)

// StockAggregateRow fila de conciliación: agregado materializado vs. suma
// real de remanentes de lotes para un ítem.
type StockAggregateRow struct {
	StockItemID  string
	ItemName     string
	CurrentStock decimal.Decimal
	LotRemaining decimal.Decimal
}

// CostLotRepository puerto de persistencia para lotes de costo.
// Los lotes son append-only: nunca se borran, solo se decrementa (consumo)
// o se restaura (reversión) su remanente.
type CostLotRepository interface {
	Create(ctx context.Context, lot *entity.CostLot) error
	GetByID(ctx context.Context, id string) (*entity.CostLot, error)
	// ListByItem historial de lotes del ítem, más reciente primero.
	ListByItem(ctx context.Context, stockItemID string, limit, offset int) ([]*entity.CostLot, error)
	// ListAvailableForUpdate lotes con remanente > 0 bloqueados con
	// SELECT FOR UPDATE, ordenados por fecha de adquisición (ascendente si
	// oldestFirst). El bloqueo serializa débitos concurrentes sobre el ítem.
	ListAvailableForUpdate(ctx context.Context, stockItemID string, oldestFirst bool) ([]*entity.CostLot, error)
	// DecrementRemaining resta qty del remanente; falla si lo dejaría negativo.
	DecrementRemaining(ctx context.Context, lotID string, qty decimal.Decimal) error
	// CreditRemaining devuelve qty al remanente (reversión); falla con
	// ErrReversalMismatch si superaría la cantidad original del lote.
	CreditRemaining(ctx context.Context, lotID string, qty decimal.Decimal) error
	SumRemaining(ctx context.Context, stockItemID string) (decimal.Decimal, error)
	// AggregateSnapshot current_stock vs Σ remanente por ítem de la sucursal.
	AggregateSnapshot(ctx context.Context, branchID string) ([]StockAggregateRow, error)
}
