package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/pawanbhattarai/thehotelmountain-sub002/internal/domain/entity"
)

// StockItemRepository puerto de persistencia para StockItem (DIP).
// AdjustCurrentStock es el único camino de escritura del agregado
// current_stock: se ejecuta dentro de la misma transacción que la mutación
// de lotes/consumos que lo causa.
type StockItemRepository interface {
	Create(ctx context.Context, item *entity.StockItem) error
	GetByID(ctx context.Context, id string) (*entity.StockItem, error)
	ListByBranch(ctx context.Context, branchID string, limit, offset int) ([]*entity.StockItem, error)
	Update(ctx context.Context, item *entity.StockItem) error
	Deactivate(ctx context.Context, id string) error
	// AdjustCurrentStock suma delta (positivo o negativo) de forma atómica.
	AdjustCurrentStock(ctx context.Context, itemID string, delta decimal.Decimal) error
	// ListLowStock ítems activos con current_stock <= COALESCE(reorder_level, minimum_stock).
	ListLowStock(ctx context.Context, branchID string) ([]*entity.StockItem, error)
}
