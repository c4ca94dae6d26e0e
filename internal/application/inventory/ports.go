package inventory

import (
	"context"

	"github.com/pawanbhattarai/thehotelmountain-sub002/internal/domain/repository"
)

// TxRunner transacción para ajustes de inventario: misma forma que la del
// motor de consumo (el adaptador de postgres satisface ambas).
type TxRunner interface {
	Run(ctx context.Context, fn func(
		lotRepo repository.CostLotRepository,
		consumptionRepo repository.ConsumptionRepository,
		itemRepo repository.StockItemRepository,
	) error) error
}
