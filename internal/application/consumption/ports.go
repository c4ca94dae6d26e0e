package consumption

import (
	"context"

	"github.com/pawanbhattarai/thehotelmountain-sub002/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza el todo-o-nada del motor de
// consumo: o se debitan todos los ingredientes del plato o ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		lotRepo repository.CostLotRepository,
		consumptionRepo repository.ConsumptionRepository,
		itemRepo repository.StockItemRepository,
	) error) error
}
