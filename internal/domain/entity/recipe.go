package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecipeLine línea de receta: cuánto consume un plato de un ítem de stock
// por unidad vendida. La unidad de la línea debe ser convertible a la unidad
// del ítem (misma familia en el catálogo de unidades).
// Editar o borrar la receta no reescribe consumos pasados.
type RecipeLine struct {
	ID          string
	DishID      string
	StockItemID string
	Quantity    decimal.Decimal
	UnitID      string
	// Cost snapshot opcional del costo unitario al momento de definir la
	// receta; informativo, el costo real sale de los lotes al consumir.
	Cost      *decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}
