package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ConsumptionRecord consumo de un ítem de stock causado por la venta de un
// plato (o por un ajuste negativo). Guarda el costo calculado al momento del
// débito y, crítico para la reversión, las asignaciones exactas por lote:
// revertir restaura lo que se tomó, nunca recalcula FIFO/LIFO.
type ConsumptionRecord struct {
	ID          string
	StockItemID string
	BranchID    string
	OrderID     string
	OrderItemID string
	DishID      string
	Quantity    decimal.Decimal
	// UnitCost costo unitario promedio del débito (TotalCost / Quantity).
	UnitCost      decimal.Decimal
	TotalCost     decimal.Decimal
	CostingMethod CostingMethod
	ConsumedAt    time.Time
	CreatedBy     string
	CreatedAt     time.Time
	Allocations   []*LotAllocation
}

// LotAllocation cantidad tomada de un lote concreto para un consumo.
// Invariante: la suma de Quantity de las asignaciones de un registro es igual
// a su ConsumptionRecord.Quantity. LotID vacío marca un faltante cubierto con
// stock negativo, costeado al precio de respaldo del ítem.
type LotAllocation struct {
	ID            string
	ConsumptionID string
	LotID         string
	Quantity      decimal.Decimal
	UnitCost      decimal.Decimal
}
