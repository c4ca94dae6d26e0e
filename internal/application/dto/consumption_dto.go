package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// IngredientOverrideRequest ingrediente explícito que sustituye la receta
// del plato (modificadores de orden, sustituciones de cocina).
type IngredientOverrideRequest struct {
	StockItemID string          `json:"stock_item_id" validate:"required,uuid4"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitID      string          `json:"unit_id" validate:"required"`
}

// RecordConsumptionRequest body para POST /api/consumptions.
// Lo invoca el subsistema de órdenes al finalizar un ítem de orden.
type RecordConsumptionRequest struct {
	DishID       string                      `json:"dish_id" validate:"omitempty,uuid4"`
	QuantitySold decimal.Decimal             `json:"quantity_sold"`
	OrderID      string                      `json:"order_id" validate:"omitempty,uuid4"`
	OrderItemID  string                      `json:"order_item_id" validate:"omitempty,uuid4"`
	Overrides    []IngredientOverrideRequest `json:"overrides,omitempty" validate:"omitempty,dive"`
}

// LotAllocationResponse asignación por lote dentro de un consumo.
type LotAllocationResponse struct {
	LotID    string          `json:"lot_id,omitempty"`
	Quantity decimal.Decimal `json:"quantity"`
	UnitCost decimal.Decimal `json:"unit_cost"`
}

// ConsumptionResponse registro de consumo en respuestas.
type ConsumptionResponse struct {
	ID            string                  `json:"id"`
	StockItemID   string                  `json:"stock_item_id"`
	DishID        string                  `json:"dish_id,omitempty"`
	OrderID       string                  `json:"order_id,omitempty"`
	OrderItemID   string                  `json:"order_item_id,omitempty"`
	Quantity      decimal.Decimal         `json:"quantity"`
	UnitCost      decimal.Decimal         `json:"unit_cost"`
	TotalCost     decimal.Decimal         `json:"total_cost"`
	CostingMethod string                  `json:"costing_method"`
	ConsumedAt    time.Time               `json:"consumed_at"`
	Allocations   []LotAllocationResponse `json:"allocations,omitempty"`
}
