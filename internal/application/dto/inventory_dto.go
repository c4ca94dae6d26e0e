package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LowStockItemDTO ítem en o por debajo de su umbral de reposición.
type LowStockItemDTO struct {
	StockItemID     string          `json:"stock_item_id"`
	Name            string          `json:"name"`
	SKU             string          `json:"sku,omitempty"`
	CurrentStock    decimal.Decimal `json:"current_stock"`
	ReorderLevel    decimal.Decimal `json:"reorder_level"`
	ReorderQuantity decimal.Decimal `json:"reorder_quantity"`
	SupplierID      string          `json:"supplier_id,omitempty"`
}

// CostLotDTO lote en el historial de valoración de un ítem.
type CostLotDTO struct {
	ID                string          `json:"id"`
	Source            string          `json:"source"`
	Quantity          decimal.Decimal `json:"quantity"`
	UnitCost          decimal.Decimal `json:"unit_cost"`
	RemainingQuantity decimal.Decimal `json:"remaining_quantity"`
	BatchNumber       string          `json:"batch_number,omitempty"`
	ExpiryDate        *time.Time      `json:"expiry_date,omitempty"`
	AcquiredAt        time.Time       `json:"acquired_at"`
}

// RegisterAdjustmentRequest body para POST /api/inventory/adjustments.
// Cantidad positiva crea un lote de ajuste; negativa debita lotes como un
// consumo sin orden asociada (merma, rotura, conteo físico).
type RegisterAdjustmentRequest struct {
	StockItemID string           `json:"stock_item_id" validate:"required,uuid4"`
	Quantity    decimal.Decimal  `json:"quantity"`
	UnitCost    *decimal.Decimal `json:"unit_cost,omitempty"`
	Reason      string           `json:"reason" validate:"required,max=300"`
}

// ReconciliationRowDTO desviación detectada entre agregado y lotes.
type ReconciliationRowDTO struct {
	StockItemID  string          `json:"stock_item_id"`
	Name         string          `json:"name"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	LotRemaining decimal.Decimal `json:"lot_remaining"`
	Drift        decimal.Decimal `json:"drift"`
}

// ReconciliationReportDTO resultado de la verificación de consistencia.
type ReconciliationReportDTO struct {
	BranchID     string                 `json:"branch_id"`
	CheckedItems int                    `json:"checked_items"`
	DriftedItems []ReconciliationRowDTO `json:"drifted_items"`
	CheckedAt    time.Time              `json:"checked_at"`
}
