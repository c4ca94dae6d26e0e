package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOrderItemRequest línea al crear una orden de compra.
type PurchaseOrderItemRequest struct {
	StockItemID string          `json:"stock_item_id" validate:"required,uuid4"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// CreatePurchaseOrderRequest body para POST /api/purchase-orders.
type CreatePurchaseOrderRequest struct {
	SupplierID string                     `json:"supplier_id" validate:"required,uuid4"`
	ExpectedAt *time.Time                 `json:"expected_at,omitempty"`
	Notes      string                     `json:"notes" validate:"omitempty,max=500"`
	Items      []PurchaseOrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// TransitionPORequest body para POST /api/purchase-orders/:id/status.
type TransitionPORequest struct {
	Status string `json:"status" validate:"required,oneof=sent confirmed cancelled"`
}

// ReceiptLineRequest una línea de recepción contra una orden.
type ReceiptLineRequest struct {
	POItemID    string          `json:"po_item_id" validate:"required,uuid4"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	BatchNumber string          `json:"batch_number" validate:"omitempty,max=100"`
	ExpiryDate  *time.Time      `json:"expiry_date,omitempty"`
}

// ReceiveItemsRequest body para POST /api/purchase-orders/:id/receive.
// La recepción es atómica: o entran todas las líneas o ninguna.
type ReceiveItemsRequest struct {
	Receipts []ReceiptLineRequest `json:"receipts" validate:"required,min=1,dive"`
}

// PurchaseOrderItemResponse línea en respuestas de órdenes.
type PurchaseOrderItemResponse struct {
	ID               string          `json:"id"`
	StockItemID      string          `json:"stock_item_id"`
	Quantity         decimal.Decimal `json:"quantity"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	ReceivedQuantity decimal.Decimal `json:"received_quantity"`
}

// PurchaseOrderResponse orden de compra en respuestas.
type PurchaseOrderResponse struct {
	ID          string                      `json:"id"`
	OrderNumber string                      `json:"order_number"`
	BranchID    string                      `json:"branch_id"`
	SupplierID  string                      `json:"supplier_id"`
	Status      string                      `json:"status"`
	ExpectedAt  *time.Time                  `json:"expected_at,omitempty"`
	Notes       string                      `json:"notes,omitempty"`
	Total       decimal.Decimal             `json:"total"`
	Items       []PurchaseOrderItemResponse `json:"items"`
	CreatedAt   time.Time                   `json:"created_at"`
}
