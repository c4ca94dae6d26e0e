package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pawanbhattarai/thehotelmountain-sub002/internal/domain/entity"
)

// CreateStockItemRequest body para POST /api/stock-items.
type CreateStockItemRequest struct {
	Name            string           `json:"name" validate:"required,max=200"`
	SKU             string           `json:"sku" validate:"omitempty,max=50"`
	CategoryID      string           `json:"category_id" validate:"required,uuid4"`
	UnitID          string           `json:"unit_id" validate:"required"`
	SupplierID      string           `json:"supplier_id" validate:"omitempty,uuid4"`
	MinimumStock    decimal.Decimal  `json:"minimum_stock"`
	MaximumStock    decimal.Decimal  `json:"maximum_stock"`
	ReorderLevel    *decimal.Decimal `json:"reorder_level,omitempty"`
	ReorderQuantity decimal.Decimal  `json:"reorder_quantity"`
	DefaultPrice    decimal.Decimal  `json:"default_price"`
	// OpeningStock opcional: crea un lote de saldo inicial a DefaultPrice.
	OpeningStock decimal.Decimal `json:"opening_stock"`
}

// UpdateStockItemRequest body para PUT /api/stock-items/:id.
// No permite tocar current_stock: ese agregado solo lo mueven recepciones,
// consumos y reversiones.
type UpdateStockItemRequest struct {
	Name            string           `json:"name" validate:"required,max=200"`
	CategoryID      string           `json:"category_id" validate:"required,uuid4"`
	SupplierID      string           `json:"supplier_id" validate:"omitempty,uuid4"`
	MinimumStock    decimal.Decimal  `json:"minimum_stock"`
	MaximumStock    decimal.Decimal  `json:"maximum_stock"`
	ReorderLevel    *decimal.Decimal `json:"reorder_level,omitempty"`
	ReorderQuantity decimal.Decimal  `json:"reorder_quantity"`
	DefaultPrice    decimal.Decimal  `json:"default_price"`
}

// StockItemResponse representación de un ítem en respuestas.
type StockItemResponse struct {
	ID              string           `json:"id"`
	BranchID        string           `json:"branch_id"`
	Name            string           `json:"name"`
	SKU             string           `json:"sku,omitempty"`
	CategoryID      string           `json:"category_id"`
	UnitID          string           `json:"unit_id"`
	SupplierID      string           `json:"supplier_id,omitempty"`
	CurrentStock    decimal.Decimal  `json:"current_stock"`
	MinimumStock    decimal.Decimal  `json:"minimum_stock"`
	MaximumStock    decimal.Decimal  `json:"maximum_stock"`
	ReorderLevel    *decimal.Decimal `json:"reorder_level,omitempty"`
	ReorderQuantity decimal.Decimal  `json:"reorder_quantity"`
	DefaultPrice    decimal.Decimal  `json:"default_price"`
	IsActive        bool             `json:"is_active"`
	CreatedAt       time.Time        `json:"created_at"`
}

// StockItemFromEntity mapea la entidad a su respuesta HTTP.
func StockItemFromEntity(it *entity.StockItem) StockItemResponse {
	return StockItemResponse{
		ID:              it.ID,
		BranchID:        it.BranchID,
		Name:            it.Name,
		SKU:             it.SKU,
		CategoryID:      it.CategoryID,
		UnitID:          it.UnitID,
		SupplierID:      it.SupplierID,
		CurrentStock:    it.CurrentStock,
		MinimumStock:    it.MinimumStock,
		MaximumStock:    it.MaximumStock,
		ReorderLevel:    it.ReorderLevel,
		ReorderQuantity: it.ReorderQuantity,
		DefaultPrice:    it.DefaultPrice,
		IsActive:        it.IsActive,
		CreatedAt:       it.CreatedAt,
	}
}

// CreateMeasuringUnitRequest body para POST /api/units.
type CreateMeasuringUnitRequest struct {
	Name             string          `json:"name" validate:"required,max=50"`
	Symbol           string          `json:"symbol" validate:"required,max=10"`
	BaseUnitID       *string         `json:"base_unit_id,omitempty"`
	ConversionFactor decimal.Decimal `json:"conversion_factor"`
}

// CreateCategoryRequest body para POST /api/categories.
type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"omitempty,max=500"`
}

// CreateSupplierRequest body para POST /api/suppliers.
type CreateSupplierRequest struct {
	Name          string `json:"name" validate:"required,max=200"`
	ContactPerson string `json:"contact_person" validate:"omitempty,max=100"`
	Email         string `json:"email" validate:"omitempty,email"`
	Phone         string `json:"phone" validate:"omitempty,max=30"`
	Address       string `json:"address" validate:"omitempty,max=300"`
}
