package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockItem ítem de inventario de una sucursal (ingrediente o insumo).
// CurrentStock es un agregado materializado: debe ser igual a la suma de
// RemainingQuantity de sus lotes activos (ver caso de uso de conciliación).
// Se muta únicamente vía recepciones, consumos y reversiones; nunca se
// escribe directo desde un CRUD.
type StockItem struct {
	ID              string
	BranchID        string
	Name            string
	SKU             string
	CategoryID      string
	UnitID          string
	SupplierID      string
	CurrentStock    decimal.Decimal
	MinimumStock    decimal.Decimal
	MaximumStock    decimal.Decimal
	ReorderLevel    *decimal.Decimal
	ReorderQuantity decimal.Decimal
	// DefaultPrice costo unitario de respaldo cuando no existen lotes
	// (p. ej. venta con stock negativo permitido).
	DefaultPrice decimal.Decimal
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ReorderThreshold umbral de reposición: ReorderLevel si está definido,
// si no MinimumStock.
func (s *StockItem) ReorderThreshold() decimal.Decimal {
	if s.ReorderLevel != nil {
		return *s.ReorderLevel
	}
	return s.MinimumStock
}

// IsLowStock indica si el ítem está en o por debajo de su umbral de reposición.
func (s *StockItem) IsLowStock() bool {
	return s.CurrentStock.LessThanOrEqual(s.ReorderThreshold())
}
