package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pawanbhattarai/thehotelmountain-sub002/internal/domain"
)

// Origen de un lote de costo.
type LotSource string

const (
	LotSourcePurchase       LotSource = "purchase"
	LotSourceAdjustment     LotSource = "adjustment"
	LotSourceOpeningBalance LotSource = "opening_balance"
)

// Método de costeo con el que se debitan los lotes.
type CostingMethod string

const (
	MethodFIFO    CostingMethod = "fifo"
	MethodLIFO    CostingMethod = "lifo"
	MethodAverage CostingMethod = "average"
)

// ParseCostingMethod valida un método llegado por configuración o request.
func ParseCostingMethod(s string) (CostingMethod, error) {
	switch CostingMethod(s) {
	case MethodFIFO, MethodLIFO, MethodAverage:
		return CostingMethod(s), nil
	}
	return "", domain.ErrInvalidInput
}

// CostLot lote de adquisición de stock: registro inmutable de cantidad y
// costo unitario, con un contador mutable RemainingQuantity.
// Invariante: 0 <= RemainingQuantity <= Quantity. Los lotes jamás se borran;
// el consumo solo decrementa RemainingQuantity y la reversión lo restaura.
type CostLot struct {
	ID                string
	StockItemID       string
	BranchID          string
	Source            LotSource
	// ReferenceID referencia al origen (línea de orden de compra, ajuste...).
	ReferenceID       string
	Quantity          decimal.Decimal
	UnitCost          decimal.Decimal
	RemainingQuantity decimal.Decimal
	BatchNumber       string
	ExpiryDate        *time.Time
	CostingMethod     CostingMethod
	AcquiredAt        time.Time
	CreatedAt         time.Time
}

// IsExhausted indica si el lote ya no tiene remanente.
func (l *CostLot) IsExhausted() bool {
	return !l.RemainingQuantity.IsPositive()
}
