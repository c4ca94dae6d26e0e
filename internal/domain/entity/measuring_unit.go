package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pawanbhattarai/thehotelmountain-sub002/internal/domain"
)

// MeasuringUnit unidad de medida del catálogo (kg, g, l, ml, unidad...).
// Las unidades derivadas apuntan a su unidad base vía BaseUnitID con un
// factor de conversión: cantidad_en_base = cantidad * ConversionFactor.
// Una unidad base tiene BaseUnitID nil y factor 1.
type MeasuringUnit struct {
	ID               string
	Name             string
	Symbol           string
	BaseUnitID       *string
	ConversionFactor decimal.Decimal
	CreatedAt        time.Time
}

// FamilyID identifica la familia de la unidad (su unidad base).
func (u *MeasuringUnit) FamilyID() string {
	if u.BaseUnitID != nil {
		return *u.BaseUnitID
	}
	return u.ID
}

// ConvertQuantity convierte qty expresada en from a su equivalente en to.
// Falla con ErrInvalidInput si las unidades pertenecen a familias distintas
// (no se puede convertir litros a kilogramos) o si algún factor no es positivo.
func ConvertQuantity(qty decimal.Decimal, from, to *MeasuringUnit) (decimal.Decimal, error) {
	if from == nil || to == nil {
		return decimal.Zero, domain.ErrInvalidInput
	}
	if from.ID == to.ID {
		return qty, nil
	}
	if from.FamilyID() != to.FamilyID() {
		return decimal.Zero, domain.ErrInvalidInput
	}
	if !from.ConversionFactor.IsPositive() || !to.ConversionFactor.IsPositive() {
		return decimal.Zero, domain.ErrInvalidInput
	}
	// from -> base -> to
	return qty.Mul(from.ConversionFactor).Div(to.ConversionFactor), nil
}
