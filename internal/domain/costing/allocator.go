// Package costing implementa la política de costeo del inventario (servicio
// de dominio puro): dada una lista de lotes con remanente y una cantidad a
// debitar, decide de qué lotes se toma y a qué costo, según FIFO, LIFO o
// promedio ponderado. No muta los lotes ni toca la base de datos: el caso de
// uso aplica los decrementos con las asignaciones resultantes.
package costing

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/pawanbhattarai/thehotelmountain-sub002/internal/domain"
	"github.com/pawanbhattarai/thehotelmountain-sub002/internal/domain/entity"
)

// Allocation cantidad tomada de un lote y el costo unitario aplicado.
// LotID vacío representa un faltante permitido (stock negativo) costeado
// al precio de respaldo.
type Allocation struct {
	LotID    string
	Quantity decimal.Decimal
	UnitCost decimal.Decimal
}

// Result resultado de un débito: asignaciones ordenadas y costo total.
type Result struct {
	Allocations []Allocation
	TotalCost   decimal.Decimal
	// Shortfall cantidad no cubierta por lotes (solo con stock negativo permitido).
	Shortfall decimal.Decimal
}

// Allocate debita qty contra los lotes según method. Falla con
// ErrInsufficientStock si la suma de remanentes no alcanza, y con
// ErrInvalidInput si qty no es positiva.
func Allocate(lots []*entity.CostLot, qty decimal.Decimal, method entity.CostingMethod) (*Result, error) {
	return allocate(lots, qty, method, nil)
}

// AllocateAllowingShortfall debita qty permitiendo faltante: lo que no cubran
// los lotes se asigna sin lote al costo fallbackCost (precio de respaldo del
// ítem). Usado cuando la política de stock negativo lo permite.
func AllocateAllowingShortfall(lots []*entity.CostLot, qty decimal.Decimal, method entity.CostingMethod, fallbackCost decimal.Decimal) (*Result, error) {
	return allocate(lots, qty, method, &fallbackCost)
}

func allocate(lots []*entity.CostLot, qty decimal.Decimal, method entity.CostingMethod, fallbackCost *decimal.Decimal) (*Result, error) {
	if !qty.IsPositive() {
		return nil, domain.ErrInvalidInput
	}

	available := decimal.Zero
	ordered := make([]*entity.CostLot, 0, len(lots))
	for _, l := range lots {
		if l.RemainingQuantity.IsPositive() {
			ordered = append(ordered, l)
			available = available.Add(l.RemainingQuantity)
		}
	}
	if available.LessThan(qty) && fallbackCost == nil {
		return nil, domain.ErrInsufficientStock
	}

	// FIFO y promedio consumen del lote más antiguo; LIFO del más reciente.
	// Desempate por ID para que el orden sea determinista ante timestamps iguales.
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if !a.AcquiredAt.Equal(b.AcquiredAt) {
			if method == entity.MethodLIFO {
				return a.AcquiredAt.After(b.AcquiredAt)
			}
			return a.AcquiredAt.Before(b.AcquiredAt)
		}
		if method == entity.MethodLIFO {
			return a.ID > b.ID
		}
		return a.ID < b.ID
	})

	// Promedio ponderado: un único costo unitario sobre todo el remanente al
	// momento del débito. El orden de lotes solo decide qué remanentes se
	// decrementan, no el costo.
	var avgCost decimal.Decimal
	if method == entity.MethodAverage && available.IsPositive() {
		sum := decimal.Zero
		for _, l := range ordered {
			sum = sum.Add(l.RemainingQuantity.Mul(l.UnitCost))
		}
		avgCost = sum.Div(available)
	}

	res := &Result{TotalCost: decimal.Zero, Shortfall: decimal.Zero}
	left := qty
	for _, l := range ordered {
		if !left.IsPositive() {
			break
		}
		take := decimal.Min(l.RemainingQuantity, left)
		unitCost := l.UnitCost
		if method == entity.MethodAverage {
			unitCost = avgCost
		}
		res.Allocations = append(res.Allocations, Allocation{
			LotID:    l.ID,
			Quantity: take,
			UnitCost: unitCost,
		})
		res.TotalCost = res.TotalCost.Add(take.Mul(unitCost))
		left = left.Sub(take)
	}

	if left.IsPositive() {
		// Faltante: solo alcanzable con fallbackCost definido.
		res.Allocations = append(res.Allocations, Allocation{
			Quantity: left,
			UnitCost: *fallbackCost,
		})
		res.TotalCost = res.TotalCost.Add(left.Mul(*fallbackCost))
		res.Shortfall = left
	}
	return res, nil
}

// WeightedAverageCost costo promedio ponderado del remanente actual de los
// lotes; cero si no hay remanente. Expuesto para reportes de valoración.
func WeightedAverageCost(lots []*entity.CostLot) decimal.Decimal {
	qty := decimal.Zero
	sum := decimal.Zero
	for _, l := range lots {
		if l.RemainingQuantity.IsPositive() {
			qty = qty.Add(l.RemainingQuantity)
			sum = sum.Add(l.RemainingQuantity.Mul(l.UnitCost))
		}
	}
	if !qty.IsPositive() {
		return decimal.Zero
	}
	return sum.Div(qty)
}
