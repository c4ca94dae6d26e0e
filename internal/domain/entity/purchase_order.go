package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de compra.
type POStatus string

const (
	POStatusDraft             POStatus = "draft"
	POStatusSent              POStatus = "sent"
	POStatusConfirmed         POStatus = "confirmed"
	POStatusPartiallyReceived POStatus = "partially_received"
	POStatusReceived          POStatus = "received"
	POStatusCancelled         POStatus = "cancelled"
)

// transiciones válidas del ciclo de vida de la orden.
// partially_received y received se derivan de las recepciones
// (RecomputeReceivingStatus), no de una transición manual.
var poTransitions = map[POStatus][]POStatus{
	POStatusDraft:             {POStatusSent, POStatusCancelled},
	POStatusSent:              {POStatusConfirmed, POStatusCancelled},
	POStatusConfirmed:         {POStatusPartiallyReceived, POStatusReceived, POStatusCancelled},
	POStatusPartiallyReceived: {POStatusReceived},
	POStatusReceived:          {},
	POStatusCancelled:         {},
}

// CanTransition valida si la orden puede pasar de su estado actual a target.
func (p *PurchaseOrder) CanTransition(target POStatus) bool {
	for _, s := range poTransitions[p.Status] {
		if s == target {
			return true
		}
	}
	return false
}

// PurchaseOrder cabecera de orden de compra a un proveedor.
type PurchaseOrder struct {
	ID          string
	OrderNumber string
	BranchID    string
	SupplierID  string
	Status      POStatus
	ExpectedAt  *time.Time
	Notes       string
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Items       []*PurchaseOrderItem
}

// PurchaseOrderItem línea de la orden. ReceivedQuantity nunca supera Quantity.
type PurchaseOrderItem struct {
	ID               string
	PurchaseOrderID  string
	StockItemID      string
	Quantity         decimal.Decimal
	UnitPrice        decimal.Decimal
	ReceivedQuantity decimal.Decimal
	UnitID           string
}

// PendingQuantity cantidad aún no recibida de la línea.
func (i *PurchaseOrderItem) PendingQuantity() decimal.Decimal {
	return i.Quantity.Sub(i.ReceivedQuantity)
}

// Subtotal de la línea sobre la cantidad ordenada.
func (i *PurchaseOrderItem) Subtotal() decimal.Decimal {
	return i.Quantity.Mul(i.UnitPrice)
}

// OrderedTotal total de la orden (suma de subtotales).
func (p *PurchaseOrder) OrderedTotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range p.Items {
		total = total.Add(it.Subtotal())
	}
	return total
}

// RecomputeReceivingStatus deriva el estado de recepción a partir de las
// líneas: received solo cuando toda línea está completa; partially_received
// si hay al menos una recepción; si no, conserva el estado actual.
// No toca órdenes canceladas.
func (p *PurchaseOrder) RecomputeReceivingStatus() {
	if p.Status == POStatusCancelled {
		return
	}
	allComplete := len(p.Items) > 0
	anyReceived := false
	for _, it := range p.Items {
		if it.ReceivedQuantity.IsPositive() {
			anyReceived = true
		}
		if !it.ReceivedQuantity.Equal(it.Quantity) {
			allComplete = false
		}
	}
	switch {
	case allComplete:
		p.Status = POStatusReceived
	case anyReceived:
		p.Status = POStatusPartiallyReceived
	}
}
