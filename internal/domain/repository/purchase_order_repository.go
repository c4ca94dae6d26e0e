package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/pawanbhattarai/thehotelmountain-sub002/internal/domain/entity"
)

// PurchaseOrderRepository puerto de persistencia para órdenes de compra.
type PurchaseOrderRepository interface {
	// Create inserta cabecera y líneas.
	Create(ctx context.Context, po *entity.PurchaseOrder) error
	GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	// GetByIDForUpdate bloquea la cabecera (SELECT FOR UPDATE) para la
	// recepción: dos recepciones concurrentes sobre la misma orden se
	// serializan aquí.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	ListByBranch(ctx context.Context, branchID string, status entity.POStatus, limit, offset int) ([]*entity.PurchaseOrder, error)
	UpdateStatus(ctx context.Context, id string, status entity.POStatus) error
	UpdateItemReceived(ctx context.Context, itemID string, receivedQuantity decimal.Decimal) error
	// NextOrderNumber número consecutivo por sucursal (PO-000123).
	NextOrderNumber(ctx context.Context, branchID string) (string, error)
}
