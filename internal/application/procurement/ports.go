package procurement

import (
	"context"

	"github.com/pawanbhattarai/thehotelmountain-sub002/internal/domain/entity"
	"github.com/pawanbhattarai/thehotelmountain-sub002/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción con los
// repositorios de recepción atados a esa tx. Garantiza que cada lote de
// recepción sea atómico: o entran todas las líneas o ninguna.
type TxRunner interface {
	RunReceiving(ctx context.Context, fn func(
		poRepo repository.PurchaseOrderRepository,
		lotRepo repository.CostLotRepository,
		itemRepo repository.StockItemRepository,
	) error) error
}

// PurchaseOrderPDFGenerator genera la representación en PDF de una orden de
// compra para enviarla al proveedor.
type PurchaseOrderPDFGenerator interface {
	GeneratePurchaseOrderPDF(ctx context.Context, po *entity.PurchaseOrder, supplier *entity.Supplier, itemNames map[string]string) ([]byte, error)
}
