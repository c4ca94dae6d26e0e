package procurement

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pawanbhattarai/thehotelmountain-sub002/internal/domain"
	"github.com/pawanbhattarai/thehotelmountain-sub002/internal/domain/entity"
	"github.com/pawanbhattarai/thehotelmountain-sub002/internal/domain/repository"
	"github.com/pawanbhattarai/thehotelmountain-sub002/pkg/logger"
	"github.com/pawanbhattarai/thehotelmountain-sub002/pkg/metrics"
)

// ProcurementUseCase libro de compras: órdenes a proveedores y su recepción.
// La recepción es la única puerta de entrada de lotes de costo al inventario
// (junto con ajustes y saldos iniciales).
type ProcurementUseCase struct {
	txRunner     TxRunner
	poRepo       repository.PurchaseOrderRepository
	supplierRepo repository.SupplierRepository
	itemRepo     repository.StockItemRepository
	pdfGen       PurchaseOrderPDFGenerator
	method       entity.CostingMethod
	log          *logger.Logger
}

// NewProcurementUseCase construye el caso de uso.
func NewProcurementUseCase(
	txRunner TxRunner,
	poRepo repository.PurchaseOrderRepository,
	supplierRepo repository.SupplierRepository,
	itemRepo repository.StockItemRepository,
	pdfGen PurchaseOrderPDFGenerator,
	method entity.CostingMethod,
	log *logger.Logger,
) *ProcurementUseCase {
	return &ProcurementUseCase{
		txRunner:     txRunner,
		poRepo:       poRepo,
		supplierRepo: supplierRepo,
		itemRepo:     itemRepo,
		pdfGen:       pdfGen,
		method:       method,
		log:          log,
	}
}

// POItemInput línea al crear una orden de compra.
type POItemInput struct {
	StockItemID string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
}

// CreatePOInput entrada para CreatePurchaseOrder.
type CreatePOInput struct {
	BranchID   string
	SupplierID string
	ExpectedAt *time.Time
	Notes      string
	CreatedBy  string
	Items      []POItemInput
}

// CreatePurchaseOrder crea una orden en borrador. Falla con ErrInvalidInput
// si alguna cantidad no es positiva o algún precio es negativo.
func (uc *ProcurementUseCase) CreatePurchaseOrder(ctx context.Context, input CreatePOInput) (*entity.PurchaseOrder, error) {
	if input.BranchID == "" || input.SupplierID == "" || len(input.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	supplier, err := uc.supplierRepo.GetByID(ctx, input.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier.BranchID != input.BranchID {
		return nil, domain.ErrForbidden
	}

	poID := uuid.New().String()
	now := time.Now()
	items := make([]*entity.PurchaseOrderItem, 0, len(input.Items))
	for _, in := range input.Items {
		if !in.Quantity.IsPositive() || in.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		item, err := uc.itemRepo.GetByID(ctx, in.StockItemID)
		if err != nil {
			return nil, err
		}
		if item.BranchID != input.BranchID {
			return nil, domain.ErrForbidden
		}
		items = append(items, &entity.PurchaseOrderItem{
			ID:               uuid.New().String(),
			PurchaseOrderID:  poID,
			StockItemID:      item.ID,
			Quantity:         in.Quantity,
			UnitPrice:        in.UnitPrice,
			ReceivedQuantity: decimal.Zero,
			UnitID:           item.UnitID,
		})
	}

	orderNumber, err := uc.poRepo.NextOrderNumber(ctx, input.BranchID)
	if err != nil {
		return nil, err
	}
	po := &entity.PurchaseOrder{
		ID:          poID,
		OrderNumber: orderNumber,
		BranchID:    input.BranchID,
		SupplierID:  input.SupplierID,
		Status:      entity.POStatusDraft,
		ExpectedAt:  input.ExpectedAt,
		Notes:       input.Notes,
		CreatedBy:   input.CreatedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
		Items:       items,
	}
	if err := uc.poRepo.Create(ctx, po); err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("po_id", po.ID).
		Str("order_number", po.OrderNumber).
		Int("items", len(po.Items)).
		Msg("orden de compra creada")
	return po, nil
}

// TransitionStatus aplica una transición manual del ciclo de vida
// (draft→sent→confirmed, o cancelación). Una orden con recepciones ya no se
// cancela: la mercancía entró al inventario.
func (uc *ProcurementUseCase) TransitionStatus(ctx context.Context, poID string, target entity.POStatus) error {
	po, err := uc.poRepo.GetByID(ctx, poID)
	if err != nil {
		return err
	}
	if !po.CanTransition(target) {
		return domain.ErrConflict
	}
	if target == entity.POStatusCancelled {
		for _, it := range po.Items {
			if it.ReceivedQuantity.IsPositive() {
				return domain.ErrConflict
			}
		}
	}
	return uc.poRepo.UpdateStatus(ctx, poID, target)
}

// ReceiptLine una línea de recepción contra una orden confirmada.
type ReceiptLine struct {
	POItemID    string
	Quantity    decimal.Decimal
	UnitCost    decimal.Decimal
	BatchNumber string
	ExpiryDate  *time.Time
}

// ReceiveItems registra una recepción contra la orden: por cada línea
// incrementa received_quantity (ErrOverReceipt si supera lo ordenado), crea
// un lote de costo con remanente = cantidad y suma al agregado del ítem.
// Todo dentro de una transacción con la cabecera bloqueada; al final se
// recalcula el estado (partially_received / received).
func (uc *ProcurementUseCase) ReceiveItems(ctx context.Context, poID string, receipts []ReceiptLine) (*entity.PurchaseOrder, error) {
	if poID == "" || len(receipts) == 0 {
		return nil, domain.ErrInvalidInput
	}

	var received *entity.PurchaseOrder
	err := uc.txRunner.RunReceiving(ctx, func(
		poRepo repository.PurchaseOrderRepository,
		lotRepo repository.CostLotRepository,
		itemRepo repository.StockItemRepository,
	) error {
		po, err := poRepo.GetByIDForUpdate(ctx, poID)
		if err != nil {
			return err
		}
		switch po.Status {
		case entity.POStatusSent, entity.POStatusConfirmed, entity.POStatusPartiallyReceived:
			// recibible
		case entity.POStatusReceived:
			return domain.ErrOverReceipt
		default:
			return domain.ErrConflict
		}

		itemsByID := make(map[string]*entity.PurchaseOrderItem, len(po.Items))
		for _, it := range po.Items {
			itemsByID[it.ID] = it
		}

		now := time.Now()
		for _, r := range receipts {
			poItem, ok := itemsByID[r.POItemID]
			if !ok {
				return domain.ErrNotFound
			}
			if !r.Quantity.IsPositive() || r.UnitCost.IsNegative() {
				return domain.ErrInvalidInput
			}
			newReceived := poItem.ReceivedQuantity.Add(r.Quantity)
			if newReceived.GreaterThan(poItem.Quantity) {
				return domain.ErrOverReceipt
			}
			poItem.ReceivedQuantity = newReceived
			if err := poRepo.UpdateItemReceived(ctx, poItem.ID, newReceived); err != nil {
				return err
			}

			lot := &entity.CostLot{
				ID:                uuid.New().String(),
				StockItemID:       poItem.StockItemID,
				BranchID:          po.BranchID,
				Source:            entity.LotSourcePurchase,
				ReferenceID:       poItem.ID,
				Quantity:          r.Quantity,
				UnitCost:          r.UnitCost,
				RemainingQuantity: r.Quantity,
				BatchNumber:       r.BatchNumber,
				ExpiryDate:        r.ExpiryDate,
				CostingMethod:     uc.method,
				AcquiredAt:        now,
				CreatedAt:         now,
			}
			if err := lotRepo.Create(ctx, lot); err != nil {
				return err
			}
			if err := itemRepo.AdjustCurrentStock(ctx, poItem.StockItemID, r.Quantity); err != nil {
				return err
			}
			metrics.LotsReceivedTotal.Inc()
		}

		po.RecomputeReceivingStatus()
		if err := poRepo.UpdateStatus(ctx, po.ID, po.Status); err != nil {
			return err
		}
		received = po
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("po_id", poID).
		Str("status", string(received.Status)).
		Int("lines", len(receipts)).
		Msg("recepción registrada")
	return received, nil
}

// GetPurchaseOrder consulta de lectura de una orden con sus líneas.
func (uc *ProcurementUseCase) GetPurchaseOrder(ctx context.Context, poID string) (*entity.PurchaseOrder, error) {
	return uc.poRepo.GetByID(ctx, poID)
}

// ListPurchaseOrders listado por sucursal, opcionalmente filtrado por estado.
func (uc *ProcurementUseCase) ListPurchaseOrders(ctx context.Context, branchID string, status entity.POStatus, limit, offset int) ([]*entity.PurchaseOrder, error) {
	return uc.poRepo.ListByBranch(ctx, branchID, status, limit, offset)
}

// GeneratePDF produce el PDF de la orden para enviarla al proveedor.
func (uc *ProcurementUseCase) GeneratePDF(ctx context.Context, poID string) ([]byte, error) {
	po, err := uc.poRepo.GetByID(ctx, poID)
	if err != nil {
		return nil, err
	}
	supplier, err := uc.supplierRepo.GetByID(ctx, po.SupplierID)
	if err != nil {
		return nil, err
	}
	itemNames := make(map[string]string, len(po.Items))
	for _, it := range po.Items {
		item, err := uc.itemRepo.GetByID(ctx, it.StockItemID)
		if err != nil {
			return nil, err
		}
		itemNames[it.StockItemID] = item.Name
	}
	return uc.pdfGen.GeneratePurchaseOrderPDF(ctx, po, supplier, itemNames)
}
