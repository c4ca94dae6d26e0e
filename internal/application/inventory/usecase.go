package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pawanbhattarai/thehotelmountain-sub002/internal/application/dto"
	"github.com/pawanbhattarai/thehotelmountain-sub002/internal/domain"
	"github.com/pawanbhattarai/thehotelmountain-sub002/internal/domain/costing"
	"github.com/pawanbhattarai/thehotelmountain-sub002/internal/domain/entity"
	"github.com/pawanbhattarai/thehotelmountain-sub002/internal/domain/repository"
	"github.com/pawanbhattarai/thehotelmountain-sub002/pkg/logger"
	"github.com/pawanbhattarai/thehotelmountain-sub002/pkg/metrics"
)

// InventoryUseCase lado de lectura del inventario (alertas de bajo stock,
// historiales) más los ajustes manuales y la conciliación agregado/lotes.
type InventoryUseCase struct {
	txRunner           TxRunner
	itemRepo           repository.StockItemRepository
	lotRepo            repository.CostLotRepository
	consumptionRepo    repository.ConsumptionRepository
	method             entity.CostingMethod
	allowNegativeStock bool
	log                *logger.Logger
}

// NewInventoryUseCase construye el caso de uso.
func NewInventoryUseCase(
	txRunner TxRunner,
	itemRepo repository.StockItemRepository,
	lotRepo repository.CostLotRepository,
	consumptionRepo repository.ConsumptionRepository,
	method entity.CostingMethod,
	allowNegativeStock bool,
	log *logger.Logger,
) *InventoryUseCase {
	return &InventoryUseCase{
		txRunner:           txRunner,
		itemRepo:           itemRepo,
		lotRepo:            lotRepo,
		consumptionRepo:    consumptionRepo,
		method:             method,
		allowNegativeStock: allowNegativeStock,
		log:                log,
	}
}

// ListLowStock ítems activos en o por debajo de su umbral de reposición.
// Consulta pura de lectura, recalculada bajo demanda.
func (uc *InventoryUseCase) ListLowStock(ctx context.Context, branchID string) ([]dto.LowStockItemDTO, error) {
	items, err := uc.itemRepo.ListLowStock(ctx, branchID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LowStockItemDTO, 0, len(items))
	for _, it := range items {
		out = append(out, dto.LowStockItemDTO{
			StockItemID:     it.ID,
			Name:            it.Name,
			SKU:             it.SKU,
			CurrentStock:    it.CurrentStock,
			ReorderLevel:    it.ReorderThreshold(),
			ReorderQuantity: it.ReorderQuantity,
			SupplierID:      it.SupplierID,
		})
	}
	return out, nil
}

// LotHistory historial de lotes de un ítem, más reciente primero.
func (uc *InventoryUseCase) LotHistory(ctx context.Context, stockItemID string, limit, offset int) ([]*entity.CostLot, error) {
	return uc.lotRepo.ListByItem(ctx, stockItemID, limit, offset)
}

// ConsumptionHistory historial de consumos de un ítem.
func (uc *InventoryUseCase) ConsumptionHistory(ctx context.Context, stockItemID string, limit, offset int) ([]*entity.ConsumptionRecord, error) {
	return uc.consumptionRepo.ListByItem(ctx, stockItemID, limit, offset)
}

// ConsumptionsByOrder consumos causados por una orden de venta, con sus
// asignaciones; lo usa el subsistema de órdenes para anular venta por venta.
func (uc *InventoryUseCase) ConsumptionsByOrder(ctx context.Context, orderID string) ([]*entity.ConsumptionRecord, error) {
	if orderID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.consumptionRepo.ListByOrder(ctx, orderID)
}

// RegisterOpeningBalance crea el lote de saldo inicial de un ítem recién
// incorporado al catálogo.
func (uc *InventoryUseCase) RegisterOpeningBalance(ctx context.Context, itemID string, qty, unitCost decimal.Decimal, createdBy string) error {
	if !qty.IsPositive() || unitCost.IsNegative() {
		return domain.ErrInvalidInput
	}
	item, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return err
	}
	return uc.txRunner.Run(ctx, func(
		lotRepo repository.CostLotRepository,
		_ repository.ConsumptionRepository,
		itemRepo repository.StockItemRepository,
	) error {
		now := time.Now()
		lot := &entity.CostLot{
			ID:                uuid.New().String(),
			StockItemID:       item.ID,
			BranchID:          item.BranchID,
			Source:            entity.LotSourceOpeningBalance,
			Quantity:          qty,
			UnitCost:          unitCost,
			RemainingQuantity: qty,
			CostingMethod:     uc.method,
			AcquiredAt:        now,
			CreatedAt:         now,
		}
		if err := lotRepo.Create(ctx, lot); err != nil {
			return err
		}
		return itemRepo.AdjustCurrentStock(ctx, item.ID, qty)
	})
}

// RegisterAdjustment ajuste manual: cantidad positiva crea un lote de ajuste
// (al costo dado o al promedio actual); negativa debita lotes como un consumo
// sin orden asociada (merma, rotura, diferencia de conteo).
func (uc *InventoryUseCase) RegisterAdjustment(ctx context.Context, input dto.RegisterAdjustmentRequest, createdBy string) error {
	if input.Quantity.IsZero() {
		return domain.ErrInvalidInput
	}
	item, err := uc.itemRepo.GetByID(ctx, input.StockItemID)
	if err != nil {
		return err
	}

	return uc.txRunner.Run(ctx, func(
		lotRepo repository.CostLotRepository,
		consumptionRepo repository.ConsumptionRepository,
		itemRepo repository.StockItemRepository,
	) error {
		now := time.Now()
		if input.Quantity.IsPositive() {
			unitCost := item.DefaultPrice
			if input.UnitCost != nil {
				unitCost = *input.UnitCost
			}
			if unitCost.IsNegative() {
				return domain.ErrInvalidInput
			}
			lot := &entity.CostLot{
				ID:                uuid.New().String(),
				StockItemID:       item.ID,
				BranchID:          item.BranchID,
				Source:            entity.LotSourceAdjustment,
				ReferenceID:       input.Reason,
				Quantity:          input.Quantity,
				UnitCost:          unitCost,
				RemainingQuantity: input.Quantity,
				CostingMethod:     uc.method,
				AcquiredAt:        now,
				CreatedAt:         now,
			}
			if err := lotRepo.Create(ctx, lot); err != nil {
				return err
			}
			return itemRepo.AdjustCurrentStock(ctx, item.ID, input.Quantity)
		}

		// Ajuste negativo: debitar lotes con la misma política del consumo.
		qty := input.Quantity.Neg()
		lots, err := lotRepo.ListAvailableForUpdate(ctx, item.ID, uc.method != entity.MethodLIFO)
		if err != nil {
			return err
		}
		res, err := costing.Allocate(lots, qty, uc.method)
		if err != nil {
			return err
		}
		recID := uuid.New().String()
		allocations := make([]*entity.LotAllocation, 0, len(res.Allocations))
		for _, a := range res.Allocations {
			if err := lotRepo.DecrementRemaining(ctx, a.LotID, a.Quantity); err != nil {
				return err
			}
			allocations = append(allocations, &entity.LotAllocation{
				ID:            uuid.New().String(),
				ConsumptionID: recID,
				LotID:         a.LotID,
				Quantity:      a.Quantity,
				UnitCost:      a.UnitCost,
			})
		}
		rec := &entity.ConsumptionRecord{
			ID:            recID,
			StockItemID:   item.ID,
			BranchID:      item.BranchID,
			Quantity:      qty,
			UnitCost:      res.TotalCost.Div(qty),
			TotalCost:     res.TotalCost,
			CostingMethod: uc.method,
			ConsumedAt:    now,
			CreatedBy:     createdBy,
			CreatedAt:     now,
			Allocations:   allocations,
		}
		if err := consumptionRepo.Create(ctx, rec); err != nil {
			return err
		}
		return itemRepo.AdjustCurrentStock(ctx, item.ID, input.Quantity)
	})
}

// Reconcile verifica que el agregado current_stock de cada ítem coincida con
// la suma de remanentes de sus lotes. Una desviación es un bug del motor:
// se reporta con ErrConsistencyDrift, se registra en el log de errores y se
// incrementa el contador de alerta; jamás se corrige en silencio.
//
// Con stock negativo permitido la regla se relaja: un agregado negativo es
// válido solo si los lotes están en cero (el faltante vive en el agregado).
func (uc *InventoryUseCase) Reconcile(ctx context.Context, branchID string) (*dto.ReconciliationReportDTO, error) {
	rows, err := uc.lotRepo.AggregateSnapshot(ctx, branchID)
	if err != nil {
		return nil, err
	}

	report := &dto.ReconciliationReportDTO{
		BranchID:     branchID,
		CheckedItems: len(rows),
		DriftedItems: []dto.ReconciliationRowDTO{},
		CheckedAt:    time.Now(),
	}
	for _, row := range rows {
		if uc.isConsistent(row) {
			continue
		}
		report.DriftedItems = append(report.DriftedItems, dto.ReconciliationRowDTO{
			StockItemID:  row.StockItemID,
			Name:         row.ItemName,
			CurrentStock: row.CurrentStock,
			LotRemaining: row.LotRemaining,
			Drift:        row.CurrentStock.Sub(row.LotRemaining),
		})
	}

	if len(report.DriftedItems) > 0 {
		metrics.ReconciliationDriftTotal.Add(float64(len(report.DriftedItems)))
		uc.log.Error().
			Str("branch_id", branchID).
			Int("drifted_items", len(report.DriftedItems)).
			Msg("desviación entre agregado de stock y lotes detectada")
		return report, domain.ErrConsistencyDrift
	}
	return report, nil
}

func (uc *InventoryUseCase) isConsistent(row repository.StockAggregateRow) bool {
	if row.CurrentStock.Equal(row.LotRemaining) {
		return true
	}
	if uc.allowNegativeStock && row.CurrentStock.IsNegative() && row.LotRemaining.IsZero() {
		return true
	}
	return false
}
