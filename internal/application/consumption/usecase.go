package consumption

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pawanbhattarai/thehotelmountain-sub002/internal/domain"
	"github.com/pawanbhattarai/thehotelmountain-sub002/internal/domain/costing"
	"github.com/pawanbhattarai/thehotelmountain-sub002/internal/domain/entity"
	"github.com/pawanbhattarai/thehotelmountain-sub002/internal/domain/repository"
	"github.com/pawanbhattarai/thehotelmountain-sub002/pkg/logger"
	"github.com/pawanbhattarai/thehotelmountain-sub002/pkg/metrics"
)

// Policy política de costeo del motor de consumo.
type Policy struct {
	Method entity.CostingMethod
	// AllowNegativeStock decide la pregunta abierta del diseño original:
	// con false (defecto) la venta sin lotes suficientes se bloquea con
	// ErrInsufficientStock; con true se acepta, el faltante se costea al
	// precio de respaldo del ítem y queda un warning en el log.
	AllowNegativeStock bool
}

// ConsumptionUseCase motor de consumo: resuelve la receta del plato vendido,
// debita los lotes según la política de costeo y deja registro por ítem con
// sus asignaciones exactas por lote. La reversión restaura esas asignaciones
// tal cual, sin recalcular FIFO/LIFO.
type ConsumptionUseCase struct {
	txRunner   TxRunner
	recipeRepo repository.RecipeRepository
	itemRepo   repository.StockItemRepository
	unitRepo   repository.MeasuringUnitRepository
	policy     Policy
	log        *logger.Logger
}

// NewConsumptionUseCase construye el caso de uso.
func NewConsumptionUseCase(
	txRunner TxRunner,
	recipeRepo repository.RecipeRepository,
	itemRepo repository.StockItemRepository,
	unitRepo repository.MeasuringUnitRepository,
	policy Policy,
	log *logger.Logger,
) *ConsumptionUseCase {
	return &ConsumptionUseCase{
		txRunner:   txRunner,
		recipeRepo: recipeRepo,
		itemRepo:   itemRepo,
		unitRepo:   unitRepo,
		policy:     policy,
		log:        log,
	}
}

// IngredientLine ingrediente a debitar, en la unidad en que viene expresado.
type IngredientLine struct {
	StockItemID string
	Quantity    decimal.Decimal
	UnitID      string
}

// ConsumptionInputDTO entrada para RecordConsumption.
// Overrides, si viene, sustituye la receta del plato (modificadores).
type ConsumptionInputDTO struct {
	BranchID     string
	DishID       string
	QuantitySold decimal.Decimal
	OrderID      string
	OrderItemID  string
	CreatedBy    string
	Overrides    []IngredientLine
}

// RecordConsumption debita los ingredientes del plato vendido y devuelve los
// registros creados (uno por ítem de stock). La operación es atómica: si
// cualquier ítem no alcanza, no se debita ninguno y se devuelve
// ErrInsufficientStock nombrando el primero que falla.
func (uc *ConsumptionUseCase) RecordConsumption(ctx context.Context, input ConsumptionInputDTO) ([]*entity.ConsumptionRecord, error) {
	if !input.QuantitySold.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	if input.DishID == "" && len(input.Overrides) == 0 {
		return nil, domain.ErrInvalidInput
	}

	lines, err := uc.resolveLines(ctx, input)
	if err != nil {
		return nil, err
	}

	// Cargar ítems y unidades referenciadas antes de abrir la transacción.
	items := make(map[string]*entity.StockItem, len(lines))
	unitIDs := make([]string, 0, len(lines)*2)
	for _, line := range lines {
		if !line.Quantity.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
		if _, ok := items[line.StockItemID]; ok {
			continue
		}
		item, err := uc.itemRepo.GetByID(ctx, line.StockItemID)
		if err != nil {
			return nil, err
		}
		if input.BranchID != "" && item.BranchID != input.BranchID {
			return nil, domain.ErrForbidden
		}
		items[line.StockItemID] = item
		unitIDs = append(unitIDs, item.UnitID)
	}
	for _, line := range lines {
		unitIDs = append(unitIDs, line.UnitID)
	}
	units, err := uc.unitRepo.MapByIDs(ctx, unitIDs)
	if err != nil {
		return nil, err
	}

	// Cantidad requerida por ítem, convertida a la unidad del ítem.
	required, err := aggregateRequirements(lines, items, units, input.QuantitySold)
	if err != nil {
		return nil, err
	}

	// Orden determinista de ítems para que consumos concurrentes tomen los
	// bloqueos de fila siempre en el mismo orden (evita deadlocks).
	itemIDs := make([]string, 0, len(required))
	for id := range required {
		itemIDs = append(itemIDs, id)
	}
	sort.Strings(itemIDs)

	now := time.Now()
	records := make([]*entity.ConsumptionRecord, 0, len(itemIDs))

	err = uc.txRunner.Run(ctx, func(
		lotRepo repository.CostLotRepository,
		consumptionRepo repository.ConsumptionRepository,
		itemRepo repository.StockItemRepository,
	) error {
		for _, itemID := range itemIDs {
			item := items[itemID]
			qty := required[itemID]

			rec, err := uc.debitItem(ctx, lotRepo, consumptionRepo, itemRepo, item, qty, input, now)
			if err != nil {
				return err
			}
			records = append(records, rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.ConsumptionsTotal.WithLabelValues(string(uc.policy.Method)).Inc()
	uc.log.Info().
		Str("dish_id", input.DishID).
		Str("order_id", input.OrderID).
		Int("items", len(records)).
		Msg("consumo registrado")
	return records, nil
}

// debitItem bloquea los lotes del ítem, asigna según la política y persiste
// el registro con sus asignaciones; decrementa el agregado en la misma tx.
func (uc *ConsumptionUseCase) debitItem(
	ctx context.Context,
	lotRepo repository.CostLotRepository,
	consumptionRepo repository.ConsumptionRepository,
	itemRepo repository.StockItemRepository,
	item *entity.StockItem,
	qty decimal.Decimal,
	input ConsumptionInputDTO,
	now time.Time,
) (*entity.ConsumptionRecord, error) {
	lots, err := lotRepo.ListAvailableForUpdate(ctx, item.ID, uc.policy.Method != entity.MethodLIFO)
	if err != nil {
		return nil, err
	}

	var res *costing.Result
	if uc.policy.AllowNegativeStock {
		res, err = costing.AllocateAllowingShortfall(lots, qty, uc.policy.Method, item.DefaultPrice)
	} else {
		res, err = costing.Allocate(lots, qty, uc.policy.Method)
	}
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) {
			// Nombrar el primer ítem que falla; el rollback de la tx deja
			// intactos los ingredientes ya procesados.
			return nil, fmt.Errorf("%w: %s", domain.ErrInsufficientStock, item.Name)
		}
		return nil, err
	}
	if res.Shortfall.IsPositive() {
		metrics.NegativeStockSalesTotal.Inc()
		uc.log.Warn().
			Str("stock_item_id", item.ID).
			Str("item", item.Name).
			Str("shortfall", res.Shortfall.String()).
			Msg("consumo con stock negativo permitido")
	}

	recID := uuid.New().String()
	allocations := make([]*entity.LotAllocation, 0, len(res.Allocations))
	for _, a := range res.Allocations {
		if a.LotID != "" {
			if err := lotRepo.DecrementRemaining(ctx, a.LotID, a.Quantity); err != nil {
				return nil, err
			}
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
		OrderID:       input.OrderID,
		OrderItemID:   input.OrderItemID,
		DishID:        input.DishID,
		Quantity:      qty,
		UnitCost:      res.TotalCost.Div(qty),
		TotalCost:     res.TotalCost,
		CostingMethod: uc.policy.Method,
		ConsumedAt:    now,
		CreatedBy:     input.CreatedBy,
		CreatedAt:     now,
		Allocations:   allocations,
	}
	if err := consumptionRepo.Create(ctx, rec); err != nil {
		return nil, err
	}
	if err := itemRepo.AdjustCurrentStock(ctx, item.ID, qty.Neg()); err != nil {
		return nil, err
	}
	return rec, nil
}

// ReverseConsumption restaura exactamente los débitos por lote del registro
// y lo elimina, incrementando el agregado en la misma transacción. Nunca
// recalcula el orden FIFO/LIFO: devuelve lo que se tomó, lote por lote.
// Revertir dos veces el mismo registro falla con ErrReversalMismatch.
func (uc *ConsumptionUseCase) ReverseConsumption(ctx context.Context, recordID string) error {
	if recordID == "" {
		return domain.ErrInvalidInput
	}

	err := uc.txRunner.Run(ctx, func(
		lotRepo repository.CostLotRepository,
		consumptionRepo repository.ConsumptionRepository,
		itemRepo repository.StockItemRepository,
	) error {
		rec, err := consumptionRepo.GetByID(ctx, recordID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrReversalMismatch
			}
			return err
		}
		if len(rec.Allocations) == 0 {
			// Sin asignaciones almacenadas no hay forma segura de restaurar.
			return domain.ErrReversalMismatch
		}

		for _, a := range rec.Allocations {
			if a.LotID == "" {
				continue // faltante de stock negativo: no hay lote que acreditar
			}
			if err := lotRepo.CreditRemaining(ctx, a.LotID, a.Quantity); err != nil {
				return err
			}
		}
		if err := consumptionRepo.Delete(ctx, rec.ID); err != nil {
			return err
		}
		return itemRepo.AdjustCurrentStock(ctx, rec.StockItemID, rec.Quantity)
	})
	if err != nil {
		return err
	}

	metrics.ReversalsTotal.Inc()
	uc.log.Info().Str("consumption_id", recordID).Msg("consumo revertido")
	return nil
}

// resolveLines devuelve las líneas a debitar: overrides explícitos o la
// receta del plato.
func (uc *ConsumptionUseCase) resolveLines(ctx context.Context, input ConsumptionInputDTO) ([]IngredientLine, error) {
	if len(input.Overrides) > 0 {
		return input.Overrides, nil
	}
	recipeLines, err := uc.recipeRepo.ListByDish(ctx, input.DishID)
	if err != nil {
		return nil, err
	}
	if len(recipeLines) == 0 {
		return nil, domain.ErrNotFound
	}
	lines := make([]IngredientLine, 0, len(recipeLines))
	for _, rl := range recipeLines {
		lines = append(lines, IngredientLine{
			StockItemID: rl.StockItemID,
			Quantity:    rl.Quantity,
			UnitID:      rl.UnitID,
		})
	}
	return lines, nil
}

// aggregateRequirements convierte cada línea a la unidad del ítem, la escala
// por la cantidad vendida y agrega por ítem (una receta puede repetir ítem).
func aggregateRequirements(
	lines []IngredientLine,
	items map[string]*entity.StockItem,
	units map[string]*entity.MeasuringUnit,
	quantitySold decimal.Decimal,
) (map[string]decimal.Decimal, error) {
	required := make(map[string]decimal.Decimal, len(lines))
	for _, line := range lines {
		item := items[line.StockItemID]
		fromUnit, ok := units[line.UnitID]
		if !ok {
			return nil, domain.ErrInvalidInput
		}
		toUnit, ok := units[item.UnitID]
		if !ok {
			return nil, domain.ErrInvalidInput
		}
		converted, err := entity.ConvertQuantity(line.Quantity.Mul(quantitySold), fromUnit, toUnit)
		if err != nil {
			return nil, err
		}
		required[item.ID] = required[item.ID].Add(converted)
	}
	return required, nil
}
