package consumption_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawanbhattarai/thehotelmountain-sub002/internal/application/consumption"
	"github.com/pawanbhattarai/thehotelmountain-sub002/internal/domain"
	"github.com/pawanbhattarai/thehotelmountain-sub002/internal/domain/entity"
	"github.com/pawanbhattarai/thehotelmountain-sub002/internal/domain/repository"
	"github.com/pawanbhattarai/thehotelmountain-sub002/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
//
// memStore simula la base de datos; fakeTxRunner simula la transacción
// tomando un snapshot del estado y restaurándolo si la función falla, para
// poder verificar el todo-o-nada del motor de consumo.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	items   map[string]*entity.StockItem
	lots    map[string]*entity.CostLot
	records map[string]*entity.ConsumptionRecord
	recipes map[string][]*entity.RecipeLine
	units   map[string]*entity.MeasuringUnit
}

func newMemStore() *memStore {
	return &memStore{
		items:   make(map[string]*entity.StockItem),
		lots:    make(map[string]*entity.CostLot),
		records: make(map[string]*entity.ConsumptionRecord),
		recipes: make(map[string][]*entity.RecipeLine),
		units:   make(map[string]*entity.MeasuringUnit),
	}
}

func copyItem(i *entity.StockItem) *entity.StockItem {
	c := *i
	return &c
}

func copyLot(l *entity.CostLot) *entity.CostLot {
	c := *l
	return &c
}

func copyRecord(r *entity.ConsumptionRecord) *entity.ConsumptionRecord {
	c := *r
	c.Allocations = make([]*entity.LotAllocation, len(r.Allocations))
	for i, a := range r.Allocations {
		ac := *a
		c.Allocations[i] = &ac
	}
	return &c
}

func (s *memStore) snapshot() *memStore {
	snap := newMemStore()
	for id, i := range s.items {
		snap.items[id] = copyItem(i)
	}
	for id, l := range s.lots {
		snap.lots[id] = copyLot(l)
	}
	for id, r := range s.records {
		snap.records[id] = copyRecord(r)
	}
	snap.recipes = s.recipes
	snap.units = s.units
	return snap
}

func (s *memStore) restore(snap *memStore) {
	s.items = snap.items
	s.lots = snap.lots
	s.records = snap.records
}

type fakeTxRunner struct{ store *memStore }

func (tx *fakeTxRunner) Run(ctx context.Context, fn func(
	lotRepo repository.CostLotRepository,
	consumptionRepo repository.ConsumptionRepository,
	itemRepo repository.StockItemRepository,
) error) error {
	snap := tx.store.snapshot()
	err := fn(&fakeLotRepo{tx.store}, &fakeConsumptionRepo{tx.store}, &fakeItemRepo{tx.store})
	if err != nil {
		tx.store.restore(snap)
	}
	return err
}

// ── fakeLotRepo ──

type fakeLotRepo struct{ store *memStore }

func (r *fakeLotRepo) Create(ctx context.Context, lot *entity.CostLot) error {
	r.store.lots[lot.ID] = copyLot(lot)
	return nil
}

func (r *fakeLotRepo) GetByID(ctx context.Context, id string) (*entity.CostLot, error) {
	lot, ok := r.store.lots[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return copyLot(lot), nil
}

func (r *fakeLotRepo) ListByItem(ctx context.Context, stockItemID string, limit, offset int) ([]*entity.CostLot, error) {
	var out []*entity.CostLot
	for _, l := range r.store.lots {
		if l.StockItemID == stockItemID {
			out = append(out, copyLot(l))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AcquiredAt.After(out[j].AcquiredAt) })
	return out, nil
}

func (r *fakeLotRepo) ListAvailableForUpdate(ctx context.Context, stockItemID string, oldestFirst bool) ([]*entity.CostLot, error) {
	var out []*entity.CostLot
	for _, l := range r.store.lots {
		if l.StockItemID == stockItemID && l.RemainingQuantity.IsPositive() {
			out = append(out, copyLot(l))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.AcquiredAt.Equal(b.AcquiredAt) {
			if oldestFirst {
				return a.AcquiredAt.Before(b.AcquiredAt)
			}
			return a.AcquiredAt.After(b.AcquiredAt)
		}
		if oldestFirst {
			return a.ID < b.ID
		}
		return a.ID > b.ID
	})
	return out, nil
}

func (r *fakeLotRepo) DecrementRemaining(ctx context.Context, lotID string, qty decimal.Decimal) error {
	lot, ok := r.store.lots[lotID]
	if !ok || lot.RemainingQuantity.LessThan(qty) {
		return domain.ErrInsufficientStock
	}
	lot.RemainingQuantity = lot.RemainingQuantity.Sub(qty)
	return nil
}

func (r *fakeLotRepo) CreditRemaining(ctx context.Context, lotID string, qty decimal.Decimal) error {
	lot, ok := r.store.lots[lotID]
	if !ok || lot.RemainingQuantity.Add(qty).GreaterThan(lot.Quantity) {
		return domain.ErrReversalMismatch
	}
	lot.RemainingQuantity = lot.RemainingQuantity.Add(qty)
	return nil
}

func (r *fakeLotRepo) SumRemaining(ctx context.Context, stockItemID string) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, l := range r.store.lots {
		if l.StockItemID == stockItemID {
			sum = sum.Add(l.RemainingQuantity)
		}
	}
	return sum, nil
}

func (r *fakeLotRepo) AggregateSnapshot(ctx context.Context, branchID string) ([]repository.StockAggregateRow, error) {
	var rows []repository.StockAggregateRow
	for _, item := range r.store.items {
		if item.BranchID != branchID || !item.IsActive {
			continue
		}
		sum, _ := r.SumRemaining(ctx, item.ID)
		rows = append(rows, repository.StockAggregateRow{
			StockItemID:  item.ID,
			ItemName:     item.Name,
			CurrentStock: item.CurrentStock,
			LotRemaining: sum,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].StockItemID < rows[j].StockItemID })
	return rows, nil
}

// ── fakeConsumptionRepo ──

type fakeConsumptionRepo struct{ store *memStore }

func (r *fakeConsumptionRepo) Create(ctx context.Context, record *entity.ConsumptionRecord) error {
	r.store.records[record.ID] = copyRecord(record)
	return nil
}

func (r *fakeConsumptionRepo) GetByID(ctx context.Context, id string) (*entity.ConsumptionRecord, error) {
	rec, ok := r.store.records[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return copyRecord(rec), nil
}

func (r *fakeConsumptionRepo) ListByItem(ctx context.Context, stockItemID string, limit, offset int) ([]*entity.ConsumptionRecord, error) {
	var out []*entity.ConsumptionRecord
	for _, rec := range r.store.records {
		if rec.StockItemID == stockItemID {
			out = append(out, copyRecord(rec))
		}
	}
	return out, nil
}

func (r *fakeConsumptionRepo) ListByOrder(ctx context.Context, orderID string) ([]*entity.ConsumptionRecord, error) {
	var out []*entity.ConsumptionRecord
	for _, rec := range r.store.records {
		if rec.OrderID == orderID {
			out = append(out, copyRecord(rec))
		}
	}
	return out, nil
}

func (r *fakeConsumptionRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.store.records[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.store.records, id)
	return nil
}

// ── fakeItemRepo ──

type fakeItemRepo struct{ store *memStore }

func (r *fakeItemRepo) Create(ctx context.Context, item *entity.StockItem) error {
	r.store.items[item.ID] = copyItem(item)
	return nil
}

func (r *fakeItemRepo) GetByID(ctx context.Context, id string) (*entity.StockItem, error) {
	item, ok := r.store.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return copyItem(item), nil
}

func (r *fakeItemRepo) ListByBranch(ctx context.Context, branchID string, limit, offset int) ([]*entity.StockItem, error) {
	var out []*entity.StockItem
	for _, i := range r.store.items {
		if i.BranchID == branchID && i.IsActive {
			out = append(out, copyItem(i))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeItemRepo) Update(ctx context.Context, item *entity.StockItem) error {
	existing, ok := r.store.items[item.ID]
	if !ok {
		return domain.ErrNotFound
	}
	stock := existing.CurrentStock // el CRUD nunca toca el agregado
	r.store.items[item.ID] = copyItem(item)
	r.store.items[item.ID].CurrentStock = stock
	return nil
}

func (r *fakeItemRepo) Deactivate(ctx context.Context, id string) error {
	item, ok := r.store.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	item.IsActive = false
	return nil
}

func (r *fakeItemRepo) AdjustCurrentStock(ctx context.Context, itemID string, delta decimal.Decimal) error {
	item, ok := r.store.items[itemID]
	if !ok {
		return domain.ErrNotFound
	}
	item.CurrentStock = item.CurrentStock.Add(delta)
	return nil
}

func (r *fakeItemRepo) ListLowStock(ctx context.Context, branchID string) ([]*entity.StockItem, error) {
	var out []*entity.StockItem
	for _, i := range r.store.items {
		if i.BranchID == branchID && i.IsActive && i.IsLowStock() {
			out = append(out, copyItem(i))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ── fakeRecipeRepo / fakeUnitRepo ──

type fakeRecipeRepo struct{ store *memStore }

func (r *fakeRecipeRepo) ReplaceDishRecipe(ctx context.Context, dishID string, lines []*entity.RecipeLine) error {
	r.store.recipes[dishID] = lines
	return nil
}

func (r *fakeRecipeRepo) ListByDish(ctx context.Context, dishID string) ([]*entity.RecipeLine, error) {
	return r.store.recipes[dishID], nil
}

func (r *fakeRecipeRepo) DeleteByDish(ctx context.Context, dishID string) error {
	delete(r.store.recipes, dishID)
	return nil
}

func (r *fakeRecipeRepo) ListDishesUsingItem(ctx context.Context, stockItemID string) ([]string, error) {
	var dishes []string
	for dishID, lines := range r.store.recipes {
		for _, l := range lines {
			if l.StockItemID == stockItemID {
				dishes = append(dishes, dishID)
				break
			}
		}
	}
	sort.Strings(dishes)
	return dishes, nil
}

type fakeUnitRepo struct{ store *memStore }

func (r *fakeUnitRepo) Create(ctx context.Context, unit *entity.MeasuringUnit) error {
	r.store.units[unit.ID] = unit
	return nil
}

func (r *fakeUnitRepo) GetByID(ctx context.Context, id string) (*entity.MeasuringUnit, error) {
	u, ok := r.store.units[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

func (r *fakeUnitRepo) List(ctx context.Context) ([]*entity.MeasuringUnit, error) {
	var out []*entity.MeasuringUnit
	for _, u := range r.store.units {
		out = append(out, u)
	}
	return out, nil
}

func (r *fakeUnitRepo) MapByIDs(ctx context.Context, ids []string) (map[string]*entity.MeasuringUnit, error) {
	out := make(map[string]*entity.MeasuringUnit, len(ids))
	for _, id := range ids {
		if u, ok := r.store.units[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const (
	branchA = "branch-a"
	unitKg  = "unit-kg"
	unitG   = "unit-g"
	itemRes = "item-carne"
	itemTom = "item-tomate"
	dishID  = "dish-lomo"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

// seedStore prepara un escenario base: dos unidades (kg base, g derivada),
// dos ítems en la sucursal A y una receta de un plato con ambos.
func seedStore() *memStore {
	s := newMemStore()

	kg := unitKg
	s.units[unitKg] = &entity.MeasuringUnit{ID: unitKg, Name: "Kilogramo", Symbol: "kg", ConversionFactor: dec("1")}
	s.units[unitG] = &entity.MeasuringUnit{ID: unitG, Name: "Gramo", Symbol: "g", BaseUnitID: &kg, ConversionFactor: dec("0.001")}

	s.items[itemRes] = &entity.StockItem{
		ID: itemRes, BranchID: branchA, Name: "Carne de res", UnitID: unitKg,
		CurrentStock: dec("20"), MinimumStock: dec("2"), DefaultPrice: dec("9"), IsActive: true,
	}
	s.items[itemTom] = &entity.StockItem{
		ID: itemTom, BranchID: branchA, Name: "Tomate", UnitID: unitKg,
		CurrentStock: dec("5"), MinimumStock: dec("1"), DefaultPrice: dec("2"), IsActive: true,
	}

	s.recipes[dishID] = []*entity.RecipeLine{
		{ID: "rl-1", DishID: dishID, StockItemID: itemRes, Quantity: dec("0.25"), UnitID: unitKg},
		{ID: "rl-2", DishID: dishID, StockItemID: itemTom, Quantity: dec("0.1"), UnitID: unitKg},
	}
	return s
}

// addLot agrega un lote con remanente completo.
func addLot(s *memStore, id, itemID string, qty, unitCost string, acquiredAt time.Time) {
	s.lots[id] = &entity.CostLot{
		ID: id, StockItemID: itemID, BranchID: branchA, Source: entity.LotSourcePurchase,
		Quantity: dec(qty), UnitCost: dec(unitCost), RemainingQuantity: dec(qty),
		AcquiredAt: acquiredAt, CreatedAt: acquiredAt,
	}
}

func newUseCase(s *memStore, policy consumption.Policy) *consumption.ConsumptionUseCase {
	return consumption.NewConsumptionUseCase(
		&fakeTxRunner{store: s},
		&fakeRecipeRepo{store: s},
		&fakeItemRepo{store: s},
		&fakeUnitRepo{store: s},
		policy,
		logger.Nop(),
	)
}

var t0 = time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)

// ──────────────────────────────────────────────────────────────────────────────
// RecordConsumption: costeo
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordConsumption_FIFODebitaLoteMasAntiguo(t *testing.T) {
	s := seedStore()
	addLot(s, "lot-old", itemRes, "10", "8", t0)
	addLot(s, "lot-new", itemRes, "10", "10", t0.Add(24*time.Hour))
	addLot(s, "lot-tom", itemTom, "5", "2", t0)

	uc := newUseCase(s, consumption.Policy{Method: entity.MethodFIFO})

	// 4 platos → 1 kg de carne, 0.4 kg de tomate
	records, err := uc.RecordConsumption(context.Background(), consumption.ConsumptionInputDTO{
		BranchID: branchA, DishID: dishID, QuantitySold: dec("4"), OrderID: "order-1",
	})
	require.NoError(t, err)
	require.Len(t, records, 2, "debe generarse un registro por ítem de stock")

	// FIFO: la carne sale íntegra del lote más antiguo a $8
	var carne *entity.ConsumptionRecord
	for _, r := range records {
		if r.StockItemID == itemRes {
			carne = r
		}
	}
	require.NotNil(t, carne)
	assert.True(t, dec("8").Equal(carne.TotalCost), "1 kg FIFO debe costar $8, fue %s", carne.TotalCost)
	require.Len(t, carne.Allocations, 1)
	assert.Equal(t, "lot-old", carne.Allocations[0].LotID)

	assert.True(t, dec("9").Equal(s.lots["lot-old"].RemainingQuantity), "el lote antiguo debe quedar en 9")
	assert.True(t, dec("10").Equal(s.lots["lot-new"].RemainingQuantity), "el lote nuevo no debe tocarse")
	assert.True(t, dec("19").Equal(s.items[itemRes].CurrentStock), "el agregado debe bajar a 19")
}

func TestRecordConsumption_FIFOCruzaLotes(t *testing.T) {
	s := seedStore()
	addLot(s, "lot-1", itemRes, "10", "1.00", t0)
	addLot(s, "lot-2", itemRes, "10", "1.50", t0.Add(time.Hour))
	addLot(s, "lot-3", itemRes, "10", "2.00", t0.Add(2*time.Hour))

	uc := newUseCase(s, consumption.Policy{Method: entity.MethodFIFO})

	// 12 unidades con override directo: 10 @ $1.00 + 2 @ $1.50 = $13.00
	records, err := uc.RecordConsumption(context.Background(), consumption.ConsumptionInputDTO{
		BranchID: branchA, QuantitySold: dec("1"),
		Overrides: []consumption.IngredientLine{{StockItemID: itemRes, Quantity: dec("12"), UnitID: unitKg}},
	})
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.True(t, dec("13").Equal(records[0].TotalCost), "FIFO 12 uds debe costar $13, fue %s", records[0].TotalCost)
	require.Len(t, records[0].Allocations, 2, "el débito debe cruzar dos lotes")
	assert.True(t, s.lots["lot-1"].IsExhausted(), "el primer lote debe agotarse")
	assert.True(t, dec("8").Equal(s.lots["lot-2"].RemainingQuantity))
}

func TestRecordConsumption_LIFODebitaLoteMasReciente(t *testing.T) {
	s := seedStore()
	addLot(s, "lot-1", itemRes, "10", "1.00", t0)
	addLot(s, "lot-2", itemRes, "10", "1.50", t0.Add(time.Hour))
	addLot(s, "lot-3", itemRes, "10", "2.00", t0.Add(2*time.Hour))

	uc := newUseCase(s, consumption.Policy{Method: entity.MethodLIFO})

	// LIFO 12 uds: 10 @ $2.00 + 2 @ $1.50 = $23.00
	records, err := uc.RecordConsumption(context.Background(), consumption.ConsumptionInputDTO{
		BranchID: branchA, QuantitySold: dec("1"),
		Overrides: []consumption.IngredientLine{{StockItemID: itemRes, Quantity: dec("12"), UnitID: unitKg}},
	})
	require.NoError(t, err)

	assert.True(t, dec("23").Equal(records[0].TotalCost), "LIFO 12 uds debe costar $23, fue %s", records[0].TotalCost)
	assert.True(t, s.lots["lot-3"].IsExhausted(), "el lote más reciente debe agotarse")
	assert.True(t, dec("10").Equal(s.lots["lot-1"].RemainingQuantity), "el lote más antiguo no debe tocarse")
}

func TestRecordConsumption_PromedioPonderado(t *testing.T) {
	s := seedStore()
	addLot(s, "lot-1", itemRes, "10", "1.00", t0)
	addLot(s, "lot-2", itemRes, "10", "2.00", t0.Add(time.Hour))

	uc := newUseCase(s, consumption.Policy{Method: entity.MethodAverage})

	// Promedio: (10*1 + 10*2)/20 = $1.50 → 12 uds = $18.00
	records, err := uc.RecordConsumption(context.Background(), consumption.ConsumptionInputDTO{
		BranchID: branchA, QuantitySold: dec("1"),
		Overrides: []consumption.IngredientLine{{StockItemID: itemRes, Quantity: dec("12"), UnitID: unitKg}},
	})
	require.NoError(t, err)

	assert.True(t, dec("18").Equal(records[0].TotalCost), "promedio 12 uds debe costar $18, fue %s", records[0].TotalCost)
	// El remanente se decrementa del más antiguo primero
	assert.True(t, s.lots["lot-1"].IsExhausted())
	assert.True(t, dec("8").Equal(s.lots["lot-2"].RemainingQuantity))
}

func TestRecordConsumption_ConvierteUnidadesDeLinea(t *testing.T) {
	s := seedStore()
	addLot(s, "lot-1", itemRes, "10", "8", t0)
	// Receta expresada en gramos para un ítem almacenado en kg
	s.recipes["dish-gramos"] = []*entity.RecipeLine{
		{ID: "rl-g", DishID: "dish-gramos", StockItemID: itemRes, Quantity: dec("250"), UnitID: unitG},
	}

	uc := newUseCase(s, consumption.Policy{Method: entity.MethodFIFO})

	_, err := uc.RecordConsumption(context.Background(), consumption.ConsumptionInputDTO{
		BranchID: branchA, DishID: "dish-gramos", QuantitySold: dec("2"),
	})
	require.NoError(t, err)

	// 2 × 250 g = 0.5 kg
	assert.True(t, dec("9.5").Equal(s.lots["lot-1"].RemainingQuantity),
		"500 g deben debitarse como 0.5 kg, remanente fue %s", s.lots["lot-1"].RemainingQuantity)
	assert.True(t, dec("19.5").Equal(s.items[itemRes].CurrentStock))
}

// ──────────────────────────────────────────────────────────────────────────────
// RecordConsumption: atomicidad y validaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordConsumption_AtomicoSiUnIngredienteNoAlcanza(t *testing.T) {
	s := seedStore()
	addLot(s, "lot-carne", itemRes, "100", "8", t0)
	addLot(s, "lot-tom", itemTom, "0.1", "2", t0) // tomate casi agotado

	uc := newUseCase(s, consumption.Policy{Method: entity.MethodFIFO})

	_, err := uc.RecordConsumption(context.Background(), consumption.ConsumptionInputDTO{
		BranchID: branchA, DishID: dishID, QuantitySold: dec("4"), OrderID: "order-1",
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "Tomate", "el error debe nombrar el ítem que falla")

	// Rollback completo: la carne ya procesada no debe quedar debitada
	assert.True(t, dec("100").Equal(s.lots["lot-carne"].RemainingQuantity),
		"el lote de carne debe quedar intacto tras el rollback")
	assert.True(t, dec("20").Equal(s.items[itemRes].CurrentStock))
	assert.Empty(t, s.records, "no debe persistir ningún registro de consumo")
}

func TestRecordConsumption_CantidadNoPositiva(t *testing.T) {
	uc := newUseCase(seedStore(), consumption.Policy{Method: entity.MethodFIFO})

	_, err := uc.RecordConsumption(context.Background(), consumption.ConsumptionInputDTO{
		BranchID: branchA, DishID: dishID, QuantitySold: decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRecordConsumption_PlatoSinReceta(t *testing.T) {
	uc := newUseCase(seedStore(), consumption.Policy{Method: entity.MethodFIFO})

	_, err := uc.RecordConsumption(context.Background(), consumption.ConsumptionInputDTO{
		BranchID: branchA, DishID: "dish-inexistente", QuantitySold: dec("1"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecordConsumption_ItemDeOtraSucursal(t *testing.T) {
	s := seedStore()
	addLot(s, "lot-1", itemRes, "10", "8", t0)

	uc := newUseCase(s, consumption.Policy{Method: entity.MethodFIFO})

	_, err := uc.RecordConsumption(context.Background(), consumption.ConsumptionInputDTO{
		BranchID: "branch-b", QuantitySold: dec("1"),
		Overrides: []consumption.IngredientLine{{StockItemID: itemRes, Quantity: dec("1"), UnitID: unitKg}},
	})
	assert.ErrorIs(t, err, domain.ErrForbidden,
		"no debe poder consumirse un ítem de otra sucursal")
}

func TestRecordConsumption_RecetaConItemRepetidoAgrega(t *testing.T) {
	s := seedStore()
	addLot(s, "lot-1", itemRes, "10", "8", t0)
	// Overrides con el mismo ítem dos veces (modificadores): se agregan
	uc := newUseCase(s, consumption.Policy{Method: entity.MethodFIFO})

	records, err := uc.RecordConsumption(context.Background(), consumption.ConsumptionInputDTO{
		BranchID: branchA, QuantitySold: dec("1"),
		Overrides: []consumption.IngredientLine{
			{StockItemID: itemRes, Quantity: dec("1"), UnitID: unitKg},
			{StockItemID: itemRes, Quantity: dec("500"), UnitID: unitG},
		},
	})
	require.NoError(t, err)
	require.Len(t, records, 1, "ítem repetido debe agregarse en un solo registro")
	assert.True(t, dec("1.5").Equal(records[0].Quantity), "1 kg + 500 g = 1.5 kg")
}

// ──────────────────────────────────────────────────────────────────────────────
// RecordConsumption: política de stock negativo
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordConsumption_StockNegativoPermitido(t *testing.T) {
	s := seedStore()
	addLot(s, "lot-1", itemRes, "2", "8", t0)
	s.items[itemRes].CurrentStock = dec("2") // agregado cuadrado con el lote

	uc := newUseCase(s, consumption.Policy{Method: entity.MethodFIFO, AllowNegativeStock: true})

	// Se piden 5 kg con solo 2 en lotes: 2 @ $8 + 3 @ precio de respaldo $9
	records, err := uc.RecordConsumption(context.Background(), consumption.ConsumptionInputDTO{
		BranchID: branchA, QuantitySold: dec("1"),
		Overrides: []consumption.IngredientLine{{StockItemID: itemRes, Quantity: dec("5"), UnitID: unitKg}},
	})
	require.NoError(t, err, "con la política activa la venta no debe bloquearse")
	require.Len(t, records, 1)

	rec := records[0]
	assert.True(t, dec("43").Equal(rec.TotalCost), "2×8 + 3×9 = $43, fue %s", rec.TotalCost)
	require.Len(t, rec.Allocations, 2)
	assert.Equal(t, "", rec.Allocations[1].LotID, "el faltante se asigna sin lote")
	assert.True(t, dec("9").Equal(rec.Allocations[1].UnitCost), "el faltante se costea al precio de respaldo")

	assert.True(t, s.lots["lot-1"].IsExhausted())
	assert.True(t, dec("-3").Equal(s.items[itemRes].CurrentStock), "el agregado debe quedar en -3")
}

func TestRecordConsumption_StockNegativoBloqueadoPorDefecto(t *testing.T) {
	s := seedStore()
	addLot(s, "lot-1", itemRes, "2", "8", t0)

	uc := newUseCase(s, consumption.Policy{Method: entity.MethodFIFO})

	_, err := uc.RecordConsumption(context.Background(), consumption.ConsumptionInputDTO{
		BranchID: branchA, QuantitySold: dec("1"),
		Overrides: []consumption.IngredientLine{{StockItemID: itemRes, Quantity: dec("5"), UnitID: unitKg}},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, dec("2").Equal(s.lots["lot-1"].RemainingQuantity), "nada debe debitarse")
}

// ──────────────────────────────────────────────────────────────────────────────
// ReverseConsumption
// ──────────────────────────────────────────────────────────────────────────────

func TestReverseConsumption_RestauraAsignacionesExactas(t *testing.T) {
	s := seedStore()
	addLot(s, "lot-1", itemRes, "10", "1.00", t0)
	addLot(s, "lot-2", itemRes, "10", "1.50", t0.Add(time.Hour))

	uc := newUseCase(s, consumption.Policy{Method: entity.MethodFIFO})

	records, err := uc.RecordConsumption(context.Background(), consumption.ConsumptionInputDTO{
		BranchID: branchA, QuantitySold: dec("1"),
		Overrides: []consumption.IngredientLine{{StockItemID: itemRes, Quantity: dec("12"), UnitID: unitKg}},
	})
	require.NoError(t, err)
	recID := records[0].ID
	require.True(t, s.lots["lot-1"].IsExhausted())

	// Llega un lote nuevo entre el consumo y la reversión: la reversión debe
	// ignorarlo y devolver a los lotes originales, nunca recalcular FIFO.
	addLot(s, "lot-3", itemRes, "10", "0.50", t0.Add(-time.Hour))

	require.NoError(t, uc.ReverseConsumption(context.Background(), recID))

	assert.True(t, dec("10").Equal(s.lots["lot-1"].RemainingQuantity), "lot-1 debe restaurarse a 10")
	assert.True(t, dec("10").Equal(s.lots["lot-2"].RemainingQuantity), "lot-2 debe restaurarse a 10")
	assert.True(t, dec("10").Equal(s.lots["lot-3"].RemainingQuantity), "lot-3 no debe tocarse")
	assert.True(t, dec("20").Equal(s.items[itemRes].CurrentStock), "el agregado debe restaurarse")
	assert.Empty(t, s.records, "el registro revertido debe eliminarse")
}

func TestReverseConsumption_DobleReversionFalla(t *testing.T) {
	s := seedStore()
	addLot(s, "lot-1", itemRes, "10", "1.00", t0)

	uc := newUseCase(s, consumption.Policy{Method: entity.MethodFIFO})

	records, err := uc.RecordConsumption(context.Background(), consumption.ConsumptionInputDTO{
		BranchID: branchA, QuantitySold: dec("1"),
		Overrides: []consumption.IngredientLine{{StockItemID: itemRes, Quantity: dec("3"), UnitID: unitKg}},
	})
	require.NoError(t, err)

	require.NoError(t, uc.ReverseConsumption(context.Background(), records[0].ID))
	err = uc.ReverseConsumption(context.Background(), records[0].ID)
	assert.ErrorIs(t, err, domain.ErrReversalMismatch,
		"revertir dos veces el mismo registro debe fallar")
	assert.True(t, dec("10").Equal(s.lots["lot-1"].RemainingQuantity),
		"la doble reversión no debe inflar el remanente")
}

func TestReverseConsumption_RegistroInexistente(t *testing.T) {
	uc := newUseCase(seedStore(), consumption.Policy{Method: entity.MethodFIFO})

	err := uc.ReverseConsumption(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrReversalMismatch)
}

func TestReverseConsumption_ConFaltanteNegativo(t *testing.T) {
	s := seedStore()
	addLot(s, "lot-1", itemRes, "2", "8", t0)

	uc := newUseCase(s, consumption.Policy{Method: entity.MethodFIFO, AllowNegativeStock: true})

	records, err := uc.RecordConsumption(context.Background(), consumption.ConsumptionInputDTO{
		BranchID: branchA, QuantitySold: dec("1"),
		Overrides: []consumption.IngredientLine{{StockItemID: itemRes, Quantity: dec("5"), UnitID: unitKg}},
	})
	require.NoError(t, err)

	// La reversión acredita solo las asignaciones con lote; el faltante sin
	// lote no tiene nada que restaurar, pero el agregado vuelve completo.
	require.NoError(t, uc.ReverseConsumption(context.Background(), records[0].ID))
	assert.True(t, dec("2").Equal(s.lots["lot-1"].RemainingQuantity))
	assert.True(t, dec("20").Equal(s.items[itemRes].CurrentStock))
}

// ──────────────────────────────────────────────────────────────────────────────
// Propiedad de consistencia: consumir y revertir nunca genera drift
// ──────────────────────────────────────────────────────────────────────────────

func TestConsumoYReversion_SinDriftDelAgregado(t *testing.T) {
	s := seedStore()
	addLot(s, "lot-1", itemRes, "12", "1.00", t0)
	addLot(s, "lot-2", itemRes, "8", "2.00", t0.Add(time.Hour))
	addLot(s, "lot-tom", itemTom, "5", "0.50", t0)

	uc := newUseCase(s, consumption.Policy{Method: entity.MethodFIFO})
	ctx := context.Background()
	lotRepo := &fakeLotRepo{store: s}

	checkNoDrift := func(itemID string) {
		t.Helper()
		sum, err := lotRepo.SumRemaining(ctx, itemID)
		require.NoError(t, err)
		assert.True(t, sum.Equal(s.items[itemID].CurrentStock),
			"current_stock (%s) debe igualar la suma de remanentes (%s)",
			s.items[itemID].CurrentStock, sum)
	}

	// Fixture con agregados cuadrados respecto a los lotes
	s.items[itemRes].CurrentStock = dec("20")
	s.items[itemTom].CurrentStock = dec("5")

	var reversible string
	for i := 0; i < 5; i++ {
		records, err := uc.RecordConsumption(ctx, consumption.ConsumptionInputDTO{
			BranchID: branchA, DishID: dishID, QuantitySold: dec("2"), OrderID: "order-x",
		})
		require.NoError(t, err)
		for _, r := range records {
			if r.StockItemID == itemRes {
				reversible = r.ID
			}
		}
		checkNoDrift(itemRes)
		checkNoDrift(itemTom)
	}

	require.NoError(t, uc.ReverseConsumption(ctx, reversible))
	checkNoDrift(itemRes)
	checkNoDrift(itemTom)
}
