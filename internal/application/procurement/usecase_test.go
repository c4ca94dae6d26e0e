package procurement_test

import (
	"context"
	"fmt"
	"sort"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawanbhattarai/thehotelmountain-sub002/internal/application/procurement"
	"github.com/pawanbhattarai/thehotelmountain-sub002/internal/domain"
	"github.com/pawanbhattarai/thehotelmountain-sub002/internal/domain/entity"
	"github.com/pawanbhattarai/thehotelmountain-sub002/internal/domain/repository"
	"github.com/pawanbhattarai/thehotelmountain-sub002/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type poStore struct {
	pos       map[string]*entity.PurchaseOrder
	suppliers map[string]*entity.Supplier
	items     map[string]*entity.StockItem
	lots      map[string]*entity.CostLot
}

func newPOStore() *poStore {
	return &poStore{
		pos:       make(map[string]*entity.PurchaseOrder),
		suppliers: make(map[string]*entity.Supplier),
		items:     make(map[string]*entity.StockItem),
		lots:      make(map[string]*entity.CostLot),
	}
}

func copyPO(po *entity.PurchaseOrder) *entity.PurchaseOrder {
	c := *po
	c.Items = make([]*entity.PurchaseOrderItem, len(po.Items))
	for i, it := range po.Items {
		ic := *it
		c.Items[i] = &ic
	}
	return &c
}

func (s *poStore) snapshot() *poStore {
	snap := newPOStore()
	for id, po := range s.pos {
		snap.pos[id] = copyPO(po)
	}
	for id, l := range s.lots {
		lc := *l
		snap.lots[id] = &lc
	}
	for id, i := range s.items {
		ic := *i
		snap.items[id] = &ic
	}
	snap.suppliers = s.suppliers
	return snap
}

func (s *poStore) restore(snap *poStore) {
	s.pos = snap.pos
	s.lots = snap.lots
	s.items = snap.items
}

type fakeReceivingTx struct{ store *poStore }

func (tx *fakeReceivingTx) RunReceiving(ctx context.Context, fn func(
	poRepo repository.PurchaseOrderRepository,
	lotRepo repository.CostLotRepository,
	itemRepo repository.StockItemRepository,
) error) error {
	snap := tx.store.snapshot()
	err := fn(&fakePORepo{tx.store}, &fakeLotRepo{tx.store}, &fakeItemRepo{tx.store})
	if err != nil {
		tx.store.restore(snap)
	}
	return err
}

// ── fakePORepo ──

type fakePORepo struct{ store *poStore }

func (r *fakePORepo) Create(ctx context.Context, po *entity.PurchaseOrder) error {
	r.store.pos[po.ID] = copyPO(po)
	return nil
}

func (r *fakePORepo) GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	po, ok := r.store.pos[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return copyPO(po), nil
}

func (r *fakePORepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.GetByID(ctx, id)
}

func (r *fakePORepo) ListByBranch(ctx context.Context, branchID string, status entity.POStatus, limit, offset int) ([]*entity.PurchaseOrder, error) {
	var out []*entity.PurchaseOrder
	for _, po := range r.store.pos {
		if po.BranchID != branchID {
			continue
		}
		if status != "" && po.Status != status {
			continue
		}
		out = append(out, copyPO(po))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderNumber < out[j].OrderNumber })
	return out, nil
}

func (r *fakePORepo) UpdateStatus(ctx context.Context, id string, status entity.POStatus) error {
	po, ok := r.store.pos[id]
	if !ok {
		return domain.ErrNotFound
	}
	po.Status = status
	return nil
}

func (r *fakePORepo) UpdateItemReceived(ctx context.Context, itemID string, receivedQuantity decimal.Decimal) error {
	for _, po := range r.store.pos {
		for _, it := range po.Items {
			if it.ID == itemID {
				it.ReceivedQuantity = receivedQuantity
				return nil
			}
		}
	}
	return domain.ErrNotFound
}

func (r *fakePORepo) NextOrderNumber(ctx context.Context, branchID string) (string, error) {
	n := 1
	for _, po := range r.store.pos {
		if po.BranchID == branchID {
			n++
		}
	}
	return fmt.Sprintf("PO-%06d", n), nil
}

// ── fakeSupplierRepo ──

type fakeSupplierRepo struct{ store *poStore }

func (r *fakeSupplierRepo) Create(ctx context.Context, supplier *entity.Supplier) error {
	r.store.suppliers[supplier.ID] = supplier
	return nil
}

func (r *fakeSupplierRepo) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	s, ok := r.store.suppliers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

func (r *fakeSupplierRepo) ListByBranch(ctx context.Context, branchID string, limit, offset int) ([]*entity.Supplier, error) {
	var out []*entity.Supplier
	for _, s := range r.store.suppliers {
		if s.BranchID == branchID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSupplierRepo) Update(ctx context.Context, supplier *entity.Supplier) error {
	r.store.suppliers[supplier.ID] = supplier
	return nil
}

func (r *fakeSupplierRepo) Deactivate(ctx context.Context, id string) error {
	s, ok := r.store.suppliers[id]
	if !ok {
		return domain.ErrNotFound
	}
	s.IsActive = false
	return nil
}

// ── fakeItemRepo ──

type fakeItemRepo struct{ store *poStore }

func (r *fakeItemRepo) Create(ctx context.Context, item *entity.StockItem) error {
	c := *item
	r.store.items[item.ID] = &c
	return nil
}

func (r *fakeItemRepo) GetByID(ctx context.Context, id string) (*entity.StockItem, error) {
	item, ok := r.store.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := *item
	return &c, nil
}

func (r *fakeItemRepo) ListByBranch(ctx context.Context, branchID string, limit, offset int) ([]*entity.StockItem, error) {
	var out []*entity.StockItem
	for _, i := range r.store.items {
		if i.BranchID == branchID {
			c := *i
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *fakeItemRepo) Update(ctx context.Context, item *entity.StockItem) error {
	c := *item
	r.store.items[item.ID] = &c
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
	return nil, nil
}

// ── fakeLotRepo ──

type fakeLotRepo struct{ store *poStore }

func (r *fakeLotRepo) Create(ctx context.Context, lot *entity.CostLot) error {
	c := *lot
	r.store.lots[lot.ID] = &c
	return nil
}

func (r *fakeLotRepo) GetByID(ctx context.Context, id string) (*entity.CostLot, error) {
	l, ok := r.store.lots[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := *l
	return &c, nil
}

func (r *fakeLotRepo) ListByItem(ctx context.Context, stockItemID string, limit, offset int) ([]*entity.CostLot, error) {
	var out []*entity.CostLot
	for _, l := range r.store.lots {
		if l.StockItemID == stockItemID {
			c := *l
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *fakeLotRepo) ListAvailableForUpdate(ctx context.Context, stockItemID string, oldestFirst bool) ([]*entity.CostLot, error) {
	return r.ListByItem(ctx, stockItemID, 0, 0)
}

func (r *fakeLotRepo) DecrementRemaining(ctx context.Context, lotID string, qty decimal.Decimal) error {
	l, ok := r.store.lots[lotID]
	if !ok || l.RemainingQuantity.LessThan(qty) {
		return domain.ErrInsufficientStock
	}
	l.RemainingQuantity = l.RemainingQuantity.Sub(qty)
	return nil
}

func (r *fakeLotRepo) CreditRemaining(ctx context.Context, lotID string, qty decimal.Decimal) error {
	l, ok := r.store.lots[lotID]
	if !ok {
		return domain.ErrReversalMismatch
	}
	l.RemainingQuantity = l.RemainingQuantity.Add(qty)
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
	return nil, nil
}

// ── fakePDFGen ──

type fakePDFGen struct {
	lastPO    *entity.PurchaseOrder
	lastNames map[string]string
}

func (g *fakePDFGen) GeneratePurchaseOrderPDF(ctx context.Context, po *entity.PurchaseOrder, supplier *entity.Supplier, itemNames map[string]string) ([]byte, error) {
	g.lastPO = po
	g.lastNames = itemNames
	return []byte("%PDF-fake"), nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const (
	branchA    = "branch-a"
	supplierID = "supplier-1"
	itemHarina = "item-harina"
	itemAceite = "item-aceite"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func seedPOStore() *poStore {
	s := newPOStore()
	s.suppliers[supplierID] = &entity.Supplier{
		ID: supplierID, BranchID: branchA, Name: "Distribuidora Andina", IsActive: true,
	}
	s.items[itemHarina] = &entity.StockItem{
		ID: itemHarina, BranchID: branchA, Name: "Harina", UnitID: "unit-kg",
		CurrentStock: decimal.Zero, IsActive: true,
	}
	s.items[itemAceite] = &entity.StockItem{
		ID: itemAceite, BranchID: branchA, Name: "Aceite", UnitID: "unit-l",
		CurrentStock: decimal.Zero, IsActive: true,
	}
	return s
}

func newPOUseCase(s *poStore, pdfGen procurement.PurchaseOrderPDFGenerator) *procurement.ProcurementUseCase {
	return procurement.NewProcurementUseCase(
		&fakeReceivingTx{store: s},
		&fakePORepo{store: s},
		&fakeSupplierRepo{store: s},
		&fakeItemRepo{store: s},
		pdfGen,
		entity.MethodFIFO,
		logger.Nop(),
	)
}

// createConfirmedPO crea una orden con dos líneas y la lleva a confirmed.
func createConfirmedPO(t *testing.T, uc *procurement.ProcurementUseCase) *entity.PurchaseOrder {
	t.Helper()
	po, err := uc.CreatePurchaseOrder(context.Background(), procurement.CreatePOInput{
		BranchID: branchA, SupplierID: supplierID, CreatedBy: "user-1",
		Items: []procurement.POItemInput{
			{StockItemID: itemHarina, Quantity: dec("50"), UnitPrice: dec("1.20")},
			{StockItemID: itemAceite, Quantity: dec("10"), UnitPrice: dec("4.50")},
		},
	})
	require.NoError(t, err)
	require.NoError(t, uc.TransitionStatus(context.Background(), po.ID, entity.POStatusSent))
	require.NoError(t, uc.TransitionStatus(context.Background(), po.ID, entity.POStatusConfirmed))
	return po
}

// ──────────────────────────────────────────────────────────────────────────────
// CreatePurchaseOrder
// ──────────────────────────────────────────────────────────────────────────────

func TestCreatePurchaseOrder_CreaBorradorNumerado(t *testing.T) {
	s := seedPOStore()
	uc := newPOUseCase(s, &fakePDFGen{})

	po, err := uc.CreatePurchaseOrder(context.Background(), procurement.CreatePOInput{
		BranchID: branchA, SupplierID: supplierID, CreatedBy: "user-1",
		Items: []procurement.POItemInput{
			{StockItemID: itemHarina, Quantity: dec("50"), UnitPrice: dec("1.20")},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.POStatusDraft, po.Status, "la orden nueva debe nacer en draft")
	assert.Equal(t, "PO-000001", po.OrderNumber)
	require.Len(t, po.Items, 1)
	assert.True(t, decimal.Zero.Equal(po.Items[0].ReceivedQuantity))
	assert.True(t, dec("60").Equal(po.OrderedTotal()), "50 × $1.20 = $60")
}

func TestCreatePurchaseOrder_CantidadNoPositiva(t *testing.T) {
	uc := newPOUseCase(seedPOStore(), &fakePDFGen{})

	_, err := uc.CreatePurchaseOrder(context.Background(), procurement.CreatePOInput{
		BranchID: branchA, SupplierID: supplierID,
		Items: []procurement.POItemInput{
			{StockItemID: itemHarina, Quantity: decimal.Zero, UnitPrice: dec("1.20")},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreatePurchaseOrder_ProveedorDeOtraSucursal(t *testing.T) {
	s := seedPOStore()
	s.suppliers["supplier-b"] = &entity.Supplier{ID: "supplier-b", BranchID: "branch-b", Name: "Otro"}
	uc := newPOUseCase(s, &fakePDFGen{})

	_, err := uc.CreatePurchaseOrder(context.Background(), procurement.CreatePOInput{
		BranchID: branchA, SupplierID: "supplier-b",
		Items: []procurement.POItemInput{
			{StockItemID: itemHarina, Quantity: dec("1"), UnitPrice: dec("1")},
		},
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// TransitionStatus
// ──────────────────────────────────────────────────────────────────────────────

func TestTransitionStatus_CicloValido(t *testing.T) {
	s := seedPOStore()
	uc := newPOUseCase(s, &fakePDFGen{})
	po := createConfirmedPO(t, uc)

	got, err := uc.GetPurchaseOrder(context.Background(), po.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.POStatusConfirmed, got.Status)
}

func TestTransitionStatus_SaltoInvalido(t *testing.T) {
	s := seedPOStore()
	uc := newPOUseCase(s, &fakePDFGen{})

	po, err := uc.CreatePurchaseOrder(context.Background(), procurement.CreatePOInput{
		BranchID: branchA, SupplierID: supplierID,
		Items: []procurement.POItemInput{
			{StockItemID: itemHarina, Quantity: dec("1"), UnitPrice: dec("1")},
		},
	})
	require.NoError(t, err)

	// draft no puede saltar directo a confirmed
	err = uc.TransitionStatus(context.Background(), po.ID, entity.POStatusConfirmed)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestTransitionStatus_NoCancelaConRecepciones(t *testing.T) {
	s := seedPOStore()
	uc := newPOUseCase(s, &fakePDFGen{})
	po := createConfirmedPO(t, uc)

	_, err := uc.ReceiveItems(context.Background(), po.ID, []procurement.ReceiptLine{
		{POItemID: po.Items[0].ID, Quantity: dec("10"), UnitCost: dec("1.20")},
	})
	require.NoError(t, err)

	err = uc.TransitionStatus(context.Background(), po.ID, entity.POStatusCancelled)
	assert.ErrorIs(t, err, domain.ErrConflict,
		"una orden con mercancía recibida no debe poder cancelarse")
}

// ──────────────────────────────────────────────────────────────────────────────
// ReceiveItems
// ──────────────────────────────────────────────────────────────────────────────

func TestReceiveItems_RecepcionParcialCreaLote(t *testing.T) {
	s := seedPOStore()
	uc := newPOUseCase(s, &fakePDFGen{})
	po := createConfirmedPO(t, uc)

	got, err := uc.ReceiveItems(context.Background(), po.ID, []procurement.ReceiptLine{
		{POItemID: po.Items[0].ID, Quantity: dec("20"), UnitCost: dec("1.25"), BatchNumber: "L-77"},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.POStatusPartiallyReceived, got.Status,
		"con líneas incompletas el estado debe ser partially_received")

	// Debe existir un lote con remanente completo trazado a la línea
	require.Len(t, s.lots, 1)
	var lot *entity.CostLot
	for _, l := range s.lots {
		lot = l
	}
	assert.Equal(t, itemHarina, lot.StockItemID)
	assert.Equal(t, entity.LotSourcePurchase, lot.Source)
	assert.Equal(t, po.Items[0].ID, lot.ReferenceID)
	assert.True(t, dec("20").Equal(lot.Quantity))
	assert.True(t, dec("20").Equal(lot.RemainingQuantity), "el lote nace con remanente = cantidad")
	assert.True(t, dec("1.25").Equal(lot.UnitCost), "el costo del lote es el real de recepción, no el ordenado")
	assert.Equal(t, "L-77", lot.BatchNumber)

	assert.True(t, dec("20").Equal(s.items[itemHarina].CurrentStock), "el agregado debe subir en lo recibido")
}

func TestReceiveItems_RecepcionCompletaCierraOrden(t *testing.T) {
	s := seedPOStore()
	uc := newPOUseCase(s, &fakePDFGen{})
	po := createConfirmedPO(t, uc)

	// Primera recepción parcial, segunda completa el resto de ambas líneas
	_, err := uc.ReceiveItems(context.Background(), po.ID, []procurement.ReceiptLine{
		{POItemID: po.Items[0].ID, Quantity: dec("30"), UnitCost: dec("1.20")},
	})
	require.NoError(t, err)

	got, err := uc.ReceiveItems(context.Background(), po.ID, []procurement.ReceiptLine{
		{POItemID: po.Items[0].ID, Quantity: dec("20"), UnitCost: dec("1.30")},
		{POItemID: po.Items[1].ID, Quantity: dec("10"), UnitCost: dec("4.50")},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.POStatusReceived, got.Status,
		"con todas las líneas completas la orden debe quedar received")
	assert.Len(t, s.lots, 3, "cada línea de recepción genera su propio lote")
	assert.True(t, dec("50").Equal(s.items[itemHarina].CurrentStock))
	assert.True(t, dec("10").Equal(s.items[itemAceite].CurrentStock))
}

func TestReceiveItems_SobreRecepcionRechazada(t *testing.T) {
	s := seedPOStore()
	uc := newPOUseCase(s, &fakePDFGen{})
	po := createConfirmedPO(t, uc)

	_, err := uc.ReceiveItems(context.Background(), po.ID, []procurement.ReceiptLine{
		{POItemID: po.Items[0].ID, Quantity: dec("51"), UnitCost: dec("1.20")},
	})
	assert.ErrorIs(t, err, domain.ErrOverReceipt,
		"recibir más de lo ordenado debe rechazarse")
	assert.Empty(t, s.lots, "no debe crearse ningún lote")
	assert.True(t, decimal.Zero.Equal(s.items[itemHarina].CurrentStock))
}

func TestReceiveItems_LoteAtomicoAnteSobreRecepcion(t *testing.T) {
	s := seedPOStore()
	uc := newPOUseCase(s, &fakePDFGen{})
	po := createConfirmedPO(t, uc)

	// La primera línea es válida, la segunda excede lo ordenado: el rollback
	// debe deshacer también la primera.
	_, err := uc.ReceiveItems(context.Background(), po.ID, []procurement.ReceiptLine{
		{POItemID: po.Items[0].ID, Quantity: dec("20"), UnitCost: dec("1.20")},
		{POItemID: po.Items[1].ID, Quantity: dec("11"), UnitCost: dec("4.50")},
	})
	require.ErrorIs(t, err, domain.ErrOverReceipt)

	assert.Empty(t, s.lots, "la línea válida también debe revertirse")
	assert.True(t, decimal.Zero.Equal(s.items[itemHarina].CurrentStock))

	got, err := uc.GetPurchaseOrder(context.Background(), po.ID)
	require.NoError(t, err)
	assert.True(t, decimal.Zero.Equal(got.Items[0].ReceivedQuantity),
		"received_quantity de la línea válida debe quedar en cero")
	assert.Equal(t, entity.POStatusConfirmed, got.Status)
}

func TestReceiveItems_OrdenEnBorradorNoRecibe(t *testing.T) {
	s := seedPOStore()
	uc := newPOUseCase(s, &fakePDFGen{})

	po, err := uc.CreatePurchaseOrder(context.Background(), procurement.CreatePOInput{
		BranchID: branchA, SupplierID: supplierID,
		Items: []procurement.POItemInput{
			{StockItemID: itemHarina, Quantity: dec("5"), UnitPrice: dec("1")},
		},
	})
	require.NoError(t, err)

	_, err = uc.ReceiveItems(context.Background(), po.ID, []procurement.ReceiptLine{
		{POItemID: po.Items[0].ID, Quantity: dec("5"), UnitCost: dec("1")},
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestReceiveItems_OrdenYaRecibidaFalla(t *testing.T) {
	s := seedPOStore()
	uc := newPOUseCase(s, &fakePDFGen{})
	po := createConfirmedPO(t, uc)

	_, err := uc.ReceiveItems(context.Background(), po.ID, []procurement.ReceiptLine{
		{POItemID: po.Items[0].ID, Quantity: dec("50"), UnitCost: dec("1.20")},
		{POItemID: po.Items[1].ID, Quantity: dec("10"), UnitCost: dec("4.50")},
	})
	require.NoError(t, err)

	_, err = uc.ReceiveItems(context.Background(), po.ID, []procurement.ReceiptLine{
		{POItemID: po.Items[0].ID, Quantity: dec("1"), UnitCost: dec("1.20")},
	})
	assert.ErrorIs(t, err, domain.ErrOverReceipt)
}

func TestReceiveItems_LineaDesconocida(t *testing.T) {
	s := seedPOStore()
	uc := newPOUseCase(s, &fakePDFGen{})
	po := createConfirmedPO(t, uc)

	_, err := uc.ReceiveItems(context.Background(), po.ID, []procurement.ReceiptLine{
		{POItemID: "no-existe", Quantity: dec("1"), UnitCost: dec("1")},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// GeneratePDF
// ──────────────────────────────────────────────────────────────────────────────

func TestGeneratePDF_ResuelveNombresDeItems(t *testing.T) {
	s := seedPOStore()
	gen := &fakePDFGen{}
	uc := newPOUseCase(s, gen)
	po := createConfirmedPO(t, uc)

	pdf, err := uc.GeneratePDF(context.Background(), po.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)

	require.NotNil(t, gen.lastPO)
	assert.Equal(t, po.ID, gen.lastPO.ID)
	assert.Equal(t, "Harina", gen.lastNames[itemHarina],
		"el generador debe recibir los nombres resueltos de los ítems")
	assert.Equal(t, "Aceite", gen.lastNames[itemAceite])
}
