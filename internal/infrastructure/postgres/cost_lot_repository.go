package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/pawanbhattarai/thehotelmountain-sub002/internal/domain"
	"github.com/pawanbhattarai/thehotelmountain-sub002/internal/domain/entity"
	"github.com/pawanbhattarai/thehotelmountain-sub002/internal/domain/repository"
)

var _ repository.CostLotRepository = (*CostLotRepo)(nil)

// CostLotRepo implementación de CostLotRepository sobre PostgreSQL.
// Los decrementos y créditos son UPDATEs relativos con guard en el WHERE:
// la invariante 0 <= remaining_quantity <= quantity se defiende en SQL.
type CostLotRepo struct {
	q Querier
}

// NewCostLotRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCostLotRepository(q Querier) *CostLotRepo {
	return &CostLotRepo{q: q}
}

const costLotColumns = `id, stock_item_id, branch_id, source, reference_id, quantity,
	unit_cost, remaining_quantity, batch_number, expiry_date, costing_method, acquired_at, created_at`

func scanCostLot(row pgx.Row) (*entity.CostLot, error) {
	var l entity.CostLot
	err := row.Scan(
		&l.ID, &l.StockItemID, &l.BranchID, &l.Source, &l.ReferenceID, &l.Quantity,
		&l.UnitCost, &l.RemainingQuantity, &l.BatchNumber, &l.ExpiryDate,
		&l.CostingMethod, &l.AcquiredAt, &l.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// Create persiste un lote nuevo (remaining_quantity = quantity).
func (r *CostLotRepo) Create(ctx context.Context, lot *entity.CostLot) error {
	query := `
		INSERT INTO cost_lots (id, stock_item_id, branch_id, source, reference_id, quantity,
			unit_cost, remaining_quantity, batch_number, expiry_date, costing_method, acquired_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		lot.ID, lot.StockItemID, lot.BranchID, lot.Source, lot.ReferenceID, lot.Quantity,
		lot.UnitCost, lot.RemainingQuantity, lot.BatchNumber, lot.ExpiryDate,
		lot.CostingMethod, lot.AcquiredAt, lot.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert cost lot: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por ID.
func (r *CostLotRepo) GetByID(ctx context.Context, id string) (*entity.CostLot, error) {
	query := `SELECT ` + costLotColumns + ` FROM cost_lots WHERE id = $1`
	l, err := scanCostLot(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get cost lot: %w", err)
	}
	return l, nil
}

// ListByItem historial de lotes del ítem, más reciente primero.
func (r *CostLotRepo) ListByItem(ctx context.Context, stockItemID string, limit, offset int) ([]*entity.CostLot, error) {
	query := `SELECT ` + costLotColumns + `
		FROM cost_lots WHERE stock_item_id = $1
		ORDER BY acquired_at DESC, id DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, stockItemID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list cost lots: %w", err)
	}
	defer rows.Close()

	var lots []*entity.CostLot
	for rows.Next() {
		l, err := scanCostLot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cost lot: %w", err)
		}
		lots = append(lots, l)
	}
	return lots, rows.Err()
}

// ListAvailableForUpdate lotes con remanente bloqueados con FOR UPDATE.
// El orden por acquired_at (con id como desempate estable) lo fija
// oldestFirst: ascendente para FIFO/average, descendente para LIFO.
func (r *CostLotRepo) ListAvailableForUpdate(ctx context.Context, stockItemID string, oldestFirst bool) ([]*entity.CostLot, error) {
	order := `acquired_at ASC, id ASC`
	if !oldestFirst {
		order = `acquired_at DESC, id DESC`
	}
	query := `SELECT ` + costLotColumns + `
		FROM cost_lots WHERE stock_item_id = $1 AND remaining_quantity > 0
		ORDER BY ` + order + `
		FOR UPDATE`
	rows, err := r.q.Query(ctx, query, stockItemID)
	if err != nil {
		return nil, fmt.Errorf("list available lots: %w", err)
	}
	defer rows.Close()

	var lots []*entity.CostLot
	for rows.Next() {
		l, err := scanCostLot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan available lot: %w", err)
		}
		lots = append(lots, l)
	}
	return lots, rows.Err()
}

// DecrementRemaining resta qty del remanente. El WHERE impide dejarlo
// negativo: cero filas afectadas significa carrera perdida o datos corruptos.
func (r *CostLotRepo) DecrementRemaining(ctx context.Context, lotID string, qty decimal.Decimal) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE cost_lots SET remaining_quantity = remaining_quantity - $2
		WHERE id = $1 AND remaining_quantity >= $2`,
		lotID, qty)
	if err != nil {
		return fmt.Errorf("decrement lot remaining: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrInsufficientStock
	}
	return nil
}

// CreditRemaining devuelve qty al remanente (reversión). El WHERE impide
// superar la cantidad original del lote.
func (r *CostLotRepo) CreditRemaining(ctx context.Context, lotID string, qty decimal.Decimal) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE cost_lots SET remaining_quantity = remaining_quantity + $2
		WHERE id = $1 AND remaining_quantity + $2 <= quantity`,
		lotID, qty)
	if err != nil {
		return fmt.Errorf("credit lot remaining: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrReversalMismatch
	}
	return nil
}

// SumRemaining suma de remanentes del ítem.
func (r *CostLotRepo) SumRemaining(ctx context.Context, stockItemID string) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(remaining_quantity), 0) FROM cost_lots WHERE stock_item_id = $1`,
		stockItemID).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum lot remaining: %w", err)
	}
	return sum, nil
}

// AggregateSnapshot agregado materializado vs suma real de lotes por ítem
// activo de la sucursal (entrada de la conciliación).
func (r *CostLotRepo) AggregateSnapshot(ctx context.Context, branchID string) ([]repository.StockAggregateRow, error) {
	query := `
		SELECT si.id, si.name, si.current_stock, COALESCE(SUM(cl.remaining_quantity), 0)
		FROM stock_items si
		LEFT JOIN cost_lots cl ON cl.stock_item_id = si.id
		WHERE si.branch_id = $1 AND si.is_active = true
		GROUP BY si.id, si.name, si.current_stock
		ORDER BY si.name ASC`
	rows, err := r.q.Query(ctx, query, branchID)
	if err != nil {
		return nil, fmt.Errorf("aggregate snapshot: %w", err)
	}
	defer rows.Close()

	var out []repository.StockAggregateRow
	for rows.Next() {
		var row repository.StockAggregateRow
		if err := rows.Scan(&row.StockItemID, &row.ItemName, &row.CurrentStock, &row.LotRemaining); err != nil {
			return nil, fmt.Errorf("scan aggregate row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
