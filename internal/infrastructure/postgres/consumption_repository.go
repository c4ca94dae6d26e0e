package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pawanbhattarai/thehotelmountain-sub002/internal/domain"
	"github.com/pawanbhattarai/thehotelmountain-sub002/internal/domain/entity"
	"github.com/pawanbhattarai/thehotelmountain-sub002/internal/domain/repository"
)

var _ repository.ConsumptionRepository = (*ConsumptionRepo)(nil)

// ConsumptionRepo implementación de ConsumptionRepository sobre PostgreSQL.
type ConsumptionRepo struct {
	q Querier
}

// NewConsumptionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewConsumptionRepository(q Querier) *ConsumptionRepo {
	return &ConsumptionRepo{q: q}
}

const consumptionColumns = `id, stock_item_id, branch_id, order_id, order_item_id, dish_id,
	quantity, unit_cost, total_cost, costing_method, consumed_at, created_by, created_at`

func scanConsumption(row pgx.Row) (*entity.ConsumptionRecord, error) {
	var c entity.ConsumptionRecord
	err := row.Scan(
		&c.ID, &c.StockItemID, &c.BranchID, &c.OrderID, &c.OrderItemID, &c.DishID,
		&c.Quantity, &c.UnitCost, &c.TotalCost, &c.CostingMethod, &c.ConsumedAt,
		&c.CreatedBy, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserta el registro y sus asignaciones por lote.
func (r *ConsumptionRepo) Create(ctx context.Context, record *entity.ConsumptionRecord) error {
	query := `
		INSERT INTO consumption_records (id, stock_item_id, branch_id, order_id, order_item_id, dish_id,
			quantity, unit_cost, total_cost, costing_method, consumed_at, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		record.ID, record.StockItemID, record.BranchID, record.OrderID, record.OrderItemID, record.DishID,
		record.Quantity, record.UnitCost, record.TotalCost, record.CostingMethod, record.ConsumedAt,
		record.CreatedBy, record.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert consumption record: %w", err)
	}
	for _, a := range record.Allocations {
		_, err := r.q.Exec(ctx, `
			INSERT INTO lot_allocations (id, consumption_id, lot_id, quantity, unit_cost)
			VALUES ($1, $2, NULLIF($3, ''), $4, $5)`,
			a.ID, a.ConsumptionID, a.LotID, a.Quantity, a.UnitCost)
		if err != nil {
			return fmt.Errorf("insert lot allocation: %w", err)
		}
	}
	return nil
}

// GetByID devuelve el registro con sus asignaciones cargadas.
func (r *ConsumptionRepo) GetByID(ctx context.Context, id string) (*entity.ConsumptionRecord, error) {
	query := `SELECT ` + consumptionColumns + ` FROM consumption_records WHERE id = $1`
	rec, err := scanConsumption(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get consumption record: %w", err)
	}

	allocs, err := r.listAllocations(ctx, rec.ID)
	if err != nil {
		return nil, err
	}
	rec.Allocations = allocs
	return rec, nil
}

func (r *ConsumptionRepo) listAllocations(ctx context.Context, consumptionID string) ([]*entity.LotAllocation, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, consumption_id, COALESCE(lot_id, ''), quantity, unit_cost
		FROM lot_allocations WHERE consumption_id = $1 ORDER BY id ASC`, consumptionID)
	if err != nil {
		return nil, fmt.Errorf("list lot allocations: %w", err)
	}
	defer rows.Close()

	var allocs []*entity.LotAllocation
	for rows.Next() {
		var a entity.LotAllocation
		if err := rows.Scan(&a.ID, &a.ConsumptionID, &a.LotID, &a.Quantity, &a.UnitCost); err != nil {
			return nil, fmt.Errorf("scan lot allocation: %w", err)
		}
		allocs = append(allocs, &a)
	}
	return allocs, rows.Err()
}

// ListByItem historial de consumos de un ítem, más reciente primero.
func (r *ConsumptionRepo) ListByItem(ctx context.Context, stockItemID string, limit, offset int) ([]*entity.ConsumptionRecord, error) {
	query := `SELECT ` + consumptionColumns + `
		FROM consumption_records WHERE stock_item_id = $1
		ORDER BY consumed_at DESC, id DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, stockItemID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list consumption records: %w", err)
	}
	defer rows.Close()

	var recs []*entity.ConsumptionRecord
	for rows.Next() {
		rec, err := scanConsumption(rows)
		if err != nil {
			return nil, fmt.Errorf("scan consumption record: %w", err)
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// ListByOrder consumos causados por una orden de venta (para anulaciones).
func (r *ConsumptionRepo) ListByOrder(ctx context.Context, orderID string) ([]*entity.ConsumptionRecord, error) {
	query := `SELECT ` + consumptionColumns + `
		FROM consumption_records WHERE order_id = $1 ORDER BY consumed_at ASC, id ASC`
	rows, err := r.q.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list consumptions by order: %w", err)
	}
	defer rows.Close()

	var recs []*entity.ConsumptionRecord
	for rows.Next() {
		rec, err := scanConsumption(rows)
		if err != nil {
			return nil, fmt.Errorf("scan consumption record: %w", err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, rec := range recs {
		allocs, err := r.listAllocations(ctx, rec.ID)
		if err != nil {
			return nil, err
		}
		rec.Allocations = allocs
	}
	return recs, nil
}

// Delete elimina el registro y sus asignaciones (la reversión ya restauró
// los lotes en la misma tx).
func (r *ConsumptionRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM lot_allocations WHERE consumption_id = $1`, id); err != nil {
		return fmt.Errorf("delete lot allocations: %w", err)
	}
	cmd, err := r.q.Exec(ctx, `DELETE FROM consumption_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete consumption record: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
