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

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo implementación de PurchaseOrderRepository sobre PostgreSQL.
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

// Create inserta cabecera y líneas.
func (r *PurchaseOrderRepo) Create(ctx context.Context, po *entity.PurchaseOrder) error {
	query := `
		INSERT INTO purchase_orders (id, order_number, branch_id, supplier_id, status, expected_at, notes, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		po.ID, po.OrderNumber, po.BranchID, po.SupplierID, po.Status,
		po.ExpectedAt, po.Notes, po.CreatedBy, po.CreatedAt, po.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert purchase order: %w", err)
	}
	for _, it := range po.Items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO purchase_order_items (id, purchase_order_id, stock_item_id, quantity, unit_price, received_quantity, unit_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			it.ID, it.PurchaseOrderID, it.StockItemID, it.Quantity, it.UnitPrice, it.ReceivedQuantity, it.UnitID)
		if err != nil {
			return fmt.Errorf("insert purchase order item: %w", err)
		}
	}
	return nil
}

func (r *PurchaseOrderRepo) getByID(ctx context.Context, id string, forUpdate bool) (*entity.PurchaseOrder, error) {
	query := `
		SELECT id, order_number, branch_id, supplier_id, status, expected_at, notes, created_by, created_at, updated_at
		FROM purchase_orders WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var po entity.PurchaseOrder
	err := r.q.QueryRow(ctx, query, id).Scan(
		&po.ID, &po.OrderNumber, &po.BranchID, &po.SupplierID, &po.Status,
		&po.ExpectedAt, &po.Notes, &po.CreatedBy, &po.CreatedAt, &po.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}

	items, err := r.listItems(ctx, po.ID)
	if err != nil {
		return nil, err
	}
	po.Items = items
	return &po, nil
}

// GetByID obtiene la orden con sus líneas.
func (r *PurchaseOrderRepo) GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.getByID(ctx, id, false)
}

// GetByIDForUpdate obtiene la orden bloqueando su cabecera (SELECT FOR UPDATE).
// Dos recepciones concurrentes sobre la misma orden se serializan aquí.
func (r *PurchaseOrderRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.getByID(ctx, id, true)
}

func (r *PurchaseOrderRepo) listItems(ctx context.Context, poID string) ([]*entity.PurchaseOrderItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, purchase_order_id, stock_item_id, quantity, unit_price, received_quantity, unit_id
		FROM purchase_order_items WHERE purchase_order_id = $1 ORDER BY id ASC`, poID)
	if err != nil {
		return nil, fmt.Errorf("list purchase order items: %w", err)
	}
	defer rows.Close()

	var items []*entity.PurchaseOrderItem
	for rows.Next() {
		var it entity.PurchaseOrderItem
		if err := rows.Scan(&it.ID, &it.PurchaseOrderID, &it.StockItemID, &it.Quantity,
			&it.UnitPrice, &it.ReceivedQuantity, &it.UnitID); err != nil {
			return nil, fmt.Errorf("scan purchase order item: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

// ListByBranch órdenes de la sucursal, opcionalmente filtradas por estado.
func (r *PurchaseOrderRepo) ListByBranch(ctx context.Context, branchID string, status entity.POStatus, limit, offset int) ([]*entity.PurchaseOrder, error) {
	query := `
		SELECT id, order_number, branch_id, supplier_id, status, expected_at, notes, created_by, created_at, updated_at
		FROM purchase_orders WHERE branch_id = $1`
	args := []any{branchID}
	if status != "" {
		query += ` AND status = $2 ORDER BY created_at DESC LIMIT $3 OFFSET $4`
		args = append(args, status, limit, offset)
	} else {
		query += ` ORDER BY created_at DESC LIMIT $2 OFFSET $3`
		args = append(args, limit, offset)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	defer rows.Close()

	var orders []*entity.PurchaseOrder
	for rows.Next() {
		var po entity.PurchaseOrder
		if err := rows.Scan(&po.ID, &po.OrderNumber, &po.BranchID, &po.SupplierID, &po.Status,
			&po.ExpectedAt, &po.Notes, &po.CreatedBy, &po.CreatedAt, &po.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		orders = append(orders, &po)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, po := range orders {
		items, err := r.listItems(ctx, po.ID)
		if err != nil {
			return nil, err
		}
		po.Items = items
	}
	return orders, nil
}

// UpdateStatus cambia el estado de la orden.
func (r *PurchaseOrderRepo) UpdateStatus(ctx context.Context, id string, status entity.POStatus) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE purchase_orders SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update purchase order status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateItemReceived fija la cantidad recibida acumulada de una línea.
func (r *PurchaseOrderRepo) UpdateItemReceived(ctx context.Context, itemID string, receivedQuantity decimal.Decimal) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE purchase_order_items SET received_quantity = $2 WHERE id = $1`,
		itemID, receivedQuantity)
	if err != nil {
		return fmt.Errorf("update received quantity: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// NextOrderNumber consecutivo por sucursal con formato PO-000123.
func (r *PurchaseOrderRepo) NextOrderNumber(ctx context.Context, branchID string) (string, error) {
	var n int64
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) + 1 FROM purchase_orders WHERE branch_id = $1`, branchID).Scan(&n)
	if err != nil {
		return "", fmt.Errorf("next order number: %w", err)
	}
	return fmt.Sprintf("PO-%06d", n), nil
}
