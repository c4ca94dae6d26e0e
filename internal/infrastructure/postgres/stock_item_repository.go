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

var _ repository.StockItemRepository = (*StockItemRepo)(nil)

// StockItemRepo implementación de StockItemRepository sobre PostgreSQL (usable con pool o tx).
type StockItemRepo struct {
	q Querier
}

// NewStockItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockItemRepository(q Querier) *StockItemRepo {
	return &StockItemRepo{q: q}
}

const stockItemColumns = `id, branch_id, name, sku, category_id, unit_id, supplier_id,
	current_stock, minimum_stock, maximum_stock, reorder_level, reorder_quantity,
	default_price, is_active, created_at, updated_at`

func scanStockItem(row pgx.Row) (*entity.StockItem, error) {
	var it entity.StockItem
	err := row.Scan(
		&it.ID, &it.BranchID, &it.Name, &it.SKU, &it.CategoryID, &it.UnitID, &it.SupplierID,
		&it.CurrentStock, &it.MinimumStock, &it.MaximumStock, &it.ReorderLevel, &it.ReorderQuantity,
		&it.DefaultPrice, &it.IsActive, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// Create persiste un nuevo ítem. CurrentStock inicia en 0.
func (r *StockItemRepo) Create(ctx context.Context, item *entity.StockItem) error {
	query := `
		INSERT INTO stock_items (id, branch_id, name, sku, category_id, unit_id, supplier_id,
			current_stock, minimum_stock, maximum_stock, reorder_level, reorder_quantity,
			default_price, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.BranchID, item.Name, item.SKU, item.CategoryID, item.UnitID, item.SupplierID,
		item.CurrentStock, item.MinimumStock, item.MaximumStock, item.ReorderLevel, item.ReorderQuantity,
		item.DefaultPrice, item.IsActive, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert stock item: %w", err)
	}
	return nil
}

// GetByID obtiene un ítem por ID.
func (r *StockItemRepo) GetByID(ctx context.Context, id string) (*entity.StockItem, error) {
	query := `SELECT ` + stockItemColumns + ` FROM stock_items WHERE id = $1`
	it, err := scanStockItem(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get stock item: %w", err)
	}
	return it, nil
}

// ListByBranch lista ítems de la sucursal con paginación.
func (r *StockItemRepo) ListByBranch(ctx context.Context, branchID string, limit, offset int) ([]*entity.StockItem, error) {
	query := `SELECT ` + stockItemColumns + `
		FROM stock_items WHERE branch_id = $1 ORDER BY name ASC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, branchID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock items: %w", err)
	}
	defer rows.Close()

	var items []*entity.StockItem
	for rows.Next() {
		it, err := scanStockItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// Update actualiza los datos maestros. No toca current_stock (ver AdjustCurrentStock).
func (r *StockItemRepo) Update(ctx context.Context, item *entity.StockItem) error {
	query := `
		UPDATE stock_items SET name = $2, category_id = $3, supplier_id = $4,
			minimum_stock = $5, maximum_stock = $6, reorder_level = $7,
			reorder_quantity = $8, default_price = $9, updated_at = $10
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		item.ID, item.Name, item.CategoryID, item.SupplierID,
		item.MinimumStock, item.MaximumStock, item.ReorderLevel,
		item.ReorderQuantity, item.DefaultPrice, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update stock item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Deactivate baja lógica del ítem.
func (r *StockItemRepo) Deactivate(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE stock_items SET is_active = false, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deactivate stock item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AdjustCurrentStock suma delta al agregado con un incremento relativo en SQL,
// nunca con read-modify-write; seguro bajo concurrencia dentro de la tx que
// también toca los lotes.
func (r *StockItemRepo) AdjustCurrentStock(ctx context.Context, itemID string, delta decimal.Decimal) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE stock_items SET current_stock = current_stock + $2, updated_at = now() WHERE id = $1`,
		itemID, delta)
	if err != nil {
		return fmt.Errorf("adjust current stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListLowStock ítems activos en o por debajo de su umbral de reposición.
func (r *StockItemRepo) ListLowStock(ctx context.Context, branchID string) ([]*entity.StockItem, error) {
	query := `SELECT ` + stockItemColumns + `
		FROM stock_items
		WHERE branch_id = $1 AND is_active = true
		  AND current_stock <= COALESCE(reorder_level, minimum_stock)
		ORDER BY name ASC`
	rows, err := r.q.Query(ctx, query, branchID)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	defer rows.Close()

	var items []*entity.StockItem
	for rows.Next() {
		it, err := scanStockItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan low stock item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
