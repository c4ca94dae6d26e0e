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

var _ repository.StockCategoryRepository = (*StockCategoryRepo)(nil)
var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// StockCategoryRepo implementación de StockCategoryRepository sobre PostgreSQL.
type StockCategoryRepo struct {
	q Querier
}

// NewStockCategoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockCategoryRepository(q Querier) *StockCategoryRepo {
	return &StockCategoryRepo{q: q}
}

// Create persiste una categoría.
func (r *StockCategoryRepo) Create(ctx context.Context, category *entity.StockCategory) error {
	query := `
		INSERT INTO stock_categories (id, branch_id, name, description, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		category.ID, category.BranchID, category.Name, category.Description,
		category.IsActive, category.CreatedAt, category.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert stock category: %w", err)
	}
	return nil
}

// GetByID obtiene una categoría por ID.
func (r *StockCategoryRepo) GetByID(ctx context.Context, id string) (*entity.StockCategory, error) {
	query := `
		SELECT id, branch_id, name, description, is_active, created_at, updated_at
		FROM stock_categories WHERE id = $1`
	var c entity.StockCategory
	err := r.q.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.BranchID, &c.Name, &c.Description, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get stock category: %w", err)
	}
	return &c, nil
}

// ListByBranch categorías activas de la sucursal.
func (r *StockCategoryRepo) ListByBranch(ctx context.Context, branchID string) ([]*entity.StockCategory, error) {
	query := `
		SELECT id, branch_id, name, description, is_active, created_at, updated_at
		FROM stock_categories WHERE branch_id = $1 AND is_active = true ORDER BY name ASC`
	rows, err := r.q.Query(ctx, query, branchID)
	if err != nil {
		return nil, fmt.Errorf("list stock categories: %w", err)
	}
	defer rows.Close()

	var cats []*entity.StockCategory
	for rows.Next() {
		var c entity.StockCategory
		if err := rows.Scan(&c.ID, &c.BranchID, &c.Name, &c.Description, &c.IsActive, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock category: %w", err)
		}
		cats = append(cats, &c)
	}
	return cats, rows.Err()
}

// Update actualiza nombre y descripción.
func (r *StockCategoryRepo) Update(ctx context.Context, category *entity.StockCategory) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE stock_categories SET name = $2, description = $3, updated_at = $4 WHERE id = $1`,
		category.ID, category.Name, category.Description, category.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update stock category: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Deactivate baja lógica de la categoría.
func (r *StockCategoryRepo) Deactivate(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE stock_categories SET is_active = false, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deactivate stock category: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SupplierRepo implementación de SupplierRepository sobre PostgreSQL.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

// Create persiste un proveedor.
func (r *SupplierRepo) Create(ctx context.Context, supplier *entity.Supplier) error {
	query := `
		INSERT INTO suppliers (id, branch_id, name, contact_person, email, phone, address, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		supplier.ID, supplier.BranchID, supplier.Name, supplier.ContactPerson,
		supplier.Email, supplier.Phone, supplier.Address, supplier.IsActive,
		supplier.CreatedAt, supplier.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

// GetByID obtiene un proveedor por ID.
func (r *SupplierRepo) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	query := `
		SELECT id, branch_id, name, contact_person, email, phone, address, is_active, created_at, updated_at
		FROM suppliers WHERE id = $1`
	var s entity.Supplier
	err := r.q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.BranchID, &s.Name, &s.ContactPerson, &s.Email, &s.Phone,
		&s.Address, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return &s, nil
}

// ListByBranch proveedores de la sucursal con paginación.
func (r *SupplierRepo) ListByBranch(ctx context.Context, branchID string, limit, offset int) ([]*entity.Supplier, error) {
	query := `
		SELECT id, branch_id, name, contact_person, email, phone, address, is_active, created_at, updated_at
		FROM suppliers WHERE branch_id = $1 ORDER BY name ASC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, branchID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()

	var sups []*entity.Supplier
	for rows.Next() {
		var s entity.Supplier
		if err := rows.Scan(&s.ID, &s.BranchID, &s.Name, &s.ContactPerson, &s.Email, &s.Phone,
			&s.Address, &s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		sups = append(sups, &s)
	}
	return sups, rows.Err()
}

// Update actualiza los datos de contacto del proveedor.
func (r *SupplierRepo) Update(ctx context.Context, supplier *entity.Supplier) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE suppliers SET name = $2, contact_person = $3, email = $4, phone = $5, address = $6, updated_at = $7
		WHERE id = $1`,
		supplier.ID, supplier.Name, supplier.ContactPerson, supplier.Email,
		supplier.Phone, supplier.Address, supplier.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update supplier: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Deactivate baja lógica del proveedor.
func (r *SupplierRepo) Deactivate(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE suppliers SET is_active = false, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deactivate supplier: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
