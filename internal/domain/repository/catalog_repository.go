package repository

import (
	"context"

	"github.com/pawanbhattarai/thehotelmountain-sub002/internal/domain/entity"
)

// StockCategoryRepository puerto de persistencia para categorías de inventario.
type StockCategoryRepository interface {
	Create(ctx context.Context, category *entity.StockCategory) error
	GetByID(ctx context.Context, id string) (*entity.StockCategory, error)
	ListByBranch(ctx context.Context, branchID string) ([]*entity.StockCategory, error)
	Update(ctx context.Context, category *entity.StockCategory) error
	Deactivate(ctx context.Context, id string) error
}

// SupplierRepository puerto de persistencia para proveedores.
type SupplierRepository interface {
	Create(ctx context.Context, supplier *entity.Supplier) error
	GetByID(ctx context.Context, id string) (*entity.Supplier, error)
	ListByBranch(ctx context.Context, branchID string, limit, offset int) ([]*entity.Supplier, error)
	Update(ctx context.Context, supplier *entity.Supplier) error
	Deactivate(ctx context.Context, id string) error
}
