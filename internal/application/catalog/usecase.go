// Package catalog administra los datos de referencia del inventario:
// ítems de stock, unidades de medida, categorías y proveedores.
package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pawanbhattarai/thehotelmountain-sub002/internal/application/dto"
	"github.com/pawanbhattarai/thehotelmountain-sub002/internal/domain"
	"github.com/pawanbhattarai/thehotelmountain-sub002/internal/domain/entity"
	"github.com/pawanbhattarai/thehotelmountain-sub002/internal/domain/repository"
)

// OpeningBalanceRegistrar registra el lote de saldo inicial de un ítem nuevo
// (implementado por el caso de uso de inventario).
type OpeningBalanceRegistrar interface {
	RegisterOpeningBalance(ctx context.Context, itemID string, qty, unitCost decimal.Decimal, createdBy string) error
}

// CatalogUseCase CRUD del catálogo. El agregado current_stock no se toca
// desde aquí: solo recepciones, consumos y reversiones lo mueven.
type CatalogUseCase struct {
	itemRepo     repository.StockItemRepository
	unitRepo     repository.MeasuringUnitRepository
	categoryRepo repository.StockCategoryRepository
	supplierRepo repository.SupplierRepository
	opening      OpeningBalanceRegistrar
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(
	itemRepo repository.StockItemRepository,
	unitRepo repository.MeasuringUnitRepository,
	categoryRepo repository.StockCategoryRepository,
	supplierRepo repository.SupplierRepository,
	opening OpeningBalanceRegistrar,
) *CatalogUseCase {
	return &CatalogUseCase{
		itemRepo:     itemRepo,
		unitRepo:     unitRepo,
		categoryRepo: categoryRepo,
		supplierRepo: supplierRepo,
		opening:      opening,
	}
}

// CreateStockItem da de alta un ítem; si trae OpeningStock crea además su
// lote de saldo inicial al DefaultPrice.
func (uc *CatalogUseCase) CreateStockItem(ctx context.Context, branchID, createdBy string, in dto.CreateStockItemRequest) (*entity.StockItem, error) {
	if branchID == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.MinimumStock.IsNegative() || in.MaximumStock.IsNegative() ||
		in.ReorderQuantity.IsNegative() || in.DefaultPrice.IsNegative() || in.OpeningStock.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if in.ReorderLevel != nil && in.ReorderLevel.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if _, err := uc.unitRepo.GetByID(ctx, in.UnitID); err != nil {
		return nil, err
	}
	if _, err := uc.categoryRepo.GetByID(ctx, in.CategoryID); err != nil {
		return nil, err
	}
	if in.SupplierID != "" {
		if _, err := uc.supplierRepo.GetByID(ctx, in.SupplierID); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	item := &entity.StockItem{
		ID:              uuid.New().String(),
		BranchID:        branchID,
		Name:            in.Name,
		SKU:             in.SKU,
		CategoryID:      in.CategoryID,
		UnitID:          in.UnitID,
		SupplierID:      in.SupplierID,
		CurrentStock:    decimal.Zero,
		MinimumStock:    in.MinimumStock,
		MaximumStock:    in.MaximumStock,
		ReorderLevel:    in.ReorderLevel,
		ReorderQuantity: in.ReorderQuantity,
		DefaultPrice:    in.DefaultPrice,
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}

	if in.OpeningStock.IsPositive() {
		if err := uc.opening.RegisterOpeningBalance(ctx, item.ID, in.OpeningStock, in.DefaultPrice, createdBy); err != nil {
			return nil, err
		}
		item.CurrentStock = in.OpeningStock
	}
	return item, nil
}

// GetStockItem consulta un ítem por ID validando la sucursal.
func (uc *CatalogUseCase) GetStockItem(ctx context.Context, branchID, id string) (*entity.StockItem, error) {
	item, err := uc.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if branchID != "" && item.BranchID != branchID {
		return nil, domain.ErrForbidden
	}
	return item, nil
}

// ListStockItems listado paginado por sucursal.
func (uc *CatalogUseCase) ListStockItems(ctx context.Context, branchID string, limit, offset int) ([]*entity.StockItem, error) {
	return uc.itemRepo.ListByBranch(ctx, branchID, limit, offset)
}

// UpdateStockItem actualiza los datos maestros del ítem (nunca su stock).
func (uc *CatalogUseCase) UpdateStockItem(ctx context.Context, branchID, id string, in dto.UpdateStockItemRequest) (*entity.StockItem, error) {
	item, err := uc.GetStockItem(ctx, branchID, id)
	if err != nil {
		return nil, err
	}
	if in.MinimumStock.IsNegative() || in.MaximumStock.IsNegative() ||
		in.ReorderQuantity.IsNegative() || in.DefaultPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	item.Name = in.Name
	item.CategoryID = in.CategoryID
	item.SupplierID = in.SupplierID
	item.MinimumStock = in.MinimumStock
	item.MaximumStock = in.MaximumStock
	item.ReorderLevel = in.ReorderLevel
	item.ReorderQuantity = in.ReorderQuantity
	item.DefaultPrice = in.DefaultPrice
	item.UpdatedAt = time.Now()
	if err := uc.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// DeactivateStockItem baja lógica (isActive=false); los lotes y el historial
// permanecen.
func (uc *CatalogUseCase) DeactivateStockItem(ctx context.Context, branchID, id string) error {
	if _, err := uc.GetStockItem(ctx, branchID, id); err != nil {
		return err
	}
	return uc.itemRepo.Deactivate(ctx, id)
}

// CreateMeasuringUnit alta de unidad de medida. Las derivadas exigen base
// existente y factor positivo.
func (uc *CatalogUseCase) CreateMeasuringUnit(ctx context.Context, in dto.CreateMeasuringUnitRequest) (*entity.MeasuringUnit, error) {
	factor := in.ConversionFactor
	if in.BaseUnitID == nil {
		factor = decimal.NewFromInt(1)
	} else {
		if !factor.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
		if _, err := uc.unitRepo.GetByID(ctx, *in.BaseUnitID); err != nil {
			return nil, err
		}
	}
	unit := &entity.MeasuringUnit{
		ID:               uuid.New().String(),
		Name:             in.Name,
		Symbol:           in.Symbol,
		BaseUnitID:       in.BaseUnitID,
		ConversionFactor: factor,
		CreatedAt:        time.Now(),
	}
	if err := uc.unitRepo.Create(ctx, unit); err != nil {
		return nil, err
	}
	return unit, nil
}

// ListMeasuringUnits todas las unidades del catálogo.
func (uc *CatalogUseCase) ListMeasuringUnits(ctx context.Context) ([]*entity.MeasuringUnit, error) {
	return uc.unitRepo.List(ctx)
}

// CreateCategory alta de categoría de inventario.
func (uc *CatalogUseCase) CreateCategory(ctx context.Context, branchID string, in dto.CreateCategoryRequest) (*entity.StockCategory, error) {
	now := time.Now()
	cat := &entity.StockCategory{
		ID:          uuid.New().String(),
		BranchID:    branchID,
		Name:        in.Name,
		Description: in.Description,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.categoryRepo.Create(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

// ListCategories categorías de la sucursal.
func (uc *CatalogUseCase) ListCategories(ctx context.Context, branchID string) ([]*entity.StockCategory, error) {
	return uc.categoryRepo.ListByBranch(ctx, branchID)
}

// CreateSupplier alta de proveedor.
func (uc *CatalogUseCase) CreateSupplier(ctx context.Context, branchID string, in dto.CreateSupplierRequest) (*entity.Supplier, error) {
	now := time.Now()
	sup := &entity.Supplier{
		ID:            uuid.New().String(),
		BranchID:      branchID,
		Name:          in.Name,
		ContactPerson: in.ContactPerson,
		Email:         in.Email,
		Phone:         in.Phone,
		Address:       in.Address,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.supplierRepo.Create(ctx, sup); err != nil {
		return nil, err
	}
	return sup, nil
}

// ListSuppliers proveedores de la sucursal, paginados.
func (uc *CatalogUseCase) ListSuppliers(ctx context.Context, branchID string, limit, offset int) ([]*entity.Supplier, error) {
	return uc.supplierRepo.ListByBranch(ctx, branchID, limit, offset)
}
