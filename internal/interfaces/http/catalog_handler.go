package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pawanbhattarai/thehotelmountain-sub002/internal/application/catalog"
	"github.com/pawanbhattarai/thehotelmountain-sub002/internal/application/dto"
)

// CatalogHandler maneja las peticiones HTTP del catálogo de inventario
// (ítems, unidades, categorías, proveedores). Protegido.
type CatalogHandler struct {
	uc *catalog.CatalogUseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *catalog.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// CreateStockItem godoc
// @Summary      Crear ítem de stock
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStockItemRequest  true  "Datos del ítem (opening_stock crea lote de saldo inicial)"
// @Success      201   {object}  dto.StockItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock-items [post]
func (h *CatalogHandler) CreateStockItem(c *fiber.Ctx) error {
	branchID := GetBranchID(c)
	if branchID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "branch_id requerido"})
	}
	var in dto.CreateStockItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := dto.Validate(in); err != nil {
		return respondError(c, err)
	}
	item, err := h.uc.CreateStockItem(c.Context(), branchID, GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.StockItemFromEntity(item))
}

// GetStockItem godoc
// @Summary      Obtener ítem de stock por ID
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del ítem"
// @Success      200  {object}  dto.StockItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock-items/{id} [get]
func (h *CatalogHandler) GetStockItem(c *fiber.Ctx) error {
	item, err := h.uc.GetStockItem(c.Context(), GetBranchID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.StockItemFromEntity(item))
}

// ListStockItems godoc
// @Summary      Listar ítems de stock de la sucursal
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {array}  dto.StockItemResponse
// @Router       /api/stock-items [get]
func (h *CatalogHandler) ListStockItems(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	items, err := h.uc.ListStockItems(c.Context(), GetBranchID(c), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.StockItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.StockItemFromEntity(it))
	}
	return c.JSON(out)
}

// UpdateStockItem godoc
// @Summary      Actualizar ítem de stock
// @Description  Actualiza los datos maestros; current_stock nunca se toca por esta vía.
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del ítem"
// @Param        body  body  dto.UpdateStockItemRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.StockItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock-items/{id} [put]
func (h *CatalogHandler) UpdateStockItem(c *fiber.Ctx) error {
	var in dto.UpdateStockItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := dto.Validate(in); err != nil {
		return respondError(c, err)
	}
	item, err := h.uc.UpdateStockItem(c.Context(), GetBranchID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.StockItemFromEntity(item))
}

// DeactivateStockItem godoc
// @Summary      Dar de baja un ítem de stock
// @Description  Baja lógica; lotes e historial permanecen.
// @Tags         catalog
// @Security     Bearer
// @Param        id   path  string  true  "ID del ítem"
// @Success      204  "Sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock-items/{id} [delete]
func (h *CatalogHandler) DeactivateStockItem(c *fiber.Ctx) error {
	if err := h.uc.DeactivateStockItem(c.Context(), GetBranchID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateMeasuringUnit godoc
// @Summary      Crear unidad de medida
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMeasuringUnitRequest  true  "Unidad (derivadas: base_unit_id + conversion_factor)"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/units [post]
func (h *CatalogHandler) CreateMeasuringUnit(c *fiber.Ctx) error {
	var in dto.CreateMeasuringUnitRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := dto.Validate(in); err != nil {
		return respondError(c, err)
	}
	unit, err := h.uc.CreateMeasuringUnit(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(unit)
}

// ListMeasuringUnits godoc
// @Summary      Listar unidades de medida
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  map[string]string
// @Router       /api/units [get]
func (h *CatalogHandler) ListMeasuringUnits(c *fiber.Ctx) error {
	units, err := h.uc.ListMeasuringUnits(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(units)
}

// CreateCategory godoc
// @Summary      Crear categoría de inventario
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCategoryRequest  true  "Datos de la categoría"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/categories [post]
func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	branchID := GetBranchID(c)
	var in dto.CreateCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := dto.Validate(in); err != nil {
		return respondError(c, err)
	}
	cat, err := h.uc.CreateCategory(c.Context(), branchID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(cat)
}

// ListCategories godoc
// @Summary      Listar categorías de la sucursal
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  map[string]string
// @Router       /api/categories [get]
func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	cats, err := h.uc.ListCategories(c.Context(), GetBranchID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(cats)
}

// CreateSupplier godoc
// @Summary      Crear proveedor
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSupplierRequest  true  "Datos del proveedor"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/suppliers [post]
func (h *CatalogHandler) CreateSupplier(c *fiber.Ctx) error {
	branchID := GetBranchID(c)
	var in dto.CreateSupplierRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := dto.Validate(in); err != nil {
		return respondError(c, err)
	}
	sup, err := h.uc.CreateSupplier(c.Context(), branchID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(sup)
}

// ListSuppliers godoc
// @Summary      Listar proveedores de la sucursal
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {array}  map[string]string
// @Router       /api/suppliers [get]
func (h *CatalogHandler) ListSuppliers(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	sups, err := h.uc.ListSuppliers(c.Context(), GetBranchID(c), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(sups)
}
