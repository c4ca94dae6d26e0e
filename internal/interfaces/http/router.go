package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pawanbhattarai/thehotelmountain-sub002/internal/application/catalog"
	"github.com/pawanbhattarai/thehotelmountain-sub002/internal/application/consumption"
	"github.com/pawanbhattarai/thehotelmountain-sub002/internal/application/inventory"
	"github.com/pawanbhattarai/thehotelmountain-sub002/internal/application/procurement"
	"github.com/pawanbhattarai/thehotelmountain-sub002/internal/application/recipe"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CatalogUC     *catalog.CatalogUseCase
	RecipeUC      *recipe.RecipeUseCase
	ProcurementUC *procurement.ProcurementUseCase
	ConsumptionUC *consumption.ConsumptionUseCase
	InventoryUC   *inventory.InventoryUseCase
	JWTSecret     string
}

// Router registra las rutas de la API. Todo va protegido por Bearer Token;
// las escrituras sensibles exigen rol además del token.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	// Catálogo
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	stockItems := api.Group("/stock-items")
	stockItems.Post("/", RequireRole("manager"), catalogHandler.CreateStockItem)
	stockItems.Get("/", catalogHandler.ListStockItems)
	stockItems.Get("/:id", catalogHandler.GetStockItem)
	stockItems.Put("/:id", RequireRole("manager"), catalogHandler.UpdateStockItem)
	stockItems.Delete("/:id", RequireRole("manager"), catalogHandler.DeactivateStockItem)

	units := api.Group("/units")
	units.Post("/", RequireRole("manager"), catalogHandler.CreateMeasuringUnit)
	units.Get("/", catalogHandler.ListMeasuringUnits)

	categories := api.Group("/categories")
	categories.Post("/", RequireRole("manager"), catalogHandler.CreateCategory)
	categories.Get("/", catalogHandler.ListCategories)

	suppliers := api.Group("/suppliers")
	suppliers.Post("/", RequireRole("manager", "purchasing"), catalogHandler.CreateSupplier)
	suppliers.Get("/", catalogHandler.ListSuppliers)

	// Recetas
	recipeHandler := NewRecipeHandler(deps.RecipeUC)
	dishes := api.Group("/dishes")
	dishes.Put("/:dishId/recipe", RequireRole("manager", "kitchen"), recipeHandler.SetDishRecipe)
	dishes.Get("/:dishId/recipe", recipeHandler.GetDishRecipe)
	dishes.Delete("/:dishId/recipe", RequireRole("manager"), recipeHandler.DeleteDishRecipe)
	stockItems.Get("/:id/dishes", recipeHandler.DishesUsingItem)

	// Compras
	procurementHandler := NewProcurementHandler(deps.ProcurementUC)
	pos := api.Group("/purchase-orders")
	pos.Post("/", RequireRole("manager", "purchasing"), procurementHandler.Create)
	pos.Get("/", procurementHandler.List)
	pos.Get("/:id", procurementHandler.GetByID)
	pos.Post("/:id/status", RequireRole("manager", "purchasing"), procurementHandler.Transition)
	pos.Post("/:id/receive", RequireRole("manager", "purchasing"), procurementHandler.Receive)
	pos.Get("/:id/pdf", procurementHandler.PDF)

	// Consumo (lo invoca el subsistema de órdenes)
	consumptionHandler := NewConsumptionHandler(deps.ConsumptionUC)
	consumptions := api.Group("/consumptions")
	consumptions.Post("/", consumptionHandler.Record)
	consumptions.Post("/:id/reverse", RequireRole("manager", "kitchen"), consumptionHandler.Reverse)

	// Inventario: consultas, ajustes y conciliación
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	inv := api.Group("/inventory")
	inv.Get("/low-stock", inventoryHandler.LowStock)
	inv.Post("/adjustments", RequireRole("manager"), inventoryHandler.RegisterAdjustment)
	inv.Get("/reconciliation", RequireRole("manager"), inventoryHandler.Reconcile)
	stockItems.Get("/:id/lots", inventoryHandler.LotHistory)
	stockItems.Get("/:id/consumptions", inventoryHandler.ConsumptionHistory)
	api.Get("/orders/:orderId/consumptions", inventoryHandler.ConsumptionsByOrder)
}
