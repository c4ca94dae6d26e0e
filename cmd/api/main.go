package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/swaggo/swag"

	"github.com/pawanbhattarai/thehotelmountain-sub002/internal/application/catalog"
	"github.com/pawanbhattarai/thehotelmountain-sub002/internal/application/consumption"
	"github.com/pawanbhattarai/thehotelmountain-sub002/internal/application/inventory"
	"github.com/pawanbhattarai/thehotelmountain-sub002/internal/application/procurement"
	"github.com/pawanbhattarai/thehotelmountain-sub002/internal/application/recipe"
	"github.com/pawanbhattarai/thehotelmountain-sub002/internal/domain/entity"
	infrapdf "github.com/pawanbhattarai/thehotelmountain-sub002/internal/infrastructure/pdf"
	"github.com/pawanbhattarai/thehotelmountain-sub002/internal/infrastructure/postgres"
	httpRouter "github.com/pawanbhattarai/thehotelmountain-sub002/internal/interfaces/http"
	"github.com/pawanbhattarai/thehotelmountain-sub002/pkg/config"
	"github.com/pawanbhattarai/thehotelmountain-sub002/pkg/logger"

	_ "github.com/pawanbhattarai/thehotelmountain-sub002/docs"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	method, err := entity.ParseCostingMethod(cfg.Inventory.CostingMethod)
	if err != nil {
		log.Fatal().Str("method", cfg.Inventory.CostingMethod).Msg("método de costeo inválido")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	itemRepo := postgres.NewStockItemRepository(pool)
	unitRepo := postgres.NewMeasuringUnitRepository(pool)
	categoryRepo := postgres.NewStockCategoryRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	recipeRepo := postgres.NewRecipeRepository(pool)
	poRepo := postgres.NewPurchaseOrderRepository(pool)
	lotRepo := postgres.NewCostLotRepository(pool)
	consumptionRepo := postgres.NewConsumptionRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	inventoryUC := inventory.NewInventoryUseCase(
		txRunner, itemRepo, lotRepo, consumptionRepo, method,
		cfg.Inventory.AllowNegativeStock, log,
	)
	catalogUC := catalog.NewCatalogUseCase(itemRepo, unitRepo, categoryRepo, supplierRepo, inventoryUC)
	recipeUC := recipe.NewRecipeUseCase(recipeRepo, itemRepo, unitRepo)
	pdfGenerator := infrapdf.NewMarotoPOGenerator()
	procurementUC := procurement.NewProcurementUseCase(
		txRunner, poRepo, supplierRepo, itemRepo, pdfGenerator, method, log,
	)
	consumptionUC := consumption.NewConsumptionUseCase(
		txRunner, recipeRepo, itemRepo, unitRepo,
		consumption.Policy{Method: method, AllowNegativeStock: cfg.Inventory.AllowNegativeStock},
		log,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	// El spec lo registra el paquete docs generado por swag.
	if doc, err := swag.ReadDoc(); err == nil {
		_ = os.WriteFile("./docs/swagger.json", []byte(doc), 0o644)
	}
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Hotel Mountain Inventory API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		CatalogUC:     catalogUC,
		RecipeUC:      recipeUC,
		ProcurementUC: procurementUC,
		ConsumptionUC: consumptionUC,
		InventoryUC:   inventoryUC,
		JWTSecret:     cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
