package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/inventario-pos-api/internal/application/inventory"
	"github.com/jhoicas/inventario-pos-api/internal/application/purchasing"
	"github.com/jhoicas/inventario-pos-api/internal/application/usecase"
	"github.com/jhoicas/inventario-pos-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CategoryUC     *usecase.CategoryUseCase
	CustomerUC     *usecase.CustomerUseCase
	SupplierUC     *usecase.SupplierUseCase
	ProductUC      *usecase.ProductUseCase
	ProductUnitUC  *usecase.ProductUnitUseCase
	UnitPriceUC    *usecase.UnitPriceUseCase
	StockUC        *inventory.StockUseCase
	PurchaseUC     *purchasing.PurchaseUseCase
	PurchaseItemUC *purchasing.PurchaseItemUseCase
	ReceiptUC      *purchasing.ReceiptUseCase
	Health         *HealthHandler
}

// NewApp crea la aplicación Fiber con el manejo de errores y middlewares comunes.
func NewApp(appName string, log *logger.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      appName,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{ContextKey: LocalRequestID}))
	app.Use(RequestLogger(log))
	return app
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Health != nil {
		app.Get("/health", deps.Health.Live)
		app.Get("/health/ready", deps.Health.Ready)
	}

	api := app.Group("/api")

	// Catálogo con borrado lógico
	catalogRoutes(api.Group("/categories"), deps.CategoryUC, "categoría")
	catalogRoutes(api.Group("/customers"), deps.CustomerUC, "cliente")
	catalogRoutes(api.Group("/suppliers"), deps.SupplierUC, "proveedor")
	products := api.Group("/products")
	catalogRoutes(products, deps.ProductUC, "producto")

	// Unidades y precios
	unitHandler := NewProductUnitHandler(deps.ProductUnitUC, deps.UnitPriceUC)
	products.Post("/:id/units", unitHandler.Create)
	products.Get("/:id/units", unitHandler.ListByProduct)
	units := api.Group("/units")
	units.Get("/:unitId", unitHandler.GetByID)
	units.Put("/:unitId", unitHandler.Update)
	units.Delete("/:unitId", unitHandler.Delete)
	units.Post("/:unitId/prices", unitHandler.CreatePrice)
	units.Get("/:unitId/prices", unitHandler.ListPrices)
	prices := api.Group("/prices")
	prices.Put("/:priceId", unitHandler.UpdatePrice)
	prices.Delete("/:priceId", unitHandler.DeletePrice)

	// Stock
	stocks := api.Group("/stocks")
	stockHandler := NewStockHandler(deps.StockUC)
	stocks.Post("/", stockHandler.Create)
	stocks.Get("/", stockHandler.List)
	stocks.Get("/low", stockHandler.ListLow)
	stocks.Post("/adjust", stockHandler.Adjust)
	stocks.Get("/:productUnitId", stockHandler.GetByProductUnitID)

	// Compras
	purchases := api.Group("/purchases")
	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC, deps.ReceiptUC)
	purchases.Post("/", purchaseHandler.Create)
	purchases.Get("/", purchaseHandler.List)
	purchases.Get("/:id", purchaseHandler.GetByID)
	purchases.Patch("/:id", purchaseHandler.Update)
	purchases.Delete("/:id", purchaseHandler.Delete)
	purchases.Get("/:id/receipt", purchaseHandler.Receipt)

	// Líneas de compra (ajustan stock)
	items := api.Group("/purchase-items")
	itemHandler := NewPurchaseItemHandler(deps.PurchaseItemUC)
	items.Post("/", itemHandler.Create)
	items.Get("/", itemHandler.List)
	items.Get("/purchase/:purchaseId", itemHandler.ListByPurchase)
	items.Get("/:id", itemHandler.GetByID)
	items.Patch("/:id", itemHandler.Update)
	items.Delete("/:id", itemHandler.Delete)
}

// catalogRoutes instancia CatalogHandler con los tipos del caso de uso.
func catalogRoutes[E, C, U, R any](g fiber.Router, uc *usecase.CatalogUseCase[E, C, U, R], label string) {
	NewCatalogHandler[C, U, R](uc, label).Register(g)
}
