package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jhoicas/inventario-pos-api/internal/application/inventory"
	"github.com/jhoicas/inventario-pos-api/internal/application/ports"
	"github.com/jhoicas/inventario-pos-api/internal/application/purchasing"
	"github.com/jhoicas/inventario-pos-api/internal/application/usecase"
	infracache "github.com/jhoicas/inventario-pos-api/internal/infrastructure/cache"
	infrapdf "github.com/jhoicas/inventario-pos-api/internal/infrastructure/pdf"
	"github.com/jhoicas/inventario-pos-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/inventario-pos-api/internal/interfaces/http"
	"github.com/jhoicas/inventario-pos-api/pkg/config"
	"github.com/jhoicas/inventario-pos-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Bool("strict_stock_tracking", cfg.Stock.StrictTracking).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	checks := map[string]httpRouter.Pinger{"postgres": pool}

	// Caché de catálogo opcional: sin REDIS_URL se usa NopCache
	var cache ports.Cache
	if cfg.Cache.Enabled() {
		rdb, err := infracache.NewRedisClient(ctx, cfg.Cache.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rdb.Close()
		redisCache := infracache.NewRedisCache(rdb, cfg.App.Name+":")
		cache = redisCache
		checks["redis"] = redisCache
	}

	categoryRepo := postgres.NewCategoryRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	unitRepo := postgres.NewProductUnitRepository(pool)
	priceRepo := postgres.NewProductUnitPriceRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	purchaseRepo := postgres.NewPurchaseRepository(pool)
	itemRepo := postgres.NewPurchaseItemRepository(pool)
	txRunner := postgres.NewTxRunner(pool, cfg.DB.LockTimeout())

	ledger := inventory.NewLedger(cfg.Stock.StrictTracking, log)
	catalogDeps := usecase.CatalogDeps{Cache: cache, TTL: cfg.Cache.TTL(), Log: log}

	app := httpRouter.NewApp(cfg.App.Name, log)
	httpRouter.Router(app, httpRouter.RouterDeps{
		CategoryUC:     usecase.NewCategoryUseCase(categoryRepo, catalogDeps),
		CustomerUC:     usecase.NewCustomerUseCase(customerRepo, catalogDeps),
		SupplierUC:     usecase.NewSupplierUseCase(supplierRepo, catalogDeps),
		ProductUC:      usecase.NewProductUseCase(productRepo, categoryRepo, catalogDeps),
		ProductUnitUC:  usecase.NewProductUnitUseCase(unitRepo, productRepo),
		UnitPriceUC:    usecase.NewUnitPriceUseCase(priceRepo, unitRepo),
		StockUC:        inventory.NewStockUseCase(txRunner, ledger, stockRepo, unitRepo, log),
		PurchaseUC:     purchasing.NewPurchaseUseCase(purchaseRepo, supplierRepo, itemRepo),
		PurchaseItemUC: purchasing.NewPurchaseItemUseCase(txRunner, ledger, itemRepo, purchaseRepo, unitRepo, productRepo, log),
		// PDF: comprobante de recepción de compra
		ReceiptUC: purchasing.NewReceiptUseCase(cfg.App.Name, purchaseRepo, supplierRepo, itemRepo, infrapdf.NewMarotoReceiptRenderer()),
		Health:    httpRouter.NewHealthHandler(cfg.App.Name, checks),
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
