package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"adega-delivery/app/controller"
	"adega-delivery/app/router"
	"adega-delivery/catalog"
	"adega-delivery/config"
	"adega-delivery/db"
	"adega-delivery/metrics"
	"adega-delivery/pricing"
	"adega-delivery/repository"
	"adega-delivery/service"
)

// Initialize initializes the application and returns its HTTP handler.
// Products and orders live in PostgreSQL when database variables are set,
// otherwise in memory with products read from the products file.
func Initialize(ctx context.Context, cfg *config.Config, logger *zap.Logger) (http.Handler, error) {
	// Load option tables
	options := catalog.Default()
	if cfg.Catalog.OptionsPath != "" {
		loaded, err := catalog.Load(cfg.Catalog.OptionsPath, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to load catalog options: %w", err)
		}
		options = loaded
	}

	// Load pricing rules
	engine := pricing.NewDefaultEngine(logger)
	if cfg.Pricing.Path != "" {
		loaded, err := pricing.NewEngine(cfg.Pricing.Path, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to load pricing config: %w", err)
		}
		engine = loaded
	}

	products, orders, err := repositories(ctx, cfg, options, logger)
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	engineMetrics := metrics.NewEngineMetrics(registry)
	serverMetrics := metrics.NewServerMetrics(registry)

	orderService := service.NewOrderService(options, products, orders, engine, cfg.Store, engineMetrics, logger)

	// Create controllers
	controllers := &router.Controllers{
		Catalog:       controller.NewCatalogController(orderService, logger),
		Cart:          controller.NewCartController(orderService, logger),
		Configuration: controller.NewConfigurationController(orderService, logger),
		Checkout:      controller.NewCheckoutController(orderService, logger),
	}

	logger.Info("🍹 store ready",
		zap.String("store", cfg.Store.Name),
		zap.Bool("open", cfg.Store.Open),
		zap.String("minimum_order", cfg.Store.MinimumOrder.StringFixed(2)),
	)
	return router.SetupRoutes(controllers, serverMetrics, registry), nil
}

func repositories(
	ctx context.Context,
	cfg *config.Config,
	options *catalog.Catalog,
	logger *zap.Logger,
) (repository.ProductRepositoryInterface, repository.OrderRepositoryInterface, error) {
	if db.Configured() {
		// Initialize database connection
		if err := db.InitDB(ctx, logger); err != nil {
			return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		if err := db.EnsureSchema(ctx, logger); err != nil {
			return nil, nil, err
		}
		return repository.NewProductRepository(options.Classifier(), logger), repository.NewOrderRepository(logger), nil
	}

	logger.Warn("⚠️ database not configured, keeping orders in memory")
	if cfg.Catalog.ProductsPath == "" {
		return repository.NewMemoryProductRepository(options.Classifier(), nil), repository.NewMemoryOrderRepository(), nil
	}
	products, err := repository.LoadProductsFile(cfg.Catalog.ProductsPath, options.Classifier())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load products: %w", err)
	}
	list, _ := products.List(ctx)
	logger.Info("✅ products loaded", zap.String("path", cfg.Catalog.ProductsPath), zap.Int("products", len(list)))
	return products, repository.NewMemoryOrderRepository(), nil
}
