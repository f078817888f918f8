package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	_ "github.com/jhoicas/inventario-pos/docs"
	"github.com/jhoicas/inventario-pos/internal/application/auth"
	"github.com/jhoicas/inventario-pos/internal/application/catalog"
	"github.com/jhoicas/inventario-pos/internal/application/checkout"
	"github.com/jhoicas/inventario-pos/internal/application/reporting"
	"github.com/jhoicas/inventario-pos/internal/application/sales"
	"github.com/jhoicas/inventario-pos/internal/domain/repository"
	infrakafka "github.com/jhoicas/inventario-pos/internal/infrastructure/kafka"
	"github.com/jhoicas/inventario-pos/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/inventario-pos/internal/infrastructure/pdf"
	"github.com/jhoicas/inventario-pos/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/inventario-pos/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/inventario-pos/internal/interfaces/http"
	"github.com/jhoicas/inventario-pos/pkg/config"
	"github.com/jhoicas/inventario-pos/pkg/logger"
	"github.com/jhoicas/inventario-pos/pkg/metrics"
)

// backend repositorios y TxRunner del almacenamiento elegido (postgres o memory).
type backend struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	users      repository.UserRepository
	sales      repository.SaleRepository
	reports    repository.ReportRepository
	txRunner   checkout.TxRunner
	close      func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := openBackend(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("store", cfg.Store.Driver).Msg("inicializar almacenamiento")
	}
	defer store.close()

	checkoutMetrics := metrics.NewCheckoutMetrics("pos")
	checkoutOpts := []checkout.Option{
		checkout.WithLogger(log.Component("checkout")),
		checkout.WithRecorder(checkoutMetrics),
		checkout.WithTimeout(cfg.Checkout.LockTimeout),
	}

	// Idempotency-Key en Redis (opcional)
	if cfg.Redis.Enabled() {
		rdb, err := infraredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("conexión a Redis")
		}
		defer rdb.Close()
		checkoutOpts = append(checkoutOpts, checkout.WithIdempotency(infraredis.NewIdempotencyStore(rdb, cfg.Redis.IdempotencyTTL)))
		log.Info().Str("addr", cfg.Redis.Addr).Msg("idempotencia de checkout habilitada")
	}

	// Eventos sale.committed en Kafka (opcional)
	var producer *infrakafka.Producer
	if cfg.Kafka.Enabled() {
		producer = infrakafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, 1024, log.Component("kafka"))
		producer.Start()
		checkoutOpts = append(checkoutOpts, checkout.WithPublisher(infrakafka.NewSalePublisher(producer, cfg.App.Name)))
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).Msg("publicación de ventas habilitada")
	}

	authUC := auth.NewAuthUseCase(store.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	catalogUC := catalog.NewUseCase(store.products, store.categories)
	checkoutUC := checkout.NewUseCase(store.txRunner, store.sales, checkoutOpts...)
	salesUC := sales.NewUseCase(store.sales, store.products, store.users, infrapdf.NewReceiptGenerator(cfg.App.Name))
	reportingUC := reporting.NewUseCase(store.reports, store.sales, store.products)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Inventario POS API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "store": cfg.Store.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		CatalogUC:   catalogUC,
		CheckoutUC:  checkoutUC,
		SalesUC:     salesUC,
		ReportingUC: reportingUC,
		Metrics:     checkoutMetrics.Handler(),
		JWTSecret:   cfg.JWT.Secret,
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
	if producer != nil {
		if err := producer.Close(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("cierre del productor Kafka")
		}
	}

	log.Info().Msg("aplicación detenida")
}

func openBackend(ctx context.Context, cfg *config.Config, log *logger.Logger) (*backend, error) {
	if cfg.Store.Driver == config.StoreDriverMemory {
		s := memory.NewStore()
		if err := memory.Seed(ctx, s, memory.SeedOptions{
			AdminPassword:  cfg.Store.SeedAdminPassword,
			SellerPassword: cfg.Store.SeedSellerPassword,
		}); err != nil {
			return nil, err
		}
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		return &backend{
			products:   memory.NewProductRepository(s),
			categories: memory.NewCategoryRepository(s),
			users:      memory.NewUserRepository(s),
			sales:      memory.NewSaleRepository(s),
			reports:    memory.NewReportRepository(s),
			txRunner:   memory.NewTxRunner(s),
			close:      func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool, log.Component("migrate")); err != nil {
			pool.Close()
			return nil, err
		}
	}
	return &backend{
		products:   postgres.NewProductRepository(pool),
		categories: postgres.NewCategoryRepository(pool),
		users:      postgres.NewUserRepository(pool),
		sales:      postgres.NewSaleRepository(pool),
		reports:    postgres.NewReportRepository(pool),
		txRunner:   postgres.NewTxRunner(pool),
		close:      pool.Close,
	}, nil
}
