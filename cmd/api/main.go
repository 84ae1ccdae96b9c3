package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/distribuidora-api/internal/application/auth"
	"github.com/jhoicas/distribuidora-api/internal/application/inventory"
	"github.com/jhoicas/distribuidora-api/internal/application/logistics"
	"github.com/jhoicas/distribuidora-api/internal/application/notifications"
	"github.com/jhoicas/distribuidora-api/internal/application/production"
	"github.com/jhoicas/distribuidora-api/internal/application/purchasing"
	"github.com/jhoicas/distribuidora-api/internal/application/sales"
	"github.com/jhoicas/distribuidora-api/internal/application/usecase"
	"github.com/jhoicas/distribuidora-api/internal/domain/repository"
	"github.com/jhoicas/distribuidora-api/internal/infrastructure/postgres"
	"github.com/jhoicas/distribuidora-api/internal/infrastructure/sqlite"
	httpRouter "github.com/jhoicas/distribuidora-api/internal/interfaces/http"
	"github.com/jhoicas/distribuidora-api/pkg/config"
	"github.com/jhoicas/distribuidora-api/pkg/logger"
)

// storage agrupa lo que cada backend aporta al resto de la aplicación.
type storage struct {
	tx     inventory.TxRunner
	stores repository.Stores
	users  repository.UserRepository
	close  func()
}

func openStorage(ctx context.Context, cfg config.DBConfig) (*storage, error) {
	if cfg.Driver == config.DriverSQLite {
		db, err := sqlite.Open(ctx, cfg.SQLitePath, cfg.AutoMigrate)
		if err != nil {
			return nil, err
		}
		return &storage{
			tx:     sqlite.NewTxRunner(db),
			stores: sqlite.NewStores(db),
			users:  sqlite.NewUserRepository(db),
			close:  func() { _ = db.Close() },
		}, nil
	}
	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &storage{
		tx:     postgres.NewTxRunner(pool),
		stores: postgres.NewStores(pool),
		users:  postgres.NewUserRepository(pool),
		close:  pool.Close,
	}, nil
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
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st, err := openStorage(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DB.Driver).Msg("conexión a la base de datos")
	}
	defer st.close()

	ledger := inventory.NewLedger(st.tx, st.stores.Products, st.stores.Movements, inventory.Options{
		AuditRecordLines:      cfg.Ledger.AuditRecordLines,
		AllowNegativeOverride: cfg.Ledger.AllowNegativeOverride,
		Logger:                log.Component("ledger"),
	})

	authUC := auth.NewAuthUseCase(st.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	created, err := authUC.EnsureAdmin(ctx, cfg.Admin.Username, cfg.Admin.InitialPassword)
	if err != nil {
		log.Fatal().Err(err).Msg("crear usuario administrador")
	}
	if created {
		log.Info().Str("username", cfg.Admin.Username).Msg("usuario administrador creado")
	}

	productUC := usecase.NewProductUseCase(st.tx, st.stores.Products, st.stores.Stock, ledger)
	saleUC := sales.NewSaleUseCase(ledger, st.stores.Sales, cfg.Ledger.DefaultCommissionRate)
	orderUC := sales.NewOrderUseCase(ledger, st.stores.Orders)
	purchaseUC := purchasing.NewPurchaseUseCase(ledger, st.stores.Purchases)
	paymentUC := purchasing.NewPaymentUseCase(st.stores.Purchases, st.stores.Payments)
	transformationUC := production.NewTransformationUseCase(ledger, st.stores.Transformations)
	routeUC := logistics.NewRouteUseCase(st.tx, st.stores.Sales, st.stores.Routes)
	notificationsUC := notifications.New(st.stores.Products, st.stores.Purchases, st.stores.Sales, cfg.Ledger.LowStockThreshold)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.AllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.HTTP.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.HTTP.SwaggerFile,
			Path:     "docs",
			Title:    "Distribuidora API",
		}))
	} else {
		log.Warn().Str("file", cfg.HTTP.SwaggerFile).Msg("swagger deshabilitado: archivo no encontrado")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:           authUC,
		ProductUC:        productUC,
		Ledger:           ledger,
		SaleUC:           saleUC,
		OrderUC:          orderUC,
		PurchaseUC:       purchaseUC,
		PaymentUC:        paymentUC,
		TransformationUC: transformationUC,
		RouteUC:          routeUC,
		Notifications:    notificationsUC,
		JWTSecret:        cfg.JWT.Secret,
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
