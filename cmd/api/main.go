package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/CardonaSantos/pos-ventas-api/internal/application/cashbox"
	"github.com/CardonaSantos/pos-ventas-api/internal/application/customers"
	appgoals "github.com/CardonaSantos/pos-ventas-api/internal/application/goals"
	"github.com/CardonaSantos/pos-ventas-api/internal/application/inventory"
	"github.com/CardonaSantos/pos-ventas-api/internal/application/notifications"
	"github.com/CardonaSantos/pos-ventas-api/internal/application/pricing"
	"github.com/CardonaSantos/pos-ventas-api/internal/application/sales"
	"github.com/CardonaSantos/pos-ventas-api/internal/application/tracking"
	"github.com/CardonaSantos/pos-ventas-api/internal/infrastructure/cache"
	infrapdf "github.com/CardonaSantos/pos-ventas-api/internal/infrastructure/pdf"
	"github.com/CardonaSantos/pos-ventas-api/internal/infrastructure/postgres"
	httpRouter "github.com/CardonaSantos/pos-ventas-api/internal/interfaces/http"
	"github.com/CardonaSantos/pos-ventas-api/pkg/config"
	"github.com/CardonaSantos/pos-ventas-api/pkg/logger"
	"github.com/CardonaSantos/pos-ventas-api/pkg/metrics"
)

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
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Caché de nombres para mensajes de notificación; sin Redis
	// configurado se resuelve siempre contra la BD.
	var names notifications.NameCache = cache.NewNoopNameCache()
	if cfg.Redis.Addr != "" {
		redisCache, err := cache.NewRedisNameCache(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer redisCache.Close()
		names = redisCache
	}

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	txRunner := postgres.NewTxRunner(pool)
	priceLedger := pricing.NewLedger()
	stockLedger := inventory.NewLedger()
	tracker := tracking.NewTracker()
	notifier := notifications.NewNotifier(names, log.Component("notificaciones"))
	gate := cashbox.NewGate()
	goalTracker := appgoals.NewTracker()
	customerSvc := customers.NewService(log.Component("clientes"))

	createSaleUC := sales.NewCreateSaleUseCase(
		txRunner, priceLedger, stockLedger, notifier, gate,
		tracker, goalTracker, customerSvc, m, log.Component("ventas"),
	)
	receiptGen := infrapdf.NewReceiptGenerator(cfg.App.Name)
	saleQueries := sales.NewQueries(postgres.NewSaleRepository(pool), receiptGen, log.Component("ventas"))
	deliveriesUC := inventory.NewRegisterDeliveryUseCase(txRunner, stockLedger, tracker, log.Component("inventario"))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	httpRouter.Router(app, httpRouter.RouterDeps{
		CreateSale: createSaleUC,
		SaleReader: saleQueries,
		Deliveries: deliveriesUC,
		Metrics:    registry,
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
