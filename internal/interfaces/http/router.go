package http

import (
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/CardonaSantos/pos-ventas-api/internal/application/inventory"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CreateSale SaleCreator
	SaleReader SaleReader
	Deliveries *inventory.RegisterDeliveryUseCase
	Metrics    prometheus.Gatherer
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Metrics, promhttp.HandlerOpts{})))
	}

	api := app.Group("/api")

	// Ventas
	salesGroup := api.Group("/sales")
	salesHandler := NewSalesHandler(deps.CreateSale, deps.SaleReader)
	salesGroup.Post("/", salesHandler.Create)
	salesGroup.Get("/", salesHandler.List)
	salesGroup.Get("/:id", salesHandler.GetByID)
	salesGroup.Get("/:id/receipt", salesHandler.Receipt)

	// Inventario (entregas y correcciones)
	inventoryHandler := NewInventoryHandler(deps.Deliveries)
	api.Post("/deliveries", inventoryHandler.RegisterDelivery)
	api.Delete("/stock-lots/:id", inventoryHandler.RemoveLot)
}
