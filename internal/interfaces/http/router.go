package http

import (
	nethttp "net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/jhoicas/inventario-pos/internal/application/auth"
	"github.com/jhoicas/inventario-pos/internal/application/catalog"
	"github.com/jhoicas/inventario-pos/internal/application/checkout"
	"github.com/jhoicas/inventario-pos/internal/application/reporting"
	"github.com/jhoicas/inventario-pos/internal/application/sales"
	"github.com/jhoicas/inventario-pos/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	CatalogUC   *catalog.UseCase
	CheckoutUC  *checkout.UseCase
	SalesUC     *sales.UseCase
	ReportingUC *reporting.UseCase
	Metrics     nethttp.Handler // opcional: /metrics
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics))
	}

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	anyRole := RequireRole(entity.RoleAdmin, entity.RoleVendedor)
	adminOnly := RequireRole(entity.RoleAdmin)

	protected.Get("/auth/me", authHandler.Me)

	productHandler := NewProductHandler(deps.CatalogUC)
	products := protected.Group("/products", anyRole)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", adminOnly, productHandler.Create)

	checkoutHandler := NewCheckoutHandler(deps.CheckoutUC)
	protected.Post("/pos/checkout", anyRole, checkoutHandler.Checkout)

	saleHandler := NewSaleHandler(deps.SalesUC)
	salesGroup := protected.Group("/sales", anyRole)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Get("/:id/receipt", saleHandler.Receipt)

	reportHandler := NewReportHandler(deps.ReportingUC)
	reports := protected.Group("/reports", adminOnly)
	reports.Get("/daily", reportHandler.Daily)
	reports.Get("/sellers", reportHandler.BySeller)

	dashboardHandler := NewDashboardHandler(deps.ReportingUC)
	protected.Get("/dashboard", anyRole, dashboardHandler.GetSummary)
}
