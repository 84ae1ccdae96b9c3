package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/distribuidora-api/internal/application/auth"
	"github.com/jhoicas/distribuidora-api/internal/application/inventory"
	"github.com/jhoicas/distribuidora-api/internal/application/logistics"
	"github.com/jhoicas/distribuidora-api/internal/application/notifications"
	"github.com/jhoicas/distribuidora-api/internal/application/production"
	"github.com/jhoicas/distribuidora-api/internal/application/purchasing"
	"github.com/jhoicas/distribuidora-api/internal/application/sales"
	"github.com/jhoicas/distribuidora-api/internal/application/usecase"
	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC           *auth.AuthUseCase
	ProductUC        *usecase.ProductUseCase
	Ledger           *inventory.Ledger
	SaleUC           *sales.SaleUseCase
	OrderUC          *sales.OrderUseCase
	PurchaseUC       *purchasing.PurchaseUseCase
	PaymentUC        *purchasing.PaymentUseCase
	TransformationUC *production.TransformationUseCase
	RouteUC          *logistics.RouteUseCase
	Notifications    *notifications.UseCase
	JWTSecret        string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)
	api.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)
	anyRole := RequireRole(entity.RoleAdmin, entity.RoleVendedor)

	// Usuarios (admin)
	protected.Post("/users", adminOnly, authHandler.CreateUser)
	protected.Post("/salespeople/:id/create-user", adminOnly, authHandler.CreateSalespersonUser)

	// Productos: lectura para todos, escritura solo admin
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.Ledger)
	products.Get("/", anyRole, productHandler.List)
	products.Get("/search", anyRole, productHandler.Search)
	products.Get("/:id", anyRole, productHandler.GetByID)
	products.Get("/:id/stock-history", anyRole, productHandler.StockHistory)
	products.Post("/", adminOnly, productHandler.Create)
	products.Put("/:id", adminOnly, productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Delete)

	// Stock y avisos
	inventoryHandler := NewInventoryHandler(deps.Ledger, deps.Notifications)
	protected.Put("/stock/:productId", adminOnly, inventoryHandler.AdjustStock)
	protected.Get("/notifications", anyRole, inventoryHandler.Notifications)

	// Ventas
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC)
	salesGroup.Post("/", anyRole, saleHandler.Create)
	salesGroup.Get("/", anyRole, saleHandler.List)
	salesGroup.Get("/:id", anyRole, saleHandler.GetByID)
	salesGroup.Put("/:id/commission", adminOnly, saleHandler.UpdateCommission)
	salesGroup.Put("/:id/delivery-status", adminOnly, saleHandler.UpdateDeliveryStatus)

	// Pedidos del carrito
	orders := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC)
	orders.Post("/", anyRole, orderHandler.Create)
	orders.Get("/", anyRole, orderHandler.List)
	orders.Get("/:id", anyRole, orderHandler.GetByID)
	orders.Put("/:id/status", anyRole, orderHandler.UpdateStatus)

	// Compras (admin)
	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC)
	purchases := protected.Group("/purchases", adminOnly)
	purchases.Post("/", purchaseHandler.Create)
	purchases.Get("/:id", purchaseHandler.GetByID)
	purchases.Put("/:id/payment-status", purchaseHandler.UpdatePaymentStatus)

	// Proveedores: compras, pagos y deudas (admin)
	suppliers := protected.Group("/suppliers", adminOnly)
	supplierHandler := NewSupplierHandler(deps.PaymentUC)
	suppliers.Get("/debts", supplierHandler.Debts)
	suppliers.Get("/:supplierId/purchases", purchaseHandler.ListBySupplier)
	suppliers.Get("/:supplierId/payments", supplierHandler.ListPayments)
	suppliers.Post("/:supplierId/payments", supplierHandler.RegisterPayment)

	// Transformaciones (admin)
	transformations := protected.Group("/transformations", adminOnly)
	transformationHandler := NewTransformationHandler(deps.TransformationUC)
	transformations.Post("/", transformationHandler.Create)
	transformations.Get("/:id", transformationHandler.GetByID)

	// Logística
	logisticsGroup := protected.Group("/logistics")
	logisticsHandler := NewLogisticsHandler(deps.RouteUC)
	logisticsGroup.Get("/pending-orders", anyRole, logisticsHandler.PendingOrders)
	logisticsGroup.Get("/routes", anyRole, logisticsHandler.ListRoutes)
	logisticsGroup.Post("/routes", adminOnly, logisticsHandler.CreateRoute)
}
