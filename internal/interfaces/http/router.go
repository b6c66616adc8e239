package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Gestion-api/internal/application/auth"
	"github.com/jhoicas/Gestion-api/internal/application/inventory"
	"github.com/jhoicas/Gestion-api/internal/application/purchasing"
	"github.com/jhoicas/Gestion-api/internal/application/sales"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	PurchaseUC   *purchasing.PurchaseUseCase
	SaleUC       *sales.SaleUseCase
	OrderUC      *sales.OrderUseCase
	PDFUC        *sales.PDFUseCase
	TransferUC   *inventory.TransferUseCase
	ProductionUC *inventory.ProductionUseCase
	QueryUC      *inventory.QueryUseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Eliminar documentos reversa stock; solo admin.
	adminOnly := RequireRole(entity.RoleAdmin)
	// Operación de bodega: compras, traslados, producción.
	warehouseRoles := RequireRole(entity.RoleAdmin, entity.RoleBodeguero)
	// Mostrador: ventas y pedidos.
	salesRoles := RequireRole(entity.RoleAdmin, entity.RoleVendedor)

	// Purchases
	purchases := protected.Group("/purchases")
	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC)
	purchases.Post("/", warehouseRoles, purchaseHandler.Create)
	purchases.Get("/", purchaseHandler.List)
	purchases.Get("/:id", purchaseHandler.GetByID)
	purchases.Delete("/:id", adminOnly, purchaseHandler.Delete)

	// Sales
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC, deps.PDFUC)
	salesGroup.Post("/", salesRoles, saleHandler.Create)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Get("/:id/pdf", saleHandler.GetPDF)
	salesGroup.Delete("/:id", adminOnly, saleHandler.Delete)

	// Orders
	orders := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC)
	orders.Post("/", salesRoles, orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Post("/:id/convert", salesRoles, orderHandler.Convert)
	orders.Delete("/:id", adminOnly, orderHandler.Delete)

	// Transfers, producción y consultas de inventario
	inventoryHandler := NewInventoryHandler(deps.TransferUC, deps.ProductionUC, deps.QueryUC)

	transfers := protected.Group("/transfers")
	transfers.Post("/", warehouseRoles, inventoryHandler.CreateTransfer)
	transfers.Get("/:id", inventoryHandler.GetTransfer)
	transfers.Delete("/:id", adminOnly, inventoryHandler.DeleteTransfer)

	production := protected.Group("/production")
	production.Post("/runs", warehouseRoles, inventoryHandler.RunProduction)

	protected.Get("/stock", inventoryHandler.GetStock)
	protected.Get("/warehouses/:id/stock", inventoryHandler.ListStockByWarehouse)
	protected.Get("/movements", inventoryHandler.ListMovements)
}
