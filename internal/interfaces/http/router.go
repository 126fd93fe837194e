package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/wms-core/internal/application/auth"
	"github.com/tu-usuario/wms-core/internal/application/inventory"
	"github.com/tu-usuario/wms-core/internal/application/usecase"
	"github.com/tu-usuario/wms-core/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	TransferUC   *inventory.TransferUseCase
	QueryUC      *inventory.QueryUseCase
	AdjustUC     *inventory.AdjustUseCase
	ProductUC    *usecase.ProductUseCase
	WarehouseUC  *usecase.WarehouseUseCase
	LocationUC   *usecase.LocationUseCase
	OrderUC      *usecase.OrderUseCase
	ReportUC     *usecase.ReportUseCase
	AuthUC       *auth.UseCase
	MovementRepo repository.MovementRepository
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

	// Inventario: el corazón del sistema
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.TransferUC, deps.QueryUC, deps.AdjustUC, deps.MovementRepo)
	invGroup.Get("/", inventoryHandler.Check)
	invGroup.Post("/transfer", inventoryHandler.Transfer)
	invGroup.Post("/adjust", inventoryHandler.Adjust)
	invGroup.Get("/movements", inventoryHandler.ListMovements)

	// Catálogo de productos
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/sku/:sku", productHandler.GetBySKU)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Deactivate)

	// Bodegas y ubicaciones
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	locationHandler := NewLocationHandler(deps.LocationUC)
	warehouses.Post("/", warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Put("/:id", warehouseHandler.Update)
	warehouses.Delete("/:id", warehouseHandler.Deactivate)
	warehouses.Get("/:id/locations", locationHandler.ListByWarehouse)

	locations := protected.Group("/locations")
	locations.Post("/", locationHandler.Create)
	locations.Get("/:id", locationHandler.GetByID)
	locations.Put("/:id", locationHandler.Update)
	locations.Delete("/:id", locationHandler.Deactivate)

	// Órdenes de entrada y salida
	orderHandler := NewOrderHandler(deps.OrderUC)
	inbound := protected.Group("/inbound-orders")
	inbound.Post("/", orderHandler.CreateInbound)
	inbound.Get("/", orderHandler.ListInbound)
	inbound.Get("/:id", orderHandler.GetInbound)
	inbound.Post("/:id/receive", orderHandler.ReceiveInbound)
	inbound.Post("/:id/cancel", orderHandler.CancelInbound)

	outbound := protected.Group("/outbound-orders")
	outbound.Post("/", orderHandler.CreateOutbound)
	outbound.Get("/", orderHandler.ListOutbound)
	outbound.Get("/:id", orderHandler.GetOutbound)
	outbound.Post("/:id/ship", orderHandler.ShipOutbound)
	outbound.Post("/:id/cancel", orderHandler.CancelOutbound)

	// Reportes
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/stock-status", reportHandler.StockStatus)
	reports.Get("/stock-status/pdf", reportHandler.StockStatusPDF)
}
