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
	"github.com/tu-usuario/wms-core/internal/application/auth"
	"github.com/tu-usuario/wms-core/internal/application/inventory"
	"github.com/tu-usuario/wms-core/internal/application/usecase"
	infrapdf "github.com/tu-usuario/wms-core/internal/infrastructure/pdf"
	"github.com/tu-usuario/wms-core/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/wms-core/internal/interfaces/http"
	"github.com/tu-usuario/wms-core/pkg/config"
	"github.com/tu-usuario/wms-core/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	}, os.Stdout)
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

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	locationRepo := postgres.NewLocationRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	viewRepo := postgres.NewInventoryViewRepository(pool)
	inboundRepo := postgres.NewInboundOrderRepository(pool)
	outboundRepo := postgres.NewOutboundOrderRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	transferUC := inventory.NewTransferUseCase(txRunner)
	queryUC := inventory.NewQueryUseCase(viewRepo)
	adjustUC := inventory.NewAdjustUseCase(txRunner)
	productUC := usecase.NewProductUseCase(productRepo)
	warehouseUC := usecase.NewWarehouseUseCase(warehouseRepo)
	locationUC := usecase.NewLocationUseCase(locationRepo, warehouseRepo)
	orderUC := usecase.NewOrderUseCase(txRunner, inboundRepo, outboundRepo)
	reportUC := usecase.NewReportUseCase(viewRepo, infrapdf.NewMarotoReportGenerator())
	authUC := auth.NewUseCase(userRepo, cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiration)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    cfg.App.Name,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		TransferUC:   transferUC,
		QueryUC:      queryUC,
		AdjustUC:     adjustUC,
		ProductUC:    productUC,
		WarehouseUC:  warehouseUC,
		LocationUC:   locationUC,
		OrderUC:      orderUC,
		ReportUC:     reportUC,
		AuthUC:       authUC,
		MovementRepo: movementRepo,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("apagando servidor")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("apagado forzado")
	}
}
