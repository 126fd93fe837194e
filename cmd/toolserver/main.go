package main

import (
	"context"
	"os"

	"github.com/tu-usuario/wms-core/internal/application/inventory"
	"github.com/tu-usuario/wms-core/internal/application/usecase"
	"github.com/tu-usuario/wms-core/internal/infrastructure/postgres"
	"github.com/tu-usuario/wms-core/internal/interfaces/toolserver"
	"github.com/tu-usuario/wms-core/pkg/config"
	"github.com/tu-usuario/wms-core/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	// stdout es el canal JSON-RPC: el log va a stderr.
	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	}, os.Stderr)

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	txRunner := postgres.NewTxRunner(pool)
	server := toolserver.New(toolserver.ToolDeps{
		TransferUC: inventory.NewTransferUseCase(txRunner),
		QueryUC:    inventory.NewQueryUseCase(postgres.NewInventoryViewRepository(pool)),
		ProductUC:  usecase.NewProductUseCase(postgres.NewProductRepository(pool)),
		Actor:      cfg.Tool.Actor,
	}, log)

	log.Info().Msg("tool server iniciado")
	if err := server.Serve(ctx, os.Stdin, os.Stdout); err != nil {
		log.Fatal().Err(err).Msg("tool server finalizado con error")
	}
}
