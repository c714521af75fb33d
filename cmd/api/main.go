package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/recibos-api/internal/application/ledger"
	"github.com/jhoicas/recibos-api/internal/application/receiptimport"
	"github.com/jhoicas/recibos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/recibos-api/internal/infrastructure/rewe"
	httpRouter "github.com/jhoicas/recibos-api/internal/interfaces/http"
	"github.com/jhoicas/recibos-api/pkg/config"
	"github.com/jhoicas/recibos-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
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

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("crear esquema")
	}

	itemRepo := postgres.NewItemRepository(pool)
	changeRepo := postgres.NewChangeRepository(pool)
	txRunner := postgres.NewTxRunner(pool)
	ledgerUC := ledger.NewLedgerUseCase(txRunner, itemRepo, changeRepo)

	// Enriquecimiento de mercado: opcional; deshabilitado se usa el no-op.
	var enricher receiptimport.AddressEnricher = receiptimport.NoopEnricher{}
	if cfg.Rewe.EnrichmentEnabled {
		enricher = rewe.NewMarketClient(cfg.Rewe.BaseURL)
	}
	importUC := receiptimport.NewImportUseCase(ledgerUC, enricher, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	httpRouter.Router(app, httpRouter.RouterDeps{
		LedgerUC: ledgerUC,
		ImportUC: importUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Fatal().Err(err).Msg("servidor HTTP")
		}
	}()
	log.Info().Str("addr", cfg.HTTP.Addr()).Msg("API escuchando")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("apagando servidor")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
}
