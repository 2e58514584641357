package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/conamormarket-lgtm/inventario-api/internal/application/backup"
	appinv "github.com/conamormarket-lgtm/inventario-api/internal/application/inventory"
	"github.com/conamormarket-lgtm/inventario-api/internal/application/reports"
	"github.com/conamormarket-lgtm/inventario-api/internal/domain/entity"
	"github.com/conamormarket-lgtm/inventario-api/internal/domain/repository"
	"github.com/conamormarket-lgtm/inventario-api/internal/infrastructure/excel"
	"github.com/conamormarket-lgtm/inventario-api/internal/infrastructure/memory"
	infrapdf "github.com/conamormarket-lgtm/inventario-api/internal/infrastructure/pdf"
	"github.com/conamormarket-lgtm/inventario-api/internal/infrastructure/postgres"
	httpRouter "github.com/conamormarket-lgtm/inventario-api/internal/interfaces/http"
	"github.com/conamormarket-lgtm/inventario-api/pkg/config"
	"github.com/conamormarket-lgtm/inventario-api/pkg/logger"
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
		Str("backend", cfg.Store.Backend).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var (
		stockRepo      repository.StockRepository
		historyRepo    repository.HistoryRepository
		genStockRepo   repository.GenericStockRepository
		genHistoryRepo repository.GenericHistoryRepository
		configRepo     repository.ConfigRepository
		txRunner       appinv.TxRunner
	)

	switch cfg.Store.Backend {
	case "postgres":
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()

		stockRepo = postgres.NewStockRepo(ctx, pool)
		historyRepo = postgres.NewHistoryRepo(ctx, pool)
		genStockRepo = postgres.NewGenericStockRepo(ctx, pool)
		genHistoryRepo = postgres.NewGenericHistoryRepo(ctx, pool)
		configRepo = postgres.NewConfigRepo(ctx, pool, func() *entity.ConfigDocument {
			doc := memory.DefaultConfig()
			return &doc
		})
		txRunner = postgres.NewTxRunner(pool)

	default: // "memory": documento JSON en disco con snapshot/rollback
		store, err := memory.NewStore(cfg.Store.File)
		if err != nil {
			log.Fatal().Err(err).Msg("abrir store en memoria")
		}
		stockRepo = memory.NewStockRepository(store)
		historyRepo = memory.NewHistoryRepository(store)
		genStockRepo = memory.NewGenericStockRepository(store)
		genHistoryRepo = memory.NewGenericHistoryRepository(store)
		configRepo = memory.NewConfigRepository(store)
		txRunner = memory.NewTxRunner(store)
	}

	stockQueryUC := appinv.NewStockQueryUseCase(stockRepo, genStockRepo, genHistoryRepo)
	movementUC := appinv.NewMovementUseCase(txRunner, configRepo)
	undoUC := appinv.NewUndoUseCase(txRunner, configRepo)
	metadataUC := appinv.NewMetadataUseCase(configRepo, stockRepo)
	reportsUC := reports.NewUseCase(
		txRunner, stockRepo, historyRepo,
		excel.NewReportWriter(), infrapdf.NewMarotoReportRenderer(),
	)
	backupUC := backup.NewUseCase(txRunner, historyRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30, // generar xlsx/pdf de rangos grandes tarda
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Inventario API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		StockQueryUC: stockQueryUC,
		MovementUC:   movementUC,
		UndoUC:       undoUC,
		MetadataUC:   metadataUC,
		ReportsUC:    reportsUC,
		BackupUC:     backupUC,
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

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
