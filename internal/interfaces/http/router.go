package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/conamormarket-lgtm/inventario-api/internal/application/backup"
	"github.com/conamormarket-lgtm/inventario-api/internal/application/inventory"
	"github.com/conamormarket-lgtm/inventario-api/internal/application/reports"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	StockQueryUC *inventory.StockQueryUseCase
	MovementUC   *inventory.MovementUseCase
	UndoUC       *inventory.UndoUseCase
	MetadataUC   *inventory.MetadataUseCase
	ReportsUC    *reports.UseCase
	BackupUC     *backup.UseCase
	JWTSecret    string
}

// Router registra las rutas de la API. Todo va protegido con Bearer Token;
// las operaciones destructivas exigen además rol admin.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))
	admin := RequireRole("admin")

	// Inventario de prendas
	inv := api.Group("/inventario")
	inventoryHandler := NewInventoryHandler(deps.StockQueryUC, deps.MovementUC, deps.UndoUC)
	inv.Get("/stock", inventoryHandler.GetStock)
	inv.Post("/movimientos", inventoryHandler.AddMovement)
	inv.Post("/deshacer", inventoryHandler.UndoLastAction)

	// Inventarios genéricos (productos, insumos, activos...)
	gen := inv.Group("/generico/:id")
	metadataHandler := NewMetadataHandler(deps.MetadataUC)
	gen.Get("/stock", inventoryHandler.GetGenericStock)
	gen.Get("/historial", inventoryHandler.GetGenericHistory)
	gen.Post("/movimientos", inventoryHandler.AddGenericMovement)
	gen.Post("/deshacer", inventoryHandler.UndoGenericAction)
	gen.Get("/config", metadataHandler.GetGenericConfig)
	gen.Put("/config", admin, metadataHandler.SetGenericConfig)

	// Vocabularios de prendas
	meta := api.Group("/metadata")
	meta.Get("/", metadataHandler.GetMetadata)
	meta.Post("/tipos-prenda", metadataHandler.AddTipoPrenda)
	meta.Delete("/tipos-prenda/:nombre", metadataHandler.RemoveTipoPrenda)
	meta.Post("/colores", metadataHandler.AddColor)
	meta.Delete("/colores/:nombre", metadataHandler.RemoveColor)
	meta.Post("/tallas", metadataHandler.AddTalla)
	meta.Delete("/tallas/:nombre", metadataHandler.RemoveTalla)

	// Historial y reportes
	rep := api.Group("/reportes")
	reportsHandler := NewReportsHandler(deps.ReportsUC)
	rep.Get("/historial", reportsHandler.GetHistory)
	rep.Get("/export", reportsHandler.Export)
	rep.Delete("/historial", admin, reportsHandler.DeleteHistory)
	rep.Post("/reset-stock", admin, reportsHandler.ResetStock)
	rep.Post("/normalizar", admin, reportsHandler.Normalize)

	// Respaldos e importaciones
	bkp := api.Group("/backup")
	backupHandler := NewBackupHandler(deps.BackupUC)
	bkp.Get("/export", backupHandler.Export)
	bkp.Post("/historial", backupHandler.ImportHistory)
	bkp.Post("/stock", admin, backupHandler.ImportStock)
}
