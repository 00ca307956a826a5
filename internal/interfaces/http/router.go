package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/stockcard-api/internal/application/analytics"
	"github.com/jhoicas/stockcard-api/internal/application/auth"
	"github.com/jhoicas/stockcard-api/internal/application/inventory"
	"github.com/jhoicas/stockcard-api/internal/application/usecase"
	"github.com/jhoicas/stockcard-api/pkg/logger"
	"github.com/jhoicas/stockcard-api/pkg/metrics"
)

// RouterDeps dependencias para el router. Logger y métricas pueden ser nil.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	StockCardUC  *usecase.StockCardUseCase
	MovementUC   *inventory.MovementUseCase
	RealTimeUC   *analytics.RealTimeStockUseCase
	JWTSecret    string
	Logger       *logger.Logger
	HTTPMetrics  *metrics.HTTPMetrics
	StockMetrics *metrics.StockMetrics
}

// Router registra middlewares de petición y las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	errs := NewErrorMapper(log.Named("http"))

	app.Use(requestid.New())
	app.Use(RequestLogger(log.Named("http"), deps.HTTPMetrics))

	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, errs)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)

	// Rutas protegidas (requieren Bearer Token); el dueño es el user_id del token.
	requireAuth := AuthMiddleware(deps.JWTSecret)

	// Stock cards
	cards := api.Group("/stock-cards", requireAuth)
	cardHandler := NewStockCardHandler(deps.StockCardUC, errs, deps.StockMetrics)
	cards.Get("/", cardHandler.List)
	cards.Post("/", cardHandler.Create)
	cards.Get("/:id", cardHandler.GetByID)
	cards.Put("/:id", cardHandler.Update)
	cards.Delete("/:id", cardHandler.Delete)

	// Stock movements
	movements := api.Group("/stock-movements", requireAuth)
	movementHandler := NewStockMovementHandler(deps.MovementUC, errs, deps.StockMetrics)
	movements.Get("/", movementHandler.List)
	movements.Post("/", movementHandler.Create)
	movements.Get("/:id", movementHandler.GetByID)
	movements.Put("/:id", movementHandler.Update)
	movements.Delete("/:id", movementHandler.Delete)

	// Real time stock
	realTime := api.Group("/real-time", requireAuth)
	realTimeHandler := NewRealTimeHandler(deps.RealTimeUC, errs, deps.StockMetrics)
	realTime.Get("/", realTimeHandler.List)
	realTime.Get("/export.xlsx", realTimeHandler.ExportXLSX)
	realTime.Get("/export.pdf", realTimeHandler.ExportPDF)
}
