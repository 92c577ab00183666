package serverApp

import (
	config "pos-terminal/configs"
	"pos-terminal/internal/common/enum"
	"pos-terminal/internal/pkg/logger"
	"pos-terminal/internal/pkg/middleware"
	"pos-terminal/internal/pkg/rabbitmq"
	"pos-terminal/internal/repository"
	ledgerRepo "pos-terminal/internal/repository/ledger"
	sessionRepo "pos-terminal/internal/repository/session"

	cartHandler "pos-terminal/internal/handler/cart"
	catalogHandler "pos-terminal/internal/handler/catalog"
	checkoutHandler "pos-terminal/internal/handler/checkout"
	orderHandler "pos-terminal/internal/handler/order"
	receiptHandler "pos-terminal/internal/handler/receipt"
	reconciliationHandler "pos-terminal/internal/handler/reconciliation"
	sessionHandler "pos-terminal/internal/handler/session"
	userHandler "pos-terminal/internal/handler/user"
	catalogService "pos-terminal/internal/service/catalog"
	checkoutService "pos-terminal/internal/service/checkout"
	orderService "pos-terminal/internal/service/order"
	receiptService "pos-terminal/internal/service/receipt"
	reconciliationService "pos-terminal/internal/service/reconciliation"
	sessionService "pos-terminal/internal/service/session"
	userService "pos-terminal/internal/service/user"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
)

// Setup initializes the HTTP server with middleware and routes
func Setup(engine *gin.Engine, payload *config.SetupServerDto, publisher *rabbitmq.Publisher) {
	env := payload.Env
	InitMiddleware(engine, env)

	engine.GET("/health", func(c *gin.Context) {
		rabbitmqHealth := "unhealthy"
		redisHealth := "unhealthy"
		databaseHealth := "disabled"

		if payload.Db != nil {
			databaseHealth = "unhealthy"
			if !payload.Db.IsCloseConnection() {
				databaseHealth = "healthy"
			}
		}
		if payload.Rb != nil && payload.Rb.IsHealthy() {
			rabbitmqHealth = "healthy"
		}
		if payload.Rds != nil && payload.Rds.Ping() == nil {
			redisHealth = "healthy"
		}
		c.JSON(200, gin.H{
			"status": 200,
			"service": gin.H{
				"rabbitmq": gin.H{
					"status": rabbitmqHealth,
				},
				"redis": gin.H{
					"status": redisHealth,
				},
				"database": gin.H{
					"status": databaseHealth,
				},
			},
		})
	})

	e := engine.Group(BasePath())
	InitRoutes(e, payload, publisher)
}

// BasePath returns the base API path
func BasePath() string {
	return "/api/v1"
}

// InitMiddleware initializes global middleware
func InitMiddleware(e *gin.Engine, env *config.Config) {
	e.Use(middleware.CorsMiddleware())
	e.Use(middleware.RequestInit())
	e.Use(middleware.ResponseInit(env.AppEnv.HideErrors()))
}

func InitRoutes(e *gin.RouterGroup, payload *config.SetupServerDto, publisher *rabbitmq.Publisher) {
	ctx := *payload.Ctx
	env := payload.Env

	// setup repo
	rp := repository.IRepository{
		Session: sessionRepo.NewRepo(payload.Rds),
	}
	if payload.Db != nil {
		rp.Ledger = ledgerRepo.NewRepo(payload.Db)
	} else {
		logger.Warning.Println("No database configured, payment ledger disabled")
	}

	// === Catalog & Session ===
	CatalogService := catalogService.NewService(ctx, payload.Rds, payload.Backend, env.CatalogCacheTTL)
	SessionService := sessionService.NewService(ctx, rp, payload.Backend, CatalogService, env.JWTSecret, env.SessionTTL)

	sessionHandler.NewHandler(ctx, SessionService).NewRoutes(e)

	authed := e.Group("", middleware.SessionMiddleware(SessionService))

	cartHandler.NewHandler(ctx, SessionService).NewRoutes(authed)
	catalogHandler.NewHandler(ctx, CatalogService).NewRoutes(authed)

	// === Checkout ===
	CheckoutService := checkoutService.NewService(
		ctx,
		rp,
		SessionService,
		payload.Backend,
		newGateway(payload),
		newOpener(env, publisher),
		checkoutService.Config{
			Currency:        env.Currency,
			ClearCartPolicy: env.ClearCartPolicy,
			CallTimeout:     env.CallTimeout,
			FlowTimeout:     env.FlowTimeout,
			GuardTTL:        env.GuardTTL,
		},
	)
	CheckoutHandler := checkoutHandler.NewHandler(ctx, CheckoutService)
	CheckoutHandler.NewRoutes(authed)
	CheckoutHandler.NewWebhookRoutes(e)

	// === Receipt ===
	formatter := receiptService.NewFormatter(env.Currency, language.English)
	ReceiptService := receiptService.NewService(ctx, SessionService, publisher, env.ReceiptQueue, formatter)
	receiptHandler.NewHandler(ctx, ReceiptService).NewRoutes(authed)

	// === Admin ===
	userHandler.NewHandler(ctx, userService.NewService(ctx, payload.Backend)).NewRoutes(authed)
	orderHandler.NewHandler(ctx, orderService.NewService(ctx, payload.Backend)).NewRoutes(authed)

	if rp.Ledger != nil {
		ReconciliationService := reconciliationService.NewService(ctx, rp, payload.Backend, env.CallTimeout)
		reconciliationHandler.NewHandler(ctx, ReconciliationService).NewRoutes(authed)
	}
}

func newGateway(payload *config.SetupServerDto) checkoutService.PaymentGateway {
	if payload.Env.PaymentGateway == enum.GATEWAY_MIDTRANS && payload.Mt != nil {
		return checkoutService.NewMidtransGateway(payload.Mt)
	}
	return checkoutService.NewBackendGateway(payload.Backend)
}

func newOpener(env *config.Config, publisher *rabbitmq.Publisher) checkoutService.Opener {
	if env.HandoffMode == enum.HANDOFF_DIRECT || publisher == nil {
		return checkoutService.NewDirectOpener()
	}
	return checkoutService.NewTerminalOpener(publisher, env.HandoffExchange, env.FlowTimeout)
}
