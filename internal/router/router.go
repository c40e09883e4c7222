package router

import (
	"time"

	"brandloop/config"
	"brandloop/internal/domain"
	"brandloop/internal/handler"
	"brandloop/internal/ledger"
	"brandloop/internal/middleware"
	"brandloop/internal/repository"
	"brandloop/internal/service"
	"brandloop/internal/ws"
	"brandloop/pkg/cloudinary"
	"brandloop/pkg/gateway"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Setup wires repositories, services, and handlers and returns the engine
// plus the lifecycle service so main can run deadline recovery and the
// schedule sweeper.
func Setup(cfg *config.Config, db *gorm.DB, cloud cloudinary.Client) (*gin.Engine, *service.LifecycleService) {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RateLimit(middleware.NewInMemoryRateLimiter(100, 60*time.Second)))

	// Repositories
	userRepo := repository.NewUserRepository(db)
	campaignRepo := repository.NewCampaignRepository(db)
	cuRepo := repository.NewCampaignUserRepository(db)
	txRepo := repository.NewTransactionRepository(db)
	withdrawalRepo := repository.NewWithdrawalRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	hub := ws.NewHub()
	lg := ledger.New(db)
	gw := gateway.NewClient(cfg.Gateway.BaseURL, cfg.Gateway.ServerKey, cfg.Gateway.Production)

	// Services
	authSvc := service.NewAuthService(cfg, userRepo)
	notifSvc := service.NewNotificationService(notificationRepo, userRepo, hub)
	timers := service.NewDeadlineTimers()
	lifecycleSvc := service.NewLifecycleService(db, campaignRepo, timers, notifSvc, cfg.Payment.DeadlineDuration)
	distributionSvc := service.NewDistributionService(db, lg, campaignRepo, cuRepo, txRepo, paymentRepo, notifSvc)
	withdrawalSvc := service.NewWithdrawalService(db, lg, withdrawalRepo, notifSvc)
	paymentSvc := service.NewPaymentService(paymentRepo, campaignRepo, userRepo, lifecycleSvc, gw, cfg.Payment.FrontendURL)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc)
	balanceHandler := handler.NewBalanceHandler(userRepo, txRepo, lg)
	campaignHandler := handler.NewCampaignHandler(campaignRepo, cuRepo, lifecycleSvc)
	campaignPaymentHandler := handler.NewCampaignPaymentHandler(distributionSvc)
	withdrawalHandler := handler.NewWithdrawalHandler(withdrawalSvc, withdrawalRepo, cloud)
	paymentHandler := handler.NewPaymentHandler(paymentSvc)
	paymentWebhookHandler := handler.NewPaymentWebhookHandler(paymentSvc)
	notificationHandler := handler.NewNotificationHandler(notificationRepo)

	authMw := middleware.AuthRequired(&cfg.JWT)
	adminMw := middleware.AdminRequired()

	api := r.Group("/api/v1")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
		}

		me := api.Group("/me")
		me.Use(authMw)
		{
			me.GET("/balance", balanceHandler.GetBalance)
			me.GET("/transactions", balanceHandler.ListTransactions)
			me.GET("/notifications", notificationHandler.List)
			me.PUT("/notifications/:id/read", notificationHandler.MarkRead)
			me.PUT("/notifications/read-all", notificationHandler.MarkAllRead)
		}

		withdrawals := api.Group("/withdrawals")
		withdrawals.Use(authMw)
		{
			withdrawals.POST("/request", middleware.RequireRole(domain.RoleInfluencer), withdrawalHandler.Request)
			withdrawals.GET("", withdrawalHandler.List)
			withdrawals.DELETE("/:id/cancel", withdrawalHandler.Cancel)
			withdrawals.PUT("/:id/approve", adminMw, withdrawalHandler.Approve)
			withdrawals.PUT("/:id/reject", adminMw, withdrawalHandler.Reject)
			withdrawals.PUT("/:id/complete", adminMw, withdrawalHandler.Complete)
		}

		campaigns := api.Group("/campaigns")
		campaigns.Use(authMw)
		{
			campaigns.POST("", middleware.RequireRole(domain.RoleSponsor), campaignHandler.Create)
			campaigns.GET("", adminMw, campaignHandler.List)
			campaigns.GET("/mine", middleware.RequireRole(domain.RoleSponsor), campaignHandler.ListMine)
			campaigns.GET("/:id", campaignHandler.Get)
			campaigns.POST("/:id/submit", middleware.RequireRole(domain.RoleSponsor), campaignHandler.Submit)
			campaigns.PUT("/:id/approve", adminMw, campaignHandler.Approve)
			campaigns.PUT("/:id/reject", adminMw, campaignHandler.Reject)
			campaigns.PUT("/:id/cancel", adminMw, campaignHandler.Cancel)
			campaigns.PUT("/:id/complete", adminMw, campaignHandler.Complete)
			campaigns.POST("/:id/fund", middleware.RequireRole(domain.RoleSponsor), paymentHandler.Fund)
			campaigns.POST("/:id/apply", middleware.RequireRole(domain.RoleInfluencer), campaignHandler.Apply)
			campaigns.GET("/:id/participants", campaignHandler.ListParticipants)
		}

		participations := api.Group("/participations")
		participations.Use(authMw)
		{
			participations.PUT("/:participation_id/review", campaignHandler.ReviewParticipant)
			participations.PUT("/:participation_id/content", middleware.RequireRole(domain.RoleInfluencer), campaignHandler.SubmitContent)
			participations.PUT("/:participation_id/approve-content", adminMw, campaignHandler.ApproveContent)
		}

		api.POST("/adjustments", authMw, adminMw, balanceHandler.Adjust)

		payouts := api.Group("/campaign-payments")
		payouts.Use(authMw, adminMw)
		{
			payouts.POST("/pay-student", campaignPaymentHandler.PayStudent)
			payouts.POST("/pay-all", campaignPaymentHandler.PayAll)
			payouts.POST("/pay-custom", campaignPaymentHandler.PayCustom)
		}

		api.POST("/webhooks/payment", paymentWebhookHandler.Handle)
		api.GET("/payments/return", paymentHandler.Return)
	}

	r.GET("/ws/notifications", ws.UpgradeNotificationWS(&cfg.JWT, hub))

	return r, lifecycleSvc
}
