package api

import (
	"github.com/gin-gonic/gin"

	"github.com/qs3c/travelbuddy_go_server/config"
	"github.com/qs3c/travelbuddy_go_server/internal/api/handler"
	"github.com/qs3c/travelbuddy_go_server/internal/api/middleware"
)

type Router struct {
	authHandler        *handler.AuthHandler
	travelerHandler    *handler.TravelerHandler
	travelPlanHandler  *handler.TravelPlanHandler
	tripRequestHandler *handler.TripRequestHandler
	reviewHandler      *handler.ReviewHandler
	paymentHandler     *handler.PaymentHandler
	statsHandler       *handler.StatsHandler
	cfg                *config.Config
}

func NewRouter(
	authHandler *handler.AuthHandler,
	travelerHandler *handler.TravelerHandler,
	travelPlanHandler *handler.TravelPlanHandler,
	tripRequestHandler *handler.TripRequestHandler,
	reviewHandler *handler.ReviewHandler,
	paymentHandler *handler.PaymentHandler,
	statsHandler *handler.StatsHandler,
	cfg *config.Config,
) *Router {
	return &Router{
		authHandler:        authHandler,
		travelerHandler:    travelerHandler,
		travelPlanHandler:  travelPlanHandler,
		tripRequestHandler: tripRequestHandler,
		reviewHandler:      reviewHandler,
		paymentHandler:     paymentHandler,
		statsHandler:       statsHandler,
		cfg:                cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	if r.cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.CORS(r.cfg.CORS))

	api := engine.Group("/api/v1")
	{
		// 公开接口 - 认证
		auth := api.Group("/auth")
		{
			auth.POST("/register", r.authHandler.Register)
			auth.POST("/login", r.authHandler.Login)
		}

		// 公开接口 - 计划浏览
		api.GET("/travel-plans", r.travelPlanHandler.List)
		api.GET("/travel-plans/:id", r.travelPlanHandler.Get)
		api.GET("/travel-plans/:id/reviews", r.reviewHandler.ListByPlan)

		// 支付网关回调（签名校验代替登录态）
		api.POST("/payments/webhook", r.paymentHandler.Webhook)

		// 需要认证的接口
		authenticated := api.Group("")
		authenticated.Use(middleware.Auth(r.cfg.JWT.Secret))
		{
			// 个人资料
			travelers := authenticated.Group("/travelers")
			{
				travelers.GET("/me", r.travelerHandler.GetProfile)
				travelers.PUT("/me", r.travelerHandler.UpdateProfile)
			}

			// 旅行计划
			authenticated.POST("/travel-plans", r.travelPlanHandler.Create)
			authenticated.GET("/travel-plans/my", r.travelPlanHandler.ListMine)
			authenticated.DELETE("/travel-plans/:id", r.travelPlanHandler.Delete)

			// 加入申请
			authenticated.POST("/travel-plans/:id/requests", r.tripRequestHandler.Create)
			requests := authenticated.Group("/trip-requests")
			{
				requests.GET("/my", r.tripRequestHandler.ListMine)
				requests.GET("/incoming", r.tripRequestHandler.ListIncoming)
				requests.PATCH("/:id", r.tripRequestHandler.Respond)
			}

			// 评价
			authenticated.POST("/reviews", r.reviewHandler.Create)
			authenticated.GET("/reviews/my", r.reviewHandler.ListMine)
			authenticated.PUT("/reviews/:id", r.reviewHandler.Update)
			authenticated.DELETE("/reviews/:id", r.reviewHandler.Delete)

			// 订阅结账
			authenticated.POST("/subscriptions/checkout", r.paymentHandler.CreateCheckout)

			// 仪表盘
			authenticated.GET("/stats/dashboard", r.statsHandler.TravelerDashboard)

			// 管理端
			admin := authenticated.Group("")
			admin.Use(middleware.RequireAdmin())
			{
				admin.GET("/reviews", r.reviewHandler.ListAll)
				admin.GET("/stats/admin", r.statsHandler.AdminDashboard)
				admin.GET("/stats/activities", r.statsHandler.Activities)
			}
		}
	}

	return engine
}
