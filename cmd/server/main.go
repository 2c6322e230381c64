package main

import (
	"fmt"
	"log"

	"github.com/qs3c/travelbuddy_go_server/config"
	"github.com/qs3c/travelbuddy_go_server/internal/api"
	"github.com/qs3c/travelbuddy_go_server/internal/api/handler"
	"github.com/qs3c/travelbuddy_go_server/internal/database"
	"github.com/qs3c/travelbuddy_go_server/internal/pkg/cron"
	"github.com/qs3c/travelbuddy_go_server/internal/pkg/stripe"
	"github.com/qs3c/travelbuddy_go_server/internal/repository"
	"github.com/qs3c/travelbuddy_go_server/internal/service"
)

func main() {
	// 加载配置
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化数据库
	db, err := database.NewMySQL(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}
	log.Println("Database connected")

	// 初始化 Redis
	rdb, err := database.NewRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect redis: %v", err)
	}
	log.Println("Redis connected")

	// 初始化支付网关客户端
	stripeClient := stripe.NewClient(stripe.Config{
		SecretKey:     cfg.Stripe.SecretKey,
		WebhookSecret: cfg.Stripe.WebhookSecret,
		SuccessURL:    cfg.Stripe.SuccessURL,
		CancelURL:     cfg.Stripe.CancelURL,
	})

	// 初始化 Repository
	userRepo := repository.NewUserRepository(db)
	travelerRepo := repository.NewTravelerRepository(db)
	planRepo := repository.NewTravelPlanRepository(db)
	requestRepo := repository.NewTripRequestRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	// 初始化 Service
	authService := service.NewAuthService(db, userRepo, travelerRepo, cfg)
	travelerService := service.NewTravelerService(userRepo, travelerRepo)
	planService := service.NewTravelPlanService(travelerRepo, planRepo)
	subscriptionService := service.NewSubscriptionService(travelerRepo)
	requestService := service.NewTripRequestService(travelerRepo, planRepo, requestRepo, subscriptionService)
	reviewService := service.NewReviewService(db, travelerRepo, planRepo, reviewRepo)
	paymentService := service.NewPaymentService(db, travelerRepo, paymentRepo, stripeClient, cfg)
	statsService := service.NewStatsService(travelerRepo, planRepo, paymentRepo, reviewRepo, rdb)

	// 启动后台维护任务
	cronService := cron.NewService(paymentRepo, 24)
	cronService.Start()
	defer cronService.Stop()

	// 初始化 Handler
	authHandler := handler.NewAuthHandler(authService)
	travelerHandler := handler.NewTravelerHandler(travelerService)
	planHandler := handler.NewTravelPlanHandler(planService)
	requestHandler := handler.NewTripRequestHandler(requestService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	paymentHandler := handler.NewPaymentHandler(paymentService, stripeClient)
	statsHandler := handler.NewStatsHandler(statsService)

	// 初始化 Router
	router := api.NewRouter(
		authHandler,
		travelerHandler,
		planHandler,
		requestHandler,
		reviewHandler,
		paymentHandler,
		statsHandler,
		cfg,
	)
	engine := router.Setup()

	// 启动服务器
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Server starting on %s", addr)
	if err := engine.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
