package main

import (
	"context"
	"fmt"
	"log"

	"github.com/vowlink/wedding_go_server/config"
	"github.com/vowlink/wedding_go_server/internal/api"
	"github.com/vowlink/wedding_go_server/internal/api/handler"
	"github.com/vowlink/wedding_go_server/internal/database"
	"github.com/vowlink/wedding_go_server/internal/pkg/cron"
	"github.com/vowlink/wedding_go_server/internal/pkg/email"
	"github.com/vowlink/wedding_go_server/internal/pkg/oss"
	"github.com/vowlink/wedding_go_server/internal/pkg/pubsub"
	"github.com/vowlink/wedding_go_server/internal/pkg/queue"
	"github.com/vowlink/wedding_go_server/internal/pkg/ws"
	"github.com/vowlink/wedding_go_server/internal/repository"
	"github.com/vowlink/wedding_go_server/internal/service"
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

	// 初始化 OSS（可选）
	var ossClient *oss.Client
	if cfg.OSS.Endpoint != "" && cfg.OSS.AccessKeyID != "" {
		ossClient, err = oss.NewClient(&cfg.OSS)
		if err != nil {
			log.Printf("Warning: Failed to init OSS client: %v", err)
		} else {
			log.Println("OSS client initialized")
		}
	}

	// 初始化 Queue 和 Pub/Sub
	leadQueue := queue.NewQueue(rdb, cfg.Queue.LeadQueue)
	publisher := pubsub.NewPublisher(rdb)
	subscriber := pubsub.NewSubscriber(rdb)

	// 初始化 WebSocket Hub
	wsHub := ws.NewHub()
	log.Println("WebSocket hub started")

	// 订阅会话事件，推给在线的对端
	go func() {
		err := subscriber.Subscribe(context.Background(), func(event *pubsub.ThreadEvent) {
			if err := wsHub.Push(event.ReceiverID, event.Type, event); err != nil {
				log.Printf("Failed to push thread event to user %d: %v", event.ReceiverID, err)
			}
		})
		if err != nil {
			log.Printf("Thread event subscription stopped: %v", err)
		}
	}()

	// 初始化邮件服务
	emailSvc := email.NewService(&cfg.Email)

	// 初始化 Repository
	userRepo := repository.NewUserRepository(db)
	listingRepo := repository.NewListingRepository(db)
	coupleRepo := repository.NewCoupleRepository(db)
	threadRepo := repository.NewThreadRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	cityRepo := repository.NewCityRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)

	// 初始化 Service
	authService := service.NewAuthService(userRepo, listingRepo, coupleRepo, emailSvc, cfg)
	listingService := service.NewListingService(listingRepo, reviewRepo, cityRepo, ossClient, cfg)
	threadService := service.NewThreadService(threadRepo, messageRepo, userRepo, coupleRepo, listingRepo, leadQueue, publisher, cfg)
	reviewService := service.NewReviewService(reviewRepo, listingRepo)
	favoriteService := service.NewFavoriteService(favoriteRepo, listingRepo)
	appointmentService := service.NewAppointmentService(appointmentRepo, listingRepo, coupleRepo)
	adminService := service.NewAdminService(userRepo, listingRepo, coupleRepo, threadRepo, reviewRepo)
	billingService := service.NewBillingService(listingRepo, rdb, cfg)

	// 初始化 Handler
	authHandler := handler.NewAuthHandler(authService)
	listingHandler := handler.NewListingHandler(listingService)
	messageHandler := handler.NewMessageHandler(threadService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	favoriteHandler := handler.NewFavoriteHandler(favoriteService)
	appointmentHandler := handler.NewAppointmentHandler(appointmentService)
	adminHandler := handler.NewAdminHandler(adminService)
	billingHandler := handler.NewBillingHandler(billingService, &cfg.Stripe)
	websocketHandler := handler.NewWebSocketHandler(wsHub, cfg.JWT.Secret)

	// 启动定时任务（过期订阅清理）
	cronService := cron.NewService(listingRepo)
	cronService.Start()
	defer cronService.Stop()

	// 初始化 Router
	router := api.NewRouter(
		authHandler,
		listingHandler,
		messageHandler,
		reviewHandler,
		favoriteHandler,
		appointmentHandler,
		adminHandler,
		billingHandler,
		websocketHandler,
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
