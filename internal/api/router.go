package api

import (
	"github.com/gin-gonic/gin"

	"github.com/vowlink/wedding_go_server/config"
	"github.com/vowlink/wedding_go_server/internal/api/handler"
	"github.com/vowlink/wedding_go_server/internal/api/middleware"
	"github.com/vowlink/wedding_go_server/internal/model"
)

type Router struct {
	authHandler        *handler.AuthHandler
	listingHandler     *handler.ListingHandler
	messageHandler     *handler.MessageHandler
	reviewHandler      *handler.ReviewHandler
	favoriteHandler    *handler.FavoriteHandler
	appointmentHandler *handler.AppointmentHandler
	adminHandler       *handler.AdminHandler
	billingHandler     *handler.BillingHandler
	websocketHandler   *handler.WebSocketHandler
	cfg                *config.Config
}

func NewRouter(
	authHandler *handler.AuthHandler,
	listingHandler *handler.ListingHandler,
	messageHandler *handler.MessageHandler,
	reviewHandler *handler.ReviewHandler,
	favoriteHandler *handler.FavoriteHandler,
	appointmentHandler *handler.AppointmentHandler,
	adminHandler *handler.AdminHandler,
	billingHandler *handler.BillingHandler,
	websocketHandler *handler.WebSocketHandler,
	cfg *config.Config,
) *Router {
	return &Router{
		authHandler:        authHandler,
		listingHandler:     listingHandler,
		messageHandler:     messageHandler,
		reviewHandler:      reviewHandler,
		favoriteHandler:    favoriteHandler,
		appointmentHandler: appointmentHandler,
		adminHandler:       adminHandler,
		billingHandler:     billingHandler,
		websocketHandler:   websocketHandler,
		cfg:                cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	if r.cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	// Stripe 桥接端点挂在根路径，响应格式和前端约定死了，
	// 自带 CORS 处理，不套统一中间件
	engine.Any("/create-checkout-session", r.billingHandler.CreateCheckoutSession)
	engine.POST("/webhook", r.billingHandler.Webhook)

	api := engine.Group("/api/v1")
	api.Use(middleware.CORS(r.cfg.CORS))
	{
		// WebSocket
		api.GET("/ws", r.websocketHandler.Handle)

		// 公开接口 - 认证
		auth := api.Group("/auth")
		{
			auth.POST("/register/vendor", r.authHandler.RegisterVendor)
			auth.POST("/register/couple", r.authHandler.RegisterCouple)
			auth.POST("/login", r.authHandler.Login)
		}

		// 公开接口 - 商家搜索和详情
		api.GET("/listings", r.listingHandler.Search)
		api.GET("/listings/:id", r.listingHandler.GetDetail)
		api.GET("/listings/:id/reviews", r.reviewHandler.List)
		api.GET("/cities", r.listingHandler.ListCities)

		// 需要认证的接口
		authenticated := api.Group("")
		authenticated.Use(middleware.Auth(r.cfg.JWT.Secret))
		{
			// 消息和会话（双方）
			authenticated.POST("/messages/:userID", r.messageHandler.Send)
			authenticated.GET("/threads", r.messageHandler.ListThreads)
			authenticated.GET("/threads/:id/messages", r.messageHandler.ListMessages)
			authenticated.POST("/threads/:id/transition", r.messageHandler.Transition)

			// 商家侧
			vendor := authenticated.Group("/vendor")
			vendor.Use(middleware.RequireRole(model.RoleVendor))
			{
				vendor.GET("/listing", r.listingHandler.GetMine)
				vendor.PUT("/listing", r.listingHandler.Update)
				vendor.POST("/listing/images", r.listingHandler.UploadImage)
				vendor.DELETE("/listing/images", r.listingHandler.DeleteImage)
				vendor.GET("/leads", r.messageHandler.ListLeads)
				vendor.POST("/reviews/:id/response", r.reviewHandler.Respond)
				vendor.GET("/appointments", r.appointmentHandler.ListForVendor)
				vendor.POST("/appointments/:id/status", r.appointmentHandler.UpdateStatus)
			}

			// 新人侧
			couple := authenticated.Group("")
			couple.Use(middleware.RequireRole(model.RoleCouple))
			{
				couple.POST("/listings/:id/reviews", r.reviewHandler.Create)
				couple.PUT("/reviews/:id", r.reviewHandler.Update)
				couple.DELETE("/reviews/:id", r.reviewHandler.Delete)
				couple.POST("/favorites/:listingID", r.favoriteHandler.Save)
				couple.DELETE("/favorites/:listingID", r.favoriteHandler.Unsave)
				couple.GET("/favorites", r.favoriteHandler.List)
				couple.POST("/appointments", r.appointmentHandler.Create)
				couple.GET("/appointments", r.appointmentHandler.ListMine)
			}

			// 管理后台（只读）
			admin := authenticated.Group("/admin")
			admin.Use(middleware.RequireRole(model.RoleAdmin))
			{
				admin.GET("/stats", r.adminHandler.Stats)
				admin.GET("/members", r.adminHandler.RecentMembers)
				admin.GET("/vendors", r.adminHandler.Vendors)
			}
		}
	}

	return engine
}
