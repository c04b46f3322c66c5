package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/matty-app/matty-backend/docs"
	"github.com/matty-app/matty-backend/internal/auditlog"
	"github.com/matty-app/matty-backend/internal/auth"
	"github.com/matty-app/matty-backend/internal/event"
	"github.com/matty-app/matty-backend/internal/feed"
	"github.com/matty-app/matty-backend/internal/interest"
	"github.com/matty-app/matty-backend/internal/notification"
	"github.com/matty-app/matty-backend/internal/reports"
	"github.com/matty-app/matty-backend/internal/user"
	"github.com/matty-app/matty-backend/middleware"
)

// Handlers bundles everything Setup wires into the router.
type Handlers struct {
	Auth          *auth.Handler
	AuthService   auth.Service
	Interests     *interest.Handler
	Users         *user.Handler
	Events        *event.Handler
	Feed          *feed.Handler
	Notifications *notification.Handler
	Reports       *reports.Handler
	AuditLogs     *auditlog.Handler
}

// Setup registers all routes.
func Setup(r *gin.Engine, h Handlers) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimiter())
	api.Use(middleware.AuditMiddleware())

	// 🔑 Public auth routes
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/login", h.Auth.Login)
		authGroup.POST("/refresh", h.Auth.Refresh)
	}

	// 🔒 Everything else requires a valid access token
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(h.AuthService))
	{
		protected.GET("/interests", h.Interests.ListInterests)

		profileRoutes := protected.Group("/profile")
		{
			profileRoutes.GET("", h.Users.GetProfile)
			profileRoutes.PATCH("", h.Users.UpdateProfile)
			profileRoutes.GET("/interests", h.Users.GetInterests)
			profileRoutes.PUT("/interests", h.Users.UpdateInterests)
			profileRoutes.GET("/image", h.Users.GetProfileImage)
			profileRoutes.PUT("/image", h.Users.PutProfileImage)
			profileRoutes.DELETE("/image", h.Users.DeleteProfileImage)
		}

		feedRoutes := protected.Group("/feed")
		{
			feedRoutes.GET("", h.Feed.GetFeed)
			feedRoutes.GET("/search", h.Feed.SearchEvents)
			feedRoutes.GET("/interests", h.Feed.SearchInterests)
		}

		eventRoutes := protected.Group("/events")
		{
			eventRoutes.POST("", h.Events.CreateEvent)
			eventRoutes.GET("/export", h.Reports.ExportMyEvents)
			eventRoutes.GET("/:id", h.Events.GetEvent)
			eventRoutes.PUT("/:id", h.Events.UpdateEvent)
			eventRoutes.POST("/:id/join", h.Feed.JoinEvent)
			eventRoutes.POST("/:id/leave", h.Feed.LeaveEvent)
			eventRoutes.POST("/:id/delete-request", h.Events.RequestDelete)
			eventRoutes.DELETE("/:id", h.Events.DeleteEvent)
			eventRoutes.GET("/:id/participants/export", h.Reports.ExportParticipants)
		}

		notificationRoutes := protected.Group("/notifications")
		{
			notificationRoutes.GET("", h.Notifications.ListNotifications)
			notificationRoutes.PATCH("/:id/read", h.Notifications.MarkRead)
			notificationRoutes.POST("/device-tokens", h.Notifications.RegisterDeviceToken)
		}

		auditRoutes := protected.Group("/auditlogs")
		{
			auditRoutes.GET("", h.AuditLogs.ListAuditLogs)
		}
	}
}
