package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/emrekaya/clubsphere/internal/app/controllers"
	"github.com/emrekaya/clubsphere/internal/app/models"
	"github.com/emrekaya/clubsphere/internal/app/models/dto"
	"github.com/emrekaya/clubsphere/internal/middleware"
	"github.com/emrekaya/clubsphere/internal/pkg/websocket"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	eventController *controllers.EventController,
	registrationController *controllers.RegistrationController,
	notificationController *controllers.NotificationController,
	memberController *controllers.MemberController,
	chatController *controllers.ChatController,
	adminController *controllers.AdminController,
	wsHandler *websocket.Handler,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/auth/logout", authController.Logout)
		authenticated.GET("/auth/me", authController.GetMe)

		// Event routes - browsing is open to every authenticated member
		events := authenticated.Group("/events")
		{
			events.GET("", eventController.GetEvents)
			events.GET("/:id", eventController.GetEvent)

			// Event management is an admin action
			eventsAdminProtected := events.Group("")
			eventsAdminProtected.Use(authMiddleware.RoleRequired(string(models.RoleAdmin)))
			{
				eventsAdminProtected.POST("", eventController.CreateEvent)
				eventsAdminProtected.PUT("/:id", eventController.UpdateEvent)
				eventsAdminProtected.DELETE("/:id", eventController.DeleteEvent)
			}

			// Registration (RSVP) routes
			events.POST("/:id/registrations", registrationController.Register)
			events.DELETE("/:id/registrations", registrationController.Cancel)
			events.GET("/:id/registrations/me", registrationController.GetStatus)

			// Attendee routes
			events.GET("/:id/attendees", registrationController.ListAttendees)
			events.GET("/:id/attendees/count", registrationController.GetAttendeeCount)

			// Event chat (registered attendees only, enforced by the service)
			events.GET("/:id/chat", chatController.GetMessages)
			events.POST("/:id/chat", chatController.SendMessage)
		}

		// Notification routes
		notifications := authenticated.Group("/notifications")
		{
			notifications.GET("", notificationController.List)
			notifications.GET("/unread-count", notificationController.UnreadCount)
			notifications.POST("/:id/read", notificationController.MarkRead)
			notifications.POST("/read-all", notificationController.MarkAllRead)
		}

		// Member profile routes
		users := authenticated.Group("/users")
		{
			users.PUT("/me", memberController.UpdateProfile)

			usersAdminProtected := users.Group("")
			usersAdminProtected.Use(authMiddleware.RoleRequired(string(models.RoleAdmin)))
			{
				usersAdminProtected.GET("", memberController.ListMembers)
			}
		}

		// Admin routes - restricted by role-based middleware
		admin := authenticated.Group("/admin")
		admin.Use(authMiddleware.RoleRequired(string(models.RoleAdmin)))
		{
			admin.GET("/overview", adminController.Overview)
			admin.POST("/reconcile", adminController.Reconcile)
		}

		// WebSocket endpoint for live event chat and attendee counts
		authenticated.GET("/ws/events/:id", wsHandler.HandleConnection)
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.NewSuccessResponse(gin.H{"status": "ok"}, ""))
	})

	// Prometheus metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger routes are set up in bootstrap
}
