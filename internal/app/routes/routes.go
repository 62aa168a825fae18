package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/affan/clubsphere/internal/app/controllers"
	"github.com/affan/clubsphere/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	clubController *controllers.ClubController,
	eventController *controllers.EventController,
	announcementController *controllers.AnnouncementController,
	adminController *controllers.AdminController,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	// --- Public auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
	}

	// --- Public reads, personalized when a token is present ---
	public := v1.Group("")
	public.Use(authMiddleware.OptionalJWTAuth())
	{
		public.GET("/clubs", clubController.ListClubs)
		public.GET("/clubs/:id", clubController.GetClub)
		public.GET("/events", eventController.ListEvents)
		public.GET("/announcements", announcementController.ListAnnouncements)
		public.GET("/stats", announcementController.GetStats)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/auth/me", authController.Me)

		authenticated.POST("/clubs", clubController.CreateClub)
		authenticated.POST("/clubs/:id/membership", clubController.ToggleMembership)
		authenticated.GET("/dashboard", clubController.Dashboard)

		authenticated.POST("/events", eventController.CreateEvent)
		authenticated.POST("/events/:id/registration", eventController.ToggleRegistration)

		authenticated.POST("/announcements", announcementController.PostAnnouncement)

		// Admin review queue. The role gate here is a fast reject; the
		// services re-check the capability themselves.
		admin := authenticated.Group("/admin")
		admin.Use(authMiddleware.AdminRequired())
		{
			admin.GET("/clubs/pending", adminController.ListPendingClubs)
			admin.POST("/clubs/:id/approve", adminController.ApproveClub)
			admin.POST("/clubs/:id/reject", adminController.RejectClub)

			admin.GET("/events/pending", adminController.ListPendingEvents)
			admin.POST("/events/:id/approve", adminController.ApproveEvent)
			admin.POST("/events/:id/reject", adminController.RejectEvent)
		}
	}
}
