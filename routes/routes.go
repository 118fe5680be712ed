package routes

import (
	"os"
	"strings"

	"servio-backend/config"
	"servio-backend/controllers"
	"servio-backend/storage"
	"servio-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	origins := []string{"http://localhost:3000", "http://localhost:19006"}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		origins = strings.Split(env, ",")
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	// locally stored blobs
	if local, ok := storage.Default().(*storage.LocalStore); ok {
		r.Static("/uploads", local.Dir())
	}

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	api := r.Group("/api")
	{
		// Service routes: browsing is public (with optional actor), editing
		// is owner-only behind auth
		services := api.Group("/services")
		{
			services.GET("", utils.OptionalAuthMiddleware(), controllers.GetServices)
			services.GET("/:id", utils.OptionalAuthMiddleware(), controllers.GetService)

			services.POST("", utils.AuthMiddleware(), controllers.CreateService)
			services.PUT("/:id", utils.AuthMiddleware(), controllers.UpdateService)
			services.DELETE("/:id", utils.AuthMiddleware(), controllers.DeleteService)

			services.POST("/:id/toggle_saved", utils.AuthMiddleware(), controllers.ToggleSaved)
			services.POST("/:id/images", utils.AuthMiddleware(), controllers.UploadServiceImage)
			services.DELETE("/:id/images/:imageId", utils.AuthMiddleware(), controllers.DeleteServiceImage)
		}

		// Booking routes: anonymous booking is allowed, listing and
		// cancellation are not
		bookings := api.Group("/bookings")
		{
			bookings.POST("", utils.OptionalAuthMiddleware(), controllers.CreateBooking)
			bookings.GET("", utils.AuthMiddleware(), controllers.GetBookings)
			bookings.DELETE("/:id", utils.AuthMiddleware(), controllers.CancelBooking)
		}

		api.GET("/saved", utils.AuthMiddleware(), controllers.GetSavedServices)

		notifications := api.Group("/notifications")
		notifications.Use(utils.AuthMiddleware())
		{
			notifications.GET("", controllers.GetNotifications)
			notifications.POST("/:id/read", controllers.MarkNotificationRead)
			notifications.DELETE("/:id", controllers.DeleteNotification)
		}

		profile := api.Group("/profile")
		profile.Use(utils.AuthMiddleware())
		{
			profile.GET("/me", controllers.GetMyProfile)
			profile.PUT("/me", controllers.UpdateMyProfile)
			profile.POST("/me/picture", controllers.UploadProfilePicture)
		}
	}

	return r
}
