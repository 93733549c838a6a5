package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"hotel-booking/controllers"
	"hotel-booking/middleware"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// SetupRouter wires controllers and shared middleware into the engine.
func SetupRouter(
	ac *controllers.AvailabilityController,
	bc *controllers.BookingController,
	pc *controllers.PaymentController,
	blc *controllers.BlockController,
	rc *controllers.RoomController,
	limiter *middleware.RateLimiter,
) *gin.Engine {
	r := gin.Default()

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.Logger())
	r.Use(limiter.Middleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		rooms := api.Group("/rooms")
		{
			// /search must come before /:id style routes
			rooms.GET("/search", ac.SearchRooms)

			rooms.GET("", rc.GetRooms)
			rooms.POST("", rc.CreateRoom)
			rooms.PATCH("/:id", rc.UpdateRoom)
			rooms.PUT("/:id", rc.UpdateRoom)
			rooms.DELETE("/:id", rc.DeleteRoom)
		}

		bookings := api.Group("/bookings")
		{
			bookings.GET("", bc.GetBookings)
			bookings.POST("", bc.CreateBooking)
			bookings.GET("/:id", bc.GetBookingDetails)
			bookings.POST("/:id/cancel", bc.CancelBooking)
		}

		admin := api.Group("/admin")
		{
			admin.POST("/bookings", bc.CreateAdminBooking)
		}

		payments := api.Group("/payments")
		{
			payments.POST("/order", pc.CreateOrder)
			payments.POST("/verify", pc.VerifyPayment)
		}

		blocks := api.Group("/blocks")
		{
			blocks.GET("", blc.ListBlocks)
			blocks.POST("", blc.CreateBlock)
			blocks.DELETE("", blc.DeleteBlock)
		}
	}

	return r
}
