package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"hotel-booking/config"
	"hotel-booking/controllers"
	"hotel-booking/gateway"
	"hotel-booking/middleware"
	"hotel-booking/routes"
	"hotel-booking/services"
)

func gatewayClientFromEnv() gateway.Client {
	keyID := os.Getenv("GATEWAY_KEY_ID")
	keySecret := os.Getenv("GATEWAY_KEY_SECRET")
	baseURL := os.Getenv("GATEWAY_BASE_URL")

	if keyID == "" || keySecret == "" || baseURL == "" {
		log.Println("⚠️  Payment gateway credentials not set; using mock gateway")
		return gateway.NewMockClient()
	}
	return gateway.NewClient(gateway.Config{
		BaseURL:   baseURL,
		KeyID:     keyID,
		KeySecret: keySecret,
		Currency:  os.Getenv("GATEWAY_CURRENCY"),
	})
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env not found or couldn't load it; continuing with environment variables")
	}

	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("❌ Database connect failed: %v", err)
	}
	db := config.DB
	if db == nil {
		log.Fatal("❌ config.DB is nil after ConnectDatabase()")
	}
	log.Println("✅ Database connection established and migrations applied")

	// Initialize services
	availabilityService := services.NewAvailabilityService(db)
	bookingService := services.NewBookingService(db)
	blockService := services.NewBlockService(db)
	roomService := services.NewRoomService(db)
	paymentService := services.NewPaymentService(bookingService, gatewayClientFromEnv())

	// Initialize controllers
	availabilityController := controllers.NewAvailabilityController(availabilityService)
	bookingController := controllers.NewBookingController(bookingService)
	paymentController := controllers.NewPaymentController(paymentService)
	blockController := controllers.NewBlockController(blockService)
	roomController := controllers.NewRoomController(roomService)

	// Rate limiter lives here, not in a package-level variable
	limiter := middleware.NewRateLimiter(
		envInt("RATE_LIMIT_PER_MINUTE", 120),
		envInt("RATE_LIMIT_BURST", 30),
	)

	router := routes.SetupRouter(
		availabilityController,
		bookingController,
		paymentController,
		blockController,
		roomController,
		limiter,
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	srv := &http.Server{
		Addr:    addr,
		Handler: router,
		// useful timeouts
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("🚀 Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe(): %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("⚠️  Shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
