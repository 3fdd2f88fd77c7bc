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

	"greenfields/internal/chat"
	"greenfields/internal/config"
	"greenfields/internal/handler"
	"greenfields/internal/middleware"
	"greenfields/internal/repository"
	"greenfields/internal/service"
	"greenfields/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading, relying on environment variables")
	}

	// --- Configuration ---
	dbCfg, err := config.LoadDBConfig()
	if err != nil {
		log.Fatalf("Failed to load DB config: %v", err)
	}

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "5000" // Default port
	}

	sessionTTL := 60 * time.Minute
	if ttlStr := os.Getenv("SESSION_TTL_MINUTES"); ttlStr != "" {
		ttlMin, err := strconv.ParseInt(ttlStr, 10, 64)
		if err != nil || ttlMin <= 0 {
			log.Printf("Invalid SESSION_TTL_MINUTES, defaulting to 60: %v", err)
		} else {
			sessionTTL = time.Duration(ttlMin) * time.Minute
		}
	}

	uploadsDir := os.Getenv("UPLOADS_DIR")
	if uploadsDir == "" {
		uploadsDir = "uploads" // Default uploads directory
	}
	if err := os.MkdirAll(uploadsDir, os.ModePerm); err != nil {
		log.Fatalf("Failed to create uploads directory %s: %v", uploadsDir, err)
	}
	log.Printf("Uploads will be stored in: %s", uploadsDir)

	cropModelURL := os.Getenv("CROP_MODEL_URL")
	if cropModelURL == "" {
		cropModelURL = "http://127.0.0.1:5001"
	}
	adviceAPIURL := os.Getenv("ADVICE_API_URL")
	adviceAPIKey := os.Getenv("ADVICE_API_KEY")
	adviceModel := os.Getenv("ADVICE_MODEL")
	if adviceModel == "" {
		adviceModel = "gpt-3.5-turbo"
	}

	// --- Database Connection ---
	dbPool, err := config.ConnectDB(dbCfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbPool.Close()

	// --- Auto Migration ---
	if err := config.AutoMigrate(dbPool); err != nil {
		log.Fatalf("Failed to auto-migrate database: %v", err)
	}

	// --- Session Store ---
	sessions := session.NewStore(sessionTTL)
	stopSweeper := make(chan struct{})
	defer close(stopSweeper)
	sessions.StartSweeper(time.Minute, stopSweeper)

	// --- Initialize Repositories ---
	userRepo := repository.NewUserRepository(dbPool)
	productRepo := repository.NewProductRepository(dbPool)
	orderRepo := repository.NewOrderRepository(dbPool)
	profileRepo := repository.NewProfileRepository(dbPool)

	// --- Initialize Services ---
	authService := service.NewAuthService(userRepo)
	productService := service.NewProductService(productRepo, uploadsDir)
	orderService := service.NewOrderService(orderRepo, productRepo, userRepo)
	profileService := service.NewProfileService(profileRepo, userRepo)

	httpClient := &http.Client{Timeout: 15 * time.Second}
	cropRecommender := service.NewCropRecommender(cropModelURL, httpClient)
	adviceClient := service.NewAdviceClient(adviceAPIURL, adviceAPIKey, adviceModel, httpClient)

	// --- Initialize Handlers ---
	authHandler := handler.NewAuthHandler(authService, sessions, sessionTTL)
	productHandler := handler.NewProductHandler(productService)
	orderHandler := handler.NewOrderHandler(orderService)
	profileHandler := handler.NewProfileHandler(profileService)
	advisorHandler := handler.NewAdvisorHandler(cropRecommender, adviceClient)
	chatHandler := chat.NewHandler(chat.NewHub())

	// --- Setup Gin Router ---
	// gin.SetMode(gin.ReleaseMode) // Uncomment for production
	router := gin.Default()

	// Simple CORS middleware (allow all for development)
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	// --- Initialize Middlewares ---
	router.Use(middleware.SessionMiddleware(sessions))
	authMW := middleware.RequireAuth()
	sellerMW := middleware.SellerMiddleware()

	// --- Register Routes ---
	authHandler.RegisterAuthRoutes(router)
	productHandler.RegisterProductRoutes(router, authMW)
	orderHandler.RegisterOrderRoutes(router, authMW, sellerMW)
	profileHandler.RegisterProfileRoutes(router)
	advisorHandler.RegisterAdvisorRoutes(router)
	chatHandler.RegisterChatRoutes(router)

	// Uploaded product images
	router.Static("/uploads", uploadsDir)

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		if err := dbPool.Ping(context.Background()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "db": "unhealthy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": "healthy"})
	})

	// --- Start Server ---
	srv := &http.Server{
		Addr:    ":" + serverPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on port %s", serverPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
