package main

import (
	"log"
	"strings"

	"hrforge-backend/auth-service/handlers"
	"hrforge-backend/auth-service/middleware"
	"hrforge-backend/shared/config"
	"hrforge-backend/shared/database"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func main() {
	// Load configuration
	config.LoadConfig()

	// Initialize database
	if err := database.InitDatabase(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.CloseDatabase()

	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{config.GetConfig().FrontendURL}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization", "X-Organization-ID")
	router.Use(cors.New(corsConfig))

	// Auth endpoints
	router.POST("/api/auth/login", handlers.Login)
	router.POST("/api/auth/register", handlers.Register)
	router.GET("/api/auth/me", middleware.AuthMiddleware(), handlers.Me)

	// Organization request endpoints
	router.POST("/api/auth/organization-request", middleware.AuthMiddleware(), handlers.CreateOrganizationRequest)
	router.GET("/api/auth/organization-request/me", middleware.AuthMiddleware(), handlers.GetMyOrganizationRequest)
	router.GET("/api/auth/organization-requests/me", middleware.AuthMiddleware(), handlers.GetMyOrganizationRequests)

	// Tenant switching
	router.POST("/api/auth/switch-organization", middleware.AuthMiddleware(), handlers.SwitchOrganization)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "auth",
		})
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	port := strings.Split(config.GetConfig().AuthServiceURL, ":")[2]
	log.Printf("Auth Service starting on port %s...", port)
	router.Run(":" + port)
}
