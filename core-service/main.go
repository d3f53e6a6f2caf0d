package main

import (
	"log"
	"strings"

	"hrforge-backend/core-service/handlers"
	"hrforge-backend/core-service/middleware"
	"hrforge-backend/shared/config"
	"hrforge-backend/shared/database"
	"hrforge-backend/shared/utils/cache"

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

	// Redis-backed membership cache; the service degrades to direct
	// database lookups when Redis is unavailable.
	if err := cache.InitCacheManager(); err != nil {
		log.Printf("⚠️ Cache manager unavailable, membership lookups will hit the database: %v", err)
	}

	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{config.GetConfig().FrontendURL}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization", "X-Organization-ID")
	router.Use(cors.New(corsConfig))

	// Tenant-scoped routes: authenticated and resolved to one organization.
	tenant := router.Group("/api", middleware.AuthMiddleware(), middleware.TenantMiddleware())
	{
		// Employee routes
		tenant.GET("/organization/employees", handlers.GetEmployees)
		tenant.GET("/organization/employees/eligible-users", handlers.GetEligibleUsers)
		tenant.POST("/organization/employees", handlers.HireEmployee)
		tenant.PATCH("/organization/employees/:id", handlers.UpdateEmployee)
		tenant.PATCH("/organization/employees/:id/terminate", handlers.TerminateEmployee)

		// Role routes
		tenant.GET("/roles", handlers.GetRoles)
		tenant.GET("/roles/:id", handlers.GetRole)
		tenant.POST("/roles", handlers.CreateRole)
		tenant.PATCH("/roles/:id", handlers.UpdateRole)
		tenant.DELETE("/roles/:id", handlers.DeleteRole)

		// Organization routes
		tenant.GET("/organization", handlers.GetOrganization)
		tenant.PATCH("/organization", handlers.UpdateOrganization)
	}

	// Platform administration routes: authenticated only, the handler
	// enforces super admin.
	admin := router.Group("/api", middleware.AuthMiddleware())
	{
		admin.GET("/organization-requests", handlers.GetOrganizationRequests)
		admin.POST("/organization-requests/:id/approve", handlers.ApproveOrganizationRequest)
		admin.POST("/organization-requests/:id/reject", handlers.RejectOrganizationRequest)
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "core",
		})
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Parse port from config URL
	port := strings.Split(config.GetConfig().CoreServiceURL, ":")[2]
	log.Printf("Core Service starting on port %s...", port)
	router.Run(":" + port)
}
