// Package docs HRForge API documentation
package docs

// Swagger documentation info
// @title HRForge API
// @version 1.0
// @description Central API documentation - For all HRForge microservices
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://www.hrforge.com/support
// @contact.email support@hrforge.com

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT token.

// Auth Service Endpoints
// @tag.name auth
// @tag.description Authentication, organization requests and tenant switching

// Core Service Endpoints
// @tag.name employees
// @tag.description Employment management within the active organization
// @tag.name roles
// @tag.description Role ladder management
// @tag.name organizations
// @tag.description Organization settings

// Platform Administration Endpoints
// @tag.name organization-requests
// @tag.description Organization request review and tenant provisioning
