package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hrforge-backend/shared/database"
	"hrforge-backend/shared/database/models"
	utils "hrforge-backend/shared/utils/auth"
	"hrforge-backend/shared/utils/cache"
)

// TenantHeader is the explicit tenant selector used when the access token
// carries no organization claim.
const TenantHeader = "X-Organization-ID"

// AuthMiddleware extracts user information from JWT token and sets it in context
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			c.Abort()
			return
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization format. Expected Bearer {token}"})
			c.Abort()
			return
		}

		claims, err := utils.ValidateJWT(tokenParts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user ID in token"})
			c.Abort()
			return
		}

		c.Set("userID", userID)
		c.Set("userEmail", claims.Email)
		c.Set("tokenOrganizationID", claims.OrganizationID)

		c.Next()
	}
}

// TenantMiddleware establishes the active organization context. The token's
// organization claim wins; otherwise the tenant-selector header is accepted
// only for super admins or verified members. This is the hard boundary
// against cross-tenant access through header spoofing.
func TenantMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.MustGet("userID").(uuid.UUID)

		orgIDString := c.GetString("tokenOrganizationID")
		fromClaim := orgIDString != ""
		if !fromClaim {
			orgIDString = c.GetHeader(TenantHeader)
		}
		if orgIDString == "" {
			c.JSON(http.StatusForbidden, gin.H{
				"error":   "No organization context",
				"message": "Provide an organization claim or the " + TenantHeader + " header",
			})
			c.Abort()
			return
		}

		orgID, err := uuid.Parse(orgIDString)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid organization ID format",
				"message": err.Error(),
			})
			c.Abort()
			return
		}

		db := database.DB

		var org models.Organization
		if err := db.First(&org, "id = ?", orgID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "Organization not found",
				"message": "Organization with the given ID does not exist",
			})
			c.Abort()
			return
		}

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			c.Abort()
			return
		}

		// Header-selected tenants require verified membership; a token claim
		// was already validated at issuance.
		if !fromClaim && !user.IsSuperAdmin && org.OwnerID != userID {
			if !hasMembership(userID, orgID) {
				c.JSON(http.StatusForbidden, gin.H{
					"error":   "Access denied",
					"message": "No active employment in this organization",
				})
				c.Abort()
				return
			}
		}

		c.Set("organization", &org)
		c.Set("currentUser", &user)

		c.Next()
	}
}

// hasMembership checks for a live employment, consulting the redis cache
// first. A nil cache manager degrades to a direct lookup.
func hasMembership(userID, orgID uuid.UUID) bool {
	cm := cache.GetCacheManager()
	if cm != nil {
		if data, ok := cm.GetMembership(userID.String(), orgID.String()); ok {
			return data.IsMember
		}
	}

	var employment models.EmploymentState
	err := database.DB.Where("user_id = ? AND organization_id = ? AND status IN ?",
		userID, orgID, models.LiveEmploymentStatuses).First(&employment).Error
	isMember := err == nil

	if cm != nil {
		data := cache.MembershipCacheData{IsMember: isMember}
		if isMember {
			data.EmploymentID = employment.ID.String()
			data.RoleID = employment.RoleID.String()
			data.Status = employment.Status
		}
		cm.SetMembership(userID.String(), orgID.String(), data)
	}

	return isMember
}
