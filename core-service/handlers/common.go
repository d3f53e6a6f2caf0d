package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"hrforge-backend/core-service/services"
	"hrforge-backend/shared/database/models"
	"hrforge-backend/shared/utils/apperrors"
	"hrforge-backend/shared/utils/cache"
)

// SuccessResponse represents a generic success response
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// tenantContext returns the organization and user placed by the tenant
// middleware.
func tenantContext(ctx *gin.Context) (*models.Organization, *models.User) {
	org := ctx.MustGet("organization").(*models.Organization)
	user := ctx.MustGet("currentUser").(*models.User)
	return org, user
}

// isOwner reports whether the caller owns the tenant or is platform staff.
func isOwner(org *models.Organization, user *models.User) bool {
	return org.OwnerID == user.ID || user.IsSuperAdmin
}

// respondError maps a service error to the HTTP envelope.
func respondError(ctx *gin.Context, err error) {
	title := "Internal server error"
	switch apperrors.KindOf(err) {
	case apperrors.KindValidation:
		title = "Validation failed"
	case apperrors.KindAuthorization:
		title = "Access denied"
	case apperrors.KindNotFound:
		title = "Not found"
	case apperrors.KindConflict:
		title = "Conflict"
	case apperrors.KindTransaction:
		title = "Operation failed"
	}
	ctx.JSON(apperrors.HTTPStatus(err), gin.H{
		"error":   title,
		"message": err.Error(),
	})
}

// loadLiveEmployments loads every non-terminated employment of the tenant
// with its user and role.
func loadLiveEmployments(db *gorm.DB, orgID uuid.UUID) ([]models.EmploymentState, error) {
	var employments []models.EmploymentState
	err := db.Preload("User").Preload("Role").
		Where("organization_id = ? AND status IN ?", orgID, models.LiveEmploymentStatuses).
		Find(&employments).Error
	if err != nil {
		return nil, apperrors.Transaction("failed to load employments", err)
	}
	return employments, nil
}

// resolveCallerScope loads the tenant's live employments and computes the
// caller's visibility scope over them.
func resolveCallerScope(db *gorm.DB, org *models.Organization, user *models.User) (*services.Scope, []models.EmploymentState, error) {
	employments, err := loadLiveEmployments(db, org.ID)
	if err != nil {
		return nil, nil, err
	}
	if user.IsSuperAdmin {
		return &services.Scope{Unrestricted: true}, employments, nil
	}
	scope, err := services.ResolveScope(org, user.ID, employments)
	if err != nil {
		return nil, nil, err
	}
	return scope, employments, nil
}

// invalidateMembership drops the cached membership after a mutation.
func invalidateMembership(userID, orgID uuid.UUID) {
	if cm := cache.GetCacheManager(); cm != nil {
		cm.InvalidateMembership(userID.String(), orgID.String())
	}
}
