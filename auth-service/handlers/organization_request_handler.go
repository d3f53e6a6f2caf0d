package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"hrforge-backend/core-service/services"
	"hrforge-backend/shared/clients"
	"hrforge-backend/shared/database"
	"hrforge-backend/shared/database/models"
	utils "hrforge-backend/shared/utils/auth"
)

// CreateOrganizationRequestBody represents request body for a new
// organization request
type CreateOrganizationRequestBody struct {
	OrgName     string `json:"org_name" binding:"required"`
	OrgType     string `json:"org_type" binding:"required"`
	Industry    string `json:"industry"`
	CompanySize string `json:"company_size"`
	Description string `json:"description"`
}

// SwitchOrganizationBody selects the user's current organization
type SwitchOrganizationBody struct {
	OrganizationID uuid.UUID `json:"organization_id" binding:"required"`
}

// NextRevision computes the revision for a resubmission: one past the
// highest revision the user has submitted so far.
func NextRevision(previous []models.OrganizationRequest) int {
	highest := 0
	for _, request := range previous {
		if request.Revision > highest {
			highest = request.Revision
		}
	}
	return highest + 1
}

// CreateOrganizationRequest submits a new organization request
// @Summary Submit an organization request
// @Description Submit a request to create a new organization. Rejected requests may be resubmitted; each resubmission increments the revision.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body CreateOrganizationRequestBody true "Request information"
// @Security BearerAuth
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Unknown organization type"
// @Failure 409 {object} map[string]string "A pending or approved request already exists"
// @Router /auth/organization-request [post]
func CreateOrganizationRequest(ctx *gin.Context) {
	var req CreateOrganizationRequestBody
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"message": err.Error(),
		})
		return
	}

	if _, err := services.TemplateForOrgType(req.OrgType); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Unknown organization type",
			"message": err.Error(),
		})
		return
	}

	db := database.DB
	userID := ctx.MustGet("userID").(uuid.UUID)

	var previous []models.OrganizationRequest
	if err := db.Where("user_id = ?", userID).Find(&previous).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to check existing requests",
			"message": err.Error(),
		})
		return
	}

	for _, existing := range previous {
		if existing.Status == models.RequestPending || existing.Status == models.RequestApproved {
			ctx.JSON(http.StatusConflict, gin.H{
				"error":   "Request already exists",
				"message": "You already have a pending or approved organization request",
			})
			return
		}
	}

	request := models.OrganizationRequest{
		UserID:      userID,
		OrgName:     req.OrgName,
		OrgType:     req.OrgType,
		Industry:    req.Industry,
		CompanySize: req.CompanySize,
		Description: req.Description,
		Status:      models.RequestPending,
		Revision:    NextRevision(previous),
	}

	if err := db.Create(&request).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to create organization request",
			"message": err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Organization request submitted",
		"data":    request,
	})
}

// GetMyOrganizationRequest returns the caller's latest request
// @Summary Get my latest organization request
// @Description Get the caller's most recent organization request
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string "No request submitted"
// @Router /auth/organization-request/me [get]
func GetMyOrganizationRequest(ctx *gin.Context) {
	db := database.DB
	userID := ctx.MustGet("userID").(uuid.UUID)

	var request models.OrganizationRequest
	err := db.Where("user_id = ?", userID).
		Order("revision DESC, created_at DESC").
		First(&request).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			ctx.JSON(http.StatusNotFound, gin.H{
				"error":   "Not found",
				"message": "No organization request submitted",
			})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to retrieve organization request",
			"message": err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    request,
	})
}

// GetMyOrganizationRequests returns the caller's full request history
// @Summary List my organization requests
// @Description List every organization request the caller has submitted, newest revision first
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /auth/organization-requests/me [get]
func GetMyOrganizationRequests(ctx *gin.Context) {
	db := database.DB
	userID := ctx.MustGet("userID").(uuid.UUID)

	var requests []models.OrganizationRequest
	if err := db.Where("user_id = ?", userID).
		Order("revision DESC, created_at DESC").
		Find(&requests).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to retrieve organization requests",
			"message": err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    requests,
	})
}

// SwitchOrganization changes the caller's current organization
// @Summary Switch current organization
// @Description Point the caller's session at another organization they hold a live employment in, returning a token with the new tenant claim.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body SwitchOrganizationBody true "Target organization"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]string "No live employment in the target organization"
// @Router /auth/switch-organization [post]
func SwitchOrganization(ctx *gin.Context) {
	var body SwitchOrganizationBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"message": err.Error(),
		})
		return
	}

	db := database.DB
	userID := ctx.MustGet("userID").(uuid.UUID)
	email := ctx.GetString("userEmail")

	var employment models.EmploymentState
	err := db.Where("user_id = ? AND organization_id = ? AND status IN ?",
		userID, body.OrganizationID, models.LiveEmploymentStatuses).
		First(&employment).Error
	if err != nil {
		ctx.JSON(http.StatusForbidden, gin.H{
			"error":   "Access denied",
			"message": "No active employment in this organization",
		})
		return
	}

	if err := db.Model(&models.User{}).Where("id = ?", userID).
		Update("current_organization_id", body.OrganizationID).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to switch organization",
			"message": err.Error(),
		})
		return
	}

	token, err := utils.GenerateJWT(userID, email, body.OrganizationID, employment.RoleID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to issue token",
			"message": err.Error(),
		})
		return
	}

	auditor := clients.NewDBAuditLogger(db)
	auditor.Create(models.AuditLog{
		UserID:         &userID,
		OrganizationID: &body.OrganizationID,
		Action:         "SWITCH_ORGANIZATION",
		EntityType:     "employment",
		EntityID:       &employment.ID,
		IPAddress:      ctx.ClientIP(),
	})

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Organization switched",
		"data": gin.H{
			"token":           token,
			"organization_id": body.OrganizationID,
			"employment_id":   employment.ID,
		},
	})
}
