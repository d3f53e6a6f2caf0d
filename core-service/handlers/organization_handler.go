package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hrforge-backend/core-service/services"
	"hrforge-backend/shared/clients"
	"hrforge-backend/shared/database"
	"hrforge-backend/shared/database/models"
	"hrforge-backend/shared/utils/cache"
	"hrforge-backend/shared/utils/query"
)

// UpdateOrganizationRequest represents request body for tenant settings
type UpdateOrganizationRequest struct {
	Name                  *string           `json:"name"`
	CustomLevelLabels     map[string]string `json:"custom_level_labels"`
	MatrixReporting       *bool             `json:"matrix_reporting"`
	VisibilityPolicy      *string           `json:"visibility_policy"`
	BlockUpwardVisibility *bool             `json:"block_upward_visibility"`
}

// RejectRequestBody represents the rejection reason
type RejectRequestBody struct {
	Reason string `json:"reason" binding:"required"`
}

// GetOrganization returns the active tenant
// @Summary Get current organization
// @Description Get the organization resolved as the request's tenant context
// @Tags organizations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /organization [get]
func GetOrganization(ctx *gin.Context) {
	org, _ := tenantContext(ctx)

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    org,
	})
}

// UpdateOrganization updates tenant settings
// @Summary Update organization settings
// @Description Update name and hierarchy configuration. Owner-only. The organization type stays locked after approval.
// @Tags organizations
// @Accept json
// @Produce json
// @Param organization body UpdateOrganizationRequest true "Fields to update"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]string "Owner-only"
// @Router /organization [patch]
func UpdateOrganization(ctx *gin.Context) {
	var req UpdateOrganizationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"message": err.Error(),
		})
		return
	}

	db := database.DB
	org, user := tenantContext(ctx)

	if !isOwner(org, user) {
		ctx.JSON(http.StatusForbidden, gin.H{
			"error":   "Access denied",
			"message": "Only the organization owner can update settings",
		})
		return
	}

	if req.Name != nil {
		org.Name = *req.Name
	}
	if req.CustomLevelLabels != nil {
		org.CustomLevelLabels = req.CustomLevelLabels
	}
	if req.MatrixReporting != nil {
		org.MatrixReporting = *req.MatrixReporting
	}
	if req.VisibilityPolicy != nil {
		org.VisibilityPolicy = *req.VisibilityPolicy
	}
	if req.BlockUpwardVisibility != nil {
		org.BlockUpwardVisibility = *req.BlockUpwardVisibility
	}

	if err := db.Save(org).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to update organization",
			"message": err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Organization updated successfully",
		"data":    org,
	})
}

// requireSuperAdmin guards the platform administration endpoints.
func requireSuperAdmin(ctx *gin.Context) (*models.User, bool) {
	userID := ctx.MustGet("userID").(uuid.UUID)

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil || !user.IsSuperAdmin {
		ctx.JSON(http.StatusForbidden, gin.H{
			"error":   "Access denied",
			"message": "Platform administrator access required",
		})
		return nil, false
	}
	return &user, true
}

// GetOrganizationRequests lists pending and decided requests
// @Summary List organization requests
// @Description List organization requests across the platform. Super admin only.
// @Tags organization-requests
// @Accept json
// @Produce json
// @Param page query int false "Page number (default: 1)"
// @Param limit query int false "Items per page (default: 10)"
// @Param filters[status] query string false "Filter by status (PENDING, APPROVED, REJECTED)"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]string "Super admin only"
// @Router /organization-requests [get]
func GetOrganizationRequests(ctx *gin.Context) {
	if _, ok := requireSuperAdmin(ctx); !ok {
		return
	}

	db := database.DB
	params := query.ParseQueryParams(ctx)

	allowedFilters := map[string]string{
		"status":   "status",
		"org_type": "org_type",
	}
	allowedSortFields := map[string]string{
		"created_at": "created_at",
		"org_name":   "org_name",
		"status":     "status",
	}

	baseQuery := db.Model(&models.OrganizationRequest{})
	filteredQuery := query.ApplyFilters(baseQuery, params.Filters, allowedFilters)
	searchedQuery := query.ApplySearch(filteredQuery, params.Search, []string{"org_name", "industry"})

	var total int64
	searchedQuery.Count(&total)

	finalQuery := query.ApplySort(searchedQuery, params.Sort, allowedSortFields)
	finalQuery = query.ApplyPagination(finalQuery, params.Page, params.Limit)

	var requests []models.OrganizationRequest
	if err := finalQuery.Preload("User").Find(&requests).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to retrieve organization requests",
			"message": err.Error(),
		})
		return
	}

	pagination := query.BuildPaginationResponse(params.Page, params.Limit, total)

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"requests":   requests,
			"pagination": pagination,
		},
	})
}

// ApproveOrganizationRequest provisions a tenant from a pending request
// @Summary Approve an organization request
// @Description Provision the full tenant (organization, head office, departments, role ladder, owner employment) in one transaction. Super admin only.
// @Tags organization-requests
// @Accept json
// @Produce json
// @Param id path string true "Request ID" format(uuid)
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]string "Super admin only"
// @Failure 404 {object} map[string]string "Request not found"
// @Failure 409 {object} map[string]string "Request is not pending"
// @Router /organization-requests/{id}/approve [post]
func ApproveOrganizationRequest(ctx *gin.Context) {
	reviewer, ok := requireSuperAdmin(ctx)
	if !ok {
		return
	}

	requestID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request ID format",
			"message": err.Error(),
		})
		return
	}

	db := database.DB

	org, err := services.ApproveOrganizationRequest(db, requestID, reviewer.ID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	if cm := cache.GetCacheManager(); cm != nil {
		cm.InvalidateOrganization(org.ID.String())
	}

	auditor := clients.NewDBAuditLogger(db)
	auditor.Create(models.AuditLog{
		UserID:         &reviewer.ID,
		OrganizationID: &org.ID,
		Action:         "ORGANIZATION_REQUEST_APPROVED",
		EntityType:     "organization_request",
		EntityID:       &requestID,
		IPAddress:      ctx.ClientIP(),
	})

	notifier.Send(org.OwnerID.String(), clients.NotificationPayload{
		Type:    "ORGANIZATION_APPROVED",
		Title:   "Your organization is live",
		Message: org.Name + " has been approved and provisioned",
		Data:    map[string]interface{}{"organization_id": org.ID.String(), "slug": org.Slug},
	})

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Organization request approved",
		"data":    org,
	})
}

// RejectOrganizationRequest rejects a pending request
// @Summary Reject an organization request
// @Description Flip a pending request to REJECTED with a reason. The requester may resubmit. Super admin only.
// @Tags organization-requests
// @Accept json
// @Produce json
// @Param id path string true "Request ID" format(uuid)
// @Param body body RejectRequestBody true "Rejection reason"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]string "Super admin only"
// @Failure 404 {object} map[string]string "Request not found"
// @Failure 409 {object} map[string]string "Request is not pending"
// @Router /organization-requests/{id}/reject [post]
func RejectOrganizationRequest(ctx *gin.Context) {
	reviewer, ok := requireSuperAdmin(ctx)
	if !ok {
		return
	}

	requestID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request ID format",
			"message": err.Error(),
		})
		return
	}

	var body RejectRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"message": err.Error(),
		})
		return
	}

	db := database.DB

	request, err := services.RejectOrganizationRequest(db, requestID, reviewer.ID, body.Reason)
	if err != nil {
		respondError(ctx, err)
		return
	}

	auditor := clients.NewDBAuditLogger(db)
	auditor.Create(models.AuditLog{
		UserID:     &reviewer.ID,
		Action:     "ORGANIZATION_REQUEST_REJECTED",
		EntityType: "organization_request",
		EntityID:   &requestID,
		Detail:     map[string]interface{}{"reason": body.Reason},
		IPAddress:  ctx.ClientIP(),
	})

	notifier.Send(request.UserID.String(), clients.NotificationPayload{
		Type:    "ORGANIZATION_REJECTED",
		Title:   "Organization request rejected",
		Message: body.Reason,
		Data:    map[string]interface{}{"request_id": request.ID.String()},
	})

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Organization request rejected",
		"data":    request,
	})
}
