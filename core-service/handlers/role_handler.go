package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"hrforge-backend/core-service/services"
	"hrforge-backend/shared/database"
	"hrforge-backend/shared/database/models"
	"hrforge-backend/shared/utils/apperrors"
	"hrforge-backend/shared/utils/hierarchy"
	"hrforge-backend/shared/utils/query"
)

// RoleResponse represents role data for API responses
type RoleResponse struct {
	ID                       uuid.UUID           `json:"id"`
	Name                     string              `json:"name"`
	Description              string              `json:"description"`
	Level                    int                 `json:"level"`
	ResolvedLevel            int                 `json:"resolved_level"`
	ParentRoleID             *uuid.UUID          `json:"parent_role_id"`
	Permissions              []string            `json:"permissions"`
	AccessMatrix             models.AccessMatrix `json:"access_matrix"`
	MaxUsersPerRole          *int                `json:"max_users_per_role"`
	MaxDirectReports         *int                `json:"max_direct_reports"`
	MaxMonthlyApprovals      *int                `json:"max_monthly_approvals"`
	MaxPayrollApprovalAmount *float64            `json:"max_payroll_approval_amount"`
	CreatedAt                string              `json:"created_at"`
	UpdatedAt                string              `json:"updated_at"`
}

// CreateRoleRequest represents request body for creating a role
type CreateRoleRequest struct {
	Name                     string              `json:"name" binding:"required"`
	Description              string              `json:"description"`
	Level                    int                 `json:"level" binding:"required"`
	ParentRoleID             *uuid.UUID          `json:"parent_role_id"`
	Permissions              []string            `json:"permissions"`
	AccessMatrix             models.AccessMatrix `json:"access_matrix"`
	MaxUsersPerRole          *int                `json:"max_users_per_role"`
	MaxDirectReports         *int                `json:"max_direct_reports"`
	MaxMonthlyApprovals      *int                `json:"max_monthly_approvals"`
	MaxPayrollApprovalAmount *float64            `json:"max_payroll_approval_amount"`
}

// UpdateRoleRequest represents request body for updating a role
type UpdateRoleRequest struct {
	Name                     *string             `json:"name"`
	Description              *string             `json:"description"`
	Level                    *int                `json:"level"`
	ParentRoleID             *uuid.UUID          `json:"parent_role_id"`
	Permissions              []string            `json:"permissions"`
	AccessMatrix             models.AccessMatrix `json:"access_matrix"`
	MaxUsersPerRole          *int                `json:"max_users_per_role"`
	MaxDirectReports         *int                `json:"max_direct_reports"`
	MaxMonthlyApprovals      *int                `json:"max_monthly_approvals"`
	MaxPayrollApprovalAmount *float64            `json:"max_payroll_approval_amount"`
}

func toRoleResponse(role models.Role) RoleResponse {
	return RoleResponse{
		ID:                       role.ID,
		Name:                     role.Name,
		Description:              role.Description,
		Level:                    role.Level,
		ResolvedLevel:            hierarchy.ResolveLevel(&role),
		ParentRoleID:             role.ParentRoleID,
		Permissions:              role.Permissions,
		AccessMatrix:             role.AccessMatrix,
		MaxUsersPerRole:          role.MaxUsersPerRole,
		MaxDirectReports:         role.MaxDirectReports,
		MaxMonthlyApprovals:      role.MaxMonthlyApprovals,
		MaxPayrollApprovalAmount: role.MaxPayrollApprovalAmount,
		CreatedAt:                role.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:                role.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// GetRoles retrieves the tenant's roles
// @Summary Get all roles
// @Description Get the organization's roles with pagination, filtering and search
// @Tags roles
// @Accept json
// @Produce json
// @Param page query int false "Page number (default: 1)"
// @Param limit query int false "Items per page (default: 10)"
// @Param search query string false "Search term across name and description"
// @Param sort[field] query string false "Sort field (name, level, created_at)"
// @Param sort[order] query string false "Sort order (asc, desc)"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /roles [get]
func GetRoles(ctx *gin.Context) {
	db := database.DB
	org, _ := tenantContext(ctx)

	params := query.ParseQueryParams(ctx)

	allowedSortFields := map[string]string{
		"name":       "name",
		"level":      "level",
		"created_at": "created_at",
		"updated_at": "updated_at",
	}

	baseQuery := db.Model(&models.Role{}).Where("organization_id = ?", org.ID)
	searchedQuery := query.ApplySearch(baseQuery, params.Search, []string{"name", "description"})

	var total int64
	searchedQuery.Count(&total)

	finalQuery := query.ApplySort(searchedQuery, params.Sort, allowedSortFields)
	finalQuery = query.ApplyPagination(finalQuery, params.Page, params.Limit)

	var roles []models.Role
	if err := finalQuery.Find(&roles).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to retrieve roles",
			"message": err.Error(),
		})
		return
	}

	roleResponses := make([]RoleResponse, 0, len(roles))
	for _, role := range roles {
		roleResponses = append(roleResponses, toRoleResponse(role))
	}

	pagination := query.BuildPaginationResponse(params.Page, params.Limit, total)

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"roles":      roleResponses,
			"pagination": pagination,
		},
	})
}

// GetRole retrieves a single role by ID
// @Summary Get role by ID
// @Description Get detailed information about a specific role
// @Tags roles
// @Accept json
// @Produce json
// @Param id path string true "Role ID" format(uuid)
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Invalid role ID format"
// @Failure 404 {object} map[string]string "Role not found"
// @Router /roles/{id} [get]
func GetRole(ctx *gin.Context) {
	roleUUID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid role ID format",
			"message": err.Error(),
		})
		return
	}

	db := database.DB
	org, _ := tenantContext(ctx)

	var role models.Role
	if err := db.Where("id = ? AND organization_id = ?", roleUUID, org.ID).First(&role).Error; err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{
			"error":   "Role not found",
			"message": "Role with the given ID does not exist",
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    toRoleResponse(role),
	})
}

// validateRoleWrite runs the shared create/update validation: reserved
// names, the owner-only level floor, the org-type whitelist and the
// parent-seniority invariant that keeps the ladder acyclic.
func validateRoleWrite(db *gorm.DB, org *models.Organization, name string, level int, parentRoleID *uuid.UUID, selfID uuid.UUID) (string, string, int) {
	if hierarchy.IsReservedRoleName(name) {
		return "Reserved role name", "Role name '" + name + "' cannot be created manually", http.StatusBadRequest
	}

	if level < 2 {
		return "Invalid role level", "Level 1 is reserved for the Owner role", http.StatusBadRequest
	}

	if org.OrgType != "" && !services.RoleNameAllowed(org.OrgType, name) {
		return "Role name not allowed", "Role name '" + name + "' is not part of the " + org.OrgType + " template", http.StatusBadRequest
	}

	if parentRoleID != nil {
		var parent models.Role
		if err := db.Where("id = ? AND organization_id = ?", *parentRoleID, org.ID).First(&parent).Error; err != nil {
			return "Parent role not found", "The specified parent role does not exist", http.StatusBadRequest
		}
		if selfID != uuid.Nil && parent.ID == selfID {
			return "Invalid parent role", "A role cannot be its own parent", http.StatusBadRequest
		}
		if hierarchy.ResolveLevel(&parent) >= level {
			return "Invalid parent role", "Parent role must have a strictly lower level (higher authority)", http.StatusBadRequest
		}
	}

	return "", "", 0
}

// CreateRole creates a new role
// @Summary Create a role
// @Description Create a role in the tenant's ladder. Owner-only. Reserved names, level 1 and names outside the locked org-type template are rejected.
// @Tags roles
// @Accept json
// @Produce json
// @Param role body CreateRoleRequest true "Role information"
// @Security BearerAuth
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Validation failure"
// @Failure 403 {object} map[string]string "Owner-only"
// @Failure 409 {object} map[string]string "Role name already exists"
// @Router /roles [post]
func CreateRole(ctx *gin.Context) {
	var req CreateRoleRequest
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
			"message": "Only the organization owner can manage roles",
		})
		return
	}

	if title, message, status := validateRoleWrite(db, org, req.Name, req.Level, req.ParentRoleID, uuid.Nil); status != 0 {
		ctx.JSON(status, gin.H{"error": title, "message": message})
		return
	}

	var existingRole models.Role
	if err := db.Where("organization_id = ? AND LOWER(name) = LOWER(?)", org.ID, req.Name).
		First(&existingRole).Error; err == nil {
		ctx.JSON(http.StatusConflict, gin.H{
			"error":   "Role name already exists",
			"message": "A role with this name already exists in this organization",
		})
		return
	}

	role := models.Role{
		Name:                     req.Name,
		Description:              req.Description,
		OrganizationID:           &org.ID,
		Level:                    req.Level,
		ParentRoleID:             req.ParentRoleID,
		Permissions:              req.Permissions,
		AccessMatrix:             req.AccessMatrix,
		MaxUsersPerRole:          req.MaxUsersPerRole,
		MaxDirectReports:         req.MaxDirectReports,
		MaxMonthlyApprovals:      req.MaxMonthlyApprovals,
		MaxPayrollApprovalAmount: req.MaxPayrollApprovalAmount,
	}

	if err := db.Create(&role).Error; err != nil {
		// The pre-check above races with concurrent creates; the unique index
		// is the authority.
		respondError(ctx, apperrors.Write(
			"A role with this name already exists in this organization",
			"failed to create role", err))
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Role created successfully",
		"data":    toRoleResponse(role),
	})
}

// UpdateRole updates an existing role
// @Summary Update a role
// @Description Patch a role. Owner-only; renamed roles stay inside the locked org-type template and the parent-seniority invariant is re-checked.
// @Tags roles
// @Accept json
// @Produce json
// @Param id path string true "Role ID" format(uuid)
// @Param role body UpdateRoleRequest true "Fields to update"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Validation failure"
// @Failure 403 {object} map[string]string "Owner-only"
// @Failure 404 {object} map[string]string "Role not found"
// @Failure 409 {object} map[string]string "Role name already exists"
// @Router /roles/{id} [patch]
func UpdateRole(ctx *gin.Context) {
	roleUUID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid role ID format",
			"message": err.Error(),
		})
		return
	}

	var req UpdateRoleRequest
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
			"message": "Only the organization owner can manage roles",
		})
		return
	}

	var role models.Role
	if err := db.Where("id = ? AND organization_id = ?", roleUUID, org.ID).First(&role).Error; err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{
			"error":   "Role not found",
			"message": "Role with the given ID does not exist",
		})
		return
	}

	name := role.Name
	if req.Name != nil {
		name = *req.Name
	}
	level := role.Level
	if req.Level != nil {
		level = *req.Level
	}
	parentRoleID := role.ParentRoleID
	if req.ParentRoleID != nil {
		parentRoleID = req.ParentRoleID
	}

	if title, message, status := validateRoleWrite(db, org, name, level, parentRoleID, role.ID); status != 0 {
		ctx.JSON(status, gin.H{"error": title, "message": message})
		return
	}

	if req.Name != nil && *req.Name != role.Name {
		var existingRole models.Role
		if err := db.Where("organization_id = ? AND LOWER(name) = LOWER(?) AND id != ?", org.ID, *req.Name, role.ID).
			First(&existingRole).Error; err == nil {
			ctx.JSON(http.StatusConflict, gin.H{
				"error":   "Role name already exists",
				"message": "A role with this name already exists in this organization",
			})
			return
		}
		role.Name = *req.Name
	}

	role.Level = level
	role.ParentRoleID = parentRoleID
	if req.Description != nil {
		role.Description = *req.Description
	}
	if req.Permissions != nil {
		role.Permissions = req.Permissions
	}
	if req.AccessMatrix != nil {
		role.AccessMatrix = req.AccessMatrix
	}
	if req.MaxUsersPerRole != nil {
		role.MaxUsersPerRole = req.MaxUsersPerRole
	}
	if req.MaxDirectReports != nil {
		role.MaxDirectReports = req.MaxDirectReports
	}
	if req.MaxMonthlyApprovals != nil {
		role.MaxMonthlyApprovals = req.MaxMonthlyApprovals
	}
	if req.MaxPayrollApprovalAmount != nil {
		role.MaxPayrollApprovalAmount = req.MaxPayrollApprovalAmount
	}

	if err := db.Save(&role).Error; err != nil {
		respondError(ctx, apperrors.Write(
			"A role with this name already exists in this organization",
			"failed to update role", err))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Role updated successfully",
		"data":    toRoleResponse(role),
	})
}

// DeleteRole deletes a role
// @Summary Delete a role
// @Description Delete a role that has no dependent child roles and no assigned employees. Owner-only.
// @Tags roles
// @Accept json
// @Produce json
// @Param id path string true "Role ID" format(uuid)
// @Security BearerAuth
// @Success 200 {object} handlers.SuccessResponse
// @Failure 403 {object} map[string]string "Owner-only"
// @Failure 404 {object} map[string]string "Role not found"
// @Failure 409 {object} map[string]string "Role is in use"
// @Router /roles/{id} [delete]
func DeleteRole(ctx *gin.Context) {
	roleUUID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid role ID format",
			"message": err.Error(),
		})
		return
	}

	db := database.DB
	org, user := tenantContext(ctx)

	if !isOwner(org, user) {
		ctx.JSON(http.StatusForbidden, gin.H{
			"error":   "Access denied",
			"message": "Only the organization owner can manage roles",
		})
		return
	}

	var role models.Role
	if err := db.Where("id = ? AND organization_id = ?", roleUUID, org.ID).First(&role).Error; err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{
			"error":   "Role not found",
			"message": "Role with the given ID does not exist",
		})
		return
	}

	var childCount int64
	db.Model(&models.Role{}).Where("parent_role_id = ?", role.ID).Count(&childCount)
	if childCount > 0 {
		ctx.JSON(http.StatusConflict, gin.H{
			"error":   "Role is in use",
			"message": "Cannot delete a role with dependent child roles",
		})
		return
	}

	var employmentCount int64
	db.Model(&models.EmploymentState{}).
		Where("role_id = ? AND status IN ?", role.ID, models.LiveEmploymentStatuses).
		Count(&employmentCount)
	if employmentCount > 0 {
		ctx.JSON(http.StatusConflict, gin.H{
			"error":   "Role is in use",
			"message": "Cannot delete a role that is assigned to employees",
		})
		return
	}

	if err := db.Delete(&role).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to delete role",
			"message": err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Role deleted successfully",
	})
}
