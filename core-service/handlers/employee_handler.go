package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hrforge-backend/core-service/services"
	"hrforge-backend/shared/clients"
	"hrforge-backend/shared/database"
	"hrforge-backend/shared/database/models"
	"hrforge-backend/shared/utils/query"
)

// EmployeeResponse represents employment data for API responses
type EmployeeResponse struct {
	ID                    uuid.UUID  `json:"id"`
	UserID                uuid.UUID  `json:"user_id"`
	Email                 string     `json:"email"`
	FirstName             string     `json:"first_name"`
	LastName              string     `json:"last_name"`
	RoleID                uuid.UUID  `json:"role_id"`
	RoleName              string     `json:"role_name"`
	RoleLevel             int        `json:"role_level"`
	ReportsToEmploymentID *uuid.UUID `json:"reports_to_employment_id"`
	Status                string     `json:"status"`
	Designation           string     `json:"designation"`
	Department            string     `json:"department"`
	JoinedAt              string     `json:"joined_at"`
}

// HireEmployeeRequest represents request body for hiring an employee
type HireEmployeeRequest struct {
	UserID                uuid.UUID  `json:"user_id" binding:"required"`
	RoleName              string     `json:"role_name" binding:"required"`
	Designation           string     `json:"designation"`
	Department            string     `json:"department"`
	ReportsToEmploymentID *uuid.UUID `json:"reports_to_employment_id"`
}

// UpdateEmployeeRequest represents request body for updating an employment
type UpdateEmployeeRequest struct {
	RoleName              *string    `json:"role_name"`
	Designation           *string    `json:"designation"`
	Department            *string    `json:"department"`
	Status                *string    `json:"status"`
	ReportsToEmploymentID *uuid.UUID `json:"reports_to_employment_id"`
	ClearManager          bool       `json:"clear_manager"`
}

var notifier clients.NotificationSender = clients.NewNotificationClient()

// SetNotificationSender swaps the notification capability (tests use fakes)
func SetNotificationSender(sender clients.NotificationSender) {
	notifier = sender
}

func toEmployeeResponse(emp models.EmploymentState) EmployeeResponse {
	return EmployeeResponse{
		ID:                    emp.ID,
		UserID:                emp.UserID,
		Email:                 emp.User.Email,
		FirstName:             emp.User.FirstName,
		LastName:              emp.User.LastName,
		RoleID:                emp.RoleID,
		RoleName:              emp.Role.Name,
		RoleLevel:             emp.Role.Level,
		ReportsToEmploymentID: emp.ReportsToEmploymentID,
		Status:                emp.Status,
		Designation:           emp.Designation,
		Department:            emp.Department,
		JoinedAt:              emp.JoinedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// GetEmployees retrieves the employments visible to the caller
// @Summary List employees
// @Description List the organization's employees scoped to the caller's reporting line. Owners see everyone; everyone else sees exactly their own downline.
// @Tags employees
// @Accept json
// @Produce json
// @Param page query int false "Page number (default: 1)"
// @Param limit query int false "Items per page (default: 10)"
// @Param search query string false "Search term across name, designation and department"
// @Param filters[status] query string false "Filter by employment status (ACTIVE, INVITED, SUSPENDED)"
// @Param filters[department] query string false "Filter by department"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]string "No employment in this organization"
// @Failure 500 {object} map[string]string
// @Router /organization/employees [get]
func GetEmployees(ctx *gin.Context) {
	db := database.DB
	org, user := tenantContext(ctx)

	scope, employments, err := resolveCallerScope(db, org, user)
	if err != nil {
		respondError(ctx, err)
		return
	}

	params := query.ParseQueryParams(ctx)

	// The tree is scoped in memory: the graph is rebuilt per request over
	// the full (bounded) tenant roster, then filtered.
	visible := make([]models.EmploymentState, 0, len(employments))
	for _, emp := range employments {
		if !scope.Unrestricted && !scope.Visible[emp.ID] {
			continue
		}
		if status := params.Filters["status"]; status != "" && emp.Status != status {
			continue
		}
		if department := params.Filters["department"]; department != "" && !strings.EqualFold(emp.Department, department) {
			continue
		}
		if params.Search != "" && !employeeMatchesSearch(emp, params.Search) {
			continue
		}
		visible = append(visible, emp)
	}

	total := int64(len(visible))
	start, end := query.PaginateSlice(len(visible), params.Page, params.Limit)

	employeeResponses := make([]EmployeeResponse, 0, end-start)
	for _, emp := range visible[start:end] {
		employeeResponses = append(employeeResponses, toEmployeeResponse(emp))
	}

	pagination := query.BuildPaginationResponse(params.Page, params.Limit, total)

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"employees":  employeeResponses,
			"pagination": pagination,
		},
	})
}

func employeeMatchesSearch(emp models.EmploymentState, search string) bool {
	needle := strings.ToLower(search)
	haystacks := []string{
		emp.User.Email,
		emp.User.FirstName,
		emp.User.LastName,
		emp.Designation,
		emp.Department,
	}
	for _, hay := range haystacks {
		if strings.Contains(strings.ToLower(hay), needle) {
			return true
		}
	}
	return false
}

// GetEligibleUsers searches users not yet employed in this tenant
// @Summary Search eligible users
// @Description Search platform users without an employment in this organization. Owner-only.
// @Tags employees
// @Accept json
// @Produce json
// @Param search query string false "Search term across email and name"
// @Param page query int false "Page number (default: 1)"
// @Param limit query int false "Items per page (default: 10)"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]string "Owner-only"
// @Failure 500 {object} map[string]string
// @Router /organization/employees/eligible-users [get]
func GetEligibleUsers(ctx *gin.Context) {
	db := database.DB
	org, user := tenantContext(ctx)

	if !isOwner(org, user) {
		ctx.JSON(http.StatusForbidden, gin.H{
			"error":   "Access denied",
			"message": "Only the organization owner can search eligible users",
		})
		return
	}

	params := query.ParseQueryParams(ctx)

	employed := db.Model(&models.EmploymentState{}).
		Select("user_id").
		Where("organization_id = ? AND status IN ?", org.ID, models.LiveEmploymentStatuses)

	baseQuery := db.Model(&models.User{}).
		Where("id NOT IN (?)", employed).
		Where("status = ?", "ACTIVE").
		Where("is_super_admin = ?", false)

	searchedQuery := query.ApplySearch(baseQuery, params.Search, []string{"email", "first_name", "last_name"})

	var total int64
	searchedQuery.Count(&total)

	finalQuery := query.ApplyPagination(searchedQuery.Order("email ASC"), params.Page, params.Limit)

	var users []models.User
	if err := finalQuery.Find(&users).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to search users",
			"message": err.Error(),
		})
		return
	}

	pagination := query.BuildPaginationResponse(params.Page, params.Limit, total)

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"users":      users,
			"pagination": pagination,
		},
	})
}

// HireEmployee creates a new employment
// @Summary Hire an employee
// @Description Hire a user into a role, optionally under a manager. Enforces role capacity, manager capacity, level ordering and delegation scope.
// @Tags employees
// @Accept json
// @Produce json
// @Param employee body HireEmployeeRequest true "Hire information"
// @Security BearerAuth
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Validation failure (capacity, level ordering, reserved role)"
// @Failure 403 {object} map[string]string "Manager outside caller's reporting line"
// @Failure 404 {object} map[string]string "User or role not found"
// @Failure 409 {object} map[string]string "User already employed"
// @Router /organization/employees [post]
func HireEmployee(ctx *gin.Context) {
	var req HireEmployeeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"message": err.Error(),
		})
		return
	}

	db := database.DB
	org, user := tenantContext(ctx)

	scope, _, err := resolveCallerScope(db, org, user)
	if err != nil {
		respondError(ctx, err)
		return
	}

	employment, err := services.Hire(db, org, scope, services.HireInput{
		UserID:                req.UserID,
		RoleName:              req.RoleName,
		Designation:           req.Designation,
		Department:            req.Department,
		ReportsToEmploymentID: req.ReportsToEmploymentID,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	invalidateMembership(req.UserID, org.ID)

	notifier.Send(req.UserID.String(), clients.NotificationPayload{
		Type:    "EMPLOYMENT_CREATED",
		Title:   "Welcome to " + org.Name,
		Message: "You have been added to " + org.Name,
		Data:    map[string]interface{}{"organization_id": org.ID.String(), "employment_id": employment.ID.String()},
	})

	db.Preload("User").Preload("Role").First(employment, employment.ID)

	ctx.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Employee hired successfully",
		"data":    toEmployeeResponse(*employment),
	})
}

// UpdateEmployee updates role, manager, status, designation or department
// @Summary Update an employment
// @Description Patch an employment inside the caller's reporting line. Manager and role changes re-run capacity and ordering checks against effective counts.
// @Tags employees
// @Accept json
// @Produce json
// @Param id path string true "Employment ID" format(uuid)
// @Param employee body UpdateEmployeeRequest true "Fields to update"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Validation failure (circular reporting, capacity, level ordering)"
// @Failure 403 {object} map[string]string "Target outside caller's reporting line"
// @Failure 404 {object} map[string]string "Employment not found"
// @Router /organization/employees/{id} [patch]
func UpdateEmployee(ctx *gin.Context) {
	employmentID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid employment ID format",
			"message": err.Error(),
		})
		return
	}

	var req UpdateEmployeeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"message": err.Error(),
		})
		return
	}

	db := database.DB
	org, user := tenantContext(ctx)

	scope, _, err := resolveCallerScope(db, org, user)
	if err != nil {
		respondError(ctx, err)
		return
	}

	employment, err := services.UpdateEmployment(db, org, scope, employmentID, services.UpdateInput{
		RoleName:              req.RoleName,
		Designation:           req.Designation,
		Department:            req.Department,
		Status:                req.Status,
		ReportsToEmploymentID: req.ReportsToEmploymentID,
		ClearManager:          req.ClearManager,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	invalidateMembership(employment.UserID, org.ID)

	db.Preload("User").Preload("Role").First(employment, employment.ID)

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Employee updated successfully",
		"data":    toEmployeeResponse(*employment),
	})
}

// TerminateEmployee soft-terminates an employment
// @Summary Terminate an employment
// @Description Flip the employment to TERMINATED, upsert the work-history record and clear the user's current organization when no other active employment remains.
// @Tags employees
// @Accept json
// @Produce json
// @Param id path string true "Employment ID" format(uuid)
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]string "Target outside caller's reporting line"
// @Failure 404 {object} map[string]string "Employment not found"
// @Failure 409 {object} map[string]string "Already terminated"
// @Router /organization/employees/{id}/terminate [patch]
func TerminateEmployee(ctx *gin.Context) {
	employmentID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid employment ID format",
			"message": err.Error(),
		})
		return
	}

	db := database.DB
	org, user := tenantContext(ctx)

	scope, _, err := resolveCallerScope(db, org, user)
	if err != nil {
		respondError(ctx, err)
		return
	}

	employment, err := services.Terminate(db, org, scope, employmentID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	invalidateMembership(employment.UserID, org.ID)

	notifier.Send(employment.UserID.String(), clients.NotificationPayload{
		Type:    "EMPLOYMENT_TERMINATED",
		Title:   "Employment ended",
		Message: "Your employment at " + org.Name + " has ended",
		Data:    map[string]interface{}{"organization_id": org.ID.String()},
	})

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Employee terminated successfully",
	})
}
