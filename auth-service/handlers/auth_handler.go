package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hrforge-backend/shared/database"
	"hrforge-backend/shared/database/models"
	utils "hrforge-backend/shared/utils/auth"
)

// Login Request/Response structs
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"admin@hrforge.com"`
	Password string `json:"password" binding:"required" example:"admin123"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	User      UserInfo  `json:"user"`
	ExpiresAt time.Time `json:"expires_at"`
}

type UserInfo struct {
	ID                    uuid.UUID  `json:"id"`
	Email                 string     `json:"email"`
	FirstName             string     `json:"first_name"`
	LastName              string     `json:"last_name"`
	CurrentOrganizationID *uuid.UUID `json:"current_organization_id,omitempty"`
	IsSuperAdmin          bool       `json:"is_super_admin"`
	Status                string     `json:"status"`
}

// Register Request struct
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email" example:"user@example.com"`
	Password  string `json:"password" binding:"required,min=8" example:"securepassword123"`
	FirstName string `json:"first_name" binding:"required" example:"John"`
	LastName  string `json:"last_name" binding:"required" example:"Doe"`
}

// POST /api/auth/login
// @Summary User login
// @Description Authenticate a user and return a JWT carrying the current organization claim
// @Tags auth
// @Accept json
// @Produce json
// @Param login body LoginRequest true "Login credentials"
// @Success 200 {object} handlers.LoginResponse "Successful login"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Router /auth/login [post]
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	db := database.DB

	var user models.User
	if err := db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if user.Status != "ACTIVE" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account is inactive"})
		return
	}

	if !utils.VerifyPassword(user.Password, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	// The token carries the user's current organization so tenant
	// resolution can prefer the claim over the header.
	var orgID, roleID uuid.UUID
	if user.CurrentOrganizationID != nil {
		orgID = *user.CurrentOrganizationID

		var employment models.EmploymentState
		if err := db.Where("user_id = ? AND organization_id = ? AND status IN ?",
			user.ID, orgID, models.LiveEmploymentStatuses).
			First(&employment).Error; err == nil {
			roleID = employment.RoleID
		}
	}

	token, err := utils.GenerateJWT(user.ID, user.Email, orgID, roleID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate token"})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(utils.GetJWTExpireDuration()),
		User: UserInfo{
			ID:                    user.ID,
			Email:                 user.Email,
			FirstName:             user.FirstName,
			LastName:              user.LastName,
			CurrentOrganizationID: user.CurrentOrganizationID,
			IsSuperAdmin:          user.IsSuperAdmin,
			Status:                user.Status,
		},
	})
}

// POST /api/auth/register
// @Summary Register new user
// @Description Register a new user account. The user joins organizations by being hired or by submitting an organization request.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body RegisterRequest true "User registration data"
// @Success 201 {object} map[string]interface{} "User registered successfully"
// @Failure 400 {object} map[string]string "Invalid request format or validation error"
// @Failure 409 {object} map[string]string "Email already exists"
// @Router /auth/register [post]
func Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	db := database.DB

	var existingUser models.User
	if err := db.Where("email = ?", req.Email).First(&existingUser).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already exists"})
		return
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not hash password"})
		return
	}

	user := models.User{
		Email:     req.Email,
		Password:  hashedPassword,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Status:    "ACTIVE",
	}

	if err := db.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"user": gin.H{
			"id":         user.ID,
			"email":      user.Email,
			"first_name": user.FirstName,
			"last_name":  user.LastName,
		},
	})
}

// GET /api/auth/me
// @Summary Current user profile
// @Description Get the caller's profile and every organization they hold a live employment in
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /auth/me [get]
func Me(c *gin.Context) {
	db := database.DB
	userID := c.MustGet("userID").(uuid.UUID)

	var user models.User
	if err := db.Preload("CurrentOrganization").First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var memberships []models.EmploymentState
	db.Preload("Organization").Preload("Role").
		Where("user_id = ? AND status IN ?", userID, models.LiveEmploymentStatuses).
		Find(&memberships)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"user":        user,
			"memberships": memberships,
		},
	})
}
