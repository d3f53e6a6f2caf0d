package database

import (
	"log"

	"hrforge-backend/shared/config"
	"hrforge-backend/shared/database/models"
	utils "hrforge-backend/shared/utils/auth"
)

// SeedDatabase seeds the database with initial data
func SeedDatabase() error {
	log.Println("🌱 Checking database seed data...")

	// Seed system role templates
	rolesCreated, err := seedSystemRoles()
	if err != nil {
		return err
	}

	if rolesCreated > 0 {
		log.Printf("✅ Database seeding completed (%d system roles created)", rolesCreated)
	} else {
		log.Println("✅ Database seed data is up to date")
	}

	return nil
}

// seedSystemRoles creates the system-wide role templates. These carry no
// organization and act as the reference ladder for tenants without a locked
// org type.
func seedSystemRoles() (int, error) {
	intPtr := func(v int) *int { return &v }

	systemRoles := []models.Role{
		{Name: "Owner", Level: 1, IsSystem: true, Description: "Tenant owner, unrestricted within the organization",
			Permissions:  []string{"*"},
			AccessMatrix: models.AccessMatrix{"employees": {Read: true, Write: true, Approve: true}, "roles": {Read: true, Write: true, Approve: true}, "payroll": {Read: true, Write: true, Approve: true}}},
		{Name: "Manager", Level: 4, IsSystem: true, Description: "People manager",
			Permissions:      []string{"employees.read", "employees.write"},
			AccessMatrix:     models.AccessMatrix{"employees": {Read: true, Write: true}, "payroll": {Read: true}},
			MaxDirectReports: intPtr(15)},
		{Name: "Employee", Level: 6, IsSystem: true, Description: "Individual contributor",
			Permissions:  []string{"employees.read"},
			AccessMatrix: models.AccessMatrix{"employees": {Read: true}}},
	}

	created := 0
	for _, role := range systemRoles {
		var existing models.Role
		result := DB.Where("name = ? AND organization_id IS NULL", role.Name).First(&existing)
		if result.Error != nil {
			if err := DB.Create(&role).Error; err != nil {
				return created, err
			}
			created++
		}
	}

	return created, nil
}

// CreateSuperAdminFromConfig creates the platform super admin user if missing
func CreateSuperAdminFromConfig() error {
	cfg := config.GetConfig()

	var existing models.User
	result := DB.Where("email = ?", cfg.SuperAdminEmail).First(&existing)
	if result.Error == nil {
		return nil
	}

	// Hash password before creating user
	hashedPassword, err := utils.HashPassword(cfg.SuperAdminPassword)
	if err != nil {
		return err
	}

	superAdmin := models.User{
		Email:         cfg.SuperAdminEmail,
		Password:      hashedPassword,
		FirstName:     "Super",
		LastName:      "Admin",
		Status:        "ACTIVE",
		EmailVerified: true,
		IsSuperAdmin:  true,
	}

	if err := DB.Create(&superAdmin).Error; err != nil {
		return err
	}

	log.Printf("✅ Super admin created: %s", cfg.SuperAdminEmail)
	return nil
}
