package services

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hrforge-backend/shared/database/models"
	"hrforge-backend/shared/utils/apperrors"
	"hrforge-backend/shared/utils/hierarchy"
)

// CheckLevelOrdering enforces the reporting-order invariant: a manager's
// resolved level must be strictly lower (more senior) than the
// subordinate's.
func CheckLevelOrdering(managerRole, subordinateRole *models.Role) error {
	managerLevel := hierarchy.ResolveLevel(managerRole)
	subordinateLevel := hierarchy.ResolveLevel(subordinateRole)
	if managerLevel >= subordinateLevel {
		return apperrors.Validation(
			"manager role %q (level %d) must be more senior than subordinate role %q (level %d)",
			managerRole.Name, managerLevel, subordinateRole.Name, subordinateLevel)
	}
	return nil
}

// CheckRoleHeadroom rejects when the effective holder count has no room left
// under the role's MaxUsersPerRole limit. effectiveHolders excludes the
// employee being (re)assigned.
func CheckRoleHeadroom(role *models.Role, effectiveHolders int64) error {
	if role.MaxUsersPerRole == nil {
		return nil
	}
	if effectiveHolders >= int64(*role.MaxUsersPerRole) {
		return apperrors.Validation("role %q has reached its limit of %d users", role.Name, *role.MaxUsersPerRole)
	}
	return nil
}

// CheckDirectReportHeadroom rejects when the manager's effective direct
// report count has no room left under the manager role's MaxDirectReports.
func CheckDirectReportHeadroom(managerRole *models.Role, effectiveReports int64) error {
	if managerRole.MaxDirectReports == nil {
		return nil
	}
	if effectiveReports >= int64(*managerRole.MaxDirectReports) {
		return apperrors.Validation("manager already has the maximum of %d direct reports", *managerRole.MaxDirectReports)
	}
	return nil
}

// CheckRoleCapacityAtCommit validates the post-write recount: strictly more
// holders than the limit means a concurrent writer landed between the
// pre-check and this row's own write, and the transaction must roll back.
func CheckRoleCapacityAtCommit(role *models.Role, holders int64) error {
	if role.MaxUsersPerRole != nil && holders > int64(*role.MaxUsersPerRole) {
		return apperrors.Validation("role %q has reached its limit of %d users", role.Name, *role.MaxUsersPerRole)
	}
	return nil
}

// CheckDirectReportsAtCommit is the post-write counterpart of
// CheckDirectReportHeadroom.
func CheckDirectReportsAtCommit(managerRole *models.Role, reports int64) error {
	if managerRole.MaxDirectReports != nil && reports > int64(*managerRole.MaxDirectReports) {
		return apperrors.Validation("manager already has the maximum of %d direct reports", *managerRole.MaxDirectReports)
	}
	return nil
}

// CheckReassignmentTarget rejects self-management and circular reporting:
// the new manager must not sit inside the employee's own downline.
func CheckReassignmentTarget(employeeID, newManagerID uuid.UUID, graph *hierarchy.Graph) error {
	if employeeID == newManagerID {
		return apperrors.Validation("an employee cannot report to themselves")
	}
	if graph.IsDescendant(employeeID, newManagerID) {
		return apperrors.Validation("circular reporting: the chosen manager is a subordinate of this employee")
	}
	return nil
}

// HireInput is the body of POST /organization/employees.
type HireInput struct {
	UserID                uuid.UUID
	RoleName              string
	Designation           string
	Department            string
	ReportsToEmploymentID *uuid.UUID
}

// Hire creates a new ACTIVE employment after validating role existence,
// capacity, level ordering and delegation scope. The whole operation runs in
// one transaction with a capacity recount immediately before commit, so two
// concurrent hires near a limit cannot both slip through.
func Hire(db *gorm.DB, org *models.Organization, scope *Scope, input HireInput) (*models.EmploymentState, error) {
	if hierarchy.IsReservedRoleName(input.RoleName) {
		return nil, apperrors.Validation("role %q is reserved and cannot be assigned", input.RoleName)
	}

	var created models.EmploymentState
	err := db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, "id = ?", input.UserID).Error; err != nil {
			return apperrors.NotFound("user")
		}

		// One employment row per (user, org): a live row blocks the hire, a
		// soft-terminated one is reactivated in place further down.
		var existing models.EmploymentState
		hasExisting := tx.Where("user_id = ? AND organization_id = ?",
			input.UserID, org.ID).First(&existing).Error == nil
		if hasExisting && existing.Status != models.EmploymentTerminated {
			return apperrors.Conflict("user is already employed in this organization")
		}

		var role models.Role
		if err := tx.Where("organization_id = ? AND LOWER(name) = LOWER(?)", org.ID, input.RoleName).
			First(&role).Error; err != nil {
			return apperrors.NotFound("role")
		}

		holders, err := countRoleHolders(tx, org.ID, role.ID, uuid.Nil)
		if err != nil {
			return err
		}
		if err := CheckRoleHeadroom(&role, holders); err != nil {
			return err
		}

		var managerRole *models.Role
		if input.ReportsToEmploymentID != nil {
			manager, mgrRole, err := loadManager(tx, org.ID, *input.ReportsToEmploymentID)
			if err != nil {
				return err
			}
			managerRole = mgrRole

			if err := CheckLevelOrdering(managerRole, &role); err != nil {
				return err
			}

			reports, err := countDirectReports(tx, org.ID, manager.ID, uuid.Nil)
			if err != nil {
				return err
			}
			if err := CheckDirectReportHeadroom(managerRole, reports); err != nil {
				return err
			}

			if !scope.AllowsManager(manager.ID) {
				return apperrors.Authorization("chosen manager is outside your reporting line")
			}
		}

		if hasExisting {
			existing.RoleID = role.ID
			existing.ReportsToEmploymentID = input.ReportsToEmploymentID
			existing.Status = models.EmploymentActive
			existing.Designation = input.Designation
			existing.Department = input.Department
			existing.JoinedAt = time.Now().UTC()
			existing.TerminatedAt = nil
			if err := tx.Save(&existing).Error; err != nil {
				return apperrors.Transaction("failed to reactivate employment", err)
			}
			created = existing
		} else {
			created = models.EmploymentState{
				UserID:                input.UserID,
				OrganizationID:        org.ID,
				RoleID:                role.ID,
				ReportsToEmploymentID: input.ReportsToEmploymentID,
				Status:                models.EmploymentActive,
				Designation:           input.Designation,
				Department:            input.Department,
				JoinedAt:              time.Now().UTC(),
			}
			if err := tx.Create(&created).Error; err != nil {
				// A concurrent hire of the same user can land first and trip
				// the (user, org) unique index despite the pre-check.
				return apperrors.Write("user already has an employment record in this organization",
					"failed to create employment", err)
			}
		}

		// Recount under the same transaction right before commit; closes the
		// window where two concurrent hires both passed the first check.
		if err := recheckCapacity(tx, org.ID, &role, managerRole, input.ReportsToEmploymentID); err != nil {
			return err
		}

		// First employment becomes the user's current organization
		if user.CurrentOrganizationID == nil {
			if err := tx.Model(&models.User{}).Where("id = ?", user.ID).
				Update("current_organization_id", org.ID).Error; err != nil {
				return apperrors.Transaction("failed to update current organization", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateInput carries the patchable fields of an employment. Nil pointers
// leave the field untouched.
type UpdateInput struct {
	RoleName              *string
	Designation           *string
	Department            *string
	Status                *string
	ReportsToEmploymentID *uuid.UUID
	ClearManager          bool
}

// UpdateEmployment applies role, manager, status, designation and department
// changes under the assignment invariants. Capacity checks run against
// effective counts that exclude the employee's own prior assignment, so a
// no-op reassignment to the same manager or role never trips a false
// capacity rejection.
func UpdateEmployment(db *gorm.DB, org *models.Organization, scope *Scope, employmentID uuid.UUID, input UpdateInput) (*models.EmploymentState, error) {
	var updated models.EmploymentState
	err := db.Transaction(func(tx *gorm.DB) error {
		var target models.EmploymentState
		if err := tx.Where("id = ? AND organization_id = ?", employmentID, org.ID).
			First(&target).Error; err != nil {
			return apperrors.NotFound("employment")
		}

		if !scope.Allows(target.ID) {
			return apperrors.Authorization("employment is outside your reporting line")
		}

		role := target.Role
		if err := tx.First(&role, "id = ?", target.RoleID).Error; err != nil {
			return apperrors.NotFound("role")
		}

		// Role change
		if input.RoleName != nil {
			if hierarchy.IsReservedRoleName(*input.RoleName) {
				return apperrors.Validation("role %q is reserved and cannot be assigned", *input.RoleName)
			}
			var newRole models.Role
			if err := tx.Where("organization_id = ? AND LOWER(name) = LOWER(?)", org.ID, *input.RoleName).
				First(&newRole).Error; err != nil {
				return apperrors.NotFound("role")
			}
			if newRole.ID != target.RoleID {
				holders, err := countRoleHolders(tx, org.ID, newRole.ID, target.ID)
				if err != nil {
					return err
				}
				if err := CheckRoleHeadroom(&newRole, holders); err != nil {
					return err
				}
				target.RoleID = newRole.ID
			}
			role = newRole
		}

		// Manager change
		var managerRole *models.Role
		if input.ClearManager {
			target.ReportsToEmploymentID = nil
		} else if input.ReportsToEmploymentID != nil {
			var employments []models.EmploymentState
			if err := tx.Where("organization_id = ? AND status IN ?", org.ID, models.LiveEmploymentStatuses).
				Find(&employments).Error; err != nil {
				return apperrors.Transaction("failed to load employments", err)
			}
			graph := hierarchy.BuildGraph(employments)

			if err := CheckReassignmentTarget(target.ID, *input.ReportsToEmploymentID, graph); err != nil {
				return err
			}

			manager, mgrRole, err := loadManager(tx, org.ID, *input.ReportsToEmploymentID)
			if err != nil {
				return err
			}
			managerRole = mgrRole

			if err := CheckLevelOrdering(managerRole, &role); err != nil {
				return err
			}

			reports, err := countDirectReports(tx, org.ID, manager.ID, target.ID)
			if err != nil {
				return err
			}
			if err := CheckDirectReportHeadroom(managerRole, reports); err != nil {
				return err
			}

			if !scope.AllowsManager(manager.ID) {
				return apperrors.Authorization("chosen manager is outside your reporting line")
			}

			target.ReportsToEmploymentID = input.ReportsToEmploymentID
		}

		if input.Status != nil {
			switch *input.Status {
			case models.EmploymentActive, models.EmploymentInvited, models.EmploymentSuspended:
				target.Status = *input.Status
			case models.EmploymentTerminated:
				return apperrors.Validation("use the terminate endpoint to end an employment")
			default:
				return apperrors.Validation("invalid employment status: %s", *input.Status)
			}
		}

		if input.Designation != nil {
			target.Designation = *input.Designation
		}
		if input.Department != nil {
			target.Department = *input.Department
		}

		if err := tx.Save(&target).Error; err != nil {
			return apperrors.Transaction("failed to update employment", err)
		}

		// Commit-time recount, same race guard as Hire
		if err := recheckCapacity(tx, org.ID, &role, managerRole, target.ReportsToEmploymentID); err != nil {
			return err
		}

		updated = target
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Terminate soft-terminates an employment: the row is kept for lineage, a
// WorkHistory record is upserted (idempotent on the source employment) and
// the user's current-organization pointer is cleared when no other ACTIVE
// employment remains.
func Terminate(db *gorm.DB, org *models.Organization, scope *Scope, employmentID uuid.UUID) (*models.EmploymentState, error) {
	var terminated models.EmploymentState
	err := db.Transaction(func(tx *gorm.DB) error {
		var target models.EmploymentState
		if err := tx.Where("id = ? AND organization_id = ?", employmentID, org.ID).
			First(&target).Error; err != nil {
			return apperrors.NotFound("employment")
		}

		if !scope.Allows(target.ID) {
			return apperrors.Authorization("employment is outside your reporting line")
		}

		if target.Status == models.EmploymentTerminated {
			return apperrors.Conflict("employment is already terminated")
		}

		now := time.Now().UTC()
		target.Status = models.EmploymentTerminated
		target.TerminatedAt = &now
		if err := tx.Save(&target).Error; err != nil {
			return apperrors.Transaction("failed to terminate employment", err)
		}

		if err := upsertWorkHistory(tx, org, &target); err != nil {
			return err
		}

		var remaining int64
		if err := tx.Model(&models.EmploymentState{}).
			Where("user_id = ? AND status = ? AND id != ?", target.UserID, models.EmploymentActive, target.ID).
			Count(&remaining).Error; err != nil {
			return apperrors.Transaction("failed to count remaining employments", err)
		}
		if remaining == 0 {
			if err := tx.Model(&models.User{}).Where("id = ?", target.UserID).
				Update("current_organization_id", nil).Error; err != nil {
				return apperrors.Transaction("failed to clear current organization", err)
			}
		}

		terminated = target
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &terminated, nil
}

// countRoleHolders counts ACTIVE holders of a role, optionally excluding one
// employment (the row being reassigned).
func countRoleHolders(tx *gorm.DB, orgID, roleID, excludeEmploymentID uuid.UUID) (int64, error) {
	query := tx.Model(&models.EmploymentState{}).
		Where("organization_id = ? AND role_id = ? AND status = ?", orgID, roleID, models.EmploymentActive)
	if excludeEmploymentID != uuid.Nil {
		query = query.Where("id != ?", excludeEmploymentID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, apperrors.Transaction("failed to count role holders", err)
	}
	return count, nil
}

// countDirectReports counts the live direct reports of a manager, optionally
// excluding one employment.
func countDirectReports(tx *gorm.DB, orgID, managerEmploymentID, excludeEmploymentID uuid.UUID) (int64, error) {
	query := tx.Model(&models.EmploymentState{}).
		Where("organization_id = ? AND reports_to_employment_id = ? AND status IN ?",
			orgID, managerEmploymentID, models.LiveEmploymentStatuses)
	if excludeEmploymentID != uuid.Nil {
		query = query.Where("id != ?", excludeEmploymentID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, apperrors.Transaction("failed to count direct reports", err)
	}
	return count, nil
}

func loadManager(tx *gorm.DB, orgID, managerEmploymentID uuid.UUID) (*models.EmploymentState, *models.Role, error) {
	var manager models.EmploymentState
	if err := tx.Where("id = ? AND organization_id = ? AND status IN ?",
		managerEmploymentID, orgID, models.LiveEmploymentStatuses).First(&manager).Error; err != nil {
		return nil, nil, apperrors.NotFound("manager employment")
	}
	var managerRole models.Role
	if err := tx.First(&managerRole, "id = ?", manager.RoleID).Error; err != nil {
		return nil, nil, apperrors.NotFound("manager role")
	}
	return &manager, &managerRole, nil
}

// recheckCapacity recounts capacity after the write, inside the same
// transaction. A violation here means a concurrent writer won the race; the
// error rolls everything back.
func recheckCapacity(tx *gorm.DB, orgID uuid.UUID, role *models.Role, managerRole *models.Role, managerEmploymentID *uuid.UUID) error {
	if role.MaxUsersPerRole != nil {
		var holders int64
		if err := tx.Model(&models.EmploymentState{}).
			Where("organization_id = ? AND role_id = ? AND status = ?", orgID, role.ID, models.EmploymentActive).
			Count(&holders).Error; err != nil {
			return apperrors.Transaction("failed to recount role holders", err)
		}
		if err := CheckRoleCapacityAtCommit(role, holders); err != nil {
			return err
		}
	}

	if managerRole != nil && managerRole.MaxDirectReports != nil && managerEmploymentID != nil {
		var reports int64
		if err := tx.Model(&models.EmploymentState{}).
			Where("organization_id = ? AND reports_to_employment_id = ? AND status IN ?",
				orgID, *managerEmploymentID, models.LiveEmploymentStatuses).
			Count(&reports).Error; err != nil {
			return apperrors.Transaction("failed to recount direct reports", err)
		}
		if err := CheckDirectReportsAtCommit(managerRole, reports); err != nil {
			return err
		}
	}

	return nil
}

func upsertWorkHistory(tx *gorm.DB, org *models.Organization, employment *models.EmploymentState) error {
	record := models.WorkHistory{
		UserID:             employment.UserID,
		SourceEmploymentID: employment.ID,
		OrganizationName:   org.Name,
		Designation:        employment.Designation,
		Department:         employment.Department,
		JoinedAt:           employment.JoinedAt,
		LeftAt:             employment.TerminatedAt,
	}

	var existing models.WorkHistory
	err := tx.Where("source_employment_id = ?", employment.ID).First(&existing).Error
	if err == nil {
		record.ID = existing.ID
		record.CreatedAt = existing.CreatedAt
		if err := tx.Save(&record).Error; err != nil {
			return apperrors.Transaction("failed to update work history", err)
		}
		return nil
	}

	if err := tx.Create(&record).Error; err != nil {
		return apperrors.Transaction("failed to create work history", err)
	}
	return nil
}
