package services

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hrforge-backend/shared/config"
	"hrforge-backend/shared/database/models"
	"hrforge-backend/shared/utils/apperrors"
)

var slugSanitizer = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify converts an organization name to a URL-safe slug.
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugSanitizer.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "org"
	}
	return slug
}

// UniqueSlug appends an incrementing suffix until exists reports the slug as
// free: acme, acme-2, acme-3, ...
func UniqueSlug(base string, exists func(slug string) (bool, error)) (string, error) {
	slug := Slugify(base)
	candidate := slug
	for suffix := 2; ; suffix++ {
		taken, err := exists(candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", slug, suffix)
	}
}

// ApproveOrganizationRequest turns a PENDING request into a live tenant:
// organization, head-office branch, template departments, the chained role
// ladder and the owner's ACTIVE employment — all inside one transaction. A
// failure at any step leaves zero visible side effects and the request stays
// PENDING.
func ApproveOrganizationRequest(db *gorm.DB, requestID, reviewerID uuid.UUID) (*models.Organization, error) {
	var org models.Organization
	err := db.Transaction(func(tx *gorm.DB) error {
		var request models.OrganizationRequest
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&request, "id = ?", requestID).Error; err != nil {
			return apperrors.NotFound("organization request")
		}
		if request.Status != models.RequestPending {
			return apperrors.Conflict("organization request is not pending")
		}
		if request.LinkedOrganizationID != nil {
			return apperrors.Conflict("organization request is already linked to an organization")
		}

		template, err := TemplateForOrgType(request.OrgType)
		if err != nil {
			return err
		}

		slug, err := UniqueSlug(request.OrgName, func(candidate string) (bool, error) {
			var count int64
			if err := tx.Model(&models.Organization{}).Where("slug = ?", candidate).Count(&count).Error; err != nil {
				return false, apperrors.Transaction("failed to check slug uniqueness", err)
			}
			return count > 0, nil
		})
		if err != nil {
			return err
		}

		org = models.Organization{
			Name:                  request.OrgName,
			Slug:                  slug,
			Status:                models.OrgStatusApproved,
			OwnerID:               request.UserID,
			OrgType:               template.Type,
			Industry:              request.Industry,
			SubscriptionTier:      config.GetConfig().PromotionalTier,
			ActiveTemplate:        template.Type,
			VisibilityPolicy:      "DOWNLINE",
			BlockUpwardVisibility: true,
		}
		if err := tx.Create(&org).Error; err != nil {
			// Two approvals racing past UniqueSlug can pick the same slug.
			return apperrors.Write("organization slug is already taken",
				"failed to create organization", err)
		}

		branch := models.Branch{
			OrganizationID: org.ID,
			Name:           "Head Office",
			IsHeadOffice:   true,
		}
		if err := tx.Create(&branch).Error; err != nil {
			return apperrors.Transaction("failed to create head office branch", err)
		}

		departments := make([]models.Department, 0, len(template.Departments))
		for _, name := range template.Departments {
			departments = append(departments, models.Department{
				OrganizationID: org.ID,
				Name:           name,
				BranchID:       &branch.ID,
			})
		}
		if len(departments) > 0 {
			if err := tx.Create(&departments).Error; err != nil {
				return apperrors.Transaction("failed to create departments", err)
			}
		}

		// Chained role ladder: level = index+1, parent = previous role
		var previousRoleID *uuid.UUID
		var ownerRoleID uuid.UUID
		for i, roleTemplate := range template.Roles {
			role := models.Role{
				Name:                     roleTemplate.Name,
				Description:              roleTemplate.Description,
				OrganizationID:           &org.ID,
				Level:                    i + 1,
				ParentRoleID:             previousRoleID,
				Permissions:              roleTemplate.Permissions,
				AccessMatrix:             roleTemplate.AccessMatrix,
				MaxUsersPerRole:          roleTemplate.MaxUsersPerRole,
				MaxDirectReports:         roleTemplate.MaxDirectReports,
				MaxMonthlyApprovals:      roleTemplate.MaxMonthlyApprovals,
				MaxPayrollApprovalAmount: roleTemplate.MaxPayrollApprovalAmount,
			}
			if err := tx.Create(&role).Error; err != nil {
				return apperrors.Transaction("failed to create role ladder", err)
			}
			roleID := role.ID
			previousRoleID = &roleID
			if i == 0 {
				ownerRoleID = role.ID
			}
		}

		employment := models.EmploymentState{
			UserID:         request.UserID,
			OrganizationID: org.ID,
			RoleID:         ownerRoleID,
			Status:         models.EmploymentActive,
			Designation:    "Owner",
			JoinedAt:       time.Now().UTC(),
		}
		if err := tx.Create(&employment).Error; err != nil {
			return apperrors.Transaction("failed to create owner employment", err)
		}

		if err := tx.Model(&models.User{}).Where("id = ?", request.UserID).
			Update("current_organization_id", org.ID).Error; err != nil {
			return apperrors.Transaction("failed to update requester's current organization", err)
		}

		now := time.Now().UTC()
		request.Status = models.RequestApproved
		request.ReviewedBy = &reviewerID
		request.DecidedAt = &now
		request.LinkedOrganizationID = &org.ID
		if err := tx.Save(&request).Error; err != nil {
			return apperrors.Transaction("failed to mark request approved", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}
	return &org, nil
}

// RejectOrganizationRequest is a plain single-row PENDING → REJECTED
// transition; no transaction needed.
func RejectOrganizationRequest(db *gorm.DB, requestID, reviewerID uuid.UUID, reason string) (*models.OrganizationRequest, error) {
	var request models.OrganizationRequest
	if err := db.First(&request, "id = ?", requestID).Error; err != nil {
		return nil, apperrors.NotFound("organization request")
	}
	if request.Status != models.RequestPending {
		return nil, apperrors.Conflict("organization request is not pending")
	}

	now := time.Now().UTC()
	request.Status = models.RequestRejected
	request.ReviewedBy = &reviewerID
	request.RejectionReason = reason
	request.DecidedAt = &now
	if err := db.Save(&request).Error; err != nil {
		return nil, apperrors.Transaction("failed to reject organization request", err)
	}

	return &request, nil
}
