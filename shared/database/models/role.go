package models

import (
	"time"

	"github.com/google/uuid"
)

// ModuleAccess is one row of a role's access matrix.
type ModuleAccess struct {
	Read    bool `json:"read"`
	Write   bool `json:"write"`
	Approve bool `json:"approve"`
}

// AccessMatrix maps a module slug (employees, payroll, recruitment, ...) to
// the actions a role may perform on it.
type AccessMatrix map[string]ModuleAccess

type Role struct {
	ID             uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name           string     `json:"name" gorm:"size:100;not null;uniqueIndex:idx_role_org_name"`
	Description    string     `json:"description" gorm:"type:text"`
	OrganizationID *uuid.UUID `json:"organization_id" gorm:"type:uuid;uniqueIndex:idx_role_org_name"`

	// Level is the authority rank: lower value = more senior (Owner = 1).
	// 0 means unset; callers resolve it through hierarchy.ResolveLevel.
	Level        int        `json:"level" gorm:"default:0"`
	ParentRoleID *uuid.UUID `json:"parent_role_id" gorm:"type:uuid"`
	IsSystem     bool       `json:"is_system" gorm:"default:false"`

	Permissions  []string     `json:"permissions" gorm:"serializer:json"`
	AccessMatrix AccessMatrix `json:"access_matrix" gorm:"serializer:json"`

	// Capacity limits; nil means unlimited
	MaxUsersPerRole          *int     `json:"max_users_per_role"`
	MaxDirectReports         *int     `json:"max_direct_reports"`
	MaxMonthlyApprovals      *int     `json:"max_monthly_approvals"`
	MaxPayrollApprovalAmount *float64 `json:"max_payroll_approval_amount"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Organization *Organization `json:"organization,omitempty" gorm:"foreignKey:OrganizationID"`
	ParentRole   *Role         `json:"parent_role,omitempty" gorm:"foreignKey:ParentRoleID"`
}
