package models

import (
	"time"

	"github.com/google/uuid"
)

// Employment statuses
const (
	EmploymentActive     = "ACTIVE"
	EmploymentInvited    = "INVITED"
	EmploymentSuspended  = "SUSPENDED"
	EmploymentTerminated = "TERMINATED"
)

// LiveEmploymentStatuses are the statuses that participate in the reporting
// tree. TERMINATED rows are kept for history but never enter the graph.
var LiveEmploymentStatuses = []string{EmploymentActive, EmploymentSuspended, EmploymentInvited}

// EmploymentState is one (user, organization) membership carrying the role
// and the manager edge of the reporting tree.
type EmploymentState struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID         uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index:idx_employment_user_org,unique"`
	OrganizationID uuid.UUID `json:"organization_id" gorm:"type:uuid;not null;index:idx_employment_user_org,unique;index"`
	RoleID         uuid.UUID `json:"role_id" gorm:"type:uuid;not null"`

	// ReportsToEmploymentID points at another EmploymentState in the same
	// organization. The edges must stay acyclic and level-ordered; both are
	// enforced at assignment time, not by the store.
	ReportsToEmploymentID *uuid.UUID `json:"reports_to_employment_id" gorm:"type:uuid"`

	Status       string     `json:"status" gorm:"size:20;default:'ACTIVE';index"`
	Designation  string     `json:"designation" gorm:"size:150"`
	Department   string     `json:"department" gorm:"size:150"`
	JoinedAt     time.Time  `json:"joined_at"`
	TerminatedAt *time.Time `json:"terminated_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	User         User             `json:"user" gorm:"foreignKey:UserID"`
	Organization Organization     `json:"organization" gorm:"foreignKey:OrganizationID"`
	Role         Role             `json:"role" gorm:"foreignKey:RoleID"`
	ReportsTo    *EmploymentState `json:"reports_to,omitempty" gorm:"foreignKey:ReportsToEmploymentID"`
}

// WorkHistory is the historical employment record, upserted when an
// employment is terminated. SourceEmploymentID makes the upsert idempotent.
type WorkHistory struct {
	ID                 uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID             uuid.UUID  `json:"user_id" gorm:"type:uuid;not null;index"`
	SourceEmploymentID uuid.UUID  `json:"source_employment_id" gorm:"type:uuid;not null;uniqueIndex"`
	OrganizationName   string     `json:"organization_name" gorm:"size:200"`
	Designation        string     `json:"designation" gorm:"size:150"`
	Department         string     `json:"department" gorm:"size:150"`
	JoinedAt           time.Time  `json:"joined_at"`
	LeftAt             *time.Time `json:"left_at"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}
