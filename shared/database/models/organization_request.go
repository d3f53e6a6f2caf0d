package models

import (
	"time"

	"github.com/google/uuid"
)

// Organization request statuses
const (
	RequestPending  = "PENDING"
	RequestApproved = "APPROVED"
	RequestRejected = "REJECTED"
)

// OrganizationRequest is the pre-tenant artifact a prospective owner submits.
// APPROVED requests are terminal and linked to the provisioned organization;
// REJECTED requests may be resubmitted as a new row with Revision+1.
type OrganizationRequest struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID      uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	OrgName     string    `json:"org_name" gorm:"size:200;not null"`
	OrgType     string    `json:"org_type" gorm:"size:50;not null"`
	Industry    string    `json:"industry" gorm:"size:100"`
	CompanySize string    `json:"company_size" gorm:"size:50"`
	Description string    `json:"description" gorm:"type:text"`
	Status      string    `json:"status" gorm:"size:20;default:'PENDING';index"`
	Revision    int       `json:"revision" gorm:"default:1"`

	ReviewedBy           *uuid.UUID `json:"reviewed_by" gorm:"type:uuid"`
	RejectionReason      string     `json:"rejection_reason" gorm:"type:text"`
	DecidedAt            *time.Time `json:"decided_at"`
	LinkedOrganizationID *uuid.UUID `json:"linked_organization_id" gorm:"type:uuid"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	User               User          `json:"user" gorm:"foreignKey:UserID"`
	LinkedOrganization *Organization `json:"linked_organization,omitempty" gorm:"foreignKey:LinkedOrganizationID"`
}
