package models

import (
	"time"

	"github.com/google/uuid"
)

// Organization platform statuses
const (
	OrgStatusPending   = "PENDING"
	OrgStatusApproved  = "APPROVED"
	OrgStatusSuspended = "SUSPENDED"
)

// Subscription tiers
const (
	TierFree   = "FREE"
	TierGrowth = "GROWTH"
	TierScale  = "SCALE"
)

type Organization struct {
	ID               uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name             string    `json:"name" gorm:"size:200;not null"`
	Slug             string    `json:"slug" gorm:"size:100;uniqueIndex;not null"`
	Status           string    `json:"status" gorm:"default:'PENDING'"`
	OwnerID          uuid.UUID `json:"owner_id" gorm:"type:uuid;not null"`
	OrgType          string    `json:"org_type" gorm:"size:50;not null"`
	Industry         string    `json:"industry" gorm:"size:100"`
	SubscriptionTier string    `json:"subscription_tier" gorm:"size:30;default:'FREE'"`

	// Hierarchy configuration, seeded from the org-type template on approval
	ActiveTemplate        string            `json:"active_template" gorm:"size:50"`
	CustomLevelLabels     map[string]string `json:"custom_level_labels" gorm:"serializer:json"`
	MatrixReporting       bool              `json:"matrix_reporting" gorm:"default:false"`
	VisibilityPolicy      string            `json:"visibility_policy" gorm:"size:30;default:'DOWNLINE'"`
	BlockUpwardVisibility bool              `json:"block_upward_visibility" gorm:"default:true"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Branch struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrganizationID uuid.UUID `json:"organization_id" gorm:"type:uuid;not null;uniqueIndex:idx_branch_org_name"`
	Name           string    `json:"name" gorm:"size:200;not null;uniqueIndex:idx_branch_org_name"`
	IsHeadOffice   bool      `json:"is_head_office" gorm:"default:false"`
	Address        string    `json:"address" gorm:"type:text"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Relations
	Organization Organization `json:"-" gorm:"foreignKey:OrganizationID"`
}

type Department struct {
	ID             uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrganizationID uuid.UUID  `json:"organization_id" gorm:"type:uuid;not null;uniqueIndex:idx_department_org_name"`
	Name           string     `json:"name" gorm:"size:200;not null;uniqueIndex:idx_department_org_name"`
	BranchID       *uuid.UUID `json:"branch_id" gorm:"type:uuid"`
	ParentID       *uuid.UUID `json:"parent_id" gorm:"type:uuid"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	// Relations
	Organization Organization `json:"-" gorm:"foreignKey:OrganizationID"`
	Branch       *Branch      `json:"branch,omitempty" gorm:"foreignKey:BranchID"`
	Parent       *Department  `json:"parent,omitempty" gorm:"foreignKey:ParentID"`
}
