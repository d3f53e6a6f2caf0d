package services

import (
	"strings"

	"hrforge-backend/shared/database/models"
	"hrforge-backend/shared/utils/apperrors"
)

// RoleTemplate is one rung of an org type's role ladder.
type RoleTemplate struct {
	Name                     string
	Description              string
	Permissions              []string
	AccessMatrix             models.AccessMatrix
	MaxUsersPerRole          *int
	MaxDirectReports         *int
	MaxMonthlyApprovals      *int
	MaxPayrollApprovalAmount *float64
}

// OrgTypeTemplate describes everything provisioning creates for a tenant of
// a given type: the ordered role ladder (most senior first, Owner at index
// 0) and the initial department list. Once an organization is approved its
// type is locked and role names must stay inside this template.
type OrgTypeTemplate struct {
	Type        string
	Departments []string
	Roles       []RoleTemplate
}

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

var ownerTemplate = RoleTemplate{
	Name:        "Owner",
	Description: "Tenant owner",
	Permissions: []string{"*"},
	AccessMatrix: models.AccessMatrix{
		"employees":   {Read: true, Write: true, Approve: true},
		"roles":       {Read: true, Write: true, Approve: true},
		"payroll":     {Read: true, Write: true, Approve: true},
		"recruitment": {Read: true, Write: true, Approve: true},
	},
	MaxUsersPerRole: intPtr(1),
}

var orgTypeTemplates = map[string]OrgTypeTemplate{
	"CORPORATE_IT": {
		Type:        "CORPORATE_IT",
		Departments: []string{"Engineering", "Product", "Human Resources", "Finance", "Operations"},
		Roles: []RoleTemplate{
			ownerTemplate,
			{Name: "CEO", Description: "Chief executive",
				Permissions:  []string{"employees.read", "employees.write", "employees.approve", "roles.read", "payroll.approve"},
				AccessMatrix: models.AccessMatrix{"employees": {Read: true, Write: true, Approve: true}, "roles": {Read: true}, "payroll": {Read: true, Approve: true}},
				MaxUsersPerRole: intPtr(1), MaxPayrollApprovalAmount: floatPtr(1_000_000)},
			{Name: "CTO", Description: "Chief technology officer",
				Permissions:  []string{"employees.read", "employees.write", "roles.read"},
				AccessMatrix: models.AccessMatrix{"employees": {Read: true, Write: true}, "roles": {Read: true}},
				MaxUsersPerRole: intPtr(1), MaxDirectReports: intPtr(10)},
			{Name: "Engineering Manager", Description: "Line manager of delivery teams",
				Permissions:  []string{"employees.read", "employees.write"},
				AccessMatrix: models.AccessMatrix{"employees": {Read: true, Write: true}, "payroll": {Read: true}},
				MaxDirectReports: intPtr(8), MaxMonthlyApprovals: intPtr(50)},
			{Name: "Team Lead", Description: "Technical lead",
				Permissions:  []string{"employees.read"},
				AccessMatrix: models.AccessMatrix{"employees": {Read: true, Write: true}},
				MaxDirectReports: intPtr(6)},
			{Name: "Senior Engineer", Description: "Senior individual contributor",
				Permissions:  []string{"employees.read"},
				AccessMatrix: models.AccessMatrix{"employees": {Read: true}}},
			{Name: "Engineer", Description: "Individual contributor",
				Permissions:  []string{"employees.read"},
				AccessMatrix: models.AccessMatrix{"employees": {Read: true}}},
		},
	},
	"RETAIL": {
		Type:        "RETAIL",
		Departments: []string{"Sales", "Inventory", "Customer Service", "Finance"},
		Roles: []RoleTemplate{
			ownerTemplate,
			{Name: "General Manager", Description: "Runs day-to-day operations",
				Permissions:  []string{"employees.read", "employees.write", "employees.approve"},
				AccessMatrix: models.AccessMatrix{"employees": {Read: true, Write: true, Approve: true}, "payroll": {Read: true, Approve: true}},
				MaxUsersPerRole: intPtr(1), MaxPayrollApprovalAmount: floatPtr(100_000)},
			{Name: "Store Manager", Description: "Manages one store",
				Permissions:  []string{"employees.read", "employees.write"},
				AccessMatrix: models.AccessMatrix{"employees": {Read: true, Write: true}},
				MaxDirectReports: intPtr(20)},
			{Name: "Shift Supervisor", Description: "Supervises a shift",
				Permissions:  []string{"employees.read"},
				AccessMatrix: models.AccessMatrix{"employees": {Read: true, Write: true}},
				MaxDirectReports: intPtr(12)},
			{Name: "Associate", Description: "Store associate",
				Permissions:  []string{"employees.read"},
				AccessMatrix: models.AccessMatrix{"employees": {Read: true}}},
		},
	},
	"HEALTHCARE": {
		Type:        "HEALTHCARE",
		Departments: []string{"Clinical", "Nursing", "Administration", "Billing"},
		Roles: []RoleTemplate{
			ownerTemplate,
			{Name: "Medical Director", Description: "Clinical leadership",
				Permissions:  []string{"employees.read", "employees.write", "employees.approve"},
				AccessMatrix: models.AccessMatrix{"employees": {Read: true, Write: true, Approve: true}},
				MaxUsersPerRole: intPtr(1)},
			{Name: "Department Head", Description: "Heads a clinical department",
				Permissions:  []string{"employees.read", "employees.write"},
				AccessMatrix: models.AccessMatrix{"employees": {Read: true, Write: true}},
				MaxDirectReports: intPtr(15)},
			{Name: "Practitioner", Description: "Licensed practitioner",
				Permissions:  []string{"employees.read"},
				AccessMatrix: models.AccessMatrix{"employees": {Read: true}}},
			{Name: "Staff", Description: "Support staff",
				Permissions:  []string{"employees.read"},
				AccessMatrix: models.AccessMatrix{"employees": {Read: true}}},
		},
	},
	"STARTUP": {
		Type:        "STARTUP",
		Departments: []string{"Engineering", "Growth", "Operations"},
		Roles: []RoleTemplate{
			ownerTemplate,
			{Name: "Cofounder", Description: "Founding team",
				Permissions:  []string{"employees.read", "employees.write", "employees.approve"},
				AccessMatrix: models.AccessMatrix{"employees": {Read: true, Write: true, Approve: true}, "payroll": {Read: true, Approve: true}},
				MaxUsersPerRole: intPtr(4)},
			{Name: "Lead", Description: "Team lead",
				Permissions:  []string{"employees.read", "employees.write"},
				AccessMatrix: models.AccessMatrix{"employees": {Read: true, Write: true}},
				MaxDirectReports: intPtr(10)},
			{Name: "Member", Description: "Team member",
				Permissions:  []string{"employees.read"},
				AccessMatrix: models.AccessMatrix{"employees": {Read: true}}},
		},
	},
}

// TemplateForOrgType resolves the template for an organization type.
func TemplateForOrgType(orgType string) (OrgTypeTemplate, error) {
	template, ok := orgTypeTemplates[strings.ToUpper(strings.TrimSpace(orgType))]
	if !ok {
		return OrgTypeTemplate{}, apperrors.Validation("unknown organization type: %s", orgType)
	}
	return template, nil
}

// KnownOrgTypes lists the supported organization types.
func KnownOrgTypes() []string {
	types := make([]string, 0, len(orgTypeTemplates))
	for t := range orgTypeTemplates {
		types = append(types, t)
	}
	return types
}

// AllowedRoleNames is the whitelist enforced on role create/rename for a
// locked org type: the template ladder plus "owner".
func (t OrgTypeTemplate) AllowedRoleNames() map[string]bool {
	allowed := map[string]bool{"owner": true}
	for _, role := range t.Roles {
		allowed[strings.ToLower(role.Name)] = true
	}
	return allowed
}

// RoleNameAllowed reports whether a role name fits the locked template.
func RoleNameAllowed(orgType, name string) bool {
	template, err := TemplateForOrgType(orgType)
	if err != nil {
		// Unlocked/unknown type: no whitelist to enforce
		return true
	}
	return template.AllowedRoleNames()[strings.ToLower(strings.TrimSpace(name))]
}
