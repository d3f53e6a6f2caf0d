package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrforge-backend/shared/utils/apperrors"
)

func TestCorporateITTemplateLadder(t *testing.T) {
	template, err := TemplateForOrgType("CORPORATE_IT")
	require.NoError(t, err)

	require.Len(t, template.Roles, 7)
	assert.Equal(t, "Owner", template.Roles[0].Name, "the Owner role anchors every ladder at the top")

	names := make([]string, 0, len(template.Roles))
	for _, role := range template.Roles {
		names = append(names, role.Name)
	}
	assert.Equal(t, []string{"Owner", "CEO", "CTO", "Engineering Manager", "Team Lead", "Senior Engineer", "Engineer"}, names)

	assert.Contains(t, template.Departments, "Engineering")
	assert.Contains(t, template.Departments, "Human Resources")
}

func TestEveryTemplateStartsWithOwner(t *testing.T) {
	for _, orgType := range KnownOrgTypes() {
		template, err := TemplateForOrgType(orgType)
		require.NoError(t, err)
		require.NotEmpty(t, template.Roles, orgType)
		assert.Equal(t, "Owner", template.Roles[0].Name, orgType)

		one := 1
		assert.Equal(t, &one, template.Roles[0].MaxUsersPerRole, "%s: exactly one owner", orgType)
	}
}

func TestTemplateForOrgTypeNormalizesInput(t *testing.T) {
	template, err := TemplateForOrgType("  corporate_it ")
	require.NoError(t, err)
	assert.Equal(t, "CORPORATE_IT", template.Type)
}

func TestTemplateForOrgTypeUnknown(t *testing.T) {
	_, err := TemplateForOrgType("BAKERY")
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestRoleNameAllowed(t *testing.T) {
	assert.True(t, RoleNameAllowed("CORPORATE_IT", "Team Lead"))
	assert.True(t, RoleNameAllowed("CORPORATE_IT", "team lead"))
	assert.False(t, RoleNameAllowed("CORPORATE_IT", "Store Manager"), "names from other templates are rejected")

	// Unknown type has no whitelist to enforce
	assert.True(t, RoleNameAllowed("LEGACY", "Anything"))
}
