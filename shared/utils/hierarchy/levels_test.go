package hierarchy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"hrforge-backend/shared/database/models"
)

func TestResolveLevelExplicitWins(t *testing.T) {
	role := &models.Role{Name: "manager", Level: 3}
	assert.Equal(t, 3, ResolveLevel(role), "explicit level beats the name fallback")
}

func TestResolveLevelNameFallback(t *testing.T) {
	cases := map[string]int{
		"owner":    1,
		"ceo":      2,
		"director": 3,
		"manager":  4,
		"lead":     5,
		"employee": 6,
		"intern":   7,
	}
	for name, want := range cases {
		assert.Equal(t, want, ResolveLevel(&models.Role{Name: name}), "role %q", name)
	}
}

func TestResolveLevelFallbackIsCaseInsensitive(t *testing.T) {
	assert.Equal(t, 2, ResolveLevel(&models.Role{Name: "CEO"}))
	assert.Equal(t, 4, ResolveLevel(&models.Role{Name: "  Manager  "}))
}

func TestResolveLevelUnknownDefaults(t *testing.T) {
	assert.Equal(t, DefaultLevel, ResolveLevel(&models.Role{Name: "Wizard"}))
	assert.Equal(t, DefaultLevel, ResolveLevel(nil))
}

func TestIsReservedRoleName(t *testing.T) {
	assert.True(t, IsReservedRoleName("owner"))
	assert.True(t, IsReservedRoleName("Admin"))
	assert.True(t, IsReservedRoleName(" SUPERADMIN "))
	assert.False(t, IsReservedRoleName("manager"))
}
