package hierarchy

import (
	"strings"

	"hrforge-backend/shared/database/models"
)

// DefaultLevel is assigned to roles whose level cannot be resolved. Unknown
// roles silently land at the bottom of the ladder instead of failing the
// operation; the fallback is intentional legacy behavior.
const DefaultLevel = 100

// Reserved role names that cannot be created or assigned manually.
var ReservedRoleNames = map[string]bool{
	"owner":      true,
	"admin":      true,
	"superadmin": true,
}

// fallbackLevels maps well-known role names to levels for legacy/system
// roles that omit an explicit level.
var fallbackLevels = map[string]int{
	"owner":    1,
	"ceo":      2,
	"director": 3,
	"manager":  4,
	"lead":     5,
	"employee": 6,
	"intern":   7,
}

// ResolveLevel returns the authority level of a role: the explicit level when
// set, the name-based fallback for legacy roles, DefaultLevel otherwise.
func ResolveLevel(role *models.Role) int {
	if role == nil {
		return DefaultLevel
	}
	if role.Level > 0 {
		return role.Level
	}
	if level, ok := fallbackLevels[strings.ToLower(strings.TrimSpace(role.Name))]; ok {
		return level
	}
	return DefaultLevel
}

// IsReservedRoleName reports whether the name is blocked from manual
// creation and assignment.
func IsReservedRoleName(name string) bool {
	return ReservedRoleNames[strings.ToLower(strings.TrimSpace(name))]
}
