package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrforge-backend/shared/database/models"
	"hrforge-backend/shared/utils/apperrors"
)

type rosterRow struct {
	id      uuid.UUID
	userID  uuid.UUID
	manager *uuid.UUID
}

func buildRoster(rows []rosterRow) []models.EmploymentState {
	employments := make([]models.EmploymentState, 0, len(rows))
	for _, row := range rows {
		employments = append(employments, models.EmploymentState{
			ID:                    row.id,
			UserID:                row.userID,
			ReportsToEmploymentID: row.manager,
			Status:                models.EmploymentActive,
		})
	}
	return employments
}

func TestResolveScopeOwnerIsUnrestricted(t *testing.T) {
	ownerUser := uuid.New()
	org := &models.Organization{OwnerID: ownerUser}

	scope, err := ResolveScope(org, ownerUser, nil)

	require.NoError(t, err)
	assert.True(t, scope.Unrestricted)
	assert.True(t, scope.Allows(uuid.New()), "owner sees every employment, even ones loaded later")
}

func TestResolveScopeManagerSeesOnlyDownline(t *testing.T) {
	ownerUser := uuid.New()
	managerUser := uuid.New()

	ceoEmp := rosterRow{id: uuid.New(), userID: ownerUser}
	managerEmp := rosterRow{id: uuid.New(), userID: managerUser, manager: &ceoEmp.id}
	reportEmp := rosterRow{id: uuid.New(), userID: uuid.New(), manager: &managerEmp.id}
	peerEmp := rosterRow{id: uuid.New(), userID: uuid.New(), manager: &ceoEmp.id}

	org := &models.Organization{OwnerID: ownerUser}
	roster := buildRoster([]rosterRow{ceoEmp, managerEmp, reportEmp, peerEmp})

	scope, err := ResolveScope(org, managerUser, roster)

	require.NoError(t, err)
	assert.False(t, scope.Unrestricted)
	assert.True(t, scope.Allows(reportEmp.id))
	assert.False(t, scope.Allows(peerEmp.id), "a sibling branch is invisible")
	assert.False(t, scope.Allows(ceoEmp.id), "the caller's own manager is invisible")
	assert.False(t, scope.Allows(managerEmp.id), "the scope covers the downline, not the caller")
}

func TestResolveScopeLeafGetsEmptySet(t *testing.T) {
	ownerUser := uuid.New()
	leafUser := uuid.New()

	ceoEmp := rosterRow{id: uuid.New(), userID: ownerUser}
	leafEmp := rosterRow{id: uuid.New(), userID: leafUser, manager: &ceoEmp.id}

	org := &models.Organization{OwnerID: ownerUser}

	scope, err := ResolveScope(org, leafUser, buildRoster([]rosterRow{ceoEmp, leafEmp}))

	require.NoError(t, err)
	assert.NotNil(t, scope.Visible, "managing nobody is a valid outcome, not missing access")
	assert.Empty(t, scope.Visible)
}

func TestResolveScopeRejectsNonMember(t *testing.T) {
	org := &models.Organization{OwnerID: uuid.New()}

	_, err := ResolveScope(org, uuid.New(), nil)

	assert.Equal(t, apperrors.KindAuthorization, apperrors.KindOf(err))
}

func TestResolveScopeIgnoresTerminatedCaller(t *testing.T) {
	ownerUser := uuid.New()
	formerUser := uuid.New()

	roster := []models.EmploymentState{
		{ID: uuid.New(), UserID: ownerUser, Status: models.EmploymentActive},
		{ID: uuid.New(), UserID: formerUser, Status: models.EmploymentTerminated},
	}
	org := &models.Organization{OwnerID: ownerUser}

	_, err := ResolveScope(org, formerUser, roster)

	assert.Equal(t, apperrors.KindAuthorization, apperrors.KindOf(err))
}

func TestAllowsManagerSelfDelegation(t *testing.T) {
	ownerUser := uuid.New()
	managerUser := uuid.New()

	ceoEmp := rosterRow{id: uuid.New(), userID: ownerUser}
	managerEmp := rosterRow{id: uuid.New(), userID: managerUser, manager: &ceoEmp.id}
	reportEmp := rosterRow{id: uuid.New(), userID: uuid.New(), manager: &managerEmp.id}

	org := &models.Organization{OwnerID: ownerUser}
	scope, err := ResolveScope(org, managerUser, buildRoster([]rosterRow{ceoEmp, managerEmp, reportEmp}))
	require.NoError(t, err)

	assert.True(t, scope.AllowsManager(managerEmp.id), "a manager may hire under themselves")
	assert.True(t, scope.AllowsManager(reportEmp.id), "or under anyone in their downline")
	assert.False(t, scope.AllowsManager(ceoEmp.id), "but not under their own manager")
}
