package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"hrforge-backend/shared/database/models"
)

func TestNextRevisionFirstSubmission(t *testing.T) {
	assert.Equal(t, 1, NextRevision(nil))
}

func TestNextRevisionAfterRejections(t *testing.T) {
	history := []models.OrganizationRequest{
		{Revision: 1, Status: models.RequestRejected},
		{Revision: 2, Status: models.RequestRejected},
	}
	assert.Equal(t, 3, NextRevision(history))
}

func TestNextRevisionIsMonotonicRegardlessOfOrder(t *testing.T) {
	history := []models.OrganizationRequest{
		{Revision: 3, Status: models.RequestRejected},
		{Revision: 1, Status: models.RequestRejected},
		{Revision: 2, Status: models.RequestRejected},
	}
	assert.Equal(t, 4, NextRevision(history))
}
