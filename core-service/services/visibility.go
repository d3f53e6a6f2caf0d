package services

import (
	"github.com/google/uuid"

	"hrforge-backend/shared/database/models"
	"hrforge-backend/shared/utils/apperrors"
	"hrforge-backend/shared/utils/hierarchy"
)

// Scope is the set of employments a caller is authorized to see and mutate.
// Owners are unrestricted; everyone else is confined to their own downline.
type Scope struct {
	Unrestricted     bool
	CallerEmployment *models.EmploymentState
	Visible          map[uuid.UUID]bool
}

// ResolveScope computes the caller's visibility scope over one
// organization's employments. A leaf employee gets an empty (not nil) set:
// managing nobody is a valid outcome, distinct from having no access at all.
func ResolveScope(org *models.Organization, callerUserID uuid.UUID, employments []models.EmploymentState) (*Scope, error) {
	if org.OwnerID == callerUserID {
		return &Scope{Unrestricted: true, CallerEmployment: findEmploymentByUser(employments, callerUserID)}, nil
	}

	caller := findEmploymentByUser(employments, callerUserID)
	if caller == nil {
		return nil, apperrors.Authorization("no active employment in this organization")
	}

	graph := hierarchy.BuildGraph(employments)
	return &Scope{
		CallerEmployment: caller,
		Visible:          graph.DescendantsOf(caller.ID),
	}, nil
}

// Allows reports whether the scope covers the target employment.
func (s *Scope) Allows(employmentID uuid.UUID) bool {
	if s.Unrestricted {
		return true
	}
	return s.Visible[employmentID]
}

// AllowsManager reports whether the caller may delegate reporting to the
// given manager: owners pick anyone, others only themselves or someone in
// their own downline.
func (s *Scope) AllowsManager(managerEmploymentID uuid.UUID) bool {
	if s.Unrestricted {
		return true
	}
	if s.CallerEmployment != nil && s.CallerEmployment.ID == managerEmploymentID {
		return true
	}
	return s.Visible[managerEmploymentID]
}

func findEmploymentByUser(employments []models.EmploymentState, userID uuid.UUID) *models.EmploymentState {
	for i := range employments {
		emp := &employments[i]
		if emp.UserID != userID {
			continue
		}
		switch emp.Status {
		case models.EmploymentActive, models.EmploymentSuspended, models.EmploymentInvited:
			return emp
		}
	}
	return nil
}
