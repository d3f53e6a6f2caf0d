// Package hierarchy holds the pure traversal and level-resolution logic of
// the reporting tree. Everything here operates on already-loaded rows: no
// database access, rebuilt fresh for every request.
package hierarchy

import (
	"github.com/google/uuid"

	"hrforge-backend/shared/database/models"
)

// Graph is the manager→direct-reports adjacency of one organization's live
// employments (ACTIVE, SUSPENDED, INVITED). TERMINATED rows never enter.
type Graph struct {
	children map[uuid.UUID][]uuid.UUID
	nodes    map[uuid.UUID]bool
}

// BuildGraph builds the adjacency map from an organization's employment rows.
// Rows with a non-live status are skipped; manager edges pointing at skipped
// or unknown rows are ignored.
func BuildGraph(employments []models.EmploymentState) *Graph {
	g := &Graph{
		children: make(map[uuid.UUID][]uuid.UUID),
		nodes:    make(map[uuid.UUID]bool),
	}

	live := make(map[uuid.UUID]bool, len(employments))
	for _, emp := range employments {
		if isLiveStatus(emp.Status) {
			live[emp.ID] = true
		}
	}

	for _, emp := range employments {
		if !live[emp.ID] {
			continue
		}
		g.nodes[emp.ID] = true
		if emp.ReportsToEmploymentID != nil && live[*emp.ReportsToEmploymentID] {
			parent := *emp.ReportsToEmploymentID
			g.children[parent] = append(g.children[parent], emp.ID)
		}
	}

	return g
}

// DescendantsOf returns every employment id strictly below root. The root
// itself is never part of the result. The visited set guards against
// malformed pre-existing cycles in stored data.
func (g *Graph) DescendantsOf(root uuid.UUID) map[uuid.UUID]bool {
	descendants := make(map[uuid.UUID]bool)
	visited := map[uuid.UUID]bool{root: true}

	queue := make([]uuid.UUID, 0, len(g.children[root]))
	queue = append(queue, g.children[root]...)

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if visited[current] {
			continue
		}
		visited[current] = true
		descendants[current] = true

		queue = append(queue, g.children[current]...)
	}

	return descendants
}

// IsDescendant reports whether node lies strictly below root.
func (g *Graph) IsDescendant(root, node uuid.UUID) bool {
	return g.DescendantsOf(root)[node]
}

// DirectReports returns root's immediate subordinates.
func (g *Graph) DirectReports(root uuid.UUID) []uuid.UUID {
	return g.children[root]
}

// Contains reports whether the employment id is part of the live tree.
func (g *Graph) Contains(id uuid.UUID) bool {
	return g.nodes[id]
}

func isLiveStatus(status string) bool {
	switch status {
	case models.EmploymentActive, models.EmploymentSuspended, models.EmploymentInvited:
		return true
	}
	return false
}
