package hierarchy

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrforge-backend/shared/database/models"
)

func employment(id uuid.UUID, managerID *uuid.UUID, status string) models.EmploymentState {
	return models.EmploymentState{
		ID:                    id,
		ReportsToEmploymentID: managerID,
		Status:                status,
	}
}

func TestDescendantsOfExcludesRoot(t *testing.T) {
	ceo := uuid.New()
	manager := uuid.New()
	engineer := uuid.New()

	graph := BuildGraph([]models.EmploymentState{
		employment(ceo, nil, models.EmploymentActive),
		employment(manager, &ceo, models.EmploymentActive),
		employment(engineer, &manager, models.EmploymentActive),
	})

	descendants := graph.DescendantsOf(ceo)

	require.Len(t, descendants, 2)
	assert.True(t, descendants[manager])
	assert.True(t, descendants[engineer])
	assert.False(t, descendants[ceo], "a node must never be its own descendant")
}

func TestDescendantsOfLeafIsEmpty(t *testing.T) {
	ceo := uuid.New()
	engineer := uuid.New()

	graph := BuildGraph([]models.EmploymentState{
		employment(ceo, nil, models.EmploymentActive),
		employment(engineer, &ceo, models.EmploymentActive),
	})

	descendants := graph.DescendantsOf(engineer)

	assert.NotNil(t, descendants)
	assert.Empty(t, descendants)
}

func TestBuildGraphSkipsTerminatedRows(t *testing.T) {
	ceo := uuid.New()
	former := uuid.New()
	orphanReport := uuid.New()

	graph := BuildGraph([]models.EmploymentState{
		employment(ceo, nil, models.EmploymentActive),
		employment(former, &ceo, models.EmploymentTerminated),
		// reports to a terminated row: the edge is dropped, the node stays
		employment(orphanReport, &former, models.EmploymentActive),
	})

	assert.False(t, graph.Contains(former))
	assert.True(t, graph.Contains(orphanReport))

	descendants := graph.DescendantsOf(ceo)
	assert.Empty(t, descendants)
}

func TestBuildGraphKeepsSuspendedAndInvited(t *testing.T) {
	ceo := uuid.New()
	suspended := uuid.New()
	invited := uuid.New()

	graph := BuildGraph([]models.EmploymentState{
		employment(ceo, nil, models.EmploymentActive),
		employment(suspended, &ceo, models.EmploymentSuspended),
		employment(invited, &suspended, models.EmploymentInvited),
	})

	descendants := graph.DescendantsOf(ceo)
	assert.True(t, descendants[suspended])
	assert.True(t, descendants[invited])
}

func TestDescendantsOfSurvivesStoredCycle(t *testing.T) {
	// A cycle should never be written, but traversal of corrupted data must
	// still terminate.
	a := uuid.New()
	b := uuid.New()
	c := uuid.New()

	graph := BuildGraph([]models.EmploymentState{
		employment(a, &c, models.EmploymentActive),
		employment(b, &a, models.EmploymentActive),
		employment(c, &b, models.EmploymentActive),
	})

	descendants := graph.DescendantsOf(a)

	assert.True(t, descendants[b])
	assert.True(t, descendants[c])
	assert.False(t, descendants[a])
}

func TestDescendantsOfIsDeterministic(t *testing.T) {
	root := uuid.New()
	nodes := make([]models.EmploymentState, 0, 21)
	nodes = append(nodes, employment(root, nil, models.EmploymentActive))
	parents := []uuid.UUID{root}
	for i := 0; i < 20; i++ {
		id := uuid.New()
		parent := parents[i%len(parents)]
		nodes = append(nodes, employment(id, &parent, models.EmploymentActive))
		parents = append(parents, id)
	}

	graph := BuildGraph(nodes)
	first := graph.DescendantsOf(root)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, graph.DescendantsOf(root))
	}
	assert.Len(t, first, 20)
}

func TestIsDescendant(t *testing.T) {
	ceo := uuid.New()
	manager := uuid.New()
	engineer := uuid.New()
	peer := uuid.New()

	graph := BuildGraph([]models.EmploymentState{
		employment(ceo, nil, models.EmploymentActive),
		employment(manager, &ceo, models.EmploymentActive),
		employment(engineer, &manager, models.EmploymentActive),
		employment(peer, &ceo, models.EmploymentActive),
	})

	assert.True(t, graph.IsDescendant(manager, engineer))
	assert.False(t, graph.IsDescendant(engineer, manager), "upward edge is not a descendant relation")
	assert.False(t, graph.IsDescendant(manager, peer))
}

func TestDirectReports(t *testing.T) {
	ceo := uuid.New()
	a := uuid.New()
	b := uuid.New()
	grandchild := uuid.New()

	graph := BuildGraph([]models.EmploymentState{
		employment(ceo, nil, models.EmploymentActive),
		employment(a, &ceo, models.EmploymentActive),
		employment(b, &ceo, models.EmploymentActive),
		employment(grandchild, &a, models.EmploymentActive),
	})

	reports := graph.DirectReports(ceo)
	assert.ElementsMatch(t, []uuid.UUID{a, b}, reports)
}
