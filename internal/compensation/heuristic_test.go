package compensation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/autoreply/internal/roles"
	"github.com/jonathan/autoreply/internal/types"
)

func TestHeuristic_SeniorBackendSeattle(t *testing.T) {
	meta := roles.Resolve("Hi, I'm hiring a Senior Backend Engineer in Seattle, would you be open to a quick chat?")

	low, high, ok := HeuristicRange(meta)
	require.True(t, ok)
	assert.InDelta(t, 205000, low, 1e-9)
	assert.InDelta(t, 275000, high, 1e-9)

	s, ok := Heuristic(meta)
	require.True(t, ok)
	require.NotNil(t, s.Glassdoor)
	require.NotNil(t, s.Levels)
	assert.Equal(t, "$205k-$275k", s.Glassdoor.Amount)
	assert.Equal(t, "$215k-$290k", s.Levels.Amount)
	assert.Equal(t, "B+", s.Glassdoor.Grade)
	assert.Equal(t, "B+", s.Levels.Grade)
	assert.Equal(t, "B+", s.OverallGrade)
}

func TestHeuristic_ClampsFloorAndSpread(t *testing.T) {
	meta := roles.Resolve("Product designer internship, remote")
	require.Equal(t, types.RoleProductDesigner, meta.Role)
	require.Equal(t, types.SeniorityIntern, meta.Seniority)

	low, high, ok := HeuristicRange(meta)
	require.True(t, ok)
	assert.InDelta(t, 45000, low, 1e-9)
	assert.InDelta(t, 75000, high, 1e-9)

	s, _ := Heuristic(meta)
	assert.Equal(t, "$45k-$75k", s.Glassdoor.Amount)
	assert.Equal(t, "$55k-$90k", s.Levels.Amount)
	assert.Equal(t, "C-", s.OverallGrade)
}

func TestHeuristic_UnknownRoleBaseline(t *testing.T) {
	meta := types.RoleMetadata{Role: "Astronaut", Seniority: types.SeniorityMid, CombinedText: "orbit"}

	s, ok := Heuristic(meta)
	require.True(t, ok)
	assert.Equal(t, "$120k-$170k", s.Glassdoor.Amount)
	assert.Equal(t, "C+", s.OverallGrade)
}

func TestHeuristic_LocationFromRawText(t *testing.T) {
	// raleigh is not a resolved location but still lowers the range
	meta := types.RoleMetadata{
		Role:         types.RoleSoftwareEngineer,
		Location:     types.LocationUnitedStates,
		Seniority:    types.SeniorityMid,
		CombinedText: "Team based in Raleigh",
	}

	low, high, ok := HeuristicRange(meta)
	require.True(t, ok)
	assert.InDelta(t, 130000, low, 1e-9)
	assert.InDelta(t, 190000, high, 1e-9)
}

func TestHeuristic_EmptyText(t *testing.T) {
	_, ok := Heuristic(types.RoleMetadata{Role: types.RoleSoftwareEngineer})
	assert.False(t, ok)
}
