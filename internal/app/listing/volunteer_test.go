package listing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/scholarsphere-cli/internal/app/models"
)

func boardFixture() []models.VolunteerOpportunity {
	return []models.VolunteerOpportunity{
		{ID: "v1", Title: "Tutoring Program", Organization: "City Library", Type: "education", Location: "Toronto, ON"},
		{ID: "v2", Title: "Beach Cleanup", Organization: "Ocean Watch", Type: "environment", Location: "Vancouver, BC"},
		{ID: "v3", Title: "Food Bank Shift", Organization: "Harvest House", Description: "sorting and tutoring signups", Type: "community", Location: "Toronto, ON"},
	}
}

func ids(list []models.VolunteerOpportunity) []string {
	out := make([]string, len(list))
	for i, opp := range list {
		out[i] = opp.ID
	}
	return out
}

func TestVolunteerBoardFiltersWithoutRefetching(t *testing.T) {
	api := &fakeDirectory{volunteers: boardFixture()}
	board := NewVolunteerBoard(api)
	require.NoError(t, board.Refresh(context.Background()))
	require.Equal(t, 1, api.volunteerCalls)

	// Case-insensitive substring over title, organization, and description.
	board.SetSearch("TUTOR")
	assert.Equal(t, []string{"v1", "v3"}, ids(board.Matches()))

	board.SetSearch("ocean")
	assert.Equal(t, []string{"v2"}, ids(board.Matches()))

	board.SetSearch("")
	board.SetType("education")
	assert.Equal(t, []string{"v1"}, ids(board.Matches()))

	board.SetType("")
	board.SetLocation("toronto")
	assert.Equal(t, []string{"v1", "v3"}, ids(board.Matches()))

	board.SetSearch("tutoring")
	board.SetType("community")
	assert.Equal(t, []string{"v3"}, ids(board.Matches()), "all filters combine")

	assert.Equal(t, 1, api.volunteerCalls, "filter changes never touch the network")
	assert.Len(t, board.Snapshot(), 3, "snapshot stays unfiltered")
}

func TestVolunteerBoardTypeIsExactMatch(t *testing.T) {
	api := &fakeDirectory{volunteers: boardFixture()}
	board := NewVolunteerBoard(api)
	require.NoError(t, board.Refresh(context.Background()))

	board.SetType("edu")
	assert.Empty(t, board.Matches(), "type is not a substring match")
}

func TestVolunteerBoardRefreshReplacesSnapshot(t *testing.T) {
	api := &fakeDirectory{volunteers: boardFixture()}
	board := NewVolunteerBoard(api)
	require.NoError(t, board.Refresh(context.Background()))

	api.volunteers = boardFixture()[:1]
	require.NoError(t, board.Refresh(context.Background()))

	assert.Equal(t, []string{"v1"}, ids(board.Snapshot()))
	assert.Equal(t, 2, api.volunteerCalls)
}
