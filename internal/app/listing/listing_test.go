package listing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/scholarsphere-cli/internal/app/models"
	"github.com/yigit/scholarsphere-cli/internal/client"
)

// fakeDirectory serves fixed collections and records how each view queried
// it. Shared by the listing and volunteer board tests.
type fakeDirectory struct {
	posters    []models.Poster
	professors []models.ProfessorProfile
	students   []models.StudentProfile
	profiles   []models.ECProfile
	stats      *models.ECStats
	volunteers []models.VolunteerOpportunity

	posterQueries    []string
	professorFilters []client.ProfessorFilter
	studentFilters   []client.StudentFilter
	profileFilters   []client.ECProfileFilter
	volunteerCalls   int
}

func (f *fakeDirectory) ListPosters(_ context.Context, status models.PosterStatus, university string) ([]models.Poster, error) {
	f.posterQueries = append(f.posterQueries, string(status)+"/"+university)
	return f.posters, nil
}

func (f *fakeDirectory) ListProfessors(_ context.Context, filter client.ProfessorFilter) ([]models.ProfessorProfile, error) {
	f.professorFilters = append(f.professorFilters, filter)
	return f.professors, nil
}

func (f *fakeDirectory) ListStudents(_ context.Context, filter client.StudentFilter) ([]models.StudentProfile, error) {
	f.studentFilters = append(f.studentFilters, filter)
	return f.students, nil
}

func (f *fakeDirectory) ListECProfiles(_ context.Context, filter client.ECProfileFilter) ([]models.ECProfile, error) {
	f.profileFilters = append(f.profileFilters, filter)
	return f.profiles, nil
}

func (f *fakeDirectory) ECStats(context.Context) (*models.ECStats, error) {
	return f.stats, nil
}

func (f *fakeDirectory) ListVolunteerOpportunities(context.Context) ([]models.VolunteerOpportunity, error) {
	f.volunteerCalls++
	return f.volunteers, nil
}

func TestPosterListFiltersServerSide(t *testing.T) {
	api := &fakeDirectory{posters: []models.Poster{{ID: "p1", Title: "Gene Mapping"}}}
	list := NewPosterList(api)

	require.NoError(t, list.SetFilters(context.Background(), models.PosterStatusApproved, "UBC"))
	require.NoError(t, list.SetFilters(context.Background(), models.PosterStatusPending, ""))

	// Every filter change re-fetches; nothing is filtered locally.
	assert.Equal(t, []string{"approved/UBC", "pending/"}, api.posterQueries)
	require.Len(t, list.Posters(), 1)
	assert.Equal(t, "p1", list.Posters()[0].ID)
}

func TestProfessorListPassesFilterThrough(t *testing.T) {
	api := &fakeDirectory{professors: []models.ProfessorProfile{{ID: "f1", Name: "Dr. Chen"}}}
	list := NewProfessorList(api)

	filter := client.ProfessorFilter{University: "UofT", ResearchArea: "ml"}
	require.NoError(t, list.SetFilter(context.Background(), filter))

	require.Len(t, api.professorFilters, 1)
	assert.Equal(t, filter, api.professorFilters[0])
	assert.Equal(t, "Dr. Chen", list.Professors()[0].Name)
}

func TestStudentListRefreshReusesFilter(t *testing.T) {
	api := &fakeDirectory{students: []models.StudentProfile{{ID: "s1"}}}
	list := NewStudentList(api)

	require.NoError(t, list.SetFilter(context.Background(), client.StudentFilter{Program: "CS", Year: 3}))
	require.NoError(t, list.Refresh(context.Background()))

	require.Len(t, api.studentFilters, 2)
	assert.Equal(t, api.studentFilters[0], api.studentFilters[1])
}

func TestECProfileListStats(t *testing.T) {
	api := &fakeDirectory{
		profiles: []models.ECProfile{{ID: "e1", Category: "sports"}},
		stats:    &models.ECStats{TotalProfiles: 42, ByCategory: map[string]int{"sports": 12}},
	}
	list := NewECProfileList(api)

	_, ok := list.Stats()
	assert.False(t, ok, "no stats before LoadStats")

	require.NoError(t, list.SetFilter(context.Background(), client.ECProfileFilter{Category: "sports"}))
	require.NoError(t, list.LoadStats(context.Background()))

	stats, ok := list.Stats()
	require.True(t, ok)
	assert.Equal(t, 42, stats.TotalProfiles)
	assert.Equal(t, 12, stats.ByCategory["sports"])
	assert.Equal(t, "e1", list.Profiles()[0].ID)
}

func TestPosterViewableGating(t *testing.T) {
	cases := []struct {
		status   models.PosterStatus
		payment  models.PaymentState
		viewable bool
	}{
		{models.PosterStatusApproved, models.PaymentStateCompleted, true},
		{models.PosterStatusApproved, models.PaymentStatePending, false},
		{models.PosterStatusPending, models.PaymentStateCompleted, false},
		{models.PosterStatusRejected, models.PaymentStateCompleted, false},
	}
	for _, tc := range cases {
		poster := models.Poster{Status: tc.status, PaymentStatus: tc.payment}
		assert.Equal(t, tc.viewable, poster.Viewable(), "%s/%s", tc.status, tc.payment)
	}
}
