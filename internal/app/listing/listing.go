// Package listing implements the directory views. Every view except the
// volunteer board is server-filtered: changing a filter re-fetches the
// whole matching collection. The volunteer board filters a one-shot
// snapshot entirely client-side; the two strategies have different
// consistency properties and the asymmetry is kept on purpose (see
// volunteer.go).
package listing

import (
	"context"
	"sync"

	"github.com/yigit/scholarsphere-cli/internal/app/models"
	"github.com/yigit/scholarsphere-cli/internal/client"
)

// DirectoryAPI is the slice of the REST client the listing views use.
type DirectoryAPI interface {
	ListPosters(ctx context.Context, status models.PosterStatus, university string) ([]models.Poster, error)
	ListProfessors(ctx context.Context, filter client.ProfessorFilter) ([]models.ProfessorProfile, error)
	ListStudents(ctx context.Context, filter client.StudentFilter) ([]models.StudentProfile, error)
	ListECProfiles(ctx context.Context, filter client.ECProfileFilter) ([]models.ECProfile, error)
	ECStats(ctx context.Context) (*models.ECStats, error)
	ListVolunteerOpportunities(ctx context.Context) ([]models.VolunteerOpportunity, error)
}

// PosterList is the poster gallery view: server-filtered, whole result set.
type PosterList struct {
	mu         sync.Mutex
	api        DirectoryAPI
	status     models.PosterStatus
	university string
	posters    []models.Poster
}

// NewPosterList creates an unfiltered poster list view.
func NewPosterList(api DirectoryAPI) *PosterList {
	return &PosterList{api: api}
}

// SetFilters updates the filters and re-fetches the matching collection.
func (l *PosterList) SetFilters(ctx context.Context, status models.PosterStatus, university string) error {
	l.mu.Lock()
	l.status = status
	l.university = university
	l.mu.Unlock()
	return l.Refresh(ctx)
}

// Refresh re-fetches the collection with the current filters.
func (l *PosterList) Refresh(ctx context.Context) error {
	l.mu.Lock()
	status, university := l.status, l.university
	l.mu.Unlock()

	posters, err := l.api.ListPosters(ctx, status, university)
	if err != nil {
		return err
	}

	l.mu.Lock()
	l.posters = posters
	l.mu.Unlock()
	return nil
}

// Posters returns a copy of the current collection.
func (l *PosterList) Posters() []models.Poster {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]models.Poster, len(l.posters))
	copy(out, l.posters)
	return out
}

// ProfessorList is the professor network view: server-filtered.
type ProfessorList struct {
	mu         sync.Mutex
	api        DirectoryAPI
	filter     client.ProfessorFilter
	professors []models.ProfessorProfile
}

// NewProfessorList creates an unfiltered professor network view.
func NewProfessorList(api DirectoryAPI) *ProfessorList {
	return &ProfessorList{api: api}
}

// SetFilter updates the filter and re-fetches the matching collection.
func (l *ProfessorList) SetFilter(ctx context.Context, filter client.ProfessorFilter) error {
	l.mu.Lock()
	l.filter = filter
	l.mu.Unlock()
	return l.Refresh(ctx)
}

// Refresh re-fetches the collection with the current filter.
func (l *ProfessorList) Refresh(ctx context.Context) error {
	l.mu.Lock()
	filter := l.filter
	l.mu.Unlock()

	professors, err := l.api.ListProfessors(ctx, filter)
	if err != nil {
		return err
	}

	l.mu.Lock()
	l.professors = professors
	l.mu.Unlock()
	return nil
}

// Professors returns a copy of the current collection.
func (l *ProfessorList) Professors() []models.ProfessorProfile {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]models.ProfessorProfile, len(l.professors))
	copy(out, l.professors)
	return out
}

// StudentList is the student directory view: server-filtered.
type StudentList struct {
	mu       sync.Mutex
	api      DirectoryAPI
	filter   client.StudentFilter
	students []models.StudentProfile
}

// NewStudentList creates an unfiltered student directory view.
func NewStudentList(api DirectoryAPI) *StudentList {
	return &StudentList{api: api}
}

// SetFilter updates the filter and re-fetches the matching collection.
func (l *StudentList) SetFilter(ctx context.Context, filter client.StudentFilter) error {
	l.mu.Lock()
	l.filter = filter
	l.mu.Unlock()
	return l.Refresh(ctx)
}

// Refresh re-fetches the collection with the current filter.
func (l *StudentList) Refresh(ctx context.Context) error {
	l.mu.Lock()
	filter := l.filter
	l.mu.Unlock()

	students, err := l.api.ListStudents(ctx, filter)
	if err != nil {
		return err
	}

	l.mu.Lock()
	l.students = students
	l.mu.Unlock()
	return nil
}

// Students returns a copy of the current collection.
func (l *StudentList) Students() []models.StudentProfile {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]models.StudentProfile, len(l.students))
	copy(out, l.students)
	return out
}

// ECProfileList is the extracurricular profile view: server-filtered, with
// the aggregate stats fetched alongside.
type ECProfileList struct {
	mu       sync.Mutex
	api      DirectoryAPI
	filter   client.ECProfileFilter
	profiles []models.ECProfile
	stats    *models.ECStats
}

// NewECProfileList creates an unfiltered EC profile view.
func NewECProfileList(api DirectoryAPI) *ECProfileList {
	return &ECProfileList{api: api}
}

// SetFilter updates the filter and re-fetches the matching collection.
func (l *ECProfileList) SetFilter(ctx context.Context, filter client.ECProfileFilter) error {
	l.mu.Lock()
	l.filter = filter
	l.mu.Unlock()
	return l.Refresh(ctx)
}

// Refresh re-fetches the collection with the current filter.
func (l *ECProfileList) Refresh(ctx context.Context) error {
	l.mu.Lock()
	filter := l.filter
	l.mu.Unlock()

	profiles, err := l.api.ListECProfiles(ctx, filter)
	if err != nil {
		return err
	}

	l.mu.Lock()
	l.profiles = profiles
	l.mu.Unlock()
	return nil
}

// LoadStats fetches the aggregate stats.
func (l *ECProfileList) LoadStats(ctx context.Context) error {
	stats, err := l.api.ECStats(ctx)
	if err != nil {
		return err
	}

	l.mu.Lock()
	l.stats = stats
	l.mu.Unlock()
	return nil
}

// Profiles returns a copy of the current collection.
func (l *ECProfileList) Profiles() []models.ECProfile {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]models.ECProfile, len(l.profiles))
	copy(out, l.profiles)
	return out
}

// Stats returns the last fetched aggregate stats, if any.
func (l *ECProfileList) Stats() (models.ECStats, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stats == nil {
		return models.ECStats{}, false
	}
	return *l.stats, true
}
