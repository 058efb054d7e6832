package listing

import (
	"context"
	"strings"
	"sync"

	"github.com/yigit/scholarsphere-cli/internal/app/models"
)

// VolunteerBoard is the one view that filters client-side: Refresh fetches
// the complete unfiltered listing once, and the filter setters only change
// which subset of that snapshot Matches returns — they never touch the
// network. The board therefore reflects one fetch's snapshot until the
// next explicit Refresh, unlike the server-filtered views which reflect
// the latest data on every filter change.
type VolunteerBoard struct {
	mu       sync.Mutex
	api      DirectoryAPI
	snapshot []models.VolunteerOpportunity
	search   string
	typ      string
	location string
}

// NewVolunteerBoard creates an empty board; call Refresh to populate it.
func NewVolunteerBoard(api DirectoryAPI) *VolunteerBoard {
	return &VolunteerBoard{api: api}
}

// Refresh replaces the snapshot with a fresh unfiltered fetch.
func (b *VolunteerBoard) Refresh(ctx context.Context) error {
	opportunities, err := b.api.ListVolunteerOpportunities(ctx)
	if err != nil {
		return err
	}

	b.mu.Lock()
	b.snapshot = opportunities
	b.mu.Unlock()
	return nil
}

// SetSearch sets the free-text filter: case-insensitive substring match
// over title, organization, and description.
func (b *VolunteerBoard) SetSearch(search string) {
	b.mu.Lock()
	b.search = search
	b.mu.Unlock()
}

// SetType sets the type filter: exact match, empty matches everything.
func (b *VolunteerBoard) SetType(typ string) {
	b.mu.Lock()
	b.typ = typ
	b.mu.Unlock()
}

// SetLocation sets the location filter: case-insensitive substring match.
func (b *VolunteerBoard) SetLocation(location string) {
	b.mu.Lock()
	b.location = location
	b.mu.Unlock()
}

// Matches returns the subset of the snapshot passing all current filters.
func (b *VolunteerBoard) Matches() []models.VolunteerOpportunity {
	b.mu.Lock()
	defer b.mu.Unlock()

	var out []models.VolunteerOpportunity
	for _, opp := range b.snapshot {
		if b.matchesLocked(opp) {
			out = append(out, opp)
		}
	}
	return out
}

// Snapshot returns a copy of the unfiltered snapshot.
func (b *VolunteerBoard) Snapshot() []models.VolunteerOpportunity {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]models.VolunteerOpportunity, len(b.snapshot))
	copy(out, b.snapshot)
	return out
}

func (b *VolunteerBoard) matchesLocked(opp models.VolunteerOpportunity) bool {
	if b.search != "" {
		needle := strings.ToLower(b.search)
		if !strings.Contains(strings.ToLower(opp.Title), needle) &&
			!strings.Contains(strings.ToLower(opp.Organization), needle) &&
			!strings.Contains(strings.ToLower(opp.Description), needle) {
			return false
		}
	}

	if b.typ != "" && opp.Type != b.typ {
		return false
	}

	if b.location != "" &&
		!strings.Contains(strings.ToLower(opp.Location), strings.ToLower(b.location)) {
		return false
	}

	return true
}
