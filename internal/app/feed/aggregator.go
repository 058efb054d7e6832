// Package feed maintains the client-side state of the social feed: the
// aggregated post list with its continuation cursor, per-post like and
// comment interactions, and circle membership.
package feed

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/yigit/scholarsphere-cli/internal/app/models"
	"github.com/yigit/scholarsphere-cli/internal/client"
	"github.com/yigit/scholarsphere-cli/internal/pkg/apperrors"
)

// Source fetches feed pages. *client.Client satisfies this.
type Source interface {
	FeedPage(ctx context.Context, q client.FeedQuery) (*models.FeedPage, error)
}

// Aggregator accumulates feed pages for one selected mode. Pages are
// appended in server order; the aggregator never deduplicates or re-sorts,
// so a post moving between pages under concurrent writes can repeat across
// reset boundaries — that is the accepted contract, not a bug.
type Aggregator struct {
	mu       sync.Mutex
	source   Source
	logger   zerolog.Logger
	limit    int
	mode     models.FeedMode
	circleID string
	posts    []models.Post
	cursor   string
	hasMore  bool
	loading  bool
	fetched  bool
	// generation invalidates completions that started before the last
	// reset, so a stale page cannot land in a fresh list.
	generation uint64
}

// NewAggregator creates an Aggregator in global mode with nothing loaded.
func NewAggregator(source Source, limit int, logger zerolog.Logger) *Aggregator {
	return &Aggregator{
		source: source,
		limit:  limit,
		logger: logger,
		mode:   models.FeedModeGlobal,
	}
}

// Reset clears the accumulated posts and cursor, switches to the given
// mode (circleID only matters for circle mode), and fetches the first page.
func (a *Aggregator) Reset(ctx context.Context, mode models.FeedMode, circleID string) error {
	if !mode.IsValid() {
		return apperrors.NewCustomError(apperrors.ErrBadRequest, "unknown feed mode "+string(mode))
	}

	a.mu.Lock()
	a.generation++
	a.mode = mode
	a.circleID = circleID
	a.posts = nil
	a.cursor = ""
	a.hasMore = false
	a.fetched = false
	a.loading = false
	a.mu.Unlock()

	return a.LoadMore(ctx)
}

// LoadMore fetches the next page and appends it to the accumulated list.
// While a fetch is in flight further calls are suppressed with
// ErrLoadInFlight and issue no request. On failure the accumulated state
// is untouched and the error carries the taxonomy distinction
// (unauthenticated vs generic).
func (a *Aggregator) LoadMore(ctx context.Context) error {
	a.mu.Lock()
	if a.loading {
		a.mu.Unlock()
		return apperrors.ErrLoadInFlight
	}
	if a.fetched && !a.hasMore {
		// End of feed; nothing to request.
		a.mu.Unlock()
		return nil
	}
	a.loading = true
	generation := a.generation
	query := client.FeedQuery{
		Mode:     a.mode,
		CircleID: a.circleID,
		Cursor:   a.cursor,
		Limit:    a.limit,
	}
	a.mu.Unlock()

	page, err := a.source.FeedPage(ctx, query)

	a.mu.Lock()
	defer a.mu.Unlock()

	if generation != a.generation {
		// The feed was reset while this fetch was in flight; the page
		// belongs to a list that no longer exists.
		a.logger.Debug().Msg("Dropping stale feed page after reset")
		return nil
	}

	a.loading = false
	if err != nil {
		return err
	}

	a.posts = append(a.posts, page.Posts...)
	a.cursor = page.Cursor
	a.hasMore = page.HasMore
	a.fetched = true
	return nil
}

// Posts returns a copy of the accumulated post list in server order.
func (a *Aggregator) Posts() []models.Post {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]models.Post, len(a.posts))
	copy(out, a.posts)
	return out
}

// HasMore reports whether the server indicated another page exists.
func (a *Aggregator) HasMore() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.hasMore
}

// Mode returns the selected feed mode and circle id.
func (a *Aggregator) Mode() (models.FeedMode, string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode, a.circleID
}

// Loading reports whether a fetch is in flight.
func (a *Aggregator) Loading() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.loading
}

// OnPostCreated prepends the user's own new post so it shows immediately,
// ahead of server order. The next reset restores server order.
func (a *Aggregator) OnPostCreated(post models.Post) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.posts = append([]models.Post{post}, a.posts...)
}

// OnPostDeleted removes the matching post from the accumulated list.
// An absent id is a silent no-op.
func (a *Aggregator) OnPostDeleted(postID string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for i := range a.posts {
		if a.posts[i].ID == postID {
			a.posts = append(a.posts[:i], a.posts[i+1:]...)
			return
		}
	}
}

// UpdatePost applies fn to the accumulated copy of the post with the given
// id, if present. Interactions use this to keep like counts in sync.
func (a *Aggregator) UpdatePost(postID string, fn func(*models.Post)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for i := range a.posts {
		if a.posts[i].ID == postID {
			fn(&a.posts[i])
			return
		}
	}
}
