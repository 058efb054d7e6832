package feed

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/yigit/scholarsphere-cli/internal/app/models"
	"github.com/yigit/scholarsphere-cli/internal/pkg/apperrors"
)

// SocialAPI is the slice of the REST client the per-post interactions use.
type SocialAPI interface {
	LikePost(ctx context.Context, postID string) error
	UnlikePost(ctx context.Context, postID string) error
	ListComments(ctx context.Context, postID string) ([]models.Comment, error)
	AddComment(ctx context.Context, postID, text string) (*models.Comment, error)
	DeleteComment(ctx context.Context, commentID string) error
}

// Interactions handles like toggles and comment threads. One like request
// may be in flight per post; a second toggle while one is outstanding is
// suppressed without touching state.
type Interactions struct {
	mu       sync.Mutex
	api      SocialAPI
	logger   zerolog.Logger
	inFlight map[string]bool
}

// NewInteractions creates an Interactions service.
func NewInteractions(api SocialAPI, logger zerolog.Logger) *Interactions {
	return &Interactions{
		api:      api,
		logger:   logger,
		inFlight: make(map[string]bool),
	}
}

// ToggleLike flips the post's liked flag and count optimistically, before
// the network call, then issues the matching like or unlike request. On
// failure the pre-toggle snapshot is restored so displayed state cannot
// drift permanently from the server.
func (i *Interactions) ToggleLike(ctx context.Context, post *models.Post) error {
	i.mu.Lock()
	if i.inFlight[post.ID] {
		i.mu.Unlock()
		return apperrors.ErrLikeInFlight
	}
	i.inFlight[post.ID] = true

	snapshotLiked := post.IsLiked
	snapshotLikes := post.Likes

	post.IsLiked = !post.IsLiked
	if post.IsLiked {
		post.Likes++
	} else if post.Likes > 0 {
		post.Likes--
	}
	liking := post.IsLiked
	i.mu.Unlock()

	var err error
	if liking {
		err = i.api.LikePost(ctx, post.ID)
	} else {
		err = i.api.UnlikePost(ctx, post.ID)
	}

	i.mu.Lock()
	delete(i.inFlight, post.ID)
	if err != nil {
		post.IsLiked = snapshotLiked
		post.Likes = snapshotLikes
	}
	i.mu.Unlock()

	if err != nil {
		i.logger.Warn().Err(err).Str("postId", post.ID).Msg("Like toggle failed, rolled back")
	}
	return err
}

// CanDeleteComment reports whether the viewer may delete the comment:
// its author, or an administrator. Advisory only — the server enforces
// the real rule; this just decides whether to offer the action.
func CanDeleteComment(viewer models.UserProfile, comment models.Comment) bool {
	return viewer.ID != "" && (viewer.ID == comment.AuthorID || viewer.UserType.IsAdmin())
}

// CommentThread holds one post's comments, newest first.
type CommentThread struct {
	mu       sync.Mutex
	api      SocialAPI
	postID   string
	comments []models.Comment
}

// NewCommentThread creates an empty thread for a post.
func NewCommentThread(api SocialAPI, postID string) *CommentThread {
	return &CommentThread{api: api, postID: postID}
}

// Load replaces the thread with the server's newest-first list.
func (t *CommentThread) Load(ctx context.Context) error {
	comments, err := t.api.ListComments(ctx, t.postID)
	if err != nil {
		return err
	}

	t.mu.Lock()
	t.comments = comments
	t.mu.Unlock()
	return nil
}

// Add submits a comment and prepends the created record to the thread.
// Text must be non-empty after trimming; no other client-side validation.
func (t *CommentThread) Add(ctx context.Context, text string) (*models.Comment, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, apperrors.ErrEmptyComment
	}

	comment, err := t.api.AddComment(ctx, t.postID, trimmed)
	if err != nil {
		return nil, err
	}

	t.mu.Lock()
	t.comments = append([]models.Comment{*comment}, t.comments...)
	t.mu.Unlock()
	return comment, nil
}

// Delete removes a comment by identifier after the advisory permission
// check. An id not present in the thread after a successful call is a
// silent no-op.
func (t *CommentThread) Delete(ctx context.Context, viewer models.UserProfile, commentID string) error {
	t.mu.Lock()
	var target *models.Comment
	for idx := range t.comments {
		if t.comments[idx].ID == commentID {
			target = &t.comments[idx]
			break
		}
	}
	if target == nil {
		t.mu.Unlock()
		return apperrors.NewResourceNotFoundError("comment not found in thread")
	}
	if !CanDeleteComment(viewer, *target) {
		t.mu.Unlock()
		return apperrors.ErrNotPermitted
	}
	t.mu.Unlock()

	if err := t.api.DeleteComment(ctx, commentID); err != nil {
		return err
	}

	t.mu.Lock()
	for idx := range t.comments {
		if t.comments[idx].ID == commentID {
			t.comments = append(t.comments[:idx], t.comments[idx+1:]...)
			break
		}
	}
	t.mu.Unlock()
	return nil
}

// Comments returns a copy of the thread, newest first.
func (t *CommentThread) Comments() []models.Comment {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]models.Comment, len(t.comments))
	copy(out, t.comments)
	return out
}
