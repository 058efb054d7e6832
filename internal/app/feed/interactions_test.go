package feed

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/scholarsphere-cli/internal/app/models"
	"github.com/yigit/scholarsphere-cli/internal/pkg/apperrors"
)

// fakeSocial records like/comment calls; a gate can hold a like request
// open so a second toggle arrives while the first is in flight.
type fakeSocial struct {
	mu       sync.Mutex
	likes    []string
	unlikes  []string
	likeErr  error
	comments []models.Comment
	added    []string
	deleted  []string

	gate    chan struct{}
	entered chan struct{}
}

func (f *fakeSocial) LikePost(_ context.Context, postID string) error {
	f.mu.Lock()
	f.likes = append(f.likes, postID)
	gate, entered := f.gate, f.entered
	err := f.likeErr
	f.mu.Unlock()

	if entered != nil {
		entered <- struct{}{}
	}
	if gate != nil {
		<-gate
	}
	return err
}

func (f *fakeSocial) UnlikePost(_ context.Context, postID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.unlikes = append(f.unlikes, postID)
	return f.likeErr
}

func (f *fakeSocial) ListComments(context.Context, string) ([]models.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.comments, nil
}

func (f *fakeSocial) AddComment(_ context.Context, _ string, text string) (*models.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.added = append(f.added, text)
	return &models.Comment{ID: "new", Text: text, AuthorID: "u1"}, nil
}

func (f *fakeSocial) DeleteComment(_ context.Context, commentID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, commentID)
	return nil
}

func TestToggleLikeOptimistic(t *testing.T) {
	api := &fakeSocial{}
	interactions := NewInteractions(api, zerolog.Nop())
	post := &models.Post{ID: "p1", Likes: 3, IsLiked: false}

	require.NoError(t, interactions.ToggleLike(context.Background(), post))
	assert.True(t, post.IsLiked)
	assert.Equal(t, 4, post.Likes)
	assert.Equal(t, []string{"p1"}, api.likes)

	require.NoError(t, interactions.ToggleLike(context.Background(), post))
	assert.False(t, post.IsLiked)
	assert.Equal(t, 3, post.Likes)
	assert.Equal(t, []string{"p1"}, api.unlikes)
}

func TestToggleLikeSuppressesSecondWhileInFlight(t *testing.T) {
	api := &fakeSocial{
		gate:    make(chan struct{}),
		entered: make(chan struct{}, 1),
	}
	interactions := NewInteractions(api, zerolog.Nop())
	post := &models.Post{ID: "p1", Likes: 0}

	done := make(chan error, 1)
	go func() { done <- interactions.ToggleLike(context.Background(), post) }()
	<-api.entered

	err := interactions.ToggleLike(context.Background(), post)
	assert.ErrorIs(t, err, apperrors.ErrLikeInFlight)

	close(api.gate)
	require.NoError(t, <-done)

	// The suppressed toggle issued no request and did not flip state twice.
	assert.Len(t, api.likes, 1)
	assert.Empty(t, api.unlikes)
	assert.True(t, post.IsLiked)
	assert.Equal(t, 1, post.Likes)
}

func TestToggleLikeRollsBackOnFailure(t *testing.T) {
	api := &fakeSocial{likeErr: errors.New("boom")}
	interactions := NewInteractions(api, zerolog.Nop())
	post := &models.Post{ID: "p1", Likes: 3, IsLiked: false}

	require.Error(t, interactions.ToggleLike(context.Background(), post))
	assert.False(t, post.IsLiked, "failed toggle restores the snapshot")
	assert.Equal(t, 3, post.Likes)

	// A failed toggle releases the in-flight slot.
	api.likeErr = nil
	require.NoError(t, interactions.ToggleLike(context.Background(), post))
	assert.True(t, post.IsLiked)
}

func TestToggleUnlikeFloorsAtZero(t *testing.T) {
	api := &fakeSocial{}
	interactions := NewInteractions(api, zerolog.Nop())
	post := &models.Post{ID: "p1", Likes: 0, IsLiked: true}

	require.NoError(t, interactions.ToggleLike(context.Background(), post))
	assert.Equal(t, 0, post.Likes, "count never goes negative on an inconsistent server value")
}

func TestCanDeleteComment(t *testing.T) {
	comment := models.Comment{ID: "c1", AuthorID: "u1"}

	assert.True(t, CanDeleteComment(models.UserProfile{ID: "u1"}, comment))
	assert.True(t, CanDeleteComment(models.UserProfile{ID: "u9", UserType: models.UserTypeAdmin}, comment))
	assert.False(t, CanDeleteComment(models.UserProfile{ID: "u2"}, comment))
	assert.False(t, CanDeleteComment(models.UserProfile{}, comment))
}

func TestCommentThreadAddTrimsAndPrepends(t *testing.T) {
	api := &fakeSocial{comments: []models.Comment{{ID: "c1", AuthorID: "u1"}}}
	thread := NewCommentThread(api, "p1")
	require.NoError(t, thread.Load(context.Background()))

	_, err := thread.Add(context.Background(), "   ")
	assert.ErrorIs(t, err, apperrors.ErrEmptyComment)
	assert.Empty(t, api.added)

	created, err := thread.Add(context.Background(), "  hello  ")
	require.NoError(t, err)
	assert.Equal(t, "hello", created.Text)

	comments := thread.Comments()
	require.Len(t, comments, 2)
	assert.Equal(t, "new", comments[0].ID, "new comment goes to the front, newest first")
}

func TestCommentThreadDeletePermission(t *testing.T) {
	api := &fakeSocial{comments: []models.Comment{
		{ID: "c1", AuthorID: "u1"},
		{ID: "c2", AuthorID: "u2"},
	}}
	thread := NewCommentThread(api, "p1")
	require.NoError(t, thread.Load(context.Background()))

	viewer := models.UserProfile{ID: "u1"}

	err := thread.Delete(context.Background(), viewer, "c2")
	assert.ErrorIs(t, err, apperrors.ErrNotPermitted)
	assert.Empty(t, api.deleted)

	require.NoError(t, thread.Delete(context.Background(), viewer, "c1"))
	assert.Equal(t, []string{"c1"}, api.deleted)
	require.Len(t, thread.Comments(), 1)
	assert.Equal(t, "c2", thread.Comments()[0].ID)

	err = thread.Delete(context.Background(), viewer, "missing")
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}
