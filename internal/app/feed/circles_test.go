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
)

type fakeCircleAPI struct {
	mu      sync.Mutex
	list    []models.Circle
	listErr error
	joinErr error
	joins   []string
	leaves  []string
}

func (f *fakeCircleAPI) ListCircles(context.Context) ([]models.Circle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]models.Circle, len(f.list))
	copy(out, f.list)
	return out, nil
}

func (f *fakeCircleAPI) JoinCircle(_ context.Context, circleID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.joins = append(f.joins, circleID)
	return f.joinErr
}

func (f *fakeCircleAPI) LeaveCircle(_ context.Context, circleID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.leaves = append(f.leaves, circleID)
	return f.joinErr
}

func TestCirclesJoinOptimistic(t *testing.T) {
	api := &fakeCircleAPI{list: []models.Circle{
		{ID: "c1", Name: "ML", MemberCount: 10},
		{ID: "c2", Name: "Bio", MemberCount: 5, IsMember: true},
	}}
	circles := NewCircles(api, zerolog.Nop())
	require.NoError(t, circles.Refresh(context.Background()))

	require.NoError(t, circles.Join(context.Background(), "c1"))

	all := circles.All()
	assert.True(t, all[0].IsMember)
	assert.Equal(t, 11, all[0].MemberCount)
	assert.Equal(t, []string{"c1"}, api.joins)

	joined := circles.Joined()
	require.Len(t, joined, 2)
}

func TestCirclesJoinRevertsOnFailure(t *testing.T) {
	api := &fakeCircleAPI{
		list:    []models.Circle{{ID: "c1", Name: "ML", MemberCount: 10}},
		joinErr: errors.New("boom"),
	}
	circles := NewCircles(api, zerolog.Nop())
	require.NoError(t, circles.Refresh(context.Background()))

	require.Error(t, circles.Join(context.Background(), "c1"))

	all := circles.All()
	assert.False(t, all[0].IsMember, "failed join reverts the optimistic flip")
	assert.Equal(t, 10, all[0].MemberCount)
}

func TestCirclesLeaveRevertsOnFailure(t *testing.T) {
	api := &fakeCircleAPI{
		list:    []models.Circle{{ID: "c1", Name: "ML", MemberCount: 10, IsMember: true}},
		joinErr: errors.New("boom"),
	}
	circles := NewCircles(api, zerolog.Nop())
	require.NoError(t, circles.Refresh(context.Background()))

	require.Error(t, circles.Leave(context.Background(), "c1"))

	all := circles.All()
	assert.True(t, all[0].IsMember)
	assert.Equal(t, 10, all[0].MemberCount)
}

func TestCirclesRefreshIsAuthoritative(t *testing.T) {
	api := &fakeCircleAPI{list: []models.Circle{{ID: "c1", Name: "ML", MemberCount: 10}}}
	circles := NewCircles(api, zerolog.Nop())
	require.NoError(t, circles.Refresh(context.Background()))
	require.NoError(t, circles.Join(context.Background(), "c1"))

	// The server did not record the join; the next refresh wins.
	require.NoError(t, circles.Refresh(context.Background()))
	all := circles.All()
	assert.False(t, all[0].IsMember)
	assert.Equal(t, 10, all[0].MemberCount)
}

func TestCirclesUnknownIDIsNoop(t *testing.T) {
	api := &fakeCircleAPI{list: []models.Circle{{ID: "c1", Name: "ML"}}}
	circles := NewCircles(api, zerolog.Nop())
	require.NoError(t, circles.Refresh(context.Background()))

	require.NoError(t, circles.Join(context.Background(), "missing"))
	assert.False(t, circles.All()[0].IsMember)
}
