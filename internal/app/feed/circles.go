package feed

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/yigit/scholarsphere-cli/internal/app/models"
)

// CircleAPI is the slice of the REST client the circle service uses.
type CircleAPI interface {
	ListCircles(ctx context.Context) ([]models.Circle, error)
	JoinCircle(ctx context.Context, circleID string) error
	LeaveCircle(ctx context.Context, circleID string) error
}

// Circles tracks circle membership. The server's membership list is the
// source of truth: Refresh replaces local state wholesale, and Join/Leave
// apply optimistic deltas that the next Refresh reconciles.
type Circles struct {
	mu      sync.Mutex
	api     CircleAPI
	logger  zerolog.Logger
	circles []models.Circle
}

// NewCircles creates the circle membership service.
func NewCircles(api CircleAPI, logger zerolog.Logger) *Circles {
	return &Circles{api: api, logger: logger}
}

// Refresh fetches the authoritative circle list, replacing any optimistic
// local state.
func (c *Circles) Refresh(ctx context.Context) error {
	circles, err := c.api.ListCircles(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.circles = circles
	c.mu.Unlock()
	return nil
}

// Join joins a circle with an optimistic membership flip, reverted if the
// request fails.
func (c *Circles) Join(ctx context.Context, circleID string) error {
	c.setMembership(circleID, true)

	if err := c.api.JoinCircle(ctx, circleID); err != nil {
		c.setMembership(circleID, false)
		c.logger.Warn().Err(err).Str("circleId", circleID).Msg("Join failed, reverted")
		return err
	}
	return nil
}

// Leave leaves a circle with an optimistic membership flip, reverted if
// the request fails.
func (c *Circles) Leave(ctx context.Context, circleID string) error {
	c.setMembership(circleID, false)

	if err := c.api.LeaveCircle(ctx, circleID); err != nil {
		c.setMembership(circleID, true)
		c.logger.Warn().Err(err).Str("circleId", circleID).Msg("Leave failed, reverted")
		return err
	}
	return nil
}

// setMembership flips the member flag and count for a circle if present.
func (c *Circles) setMembership(circleID string, member bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.circles {
		if c.circles[i].ID != circleID {
			continue
		}
		if c.circles[i].IsMember == member {
			return
		}
		c.circles[i].IsMember = member
		if member {
			c.circles[i].MemberCount++
		} else if c.circles[i].MemberCount > 0 {
			c.circles[i].MemberCount--
		}
		return
	}
}

// All returns a copy of the known circles.
func (c *Circles) All() []models.Circle {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Circle, len(c.circles))
	copy(out, c.circles)
	return out
}

// Joined returns the circles the user is (optimistically) a member of.
func (c *Circles) Joined() []models.Circle {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []models.Circle
	for _, circle := range c.circles {
		if circle.IsMember {
			out = append(out, circle)
		}
	}
	return out
}
