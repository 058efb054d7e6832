// Package notify polls the notification list while a session is active and
// derives the unread count from the fetched window.
package notify

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/yigit/scholarsphere-cli/internal/app/models"
)

// API is the slice of the REST client the poller uses.
type API interface {
	ListNotifications(ctx context.Context, limit int) ([]models.Notification, error)
	MarkNotificationRead(ctx context.Context, notificationID string) error
}

// Config holds the polling schedule. Jitter spreads clients that were
// started together so their ticks do not align.
type Config struct {
	Interval time.Duration
	Jitter   time.Duration
	Limit    int
}

// Poller periodically re-fetches the most recent notifications. It runs
// under the session scope: Run returns as soon as that context is
// cancelled, so logout stops the timer rather than leaving it ticking
// behind an absent session.
//
// The unread count is derived from the fetched window on every poll, not
// incremented independently; unread items beyond the window are
// undercounted by design.
type Poller struct {
	mu            sync.Mutex
	api           API
	config        Config
	clock         Clock
	logger        zerolog.Logger
	notifications []models.Notification
	unread        int
}

// NewPoller creates a Poller. clock may be nil for the real clock.
func NewPoller(api API, config Config, clock Clock, logger zerolog.Logger) *Poller {
	if clock == nil {
		clock = RealClock{}
	}
	return &Poller{
		api:    api,
		config: config,
		clock:  clock,
		logger: logger,
	}
}

// Run polls immediately and then on every interval (plus jitter) until ctx
// is cancelled. A failed poll is logged and retried on the next tick; there
// is no backoff, matching the request-local error policy.
func (p *Poller) Run(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	p.Poll(ctx)

	for {
		timer := p.clock.NewTimer(p.nextDelay())
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C():
			p.Poll(ctx)
		}
	}
}

// Poll fetches the notification window once and recomputes the unread
// count. Errors leave the previous window in place.
func (p *Poller) Poll(ctx context.Context) {
	notifications, err := p.api.ListNotifications(ctx, p.config.Limit)
	if err != nil {
		p.logger.Debug().Err(err).Msg("Notification poll failed, retrying next tick")
		return
	}

	unread := 0
	for _, n := range notifications {
		if !n.Read {
			unread++
		}
	}

	p.mu.Lock()
	p.notifications = notifications
	p.unread = unread
	p.mu.Unlock()
}

// MarkRead marks one notification read on the server, then locally flips
// its flag and decrements the unread count, floored at zero.
func (p *Poller) MarkRead(ctx context.Context, notificationID string) error {
	if err := p.api.MarkNotificationRead(ctx, notificationID); err != nil {
		return err
	}

	p.mu.Lock()
	for i := range p.notifications {
		if p.notifications[i].ID == notificationID && !p.notifications[i].Read {
			p.notifications[i].Read = true
			if p.unread > 0 {
				p.unread--
			}
			break
		}
	}
	p.mu.Unlock()
	return nil
}

// Unread returns the derived unread count for the current window.
func (p *Poller) Unread() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.unread
}

// Notifications returns a copy of the current window.
func (p *Poller) Notifications() []models.Notification {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]models.Notification, len(p.notifications))
	copy(out, p.notifications)
	return out
}

// nextDelay returns the interval with jitter applied.
func (p *Poller) nextDelay() time.Duration {
	delay := p.config.Interval
	if p.config.Jitter > 0 {
		delay += time.Duration(rand.Int63n(int64(p.config.Jitter)))
	}
	return delay
}
