// Package session owns the authenticated-session lifecycle: resolving the
// persisted credential at startup, login and logout, and absorbing the
// token handed back by the external OAuth redirect.
//
// The manager is an explicitly constructed object injected into every
// consumer; there is no package-level session state. It also owns the
// session scope: a context that is cancelled on logout, so background work
// tied to the session (the notification poller) is torn down structurally
// rather than by convention.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/yigit/scholarsphere-cli/internal/app/models"
	"github.com/yigit/scholarsphere-cli/internal/pkg/apperrors"
	pkgauth "github.com/yigit/scholarsphere-cli/internal/pkg/auth"
	"github.com/yigit/scholarsphere-cli/internal/storage"
)

// State represents the session lifecycle state. Resolving is distinct from
// Anonymous so consumers do not flash a signed-out view while startup
// resolution is still in flight.
type State string

const (
	// StateResolving means startup resolution has not completed yet
	StateResolving State = "resolving"
	// StateAuthenticated means an identity is present
	StateAuthenticated State = "authenticated"
	// StateAnonymous means no identity is present
	StateAnonymous State = "anonymous"
)

// IdentityResolver verifies the current credential against the backend.
// *client.Client satisfies this.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context) (*models.UserProfile, error)
}

// Notifier receives the one-time user-facing notices the manager emits
// (signed in, signed out, sign-in failed). May be nil.
type Notifier func(message string)

// Manager owns the session state.
type Manager struct {
	mu         sync.Mutex
	state      State
	identity   *models.UserProfile
	credential string

	scopeCtx    context.Context
	scopeCancel context.CancelFunc

	store    storage.Store
	notifier Notifier
	logger   zerolog.Logger
	now      func() time.Time
}

// NewManager creates a Manager in the Resolving state. Call Resolve before
// reading the session state.
func NewManager(store storage.Store, notifier Notifier, logger zerolog.Logger) *Manager {
	m := &Manager{
		state:    StateResolving,
		store:    store,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
	// Until an identity is present the scope is already cancelled, so
	// session-bound work started early exits immediately.
	m.scopeCtx, m.scopeCancel = context.WithCancel(context.Background())
	m.scopeCancel()
	return m
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Identity returns a copy of the authenticated profile, if one is present.
func (m *Manager) Identity() (models.UserProfile, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.identity == nil {
		return models.UserProfile{}, false
	}
	return *m.identity, true
}

// Credential returns the current bearer credential, if one is present.
// This is the CredentialSource the REST client is wired with.
func (m *Manager) Credential() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.credential == "" {
		return "", false
	}
	return m.credential, true
}

// Scope returns the session-scoped context. It is cancelled the moment the
// identity becomes absent; background work that must not outlive the
// session runs under it.
func (m *Manager) Scope() context.Context {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.scopeCtx
}

// Resolve performs startup resolution: load the persisted credential and
// verify it against the backend. Any failure, network or rejection, yields
// the Anonymous state with the stale credential discarded; Resolve never
// propagates an error and never leaves the Resolving state set.
func (m *Manager) Resolve(ctx context.Context, resolver IdentityResolver) {
	credential, ok, err := m.store.Credential()
	if err != nil {
		m.logger.Warn().Err(err).Msg("Failed to read stored credential")
		m.becomeAnonymous(false)
		return
	}
	if !ok {
		m.becomeAnonymous(false)
		return
	}

	// A credential that is provably expired is dropped without a round trip.
	if pkgauth.Expired(credential, m.now()) {
		m.logger.Debug().Msg("Stored credential is expired, discarding")
		m.becomeAnonymous(true)
		return
	}

	// Stage the credential so the resolver's request carries it.
	m.mu.Lock()
	m.credential = credential
	m.mu.Unlock()

	profile, err := resolver.ResolveIdentity(ctx)
	if err != nil {
		m.logger.Debug().Err(err).Msg("Credential rejected during resolution")
		m.becomeAnonymous(true)
		return
	}

	m.mu.Lock()
	m.identity = profile
	m.state = StateAuthenticated
	m.renewScopeLocked()
	m.mu.Unlock()

	m.logger.Info().Str("userId", profile.ID).Msg("Session resolved")
}

// Login persists the credential and sets the identity. Repeating a login
// with the same identity and credential is a no-op: state is unchanged and
// no second notice is emitted.
func (m *Manager) Login(profile models.UserProfile, credential string) error {
	m.mu.Lock()
	if m.state == StateAuthenticated && m.identity != nil &&
		m.identity.ID == profile.ID && m.credential == credential {
		m.mu.Unlock()
		return nil
	}
	m.mu.Unlock()

	if err := m.store.SetCredential(credential); err != nil {
		return fmt.Errorf("session: persisting credential: %w", err)
	}

	m.mu.Lock()
	stored := profile
	m.identity = &stored
	m.credential = credential
	m.state = StateAuthenticated
	m.renewScopeLocked()
	m.mu.Unlock()

	m.notify(fmt.Sprintf("Signed in as %s", profile.Name))
	m.logger.Info().Str("userId", profile.ID).Msg("Logged in")
	return nil
}

// Logout erases the credential and clears the identity, cancelling the
// session scope. Logging out while anonymous is a no-op.
func (m *Manager) Logout() error {
	m.mu.Lock()
	wasAuthenticated := m.state == StateAuthenticated
	m.mu.Unlock()

	if err := m.store.ClearCredential(); err != nil {
		return fmt.Errorf("session: clearing credential: %w", err)
	}

	m.becomeAnonymous(false)

	if wasAuthenticated {
		m.notify("Signed out")
		m.logger.Info().Msg("Logged out")
	}
	return nil
}

// Close tears the session down at process end: the scope is cancelled so
// session-bound goroutines exit. The persisted credential is untouched.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scopeCancel()
}

// becomeAnonymous moves to the Anonymous state. When discard is set the
// persisted credential is erased as well (stale-credential path).
func (m *Manager) becomeAnonymous(discard bool) {
	if discard {
		if err := m.store.ClearCredential(); err != nil {
			m.logger.Warn().Err(err).Msg("Failed to discard stale credential")
		}
	}

	m.mu.Lock()
	m.identity = nil
	m.credential = ""
	m.state = StateAnonymous
	m.scopeCancel()
	m.mu.Unlock()
}

// renewScopeLocked replaces the session scope with a live one. Caller
// holds the mutex.
func (m *Manager) renewScopeLocked() {
	m.scopeCancel()
	m.scopeCtx, m.scopeCancel = context.WithCancel(context.Background())
}

func (m *Manager) notify(message string) {
	if m.notifier != nil {
		m.notifier(message)
	}
}

// AbsorbRedirect inspects query parameters handed back by the external
// OAuth redirect. When both `token` and `user` are present and the user
// payload parses as a profile, it behaves exactly like Login and returns a
// copy of the values with the sign-in parameters stripped, so replaying
// the location cannot replay the login. A malformed payload emits a
// non-fatal sign-in-failed notice and leaves any existing session (and the
// values) untouched.
func (m *Manager) AbsorbRedirect(values url.Values) (url.Values, error) {
	token := values.Get("token")
	rawUser := values.Get("user")
	if token == "" || rawUser == "" {
		return values, nil
	}

	var profile models.UserProfile
	if err := json.Unmarshal([]byte(rawUser), &profile); err != nil || profile.Name == "" {
		m.notify("Sign-in failed: could not read the login response")
		m.logger.Warn().Err(err).Msg("Malformed user payload on OAuth redirect")
		return values, apperrors.NewCustomError(apperrors.ErrLoginMismatch, "malformed user payload in redirect")
	}

	if err := m.Login(profile, token); err != nil {
		return values, err
	}

	stripped := url.Values{}
	for key, vals := range values {
		if key == "token" || key == "user" {
			continue
		}
		stripped[key] = vals
	}
	return stripped, nil
}
