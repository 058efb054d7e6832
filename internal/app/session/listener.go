package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// RedirectListener runs a one-shot localhost HTTP server that absorbs the
// backend's OAuth redirect. The browser client read the token and user off
// window.location; a native client gets them the same way every CLI does:
// the backend redirects to a loopback address we listen on for the
// duration of the login flow.
type RedirectListener struct {
	Port    int
	Manager *Manager
	Logger  zerolog.Logger
}

// NewState returns a fresh nonce to thread through the OAuth flow. The
// redirect must echo it back; a mismatch means the callback was not
// triggered by our login attempt and is ignored.
func NewState() string {
	return uuid.NewString()
}

// RedirectURI returns the loopback address the backend should redirect to.
func (l *RedirectListener) RedirectURI() string {
	return fmt.Sprintf("http://127.0.0.1:%d/callback", l.Port)
}

const callbackPage = `<!doctype html>
<html><body>
<p>Sign-in complete. You can close this tab and return to the terminal.</p>
</body></html>`

const callbackFailedPage = `<!doctype html>
<html><body>
<p>Sign-in failed. Return to the terminal and try again.</p>
</body></html>`

// Await serves the callback endpoint until one redirect with a matching
// state arrives, the context is cancelled, or timeout elapses. On a
// matching redirect the query is handed to Manager.AbsorbRedirect, which
// performs the login.
func (l *RedirectListener) Await(ctx context.Context, state string, timeout time.Duration) error {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	result := make(chan error, 1)

	router.GET("/callback", func(c *gin.Context) {
		if c.Query("state") != state {
			l.Logger.Warn().Msg("Callback with unexpected state, ignoring")
			c.String(http.StatusForbidden, "unexpected state")
			return
		}

		_, err := l.Manager.AbsorbRedirect(c.Request.URL.Query())
		if err != nil {
			c.Header("Content-Type", "text/html; charset=utf-8")
			c.String(http.StatusBadRequest, callbackFailedPage)
		} else {
			c.Header("Content-Type", "text/html; charset=utf-8")
			c.String(http.StatusOK, callbackPage)
		}

		// Only a matching state settles the flow, success or not.
		select {
		case result <- err:
		default:
		}
	})

	server := &http.Server{
		Addr:    fmt.Sprintf("127.0.0.1:%d", l.Port),
		Handler: router,
	}

	serveErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	var flowErr error
	select {
	case flowErr = <-result:
	case err := <-serveErr:
		flowErr = fmt.Errorf("session: callback listener failed: %w", err)
	case <-time.After(timeout):
		flowErr = fmt.Errorf("session: timed out waiting for the sign-in redirect")
	case <-ctx.Done():
		flowErr = ctx.Err()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = server.Shutdown(shutdownCtx)

	return flowErr
}
