package session

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}

func getCallback(t *testing.T, port int, query url.Values) *http.Response {
	t.Helper()
	target := fmt.Sprintf("http://127.0.0.1:%d/callback?%s", port, query.Encode())

	var resp *http.Response
	var err error
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		resp, err = http.Get(target)
		if err == nil {
			return resp
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("callback endpoint never came up: %v", err)
	return nil
}

func TestListenerAbsorbsMatchingRedirect(t *testing.T) {
	manager, _ := newTestManager(&fakeStore{})
	listener := &RedirectListener{
		Port:    freePort(t),
		Manager: manager,
		Logger:  zerolog.Nop(),
	}

	state := NewState()
	done := make(chan error, 1)
	go func() { done <- listener.Await(context.Background(), state, 10*time.Second) }()

	// A redirect with the wrong state is ignored and must not settle the flow.
	wrong := url.Values{"state": {"someone-else"}, "token": {"evil"}, "user": {`{"name":"Mallory"}`}}
	resp := getCallback(t, listener.Port, wrong)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, StateResolving, manager.State())

	good := url.Values{"state": {state}, "token": {"tok-1"}, "user": {`{"name":"Jane"}`}}
	resp = getCallback(t, listener.Port, good)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, <-done)
	assert.Equal(t, StateAuthenticated, manager.State())

	credential, ok := manager.Credential()
	require.True(t, ok)
	assert.Equal(t, "tok-1", credential)
}

func TestListenerMalformedRedirectSettlesWithError(t *testing.T) {
	manager, _ := newTestManager(&fakeStore{})
	listener := &RedirectListener{
		Port:    freePort(t),
		Manager: manager,
		Logger:  zerolog.Nop(),
	}

	state := NewState()
	done := make(chan error, 1)
	go func() { done <- listener.Await(context.Background(), state, 10*time.Second) }()

	bad := url.Values{"state": {state}, "token": {"tok-1"}, "user": {"{not json"}}
	resp := getCallback(t, listener.Port, bad)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	assert.Error(t, <-done)
	assert.Equal(t, StateResolving, manager.State())
}

func TestListenerTimesOut(t *testing.T) {
	manager, _ := newTestManager(&fakeStore{})
	listener := &RedirectListener{
		Port:    freePort(t),
		Manager: manager,
		Logger:  zerolog.Nop(),
	}

	err := listener.Await(context.Background(), NewState(), 50*time.Millisecond)
	assert.ErrorContains(t, err, "timed out")
}
