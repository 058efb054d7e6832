package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/scholarsphere-cli/internal/app/models"
	"github.com/yigit/scholarsphere-cli/internal/pkg/apperrors"
)

func testClient(t *testing.T, handler http.Handler, credential CredentialSource) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c, err := New(server.URL, 5*time.Second, credential, zerolog.Nop())
	require.NoError(t, err)
	return c
}

func withToken(token string) CredentialSource {
	return func() (string, bool) { return token, true }
}

func TestNewRejectsRelativeBaseURL(t *testing.T) {
	_, err := New("api.scholarsphere.app", time.Second, nil, zerolog.Nop())
	assert.Error(t, err)
}

func TestRequestHeaders(t *testing.T) {
	var got http.Header
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		_ = json.NewEncoder(w).Encode(models.UserProfile{ID: "u1", Name: "Jane"})
	}), withToken("tok-1"))

	_, err := c.ResolveIdentity(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok-1", got.Get("Authorization"))
	assert.Equal(t, "application/json", got.Get("Accept"))
	assert.NotEmpty(t, got.Get("X-Request-ID"))
}

func TestAnonymousRequestOmitsAuthorization(t *testing.T) {
	var got http.Header
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		_, _ = w.Write([]byte("[]"))
	}), nil)

	_, err := c.ListVolunteerOpportunities(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got.Get("Authorization"))
}

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		target error
		detail string
	}{
		{"unauthorized", 401, `{"detail":"session expired"}`, apperrors.ErrUnauthenticated, "session expired"},
		{"forbidden", 403, `{}`, apperrors.ErrUnauthenticated, "please sign in"},
		{"not found", 404, `{"detail":"no such post"}`, apperrors.ErrResourceNotFound, "no such post"},
		{"conflict", 409, `{"detail":"already joined"}`, apperrors.ErrConflict, "already joined"},
		{"validation", 422, `{"detail":"title is required"}`, apperrors.ErrValidationRejected, "title is required"},
		{"wrapped envelope", 400, `{"error":{"message":"bad cursor"}}`, apperrors.ErrValidationRejected, "bad cursor"},
		{"server error", 500, `oops`, apperrors.ErrTransport, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}), withToken("tok"))

			_, err := c.ResolveIdentity(context.Background())
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.target)
			if tc.detail != "" {
				assert.Contains(t, err.Error(), tc.detail, "server detail surfaces verbatim")
			}
		})
	}
}

func TestTransportFailureMapsToTransportError(t *testing.T) {
	c, err := New("http://127.0.0.1:1", 500*time.Millisecond, nil, zerolog.Nop())
	require.NoError(t, err)

	_, err = c.ListCircles(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrTransport)
}

func TestBoundaryValidationRejectsIncompleteProfile(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"email":"jane@example.com"}`))
	}), withToken("tok"))

	_, err := c.ResolveIdentity(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrDecodeRejected, "a profile without id and name must not pass the boundary")
}

func TestFeedPageQueryEncoding(t *testing.T) {
	var got url.Values
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		_ = json.NewEncoder(w).Encode(models.FeedPage{
			Posts:   []models.Post{{ID: "p1"}},
			Cursor:  "c-next",
			HasMore: true,
		})
	}), withToken("tok"))

	page, err := c.FeedPage(context.Background(), FeedQuery{
		Mode:     models.FeedModeCircle,
		CircleID: "circle-7",
		Cursor:   "c-prev",
		Limit:    20,
	})
	require.NoError(t, err)

	assert.Equal(t, "circle", got.Get("mode"))
	assert.Equal(t, "circle-7", got.Get("circle_id"))
	assert.Equal(t, "c-prev", got.Get("cursor"))
	assert.Equal(t, "20", got.Get("limit"))
	assert.Equal(t, "c-next", page.Cursor)
	assert.True(t, page.HasMore)
}

func TestUploadPosterFileMultipart(t *testing.T) {
	var filename, content string
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()

		filename = header.Filename
		buf := make([]byte, header.Size)
		_, _ = file.Read(buf)
		content = string(buf)

		_ = json.NewEncoder(w).Encode(models.UploadResult{FileID: "f-1"})
	}), withToken("tok"))

	result, err := c.UploadPosterFile(context.Background(), "poster.pdf", strings.NewReader("pdf bytes"))
	require.NoError(t, err)

	assert.Equal(t, "f-1", result.FileID)
	assert.Equal(t, "poster.pdf", filename)
	assert.Equal(t, "pdf bytes", content)
}

func TestLoginRedirectURL(t *testing.T) {
	c, err := New("https://api.scholarsphere.app/v1", time.Second, nil, zerolog.Nop())
	require.NoError(t, err)

	raw := c.LoginRedirectURL("http://127.0.0.1:48752/callback", "nonce-1")
	parsed, err := url.Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, "/v1/auth/google", parsed.Path)
	assert.Equal(t, "http://127.0.0.1:48752/callback", parsed.Query().Get("redirect_uri"))
	assert.Equal(t, "nonce-1", parsed.Query().Get("state"))
}

func TestDeleteDiscardsBody(t *testing.T) {
	var method, path string
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.EscapedPath()
		w.WriteHeader(http.StatusNoContent)
	}), withToken("tok"))

	require.NoError(t, c.DeletePost(context.Background(), "p 1"))
	assert.Equal(t, http.MethodDelete, method)
	assert.Equal(t, "/social/posts/p%201", path)
}
