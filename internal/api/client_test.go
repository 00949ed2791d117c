package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staticToken(token string) TokenProvider {
	return func() string { return token }
}

func TestBearerTokenInjection(t *testing.T) {
	var gotAuth, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		json.NewEncoder(w).Encode(map[string]string{"ok": "yes"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, staticToken("tok-123"), zerolog.Nop())

	var out map[string]string
	require.NoError(t, c.Get(context.Background(), "/agents", nil, &out))

	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, "application/json", gotAccept)
	assert.Equal(t, "yes", out["ok"])
}

func TestEmptyTokenSendsNoAuthorizationHeader(t *testing.T) {
	var hasAuth bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasAuth = r.Header["Authorization"]
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, staticToken(""), zerolog.Nop())
	require.NoError(t, c.Get(context.Background(), "/tiposTurno", nil, nil))

	assert.False(t, hasAuth)
}

func TestStatusErrorMapping(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, staticToken("tok"), zerolog.Nop())

	err := c.Get(context.Background(), "/teams", nil, nil)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusInternalServerError, statusErr.Status)
	assert.Equal(t, "/teams", statusErr.Path)
	assert.Equal(t, "internal server error", statusErr.UserMessage())
}

func TestUnauthorizedHookFires(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	hookCalled := false
	c := NewClient(srv.URL, staticToken("stale"), zerolog.Nop(),
		WithUnauthorizedHook(func() { hookCalled = true }))

	err := c.Get(context.Background(), "/agents", nil, nil)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusUnauthorized, statusErr.Status)
	assert.True(t, hookCalled)
	assert.Equal(t, "session expired, please sign in again", statusErr.UserMessage())
}

func TestRateLimitRetry(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		json.NewEncoder(w).Encode(map[string]int{"count": 3})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, staticToken("tok"), zerolog.Nop())

	var out map[string]int
	require.NoError(t, c.Get(context.Background(), "/dashboard/agents/online/count", nil, &out))

	assert.Equal(t, 2, attempts)
	assert.Equal(t, 3, out["count"])
}

func TestPostWithHeadersSendsBodyAndExtraHeaders(t *testing.T) {
	var gotKey, gotContentType string
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("Idempotency-Key")
		gotContentType = r.Header.Get("Content-Type")
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, staticToken("tok"), zerolog.Nop())

	err := c.PostWithHeaders(context.Background(), "/ponto/punch",
		map[string]string{"Idempotency-Key": "key-1"},
		map[string]string{"action": "ENTRADA"}, nil)
	require.NoError(t, err)

	assert.Equal(t, "key-1", gotKey)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "ENTRADA", gotBody["action"])
}
