package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hdops/turnos-admin/internal/model"
)

// memTokens is an in-memory TokenStore.
type memTokens struct {
	token string
	saved bool
}

func (m *memTokens) Token() (string, error) {
	if m.token == "" {
		return "", errors.New("no token")
	}
	return m.token, nil
}

func (m *memTokens) SaveToken(token string) error {
	m.token = token
	m.saved = true
	return nil
}

func (m *memTokens) DeleteToken() error {
	m.token = ""
	return nil
}

func loginServer(t *testing.T, status int, token string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/authentication/login", r.URL.Path)

		var req LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		w.WriteHeader(status)
		if status == http.StatusOK {
			json.NewEncoder(w).Encode(LoginResponse{Token: token, Type: "Bearer"})
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestLoginSavesTokenAndPublishesUser(t *testing.T) {
	token := signedToken(t, "Ana Souza", "ana@example.com", model.ProfileAdministrator, time.Now().Add(time.Hour))
	srv := loginServer(t, http.StatusOK, token)

	tokens := &memTokens{}
	svc := NewService(srv.URL, tokens, zerolog.Nop())

	users, cancel := svc.Subscribe()
	defer cancel()
	// Drain the replayed signed-out state.
	require.Nil(t, <-users)

	user, err := svc.Login(context.Background(), "ana@example.com", "secret")
	require.NoError(t, err)
	require.NotNil(t, user)

	assert.True(t, tokens.saved)
	assert.Equal(t, token, svc.Token())
	assert.True(t, svc.IsAuthenticated())
	assert.True(t, svc.IsAdministrator())

	published := <-users
	require.NotNil(t, published)
	assert.Equal(t, "ana@example.com", published.Email)
}

func TestLoginClassifiesStatuses(t *testing.T) {
	tests := []struct {
		status  int
		message string
	}{
		{status: http.StatusUnauthorized, message: "incorrect email or password"},
		{status: http.StatusBadRequest, message: "invalid login data"},
		{status: http.StatusForbidden, message: "access forbidden"},
		{status: http.StatusNotFound, message: "login endpoint not found"},
		{status: http.StatusInternalServerError, message: "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			srv := loginServer(t, tt.status, "")
			svc := NewService(srv.URL, &memTokens{}, zerolog.Nop())

			_, err := svc.Login(context.Background(), "ana@example.com", "wrong")

			var loginErr *LoginError
			require.ErrorAs(t, err, &loginErr)
			assert.Equal(t, tt.status, loginErr.Status)
			assert.Equal(t, tt.message, loginErr.Message)
			assert.False(t, svc.IsAuthenticated())
		})
	}
}

func TestLoginUnreachableServer(t *testing.T) {
	svc := NewService("http://127.0.0.1:1", &memTokens{}, zerolog.Nop())

	_, err := svc.Login(context.Background(), "ana@example.com", "secret")

	var loginErr *LoginError
	require.ErrorAs(t, err, &loginErr)
	assert.Equal(t, 0, loginErr.Status)
	assert.Equal(t, "server is unreachable", loginErr.Message)
}

func TestNewServiceRestoresStoredSession(t *testing.T) {
	token := signedToken(t, "Ana", "ana@example.com", model.ProfileAdministrator, time.Now().Add(time.Hour))
	svc := NewService("http://localhost", &memTokens{token: token}, zerolog.Nop())

	require.NotNil(t, svc.CurrentUser())
	assert.Equal(t, "ana@example.com", svc.CurrentUser().Email)
	assert.True(t, svc.IsAuthenticated())
}

func TestNewServiceWithExpiredTokenDoesNotLogout(t *testing.T) {
	token := signedToken(t, "Ana", "ana@example.com", model.ProfileAgent, time.Now().Add(-time.Hour))
	tokens := &memTokens{token: token}
	svc := NewService("http://localhost", tokens, zerolog.Nop())

	assert.Nil(t, svc.CurrentUser())
	assert.False(t, svc.IsAuthenticated())
	// The stored token is left for the caller to deal with; construction
	// must never delete credentials.
	assert.Equal(t, token, tokens.token)
}

func TestLogoutClearsSession(t *testing.T) {
	token := signedToken(t, "Ana", "ana@example.com", model.ProfileAgent, time.Now().Add(time.Hour))
	tokens := &memTokens{token: token}
	svc := NewService("http://localhost", tokens, zerolog.Nop())

	svc.Logout()

	assert.Empty(t, tokens.token)
	assert.Nil(t, svc.CurrentUser())
	assert.False(t, svc.IsAuthenticated())
}
