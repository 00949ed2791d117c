package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/hdops/turnos-admin/internal/model"
)

// TokenStore is the persistent slot holding the session token.
type TokenStore interface {
	Token() (string, error)
	SaveToken(token string) error
	DeleteToken() error
}

// LoginRequest is the credentials payload sent to the backend.
type LoginRequest struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

// LoginResponse is the backend's answer to a successful login.
type LoginResponse struct {
	Token   string `json:"token"`
	Type    string `json:"type"`
	Message string `json:"message,omitempty"`
}

// LoginError carries the user-facing classification of a failed login.
// Prior session state is left untouched when it is returned.
type LoginError struct {
	Status  int
	Message string
}

func (e *LoginError) Error() string {
	return e.Message
}

// Service owns the session: it performs login/logout, answers
// authentication queries, and publishes current-user transitions.
type Service struct {
	baseURL    string
	tokens     TokenStore
	httpClient *http.Client
	stream     *userStream
	log        zerolog.Logger
	now        func() time.Time
}

// NewService creates the authentication service and derives the initial
// current-user state from any stored token. An expired or undecodable
// token clears the derived state but deliberately does not log out, so
// construction can never trigger a logout loop.
func NewService(baseURL string, tokens TokenStore, log zerolog.Logger) *Service {
	s := &Service{
		baseURL:    strings.TrimRight(baseURL, "/"),
		tokens:     tokens,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		stream:     newUserStream(),
		log:        log,
		now:        time.Now,
	}

	token, err := tokens.Token()
	if err == nil && !IsTokenExpired(token, s.now()) {
		s.stream.Publish(UserFromToken(token))
	} else {
		s.stream.Publish(nil)
	}

	return s
}

// Login authenticates against the backend. On success the token is
// persisted, decoded, and the derived user is published. On failure the
// returned error classifies the HTTP status and prior state is untouched.
func (s *Service) Login(ctx context.Context, email, senha string) (*model.User, error) {
	payload, err := json.Marshal(LoginRequest{Email: email, Senha: senha})
	if err != nil {
		return nil, fmt.Errorf("marshaling login request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost,
		s.baseURL+"/authentication/login",
		bytes.NewReader(payload),
	)
	if err != nil {
		return nil, fmt.Errorf("creating login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, &LoginError{Status: 0, Message: "server is unreachable"}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		lerr := classifyLoginStatus(resp.StatusCode)
		s.log.Warn().Int("status", resp.StatusCode).Str("email", email).
			Msg("login failed")
		return nil, lerr
	}

	var loginResp LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&loginResp); err != nil {
		return nil, fmt.Errorf("decoding login response: %w", err)
	}
	if loginResp.Token == "" {
		return nil, &LoginError{Status: resp.StatusCode, Message: "login response carried no token"}
	}

	if err := s.tokens.SaveToken(loginResp.Token); err != nil {
		return nil, fmt.Errorf("persisting session token: %w", err)
	}

	user := UserFromToken(loginResp.Token)
	s.stream.Publish(user)
	s.log.Info().Str("email", email).Msg("login succeeded")
	return user, nil
}

// classifyLoginStatus maps an HTTP status to the message shown to the user.
func classifyLoginStatus(status int) *LoginError {
	msg := "unknown error during login"
	switch status {
	case http.StatusUnauthorized:
		msg = "incorrect email or password"
	case http.StatusBadRequest:
		msg = "invalid login data"
	case http.StatusForbidden:
		msg = "access forbidden"
	case http.StatusNotFound:
		msg = "login endpoint not found"
	case http.StatusInternalServerError:
		msg = "internal server error"
	}
	return &LoginError{Status: status, Message: msg}
}

// IsAuthenticated reports whether a stored token exists and its embedded
// expiry is in the future. It is a pure query: it never logs out and never
// mutates stored state, so callers decide how to react.
func (s *Service) IsAuthenticated() bool {
	token, err := s.tokens.Token()
	if err != nil {
		return false
	}
	return !IsTokenExpired(token, s.now())
}

// Token returns the stored session token, or the empty string when absent.
func (s *Service) Token() string {
	token, err := s.tokens.Token()
	if err != nil {
		return ""
	}
	return token
}

// Logout clears the stored token and publishes a nil current user.
func (s *Service) Logout() {
	if err := s.tokens.DeleteToken(); err != nil {
		s.log.Warn().Err(err).Msg("deleting session token")
	}
	s.stream.Publish(nil)
	s.log.Info().Msg("logged out")
}

// CurrentUser returns the latest derived user, or nil when signed out.
func (s *Service) CurrentUser() *model.User {
	return s.stream.Current()
}

// Subscribe returns a stream of current-user transitions. The latest value
// is replayed to the new subscriber immediately.
func (s *Service) Subscribe() (<-chan *model.User, func()) {
	return s.stream.Subscribe()
}

// IsAdministrator reports whether the current user holds the
// ADMINISTRATOR profile.
func (s *Service) IsAdministrator() bool {
	return s.CurrentUser().IsAdministrator()
}
