package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"
)

// genericAuthError is shown when the auth service gives no message.
const genericAuthError = "Authentication failed"

// AuthSession is an HTTP-backed auth session against an external auth
// service. Failures are kept as a displayable error until ClearError.
type AuthSession struct {
	baseURL string
	http    *http.Client

	mu     sync.Mutex
	token  string
	errMsg string
}

// NewAuthSession returns a session for the auth service at baseURL.
func NewAuthSession(baseURL string, timeout time.Duration) (*AuthSession, error) {
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid auth url %q: %w", baseURL, err)
	}
	return &AuthSession{baseURL: baseURL, http: newHTTPClient(timeout)}, nil
}

// IsAuthenticated reports whether a token was obtained.
func (s *AuthSession) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token != ""
}

// Token returns the current bearer token, if any.
func (s *AuthSession) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Register creates an account via POST /users.
func (s *AuthSession) Register(ctx context.Context, name, email, password string) error {
	return s.authenticate(ctx, "users", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
}

// Login obtains a token via POST /auth.
func (s *AuthSession) Login(ctx context.Context, email, password string) error {
	return s.authenticate(ctx, "auth", map[string]string{
		"email":    email,
		"password": password,
	})
}

// Logout drops the token. The remote service keeps no session state.
func (s *AuthSession) Logout(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}

// Error returns the last failure message, or "".
func (s *AuthSession) Error() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

// ClearError forgets the last failure message.
func (s *AuthSession) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errMsg = ""
}

func (s *AuthSession) authenticate(ctx context.Context, path string, payload any) error {
	endpoint, err := url.JoinPath(s.baseURL, path)
	if err != nil {
		return fmt.Errorf("build url: %w", err)
	}

	body, err := doJSON(ctx, s.http, http.MethodPost, endpoint, payload)
	if err != nil {
		s.fail(err)
		return err
	}

	var out struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(body, &out); err != nil || out.Token == "" {
		err = errors.Join(errors.New("auth response has no token"), err)
		s.fail(err)
		return err
	}

	s.mu.Lock()
	s.token = out.Token
	s.errMsg = ""
	s.mu.Unlock()
	return nil
}

func (s *AuthSession) fail(err error) {
	msg := genericAuthError
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.firstMessage() != "" {
		msg = apiErr.firstMessage()
	}

	s.mu.Lock()
	s.token = ""
	s.errMsg = msg
	s.mu.Unlock()
}
