package httpx

import (
	"context"
	"errors"
	"time"

	domainauth "github.com/linkpilot/linkpilot-api/internal/domain/auth"
	"github.com/linkpilot/linkpilot-api/internal/service"
)

// stubAuthService is a minimal AuthServiceInterface for handler and router
// tests. Sessions maps cookie values onto sessions; anything else is rejected.
type stubAuthService struct {
	Sessions map[string]*domainauth.Session

	BeginLoginFunc    func(ctx context.Context, redirectURL string) (*service.BeginLoginResult, error)
	CompleteLoginFunc func(ctx context.Context, input service.CompleteLoginInput) (*service.CompleteLoginResult, error)
	LogoutCalls       []string
}

func newStubAuthService() *stubAuthService {
	return &stubAuthService{Sessions: make(map[string]*domainauth.Session)}
}

// addSession registers a session under the given cookie value and returns it.
func (s *stubAuthService) addSession(id string, role domainauth.Role) *domainauth.Session {
	session := &domainauth.Session{
		ID:        id,
		UserID:    "user-" + id,
		Email:     "user@linkpilot.io",
		Role:      role,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	s.Sessions[id] = session
	return session
}

func (s *stubAuthService) BeginLogin(ctx context.Context, redirectURL string) (*service.BeginLoginResult, error) {
	if s.BeginLoginFunc != nil {
		return s.BeginLoginFunc(ctx, redirectURL)
	}
	return &service.BeginLoginResult{
		AuthURL: "https://idp.example.com/authorize",
		State:   "state-1",
		Nonce:   "nonce-1",
	}, nil
}

func (s *stubAuthService) CompleteLogin(ctx context.Context, input service.CompleteLoginInput) (*service.CompleteLoginResult, error) {
	if s.CompleteLoginFunc != nil {
		return s.CompleteLoginFunc(ctx, input)
	}
	return nil, errors.New("complete login not configured")
}

func (s *stubAuthService) GetSession(_ context.Context, sessionID string) (*domainauth.Session, error) {
	if session, ok := s.Sessions[sessionID]; ok {
		return session, nil
	}
	return nil, errors.New("session not found")
}

func (s *stubAuthService) Logout(_ context.Context, sessionID string) error {
	s.LogoutCalls = append(s.LogoutCalls, sessionID)
	delete(s.Sessions, sessionID)
	return nil
}
