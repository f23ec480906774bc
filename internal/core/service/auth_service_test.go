package service

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/speedboat/dashboard/internal/core/domain"
	"github.com/speedboat/dashboard/internal/core/ports"
)

type stubOAuthProvider struct {
	exchangeFn func(ctx context.Context, code string) (string, error)
	identityFn func(ctx context.Context, accessToken string) (*ports.Identity, error)
}

func (s *stubOAuthProvider) AuthorizeURL(state string) string {
	return "https://discord.com/api/v10/oauth2/authorize?state=" + url.QueryEscape(state)
}
func (s *stubOAuthProvider) Exchange(ctx context.Context, code string) (string, error) {
	return s.exchangeFn(ctx, code)
}
func (s *stubOAuthProvider) Identity(ctx context.Context, accessToken string) (*ports.Identity, error) {
	return s.identityFn(ctx, accessToken)
}

type stubSessionStore struct {
	createFn func(ctx context.Context, userID string, ttl time.Duration) (string, error)
	getFn    func(ctx context.Context, sid string) (string, error)
	deleted  []string
}

func (s *stubSessionStore) Create(ctx context.Context, userID string, ttl time.Duration) (string, error) {
	return s.createFn(ctx, userID, ttl)
}
func (s *stubSessionStore) Get(ctx context.Context, sid string) (string, error) {
	return s.getFn(ctx, sid)
}
func (s *stubSessionStore) Delete(_ context.Context, sid string) error {
	s.deleted = append(s.deleted, sid)
	return nil
}

func TestLoginURL_CarriesVerifiableState(t *testing.T) {
	provider := &stubOAuthProvider{}
	svc := NewAuthService(provider, &stubUserRepo{}, &stubSessionStore{}, "secret", 0, zerolog.Nop())

	loginURL, err := svc.LoginURL()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	parsed, err := url.Parse(loginURL)
	if err != nil {
		t.Fatalf("invalid url: %v", err)
	}
	state := parsed.Query().Get("state")
	if state == "" {
		t.Fatalf("expected state in url")
	}
	if err := svc.verifyState(state); err != nil {
		t.Fatalf("state should verify: %v", err)
	}
}

func TestCallback_OpensSession(t *testing.T) {
	provider := &stubOAuthProvider{
		exchangeFn: func(ctx context.Context, code string) (string, error) {
			if code != "code123" {
				t.Fatalf("unexpected code: %s", code)
			}
			return "token123", nil
		},
		identityFn: func(ctx context.Context, accessToken string) (*ports.Identity, error) {
			if accessToken != "token123" {
				t.Fatalf("unexpected token: %s", accessToken)
			}
			return &ports.Identity{ID: "1", Username: "dejay", Avatar: "abc"}, nil
		},
	}

	var upserted *domain.User
	users := &stubUserRepo{
		upsertFn: func(ctx context.Context, user *domain.User) error {
			upserted = user
			return nil
		},
	}
	sessions := &stubSessionStore{
		createFn: func(ctx context.Context, userID string, ttl time.Duration) (string, error) {
			if userID != "1" {
				t.Fatalf("unexpected user id: %s", userID)
			}
			return "sid123", nil
		},
	}

	svc := NewAuthService(provider, users, sessions, "secret", 0, zerolog.Nop())

	state, err := svc.signState()
	if err != nil {
		t.Fatalf("sign state: %v", err)
	}

	sid, err := svc.Callback(context.Background(), "code123", state)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sid != "sid123" {
		t.Fatalf("expected sid123, got %s", sid)
	}
	if upserted == nil || upserted.Username != "dejay" {
		t.Fatalf("expected user upsert, got %+v", upserted)
	}
}

func TestCallback_RejectsForgedState(t *testing.T) {
	svc := NewAuthService(&stubOAuthProvider{}, &stubUserRepo{}, &stubSessionStore{}, "secret", 0, zerolog.Nop())
	other := NewAuthService(&stubOAuthProvider{}, &stubUserRepo{}, &stubSessionStore{}, "other-secret", 0, zerolog.Nop())

	forged, err := other.signState()
	if err != nil {
		t.Fatalf("sign state: %v", err)
	}

	_, err = svc.Callback(context.Background(), "code123", forged)
	if !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}

func TestCallback_RejectsGarbageState(t *testing.T) {
	svc := NewAuthService(&stubOAuthProvider{}, &stubUserRepo{}, &stubSessionStore{}, "secret", 0, zerolog.Nop())

	_, err := svc.Callback(context.Background(), "code123", "not-a-token")
	if !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}

func TestLogout(t *testing.T) {
	sessions := &stubSessionStore{}
	svc := NewAuthService(&stubOAuthProvider{}, &stubUserRepo{}, sessions, "secret", 0, zerolog.Nop())

	if err := svc.Logout(context.Background(), "sid123"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sessions.deleted) != 1 || sessions.deleted[0] != "sid123" {
		t.Fatalf("expected session delete, got %v", sessions.deleted)
	}

	// Logging out without a session is a no-op.
	if err := svc.Logout(context.Background(), ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sessions.deleted) != 1 {
		t.Fatalf("expected no extra deletes, got %v", sessions.deleted)
	}
}

func TestLoginURL_StateIsFresh(t *testing.T) {
	provider := &stubOAuthProvider{}
	svc := NewAuthService(provider, &stubUserRepo{}, &stubSessionStore{}, "secret", 0, zerolog.Nop())

	a, _ := svc.LoginURL()
	b, _ := svc.LoginURL()
	if !strings.Contains(a, "state=") || !strings.Contains(b, "state=") {
		t.Fatalf("expected state params")
	}
}
