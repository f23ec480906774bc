package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/speedboat/dashboard/internal/api/middleware"
	"github.com/speedboat/dashboard/internal/core/domain"
)

type stubAuthService struct {
	loginURLFn func() (string, error)
	callbackFn func(ctx context.Context, code, state string) (string, error)
	logoutFn   func(ctx context.Context, sid string) error
}

func (s *stubAuthService) LoginURL() (string, error) { return s.loginURLFn() }
func (s *stubAuthService) Callback(ctx context.Context, code, state string) (string, error) {
	return s.callbackFn(ctx, code, state)
}
func (s *stubAuthService) Logout(ctx context.Context, sid string) error {
	return s.logoutFn(ctx, sid)
}

func TestAuthHandler_Login(t *testing.T) {
	svc := &stubAuthService{
		loginURLFn: func() (string, error) {
			return "https://discord.com/api/v10/oauth2/authorize?state=abc", nil
		},
	}
	handler := NewAuthHandler(svc, false)

	c, rec := newGuildContext(t, http.MethodGet, "/api/auth/discord", "", nil)
	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "https://discord.com/api/v10/oauth2/authorize?state=abc" {
		t.Fatalf("unexpected location: %s", loc)
	}
}

func TestAuthHandler_Callback_SetsSessionCookie(t *testing.T) {
	svc := &stubAuthService{
		callbackFn: func(ctx context.Context, code, state string) (string, error) {
			if code != "code123" || state != "state123" {
				t.Fatalf("unexpected code/state: %s/%s", code, state)
			}
			return "sid123", nil
		},
	}
	handler := NewAuthHandler(svc, true)

	c, rec := newGuildContext(t, http.MethodGet, "/api/auth/discord/callback?code=code123&state=state123", "", nil)
	if err := handler.Callback(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/" {
		t.Fatalf("unexpected location: %s", loc)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}
	cookie := cookies[0]
	if cookie.Name != middleware.SessionCookie || cookie.Value != "sid123" {
		t.Fatalf("unexpected cookie: %+v", cookie)
	}
	if !cookie.HttpOnly || !cookie.Secure {
		t.Fatalf("expected HttpOnly+Secure cookie, got %+v", cookie)
	}
}

func TestAuthHandler_Callback_MissingCode(t *testing.T) {
	handler := NewAuthHandler(&stubAuthService{}, false)

	c, _ := newGuildContext(t, http.MethodGet, "/api/auth/discord/callback?state=state123", "", nil)
	err := handler.Callback(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_Callback_InvalidState(t *testing.T) {
	svc := &stubAuthService{
		callbackFn: func(ctx context.Context, code, state string) (string, error) {
			return "", domain.ErrInvalidState
		},
	}
	handler := NewAuthHandler(svc, false)

	c, _ := newGuildContext(t, http.MethodGet, "/api/auth/discord/callback?code=code123&state=bad", "", nil)
	if err := handler.Callback(c); !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}

func TestAuthHandler_Logout_ExpiresCookie(t *testing.T) {
	var deleted string
	svc := &stubAuthService{
		logoutFn: func(ctx context.Context, sid string) error {
			deleted = sid
			return nil
		},
	}
	handler := NewAuthHandler(svc, false)

	c, rec := newGuildContext(t, http.MethodPost, "/api/auth/logout", "", nil)
	c.Request().AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: "sid123"})

	if err := handler.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if deleted != "sid123" {
		t.Fatalf("expected session delete, got %q", deleted)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge != -1 {
		t.Fatalf("expected expired cookie, got %+v", cookies)
	}
}

func TestAuthHandler_Logout_WithoutSession(t *testing.T) {
	handler := NewAuthHandler(&stubAuthService{}, false)

	c, rec := newGuildContext(t, http.MethodPost, "/api/auth/logout", "", nil)
	if err := handler.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
