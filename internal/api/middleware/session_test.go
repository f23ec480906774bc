package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/speedboat/dashboard/internal/core/domain"
)

type stubSessions struct {
	getFn func(ctx context.Context, sid string) (string, error)
}

func (s *stubSessions) Create(context.Context, string, time.Duration) (string, error) {
	panic("not used")
}
func (s *stubSessions) Get(ctx context.Context, sid string) (string, error) {
	return s.getFn(ctx, sid)
}
func (s *stubSessions) Delete(context.Context, string) error { return nil }

type stubUsers struct {
	findFn func(ctx context.Context, id string) (*domain.User, error)
}

func (s *stubUsers) Upsert(context.Context, *domain.User) error { panic("not used") }
func (s *stubUsers) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return s.findFn(ctx, id)
}
func (s *stubUsers) FindByIDs(context.Context, []string) (map[string]*domain.User, error) {
	panic("not used")
}

func runSession(t *testing.T, sessions *stubSessions, users *stubUsers, cookie string) (*domain.User, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/users/@me", nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: cookie})
	}
	c := e.NewContext(req, httptest.NewRecorder())

	var resolved *domain.User
	next := func(c echo.Context) error {
		resolved, _ = c.Get(ContextUserKey).(*domain.User)
		return nil
	}
	err := Session(sessions, users)(next)(c)
	return resolved, err
}

func TestSession_ResolvesUser(t *testing.T) {
	sessions := &stubSessions{
		getFn: func(ctx context.Context, sid string) (string, error) {
			if sid != "sid123" {
				t.Fatalf("unexpected sid: %s", sid)
			}
			return "1", nil
		},
	}
	users := &stubUsers{
		findFn: func(ctx context.Context, id string) (*domain.User, error) {
			return &domain.User{ID: id, Username: "dejay"}, nil
		},
	}

	user, err := runSession(t, sessions, users, "sid123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user == nil || user.Username != "dejay" {
		t.Fatalf("expected resolved user, got %+v", user)
	}
}

func TestSession_NoCookiePassesThrough(t *testing.T) {
	user, err := runSession(t, &stubSessions{}, &stubUsers{}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user != nil {
		t.Fatalf("expected no user, got %+v", user)
	}
}

func TestSession_ExpiredSessionPassesThrough(t *testing.T) {
	sessions := &stubSessions{
		getFn: func(ctx context.Context, sid string) (string, error) {
			return "", domain.ErrSessionNotFound
		},
	}

	user, err := runSession(t, sessions, &stubUsers{}, "stale")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user != nil {
		t.Fatalf("expected no user, got %+v", user)
	}
}

func TestSession_StoreFailurePropagates(t *testing.T) {
	boom := errors.New("redis down")
	sessions := &stubSessions{
		getFn: func(ctx context.Context, sid string) (string, error) {
			return "", boom
		},
	}

	_, err := runSession(t, sessions, &stubUsers{}, "sid123")
	if !errors.Is(err, boom) {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestRequireUser(t *testing.T) {
	e := echo.New()
	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	if err := RequireUser()(next)(c); !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}

	rec := httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	c.Set(ContextUserKey, &domain.User{ID: "1"})
	if err := RequireUser()(next)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
