package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
)

// fakeDashboard is a minimal in-memory dashboard API. It counts requests per
// endpoint so tests can assert exactly which network calls happened.
type fakeDashboard struct {
	srv *httptest.Server

	authenticated atomic.Bool
	meCalls       atomic.Int64
	guildCalls    atomic.Int64
	logoutCalls   atomic.Int64
}

func newFakeDashboard(t *testing.T) *fakeDashboard {
	t.Helper()
	f := &fakeDashboard{}
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/users/@me", func(w http.ResponseWriter, r *http.Request) {
		f.meCalls.Add(1)
		if !f.authenticated.Load() {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"error":"Authentication Required"}`))
			return
		}
		_, _ = w.Write([]byte(`{"id":"1","username":"dejay","avatar":"a_abc","admin":false}`))
	})
	mux.HandleFunc("GET /api/users/@me/guilds", func(w http.ResponseWriter, r *http.Request) {
		f.guildCalls.Add(1)
		_, _ = w.Write([]byte(`[{"id":"100","name":"speedboat","role":"editor"}]`))
	})
	mux.HandleFunc("POST /api/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		f.logoutCalls.Add(1)
		f.authenticated.Store(false)
		w.WriteHeader(http.StatusOK)
	})

	f.srv = httptest.NewServer(mux)
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeDashboard) client(t *testing.T) *Client {
	t.Helper()
	c, err := New(f.srv.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return c
}

func TestStore_StartAuthenticated(t *testing.T) {
	f := newFakeDashboard(t)
	f.authenticated.Store(true)
	store := NewStore(f.client(t))

	if err := store.Start(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !store.Ready() {
		t.Fatalf("expected ready store")
	}

	user := store.User()
	if user == nil || user.Username != "dejay" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if len(user.Guilds) != 1 || user.Guilds[0].Role != "editor" {
		t.Fatalf("expected guilds loaded with role, got %+v", user.Guilds)
	}
}

func TestStore_StartUnauthenticated(t *testing.T) {
	f := newFakeDashboard(t)
	store := NewStore(f.client(t))

	err := store.Start(context.Background())
	if !IsStatus(err, http.StatusForbidden) {
		t.Fatalf("expected 403, got %v", err)
	}
	if !store.Ready() || store.User() != nil {
		t.Fatalf("expected resolved unauthenticated state")
	}
	if f.guildCalls.Load() != 0 {
		t.Fatalf("no guild fetch without a user, got %d", f.guildCalls.Load())
	}
}

func TestStore_SetUserAlwaysRefetchesGuilds(t *testing.T) {
	f := newFakeDashboard(t)
	f.authenticated.Store(true)
	store := NewStore(f.client(t))

	// Two concurrent SetUser calls for the same identity each trigger their
	// own guild fetch; nothing de-duplicates in-flight requests.
	var wg sync.WaitGroup
	for range 2 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := store.SetUser(context.Background(), &User{ID: "1", Username: "dejay"}); err != nil {
				t.Errorf("set user: %v", err)
			}
		}()
	}
	wg.Wait()

	if got := f.guildCalls.Load(); got != 2 {
		t.Fatalf("expected exactly 2 guild fetches, got %d", got)
	}
}

func TestStore_SubscribersNotified(t *testing.T) {
	f := newFakeDashboard(t)
	store := NewStore(f.client(t))

	var calls int
	unsubscribe := store.Subscribe(func() { calls++ })

	if err := store.SetUser(context.Background(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected 1 notification, got %d", calls)
	}

	unsubscribe()
	if err := store.SetUser(context.Background(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected no notification after unsubscribe, got %d", calls)
	}
}

func TestStore_LogoutClearsUser(t *testing.T) {
	f := newFakeDashboard(t)
	f.authenticated.Store(true)
	store := NewStore(f.client(t))

	if err := store.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	if store.User() == nil {
		t.Fatalf("expected user before logout")
	}

	if err := store.Logout(context.Background()); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if f.logoutCalls.Load() != 1 {
		t.Fatalf("expected logout request, got %d", f.logoutCalls.Load())
	}
	if store.User() != nil {
		t.Fatalf("expected cleared user after logout")
	}
}

func TestGuard(t *testing.T) {
	f := newFakeDashboard(t)
	store := NewStore(f.client(t))

	// Unauthenticated guild routes bounce to login without issuing any
	// guild-specific requests.
	if d := Guard(store, "/guilds/100/config"); d != (Redirect{Path: "/login"}) {
		t.Fatalf("expected redirect, got %#v", d)
	}
	if d := Guard(store, "/"); d != (Redirect{Path: "/login"}) {
		t.Fatalf("expected redirect, got %#v", d)
	}
	if d := Guard(store, "/login"); d != (Allow{}) {
		t.Fatalf("login must always render, got %#v", d)
	}
	if f.guildCalls.Load() != 0 {
		t.Fatalf("guard must not issue requests, got %d", f.guildCalls.Load())
	}

	f.authenticated.Store(true)
	if err := store.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	if d := Guard(store, "/guilds/100/config"); d != (Allow{}) {
		t.Fatalf("expected allow, got %#v", d)
	}
}
