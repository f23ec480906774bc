package client

import (
	"context"
	"sync"
)

// Store holds the session state the dashboard views render from: whether the
// initial session resolution has finished, and the authenticated user (nil
// when unauthenticated).
//
// The store is an explicit object handed to its consumers rather than
// package-level state; subscribers are notified after every mutation.
type Store struct {
	c *Client

	mu     sync.Mutex
	ready  bool
	user   *User
	subs   map[int]func()
	nextID int
}

func NewStore(c *Client) *Store {
	return &Store{c: c, subs: map[int]func(){}}
}

// Subscribe registers fn to run after every state change. The returned
// function removes the subscription.
func (s *Store) Subscribe(fn func()) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Ready reports whether the initial session fetch has resolved.
func (s *Store) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ready
}

// User returns the authenticated user, or nil.
func (s *Store) User() *User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// Start resolves the current session once. On success the user is set (which
// triggers the dependent guild fetch); on any failure the store resolves to
// unauthenticated and the caller redirects to login. There is no retry and
// no periodic re-validation; staleness is only corrected by a fresh Start or
// an explicit logout.
func (s *Store) Start(ctx context.Context) error {
	user, err := s.c.Me(ctx)
	if err != nil {
		s.mu.Lock()
		s.ready = true
		s.user = nil
		s.mu.Unlock()
		s.notify()
		return err
	}
	return s.SetUser(ctx, user)
}

// SetUser installs the user and re-fetches their guild list. The fetch runs
// unconditionally, even when re-setting the same user, and concurrent calls
// each issue their own request.
func (s *Store) SetUser(ctx context.Context, user *User) error {
	if user == nil {
		s.mu.Lock()
		s.ready = true
		s.user = nil
		s.mu.Unlock()
		s.notify()
		return nil
	}

	user.c = s.c
	if err := user.FetchGuilds(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	s.ready = true
	s.user = user
	s.mu.Unlock()
	s.notify()
	return nil
}

// Logout tears down the server session and clears the cached user, so the
// next render sees the unauthenticated state rather than stale guild data.
func (s *Store) Logout(ctx context.Context) error {
	if err := s.c.Post(ctx, "auth/logout", nil, nil); err != nil {
		return err
	}
	return s.SetUser(ctx, nil)
}

func (s *Store) notify() {
	s.mu.Lock()
	fns := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
