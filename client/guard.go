package client

import "strings"

// Decision is the outcome of a route guard check.
type Decision interface {
	isDecision()
}

// Allow lets the route render.
type Allow struct{}

// Redirect sends the browser elsewhere instead of rendering.
type Redirect struct {
	Path string
}

func (Allow) isDecision()    {}
func (Redirect) isDecision() {}

// Guard is the route-guard predicate the router evaluates before rendering.
// Guild-scoped routes require a loaded user; evaluating the guard performs
// no requests of its own, so an unauthenticated user is bounced to /login
// without any guild-specific traffic.
func Guard(s *Store, path string) Decision {
	if !authenticatedPath(path) {
		return Allow{}
	}
	if s.User() == nil {
		return Redirect{Path: "/login"}
	}
	return Allow{}
}

func authenticatedPath(path string) bool {
	if path == "/login" {
		return false
	}
	return path == "/" || strings.HasPrefix(path, "/guilds")
}
