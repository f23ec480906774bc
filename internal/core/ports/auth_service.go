package ports

import "context"

type AuthService interface {
	// LoginURL returns the Discord authorize URL carrying a freshly signed
	// state value.
	LoginURL() (string, error)
	// Callback validates the state, exchanges the code, upserts the user and
	// opens a session. Returns the new session id.
	Callback(ctx context.Context, code, state string) (string, error)
	Logout(ctx context.Context, sessionID string) error
}
