package ports

import "context"

// Identity is the subset of the Discord user object the dashboard keeps.
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
	Bot      bool   `json:"bot"`
}

// OAuthProvider abstracts the Discord OAuth2 + identity endpoints.
type OAuthProvider interface {
	// AuthorizeURL builds the browser redirect target for the given signed
	// state value.
	AuthorizeURL(state string) string
	// Exchange trades an authorization code for a bearer access token.
	Exchange(ctx context.Context, code string) (string, error)
	// Identity fetches /users/@me with the given access token.
	Identity(ctx context.Context, accessToken string) (*Identity, error)
}
