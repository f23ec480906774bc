package client

import (
	"context"
	"fmt"
	"strings"
)

const (
	cdnBaseURL       = "https://cdn.discordapp.com"
	defaultAvatarURL = cdnBaseURL + "/embed/avatars/0.png"
)

// User is the dashboard's view of a Discord account. Guilds is populated by
// FetchGuilds, not eagerly embedded.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
	Bot      bool   `json:"bot"`
	Admin    bool   `json:"admin"`

	Guilds []*Guild `json:"-"`

	c *Client
}

// Me fetches the authenticated user. A 403 means no session is active.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var u User
	if err := c.Get(ctx, "users/@me", &u); err != nil {
		return nil, err
	}
	u.c = c
	return &u, nil
}

// UserByID fetches an arbitrary user.
func (c *Client) UserByID(ctx context.Context, id string) (*User, error) {
	var u User
	if err := c.Get(ctx, "users/"+id, &u); err != nil {
		return nil, err
	}
	u.c = c
	return &u, nil
}

// FetchGuilds loads the caller's guild list and attaches it to the user.
// Concurrent calls each issue their own request; there is no in-flight
// de-duplication.
func (u *User) FetchGuilds(ctx context.Context) error {
	var guilds []*Guild
	if err := u.c.Get(ctx, "users/@me/guilds", &guilds); err != nil {
		return err
	}
	for _, g := range guilds {
		g.c = u.c
	}
	u.Guilds = guilds
	return nil
}

// AvatarURL resolves the CDN asset for the user's avatar. Animated avatars
// carry an "a_" hash prefix and resolve to a gif; everything else is png.
func (u *User) AvatarURL() string {
	if u.Avatar == "" {
		return defaultAvatarURL
	}
	ext := "png"
	if strings.HasPrefix(u.Avatar, "a_") {
		ext = "gif"
	}
	return fmt.Sprintf("%s/avatars/%s/%s.%s", cdnBaseURL, u.ID, u.Avatar, ext)
}
