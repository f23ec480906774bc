package client

import (
	"context"
	"fmt"
	"time"
)

// Guild is a Discord server the bot moderates. Role is the current user's
// permission on the guild, one of "admin", "editor" or "viewer". Guild
// values are re-fetched per navigation and never cached.
type Guild struct {
	ID      string `json:"id"`
	OwnerID string `json:"owner_id"`
	Name    string `json:"name"`
	Icon    string `json:"icon"`
	Splash  string `json:"splash"`
	Enabled bool   `json:"enabled"`
	Role    string `json:"role"`

	c *Client
}

// GuildByID fetches a guild the current user has access to.
func (c *Client) GuildByID(ctx context.Context, id string) (*Guild, error) {
	var g Guild
	if err := c.Get(ctx, "guilds/"+id, &g); err != nil {
		return nil, err
	}
	g.c = c
	return &g, nil
}

// Config fetches the guild's raw YAML config text.
func (g *Guild) Config(ctx context.Context) (string, error) {
	var res struct {
		Contents string `json:"contents"`
	}
	if err := g.c.Get(ctx, "guilds/"+g.ID+"/config", &res); err != nil {
		return "", err
	}
	return res.Contents, nil
}

// SetConfig persists a new config. The server does not echo the saved value;
// on success the caller treats the just-sent text as canonical. Last write
// wins, no version check.
func (g *Guild) SetConfig(ctx context.Context, config string) error {
	body := map[string]string{"config": config}
	return g.c.Post(ctx, "guilds/"+g.ID+"/config", body, nil)
}

// CanSave reports whether the current user's role permits saving the config.
// The save control is not rendered at all for viewers; enforcement still
// happens server-side.
func (g *Guild) CanSave() bool {
	return g.Role != "" && g.Role != "viewer"
}

// IconURL resolves the guild icon, falling back to the default embed avatar.
func (g *Guild) IconURL() string {
	if g.Icon == "" {
		return defaultAvatarURL
	}
	return fmt.Sprintf("%s/icons/%s/%s.png", cdnBaseURL, g.ID, g.Icon)
}

// SplashURL resolves the guild splash asset.
func (g *Guild) SplashURL() string {
	return fmt.Sprintf("%s/splashes/%s/%s.png", cdnBaseURL, g.ID, g.Splash)
}

// InfractionType pairs the numeric infraction type id with its name.
type InfractionType struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Infraction is a recorded moderation action. User is the target, Actor the
// moderator; both arrive denormalised from the API.
type Infraction struct {
	ID        string         `json:"id"`
	GuildID   string         `json:"guild_id"`
	User      *User          `json:"user"`
	Actor     *User          `json:"actor"`
	Type      InfractionType `json:"type"`
	Reason    string         `json:"reason"`
	ExpiresAt *time.Time     `json:"expires_at"`
	CreatedAt time.Time      `json:"created_at"`
	Active    bool           `json:"active"`
	Messaged  bool           `json:"messaged"`
}

// Infractions fetches the guild's infraction list (first page, server
// default page size).
func (g *Guild) Infractions(ctx context.Context) ([]*Infraction, error) {
	var out []*Infraction
	if err := g.c.Get(ctx, "guilds/"+g.ID+"/infractions", &out); err != nil {
		return nil, err
	}
	return out, nil
}
