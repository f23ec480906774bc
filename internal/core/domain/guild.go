package domain

import "fmt"

// Roles a user can hold on a single guild. The role is per-user metadata
// resolved from the guild config's web access map, not a guild-wide property.
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
	RoleViewer = "viewer"
)

// ValidRole reports whether s is a recognised guild role.
func ValidRole(s string) bool {
	return s == RoleAdmin || s == RoleEditor || s == RoleViewer
}

// Guild models a Discord server the bot moderates. Role is the requesting
// user's permission on this guild and is filled in per request; it is never
// persisted.
type Guild struct {
	ID      string `json:"id" bson:"_id"`
	OwnerID string `json:"owner_id" bson:"owner_id"`
	Name    string `json:"name" bson:"name"`
	Icon    string `json:"icon" bson:"icon"`
	Splash  string `json:"splash" bson:"splash"`
	Enabled bool   `json:"enabled" bson:"enabled"`
	Role    string `json:"role,omitempty" bson:"-"`

	// Raw YAML config text and its parsed form. Raw is the canonical
	// representation shown in the editor; Parsed exists for access checks.
	ConfigRaw string         `json:"-" bson:"config_raw"`
	Config    map[string]any `json:"-" bson:"config"`
}

// IconURL resolves the guild icon asset, falling back to the default embed
// avatar when the guild has no icon set.
func (g *Guild) IconURL() string {
	if g.Icon == "" {
		return defaultAvatarURL
	}
	return fmt.Sprintf("%s/icons/%s/%s.png", cdnBaseURL, g.ID, g.Icon)
}

// SplashURL resolves the guild splash asset. Empty when no splash is set.
func (g *Guild) SplashURL() string {
	if g.Splash == "" {
		return ""
	}
	return fmt.Sprintf("%s/splashes/%s/%s.png", cdnBaseURL, g.ID, g.Splash)
}

// WebACL extracts the web access map (user id -> role) from the parsed
// config. A missing or malformed section yields an empty map.
func (g *Guild) WebACL() map[string]string {
	return webACL(g.Config)
}

// webACL normalizes the config's web section. User ids are frequently
// written unquoted in YAML, so keys may decode as ints rather than strings.
func webACL(config map[string]any) map[string]string {
	acl := map[string]string{}
	if config == nil {
		return acl
	}
	switch web := config["web"].(type) {
	case map[string]any:
		for k, v := range web {
			if role, ok := v.(string); ok {
				acl[k] = role
			}
		}
	case map[any]any:
		for k, v := range web {
			if role, ok := v.(string); ok {
				acl[fmt.Sprint(k)] = role
			}
		}
	}
	return acl
}

// WebACLFromConfig exposes the normalization for freshly parsed config data.
func WebACLFromConfig(config map[string]any) map[string]string {
	return webACL(config)
}

// RoleFor returns the role granted to the given user id by the guild config,
// or "" when the user has no access.
func (g *Guild) RoleFor(userID string) string {
	return g.WebACL()[userID]
}
