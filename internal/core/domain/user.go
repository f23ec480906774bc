package domain

import (
	"fmt"
	"strings"
)

const (
	cdnBaseURL       = "https://cdn.discordapp.com"
	defaultAvatarURL = cdnBaseURL + "/embed/avatars/0.png"
)

// User models a Discord account known to the dashboard. Identity fields are
// immutable once loaded; Admin marks a global dashboard administrator and is
// only serialized on the /users/@me surface.
type User struct {
	ID       string `json:"id" bson:"_id"`
	Username string `json:"username" bson:"username"`
	Avatar   string `json:"avatar" bson:"avatar"`
	Bot      bool   `json:"bot" bson:"bot"`
	Admin    bool   `json:"admin,omitempty" bson:"admin"`
}

// AvatarURL resolves the CDN asset for the user's avatar. Animated avatars
// carry an "a_" hash prefix and resolve to a gif; everything else is png.
// Users without an avatar get the default embed avatar.
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
