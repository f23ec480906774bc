package domain

import "time"

// InfractionType pairs the numeric type id stored in the database with its
// human-readable name.
type InfractionType struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Infraction type ids, in the order the moderation bot defines them.
var (
	InfractionMute     = InfractionType{1, "MUTE"}
	InfractionKick     = InfractionType{2, "KICK"}
	InfractionTempban  = InfractionType{3, "TEMPBAN"}
	InfractionSoftban  = InfractionType{4, "SOFTBAN"}
	InfractionBan      = InfractionType{5, "BAN"}
	InfractionTempmute = InfractionType{6, "TEMPMUTE"}
	InfractionUnban    = InfractionType{7, "UNBAN"}
	InfractionTemprole = InfractionType{8, "TEMPROLE"}
	InfractionWarning  = InfractionType{9, "WARNING"}
)

var infractionTypes = []InfractionType{
	InfractionMute, InfractionKick, InfractionTempban, InfractionSoftban,
	InfractionBan, InfractionTempmute, InfractionUnban, InfractionTemprole,
	InfractionWarning,
}

// InfractionTypeByID resolves a stored type id. Unknown ids keep the id and
// get an empty name rather than failing the whole listing.
func InfractionTypeByID(id int) InfractionType {
	for _, t := range infractionTypes {
		if t.ID == id {
			return t
		}
	}
	return InfractionType{ID: id}
}

// InfractionTypeByName resolves a type by its name, used by list filters.
func InfractionTypeByName(name string) (InfractionType, bool) {
	for _, t := range infractionTypes {
		if t.Name == name {
			return t, true
		}
	}
	return InfractionType{}, false
}

// Infraction is a recorded moderation action against a guild member. User is
// the moderation target and Actor the moderator; both are denormalised into
// full user objects at the API boundary.
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

// ConfigChange records one guild config edit for the history view.
type ConfigChange struct {
	User      *User     `json:"user"`
	Before    string    `json:"before"`
	After     string    `json:"after"`
	CreatedAt time.Time `json:"created_at"`
}

// MessageStat is one bucket of the per-guild message volume series.
type MessageStat struct {
	Date  time.Time `json:"date"`
	Count int64     `json:"count"`
}
