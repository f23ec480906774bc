package ports

import (
	"context"
	"time"
)

// InfractionFilter restricts a listing to records matching one column. Field
// must be one of the whitelisted filterable fields; anything else is ignored
// by the service layer before it reaches the repository.
type InfractionFilter struct {
	Field string `json:"id"`
	Value string `json:"value"`
}

// InfractionSort orders a listing by one column.
type InfractionSort struct {
	Field string `json:"id"`
	Desc  bool   `json:"desc"`
}

// InfractionQuery is a validated listing request.
type InfractionQuery struct {
	Filters []InfractionFilter
	Sorts   []InfractionSort
	Page    int
	Limit   int
}

// InfractionRecord is the persisted form of an infraction; user and actor are
// stored as ids and denormalised by the service.
type InfractionRecord struct {
	ID        string     `bson:"_id"`
	GuildID   string     `bson:"guild_id"`
	UserID    string     `bson:"user_id"`
	ActorID   string     `bson:"actor_id"`
	Type      int        `bson:"type"`
	Reason    string     `bson:"reason"`
	ExpiresAt *time.Time `bson:"expires_at"`
	CreatedAt time.Time  `bson:"created_at"`
	Active    bool       `bson:"active"`
	Messaged  bool       `bson:"messaged"`
}

// InfractionRepository reads recorded moderation actions.
type InfractionRepository interface {
	List(ctx context.Context, guildID string, q InfractionQuery) ([]InfractionRecord, error)
}
