package ports

import (
	"context"
	"time"

	"github.com/speedboat/dashboard/internal/core/domain"
)

// ConfigChangeRecord is the persisted form of one config edit.
type ConfigChangeRecord struct {
	GuildID   string    `bson:"guild_id"`
	UserID    string    `bson:"user_id"`
	Before    string    `bson:"before"`
	After     string    `bson:"after"`
	CreatedAt time.Time `bson:"created_at"`
}

// GuildRepository persists guilds and their configuration blobs.
type GuildRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Guild, error)
	// All returns every guild the bot is in (global admin listing).
	All(ctx context.Context) ([]*domain.Guild, error)
	// AllForMember returns guilds whose web access map contains userID.
	AllForMember(ctx context.Context, userID string) ([]*domain.Guild, error)
	// UpdateConfig stores both the raw YAML text and its parsed form.
	UpdateConfig(ctx context.Context, id string, raw string, parsed map[string]any) error
	RecordConfigChange(ctx context.Context, change ConfigChangeRecord) error
	ConfigHistory(ctx context.Context, guildID string, page int, perPage int) ([]ConfigChangeRecord, error)
}
