package ports

import (
	"context"

	"github.com/speedboat/dashboard/internal/core/domain"
)

type GuildService interface {
	// GuildFor loads a guild and resolves the caller's role on it. Returns
	// domain.ErrGuildNotFound when the guild is unknown or grants no role.
	GuildFor(ctx context.Context, user *domain.User, guildID string) (*domain.Guild, error)
	// Config returns the guild's raw YAML config text.
	Config(ctx context.Context, user *domain.User, guildID string) (string, error)
	// SetConfig validates and persists a new config. Last write wins; there
	// is no version check.
	SetConfig(ctx context.Context, user *domain.User, guildID string, raw string) error
	ConfigHistory(ctx context.Context, user *domain.User, guildID string, page int) ([]*domain.ConfigChange, error)
	MessageStats(ctx context.Context, user *domain.User, guildID string, days int) ([]domain.MessageStat, error)
}
