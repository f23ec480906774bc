package ports

import "context"

// EventPublisher pushes control events to the bot process.
type EventPublisher interface {
	// GuildUpdate signals that a guild's config changed and should be
	// reloaded by the bot.
	GuildUpdate(ctx context.Context, guildID string) error
}
