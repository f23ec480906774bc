package ports

import (
	"context"

	"github.com/speedboat/dashboard/internal/core/domain"
)

// MessageRepository aggregates message volume for the guild stats screen.
type MessageRepository interface {
	// CountByDay buckets message counts per day over the trailing window.
	// Days without traffic are present with a zero count.
	CountByDay(ctx context.Context, guildID string, days int) ([]domain.MessageStat, error)
}
