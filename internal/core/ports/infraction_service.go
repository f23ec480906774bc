package ports

import (
	"context"

	"github.com/speedboat/dashboard/internal/core/domain"
)

type InfractionService interface {
	// List returns a page of infractions with user and actor denormalised.
	List(ctx context.Context, user *domain.User, guildID string, q InfractionQuery) ([]*domain.Infraction, error)
}
