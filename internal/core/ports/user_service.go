package ports

import (
	"context"

	"github.com/speedboat/dashboard/internal/core/domain"
)

type UserService interface {
	ByID(ctx context.Context, id string) (*domain.User, error)
	// GuildsFor lists the guilds the user can see: every guild for global
	// admins, otherwise the guilds whose web access map grants a role.
	GuildsFor(ctx context.Context, user *domain.User) ([]*domain.Guild, error)
}
