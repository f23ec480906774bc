package ports

import (
	"context"

	"github.com/speedboat/dashboard/internal/core/domain"
)

// UserRepository persists Discord accounts seen by the dashboard.
type UserRepository interface {
	// Upsert inserts the user or refreshes its identity fields. The stored
	// admin flag is never touched by an upsert.
	Upsert(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByIDs resolves a batch of ids, keyed by id. Missing ids are simply
	// absent from the result.
	FindByIDs(ctx context.Context, ids []string) (map[string]*domain.User, error)
}
