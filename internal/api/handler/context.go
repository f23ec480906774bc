package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/speedboat/dashboard/internal/core/domain"
)

// currentUser extracts the user injected by the session middleware. All
// authenticated handlers sit behind RequireUser, so a missing user here means
// a route was wired without it.
func currentUser(c echo.Context) (*domain.User, error) {
	user, ok := c.Get("user").(*domain.User)
	if !ok || user == nil {
		return nil, domain.ErrNotAuthenticated
	}
	return user, nil
}
