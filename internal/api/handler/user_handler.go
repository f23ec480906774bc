package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/speedboat/dashboard/internal/core/ports"
)

type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// meResponse always carries the admin flag; the public user serialization
// never does.
type meResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
	Bot      bool   `json:"bot"`
	Admin    bool   `json:"admin"`
}

// Me returns the authenticated user.
//
// @Summary      Current user
// @Tags         users
// @Produce      json
// @Success      200  {object}  meResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/users/@me [get]
func (h *UserHandler) Me(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, meResponse{
		ID:       user.ID,
		Username: user.Username,
		Avatar:   user.Avatar,
		Bot:      user.Bot,
		Admin:    user.Admin,
	})
}

// Get returns an arbitrary user by id, without the admin flag.
//
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  domain.User
// @Failure      404  {object}  errorResponse
// @Router       /api/users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.userService.ByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// MyGuilds lists the guilds the authenticated user can see, each carrying
// the user's role on it.
//
// @Summary      Guilds for the current user
// @Tags         users
// @Produce      json
// @Success      200  {array}  domain.Guild
// @Failure      403  {object}  errorResponse
// @Router       /api/users/@me/guilds [get]
func (h *UserHandler) MyGuilds(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	guilds, err := h.userService.GuildsFor(c.Request().Context(), user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, guilds)
}
