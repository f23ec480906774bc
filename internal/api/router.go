package api

import (
	"strings"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/speedboat/dashboard/internal/api/handler"
	"github.com/speedboat/dashboard/internal/api/middleware"
	"github.com/speedboat/dashboard/internal/core/service"
	"github.com/speedboat/dashboard/internal/infrastructure/config"
	"github.com/speedboat/dashboard/internal/infrastructure/discord"
	mongodb "github.com/speedboat/dashboard/internal/infrastructure/db/mongo"
	redisdb "github.com/speedboat/dashboard/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("dashboard"))

	// --- Dependencies ---
	users := mongodb.NewUserRepository(db)
	guilds := mongodb.NewGuildRepository(db)
	infractions := mongodb.NewInfractionRepository(db)
	messages := mongodb.NewMessageRepository(db)
	sessions := redisdb.NewSessionStore(rdb)
	publisher := redisdb.NewPublisher(rdb)

	provider := discord.NewClient(discord.Config{
		ClientID:     cfg.Discord.ClientID,
		ClientSecret: cfg.Discord.ClientSecret,
		RedirectURI:  cfg.Discord.RedirectURI,
	})

	sessionTTL := time.Duration(cfg.SessionTTLHours) * time.Hour
	authService := service.NewAuthService(provider, users, sessions, cfg.StateSecret, sessionTTL, log)
	userService := service.NewUserService(users, guilds, log)
	guildService := service.NewGuildService(guilds, users, messages, publisher, log)
	infractionService := service.NewInfractionService(infractions, users, guildService, log)

	secureCookie := strings.HasPrefix(cfg.Discord.RedirectURI, "https://")
	authHandler := handler.NewAuthHandler(authService, secureCookie)
	userHandler := handler.NewUserHandler(userService)
	guildHandler := handler.NewGuildHandler(guildService, infractionService)

	sessionMW := middleware.Session(sessions, users)
	requireUser := middleware.RequireUser()

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.GET("/discord", authHandler.Login)
	auth.GET("/discord/callback", authHandler.Callback)
	auth.POST("/logout", authHandler.Logout, sessionMW)

	// --- Authenticated API ---
	apiGroup := e.Group("/api", sessionMW, requireUser)
	apiGroup.GET("/users/@me", userHandler.Me)
	apiGroup.GET("/users/@me/guilds", userHandler.MyGuilds)
	apiGroup.GET("/users/:id", userHandler.Get)
	apiGroup.GET("/guilds/:gid", guildHandler.Get)
	apiGroup.GET("/guilds/:gid/config", guildHandler.GetConfig)
	apiGroup.POST("/guilds/:gid/config", guildHandler.SetConfig)
	apiGroup.GET("/guilds/:gid/config/history", guildHandler.ConfigHistory)
	apiGroup.GET("/guilds/:gid/infractions", guildHandler.Infractions)
	apiGroup.GET("/guilds/:gid/stats/messages", guildHandler.MessageStats)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
