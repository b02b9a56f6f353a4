package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	"github.com/tsm98/social-mern/internal/apierr"
	"github.com/tsm98/social-mern/internal/auth"
	"github.com/tsm98/social-mern/internal/config"
	"github.com/tsm98/social-mern/internal/metrics"
	"github.com/tsm98/social-mern/internal/post"
	"github.com/tsm98/social-mern/internal/profile"
	"github.com/tsm98/social-mern/internal/store/memory"
	"github.com/tsm98/social-mern/internal/stream"
	"github.com/tsm98/social-mern/internal/user"
)

const serviceName = "social"

// Stores are the persistence backends. Nil fields get an in-memory store.
type Stores struct {
	Users    user.Store
	Posts    post.Store
	Profiles profile.Store
}

type Server struct {
	App    *fiber.App
	Cfg    config.Config
	Redis  *redis.Client
	Stream *stream.Hub
	Tokens *auth.TokenService

	Users    *user.Service
	Posts    *post.Service
	Profiles *profile.Service
}

func NewServer(cfg config.Config, stores Stores, redisClient *redis.Client) *Server {
	app := fiber.New(fiber.Config{ErrorHandler: apierr.Handler})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(metrics.Middleware(serviceName))

	stores = withDefaults(stores)
	hub := stream.NewHub(redisClient)
	users := user.NewService(stores.Users)
	posts := post.NewService(stores.Posts, users, hub)

	s := &Server{
		App:      app,
		Cfg:      cfg,
		Redis:    redisClient,
		Stream:   hub,
		Tokens:   auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL),
		Users:    users,
		Posts:    posts,
		Profiles: profile.NewService(stores.Profiles, users, posts),
	}

	registerRoutes(s)
	return s
}

// Close stops background work owned by the server.
func (s *Server) Close() {
	s.Stream.Close()
}

func withDefaults(stores Stores) Stores {
	if stores.Users == nil {
		stores.Users = memory.NewUserStore()
	}
	if stores.Posts == nil {
		stores.Posts = memory.NewPostStore()
	}
	if stores.Profiles == nil {
		stores.Profiles = memory.NewProfileStore()
	}
	return stores
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	s.App.Get("/metrics", metrics.Handler())

	gate := auth.Middleware(s.Tokens, s.Cfg.TokenHeader)

	api := s.App.Group("/api")
	user.RegisterRoutes(api.Group("/users"), s.Users)
	auth.RegisterRoutes(api.Group("/auth"), s.Users, s.Tokens, gate)
	profile.RegisterRoutes(api.Group("/profile"), s.Profiles, gate)
	post.RegisterRoutes(api.Group("/posts"), s.Posts, gate)
	stream.RegisterRoutes(api.Group("/stream"), s.Stream, gate, s.Cfg.TokenHeader)
}
