package server

import (
	"github.com/Lucky-TB/zephyrun-exp1/internal/auth"
	"github.com/Lucky-TB/zephyrun-exp1/internal/challenge"
	"github.com/Lucky-TB/zephyrun-exp1/internal/condition"
	"github.com/Lucky-TB/zephyrun-exp1/internal/config"
	"github.com/Lucky-TB/zephyrun-exp1/internal/credstore"
	"github.com/Lucky-TB/zephyrun-exp1/internal/group"
	"github.com/Lucky-TB/zephyrun-exp1/internal/profile"
	"github.com/Lucky-TB/zephyrun-exp1/internal/route"
	"github.com/Lucky-TB/zephyrun-exp1/internal/run"
	"github.com/Lucky-TB/zephyrun-exp1/internal/session"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	App      *fiber.App
	Cfg      config.Config
	DB       *pgxpool.Pool
	Redis    *redis.Client
	Hub      *session.Hub
	Sessions *session.Manager
}

func NewServer(cfg config.Config, db *pgxpool.Pool, redisClient *redis.Client) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	// Credentials land in redis when it is configured, in-process otherwise.
	creds := credstore.NewMemory()
	if redisClient != nil {
		creds = credstore.NewRedis(redisClient)
	}

	hub := session.NewHub(redisClient)
	authSvc := auth.NewService(cfg.AccessKey, db, creds, hub)

	s := &Server{
		App:      app,
		Cfg:      cfg,
		DB:       db,
		Redis:    redisClient,
		Hub:      hub,
		Sessions: session.NewManager(authSvc, hub),
	}

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	jwtMiddleware := auth.JWTMiddleware(s.Cfg.AccessKey)

	session.RegisterRoutes(s.App.Group("/auth"), s.Sessions)
	route.RegisterRoutes(s.App.Group("/routes"), route.NewService(s.DB), jwtMiddleware)
	challenge.RegisterRoutes(s.App.Group("/challenges"), challenge.NewService(s.DB), jwtMiddleware)
	run.RegisterRoutes(s.App.Group("/runs"), run.NewService(s.DB), jwtMiddleware)
	condition.RegisterRoutes(s.App.Group("/conditions"), condition.NewService(s.DB), jwtMiddleware)
	profile.RegisterRoutes(s.App.Group("/profiles"), profile.NewService(s.DB), jwtMiddleware)
	group.RegisterRoutes(s.App.Group("/groups"), group.NewService(s.DB), jwtMiddleware)
}
