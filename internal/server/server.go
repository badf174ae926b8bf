package server

import (
	"github.com/iamFear/mapty/internal/config"
	"github.com/iamFear/mapty/internal/mapsession"
	"github.com/iamFear/mapty/internal/stream"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	App      *fiber.App
	Cfg      config.Config
	Redis    *redis.Client
	Stream   *stream.Hub
	Sessions *mapsession.Service
}

func NewServer(cfg config.Config, redisClient *redis.Client) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	hub := stream.NewHub(redisClient)
	s := &Server{
		App:    app,
		Cfg:    cfg,
		Redis:  redisClient,
		Stream: hub,
		Sessions: mapsession.NewService(hub, mapsession.Settings{
			Zoom:        cfg.MapZoomLevel,
			PanDuration: cfg.PanDuration(),
			Strict:      cfg.StrictInvariants,
			TTL:         cfg.SessionTTL(),
			PublicURL:   cfg.PublicURL,
		}),
	}

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "sessions": s.Sessions.Len()})
	})

	mapsession.RegisterRoutes(s.App.Group("/sessions"), s.Sessions)
	stream.RegisterRoutes(s.App.Group("/stream"), s.Stream, s.Sessions.Exists)
}

// Close releases the stream hub. The redis client is owned by the caller.
func (s *Server) Close() {
	s.Stream.Close()
}
