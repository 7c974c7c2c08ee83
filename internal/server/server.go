package server

import (
	"log"

	"cancelflow-be/internal/bootstrap"
	"cancelflow-be/internal/config"
	"cancelflow-be/internal/pkg/serverutils"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit:    64 * 1024,
		ErrorHandler: serverutils.ErrorHandler(container.Logger),
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.App.CorsAllowedOrigins,
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization",
		AllowMethods:  "GET, POST, PUT, OPTIONS",
		ExposeHeaders: "Content-Length, Content-Type",
	}))

	if cfg.Telemetry.Enabled {
		app.Use(otelfiber.Middleware())
	}

	registerRoutes(app, cfg, container)

	return &Server{
		app:       app,
		cfg:       cfg,
		container: container,
	}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	log.Printf("Server is running on http://localhost:%s", s.cfg.App.Port)
	return s.app.Listen(":" + s.cfg.App.Port)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func registerRoutes(app *fiber.App, cfg *config.Config, c *bootstrap.Container) {
	c.HealthController.RegisterRoutes(app)

	if cfg.Auth.JWTSecret == "" {
		c.Logger.Warn("SERVER", "JWT_SECRET is empty, Bearer tokens will be rejected", nil)
	}

	api := app.Group("/api")
	c.CancellationController.RegisterRoutes(api)
	c.SessionController.RegisterRoutes(api, serverutils.SessionMiddleware(cfg.Auth.JWTSecret, cfg.Demo.UserID))
}
