package server

import (
	"log"
	"time"

	"jobreach-be/internal/bootstrap"
	"jobreach-be/internal/config"
	"jobreach-be/internal/pkg/serverutils"
	ws "jobreach-be/internal/websocket"
	"jobreach-be/pkg/authstate"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit:    10 * 1024 * 1024,
		ErrorHandler: serverutils.ErrorHandlerMiddleware(),
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.CorsAllowedOrigins,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, " + serverutils.GuestSessionHeader,
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization",
	}))

	app.Use(otelfiber.Middleware())

	registerRoutes(app, container)

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

func registerRoutes(app *fiber.App, c *bootstrap.Container) {
	api := app.Group("/api")

	c.AuthController.RegisterRoutes(api)
	c.OAuthController.RegisterRoutes(api)
	c.UserController.RegisterRoutes(api)

	c.GuestController.RegisterRoutes(api)
	c.LinkController.RegisterRoutes(api)

	c.ProfileController.RegisterRoutes(api)
	c.CompanyController.RegisterRoutes(api)
	c.ContactController.RegisterRoutes(api)
	c.InteractionController.RegisterRoutes(api)
	c.MessageController.RegisterRoutes(api)
	c.GenerationController.RegisterRoutes(api)
	c.PaymentController.RegisterRoutes(api)

	registerWebsocket(app, c)
}

func registerWebsocket(app *fiber.App, c *bootstrap.Container) {
	app.Use("/ws", func(ctx *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(ctx) {
			return ctx.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	app.Get("/ws", serverutils.JwtMiddleware, websocket.New(func(conn *websocket.Conn) {
		userIdStr, _ := conn.Locals("user_id").(string)
		userId, err := uuid.Parse(userIdStr)
		if err != nil {
			conn.Close()
			return
		}

		expiresAt, _ := conn.Locals("token_expires_at").(time.Time)
		if expiresAt.IsZero() {
			// Tokens without an exp claim still get a bounded identity
			// lifetime on the connection.
			expiresAt = time.Now().Add(time.Hour)
		}

		ws.ServeWs(c.WebSocketHub, conn, authstate.Identity{UserID: userId, ExpiresAt: expiresAt})
	}))
}
