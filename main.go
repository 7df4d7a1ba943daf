package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"keeper/config"
	"keeper/database"
	"keeper/handlers"
	"keeper/logger"
	"keeper/middleware"
	"keeper/services"
)

func main() {
	// Load configuration
	cfg := config.GetConfig()
	log := logger.New(cfg.Production)

	// Connect to database
	db, err := database.Connect(cfg.DatabasePath)
	if err != nil {
		log.Error("failed to connect to database", "err", err)
		os.Exit(1)
	}

	clock := services.RealClock{}
	h := &handlers.Handler{
		Cfg:       cfg,
		Users:     services.NewUserService(db),
		Contacts:  services.NewContactService(db),
		Calendars: services.NewCalendarService(db, clock, log),
		Audit:     services.NewAuditService(db),
		Google:    services.NewGoogleProvider(cfg),
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Keeper",
		ErrorHandler: handlers.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} ${status} ${method} ${path} ${latency}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendURL,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	// API routes
	api := app.Group("/api")

	// Rate limiter for login endpoints (10 requests per minute per IP)
	authLimiter := limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many login attempts. Please try again later.",
			})
		},
	})

	// Public routes (with rate limiting on login)
	api.Get("/social-login/:provider", authLimiter, h.SocialLogin)
	api.Get("/social-login/:provider/callback", authLimiter, h.SocialLoginCallback)
	api.Get("/users/logout", h.Logout)

	// Protected routes
	protected := api.Group("", middleware.AuthRequired())
	protected.Get("/users/me", h.GetCurrentUser)
	protected.Get("/users", h.ListUsers)
	protected.Post("/users/:id", h.UpdateUser)
	protected.Delete("/users/:id", h.DeleteUser)

	// Contact routes
	contacts := protected.Group("/contacts")
	contacts.Get("/", h.ListContacts)
	contacts.Post("/", h.CreateContact)
	contacts.Get("/:contactId", h.GetContact)
	contacts.Post("/:contactId", h.UpdateContact)
	contacts.Delete("/:contactId", h.DeleteContact)

	// Per-contact calendar routes
	contacts.Get("/:contactId/calendars", h.ListContactCalendars)
	contacts.Post("/:contactId/calendars", h.CreateCalendar)
	contacts.Get("/:contactId/calendars/:calendarId", h.GetCalendar)
	contacts.Post("/:contactId/calendars/:calendarId", h.UpdateCalendar)
	contacts.Delete("/:contactId/calendars/:calendarId", h.DeleteCalendar)

	// User-wide calendar routes
	calendars := protected.Group("/calendars")
	calendars.Get("/", h.ListUserCalendars)
	calendars.Post("/:calendarId/completion", h.ToggleCalendarCompletion)
	calendars.Patch("/:calendarId/importance", h.ToggleCalendarImportance)

	// Audit log routes
	protected.Get("/audit/logs", h.ListAuditLogs)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info("shutting down server")
		if err := app.Shutdown(); err != nil {
			log.Error("error shutting down", "err", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	log.Info("starting keeper", "addr", addr)
	if err := app.Listen(addr); err != nil {
		log.Error("failed to start server", "err", err)
		os.Exit(1)
	}
}
