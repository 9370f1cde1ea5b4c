package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/carevia/server/internal/config"
	"github.com/carevia/server/internal/database"
	"github.com/carevia/server/internal/handlers"
	"github.com/carevia/server/internal/routes"
	"github.com/carevia/server/internal/services"
	"github.com/carevia/server/internal/session"
	"github.com/carevia/server/internal/store"
)

func main() {
	cfg := config.Load()
	db := database.Connect(cfg.DatabaseURL)
	st := store.New(db)

	mailer, err := services.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.MailFrom)
	if err != nil {
		log.Fatalf("failed to configure mailer: %v", err)
	}

	registration := services.NewRegistrationService(st, mailer, cfg.PublicBaseURL+"/api/auth/verify", cfg.PendingTTL)
	google := services.NewGoogleLinker(st)
	sessions := session.NewManager(cfg.SessionSecret, cfg.SessionTTL, cfg.SecureCookies)

	registration.StartPendingSweeper(context.Background(), cfg.SweepInterval)

	app := fiber.New(fiber.Config{
		AppName:      "Carevia Backend",
		ErrorHandler: handlers.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New())

	routes.Register(app, routes.Deps{
		Store:        st,
		Registration: registration,
		Google:       google,
		Sessions:     sessions,
	})

	log.Printf("Starting server on :%s", cfg.AppPort)
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		log.Fatalf("fiber.Listen error: %v", err)
	}
}
