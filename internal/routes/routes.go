package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/carevia/server/internal/handlers"
	"github.com/carevia/server/internal/middleware"
	"github.com/carevia/server/internal/services"
	"github.com/carevia/server/internal/session"
	"github.com/carevia/server/internal/store"
)

// Deps carries the constructed collaborators the routes are wired with.
type Deps struct {
	Store        store.Store
	Registration *services.RegistrationService
	Google       *services.GoogleLinker
	Sessions     *session.Manager
}

// Register wires up all HTTP routes.
func Register(app *fiber.App, deps Deps) {
	authHandler := handlers.NewAuthHandler(deps.Registration, deps.Google, deps.Sessions, deps.Store.Users())
	goodsHandler := handlers.NewGoodsHandler(deps.Store.Goods())
	profileHandler := handlers.NewProfileHandler(deps.Store.Users())

	api := app.Group("/api")
	api.Use(middleware.Session(deps.Sessions))

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Get("/verify", authHandler.Verify)
	auth.Post("/login", authHandler.Login)
	auth.Post("/google", authHandler.Google)
	auth.Get("/session", authHandler.Session)
	auth.Post("/logout", authHandler.Logout)

	goods := api.Group("/goods")
	goods.Get("/", goodsHandler.List)
	goods.Post("/", middleware.RequireUser(), goodsHandler.Create)

	api.Get("/profile", middleware.RequireUser(), profileHandler.Get)
}
