package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lolobelaiba-droid/graduation-guardian/handlers"
	"github.com/lolobelaiba-droid/graduation-guardian/middleware"
)

func AuthRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Post("/login", handlers.LoginUser)

	users := api.Group("/users", middleware.Protected(), middleware.AdminRequired())
	users.Get("", handlers.ListUsers)
	users.Post("", handlers.CreateUser)
}
