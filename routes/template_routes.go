package routes

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"github.com/lolobelaiba-droid/graduation-guardian/handlers"
	"github.com/lolobelaiba-droid/graduation-guardian/middleware"
)

func TemplateRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	// The canvas socket authenticates with its first message, so it is
	// registered ahead of the JWT middleware.
	api.Get("/templates/:id/canvas/ws", handlers.CanvasUpgrade, websocket.New(handlers.ServeCanvas))

	templates := api.Group("/templates", middleware.Protected())
	templates.Get("", handlers.ListTemplates)
	templates.Post("", handlers.CreateTemplate)
	templates.Get("/:id", handlers.GetTemplate)
	templates.Put("/:id", handlers.UpdateTemplate)
	templates.Delete("/:id", handlers.DeleteTemplate)
	templates.Post("/:id/duplicate", handlers.DuplicateTemplate)
	templates.Post("/:id/background", handlers.SetTemplateBackground)
	templates.Get("/:id/preview", handlers.PreviewTemplate)
	templates.Get("/:id/preview.png", handlers.PreviewTemplatePNG)
	templates.Post("/:id/fields", handlers.AddTemplateField)

	fields := api.Group("/fields", middleware.Protected())
	fields.Put("/:fieldId", handlers.UpdateTemplateField)
	fields.Delete("/:fieldId", handlers.DeleteTemplateField)
	fields.Post("/:fieldId/move", handlers.MoveTemplateField)
	fields.Post("/:fieldId/drag", handlers.DragTemplateField)
	fields.Post("/:fieldId/resize", handlers.ResizeTemplateField)
	fields.Post("/:fieldId/toggle", handlers.ToggleTemplateField)
}
