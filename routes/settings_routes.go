package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lolobelaiba-droid/graduation-guardian/handlers"
	"github.com/lolobelaiba-droid/graduation-guardian/middleware"
)

func SettingsRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	fonts := api.Group("/fonts", middleware.Protected())
	fonts.Get("", handlers.ListFonts)
	fonts.Get("/:name/binary", handlers.GetFontBinary)

	settings := api.Group("/settings", middleware.Protected())
	settings.Get("/date-formats", handlers.GetDateFormats)
	settings.Put("/date-formats", handlers.UpdateDateFormats)

	custom := api.Group("/custom-fields", middleware.Protected())
	custom.Get("", handlers.ListCustomFields)
	custom.Post("", handlers.CreateCustomField)
	custom.Put("/:fieldId", handlers.UpdateCustomField)
	custom.Delete("/:fieldId", handlers.DeleteCustomField)

	api.Get("/field-keys", middleware.Protected(), handlers.ListFieldKeys)
	api.Get("/activity", middleware.Protected(), handlers.ListActivity)

	uploads := api.Group("/uploads", middleware.Protected())
	uploads.Get("/signature", handlers.GenerateUploadSignature)
}
