package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lolobelaiba-droid/graduation-guardian/handlers"
	"github.com/lolobelaiba-droid/graduation-guardian/middleware"
)

func CertificateRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	certificates := api.Group("/certificates", middleware.Protected())
	certificates.Get("", handlers.ListCertificates)
	certificates.Post("", handlers.CreateCertificate)
	certificates.Get("/search", handlers.SearchCertificates)
	certificates.Post("/import", handlers.ImportCertificates)
	certificates.Get("/export", handlers.ExportCertificates)
	certificates.Post("/assign-numbers", handlers.AssignCertificateNumbers)
	certificates.Get("/:id", handlers.GetCertificate)
	certificates.Put("/:id", handlers.UpdateCertificate)
	certificates.Delete("/:id", handlers.DeleteCertificate)
	certificates.Get("/:id/pdf", handlers.RenderCertificate)

	render := api.Group("/render", middleware.Protected())
	render.Post("", handlers.RenderCertificates)
}
