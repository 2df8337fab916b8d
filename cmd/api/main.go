package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/robfig/cron/v3"

	"github.com/lolobelaiba-droid/graduation-guardian/canvas"
	config "github.com/lolobelaiba-droid/graduation-guardian/configs"
	"github.com/lolobelaiba-droid/graduation-guardian/database"
	"github.com/lolobelaiba-droid/graduation-guardian/fonts"
	"github.com/lolobelaiba-droid/graduation-guardian/handlers"
	"github.com/lolobelaiba-droid/graduation-guardian/jobs"
	"github.com/lolobelaiba-droid/graduation-guardian/routes"
	"github.com/lolobelaiba-droid/graduation-guardian/services"
	"github.com/lolobelaiba-droid/graduation-guardian/spreadsheet"
)

const defaultFontBaseURL = "https://raw.githubusercontent.com/google/fonts/main/ofl"

func main() {
	st := database.OpenStore()
	defer st.Close()

	registry := fonts.DefaultRegistry(config.ConfigDefault("FONT_BASE_URL", defaultFontBaseURL))
	if dir := config.Config("FONT_DIR"); dir != "" {
		n, err := registry.AddDir(dir)
		if err != nil {
			log.Printf("⚠️ Failed to read fonts from %s: %v", dir, err)
		} else {
			log.Printf("✅ Registered %d local fonts from %s", n, dir)
		}
	}
	fetcher := fonts.NewHTTPFetcher(20 * time.Second)
	loader := fonts.NewLoader(registry, fonts.NewCache(), fetcher)

	opts := services.Options{
		JWTSecret:     config.Config("JWT_SECRET"),
		ImportMaxRows: config.ConfigInt("IMPORT_MAX_ROWS", spreadsheet.DefaultLimits.MaxRows),
		Images:        fetcher,
	}
	if config.ConfigBool("CHROME_PREVIEW", false) {
		opts.Rasterizer = canvas.NewRasterizer()
	}
	if url := config.Config("CLOUDINARY_URL"); url != "" {
		up, err := services.NewBackgroundUploader(url)
		if err != nil {
			log.Printf("⚠️ Cloudinary disabled: %v", err)
		} else {
			opts.Uploader = up
		}
	}
	svc := services.New(st, loader, opts)

	if err := svc.Auth.SeedAdmin(context.Background(),
		config.Config("ADMIN_EMAIL"), config.Config("ADMIN_PASSWORD"), config.Config("ADMIN_FULL_NAME")); err != nil {
		log.Fatalf("🔥 Failed to seed admin user: %v", err)
	}

	limits := spreadsheet.Limits{
		MaxBytes: int64(config.ConfigInt("IMPORT_MAX_BYTES", int(spreadsheet.DefaultLimits.MaxBytes))),
		MaxRows:  opts.ImportMaxRows,
	}
	handlers.Setup(svc, limits)

	retention := time.Duration(config.ConfigInt("ACTIVITY_RETENTION_DAYS", 90)) * 24 * time.Hour
	warm := jobs.WarmFonts(loader, fonts.DefaultArabic)
	c := cron.New()
	c.AddFunc("@daily", jobs.PruneActivity(svc.Activity, retention))
	c.AddFunc("@hourly", warm)
	go c.Start()
	go warm()
	log.Println("✅ Cron jobs scheduled successfully.")

	app := fiber.New(fiber.Config{
		Prefork:           false,
		AppName:           "Graduation Guardian",
		CaseSensitive:     true,
		StrictRouting:     true,
		EnablePrintRoutes: false,
		BodyLimit:         int(limits.MaxBytes) + 1<<20,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}

			log.Printf("[ERROR] %v | Path: %s | Method: %s", err, c.Path(), c.Method())
			return c.Status(code).JSON(fiber.Map{
				"status":  "error",
				"code":    code,
				"message": err.Error(),
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:  config.ConfigDefault("CORS_ORIGINS", "*"),
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, Sec-WebSocket-Key, Sec-WebSocket-Version",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, Content-Disposition, X-Certificate-Count",
		MaxAge:        86400,
	}))

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Africa/Algiers",
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})

	routes.AuthRoutes(app)
	routes.TemplateRoutes(app)
	routes.CertificateRoutes(app)
	routes.SettingsRoutes(app)

	port := config.ConfigDefault("PORT", "8080")
	log.Printf("✅ Server is running on port %s", port)
	if err := app.Listen(fmt.Sprintf(":%s", port)); err != nil {
		log.Fatalf("🔥 Server failed to start: %v", err)
	}
}
