package handlers

import (
	"errors"
	"log"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/lolobelaiba-droid/graduation-guardian/fonts"
)

func ListFonts(c *fiber.Ctx) error {
	return c.JSON(svc.Fonts.Registry.Entries())
}

// GetFontBinary returns a font's TrueType binary as base64, for clients
// that embed it themselves.
func GetFontBinary(c *fiber.Ctx) error {
	name, err := url.PathUnescape(c.Params("name"))
	if err != nil {
		return badRequest(c, "Invalid font name")
	}
	e, p, err := svc.Fonts.Load(requestCtx(c), name)
	if errors.Is(err, fonts.ErrUnknownFont) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		log.Printf("⚠️ Failed to load font %s: %v", name, err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Font binary unavailable"})
	}
	if e.Builtin() {
		return c.JSON(fiber.Map{"font": e, "builtin": true})
	}
	return c.JSON(fiber.Map{"font": e, "builtin": false, "data": p.Base64()})
}
