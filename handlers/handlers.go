package handlers

import (
	"context"
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/lolobelaiba-droid/graduation-guardian/canvas"
	"github.com/lolobelaiba-droid/graduation-guardian/layout"
	"github.com/lolobelaiba-droid/graduation-guardian/pdfgen"
	"github.com/lolobelaiba-droid/graduation-guardian/services"
	"github.com/lolobelaiba-droid/graduation-guardian/spreadsheet"
	"github.com/lolobelaiba-droid/graduation-guardian/store"
	"github.com/lolobelaiba-droid/graduation-guardian/websocket"
)

var validate = validator.New()

var (
	svc          *services.Services
	hub          = websocket.NewHub()
	importLimits = spreadsheet.DefaultLimits
)

// Setup installs the services used by every handler. It must run before
// the routes are registered.
func Setup(s *services.Services, limits spreadsheet.Limits) {
	svc = s
	importLimits = limits
}

// fail renders err as {"error": ...} with a status matching its kind.
func fail(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, store.ErrNotFound), errors.Is(err, layout.ErrFieldNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, store.ErrConflict), errors.Is(err, canvas.ErrBusy), errors.Is(err, canvas.ErrFieldHidden):
		status = fiber.StatusConflict
	case errors.Is(err, spreadsheet.ErrFileTooLarge):
		status = fiber.StatusRequestEntityTooLarge
	case services.IsValidation(err),
		errors.Is(err, spreadsheet.ErrTooManyRows),
		errors.Is(err, spreadsheet.ErrUnsupportedFormat),
		errors.Is(err, spreadsheet.ErrNoHeader),
		errors.Is(err, pdfgen.ErrNoRecords):
		status = fiber.StatusBadRequest
	case errors.Is(err, services.ErrInvalidCredentials):
		status = fiber.StatusUnauthorized
	case errors.Is(err, services.ErrUploadDisabled), errors.Is(err, services.ErrPreviewDisabled):
		status = fiber.StatusServiceUnavailable
	}
	if status == fiber.StatusInternalServerError {
		log.Printf("🔥 %s %s: %v", c.Method(), c.Path(), err)
		return c.Status(status).JSON(fiber.Map{"error": "Internal server error"})
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

func paramID(c *fiber.Ctx, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params(name))
	return id, err == nil
}

// userID reads the user_id claim set by the JWT middleware.
func userID(c *fiber.Ctx) (uuid.UUID, bool) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return uuid.Nil, false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, false
	}
	raw, _ := claims["user_id"].(string)
	id, err := uuid.Parse(raw)
	return id, err == nil
}

// requestCtx carries the request context and the acting user down to the
// services.
func requestCtx(c *fiber.Ctx) context.Context {
	ctx := c.UserContext()
	if id, ok := userID(c); ok {
		ctx = services.WithActor(ctx, id)
	}
	return ctx
}
