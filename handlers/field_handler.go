package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lolobelaiba-droid/graduation-guardian/layout"
	"github.com/lolobelaiba-droid/graduation-guardian/services"
)

func AddTemplateField(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid template ID")
	}
	var req services.FieldInput
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Cannot parse JSON")
	}
	f, err := svc.Templates.AddField(requestCtx(c), id, req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(f)
}

func UpdateTemplateField(c *fiber.Ctx) error {
	id, ok := paramID(c, "fieldId")
	if !ok {
		return badRequest(c, "Invalid field ID")
	}
	var req services.FieldInput
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Cannot parse JSON")
	}
	f, err := svc.Templates.UpdateField(requestCtx(c), id, req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(f)
}

func DeleteTemplateField(c *fiber.Ctx) error {
	id, ok := paramID(c, "fieldId")
	if !ok {
		return badRequest(c, "Invalid field ID")
	}
	if err := svc.Templates.DeleteField(requestCtx(c), id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Field deleted"})
}

type MoveRequest struct {
	Direction string  `json:"direction" validate:"required,oneof=up down left right"`
	Step      float64 `json:"step" validate:"omitempty,gt=0,lte=100"`
}

// MoveTemplateField nudges a field, one millimetre unless step is given.
func MoveTemplateField(c *fiber.Ctx) error {
	id, ok := paramID(c, "fieldId")
	if !ok {
		return badRequest(c, "Invalid field ID")
	}
	var req MoveRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}
	dir, _ := layout.ParseDirection(req.Direction)
	if req.Step == 0 {
		req.Step = 1
	}
	f, err := svc.Templates.MoveField(requestCtx(c), id, dir, req.Step)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(f)
}

type DragRequest struct {
	X *float64 `json:"position_x" validate:"required"`
	Y *float64 `json:"position_y" validate:"required"`
}

func DragTemplateField(c *fiber.Ctx) error {
	id, ok := paramID(c, "fieldId")
	if !ok {
		return badRequest(c, "Invalid field ID")
	}
	var req DragRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}
	f, err := svc.Templates.DragField(requestCtx(c), id, *req.X, *req.Y)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(f)
}

type ResizeRequest struct {
	Width float64 `json:"field_width" validate:"required,gt=0"`
}

func ResizeTemplateField(c *fiber.Ctx) error {
	id, ok := paramID(c, "fieldId")
	if !ok {
		return badRequest(c, "Invalid field ID")
	}
	var req ResizeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}
	f, err := svc.Templates.ResizeField(requestCtx(c), id, req.Width)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(f)
}

func ToggleTemplateField(c *fiber.Ctx) error {
	id, ok := paramID(c, "fieldId")
	if !ok {
		return badRequest(c, "Invalid field ID")
	}
	f, err := svc.Templates.ToggleField(requestCtx(c), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(f)
}
