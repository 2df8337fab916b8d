package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lolobelaiba-droid/graduation-guardian/fieldvalue"
	"github.com/lolobelaiba-droid/graduation-guardian/services"
)

func GetDateFormats(c *fiber.Ctx) error {
	v, err := svc.Settings.DateFormats(requestCtx(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(v)
}

func UpdateDateFormats(c *fiber.Ctx) error {
	var req fieldvalue.DateFormatSettings
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Cannot parse JSON")
	}
	if err := svc.Settings.SetDateFormats(requestCtx(c), req); err != nil {
		return fail(c, err)
	}
	return c.JSON(req)
}

func ListCustomFields(c *fiber.Ctx) error {
	rows, err := svc.Certificates.CustomFields(requestCtx(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(rows)
}

func CreateCustomField(c *fiber.Ctx) error {
	var req services.CustomFieldInput
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Cannot parse JSON")
	}
	f, err := svc.Certificates.CreateCustomField(requestCtx(c), req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(f)
}

func UpdateCustomField(c *fiber.Ctx) error {
	id, ok := paramID(c, "fieldId")
	if !ok {
		return badRequest(c, "Invalid custom field ID")
	}
	var req services.CustomFieldInput
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Cannot parse JSON")
	}
	f, err := svc.Certificates.UpdateCustomField(requestCtx(c), id, req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(f)
}

func DeleteCustomField(c *fiber.Ctx) error {
	id, ok := paramID(c, "fieldId")
	if !ok {
		return badRequest(c, "Invalid custom field ID")
	}
	if err := svc.Certificates.DeleteCustomField(requestCtx(c), id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Custom field deleted"})
}

func ListActivity(c *fiber.Ctx) error {
	rows, err := svc.Activity.Recent(requestCtx(c), c.QueryInt("limit", 100))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(rows)
}
