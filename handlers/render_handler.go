package handlers

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/lolobelaiba-droid/graduation-guardian/services"
)

// RenderCertificates prints a batch into one PDF, a page per record.
func RenderCertificates(c *fiber.Ctx) error {
	var req services.RenderRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	var buf bytes.Buffer
	n, err := svc.Render.RenderBulk(requestCtx(c), &buf, req)
	if err != nil {
		return fail(c, err)
	}
	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"certificates_%s.pdf\"", req.TemplateID))
	c.Set("X-Certificate-Count", strconv.Itoa(n))
	return c.Send(buf.Bytes())
}

// RenderCertificate prints one record, with the active template of its
// category unless ?template= names one.
func RenderCertificate(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid certificate ID")
	}
	templateID := uuid.Nil
	if raw := c.Query("template"); raw != "" {
		t, err := uuid.Parse(raw)
		if err != nil {
			return badRequest(c, "Invalid template ID")
		}
		templateID = t
	}

	out, cert, err := svc.Render.RenderOne(requestCtx(c), id, templateID)
	if err != nil {
		return fail(c, err)
	}
	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", fmt.Sprintf("inline; filename=\"certificate_%s.pdf\"", cert.StudentNumber))
	return c.Send(out)
}
