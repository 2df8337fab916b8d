package handlers

import (
	"bytes"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/lolobelaiba-droid/graduation-guardian/services"
)

func ListTemplates(c *fiber.Ctx) error {
	rows, err := svc.Templates.List(requestCtx(c), c.Query("category"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(rows)
}

func CreateTemplate(c *fiber.Ctx) error {
	var req services.TemplateInput
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Cannot parse JSON")
	}
	t, fields, err := svc.Templates.Create(requestCtx(c), req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"template": t, "fields": fields})
}

func GetTemplate(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid template ID")
	}
	t, fields, err := svc.Templates.Get(requestCtx(c), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"template": t, "fields": fields})
}

func UpdateTemplate(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid template ID")
	}
	var req services.TemplateInput
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Cannot parse JSON")
	}
	t, err := svc.Templates.Update(requestCtx(c), id, req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(t)
}

func DeleteTemplate(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid template ID")
	}
	if err := svc.Templates.Delete(requestCtx(c), id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Template deleted"})
}

func DuplicateTemplate(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid template ID")
	}
	var req struct {
		Name string `json:"name" validate:"max=255"`
	}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Cannot parse JSON")
		}
	}
	t, fields, err := svc.Templates.Duplicate(requestCtx(c), id, req.Name)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"template": t, "fields": fields})
}

// SetTemplateBackground uploads the multipart "image" file to the media
// host, or stores the background_image URL given in a JSON body. A null URL
// clears the background.
func SetTemplateBackground(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid template ID")
	}
	if fh, err := c.FormFile("image"); err == nil {
		f, err := fh.Open()
		if err != nil {
			return badRequest(c, "Cannot read uploaded image")
		}
		defer f.Close()
		t, err := svc.Templates.UploadBackground(requestCtx(c), id, f)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(t)
	}

	var req struct {
		BackgroundImage *string `json:"background_image" validate:"omitempty,url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}
	t, err := svc.Templates.SetBackground(requestCtx(c), id, req.BackgroundImage)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(t)
}

func previewOptions(c *fiber.Ctx) (services.PreviewOptions, bool) {
	opts := services.PreviewOptions{
		Grid:       c.QueryBool("grid"),
		ShowHidden: c.QueryBool("show_hidden"),
	}
	if raw := c.Query("certificate"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return opts, false
		}
		opts.CertificateID = &id
	}
	if raw := c.Query("highlight"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return opts, false
		}
		opts.Highlighted = id
	}
	return opts, true
}

func PreviewTemplate(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid template ID")
	}
	opts, ok := previewOptions(c)
	if !ok {
		return badRequest(c, "Invalid preview query")
	}
	var buf bytes.Buffer
	if err := svc.Render.PreviewHTML(requestCtx(c), &buf, id, opts); err != nil {
		return fail(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(buf.Bytes())
}

func PreviewTemplatePNG(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid template ID")
	}
	opts, ok := previewOptions(c)
	if !ok {
		return badRequest(c, "Invalid preview query")
	}
	png, err := svc.Render.PreviewPNG(requestCtx(c), id, opts)
	if err != nil {
		return fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}
