package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/lolobelaiba-droid/graduation-guardian/services"
	"github.com/lolobelaiba-droid/graduation-guardian/spreadsheet"
)

func ListCertificates(c *fiber.Ctx) error {
	rows, err := svc.Certificates.Search(requestCtx(c), c.Query("category"), c.Query("q"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(rows)
}

func SearchCertificates(c *fiber.Ctx) error {
	if strings.TrimSpace(c.Query("q")) == "" {
		return badRequest(c, "Query parameter q is required")
	}
	return ListCertificates(c)
}

func GetCertificate(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid certificate ID")
	}
	cert, err := svc.Certificates.Get(requestCtx(c), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(cert)
}

// certificateBody reads a flat JSON object of record keys. Non-string
// values are stored in their JSON text form.
func certificateBody(c *fiber.Ctx) (string, map[string]string, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(c.Body(), &raw); err != nil {
		return "", nil, err
	}
	values := make(map[string]string, len(raw))
	for k, v := range raw {
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			values[k] = s
		} else if string(v) != "null" {
			values[k] = string(v)
		}
	}
	category := values["category"]
	delete(values, "category")
	return category, values, nil
}

func CreateCertificate(c *fiber.Ctx) error {
	category, values, err := certificateBody(c)
	if err != nil {
		return badRequest(c, "Cannot parse JSON")
	}
	cert, err := svc.Certificates.CreateFromValues(requestCtx(c), category, values)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(cert)
}

func UpdateCertificate(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid certificate ID")
	}
	category, values, err := certificateBody(c)
	if err != nil {
		return badRequest(c, "Cannot parse JSON")
	}
	cert, err := svc.Certificates.UpdateFromValues(requestCtx(c), id, category, values)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(cert)
}

func DeleteCertificate(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid certificate ID")
	}
	if err := svc.Certificates.Delete(requestCtx(c), id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Certificate deleted"})
}

// ImportCertificates reads the multipart "file" (xlsx or csv) into records
// of the "category" form value. "mode" is append (default) or replace;
// "mapping" optionally renames columns, as a JSON object title → key.
// Rows that fail are reported without aborting the import.
func ImportCertificates(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "A spreadsheet file is required")
	}
	var mapping map[string]string
	if raw := c.FormValue("mapping"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &mapping); err != nil {
			return badRequest(c, "mapping must be a JSON object")
		}
	}

	f, err := fh.Open()
	if err != nil {
		return badRequest(c, "Cannot read uploaded file")
	}
	defer f.Close()

	sheet, err := spreadsheet.ReadRows(f, fh.Size, fh.Filename, importLimits)
	if err != nil {
		return fail(c, err)
	}
	rows := spreadsheet.MapRows(sheet.Rows, mapping)
	res, err := svc.Import.Import(requestCtx(c), c.FormValue("category"), rows, c.FormValue("mode"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(res)
}

// ExportCertificates downloads records as xlsx (default) or csv.
func ExportCertificates(c *fiber.Ctx) error {
	ctx := requestCtx(c)
	certs, err := svc.Certificates.List(ctx, c.Query("category"))
	if err != nil {
		return fail(c, err)
	}
	cols, err := svc.Certificates.ExportColumns(ctx)
	if err != nil {
		return fail(c, err)
	}
	rows := services.ExportRows(certs)

	name := fmt.Sprintf("certificates_%s", time.Now().Format("2006-01-02"))
	var buf bytes.Buffer
	switch c.Query("format", "xlsx") {
	case "csv":
		if err := spreadsheet.WriteCSV(&buf, cols, rows); err != nil {
			return fail(c, err)
		}
		c.Set("Content-Type", "text/csv; charset=utf-8")
		c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.csv\"", name))
	case "xlsx":
		if err := spreadsheet.WriteRecords(&buf, "Certificates", cols, rows); err != nil {
			return fail(c, err)
		}
		c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", name))
	default:
		return badRequest(c, "format must be xlsx or csv")
	}
	return c.Send(buf.Bytes())
}

type AssignNumbersRequest struct {
	Category string `json:"category" validate:"required"`
	Prefix   string `json:"prefix" validate:"max=20"`
}

func AssignCertificateNumbers(c *fiber.Ctx) error {
	var req AssignNumbersRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}
	n, err := svc.Certificates.AssignNumbers(requestCtx(c), req.Category, req.Prefix)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"assigned": n})
}
