package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lolobelaiba-droid/graduation-guardian/fieldvalue"
)

type FieldKey struct {
	Key    string `json:"key"`
	Label  string `json:"label"`
	RTL    bool   `json:"is_rtl"`
	Custom bool   `json:"custom"`
}

// ListFieldKeys returns the keys a template field can print, labelled in
// ?lang= (ar or fr, ar by default). Custom fields follow the built-in keys
// under their custom_ name.
func ListFieldKeys(c *fiber.Ctx) error {
	lang := c.Query("lang", "ar")
	if lang != "ar" && lang != "fr" {
		return badRequest(c, "Invalid language parameter")
	}

	out := make([]FieldKey, 0, len(fieldvalue.Catalogue))
	for _, k := range fieldvalue.Catalogue {
		label := k.NameAr
		if lang == "fr" {
			label = k.NameFr
		}
		out = append(out, FieldKey{Key: k.Key, Label: label, RTL: k.RTL})
	}

	custom, err := svc.Certificates.CustomFields(requestCtx(c))
	if err != nil {
		return fail(c, err)
	}
	for _, f := range custom {
		label := f.LabelAr
		if lang == "fr" && f.LabelFr != "" {
			label = f.LabelFr
		}
		out = append(out, FieldKey{Key: "custom_" + f.Key, Label: label, RTL: lang == "ar", Custom: true})
	}
	return c.JSON(out)
}
