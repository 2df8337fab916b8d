// Package services implements the application operations on top of the
// storage port. Handlers stay thin and translate errors into responses.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/lolobelaiba-droid/graduation-guardian/canvas"
	"github.com/lolobelaiba-droid/graduation-guardian/fonts"
	"github.com/lolobelaiba-droid/graduation-guardian/store"
)

var validate = validator.New()

var now = time.Now

// ValidationError is returned for input rejected before any write.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func invalid(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// validateStruct runs the validator tags and wraps the failure.
func validateStruct(v any) error {
	if err := validate.Struct(v); err != nil {
		return &ValidationError{Msg: err.Error()}
	}
	return nil
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

type actorKey struct{}

// WithActor attaches the acting user to ctx for the activity log.
func WithActor(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, actorKey{}, userID)
}

func actor(ctx context.Context) *uuid.UUID {
	if id, ok := ctx.Value(actorKey{}).(uuid.UUID); ok && id != uuid.Nil {
		return &id
	}
	return nil
}

type Options struct {
	JWTSecret     string
	ImportMaxRows int
	// Rasterizer renders PNG previews. Nil disables them.
	Rasterizer *canvas.Rasterizer
	// Images fetches background images for previews.
	Images   fonts.Fetcher
	Uploader *BackgroundUploader
}

type Services struct {
	Store        *store.Store
	Fonts        *fonts.Loader
	Activity     *ActivityService
	Settings     *SettingsService
	Templates    *TemplateService
	Certificates *CertificateService
	Import       *ImportService
	Render       *RenderService
	Auth         *AuthService
}

func New(st *store.Store, loader *fonts.Loader, opts Options) *Services {
	activity := &ActivityService{store: st}
	settings := &SettingsService{store: st}
	certs := &CertificateService{store: st, activity: activity}
	return &Services{
		Store:        st,
		Fonts:        loader,
		Activity:     activity,
		Settings:     settings,
		Templates:    &TemplateService{store: st, activity: activity, settings: settings, uploader: opts.Uploader},
		Certificates: certs,
		Import:       &ImportService{store: st, certs: certs, activity: activity, maxRows: opts.ImportMaxRows},
		Render: &RenderService{
			store:      st,
			fonts:      loader,
			settings:   settings,
			rasterizer: opts.Rasterizer,
			images:     opts.Images,
		},
		Auth: &AuthService{store: st, activity: activity, secret: []byte(opts.JWTSecret)},
	}
}
