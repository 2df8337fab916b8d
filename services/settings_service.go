package services

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/lolobelaiba-droid/graduation-guardian/fieldvalue"
	"github.com/lolobelaiba-droid/graduation-guardian/models"
	"github.com/lolobelaiba-droid/graduation-guardian/store"
)

type SettingsService struct {
	store *store.Store
}

func (s *SettingsService) find(ctx context.Context, key string) (models.Setting, bool, error) {
	rows, err := s.store.Settings.Search(ctx, store.Query{Filters: map[string]any{"key": key}, Limit: 1})
	if err != nil {
		return models.Setting{}, false, err
	}
	if len(rows) == 0 {
		return models.Setting{}, false, nil
	}
	return rows[0], true, nil
}

// Get returns the raw JSON value stored under key.
func (s *SettingsService) Get(ctx context.Context, key string) (json.RawMessage, bool, error) {
	row, ok, err := s.find(ctx, key)
	if err != nil || !ok {
		return nil, ok, err
	}
	return json.RawMessage(row.Value), true, nil
}

// Put stores value under key, creating the setting on first use.
func (s *SettingsService) Put(ctx context.Context, key string, value json.RawMessage) error {
	if key == "" {
		return invalid("setting key is required")
	}
	if !json.Valid(value) {
		return invalid("setting %s is not valid JSON", key)
	}
	row, ok, err := s.find(ctx, key)
	if err != nil {
		return err
	}
	row.Key = key
	row.Value = datatypes.JSON(value)
	row.UpdatedAt = now()
	if !ok {
		row.ID = uuid.New()
		return s.store.Settings.Insert(ctx, row)
	}
	return s.store.Settings.Update(ctx, row)
}

// DateFormats returns the stored date policy, or the defaults when none has
// been saved or the stored value cannot be read.
func (s *SettingsService) DateFormats(ctx context.Context) (fieldvalue.DateFormatSettings, error) {
	raw, ok, err := s.Get(ctx, models.SettingDateFormats)
	if err != nil {
		return fieldvalue.DefaultDateFormats(), err
	}
	if !ok {
		return fieldvalue.DefaultDateFormats(), nil
	}
	var out fieldvalue.DateFormatSettings
	if err := json.Unmarshal(raw, &out); err != nil {
		return fieldvalue.DefaultDateFormats(), nil
	}
	return out, nil
}

func (s *SettingsService) SetDateFormats(ctx context.Context, v fieldvalue.DateFormatSettings) error {
	for _, f := range []fieldvalue.DateFormat{v.Birth, v.Defense, v.Certificate} {
		if err := validateStruct(f); err != nil {
			return err
		}
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return errors.Join(invalid("date formats cannot be encoded"), err)
	}
	return s.Put(ctx, models.SettingDateFormats, raw)
}
