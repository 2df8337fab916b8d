// Package store is the storage port of the service. Every persisted entity
// lives in a logical table that is served either by Postgres (gorm) or by a
// directory of JSON files; the two implementations are interchangeable and
// the choice is made once at startup.
package store

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/lolobelaiba-droid/graduation-guardian/models"
)

var (
	ErrNotFound = errors.New("store: record not found")
	ErrConflict = errors.New("store: unique constraint violated")
)

// Entity is implemented by every model kept in a Table.
type Entity interface {
	TableName() string
	EntityID() uuid.UUID
}

// uniqueEntity is implemented by entities carrying a natural key that must
// stay unique within their table.
type uniqueEntity interface {
	UniqueKey() string
}

// Query narrows Search. Filters match columns exactly, Term matches any of
// Columns case-insensitively.
type Query struct {
	Filters map[string]any
	Term    string
	Columns []string
	Limit   int
}

// Table is the uniform CRUD contract over one logical table.
type Table[T Entity] interface {
	GetAll(ctx context.Context) ([]T, error)
	GetByID(ctx context.Context, id uuid.UUID) (T, error)
	Insert(ctx context.Context, v T) error
	Update(ctx context.Context, v T) error
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, q Query) ([]T, error)
	// DeleteWhere removes every row matching filters and reports how many
	// rows went away.
	DeleteWhere(ctx context.Context, filters map[string]any) (int, error)
}

// Store groups the tables used by the service.
type Store struct {
	Templates    Table[models.Template]
	Fields       Table[models.TemplateField]
	Certificates Table[models.Certificate]
	CustomFields Table[models.CustomField]
	Settings     Table[models.Setting]
	Activity     Table[models.ActivityLog]
	Users        Table[models.User]

	closer func() error
}

// Close releases the underlying connection, if any.
func (s *Store) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer()
}
