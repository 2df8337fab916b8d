package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lolobelaiba-droid/graduation-guardian/models"
)

// NewGormStore serves every table from db. The connection must be opened
// with TranslateError so that duplicate keys map to ErrConflict.
func NewGormStore(db *gorm.DB) *Store {
	return &Store{
		Templates:    gormTable[models.Template]{db: db},
		Fields:       gormTable[models.TemplateField]{db: db},
		Certificates: gormTable[models.Certificate]{db: db},
		CustomFields: gormTable[models.CustomField]{db: db},
		Settings:     gormTable[models.Setting]{db: db},
		Activity:     gormTable[models.ActivityLog]{db: db},
		Users:        gormTable[models.User]{db: db},
		closer: func() error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	}
}

type gormTable[T Entity] struct {
	db *gorm.DB
}

func (t gormTable[T]) GetAll(ctx context.Context) ([]T, error) {
	var rows []T
	if err := t.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, translate(err)
	}
	return rows, nil
}

func (t gormTable[T]) GetByID(ctx context.Context, id uuid.UUID) (T, error) {
	var v T
	if err := t.db.WithContext(ctx).First(&v, "id = ?", id).Error; err != nil {
		return v, translate(err)
	}
	return v, nil
}

func (t gormTable[T]) Insert(ctx context.Context, v T) error {
	return translate(t.db.WithContext(ctx).Create(&v).Error)
}

func (t gormTable[T]) Update(ctx context.Context, v T) error {
	res := t.db.WithContext(ctx).Model(&v).Where("id = ?", v.EntityID()).Select("*").Updates(&v)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (t gormTable[T]) Delete(ctx context.Context, id uuid.UUID) error {
	var v T
	res := t.db.WithContext(ctx).Where("id = ?", id).Delete(&v)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (t gormTable[T]) Search(ctx context.Context, q Query) ([]T, error) {
	tx := t.db.WithContext(ctx)
	if len(q.Filters) > 0 {
		tx = tx.Where(map[string]interface{}(q.Filters))
	}
	if q.Term != "" && len(q.Columns) > 0 {
		clauses := make([]string, 0, len(q.Columns))
		args := make([]interface{}, 0, len(q.Columns))
		for _, col := range q.Columns {
			clauses = append(clauses, fmt.Sprintf("%s ILIKE ?", col))
			args = append(args, "%"+q.Term+"%")
		}
		tx = tx.Where(strings.Join(clauses, " OR "), args...)
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}
	var rows []T
	if err := tx.Find(&rows).Error; err != nil {
		return nil, translate(err)
	}
	return rows, nil
}

func (t gormTable[T]) DeleteWhere(ctx context.Context, filters map[string]any) (int, error) {
	var v T
	tx := t.db.WithContext(ctx)
	if len(filters) == 0 {
		tx = tx.Session(&gorm.Session{AllowGlobalUpdate: true})
	} else {
		tx = tx.Where(map[string]interface{}(filters))
	}
	res := tx.Delete(&v)
	if res.Error != nil {
		return 0, translate(res.Error)
	}
	return int(res.RowsAffected), nil
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", ErrConflict, err)
	default:
		return err
	}
}
