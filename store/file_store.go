package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/lolobelaiba-droid/graduation-guardian/models"
)

// NewFileStore serves every table from <dir>/<table>.json. It is meant for
// the single-operator desktop mode.
func NewFileStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("store: creating data dir: %w", err)
	}
	return &Store{
		Templates:    newFileTable[models.Template](dir),
		Fields:       newFileTable[models.TemplateField](dir),
		Certificates: newFileTable[models.Certificate](dir),
		CustomFields: newFileTable[models.CustomField](dir),
		Settings:     newFileTable[models.Setting](dir),
		Activity:     newFileTable[models.ActivityLog](dir),
		Users:        newFileTable[models.User](dir),
	}, nil
}

type fileTable[T Entity] struct {
	mu   sync.Mutex
	path string
}

func newFileTable[T Entity](dir string) *fileTable[T] {
	var zero T
	return &fileTable[T]{path: filepath.Join(dir, zero.TableName()+".json")}
}

func (t *fileTable[T]) read() ([]T, error) {
	data, err := os.ReadFile(t.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}
	var rows []T
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("store: decoding %s: %w", filepath.Base(t.path), err)
	}
	return rows, nil
}

func (t *fileTable[T]) write(rows []T) error {
	if rows == nil {
		rows = []T{}
	}
	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return err
	}
	tmp := t.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, t.path)
}

func (t *fileTable[T]) GetAll(ctx context.Context) ([]T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.read()
}

func (t *fileTable[T]) GetByID(ctx context.Context, id uuid.UUID) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	var zero T
	rows, err := t.read()
	if err != nil {
		return zero, err
	}
	for _, r := range rows {
		if r.EntityID() == id {
			return r, nil
		}
	}
	return zero, ErrNotFound
}

func (t *fileTable[T]) Insert(ctx context.Context, v T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	rows, err := t.read()
	if err != nil {
		return err
	}
	for _, r := range rows {
		if r.EntityID() == v.EntityID() {
			return fmt.Errorf("%w: id %s", ErrConflict, v.EntityID())
		}
	}
	if err := checkUnique(rows, v); err != nil {
		return err
	}
	return t.write(append(rows, v))
}

func (t *fileTable[T]) Update(ctx context.Context, v T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	rows, err := t.read()
	if err != nil {
		return err
	}
	idx := -1
	for i, r := range rows {
		if r.EntityID() == v.EntityID() {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNotFound
	}
	others := append(append([]T{}, rows[:idx]...), rows[idx+1:]...)
	if err := checkUnique(others, v); err != nil {
		return err
	}
	rows[idx] = v
	return t.write(rows)
}

func (t *fileTable[T]) Delete(ctx context.Context, id uuid.UUID) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	rows, err := t.read()
	if err != nil {
		return err
	}
	for i, r := range rows {
		if r.EntityID() == id {
			return t.write(append(rows[:i], rows[i+1:]...))
		}
	}
	return ErrNotFound
}

func (t *fileTable[T]) Search(ctx context.Context, q Query) ([]T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	rows, err := t.read()
	if err != nil {
		return nil, err
	}
	var out []T
	for _, r := range rows {
		ok, err := matches(r, q)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		out = append(out, r)
		if q.Limit > 0 && len(out) == q.Limit {
			break
		}
	}
	return out, nil
}

func (t *fileTable[T]) DeleteWhere(ctx context.Context, filters map[string]any) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	rows, err := t.read()
	if err != nil {
		return 0, err
	}
	kept := rows[:0]
	removed := 0
	for _, r := range rows {
		ok, err := matches(r, Query{Filters: filters})
		if err != nil {
			return 0, err
		}
		if ok {
			removed++
			continue
		}
		kept = append(kept, r)
	}
	if removed == 0 {
		return 0, nil
	}
	return removed, t.write(kept)
}

func checkUnique[T Entity](rows []T, v T) error {
	u, ok := any(v).(uniqueEntity)
	if !ok || u.UniqueKey() == "" {
		return nil
	}
	key := u.UniqueKey()
	for _, r := range rows {
		if any(r).(uniqueEntity).UniqueKey() == key {
			return fmt.Errorf("%w: %s %q already exists", ErrConflict, v.TableName(), key)
		}
	}
	return nil
}

// matches compares through the JSON form of the entity so that filter and
// search columns use the same names as the database columns.
func matches[T Entity](v T, q Query) (bool, error) {
	if len(q.Filters) == 0 && q.Term == "" {
		return true, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return false, err
	}
	var row map[string]any
	if err := json.Unmarshal(data, &row); err != nil {
		return false, err
	}
	for col, want := range q.Filters {
		if fmt.Sprint(row[col]) != fmt.Sprint(want) {
			return false, nil
		}
	}
	if q.Term == "" || len(q.Columns) == 0 {
		return true, nil
	}
	term := strings.ToLower(q.Term)
	for _, col := range q.Columns {
		s, ok := row[col].(string)
		if ok && strings.Contains(strings.ToLower(s), term) {
			return true, nil
		}
	}
	return false, nil
}
