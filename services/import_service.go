package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/lolobelaiba-droid/graduation-guardian/spreadsheet"
	"github.com/lolobelaiba-droid/graduation-guardian/store"
)

const (
	ImportAppend  = "append"
	ImportReplace = "replace"
)

// RowError describes one rejected row. Row is the 1-based position among
// the data rows, Line the line in the source file.
type RowError struct {
	Row     int    `json:"row"`
	Line    int    `json:"line,omitempty"`
	Message string `json:"message"`
}

type ImportResult struct {
	Success int        `json:"success"`
	Failed  int        `json:"failed"`
	Deleted int        `json:"deleted,omitempty"`
	Errors  []RowError `json:"errors"`
}

type ImportService struct {
	store    *store.Store
	certs    *CertificateService
	activity *ActivityService
	maxRows  int
}

// Import inserts rows as certificates of category. A failing row is
// reported and the import moves on; rows already written stay written.
// Replace mode first deletes every record of the category, outside any
// transaction.
func (s *ImportService) Import(ctx context.Context, category string, rows []spreadsheet.Row, mode string) (ImportResult, error) {
	res := ImportResult{Errors: []RowError{}}
	if !validCategory(category) {
		return res, invalid("unknown category %q", category)
	}
	if mode == "" {
		mode = ImportAppend
	}
	if mode != ImportAppend && mode != ImportReplace {
		return res, invalid("unknown import mode %q", mode)
	}
	if len(rows) == 0 {
		return res, invalid("the file has no data rows")
	}
	if s.maxRows > 0 && len(rows) > s.maxRows {
		return res, invalid("%v: %d rows, at most %d allowed", spreadsheet.ErrTooManyRows, len(rows), s.maxRows)
	}
	custom, err := s.certs.customKeys(ctx)
	if err != nil {
		return res, err
	}

	if mode == ImportReplace {
		n, err := s.store.Certificates.DeleteWhere(ctx, map[string]any{"category": category})
		if err != nil {
			return res, err
		}
		res.Deleted = n
	}

	for i, row := range rows {
		c, err := CertificateFromValues(category, row.Values, custom)
		if err == nil {
			_, err = s.certs.insert(ctx, c)
		}
		if err != nil {
			res.Failed++
			res.Errors = append(res.Errors, RowError{Row: i + 1, Line: row.Line, Message: rowMessage(i+1, err)})
			continue
		}
		res.Success++
	}

	log.Printf("✅ Import into %s (%s): %d inserted, %d failed", category, mode, res.Success, res.Failed)
	s.activity.Log(ctx, "import", "certificate", category,
		fmt.Sprintf("mode=%s success=%d failed=%d", mode, res.Success, res.Failed))
	return res, nil
}

func rowMessage(row int, err error) string {
	switch {
	case errors.Is(err, store.ErrConflict):
		return fmt.Sprintf("row %d: a record with this student number already exists", row)
	case IsValidation(err):
		return fmt.Sprintf("row %d: %v", row, err)
	}
	return fmt.Sprintf("row %d: could not be saved: %v", row, err)
}
