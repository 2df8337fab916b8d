// Package fonts knows which fonts a template may reference, where their
// binaries live and how to register them into a PDF document.
package fonts

import (
	"path/filepath"
	"strings"
	"sync"
)

type Source string

const (
	SourceBuiltin Source = "builtin"
	SourceRemote  Source = "remote"
	SourceFile    Source = "file"
)

const (
	StyleNormal = "normal"
	StyleBold   = "bold"
	StyleItalic = "italic"
)

// DefaultArabic is the font substituted whenever a field font cannot be
// used.
const DefaultArabic = "Amiri"

// Entry is one usable font.
type Entry struct {
	Name   string `json:"name"`
	Family string `json:"family"`
	Style  string `json:"style"`
	Source Source `json:"source"`
	URL    string `json:"url,omitempty"`
	Arabic bool   `json:"arabic"`
}

// Builtin reports fonts the PDF writer knows without any binary.
func (e Entry) Builtin() bool { return e.Source == SourceBuiltin }

// PDFStyle converts Style to the writer's style letters.
func (e Entry) PDFStyle() string {
	switch e.Style {
	case StyleBold:
		return "B"
	case StyleItalic:
		return "I"
	}
	return ""
}

// Registry is the list of known fonts. It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	entries []Entry
}

func NewRegistry(entries ...Entry) *Registry {
	return &Registry{entries: append([]Entry(nil), entries...)}
}

// DefaultRegistry holds the PDF core fonts and the Arabic webfonts served
// under baseURL.
func DefaultRegistry(baseURL string) *Registry {
	baseURL = strings.TrimRight(baseURL, "/")
	remote := func(name, family, style, path string) Entry {
		return Entry{Name: name, Family: family, Style: style, Source: SourceRemote, URL: baseURL + "/" + path, Arabic: true}
	}
	return NewRegistry(
		Entry{Name: "Helvetica", Family: "Helvetica", Style: StyleNormal, Source: SourceBuiltin},
		Entry{Name: "Helvetica Bold", Family: "Helvetica", Style: StyleBold, Source: SourceBuiltin},
		Entry{Name: "Times", Family: "Times", Style: StyleNormal, Source: SourceBuiltin},
		Entry{Name: "Times Bold", Family: "Times", Style: StyleBold, Source: SourceBuiltin},
		Entry{Name: "Times Italic", Family: "Times", Style: StyleItalic, Source: SourceBuiltin},
		Entry{Name: "Courier", Family: "Courier", Style: StyleNormal, Source: SourceBuiltin},
		remote("Amiri", "Amiri", StyleNormal, "amiri/Amiri-Regular.ttf"),
		remote("Amiri Bold", "Amiri", StyleBold, "amiri/Amiri-Bold.ttf"),
		remote("Scheherazade New", "ScheherazadeNew", StyleNormal, "scheherazadenew/ScheherazadeNew-Regular.ttf"),
		remote("Lateef", "Lateef", StyleNormal, "lateef/Lateef-Regular.ttf"),
		remote("Tajawal", "Tajawal", StyleNormal, "tajawal/Tajawal-Regular.ttf"),
		remote("Tajawal Bold", "Tajawal", StyleBold, "tajawal/Tajawal-Bold.ttf"),
	)
}

// Add registers e, replacing any entry with the same name.
func (r *Registry) Add(e Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.entries {
		if r.entries[i].Name == e.Name {
			r.entries[i] = e
			return
		}
	}
	r.entries = append(r.entries, e)
}

// AddDir registers every .ttf file of dir as a local font named after the
// file. It returns the number of fonts added.
func (r *Registry) AddDir(dir string) (int, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.ttf"))
	if err != nil {
		return 0, err
	}
	for _, path := range matches {
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		abs, err := filepath.Abs(path)
		if err != nil {
			return 0, err
		}
		style := StyleNormal
		lower := strings.ToLower(name)
		switch {
		case strings.Contains(lower, "bold"):
			style = StyleBold
		case strings.Contains(lower, "italic"):
			style = StyleItalic
		}
		r.Add(Entry{Name: name, Family: name, Style: style, Source: SourceFile, URL: "file://" + abs, Arabic: true})
	}
	return len(matches), nil
}

// Entries returns a copy of the registered fonts.
func (r *Registry) Entries() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Entry(nil), r.entries...)
}

// Resolve looks a font up by exact name, then exact family, then by name or
// family ignoring case. ok is false when nothing matches.
func (r *Registry) Resolve(name string) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if name == "" {
		return Entry{}, false
	}
	for _, e := range r.entries {
		if e.Name == name {
			return e, true
		}
	}
	for _, e := range r.entries {
		if e.Family == name {
			return e, true
		}
	}
	for _, e := range r.entries {
		if strings.EqualFold(e.Name, name) || strings.EqualFold(e.Family, name) {
			return e, true
		}
	}
	return Entry{}, false
}
