package fonts

import (
	"context"
	"errors"
	"fmt"
	"log"

	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/sync/singleflight"
)

// LastResortFamily is the embedded Unicode face used when even the default
// Arabic font is unavailable.
const LastResortFamily = "GoRegular"

var ErrUnknownFont = errors.New("fonts: unknown font")

// Loader fetches font binaries through a cache and registers them into PDF
// documents.
type Loader struct {
	Registry *Registry
	Cache    *Cache
	Fetcher  Fetcher

	group singleflight.Group
}

func NewLoader(reg *Registry, cache *Cache, fetcher Fetcher) *Loader {
	if cache == nil {
		cache = NewCache()
	}
	return &Loader{Registry: reg, Cache: cache, Fetcher: fetcher}
}

// LoadBinary returns the font behind url, fetching it only when it is not
// cached yet. Concurrent calls for one URL share a single fetch.
func (l *Loader) LoadBinary(ctx context.Context, url string) (Payload, error) {
	if data, ok := l.Cache.Get(url); ok {
		return Payload{URL: url, Data: data}, nil
	}
	v, err, _ := l.group.Do(url, func() (interface{}, error) {
		if data, ok := l.Cache.Get(url); ok {
			return data, nil
		}
		data, err := l.Fetcher.Fetch(ctx, url)
		if err != nil {
			return nil, err
		}
		if _, err := sfnt.Parse(data); err != nil {
			return nil, fmt.Errorf("fonts: %s is not a TrueType font: %w", url, err)
		}
		l.Cache.Put(url, data)
		return data, nil
	})
	if err != nil {
		return Payload{}, err
	}
	return Payload{URL: url, Data: v.([]byte)}, nil
}

// Load resolves name and returns its binary. Built-in fonts have none.
func (l *Loader) Load(ctx context.Context, name string) (Entry, Payload, error) {
	e, ok := l.Registry.Resolve(name)
	if !ok {
		return Entry{}, Payload{}, fmt.Errorf("%w: %q", ErrUnknownFont, name)
	}
	if e.Builtin() {
		return e, Payload{}, nil
	}
	p, err := l.LoadBinary(ctx, e.URL)
	return e, p, err
}

// Sink is the part of the PDF writer that accepts embedded fonts.
type Sink interface {
	AddUTF8FontFromBytes(familyStr, styleStr string, utf8Bytes []byte)
	Error() error
	ClearError()
}

// Face is a font registered in one document.
type Face struct {
	Family  string
	Style   string
	Builtin bool
	Arabic  bool
}

// Faces maps the font names requested by a document to registered faces.
type Faces struct {
	Fallback Face
	byName   map[string]Face
}

// For returns the face registered for name, or the fallback.
func (f Faces) For(name string) Face {
	if face, ok := f.byName[name]; ok {
		return face
	}
	return f.Fallback
}

// RegisterForDocument registers the default Arabic font first and then every
// distinct non built-in font in names. Failures never abort: the font is
// reported and its fields use the fallback face.
func (l *Loader) RegisterForDocument(ctx context.Context, sink Sink, names []string) Faces {
	faces := Faces{byName: make(map[string]Face)}
	registered := make(map[Face]bool)

	register := func(e Entry) (Face, error) {
		face := Face{Family: e.Family, Style: e.PDFStyle(), Arabic: e.Arabic}
		if registered[face] {
			return face, nil
		}
		p, err := l.LoadBinary(ctx, e.URL)
		if err != nil {
			return Face{}, err
		}
		sink.AddUTF8FontFromBytes(face.Family, face.Style, p.Data)
		if err := sink.Error(); err != nil {
			sink.ClearError()
			return Face{}, err
		}
		registered[face] = true
		return face, nil
	}

	if e, ok := l.Registry.Resolve(DefaultArabic); ok && !e.Builtin() {
		face, err := register(e)
		if err == nil {
			faces.Fallback = face
		} else {
			log.Printf("⚠️ default Arabic font %s unavailable: %v", DefaultArabic, err)
		}
	}
	if faces.Fallback.Family == "" {
		sink.AddUTF8FontFromBytes(LastResortFamily, "", goregular.TTF)
		faces.Fallback = Face{Family: LastResortFamily}
	}

	for _, name := range names {
		if _, done := faces.byName[name]; done || name == "" {
			continue
		}
		e, ok := l.Registry.Resolve(name)
		switch {
		case !ok:
			log.Printf("⚠️ font %q is not registered, using %s", name, faces.Fallback.Family)
			faces.byName[name] = faces.Fallback
		case e.Builtin():
			faces.byName[name] = Face{Family: e.Family, Style: e.PDFStyle(), Builtin: true}
		default:
			face, err := register(e)
			if err != nil {
				log.Printf("⚠️ font %q failed to load, using %s: %v", name, faces.Fallback.Family, err)
				face = faces.Fallback
			}
			faces.byName[name] = face
		}
	}
	return faces
}
