package fonts

import (
	"context"
	"errors"
	"sync"
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

const base = "https://fonts.example.test"

type countingFetcher struct {
	mu    sync.Mutex
	calls map[string]int
	fail  map[string]bool
}

func newCountingFetcher() *countingFetcher {
	return &countingFetcher{calls: map[string]int{}, fail: map[string]bool{}}
}

func (f *countingFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[url]++
	if f.fail[url] {
		return nil, errors.New("network down")
	}
	return goregular.TTF, nil
}

func (f *countingFetcher) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

type registration struct{ family, style string }

type fakeSink struct {
	added []registration
	err   error
}

func (s *fakeSink) AddUTF8FontFromBytes(family, style string, b []byte) {
	s.added = append(s.added, registration{family, style})
}
func (s *fakeSink) Error() error { return s.err }
func (s *fakeSink) ClearError()  { s.err = nil }

func TestRegistryResolve(t *testing.T) {
	reg := DefaultRegistry(base)
	tests := []struct {
		name       string
		wantName   string
		wantExists bool
	}{
		{"Amiri", "Amiri", true},
		{"Amiri Bold", "Amiri Bold", true},
		{"ScheherazadeNew", "Scheherazade New", true},
		{"tajawal", "Tajawal", true},
		{"HELVETICA", "Helvetica", true},
		{"Comic Sans", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		e, ok := reg.Resolve(tt.name)
		if ok != tt.wantExists {
			t.Errorf("Resolve(%q) ok = %v, want %v", tt.name, ok, tt.wantExists)
			continue
		}
		if ok && e.Name != tt.wantName {
			t.Errorf("Resolve(%q) = %q, want %q", tt.name, e.Name, tt.wantName)
		}
	}
}

func TestLoadBinaryCaches(t *testing.T) {
	fetcher := newCountingFetcher()
	l := NewLoader(DefaultRegistry(base), NewCache(), fetcher)
	url := base + "/amiri/Amiri-Regular.ttf"

	p1, err := l.LoadBinary(context.Background(), url)
	if err != nil {
		t.Fatalf("LoadBinary: %v", err)
	}
	p2, err := l.LoadBinary(context.Background(), url)
	if err != nil {
		t.Fatalf("LoadBinary: %v", err)
	}
	if fetcher.calls[url] != 1 {
		t.Fatalf("fetched %d times, want 1", fetcher.calls[url])
	}
	if len(p1.Data) == 0 || len(p1.Data) != len(p2.Data) {
		t.Fatalf("payload sizes %d and %d", len(p1.Data), len(p2.Data))
	}
	if p1.Base64() == "" {
		t.Fatal("empty base64 payload")
	}
	if got := l.Cache.URLs(); len(got) != 1 || got[0] != url {
		t.Fatalf("cache URLs = %v", got)
	}
}

func TestLoadBinarySeededCache(t *testing.T) {
	cache := NewCache()
	url := base + "/lateef/Lateef-Regular.ttf"
	cache.Put(url, []byte("seeded"))
	fetcher := newCountingFetcher()
	l := NewLoader(DefaultRegistry(base), cache, fetcher)

	p, err := l.LoadBinary(context.Background(), url)
	if err != nil {
		t.Fatal(err)
	}
	if string(p.Data) != "seeded" || fetcher.total() != 0 {
		t.Fatalf("seeded cache bypassed: %q, %d fetches", p.Data, fetcher.total())
	}
}

func TestLoadBinaryRejectsGarbage(t *testing.T) {
	l := NewLoader(DefaultRegistry(base), NewCache(), FetcherFunc(func(ctx context.Context, url string) ([]byte, error) {
		return []byte("<html>not found</html>"), nil
	}))
	if _, err := l.LoadBinary(context.Background(), base+"/x.ttf"); err == nil {
		t.Fatal("expected an error for a non-font payload")
	}
	if l.Cache.Len() != 0 {
		t.Fatal("garbage was cached")
	}
}

func TestRegisterForDocument(t *testing.T) {
	fetcher := newCountingFetcher()
	fetcher.fail[base+"/lateef/Lateef-Regular.ttf"] = true
	l := NewLoader(DefaultRegistry(base), NewCache(), fetcher)
	sink := &fakeSink{}

	faces := l.RegisterForDocument(context.Background(), sink,
		[]string{"Times", "Tajawal", "Amiri", "Lateef", "Unknown Font", "Tajawal"})

	if len(sink.added) == 0 || sink.added[0].family != "Amiri" {
		t.Fatalf("default Arabic font not registered first: %+v", sink.added)
	}
	if faces.Fallback.Family != "Amiri" {
		t.Fatalf("fallback = %+v", faces.Fallback)
	}
	// Amiri and Tajawal only; Times is built in, Lateef failed.
	if len(sink.added) != 2 {
		t.Fatalf("registered %+v", sink.added)
	}
	if fetcher.calls[base+"/tajawal/Tajawal-Regular.ttf"] != 1 {
		t.Errorf("Tajawal fetched %d times", fetcher.calls[base+"/tajawal/Tajawal-Regular.ttf"])
	}

	if f := faces.For("Times"); !f.Builtin || f.Family != "Times" {
		t.Errorf("Times face = %+v", f)
	}
	if f := faces.For("Tajawal"); f.Family != "Tajawal" {
		t.Errorf("Tajawal face = %+v", f)
	}
	if f := faces.For("Lateef"); f != faces.Fallback {
		t.Errorf("failed font should fall back, got %+v", f)
	}
	if f := faces.For("Unknown Font"); f != faces.Fallback {
		t.Errorf("unknown font should fall back, got %+v", f)
	}
	if f := faces.For("never requested"); f != faces.Fallback {
		t.Errorf("unrequested font should fall back, got %+v", f)
	}
}

func TestRegisterForDocumentLastResort(t *testing.T) {
	fetcher := newCountingFetcher()
	fetcher.fail[base+"/amiri/Amiri-Regular.ttf"] = true
	l := NewLoader(DefaultRegistry(base), NewCache(), fetcher)
	sink := &fakeSink{}

	faces := l.RegisterForDocument(context.Background(), sink, []string{"Amiri"})
	if faces.Fallback.Family != LastResortFamily {
		t.Fatalf("fallback = %+v, want %s", faces.Fallback, LastResortFamily)
	}
	if f := faces.For("Amiri"); f.Family != LastResortFamily {
		t.Fatalf("Amiri face = %+v", f)
	}
}
