package fonts

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Fetcher retrieves the bytes behind a font URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, url string) ([]byte, error)

func (f FetcherFunc) Fetch(ctx context.Context, url string) ([]byte, error) { return f(ctx, url) }

// NewHTTPFetcher downloads http(s) URLs with the Fiber client and reads
// file:// URLs from disk.
func NewHTTPFetcher(timeout time.Duration) Fetcher {
	return httpFetcher{timeout: timeout}
}

type httpFetcher struct {
	timeout time.Duration
}

func (f httpFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if path, ok := strings.CutPrefix(url, "file://"); ok {
		return os.ReadFile(path)
	}
	a := fiber.Get(url)
	if f.timeout > 0 {
		a.Timeout(f.timeout)
	}
	code, body, errs := a.Bytes()
	if len(errs) > 0 {
		return nil, fmt.Errorf("fonts: fetching %s: %w", url, errs[0])
	}
	if code != fiber.StatusOK {
		return nil, fmt.Errorf("fonts: fetching %s: status %d", url, code)
	}
	return body, nil
}
