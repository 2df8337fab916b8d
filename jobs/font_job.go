package jobs

import (
	"context"
	"log"
	"time"

	"github.com/lolobelaiba-droid/graduation-guardian/fonts"
)

// WarmFonts returns a cron job loading the named fonts into the shared
// cache so the first render after a restart does not wait on downloads.
func WarmFonts(loader *fonts.Loader, names ...string) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		for _, name := range names {
			if _, _, err := loader.Load(ctx, name); err != nil {
				log.Printf("⚠️ Font warm-up failed for %s: %v", name, err)
			}
		}
	}
}
