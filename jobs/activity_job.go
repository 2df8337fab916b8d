package jobs

import (
	"context"
	"log"
	"time"

	"github.com/lolobelaiba-droid/graduation-guardian/services"
)

// PruneActivity returns a cron job deleting activity entries older than
// retention.
func PruneActivity(activity *services.ActivityService, retention time.Duration) func() {
	return func() {
		log.Println("Running job: PruneActivity...")
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		n, err := activity.Prune(ctx, retention)
		if err != nil {
			log.Printf("Error pruning activity log: %v", err)
			return
		}
		if n > 0 {
			log.Printf("✅ Pruned %d activity entries", n)
		}
	}
}
