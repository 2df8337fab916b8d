package services

import (
	"context"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/lolobelaiba-droid/graduation-guardian/models"
	"github.com/lolobelaiba-droid/graduation-guardian/store"
)

type ActivityService struct {
	store *store.Store
}

// Log records an action. Failures are logged and never reach the caller.
func (s *ActivityService) Log(ctx context.Context, action, entity, ref, details string) {
	entry := models.ActivityLog{
		ID:        uuid.New(),
		UserID:    actor(ctx),
		Action:    action,
		Entity:    entity,
		EntityRef: ref,
		Details:   details,
		CreatedAt: time.Now(),
	}
	if err := s.store.Activity.Insert(ctx, entry); err != nil {
		log.Printf("⚠️ Failed to record activity %s %s: %v", action, entity, err)
	}
}

// Recent returns the newest entries first.
func (s *ActivityService) Recent(ctx context.Context, limit int) ([]models.ActivityLog, error) {
	all, err := s.store.Activity.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

// Prune deletes entries older than retention and reports how many went.
func (s *ActivityService) Prune(ctx context.Context, retention time.Duration) (int, error) {
	all, err := s.store.Activity.GetAll(ctx)
	if err != nil {
		return 0, err
	}
	cutoff := time.Now().Add(-retention)
	n := 0
	for _, a := range all {
		if !a.CreatedAt.Before(cutoff) {
			continue
		}
		if err := s.store.Activity.Delete(ctx, a.ID); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}
