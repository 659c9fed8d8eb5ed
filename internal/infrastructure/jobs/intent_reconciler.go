package jobs

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"shipstack.backend/internal/domain/entities"
)

type staleIntentRepo interface {
	GetStalePending(ctx context.Context, olderThan time.Time, limit int) ([]*entities.OrderIntent, error)
	MarkStuck(ctx context.Context, id uuid.UUID, reason string) error
}

// IntentReconcilerJob marks order intents that never reached a terminal
// state as stuck. A pending intent past the threshold means the process
// died between the carrier commit and the local write, so the record
// needs operator attention rather than automatic retry.
type IntentReconcilerJob struct {
	repo      staleIntentRepo
	interval  time.Duration
	staleness time.Duration
	now       func() time.Time
	stop      chan struct{}
}

func NewIntentReconcilerJob(repo staleIntentRepo, interval, staleness time.Duration) *IntentReconcilerJob {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	if staleness <= 0 {
		staleness = 10 * time.Minute
	}
	return &IntentReconcilerJob{
		repo:      repo,
		interval:  interval,
		staleness: staleness,
		now:       time.Now,
		stop:      make(chan struct{}),
	}
}

func (j *IntentReconcilerJob) Start(ctx context.Context) {
	log.Println("🕐 Starting order intent reconciler...")

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("⏹️ Order intent reconciler stopped (context cancelled)")
			return
		case <-j.stop:
			log.Println("⏹️ Order intent reconciler stopped")
			return
		case <-ticker.C:
			j.reconcile(ctx)
		}
	}
}

func (j *IntentReconcilerJob) Stop() {
	close(j.stop)
}

func (j *IntentReconcilerJob) reconcile(ctx context.Context) {
	cutoff := j.now().Add(-j.staleness)

	stale, err := j.repo.GetStalePending(ctx, cutoff, 100)
	if err != nil {
		log.Printf("❌ Error fetching stale order intents: %v", err)
		return
	}

	for _, intent := range stale {
		if err := j.repo.MarkStuck(ctx, intent.ID, "no terminal state recorded"); err != nil {
			log.Printf("❌ Error marking intent %s stuck: %v", intent.ID, err)
			continue
		}
		log.Printf("⚠️ Order intent %s (order %s) marked stuck", intent.ID, intent.OrderUniqueID)
	}
}
