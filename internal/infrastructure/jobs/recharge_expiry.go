package jobs

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"shipstack.backend/internal/domain/entities"
)

type staleLedgerRepo interface {
	GetStalePending(ctx context.Context, olderThan time.Time, limit int) ([]*entities.LedgerEntry, error)
	FailEntries(ctx context.Context, ids []uuid.UUID) error
}

// RechargeExpiryJob fails pending wallet recharges whose gateway
// callback never arrived. Interval, staleness threshold and clock are
// injectable so tests can drive the sweep deterministically.
type RechargeExpiryJob struct {
	repo      staleLedgerRepo
	interval  time.Duration
	staleness time.Duration
	now       func() time.Time
	stop      chan struct{}
}

func NewRechargeExpiryJob(repo staleLedgerRepo, interval, staleness time.Duration) *RechargeExpiryJob {
	if interval <= 0 {
		interval = 2 * time.Minute
	}
	if staleness <= 0 {
		staleness = 15 * time.Minute
	}
	return &RechargeExpiryJob{
		repo:      repo,
		interval:  interval,
		staleness: staleness,
		now:       time.Now,
		stop:      make(chan struct{}),
	}
}

func (j *RechargeExpiryJob) Start(ctx context.Context) {
	log.Println("🕐 Starting wallet recharge expiry job...")

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("⏹️ Wallet recharge expiry job stopped (context cancelled)")
			return
		case <-j.stop:
			log.Println("⏹️ Wallet recharge expiry job stopped")
			return
		case <-ticker.C:
			j.sweep(ctx)
		}
	}
}

func (j *RechargeExpiryJob) Stop() {
	close(j.stop)
}

func (j *RechargeExpiryJob) sweep(ctx context.Context) {
	cutoff := j.now().Add(-j.staleness)

	stale, err := j.repo.GetStalePending(ctx, cutoff, 100)
	if err != nil {
		log.Printf("❌ Error fetching stale recharges: %v", err)
		return
	}

	if len(stale) == 0 {
		return
	}

	log.Printf("🔄 Failing %d stale wallet recharges...", len(stale))

	var ids []uuid.UUID
	for _, entry := range stale {
		ids = append(ids, entry.ID)
	}

	if err := j.repo.FailEntries(ctx, ids); err != nil {
		log.Printf("❌ Error failing stale recharges: %v", err)
		return
	}

	log.Printf("✅ Failed %d stale recharges", len(stale))
}
