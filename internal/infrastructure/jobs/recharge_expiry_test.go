package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"shipstack.backend/internal/domain/entities"
)

type ledgerSweepStub struct {
	stale      []*entities.LedgerEntry
	getErr     error
	failErr    error
	failCalls  int
	lastCutoff time.Time
	lastIDs    []uuid.UUID
}

func (s *ledgerSweepStub) GetStalePending(_ context.Context, olderThan time.Time, _ int) ([]*entities.LedgerEntry, error) {
	s.lastCutoff = olderThan
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.stale, nil
}

func (s *ledgerSweepStub) FailEntries(_ context.Context, ids []uuid.UUID) error {
	s.failCalls++
	s.lastIDs = ids
	return s.failErr
}

func TestRechargeSweep_CutoffUsesInjectedClock(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	repo := &ledgerSweepStub{}
	job := NewRechargeExpiryJob(repo, time.Minute, 15*time.Minute)
	job.now = func() time.Time { return now }

	job.sweep(context.Background())
	require.Equal(t, now.Add(-15*time.Minute), repo.lastCutoff)
}

func TestRechargeSweep_NoStaleEntries(t *testing.T) {
	repo := &ledgerSweepStub{}
	job := NewRechargeExpiryJob(repo, time.Minute, 15*time.Minute)

	job.sweep(context.Background())
	require.Equal(t, 0, repo.failCalls)
}

func TestRechargeSweep_FailsStaleEntries(t *testing.T) {
	id1 := uuid.New()
	id2 := uuid.New()
	repo := &ledgerSweepStub{stale: []*entities.LedgerEntry{{ID: id1}, {ID: id2}}}
	job := NewRechargeExpiryJob(repo, time.Minute, 15*time.Minute)

	job.sweep(context.Background())
	require.Equal(t, 1, repo.failCalls)
	require.ElementsMatch(t, []uuid.UUID{id1, id2}, repo.lastIDs)
}

func TestRechargeSweep_GetError(t *testing.T) {
	repo := &ledgerSweepStub{getErr: errors.New("db down")}
	job := NewRechargeExpiryJob(repo, time.Minute, 15*time.Minute)

	job.sweep(context.Background())
	require.Equal(t, 0, repo.failCalls)
}

func TestRechargeExpiryJob_StopsByContext(t *testing.T) {
	repo := &ledgerSweepStub{}
	job := NewRechargeExpiryJob(repo, time.Millisecond, 15*time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		job.Start(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("job did not stop on context cancel")
	}
}

func TestRechargeExpiryJob_StopsByStopChannel(t *testing.T) {
	repo := &ledgerSweepStub{}
	job := NewRechargeExpiryJob(repo, time.Millisecond, 15*time.Minute)

	done := make(chan struct{})
	go func() {
		job.Start(context.Background())
		close(done)
	}()
	job.Stop()

	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("job did not stop on Stop()")
	}
}
