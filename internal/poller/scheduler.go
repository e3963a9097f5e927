package poller

import (
	"context"
	"time"

	"auroracast/internal/logger"
	"auroracast/internal/models"
)

// FetchFunc produces a fresh snapshot for one poll cycle
type FetchFunc func(ctx context.Context) (*models.Snapshot, error)

// Scheduler runs the poll loop on a fixed interval. It owns its lifecycle
// explicitly: nothing polls until Start and nothing survives Stop.
type Scheduler struct {
	interval time.Duration
	fetch    FetchFunc
	store    *SnapshotStore
	log      *logger.Logger

	cancel context.CancelFunc
	done   chan struct{}
}

// NewScheduler creates a scheduler. The store is shared with readers.
func NewScheduler(interval time.Duration, fetch FetchFunc, store *SnapshotStore) *Scheduler {
	return &Scheduler{
		interval: interval,
		fetch:    fetch,
		store:    store,
		log:      logger.Global().WithComponent("poller"),
	}
}

// Start launches the poll loop. The first poll runs immediately, then on
// every interval tick. Start is not reentrant.
func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)

		s.pollOnce(ctx)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.pollOnce(ctx)
			case <-ctx.Done():
				return
			}
		}
	}()
	s.log.Info("poll loop started", map[string]interface{}{"interval": s.interval.String()})
}

// Stop cancels the poll loop and waits for it to exit
func (s *Scheduler) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
	s.log.Info("poll loop stopped")
}

// PollNow runs one poll cycle synchronously, subject to the same sequence
// guard as the scheduled polls
func (s *Scheduler) PollNow(ctx context.Context) (*models.Snapshot, error) {
	seq := s.store.Begin()
	snap, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}
	if !s.store.Commit(seq, snap) {
		s.log.Warn("poll result superseded, discarding", map[string]interface{}{"seq": seq})
	}
	return snap, nil
}

func (s *Scheduler) pollOnce(ctx context.Context) {
	if _, err := s.PollNow(ctx); err != nil {
		s.log.Error("poll cycle failed", err)
	}
}
