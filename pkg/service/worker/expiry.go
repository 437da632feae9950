package worker

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/rallykit/rallybot/pkg/domain/interfaces"
	"github.com/rallykit/rallybot/pkg/domain/types"
	"github.com/rallykit/rallybot/pkg/utils/logging"
)

// ExpirySweeper purges participant rows that fell out of the cooldown
// window. Summon and response rounds already sweep on demand; the
// background loop keeps the table small during quiet hours.
//
// Architecture assumptions:
// - Single server instance (no distributed locking)
type ExpirySweeper struct {
	repo     interfaces.Repository
	clock    types.Clock
	cooldown time.Duration
	interval time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewExpirySweeper creates a sweeper purging rows older than cooldown
// every interval.
func NewExpirySweeper(repo interfaces.Repository, cooldown, interval time.Duration) *ExpirySweeper {
	return &ExpirySweeper{
		repo:     repo,
		clock:    types.SystemClock{},
		cooldown: cooldown,
		interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background sweep loop without blocking startup
func (w *ExpirySweeper) Start(ctx context.Context) error {
	logging.Default().Info("participant expiry sweeper starting",
		"cooldown", w.cooldown.String(),
		"interval", w.interval.String())

	go w.run(ctx)

	return nil
}

// Stop signals the sweeper to stop and waits for completion
func (w *ExpirySweeper) Stop() {
	close(w.stopCh)
	<-w.doneCh
	logging.Default().Info("participant expiry sweeper stopped")
}

func (w *ExpirySweeper) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := w.Sweep(ctx); err != nil {
				logging.Default().Error("participant sweep failed (will retry next interval)",
					"error", err.Error())
			}

		case <-w.stopCh:
			return

		case <-ctx.Done():
			return
		}
	}
}

// Sweep runs one purge cycle
func (w *ExpirySweeper) Sweep(ctx context.Context) error {
	cutoff := w.clock.Now().Add(-w.cooldown)

	return w.repo.InTx(ctx, func(ctx context.Context, tx interfaces.Repository) error {
		stale, err := tx.Participants().CountOlderThan(ctx, cutoff)
		if err != nil {
			return goerr.Wrap(err, "failed to count stale participants")
		}
		if stale == 0 {
			return nil
		}

		purged, err := tx.Participants().DeleteOlderThan(ctx, cutoff)
		if err != nil {
			return goerr.Wrap(err, "failed to purge stale participants")
		}

		logging.From(ctx).Info("purged stale participants",
			"count", purged,
			"cutoff", cutoff)
		return nil
	})
}
