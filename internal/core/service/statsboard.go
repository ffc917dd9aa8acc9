package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.StatsBoard = (*StatsBoard)(nil)

// StatsBoard keeps the governance dashboard snapshot fresh: a periodic
// poll of the upstream admin stats, best-effort, last write wins between
// the ticker and manual refreshes.
type StatsBoard struct {
	mu       sync.Mutex
	admin    port.AdminGateway
	interval time.Duration
	snapshot domain.AdminStats
	fetched  bool
}

func NewStatsBoard(admin port.AdminGateway, interval time.Duration) *StatsBoard {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &StatsBoard{admin: admin, interval: interval}
}

// Run polls until ctx is done. Poll failures are logged and ignored, the
// previous snapshot stays in place.
func (b *StatsBoard) Run(ctx context.Context, wg *sync.WaitGroup) {
	const op = "StatsBoard.Run"
	log := slog.With("op", op)

	defer wg.Done()

	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	log.Info("stats board is running", "interval", b.interval.String())

	for {
		select {
		case <-ctx.Done():
			log.Info("stats board is stopped")
			return
		case <-ticker.C:
			if err := b.Refresh(ctx); err != nil {
				log.Warn("stats poll failed", "err", err)
			}
		}
	}
}

// Refresh fetches the snapshot once. Manual trigger for the dashboard's
// refresh button.
func (b *StatsBoard) Refresh(ctx context.Context) error {
	const op = "StatsBoard.Refresh"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	stats, err := b.admin.Stats(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	stats.FetchedAt = time.Now()

	b.mu.Lock()
	b.snapshot = stats
	b.fetched = true
	b.mu.Unlock()
	return nil
}

// Stats returns the last snapshot and whether one has been fetched yet.
func (b *StatsBoard) Stats() (domain.AdminStats, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snapshot, b.fetched
}
