// Package maintenance runs background housekeeping for the API process.
package maintenance

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/v4tech/servicedesk/internal/metrics"
)

const defaultInterval = time.Hour

// ExpiredSessionDeleter removes sessions whose expiry is before now.
type ExpiredSessionDeleter interface {
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// Reaper periodically deletes expired sessions. Expired sessions are already
// rejected at resolve time; reaping only keeps the collection from growing.
type Reaper struct {
	sessions ExpiredSessionDeleter
	interval time.Duration
	now      func() time.Time
	log      zerolog.Logger
}

// NewReaper creates a Reaper. If interval <= 0, defaultInterval is used.
func NewReaper(sessions ExpiredSessionDeleter, interval time.Duration, log zerolog.Logger) *Reaper {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Reaper{
		sessions: sessions,
		interval: interval,
		now:      func() time.Time { return time.Now().UTC() },
		log:      log,
	}
}

// Run sweeps once immediately and then on every tick until ctx is cancelled.
func (r *Reaper) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.sweep(ctx)
		}
	}
}

func (r *Reaper) sweep(ctx context.Context) {
	n, err := r.sessions.DeleteExpired(ctx, r.now())
	if err != nil {
		if ctx.Err() == nil {
			r.log.Error().Err(err).Msg("session reap failed")
		}
		return
	}
	if n > 0 {
		metrics.SessionsReapedTotal.Add(float64(n))
		r.log.Info().Int64("removed", n).Msg("expired sessions reaped")
	}
}
