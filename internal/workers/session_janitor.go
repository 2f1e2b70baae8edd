package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-gateway/internal/logger"
	"github.com/MKhiriev/go-gateway/internal/store"
)

// DefaultJanitorInterval is how often expired sessions are purged.
const DefaultJanitorInterval = time.Minute

type sessionJanitor struct {
	sessions store.SessionRepository
	interval time.Duration
	now      func() time.Time
	logger   *logger.Logger
}

// NewSessionJanitor returns a worker that deletes expired sessions every
// interval. A non-positive interval defaults to [DefaultJanitorInterval].
func NewSessionJanitor(sessions store.SessionRepository, interval time.Duration, log *logger.Logger) Worker {
	if interval <= 0 {
		interval = DefaultJanitorInterval
	}
	return &sessionJanitor{
		sessions: sessions,
		interval: interval,
		now:      time.Now,
		logger:   log,
	}
}

func (j *sessionJanitor) Run(ctx context.Context) {
	t := time.NewTicker(j.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			j.purge(ctx)
		}
	}
}

func (j *sessionJanitor) purge(ctx context.Context) {
	n, err := j.sessions.DeleteExpired(ctx, j.now())
	if err != nil {
		j.logger.Err(err).Str("func", "*sessionJanitor.purge").Msg("error deleting expired sessions")
		return
	}
	if n > 0 {
		j.logger.Debug().Int64("deleted", n).Msg("expired sessions deleted")
	}
}
