package workers

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-gateway/internal/logger"
	"github.com/MKhiriev/go-gateway/internal/mock"
)

type countingWorker struct {
	started atomic.Int32
	stopped atomic.Int32
}

func (w *countingWorker) Run(ctx context.Context) {
	w.started.Add(1)
	<-ctx.Done()
	w.stopped.Add(1)
}

func TestWorkers_RunAndWait(t *testing.T) {
	a, b := &countingWorker{}, &countingWorker{}
	ws := NewWorkers(a, b)

	ctx, cancel := context.WithCancel(context.Background())
	ws.Run(ctx)

	assert.Eventually(t, func() bool {
		return a.started.Load() == 1 && b.started.Load() == 1
	}, time.Second, 5*time.Millisecond)

	cancel()
	ws.Wait()

	assert.Equal(t, int32(1), a.stopped.Load())
	assert.Equal(t, int32(1), b.stopped.Load())
}

func TestWorkers_Empty(t *testing.T) {
	ws := NewWorkers()
	ws.Run(context.Background())
	ws.Wait()
}

func TestSessionJanitor_DefaultInterval(t *testing.T) {
	j := NewSessionJanitor(nil, 0, logger.Nop()).(*sessionJanitor)
	assert.Equal(t, DefaultJanitorInterval, j.interval)
}

func TestSessionJanitor_PurgesOnTick(t *testing.T) {
	ctrl := gomock.NewController(t)
	sessions := mock.NewMockSessionRepository(ctrl)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	purged := make(chan struct{}, 1)
	sessions.EXPECT().
		DeleteExpired(gomock.Any(), now).
		DoAndReturn(func(context.Context, time.Time) (int64, error) {
			select {
			case purged <- struct{}{}:
			default:
			}
			return 2, nil
		}).
		MinTimes(1)

	j := NewSessionJanitor(sessions, 10*time.Millisecond, logger.Nop()).(*sessionJanitor)
	j.now = func() time.Time { return now }

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		j.Run(ctx)
		close(done)
	}()

	select {
	case <-purged:
	case <-time.After(time.Second):
		t.Fatal("janitor did not run")
	}

	cancel()
	<-done
}

func TestSessionJanitor_ErrorIsLogged(t *testing.T) {
	ctrl := gomock.NewController(t)
	sessions := mock.NewMockSessionRepository(ctrl)
	sessions.EXPECT().DeleteExpired(gomock.Any(), gomock.Any()).Return(int64(0), errors.New("db down"))

	j := NewSessionJanitor(sessions, time.Minute, logger.Nop()).(*sessionJanitor)
	j.purge(context.Background())
}
