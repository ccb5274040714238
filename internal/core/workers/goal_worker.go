package workers

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// GoalCloser settles weekly goals whose week is over. An empty userID
// means every user.
type GoalCloser interface {
	CloseExpired(ctx context.Context, userID string, now time.Time) (int, error)
}

type GoalJob struct {
	UserID string
}

// GoalWorker closes expired weekly goals in the background: on demand for a
// single user after activity writes, and periodically for everyone.
type GoalWorker struct {
	closer   GoalCloser
	jobs     chan GoalJob
	interval time.Duration
	logger   zerolog.Logger
	now      func() time.Time
}

func NewGoalWorker(closer GoalCloser, interval time.Duration, logger zerolog.Logger) *GoalWorker {
	return &GoalWorker{
		closer:   closer,
		jobs:     make(chan GoalJob, 100),
		interval: interval,
		logger:   logger.With().Str("component", "goal_worker").Logger(),
		now:      time.Now,
	}
}

func (w *GoalWorker) Start(ctx context.Context) {
	go func() {
		w.logger.Info().Dur("interval", w.interval).Msg("goal worker started")

		var tick <-chan time.Time
		if w.interval > 0 {
			ticker := time.NewTicker(w.interval)
			defer ticker.Stop()
			tick = ticker.C
		}

		w.sweep(ctx, "")

		for {
			select {
			case job := <-w.jobs:
				w.sweep(ctx, job.UserID)
			case <-tick:
				w.sweep(ctx, "")
			case <-ctx.Done():
				w.logger.Info().Msg("goal worker shutting down")
				return
			}
		}
	}()
}

// Enqueue never blocks; jobs are dropped when the queue is full since the
// periodic sweep catches up with them.
func (w *GoalWorker) Enqueue(userID string) {
	select {
	case w.jobs <- GoalJob{UserID: userID}:
	default:
		w.logger.Warn().Str("user_id", userID).Msg("goal worker queue full, dropping job")
	}
}

func (w *GoalWorker) sweep(ctx context.Context, userID string) {
	closed, err := w.closer.CloseExpired(ctx, userID, w.now())
	if err != nil {
		w.logger.Error().Err(err).Str("user_id", userID).Msg("failed to close expired goals")
		return
	}
	if closed > 0 {
		w.logger.Info().Str("user_id", userID).Int("closed", closed).Msg("expired goals closed")
	}
}
