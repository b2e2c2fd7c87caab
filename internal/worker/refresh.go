package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Refresher pulls a fresh schedule snapshot from the record store.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// RefreshWorker serializes snapshot refreshes behind a single-slot queue.
// Bursts of enqueue calls while a refresh is pending coalesce into one run.
type RefreshWorker struct {
	refresher Refresher
	retry     RetryPolicy
	queue     chan struct{}
	logger    *zerolog.Logger
}

func NewRefreshWorker(refresher Refresher, retry RetryPolicy, logger *zerolog.Logger) *RefreshWorker {
	if retry.MaxRetries == 0 {
		retry.MaxRetries = 5
	}
	if retry.InitialDelay == 0 {
		retry.InitialDelay = 2 * time.Second
	}
	if retry.MaxDelay == 0 {
		retry.MaxDelay = 1 * time.Minute
	}
	if retry.BackoffFactor == 0 {
		retry.BackoffFactor = 2
	}

	return &RefreshWorker{
		refresher: refresher,
		retry:     retry,
		queue:     make(chan struct{}, 1),
		logger:    logger,
	}
}

// EnqueueRefresh requests a refresh without blocking. A request that lands
// while one is already queued is absorbed by it.
func (w *RefreshWorker) EnqueueRefresh(ctx context.Context) error {
	select {
	case w.queue <- struct{}{}:
	default:
	}
	return nil
}

// Start consumes refresh requests until the context is cancelled.
func (w *RefreshWorker) Start(ctx context.Context) {
	w.logger.Info().Msg("refresh worker started")
	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("refresh worker stopped")
			return
		case <-w.queue:
			w.refreshWithRetry(ctx)
		}
	}
}

func (w *RefreshWorker) refreshWithRetry(ctx context.Context) {
	var lastErr error
	for attempt := 1; attempt <= w.retry.MaxRetries; attempt++ {
		err := w.refresher.Refresh(ctx)
		if err == nil {
			return
		}
		lastErr = err

		if attempt == w.retry.MaxRetries {
			break
		}

		delay := w.retry.NextDelay(attempt)
		w.logger.Warn().Err(lastErr).Int("attempt", attempt).Dur("next_delay", delay).Msg("snapshot refresh failed, retrying")

		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}
	}

	w.logger.Error().Err(lastErr).Int("attempts", w.retry.MaxRetries).Msg("snapshot refresh gave up")
}
