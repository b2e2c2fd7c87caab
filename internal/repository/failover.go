package repository

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"courierdesk/internal/domain"
	"courierdesk/internal/models"

	"github.com/rs/zerolog"
)

// FailoverSnapshotRepository reads from the primary (Redis) repository and
// degrades to the in-memory fallback when the primary fails. Replace always
// writes the fallback so a degraded instance still serves the last snapshot.
type FailoverSnapshotRepository struct {
	primary   domain.SnapshotRepository
	fallback  domain.SnapshotRepository
	logger    *zerolog.Logger
	isDown    atomic.Bool
	lastCheck time.Time
}

func NewFailoverSnapshotRepository(primary, fallback domain.SnapshotRepository, logger *zerolog.Logger) *FailoverSnapshotRepository {
	return &FailoverSnapshotRepository{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

func (r *FailoverSnapshotRepository) markDown(err error) {
	r.logger.Error().Err(err).Msg("Primary snapshot repository failed, falling back to memory")
	r.isDown.Store(true)
	r.lastCheck = time.Now()
}

func (r *FailoverSnapshotRepository) Replace(ctx context.Context, bookings []models.Booking) error {
	// The fallback copy is what keeps reads alive while the primary is down.
	if err := r.fallback.Replace(ctx, bookings); err != nil {
		return err
	}

	if !r.isDown.Load() {
		if err := r.primary.Replace(ctx, bookings); err != nil {
			r.markDown(err)
		}
		return nil
	}

	if time.Since(r.lastCheck) > time.Minute {
		if err := r.primary.Replace(ctx, bookings); err == nil {
			r.isDown.Store(false)
		} else {
			r.lastCheck = time.Now()
		}
	}

	return nil
}

func (r *FailoverSnapshotRepository) Bookings(ctx context.Context) ([]models.Booking, error) {
	if !r.isDown.Load() {
		bookings, err := r.primary.Bookings(ctx)
		if err == nil {
			return bookings, nil
		}
		r.markDown(err)
	}

	// Try to recover after 1 minute
	if r.isDown.Load() && time.Since(r.lastCheck) > time.Minute {
		bookings, err := r.primary.Bookings(ctx)
		if err == nil {
			r.isDown.Store(false)
			return bookings, nil
		}
		r.lastCheck = time.Now()
	}

	return r.fallback.Bookings(ctx)
}

func (r *FailoverSnapshotRepository) Get(ctx context.Context, id int64) (*models.Booking, error) {
	if !r.isDown.Load() {
		booking, err := r.primary.Get(ctx, id)
		if err == nil || errors.Is(err, ErrBookingNotFound) {
			return booking, err
		}
		r.markDown(err)
	}

	return r.fallback.Get(ctx, id)
}

func (r *FailoverSnapshotRepository) Generation(ctx context.Context) (int64, error) {
	if !r.isDown.Load() {
		gen, err := r.primary.Generation(ctx)
		if err == nil {
			return gen, nil
		}
		r.markDown(err)
	}

	return r.fallback.Generation(ctx)
}
