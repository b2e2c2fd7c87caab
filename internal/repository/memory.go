package repository

import (
	"context"
	"errors"
	"sync"

	"courierdesk/internal/models"
)

// ErrBookingNotFound is returned when the snapshot holds no booking with
// the requested id.
var ErrBookingNotFound = errors.New("booking not found in snapshot")

// MemorySnapshotRepository keeps the schedule snapshot in process memory.
// It is the fallback store and the default when Redis is not configured.
type MemorySnapshotRepository struct {
	mu         sync.RWMutex
	bookings   []models.Booking
	byID       map[int64]int
	generation int64
}

func NewMemorySnapshotRepository() *MemorySnapshotRepository {
	return &MemorySnapshotRepository{byID: make(map[int64]int)}
}

func (r *MemorySnapshotRepository) Replace(ctx context.Context, bookings []models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.bookings = append([]models.Booking(nil), bookings...)
	r.byID = make(map[int64]int, len(r.bookings))
	for i, b := range r.bookings {
		r.byID[b.ID] = i
	}
	r.generation++
	return nil
}

func (r *MemorySnapshotRepository) Bookings(ctx context.Context) ([]models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.Booking(nil), r.bookings...), nil
}

func (r *MemorySnapshotRepository) Get(ctx context.Context, id int64) (*models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.byID[id]
	if !ok {
		return nil, ErrBookingNotFound
	}
	booking := r.bookings[i]
	return &booking, nil
}

func (r *MemorySnapshotRepository) Generation(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.generation, nil
}
