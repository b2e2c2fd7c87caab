package service

import (
	"context"
	"strings"
	"sync"

	"courierdesk/internal/domain"
	"courierdesk/internal/events"
	"courierdesk/internal/filter"
	"courierdesk/internal/metrics"
	"courierdesk/internal/models"

	"github.com/rs/zerolog"
)

// ScheduleService serves the cached schedule view and drives the booking
// status workflow against the record store.
type ScheduleService struct {
	store            domain.RecordStore
	repo             domain.SnapshotRepository
	eventBus         domain.EventPublisher
	refresher        domain.RefreshScheduler
	defaultMessenger string
	logger           *zerolog.Logger

	mu       sync.Mutex
	inFlight map[int64]struct{}
}

func NewScheduleService(store domain.RecordStore, repo domain.SnapshotRepository, eventBus domain.EventPublisher, defaultMessenger string, logger *zerolog.Logger) *ScheduleService {
	if defaultMessenger == "" {
		defaultMessenger = models.DefaultMessengerName
	}
	return &ScheduleService{
		store:            store,
		repo:             repo,
		eventBus:         eventBus,
		defaultMessenger: defaultMessenger,
		logger:           logger,
		inFlight:         make(map[int64]struct{}),
	}
}

// SetRefreshScheduler wires the background refresher. Optional; without it
// snapshot refreshes happen only on demand.
func (s *ScheduleService) SetRefreshScheduler(r domain.RefreshScheduler) {
	s.refresher = r
}

// Refresh pulls the full schedule from the record store and swaps the
// snapshot atomically.
func (s *ScheduleService) Refresh(ctx context.Context) error {
	bookings, err := s.store.ListSchedule(ctx)
	if err != nil {
		return err
	}

	if err := s.repo.Replace(ctx, bookings); err != nil {
		return err
	}

	s.logger.Info().Int("bookings", len(bookings)).Msg("schedule snapshot refreshed")
	_ = s.eventBus.PublishJSON(events.EventScheduleRefresh, struct {
		Count int `json:"count"`
	}{Count: len(bookings)})

	return nil
}

// Schedule returns the snapshot narrowed by the filter index. A nil index
// returns everything.
func (s *ScheduleService) Schedule(ctx context.Context, idx *filter.Index) ([]models.Booking, error) {
	bookings, err := s.repo.Bookings(ctx)
	if err != nil {
		return nil, err
	}
	if idx == nil {
		return bookings, nil
	}
	return idx.Apply(bookings), nil
}

// Transition applies a status change to a pending booking. The store commit
// is the point of truth; on any store failure the snapshot stays untouched.
func (s *ScheduleService) Transition(ctx context.Context, req models.TransitionRequest) (*models.Booking, error) {
	booking, err := s.repo.Get(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}

	// Clicking the current status again is a no-op, not an error.
	if booking.Status == req.Target {
		return booking, nil
	}

	if !req.Target.Valid() {
		return nil, ErrInvalidStatus
	}
	if booking.Status.Terminal() {
		return nil, ErrAlreadyFinal
	}
	if req.Target == models.StatusCancel && !req.Confirmed {
		return nil, ErrCancelNotConfirmed
	}

	messenger := ""
	if req.Target == models.StatusSuccess {
		messenger = strings.TrimSpace(req.MessengerName)
		if messenger == "" {
			messenger = s.defaultMessenger
		}
	}

	if !s.beginTransition(req.BookingID) {
		return nil, ErrTransitionInFlight
	}
	defer s.endTransition(req.BookingID)

	updated, err := s.store.PatchStatus(ctx, req.BookingID, req.Target, messenger)
	if err != nil {
		s.logger.Error().Err(err).Int64("booking_id", req.BookingID).Str("target", string(req.Target)).Msg("status transition rejected by record store")
		return nil, err
	}

	metrics.IncTransition(string(req.Target))
	s.logger.Info().
		Int64("booking_id", req.BookingID).
		Str("from", string(booking.Status)).
		Str("to", string(updated.Status)).
		Str("messenger", updated.MessengerName).
		Msg("booking status changed")

	s.publishTransition(updated)

	if s.refresher != nil {
		_ = s.refresher.EnqueueRefresh(ctx)
	}

	return updated, nil
}

func (s *ScheduleService) publishTransition(booking *models.Booking) {
	eventType := events.EventBookingCompleted
	if booking.Status == models.StatusCancel {
		eventType = events.EventBookingCancelled
	}

	_ = s.eventBus.PublishJSON(eventType, events.BookingEventPayload{
		BookingID:     booking.ID,
		CompanyName:   booking.CompanyName,
		BookingDate:   booking.BookingDate,
		BookingTime:   booking.BookingTime,
		Status:        string(booking.Status),
		MessengerName: booking.MessengerName,
	})
}

func (s *ScheduleService) beginTransition(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[id]; busy {
		return false
	}
	s.inFlight[id] = struct{}{}
	return true
}

func (s *ScheduleService) endTransition(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, id)
}
