package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"courierdesk/internal/domain"
	"courierdesk/internal/events"
	"courierdesk/internal/models"
	"courierdesk/internal/timeslot"

	"github.com/rs/zerolog"
)

// IntakeService covers the booking request form: company lookup, submission
// and per-booking documents.
type IntakeService struct {
	store     domain.RecordStore
	eventBus  domain.EventPublisher
	refresher domain.RefreshScheduler
	logger    *zerolog.Logger
}

func NewIntakeService(store domain.RecordStore, eventBus domain.EventPublisher, logger *zerolog.Logger) *IntakeService {
	return &IntakeService{
		store:    store,
		eventBus: eventBus,
		logger:   logger,
	}
}

// SetRefreshScheduler wires the background refresher, so freshly submitted
// bookings show up in the schedule without waiting for the next poll.
func (s *IntakeService) SetRefreshScheduler(r domain.RefreshScheduler) {
	s.refresher = r
}

// Companies lists the client companies selectable on the form.
func (s *IntakeService) Companies(ctx context.Context) ([]models.Company, error) {
	return s.store.ListCompanies(ctx)
}

func validateDraft(draft models.BookingDraft) error {
	if draft.CompanyID <= 0 {
		return fmt.Errorf("%w: company is required", ErrInvalidDraft)
	}
	if _, err := time.Parse(models.DateLayout, draft.BookingDate); err != nil {
		return fmt.Errorf("%w: bad booking date %q", ErrInvalidDraft, draft.BookingDate)
	}
	if !timeslot.ValidStored(draft.BookingTime) {
		return fmt.Errorf("%w: bad booking time %q", ErrInvalidDraft, draft.BookingTime)
	}
	if !models.JobType(draft.JobType).Valid() {
		return fmt.Errorf("%w: unknown job type %q", ErrInvalidDraft, draft.JobType)
	}

	required := map[string]string{
		"requester_name": draft.RequesterName,
		"detail":         draft.Detail,
		"department":     draft.Department,
		"contact_name":   draft.ContactName,
		"contact_phone":  draft.ContactPhone,
	}
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidDraft, field)
		}
	}

	return nil
}

// Submit validates the draft and creates the booking in the record store.
func (s *IntakeService) Submit(ctx context.Context, draft models.BookingDraft) (int64, error) {
	if err := validateDraft(draft); err != nil {
		return 0, err
	}

	id, err := s.store.CreateBooking(ctx, draft)
	if err != nil {
		return 0, err
	}

	s.logger.Info().Int64("booking_id", id).Int64("company_id", draft.CompanyID).Str("date", draft.BookingDate).Msg("booking submitted")

	_ = s.eventBus.PublishJSON(events.EventBookingSubmitted, events.BookingEventPayload{
		BookingID:   id,
		BookingDate: draft.BookingDate,
		BookingTime: draft.BookingTime,
		Status:      string(models.StatusPending),
	})

	if s.refresher != nil {
		_ = s.refresher.EnqueueRefresh(ctx)
	}

	return id, nil
}

// Document fetches the rendered document for one booking.
func (s *IntakeService) Document(ctx context.Context, id int64) (*models.Artifact, error) {
	artifact, err := s.store.BookingDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	artifact.FileName = fmt.Sprintf("booking_%d.pdf", id)
	return artifact, nil
}
