package domain

import (
	"context"

	"courierdesk/internal/filter"
	"courierdesk/internal/models"
)

// RecordStore is the external service of truth for bookings, companies and
// rendered artifacts. Implementations shape HTTP requests and classify
// failures; callers never see transport details.
type RecordStore interface {
	ListSchedule(ctx context.Context) ([]models.Booking, error)
	CreateBooking(ctx context.Context, draft models.BookingDraft) (int64, error)
	PatchStatus(ctx context.Context, id int64, status models.Status, messengerName string) (*models.Booking, error)
	ListCompanies(ctx context.Context) ([]models.Company, error)
	QueryReport(ctx context.Context, q models.ReportQuery) ([]models.Booking, error)
	ExportReport(ctx context.Context, q models.ReportQuery, format models.ExportFormat) (*models.Artifact, error)
	BookingDocument(ctx context.Context, id int64) (*models.Artifact, error)
}

// SnapshotRepository holds the cached schedule snapshot. Replace swaps the
// whole list atomically; there is no incremental patching.
type SnapshotRepository interface {
	Replace(ctx context.Context, bookings []models.Booking) error
	Bookings(ctx context.Context) ([]models.Booking, error)
	Get(ctx context.Context, id int64) (*models.Booking, error)
	Generation(ctx context.Context) (int64, error)
}

// EventPublisher fans out domain events to in-process subscribers.
type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

// RefreshScheduler coalesces snapshot refresh requests after store writes.
type RefreshScheduler interface {
	EnqueueRefresh(ctx context.Context) error
}

// ScheduleService drives the live schedule view and the status workflow.
type ScheduleService interface {
	Refresh(ctx context.Context) error
	Schedule(ctx context.Context, idx *filter.Index) ([]models.Booking, error)
	Transition(ctx context.Context, req models.TransitionRequest) (*models.Booking, error)
}

// ReportService produces date-ranged report views, facets and artifacts.
type ReportService interface {
	Query(ctx context.Context, q models.ReportQuery) (*models.Report, error)
	Export(ctx context.Context, q models.ReportQuery, format models.ExportFormat) (*models.Artifact, error)
	ScheduleWorkbook(bookings []models.Booking) (*models.Artifact, error)
}

// IntakeService covers booking submission and per-booking documents.
type IntakeService interface {
	Companies(ctx context.Context) ([]models.Company, error)
	Submit(ctx context.Context, draft models.BookingDraft) (int64, error)
	Document(ctx context.Context, id int64) (*models.Artifact, error)
}
