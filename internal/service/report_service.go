package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"courierdesk/internal/domain"
	"courierdesk/internal/export"
	"courierdesk/internal/metrics"
	"courierdesk/internal/models"

	"github.com/rs/zerolog"
)

// ReportService builds date-ranged report views and fetches rendered
// artifacts from the record store.
type ReportService struct {
	store       domain.RecordStore
	exportsPath string
	now         func() time.Time
	logger      *zerolog.Logger
}

func NewReportService(store domain.RecordStore, exportsPath string, logger *zerolog.Logger) *ReportService {
	return &ReportService{
		store:       store,
		exportsPath: exportsPath,
		now:         time.Now,
		logger:      logger,
	}
}

func validateQuery(q models.ReportQuery) error {
	start, err := time.Parse(models.DateLayout, q.StartDate)
	if err != nil {
		return fmt.Errorf("%w: bad start date %q", ErrInvalidDateRange, q.StartDate)
	}
	end, err := time.Parse(models.DateLayout, q.EndDate)
	if err != nil {
		return fmt.Errorf("%w: bad end date %q", ErrInvalidDateRange, q.EndDate)
	}
	if end.Before(start) {
		return fmt.Errorf("%w: end before start", ErrInvalidDateRange)
	}
	if q.Status != "" && !q.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidStatus, q.Status)
	}
	return nil
}

// Query returns the bookings in range plus the facets the result implies.
func (s *ReportService) Query(ctx context.Context, q models.ReportQuery) (*models.Report, error) {
	if err := validateQuery(q); err != nil {
		return nil, err
	}

	bookings, err := s.store.QueryReport(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query report: %w", err)
	}

	return &models.Report{
		Bookings:  bookings,
		Companies: companyFacet(bookings),
		Statuses:  models.StatusFacets(),
	}, nil
}

// companyFacet keeps each non-empty company name once, in order of first
// appearance.
func companyFacet(bookings []models.Booking) []string {
	seen := make(map[string]struct{}, len(bookings))
	companies := make([]string, 0, len(bookings))
	for _, b := range bookings {
		if b.CompanyName == "" {
			continue
		}
		if _, ok := seen[b.CompanyName]; ok {
			continue
		}
		seen[b.CompanyName] = struct{}{}
		companies = append(companies, b.CompanyName)
	}
	return companies
}

// Export fetches a rendered artifact for the range, names it after today's
// date and keeps a local copy under the exports directory.
func (s *ReportService) Export(ctx context.Context, q models.ReportQuery, format models.ExportFormat) (*models.Artifact, error) {
	if !format.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, format)
	}
	if err := validateQuery(q); err != nil {
		return nil, err
	}

	artifact, err := s.store.ExportReport(ctx, q, format)
	if err != nil {
		return nil, fmt.Errorf("export report: %w", err)
	}

	artifact.FileName = fmt.Sprintf("messenger_report_%s.%s", s.now().Format(models.DateLayout), format.Ext())
	s.saveLocal(artifact)

	metrics.IncExport(string(format))
	s.logger.Info().Str("file", artifact.FileName).Int("bytes", len(artifact.Data)).Msg("report exported")

	return artifact, nil
}

// ScheduleWorkbook renders the given bookings into a local spreadsheet.
func (s *ReportService) ScheduleWorkbook(bookings []models.Booking) (*models.Artifact, error) {
	data, err := export.ScheduleWorkbook(bookings)
	if err != nil {
		return nil, fmt.Errorf("render schedule workbook: %w", err)
	}

	artifact := &models.Artifact{
		FileName:    fmt.Sprintf("messenger_schedule_%s.xlsx", s.now().Format(models.DateLayout)),
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Data:        data,
	}
	s.saveLocal(artifact)

	return artifact, nil
}

// saveLocal keeps a copy of the artifact on disk. Failures are logged, not
// surfaced; the caller still gets the bytes.
func (s *ReportService) saveLocal(artifact *models.Artifact) {
	if s.exportsPath == "" {
		return
	}
	if err := os.MkdirAll(s.exportsPath, 0o755); err != nil {
		s.logger.Warn().Err(err).Msg("cannot create exports directory")
		return
	}
	path := filepath.Join(s.exportsPath, artifact.FileName)
	if err := os.WriteFile(path, artifact.Data, 0o644); err != nil {
		s.logger.Warn().Err(err).Str("path", path).Msg("cannot save export copy")
	}
}
