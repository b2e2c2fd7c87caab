package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"courierdesk/internal/config"
	"courierdesk/internal/domain"
	"courierdesk/internal/metrics"
	"courierdesk/internal/repository"
	"courierdesk/internal/service"
	"courierdesk/internal/store"

	"github.com/rs/zerolog"
)

// HTTPServer exposes the intent API the admin UI talks to.
type HTTPServer struct {
	cfg        config.APIConfig
	schedule   domain.ScheduleService
	reports    domain.ReportService
	intake     domain.IntakeService
	messengers []string
	logger     *zerolog.Logger
	server     *http.Server
	auth       *HTTPAuth
}

func NewHTTPServer(
	cfg config.APIConfig,
	schedule domain.ScheduleService,
	reports domain.ReportService,
	intake domain.IntakeService,
	messengers []string,
	logger *zerolog.Logger,
) *HTTPServer {
	mux := http.NewServeMux()
	srv := &HTTPServer{
		cfg:        cfg,
		schedule:   schedule,
		reports:    reports,
		intake:     intake,
		messengers: messengers,
		logger:     logger,
	}
	srv.auth = NewHTTPAuth(cfg)

	mux.HandleFunc("/api/v1/schedule", srv.handleSchedule)
	mux.HandleFunc("/api/v1/schedule/refresh", srv.handleScheduleRefresh)
	mux.HandleFunc("/api/v1/schedule/export", srv.handleScheduleExport)
	mux.HandleFunc("/api/v1/bookings", srv.handleBookingCreate)
	mux.HandleFunc("/api/v1/bookings/", srv.handleBookingSubresource)
	mux.HandleFunc("/api/v1/companies", srv.handleCompanies)
	mux.HandleFunc("/api/v1/messengers", srv.handleMessengers)
	mux.HandleFunc("/api/v1/report", srv.handleReport)
	mux.HandleFunc("/api/v1/report/export", srv.handleReportExport)
	mux.HandleFunc("/healthz", srv.handleHealth)

	handler := srv.loggingMiddleware(srv.auth.Wrap(mux))

	srv.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	return srv
}

func (s *HTTPServer) Start() error {
	if s.server == nil {
		return fmt.Errorf("http server is not initialized")
	}
	s.logger.Info().Str("addr", s.server.Addr).Msg("HTTP API listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Handler exposes the composed handler, mainly for tests.
func (s *HTTPServer) Handler() http.Handler {
	return s.server.Handler
}

func (s *HTTPServer) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)

		metrics.IncHTTP(r.URL.Path)
		s.logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", recorder.status).
			Dur("duration", time.Since(start)).
			Msg("http request")
	})
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

// writeServiceError maps domain failures onto HTTP statuses. Record store
// outages surface as 503 so the UI can distinguish them from bad input.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrBookingNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrTransitionInFlight), errors.Is(err, service.ErrAlreadyFinal):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrCancelNotConfirmed),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrInvalidDateRange),
		errors.Is(err, service.ErrInvalidFormat),
		errors.Is(err, service.ErrInvalidDraft):
		writeError(w, http.StatusBadRequest, err.Error())
	case store.IsConnectivity(err):
		writeError(w, http.StatusServiceUnavailable, "record store unavailable")
	case store.IsAuth(err):
		writeError(w, http.StatusUnauthorized, "record store session rejected")
	case store.IsPermission(err):
		writeError(w, http.StatusForbidden, err.Error())
	case store.IsValidation(err):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
