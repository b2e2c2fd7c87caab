package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"courierdesk/internal/filter"
	"courierdesk/internal/models"
)

func (s *HTTPServer) handleSchedule(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if r.URL.Query().Get("refresh") == "true" {
		if err := s.schedule.Refresh(r.Context()); err != nil {
			writeServiceError(w, err)
			return
		}
	}

	idx, err := indexFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	bookings, err := s.schedule.Schedule(r.Context(), idx)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if sortField := r.URL.Query().Get("sort"); sortField != "" {
		filter.SortByStored(bookings, filter.Field(sortField), r.URL.Query().Get("order") == "desc")
	}

	writeJSON(w, http.StatusOK, map[string]any{"bookings": bookings})
}

// indexFromQuery builds the filter set from query parameters named after the
// filterable columns, plus the exact-match status parameter.
func indexFromQuery(r *http.Request) (*filter.Index, error) {
	idx := filter.NewIndex()
	query := r.URL.Query()

	for _, field := range filter.Fields() {
		if raw := query.Get(string(field)); raw != "" {
			if err := idx.SetQuery(field, raw); err != nil {
				return nil, err
			}
		}
	}

	if raw := query.Get("status"); raw != "" {
		if err := idx.SetStatus(models.Status(raw)); err != nil {
			return nil, err
		}
	}

	return idx, nil
}

func (s *HTTPServer) handleScheduleRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if err := s.schedule.Refresh(r.Context()); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "refreshed"})
}

func (s *HTTPServer) handleScheduleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	idx, err := indexFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	bookings, err := s.schedule.Schedule(r.Context(), idx)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	artifact, err := s.reports.ScheduleWorkbook(bookings)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeArtifact(w, artifact)
}

func (s *HTTPServer) handleBookingCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var draft models.BookingDraft
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&draft); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	id, err := s.intake.Submit(r.Context(), draft)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]int64{"booking_id": id})
}

func (s *HTTPServer) handleBookingSubresource(w http.ResponseWriter, r *http.Request) {
	const prefix = "/api/v1/bookings/"
	rest := strings.TrimPrefix(r.URL.Path, prefix)

	idPart, action, found := strings.Cut(rest, "/")
	if !found || idPart == "" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	id, err := strconv.ParseInt(idPart, 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid booking id")
		return
	}

	switch action {
	case "document":
		s.handleBookingDocument(w, r, id)
	case "status":
		s.handleBookingStatus(w, r, id)
	default:
		writeError(w, http.StatusNotFound, "not found")
	}
}

func (s *HTTPServer) handleBookingDocument(w http.ResponseWriter, r *http.Request, id int64) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	artifact, err := s.intake.Document(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeArtifact(w, artifact)
}

func (s *HTTPServer) handleBookingStatus(w http.ResponseWriter, r *http.Request, id int64) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req models.TransitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	req.BookingID = id

	booking, err := s.schedule.Transition(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"booking": booking})
}

func (s *HTTPServer) handleCompanies(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	companies, err := s.intake.Companies(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"companies": companies})
}

func (s *HTTPServer) handleMessengers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"messengers": s.messengers})
}

func (s *HTTPServer) handleReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	report, err := s.reports.Query(r.Context(), reportQueryFromRequest(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}

func (s *HTTPServer) handleReportExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	format := models.ExportFormat(r.URL.Query().Get("format"))
	artifact, err := s.reports.Export(r.Context(), reportQueryFromRequest(r), format)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeArtifact(w, artifact)
}

func reportQueryFromRequest(r *http.Request) models.ReportQuery {
	query := r.URL.Query()
	return models.ReportQuery{
		StartDate: strings.TrimSpace(query.Get("start_date")),
		EndDate:   strings.TrimSpace(query.Get("end_date")),
		Status:    models.Status(strings.TrimSpace(query.Get("status"))),
	}
}

func (s *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeArtifact(w http.ResponseWriter, artifact *models.Artifact) {
	contentType := artifact.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+artifact.FileName+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifact.Data)
}
