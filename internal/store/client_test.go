package store

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"courierdesk/internal/config"
	"courierdesk/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	logger := zerolog.Nop()
	return New(config.RecordStoreConfig{
		BaseURL:                 srv.URL,
		SessionToken:            "token-1",
		TimeoutSeconds:          2,
		CompaniesCacheTTLSecond: 60,
	}, &logger)
}

func TestListSchedule(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/admin/bookings", r.URL.Path)
		assert.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		json.NewEncoder(w).Encode(map[string]any{
			"bookings": []models.Booking{
				{ID: 1, CompanyName: "Acme Ltd", Status: models.StatusPending},
				{ID: 2, CompanyName: "Globex", Status: models.StatusSuccess},
			},
		})
	}))

	bookings, err := client.ListSchedule(context.Background())
	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Equal(t, "Acme Ltd", bookings[0].CompanyName)
}

func TestPatchStatusBody(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/admin/bookings/42/status", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "SUCCESS", body["status"])
		assert.Equal(t, "Somsak", body["messenger_name"])

		json.NewEncoder(w).Encode(map[string]any{
			"booking": models.Booking{ID: 42, Status: models.StatusSuccess, MessengerName: "Somsak"},
		})
	}))

	booking, err := client.PatchStatus(context.Background(), 42, models.StatusSuccess, "Somsak")
	require.NoError(t, err)
	assert.Equal(t, models.StatusSuccess, booking.Status)
	assert.Equal(t, "Somsak", booking.MessengerName)
}

func TestExpiredSessionClearsTokenAndFiresHook(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"msg": "Token has expired"})
	}))

	fired := 0
	client.OnSessionExpired(func() { fired++ })

	_, err := client.ListSchedule(context.Background())
	require.Error(t, err)
	assert.True(t, IsAuth(err))
	assert.True(t, IsSessionExpired(err))
	assert.Equal(t, 1, fired)
	assert.Empty(t, client.SessionToken())
}

func TestLoginFailureIsNotSessionExpiry(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"msg": "Bad username or password"})
	}))

	fired := 0
	client.OnSessionExpired(func() { fired++ })

	err := client.Login(context.Background(), "admin", "wrong")
	require.Error(t, err)
	assert.True(t, IsAuth(err))
	assert.False(t, IsSessionExpired(err))
	assert.Zero(t, fired)
	assert.Equal(t, "token-1", client.SessionToken())
}

func TestForbiddenIsPermission(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]string{"msg": "Admins only!"})
	}))

	_, err := client.QueryReport(context.Background(), models.ReportQuery{StartDate: "2026-08-01", EndDate: "2026-08-31"})
	require.Error(t, err)
	assert.True(t, IsPermission(err))
	assert.False(t, IsSessionExpired(err))
}

func TestUnreachableStoreIsConnectivity(t *testing.T) {
	logger := zerolog.Nop()
	client := New(config.RecordStoreConfig{
		BaseURL:        "http://127.0.0.1:1",
		TimeoutSeconds: 1,
	}, &logger)

	_, err := client.ListSchedule(context.Background())
	require.Error(t, err)
	assert.True(t, IsConnectivity(err))
}

func TestListCompaniesUsesRedisCache(t *testing.T) {
	calls := 0
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		json.NewEncoder(w).Encode(map[string]any{
			"companies": []models.Company{{ID: 1, Name: "Acme Ltd"}},
		})
	}))

	mr := miniredis.RunT(t)
	client.UseRedisCache(redis.NewClient(&redis.Options{Addr: mr.Addr()}))

	for i := 0; i < 3; i++ {
		companies, err := client.ListCompanies(context.Background())
		require.NoError(t, err)
		require.Len(t, companies, 1)
		assert.Equal(t, "Acme Ltd", companies[0].Name)
	}

	assert.Equal(t, 1, calls)

	mr.FastForward(2 * time.Minute)
	_, err := client.ListCompanies(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestQueryReportStatusNarrows(t *testing.T) {
	all := []models.Booking{
		{ID: 1, BookingDate: "2025-01-05", Status: models.StatusCancel},
		{ID: 2, BookingDate: "2025-01-10", Status: models.StatusPending},
		{ID: 3, BookingDate: "2025-01-20", Status: models.StatusCancel},
	}

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		status := r.URL.Query().Get("status")
		matched := make([]models.Booking, 0, len(all))
		for _, b := range all {
			if status == "" || string(b.Status) == status {
				matched = append(matched, b)
			}
		}
		json.NewEncoder(w).Encode(map[string]any{"bookings": matched})
	}))

	q := models.ReportQuery{StartDate: "2025-01-01", EndDate: "2025-01-31"}

	unfiltered, err := client.QueryReport(context.Background(), q)
	require.NoError(t, err)
	require.Len(t, unfiltered, 3)

	q.Status = models.StatusCancel
	cancelled, err := client.QueryReport(context.Background(), q)
	require.NoError(t, err)
	require.Len(t, cancelled, 2)

	// Every narrowed id appears in the unfiltered result.
	ids := make(map[int64]bool, len(unfiltered))
	for _, b := range unfiltered {
		ids[b.ID] = true
	}
	for _, b := range cancelled {
		assert.True(t, ids[b.ID])
		assert.Equal(t, models.StatusCancel, b.Status)
	}
}

func TestExportReportPassesContentTypeThrough(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/admin/report/pdf", r.URL.Path)
		assert.Equal(t, "2026-08-01", r.URL.Query().Get("start_date"))
		assert.Equal(t, "PENDING", r.URL.Query().Get("status"))

		w.Header().Set("Content-Type", "application/pdf")
		w.Write([]byte("%PDF-1.7 fake"))
	}))

	artifact, err := client.ExportReport(context.Background(), models.ReportQuery{
		StartDate: "2026-08-01",
		EndDate:   "2026-08-31",
		Status:    models.StatusPending,
	}, models.FormatDocument)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", artifact.ContentType)
	assert.Equal(t, []byte("%PDF-1.7 fake"), artifact.Data)
}

func TestBookingDocument(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/bookings/7/pdf", r.URL.Path)
		w.Header().Set("Content-Type", "application/pdf")
		w.Write([]byte("doc"))
	}))

	artifact, err := client.BookingDocument(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, []byte("doc"), artifact.Data)
}
