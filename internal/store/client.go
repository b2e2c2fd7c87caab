package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"courierdesk/internal/config"
	"courierdesk/internal/metrics"
	"courierdesk/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const companiesCacheKey = "companies"

// Client talks to the external record store over HTTP/JSON. It owns the
// session token and classifies every failure into a store.Error.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zerolog.Logger

	mu    sync.RWMutex
	token string

	onSessionExpired func()

	redis    *redis.Client
	cacheTTL time.Duration
}

// New constructs a record store client from configuration.
func New(cfg config.RecordStoreConfig, logger *zerolog.Logger) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		token:      cfg.SessionToken,
		logger:     logger,
		httpClient: &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
		cacheTTL:   time.Duration(cfg.CompaniesCacheTTLSecond) * time.Second,
	}
}

// UseRedisCache enables Redis caching for the companies listing.
func (c *Client) UseRedisCache(redisClient *redis.Client) {
	c.redis = redisClient
}

// SetSessionToken replaces the bearer token used on every request.
func (c *Client) SetSessionToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// SessionToken returns the current bearer token.
func (c *Client) SessionToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// OnSessionExpired registers a hook invoked once per expired session, after
// the stale token has been cleared.
func (c *Client) OnSessionExpired(fn func()) {
	c.onSessionExpired = fn
}

// Login exchanges credentials for a session token and stores it on the
// client. Auth failures here never trip the session expiry hook.
func (c *Client) Login(ctx context.Context, username, password string) error {
	body := map[string]string{"username": username, "password": password}
	var resp struct {
		AccessToken string `json:"access_token"`
	}

	if err := c.doJSON(ctx, "login", http.MethodPost, "/api/auth/login", body, &resp); err != nil {
		return err
	}

	c.SetSessionToken(resp.AccessToken)
	return nil
}

// ListSchedule fetches the full admin booking list.
func (c *Client) ListSchedule(ctx context.Context) ([]models.Booking, error) {
	var resp struct {
		Bookings []models.Booking `json:"bookings"`
	}
	if err := c.doJSON(ctx, "list_schedule", http.MethodGet, "/api/admin/bookings", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Bookings, nil
}

// CreateBooking submits a new booking draft and returns its id.
func (c *Client) CreateBooking(ctx context.Context, draft models.BookingDraft) (int64, error) {
	var resp struct {
		BookingID int64 `json:"booking_id"`
	}
	if err := c.doJSON(ctx, "create_booking", http.MethodPost, "/api/bookings", draft, &resp); err != nil {
		return 0, err
	}
	return resp.BookingID, nil
}

// PatchStatus commits a status change and returns the updated booking.
func (c *Client) PatchStatus(ctx context.Context, id int64, status models.Status, messengerName string) (*models.Booking, error) {
	body := struct {
		Status        models.Status `json:"status"`
		MessengerName string        `json:"messenger_name,omitempty"`
	}{Status: status, MessengerName: messengerName}

	var resp struct {
		Booking models.Booking `json:"booking"`
	}
	path := fmt.Sprintf("/api/admin/bookings/%d/status", id)
	if err := c.doJSON(ctx, "patch_status", http.MethodPatch, path, body, &resp); err != nil {
		return nil, err
	}
	return &resp.Booking, nil
}

// ListCompanies returns the registered companies, served from Redis when a
// fresh cache entry exists.
func (c *Client) ListCompanies(ctx context.Context) ([]models.Company, error) {
	var resp struct {
		Companies []models.Company `json:"companies"`
	}

	if c.readCache(ctx, companiesCacheKey, &resp) {
		return resp.Companies, nil
	}

	if err := c.doJSON(ctx, "list_companies", http.MethodGet, "/api/bookings/companies", nil, &resp); err != nil {
		return nil, err
	}

	c.writeCache(ctx, companiesCacheKey, resp)
	return resp.Companies, nil
}

// QueryReport fetches bookings matching the report query.
func (c *Client) QueryReport(ctx context.Context, q models.ReportQuery) ([]models.Booking, error) {
	var resp struct {
		Bookings []models.Booking `json:"bookings"`
	}
	if err := c.doJSON(ctx, "query_report", http.MethodGet, "/api/admin/report?"+reportParams(q), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Bookings, nil
}

// ExportReport fetches a rendered report artifact in the given format.
func (c *Client) ExportReport(ctx context.Context, q models.ReportQuery, format models.ExportFormat) (*models.Artifact, error) {
	path := fmt.Sprintf("/api/admin/report/%s?%s", format.StorePath(), reportParams(q))
	return c.doBinary(ctx, "export_report", path)
}

// BookingDocument fetches the rendered document for a single booking.
func (c *Client) BookingDocument(ctx context.Context, id int64) (*models.Artifact, error) {
	path := fmt.Sprintf("/api/bookings/%d/pdf", id)
	return c.doBinary(ctx, "booking_document", path)
}

func reportParams(q models.ReportQuery) string {
	params := url.Values{}
	params.Set("start_date", q.StartDate)
	params.Set("end_date", q.EndDate)
	if q.Status != "" {
		params.Set("status", string(q.Status))
	}
	return params.Encode()
}

func (c *Client) doJSON(ctx context.Context, op, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", op, err)
		}
		reader = bytes.NewReader(data)
	}

	resp, err := c.do(ctx, op, method, path, reader)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return c.failure(op, path, resp)
	}

	metrics.IncStoreRequest(op, "ok")
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) doBinary(ctx context.Context, op, path string) (*models.Artifact, error) {
	resp, err := c.do(ctx, op, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, c.failure(op, path, resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.IncStoreRequest(op, "error")
		return nil, connectivityError(op, path, err)
	}

	metrics.IncStoreRequest(op, "ok")
	return &models.Artifact{
		ContentType: resp.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

func (c *Client) do(ctx context.Context, op, method, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", op, err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.SessionToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.IncStoreRequest(op, "error")
		if c.logger != nil {
			c.logger.Warn().Err(err).Str("operation", op).Str("path", path).Msg("record store unreachable")
		}
		return nil, connectivityError(op, path, err)
	}
	return resp, nil
}

func (c *Client) failure(op, path string, resp *http.Response) error {
	metrics.IncStoreRequest(op, "error")

	var payload struct {
		Msg     string `json:"msg"`
		Message string `json:"message"`
	}
	_ = json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&payload)
	message := payload.Msg
	if message == "" {
		message = payload.Message
	}

	err := classify(op, path, resp.StatusCode, message)

	if err.SessionExpired {
		c.SetSessionToken("")
		if c.onSessionExpired != nil {
			c.onSessionExpired()
		}
	}

	if c.logger != nil {
		c.logger.Error().
			Str("operation", op).
			Str("path", path).
			Int("status", resp.StatusCode).
			Str("kind", string(err.Kind)).
			Msg("record store request failed")
	}

	return err
}

func (c *Client) readCache(ctx context.Context, key string, out any) bool {
	if c.redis == nil || c.cacheTTL <= 0 {
		return false
	}
	val, err := c.redis.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	if err := json.Unmarshal([]byte(val), out); err != nil {
		return false
	}
	return true
}

func (c *Client) writeCache(ctx context.Context, key string, val any) {
	if c.redis == nil || c.cacheTTL <= 0 {
		return
	}
	data, err := json.Marshal(val)
	if err != nil {
		return
	}
	_ = c.redis.Set(ctx, key, data, c.cacheTTL).Err()
}
