package invoiceapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"

	"github.com/polkiloo/invoicebox/internal/domain/model"
)

// APIError is a non-2xx answer from the invoicing API.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("invoicing api: status %d", e.Status)
	}
	return fmt.Sprintf("invoicing api: status %d: %s", e.Status, e.Detail)
}

// Detail returns the server-provided message carried by err, or fallback.
func Detail(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return fallback
}

// IsUnauthorized reports whether the API rejected the bearer token.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// Credentials is the login payload.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Registration is the sign-up payload.
type Registration struct {
	Username string     `json:"username"`
	Email    string     `json:"email"`
	Password string     `json:"password"`
	Role     model.Role `json:"role"`
}

// AuthResult is returned by login and registration.
type AuthResult struct {
	AccessToken string     `json:"access_token"`
	TokenType   string     `json:"token_type"`
	UserID      int64      `json:"user_id"`
	Role        model.Role `json:"role"`
}

// Client exposes the invoicing API operations used by the front ends.
type Client interface {
	Login(ctx context.Context, creds Credentials) (*AuthResult, error)
	Register(ctx context.Context, reg Registration) (*AuthResult, error)
	Purchasers(ctx context.Context, token string) ([]model.Purchaser, error)
	Invoices(ctx context.Context, token string) ([]model.Invoice, error)
	CreateInvoice(ctx context.Context, token string, inv model.NewInvoice) (*model.Invoice, error)
	UpdateInvoice(ctx context.Context, token string, id int64, update model.StatusUpdate) (*model.Invoice, error)
	Dashboard(ctx context.Context, token string) (*model.DashboardStats, error)
	Analytics(ctx context.Context, token string) (*model.Analytics, error)
}

// Observer receives the outcome of every API call.
type Observer interface {
	ObserveAPICall(endpoint string, status int, elapsed time.Duration)
}

// HTTPClient implements Client via the JSON HTTP API.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
	observer   Observer
}

// NewHTTPClient creates an API client. A non-positive timeout falls back to 10s.
func NewHTTPClient(baseURL string, timeout time.Duration, logger *slog.Logger, observer Observer) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse api url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("api url must be absolute")
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPClient{
		baseURL:  parsed,
		logger:   logger,
		observer: observer,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// Login exchanges credentials for a bearer token.
func (c *HTTPClient) Login(ctx context.Context, creds Credentials) (*AuthResult, error) {
	var out AuthResult
	if err := c.do(ctx, http.MethodPost, "/login", "", creds, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates an account and returns its bearer token.
func (c *HTTPClient) Register(ctx context.Context, reg Registration) (*AuthResult, error) {
	var out AuthResult
	if err := c.do(ctx, http.MethodPost, "/register", "", reg, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Purchasers lists users selectable as invoice recipients.
func (c *HTTPClient) Purchasers(ctx context.Context, token string) ([]model.Purchaser, error) {
	var out []model.Purchaser
	if err := c.do(ctx, http.MethodGet, "/users", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Invoices lists the invoices visible to the token owner.
func (c *HTTPClient) Invoices(ctx context.Context, token string) ([]model.Invoice, error) {
	var out []model.Invoice
	if err := c.do(ctx, http.MethodGet, "/invoices", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateInvoice issues a new invoice.
func (c *HTTPClient) CreateInvoice(ctx context.Context, token string, inv model.NewInvoice) (*model.Invoice, error) {
	var out model.Invoice
	if err := c.do(ctx, http.MethodPost, "/invoices", token, inv, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateInvoice requests a status transition.
func (c *HTTPClient) UpdateInvoice(ctx context.Context, token string, id int64, update model.StatusUpdate) (*model.Invoice, error) {
	var out model.Invoice
	if err := c.do(ctx, http.MethodPut, "/invoices/"+strconv.FormatInt(id, 10), token, update, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Dashboard fetches the summary counters.
func (c *HTTPClient) Dashboard(ctx context.Context, token string) (*model.DashboardStats, error) {
	var out model.DashboardStats
	if err := c.do(ctx, http.MethodGet, "/dashboard", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Analytics fetches the aggregate breakdowns.
func (c *HTTPClient) Analytics(ctx context.Context, token string) (*model.Analytics, error) {
	var out model.Analytics
	if err := c.do(ctx, http.MethodGet, "/analytics", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) do(ctx context.Context, method, route, token string, in, out any) error {
	endpoint := *c.baseURL
	endpoint.Path = path.Join("/", endpoint.Path, route)

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	label := method + " " + routeLabel(route)
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(label, 0, start)
		return err
	}
	defer resp.Body.Close()
	c.observe(label, resp.StatusCode, start)

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode, Detail: parseDetail(data)}
		c.logger.Warn("invoicing api request failed",
			slog.String("endpoint", label),
			slog.Int("status", resp.StatusCode),
			slog.String("detail", apiErr.Detail),
		)
		return apiErr
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s response: %w", label, err)
	}
	return nil
}

func (c *HTTPClient) observe(label string, status int, start time.Time) {
	if c.observer != nil {
		c.observer.ObserveAPICall(label, status, time.Since(start))
	}
}

// routeLabel collapses numeric path segments so metrics stay low-cardinality.
func routeLabel(route string) string {
	dir, last := path.Split(route)
	if _, err := strconv.ParseInt(last, 10, 64); err == nil {
		return dir + "{id}"
	}
	return route
}

// parseDetail extracts the "detail" member of an error body. Validation
// errors carry a list of objects, the first "msg" is used then.
func parseDetail(body []byte) string {
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Detail) == 0 {
		return ""
	}

	var text string
	if err := json.Unmarshal(envelope.Detail, &text); err == nil {
		return text
	}

	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(envelope.Detail, &items); err == nil && len(items) > 0 {
		return items[0].Msg
	}
	return ""
}
