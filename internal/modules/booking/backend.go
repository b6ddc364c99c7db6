// README: Clients for the booking backend and the transactional email API.
package booking

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

type BackendClient struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewBackendClient(baseURL, token string, httpClient *http.Client) *BackendClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &BackendClient{baseURL: strings.TrimRight(baseURL, "/"), token: token, http: httpClient}
}

// Create posts b to {base}/bookings. Failures are *SubmissionError.
func (c *BackendClient) Create(ctx context.Context, b Booking) error {
	headers := map[string]string{}
	if c.token != "" {
		headers["Authorization"] = "Bearer " + c.token
	}
	return postJSON(ctx, c.http, "booking backend", c.baseURL+"/bookings", headers, b)
}

type EmailConfig struct {
	Endpoint   string
	ServiceID  string
	TemplateID string
	PublicKey  string
	AdminTo    string
}

type EmailClient struct {
	cfg  EmailConfig
	http *http.Client
}

func NewEmailClient(cfg EmailConfig, httpClient *http.Client) *EmailClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &EmailClient{cfg: cfg, http: httpClient}
}

// Enabled is false until service, template and key are all set.
func (c *EmailClient) Enabled() bool {
	return c.cfg.ServiceID != "" && c.cfg.TemplateID != "" && c.cfg.PublicKey != ""
}

type emailRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	TemplateParams map[string]string `json:"template_params"`
}

func (c *EmailClient) Send(ctx context.Context, b Booking) error {
	fare := ""
	if b.EstimatedFare != nil {
		fare = fmt.Sprintf("%d %s", b.EstimatedFare.Amount, b.EstimatedFare.Currency)
	}
	req := emailRequest{
		ServiceID:  c.cfg.ServiceID,
		TemplateID: c.cfg.TemplateID,
		UserID:     c.cfg.PublicKey,
		TemplateParams: map[string]string{
			"booking_id":     string(b.ID),
			"to_email":       c.cfg.AdminTo,
			"reply_to":       b.Email,
			"customer_name":  b.Name,
			"customer_email": b.Email,
			"customer_phone": b.Phone,
			"pickup":         b.Pickup,
			"drop":           b.Drop,
			"vehicle":        b.Category,
			"trip_type":      b.TripType,
			"date":           b.Date,
			"time":           b.Time,
			"passengers":     fmt.Sprint(b.Passengers),
			"notes":          b.Notes,
			"estimated_fare": fare,
		},
	}
	return postJSON(ctx, c.http, "email", c.cfg.Endpoint, nil, req)
}

func postJSON(ctx context.Context, client *http.Client, upstream, url string, headers map[string]string, body any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return &SubmissionError{Upstream: upstream, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return &SubmissionError{Upstream: upstream, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &SubmissionError{Upstream: upstream, Status: resp.StatusCode, Reason: upstreamReason(msg)}
	}
	return nil
}

// upstreamReason pulls a message out of {"message": ...} or {"error": ...},
// or uses a short plain-text body as is.
func upstreamReason(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		return payload.Error
	}
	text := strings.TrimSpace(string(body))
	if len(text) > 200 || strings.HasPrefix(text, "<") {
		return ""
	}
	return text
}
