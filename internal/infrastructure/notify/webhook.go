// Package notify delivers supplier restock requests over HTTP.
package notify

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"

	"backoffice/internal/domain/supplier"
)

// WebhookConfig configures the webhook notifier.
type WebhookConfig struct {
	URL   string
	Token string
	// RatePerSecond and Burst bound outgoing requests.
	RatePerSecond float64
	Burst         int
	Timeout       time.Duration
	RetryCount    int
}

// Webhook posts each notification as JSON to a configured endpoint.
type Webhook struct {
	httpClient *resty.Client
	limiter    *rate.Limiter
	url        string
}

// Message is the JSON body sent to the webhook.
type Message struct {
	SupplierID string    `json:"supplierId"`
	Supplier   string    `json:"supplier"`
	Contact    string    `json:"contact,omitempty"`
	Email      string    `json:"email,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	Text       string    `json:"text"`
	SentAt     time.Time `json:"sentAt"`
}

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// NewWebhook builds a rate-limited resty client for cfg.
func NewWebhook(cfg WebhookConfig) *Webhook {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.RatePerSecond <= 0 {
		cfg.RatePerSecond = 5
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}

	restyClient := resty.New().
		SetHeader("Content-Type", "application/json").
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(500 * time.Millisecond).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() >= http.StatusInternalServerError
		})
	if cfg.Token != "" {
		restyClient.SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.Token))
	}

	return &Webhook{
		httpClient: restyClient,
		limiter:    rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.Burst),
		url:        cfg.URL,
	}
}

// SendSupplierNotification implements alerts.SupplierNotifier.
func (w *Webhook) SendSupplierNotification(ctx context.Context, s *supplier.Supplier, message string) error {
	if err := w.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("wait for rate limiter: %w", err)
	}

	body := Message{
		SupplierID: s.ID.String(),
		Supplier:   s.Name,
		Contact:    s.ContactPerson,
		Email:      s.Email,
		Phone:      s.Phone,
		Text:       message,
		SentAt:     time.Now().UTC(),
	}
	apiErr := new(apiError)

	resp, err := w.httpClient.R().
		SetContext(ctx).
		SetBody(body).
		SetError(apiErr).
		Post(w.url)
	if err != nil {
		return fmt.Errorf("post supplier notification: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		msg := apiErr.Message
		if msg == "" {
			msg = apiErr.Error
		}
		if msg == "" {
			msg = http.StatusText(resp.StatusCode())
		}
		return fmt.Errorf("webhook error: status=%d, message=%s", resp.StatusCode(), msg)
	}
	return nil
}
