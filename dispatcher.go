package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultDispatchTimeout bounds the reset-message delivery so the issuing
// request never stalls on a slow messaging backend.
var DefaultDispatchTimeout = 5 * time.Second

// WebhookDispatcherConfig configures the webhook backed Dispatcher.
type WebhookDispatcherConfig struct {
	WebhookURL    string
	ResetLinkBase string
	Timeout       time.Duration
	Client        *http.Client
	Logger        Logger
}

// WebhookDispatcher posts reset messages to the platform messaging service,
// which handles template rendering and actual email delivery.
type WebhookDispatcher struct {
	webhookURL    string
	resetLinkBase string
	client        *http.Client
	logger        Logger
}

var _ Dispatcher = (*WebhookDispatcher)(nil)

// NewWebhookDispatcher builds a webhook dispatcher. Callers should pass a
// validated config.
func NewWebhookDispatcher(cfg WebhookDispatcherConfig) (*WebhookDispatcher, error) {
	webhookURL := strings.TrimSpace(cfg.WebhookURL)
	if webhookURL == "" {
		return nil, fmt.Errorf("dispatcher webhook url is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultDispatchTimeout
	}

	hc := cfg.Client
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = defLogger{}
	}

	return &WebhookDispatcher{
		webhookURL:    webhookURL,
		resetLinkBase: strings.TrimSpace(cfg.ResetLinkBase),
		client:        hc,
		logger:        logger,
	}, nil
}

// SendResetMessage posts the reset payload to the messaging webhook. The
// secret only ever travels inside the reset link, never in logs.
func (d *WebhookDispatcher) SendResetMessage(ctx context.Context, destination, secret, displayName string) error {
	payload := map[string]any{
		"template":     "password_reset",
		"destination":  destination,
		"display_name": displayName,
		"reset_link":   d.buildResetLink(secret),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode reset payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create reset request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("reset dispatch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("reset dispatch %s: %s", resp.Status, strings.TrimSpace(string(respBody)))
	}

	_, _ = io.Copy(io.Discard, resp.Body)

	return nil
}

func (d *WebhookDispatcher) buildResetLink(secret string) string {
	base := d.resetLinkBase
	if base == "" {
		return secret
	}

	u, err := url.Parse(base)
	if err != nil {
		d.logger.Warn("invalid reset link base, sending bare secret")
		return secret
	}

	q := u.Query()
	q.Set("token", secret)
	u.RawQuery = q.Encode()

	return u.String()
}

// LogDispatcher is a development fallback that records the destination and
// display name only. It never logs the secret.
type LogDispatcher struct {
	Logger Logger
}

var _ Dispatcher = (*LogDispatcher)(nil)

func (d LogDispatcher) SendResetMessage(_ context.Context, destination, _ string, displayName string) error {
	logger := d.Logger
	if logger == nil {
		logger = defLogger{}
	}
	logger.Info("password reset message for %s (%s)", destination, displayName)
	return nil
}
