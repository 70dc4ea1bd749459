package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/hexaparts/procurement-api/internal/config"
	"go.uber.org/zap"
)

// TwilioTransport sends WhatsApp messages through the Twilio REST API
type TwilioTransport struct {
	cfg    *config.WhatsAppConfig
	client *http.Client
	logger *zap.Logger
}

// NewTwilioTransport creates a Twilio-backed transport
func NewTwilioTransport(cfg *config.WhatsAppConfig, logger *zap.Logger) *TwilioTransport {
	return &TwilioTransport{
		cfg: cfg,
		client: &http.Client{
			Timeout: cfg.TimeoutDuration(),
		},
		logger: logger,
	}
}

// twilioMessageResponse is the subset of the Twilio message resource we read
type twilioMessageResponse struct {
	Sid          string `json:"sid"`
	Status       string `json:"status"`
	ErrorCode    int    `json:"code"`
	ErrorMessage string `json:"message"`
}

// NormalizeNumber ensures the whatsapp: prefix Twilio expects
func NormalizeNumber(number string) string {
	if strings.HasPrefix(number, "whatsapp:") {
		return number
	}
	return "whatsapp:" + number
}

// StripPrefix removes the whatsapp: prefix for database lookups
func StripPrefix(number string) string {
	return strings.TrimSpace(strings.TrimPrefix(number, "whatsapp:"))
}

// Send delivers one WhatsApp message and returns the provider acknowledgment
func (t *TwilioTransport) Send(ctx context.Context, to, body string) (*SendResult, error) {
	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json",
		strings.TrimRight(t.cfg.BaseURL, "/"), t.cfg.AccountSID)

	form := url.Values{}
	form.Set("From", NormalizeNumber(t.cfg.FromNumber))
	form.Set("To", NormalizeNumber(to))
	form.Set("Body", body)
	if t.cfg.StatusCallbackURL != "" {
		form.Set("StatusCallback", t.cfg.StatusCallbackURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to build send request: %w", err)
	}
	req.SetBasicAuth(t.cfg.AccountSID, t.cfg.AuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, &SendError{To: to, Detail: err.Error()}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read send response: %w", err)
	}

	var msg twilioMessageResponse
	if err := json.Unmarshal(payload, &msg); err != nil {
		return nil, fmt.Errorf("failed to decode send response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		t.logger.Warn("WhatsApp send rejected",
			zap.String("to", to),
			zap.Int("http_status", resp.StatusCode),
			zap.Int("error_code", msg.ErrorCode),
			zap.String("error_message", msg.ErrorMessage),
		)
		return nil, &SendError{To: to, Code: msg.ErrorCode, Detail: msg.ErrorMessage}
	}

	t.logger.Debug("WhatsApp message sent",
		zap.String("to", to),
		zap.String("sid", msg.Sid),
		zap.String("status", msg.Status),
	)

	return &SendResult{
		ExternalMessageID: msg.Sid,
		Status:            msg.Status,
	}, nil
}
