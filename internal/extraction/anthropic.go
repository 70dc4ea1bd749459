package extraction

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/hexaparts/procurement-api/internal/config"
	"go.uber.org/zap"
)

const anthropicVersion = "2023-06-01"

// AnthropicExtractor calls the Anthropic Messages API to classify and parse
// free-form supplier messages. All failures degrade to the fallback parse so
// message processing never blocks on the AI service.
type AnthropicExtractor struct {
	cfg    *config.ExtractionConfig
	client *http.Client
	logger *zap.Logger
}

// NewAnthropicExtractor creates an extractor backed by the Anthropic API
func NewAnthropicExtractor(cfg *config.ExtractionConfig, logger *zap.Logger) *AnthropicExtractor {
	return &AnthropicExtractor{
		cfg: cfg,
		client: &http.Client{
			Timeout: cfg.TimeoutDuration(),
		},
		logger: logger,
	}
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// complete runs one prompt through the Messages API and returns the text
func (e *AnthropicExtractor) complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if !e.cfg.Enabled || e.cfg.APIKey == "" {
		return "", fmt.Errorf("extraction disabled")
	}

	reqBody := anthropicRequest{
		Model:     e.cfg.Model,
		MaxTokens: maxTokens,
		Messages: []anthropicMessage{
			{Role: "user", Content: prompt},
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal extraction request: %w", err)
	}

	endpoint := strings.TrimRight(e.cfg.BaseURL, "/") + "/v1/messages"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build extraction request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", e.cfg.APIKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("extraction call failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read extraction response: %w", err)
	}

	var parsed anthropicResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode extraction response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail := ""
		if parsed.Error != nil {
			detail = parsed.Error.Message
		}
		return "", fmt.Errorf("extraction call returned status %d: %s", resp.StatusCode, detail)
	}

	if len(parsed.Content) == 0 {
		return "", fmt.Errorf("extraction response contained no content")
	}

	return strings.TrimSpace(parsed.Content[0].Text), nil
}

// ClassifyReply decides what kind of message a supplier sent
func (e *AnthropicExtractor) ClassifyReply(ctx context.Context, body string) ReplyKind {
	prompt := fmt.Sprintf(`A supplier replied to an auto parts inquiry with this message:
%q

Classify this as exactly one of:
- "quote" (they gave a price, availability, or both)
- "question" (they're asking for clarification, e.g. "which model?", "4WD or 2WD?")
- "acknowledgment" (they're saying they'll check, e.g. "ok will check", "give me 10 minutes")
- "unknown" (can't tell)

Respond with just the single word.`, body)

	text, err := e.complete(ctx, prompt, 20)
	if err != nil {
		e.logger.Warn("reply classification failed, treating as unknown", zap.Error(err))
		return ReplyKindUnknown
	}

	switch strings.Trim(strings.ToLower(text), `"`) {
	case "quote":
		return ReplyKindQuote
	case "question":
		return ReplyKindQuestion
	case "acknowledgment":
		return ReplyKindAcknowledgment
	default:
		return ReplyKindUnknown
	}
}

// ClassifyIntent decides what an unrecognized sender wants
func (e *AnthropicExtractor) ClassifyIntent(ctx context.Context, body string) IntentKind {
	prompt := fmt.Sprintf(`A WhatsApp message was received by a procurement system for an auto workshop.
Classify this message as exactly one of:
- "parts_request" (someone is asking for a part to be sourced/ordered)
- "supplier_response" (someone is replying with a price, availability, or quote)
- "unknown" (can't determine)

Message: %q

Respond with just the classification word, nothing else.`, body)

	text, err := e.complete(ctx, prompt, 20)
	if err != nil {
		e.logger.Warn("intent classification failed, treating as unknown", zap.Error(err))
		return IntentUnknown
	}

	switch strings.Trim(strings.ToLower(text), `"`) {
	case "parts_request":
		return IntentPartsRequest
	case "supplier_response":
		return IntentSupplierResponse
	default:
		return IntentUnknown
	}
}

// ExtractQuote parses a supplier reply into quote fields. Suppliers write in
// messy shorthand, multiple currencies, and multiple languages.
func (e *AnthropicExtractor) ExtractQuote(ctx context.Context, body string, reqCtx RequestContext) *QuoteFields {
	prompt := fmt.Sprintf(`You are parsing a supplier's WhatsApp reply to an auto parts inquiry.

The original inquiry was for:
- Part: %s
- Vehicle: %s
- Quantity: %d

The supplier replied with this message:
%q

Extract the following. If a field cannot be determined, set it to null.
Respond with ONLY valid JSON. No markdown fences. No explanation.

{
  "price": null or number (unit price as plain number, no currency symbol),
  "currency": "QAR" or "AED" or "USD" (default "QAR" if ambiguous),
  "availability": "in_stock" or "out_of_stock" or "can_order" or "checking" or "discontinued",
  "delivery_days": null or number (0 = same day, 1 = tomorrow, etc),
  "shipping_cost": null or number (only if mentioned separately),
  "condition": null or string (e.g. "genuine", "aftermarket", "OEM", or brand name),
  "notes": null or string (any other relevant info),
  "is_quote": true or false (true if they gave a price or availability, false if just acknowledging),
  "confidence": number 0 to 1 (how confident you are in this parse)
}`, reqCtx.PartDescription, reqCtx.VehicleInfo, reqCtx.Quantity, body)

	text, err := e.complete(ctx, prompt, e.cfg.MaxTokens)
	if err != nil {
		e.logger.Warn("quote extraction failed, using fallback parse", zap.Error(err))
		return Fallback(body)
	}

	// Strip markdown fences when the model adds them anyway
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	text = strings.TrimSpace(text)

	var fields QuoteFields
	if err := json.Unmarshal([]byte(text), &fields); err != nil {
		e.logger.Warn("quote extraction returned invalid JSON, using fallback parse",
			zap.Error(err),
			zap.String("raw", text),
		)
		return Fallback(body)
	}

	if fields.Currency == "" {
		fields.Currency = "QAR"
	}
	fields.ComputeTotal()
	return &fields
}
