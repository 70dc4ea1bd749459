package extraction

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hexaparts/procurement-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestComputeTotal(t *testing.T) {
	price := 450.0
	shipping := 20.0

	withShipping := &QuoteFields{Price: &price, ShippingCost: &shipping}
	withShipping.ComputeTotal()
	require.NotNil(t, withShipping.TotalPrice)
	assert.Equal(t, 470.0, *withShipping.TotalPrice)

	priceOnly := &QuoteFields{Price: &price}
	priceOnly.ComputeTotal()
	require.NotNil(t, priceOnly.TotalPrice)
	assert.Equal(t, 450.0, *priceOnly.TotalPrice)

	empty := &QuoteFields{}
	empty.ComputeTotal()
	assert.Nil(t, empty.TotalPrice)
}

func TestFallback(t *testing.T) {
	fields := Fallback("450 qar bosch")

	assert.Equal(t, "450 qar bosch", fields.Notes)
	assert.False(t, fields.IsQuote)
	assert.Equal(t, 0.0, fields.Confidence)
	assert.Nil(t, fields.Price)
}

func newTestExtractor(baseURL string, enabled bool) *AnthropicExtractor {
	return NewAnthropicExtractor(&config.ExtractionConfig{
		Enabled:   enabled,
		APIKey:    "test-key",
		Model:     "test-model",
		BaseURL:   baseURL,
		MaxTokens: 500,
		Timeout:   5,
	}, zap.NewNop())
}

func anthropicStub(t *testing.T, text string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))

		w.Header().Set("Content-Type", "application/json")
		payload := `{"content":[{"type":"text","text":` + text + `}]}`
		w.Write([]byte(payload))
	}))
}

func TestClassifyReply(t *testing.T) {
	srv := anthropicStub(t, `"question"`)
	defer srv.Close()

	kind := newTestExtractor(srv.URL, true).ClassifyReply(context.Background(), "Which engine size?")
	assert.Equal(t, ReplyKindQuestion, kind)
}

func TestClassifyReply_DisabledReturnsUnknown(t *testing.T) {
	kind := newTestExtractor("http://unused", false).ClassifyReply(context.Background(), "450 qar")
	assert.Equal(t, ReplyKindUnknown, kind)
}

func TestExtractQuote(t *testing.T) {
	srv := anthropicStub(t, `"{\"price\": 450, \"currency\": \"QAR\", \"availability\": \"in_stock\", \"delivery_days\": 2, \"shipping_cost\": 20, \"is_quote\": true, \"confidence\": 0.92}"`)
	defer srv.Close()

	fields := newTestExtractor(srv.URL, true).ExtractQuote(context.Background(), "450 qar in stock 2 days", RequestContext{
		PartDescription: "Front brake pads",
		Quantity:        1,
	})

	require.NotNil(t, fields.Price)
	assert.Equal(t, 450.0, *fields.Price)
	assert.Equal(t, "QAR", fields.Currency)
	assert.True(t, fields.IsQuote)
	assert.Equal(t, 0.92, fields.Confidence)
	// Total is derived, the model never supplies it
	require.NotNil(t, fields.TotalPrice)
	assert.Equal(t, 470.0, *fields.TotalPrice)
}

func TestExtractQuote_MarkdownFencesStripped(t *testing.T) {
	srv := anthropicStub(t, "\"```json\\n{\\\"price\\\": 300, \\\"is_quote\\\": true, \\\"confidence\\\": 0.8}\\n```\"")
	defer srv.Close()

	fields := newTestExtractor(srv.URL, true).ExtractQuote(context.Background(), "300", RequestContext{})
	require.NotNil(t, fields.Price)
	assert.Equal(t, 300.0, *fields.Price)
	assert.Equal(t, "QAR", fields.Currency)
}

func TestExtractQuote_InvalidJSONFallsBack(t *testing.T) {
	srv := anthropicStub(t, `"sorry, I cannot parse that"`)
	defer srv.Close()

	fields := newTestExtractor(srv.URL, true).ExtractQuote(context.Background(), "450 qar", RequestContext{})
	assert.Nil(t, fields.Price)
	assert.Equal(t, "450 qar", fields.Notes)
	assert.Equal(t, 0.0, fields.Confidence)
}

func TestExtractQuote_APIErrorFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"type":"rate_limit_error","message":"slow down"}}`))
	}))
	defer srv.Close()

	fields := newTestExtractor(srv.URL, true).ExtractQuote(context.Background(), "450 qar", RequestContext{})
	assert.Nil(t, fields.Price)
	assert.Equal(t, "450 qar", fields.Notes)
}
