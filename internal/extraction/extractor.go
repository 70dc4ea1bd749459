package extraction

import "context"

// ReplyKind classifies what a supplier reply contains
type ReplyKind string

const (
	ReplyKindQuote          ReplyKind = "quote"
	ReplyKindQuestion       ReplyKind = "question"
	ReplyKindAcknowledgment ReplyKind = "acknowledgment"
	ReplyKindUnknown        ReplyKind = "unknown"
)

// IntentKind classifies an inbound message from an unrecognized sender
type IntentKind string

const (
	IntentPartsRequest     IntentKind = "parts_request"
	IntentSupplierResponse IntentKind = "supplier_response"
	IntentUnknown          IntentKind = "unknown"
)

// RequestContext describes the inquiry a supplier is replying to, used to
// anchor extraction
type RequestContext struct {
	PartDescription string
	VehicleInfo     string
	Quantity        int
}

// QuoteFields is the structured data extracted from a supplier reply.
// Nil pointer fields mean the supplier did not state that detail.
type QuoteFields struct {
	Price        *float64 `json:"price"`
	Currency     string   `json:"currency"`
	Availability string   `json:"availability"`
	DeliveryDays *int     `json:"delivery_days"`
	ShippingCost *float64 `json:"shipping_cost"`
	Condition    string   `json:"condition"`
	Notes        string   `json:"notes"`
	IsQuote      bool     `json:"is_quote"`
	Confidence   float64  `json:"confidence"`
	TotalPrice   *float64 `json:"total_price"`
}

// ComputeTotal fills TotalPrice as price plus shipping when both are known,
// otherwise the bare price
func (q *QuoteFields) ComputeTotal() {
	if q.Price != nil && q.ShippingCost != nil {
		total := *q.Price + *q.ShippingCost
		q.TotalPrice = &total
		return
	}
	q.TotalPrice = q.Price
}

// Extractor turns free-form WhatsApp text into structured procurement data.
// Implementations degrade to Fallback output rather than failing hard.
type Extractor interface {
	// ClassifyReply decides what kind of message a supplier sent
	ClassifyReply(ctx context.Context, body string) ReplyKind
	// ClassifyIntent decides what an unrecognized sender wants
	ClassifyIntent(ctx context.Context, body string) IntentKind
	// ExtractQuote parses a supplier reply into quote fields
	ExtractQuote(ctx context.Context, body string, reqCtx RequestContext) *QuoteFields
}

// Fallback returns the zero-confidence parse used when extraction is
// unavailable. The raw message is preserved in the notes for manual review.
func Fallback(body string) *QuoteFields {
	return &QuoteFields{
		Notes:      body,
		IsQuote:    false,
		Confidence: 0,
	}
}
