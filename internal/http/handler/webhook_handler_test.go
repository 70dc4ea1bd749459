package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/hexaparts/procurement-api/internal/database"
	"github.com/hexaparts/procurement-api/internal/domain"
	"github.com/hexaparts/procurement-api/internal/extraction"
	"github.com/hexaparts/procurement-api/internal/http/handler"
	"github.com/hexaparts/procurement-api/internal/messaging"
	"github.com/hexaparts/procurement-api/internal/repository"
	"github.com/hexaparts/procurement-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type nullTransport struct{}

func (nullTransport) Send(ctx context.Context, to, body string) (*messaging.SendResult, error) {
	return &messaging.SendResult{ExternalMessageID: "SMtest", Status: "queued"}, nil
}

type nullExtractor struct{}

func (nullExtractor) ClassifyReply(ctx context.Context, body string) extraction.ReplyKind {
	return extraction.ReplyKindUnknown
}

func (nullExtractor) ClassifyIntent(ctx context.Context, body string) extraction.IntentKind {
	return extraction.IntentUnknown
}

func (nullExtractor) ExtractQuote(ctx context.Context, body string, reqCtx extraction.RequestContext) *extraction.QuoteFields {
	return extraction.Fallback(body)
}

func newWebhookHandler(t *testing.T) (*handler.WebhookHandler, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	// One connection so transactions share the same in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.AutoMigrate(db))

	log := zap.NewNop()
	orgRepo := repository.NewOrganizationRepository(db)
	partyRepo := repository.NewPartyRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	requestRepo := repository.NewRequestRepository(db)
	inquiryRepo := repository.NewInquiryRepository(db)
	quoteRepo := repository.NewQuoteRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	messageRepo := repository.NewMessageRepository(db)

	routing := service.NewRoutingService(partyRepo, supplierRepo, inquiryRepo, nullExtractor{}, log)
	procurement := service.NewProcurementService(
		orgRepo, partyRepo, supplierRepo, requestRepo,
		inquiryRepo, quoteRepo, orderRepo, messageRepo,
		routing, nullTransport{}, nullExtractor{}, log,
	)
	return handler.NewWebhookHandler(procurement, log), db
}

func postForm(t *testing.T, h http.HandlerFunc, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/webhook/whatsapp", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestWebhookInbound_RespondsEmptyTwiML(t *testing.T) {
	h, db := newWebhookHandler(t)
	require.NoError(t, db.Create(&domain.Organization{Name: "Cedars Motors", WhatsAppNumber: "+97477671777"}).Error)

	rec := postForm(t, h.Inbound, url.Values{
		"From":       {"whatsapp:+97455001111"},
		"Body":       {"hello"},
		"MessageSid": {"SMwebhook1"},
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/xml", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "<Response></Response>")
}

func TestWebhookInbound_MissingFieldsStill200(t *testing.T) {
	h, _ := newWebhookHandler(t)

	rec := postForm(t, h.Inbound, url.Values{"From": {"whatsapp:+97455001111"}})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<Response></Response>")
}

func TestWebhookInbound_ProcessingErrorStill200(t *testing.T) {
	// No organization seeded, ingest fails internally
	h, db := newWebhookHandler(t)
	require.NoError(t, db.Create(&domain.Party{Name: "Ahmed", Phone: "+97455001111", Role: domain.PartyRoleBuyer}).Error)

	rec := postForm(t, h.Inbound, url.Values{
		"From":       {"whatsapp:+97455001111"},
		"Body":       {"need brake pads"},
		"MessageSid": {"SMwebhook2"},
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<Response></Response>")
}

func TestWebhookStatus_RecordsDelivery(t *testing.T) {
	h, db := newWebhookHandler(t)

	record := &domain.MessageRecord{
		Direction:         domain.DirectionOutbound,
		ToNumber:          "+97455009901",
		Body:              "inquiry",
		ExternalMessageID: "SMstatus1",
		DeliveryStatus:    "queued",
		Source:            domain.SourceAPI,
	}
	require.NoError(t, db.Create(record).Error)

	rec := postForm(t, h.Status, url.Values{
		"MessageSid":    {"SMstatus1"},
		"MessageStatus": {"delivered"},
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	var reloaded domain.MessageRecord
	require.NoError(t, db.First(&reloaded, "external_message_id = ?", "SMstatus1").Error)
	assert.Equal(t, "delivered", reloaded.DeliveryStatus)
}
