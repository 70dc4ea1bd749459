package service_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/hexaparts/procurement-api/internal/database"
	"github.com/hexaparts/procurement-api/internal/domain"
	"github.com/hexaparts/procurement-api/internal/extraction"
	"github.com/hexaparts/procurement-api/internal/messaging"
	"github.com/hexaparts/procurement-api/internal/repository"
	"github.com/hexaparts/procurement-api/internal/service"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory database with the full schema
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	// One connection so every session, including transactions from
	// concurrent goroutines, sees the same in-memory database.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access underlying database: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

// sentMessage records one fake transport delivery
type sentMessage struct {
	To   string
	Body string
}

// fakeTransport captures outbound messages and fails on request for
// configured numbers
type fakeTransport struct {
	mu          sync.Mutex
	sent        []sentMessage
	failNumbers map[string]bool
	counter     int
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{failNumbers: make(map[string]bool)}
}

func (f *fakeTransport) Send(ctx context.Context, to, body string) (*messaging.SendResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failNumbers[to] {
		return nil, &messaging.SendError{To: to, Code: 21211, Detail: "invalid number"}
	}
	f.counter++
	f.sent = append(f.sent, sentMessage{To: to, Body: body})
	return &messaging.SendResult{
		ExternalMessageID: fmt.Sprintf("SM%04d", f.counter),
		Status:            "queued",
	}, nil
}

func (f *fakeTransport) sentTo(number string) []sentMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []sentMessage
	for _, m := range f.sent {
		if m.To == number {
			out = append(out, m)
		}
	}
	return out
}

func (f *fakeTransport) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

// fakeExtractor returns canned classifications and quote fields. A test can
// park ExtractQuote mid-flight by setting the gate channels: extracting is
// closed on entry, release is waited on before returning.
type fakeExtractor struct {
	replyKind  extraction.ReplyKind
	intent     extraction.IntentKind
	fields     *extraction.QuoteFields
	extracting chan struct{}
	release    chan struct{}
}

func newFakeExtractor() *fakeExtractor {
	return &fakeExtractor{
		replyKind: extraction.ReplyKindQuote,
		intent:    extraction.IntentUnknown,
	}
}

func (f *fakeExtractor) ClassifyReply(ctx context.Context, body string) extraction.ReplyKind {
	return f.replyKind
}

func (f *fakeExtractor) ClassifyIntent(ctx context.Context, body string) extraction.IntentKind {
	return f.intent
}

func (f *fakeExtractor) ExtractQuote(ctx context.Context, body string, reqCtx extraction.RequestContext) *extraction.QuoteFields {
	if f.extracting != nil {
		close(f.extracting)
	}
	if f.release != nil {
		<-f.release
	}
	if f.fields != nil {
		return f.fields
	}
	return extraction.Fallback(body)
}

// testEnv bundles the repositories and services under test
type testEnv struct {
	db           *gorm.DB
	orgRepo      *repository.OrganizationRepository
	partyRepo    *repository.PartyRepository
	supplierRepo *repository.SupplierRepository
	requestRepo  *repository.RequestRepository
	inquiryRepo  *repository.InquiryRepository
	quoteRepo    *repository.QuoteRepository
	orderRepo    *repository.OrderRepository
	messageRepo  *repository.MessageRepository
	transport    *fakeTransport
	extractor    *fakeExtractor
	routing      *service.RoutingService
	procurement  *service.ProcurementService
}

func newTestEnv(t *testing.T) *testEnv {
	db := setupTestDB(t)
	log := zap.NewNop()

	env := &testEnv{
		db:           db,
		orgRepo:      repository.NewOrganizationRepository(db),
		partyRepo:    repository.NewPartyRepository(db),
		supplierRepo: repository.NewSupplierRepository(db),
		requestRepo:  repository.NewRequestRepository(db),
		inquiryRepo:  repository.NewInquiryRepository(db),
		quoteRepo:    repository.NewQuoteRepository(db),
		orderRepo:    repository.NewOrderRepository(db),
		messageRepo:  repository.NewMessageRepository(db),
		transport:    newFakeTransport(),
		extractor:    newFakeExtractor(),
	}
	env.routing = service.NewRoutingService(env.partyRepo, env.supplierRepo, env.inquiryRepo, env.extractor, log)
	env.procurement = service.NewProcurementService(
		env.orgRepo,
		env.partyRepo,
		env.supplierRepo,
		env.requestRepo,
		env.inquiryRepo,
		env.quoteRepo,
		env.orderRepo,
		env.messageRepo,
		env.routing,
		env.transport,
		env.extractor,
		log,
	)
	return env
}

func (env *testEnv) createOrg(t *testing.T) *domain.Organization {
	org := &domain.Organization{
		Name:           "Cedars Motors & Trading Co.",
		WhatsAppNumber: "+97477671777",
	}
	if err := env.orgRepo.Create(context.Background(), org); err != nil {
		t.Fatalf("failed to create organization: %v", err)
	}
	return org
}

func (env *testEnv) createParty(t *testing.T, org *domain.Organization, name, phone string, role domain.PartyRole) *domain.Party {
	party := &domain.Party{
		OrganizationID: org.ID,
		Name:           name,
		Role:           role,
		Phone:          phone,
	}
	if err := env.partyRepo.Create(context.Background(), party); err != nil {
		t.Fatalf("failed to create party: %v", err)
	}
	return party
}

func (env *testEnv) createSupplier(t *testing.T, org *domain.Organization, name, phone string) *domain.Supplier {
	supplier := &domain.Supplier{
		OrganizationID: org.ID,
		Name:           name,
		Phone:          phone,
		IsActive:       true,
	}
	if err := env.supplierRepo.Create(context.Background(), supplier); err != nil {
		t.Fatalf("failed to create supplier: %v", err)
	}
	return supplier
}

func (env *testEnv) createRequest(t *testing.T, org *domain.Organization, part string, status domain.RequestStatus) *domain.PartsRequest {
	request := &domain.PartsRequest{
		OrganizationID:  org.ID,
		PartDescription: part,
		Quantity:        1,
		Urgency:         domain.UrgencyNormal,
		Status:          status,
	}
	if err := env.requestRepo.Create(context.Background(), request); err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	return request
}

func (env *testEnv) createInquiry(t *testing.T, request *domain.PartsRequest, supplier *domain.Supplier, sentAt time.Time) *domain.Inquiry {
	inquiry := &domain.Inquiry{
		PartsRequestID: request.ID,
		SupplierID:     supplier.ID,
		Status:         domain.InquiryStatusSent,
		SentAt:         sentAt,
	}
	if err := env.inquiryRepo.Create(context.Background(), inquiry); err != nil {
		t.Fatalf("failed to create inquiry: %v", err)
	}
	return inquiry
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
