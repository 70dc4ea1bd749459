package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hexaparts/procurement-api/internal/domain"
	"github.com/hexaparts/procurement-api/internal/extraction"
	"github.com/hexaparts/procurement-api/internal/repository"
	"github.com/hexaparts/procurement-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRequest_FansOutToActiveSuppliers(t *testing.T) {
	env := newTestEnv(t)
	org := env.createOrg(t)
	env.createSupplier(t, org, "Gulf Auto Care", "+97455009901")
	env.createSupplier(t, org, "Global Auto Parts", "+97455009902")
	inactive := env.createSupplier(t, org, "Closed Shop", "+97455009903")
	inactive.IsActive = false
	require.NoError(t, env.supplierRepo.Update(context.Background(), inactive))

	result, err := env.procurement.CreateRequest(context.Background(), &domain.CreateRequestRequest{
		PartDescription: "Front brake pads",
		VehicleInfo:     "Toyota Hilux 2020",
		Quantity:        2,
		Urgency:         domain.UrgencyUrgent,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.SupplierCount)
	assert.Equal(t, 0, result.FailedCount)
	assert.Equal(t, domain.RequestStatusRFQSent, result.Status)
	assert.Equal(t, 2, env.transport.sentCount())
	assert.Empty(t, env.transport.sentTo("+97455009903"))

	request, err := env.requestRepo.GetByID(context.Background(), result.RequestID)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusRFQSent, request.Status)

	counts, err := env.inquiryRepo.CountsByRequest(context.Background(), result.RequestID)
	require.NoError(t, err)
	assert.Equal(t, 2, counts.Total)
	assert.Equal(t, 0, counts.Responded)
}

func TestCreateRequest_SkipsFailedSupplier(t *testing.T) {
	env := newTestEnv(t)
	org := env.createOrg(t)
	env.createSupplier(t, org, "Gulf Auto Care", "+97455009901")
	env.createSupplier(t, org, "Broken Number", "+97455009902")
	env.transport.failNumbers["+97455009902"] = true

	result, err := env.procurement.CreateRequest(context.Background(), &domain.CreateRequestRequest{
		PartDescription: "Oil filter",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.SupplierCount)
	assert.Equal(t, 1, result.FailedCount)
	assert.Equal(t, domain.RequestStatusRFQSent, result.Status)

	// Only the reachable supplier gets an inquiry row
	counts, err := env.inquiryRepo.CountsByRequest(context.Background(), result.RequestID)
	require.NoError(t, err)
	assert.Equal(t, 1, counts.Total)

	var failed *domain.InquiryOutcome
	for i := range result.Inquiries {
		if !result.Inquiries[i].Sent {
			failed = &result.Inquiries[i]
		}
	}
	require.NotNil(t, failed)
	assert.Equal(t, "Broken Number", failed.SupplierName)
	assert.NotEmpty(t, failed.Error)
}

func TestCreateRequest_Validation(t *testing.T) {
	env := newTestEnv(t)
	org := env.createOrg(t)

	_, err := env.procurement.CreateRequest(context.Background(), &domain.CreateRequestRequest{})
	assert.ErrorIs(t, err, service.ErrDescriptionRequired)

	// No active suppliers registered yet
	_, err = env.procurement.CreateRequest(context.Background(), &domain.CreateRequestRequest{
		PartDescription: "Oil filter",
	})
	assert.ErrorIs(t, err, service.ErrNoActiveSuppliers)

	// Unknown requesting party
	env.createSupplier(t, org, "Gulf Auto Care", "+97455009901")
	unknown := uuid.New()
	_, err = env.procurement.CreateRequest(context.Background(), &domain.CreateRequestRequest{
		PartDescription: "Oil filter",
		RequestedByID:   &unknown,
	})
	assert.ErrorIs(t, err, service.ErrPartyNotFound)
}

func TestCreateRequest_CustomSupplierSelector(t *testing.T) {
	env := newTestEnv(t)
	org := env.createOrg(t)
	picked := env.createSupplier(t, org, "Gulf Auto Care", "+97455009901")
	env.createSupplier(t, org, "Global Auto Parts", "+97455009902")

	env.procurement.SetSupplierSelector(func(ctx context.Context, orgID uuid.UUID) ([]domain.Supplier, error) {
		return []domain.Supplier{*picked}, nil
	})

	result, err := env.procurement.CreateRequest(context.Background(), &domain.CreateRequestRequest{
		PartDescription: "Front brake pads",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.SupplierCount)
	assert.Equal(t, 1, env.transport.sentCount())
	assert.Len(t, env.transport.sentTo("+97455009901"), 1)
}

func TestIngestMessage_QuoteStored(t *testing.T) {
	env := newTestEnv(t)
	org := env.createOrg(t)
	supplier := env.createSupplier(t, org, "Gulf Auto Care", "+97455009901")
	request := env.createRequest(t, org, "Front brake pads", domain.RequestStatusRFQSent)
	env.createInquiry(t, request, supplier, time.Now().UTC())

	env.extractor.fields = &extraction.QuoteFields{
		Price:        floatPtr(450),
		Currency:     "QAR",
		Availability: string(domain.AvailabilityInStock),
		DeliveryDays: intPtr(2),
		IsQuote:      true,
		Confidence:   0.95,
	}

	result, err := env.procurement.IngestMessage(context.Background(), &domain.InboundMessage{
		From:              "whatsapp:+97455009901",
		Body:              "450 QAR, in stock, 2 days delivery",
		ExternalMessageID: "SMinbound1",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.IngestStatusQuoteStored, result.Status)
	assert.Equal(t, "Gulf Auto Care", result.SupplierName)
	assert.Equal(t, 1, result.RespondedCount)
	assert.Equal(t, 1, result.TotalCount)
	// Last supplier in, request closes out
	assert.Equal(t, domain.RequestStatusQuotesReceived, result.RequestStatus)

	quotes, err := env.quoteRepo.ListByRequest(context.Background(), request.ID)
	require.NoError(t, err)
	require.Len(t, quotes, 1)
	assert.Equal(t, 450.0, *quotes[0].Price)
	assert.False(t, quotes[0].NeedsReview)
	assert.Equal(t, "450 QAR, in stock, 2 days delivery", quotes[0].RawMessage)
}

func TestIngestMessage_LowConfidenceFlagsReview(t *testing.T) {
	env := newTestEnv(t)
	org := env.createOrg(t)
	supplier := env.createSupplier(t, org, "Gulf Auto Care", "+97455009901")
	request := env.createRequest(t, org, "Front brake pads", domain.RequestStatusRFQSent)
	env.createInquiry(t, request, supplier, time.Now().UTC())

	env.extractor.fields = &extraction.QuoteFields{
		Price:      floatPtr(450),
		IsQuote:    true,
		Confidence: 0.5,
	}

	result, err := env.procurement.IngestMessage(context.Background(), &domain.InboundMessage{
		From:              "+97455009901",
		Body:              "maybe 450 or so",
		ExternalMessageID: "SMinbound2",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.IngestStatusQuoteStored, result.Status)

	quotes, err := env.quoteRepo.ListByRequest(context.Background(), request.ID)
	require.NoError(t, err)
	require.Len(t, quotes, 1)
	assert.True(t, quotes[0].NeedsReview)
	// Currency defaults when the supplier never stated one
	assert.Equal(t, "QAR", quotes[0].Currency)
}

func TestIngestMessage_SecondReplyOverwritesQuote(t *testing.T) {
	env := newTestEnv(t)
	org := env.createOrg(t)
	supplier := env.createSupplier(t, org, "Gulf Auto Care", "+97455009901")
	request := env.createRequest(t, org, "Front brake pads", domain.RequestStatusRFQSent)
	env.createInquiry(t, request, supplier, time.Now().UTC())

	env.extractor.fields = &extraction.QuoteFields{Price: floatPtr(450), IsQuote: true, Confidence: 0.9}
	_, err := env.procurement.IngestMessage(context.Background(), &domain.InboundMessage{
		From: "+97455009901", Body: "450 QAR", ExternalMessageID: "SMfirst",
	})
	require.NoError(t, err)

	env.extractor.fields = &extraction.QuoteFields{Price: floatPtr(400), IsQuote: true, Confidence: 0.9}
	_, err = env.procurement.IngestMessage(context.Background(), &domain.InboundMessage{
		From: "+97455009901", Body: "sorry, make that 400", ExternalMessageID: "SMsecond",
	})
	require.NoError(t, err)

	quotes, err := env.quoteRepo.ListByRequest(context.Background(), request.ID)
	require.NoError(t, err)
	require.Len(t, quotes, 1)
	assert.Equal(t, 400.0, *quotes[0].Price)
	// An overwrite is always flagged for a human look
	assert.True(t, quotes[0].NeedsReview)
}

func TestIngestMessage_DuplicateExternalIDSkipped(t *testing.T) {
	env := newTestEnv(t)
	org := env.createOrg(t)
	supplier := env.createSupplier(t, org, "Gulf Auto Care", "+97455009901")
	request := env.createRequest(t, org, "Front brake pads", domain.RequestStatusRFQSent)
	env.createInquiry(t, request, supplier, time.Now().UTC())

	env.extractor.fields = &extraction.QuoteFields{Price: floatPtr(450), IsQuote: true, Confidence: 0.9}

	msg := &domain.InboundMessage{
		From: "+97455009901", Body: "450 QAR", ExternalMessageID: "SMreplay",
	}
	first, err := env.procurement.IngestMessage(context.Background(), msg)
	require.NoError(t, err)
	assert.Equal(t, domain.IngestStatusQuoteStored, first.Status)

	second, err := env.procurement.IngestMessage(context.Background(), msg)
	require.NoError(t, err)
	assert.Equal(t, domain.IngestStatusDuplicate, second.Status)
}

func TestIngestMessage_QuestionAndAcknowledgment(t *testing.T) {
	env := newTestEnv(t)
	org := env.createOrg(t)
	supplier := env.createSupplier(t, org, "Gulf Auto Care", "+97455009901")
	request := env.createRequest(t, org, "Front brake pads", domain.RequestStatusRFQSent)
	env.createInquiry(t, request, supplier, time.Now().UTC())

	env.extractor.replyKind = extraction.ReplyKindQuestion
	result, err := env.procurement.IngestMessage(context.Background(), &domain.InboundMessage{
		From: "+97455009901", Body: "Which engine size?", ExternalMessageID: "SMq1",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.IngestStatusQuestion, result.Status)

	env.extractor.replyKind = extraction.ReplyKindAcknowledgment
	result, err = env.procurement.IngestMessage(context.Background(), &domain.InboundMessage{
		From: "+97455009901", Body: "Ok will check", ExternalMessageID: "SMa1",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.IngestStatusAcknowledged, result.Status)

	// Neither interaction stores a quote or marks the inquiry responded
	counts, err := env.inquiryRepo.CountsByRequest(context.Background(), request.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, counts.Responded)
}

func TestIngestMessage_RequestFromWhatsApp(t *testing.T) {
	env := newTestEnv(t)
	org := env.createOrg(t)
	env.createParty(t, org, "Ahmed", "+97455001111", domain.PartyRoleBuyer)
	env.createSupplier(t, org, "Gulf Auto Care", "+97455009901")

	result, err := env.procurement.IngestMessage(context.Background(), &domain.InboundMessage{
		From:              "whatsapp:+97455001111",
		Body:              "Need brake pads for Hilux 2020",
		ExternalMessageID: "SMreq1",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.IngestStatusRequestCreated, result.Status)
	require.NotNil(t, result.RequestID)
	assert.Equal(t, domain.RequestStatusRFQSent, result.RequestStatus)

	request, err := env.requestRepo.GetByID(context.Background(), *result.RequestID)
	require.NoError(t, err)
	assert.Equal(t, "Need brake pads for Hilux 2020", request.PartDescription)
}

func TestIngestMessage_StatusInquiryAcknowledged(t *testing.T) {
	env := newTestEnv(t)
	org := env.createOrg(t)
	env.createParty(t, org, "Khalid", "+97455003333", domain.PartyRoleRequester)

	result, err := env.procurement.IngestMessage(context.Background(), &domain.InboundMessage{
		From:              "+97455003333",
		Body:              "Any update on my order?",
		ExternalMessageID: "SMst1",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.IngestStatusStatusHandled, result.Status)
	sent := env.transport.sentTo("+97455003333")
	require.Len(t, sent, 1)
	assert.Contains(t, sent[0].Body, "check the dashboard")
}

func TestIngestMessage_UnmatchedSupplierReply(t *testing.T) {
	env := newTestEnv(t)
	env.createOrg(t)

	env.extractor.intent = extraction.IntentSupplierResponse
	result, err := env.procurement.IngestMessage(context.Background(), &domain.InboundMessage{
		From:              "+15550001111",
		Body:              "450 QAR in stock",
		ExternalMessageID: "SMnomatch",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.IngestStatusNoMatch, result.Status)
}

func TestIngestMessage_CompletionExactlyOnceUnderConcurrency(t *testing.T) {
	env := newTestEnv(t)
	org := env.createOrg(t)
	request := env.createRequest(t, org, "Front brake pads", domain.RequestStatusRFQSent)

	phones := []string{"+97455009901", "+97455009902", "+97455009903"}
	for i, phone := range phones {
		supplier := env.createSupplier(t, org, "Supplier "+phone, phone)
		env.createInquiry(t, request, supplier, time.Now().UTC().Add(time.Duration(i)*time.Second))
	}

	env.extractor.fields = &extraction.QuoteFields{Price: floatPtr(450), IsQuote: true, Confidence: 0.9}

	var wg sync.WaitGroup
	for i, phone := range phones {
		wg.Add(1)
		go func(i int, phone string) {
			defer wg.Done()
			_, err := env.procurement.IngestMessage(context.Background(), &domain.InboundMessage{
				From:              phone,
				Body:              "450 QAR in stock",
				ExternalMessageID: "SMconc" + phone,
			})
			assert.NoError(t, err)
		}(i, phone)
	}
	wg.Wait()

	final, err := env.requestRepo.GetByID(context.Background(), request.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusQuotesReceived, final.Status)

	counts, err := env.inquiryRepo.CountsByRequest(context.Background(), request.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, counts.Responded)
}

func TestApproveQuote_IssuesOrderAndNotifies(t *testing.T) {
	env := newTestEnv(t)
	org := env.createOrg(t)
	request := env.createRequest(t, org, "Front brake pads", domain.RequestStatusQuotesReceived)

	winner := env.createSupplier(t, org, "Gulf Auto Care", "+97455009901")
	loser := env.createSupplier(t, org, "Global Auto Parts", "+97455009902")
	ghost := env.createSupplier(t, org, "Silent Parts", "+97455009903")

	winnerInq := env.createInquiry(t, request, winner, time.Now().UTC())
	loserInq := env.createInquiry(t, request, loser, time.Now().UTC())
	ghostInq := env.createInquiry(t, request, ghost, time.Now().UTC())

	winnerQuote := &domain.Quote{
		InquiryID: winnerInq.ID, SupplierID: winner.ID,
		Price: floatPtr(450), ShippingCost: floatPtr(20), TotalPrice: floatPtr(470),
		Currency: "QAR", DeliveryDays: intPtr(2), Confidence: 0.9,
	}
	require.NoError(t, env.quoteRepo.Create(context.Background(), winnerQuote))
	require.NoError(t, env.quoteRepo.Create(context.Background(), &domain.Quote{
		InquiryID: loserInq.ID, SupplierID: loser.ID,
		Price: floatPtr(500), Currency: "QAR", Confidence: 0.9,
	}))
	// Unpriced quote (question logged as fallback) must not get a decline
	require.NoError(t, env.quoteRepo.Create(context.Background(), &domain.Quote{
		InquiryID: ghostInq.ID, SupplierID: ghost.ID,
		Currency: "QAR", Confidence: 0,
	}))

	result, err := env.procurement.ApproveQuote(context.Background(), request.ID, &domain.ApproveQuoteRequest{
		QuoteID: winnerQuote.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, "PO-0001", result.PONumber)
	assert.Equal(t, "Gulf Auto Care", result.SupplierName)
	assert.Equal(t, 470.0, result.Amount)
	assert.Equal(t, 1, result.DeclinesSent)
	assert.Empty(t, result.FailedRecipient)

	final, err := env.requestRepo.GetByID(context.Background(), request.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusOrdered, final.Status)

	selected, err := env.quoteRepo.GetByID(context.Background(), winnerQuote.ID)
	require.NoError(t, err)
	assert.True(t, selected.IsSelected)

	confirmations := env.transport.sentTo("+97455009901")
	require.Len(t, confirmations, 1)
	assert.Contains(t, confirmations[0].Body, "PO-0001")

	declines := env.transport.sentTo("+97455009902")
	require.Len(t, declines, 1)
	assert.Contains(t, declines[0].Body, "another supplier")

	assert.Empty(t, env.transport.sentTo("+97455009903"))
}

func TestApproveQuote_SendFailureDoesNotUnwindOrder(t *testing.T) {
	env := newTestEnv(t)
	org := env.createOrg(t)
	request := env.createRequest(t, org, "Front brake pads", domain.RequestStatusQuotesReceived)
	winner := env.createSupplier(t, org, "Gulf Auto Care", "+97455009901")
	inq := env.createInquiry(t, request, winner, time.Now().UTC())

	quote := &domain.Quote{
		InquiryID: inq.ID, SupplierID: winner.ID,
		Price: floatPtr(450), Currency: "QAR", Confidence: 0.9,
	}
	require.NoError(t, env.quoteRepo.Create(context.Background(), quote))

	env.transport.failNumbers["+97455009901"] = true

	result, err := env.procurement.ApproveQuote(context.Background(), request.ID, &domain.ApproveQuoteRequest{
		QuoteID: quote.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"+97455009901"}, result.FailedRecipient)

	final, err := env.requestRepo.GetByID(context.Background(), request.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusOrdered, final.Status)
}

// A reply whose extraction is still in flight when an approval commits must
// not drag the request back from ordered to quotes_received.
func TestApproveQuote_LateReplyCannotReopenOrderedRequest(t *testing.T) {
	env := newTestEnv(t)
	org := env.createOrg(t)
	request := env.createRequest(t, org, "Front brake pads", domain.RequestStatusRFQSent)

	first := env.createSupplier(t, org, "Gulf Auto Care", "+97455009901")
	second := env.createSupplier(t, org, "Global Auto Parts", "+97455009902")
	firstInq := env.createInquiry(t, request, first, time.Now().UTC())
	env.createInquiry(t, request, second, time.Now().UTC())

	env.extractor.fields = &extraction.QuoteFields{Price: floatPtr(450), IsQuote: true, Confidence: 0.9}

	_, err := env.procurement.IngestMessage(context.Background(), &domain.InboundMessage{
		From:              "+97455009901",
		Body:              "450 QAR in stock",
		ExternalMessageID: "SMlate01",
	})
	require.NoError(t, err)

	firstQuote, err := env.quoteRepo.GetByInquiry(context.Background(), firstInq.ID)
	require.NoError(t, err)
	require.NotNil(t, firstQuote)

	// Park the second supplier's reply inside extraction, then approve the
	// first quote while it waits.
	env.extractor.extracting = make(chan struct{})
	env.extractor.release = make(chan struct{})

	done := make(chan error, 1)
	go func() {
		_, err := env.procurement.IngestMessage(context.Background(), &domain.InboundMessage{
			From:              "+97455009902",
			Body:              "480 QAR, 3 days",
			ExternalMessageID: "SMlate02",
		})
		done <- err
	}()
	<-env.extractor.extracting

	_, err = env.procurement.ApproveQuote(context.Background(), request.ID, &domain.ApproveQuoteRequest{
		QuoteID: firstQuote.ID,
	})
	require.NoError(t, err)

	close(env.extractor.release)
	require.NoError(t, <-done)

	final, err := env.requestRepo.GetByID(context.Background(), request.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusOrdered, final.Status)

	// The late quote is still kept for the audit trail
	counts, err := env.inquiryRepo.CountsByRequest(context.Background(), request.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, counts.Responded)
}

func TestApproveQuote_Rejections(t *testing.T) {
	env := newTestEnv(t)
	org := env.createOrg(t)

	// Quote attached to a different request
	requestA := env.createRequest(t, org, "Front brake pads", domain.RequestStatusQuotesReceived)
	requestB := env.createRequest(t, org, "Timing belt", domain.RequestStatusQuotesReceived)
	supplier := env.createSupplier(t, org, "Gulf Auto Care", "+97455009901")
	inqB := env.createInquiry(t, requestB, supplier, time.Now().UTC())
	quoteB := &domain.Quote{
		InquiryID: inqB.ID, SupplierID: supplier.ID,
		Price: floatPtr(450), Currency: "QAR", Confidence: 0.9,
	}
	require.NoError(t, env.quoteRepo.Create(context.Background(), quoteB))

	_, err := env.procurement.ApproveQuote(context.Background(), requestA.ID, &domain.ApproveQuoteRequest{QuoteID: quoteB.ID})
	assert.ErrorIs(t, err, service.ErrQuoteRequestMismatch)

	// Unknown quote
	_, err = env.procurement.ApproveQuote(context.Background(), requestA.ID, &domain.ApproveQuoteRequest{QuoteID: uuid.New()})
	assert.ErrorIs(t, err, service.ErrQuoteNotFound)

	// Unknown request
	_, err = env.procurement.ApproveQuote(context.Background(), uuid.New(), &domain.ApproveQuoteRequest{QuoteID: quoteB.ID})
	assert.ErrorIs(t, err, service.ErrRequestNotFound)

	// Unpriced quote
	inqA := env.createInquiry(t, requestA, supplier, time.Now().UTC())
	unpriced := &domain.Quote{InquiryID: inqA.ID, SupplierID: supplier.ID, Currency: "QAR"}
	require.NoError(t, env.quoteRepo.Create(context.Background(), unpriced))
	_, err = env.procurement.ApproveQuote(context.Background(), requestA.ID, &domain.ApproveQuoteRequest{QuoteID: unpriced.ID})
	assert.ErrorIs(t, err, service.ErrQuoteUnpriced)

	// Already ordered
	_, err = env.procurement.ApproveQuote(context.Background(), requestB.ID, &domain.ApproveQuoteRequest{QuoteID: quoteB.ID})
	require.NoError(t, err)
	_, err = env.procurement.ApproveQuote(context.Background(), requestB.ID, &domain.ApproveQuoteRequest{QuoteID: quoteB.ID})
	assert.ErrorIs(t, err, service.ErrRequestAlreadyClosed)
}

func TestSweepStaleInquiries(t *testing.T) {
	env := newTestEnv(t)
	org := env.createOrg(t)
	request := env.createRequest(t, org, "Front brake pads", domain.RequestStatusRFQSent)

	responded := env.createSupplier(t, org, "Gulf Auto Care", "+97455009901")
	silent := env.createSupplier(t, org, "Silent Parts", "+97455009902")

	respondedInq := env.createInquiry(t, request, responded, time.Now().UTC().Add(-48*time.Hour))
	env.createInquiry(t, request, silent, time.Now().UTC().Add(-48*time.Hour))
	require.NoError(t, env.inquiryRepo.MarkResponded(context.Background(), respondedInq.ID, time.Now().UTC()))

	swept, closed, err := env.procurement.SweepStaleInquiries(context.Background(), 24*time.Hour)
	require.NoError(t, err)

	assert.Equal(t, 1, swept)
	assert.Equal(t, 1, closed)

	final, err := env.requestRepo.GetByID(context.Background(), request.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusQuotesReceived, final.Status)

	kept, err := env.inquiryRepo.GetByID(context.Background(), respondedInq.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.InquiryStatusResponded, kept.Status)
}

func TestSweepStaleInquiries_NoResponsesLeavesRequestOpen(t *testing.T) {
	env := newTestEnv(t)
	org := env.createOrg(t)
	request := env.createRequest(t, org, "Front brake pads", domain.RequestStatusRFQSent)
	silent := env.createSupplier(t, org, "Silent Parts", "+97455009902")
	env.createInquiry(t, request, silent, time.Now().UTC().Add(-48*time.Hour))

	swept, closed, err := env.procurement.SweepStaleInquiries(context.Background(), 24*time.Hour)
	require.NoError(t, err)

	assert.Equal(t, 1, swept)
	assert.Equal(t, 0, closed)

	final, err := env.requestRepo.GetByID(context.Background(), request.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusRFQSent, final.Status)
}

func TestSweepStaleInquiries_FreshInquiryUntouched(t *testing.T) {
	env := newTestEnv(t)
	org := env.createOrg(t)
	request := env.createRequest(t, org, "Front brake pads", domain.RequestStatusRFQSent)
	fresh := env.createSupplier(t, org, "Gulf Auto Care", "+97455009901")
	freshInq := env.createInquiry(t, request, fresh, time.Now().UTC().Add(-1*time.Hour))

	swept, closed, err := env.procurement.SweepStaleInquiries(context.Background(), 24*time.Hour)
	require.NoError(t, err)

	assert.Equal(t, 0, swept)
	assert.Equal(t, 0, closed)

	inquiry, err := env.inquiryRepo.GetByID(context.Background(), freshInq.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.InquiryStatusSent, inquiry.Status)
}

func TestRecordDeliveryStatus(t *testing.T) {
	env := newTestEnv(t)
	org := env.createOrg(t)
	env.createSupplier(t, org, "Gulf Auto Care", "+97455009901")

	result, err := env.procurement.CreateRequest(context.Background(), &domain.CreateRequestRequest{
		PartDescription: "Oil filter",
	})
	require.NoError(t, err)
	require.Equal(t, 1, result.SupplierCount)

	// The fake transport assigned SM0001 to the first outbound message
	require.NoError(t, env.procurement.RecordDeliveryStatus(context.Background(), "SM0001", "delivered"))

	messages, _, err := env.messageRepo.List(context.Background(), 1, 10, nil, repository.DefaultSortConfig())
	require.NoError(t, err)
	require.NotEmpty(t, messages)
	found := false
	for _, m := range messages {
		if m.ExternalMessageID == "SM0001" {
			assert.Equal(t, "delivered", m.DeliveryStatus)
			found = true
		}
	}
	assert.True(t, found)

	// The RFQ inquiry carries the same SID and picks up the receipt too
	inquiries, err := env.inquiryRepo.ListByRequest(context.Background(), result.RequestID)
	require.NoError(t, err)
	require.Len(t, inquiries, 1)
	assert.Equal(t, "SM0001", inquiries[0].ExternalMessageID)
	assert.Equal(t, "delivered", inquiries[0].DeliveryStatus)
}
