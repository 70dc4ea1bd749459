package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hexaparts/procurement-api/internal/domain"
	"github.com/hexaparts/procurement-api/internal/extraction"
	"github.com/hexaparts/procurement-api/internal/messaging"
	"github.com/hexaparts/procurement-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// reviewConfidenceThreshold flags low-confidence parses for manual review
const reviewConfidenceThreshold = 0.7

// SupplierSelector picks the fan-out set for a new parts request
type SupplierSelector func(ctx context.Context, orgID uuid.UUID) ([]domain.Supplier, error)

// ProcurementService orchestrates the request lifecycle: parts request,
// inquiry fan-out, quote collection, approval and purchase order issue.
type ProcurementService struct {
	orgRepo      *repository.OrganizationRepository
	partyRepo    *repository.PartyRepository
	supplierRepo *repository.SupplierRepository
	requestRepo  *repository.RequestRepository
	inquiryRepo  *repository.InquiryRepository
	quoteRepo    *repository.QuoteRepository
	orderRepo    *repository.OrderRepository
	messageRepo  *repository.MessageRepository
	routing      *RoutingService
	transport    messaging.Transport
	extractor    extraction.Extractor
	logger       *zap.Logger

	// selectSuppliers picks who receives an RFQ, all active suppliers by
	// default. Overridable with SetSupplierSelector for category routing.
	selectSuppliers SupplierSelector

	// requestLocks serializes state transitions per parts request so the
	// quotes_received transition fires exactly once under concurrent replies
	requestLocks sync.Map
}

// NewProcurementService creates a new ProcurementService
func NewProcurementService(
	orgRepo *repository.OrganizationRepository,
	partyRepo *repository.PartyRepository,
	supplierRepo *repository.SupplierRepository,
	requestRepo *repository.RequestRepository,
	inquiryRepo *repository.InquiryRepository,
	quoteRepo *repository.QuoteRepository,
	orderRepo *repository.OrderRepository,
	messageRepo *repository.MessageRepository,
	routing *RoutingService,
	transport messaging.Transport,
	extractor extraction.Extractor,
	logger *zap.Logger,
) *ProcurementService {
	s := &ProcurementService{
		orgRepo:      orgRepo,
		partyRepo:    partyRepo,
		supplierRepo: supplierRepo,
		requestRepo:  requestRepo,
		inquiryRepo:  inquiryRepo,
		quoteRepo:    quoteRepo,
		orderRepo:    orderRepo,
		messageRepo:  messageRepo,
		routing:      routing,
		transport:    transport,
		extractor:    extractor,
		logger:       logger,
	}
	s.selectSuppliers = s.supplierRepo.ListActive
	return s
}

// SetSupplierSelector replaces the default all-active fan-out selection
func (s *ProcurementService) SetSupplierSelector(selector SupplierSelector) {
	if selector != nil {
		s.selectSuppliers = selector
	}
}

func (s *ProcurementService) lockRequest(id uuid.UUID) func() {
	v, _ := s.requestLocks.LoadOrStore(id, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// CreateRequest creates a parts request and fans out inquiries to every
// active supplier. A supplier whose send fails is skipped; the request
// proceeds with the suppliers that were reached.
func (s *ProcurementService) CreateRequest(ctx context.Context, req *domain.CreateRequestRequest) (*domain.CreateRequestResult, error) {
	if req.PartDescription == "" {
		return nil, ErrDescriptionRequired
	}

	org, err := s.orgRepo.GetFirst(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve organization: %w", err)
	}
	if org == nil {
		return nil, ErrOrganizationNotFound
	}

	if req.RequestedByID != nil {
		if _, err := s.partyRepo.GetByID(ctx, *req.RequestedByID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrPartyNotFound
			}
			return nil, fmt.Errorf("failed to verify requesting party: %w", err)
		}
	}

	urgency := req.Urgency
	if urgency == "" {
		urgency = domain.UrgencyNormal
	}
	quantity := req.Quantity
	if quantity < 1 {
		quantity = 1
	}

	request := &domain.PartsRequest{
		OrganizationID:  org.ID,
		RequestedByID:   req.RequestedByID,
		PartDescription: req.PartDescription,
		VehicleInfo:     req.VehicleInfo,
		Quantity:        quantity,
		Urgency:         urgency,
		Deadline:        req.Deadline,
		Notes:           req.Notes,
		Status:          domain.RequestStatusDraft,
	}
	if err := s.requestRepo.Create(ctx, request); err != nil {
		return nil, fmt.Errorf("failed to create parts request: %w", err)
	}

	s.logger.Info("parts request created",
		zap.String("request_id", request.ID.String()),
		zap.String("part", request.PartDescription),
		zap.String("urgency", string(urgency)),
	)

	suppliers, err := s.selectSuppliers(ctx, org.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active suppliers: %w", err)
	}
	if len(suppliers) == 0 {
		return nil, ErrNoActiveSuppliers
	}

	result := &domain.CreateRequestResult{
		RequestID: request.ID,
	}

	for i := range suppliers {
		supplier := &suppliers[i]
		outcome := s.sendInquiry(ctx, org, request, supplier)
		result.Inquiries = append(result.Inquiries, outcome)
		if outcome.Sent {
			result.SupplierCount++
		} else {
			result.FailedCount++
		}
	}

	if err := s.requestRepo.UpdateStatus(ctx, request.ID, domain.RequestStatusRFQSent); err != nil {
		return nil, fmt.Errorf("failed to update request status: %w", err)
	}
	result.Status = domain.RequestStatusRFQSent

	return result, nil
}

// sendInquiry delivers one RFQ message and records the inquiry and the
// outbound message. Failures are reported in the outcome, never returned.
func (s *ProcurementService) sendInquiry(ctx context.Context, org *domain.Organization, request *domain.PartsRequest, supplier *domain.Supplier) domain.InquiryOutcome {
	outcome := domain.InquiryOutcome{
		SupplierID:   supplier.ID,
		SupplierName: supplier.Name,
		Phone:        supplier.Phone,
	}

	body := messaging.RFQBody(org.Name, request.PartDescription, request.VehicleInfo, request.Quantity, request.Deadline)

	sent, err := s.transport.Send(ctx, supplier.Phone, body)
	if err != nil {
		s.logger.Warn("failed to send inquiry, skipping supplier",
			zap.String("request_id", request.ID.String()),
			zap.String("supplier", supplier.Name),
			zap.Error(err),
		)
		outcome.Error = err.Error()
		return outcome
	}

	inquiry := &domain.Inquiry{
		PartsRequestID:    request.ID,
		SupplierID:        supplier.ID,
		ExternalMessageID: sent.ExternalMessageID,
		DeliveryStatus:    sent.Status,
		Status:            domain.InquiryStatusSent,
		SentAt:            time.Now().UTC(),
	}
	if err := s.inquiryRepo.Create(ctx, inquiry); err != nil {
		outcome.Error = err.Error()
		return outcome
	}

	record := &domain.MessageRecord{
		OrganizationID:    &org.ID,
		Direction:         domain.DirectionOutbound,
		FromNumber:        org.WhatsAppNumber,
		ToNumber:          supplier.Phone,
		Body:              body,
		ExternalMessageID: sent.ExternalMessageID,
		DeliveryStatus:    sent.Status,
		InquiryID:         &inquiry.ID,
		Source:            domain.SourceAPI,
	}
	if err := s.messageRepo.Create(ctx, record); err != nil {
		s.logger.Warn("failed to log outbound inquiry message", zap.Error(err))
	}

	outcome.InquiryID = &inquiry.ID
	outcome.Sent = true
	return outcome
}

// IngestMessage processes one inbound WhatsApp message end to end: replay
// detection, routing and the category-specific handling.
func (s *ProcurementService) IngestMessage(ctx context.Context, msg *domain.InboundMessage) (*domain.IngestResult, error) {
	duplicate, err := s.messageRepo.ExistsByExternalID(ctx, msg.ExternalMessageID)
	if err != nil {
		return nil, fmt.Errorf("failed to check message replay: %w", err)
	}
	if duplicate {
		s.logger.Info("duplicate inbound message skipped",
			zap.String("external_message_id", msg.ExternalMessageID),
		)
		return &domain.IngestResult{Status: domain.IngestStatusDuplicate}, nil
	}

	decision, err := s.routing.Route(ctx, msg.From, msg.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to route message: %w", err)
	}

	phone := messaging.StripPrefix(msg.From)
	s.logger.Info("inbound message routed",
		zap.String("from", phone),
		zap.String("category", string(decision.Category)),
	)

	switch decision.Category {
	case domain.CategoryNewRequest:
		return s.handleInboundRequest(ctx, decision, phone, msg)
	case domain.CategoryInquiryReply:
		return s.ProcessSupplierReply(ctx, decision, phone, msg)
	case domain.CategoryStatusInquiry:
		return s.handleStatusInquiry(ctx, decision, phone, msg)
	default:
		s.logMessage(ctx, decision.OrganizationID, phone, msg, nil, senderSource(decision))
		return &domain.IngestResult{Status: domain.IngestStatusUnclassified}, nil
	}
}

// senderSource attributes an inbound message to a party when the sender is a
// known organization member, otherwise to a supplier
func senderSource(decision *domain.RouteDecision) domain.MessageSource {
	if decision.PartyID != nil {
		return domain.SourceParty
	}
	return domain.SourceSupplier
}

// handleInboundRequest turns a WhatsApp message into a parts request. The
// raw message serves as the part description until a buyer refines it.
func (s *ProcurementService) handleInboundRequest(ctx context.Context, decision *domain.RouteDecision, phone string, msg *domain.InboundMessage) (*domain.IngestResult, error) {
	s.logMessage(ctx, decision.OrganizationID, phone, msg, nil, senderSource(decision))

	req := &domain.CreateRequestRequest{
		RequestedByID:   decision.PartyID,
		PartDescription: msg.Body,
		Quantity:        1,
		Urgency:         domain.UrgencyNormal,
		Notes:           "Created from WhatsApp message",
	}

	created, err := s.CreateRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	return &domain.IngestResult{
		Status:        domain.IngestStatusRequestCreated,
		RequestID:     &created.RequestID,
		TotalCount:    created.SupplierCount,
		RequestStatus: created.Status,
	}, nil
}

// handleStatusInquiry sends a holding reply and logs the exchange
func (s *ProcurementService) handleStatusInquiry(ctx context.Context, decision *domain.RouteDecision, phone string, msg *domain.InboundMessage) (*domain.IngestResult, error) {
	s.logMessage(ctx, decision.OrganizationID, phone, msg, nil, senderSource(decision))

	ack := messaging.StatusInquiryAckBody()
	if sent, err := s.transport.Send(ctx, phone, ack); err != nil {
		s.logger.Warn("failed to send status inquiry acknowledgment",
			zap.String("to", phone),
			zap.Error(err),
		)
	} else {
		record := &domain.MessageRecord{
			OrganizationID:    decision.OrganizationID,
			Direction:         domain.DirectionOutbound,
			ToNumber:          phone,
			Body:              ack,
			ExternalMessageID: sent.ExternalMessageID,
			DeliveryStatus:    sent.Status,
			Source:            domain.SourceAPI,
		}
		if err := s.messageRepo.Create(ctx, record); err != nil {
			s.logger.Warn("failed to log status acknowledgment", zap.Error(err))
		}
	}

	return &domain.IngestResult{Status: domain.IngestStatusStatusHandled}, nil
}

// ProcessSupplierReply handles a supplier answer to an open inquiry:
// classify, extract the quote, store it and close out the request when the
// last supplier has responded.
func (s *ProcurementService) ProcessSupplierReply(ctx context.Context, decision *domain.RouteDecision, phone string, msg *domain.InboundMessage) (*domain.IngestResult, error) {
	if decision.OpenInquiryID == nil {
		s.logger.Warn("no open inquiry for supplier reply, logging unmatched",
			zap.String("from", phone),
		)
		s.logMessage(ctx, decision.OrganizationID, phone, msg, nil, domain.SourceSupplier)
		return &domain.IngestResult{Status: domain.IngestStatusNoMatch}, nil
	}

	inquiry, err := s.inquiryRepo.GetByID(ctx, *decision.OpenInquiryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load inquiry: %w", err)
	}

	request, err := s.requestRepo.GetByID(ctx, inquiry.PartsRequestID)
	if err != nil {
		return nil, fmt.Errorf("failed to load parts request: %w", err)
	}

	supplier, err := s.supplierRepo.GetByID(ctx, inquiry.SupplierID)
	if err != nil {
		return nil, fmt.Errorf("failed to load supplier: %w", err)
	}

	s.logMessage(ctx, &request.OrganizationID, phone, msg, &inquiry.ID, domain.SourceSupplier)

	kind := s.extractor.ClassifyReply(ctx, msg.Body)
	switch kind {
	case extraction.ReplyKindQuestion:
		s.logger.Info("supplier asked a question, needs human review",
			zap.String("supplier", supplier.Name),
			zap.String("message", msg.Body),
		)
		return &domain.IngestResult{
			Status:       domain.IngestStatusQuestion,
			SupplierName: supplier.Name,
		}, nil
	case extraction.ReplyKindAcknowledgment:
		s.logger.Info("supplier acknowledged, waiting for quote",
			zap.String("supplier", supplier.Name),
		)
		return &domain.IngestResult{
			Status:       domain.IngestStatusAcknowledged,
			SupplierName: supplier.Name,
		}, nil
	}

	// Quote or unknown: extract fields either way so nothing is lost
	fields := s.extractor.ExtractQuote(ctx, msg.Body, extraction.RequestContext{
		PartDescription: request.PartDescription,
		VehicleInfo:     request.VehicleInfo,
		Quantity:        request.Quantity,
	})

	unlock := s.lockRequest(request.ID)
	defer unlock()

	quote := &domain.Quote{
		InquiryID:    inquiry.ID,
		SupplierID:   supplier.ID,
		Price:        fields.Price,
		Currency:     fields.Currency,
		TotalPrice:   fields.TotalPrice,
		ShippingCost: fields.ShippingCost,
		Availability: domain.QuoteAvailability(fields.Availability),
		DeliveryDays: fields.DeliveryDays,
		Condition:    fields.Condition,
		Notes:        fields.Notes,
		RawMessage:   msg.Body,
		Confidence:   fields.Confidence,
		NeedsReview:  fields.Confidence < reviewConfidenceThreshold,
	}
	if quote.Currency == "" {
		quote.Currency = "QAR"
	}

	// The request can close while extraction is in flight. RecordReply
	// re-reads the status inside its transaction, so the completion check
	// never acts on the copy loaded before the lock.
	counts, status, err := s.inquiryRepo.RecordReply(ctx, request.ID, quote, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to record supplier reply: %w", err)
	}

	if status == domain.RequestStatusQuotesReceived && counts.Responded == counts.Total {
		s.logger.Info("all suppliers responded",
			zap.String("request_id", request.ID.String()),
			zap.Int("total", counts.Total),
		)
	}

	s.logger.Info("quote stored",
		zap.String("supplier", supplier.Name),
		zap.Float64("confidence", fields.Confidence),
		zap.Int("responded", counts.Responded),
		zap.Int("total", counts.Total),
	)

	return &domain.IngestResult{
		Status:         domain.IngestStatusQuoteStored,
		RequestID:      &request.ID,
		SupplierName:   supplier.Name,
		Price:          fields.Price,
		Currency:       quote.Currency,
		Confidence:     fields.Confidence,
		RespondedCount: counts.Responded,
		TotalCount:     counts.Total,
		RequestStatus:  status,
	}, nil
}

// ApproveQuote issues a purchase order for the chosen quote, confirms with
// the winning supplier and politely declines the other priced quotes. Send
// failures do not unwind the order.
func (s *ProcurementService) ApproveQuote(ctx context.Context, requestID uuid.UUID, req *domain.ApproveQuoteRequest) (*domain.ApproveQuoteResult, error) {
	unlock := s.lockRequest(requestID)
	defer unlock()

	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, fmt.Errorf("failed to load parts request: %w", err)
	}
	if request.Status.IsTerminal() {
		return nil, ErrRequestAlreadyClosed
	}

	quote, err := s.quoteRepo.GetByID(ctx, req.QuoteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuoteNotFound
		}
		return nil, fmt.Errorf("failed to load quote: %w", err)
	}

	inquiry, err := s.inquiryRepo.GetByID(ctx, quote.InquiryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load inquiry for quote: %w", err)
	}
	if inquiry.PartsRequestID != requestID {
		return nil, ErrQuoteRequestMismatch
	}

	amount := quote.TotalPrice
	if amount == nil {
		amount = quote.Price
	}
	if amount == nil {
		return nil, ErrQuoteUnpriced
	}

	supplier, err := s.supplierRepo.GetByID(ctx, quote.SupplierID)
	if err != nil {
		return nil, fmt.Errorf("failed to load winning supplier: %w", err)
	}

	org, err := s.orgRepo.GetByID(ctx, request.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load organization: %w", err)
	}

	expectedDelivery := "TBD"
	if quote.DeliveryDays != nil {
		expectedDelivery = strconv.Itoa(*quote.DeliveryDays) + " days"
	}

	order := &domain.PurchaseOrder{
		OrganizationID:   request.OrganizationID,
		PartsRequestID:   request.ID,
		QuoteID:          quote.ID,
		SupplierID:       supplier.ID,
		ApprovedByID:     req.ApprovedByID,
		Amount:           *amount,
		Currency:         quote.Currency,
		Status:           domain.OrderStatusConfirmed,
		ExpectedDelivery: expectedDelivery,
	}
	// PO number allocation, order creation, quote selection and the ordered
	// status commit together or not at all.
	if err := s.orderRepo.Issue(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to issue purchase order: %w", err)
	}

	s.logger.Info("purchase order issued",
		zap.String("po_number", order.PONumber),
		zap.String("supplier", supplier.Name),
		zap.Float64("amount", *amount),
		zap.String("currency", quote.Currency),
	)

	result := &domain.ApproveQuoteResult{
		PONumber:     order.PONumber,
		SupplierName: supplier.Name,
		Amount:       *amount,
		Currency:     quote.Currency,
		Status:       string(domain.OrderStatusConfirmed),
	}

	// Confirm with the winner
	confirmation := messaging.POConfirmationBody(
		org.Name, order.PONumber, request.PartDescription,
		strconv.FormatFloat(*amount, 'f', -1, 64), quote.Currency, expectedDelivery,
	)
	if sent, err := s.transport.Send(ctx, supplier.Phone, confirmation); err != nil {
		s.logger.Warn("failed to send PO confirmation",
			zap.String("supplier", supplier.Name),
			zap.Error(err),
		)
		result.FailedRecipient = append(result.FailedRecipient, supplier.Phone)
	} else {
		s.logOutbound(ctx, &org.ID, org.WhatsAppNumber, supplier.Phone, confirmation, sent, &order.ID)
	}

	// Decline the other priced quotes
	quotes, err := s.quoteRepo.ListByRequest(ctx, request.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list quotes for declines: %w", err)
	}
	for i := range quotes {
		other := &quotes[i]
		if other.ID == quote.ID || other.Price == nil {
			continue
		}
		otherSupplier, err := s.supplierRepo.GetByID(ctx, other.SupplierID)
		if err != nil {
			s.logger.Warn("failed to load supplier for decline", zap.Error(err))
			continue
		}
		decline := messaging.DeclineBody(request.PartDescription)
		if sent, err := s.transport.Send(ctx, otherSupplier.Phone, decline); err != nil {
			s.logger.Warn("failed to send decline",
				zap.String("supplier", otherSupplier.Name),
				zap.Error(err),
			)
			result.FailedRecipient = append(result.FailedRecipient, otherSupplier.Phone)
		} else {
			s.logOutbound(ctx, &org.ID, org.WhatsAppNumber, otherSupplier.Phone, decline, sent, nil)
			result.DeclinesSent++
		}
	}

	return result, nil
}

// SweepStaleInquiries expires inquiries that never drew a reply. When the
// last outstanding inquiry on a request times out, the request moves to
// quotes_received so the buyer can decide on what came in.
func (s *ProcurementService) SweepStaleInquiries(ctx context.Context, olderThan time.Duration) (int, int, error) {
	cutoff := time.Now().UTC().Add(-olderThan)

	stale, err := s.inquiryRepo.ListStaleSent(ctx, cutoff)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to list stale inquiries: %w", err)
	}

	swept := 0
	affected := make(map[uuid.UUID]struct{})
	for i := range stale {
		inquiry := &stale[i]
		if err := s.inquiryRepo.UpdateStatus(ctx, inquiry.ID, domain.InquiryStatusNoResponse); err != nil {
			s.logger.Warn("failed to expire inquiry",
				zap.String("inquiry_id", inquiry.ID.String()),
				zap.Error(err),
			)
			continue
		}
		swept++
		affected[inquiry.PartsRequestID] = struct{}{}
	}

	closed := 0
	for requestID := range affected {
		moved, err := s.closeOutIfComplete(ctx, requestID)
		if err != nil {
			s.logger.Warn("failed to close out request after sweep",
				zap.String("request_id", requestID.String()),
				zap.Error(err),
			)
			continue
		}
		if moved {
			closed++
		}
	}

	return swept, closed, nil
}

// closeOutIfComplete moves an rfq_sent request to quotes_received once no
// inquiry is still waiting and at least one supplier actually responded
func (s *ProcurementService) closeOutIfComplete(ctx context.Context, requestID uuid.UUID) (bool, error) {
	unlock := s.lockRequest(requestID)
	defer unlock()

	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return false, err
	}
	if request.Status != domain.RequestStatusRFQSent {
		return false, nil
	}

	inquiries, err := s.inquiryRepo.ListByRequest(ctx, requestID)
	if err != nil {
		return false, err
	}

	responded := 0
	for i := range inquiries {
		switch inquiries[i].Status {
		case domain.InquiryStatusSent:
			return false, nil
		case domain.InquiryStatusResponded:
			responded++
		}
	}
	if responded == 0 {
		return false, nil
	}

	if err := s.requestRepo.UpdateStatus(ctx, requestID, domain.RequestStatusQuotesReceived); err != nil {
		return false, err
	}
	return true, nil
}

// RecordDeliveryStatus stores a delivery receipt from the transport provider
func (s *ProcurementService) RecordDeliveryStatus(ctx context.Context, externalID, status string) error {
	if externalID == "" {
		return nil
	}
	if err := s.messageRepo.UpdateDeliveryStatus(ctx, externalID, status); err != nil {
		return fmt.Errorf("failed to record delivery status: %w", err)
	}
	// RFQ sends carry the same SID on the inquiry row
	if err := s.inquiryRepo.UpdateDeliveryStatusByExternalID(ctx, externalID, status); err != nil {
		return fmt.Errorf("failed to record inquiry delivery status: %w", err)
	}
	s.logger.Debug("delivery status recorded",
		zap.String("external_message_id", externalID),
		zap.String("status", status),
	)
	return nil
}

func (s *ProcurementService) logMessage(ctx context.Context, orgID *uuid.UUID, phone string, msg *domain.InboundMessage, inquiryID *uuid.UUID, source domain.MessageSource) {
	record := &domain.MessageRecord{
		OrganizationID:    orgID,
		Direction:         domain.DirectionInbound,
		FromNumber:        phone,
		Body:              msg.Body,
		ExternalMessageID: msg.ExternalMessageID,
		InquiryID:         inquiryID,
		Source:            source,
	}
	if err := s.messageRepo.Create(ctx, record); err != nil {
		s.logger.Warn("failed to log inbound message", zap.Error(err))
	}
}

func (s *ProcurementService) logOutbound(ctx context.Context, orgID *uuid.UUID, from, to, body string, sent *messaging.SendResult, orderID *uuid.UUID) {
	record := &domain.MessageRecord{
		OrganizationID:    orgID,
		Direction:         domain.DirectionOutbound,
		FromNumber:        from,
		ToNumber:          to,
		Body:              body,
		ExternalMessageID: sent.ExternalMessageID,
		DeliveryStatus:    sent.Status,
		PurchaseOrderID:   orderID,
		Source:            domain.SourceAPI,
	}
	if err := s.messageRepo.Create(ctx, record); err != nil {
		s.logger.Warn("failed to log outbound message", zap.Error(err))
	}
}
