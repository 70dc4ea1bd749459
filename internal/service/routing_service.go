package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/hexaparts/procurement-api/internal/domain"
	"github.com/hexaparts/procurement-api/internal/extraction"
	"github.com/hexaparts/procurement-api/internal/messaging"
	"github.com/hexaparts/procurement-api/internal/repository"
	"go.uber.org/zap"
)

// requestKeywords strongly suggest a new parts request rather than a quote.
// Matched as a prefix of the normalized message body.
var requestKeywords = []string{
	"need", "request", "order", "looking for", "require",
	"can you find", "get me", "i need", "we need", "parts for",
	"please arrange", "source", "procure",
}

// statusPhrases mark a message as a status inquiry. Matched anywhere in the body.
var statusPhrases = []string{
	"status", "update on", "where is", "what happened", "any update",
	"how is my", "tracking",
}

// RoutingService decides what an inbound WhatsApp message is. Sender identity
// and open-inquiry context take priority; the AI classifier is only consulted
// when both are inconclusive.
type RoutingService struct {
	partyRepo    *repository.PartyRepository
	supplierRepo *repository.SupplierRepository
	inquiryRepo  *repository.InquiryRepository
	extractor    extraction.Extractor
	logger       *zap.Logger
}

// NewRoutingService creates a new RoutingService
func NewRoutingService(
	partyRepo *repository.PartyRepository,
	supplierRepo *repository.SupplierRepository,
	inquiryRepo *repository.InquiryRepository,
	extractor extraction.Extractor,
	logger *zap.Logger,
) *RoutingService {
	return &RoutingService{
		partyRepo:    partyRepo,
		supplierRepo: supplierRepo,
		inquiryRepo:  inquiryRepo,
		extractor:    extractor,
		logger:       logger,
	}
}

// Route classifies one inbound message. The decision order is fixed:
// request keyword, status phrase, open inquiry, known party, AI classifier.
// A request keyword overrides an open inquiry so a buyer who is also
// registered as a supplier can still raise requests.
func (s *RoutingService) Route(ctx context.Context, fromNumber, body string) (*domain.RouteDecision, error) {
	phone := messaging.StripPrefix(fromNumber)

	party, err := s.partyRepo.GetByPhone(ctx, phone)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve party by phone: %w", err)
	}

	supplier, err := s.supplierRepo.GetByPhone(ctx, phone)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve supplier by phone: %w", err)
	}

	decision := &domain.RouteDecision{}
	if party != nil {
		decision.PartyID = &party.ID
		decision.OrganizationID = &party.OrganizationID
	}
	if supplier != nil {
		decision.SupplierID = &supplier.ID
		if decision.OrganizationID == nil {
			decision.OrganizationID = &supplier.OrganizationID
		}
	}

	if supplier != nil {
		open, err := s.inquiryRepo.FindOpenBySupplier(ctx, supplier.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to look up open inquiries: %w", err)
		}
		if open != nil {
			decision.HasOpenInquiry = true
			decision.OpenInquiryID = &open.ID
		}
	}

	bodyLower := strings.ToLower(strings.TrimSpace(body))

	if hasRequestKeyword(bodyLower) {
		decision.Category = domain.CategoryNewRequest
		return decision, nil
	}

	if hasStatusPhrase(bodyLower) {
		decision.Category = domain.CategoryStatusInquiry
		return decision, nil
	}

	if decision.HasOpenInquiry {
		decision.Category = domain.CategoryInquiryReply
		return decision, nil
	}

	if party != nil {
		decision.Category = domain.CategoryNewRequest
		return decision, nil
	}

	// Unknown sender with no context: ask the classifier
	switch s.extractor.ClassifyIntent(ctx, body) {
	case extraction.IntentPartsRequest:
		decision.Category = domain.CategoryNewRequest
	case extraction.IntentSupplierResponse:
		decision.Category = domain.CategoryInquiryReply
	default:
		decision.Category = domain.CategoryUnclassifiable
	}

	s.logger.Debug("message routed via classifier",
		zap.String("from", phone),
		zap.String("category", string(decision.Category)),
	)

	return decision, nil
}

func hasRequestKeyword(bodyLower string) bool {
	for _, kw := range requestKeywords {
		if strings.HasPrefix(bodyLower, kw) {
			return true
		}
	}
	return false
}

func hasStatusPhrase(bodyLower string) bool {
	for _, phrase := range statusPhrases {
		if strings.Contains(bodyLower, phrase) {
			return true
		}
	}
	return false
}
