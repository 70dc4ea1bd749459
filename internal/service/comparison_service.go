package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/hexaparts/procurement-api/internal/domain"
	"github.com/hexaparts/procurement-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ComparisonService builds the side-by-side quote view for a parts request
type ComparisonService struct {
	requestRepo  *repository.RequestRepository
	inquiryRepo  *repository.InquiryRepository
	supplierRepo *repository.SupplierRepository
	logger       *zap.Logger
}

// NewComparisonService creates a new ComparisonService
func NewComparisonService(
	requestRepo *repository.RequestRepository,
	inquiryRepo *repository.InquiryRepository,
	supplierRepo *repository.SupplierRepository,
	logger *zap.Logger,
) *ComparisonService {
	return &ComparisonService{
		requestRepo:  requestRepo,
		inquiryRepo:  inquiryRepo,
		supplierRepo: supplierRepo,
		logger:       logger,
	}
}

// Compare returns every inquiry for the request with its quote, priced
// quotes first sorted ascending, then the rest in send order.
func (s *ComparisonService) Compare(ctx context.Context, requestID uuid.UUID) (*domain.QuoteComparison, error) {
	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, fmt.Errorf("failed to load parts request: %w", err)
	}

	inquiries, err := s.inquiryRepo.ListByRequest(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to list inquiries: %w", err)
	}

	var priced, unpriced []domain.QuoteComparisonRow
	summary := domain.ComparisonSummary{TotalSuppliers: len(inquiries)}

	for i := range inquiries {
		inquiry := &inquiries[i]

		supplier, err := s.supplierRepo.GetByID(ctx, inquiry.SupplierID)
		if err != nil {
			return nil, fmt.Errorf("failed to load supplier: %w", err)
		}

		row := domain.QuoteComparisonRow{
			InquiryID:        inquiry.ID,
			SupplierID:       supplier.ID,
			SupplierName:     supplier.Name,
			SupplierLocation: supplier.Location,
			InquiryStatus:    inquiry.Status,
			SentAt:           inquiry.SentAt.Format(time.RFC3339),
		}

		if inquiry.Status == domain.InquiryStatusResponded {
			summary.Responded++
		}

		quote := inquiry.Quote
		if quote != nil {
			row.QuoteID = &quote.ID
			row.Price = quote.Price
			row.Currency = quote.Currency
			row.TotalPrice = quote.TotalPrice
			row.ShippingCost = quote.ShippingCost
			row.Availability = quote.Availability
			row.DeliveryDays = quote.DeliveryDays
			row.Condition = quote.Condition
			row.Notes = quote.Notes
			row.RawMessage = quote.RawMessage
			confidence := quote.Confidence
			row.Confidence = &confidence
			needsReview := quote.NeedsReview
			row.NeedsReview = &needsReview

			if inquiry.RespondedAt != nil {
				minutes := int(inquiry.RespondedAt.Sub(inquiry.SentAt).Minutes())
				row.ResponseTimeMinutes = &minutes
			}

			if quote.Price != nil {
				if summary.BestPrice == nil || *quote.Price < *summary.BestPrice {
					summary.BestPrice = quote.Price
				}
			}
			if quote.DeliveryDays != nil {
				if summary.FastestDelivery == nil || *quote.DeliveryDays < *summary.FastestDelivery {
					summary.FastestDelivery = quote.DeliveryDays
				}
			}
		}

		if row.Price != nil {
			priced = append(priced, row)
		} else {
			unpriced = append(unpriced, row)
		}
	}

	sort.SliceStable(priced, func(i, j int) bool {
		return *priced[i].Price < *priced[j].Price
	})

	return &domain.QuoteComparison{
		Request: domain.RequestDTO{
			ID:                 request.ID,
			PartDescription:    request.PartDescription,
			VehicleInfo:        request.VehicleInfo,
			Quantity:           request.Quantity,
			Urgency:            request.Urgency,
			Deadline:           request.Deadline,
			Notes:              request.Notes,
			Status:             request.Status,
			SuppliersTotal:     len(inquiries),
			SuppliersResponded: summary.Responded,
			CreatedAt:          request.CreatedAt.Format(time.RFC3339),
		},
		Quotes:  append(priced, unpriced...),
		Summary: summary,
	}, nil
}
