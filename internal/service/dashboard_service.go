package service

import (
	"context"
	"fmt"

	"github.com/hexaparts/procurement-api/internal/domain"
	"github.com/hexaparts/procurement-api/internal/mapper"
	"github.com/hexaparts/procurement-api/internal/repository"
	"go.uber.org/zap"
)

// DashboardService builds the list and metric projections the dashboard shows
type DashboardService struct {
	requestRepo  *repository.RequestRepository
	inquiryRepo  *repository.InquiryRepository
	quoteRepo    *repository.QuoteRepository
	orderRepo    *repository.OrderRepository
	supplierRepo *repository.SupplierRepository
	messageRepo  *repository.MessageRepository
	logger       *zap.Logger
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	requestRepo *repository.RequestRepository,
	inquiryRepo *repository.InquiryRepository,
	quoteRepo *repository.QuoteRepository,
	orderRepo *repository.OrderRepository,
	supplierRepo *repository.SupplierRepository,
	messageRepo *repository.MessageRepository,
	logger *zap.Logger,
) *DashboardService {
	return &DashboardService{
		requestRepo:  requestRepo,
		inquiryRepo:  inquiryRepo,
		quoteRepo:    quoteRepo,
		orderRepo:    orderRepo,
		supplierRepo: supplierRepo,
		messageRepo:  messageRepo,
		logger:       logger,
	}
}

// ListRequests returns a paginated request list with response counts
func (s *DashboardService) ListRequests(ctx context.Context, page, pageSize int, filters *repository.RequestFilters, sort repository.SortConfig) (*domain.PaginatedResponse, error) {
	requests, total, err := s.requestRepo.List(ctx, page, pageSize, filters, sort)
	if err != nil {
		return nil, fmt.Errorf("failed to list parts requests: %w", err)
	}

	dtos := make([]domain.RequestDTO, 0, len(requests))
	for i := range requests {
		request := &requests[i]
		counts, err := s.inquiryRepo.CountsByRequest(ctx, request.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to count inquiries: %w", err)
		}
		dtos = append(dtos, *mapper.ToRequestDTO(request, counts.Total, counts.Responded))
	}

	page, pageSize = repository.NormalizePage(page, pageSize)
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	return &domain.PaginatedResponse{
		Data:       dtos,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// ListOrders returns a paginated purchase order list with display names
func (s *DashboardService) ListOrders(ctx context.Context, page, pageSize int, status *domain.OrderStatus, sort repository.SortConfig) (*domain.PaginatedResponse, error) {
	orders, total, err := s.orderRepo.List(ctx, page, pageSize, status, sort)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchase orders: %w", err)
	}

	dtos := make([]domain.OrderDTO, 0, len(orders))
	for i := range orders {
		order := &orders[i]

		partDescription := "Unknown"
		if request, err := s.requestRepo.GetByID(ctx, order.PartsRequestID); err == nil {
			partDescription = request.PartDescription
		}

		supplierName := "Unknown"
		if supplier, err := s.supplierRepo.GetByID(ctx, order.SupplierID); err == nil {
			supplierName = supplier.Name
		}

		dtos = append(dtos, *mapper.ToOrderDTO(order, partDescription, supplierName))
	}

	page, pageSize = repository.NormalizePage(page, pageSize)
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	return &domain.PaginatedResponse{
		Data:       dtos,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// ListMessages returns a paginated slice of the message log
func (s *DashboardService) ListMessages(ctx context.Context, page, pageSize int, filters *repository.MessageFilters, sort repository.SortConfig) (*domain.PaginatedResponse, error) {
	records, total, err := s.messageRepo.List(ctx, page, pageSize, filters, sort)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	page, pageSize = repository.NormalizePage(page, pageSize)
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	return &domain.PaginatedResponse{
		Data:       mapper.ToMessageRecordDTOs(records),
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// Metrics returns the headline dashboard numbers
func (s *DashboardService) Metrics(ctx context.Context) (*domain.DashboardMetrics, error) {
	active, err := s.requestRepo.CountByStatuses(ctx, []domain.RequestStatus{
		domain.RequestStatusDraft,
		domain.RequestStatusRFQSent,
		domain.RequestStatusQuotesReceived,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to count active requests: %w", err)
	}

	quotes, err := s.quoteRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count quotes: %w", err)
	}

	orders, err := s.orderRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	needsReview, err := s.quoteRepo.CountNeedsReview(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count quotes needing review: %w", err)
	}

	return &domain.DashboardMetrics{
		ActiveRequests: active,
		QuotesReceived: quotes,
		OrdersIssued:   orders,
		NeedsReview:    needsReview,
	}, nil
}
