package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/hexaparts/procurement-api/internal/domain"
	"github.com/hexaparts/procurement-api/internal/mapper"
	"github.com/hexaparts/procurement-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SupplierService handles business logic for the supplier directory
type SupplierService struct {
	orgRepo      *repository.OrganizationRepository
	supplierRepo *repository.SupplierRepository
	inquiryRepo  *repository.InquiryRepository
	logger       *zap.Logger
}

// NewSupplierService creates a new SupplierService
func NewSupplierService(
	orgRepo *repository.OrganizationRepository,
	supplierRepo *repository.SupplierRepository,
	inquiryRepo *repository.InquiryRepository,
	logger *zap.Logger,
) *SupplierService {
	return &SupplierService{
		orgRepo:      orgRepo,
		supplierRepo: supplierRepo,
		inquiryRepo:  inquiryRepo,
		logger:       logger,
	}
}

// Create registers a new supplier. New suppliers join the fan-out set
// immediately.
func (s *SupplierService) Create(ctx context.Context, req *domain.CreateSupplierRequest) (*domain.SupplierDTO, error) {
	org, err := s.orgRepo.GetFirst(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve organization: %w", err)
	}
	if org == nil {
		return nil, ErrOrganizationNotFound
	}

	supplier := &domain.Supplier{
		OrganizationID: org.ID,
		Name:           req.Name,
		ContactName:    req.ContactName,
		Phone:          req.Phone,
		Categories:     req.Categories,
		Location:       req.Location,
		IsActive:       true,
	}
	if err := s.supplierRepo.Create(ctx, supplier); err != nil {
		return nil, fmt.Errorf("failed to create supplier: %w", err)
	}

	s.logger.Info("supplier registered",
		zap.String("supplier_id", supplier.ID.String()),
		zap.String("name", supplier.Name),
	)

	return mapper.ToSupplierDTO(supplier), nil
}

// GetByID returns one supplier
func (s *SupplierService) GetByID(ctx context.Context, id uuid.UUID) (*domain.SupplierDTO, error) {
	supplier, err := s.supplierRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSupplierNotFound
		}
		return nil, fmt.Errorf("failed to load supplier: %w", err)
	}
	return mapper.ToSupplierDTO(supplier), nil
}

// Update applies a partial update to a supplier. Deactivating a supplier
// with open inquiries is allowed; their in-flight replies still match.
func (s *SupplierService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateSupplierRequest) (*domain.SupplierDTO, error) {
	supplier, err := s.supplierRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSupplierNotFound
		}
		return nil, fmt.Errorf("failed to load supplier: %w", err)
	}

	if req.Name != nil {
		supplier.Name = *req.Name
	}
	if req.ContactName != nil {
		supplier.ContactName = *req.ContactName
	}
	if req.Phone != nil {
		supplier.Phone = *req.Phone
	}
	if req.Categories != nil {
		supplier.Categories = *req.Categories
	}
	if req.Location != nil {
		supplier.Location = *req.Location
	}
	if req.IsActive != nil {
		supplier.IsActive = *req.IsActive
	}

	if err := s.supplierRepo.Update(ctx, supplier); err != nil {
		return nil, fmt.Errorf("failed to update supplier: %w", err)
	}

	return mapper.ToSupplierDTO(supplier), nil
}

// Delete removes a supplier. Historical inquiries and quotes keep their
// supplier_id so past requests stay auditable.
func (s *SupplierService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.supplierRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSupplierNotFound
		}
		return fmt.Errorf("failed to load supplier: %w", err)
	}
	if err := s.supplierRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete supplier: %w", err)
	}
	s.logger.Info("supplier deleted", zap.String("supplier_id", id.String()))
	return nil
}

// List returns a paginated supplier directory
func (s *SupplierService) List(ctx context.Context, page, pageSize int, filters *repository.SupplierFilters, sort repository.SortConfig) (*domain.PaginatedResponse, error) {
	suppliers, total, err := s.supplierRepo.List(ctx, page, pageSize, filters, sort)
	if err != nil {
		return nil, fmt.Errorf("failed to list suppliers: %w", err)
	}

	page, pageSize = repository.NormalizePage(page, pageSize)
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	return &domain.PaginatedResponse{
		Data:       mapper.ToSupplierDTOs(suppliers),
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}
