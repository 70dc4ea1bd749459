package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/hexaparts/procurement-api/internal/domain"
	"gorm.io/gorm"
)

// RequestFilters defines filter options for parts request listing
type RequestFilters struct {
	Status  *domain.RequestStatus
	Urgency *domain.RequestUrgency
}

var requestSortableFields = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"urgency":   "urgency",
	"status":    "status",
}

// RequestRepository handles parts request data access operations
type RequestRepository struct {
	db *gorm.DB
}

// NewRequestRepository creates a new parts request repository instance
func NewRequestRepository(db *gorm.DB) *RequestRepository {
	return &RequestRepository{db: db}
}

// Create creates a new parts request in the database
func (r *RequestRepository) Create(ctx context.Context, request *domain.PartsRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

// GetByID retrieves a parts request by its ID
func (r *RequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.PartsRequest, error) {
	var request domain.PartsRequest
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&request).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// GetWithInquiries retrieves a parts request with inquiries, quotes and suppliers preloaded
func (r *RequestRepository) GetWithInquiries(ctx context.Context, id uuid.UUID) (*domain.PartsRequest, error) {
	var request domain.PartsRequest
	err := r.db.WithContext(ctx).
		Preload("Inquiries", func(db *gorm.DB) *gorm.DB {
			return db.Order("sent_at ASC")
		}).
		Preload("Inquiries.Quote").
		Where("id = ?", id).
		First(&request).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// Update updates an existing parts request in the database
func (r *RequestRepository) Update(ctx context.Context, request *domain.PartsRequest) error {
	return r.db.WithContext(ctx).Save(request).Error
}

// UpdateStatus sets the status of a parts request
func (r *RequestRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.RequestStatus) error {
	return r.db.WithContext(ctx).
		Model(&domain.PartsRequest{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// List returns a paginated list of parts requests with filter and sort options
func (r *RequestRepository) List(ctx context.Context, page, pageSize int, filters *RequestFilters, sort SortConfig) ([]domain.PartsRequest, int64, error) {
	var requests []domain.PartsRequest
	var total int64

	page, pageSize = NormalizePage(page, pageSize)

	query := r.db.WithContext(ctx).Model(&domain.PartsRequest{})

	if filters != nil {
		if filters.Status != nil {
			query = query.Where("status = ?", *filters.Status)
		}
		if filters.Urgency != nil {
			query = query.Where("urgency = ?", *filters.Urgency)
		}
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	orderClause := BuildOrderClause(sort, requestSortableFields, "created_at")

	offset := (page - 1) * pageSize
	err := query.Offset(offset).Limit(pageSize).Order(orderClause).Find(&requests).Error

	return requests, total, err
}

// CountByStatuses returns the number of requests in any of the given statuses
func (r *RequestRepository) CountByStatuses(ctx context.Context, statuses []domain.RequestStatus) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.PartsRequest{}).
		Where("status IN ?", statuses).
		Count(&count).Error
	return int(count), err
}
