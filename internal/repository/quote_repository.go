package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/hexaparts/procurement-api/internal/domain"
	"gorm.io/gorm"
)

// QuoteRepository handles quote data access operations
type QuoteRepository struct {
	db *gorm.DB
}

// NewQuoteRepository creates a new quote repository instance
func NewQuoteRepository(db *gorm.DB) *QuoteRepository {
	return &QuoteRepository{db: db}
}

// Create creates a new quote in the database
func (r *QuoteRepository) Create(ctx context.Context, quote *domain.Quote) error {
	return r.db.WithContext(ctx).Create(quote).Error
}

// GetByID retrieves a quote by its ID
func (r *QuoteRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Quote, error) {
	var quote domain.Quote
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&quote).Error
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

// GetByInquiry returns the quote attached to an inquiry, nil when none exists
func (r *QuoteRepository) GetByInquiry(ctx context.Context, inquiryID uuid.UUID) (*domain.Quote, error) {
	var quote domain.Quote
	err := r.db.WithContext(ctx).Where("inquiry_id = ?", inquiryID).First(&quote).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &quote, nil
}

// Update updates an existing quote in the database
func (r *QuoteRepository) Update(ctx context.Context, quote *domain.Quote) error {
	return r.db.WithContext(ctx).Save(quote).Error
}

// ListByRequest returns all quotes attached to a request's inquiries
func (r *QuoteRepository) ListByRequest(ctx context.Context, requestID uuid.UUID) ([]domain.Quote, error) {
	var quotes []domain.Quote
	err := r.db.WithContext(ctx).
		Joins("JOIN inquiries ON inquiries.id = quotes.inquiry_id").
		Where("inquiries.parts_request_id = ?", requestID).
		Find(&quotes).Error
	return quotes, err
}

// CountNeedsReview returns the number of quotes flagged for manual review
func (r *QuoteRepository) CountNeedsReview(ctx context.Context) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Quote{}).
		Where("needs_review = ?", true).
		Count(&count).Error
	return int(count), err
}

// Count returns the total number of quotes received
func (r *QuoteRepository) Count(ctx context.Context) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Quote{}).Count(&count).Error
	return int(count), err
}
