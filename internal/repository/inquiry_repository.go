package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hexaparts/procurement-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InquiryRepository handles data access for supplier inquiries
type InquiryRepository struct {
	db *gorm.DB
}

// NewInquiryRepository creates a new inquiry repository instance
func NewInquiryRepository(db *gorm.DB) *InquiryRepository {
	return &InquiryRepository{db: db}
}

// Create creates a new inquiry in the database
func (r *InquiryRepository) Create(ctx context.Context, inquiry *domain.Inquiry) error {
	return r.db.WithContext(ctx).Create(inquiry).Error
}

// GetByID retrieves an inquiry by its ID
func (r *InquiryRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Inquiry, error) {
	var inquiry domain.Inquiry
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&inquiry).Error
	if err != nil {
		return nil, err
	}
	return &inquiry, nil
}

// FindOpenBySupplier returns the supplier's most recent inquiry that still
// belongs to a live request. A responded inquiry remains open so suppliers
// can revise their quote until the request closes.
func (r *InquiryRepository) FindOpenBySupplier(ctx context.Context, supplierID uuid.UUID) (*domain.Inquiry, error) {
	var inquiry domain.Inquiry
	err := r.db.WithContext(ctx).
		Joins("JOIN parts_requests ON parts_requests.id = inquiries.parts_request_id").
		Where("inquiries.supplier_id = ?", supplierID).
		Where("inquiries.status IN ?", []domain.InquiryStatus{
			domain.InquiryStatusSent,
			domain.InquiryStatusResponded,
		}).
		Where("parts_requests.status IN ?", []domain.RequestStatus{
			domain.RequestStatusRFQSent,
			domain.RequestStatusQuotesReceived,
		}).
		Order("inquiries.sent_at DESC").
		First(&inquiry).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &inquiry, nil
}

// MarkResponded records the response time and flips the inquiry status
func (r *InquiryRepository) MarkResponded(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&domain.Inquiry{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":       domain.InquiryStatusResponded,
			"responded_at": at,
		}).Error
}

// RecordReply stores a supplier's quote, marks the inquiry responded and,
// when the last open inquiry on the request has now answered, moves the
// request to quotes_received. One transaction: a failure at any step leaves
// no partial write, and the request row is read under SELECT FOR UPDATE so
// the completion check never acts on a stale status.
//
// A repeat reply on the same inquiry overwrites the earlier quote and flags
// it for review, matching the latest-message-wins policy.
//
// Returns the inquiry counts and the request status after the write.
func (r *InquiryRepository) RecordReply(ctx context.Context, requestID uuid.UUID, quote *domain.Quote, at time.Time) (*InquiryCounts, domain.RequestStatus, error) {
	var counts InquiryCounts
	var status domain.RequestStatus

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var request domain.PartsRequest
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", requestID).
			First(&request).Error; err != nil {
			return fmt.Errorf("failed to load parts request: %w", err)
		}
		status = request.Status

		var existing domain.Quote
		err := tx.Where("inquiry_id = ?", quote.InquiryID).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(quote).Error; err != nil {
				return fmt.Errorf("failed to store quote: %w", err)
			}
		case err != nil:
			return fmt.Errorf("failed to load existing quote: %w", err)
		default:
			quote.ID = existing.ID
			quote.CreatedAt = existing.CreatedAt
			quote.NeedsReview = true
			if err := tx.Save(quote).Error; err != nil {
				return fmt.Errorf("failed to overwrite quote: %w", err)
			}
		}

		if err := tx.Model(&domain.Inquiry{}).
			Where("id = ?", quote.InquiryID).
			Updates(map[string]interface{}{
				"status":       domain.InquiryStatusResponded,
				"responded_at": at,
			}).Error; err != nil {
			return fmt.Errorf("failed to mark inquiry responded: %w", err)
		}

		var total, responded int64
		if err := tx.Model(&domain.Inquiry{}).
			Where("parts_request_id = ?", requestID).
			Count(&total).Error; err != nil {
			return fmt.Errorf("failed to count inquiries: %w", err)
		}
		if err := tx.Model(&domain.Inquiry{}).
			Where("parts_request_id = ?", requestID).
			Where("status = ?", domain.InquiryStatusResponded).
			Count(&responded).Error; err != nil {
			return fmt.Errorf("failed to count responses: %w", err)
		}
		counts = InquiryCounts{Total: int(total), Responded: int(responded)}

		if counts.Responded == counts.Total && status == domain.RequestStatusRFQSent {
			status = domain.RequestStatusQuotesReceived
			if err := tx.Model(&domain.PartsRequest{}).
				Where("id = ?", requestID).
				Update("status", status).Error; err != nil {
				return fmt.Errorf("failed to update request status: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, "", err
	}

	return &counts, status, nil
}

// UpdateDeliveryStatusByExternalID records a provider delivery receipt on
// the inquiry whose RFQ message carries the given SID
func (r *InquiryRepository) UpdateDeliveryStatusByExternalID(ctx context.Context, externalID, status string) error {
	return r.db.WithContext(ctx).
		Model(&domain.Inquiry{}).
		Where("external_message_id = ?", externalID).
		Update("delivery_status", status).Error
}

// UpdateStatus sets the status of an inquiry
func (r *InquiryRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.InquiryStatus) error {
	return r.db.WithContext(ctx).
		Model(&domain.Inquiry{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// ListByRequest returns all inquiries for a request ordered by send time
func (r *InquiryRepository) ListByRequest(ctx context.Context, requestID uuid.UUID) ([]domain.Inquiry, error) {
	var inquiries []domain.Inquiry
	err := r.db.WithContext(ctx).
		Preload("Quote").
		Where("parts_request_id = ?", requestID).
		Order("sent_at ASC").
		Find(&inquiries).Error
	return inquiries, err
}

// InquiryCounts holds responded and total counts for a request
type InquiryCounts struct {
	Total     int
	Responded int
}

// CountsByRequest returns how many inquiries were sent and how many drew a response
func (r *InquiryRepository) CountsByRequest(ctx context.Context, requestID uuid.UUID) (*InquiryCounts, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&domain.Inquiry{}).
		Where("parts_request_id = ?", requestID).
		Count(&total).Error
	if err != nil {
		return nil, err
	}

	var responded int64
	err = r.db.WithContext(ctx).Model(&domain.Inquiry{}).
		Where("parts_request_id = ?", requestID).
		Where("status = ?", domain.InquiryStatusResponded).
		Count(&responded).Error
	if err != nil {
		return nil, err
	}

	return &InquiryCounts{Total: int(total), Responded: int(responded)}, nil
}

// ListStaleSent returns inquiries still in sent status whose send time is
// older than the cutoff, along with the requests they belong to
func (r *InquiryRepository) ListStaleSent(ctx context.Context, cutoff time.Time) ([]domain.Inquiry, error) {
	var inquiries []domain.Inquiry
	err := r.db.WithContext(ctx).
		Joins("JOIN parts_requests ON parts_requests.id = inquiries.parts_request_id").
		Where("inquiries.status = ?", domain.InquiryStatusSent).
		Where("inquiries.sent_at < ?", cutoff).
		Where("parts_requests.status IN ?", []domain.RequestStatus{
			domain.RequestStatusRFQSent,
			domain.RequestStatusQuotesReceived,
		}).
		Find(&inquiries).Error
	return inquiries, err
}
