package repository

import (
	"context"

	"github.com/hexaparts/procurement-api/internal/domain"
	"gorm.io/gorm"
)

// MessageFilters defines filter options for message log listing
type MessageFilters struct {
	Direction *domain.MessageDirection
	Number    string
}

var messageSortableFields = map[string]string{
	"createdAt": "created_at",
	"direction": "direction",
}

// MessageRepository handles message log data access operations
type MessageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new message log repository instance
func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// Create appends a message record to the log
func (r *MessageRepository) Create(ctx context.Context, record *domain.MessageRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// ExistsByExternalID reports whether an inbound message with the given
// provider message ID has already been logged. Used for replay detection.
func (r *MessageRepository) ExistsByExternalID(ctx context.Context, externalID string) (bool, error) {
	if externalID == "" {
		return false, nil
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.MessageRecord{}).
		Where("external_message_id = ?", externalID).
		Where("direction = ?", domain.DirectionInbound).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpdateDeliveryStatus records a delivery receipt against an outbound message
func (r *MessageRepository) UpdateDeliveryStatus(ctx context.Context, externalID, status string) error {
	return r.db.WithContext(ctx).Model(&domain.MessageRecord{}).
		Where("external_message_id = ?", externalID).
		Where("direction = ?", domain.DirectionOutbound).
		Update("delivery_status", status).Error
}

// List returns a paginated list of message records
func (r *MessageRepository) List(ctx context.Context, page, pageSize int, filters *MessageFilters, sort SortConfig) ([]domain.MessageRecord, int64, error) {
	var records []domain.MessageRecord
	var total int64

	page, pageSize = NormalizePage(page, pageSize)

	query := r.db.WithContext(ctx).Model(&domain.MessageRecord{})

	if filters != nil {
		if filters.Direction != nil {
			query = query.Where("direction = ?", *filters.Direction)
		}
		if filters.Number != "" {
			query = query.Where("from_number = ? OR to_number = ?", filters.Number, filters.Number)
		}
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	orderClause := BuildOrderClause(sort, messageSortableFields, "created_at")

	offset := (page - 1) * pageSize
	err := query.Offset(offset).Limit(pageSize).Order(orderClause).Find(&records).Error

	return records, total, err
}
