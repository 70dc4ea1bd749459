package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/hexaparts/procurement-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var orderSortableFields = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"poNumber":  "po_number",
	"amount":    "amount",
	"status":    "status",
}

// OrderRepository handles purchase order data access operations
type OrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new purchase order repository instance
func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create creates a new purchase order in the database
func (r *OrderRepository) Create(ctx context.Context, order *domain.PurchaseOrder) error {
	return r.db.WithContext(ctx).Create(order).Error
}

// GetByID retrieves a purchase order by its ID
func (r *OrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.PurchaseOrder, error) {
	var order domain.PurchaseOrder
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// Issue allocates the next sequential PO number (PO-0001, PO-0002, ...) and
// commits the order, the winning quote selection and the ordered request
// status in a single transaction. The sequence row is taken with SELECT FOR
// UPDATE so concurrent approvals never draw the same number, and a failure
// at any step rolls back every write including the sequence increment.
func (r *OrderRepository) Issue(ctx context.Context, order *domain.PurchaseOrder) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var seq domain.PONumberSequence
		result := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&seq)

		var next int
		switch {
		case errors.Is(result.Error, gorm.ErrRecordNotFound):
			seq = domain.PONumberSequence{ID: 1, LastSequence: 1}
			if err := tx.Create(&seq).Error; err != nil {
				return fmt.Errorf("failed to create po number sequence: %w", err)
			}
			next = 1
		case result.Error != nil:
			return fmt.Errorf("failed to get po number sequence: %w", result.Error)
		default:
			next = seq.LastSequence + 1
			if err := tx.Model(&seq).Update("last_sequence", next).Error; err != nil {
				return fmt.Errorf("failed to update po number sequence: %w", err)
			}
		}

		order.PONumber = fmt.Sprintf("PO-%04d", next)
		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create purchase order: %w", err)
		}

		if err := tx.Model(&domain.Quote{}).
			Where("id = ?", order.QuoteID).
			Update("is_selected", true).Error; err != nil {
			return fmt.Errorf("failed to mark quote selected: %w", err)
		}

		if err := tx.Model(&domain.PartsRequest{}).
			Where("id = ?", order.PartsRequestID).
			Update("status", domain.RequestStatusOrdered).Error; err != nil {
			return fmt.Errorf("failed to update request status: %w", err)
		}

		return nil
	})
}

// UpdateStatus sets the status of a purchase order
func (r *OrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error {
	return r.db.WithContext(ctx).
		Model(&domain.PurchaseOrder{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// List returns a paginated list of purchase orders
func (r *OrderRepository) List(ctx context.Context, page, pageSize int, status *domain.OrderStatus, sort SortConfig) ([]domain.PurchaseOrder, int64, error) {
	var orders []domain.PurchaseOrder
	var total int64

	page, pageSize = NormalizePage(page, pageSize)

	query := r.db.WithContext(ctx).Model(&domain.PurchaseOrder{})

	if status != nil {
		query = query.Where("status = ?", *status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	orderClause := BuildOrderClause(sort, orderSortableFields, "created_at")

	offset := (page - 1) * pageSize
	err := query.Offset(offset).Limit(pageSize).Order(orderClause).Find(&orders).Error

	return orders, total, err
}

// Count returns the total number of purchase orders issued
func (r *OrderRepository) Count(ctx context.Context) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.PurchaseOrder{}).Count(&count).Error
	return int(count), err
}
