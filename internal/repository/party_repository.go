package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/hexaparts/procurement-api/internal/domain"
	"gorm.io/gorm"
)

// PartyRepository handles data access for organization members
type PartyRepository struct {
	db *gorm.DB
}

// NewPartyRepository creates a new party repository instance
func NewPartyRepository(db *gorm.DB) *PartyRepository {
	return &PartyRepository{db: db}
}

// Create creates a new party in the database
func (r *PartyRepository) Create(ctx context.Context, party *domain.Party) error {
	return r.db.WithContext(ctx).Create(party).Error
}

// GetByID retrieves a party by its ID
func (r *PartyRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Party, error) {
	var party domain.Party
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&party).Error
	if err != nil {
		return nil, err
	}
	return &party, nil
}

// GetByPhone finds a party by WhatsApp phone number, nil when unknown
func (r *PartyRepository) GetByPhone(ctx context.Context, phone string) (*domain.Party, error) {
	var party domain.Party
	err := r.db.WithContext(ctx).Where("phone = ?", phone).First(&party).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &party, nil
}

// ListByOrganization returns all parties for an organization
func (r *PartyRepository) ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]domain.Party, error) {
	var parties []domain.Party
	err := r.db.WithContext(ctx).
		Where("organization_id = ?", orgID).
		Order("name ASC").
		Find(&parties).Error
	return parties, err
}
