package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/hexaparts/procurement-api/internal/domain"
	"gorm.io/gorm"
)

// OrganizationRepository handles organization data access operations
type OrganizationRepository struct {
	db *gorm.DB
}

// NewOrganizationRepository creates a new organization repository instance
func NewOrganizationRepository(db *gorm.DB) *OrganizationRepository {
	return &OrganizationRepository{db: db}
}

// Create creates a new organization in the database
func (r *OrganizationRepository) Create(ctx context.Context, org *domain.Organization) error {
	return r.db.WithContext(ctx).Create(org).Error
}

// GetByID retrieves an organization by its ID
func (r *OrganizationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Organization, error) {
	var org domain.Organization
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&org).Error
	if err != nil {
		return nil, err
	}
	return &org, nil
}

// GetFirst returns the first organization ordered by creation time.
// Single-tenant deployments register exactly one organization.
func (r *OrganizationRepository) GetFirst(ctx context.Context) (*domain.Organization, error) {
	var org domain.Organization
	err := r.db.WithContext(ctx).Order("created_at ASC").First(&org).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &org, nil
}
