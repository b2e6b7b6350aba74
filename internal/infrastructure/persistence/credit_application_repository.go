package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/retailcore/backoffice/internal/domain/finance"
	"github.com/retailcore/backoffice/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCreditApplicationRepository implements finance.CreditApplicationRepository using GORM
type GormCreditApplicationRepository struct {
	db *gorm.DB
}

// NewGormCreditApplicationRepository creates a new GormCreditApplicationRepository
func NewGormCreditApplicationRepository(db *gorm.DB) *GormCreditApplicationRepository {
	return &GormCreditApplicationRepository{db: db}
}

// FindByOrder finds all credit applications against an order, including
// voided ones, oldest first
func (r *GormCreditApplicationRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]finance.CreditApplication, error) {
	var rows []models.CreditApplicationModel
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainApplications(rows), nil
}

// FindActiveByOrder finds the non-voided credit applications against an order
func (r *GormCreditApplicationRepository) FindActiveByOrder(ctx context.Context, orderID uuid.UUID) ([]finance.CreditApplication, error) {
	var rows []models.CreditApplicationModel
	if err := r.db.WithContext(ctx).
		Where("order_id = ? AND voided_at IS NULL", orderID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainApplications(rows), nil
}

// Save creates or updates a credit application. Updates only ever set the
// void marker.
func (r *GormCreditApplicationRepository) Save(ctx context.Context, application *finance.CreditApplication) error {
	model := models.CreditApplicationModelFromDomain(application)
	return r.db.WithContext(ctx).Save(model).Error
}

func toDomainApplications(rows []models.CreditApplicationModel) []finance.CreditApplication {
	applications := make([]finance.CreditApplication, len(rows))
	for i := range rows {
		applications[i] = *rows[i].ToDomain()
	}
	return applications
}
