package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/retailcore/backoffice/internal/domain/finance"
	"github.com/retailcore/backoffice/internal/domain/shared"
	"github.com/retailcore/backoffice/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCustomerCreditRepository implements finance.CustomerCreditRepository using GORM
type GormCustomerCreditRepository struct {
	db *gorm.DB
}

// NewGormCustomerCreditRepository creates a new GormCustomerCreditRepository
func NewGormCustomerCreditRepository(db *gorm.DB) *GormCustomerCreditRepository {
	return &GormCustomerCreditRepository{db: db}
}

// FindByID finds a customer credit by its ID
func (r *GormCustomerCreditRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.CustomerCredit, error) {
	var model models.CustomerCreditModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCustomer finds all credits held by a customer, newest first
func (r *GormCustomerCreditRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]finance.CustomerCredit, error) {
	var rows []models.CustomerCreditModel
	if err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	credits := make([]finance.CustomerCredit, len(rows))
	for i := range rows {
		credits[i] = *rows[i].ToDomain()
	}
	return credits, nil
}

// Save creates or updates a credit with an optimistic version check
func (r *GormCustomerCreditRepository) Save(ctx context.Context, credit *finance.CustomerCredit) error {
	model := models.CustomerCreditModelFromDomain(credit)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.CustomerCreditModel
		err := tx.Select("version").First(&current, "id = ?", model.ID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(model).Error
		}
		if err != nil {
			return err
		}

		if current.Version != credit.Version {
			return shared.ErrConcurrencyConflict
		}

		model.Version = credit.Version + 1
		model.UpdatedAt = time.Now()

		result := tx.Model(&models.CustomerCreditModel{}).
			Where("id = ? AND version = ?", model.ID, credit.Version).
			Updates(map[string]interface{}{
				"remaining_amount": model.RemainingAmount,
				"status":           model.Status,
				"version":          model.Version,
				"updated_at":       model.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrConcurrencyConflict
		}

		credit.Version = model.Version
		return nil
	})
}

// GenerateCreditNumber generates a unique sequential credit number.
// Format: CR-YYYYMMDD-NNNN (e.g., CR-20260830-0001)
func (r *GormCustomerCreditRepository) GenerateCreditNumber(ctx context.Context) (string, error) {
	prefix := fmt.Sprintf("CR-%s-", time.Now().Format("20060102"))

	var last models.CustomerCreditModel
	err := r.db.WithContext(ctx).
		Model(&models.CustomerCreditModel{}).
		Where("credit_number LIKE ?", prefix+"%").
		Order("credit_number DESC").
		First(&last).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	var nextNum int64 = 1
	if err == nil && last.CreditNumber != "" {
		parts := strings.Split(last.CreditNumber, "-")
		if len(parts) == 3 {
			var num int64
			if _, parseErr := fmt.Sscanf(parts[2], "%d", &num); parseErr == nil {
				nextNum = num + 1
			}
		}
	}

	return fmt.Sprintf("%s%04d", prefix, nextNum), nil
}
