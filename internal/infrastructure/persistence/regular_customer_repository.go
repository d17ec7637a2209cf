package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/paintdesk/backend/internal/domain/partner"
	"github.com/paintdesk/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormRegularCustomerRepository implements RegularCustomerRepository using GORM
type GormRegularCustomerRepository struct {
	db *gorm.DB
}

// NewGormRegularCustomerRepository creates a new GormRegularCustomerRepository
func NewGormRegularCustomerRepository(db *gorm.DB) *GormRegularCustomerRepository {
	return &GormRegularCustomerRepository{db: db}
}

// FindByID finds a regular customer by its ID
func (r *GormRegularCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.RegularCustomer, error) {
	var regular partner.RegularCustomer
	if err := r.db.WithContext(ctx).
		Preload("Rates").
		Preload("Invoices").
		First(&regular, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &regular, nil
}

// FindByCustomerID finds the regular account for a customer
func (r *GormRegularCustomerRepository) FindByCustomerID(ctx context.Context, customerID uuid.UUID) (*partner.RegularCustomer, error) {
	var regular partner.RegularCustomer
	if err := r.db.WithContext(ctx).
		Preload("Rates").
		Preload("Invoices").
		Where("customer_id = ?", customerID).
		First(&regular).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &regular, nil
}

// FindAll finds regular customers with filtering
func (r *GormRegularCustomerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.RegularCustomer, error) {
	var regulars []partner.RegularCustomer
	query := r.db.WithContext(ctx).Model(&partner.RegularCustomer{})

	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR phone ILIKE ?", searchPattern, searchPattern)
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderBy := ValidateSortField(filter.OrderBy, RegularCustomerSortFields, "name")
		query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
	} else {
		query = query.Order("name ASC")
	}

	if err := query.Preload("Rates").Preload("Invoices").Find(&regulars).Error; err != nil {
		return nil, err
	}
	return regulars, nil
}

// Save creates or updates a regular customer with its rates and invoice
// links.
func (r *GormRegularCustomerRepository) Save(ctx context.Context, regular *partner.RegularCustomer) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(regular).Error; err != nil {
			return err
		}

		// reconcile negotiated rates: removed rates are deleted
		currentRateIDs := make([]uuid.UUID, len(regular.Rates))
		for i, rate := range regular.Rates {
			currentRateIDs[i] = rate.ID
		}
		if len(currentRateIDs) > 0 {
			if err := tx.Where("regular_customer_id = ? AND id NOT IN ?", regular.ID, currentRateIDs).
				Delete(&partner.RegularCustomerRate{}).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Where("regular_customer_id = ?", regular.ID).
				Delete(&partner.RegularCustomerRate{}).Error; err != nil {
				return err
			}
		}
		for i := range regular.Rates {
			regular.Rates[i].RegularCustomerID = regular.ID
			if err := tx.Save(&regular.Rates[i]).Error; err != nil {
				return err
			}
		}

		// invoice links are append-only
		for i := range regular.Invoices {
			regular.Invoices[i].RegularCustomerID = regular.ID
			if err := tx.Save(&regular.Invoices[i]).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// Delete deletes a regular customer and its rates
func (r *GormRegularCustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("regular_customer_id = ?", id).
			Delete(&partner.RegularCustomerRate{}).Error; err != nil {
			return err
		}
		if err := tx.Where("regular_customer_id = ?", id).
			Delete(&partner.RegularCustomerInvoice{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&partner.RegularCustomer{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Ensure GormRegularCustomerRepository implements RegularCustomerRepository
var _ partner.RegularCustomerRepository = (*GormRegularCustomerRepository)(nil)
