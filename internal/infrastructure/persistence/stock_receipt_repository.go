package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/paintdesk/backend/internal/domain/inventory"
	"github.com/paintdesk/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormStockReceiptRepository implements StockReceiptRepository using GORM
type GormStockReceiptRepository struct {
	db *gorm.DB
}

// NewGormStockReceiptRepository creates a new GormStockReceiptRepository
func NewGormStockReceiptRepository(db *gorm.DB) *GormStockReceiptRepository {
	return &GormStockReceiptRepository{db: db}
}

// FindByID finds a stock receipt by its ID
func (r *GormStockReceiptRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.StockReceipt, error) {
	var receipt inventory.StockReceipt
	if err := r.db.WithContext(ctx).First(&receipt, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &receipt, nil
}

// FindByProduct finds receipts for a product
func (r *GormStockReceiptRepository) FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]inventory.StockReceipt, error) {
	var receipts []inventory.StockReceipt
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&inventory.StockReceipt{}).Where("product_id = ?", productID),
		filter,
	)

	if err := query.Find(&receipts).Error; err != nil {
		return nil, err
	}
	return receipts, nil
}

// FindAll finds receipts with filtering
func (r *GormStockReceiptRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.StockReceipt, error) {
	var receipts []inventory.StockReceipt
	query := r.applyFilter(r.db.WithContext(ctx).Model(&inventory.StockReceipt{}), filter)

	if err := query.Find(&receipts).Error; err != nil {
		return nil, err
	}
	return receipts, nil
}

// Save creates or updates a stock receipt
func (r *GormStockReceiptRepository) Save(ctx context.Context, receipt *inventory.StockReceipt) error {
	return r.db.WithContext(ctx).Save(receipt).Error
}

// applyFilter applies filter options to the query
func (r *GormStockReceiptRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("supplier_name ILIKE ?", searchPattern)
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderBy := ValidateSortField(filter.OrderBy, StockReceiptSortFields, "created_at")
		query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
	} else {
		query = query.Order("created_at DESC")
	}

	return query
}

// Ensure GormStockReceiptRepository implements StockReceiptRepository
var _ inventory.StockReceiptRepository = (*GormStockReceiptRepository)(nil)
