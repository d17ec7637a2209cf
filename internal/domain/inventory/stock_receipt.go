package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/paintdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// StockReceipt records goods received from a supplier
type StockReceipt struct {
	shared.BaseAggregateRoot
	ProductID    uuid.UUID `gorm:"type:uuid;index"`
	SupplierName string
	Quantity     decimal.Decimal
	CostPrice    decimal.Decimal // per unit
	Note         string
	ReceivedAt   time.Time
}

// TableName returns the database table name
func (StockReceipt) TableName() string {
	return "inventory_receipts"
}

// NewStockReceipt creates a new stock receipt
func NewStockReceipt(productID uuid.UUID, supplierName string, quantity, costPrice decimal.Decimal, note string) (*StockReceipt, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if !quantity.IsPositive() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Receipt quantity must be positive")
	}
	if costPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Cost price cannot be negative")
	}

	return &StockReceipt{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProductID:         productID,
		SupplierName:      supplierName,
		Quantity:          quantity,
		CostPrice:         costPrice,
		Note:              note,
		ReceivedAt:        time.Now(),
	}, nil
}

// TotalCost returns quantity times per-unit cost
func (r *StockReceipt) TotalCost() decimal.Decimal {
	return r.Quantity.Mul(r.CostPrice)
}
