package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/paintdesk/backend/internal/domain/shared"
	"github.com/paintdesk/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// IsValidSaleQuantity reports whether a quantity can be sold.
// Paint is tinted and sold in whole or half units (e.g. half-litre tins),
// so the quantity must be a positive multiple of 0.5.
func IsValidSaleQuantity(quantity decimal.Decimal) bool {
	_, err := valueobject.NewSaleQuantity(quantity)
	return err == nil
}

// ProductSnapshot captures the product details at the moment of sale.
// Line items store this copy so that later catalog edits never rewrite
// historical invoices.
type ProductSnapshot struct {
	ProductID   uuid.UUID
	ProductName string
	Brand       string
	Base        string // base/specification, e.g. "Deep Base 4L"
	HSNCode     string
	Unit        string
	GSTRate     decimal.Decimal // percent, e.g. 18
	UnitPrice   decimal.Decimal
}

// LineItem represents one sale or return row on an invoice.
// Total is always stored as a positive magnitude; IsReturned carries the
// direction and SignedTotal applies it.
type LineItem struct {
	ID             uuid.UUID
	InvoiceID      uuid.UUID `gorm:"type:uuid;index"`
	ProductID      uuid.UUID
	ProductName    string
	Brand          string
	Base           string
	HSNCode        string
	Unit           string
	GSTRate        decimal.Decimal
	UnitPrice      decimal.Decimal
	Quantity       decimal.Decimal
	Colour         string
	Total          decimal.Decimal
	IsReturned     bool
	ReturnReason   string
	ReturnOfItemID *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName returns the database table name
func (LineItem) TableName() string {
	return "invoice_items"
}

// NewLineItem creates a new sale line item from a product snapshot
func NewLineItem(invoiceID uuid.UUID, snapshot ProductSnapshot, quantity decimal.Decimal, colour string) (*LineItem, error) {
	if snapshot.ProductID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if snapshot.ProductName == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	qty, err := valueobject.NewSaleQuantity(quantity)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be a positive multiple of 0.5")
	}
	if snapshot.UnitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if snapshot.GSTRate.IsNegative() {
		return nil, shared.NewDomainError("INVALID_GST_RATE", "GST rate cannot be negative")
	}

	now := time.Now()
	return &LineItem{
		ID:          uuid.New(),
		InvoiceID:   invoiceID,
		ProductID:   snapshot.ProductID,
		ProductName: snapshot.ProductName,
		Brand:       snapshot.Brand,
		Base:        snapshot.Base,
		HSNCode:     snapshot.HSNCode,
		Unit:        snapshot.Unit,
		GSTRate:     snapshot.GSTRate,
		UnitPrice:   snapshot.UnitPrice,
		Quantity:    quantity,
		Colour:      colour,
		Total:       qty.Cost(valueobject.NewMoney(snapshot.UnitPrice)).Amount(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// newReturnedLineItem creates an offsetting return row for a sale item.
// The original row is never mutated; returns are additive.
func newReturnedLineItem(original *LineItem, quantity decimal.Decimal, reason string) *LineItem {
	now := time.Now()
	originalID := original.ID
	return &LineItem{
		ID:             uuid.New(),
		InvoiceID:      original.InvoiceID,
		ProductID:      original.ProductID,
		ProductName:    original.ProductName,
		Brand:          original.Brand,
		Base:           original.Base,
		HSNCode:        original.HSNCode,
		Unit:           original.Unit,
		GSTRate:        original.GSTRate,
		UnitPrice:      original.UnitPrice,
		Quantity:       quantity,
		Colour:         original.Colour,
		Total:          quantity.Mul(original.UnitPrice),
		IsReturned:     true,
		ReturnReason:   reason,
		ReturnOfItemID: &originalID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// SignedTotal returns the total with the return direction applied:
// negative for return rows, positive for sale rows.
func (li *LineItem) SignedTotal() decimal.Decimal {
	if li.IsReturned {
		return li.Total.Neg()
	}
	return li.Total
}

// SignedQuantity returns the quantity with the return direction applied
func (li *LineItem) SignedQuantity() decimal.Decimal {
	if li.IsReturned {
		return li.Quantity.Neg()
	}
	return li.Quantity
}

// UnitPriceExcludingGST backs the GST component out of the stored
// GST-inclusive unit price. Derived on demand, never persisted.
func (li *LineItem) UnitPriceExcludingGST() decimal.Decimal {
	divisor := decimal.NewFromInt(1).Add(li.GSTRate.Div(hundred))
	return li.UnitPrice.Div(divisor)
}

// UpdateQuantity updates the item quantity and recalculates the total
func (li *LineItem) UpdateQuantity(quantity decimal.Decimal) error {
	if li.IsReturned {
		return shared.NewDomainError("INVALID_STATE", "Return entries cannot be edited")
	}
	if !IsValidSaleQuantity(quantity) {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be a positive multiple of 0.5")
	}

	li.Quantity = quantity
	li.Total = quantity.Mul(li.UnitPrice)
	li.UpdatedAt = time.Now()

	return nil
}
