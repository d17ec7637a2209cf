package partner

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/paintdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// RegularCustomerRate is a negotiated per-product price for a regular
// (wholesale) customer.
type RegularCustomerRate struct {
	ID                uuid.UUID
	RegularCustomerID uuid.UUID `gorm:"type:uuid;index"`
	ProductID         uuid.UUID `gorm:"type:uuid;index"`
	NegotiatedPrice   decimal.Decimal
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TableName returns the database table name
func (RegularCustomerRate) TableName() string {
	return "regular_customer_products"
}

// RegularCustomerInvoice links an issued invoice to a regular customer
type RegularCustomerInvoice struct {
	ID                uuid.UUID
	RegularCustomerID uuid.UUID `gorm:"type:uuid;index"`
	InvoiceID         uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt         time.Time
}

// TableName returns the database table name
func (RegularCustomerInvoice) TableName() string {
	return "regular_customer_invoices"
}

// RegularCustomer is a recurring wholesale customer carrying negotiated
// product rates and a history of issued invoices.
type RegularCustomer struct {
	shared.BaseAggregateRoot
	CustomerID uuid.UUID `gorm:"type:uuid;index"`
	Name       string
	Phone      string
	Rates      []RegularCustomerRate    `gorm:"foreignKey:RegularCustomerID"`
	Invoices   []RegularCustomerInvoice `gorm:"foreignKey:RegularCustomerID"`
}

// TableName returns the database table name
func (RegularCustomer) TableName() string {
	return "regular_customers"
}

// NewRegularCustomer promotes a customer to a regular account
func NewRegularCustomer(customerID uuid.UUID, name, phone string) (*RegularCustomer, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}

	return &RegularCustomer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerID:        customerID,
		Name:              name,
		Phone:             phone,
		Rates:             make([]RegularCustomerRate, 0),
		Invoices:          make([]RegularCustomerInvoice, 0),
	}, nil
}

// SetRate sets or replaces the negotiated price for a product
func (rc *RegularCustomer) SetRate(productID uuid.UUID, price decimal.Decimal) error {
	if productID == uuid.Nil {
		return shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Negotiated price cannot be negative")
	}

	now := time.Now()
	for idx := range rc.Rates {
		if rc.Rates[idx].ProductID == productID {
			rc.Rates[idx].NegotiatedPrice = price
			rc.Rates[idx].UpdatedAt = now
			rc.UpdatedAt = now
			return nil
		}
	}

	rc.Rates = append(rc.Rates, RegularCustomerRate{
		ID:                uuid.New(),
		RegularCustomerID: rc.ID,
		ProductID:         productID,
		NegotiatedPrice:   price,
		CreatedAt:         now,
		UpdatedAt:         now,
	})
	rc.UpdatedAt = now

	return nil
}

// RemoveRate removes the negotiated price for a product
func (rc *RegularCustomer) RemoveRate(productID uuid.UUID) error {
	for idx := range rc.Rates {
		if rc.Rates[idx].ProductID == productID {
			rc.Rates = append(rc.Rates[:idx], rc.Rates[idx+1:]...)
			rc.UpdatedAt = time.Now()
			return nil
		}
	}
	return shared.NewDomainError("RATE_NOT_FOUND", "No negotiated rate for this product")
}

// RateFor returns the negotiated price for a product, if any
func (rc *RegularCustomer) RateFor(productID uuid.UUID) (decimal.Decimal, bool) {
	for _, rate := range rc.Rates {
		if rate.ProductID == productID {
			return rate.NegotiatedPrice, true
		}
	}
	return decimal.Zero, false
}

// LinkInvoice records an issued invoice against this regular customer.
// Linking the same invoice twice is a no-op.
func (rc *RegularCustomer) LinkInvoice(invoiceID uuid.UUID) error {
	if invoiceID == uuid.Nil {
		return shared.NewDomainError("INVALID_INVOICE", "Invoice ID cannot be empty")
	}
	for _, link := range rc.Invoices {
		if link.InvoiceID == invoiceID {
			return nil
		}
	}

	rc.Invoices = append(rc.Invoices, RegularCustomerInvoice{
		ID:                uuid.New(),
		RegularCustomerID: rc.ID,
		InvoiceID:         invoiceID,
		CreatedAt:         time.Now(),
	})
	rc.UpdatedAt = time.Now()

	return nil
}
