package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/paintdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ProductCategory classifies what the shop sells
type ProductCategory string

const (
	CategoryPaint     ProductCategory = "paint"
	CategoryPrimer    ProductCategory = "primer"
	CategoryThinner   ProductCategory = "thinner"
	CategoryPutty     ProductCategory = "putty"
	CategoryAccessory ProductCategory = "accessory"
	CategoryOther     ProductCategory = "other"
)

// IsValid checks if the category is a valid ProductCategory
func (c ProductCategory) IsValid() bool {
	switch c {
	case CategoryPaint, CategoryPrimer, CategoryThinner, CategoryPutty, CategoryAccessory, CategoryOther:
		return true
	}
	return false
}

// String returns the string representation of ProductCategory
func (c ProductCategory) String() string {
	return string(c)
}

// RequiresHSN reports whether products in this category need an HSN code
// when sold under GST.
func (c ProductCategory) RequiresHSN() bool {
	switch c {
	case CategoryPaint, CategoryPrimer, CategoryThinner, CategoryPutty:
		return true
	}
	return false
}

// ProductStatus represents the lifecycle status of a product
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusDisabled ProductStatus = "disabled"
)

// IsValid checks if the status is a valid ProductStatus
func (s ProductStatus) IsValid() bool {
	return s == ProductStatusActive || s == ProductStatusDisabled
}

// Product is the catalog aggregate root. StockQuantity mirrors the current
// stock level; adjustments go through the repository as atomic increments,
// never as read-modify-write on this field.
type Product struct {
	shared.BaseAggregateRoot
	Name              string
	Brand             string
	Category          ProductCategory
	Base              string // base/specification, e.g. "Deep Base"
	HSNCode           string
	UnitPrice         decimal.Decimal
	CostPrice         decimal.Decimal
	StockQuantity     decimal.Decimal
	LowStockThreshold decimal.Decimal
	GSTRate           decimal.Decimal
	UnitValue         decimal.Decimal // e.g. 4
	UnitType          string          // e.g. "Litre", "Kg", "Piece"
	Status            ProductStatus
	ImageURL          string
}

// TableName returns the database table name
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new active product
func NewProduct(name, brand string, category ProductCategory, base, hsnCode string, unitPrice, gstRate, unitValue decimal.Decimal, unitType string) (*Product, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if !category.IsValid() {
		return nil, shared.NewDomainError("INVALID_CATEGORY", fmt.Sprintf("Unknown product category: %s", category))
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if gstRate.IsNegative() {
		return nil, shared.NewDomainError("INVALID_GST_RATE", "GST rate cannot be negative")
	}
	if unitValue.IsNegative() || unitValue.IsZero() {
		return nil, shared.NewDomainError("INVALID_UNIT", "Unit value must be positive")
	}
	if unitType == "" {
		return nil, shared.NewDomainError("INVALID_UNIT", "Unit type cannot be empty")
	}
	if category.RequiresHSN() && gstRate.IsPositive() && hsnCode == "" {
		return nil, shared.NewDomainError("MISSING_HSN_CODE", "HSN code is required for GST-taxed products")
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Brand:             brand,
		Category:          category,
		Base:              base,
		HSNCode:           hsnCode,
		UnitPrice:         unitPrice,
		CostPrice:         decimal.Zero,
		StockQuantity:     decimal.Zero,
		LowStockThreshold: decimal.Zero,
		GSTRate:           gstRate,
		UnitValue:         unitValue,
		UnitType:          unitType,
		Status:            ProductStatusActive,
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// Unit returns the display unit of measure, e.g. "4 Litre"
func (p *Product) Unit() string {
	return fmt.Sprintf("%s %s", p.UnitValue.String(), p.UnitType)
}

// UpdateDetails updates the descriptive product fields
func (p *Product) UpdateDetails(name, brand, base, imageURL string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}

	p.Name = name
	p.Brand = brand
	p.Base = base
	p.ImageURL = imageURL
	p.UpdatedAt = time.Now()

	return nil
}

// ChangePrice updates the selling price
func (p *Product) ChangePrice(unitPrice decimal.Decimal) error {
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	p.UnitPrice = unitPrice
	p.UpdatedAt = time.Now()

	return nil
}

// SetCostPrice records the latest purchase cost
func (p *Product) SetCostPrice(costPrice decimal.Decimal) error {
	if costPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Cost price cannot be negative")
	}

	p.CostPrice = costPrice
	p.UpdatedAt = time.Now()

	return nil
}

// SetGSTRate updates the GST rate, enforcing the HSN requirement
func (p *Product) SetGSTRate(gstRate decimal.Decimal, hsnCode string) error {
	if gstRate.IsNegative() {
		return shared.NewDomainError("INVALID_GST_RATE", "GST rate cannot be negative")
	}
	if p.Category.RequiresHSN() && gstRate.IsPositive() && hsnCode == "" {
		return shared.NewDomainError("MISSING_HSN_CODE", "HSN code is required for GST-taxed products")
	}

	p.GSTRate = gstRate
	p.HSNCode = hsnCode
	p.UpdatedAt = time.Now()

	return nil
}

// SetLowStockThreshold sets the level below which the product is flagged
func (p *Product) SetLowStockThreshold(threshold decimal.Decimal) error {
	if threshold.IsNegative() {
		return shared.NewDomainError("INVALID_THRESHOLD", "Low stock threshold cannot be negative")
	}

	p.LowStockThreshold = threshold
	p.UpdatedAt = time.Now()

	return nil
}

// Disable removes the product from sale without deleting history
func (p *Product) Disable() {
	if p.Status == ProductStatusDisabled {
		return
	}
	p.Status = ProductStatusDisabled
	p.UpdatedAt = time.Now()
	p.AddDomainEvent(NewProductDisabledEvent(p))
}

// Enable puts the product back on sale
func (p *Product) Enable() {
	p.Status = ProductStatusActive
	p.UpdatedAt = time.Now()
}

// IsActive returns true if the product can be sold
func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive
}

// IsLowStock returns true if stock has fallen to or below the threshold
func (p *Product) IsLowStock() bool {
	if p.LowStockThreshold.IsZero() {
		return false
	}
	return p.StockQuantity.LessThanOrEqual(p.LowStockThreshold)
}

// CanFulfill reports whether current stock covers the requested quantity
func (p *Product) CanFulfill(quantity decimal.Decimal) bool {
	return p.StockQuantity.GreaterThanOrEqual(quantity)
}
