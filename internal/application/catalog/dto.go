package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/paintdesk/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ==================== Product DTOs ====================

// CreateProductRequest represents a request to add a product to the catalog
type CreateProductRequest struct {
	Name              string                  `json:"name" binding:"required,max=200"`
	Brand             string                  `json:"brand" binding:"max=100"`
	Category          catalog.ProductCategory `json:"category" binding:"required"`
	Base              string                  `json:"base" binding:"max=100"`
	HSNCode           string                  `json:"hsn_code" binding:"max=20"`
	UnitPrice         decimal.Decimal         `json:"unit_price" binding:"required"`
	CostPrice         *decimal.Decimal        `json:"cost_price"`
	GSTRate           decimal.Decimal         `json:"gst_rate"`
	UnitValue         decimal.Decimal         `json:"unit_value" binding:"required"`
	UnitType          string                  `json:"unit_type" binding:"required,max=20"`
	LowStockThreshold *decimal.Decimal        `json:"low_stock_threshold"`
}

// UpdateProductRequest represents a request to update descriptive fields
type UpdateProductRequest struct {
	Name     string `json:"name" binding:"required,max=200"`
	Brand    string `json:"brand" binding:"max=100"`
	Base     string `json:"base" binding:"max=100"`
	ImageURL string `json:"image_url" binding:"max=500"`
}

// ChangePriceRequest represents a selling price change
type ChangePriceRequest struct {
	UnitPrice decimal.Decimal `json:"unit_price" binding:"required"`
}

// SetGSTRateRequest represents a GST rate change
type SetGSTRateRequest struct {
	GSTRate decimal.Decimal `json:"gst_rate"`
	HSNCode string          `json:"hsn_code" binding:"max=20"`
}

// SetLowStockThresholdRequest represents a low stock threshold change
type SetLowStockThresholdRequest struct {
	Threshold decimal.Decimal `json:"threshold"`
}

// ProductListFilter represents filter options for the product list
type ProductListFilter struct {
	Search   string                   `form:"search"`
	Category *catalog.ProductCategory `form:"category"`
	Brand    string                   `form:"brand"`
	Status   *catalog.ProductStatus   `form:"status"`
	LowStock bool                     `form:"low_stock"`
	Page     int                      `form:"page"`
	PageSize int                      `form:"page_size"`
	OrderBy  string                   `form:"order_by"`
	OrderDir string                   `form:"order_dir"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID                uuid.UUID               `json:"id"`
	Name              string                  `json:"name"`
	Brand             string                  `json:"brand"`
	Category          catalog.ProductCategory `json:"category"`
	Base              string                  `json:"base,omitempty"`
	HSNCode           string                  `json:"hsn_code,omitempty"`
	UnitPrice         decimal.Decimal         `json:"unit_price"`
	CostPrice         decimal.Decimal         `json:"cost_price"`
	StockQuantity     decimal.Decimal         `json:"stock_quantity"`
	LowStockThreshold decimal.Decimal         `json:"low_stock_threshold"`
	IsLowStock        bool                    `json:"is_low_stock"`
	GSTRate           decimal.Decimal         `json:"gst_rate"`
	Unit              string                  `json:"unit"`
	Status            catalog.ProductStatus   `json:"status"`
	ImageURL          string                  `json:"image_url,omitempty"`
	CreatedAt         time.Time               `json:"created_at"`
	UpdatedAt         time.Time               `json:"updated_at"`
}

// ToProductResponse converts a product aggregate to its response DTO
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:                p.ID,
		Name:              p.Name,
		Brand:             p.Brand,
		Category:          p.Category,
		Base:              p.Base,
		HSNCode:           p.HSNCode,
		UnitPrice:         p.UnitPrice,
		CostPrice:         p.CostPrice,
		StockQuantity:     p.StockQuantity,
		LowStockThreshold: p.LowStockThreshold,
		IsLowStock:        p.IsLowStock(),
		GSTRate:           p.GSTRate,
		Unit:              p.Unit(),
		Status:            p.Status,
		ImageURL:          p.ImageURL,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}
