package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/paintdesk/backend/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// ==================== Inventory DTOs ====================

// ReceiveStockRequest records goods received from a supplier
type ReceiveStockRequest struct {
	ProductID    uuid.UUID       `json:"product_id" binding:"required"`
	SupplierName string          `json:"supplier_name" binding:"max=200"`
	Quantity     decimal.Decimal `json:"quantity" binding:"required"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	Note         string          `json:"note" binding:"max=500"`
}

// AdjustStockRequest applies a manual stock correction
type AdjustStockRequest struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Delta     decimal.Decimal `json:"delta" binding:"required"`
	Note      string          `json:"note" binding:"max=500"`
}

// MovementListFilter represents filter options for the movement list
type MovementListFilter struct {
	ProductID *uuid.UUID `form:"product_id"`
	Page      int        `form:"page"`
	PageSize  int        `form:"page_size"`
}

// StockReceiptResponse represents a stock receipt in API responses
type StockReceiptResponse struct {
	ID           uuid.UUID       `json:"id"`
	ProductID    uuid.UUID       `json:"product_id"`
	SupplierName string          `json:"supplier_name,omitempty"`
	Quantity     decimal.Decimal `json:"quantity"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	TotalCost    decimal.Decimal `json:"total_cost"`
	Note         string          `json:"note,omitempty"`
	ReceivedAt   time.Time       `json:"received_at"`
}

// StockMovementResponse represents a movement audit row in API responses
type StockMovementResponse struct {
	ID        uuid.UUID                `json:"id"`
	ProductID uuid.UUID                `json:"product_id"`
	Quantity  decimal.Decimal          `json:"quantity"`
	Reason    inventory.MovementReason `json:"reason"`
	Reference string                   `json:"reference,omitempty"`
	Note      string                   `json:"note,omitempty"`
	CreatedAt time.Time                `json:"created_at"`
}

// ToStockReceiptResponse converts a stock receipt to its response DTO
func ToStockReceiptResponse(r *inventory.StockReceipt) StockReceiptResponse {
	return StockReceiptResponse{
		ID:           r.ID,
		ProductID:    r.ProductID,
		SupplierName: r.SupplierName,
		Quantity:     r.Quantity,
		CostPrice:    r.CostPrice,
		TotalCost:    r.TotalCost(),
		Note:         r.Note,
		ReceivedAt:   r.ReceivedAt,
	}
}

// ToStockMovementResponse converts a movement to its response DTO
func ToStockMovementResponse(m *inventory.StockMovement) StockMovementResponse {
	return StockMovementResponse{
		ID:        m.ID,
		ProductID: m.ProductID,
		Quantity:  m.Quantity,
		Reason:    m.Reason,
		Reference: m.Reference,
		Note:      m.Note,
		CreatedAt: m.CreatedAt,
	}
}
