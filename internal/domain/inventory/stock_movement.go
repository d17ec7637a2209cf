package inventory

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/paintdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// MovementReason classifies why stock changed
type MovementReason string

const (
	MovementReasonSale       MovementReason = "sale"
	MovementReasonReturn     MovementReason = "return"
	MovementReasonReceipt    MovementReason = "receipt"
	MovementReasonAdjustment MovementReason = "adjustment"
)

// IsValid checks if the reason is a valid MovementReason
func (r MovementReason) IsValid() bool {
	switch r {
	case MovementReasonSale, MovementReasonReturn, MovementReasonReceipt, MovementReasonAdjustment:
		return true
	}
	return false
}

// String returns the string representation of MovementReason
func (r MovementReason) String() string {
	return string(r)
}

// StockMovement is an append-only audit record of a stock delta.
// Quantity carries the sign: negative for outbound (sales), positive for
// inbound (returns, receipts).
type StockMovement struct {
	ID        uuid.UUID
	ProductID uuid.UUID `gorm:"type:uuid;index"`
	Quantity  decimal.Decimal
	Reason    MovementReason
	Reference string // e.g. invoice number or receipt ID
	Note      string
	CreatedAt time.Time
}

// TableName returns the database table name
func (StockMovement) TableName() string {
	return "inventory_movements"
}

// NewStockMovement creates a new stock movement record
func NewStockMovement(productID uuid.UUID, quantity decimal.Decimal, reason MovementReason, reference, note string) (*StockMovement, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity.IsZero() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Movement quantity cannot be zero")
	}
	if !reason.IsValid() {
		return nil, shared.NewDomainError("INVALID_REASON", fmt.Sprintf("Unknown movement reason: %s", reason))
	}

	return &StockMovement{
		ID:        uuid.New(),
		ProductID: productID,
		Quantity:  quantity,
		Reason:    reason,
		Reference: reference,
		Note:      note,
		CreatedAt: time.Now(),
	}, nil
}

// IsInbound returns true if the movement increases stock
func (m *StockMovement) IsInbound() bool {
	return m.Quantity.IsPositive()
}
