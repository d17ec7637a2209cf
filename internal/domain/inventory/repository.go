package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/paintdesk/backend/internal/domain/shared"
)

// StockMovementRepository defines persistence for the append-only
// movement audit trail.
type StockMovementRepository interface {
	Save(ctx context.Context, movement *StockMovement) error
	FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]StockMovement, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]StockMovement, error)
}

// StockReceiptRepository defines persistence operations for stock receipts
type StockReceiptRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*StockReceipt, error)
	FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]StockReceipt, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]StockReceipt, error)
	Save(ctx context.Context, receipt *StockReceipt) error
}
