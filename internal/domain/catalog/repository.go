package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/paintdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ProductRepository defines persistence operations for products
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)
	// FindLowStock returns active products at or below their threshold
	FindLowStock(ctx context.Context) ([]Product, error)
	Save(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	// AdjustStock applies a stock delta as a single server-side UPDATE with
	// an arithmetic expression. Negative deltas that would take stock below
	// zero fail with ErrInsufficientStock and change nothing.
	AdjustStock(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error
}
