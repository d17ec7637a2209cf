package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/paintdesk/backend/internal/domain/shared"
)

// CustomerRepository defines persistence operations for customers
type CustomerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Customer, error)
	FindByPhone(ctx context.Context, phone string) (*Customer, error)
	Save(ctx context.Context, customer *Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// RegularCustomerRepository defines persistence operations for regular
// (wholesale) customers.
type RegularCustomerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*RegularCustomer, error)
	FindByCustomerID(ctx context.Context, customerID uuid.UUID) (*RegularCustomer, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]RegularCustomer, error)
	Save(ctx context.Context, regular *RegularCustomer) error
	Delete(ctx context.Context, id uuid.UUID) error
}
