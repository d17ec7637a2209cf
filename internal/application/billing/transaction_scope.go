package billing

import (
	"context"

	"github.com/paintdesk/backend/internal/domain/billing"
	"github.com/paintdesk/backend/internal/domain/catalog"
	"github.com/paintdesk/backend/internal/domain/inventory"
)

// TransactionScope provides transactional access to the repositories a
// billing mutation touches. Invoice changes, stock adjustments and the
// movement audit row commit or roll back together.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the billing-side
// repositories within a transaction. All repositories share the same
// underlying database transaction.
type TransactionalRepositories interface {
	InvoiceRepo() billing.InvoiceRepository
	ProductRepo() catalog.ProductRepository
	MovementRepo() inventory.StockMovementRepository
}

// NoOpTransactionScope runs the function against plain repositories
// without a real transaction. Useful in tests.
type NoOpTransactionScope struct {
	invoiceRepo  billing.InvoiceRepository
	productRepo  catalog.ProductRepository
	movementRepo inventory.StockMovementRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(
	invoiceRepo billing.InvoiceRepository,
	productRepo catalog.ProductRepository,
	movementRepo inventory.StockMovementRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		invoiceRepo:  invoiceRepo,
		productRepo:  productRepo,
		movementRepo: movementRepo,
	}
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// InvoiceRepo returns the invoice repository
func (s *NoOpTransactionScope) InvoiceRepo() billing.InvoiceRepository {
	return s.invoiceRepo
}

// ProductRepo returns the product repository
func (s *NoOpTransactionScope) ProductRepo() catalog.ProductRepository {
	return s.productRepo
}

// MovementRepo returns the stock movement repository
func (s *NoOpTransactionScope) MovementRepo() inventory.StockMovementRepository {
	return s.movementRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
