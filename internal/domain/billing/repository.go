package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/paintdesk/backend/internal/domain/shared"
)

// InvoiceRepository defines persistence operations for invoices.
// All queries exclude soft-deleted invoices unless stated otherwise.
type InvoiceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)
	FindByNumber(ctx context.Context, invoiceNumber string) (*Invoice, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Invoice, error)
	FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]Invoice, error)
	FindByDateRange(ctx context.Context, from, to time.Time) ([]Invoice, error)
	// FindOutstanding returns invoices that still owe money
	// (pending, partially paid or overdue).
	FindOutstanding(ctx context.Context) ([]Invoice, error)
	Save(ctx context.Context, invoice *Invoice) error
	// Delete soft-deletes the invoice, leaving a tombstone row
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	// GenerateInvoiceNumber produces the next number in the
	// INV-YYYY-NNNNN sequence.
	GenerateInvoiceNumber(ctx context.Context) (string, error)
}
