package partner

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/paintdesk/backend/internal/domain/billing"
	"github.com/paintdesk/backend/internal/domain/partner"
	"github.com/paintdesk/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func invoiceCreatedEvent(customerID, invoiceID uuid.UUID) *billing.InvoiceCreatedEvent {
	return &billing.InvoiceCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(
			billing.EventTypeInvoiceCreated, billing.AggregateTypeInvoice, invoiceID),
		InvoiceID:  invoiceID,
		CustomerID: customerID,
	}
}

func TestInvoiceLinkHandler(t *testing.T) {
	customerRepo := newStubCustomerRepo()
	regularRepo := newStubRegularRepo()
	service := NewRegularCustomerService(regularRepo, customerRepo)
	handler := NewInvoiceLinkHandler(service, nil)

	customer, err := partner.NewCustomer("Gupta Hardware", "9812345678", "", "")
	require.NoError(t, err)
	require.NoError(t, customerRepo.Save(context.Background(), customer))

	regular, err := service.Promote(context.Background(), PromoteCustomerRequest{
		CustomerID: customer.ID,
	})
	require.NoError(t, err)

	t.Run("links invoice for regular customer", func(t *testing.T) {
		invoiceID := uuid.New()
		err := handler.Handle(context.Background(), invoiceCreatedEvent(customer.ID, invoiceID))
		require.NoError(t, err)

		got, err := service.GetByID(context.Background(), regular.ID)
		require.NoError(t, err)
		assert.Contains(t, got.InvoiceIDs, invoiceID)
	})

	t.Run("linking twice is idempotent", func(t *testing.T) {
		invoiceID := uuid.New()
		evt := invoiceCreatedEvent(customer.ID, invoiceID)
		require.NoError(t, handler.Handle(context.Background(), evt))
		require.NoError(t, handler.Handle(context.Background(), evt))

		got, err := service.GetByID(context.Background(), regular.ID)
		require.NoError(t, err)

		count := 0
		for _, id := range got.InvoiceIDs {
			if id == invoiceID {
				count++
			}
		}
		assert.Equal(t, 1, count)
	})

	t.Run("non-regular customer is skipped", func(t *testing.T) {
		err := handler.Handle(context.Background(), invoiceCreatedEvent(uuid.New(), uuid.New()))
		assert.NoError(t, err)
	})

	t.Run("subscribes to invoice creation only", func(t *testing.T) {
		assert.Equal(t, []string{billing.EventTypeInvoiceCreated}, handler.EventTypes())
	})
}
