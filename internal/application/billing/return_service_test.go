package billing

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/paintdesk/backend/internal/domain/billing"
	"github.com/paintdesk/backend/internal/domain/inventory"
	"github.com/paintdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReturnFixture(t *testing.T) (*billingFixture, *ReturnService) {
	t.Helper()
	f := newBillingFixture(t)
	txScope := NewNoOpTransactionScope(f.invoiceRepo, f.productRepo, f.movementRepo)
	returns := NewReturnService(f.invoiceRepo, txScope, nil)
	returns.SetEventPublisher(f.publisher)
	return f, returns
}

func TestReturnServiceProcessReturn(t *testing.T) {
	f, returns := newReturnFixture(t)
	f.product.UnitPrice = decimal.NewFromInt(100)
	created := f.createInvoice(t, 4)
	require.True(t, f.product.StockQuantity.Equal(decimal.NewFromInt(6)))

	resp, err := returns.ProcessReturn(context.Background(), created.ID, ProcessReturnRequest{
		ItemID:   created.Items[0].ID,
		Quantity: decimal.NewFromInt(1),
		Reason:   "wrong shade",
	})
	require.NoError(t, err)

	// 4 x 100 with one tin back: subtotal 400, return 100, tax on 300
	assert.True(t, resp.Subtotal.Equal(decimal.NewFromInt(400)))
	assert.True(t, resp.ReturnTotal.Equal(decimal.NewFromInt(100)))
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(354)))
	require.Len(t, resp.Items, 2)

	// the tin is back on the shelf with an audit row
	assert.True(t, f.product.StockQuantity.Equal(decimal.NewFromInt(7)))
	last := f.movementRepo.movements[len(f.movementRepo.movements)-1]
	assert.Equal(t, inventory.MovementReasonReturn, last.Reason)
	assert.True(t, last.Quantity.Equal(decimal.NewFromInt(1)))
	assert.Equal(t, "wrong shade", last.Note)

	assert.Contains(t, f.publisher.eventTypes(), billing.EventTypeInvoiceItemsReturned)
}

func TestReturnServiceRejectsOverReturn(t *testing.T) {
	f, returns := newReturnFixture(t)
	created := f.createInvoice(t, 2)

	_, err := returns.ProcessReturn(context.Background(), created.ID, ProcessReturnRequest{
		ItemID:   created.Items[0].ID,
		Quantity: decimal.NewFromInt(3),
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_RETURN_QUANTITY", domainErr.Code)
	assert.True(t, f.product.StockQuantity.Equal(decimal.NewFromInt(8)), "no stock change on rejection")
}

func TestReturnServiceUnknownItem(t *testing.T) {
	f, returns := newReturnFixture(t)
	created := f.createInvoice(t, 2)

	_, err := returns.ProcessReturn(context.Background(), created.ID, ProcessReturnRequest{
		ItemID:   uuid.New(),
		Quantity: decimal.NewFromInt(1),
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ITEM_NOT_FOUND", domainErr.Code)
}
