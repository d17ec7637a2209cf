package billing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/paintdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestInvoice(t *testing.T, mode BillingMode) *Invoice {
	t.Helper()
	inv, err := NewInvoice("INV-2026-00001", uuid.New(), "Sharma Hardware", mode)
	require.NoError(t, err)
	return inv
}

func snapshotWith(price int64, gstRate int64) ProductSnapshot {
	return ProductSnapshot{
		ProductID:   uuid.New(),
		ProductName: "Premium Emulsion",
		Brand:       "Asian Paints",
		Base:        "Deep Base 4L",
		HSNCode:     "3209",
		Unit:        "4 Litre",
		GSTRate:     decimal.NewFromInt(gstRate),
		UnitPrice:   decimal.NewFromInt(price),
	}
}

func TestNewInvoice(t *testing.T) {
	t.Run("creates pending invoice with zero totals", func(t *testing.T) {
		inv := createTestInvoice(t, BillingModeWithGST)

		assert.Equal(t, InvoiceStatusPending, inv.Status)
		assert.True(t, inv.Total.IsZero())
		assert.True(t, inv.AmountPaid.IsZero())
		assert.Len(t, inv.GetDomainEvents(), 1)
		assert.Equal(t, EventTypeInvoiceCreated, inv.GetDomainEvents()[0].EventType())
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		_, err := NewInvoice("", uuid.New(), "Sharma Hardware", BillingModeCasual)
		assert.Error(t, err)

		_, err = NewInvoice("INV-2026-00001", uuid.Nil, "Sharma Hardware", BillingModeCasual)
		assert.Error(t, err)

		_, err = NewInvoice("INV-2026-00001", uuid.New(), "Sharma Hardware", BillingMode("cash_only"))
		assert.Error(t, err)
	})
}

func TestInvoiceTotalsWithGST(t *testing.T) {
	// 2 tins at Rs 1500 with 18% GST: subtotal 3000, tax 540, total 3540
	inv := createTestInvoice(t, BillingModeWithGST)

	_, err := inv.AddItem(snapshotWith(1500, 18), decimal.NewFromInt(2), "")
	require.NoError(t, err)

	assert.True(t, inv.Subtotal.Equal(decimal.NewFromInt(3000)), "subtotal = %s", inv.Subtotal)
	assert.True(t, inv.Tax.Equal(decimal.NewFromInt(540)), "tax = %s", inv.Tax)
	assert.True(t, inv.Total.Equal(decimal.NewFromInt(3540)), "total = %s", inv.Total)
}

func TestInvoiceTotalsWithoutGST(t *testing.T) {
	for _, mode := range []BillingMode{BillingModeWithoutGST, BillingModeCasual} {
		t.Run(mode.String(), func(t *testing.T) {
			inv := createTestInvoice(t, mode)

			_, err := inv.AddItem(snapshotWith(1500, 18), decimal.NewFromInt(2), "")
			require.NoError(t, err)

			assert.True(t, inv.Tax.IsZero())
			assert.True(t, inv.Total.Equal(decimal.NewFromInt(3000)))
		})
	}
}

func TestInvoicePerItemGSTRates(t *testing.T) {
	inv := createTestInvoice(t, BillingModeWithGST)

	_, err := inv.AddItem(snapshotWith(1000, 18), decimal.NewFromInt(1), "")
	require.NoError(t, err)
	_, err = inv.AddItem(snapshotWith(500, 12), decimal.NewFromInt(2), "")
	require.NoError(t, err)

	// 1000*18% + 1000*12% = 180 + 120
	assert.True(t, inv.Tax.Equal(decimal.NewFromInt(300)), "tax = %s", inv.Tax)
	assert.True(t, inv.Total.Equal(decimal.NewFromInt(2300)))
}

func TestInvoiceDiscount(t *testing.T) {
	t.Run("discount reduces taxable base per item", func(t *testing.T) {
		inv := createTestInvoice(t, BillingModeWithGST)

		_, err := inv.AddItem(snapshotWith(1000, 18), decimal.NewFromInt(1), "")
		require.NoError(t, err)
		require.NoError(t, inv.ApplyDiscountPercent(decimal.NewFromInt(10)))

		// subtotal 1000, discount 100, tax on 900 = 162, total 1062
		assert.True(t, inv.DiscountAmount.Equal(decimal.NewFromInt(100)))
		assert.True(t, inv.Tax.Equal(decimal.NewFromInt(162)), "tax = %s", inv.Tax)
		assert.True(t, inv.Total.Equal(decimal.NewFromInt(1062)), "total = %s", inv.Total)
	})

	t.Run("rejects discount outside 0-100", func(t *testing.T) {
		inv := createTestInvoice(t, BillingModeCasual)
		assert.Error(t, inv.ApplyDiscountPercent(decimal.NewFromInt(-5)))
		assert.Error(t, inv.ApplyDiscountPercent(decimal.NewFromInt(101)))
	})
}

func TestInvoiceProcessReturn(t *testing.T) {
	t.Run("return reduces total additively", func(t *testing.T) {
		// 4 tins at Rs 100, return 1: total drops from 400 to 300
		inv := createTestInvoice(t, BillingModeCasual)
		item, err := inv.AddItem(snapshotWith(100, 0), decimal.NewFromInt(4), "")
		require.NoError(t, err)
		require.True(t, inv.Total.Equal(decimal.NewFromInt(400)))

		returnItem, err := inv.ProcessReturn(item.ID, decimal.NewFromInt(1), "wrong shade")
		require.NoError(t, err)

		assert.True(t, inv.Total.Equal(decimal.NewFromInt(300)), "total = %s", inv.Total)
		assert.True(t, inv.ReturnTotal.Equal(decimal.NewFromInt(100)))
		assert.True(t, inv.Subtotal.Equal(decimal.NewFromInt(400)), "original sale rows stay untouched")
		assert.Len(t, inv.Items, 2)
		assert.True(t, returnItem.IsReturned)
		assert.True(t, returnItem.Total.IsPositive(), "return rows store positive magnitude")
	})

	t.Run("return cannot exceed remaining sold quantity", func(t *testing.T) {
		inv := createTestInvoice(t, BillingModeCasual)
		item, err := inv.AddItem(snapshotWith(100, 0), decimal.NewFromInt(4), "")
		require.NoError(t, err)

		_, err = inv.ProcessReturn(item.ID, decimal.NewFromInt(3), "first return")
		require.NoError(t, err)

		_, err = inv.ProcessReturn(item.ID, decimal.NewFromInt(2), "too much")
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_RETURN_QUANTITY", domainErr.Code)

		// the last tin can still go back
		_, err = inv.ProcessReturn(item.ID, decimal.NewFromInt(1), "final return")
		assert.NoError(t, err)
	})

	t.Run("rejects non-positive and off-step return quantity", func(t *testing.T) {
		inv := createTestInvoice(t, BillingModeCasual)
		item, err := inv.AddItem(snapshotWith(100, 0), decimal.NewFromInt(4), "")
		require.NoError(t, err)

		for _, q := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-1), decimal.NewFromFloat(0.3)} {
			_, err := inv.ProcessReturn(item.ID, q, "bad quantity")
			assert.Error(t, err)
		}
	})

	t.Run("cannot return against a return entry", func(t *testing.T) {
		inv := createTestInvoice(t, BillingModeCasual)
		item, err := inv.AddItem(snapshotWith(100, 0), decimal.NewFromInt(4), "")
		require.NoError(t, err)

		returnItem, err := inv.ProcessReturn(item.ID, decimal.NewFromInt(1), "wrong shade")
		require.NoError(t, err)

		_, err = inv.ProcessReturn(returnItem.ID, decimal.NewFromInt(1), "again")
		assert.Error(t, err)
	})

	t.Run("emits items returned event", func(t *testing.T) {
		inv := createTestInvoice(t, BillingModeCasual)
		item, err := inv.AddItem(snapshotWith(100, 0), decimal.NewFromInt(4), "")
		require.NoError(t, err)
		inv.ClearDomainEvents()

		_, err = inv.ProcessReturn(item.ID, decimal.NewFromInt(1), "wrong shade")
		require.NoError(t, err)

		events := inv.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeInvoiceItemsReturned, events[0].EventType())
	})
}

func TestInvoiceSetStatus(t *testing.T) {
	newPaidableInvoice := func(t *testing.T) *Invoice {
		inv := createTestInvoice(t, BillingModeCasual)
		_, err := inv.AddItem(snapshotWith(1000, 0), decimal.NewFromInt(1), "")
		require.NoError(t, err)
		return inv
	}

	t.Run("paid settles full amount", func(t *testing.T) {
		inv := newPaidableInvoice(t)
		require.NoError(t, inv.SetStatus(InvoiceStatusPaid, decimal.Zero))
		assert.True(t, inv.AmountPaid.Equal(inv.Total))
	})

	t.Run("pending and overdue clear amount paid", func(t *testing.T) {
		inv := newPaidableInvoice(t)
		require.NoError(t, inv.SetStatus(InvoiceStatusPartiallyPaid, decimal.NewFromInt(400)))

		require.NoError(t, inv.SetStatus(InvoiceStatusPending, decimal.Zero))
		assert.True(t, inv.AmountPaid.IsZero())

		require.NoError(t, inv.SetStatus(InvoiceStatusOverdue, decimal.Zero))
		assert.True(t, inv.AmountPaid.IsZero())
	})

	t.Run("partial payment keeps amount between zero and total", func(t *testing.T) {
		inv := newPaidableInvoice(t)
		require.NoError(t, inv.SetStatus(InvoiceStatusPartiallyPaid, decimal.NewFromInt(400)))

		assert.Equal(t, InvoiceStatusPartiallyPaid, inv.Status)
		assert.True(t, inv.AmountPaid.Equal(decimal.NewFromInt(400)))
	})

	t.Run("partial amount equal to total settles as paid", func(t *testing.T) {
		inv := newPaidableInvoice(t)
		require.NoError(t, inv.SetStatus(InvoiceStatusPartiallyPaid, decimal.NewFromInt(1000)))

		assert.Equal(t, InvoiceStatusPaid, inv.Status)
		assert.True(t, inv.AmountPaid.Equal(decimal.NewFromInt(1000)))
	})

	t.Run("partial then paid carries full total", func(t *testing.T) {
		inv := newPaidableInvoice(t)
		require.NoError(t, inv.SetStatus(InvoiceStatusPartiallyPaid, decimal.NewFromInt(400)))
		require.NoError(t, inv.SetStatus(InvoiceStatusPaid, decimal.Zero))

		assert.True(t, inv.AmountPaid.Equal(decimal.NewFromInt(1000)))
	})

	t.Run("rejects invalid partial amounts", func(t *testing.T) {
		inv := newPaidableInvoice(t)

		for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-50), decimal.NewFromInt(1500)} {
			err := inv.SetStatus(InvoiceStatusPartiallyPaid, amount)
			require.Error(t, err)
			var domainErr *shared.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, "INVALID_PARTIAL_AMOUNT", domainErr.Code)
		}
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		inv := newPaidableInvoice(t)
		assert.Error(t, inv.SetStatus(InvoiceStatus("written_off"), decimal.Zero))
	})
}

func TestInvoiceRecalculationIsIdempotent(t *testing.T) {
	inv := createTestInvoice(t, BillingModeWithGST)

	item, err := inv.AddItem(snapshotWith(1500, 18), decimal.NewFromFloat(2.5), "Ocean Blue")
	require.NoError(t, err)
	_, err = inv.AddItem(snapshotWith(250, 12), decimal.NewFromInt(3), "")
	require.NoError(t, err)
	require.NoError(t, inv.ApplyDiscountPercent(decimal.NewFromInt(5)))
	_, err = inv.ProcessReturn(item.ID, decimal.NewFromFloat(0.5), "excess")
	require.NoError(t, err)

	subtotal, returnTotal := inv.Subtotal, inv.ReturnTotal
	discount, tax, total := inv.DiscountAmount, inv.Tax, inv.Total

	inv.recalculateTotals()

	assert.True(t, inv.Subtotal.Equal(subtotal))
	assert.True(t, inv.ReturnTotal.Equal(returnTotal))
	assert.True(t, inv.DiscountAmount.Equal(discount))
	assert.True(t, inv.Tax.Equal(tax))
	assert.True(t, inv.Total.Equal(total))
}

func TestInvoiceItemEditing(t *testing.T) {
	t.Run("update quantity re-derives totals", func(t *testing.T) {
		inv := createTestInvoice(t, BillingModeCasual)
		item, err := inv.AddItem(snapshotWith(100, 0), decimal.NewFromInt(2), "")
		require.NoError(t, err)

		require.NoError(t, inv.UpdateItemQuantity(item.ID, decimal.NewFromInt(5)))
		assert.True(t, inv.Total.Equal(decimal.NewFromInt(500)))
	})

	t.Run("quantity cannot drop below returned quantity", func(t *testing.T) {
		inv := createTestInvoice(t, BillingModeCasual)
		item, err := inv.AddItem(snapshotWith(100, 0), decimal.NewFromInt(4), "")
		require.NoError(t, err)
		_, err = inv.ProcessReturn(item.ID, decimal.NewFromInt(2), "excess")
		require.NoError(t, err)

		assert.Error(t, inv.UpdateItemQuantity(item.ID, decimal.NewFromInt(1)))
		assert.NoError(t, inv.UpdateItemQuantity(item.ID, decimal.NewFromInt(2)))
	})

	t.Run("cannot remove sale row with recorded returns", func(t *testing.T) {
		inv := createTestInvoice(t, BillingModeCasual)
		item, err := inv.AddItem(snapshotWith(100, 0), decimal.NewFromInt(4), "")
		require.NoError(t, err)
		returnItem, err := inv.ProcessReturn(item.ID, decimal.NewFromInt(1), "excess")
		require.NoError(t, err)

		assert.Error(t, inv.RemoveItem(item.ID))
		assert.Error(t, inv.RemoveItem(returnItem.ID))
	})

	t.Run("remove item re-derives totals", func(t *testing.T) {
		inv := createTestInvoice(t, BillingModeCasual)
		first, err := inv.AddItem(snapshotWith(100, 0), decimal.NewFromInt(1), "")
		require.NoError(t, err)
		_, err = inv.AddItem(snapshotWith(200, 0), decimal.NewFromInt(1), "")
		require.NoError(t, err)

		require.NoError(t, inv.RemoveItem(first.ID))
		assert.True(t, inv.Total.Equal(decimal.NewFromInt(200)))
	})
}

func TestInvoiceOutstanding(t *testing.T) {
	inv := createTestInvoice(t, BillingModeCasual)
	_, err := inv.AddItem(snapshotWith(1000, 0), decimal.NewFromInt(1), "")
	require.NoError(t, err)

	assert.True(t, inv.Outstanding().Equal(decimal.NewFromInt(1000)), "pending owes full total")

	require.NoError(t, inv.SetStatus(InvoiceStatusPartiallyPaid, decimal.NewFromInt(300)))
	assert.True(t, inv.Outstanding().Equal(decimal.NewFromInt(700)))

	require.NoError(t, inv.SetStatus(InvoiceStatusPaid, decimal.Zero))
	assert.True(t, inv.Outstanding().IsZero())
}

func TestInvoiceEnsureHasSaleItems(t *testing.T) {
	inv := createTestInvoice(t, BillingModeCasual)
	assert.Error(t, inv.EnsureHasSaleItems())

	_, err := inv.AddItem(snapshotWith(100, 0), decimal.NewFromInt(1), "")
	require.NoError(t, err)
	assert.NoError(t, inv.EnsureHasSaleItems())
}

func TestInvoicePaidStaysSettledAfterEdit(t *testing.T) {
	inv := createTestInvoice(t, BillingModeCasual)
	item, err := inv.AddItem(snapshotWith(100, 0), decimal.NewFromInt(4), "")
	require.NoError(t, err)
	require.NoError(t, inv.SetStatus(InvoiceStatusPaid, decimal.Zero))

	_, err = inv.ProcessReturn(item.ID, decimal.NewFromInt(1), "excess")
	require.NoError(t, err)

	assert.Equal(t, InvoiceStatusPaid, inv.Status)
	assert.True(t, inv.AmountPaid.Equal(inv.Total), "settled invoices track the re-derived total")
}
