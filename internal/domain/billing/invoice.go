package billing

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/paintdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BillingMode determines how tax is applied to an invoice
type BillingMode string

const (
	BillingModeWithGST    BillingMode = "with_gst"
	BillingModeWithoutGST BillingMode = "without_gst"
	BillingModeCasual     BillingMode = "casual"
)

// IsValid checks if the mode is a valid BillingMode
func (m BillingMode) IsValid() bool {
	switch m {
	case BillingModeWithGST, BillingModeWithoutGST, BillingModeCasual:
		return true
	}
	return false
}

// String returns the string representation of BillingMode
func (m BillingMode) String() string {
	return string(m)
}

// InvoiceStatus represents the payment status of an invoice
type InvoiceStatus string

const (
	InvoiceStatusPending       InvoiceStatus = "pending"
	InvoiceStatusPaid          InvoiceStatus = "paid"
	InvoiceStatusPartiallyPaid InvoiceStatus = "partially_paid"
	InvoiceStatusOverdue       InvoiceStatus = "overdue"
)

// IsValid checks if the status is a valid InvoiceStatus
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusPending, InvoiceStatusPaid, InvoiceStatusPartiallyPaid, InvoiceStatusOverdue:
		return true
	}
	return false
}

// String returns the string representation of InvoiceStatus
func (s InvoiceStatus) String() string {
	return string(s)
}

// IsOutstanding returns true if the invoice still owes money in this status
func (s InvoiceStatus) IsOutstanding() bool {
	return s != InvoiceStatusPaid
}

// Invoice is the billing aggregate root. It owns its line items and derives
// every total from them; stored totals are never edited directly.
//
// Totals satisfy: Total = Subtotal - ReturnTotal - DiscountAmount + Tax.
type Invoice struct {
	shared.BaseAggregateRoot
	InvoiceNumber   string
	CustomerID      uuid.UUID
	CustomerName    string
	Mode            BillingMode
	Status          InvoiceStatus
	DiscountPercent decimal.Decimal
	Subtotal        decimal.Decimal
	ReturnTotal     decimal.Decimal
	DiscountAmount  decimal.Decimal
	Tax             decimal.Decimal
	Total           decimal.Decimal
	AmountPaid      decimal.Decimal
	AttachmentURL   string
	Remark          string
	Items           []LineItem     `gorm:"foreignKey:InvoiceID"`
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

// TableName returns the database table name
func (Invoice) TableName() string {
	return "invoices"
}

// NewInvoice creates a new invoice in pending status
func NewInvoice(invoiceNumber string, customerID uuid.UUID, customerName string, mode BillingMode) (*Invoice, error) {
	if invoiceNumber == "" {
		return nil, shared.NewDomainError("INVALID_INVOICE_NUMBER", "Invoice number cannot be empty")
	}
	if len(invoiceNumber) > 50 {
		return nil, shared.NewDomainError("INVALID_INVOICE_NUMBER", "Invoice number cannot exceed 50 characters")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if customerName == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}
	if !mode.IsValid() {
		return nil, shared.NewDomainError("INVALID_BILLING_MODE", fmt.Sprintf("Unknown billing mode: %s", mode))
	}

	inv := &Invoice{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		InvoiceNumber:     invoiceNumber,
		CustomerID:        customerID,
		CustomerName:      customerName,
		Mode:              mode,
		Status:            InvoiceStatusPending,
		DiscountPercent:   decimal.Zero,
		Subtotal:          decimal.Zero,
		ReturnTotal:       decimal.Zero,
		DiscountAmount:    decimal.Zero,
		Tax:               decimal.Zero,
		Total:             decimal.Zero,
		AmountPaid:        decimal.Zero,
		Items:             make([]LineItem, 0),
	}

	inv.AddDomainEvent(NewInvoiceCreatedEvent(inv))

	return inv, nil
}

// AddItem adds a sale line item to the invoice.
// The same product may appear on multiple rows (different colours/tints).
func (inv *Invoice) AddItem(snapshot ProductSnapshot, quantity decimal.Decimal, colour string) (*LineItem, error) {
	item, err := NewLineItem(inv.ID, snapshot, quantity, colour)
	if err != nil {
		return nil, err
	}

	inv.Items = append(inv.Items, *item)
	inv.recalculateTotals()
	inv.UpdatedAt = time.Now()

	return item, nil
}

// RemoveItem removes a sale line item from the invoice.
// Return rows are an audit trail and cannot be removed, nor can a sale row
// that already has returns recorded against it.
func (inv *Invoice) RemoveItem(itemID uuid.UUID) error {
	for idx, item := range inv.Items {
		if item.ID != itemID {
			continue
		}
		if item.IsReturned {
			return shared.NewDomainError("INVALID_STATE", "Return entries cannot be removed")
		}
		if inv.returnedQuantityFor(itemID).IsPositive() {
			return shared.NewDomainError("INVALID_STATE", "Cannot remove an item with recorded returns")
		}
		inv.Items = append(inv.Items[:idx], inv.Items[idx+1:]...)
		inv.recalculateTotals()
		inv.UpdatedAt = time.Now()
		return nil
	}

	return shared.NewDomainError("ITEM_NOT_FOUND", "Invoice item not found")
}

// UpdateItemQuantity updates the quantity of an existing sale item.
// The new quantity cannot drop below what has already been returned.
func (inv *Invoice) UpdateItemQuantity(itemID uuid.UUID, quantity decimal.Decimal) error {
	for idx := range inv.Items {
		if inv.Items[idx].ID != itemID {
			continue
		}
		returned := inv.returnedQuantityFor(itemID)
		if quantity.LessThan(returned) {
			return shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot drop below the returned quantity")
		}
		if err := inv.Items[idx].UpdateQuantity(quantity); err != nil {
			return err
		}
		inv.recalculateTotals()
		inv.UpdatedAt = time.Now()
		return nil
	}

	return shared.NewDomainError("ITEM_NOT_FOUND", "Invoice item not found")
}

// ApplyDiscountPercent applies an invoice-level percentage discount
func (inv *Invoice) ApplyDiscountPercent(percent decimal.Decimal) error {
	if percent.IsNegative() || percent.GreaterThan(hundred) {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount percent must be between 0 and 100")
	}

	inv.DiscountPercent = percent
	inv.recalculateTotals()
	inv.UpdatedAt = time.Now()

	return nil
}

// SetBillingMode changes the billing mode and re-derives tax
func (inv *Invoice) SetBillingMode(mode BillingMode) error {
	if !mode.IsValid() {
		return shared.NewDomainError("INVALID_BILLING_MODE", fmt.Sprintf("Unknown billing mode: %s", mode))
	}

	inv.Mode = mode
	inv.recalculateTotals()
	inv.UpdatedAt = time.Now()

	return nil
}

// SetStatus changes the payment status, keeping AmountPaid consistent:
// paid carries the full total, pending/overdue carry zero, and
// partially_paid carries the given partial amount. A partial amount equal
// to the total settles the invoice as paid instead.
func (inv *Invoice) SetStatus(status InvoiceStatus, partialAmount decimal.Decimal) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown invoice status: %s", status))
	}

	previous := inv.Status

	switch status {
	case InvoiceStatusPaid:
		inv.Status = InvoiceStatusPaid
		inv.AmountPaid = inv.Total
	case InvoiceStatusPending, InvoiceStatusOverdue:
		inv.Status = status
		inv.AmountPaid = decimal.Zero
	case InvoiceStatusPartiallyPaid:
		if !partialAmount.IsPositive() {
			return shared.NewDomainError("INVALID_PARTIAL_AMOUNT", "Partial amount must be positive")
		}
		if partialAmount.GreaterThan(inv.Total) {
			return shared.NewDomainError("INVALID_PARTIAL_AMOUNT", "Partial amount cannot exceed the invoice total")
		}
		if partialAmount.Equal(inv.Total) {
			inv.Status = InvoiceStatusPaid
			inv.AmountPaid = inv.Total
		} else {
			inv.Status = InvoiceStatusPartiallyPaid
			inv.AmountPaid = partialAmount
		}
	}

	inv.UpdatedAt = time.Now()

	if previous != inv.Status {
		inv.AddDomainEvent(NewInvoiceStatusChangedEvent(inv, previous))
	}

	return nil
}

// ProcessReturn records a customer return against a sale item. The sale row
// is left untouched; an offsetting return row is appended and totals are
// re-derived. The caller is responsible for the matching stock adjustment.
func (inv *Invoice) ProcessReturn(itemID uuid.UUID, quantity decimal.Decimal, reason string) (*LineItem, error) {
	item := inv.GetItem(itemID)
	if item == nil {
		return nil, shared.NewDomainError("ITEM_NOT_FOUND", "Invoice item not found")
	}
	if item.IsReturned {
		return nil, shared.NewDomainError("INVALID_RETURN_QUANTITY", "Cannot return against a return entry")
	}
	if !IsValidSaleQuantity(quantity) {
		return nil, shared.NewDomainError("INVALID_RETURN_QUANTITY", "Return quantity must be a positive multiple of 0.5")
	}

	remaining := item.Quantity.Sub(inv.returnedQuantityFor(itemID))
	if quantity.GreaterThan(remaining) {
		return nil, shared.NewDomainError("INVALID_RETURN_QUANTITY",
			fmt.Sprintf("Return quantity exceeds the remaining %s of the original sale", remaining))
	}

	returnItem := newReturnedLineItem(item, quantity, reason)
	inv.Items = append(inv.Items, *returnItem)
	inv.recalculateTotals()
	inv.UpdatedAt = time.Now()

	inv.AddDomainEvent(NewInvoiceItemsReturnedEvent(inv, returnItem))

	return returnItem, nil
}

// SetAttachment links an uploaded file to the invoice
func (inv *Invoice) SetAttachment(url string) {
	inv.AttachmentURL = url
	inv.UpdatedAt = time.Now()
}

// SetRemark sets the invoice remark
func (inv *Invoice) SetRemark(remark string) {
	inv.Remark = remark
	inv.UpdatedAt = time.Now()
}

// EnsureHasSaleItems verifies the invoice carries at least one sale row.
// New invoices cannot be issued empty or with only return rows.
func (inv *Invoice) EnsureHasSaleItems() error {
	for _, item := range inv.Items {
		if !item.IsReturned {
			return nil
		}
	}
	return shared.NewDomainError("NO_ITEMS", "Invoice requires at least one sale item")
}

// Outstanding returns the amount still owed on this invoice
func (inv *Invoice) Outstanding() decimal.Decimal {
	switch inv.Status {
	case InvoiceStatusPaid:
		return decimal.Zero
	case InvoiceStatusPartiallyPaid:
		return inv.Total.Sub(inv.AmountPaid)
	default:
		return inv.Total
	}
}

// GetItem returns an item by its ID
func (inv *Invoice) GetItem(itemID uuid.UUID) *LineItem {
	for idx := range inv.Items {
		if inv.Items[idx].ID == itemID {
			return &inv.Items[idx]
		}
	}
	return nil
}

// SaleItems returns the non-returned rows
func (inv *Invoice) SaleItems() []LineItem {
	items := make([]LineItem, 0, len(inv.Items))
	for _, item := range inv.Items {
		if !item.IsReturned {
			items = append(items, item)
		}
	}
	return items
}

// ReturnItems returns the return rows
func (inv *Invoice) ReturnItems() []LineItem {
	items := make([]LineItem, 0)
	for _, item := range inv.Items {
		if item.IsReturned {
			items = append(items, item)
		}
	}
	return items
}

// returnedQuantityFor sums the quantity already returned against a sale row
func (inv *Invoice) returnedQuantityFor(itemID uuid.UUID) decimal.Decimal {
	total := decimal.Zero
	for _, item := range inv.Items {
		if item.IsReturned && item.ReturnOfItemID != nil && *item.ReturnOfItemID == itemID {
			total = total.Add(item.Quantity)
		}
	}
	return total
}

// recalculateTotals re-derives every stored total from the line items.
// Running it twice with unchanged inputs yields identical values.
func (inv *Invoice) recalculateTotals() {
	subtotal := decimal.Zero
	returnTotal := decimal.Zero
	for _, item := range inv.Items {
		if item.IsReturned {
			returnTotal = returnTotal.Add(item.Total)
		} else {
			subtotal = subtotal.Add(item.Total)
		}
	}

	inv.Subtotal = subtotal
	inv.ReturnTotal = returnTotal
	inv.DiscountAmount = subtotal.Mul(inv.DiscountPercent).Div(hundred)

	// Tax applies per item at the item's own GST rate, on the discounted
	// taxable base. Return rows contribute negatively through SignedTotal.
	tax := decimal.Zero
	if inv.Mode == BillingModeWithGST {
		discountFactor := decimal.NewFromInt(1).Sub(inv.DiscountPercent.Div(hundred))
		for _, item := range inv.Items {
			taxableBase := item.SignedTotal().Mul(discountFactor)
			tax = tax.Add(taxableBase.Mul(item.GSTRate).Div(hundred))
		}
	}
	inv.Tax = tax

	inv.Total = subtotal.Sub(returnTotal).Sub(inv.DiscountAmount).Add(tax)

	// A paid invoice stays settled in full after edits; partial payments are
	// clamped so AmountPaid never exceeds the new total.
	if inv.Status == InvoiceStatusPaid {
		inv.AmountPaid = inv.Total
	} else if inv.Status == InvoiceStatusPartiallyPaid && inv.AmountPaid.GreaterThanOrEqual(inv.Total) {
		inv.Status = InvoiceStatusPaid
		inv.AmountPaid = inv.Total
	}
}
