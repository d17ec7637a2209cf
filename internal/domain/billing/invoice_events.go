package billing

import (
	"github.com/google/uuid"
	"github.com/paintdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeInvoice = "Invoice"

// Event type constants
const (
	EventTypeInvoiceCreated       = "InvoiceCreated"
	EventTypeInvoiceStatusChanged = "InvoiceStatusChanged"
	EventTypeInvoiceItemsReturned = "InvoiceItemsReturned"
	EventTypeInvoiceDeleted       = "InvoiceDeleted"
)

// InvoiceCreatedEvent is raised when a new invoice is created
type InvoiceCreatedEvent struct {
	shared.BaseDomainEvent
	InvoiceID     uuid.UUID   `json:"invoice_id"`
	InvoiceNumber string      `json:"invoice_number"`
	CustomerID    uuid.UUID   `json:"customer_id"`
	CustomerName  string      `json:"customer_name"`
	Mode          BillingMode `json:"mode"`
}

// NewInvoiceCreatedEvent creates a new InvoiceCreatedEvent
func NewInvoiceCreatedEvent(inv *Invoice) *InvoiceCreatedEvent {
	return &InvoiceCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceCreated, AggregateTypeInvoice, inv.ID),
		InvoiceID:       inv.ID,
		InvoiceNumber:   inv.InvoiceNumber,
		CustomerID:      inv.CustomerID,
		CustomerName:    inv.CustomerName,
		Mode:            inv.Mode,
	}
}

// EventType returns the event type name
func (e *InvoiceCreatedEvent) EventType() string {
	return EventTypeInvoiceCreated
}

// InvoiceStatusChangedEvent is raised when the payment status changes
type InvoiceStatusChangedEvent struct {
	shared.BaseDomainEvent
	InvoiceID      uuid.UUID       `json:"invoice_id"`
	InvoiceNumber  string          `json:"invoice_number"`
	PreviousStatus InvoiceStatus   `json:"previous_status"`
	NewStatus      InvoiceStatus   `json:"new_status"`
	AmountPaid     decimal.Decimal `json:"amount_paid"`
	Total          decimal.Decimal `json:"total"`
}

// NewInvoiceStatusChangedEvent creates a new InvoiceStatusChangedEvent
func NewInvoiceStatusChangedEvent(inv *Invoice, previous InvoiceStatus) *InvoiceStatusChangedEvent {
	return &InvoiceStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceStatusChanged, AggregateTypeInvoice, inv.ID),
		InvoiceID:       inv.ID,
		InvoiceNumber:   inv.InvoiceNumber,
		PreviousStatus:  previous,
		NewStatus:       inv.Status,
		AmountPaid:      inv.AmountPaid,
		Total:           inv.Total,
	}
}

// EventType returns the event type name
func (e *InvoiceStatusChangedEvent) EventType() string {
	return EventTypeInvoiceStatusChanged
}

// InvoiceItemsReturnedEvent is raised when a return is recorded against an
// invoice. It drives the compensating stock increment in the inventory
// context.
type InvoiceItemsReturnedEvent struct {
	shared.BaseDomainEvent
	InvoiceID     uuid.UUID       `json:"invoice_id"`
	InvoiceNumber string          `json:"invoice_number"`
	ItemID        uuid.UUID       `json:"item_id"`
	ProductID     uuid.UUID       `json:"product_id"`
	ProductName   string          `json:"product_name"`
	Quantity      decimal.Decimal `json:"quantity"`
	Amount        decimal.Decimal `json:"amount"`
	Reason        string          `json:"reason"`
}

// NewInvoiceItemsReturnedEvent creates a new InvoiceItemsReturnedEvent
func NewInvoiceItemsReturnedEvent(inv *Invoice, returnItem *LineItem) *InvoiceItemsReturnedEvent {
	return &InvoiceItemsReturnedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceItemsReturned, AggregateTypeInvoice, inv.ID),
		InvoiceID:       inv.ID,
		InvoiceNumber:   inv.InvoiceNumber,
		ItemID:          returnItem.ID,
		ProductID:       returnItem.ProductID,
		ProductName:     returnItem.ProductName,
		Quantity:        returnItem.Quantity,
		Amount:          returnItem.Total,
		Reason:          returnItem.ReturnReason,
	}
}

// EventType returns the event type name
func (e *InvoiceItemsReturnedEvent) EventType() string {
	return EventTypeInvoiceItemsReturned
}

// InvoiceDeletedEvent is raised when an invoice is soft-deleted
type InvoiceDeletedEvent struct {
	shared.BaseDomainEvent
	InvoiceID     uuid.UUID `json:"invoice_id"`
	InvoiceNumber string    `json:"invoice_number"`
}

// NewInvoiceDeletedEvent creates a new InvoiceDeletedEvent
func NewInvoiceDeletedEvent(inv *Invoice) *InvoiceDeletedEvent {
	return &InvoiceDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceDeleted, AggregateTypeInvoice, inv.ID),
		InvoiceID:       inv.ID,
		InvoiceNumber:   inv.InvoiceNumber,
	}
}

// EventType returns the event type name
func (e *InvoiceDeletedEvent) EventType() string {
	return EventTypeInvoiceDeleted
}
