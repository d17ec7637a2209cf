package catalog

import (
	"github.com/google/uuid"
	"github.com/paintdesk/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeProduct = "Product"

// Event type constants
const (
	EventTypeProductCreated  = "ProductCreated"
	EventTypeProductDisabled = "ProductDisabled"
)

// ProductCreatedEvent is raised when a new product is created
type ProductCreatedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Brand     string          `json:"brand"`
	Category  ProductCategory `json:"category"`
}

// NewProductCreatedEvent creates a new ProductCreatedEvent
func NewProductCreatedEvent(p *Product) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductCreated, AggregateTypeProduct, p.ID),
		ProductID:       p.ID,
		Name:            p.Name,
		Brand:           p.Brand,
		Category:        p.Category,
	}
}

// EventType returns the event type name
func (e *ProductCreatedEvent) EventType() string {
	return EventTypeProductCreated
}

// ProductDisabledEvent is raised when a product is taken off sale
type ProductDisabledEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
}

// NewProductDisabledEvent creates a new ProductDisabledEvent
func NewProductDisabledEvent(p *Product) *ProductDisabledEvent {
	return &ProductDisabledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductDisabled, AggregateTypeProduct, p.ID),
		ProductID:       p.ID,
		Name:            p.Name,
	}
}

// EventType returns the event type name
func (e *ProductDisabledEvent) EventType() string {
	return EventTypeProductDisabled
}
