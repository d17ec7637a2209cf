package partner

import (
	"strings"
	"time"

	"github.com/paintdesk/backend/internal/domain/shared"
)

// Customer represents a walk-in or account customer of the shop
type Customer struct {
	shared.BaseAggregateRoot
	Name    string
	Phone   string
	Address string
	GSTIN   string // optional; 15 characters when present
}

// TableName returns the database table name
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a new customer
func NewCustomer(name, phone, address, gstin string) (*Customer, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}
	if gstin != "" && len(gstin) != 15 {
		return nil, shared.NewDomainError("INVALID_GSTIN", "GSTIN must be 15 characters")
	}

	customer := &Customer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Phone:             phone,
		Address:           address,
		GSTIN:             gstin,
	}

	customer.AddDomainEvent(NewCustomerCreatedEvent(customer))

	return customer, nil
}

// UpdateDetails updates the customer contact details
func (c *Customer) UpdateDetails(name, phone, address, gstin string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}
	if gstin != "" && len(gstin) != 15 {
		return shared.NewDomainError("INVALID_GSTIN", "GSTIN must be 15 characters")
	}

	c.Name = name
	c.Phone = phone
	c.Address = address
	c.GSTIN = gstin
	c.UpdatedAt = time.Now()

	return nil
}
