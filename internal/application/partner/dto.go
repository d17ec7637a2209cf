package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/paintdesk/backend/internal/domain/partner"
	"github.com/shopspring/decimal"
)

// ==================== Customer DTOs ====================

// CreateCustomerRequest represents a request to register a customer
type CreateCustomerRequest struct {
	Name    string `json:"name" binding:"required,max=200"`
	Phone   string `json:"phone" binding:"max=20"`
	Address string `json:"address" binding:"max=500"`
	GSTIN   string `json:"gstin" binding:"omitempty,gstin"`
}

// UpdateCustomerRequest represents a request to update customer details
type UpdateCustomerRequest struct {
	Name    string `json:"name" binding:"required,max=200"`
	Phone   string `json:"phone" binding:"max=20"`
	Address string `json:"address" binding:"max=500"`
	GSTIN   string `json:"gstin" binding:"omitempty,gstin"`
}

// CustomerListFilter represents filter options for the customer list
type CustomerListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	GSTIN     string    `json:"gstin,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToCustomerResponse converts a customer aggregate to its response DTO
func ToCustomerResponse(c *partner.Customer) CustomerResponse {
	return CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		Address:   c.Address,
		GSTIN:     c.GSTIN,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// ==================== Regular customer DTOs ====================

// PromoteCustomerRequest promotes an existing customer to a regular account
type PromoteCustomerRequest struct {
	CustomerID uuid.UUID `json:"customer_id" binding:"required"`
}

// SetRateRequest sets a negotiated per-product price
type SetRateRequest struct {
	ProductID       uuid.UUID       `json:"product_id" binding:"required"`
	NegotiatedPrice decimal.Decimal `json:"negotiated_price" binding:"required"`
}

// RegularCustomerRateResponse represents a negotiated rate in API responses
type RegularCustomerRateResponse struct {
	ProductID       uuid.UUID       `json:"product_id"`
	NegotiatedPrice decimal.Decimal `json:"negotiated_price"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// RegularCustomerResponse represents a regular customer in API responses
type RegularCustomerResponse struct {
	ID         uuid.UUID                     `json:"id"`
	CustomerID uuid.UUID                     `json:"customer_id"`
	Name       string                        `json:"name"`
	Phone      string                        `json:"phone,omitempty"`
	Rates      []RegularCustomerRateResponse `json:"rates"`
	InvoiceIDs []uuid.UUID                   `json:"invoice_ids"`
	CreatedAt  time.Time                     `json:"created_at"`
	UpdatedAt  time.Time                     `json:"updated_at"`
}

// ToRegularCustomerResponse converts a regular customer aggregate to its response DTO
func ToRegularCustomerResponse(rc *partner.RegularCustomer) RegularCustomerResponse {
	rates := make([]RegularCustomerRateResponse, len(rc.Rates))
	for i, rate := range rc.Rates {
		rates[i] = RegularCustomerRateResponse{
			ProductID:       rate.ProductID,
			NegotiatedPrice: rate.NegotiatedPrice,
			UpdatedAt:       rate.UpdatedAt,
		}
	}
	invoiceIDs := make([]uuid.UUID, len(rc.Invoices))
	for i, link := range rc.Invoices {
		invoiceIDs[i] = link.InvoiceID
	}

	return RegularCustomerResponse{
		ID:         rc.ID,
		CustomerID: rc.CustomerID,
		Name:       rc.Name,
		Phone:      rc.Phone,
		Rates:      rates,
		InvoiceIDs: invoiceIDs,
		CreatedAt:  rc.CreatedAt,
		UpdatedAt:  rc.UpdatedAt,
	}
}
