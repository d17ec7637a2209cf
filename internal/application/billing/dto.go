package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/paintdesk/backend/internal/domain/billing"
	"github.com/shopspring/decimal"
)

// ==================== Invoice DTOs ====================

// CreateInvoiceRequest represents a checkout request
type CreateInvoiceRequest struct {
	CustomerID uuid.UUID                `json:"customer_id" binding:"required"`
	Mode       billing.BillingMode      `json:"mode" binding:"required"`
	Items      []CreateInvoiceItemInput `json:"items" binding:"required,min=1"`
	Discount   *decimal.Decimal         `json:"discount_percent"`
	Remark     string                   `json:"remark"`
}

// CreateInvoiceItemInput represents one line of a checkout request.
// UnitPrice overrides the catalog price when set (negotiated rates).
type CreateInvoiceItemInput struct {
	ProductID uuid.UUID        `json:"product_id" binding:"required"`
	Quantity  decimal.Decimal  `json:"quantity" binding:"required"`
	Colour    string           `json:"colour"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
}

// AddInvoiceItemRequest represents a request to add an item to an invoice
type AddInvoiceItemRequest struct {
	ProductID uuid.UUID        `json:"product_id" binding:"required"`
	Quantity  decimal.Decimal  `json:"quantity" binding:"required"`
	Colour    string           `json:"colour"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
}

// UpdateItemQuantityRequest represents a quantity change on an invoice item
type UpdateItemQuantityRequest struct {
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
}

// ApplyDiscountRequest represents an invoice-level discount change
type ApplyDiscountRequest struct {
	DiscountPercent decimal.Decimal `json:"discount_percent"`
}

// SetBillingModeRequest represents a billing mode change
type SetBillingModeRequest struct {
	Mode billing.BillingMode `json:"mode" binding:"required"`
}

// SetStatusRequest represents a payment status change.
// PartialAmount is required when Status is partially_paid.
type SetStatusRequest struct {
	Status        billing.InvoiceStatus `json:"status" binding:"required"`
	PartialAmount decimal.Decimal       `json:"partial_amount"`
}

// ProcessReturnRequest represents a customer return against an invoice item
type ProcessReturnRequest struct {
	ItemID   uuid.UUID       `json:"item_id" binding:"required"`
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
	Reason   string          `json:"reason" binding:"max=500"`
}

// InvoiceListFilter represents filter options for the invoice list
type InvoiceListFilter struct {
	Search     string                 `form:"search"`
	CustomerID *uuid.UUID             `form:"customer_id"`
	Status     *billing.InvoiceStatus `form:"status"`
	Mode       *billing.BillingMode   `form:"mode"`
	StartDate  *time.Time             `form:"start_date" time_format:"2006-01-02"`
	EndDate    *time.Time             `form:"end_date" time_format:"2006-01-02"`
	Page       int                    `form:"page"`
	PageSize   int                    `form:"page_size"`
	OrderBy    string                 `form:"order_by"`
	OrderDir   string                 `form:"order_dir"`
}

// InvoiceItemResponse represents a line item in API responses
type InvoiceItemResponse struct {
	ID             uuid.UUID       `json:"id"`
	ProductID      uuid.UUID       `json:"product_id"`
	ProductName    string          `json:"product_name"`
	Brand          string          `json:"brand"`
	Base           string          `json:"base"`
	HSNCode        string          `json:"hsn_code"`
	Unit           string          `json:"unit"`
	GSTRate        decimal.Decimal `json:"gst_rate"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	Quantity       decimal.Decimal `json:"quantity"`
	Colour         string          `json:"colour,omitempty"`
	Total          decimal.Decimal `json:"total"`
	IsReturned     bool            `json:"is_returned"`
	ReturnReason   string          `json:"return_reason,omitempty"`
	ReturnOfItemID *uuid.UUID      `json:"return_of_item_id,omitempty"`
}

// InvoiceResponse represents an invoice in API responses
type InvoiceResponse struct {
	ID              uuid.UUID             `json:"id"`
	InvoiceNumber   string                `json:"invoice_number"`
	CustomerID      uuid.UUID             `json:"customer_id"`
	CustomerName    string                `json:"customer_name"`
	Mode            billing.BillingMode   `json:"mode"`
	Status          billing.InvoiceStatus `json:"status"`
	DiscountPercent decimal.Decimal       `json:"discount_percent"`
	Subtotal        decimal.Decimal       `json:"subtotal"`
	ReturnTotal     decimal.Decimal       `json:"return_total"`
	DiscountAmount  decimal.Decimal       `json:"discount_amount"`
	Tax             decimal.Decimal       `json:"tax"`
	Total           decimal.Decimal       `json:"total"`
	AmountPaid      decimal.Decimal       `json:"amount_paid"`
	Outstanding     decimal.Decimal       `json:"outstanding"`
	AttachmentURL   string                `json:"attachment_url,omitempty"`
	Remark          string                `json:"remark,omitempty"`
	Items           []InvoiceItemResponse `json:"items"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
}

// ToInvoiceItemResponse converts a line item to its response DTO
func ToInvoiceItemResponse(item *billing.LineItem) InvoiceItemResponse {
	return InvoiceItemResponse{
		ID:             item.ID,
		ProductID:      item.ProductID,
		ProductName:    item.ProductName,
		Brand:          item.Brand,
		Base:           item.Base,
		HSNCode:        item.HSNCode,
		Unit:           item.Unit,
		GSTRate:        item.GSTRate,
		UnitPrice:      item.UnitPrice,
		Quantity:       item.Quantity,
		Colour:         item.Colour,
		Total:          item.Total,
		IsReturned:     item.IsReturned,
		ReturnReason:   item.ReturnReason,
		ReturnOfItemID: item.ReturnOfItemID,
	}
}

// ToInvoiceResponse converts an invoice aggregate to its response DTO
func ToInvoiceResponse(inv *billing.Invoice) InvoiceResponse {
	items := make([]InvoiceItemResponse, len(inv.Items))
	for i := range inv.Items {
		items[i] = ToInvoiceItemResponse(&inv.Items[i])
	}

	return InvoiceResponse{
		ID:              inv.ID,
		InvoiceNumber:   inv.InvoiceNumber,
		CustomerID:      inv.CustomerID,
		CustomerName:    inv.CustomerName,
		Mode:            inv.Mode,
		Status:          inv.Status,
		DiscountPercent: inv.DiscountPercent,
		Subtotal:        inv.Subtotal,
		ReturnTotal:     inv.ReturnTotal,
		DiscountAmount:  inv.DiscountAmount,
		Tax:             inv.Tax,
		Total:           inv.Total,
		AmountPaid:      inv.AmountPaid,
		Outstanding:     inv.Outstanding(),
		AttachmentURL:   inv.AttachmentURL,
		Remark:          inv.Remark,
		Items:           items,
		CreatedAt:       inv.CreatedAt,
		UpdatedAt:       inv.UpdatedAt,
	}
}
