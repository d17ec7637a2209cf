package persistence

import (
	"strings"
)

// ValidateSortOrder normalizes the sort direction to ASC or DESC.
// Returns "ASC" if the input is empty or invalid.
func ValidateSortOrder(orderDir string) string {
	if strings.EqualFold(strings.TrimSpace(orderDir), "desc") {
		return "DESC"
	}
	return "ASC"
}

// ValidateSortField validates a requested sort field against a whitelist of
// column names. Anything not in the whitelist falls back to defaultField;
// the result is safe to interpolate into an ORDER BY clause.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// InvoiceSortFields contains allowed sort fields for invoices
var InvoiceSortFields = map[string]bool{
	"id":              true,
	"created_at":      true,
	"updated_at":      true,
	"invoice_number":  true,
	"customer_name":   true,
	"status":          true,
	"mode":            true,
	"subtotal":        true,
	"discount_amount": true,
	"total":           true,
	"amount_paid":     true,
}

// CustomerSortFields contains allowed sort fields for customers
var CustomerSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"phone":      true,
}

// ProductSortFields contains allowed sort fields for products
var ProductSortFields = map[string]bool{
	"id":                  true,
	"created_at":          true,
	"updated_at":          true,
	"name":                true,
	"brand":               true,
	"category":            true,
	"base":                true,
	"unit_price":          true,
	"cost_price":          true,
	"stock_quantity":      true,
	"low_stock_threshold": true,
	"gst_rate":            true,
	"status":              true,
}

// RegularCustomerSortFields contains allowed sort fields for regular customers
var RegularCustomerSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"phone":      true,
}

// StockMovementSortFields contains allowed sort fields for stock movements
var StockMovementSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"product_id": true,
	"quantity":   true,
	"reason":     true,
	"reference":  true,
}

// StockReceiptSortFields contains allowed sort fields for stock receipts
var StockReceiptSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"product_id":    true,
	"supplier_name": true,
	"quantity":      true,
	"cost_price":    true,
	"received_at":   true,
}
