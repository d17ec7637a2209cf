package dto

import "net/http"

// Error codes returned by the API. Domain errors carry these codes
// directly; the table below decides the HTTP status for each.
const (
	// Generic
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeAlreadyExists = "ALREADY_EXISTS"
	ErrCodeInvalidInput  = "INVALID_INPUT"
	ErrCodeUnauthorized  = "UNAUTHORIZED"
	ErrCodeInvalidState  = "INVALID_STATE"
	ErrCodeInternal      = "INTERNAL_ERROR"

	// Billing
	ErrCodeInvalidInvoice        = "INVALID_INVOICE"
	ErrCodeInvalidInvoiceNumber  = "INVALID_INVOICE_NUMBER"
	ErrCodeInvalidCustomer       = "INVALID_CUSTOMER"
	ErrCodeInvalidBillingMode    = "INVALID_BILLING_MODE"
	ErrCodeInvalidStatus         = "INVALID_STATUS"
	ErrCodeInvalidDiscount       = "INVALID_DISCOUNT"
	ErrCodeInvalidQuantity       = "INVALID_QUANTITY"
	ErrCodeInvalidPartialAmount  = "INVALID_PARTIAL_AMOUNT"
	ErrCodeInvalidReturnQuantity = "INVALID_RETURN_QUANTITY"
	ErrCodeItemNotFound          = "ITEM_NOT_FOUND"
	ErrCodeNoItems               = "NO_ITEMS"
	ErrCodeMissingHSNCode        = "MISSING_HSN_CODE"

	// Catalog
	ErrCodeInvalidProduct     = "INVALID_PRODUCT"
	ErrCodeInvalidProductName = "INVALID_PRODUCT_NAME"
	ErrCodeInvalidCategory    = "INVALID_CATEGORY"
	ErrCodeInvalidPrice       = "INVALID_PRICE"
	ErrCodeInvalidGSTRate     = "INVALID_GST_RATE"
	ErrCodeInvalidThreshold   = "INVALID_THRESHOLD"
	ErrCodeInvalidUnit        = "INVALID_UNIT"
	ErrCodeProductDisabled    = "PRODUCT_DISABLED"

	// Partner
	ErrCodeInvalidCustomerName = "INVALID_CUSTOMER_NAME"
	ErrCodeInvalidGSTIN        = "INVALID_GSTIN"
	ErrCodeDuplicatePhone      = "DUPLICATE_PHONE"
	ErrCodeAlreadyRegular      = "ALREADY_REGULAR"
	ErrCodeRateNotFound        = "RATE_NOT_FOUND"

	// Inventory
	ErrCodeInsufficientStock = "INSUFFICIENT_STOCK"
	ErrCodeInvalidReason     = "INVALID_REASON"

	// Infrastructure
	ErrCodeStorageUnavailable = "STORAGE_UNAVAILABLE"
	ErrCodeRequestTooLarge    = "REQUEST_TOO_LARGE"
)

// errorCodeHTTPStatus maps error codes to HTTP status codes
var errorCodeHTTPStatus = map[string]int{
	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeAlreadyExists: http.StatusConflict,
	ErrCodeInvalidInput:  http.StatusBadRequest,
	ErrCodeUnauthorized:  http.StatusUnauthorized,
	ErrCodeInvalidState:  http.StatusConflict,
	ErrCodeInternal:      http.StatusInternalServerError,

	ErrCodeInvalidInvoice:        http.StatusBadRequest,
	ErrCodeInvalidInvoiceNumber:  http.StatusBadRequest,
	ErrCodeInvalidCustomer:       http.StatusBadRequest,
	ErrCodeInvalidBillingMode:    http.StatusBadRequest,
	ErrCodeInvalidStatus:         http.StatusBadRequest,
	ErrCodeInvalidDiscount:       http.StatusBadRequest,
	ErrCodeInvalidQuantity:       http.StatusBadRequest,
	ErrCodeInvalidPartialAmount:  http.StatusBadRequest,
	ErrCodeInvalidReturnQuantity: http.StatusUnprocessableEntity,
	ErrCodeItemNotFound:          http.StatusNotFound,
	ErrCodeNoItems:               http.StatusBadRequest,
	ErrCodeMissingHSNCode:        http.StatusUnprocessableEntity,

	ErrCodeInvalidProduct:     http.StatusBadRequest,
	ErrCodeInvalidProductName: http.StatusBadRequest,
	ErrCodeInvalidCategory:    http.StatusBadRequest,
	ErrCodeInvalidPrice:       http.StatusBadRequest,
	ErrCodeInvalidGSTRate:     http.StatusBadRequest,
	ErrCodeInvalidThreshold:   http.StatusBadRequest,
	ErrCodeInvalidUnit:        http.StatusBadRequest,
	ErrCodeProductDisabled:    http.StatusConflict,

	ErrCodeInvalidCustomerName: http.StatusBadRequest,
	ErrCodeInvalidGSTIN:        http.StatusBadRequest,
	ErrCodeDuplicatePhone:      http.StatusConflict,
	ErrCodeAlreadyRegular:      http.StatusConflict,
	ErrCodeRateNotFound:        http.StatusNotFound,

	ErrCodeInsufficientStock: http.StatusUnprocessableEntity,
	ErrCodeInvalidReason:     http.StatusBadRequest,

	ErrCodeStorageUnavailable: http.StatusServiceUnavailable,
	ErrCodeRequestTooLarge:    http.StatusRequestEntityTooLarge,
}

// GetHTTPStatus returns the HTTP status for an error code,
// defaulting to 500 for unknown codes.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
