package handler

import (
	"github.com/gin-gonic/gin"
	partnerapp "github.com/paintdesk/backend/internal/application/partner"
)

// RegularCustomerHandler handles regular customer account endpoints
type RegularCustomerHandler struct {
	BaseHandler
	regularService *partnerapp.RegularCustomerService
}

// NewRegularCustomerHandler creates a new RegularCustomerHandler
func NewRegularCustomerHandler(regularService *partnerapp.RegularCustomerService) *RegularCustomerHandler {
	return &RegularCustomerHandler{regularService: regularService}
}

// Promote promotes an existing customer to a regular account
func (h *RegularCustomerHandler) Promote(c *gin.Context) {
	var req partnerapp.PromoteCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	regular, err := h.regularService.Promote(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, regular)
}

// GetByID returns a regular customer account
func (h *RegularCustomerHandler) GetByID(c *gin.Context) {
	regularID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	regular, err := h.regularService.GetByID(c.Request.Context(), regularID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, regular)
}

// GetByCustomerID returns the regular account backing a customer
func (h *RegularCustomerHandler) GetByCustomerID(c *gin.Context) {
	customerID, ok := h.parseUUIDParam(c, "customer_id")
	if !ok {
		return
	}

	regular, err := h.regularService.GetByCustomerID(c.Request.Context(), customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, regular)
}

// List returns all regular customer accounts
func (h *RegularCustomerHandler) List(c *gin.Context) {
	regulars, err := h.regularService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, regulars)
}

// SetRate sets or updates a negotiated per-product price
func (h *RegularCustomerHandler) SetRate(c *gin.Context) {
	regularID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req partnerapp.SetRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	regular, err := h.regularService.SetRate(c.Request.Context(), regularID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, regular)
}

// GetRate returns the negotiated price for a customer/product pair, when
// one exists. The checkout screen uses this to pre-fill the unit price.
func (h *RegularCustomerHandler) GetRate(c *gin.Context) {
	customerID, ok := h.parseUUIDParam(c, "customer_id")
	if !ok {
		return
	}
	productID, ok := h.parseUUIDParam(c, "product_id")
	if !ok {
		return
	}

	price, err := h.regularService.RateFor(c.Request.Context(), customerID, productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"negotiated_price": price})
}

// RemoveRate removes a negotiated per-product price
func (h *RegularCustomerHandler) RemoveRate(c *gin.Context) {
	regularID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	productID, ok := h.parseUUIDParam(c, "product_id")
	if !ok {
		return
	}

	regular, err := h.regularService.RemoveRate(c.Request.Context(), regularID, productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, regular)
}
