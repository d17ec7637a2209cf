package handler

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	billingapp "github.com/paintdesk/backend/internal/application/billing"
	"github.com/paintdesk/backend/internal/application/export"
)

// InvoiceHandler handles invoice API endpoints
type InvoiceHandler struct {
	BaseHandler
	invoiceService *billingapp.InvoiceService
	returnService  *billingapp.ReturnService
	printService   *export.InvoicePrintService
	exporter       *export.BillHistoryExporter
}

// NewInvoiceHandler creates a new InvoiceHandler. The print service is
// optional; printing endpoints return 503 when it is not configured.
func NewInvoiceHandler(
	invoiceService *billingapp.InvoiceService,
	returnService *billingapp.ReturnService,
	printService *export.InvoicePrintService,
	exporter *export.BillHistoryExporter,
) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
		returnService:  returnService,
		printService:   printService,
		exporter:       exporter,
	}
}

// ExportRequest bounds the CSV export window
type ExportRequest struct {
	From *time.Time `form:"from" time_format:"2006-01-02"`
	To   *time.Time `form:"to" time_format:"2006-01-02"`
}

// Create performs a checkout and creates an invoice
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req billingapp.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	invoice, err := h.invoiceService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, invoice)
}

// GetByID returns a single invoice
func (h *InvoiceHandler) GetByID(c *gin.Context) {
	invoiceID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	invoice, err := h.invoiceService.GetByID(c.Request.Context(), invoiceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, invoice)
}

// GetByNumber returns a single invoice by its invoice number
func (h *InvoiceHandler) GetByNumber(c *gin.Context) {
	number := c.Param("number")
	if number == "" {
		h.BadRequest(c, "Invoice number is required")
		return
	}

	invoice, err := h.invoiceService.GetByNumber(c.Request.Context(), number)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, invoice)
}

// List returns a paginated, filterable list of invoices
func (h *InvoiceHandler) List(c *gin.Context) {
	var filter billingapp.InvoiceListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.invoiceService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Page, result.PageSize, result.Total)
}

// AddItem adds a line item to an invoice
func (h *InvoiceHandler) AddItem(c *gin.Context) {
	invoiceID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req billingapp.AddInvoiceItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	invoice, err := h.invoiceService.AddItem(c.Request.Context(), invoiceID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, invoice)
}

// UpdateItemQuantity changes the quantity of a line item
func (h *InvoiceHandler) UpdateItemQuantity(c *gin.Context) {
	invoiceID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	itemID, ok := h.parseUUIDParam(c, "item_id")
	if !ok {
		return
	}

	var req billingapp.UpdateItemQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	invoice, err := h.invoiceService.UpdateItemQuantity(c.Request.Context(), invoiceID, itemID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, invoice)
}

// RemoveItem removes a line item from an invoice
func (h *InvoiceHandler) RemoveItem(c *gin.Context) {
	invoiceID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	itemID, ok := h.parseUUIDParam(c, "item_id")
	if !ok {
		return
	}

	invoice, err := h.invoiceService.RemoveItem(c.Request.Context(), invoiceID, itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, invoice)
}

// ApplyDiscount sets the invoice-level discount percentage
func (h *InvoiceHandler) ApplyDiscount(c *gin.Context) {
	invoiceID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req billingapp.ApplyDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	invoice, err := h.invoiceService.ApplyDiscount(c.Request.Context(), invoiceID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, invoice)
}

// SetBillingMode switches an invoice between GST and non-GST billing
func (h *InvoiceHandler) SetBillingMode(c *gin.Context) {
	invoiceID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req billingapp.SetBillingModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	invoice, err := h.invoiceService.SetBillingMode(c.Request.Context(), invoiceID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, invoice)
}

// SetStatus changes the payment status of an invoice
func (h *InvoiceHandler) SetStatus(c *gin.Context) {
	invoiceID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req billingapp.SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	invoice, err := h.invoiceService.SetStatus(c.Request.Context(), invoiceID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, invoice)
}

// Delete soft-deletes an invoice and restores stock for its sale items
func (h *InvoiceHandler) Delete(c *gin.Context) {
	invoiceID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.invoiceService.Delete(c.Request.Context(), invoiceID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Attach uploads a file attachment for an invoice
func (h *InvoiceHandler) Attach(c *gin.Context) {
	invoiceID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "A file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.BadRequest(c, "Could not read uploaded file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.BadRequest(c, "Could not read uploaded file")
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	invoice, err := h.invoiceService.AttachFile(
		c.Request.Context(), invoiceID, fileHeader.Filename, data, contentType)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, invoice)
}

// ProcessReturn records a customer return against an invoice item
func (h *InvoiceHandler) ProcessReturn(c *gin.Context) {
	invoiceID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req billingapp.ProcessReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	invoice, err := h.returnService.ProcessReturn(c.Request.Context(), invoiceID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, invoice)
}

// Print renders the invoice as a downloadable PDF
func (h *InvoiceHandler) Print(c *gin.Context) {
	if h.printService == nil {
		h.Error(c, http.StatusServiceUnavailable, "PRINTING_UNAVAILABLE", "PDF printing is not configured")
		return
	}

	invoiceID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	pdf, err := h.printService.PrintInvoice(c.Request.Context(), invoiceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="invoice-%s.pdf"`, invoiceID))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// Export downloads the bill history for a date window as CSV
func (h *InvoiceHandler) Export(c *gin.Context) {
	var req ExportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	to := time.Now()
	if req.To != nil {
		// make the end date inclusive
		to = req.To.AddDate(0, 0, 1)
	}
	from := to.AddDate(0, -1, 0)
	if req.From != nil {
		from = *req.From
	}
	if from.After(to) {
		h.BadRequest(c, "The from date must not be after the to date")
		return
	}

	data, err := h.exporter.ExportCSV(c.Request.Context(), from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	filename := fmt.Sprintf("bill-history-%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))
	c.Data(http.StatusOK, "text/csv", data)
}

func (h *BaseHandler) parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		h.BadRequest(c, fmt.Sprintf("Invalid %s: must be a UUID", name))
		return uuid.Nil, false
	}
	return id, true
}
