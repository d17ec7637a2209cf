package partner

import (
	"context"

	"github.com/paintdesk/backend/internal/domain/billing"
	"github.com/paintdesk/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// InvoiceLinkHandler listens for created invoices and records them on the
// customer's regular account, when one exists. Customers without a regular
// account are the common case and are skipped silently.
type InvoiceLinkHandler struct {
	regularService *RegularCustomerService
	logger         *zap.Logger
}

// NewInvoiceLinkHandler creates a new InvoiceLinkHandler
func NewInvoiceLinkHandler(regularService *RegularCustomerService, logger *zap.Logger) *InvoiceLinkHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InvoiceLinkHandler{
		regularService: regularService,
		logger:         logger,
	}
}

// EventTypes implements shared.EventHandler
func (h *InvoiceLinkHandler) EventTypes() []string {
	return []string{billing.EventTypeInvoiceCreated}
}

// Handle implements shared.EventHandler
func (h *InvoiceLinkHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	created, ok := event.(*billing.InvoiceCreatedEvent)
	if !ok {
		return nil
	}

	err := h.regularService.LinkInvoice(ctx, created.CustomerID, created.InvoiceID)
	if err != nil {
		h.logger.Warn("failed to link invoice to regular account",
			zap.String("invoice_id", created.InvoiceID.String()),
			zap.String("customer_id", created.CustomerID.String()),
			zap.Error(err),
		)
		return err
	}

	h.logger.Debug("invoice linked to regular account",
		zap.String("invoice_id", created.InvoiceID.String()),
		zap.String("customer_id", created.CustomerID.String()),
	)
	return nil
}

var _ shared.EventHandler = (*InvoiceLinkHandler)(nil)
