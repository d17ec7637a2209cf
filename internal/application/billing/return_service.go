package billing

import (
	"context"

	"github.com/google/uuid"
	"github.com/paintdesk/backend/internal/domain/billing"
	"github.com/paintdesk/backend/internal/domain/inventory"
	"github.com/paintdesk/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ReturnService processes customer returns against existing invoices.
// A return appends a negative-effect row to the invoice and puts the
// stock back, both within one transaction.
type ReturnService struct {
	invoiceRepo    billing.InvoiceRepository
	txScope        TransactionScope
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewReturnService creates a new ReturnService
func NewReturnService(invoiceRepo billing.InvoiceRepository, txScope TransactionScope, logger *zap.Logger) *ReturnService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReturnService{
		invoiceRepo: invoiceRepo,
		txScope:     txScope,
		logger:      logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *ReturnService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// ProcessReturn records a return against an invoice item. The invoice
// totals shrink, the product stock grows back and a movement row keeps
// the audit trail, all in one transaction.
func (s *ReturnService) ProcessReturn(ctx context.Context, invoiceID uuid.UUID, req ProcessReturnRequest) (*InvoiceResponse, error) {
	inv, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	returnItem, err := inv.ProcessReturn(req.ItemID, req.Quantity, req.Reason)
	if err != nil {
		return nil, err
	}

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.InvoiceRepo().Save(ctx, inv); err != nil {
			return err
		}
		if err := repos.ProductRepo().AdjustStock(ctx, returnItem.ProductID, returnItem.Quantity); err != nil {
			return err
		}
		movement, err := inventory.NewStockMovement(
			returnItem.ProductID,
			returnItem.Quantity,
			inventory.MovementReasonReturn,
			inv.InvoiceNumber,
			req.Reason,
		)
		if err != nil {
			return err
		}
		return repos.MovementRepo().Save(ctx, movement)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, inv)

	response := ToInvoiceResponse(inv)
	return &response, nil
}

func (s *ReturnService) publishEvents(ctx context.Context, inv *billing.Invoice) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range inv.GetDomainEvents() {
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.logger.Error("failed to publish domain event",
				zap.String("event_type", event.EventType()),
				zap.Error(err),
			)
		}
	}
	inv.ClearDomainEvents()
}
