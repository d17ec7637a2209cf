package billing

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/paintdesk/backend/internal/domain/billing"
	"github.com/paintdesk/backend/internal/domain/catalog"
	"github.com/paintdesk/backend/internal/domain/inventory"
	"github.com/paintdesk/backend/internal/domain/partner"
	"github.com/paintdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// InvoiceService handles invoice business operations. Every mutation that
// moves stock runs inside a transaction scope so the invoice, the stock
// level and the movement audit row stay consistent.
type InvoiceService struct {
	invoiceRepo    billing.InvoiceRepository
	productRepo    catalog.ProductRepository
	customerRepo   partner.CustomerRepository
	txScope        TransactionScope
	storage        AttachmentStorage
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(
	invoiceRepo billing.InvoiceRepository,
	productRepo catalog.ProductRepository,
	customerRepo partner.CustomerRepository,
	txScope TransactionScope,
	logger *zap.Logger,
) *InvoiceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InvoiceService{
		invoiceRepo:  invoiceRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		txScope:      txScope,
		logger:       logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *InvoiceService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetAttachmentStorage sets the storage used for invoice attachments
func (s *InvoiceService) SetAttachmentStorage(storage AttachmentStorage) {
	s.storage = storage
}

// Create performs a checkout: it builds the invoice from catalog
// snapshots, then persists the invoice, the stock deductions and the
// movement rows in one transaction.
func (s *InvoiceService) Create(ctx context.Context, req CreateInvoiceRequest) (*InvoiceResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}

	invoiceNumber, err := s.invoiceRepo.GenerateInvoiceNumber(ctx)
	if err != nil {
		return nil, err
	}

	inv, err := billing.NewInvoice(invoiceNumber, customer.ID, customer.Name, req.Mode)
	if err != nil {
		return nil, err
	}

	for _, itemReq := range req.Items {
		if _, err := s.addItemFromCatalog(ctx, inv, itemReq.ProductID, itemReq.Quantity, itemReq.Colour, itemReq.UnitPrice); err != nil {
			return nil, err
		}
	}

	if err := inv.EnsureHasSaleItems(); err != nil {
		return nil, err
	}

	if req.Discount != nil {
		if err := inv.ApplyDiscountPercent(*req.Discount); err != nil {
			return nil, err
		}
	}
	if req.Remark != "" {
		inv.SetRemark(req.Remark)
	}

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.InvoiceRepo().Save(ctx, inv); err != nil {
			return err
		}
		for _, item := range inv.SaleItems() {
			if err := s.recordStockDelta(ctx, repos, item.ProductID, item.Quantity.Neg(),
				inventory.MovementReasonSale, inv.InvoiceNumber, ""); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, inv)

	response := ToInvoiceResponse(inv)
	return &response, nil
}

// GetByID retrieves an invoice by ID
func (s *InvoiceService) GetByID(ctx context.Context, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	inv, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	response := ToInvoiceResponse(inv)
	return &response, nil
}

// GetByNumber retrieves an invoice by invoice number
func (s *InvoiceService) GetByNumber(ctx context.Context, invoiceNumber string) (*InvoiceResponse, error) {
	inv, err := s.invoiceRepo.FindByNumber(ctx, invoiceNumber)
	if err != nil {
		return nil, err
	}
	response := ToInvoiceResponse(inv)
	return &response, nil
}

// List retrieves invoices with filtering and pagination
func (s *InvoiceService) List(ctx context.Context, filter InvoiceListFilter) (*shared.Paginated[InvoiceResponse], error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
	if filter.CustomerID != nil {
		domainFilter.Filters["customer_id"] = *filter.CustomerID
	}
	if filter.Status != nil {
		domainFilter.Filters["status"] = filter.Status.String()
	}
	if filter.Mode != nil {
		domainFilter.Filters["mode"] = filter.Mode.String()
	}
	if filter.StartDate != nil {
		domainFilter.Filters["start_date"] = *filter.StartDate
	}
	if filter.EndDate != nil {
		domainFilter.Filters["end_date"] = *filter.EndDate
	}

	invoices, err := s.invoiceRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.invoiceRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		responses[i] = ToInvoiceResponse(&invoices[i])
	}

	paginated := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &paginated, nil
}

// AddItem adds a line item to an existing invoice and deducts stock
func (s *InvoiceService) AddItem(ctx context.Context, invoiceID uuid.UUID, req AddInvoiceItemRequest) (*InvoiceResponse, error) {
	inv, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	item, err := s.addItemFromCatalog(ctx, inv, req.ProductID, req.Quantity, req.Colour, req.UnitPrice)
	if err != nil {
		return nil, err
	}

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.InvoiceRepo().Save(ctx, inv); err != nil {
			return err
		}
		return s.recordStockDelta(ctx, repos, item.ProductID, item.Quantity.Neg(),
			inventory.MovementReasonSale, inv.InvoiceNumber, "")
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, inv)

	response := ToInvoiceResponse(inv)
	return &response, nil
}

// UpdateItemQuantity changes a line item quantity, adjusting stock by the
// difference.
func (s *InvoiceService) UpdateItemQuantity(ctx context.Context, invoiceID, itemID uuid.UUID, req UpdateItemQuantityRequest) (*InvoiceResponse, error) {
	inv, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	item := inv.GetItem(itemID)
	if item == nil {
		return nil, shared.NewDomainError("ITEM_NOT_FOUND", "Invoice item not found")
	}
	previousQty := item.Quantity
	productID := item.ProductID

	if err := inv.UpdateItemQuantity(itemID, req.Quantity); err != nil {
		return nil, err
	}
	delta := req.Quantity.Sub(previousQty)

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.InvoiceRepo().Save(ctx, inv); err != nil {
			return err
		}
		if delta.IsZero() {
			return nil
		}
		return s.recordStockDelta(ctx, repos, productID, delta.Neg(),
			inventory.MovementReasonAdjustment, inv.InvoiceNumber, "quantity edited")
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, inv)

	response := ToInvoiceResponse(inv)
	return &response, nil
}

// RemoveItem removes a sale line item and restores its stock
func (s *InvoiceService) RemoveItem(ctx context.Context, invoiceID, itemID uuid.UUID) (*InvoiceResponse, error) {
	inv, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	item := inv.GetItem(itemID)
	if item == nil {
		return nil, shared.NewDomainError("ITEM_NOT_FOUND", "Invoice item not found")
	}
	restoreQty := item.Quantity
	productID := item.ProductID

	if err := inv.RemoveItem(itemID); err != nil {
		return nil, err
	}

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.InvoiceRepo().Save(ctx, inv); err != nil {
			return err
		}
		return s.recordStockDelta(ctx, repos, productID, restoreQty,
			inventory.MovementReasonAdjustment, inv.InvoiceNumber, "item removed")
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, inv)

	response := ToInvoiceResponse(inv)
	return &response, nil
}

// ApplyDiscount applies an invoice-level percentage discount
func (s *InvoiceService) ApplyDiscount(ctx context.Context, invoiceID uuid.UUID, req ApplyDiscountRequest) (*InvoiceResponse, error) {
	inv, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	if err := inv.ApplyDiscountPercent(req.DiscountPercent); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.Save(ctx, inv); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, inv)

	response := ToInvoiceResponse(inv)
	return &response, nil
}

// SetBillingMode changes the billing mode and re-derives tax
func (s *InvoiceService) SetBillingMode(ctx context.Context, invoiceID uuid.UUID, req SetBillingModeRequest) (*InvoiceResponse, error) {
	inv, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	if err := inv.SetBillingMode(req.Mode); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.Save(ctx, inv); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, inv)

	response := ToInvoiceResponse(inv)
	return &response, nil
}

// SetStatus changes the payment status
func (s *InvoiceService) SetStatus(ctx context.Context, invoiceID uuid.UUID, req SetStatusRequest) (*InvoiceResponse, error) {
	inv, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	if err := inv.SetStatus(req.Status, req.PartialAmount); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.Save(ctx, inv); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, inv)

	response := ToInvoiceResponse(inv)
	return &response, nil
}

// Delete soft-deletes the invoice, leaving a tombstone for audit
func (s *InvoiceService) Delete(ctx context.Context, invoiceID uuid.UUID) error {
	inv, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return err
	}

	if err := s.invoiceRepo.Delete(ctx, invoiceID); err != nil {
		return err
	}

	inv.AddDomainEvent(billing.NewInvoiceDeletedEvent(inv))
	s.publishEvents(ctx, inv)

	return nil
}

// AttachFile uploads an attachment and links it to the invoice. Upload and
// link are two steps; a failed link is reported, never swallowed.
func (s *InvoiceService) AttachFile(ctx context.Context, invoiceID uuid.UUID, filename string, data []byte, contentType string) (*InvoiceResponse, error) {
	if s.storage == nil {
		return nil, shared.NewDomainError("STORAGE_UNAVAILABLE", "Attachment storage is not configured")
	}

	inv, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("invoices/%s/%s", invoiceID, filename)
	url, err := s.storage.Upload(ctx, key, data, contentType)
	if err != nil {
		return nil, err
	}

	inv.SetAttachment(url)
	if err := s.invoiceRepo.Save(ctx, inv); err != nil {
		return nil, fmt.Errorf("attachment uploaded but linking failed: %w", err)
	}

	response := ToInvoiceResponse(inv)
	return &response, nil
}

// addItemFromCatalog snapshots the product and adds a sale row. The unit
// price override carries negotiated rates for regular customers.
func (s *InvoiceService) addItemFromCatalog(ctx context.Context, inv *billing.Invoice, productID uuid.UUID, quantity decimal.Decimal, colour string, priceOverride *decimal.Decimal) (*billing.LineItem, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.IsActive() {
		return nil, shared.NewDomainError("PRODUCT_DISABLED", "Product is not available for sale")
	}
	if !product.CanFulfill(quantity) {
		return nil, shared.ErrInsufficientStock
	}

	unitPrice := product.UnitPrice
	if priceOverride != nil {
		unitPrice = *priceOverride
	}

	snapshot := billing.ProductSnapshot{
		ProductID:   product.ID,
		ProductName: product.Name,
		Brand:       product.Brand,
		Base:        product.Base,
		HSNCode:     product.HSNCode,
		Unit:        product.Unit(),
		GSTRate:     product.GSTRate,
		UnitPrice:   unitPrice,
	}

	return inv.AddItem(snapshot, quantity, colour)
}

// recordStockDelta applies an atomic stock increment and writes the
// matching movement audit row within the current transaction.
func (s *InvoiceService) recordStockDelta(ctx context.Context, repos TransactionalRepositories, productID uuid.UUID, delta decimal.Decimal, reason inventory.MovementReason, reference, note string) error {
	if err := repos.ProductRepo().AdjustStock(ctx, productID, delta); err != nil {
		return err
	}
	movement, err := inventory.NewStockMovement(productID, delta, reason, reference, note)
	if err != nil {
		return err
	}
	return repos.MovementRepo().Save(ctx, movement)
}

// publishEvents publishes pending domain events after a successful commit
func (s *InvoiceService) publishEvents(ctx context.Context, inv *billing.Invoice) {
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
