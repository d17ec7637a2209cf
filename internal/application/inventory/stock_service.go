package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/paintdesk/backend/internal/domain/catalog"
	"github.com/paintdesk/backend/internal/domain/inventory"
	"github.com/paintdesk/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// StockService handles goods receipt and manual stock corrections
type StockService struct {
	receiptRepo  inventory.StockReceiptRepository
	movementRepo inventory.StockMovementRepository
	productRepo  catalog.ProductRepository
	txScope      TransactionScope
	logger       *zap.Logger
}

// NewStockService creates a new StockService
func NewStockService(
	receiptRepo inventory.StockReceiptRepository,
	movementRepo inventory.StockMovementRepository,
	productRepo catalog.ProductRepository,
	txScope TransactionScope,
	logger *zap.Logger,
) *StockService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StockService{
		receiptRepo:  receiptRepo,
		movementRepo: movementRepo,
		productRepo:  productRepo,
		txScope:      txScope,
		logger:       logger,
	}
}

// ReceiveStock records a goods receipt: the receipt row, the stock
// increment and the movement audit row commit together. The product's
// cost price follows the latest receipt.
func (s *StockService) ReceiveStock(ctx context.Context, req ReceiveStockRequest) (*StockReceiptResponse, error) {
	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	receipt, err := inventory.NewStockReceipt(req.ProductID, req.SupplierName, req.Quantity, req.CostPrice, req.Note)
	if err != nil {
		return nil, err
	}

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.ReceiptRepo().Save(ctx, receipt); err != nil {
			return err
		}
		if err := repos.ProductRepo().AdjustStock(ctx, req.ProductID, req.Quantity); err != nil {
			return err
		}
		if req.CostPrice.IsPositive() {
			if err := product.SetCostPrice(req.CostPrice); err != nil {
				return err
			}
			if err := repos.ProductRepo().Save(ctx, product); err != nil {
				return err
			}
		}
		movement, err := inventory.NewStockMovement(
			req.ProductID, req.Quantity, inventory.MovementReasonReceipt, receipt.ID.String(), req.Note,
		)
		if err != nil {
			return err
		}
		return repos.MovementRepo().Save(ctx, movement)
	})
	if err != nil {
		return nil, err
	}

	response := ToStockReceiptResponse(receipt)
	return &response, nil
}

// AdjustStock applies a manual correction, e.g. after a physical count.
// Corrections that would take stock below zero are rejected.
func (s *StockService) AdjustStock(ctx context.Context, req AdjustStockRequest) error {
	if req.Delta.IsZero() {
		return shared.NewDomainError("INVALID_QUANTITY", "Adjustment delta cannot be zero")
	}
	if _, err := s.productRepo.FindByID(ctx, req.ProductID); err != nil {
		return err
	}

	return s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.ProductRepo().AdjustStock(ctx, req.ProductID, req.Delta); err != nil {
			return err
		}
		movement, err := inventory.NewStockMovement(
			req.ProductID, req.Delta, inventory.MovementReasonAdjustment, "", req.Note,
		)
		if err != nil {
			return err
		}
		return repos.MovementRepo().Save(ctx, movement)
	})
}

// ListReceipts retrieves receipts for a product
func (s *StockService) ListReceipts(ctx context.Context, productID uuid.UUID) ([]StockReceiptResponse, error) {
	receipts, err := s.receiptRepo.FindByProduct(ctx, productID, shared.DefaultFilter())
	if err != nil {
		return nil, err
	}
	responses := make([]StockReceiptResponse, len(receipts))
	for i := range receipts {
		responses[i] = ToStockReceiptResponse(&receipts[i])
	}
	return responses, nil
}

// ListMovements retrieves the movement audit trail
func (s *StockService) ListMovements(ctx context.Context, filter MovementListFilter) ([]StockMovementResponse, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 50
	}

	domainFilter := shared.DefaultFilter()
	domainFilter.Page = filter.Page
	domainFilter.PageSize = filter.PageSize

	var movements []inventory.StockMovement
	var err error
	if filter.ProductID != nil {
		movements, err = s.movementRepo.FindByProduct(ctx, *filter.ProductID, domainFilter)
	} else {
		movements, err = s.movementRepo.FindAll(ctx, domainFilter)
	}
	if err != nil {
		return nil, err
	}

	responses := make([]StockMovementResponse, len(movements))
	for i := range movements {
		responses[i] = ToStockMovementResponse(&movements[i])
	}
	return responses, nil
}
