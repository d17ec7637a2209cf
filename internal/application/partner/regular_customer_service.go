package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/paintdesk/backend/internal/domain/partner"
	"github.com/paintdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// RegularCustomerService manages wholesale accounts and their negotiated
// per-product rates.
type RegularCustomerService struct {
	regularRepo  partner.RegularCustomerRepository
	customerRepo partner.CustomerRepository
}

// NewRegularCustomerService creates a new RegularCustomerService
func NewRegularCustomerService(regularRepo partner.RegularCustomerRepository, customerRepo partner.CustomerRepository) *RegularCustomerService {
	return &RegularCustomerService{
		regularRepo:  regularRepo,
		customerRepo: customerRepo,
	}
}

// Promote turns an existing customer into a regular account
func (s *RegularCustomerService) Promote(ctx context.Context, req PromoteCustomerRequest) (*RegularCustomerResponse, error) {
	if existing, err := s.regularRepo.FindByCustomerID(ctx, req.CustomerID); err == nil && existing != nil {
		return nil, shared.NewDomainError("ALREADY_REGULAR", "Customer already has a regular account")
	}

	customer, err := s.customerRepo.FindByID(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}

	regular, err := partner.NewRegularCustomer(customer.ID, customer.Name, customer.Phone)
	if err != nil {
		return nil, err
	}

	if err := s.regularRepo.Save(ctx, regular); err != nil {
		return nil, err
	}

	response := ToRegularCustomerResponse(regular)
	return &response, nil
}

// GetByID retrieves a regular customer by ID
func (s *RegularCustomerService) GetByID(ctx context.Context, regularID uuid.UUID) (*RegularCustomerResponse, error) {
	regular, err := s.regularRepo.FindByID(ctx, regularID)
	if err != nil {
		return nil, err
	}
	response := ToRegularCustomerResponse(regular)
	return &response, nil
}

// GetByCustomerID retrieves the regular account for a customer, if any
func (s *RegularCustomerService) GetByCustomerID(ctx context.Context, customerID uuid.UUID) (*RegularCustomerResponse, error) {
	regular, err := s.regularRepo.FindByCustomerID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	response := ToRegularCustomerResponse(regular)
	return &response, nil
}

// List retrieves all regular customers
func (s *RegularCustomerService) List(ctx context.Context) ([]RegularCustomerResponse, error) {
	regulars, err := s.regularRepo.FindAll(ctx, shared.DefaultFilter())
	if err != nil {
		return nil, err
	}
	responses := make([]RegularCustomerResponse, len(regulars))
	for i := range regulars {
		responses[i] = ToRegularCustomerResponse(&regulars[i])
	}
	return responses, nil
}

// SetRate sets or replaces a negotiated product price
func (s *RegularCustomerService) SetRate(ctx context.Context, regularID uuid.UUID, req SetRateRequest) (*RegularCustomerResponse, error) {
	regular, err := s.regularRepo.FindByID(ctx, regularID)
	if err != nil {
		return nil, err
	}

	if err := regular.SetRate(req.ProductID, req.NegotiatedPrice); err != nil {
		return nil, err
	}
	if err := s.regularRepo.Save(ctx, regular); err != nil {
		return nil, err
	}

	response := ToRegularCustomerResponse(regular)
	return &response, nil
}

// RemoveRate removes a negotiated product price
func (s *RegularCustomerService) RemoveRate(ctx context.Context, regularID, productID uuid.UUID) (*RegularCustomerResponse, error) {
	regular, err := s.regularRepo.FindByID(ctx, regularID)
	if err != nil {
		return nil, err
	}

	if err := regular.RemoveRate(productID); err != nil {
		return nil, err
	}
	if err := s.regularRepo.Save(ctx, regular); err != nil {
		return nil, err
	}

	response := ToRegularCustomerResponse(regular)
	return &response, nil
}

// RateFor returns the negotiated price for a product when the customer
// has a regular account and a rate on file.
func (s *RegularCustomerService) RateFor(ctx context.Context, customerID, productID uuid.UUID) (*decimal.Decimal, error) {
	regular, err := s.regularRepo.FindByCustomerID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if price, ok := regular.RateFor(productID); ok {
		return &price, nil
	}
	return nil, nil
}

// LinkInvoice records an issued invoice against the customer's regular
// account. Customers without one are skipped silently.
func (s *RegularCustomerService) LinkInvoice(ctx context.Context, customerID, invoiceID uuid.UUID) error {
	regular, err := s.regularRepo.FindByCustomerID(ctx, customerID)
	if err != nil {
		return nil
	}

	if err := regular.LinkInvoice(invoiceID); err != nil {
		return err
	}
	return s.regularRepo.Save(ctx, regular)
}
