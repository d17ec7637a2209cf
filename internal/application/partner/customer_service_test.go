package partner

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/paintdesk/backend/internal/domain/partner"
	"github.com/paintdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCustomerRepo struct {
	customers map[uuid.UUID]*partner.Customer
}

func newStubCustomerRepo() *stubCustomerRepo {
	return &stubCustomerRepo{customers: make(map[uuid.UUID]*partner.Customer)}
}

func (r *stubCustomerRepo) FindByID(_ context.Context, id uuid.UUID) (*partner.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return c, nil
}

func (r *stubCustomerRepo) FindAll(_ context.Context, _ shared.Filter) ([]partner.Customer, error) {
	result := make([]partner.Customer, 0, len(r.customers))
	for _, c := range r.customers {
		result = append(result, *c)
	}
	return result, nil
}

func (r *stubCustomerRepo) FindByPhone(_ context.Context, phone string) (*partner.Customer, error) {
	for _, c := range r.customers {
		if c.Phone == phone {
			return c, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *stubCustomerRepo) Save(_ context.Context, customer *partner.Customer) error {
	r.customers[customer.ID] = customer
	return nil
}

func (r *stubCustomerRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.customers, id)
	return nil
}

func (r *stubCustomerRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.customers)), nil
}

type stubRegularRepo struct {
	regulars map[uuid.UUID]*partner.RegularCustomer
}

func newStubRegularRepo() *stubRegularRepo {
	return &stubRegularRepo{regulars: make(map[uuid.UUID]*partner.RegularCustomer)}
}

func (r *stubRegularRepo) FindByID(_ context.Context, id uuid.UUID) (*partner.RegularCustomer, error) {
	rc, ok := r.regulars[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return rc, nil
}

func (r *stubRegularRepo) FindByCustomerID(_ context.Context, customerID uuid.UUID) (*partner.RegularCustomer, error) {
	for _, rc := range r.regulars {
		if rc.CustomerID == customerID {
			return rc, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *stubRegularRepo) FindAll(_ context.Context, _ shared.Filter) ([]partner.RegularCustomer, error) {
	result := make([]partner.RegularCustomer, 0, len(r.regulars))
	for _, rc := range r.regulars {
		result = append(result, *rc)
	}
	return result, nil
}

func (r *stubRegularRepo) Save(_ context.Context, regular *partner.RegularCustomer) error {
	r.regulars[regular.ID] = regular
	return nil
}

func (r *stubRegularRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.regulars, id)
	return nil
}

func TestCustomerServiceCreate(t *testing.T) {
	service := NewCustomerService(newStubCustomerRepo(), nil)

	resp, err := service.Create(context.Background(), CreateCustomerRequest{
		Name:  "Sharma Contractors",
		Phone: "9876543210",
	})
	require.NoError(t, err)
	assert.Equal(t, "Sharma Contractors", resp.Name)

	// same phone again is rejected
	_, err = service.Create(context.Background(), CreateCustomerRequest{
		Name:  "Someone Else",
		Phone: "9876543210",
	})
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "DUPLICATE_PHONE", domainErr.Code)
}

func TestCustomerServiceCreateInvalidGSTIN(t *testing.T) {
	service := NewCustomerService(newStubCustomerRepo(), nil)

	_, err := service.Create(context.Background(), CreateCustomerRequest{
		Name:  "Sharma Contractors",
		GSTIN: "too-short",
	})
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_GSTIN", domainErr.Code)
}

func TestCustomerServiceUpdateAndDelete(t *testing.T) {
	repo := newStubCustomerRepo()
	service := NewCustomerService(repo, nil)

	created, err := service.Create(context.Background(), CreateCustomerRequest{Name: "Sharma Contractors"})
	require.NoError(t, err)

	updated, err := service.Update(context.Background(), created.ID, UpdateCustomerRequest{
		Name:    "Sharma & Sons",
		Phone:   "9876543210",
		Address: "MG Road",
	})
	require.NoError(t, err)
	assert.Equal(t, "Sharma & Sons", updated.Name)

	require.NoError(t, service.Delete(context.Background(), created.ID))
	_, err = service.GetByID(context.Background(), created.ID)
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestRegularCustomerServicePromoteAndRates(t *testing.T) {
	customerRepo := newStubCustomerRepo()
	regularRepo := newStubRegularRepo()
	customers := NewCustomerService(customerRepo, nil)
	regulars := NewRegularCustomerService(regularRepo, customerRepo)

	created, err := customers.Create(context.Background(), CreateCustomerRequest{
		Name:  "Verma Decorators",
		Phone: "9000000001",
	})
	require.NoError(t, err)

	promoted, err := regulars.Promote(context.Background(), PromoteCustomerRequest{CustomerID: created.ID})
	require.NoError(t, err)
	assert.Equal(t, created.ID, promoted.CustomerID)
	assert.Equal(t, "Verma Decorators", promoted.Name)

	// promoting twice is rejected
	_, err = regulars.Promote(context.Background(), PromoteCustomerRequest{CustomerID: created.ID})
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_REGULAR", domainErr.Code)

	productID := uuid.New()
	withRate, err := regulars.SetRate(context.Background(), promoted.ID, SetRateRequest{
		ProductID:       productID,
		NegotiatedPrice: decimal.NewFromInt(1400),
	})
	require.NoError(t, err)
	require.Len(t, withRate.Rates, 1)

	rate, err := regulars.RateFor(context.Background(), created.ID, productID)
	require.NoError(t, err)
	require.NotNil(t, rate)
	assert.True(t, rate.Equal(decimal.NewFromInt(1400)))

	// no rate on file for another product
	rate, err = regulars.RateFor(context.Background(), created.ID, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, rate)

	removed, err := regulars.RemoveRate(context.Background(), promoted.ID, productID)
	require.NoError(t, err)
	assert.Empty(t, removed.Rates)
}

func TestRegularCustomerServiceLinkInvoice(t *testing.T) {
	customerRepo := newStubCustomerRepo()
	regularRepo := newStubRegularRepo()
	customers := NewCustomerService(customerRepo, nil)
	regulars := NewRegularCustomerService(regularRepo, customerRepo)

	created, err := customers.Create(context.Background(), CreateCustomerRequest{Name: "Verma Decorators"})
	require.NoError(t, err)
	promoted, err := regulars.Promote(context.Background(), PromoteCustomerRequest{CustomerID: created.ID})
	require.NoError(t, err)

	invoiceID := uuid.New()
	require.NoError(t, regulars.LinkInvoice(context.Background(), created.ID, invoiceID))
	// linking twice stays a single entry
	require.NoError(t, regulars.LinkInvoice(context.Background(), created.ID, invoiceID))

	resp, err := regulars.GetByID(context.Background(), promoted.ID)
	require.NoError(t, err)
	require.Len(t, resp.InvoiceIDs, 1)
	assert.Equal(t, invoiceID, resp.InvoiceIDs[0])

	// a customer without a regular account is skipped silently
	require.NoError(t, regulars.LinkInvoice(context.Background(), uuid.New(), uuid.New()))
}
