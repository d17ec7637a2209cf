package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/paintdesk/backend/internal/domain/billing"
	"github.com/paintdesk/backend/internal/domain/catalog"
	"github.com/paintdesk/backend/internal/domain/inventory"
	"github.com/paintdesk/backend/internal/domain/partner"
	"github.com/paintdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ==================== In-memory fakes ====================

type fakeInvoiceRepo struct {
	invoices map[uuid.UUID]*billing.Invoice
	deleted  map[uuid.UUID]bool
	seq      int
	saveErr  error
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{
		invoices: make(map[uuid.UUID]*billing.Invoice),
		deleted:  make(map[uuid.UUID]bool),
	}
}

func (r *fakeInvoiceRepo) FindByID(_ context.Context, id uuid.UUID) (*billing.Invoice, error) {
	inv, ok := r.invoices[id]
	if !ok || r.deleted[id] {
		return nil, shared.ErrNotFound
	}
	return inv, nil
}

func (r *fakeInvoiceRepo) FindByNumber(_ context.Context, invoiceNumber string) (*billing.Invoice, error) {
	for id, inv := range r.invoices {
		if inv.InvoiceNumber == invoiceNumber && !r.deleted[id] {
			return inv, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeInvoiceRepo) FindAll(_ context.Context, _ shared.Filter) ([]billing.Invoice, error) {
	result := make([]billing.Invoice, 0, len(r.invoices))
	for id, inv := range r.invoices {
		if !r.deleted[id] {
			result = append(result, *inv)
		}
	}
	return result, nil
}

func (r *fakeInvoiceRepo) FindByCustomer(ctx context.Context, customerID uuid.UUID, _ shared.Filter) ([]billing.Invoice, error) {
	all, _ := r.FindAll(ctx, shared.Filter{})
	result := make([]billing.Invoice, 0)
	for _, inv := range all {
		if inv.CustomerID == customerID {
			result = append(result, inv)
		}
	}
	return result, nil
}

func (r *fakeInvoiceRepo) FindByDateRange(ctx context.Context, from, to time.Time) ([]billing.Invoice, error) {
	all, _ := r.FindAll(ctx, shared.Filter{})
	result := make([]billing.Invoice, 0)
	for _, inv := range all {
		if !inv.CreatedAt.Before(from) && !inv.CreatedAt.After(to) {
			result = append(result, inv)
		}
	}
	return result, nil
}

func (r *fakeInvoiceRepo) FindOutstanding(ctx context.Context) ([]billing.Invoice, error) {
	all, _ := r.FindAll(ctx, shared.Filter{})
	result := make([]billing.Invoice, 0)
	for _, inv := range all {
		if inv.Status.IsOutstanding() {
			result = append(result, inv)
		}
	}
	return result, nil
}

func (r *fakeInvoiceRepo) Save(_ context.Context, invoice *billing.Invoice) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.invoices[invoice.ID] = invoice
	return nil
}

func (r *fakeInvoiceRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.invoices[id]; !ok {
		return shared.ErrNotFound
	}
	r.deleted[id] = true
	return nil
}

func (r *fakeInvoiceRepo) Count(ctx context.Context, _ shared.Filter) (int64, error) {
	all, _ := r.FindAll(ctx, shared.Filter{})
	return int64(len(all)), nil
}

func (r *fakeInvoiceRepo) GenerateInvoiceNumber(_ context.Context) (string, error) {
	r.seq++
	return fmt.Sprintf("INV-%d-%05d", time.Now().Year(), r.seq), nil
}

type fakeProductRepo struct {
	products map[uuid.UUID]*catalog.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[uuid.UUID]*catalog.Product)}
}

func (r *fakeProductRepo) add(p *catalog.Product) {
	r.products[p.ID] = p
}

func (r *fakeProductRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return p, nil
}

func (r *fakeProductRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	result := make([]catalog.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (r *fakeProductRepo) FindAll(_ context.Context, _ shared.Filter) ([]catalog.Product, error) {
	result := make([]catalog.Product, 0, len(r.products))
	for _, p := range r.products {
		result = append(result, *p)
	}
	return result, nil
}

func (r *fakeProductRepo) FindLowStock(_ context.Context) ([]catalog.Product, error) {
	result := make([]catalog.Product, 0)
	for _, p := range r.products {
		if p.IsActive() && p.IsLowStock() {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (r *fakeProductRepo) Save(_ context.Context, product *catalog.Product) error {
	r.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.products)), nil
}

func (r *fakeProductRepo) AdjustStock(_ context.Context, id uuid.UUID, delta decimal.Decimal) error {
	p, ok := r.products[id]
	if !ok {
		return shared.ErrNotFound
	}
	next := p.StockQuantity.Add(delta)
	if next.IsNegative() {
		return shared.ErrInsufficientStock
	}
	p.StockQuantity = next
	return nil
}

type fakeMovementRepo struct {
	movements []*inventory.StockMovement
}

func (r *fakeMovementRepo) Save(_ context.Context, movement *inventory.StockMovement) error {
	r.movements = append(r.movements, movement)
	return nil
}

func (r *fakeMovementRepo) FindByProduct(_ context.Context, productID uuid.UUID, _ shared.Filter) ([]inventory.StockMovement, error) {
	result := make([]inventory.StockMovement, 0)
	for _, m := range r.movements {
		if m.ProductID == productID {
			result = append(result, *m)
		}
	}
	return result, nil
}

func (r *fakeMovementRepo) FindAll(_ context.Context, _ shared.Filter) ([]inventory.StockMovement, error) {
	result := make([]inventory.StockMovement, 0, len(r.movements))
	for _, m := range r.movements {
		result = append(result, *m)
	}
	return result, nil
}

type fakeCustomerRepo struct {
	customers map[uuid.UUID]*partner.Customer
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: make(map[uuid.UUID]*partner.Customer)}
}

func (r *fakeCustomerRepo) add(c *partner.Customer) {
	r.customers[c.ID] = c
}

func (r *fakeCustomerRepo) FindByID(_ context.Context, id uuid.UUID) (*partner.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return c, nil
}

func (r *fakeCustomerRepo) FindAll(_ context.Context, _ shared.Filter) ([]partner.Customer, error) {
	result := make([]partner.Customer, 0, len(r.customers))
	for _, c := range r.customers {
		result = append(result, *c)
	}
	return result, nil
}

func (r *fakeCustomerRepo) FindByPhone(_ context.Context, phone string) (*partner.Customer, error) {
	for _, c := range r.customers {
		if c.Phone == phone {
			return c, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeCustomerRepo) Save(_ context.Context, customer *partner.Customer) error {
	r.customers[customer.ID] = customer
	return nil
}

func (r *fakeCustomerRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.customers, id)
	return nil
}

func (r *fakeCustomerRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.customers)), nil
}

type capturingPublisher struct {
	events []shared.DomainEvent
}

func (p *capturingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.events = append(p.events, events...)
	return nil
}

func (p *capturingPublisher) eventTypes() []string {
	types := make([]string, len(p.events))
	for i, e := range p.events {
		types[i] = e.EventType()
	}
	return types
}
