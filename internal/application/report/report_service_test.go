package report

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/paintdesk/backend/internal/domain/billing"
	"github.com/paintdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubInvoiceRepo struct {
	invoices []billing.Invoice
}

func (r *stubInvoiceRepo) FindByID(_ context.Context, id uuid.UUID) (*billing.Invoice, error) {
	for i := range r.invoices {
		if r.invoices[i].ID == id {
			return &r.invoices[i], nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *stubInvoiceRepo) FindByNumber(_ context.Context, _ string) (*billing.Invoice, error) {
	return nil, shared.ErrNotFound
}

func (r *stubInvoiceRepo) FindAll(_ context.Context, _ shared.Filter) ([]billing.Invoice, error) {
	return r.invoices, nil
}

func (r *stubInvoiceRepo) FindByCustomer(_ context.Context, customerID uuid.UUID, _ shared.Filter) ([]billing.Invoice, error) {
	result := make([]billing.Invoice, 0)
	for _, inv := range r.invoices {
		if inv.CustomerID == customerID {
			result = append(result, inv)
		}
	}
	return result, nil
}

func (r *stubInvoiceRepo) FindByDateRange(_ context.Context, from, to time.Time) ([]billing.Invoice, error) {
	result := make([]billing.Invoice, 0)
	for _, inv := range r.invoices {
		if !inv.CreatedAt.Before(from) && !inv.CreatedAt.After(to) {
			result = append(result, inv)
		}
	}
	return result, nil
}

func (r *stubInvoiceRepo) FindOutstanding(_ context.Context) ([]billing.Invoice, error) {
	result := make([]billing.Invoice, 0)
	for _, inv := range r.invoices {
		if inv.Status.IsOutstanding() {
			result = append(result, inv)
		}
	}
	return result, nil
}

func (r *stubInvoiceRepo) Save(_ context.Context, _ *billing.Invoice) error {
	return nil
}

func (r *stubInvoiceRepo) Delete(_ context.Context, _ uuid.UUID) error {
	return nil
}

func (r *stubInvoiceRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.invoices)), nil
}

func (r *stubInvoiceRepo) GenerateInvoiceNumber(_ context.Context) (string, error) {
	return "INV-2026-00001", nil
}

func makeInvoice(t *testing.T, customerID uuid.UUID, customerName string, amount int64, age time.Duration) billing.Invoice {
	t.Helper()
	inv, err := billing.NewInvoice("INV-2026-"+uuid.NewString()[:5], customerID, customerName, billing.BillingModeCasual)
	require.NoError(t, err)
	_, err = inv.AddItem(billing.ProductSnapshot{
		ProductID:   uuid.New(),
		ProductName: "Premium Emulsion",
		Unit:        "4 Litre",
		GSTRate:     decimal.Zero,
		UnitPrice:   decimal.NewFromInt(amount),
	}, decimal.NewFromInt(1), "")
	require.NoError(t, err)
	inv.CreatedAt = time.Now().Add(-age)
	return *inv
}

func TestReportServiceDashboard(t *testing.T) {
	customerID := uuid.New()

	today := makeInvoice(t, customerID, "Sharma Contractors", 1000, time.Hour)
	lastWeek := makeInvoice(t, customerID, "Sharma Contractors", 500, 7*24*time.Hour)
	paid := makeInvoice(t, customerID, "Sharma Contractors", 750, 2*time.Hour)
	require.NoError(t, paid.SetStatus(billing.InvoiceStatusPaid, decimal.Zero))

	repo := &stubInvoiceRepo{invoices: []billing.Invoice{today, lastWeek, paid}}
	service := NewReportService(repo)

	summary, err := service.Dashboard(context.Background())
	require.NoError(t, err)

	// today's revenue counts the paid invoice too
	assert.True(t, summary.TodayRevenue.Equal(decimal.NewFromInt(1750)), "today = %s", summary.TodayRevenue)
	assert.Equal(t, 2, summary.TodayInvoiceCount)
	// receivables: both unpaid invoices, regardless of age
	assert.True(t, summary.TotalReceivables.Equal(decimal.NewFromInt(1500)))
	assert.Equal(t, 2, summary.OutstandingCount)
}

func TestReportServiceReceivables(t *testing.T) {
	sharma := uuid.New()
	verma := uuid.New()

	pending := makeInvoice(t, sharma, "Sharma Contractors", 500, time.Hour)
	partial := makeInvoice(t, sharma, "Sharma Contractors", 1000, 2*time.Hour)
	require.NoError(t, partial.SetStatus(billing.InvoiceStatusPartiallyPaid, decimal.NewFromInt(300)))
	small := makeInvoice(t, verma, "Verma Decorators", 200, time.Hour)

	repo := &stubInvoiceRepo{invoices: []billing.Invoice{pending, partial, small}}
	service := NewReportService(repo)

	receivables, err := service.Receivables(context.Background())
	require.NoError(t, err)

	require.Len(t, receivables, 2)
	assert.Equal(t, "Sharma Contractors", receivables[0].CustomerName)
	assert.True(t, receivables[0].Outstanding.Equal(decimal.NewFromInt(1200)))
	assert.Equal(t, "Verma Decorators", receivables[1].CustomerName)
	assert.True(t, receivables[1].Outstanding.Equal(decimal.NewFromInt(200)))
}

func TestReportServiceSalesTrend(t *testing.T) {
	customerID := uuid.New()
	repo := &stubInvoiceRepo{invoices: []billing.Invoice{
		makeInvoice(t, customerID, "Sharma Contractors", 1000, time.Hour),
		makeInvoice(t, customerID, "Sharma Contractors", 500, 25*time.Hour),
	}}
	service := NewReportService(repo)

	trend, err := service.SalesTrend(context.Background(), 7)
	require.NoError(t, err)

	require.Len(t, trend, 7)
	total := decimal.Zero
	for _, day := range trend {
		total = total.Add(day.Revenue)
	}
	assert.True(t, total.Equal(decimal.NewFromInt(1500)))
}

func TestReportServiceTopProducts(t *testing.T) {
	customerID := uuid.New()
	repo := &stubInvoiceRepo{invoices: []billing.Invoice{
		makeInvoice(t, customerID, "Sharma Contractors", 1000, time.Hour),
		makeInvoice(t, customerID, "Sharma Contractors", 500, 2*time.Hour),
	}}
	service := NewReportService(repo)

	top, err := service.TopProducts(context.Background(), 30, 5)
	require.NoError(t, err)

	// both invoices sold the same product name but different product IDs
	require.Len(t, top, 2)
	assert.Equal(t, "Premium Emulsion", top[0].ProductName)
}
