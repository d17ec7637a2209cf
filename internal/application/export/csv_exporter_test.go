package export

import (
	"context"
	"encoding/csv"
	"strings"
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

func (r *stubInvoiceRepo) FindByCustomer(_ context.Context, _ uuid.UUID, _ shared.Filter) ([]billing.Invoice, error) {
	return r.invoices, nil
}

func (r *stubInvoiceRepo) FindByDateRange(_ context.Context, _, _ time.Time) ([]billing.Invoice, error) {
	return r.invoices, nil
}

func (r *stubInvoiceRepo) FindOutstanding(_ context.Context) ([]billing.Invoice, error) {
	return nil, nil
}

func (r *stubInvoiceRepo) Save(_ context.Context, _ *billing.Invoice) error { return nil }

func (r *stubInvoiceRepo) Delete(_ context.Context, _ uuid.UUID) error { return nil }

func (r *stubInvoiceRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.invoices)), nil
}

func (r *stubInvoiceRepo) GenerateInvoiceNumber(_ context.Context) (string, error) {
	return "INV-2026-00001", nil
}

func gstInvoice(t *testing.T) *billing.Invoice {
	t.Helper()
	inv, err := billing.NewInvoice("INV-2026-00042", uuid.New(), "Sharma Contractors", billing.BillingModeWithGST)
	require.NoError(t, err)
	_, err = inv.AddItem(billing.ProductSnapshot{
		ProductID:   uuid.New(),
		ProductName: "Premium Emulsion",
		Base:        "Deep Base",
		HSNCode:     "3208",
		Unit:        "4 Litre",
		GSTRate:     decimal.NewFromInt(18),
		UnitPrice:   decimal.NewFromInt(1500),
	}, decimal.NewFromInt(2), "Royal Blue")
	require.NoError(t, err)
	inv.CreatedAt = time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)
	return inv
}

func TestExportCSVSchema(t *testing.T) {
	repo := &stubInvoiceRepo{invoices: []billing.Invoice{*gstInvoice(t)}}
	exporter := NewBillHistoryExporter(repo)

	out, err := exporter.ExportCSV(context.Background(), time.Now().AddDate(0, 0, -30), time.Now())
	require.NoError(t, err)

	reader := csv.NewReader(strings.NewReader(string(out)))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	require.NoError(t, err)

	require.GreaterOrEqual(t, len(records), 6)
	assert.Equal(t, []string{"Invoice Detail"}, records[0])
	assert.Equal(t, detailHeader, records[1])

	detail := records[2]
	assert.Equal(t, "INV-2026-00042", detail[0])
	assert.Equal(t, "15-08-2026", detail[1])
	assert.Equal(t, "Sharma Contractors", detail[2])
	assert.Equal(t, "Premium Emulsion", detail[3])
	assert.Equal(t, "Deep Base", detail[4])
	assert.Equal(t, "3208", detail[5])
	assert.Equal(t, "2", detail[6])
	assert.Equal(t, "4 Litre", detail[7])
	assert.Equal(t, "1500", detail[8])
	assert.Equal(t, "3000.00", detail[9])
	// 18% GST splits into 9% + 9%
	assert.Equal(t, "9", detail[10])
	assert.Equal(t, "9", detail[11])
	assert.Equal(t, "270.00", detail[12])
	assert.Equal(t, "270.00", detail[13])
	assert.Equal(t, "3540.00", detail[14])
	assert.Equal(t, "pending", detail[15])

	// summary section after the blank separator row
	assert.Equal(t, []string{"GST Summary"}, records[4])
	assert.Equal(t, summaryHeader, records[5])
	summary := records[6]
	assert.Equal(t, "INV-2026-00042", summary[0])
	assert.Equal(t, "3208", summary[3])
	assert.Equal(t, "270.00", summary[4])
	assert.Equal(t, "270.00", summary[5])
	assert.Equal(t, "3540.00", summary[6])
}

func TestExportCSVReturnsAndDiscount(t *testing.T) {
	inv := gstInvoice(t)
	item := inv.Items[0]
	_, err := inv.ProcessReturn(item.ID, decimal.NewFromInt(1), "wrong shade")
	require.NoError(t, err)
	require.NoError(t, inv.ApplyDiscountPercent(decimal.NewFromInt(10)))

	repo := &stubInvoiceRepo{invoices: []billing.Invoice{*inv}}
	exporter := NewBillHistoryExporter(repo)

	out, err := exporter.ExportCSV(context.Background(), time.Now().AddDate(0, 0, -30), time.Now())
	require.NoError(t, err)

	reader := csv.NewReader(strings.NewReader(string(out)))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	require.NoError(t, err)

	// sale row then return row
	sale := records[2]
	ret := records[3]
	assert.Equal(t, "2", sale[6])
	assert.Equal(t, "-1", ret[6])
	assert.Equal(t, "-1500.00", ret[9])

	// taxable base nets the discount: sale 3000*0.9 at 9%, return -1500*0.9 at 9%
	assert.Equal(t, "243.00", sale[12])
	assert.Equal(t, "-121.50", ret[12])
}

func TestExportCSVCasualModeCarriesNoGST(t *testing.T) {
	inv, err := billing.NewInvoice("INV-2026-00043", uuid.New(), "Walk-in", billing.BillingModeCasual)
	require.NoError(t, err)
	_, err = inv.AddItem(billing.ProductSnapshot{
		ProductID:   uuid.New(),
		ProductName: "Thinner",
		Unit:        "1 Litre",
		GSTRate:     decimal.NewFromInt(18),
		UnitPrice:   decimal.NewFromInt(150),
	}, decimal.NewFromInt(1), "")
	require.NoError(t, err)

	repo := &stubInvoiceRepo{invoices: []billing.Invoice{*inv}}
	exporter := NewBillHistoryExporter(repo)

	out, err := exporter.ExportCSV(context.Background(), time.Now().AddDate(0, 0, -30), time.Now())
	require.NoError(t, err)

	reader := csv.NewReader(strings.NewReader(string(out)))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	require.NoError(t, err)

	detail := records[2]
	assert.Equal(t, "0", detail[10])
	assert.Equal(t, "0.00", detail[12])
	assert.Equal(t, "150.00", detail[14])
}
