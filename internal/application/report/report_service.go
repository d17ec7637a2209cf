package report

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/paintdesk/backend/internal/domain/billing"
	"github.com/paintdesk/backend/internal/domain/report"
	"github.com/shopspring/decimal"
)

// DashboardSummary is the front-page snapshot of the shop
type DashboardSummary struct {
	TodayRevenue      decimal.Decimal `json:"today_revenue"`
	TodayInvoiceCount int             `json:"today_invoice_count"`
	TotalReceivables  decimal.Decimal `json:"total_receivables"`
	OutstandingCount  int             `json:"outstanding_count"`
}

// CustomerReceivable is one customer's outstanding balance
type CustomerReceivable struct {
	CustomerID   uuid.UUID       `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	Outstanding  decimal.Decimal `json:"outstanding"`
}

// ReportService produces analytics over billing data. All reports are
// read-side folds; nothing here mutates state.
type ReportService struct {
	invoiceRepo billing.InvoiceRepository
}

// NewReportService creates a new ReportService
func NewReportService(invoiceRepo billing.InvoiceRepository) *ReportService {
	return &ReportService{invoiceRepo: invoiceRepo}
}

// Dashboard returns today's sales alongside total receivables
func (s *ReportService) Dashboard(ctx context.Context) (*DashboardSummary, error) {
	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	todays, err := s.invoiceRepo.FindByDateRange(ctx, dayStart, now)
	if err != nil {
		return nil, err
	}
	outstanding, err := s.invoiceRepo.FindOutstanding(ctx)
	if err != nil {
		return nil, err
	}

	summary := &DashboardSummary{
		TodayRevenue:     decimal.Zero,
		TotalReceivables: decimal.Zero,
	}
	for _, inv := range todays {
		summary.TodayRevenue = summary.TodayRevenue.Add(inv.Total)
		summary.TodayInvoiceCount++
	}
	for _, inv := range outstanding {
		summary.TotalReceivables = summary.TotalReceivables.Add(inv.Outstanding())
		summary.OutstandingCount++
	}

	return summary, nil
}

// SalesTrend returns per-day sales over the trailing window
func (s *ReportService) SalesTrend(ctx context.Context, windowDays int) ([]report.DailySales, error) {
	if windowDays <= 0 {
		windowDays = 30
	}
	now := time.Now()
	invoices, err := s.invoiceRepo.FindByDateRange(ctx, now.AddDate(0, 0, -windowDays), now)
	if err != nil {
		return nil, err
	}
	return report.SalesByDay(invoices, windowDays, now), nil
}

// Receivables returns outstanding balances grouped by customer, largest
// first.
func (s *ReportService) Receivables(ctx context.Context) ([]CustomerReceivable, error) {
	invoices, err := s.invoiceRepo.FindOutstanding(ctx)
	if err != nil {
		return nil, err
	}

	owed := report.OutstandingByCustomer(invoices)

	names := make(map[uuid.UUID]string, len(invoices))
	for _, inv := range invoices {
		names[inv.CustomerID] = inv.CustomerName
	}

	result := make([]CustomerReceivable, 0, len(owed))
	for customerID, amount := range owed {
		result = append(result, CustomerReceivable{
			CustomerID:   customerID,
			CustomerName: names[customerID],
			Outstanding:  amount,
		})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Outstanding.GreaterThan(result[j].Outstanding)
	})

	return result, nil
}

// TopProducts returns the best sellers over the trailing window, returns
// netted out.
func (s *ReportService) TopProducts(ctx context.Context, windowDays, limit int) ([]report.ProductSales, error) {
	if windowDays <= 0 {
		windowDays = 30
	}
	if limit <= 0 {
		limit = 10
	}
	now := time.Now()
	invoices, err := s.invoiceRepo.FindByDateRange(ctx, now.AddDate(0, 0, -windowDays), now)
	if err != nil {
		return nil, err
	}

	items := make([]billing.LineItem, 0)
	for _, inv := range invoices {
		items = append(items, inv.Items...)
	}

	return report.TopProductsBySold(items, limit), nil
}
