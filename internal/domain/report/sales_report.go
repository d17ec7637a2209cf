// Package report contains pure read-side folds over billing data.
// Nothing here touches storage; callers fetch the rows and feed them in.
package report

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/paintdesk/backend/internal/domain/billing"
	"github.com/shopspring/decimal"
)

// DailySales is one calendar-day bucket of sales
type DailySales struct {
	Date         time.Time       `json:"date"`
	InvoiceCount int             `json:"invoice_count"`
	Revenue      decimal.Decimal `json:"revenue"`
}

// ProductSales is an aggregate of sold quantity and revenue per product.
// Returns subtract from both figures.
type ProductSales struct {
	ProductID    uuid.UUID       `json:"product_id"`
	ProductName  string          `json:"product_name"`
	QuantitySold decimal.Decimal `json:"quantity_sold"`
	Revenue      decimal.Decimal `json:"revenue"`
}

// SalesByDay buckets invoices into calendar days over a trailing window of
// windowDays ending at now. Every day in the window appears, zero-filled
// when no invoices landed on it. Invoices without a creation timestamp are
// excluded rather than piled onto a bogus epoch bucket.
func SalesByDay(invoices []billing.Invoice, windowDays int, now time.Time) []DailySales {
	if windowDays <= 0 {
		return []DailySales{}
	}

	start := truncateToDay(now).AddDate(0, 0, -(windowDays - 1))

	buckets := make(map[time.Time]*DailySales, windowDays)
	days := make([]DailySales, 0, windowDays)
	for i := 0; i < windowDays; i++ {
		day := start.AddDate(0, 0, i)
		days = append(days, DailySales{Date: day, Revenue: decimal.Zero})
	}
	for i := range days {
		buckets[days[i].Date] = &days[i]
	}

	for _, inv := range invoices {
		if inv.CreatedAt.IsZero() {
			continue
		}
		day := truncateToDay(inv.CreatedAt)
		bucket, ok := buckets[day]
		if !ok {
			continue
		}
		bucket.InvoiceCount++
		bucket.Revenue = bucket.Revenue.Add(inv.Total)
	}

	return days
}

// OutstandingByCustomer folds invoices into the amount each customer still
// owes: pending and overdue invoices owe their full total, partially paid
// invoices owe the remainder, settled invoices owe nothing.
func OutstandingByCustomer(invoices []billing.Invoice) map[uuid.UUID]decimal.Decimal {
	outstanding := make(map[uuid.UUID]decimal.Decimal)
	for _, inv := range invoices {
		owed := inv.Outstanding()
		if owed.IsZero() {
			continue
		}
		if current, ok := outstanding[inv.CustomerID]; ok {
			outstanding[inv.CustomerID] = current.Add(owed)
		} else {
			outstanding[inv.CustomerID] = owed
		}
	}
	return outstanding
}

// TopProductsBySold groups line items by product and returns the top n by
// net quantity sold. Return rows subtract from quantity and revenue.
func TopProductsBySold(items []billing.LineItem, n int) []ProductSales {
	if n <= 0 {
		return []ProductSales{}
	}

	byProduct := make(map[uuid.UUID]*ProductSales)
	order := make([]uuid.UUID, 0)
	for _, item := range items {
		agg, ok := byProduct[item.ProductID]
		if !ok {
			agg = &ProductSales{
				ProductID:    item.ProductID,
				ProductName:  item.ProductName,
				QuantitySold: decimal.Zero,
				Revenue:      decimal.Zero,
			}
			byProduct[item.ProductID] = agg
			order = append(order, item.ProductID)
		}
		agg.QuantitySold = agg.QuantitySold.Add(item.SignedQuantity())
		agg.Revenue = agg.Revenue.Add(item.SignedTotal())
	}

	result := make([]ProductSales, 0, len(order))
	for _, id := range order {
		result = append(result, *byProduct[id])
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].QuantitySold.GreaterThan(result[j].QuantitySold)
	})

	if len(result) > n {
		result = result[:n]
	}
	return result
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
