package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"time"

	"github.com/paintdesk/backend/internal/domain/billing"
	"github.com/paintdesk/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

var two = decimal.NewFromInt(2)

// BillHistoryExporter produces the accountant-facing CSV export: a line
// detail section followed by a per-invoice GST summary. GST splits evenly
// into CGST and SGST for intra-state sales.
type BillHistoryExporter struct {
	invoiceRepo billing.InvoiceRepository
}

// NewBillHistoryExporter creates a new BillHistoryExporter
func NewBillHistoryExporter(invoiceRepo billing.InvoiceRepository) *BillHistoryExporter {
	return &BillHistoryExporter{invoiceRepo: invoiceRepo}
}

var detailHeader = []string{
	"Invoice No", "Date", "Customer Name", "Product Name", "Base/Specification",
	"HSN Code", "Quantity", "Unit", "Rate", "Amount",
	"CGST%", "SGST%", "CGST Amount", "SGST Amount", "Total Amount", "Status",
}

var summaryHeader = []string{
	"Invoice No", "Date", "Customer", "HSN Code", "CGST Total", "SGST Total", "Invoice Total",
}

// ExportCSV writes the bill history for the date range as CSV
func (e *BillHistoryExporter) ExportCSV(ctx context.Context, from, to time.Time) ([]byte, error) {
	invoices, err := e.invoiceRepo.FindByDateRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := e.writeDetailSection(w, invoices); err != nil {
		return nil, err
	}
	// blank row between the sections
	if err := w.Write([]string{}); err != nil {
		return nil, err
	}
	if err := e.writeSummarySection(w, invoices); err != nil {
		return nil, err
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *BillHistoryExporter) writeDetailSection(w *csv.Writer, invoices []billing.Invoice) error {
	if err := w.Write([]string{"Invoice Detail"}); err != nil {
		return err
	}
	if err := w.Write(detailHeader); err != nil {
		return err
	}

	for i := range invoices {
		inv := &invoices[i]
		for j := range inv.Items {
			item := &inv.Items[j]
			line := lineTaxSplit(inv, item)

			record := []string{
				inv.InvoiceNumber,
				inv.CreatedAt.Format("02-01-2006"),
				inv.CustomerName,
				item.ProductName,
				item.Base,
				item.HSNCode,
				item.SignedQuantity().String(),
				item.Unit,
				item.UnitPrice.String(),
				item.SignedTotal().StringFixed(2),
				line.halfRate.String(),
				line.halfRate.String(),
				line.cgst.Fixed(),
				line.sgst.Fixed(),
				line.total.Fixed(),
				inv.Status.String(),
			}
			if err := w.Write(record); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *BillHistoryExporter) writeSummarySection(w *csv.Writer, invoices []billing.Invoice) error {
	if err := w.Write([]string{"GST Summary"}); err != nil {
		return err
	}
	if err := w.Write(summaryHeader); err != nil {
		return err
	}

	for i := range invoices {
		inv := &invoices[i]

		cgstTotal := valueobject.ZeroMoney()
		hsnCodes := make([]string, 0, 1)
		seen := make(map[string]bool)
		for j := range inv.Items {
			line := lineTaxSplit(inv, &inv.Items[j])
			cgstTotal = cgstTotal.Add(line.cgst)
			code := inv.Items[j].HSNCode
			if code != "" && !seen[code] {
				seen[code] = true
				hsnCodes = append(hsnCodes, code)
			}
		}

		record := []string{
			inv.InvoiceNumber,
			inv.CreatedAt.Format("02-01-2006"),
			inv.CustomerName,
			joinCodes(hsnCodes),
			cgstTotal.Fixed(),
			cgstTotal.Fixed(),
			inv.Total.StringFixed(2),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return nil
}

type taxSplit struct {
	halfRate decimal.Decimal
	cgst     valueobject.Money
	sgst     valueobject.Money
	total    valueobject.Money
}

// lineTaxSplit computes the CGST/SGST halves for one line. The taxable
// base is the signed line amount after the invoice-level discount; GST
// applies only to invoices billed with GST.
func lineTaxSplit(inv *billing.Invoice, item *billing.LineItem) taxSplit {
	taxable := valueobject.NewMoney(item.SignedTotal()).ApplyDiscount(inv.DiscountPercent)

	if inv.Mode != billing.BillingModeWithGST || item.GSTRate.IsZero() {
		return taxSplit{total: taxable}
	}

	cgst, sgst := taxable.SplitGST(item.GSTRate)
	return taxSplit{
		halfRate: item.GSTRate.Div(two),
		cgst:     cgst,
		sgst:     sgst,
		total:    taxable.Add(cgst).Add(sgst),
	}
}

func joinCodes(codes []string) string {
	result := ""
	for i, code := range codes {
		if i > 0 {
			result += ", "
		}
		result += code
	}
	return result
}
