package export

import (
	"bytes"
	"context"
	"html/template"

	"github.com/google/uuid"
	"github.com/paintdesk/backend/internal/domain/billing"
	"github.com/paintdesk/backend/internal/domain/shared/valueobject"
)

// PDFRenderer turns an HTML document into PDF bytes. Implemented by the
// headless-Chrome renderer in the infrastructure layer.
type PDFRenderer interface {
	RenderHTML(ctx context.Context, html string) ([]byte, error)
}

// ShopProfile is the letterhead printed on every invoice
type ShopProfile struct {
	Name    string
	Address string
	Phone   string
	GSTIN   string
}

// InvoicePrintService renders customer-facing invoice PDFs
type InvoicePrintService struct {
	invoiceRepo billing.InvoiceRepository
	renderer    PDFRenderer
	profile     ShopProfile
}

// NewInvoicePrintService creates a new InvoicePrintService
func NewInvoicePrintService(invoiceRepo billing.InvoiceRepository, renderer PDFRenderer, profile ShopProfile) *InvoicePrintService {
	return &InvoicePrintService{
		invoiceRepo: invoiceRepo,
		renderer:    renderer,
		profile:     profile,
	}
}

// PrintInvoice renders the invoice as a PDF
func (s *InvoicePrintService) PrintInvoice(ctx context.Context, invoiceID uuid.UUID) ([]byte, error) {
	inv, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	html, err := s.BuildHTML(inv)
	if err != nil {
		return nil, err
	}

	return s.renderer.RenderHTML(ctx, html)
}

type printLine struct {
	ProductName string
	Base        string
	HSNCode     string
	Colour      string
	Quantity    string
	Unit        string
	Rate        string
	Amount      string
	CGSTRate    string
	CGSTAmount  string
	IsReturn    bool
}

type printData struct {
	Shop          ShopProfile
	InvoiceNumber string
	Date          string
	CustomerName  string
	WithGST       bool
	Lines         []printLine
	Subtotal      string
	ReturnTotal   string
	HasReturns    bool
	Discount      string
	HasDiscount   bool
	CGSTTotal     string
	SGSTTotal     string
	Total         string
	AmountPaid    string
	Outstanding   string
	Status        string
}

// BuildHTML builds the printable invoice document
func (s *InvoicePrintService) BuildHTML(inv *billing.Invoice) (string, error) {
	data := printData{
		Shop:          s.profile,
		InvoiceNumber: inv.InvoiceNumber,
		Date:          inv.CreatedAt.Format("02-01-2006"),
		CustomerName:  inv.CustomerName,
		WithGST:       inv.Mode == billing.BillingModeWithGST,
		Subtotal:      valueobject.NewMoney(inv.Subtotal).Display(),
		ReturnTotal:   valueobject.NewMoney(inv.ReturnTotal).Display(),
		HasReturns:    inv.ReturnTotal.IsPositive(),
		Discount:      valueobject.NewMoney(inv.DiscountAmount).Display(),
		HasDiscount:   inv.DiscountAmount.IsPositive(),
		Total:         valueobject.NewMoney(inv.Total).Display(),
		AmountPaid:    valueobject.NewMoney(inv.AmountPaid).Display(),
		Outstanding:   valueobject.NewMoney(inv.Outstanding()).Display(),
		Status:        inv.Status.String(),
	}

	cgstTotal := valueobject.ZeroMoney()
	for i := range inv.Items {
		item := &inv.Items[i]
		split := lineTaxSplit(inv, item)
		cgstTotal = cgstTotal.Add(split.cgst)

		data.Lines = append(data.Lines, printLine{
			ProductName: item.ProductName,
			Base:        item.Base,
			HSNCode:     item.HSNCode,
			Colour:      item.Colour,
			Quantity:    item.SignedQuantity().String(),
			Unit:        item.Unit,
			Rate:        valueobject.NewMoney(item.UnitPrice).Fixed(),
			Amount:      valueobject.NewMoney(item.SignedTotal()).Fixed(),
			CGSTRate:    split.halfRate.String(),
			CGSTAmount:  split.cgst.Fixed(),
			IsReturn:    item.IsReturned,
		})
	}
	data.CGSTTotal = cgstTotal.Display()
	data.SGSTTotal = cgstTotal.Display()

	var buf bytes.Buffer
	if err := invoiceTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

var invoiceTemplate = template.Must(template.New("invoice").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: sans-serif; font-size: 12px; margin: 24px; }
  h1 { font-size: 18px; margin-bottom: 0; }
  .muted { color: #555; }
  table { width: 100%; border-collapse: collapse; margin-top: 16px; }
  th, td { border: 1px solid #999; padding: 4px 6px; text-align: left; }
  td.num, th.num { text-align: right; }
  tr.return td { color: #a00; }
  .totals { margin-top: 12px; width: 40%; margin-left: auto; }
  .totals td { border: none; padding: 2px 6px; }
  .status { margin-top: 8px; text-transform: uppercase; font-weight: bold; }
</style>
</head>
<body>
  <h1>{{.Shop.Name}}</h1>
  <div class="muted">{{.Shop.Address}}{{if .Shop.Phone}} &middot; {{.Shop.Phone}}{{end}}</div>
  {{if .Shop.GSTIN}}<div class="muted">GSTIN: {{.Shop.GSTIN}}</div>{{end}}

  <p>
    <strong>Invoice {{.InvoiceNumber}}</strong><br>
    Date: {{.Date}}<br>
    Billed to: {{.CustomerName}}
  </p>

  <table>
    <tr>
      <th>Item</th><th>Base</th>{{if .WithGST}}<th>HSN</th>{{end}}<th>Colour</th>
      <th class="num">Qty</th><th>Unit</th><th class="num">Rate</th>
      {{if .WithGST}}<th class="num">CGST%</th><th class="num">CGST</th><th class="num">SGST</th>{{end}}
      <th class="num">Amount</th>
    </tr>
    {{range .Lines}}
    <tr{{if .IsReturn}} class="return"{{end}}>
      <td>{{.ProductName}}{{if .IsReturn}} (return){{end}}</td>
      <td>{{.Base}}</td>
      {{if $.WithGST}}<td>{{.HSNCode}}</td>{{end}}
      <td>{{.Colour}}</td>
      <td class="num">{{.Quantity}}</td>
      <td>{{.Unit}}</td>
      <td class="num">{{.Rate}}</td>
      {{if $.WithGST}}<td class="num">{{.CGSTRate}}</td><td class="num">{{.CGSTAmount}}</td><td class="num">{{.CGSTAmount}}</td>{{end}}
      <td class="num">{{.Amount}}</td>
    </tr>
    {{end}}
  </table>

  <table class="totals">
    <tr><td>Subtotal</td><td class="num">{{.Subtotal}}</td></tr>
    {{if .HasReturns}}<tr><td>Returns</td><td class="num">-{{.ReturnTotal}}</td></tr>{{end}}
    {{if .HasDiscount}}<tr><td>Discount</td><td class="num">-{{.Discount}}</td></tr>{{end}}
    {{if .WithGST}}
    <tr><td>CGST</td><td class="num">{{.CGSTTotal}}</td></tr>
    <tr><td>SGST</td><td class="num">{{.SGSTTotal}}</td></tr>
    {{end}}
    <tr><td><strong>Total</strong></td><td class="num"><strong>{{.Total}}</strong></td></tr>
    <tr><td>Paid</td><td class="num">{{.AmountPaid}}</td></tr>
    <tr><td>Balance</td><td class="num">{{.Outstanding}}</td></tr>
  </table>

  <div class="status">{{.Status}}</div>
</body>
</html>`))
