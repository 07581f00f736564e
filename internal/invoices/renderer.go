package invoices

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/laskalegacy/storefront-backend/internal/inquiries"
	"github.com/laskalegacy/storefront-backend/internal/pricing"
	"github.com/laskalegacy/storefront-backend/pkg/config"
	pkgerrors "github.com/laskalegacy/storefront-backend/pkg/errors"
	"github.com/laskalegacy/storefront-backend/pkg/logger"
)

// ShippingLine is the optional shipping row on an invoice.
type ShippingLine struct {
	RouteCode string
	Cost      float64
}

// Document is everything the renderer needs to draw one invoice.
type Document struct {
	Number   string
	Date     time.Time
	Client   *inquiries.Client
	Lines    []pricing.Line
	Shipping *ShippingLine
	Totals   inquiries.Totals
}

// Fixed A4 layout geometry in millimetres.
const (
	pageLeft    = 15.0
	pageRight   = 195.0
	headerH     = 30.0
	rowH        = 8.0
	pageBreakY  = 262.0
	footerY     = 282.0
	colItemX    = pageLeft
	colQtyX     = 118.0
	colUnitX    = 138.0
	colTotalX   = 166.0
	colUnitW    = 28.0
	colTotalW   = 29.0
)

var routeLabels = map[string]string{
	"locker-locker": "Locker to Locker",
	"locker-door":   "Locker to Door",
	"locker-kiosk":  "Locker to Kiosk",
	"kiosk-door":    "Kiosk to Door",
}

// RouteLabel maps a route code to its human-readable name. Unknown codes pass
// through unchanged.
func RouteLabel(code string) string {
	if label, ok := routeLabels[code]; ok {
		return label
	}
	return code
}

func money(v float64) string {
	return fmt.Sprintf("R%.2f", v)
}

// Renderer draws fixed-position invoice PDFs. It is stateless across renders;
// concurrent calls are safe.
type Renderer struct {
	businessName string
	contactLine  string
	logoPath     string
	logg         *logger.Logger
}

func NewRenderer(cfg config.InvoiceConfig, logg *logger.Logger) *Renderer {
	return &Renderer{
		businessName: cfg.BusinessName,
		contactLine:  cfg.ContactLine,
		logoPath:     cfg.LogoPath,
		logg:         logg,
	}
}

// Render serializes the document to PDF bytes. The drawn content is fully
// determined by the document; the byte stream itself can differ between
// renders because object ordering inside the file is not fixed.
func (r *Renderer) Render(ctx context.Context, doc Document) ([]byte, error) {
	if len(doc.Lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeRender, "invoice has no line items")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	// Stamp the invoice date rather than the wall clock so the metadata
	// follows the document, not the render time.
	pdf.SetCreationDate(doc.Date)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(pageLeft, 0, 210-pageRight)
	pdf.AddPage()

	r.drawHeader(ctx, pdf)

	y := headerH + 12.0
	y = r.drawTitleBlock(pdf, doc, y)
	y = r.drawClientBlock(pdf, doc.Client, y)

	y = r.drawTableHeader(pdf, y)
	for _, line := range doc.Lines {
		if y > pageBreakY {
			r.drawFooter(pdf)
			pdf.AddPage()
			r.drawHeader(ctx, pdf)
			y = r.drawTableHeader(pdf, headerH+12.0)
		}
		y = r.drawItemRow(pdf, line, y)
	}
	if doc.Shipping != nil {
		if y > pageBreakY {
			r.drawFooter(pdf)
			pdf.AddPage()
			r.drawHeader(ctx, pdf)
			y = r.drawTableHeader(pdf, headerH+12.0)
		}
		y = r.drawShippingRow(pdf, *doc.Shipping, y)
	}

	if y > pageBreakY-3*rowH {
		r.drawFooter(pdf)
		pdf.AddPage()
		r.drawHeader(ctx, pdf)
		y = headerH + 12.0
	}
	r.drawTotals(pdf, doc.Totals, y+4)
	r.drawFooter(pdf)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeRender, err, "serializing invoice pdf")
	}
	return buf.Bytes(), nil
}

func (r *Renderer) drawHeader(ctx context.Context, pdf *gofpdf.Fpdf) {
	pdf.SetFillColor(54, 38, 27)
	pdf.Rect(0, 0, 210, headerH, "F")

	nameX := pageLeft
	if r.logoPath != "" {
		if _, err := os.Stat(r.logoPath); err == nil {
			pdf.ImageOptions(r.logoPath, pageLeft, 5, 20, 20, false, gofpdf.ImageOptions{ReadDpi: true}, 0, "")
			nameX = pageLeft + 26
		} else if r.logg != nil {
			r.logg.Warn(r.logg.WithField(ctx, "logo_path", r.logoPath), "invoice.logo_missing")
		}
	}

	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 22)
	pdf.Text(nameX, 18, r.businessName)
}

func (r *Renderer) drawTitleBlock(pdf *gofpdf.Fpdf, doc Document, y float64) float64 {
	pdf.SetTextColor(40, 40, 40)
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Text(pageLeft, y, "Invoice #"+doc.Number)

	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(90, 90, 90)
	date := doc.Date.Format("2 January 2006")
	pdf.Text(pageRight-pdf.GetStringWidth(date), y, date)

	return y + 10
}

func (r *Renderer) drawClientBlock(pdf *gofpdf.Fpdf, client *inquiries.Client, y float64) float64 {
	if client == nil {
		return y + 2
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetTextColor(40, 40, 40)
	pdf.Text(pageLeft, y, "Billed to")
	y += 6

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(70, 70, 70)
	for _, line := range clientLines(client) {
		pdf.Text(pageLeft, y, line)
		y += 5
	}
	return y + 4
}

// clientLines flattens the client block, splitting the address into one line
// per comma-separated segment.
func clientLines(client *inquiries.Client) []string {
	lines := make([]string, 0, 6)
	if client.Name != "" {
		lines = append(lines, client.Name)
	}
	if client.Email != "" {
		lines = append(lines, client.Email)
	}
	if client.Phone != "" {
		lines = append(lines, client.Phone)
	}
	for _, segment := range strings.Split(client.Address, ",") {
		if trimmed := strings.TrimSpace(segment); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}

func (r *Renderer) drawTableHeader(pdf *gofpdf.Fpdf, y float64) float64 {
	pdf.SetFillColor(54, 38, 27)
	pdf.Rect(pageLeft, y, pageRight-pageLeft, rowH, "F")

	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 10)
	textY := y + rowH - 2.5
	pdf.Text(colItemX+2, textY, "Item")
	pdf.Text(colQtyX, textY, "Qty")
	pdf.Text(colUnitX, textY, "Unit Price")
	pdf.Text(colTotalX, textY, "Line Total")

	return y + rowH
}

func (r *Renderer) drawItemRow(pdf *gofpdf.Fpdf, line pricing.Line, y float64) float64 {
	pdf.SetTextColor(50, 50, 50)
	pdf.SetFont("Helvetica", "", 10)
	textY := y + rowH - 2.5

	pdf.Text(colItemX+2, textY, line.Name)
	pdf.Text(colQtyX, textY, fmt.Sprintf("%d", line.Qty))
	rightAlign(pdf, colUnitX, colUnitW, textY, money(line.Price))
	rightAlign(pdf, colTotalX, colTotalW, textY, money(line.LineTotal))

	pdf.SetDrawColor(225, 220, 214)
	pdf.Line(pageLeft, y+rowH, pageRight, y+rowH)
	return y + rowH
}

func (r *Renderer) drawShippingRow(pdf *gofpdf.Fpdf, shipping ShippingLine, y float64) float64 {
	pdf.SetTextColor(50, 50, 50)
	pdf.SetFont("Helvetica", "I", 10)
	textY := y + rowH - 2.5

	pdf.Text(colItemX+2, textY, "Shipping - "+RouteLabel(shipping.RouteCode))
	rightAlign(pdf, colTotalX, colTotalW, textY, money(shipping.Cost))

	pdf.SetDrawColor(225, 220, 214)
	pdf.Line(pageLeft, y+rowH, pageRight, y+rowH)
	return y + rowH
}

func (r *Renderer) drawTotals(pdf *gofpdf.Fpdf, totals inquiries.Totals, y float64) float64 {
	labelX := colUnitX
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(70, 70, 70)

	pdf.Text(labelX, y, "Subtotal")
	rightAlign(pdf, colTotalX, colTotalW, y, money(totals.Products))
	y += 6

	pdf.Text(labelX, y, "Shipping")
	rightAlign(pdf, colTotalX, colTotalW, y, money(totals.Shipping))
	y += 3

	pdf.SetDrawColor(54, 38, 27)
	pdf.Line(labelX, y, pageRight, y)
	y += 6

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(40, 40, 40)
	pdf.Text(labelX, y, "Total")
	rightAlign(pdf, colTotalX, colTotalW, y, money(totals.Total))
	return y
}

func (r *Renderer) drawFooter(pdf *gofpdf.Fpdf) {
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(120, 120, 120)
	width := pdf.GetStringWidth(r.contactLine)
	pdf.Text((210-width)/2, footerY, r.contactLine)
}

func rightAlign(pdf *gofpdf.Fpdf, x, w, y float64, text string) {
	pdf.Text(x+w-pdf.GetStringWidth(text), y, text)
}
