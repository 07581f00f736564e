package invoices

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/laskalegacy/storefront-backend/internal/inquiries"
	"github.com/laskalegacy/storefront-backend/internal/pricing"
	pkgerrors "github.com/laskalegacy/storefront-backend/pkg/errors"
	"github.com/laskalegacy/storefront-backend/pkg/logger"
)

// BlobWriter is the storage surface invoice PDFs are written to.
type BlobWriter interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
}

// InquiryReader loads and annotates stored inquiries.
type InquiryReader interface {
	Get(ctx context.Context, id string) (*inquiries.Inquiry, error)
	SetInvoiceURL(ctx context.Context, id, url string) (*inquiries.Inquiry, error)
}

// CreateInput selects the invoice source. A non-empty InquiryID loads the
// stored inquiry and trusts its frozen totals; otherwise Items and Route are
// priced from scratch. Totals, when set, override either path.
type CreateInput struct {
	InquiryID string
	Items     []pricing.Item
	Route     string
	Client    *inquiries.Client
	Shipping  *inquiries.Shipping
	Totals    *inquiries.Totals
}

// Result is the stored invoice location.
type Result struct {
	URL string `json:"url"`
}

// Service renders invoices and stores the PDF bytes in blob storage under
// invoices/.
type Service struct {
	renderer  *Renderer
	blobs     BlobWriter
	inquiries InquiryReader
	pricing   *pricing.Calculator
	logg      *logger.Logger
	now       func() time.Time
	randomNum func() int
}

func NewService(renderer *Renderer, blobs BlobWriter, reader InquiryReader, calc *pricing.Calculator, logg *logger.Logger) *Service {
	return &Service{
		renderer:  renderer,
		blobs:     blobs,
		inquiries: reader,
		pricing:   calc,
		logg:      logg,
		now:       time.Now,
		randomNum: func() int { return rand.Intn(900) + 100 },
	}
}

// Create builds the invoice document, renders it, and stores the PDF. The
// whole operation succeeds or nothing is stored.
func (s *Service) Create(ctx context.Context, input CreateInput) (*Result, error) {
	doc, key, inquiryID, err := s.buildDocument(ctx, input)
	if err != nil {
		return nil, err
	}

	data, err := s.renderer.Render(ctx, doc)
	if err != nil {
		return nil, err
	}

	url, err := s.blobs.Put(ctx, key, "application/pdf", data)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStore, err, "storing invoice pdf")
	}

	if inquiryID != "" {
		// The PDF is already stored; losing the back-reference is
		// recoverable through /store-invoice-url, so log instead of failing.
		if _, err := s.inquiries.SetInvoiceURL(ctx, inquiryID, url); err != nil && s.logg != nil {
			s.logg.Error(s.logg.WithInquiryID(ctx, inquiryID), "invoice.url_not_persisted", err)
		}
	}

	return &Result{URL: url}, nil
}

func (s *Service) buildDocument(ctx context.Context, input CreateInput) (Document, string, string, error) {
	if input.InquiryID != "" {
		inquiry, err := s.inquiries.Get(ctx, input.InquiryID)
		if err != nil {
			return Document{}, "", "", err
		}

		totals := inquiry.Totals
		if input.Totals != nil {
			totals = *input.Totals
		}
		client := input.Client
		if client == nil {
			c := inquiry.Client
			client = &c
		}

		doc := Document{
			Number: numberFromInquiryID(inquiry.ID, s.randomNum),
			Date:   s.now(),
			Client: client,
			Lines:  inquiry.Items,
			Shipping: &ShippingLine{
				RouteCode: inquiry.Shipping.Route,
				Cost:      totals.Shipping,
			},
			Totals: totals,
		}
		applyShippingOverride(&doc, input.Shipping)
		return doc, fmt.Sprintf("invoices/invoice-%s.pdf", inquiry.ID), inquiry.ID, nil
	}

	if len(input.Items) == 0 {
		return Document{}, "", "", pkgerrors.New(pkgerrors.CodeValidation, "items are required")
	}

	quote, err := s.pricing.Quote(input.Items, input.Route)
	if err != nil {
		return Document{}, "", "", err
	}

	totals := inquiries.Totals{
		Products: quote.ProductTotal,
		Shipping: quote.ShippingCost,
		Total:    quote.GrandTotal,
	}
	if input.Totals != nil {
		totals = *input.Totals
	}

	doc := Document{
		Number: fmt.Sprintf("%03d", s.randomNum()),
		Date:   s.now(),
		Client: input.Client,
		Lines:  quote.Lines,
		Shipping: &ShippingLine{
			RouteCode: quote.Route,
			Cost:      totals.Shipping,
		},
		Totals: totals,
	}
	applyShippingOverride(&doc, input.Shipping)
	return doc, fmt.Sprintf("invoices/invoice-%d.pdf", s.now().UnixMilli()), "", nil
}

// applyShippingOverride lets the caller pin the shipping row independently of
// the stored or recomputed route and cost.
func applyShippingOverride(doc *Document, shipping *inquiries.Shipping) {
	if shipping == nil {
		return
	}
	doc.Shipping = &ShippingLine{
		RouteCode: shipping.Route,
		Cost:      shipping.Cost,
	}
}

// numberFromInquiryID derives a stable invoice number from the id's embedded
// timestamp, falling back to a random number for ids in another shape.
func numberFromInquiryID(id string, random func() int) string {
	parts := strings.Split(id, "-")
	if len(parts) >= 2 && len(parts[1]) >= 6 {
		return parts[1][len(parts[1])-6:]
	}
	return fmt.Sprintf("%03d", random())
}
