package controllers

import (
	"context"
	"net/http"

	"github.com/laskalegacy/storefront-backend/api/responses"
	"github.com/laskalegacy/storefront-backend/api/validators"
	"github.com/laskalegacy/storefront-backend/internal/inquiries"
	"github.com/laskalegacy/storefront-backend/internal/invoices"
	pkgerrors "github.com/laskalegacy/storefront-backend/pkg/errors"
	"github.com/laskalegacy/storefront-backend/pkg/logger"
)

// InvoiceService renders and stores invoice PDFs.
type InvoiceService interface {
	Create(ctx context.Context, input invoices.CreateInput) (*invoices.Result, error)
}

type createInvoiceRequest struct {
	InquiryID string              `json:"inquiryId"`
	Items     []cartItem          `json:"items" validate:"omitempty,dive"`
	Route     string              `json:"route"`
	Client    *inquiries.Client   `json:"client"`
	Shipping  *inquiries.Shipping `json:"shipping"`
	Totals    *inquiries.Totals   `json:"totals"`
}

// CreateInvoice generates a PDF either from a stored inquiry or from a raw
// item list and returns the stored document's URL.
func CreateInvoice(svc InvoiceService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "invoice service unavailable"))
			return
		}

		var body createInvoiceRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Create(r.Context(), invoices.CreateInput{
			InquiryID: body.InquiryID,
			Items:     toPricingItems(body.Items),
			Route:     body.Route,
			Client:    body.Client,
			Shipping:  body.Shipping,
			Totals:    body.Totals,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteRaw(w, http.StatusOK, result)
	}
}
