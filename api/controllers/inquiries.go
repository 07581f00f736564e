package controllers

import (
	"context"
	"net/http"

	"github.com/laskalegacy/storefront-backend/api/responses"
	"github.com/laskalegacy/storefront-backend/api/validators"
	"github.com/laskalegacy/storefront-backend/internal/inquiries"
	"github.com/laskalegacy/storefront-backend/internal/pricing"
	pkgerrors "github.com/laskalegacy/storefront-backend/pkg/errors"
	"github.com/laskalegacy/storefront-backend/pkg/logger"
)

// InquiryService is the inquiry surface the HTTP layer depends on.
type InquiryService interface {
	Create(ctx context.Context, sub inquiries.Submission) (*inquiries.Inquiry, error)
	Get(ctx context.Context, id string) (*inquiries.Inquiry, error)
	List(ctx context.Context) ([]inquiries.Inquiry, error)
	SetStatus(ctx context.Context, id, status string) (*inquiries.Inquiry, error)
	SetInvoiceURL(ctx context.Context, id, url string) (*inquiries.Inquiry, error)
}

// cartItem mirrors a storefront cart row. The storefront can carry zeroed
// rows, so Qty is not constrained here; rows without a positive quantity are
// excluded during pricing.
type cartItem struct {
	Name string `json:"name" validate:"required"`
	Qty  int    `json:"qty"`
}

func toPricingItems(items []cartItem) []pricing.Item {
	out := make([]pricing.Item, 0, len(items))
	for _, item := range items {
		out = append(out, pricing.Item{Name: item.Name, Qty: item.Qty})
	}
	return out
}

type submitInquiryRequest struct {
	Name          string     `json:"name" validate:"required"`
	Email         string     `json:"email" validate:"required,email"`
	Phone         string     `json:"phone" validate:"required"`
	Address       string     `json:"address" validate:"required"`
	ShippingRoute string     `json:"shippingRoute" validate:"required"`
	Items         []cartItem `json:"items" validate:"required,min=1,dive"`
}

// SubmitInquiry accepts a public quote request, prices it, and persists the
// inquiry document.
func SubmitInquiry(svc InquiryService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inquiry service unavailable"))
			return
		}

		var body submitInquiryRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		inquiry, err := svc.Create(r.Context(), inquiries.Submission{
			Name:    body.Name,
			Email:   body.Email,
			Phone:   body.Phone,
			Address: body.Address,
			Route:   body.ShippingRoute,
			Items:   toPricingItems(body.Items),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteRaw(w, http.StatusOK, map[string]any{
			"success": true,
			"id":      inquiry.ID,
			"message": "Inquiry submitted successfully",
		})
	}
}

// GetInquiries lists every stored inquiry, newest first.
func GetInquiries(svc InquiryService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inquiry service unavailable"))
			return
		}

		list, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteRaw(w, http.StatusOK, list)
	}
}

// GetInquiry returns one inquiry by the id query parameter.
func GetInquiry(svc InquiryService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inquiry service unavailable"))
			return
		}

		id, err := validators.RequireQuery(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		inquiry, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteRaw(w, http.StatusOK, inquiry)
	}
}

type updateInquiryStatusRequest struct {
	ID     string `json:"id" validate:"required"`
	Status string `json:"status" validate:"required"`
}

// UpdateInquiryStatus moves an inquiry through the pending/reviewed/invoiced
// workflow.
func UpdateInquiryStatus(svc InquiryService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inquiry service unavailable"))
			return
		}

		var body updateInquiryStatusRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		inquiry, err := svc.SetStatus(r.Context(), body.ID, body.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteRaw(w, http.StatusOK, map[string]any{
			"success": true,
			"inquiry": inquiry,
		})
	}
}

type storeInvoiceURLRequest struct {
	ID         string `json:"id" validate:"required"`
	InvoiceURL string `json:"invoiceUrl" validate:"required,url"`
}

// StoreInvoiceURL records a generated invoice location on its inquiry.
func StoreInvoiceURL(svc InquiryService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inquiry service unavailable"))
			return
		}

		var body storeInvoiceURLRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		inquiry, err := svc.SetInvoiceURL(r.Context(), body.ID, body.InvoiceURL)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteRaw(w, http.StatusOK, map[string]any{
			"success": true,
			"inquiry": inquiry,
		})
	}
}
