package inquiries

import (
	"time"

	"github.com/laskalegacy/storefront-backend/internal/pricing"
	"github.com/laskalegacy/storefront-backend/pkg/enums"
)

// Client identifies the customer who submitted an inquiry.
type Client struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Shipping captures the route chosen at submission time and the cost derived
// from the cart's largest item size.
type Shipping struct {
	Route string         `json:"route"`
	Size  enums.PudoSize `json:"size"`
	Cost  float64        `json:"cost"`
}

// Totals is the priced summary frozen at creation.
type Totals struct {
	Products float64 `json:"products"`
	Shipping float64 `json:"shipping"`
	Total    float64 `json:"total"`
}

// Inquiry is the stored order-request document. Everything except Status and
// InvoiceURL is immutable after creation.
type Inquiry struct {
	ID         string              `json:"id"`
	Status     enums.InquiryStatus `json:"status"`
	CreatedAt  time.Time           `json:"createdAt"`
	Client     Client              `json:"client"`
	Shipping   Shipping            `json:"shipping"`
	Items      []pricing.Line      `json:"items"`
	Totals     Totals              `json:"totals"`
	InvoiceURL string              `json:"invoiceUrl,omitempty"`
}
