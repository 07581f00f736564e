package pricing

import (
	"github.com/laskalegacy/storefront-backend/internal/catalog"
	"github.com/laskalegacy/storefront-backend/pkg/enums"
	pkgerrors "github.com/laskalegacy/storefront-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

// Item is one requested cart entry prior to catalog resolution.
type Item struct {
	Name string
	Qty  int
}

// Line is a resolved, priced cart entry.
type Line struct {
	Name      string         `json:"name"`
	Qty       int            `json:"qty"`
	Price     float64        `json:"price"`
	LineTotal float64        `json:"lineTotal"`
	PudoSize  enums.PudoSize `json:"pudoSize"`
}

// Quote is the full pricing result for a cart and route.
type Quote struct {
	Lines        []Line
	ProductTotal float64
	ShippingCost float64
	GrandTotal   float64
	LargestSize  enums.PudoSize
	Route        string
}

// Calculator prices carts against the static catalog. Arithmetic runs on
// decimals; floats appear only in the result.
type Calculator struct {
	catalog *catalog.Provider
}

func NewCalculator(provider *catalog.Provider) *Calculator {
	return &Calculator{catalog: provider}
}

// Quote resolves every item against the catalog, sums line totals, and looks
// up the shipping cost for the route at the cart's largest size. Items with a
// non-positive quantity are dropped before resolution; an unresolvable name is
// always fatal. The whole cart prices or none of it does.
func (c *Calculator) Quote(items []Item, route string) (*Quote, error) {
	selected := make([]Item, 0, len(items))
	for _, item := range items {
		if item.Qty > 0 {
			selected = append(selected, item)
		}
	}
	if len(selected) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no valid products selected")
	}

	lines := make([]Line, 0, len(selected))
	productTotal := decimal.Zero
	largest := enums.PudoSizeXS
	for _, item := range selected {
		product, ok := c.catalog.Find(item.Name)
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeProductNotFound, "product not found: "+item.Name).
				WithDetails(map[string]any{"name": item.Name})
		}

		price := decimal.NewFromFloat(product.Price)
		lineTotal := price.Mul(decimal.NewFromInt(int64(item.Qty)))
		productTotal = productTotal.Add(lineTotal)
		largest = largest.Max(product.PudoSize)

		lines = append(lines, Line{
			Name:      product.Name,
			Qty:       item.Qty,
			Price:     product.Price,
			LineTotal: lineTotal.InexactFloat64(),
			PudoSize:  product.PudoSize,
		})
	}

	cost, ok := c.catalog.Cost(route, largest)
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidRoute, "invalid shipping route or size").
			WithDetails(map[string]any{"route": route, "size": largest.String()})
	}

	shippingCost := decimal.NewFromFloat(cost)
	grandTotal := productTotal.Add(shippingCost)

	return &Quote{
		Lines:        lines,
		ProductTotal: productTotal.InexactFloat64(),
		ShippingCost: shippingCost.InexactFloat64(),
		GrandTotal:   grandTotal.InexactFloat64(),
		LargestSize:  largest,
		Route:        route,
	}, nil
}
