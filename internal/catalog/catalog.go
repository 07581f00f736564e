package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/laskalegacy/storefront-backend/pkg/config"
	"github.com/laskalegacy/storefront-backend/pkg/enums"
)

// Product is one immutable catalog entry. Name is the unique key line items
// resolve against.
type Product struct {
	Name     string         `json:"name"`
	Price    float64        `json:"price"`
	PudoSize enums.PudoSize `json:"pudoSize"`
}

// ShippingTable maps route -> size -> cost.
type ShippingTable map[string]map[enums.PudoSize]float64

// Provider serves the static catalog. Constructed once at startup and shared
// read-only across requests.
type Provider struct {
	products []Product
	byName   map[string]Product
	shipping ShippingTable
}

// Load reads and validates the catalog files referenced by the config.
func Load(cfg config.CatalogConfig) (*Provider, error) {
	var products []Product
	if err := readJSONFile(cfg.ProductsPath, &products); err != nil {
		return nil, fmt.Errorf("loading products: %w", err)
	}

	var shipping ShippingTable
	if err := readJSONFile(cfg.ShippingPath, &shipping); err != nil {
		return nil, fmt.Errorf("loading shipping table: %w", err)
	}

	return New(products, shipping)
}

// New validates the supplied catalog data and builds a provider.
func New(products []Product, shipping ShippingTable) (*Provider, error) {
	if len(products) == 0 {
		return nil, fmt.Errorf("catalog has no products")
	}

	byName := make(map[string]Product, len(products))
	for _, p := range products {
		if p.Name == "" {
			return nil, fmt.Errorf("product with empty name")
		}
		if _, exists := byName[p.Name]; exists {
			return nil, fmt.Errorf("duplicate product name %q", p.Name)
		}
		if p.Price < 0 {
			return nil, fmt.Errorf("product %q has negative price", p.Name)
		}
		if !p.PudoSize.IsValid() {
			return nil, fmt.Errorf("product %q has invalid pudo size %q", p.Name, p.PudoSize)
		}
		byName[p.Name] = p
	}

	if len(shipping) == 0 {
		return nil, fmt.Errorf("shipping table is empty")
	}
	for route, costs := range shipping {
		if route == "" {
			return nil, fmt.Errorf("shipping route with empty name")
		}
		for size, cost := range costs {
			if !size.IsValid() {
				return nil, fmt.Errorf("shipping route %q has invalid size %q", route, size)
			}
			if cost < 0 {
				return nil, fmt.Errorf("shipping route %q has negative cost for size %q", route, size)
			}
		}
	}

	return &Provider{
		products: append([]Product(nil), products...),
		byName:   byName,
		shipping: shipping,
	}, nil
}

// Products returns the full catalog in file order.
func (p *Provider) Products() []Product {
	return append([]Product(nil), p.products...)
}

// Shipping returns the route/size cost table.
func (p *Provider) Shipping() ShippingTable {
	return p.shipping
}

// Find resolves a product by exact name.
func (p *Provider) Find(name string) (Product, bool) {
	product, ok := p.byName[name]
	return product, ok
}

// Cost looks up the shipping cost for a route and size. The second return is
// false when either the route or the size entry is missing.
func (p *Provider) Cost(route string, size enums.PudoSize) (float64, bool) {
	costs, ok := p.shipping[route]
	if !ok {
		return 0, false
	}
	cost, ok := costs[size]
	return cost, ok
}

func readJSONFile(path string, dest any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}
