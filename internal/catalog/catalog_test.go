package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/laskalegacy/storefront-backend/pkg/config"
	"github.com/laskalegacy/storefront-backend/pkg/enums"
)

func testProducts() []Product {
	return []Product{
		{Name: "Stock Bridle", Price: 650, PudoSize: enums.PudoSizeM},
		{Name: "Paracord Reins", Price: 450, PudoSize: enums.PudoSizeS},
		{Name: "Saddle Stand", Price: 500, PudoSize: enums.PudoSizeXL},
	}
}

func testShipping() ShippingTable {
	return ShippingTable{
		"locker-locker": {enums.PudoSizeS: 60, enums.PudoSizeM: 80, enums.PudoSizeXL: 150},
		"locker-door":   {enums.PudoSizeM: 100},
	}
}

func TestNewValidatesCatalog(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		products []Product
		shipping ShippingTable
	}{
		{"empty products", nil, testShipping()},
		{"duplicate name", append(testProducts(), Product{Name: "Stock Bridle", Price: 1, PudoSize: enums.PudoSizeS}), testShipping()},
		{"negative price", []Product{{Name: "X", Price: -1, PudoSize: enums.PudoSizeS}}, testShipping()},
		{"invalid size", []Product{{Name: "X", Price: 1, PudoSize: "XXL"}}, testShipping()},
		{"empty shipping", testProducts(), ShippingTable{}},
		{"negative cost", testProducts(), ShippingTable{"r": {enums.PudoSizeM: -5}}},
		{"invalid shipping size", testProducts(), ShippingTable{"r": {"HUGE": 5}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(tc.products, tc.shipping); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestFindAndCost(t *testing.T) {
	t.Parallel()

	provider, err := New(testProducts(), testShipping())
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	product, ok := provider.Find("Stock Bridle")
	if !ok || product.Price != 650 || product.PudoSize != enums.PudoSizeM {
		t.Fatalf("unexpected product %+v ok=%v", product, ok)
	}
	if _, ok := provider.Find("Unknown"); ok {
		t.Fatalf("expected miss for unknown product")
	}

	cost, ok := provider.Cost("locker-locker", enums.PudoSizeM)
	if !ok || cost != 80 {
		t.Fatalf("unexpected cost %v ok=%v", cost, ok)
	}
	if _, ok := provider.Cost("no-such-route", enums.PudoSizeM); ok {
		t.Fatalf("expected miss for unknown route")
	}
	if _, ok := provider.Cost("locker-door", enums.PudoSizeXL); ok {
		t.Fatalf("expected miss for size absent under route")
	}
}

func TestLoadReadsFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	productsPath := filepath.Join(dir, "products.json")
	shippingPath := filepath.Join(dir, "shipping.json")

	writeFile(t, productsPath, `[{"name":"Tack Bag","price":200,"pudoSize":"S"}]`)
	writeFile(t, shippingPath, `{"locker-locker":{"S":60}}`)

	provider, err := Load(config.CatalogConfig{ProductsPath: productsPath, ShippingPath: shippingPath})
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if got := provider.Products(); len(got) != 1 || got[0].Name != "Tack Bag" {
		t.Fatalf("unexpected products %+v", got)
	}
	if cost, ok := provider.Cost("locker-locker", enums.PudoSizeS); !ok || cost != 60 {
		t.Fatalf("unexpected cost %v ok=%v", cost, ok)
	}
}

func TestLoadRejectsMalformedFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	productsPath := filepath.Join(dir, "products.json")
	shippingPath := filepath.Join(dir, "shipping.json")

	writeFile(t, productsPath, `{"not":"a list"}`)
	writeFile(t, shippingPath, `{}`)

	if _, err := Load(config.CatalogConfig{ProductsPath: productsPath, ShippingPath: shippingPath}); err == nil {
		t.Fatalf("expected parse error")
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
