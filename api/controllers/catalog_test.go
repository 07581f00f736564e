package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/laskalegacy/storefront-backend/internal/catalog"
	"github.com/laskalegacy/storefront-backend/pkg/enums"
)

func testProvider(t *testing.T) *catalog.Provider {
	t.Helper()
	provider, err := catalog.New(
		[]catalog.Product{
			{Name: "Stock Bridle", Price: 650, PudoSize: enums.PudoSizeM},
			{Name: "Bridle Bag", Price: 250, PudoSize: enums.PudoSizeXS},
		},
		catalog.ShippingTable{
			"locker-locker": {enums.PudoSizeXS: 60, enums.PudoSizeM: 80},
		},
	)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	return provider
}

func TestGetProductsRawArray(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/get-products", nil)
	resp := httptest.NewRecorder()
	GetProducts(testProvider(t)).ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var products []catalog.Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		t.Fatalf("expected a bare array: %v", err)
	}
	if len(products) != 2 || products[0].Name != "Stock Bridle" {
		t.Fatalf("unexpected products %+v", products)
	}
}

func TestGetShippingRawTable(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/get-shipping", nil)
	resp := httptest.NewRecorder()
	GetShipping(testProvider(t)).ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var table map[string]map[string]float64
	if err := json.NewDecoder(resp.Body).Decode(&table); err != nil {
		t.Fatalf("expected a bare object: %v", err)
	}
	if table["locker-locker"]["M"] != 80 {
		t.Fatalf("unexpected table %+v", table)
	}
}
