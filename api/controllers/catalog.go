package controllers

import (
	"net/http"

	"github.com/laskalegacy/storefront-backend/api/responses"
	"github.com/laskalegacy/storefront-backend/internal/catalog"
)

// GetProducts returns the product list in the shape the storefront renders.
func GetProducts(provider *catalog.Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteRaw(w, http.StatusOK, provider.Products())
	}
}

// GetShipping returns the route/size price table.
func GetShipping(provider *catalog.Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteRaw(w, http.StatusOK, provider.Shipping())
	}
}
