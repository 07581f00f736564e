package validators

import (
	"net/http"
	"strings"

	pkgerrors "github.com/laskalegacy/storefront-backend/pkg/errors"
)

// RequireQuery returns the trimmed value of a query parameter, failing with a
// validation error when it is absent or blank.
func RequireQuery(r *http.Request, key string) (string, error) {
	value := strings.TrimSpace(r.URL.Query().Get(key))
	if value == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "missing query parameter").WithDetails(map[string]any{"field": key})
	}
	return value, nil
}
