package middleware

import (
	"net/http"

	"github.com/laskalegacy/storefront-backend/api/responses"
	pkgauth "github.com/laskalegacy/storefront-backend/pkg/auth"
	"github.com/laskalegacy/storefront-backend/pkg/config"
	pkgerrors "github.com/laskalegacy/storefront-backend/pkg/errors"
	"github.com/laskalegacy/storefront-backend/pkg/logger"
)

// Admin validates the signed session cookie before any request processing. A
// missing or invalid cookie short-circuits with 401 and the request body is
// never read.
func Admin(cfg config.SessionConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(cfg.CookieName)
			if err != nil || cookie.Value == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgauth.ParseSessionToken(cfg, cookie.Value)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid session"))
				return
			}

			ctx := r.Context()
			if logg != nil {
				ctx = logg.WithFields(ctx, map[string]any{
					"actor_role": claims.Role,
					"session_id": claims.ID,
				})
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
