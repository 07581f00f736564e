package controllers

import (
	"net/http"
	"time"

	"github.com/laskalegacy/storefront-backend/api/responses"
	"github.com/laskalegacy/storefront-backend/api/validators"
	pkgauth "github.com/laskalegacy/storefront-backend/pkg/auth"
	"github.com/laskalegacy/storefront-backend/pkg/config"
	pkgerrors "github.com/laskalegacy/storefront-backend/pkg/errors"
	"github.com/laskalegacy/storefront-backend/pkg/logger"
	"github.com/laskalegacy/storefront-backend/pkg/security"
)

type adminLoginRequest struct {
	Password string `json:"password" validate:"required"`
}

// AdminLogin verifies the shared admin credential and issues the signed
// session cookie the admin endpoints require.
func AdminLogin(cfg *config.Config, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body adminLoginRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if !security.VerifyCredential(body.Password, cfg.Admin.Password) {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials"))
			return
		}

		token, err := pkgauth.MintSessionToken(cfg.Session, time.Now())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "issuing session"))
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     cfg.Session.CookieName,
			Value:    token,
			Path:     "/",
			MaxAge:   int(cfg.Session.TTL.Seconds()),
			HttpOnly: true,
			Secure:   cfg.App.IsProd(),
			SameSite: http.SameSiteLaxMode,
		})

		responses.WriteRaw(w, http.StatusOK, map[string]bool{"ok": true})
	}
}
