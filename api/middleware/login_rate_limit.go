package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/laskalegacy/storefront-backend/api/responses"
	pkgerrors "github.com/laskalegacy/storefront-backend/pkg/errors"
	"github.com/laskalegacy/storefront-backend/pkg/logger"
)

// rateLimiterStore owns both the counters and the key namespace; the
// middleware never builds raw keys itself.
type rateLimiterStore interface {
	IncrWithTTL(context.Context, string, time.Duration) (int64, error)
	RateLimitKey(scope string) string
}

// LoginRateLimitPolicy defines per-IP throttling for the admin login endpoint.
type LoginRateLimitPolicy struct {
	window  time.Duration
	ipLimit int
}

func NewLoginRateLimitPolicy(window time.Duration, ipLimit int) LoginRateLimitPolicy {
	return LoginRateLimitPolicy{window: window, ipLimit: ipLimit}
}

func (p LoginRateLimitPolicy) enabled() bool {
	return p.window > 0 && p.ipLimit > 0
}

// LoginRateLimit counts login attempts per client IP. With no counter store
// wired (redis disabled) the middleware is a no-op.
func LoginRateLimit(policy LoginRateLimitPolicy, store rateLimiterStore, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !policy.enabled() || store == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			ip := clientIP(r)
			if ip == "" {
				next.ServeHTTP(w, r)
				return
			}
			key := store.RateLimitKey("login:ip:" + ip)

			count, err := store.IncrWithTTL(ctx, key, policy.window)
			if err != nil {
				// The counter store being down should not lock admins out.
				if logg != nil {
					logg.Warn(ctx, "login.rate_limit.unavailable")
				}
				next.ServeHTTP(w, r)
				return
			}
			if count > int64(policy.ipLimit) {
				if logg != nil {
					logCtx := logg.WithFields(ctx, map[string]any{
						"ip":             ip,
						"attempts":       count,
						"limit":          policy.ipLimit,
						"window_seconds": int(policy.window.Seconds()),
					})
					logg.Warn(logCtx, "login.rate_limit.blocked")
				}
				responses.WriteError(ctx, nil, w, pkgerrors.New(pkgerrors.CodeRateLimit, "rate limit exceeded"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	if header := r.Header.Get("X-Forwarded-For"); header != "" {
		for _, part := range strings.Split(header, ",") {
			if ip := strings.TrimSpace(part); ip != "" {
				return ip
			}
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}
