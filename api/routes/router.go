package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/laskalegacy/storefront-backend/api/controllers"
	"github.com/laskalegacy/storefront-backend/api/middleware"
	"github.com/laskalegacy/storefront-backend/internal/catalog"
	"github.com/laskalegacy/storefront-backend/pkg/config"
	"github.com/laskalegacy/storefront-backend/pkg/logger"
	"github.com/laskalegacy/storefront-backend/pkg/metrics"
	"github.com/laskalegacy/storefront-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	provider *catalog.Provider,
	blobPinger controllers.Pinger,
	redisClient *redis.Client,
	inquiryService controllers.InquiryService,
	invoiceService controllers.InvoiceService,
	registry *prometheus.Registry,
) http.Handler {
	r := chi.NewRouter()

	var httpMetrics *metrics.HTTPMetrics
	if registry != nil {
		httpMetrics = metrics.NewHTTPMetrics(registry)
	}

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(),
	)

	// A typed nil *redis.Client must not reach the interface-valued params.
	loginLimit := func(next http.Handler) http.Handler { return next }
	var redisPinger controllers.Pinger
	if redisClient != nil {
		policy := middleware.NewLoginRateLimitPolicy(cfg.RateLimit.LoginWindow, cfg.RateLimit.LoginIPLimit)
		loginLimit = middleware.LoginRateLimit(policy, redisClient, logg)
		redisPinger = redisClient
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, blobPinger, redisPinger))
	})

	if registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.With(loginLimit).Post("/admin-login", controllers.AdminLogin(cfg, logg))
		r.Post("/submit-inquiry", controllers.SubmitInquiry(inquiryService, logg))
		r.Get("/get-products", controllers.GetProducts(provider))
		r.Get("/get-shipping", controllers.GetShipping(provider))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Admin(cfg.Session, logg))
			r.Get("/get-inquiries", controllers.GetInquiries(inquiryService, logg))
			r.Get("/get-inquiry", controllers.GetInquiry(inquiryService, logg))
			r.Post("/update-inquiry-status", controllers.UpdateInquiryStatus(inquiryService, logg))
			r.Post("/store-invoice-url", controllers.StoreInvoiceURL(inquiryService, logg))
			r.Post("/create-invoice", controllers.CreateInvoice(invoiceService, logg))
		})
	})

	return r
}
