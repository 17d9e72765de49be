package rest

import (
	"log/slog"
	"net/http"

	"github.com/cedarmondenterprises/patapesa-loan-sub000/pkg/auth"
)

// RouterConfig collects the handlers and cross-cutting dependencies of the
// REST surface.
type RouterConfig struct {
	Borrowers      *BorrowerHandler
	Loans          *LoanHandler
	Products       *ProductHandler
	Health         *HealthHandler
	MetricsHandler http.Handler
	JWTService     *auth.JWTService
	Logger         *slog.Logger
	RequestsPerSec int
}

// NewRouter assembles the full HTTP handler: all routes plus logging, rate
// limiting, and JWT auth. Probes and metrics stay unauthenticated.
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	cfg.Health.RegisterRoutes(mux)
	cfg.Borrowers.RegisterRoutes(mux)
	cfg.Products.RegisterRoutes(mux)
	cfg.Loans.RegisterRoutes(mux)
	if cfg.MetricsHandler != nil {
		mux.Handle("GET /metrics", cfg.MetricsHandler)
	}

	rps := cfg.RequestsPerSec
	if rps <= 0 {
		rps = 100
	}

	return Chain(mux,
		LoggingMiddleware(cfg.Logger),
		RateLimitMiddleware(NewRateLimiter(rps)),
		AuthMiddleware(cfg.JWTService, []string{"/healthz", "/readyz", "/metrics"}),
	)
}
