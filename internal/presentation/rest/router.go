package rest

import (
	"log/slog"
	"net/http"

	"github.com/Luyzz22/contract-analyzer-backend/pkg/auth"
)

// RouterConfig wires the HTTP surface of the service.
type RouterConfig struct {
	Contracts *ContractHandler
	Health    *HealthHandler
	JWT       *auth.JWTService
	Limiter   *TenantRateLimiter
	Observer  RequestObserver
	Metrics   http.Handler
	Logger    *slog.Logger
}

// NewRouter builds the service mux. Observe wraps the mux itself so the
// matched route pattern is visible to it after serving.
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	guard := func(roles []string) Middleware {
		return func(h http.Handler) http.Handler {
			return Chain(h, Authenticate(cfg.JWT, roles...), RateLimit(cfg.Limiter))
		}
	}
	cfg.Contracts.RegisterRoutes(mux, guard(auth.WriteRoles), guard(auth.ReadRoles))

	if cfg.Health != nil {
		cfg.Health.RegisterRoutes(mux)
	}
	if cfg.Metrics != nil {
		mux.Handle("GET /metrics", cfg.Metrics)
	}

	return Observe(cfg.Logger, cfg.Observer)(mux)
}
