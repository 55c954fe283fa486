package rest

import (
	"context"
	"log/slog"
	"net/http"
	"runtime/debug"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/Luyzz22/contract-analyzer-backend/pkg/auth"
)

// Middleware wraps an http.Handler.
type Middleware func(http.Handler) http.Handler

// Chain applies mws so that the first one is outermost.
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

// RequestObserver receives one observation per served request.
type RequestObserver interface {
	ObserveRequest(ctx context.Context, method, route string, status int, elapsed time.Duration)
}

// routeOf returns the matched ServeMux pattern, which is only known after
// the mux has served r.
func routeOf(r *http.Request) string {
	if r.Pattern != "" {
		return r.Pattern
	}
	return "unmatched"
}

var tracer = otel.Tracer("github.com/Luyzz22/contract-analyzer-backend/internal/presentation/rest")

// Observe traces, logs and records every request. It also turns handler
// panics into 500 responses.
func Observe(logger *slog.Logger, observer RequestObserver) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
			ctx, span := tracer.Start(ctx, r.Method+" "+r.URL.Path, trace.WithSpanKind(trace.SpanKindServer))
			defer span.End()
			r = r.WithContext(ctx)

			defer func() {
				if p := recover(); p != nil {
					logger.ErrorContext(r.Context(), "handler panic",
						slog.Any("panic", p),
						slog.String("stack", string(debug.Stack())),
					)
					writeError(rw, http.StatusInternalServerError, "internal", "internal error")
				}

				elapsed := time.Since(start)
				route := routeOf(r)
				span.SetName(route)
				span.SetAttributes(
					attribute.String("http.request.method", r.Method),
					attribute.String("http.route", route),
					attribute.Int("http.response.status_code", rw.status),
				)
				if rw.status >= http.StatusInternalServerError {
					span.SetStatus(codes.Error, http.StatusText(rw.status))
				}
				if observer != nil {
					observer.ObserveRequest(r.Context(), r.Method, route, rw.status, elapsed)
				}
				logger.InfoContext(r.Context(), "request",
					slog.String("method", r.Method),
					slog.String("route", route),
					slog.String("path", r.URL.Path),
					slog.Int("status", rw.status),
					slog.Int64("duration_ms", elapsed.Milliseconds()),
					slog.String("remote_addr", r.RemoteAddr),
					slog.String("trace_id", span.SpanContext().TraceID().String()),
				)
			}()

			next.ServeHTTP(rw, r)
		})
	}
}

// Authenticate validates the bearer token and requires one of roles.
func Authenticate(jwtService *auth.JWTService, roles ...string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := auth.BearerToken(r.Header.Get("Authorization"))
			if err != nil {
				writeError(w, http.StatusUnauthorized, "unauthenticated", err.Error())
				return
			}
			claims, err := jwtService.ValidateToken(token)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "unauthenticated", auth.ErrInvalidToken.Error())
				return
			}
			if len(roles) > 0 && !claims.HasAnyRole(roles...) {
				writeError(w, http.StatusForbidden, "forbidden", "insufficient permissions")
				return
			}
			next.ServeHTTP(w, r.WithContext(auth.ContextWithClaims(r.Context(), claims)))
		})
	}
}

// TenantRateLimiter keeps one token bucket per tenant.
type TenantRateLimiter struct {
	mu       sync.Mutex
	limiters map[uuid.UUID]*tenantLimiter
	limit    rate.Limit
	burst    int
	idleTTL  time.Duration
	lastGC   time.Time
	now      func() time.Time
}

type tenantLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewTenantRateLimiter allows rps sustained requests per tenant with bursts
// of burst. Buckets idle for ten minutes are dropped.
func NewTenantRateLimiter(rps float64, burst int) *TenantRateLimiter {
	return &TenantRateLimiter{
		limiters: make(map[uuid.UUID]*tenantLimiter),
		limit:    rate.Limit(rps),
		burst:    burst,
		idleTTL:  10 * time.Minute,
		now:      time.Now,
	}
}

// Allow consumes a token from the tenant's bucket.
func (l *TenantRateLimiter) Allow(tenantID uuid.UUID) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastGC) > l.idleTTL {
		for id, tl := range l.limiters {
			if now.Sub(tl.lastSeen) > l.idleTTL {
				delete(l.limiters, id)
			}
		}
		l.lastGC = now
	}

	tl, ok := l.limiters[tenantID]
	if !ok {
		tl = &tenantLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[tenantID] = tl
	}
	tl.lastSeen = now
	return tl.limiter.AllowN(now, 1)
}

// RateLimit rejects requests of tenants that exhausted their bucket. It
// must run after Authenticate.
func RateLimit(limiter *TenantRateLimiter) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := auth.ClaimsFromContext(r.Context())
			if ok && !limiter.Allow(claims.TenantID) {
				w.Header().Set("Retry-After", "1")
				writeError(w, http.StatusTooManyRequests, "rate_limited", "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
