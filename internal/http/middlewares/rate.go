package middlewares

import (
	"net/http"
	"strconv"

	"github.com/dropDatabas3/janus/internal/http/httperrors"
	"github.com/dropDatabas3/janus/internal/observability/logger"
	"github.com/dropDatabas3/janus/internal/rate"
)

// WithRateLimit limita requests por IP de cliente usando ventana fija.
// Un limiter nil desactiva el límite (pass-through).
func WithRateLimit(limiter rate.Limiter) Middleware {
	return func(next http.Handler) http.Handler {
		if limiter == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientIP(r) + "|" + r.URL.Path

			res, err := limiter.Allow(r.Context(), key)
			if err != nil {
				// El limiter caído no debe tumbar el login: dejamos pasar.
				logger.From(r.Context()).Warn("rate limiter unavailable", logger.Err(err))
				next.ServeHTTP(w, r)
				return
			}

			if !res.Allowed {
				if res.RetryAfter > 0 {
					w.Header().Set("Retry-After", strconv.Itoa(int(res.RetryAfter.Seconds())))
				}
				httperrors.WriteError(w, httperrors.ErrTooManyRequests.WithDetail("límite de requests excedido"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
