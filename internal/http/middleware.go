package apihttp

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"strconv"
	"time"

	"github.com/example/monelog/internal/auth"
	"github.com/example/monelog/internal/metrics"
	"github.com/example/monelog/internal/rate"
	"github.com/example/monelog/pkg/jsonutil"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// SessionHeader carries the session token on /api requests.
const SessionHeader = "X-Session-Token"

type ctxKey string

const (
	ctxKeyRequestID ctxKey = "req_id"
	ctxKeySession   ctxKey = "session_hp"
)

// RequestIDFrom returns the id set by RequestID, if any.
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(ctxKeyRequestID).(string)
	return id
}

// RequestID middleware injects a random request id into context and response header.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var b [8]byte
		_, _ = rand.Read(b[:])
		reqID := hex.EncodeToString(b[:])
		r = r.WithContext(context.WithValue(r.Context(), ctxKeyRequestID, reqID))
		w.Header().Set("X-Request-ID", reqID)
		next.ServeHTTP(w, r)
	})
}

// Logger middleware logs one structured line per request and records
// request metrics.
func Logger(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rlw := &respLogger{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rlw, r)
			dur := time.Since(start)

			route := routePattern(r)
			metrics.Requests.WithLabelValues(r.Method, route, strconv.Itoa(rlw.status)).Inc()
			metrics.RequestLatency.WithLabelValues(r.Method, route).Observe(dur.Seconds())

			session, _ := r.Context().Value(ctxKeySession).(string)
			log.Info().
				Str("event", "request").
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", rlw.status).
				Int64("dur_ms", dur.Milliseconds()).
				Str("ip", rate.IPFromRequest(r)).
				Str("req_id", RequestIDFrom(r.Context())).
				Str("session", session).
				Send()
		})
	}
}

// routePattern keeps metric labels bounded: unmatched paths share one label.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}

type respLogger struct{ http.ResponseWriter; status int }

func (r *respLogger) WriteHeader(code int) { r.status = code; r.ResponseWriter.WriteHeader(code) }

// CORS middleware: allows cross-origin requests from the browser client.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+SessionHeader+", X-Admin-Token")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RateLimit middleware enforces per-IP rate limiting.
func RateLimit(lm *rate.LimiterMap) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := rate.IPFromRequest(r)
			if !lm.Allow(ip) {
				jsonutil.Error(w, http.StatusTooManyRequests, "rate limited")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Auth middleware validates the session header using the provided store.
func Auth(store auth.SessionValidator, timeout time.Duration) func(http.Handler) http.Handler {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get(SessionHeader)
			if token == "" {
				jsonutil.Error(w, http.StatusUnauthorized, "missing session token")
				return
			}
			if store == nil {
				jsonutil.Error(w, http.StatusServiceUnavailable, "auth unavailable")
				return
			}
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()
			ok, err := store.Validate(ctx, token)
			if err != nil {
				jsonutil.Error(w, http.StatusForbidden, "invalid session token")
				return
			}
			if !ok {
				jsonutil.Error(w, http.StatusForbidden, "invalid or inactive session token")
				return
			}
			// hash prefix only, never the token itself
			r = r.WithContext(context.WithValue(r.Context(), ctxKeySession, auth.HashPrefix(token)))
			next.ServeHTTP(w, r)
		})
	}
}
