package router

import (
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/linechat/backend/internal/admin"
	"github.com/linechat/backend/internal/media"
	"github.com/linechat/backend/internal/message"
	"github.com/linechat/backend/internal/registration"
	"github.com/linechat/backend/pkg/utilities"
)

// loggingResponseWriter wraps http.ResponseWriter to capture status and size.
type loggingResponseWriter struct {
	http.ResponseWriter
	status int
	size   int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.status = code
	lrw.ResponseWriter.WriteHeader(code)
}

func (lrw *loggingResponseWriter) Write(b []byte) (int, error) {
	if lrw.status == 0 {
		lrw.status = http.StatusOK
	}
	n, err := lrw.ResponseWriter.Write(b)
	lrw.size += n
	return n, err
}

// LoggingMiddleware returns a middleware that logs requests at debug level using the provided sugared logger.
func LoggingMiddleware(logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			lrw := &loggingResponseWriter{ResponseWriter: w}
			next.ServeHTTP(lrw, r)
			dur := time.Since(start)
			status := lrw.status
			if status == 0 {
				status = http.StatusOK
			}
			logger.Debugw("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"remote", r.RemoteAddr,
				"request_id", w.Header().Get("X-Request-Id"),
				"status", status,
				"duration_ms", float64(dur.Microseconds())/1000.0,
				"size", lrw.size,
			)
		})
	}
}

// RequestIDMiddleware tags every response with a snowflake request ID so a
// log line and a client-reported failure can be matched up.
func RequestIDMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Request-Id", utilities.NewRequestID())
			next.ServeHTTP(w, r)
		})
	}
}

// CORSMiddleware applies the permissive cross-origin policy the mobile client
// relies on. OPTIONS preflights short-circuit with headers only, no body.
func CORSMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, HEAD, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RegisterRoutes mounts HTTP handlers using the standard library's http.ServeMux.
func RegisterRoutes(logger *zap.SugaredLogger, db *sqlx.DB) http.Handler {
	mux := http.NewServeMux()

	// liveness
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("LineChat backend is running"))
	})

	registrationHandler := registration.NewHandler(db, logger)
	mux.HandleFunc("POST /register", registrationHandler.Register)

	mediaHandler := media.NewHandler(db, logger)
	mux.HandleFunc("POST /upload", mediaHandler.Upload)
	mux.HandleFunc("GET /media/{id}", mediaHandler.Download)

	messageHandler := message.NewHandler(db, logger)
	mux.HandleFunc("POST /send", messageHandler.Send)
	mux.HandleFunc("GET /sync", messageHandler.Sync)

	adminHandler := admin.NewHandler(db, logger)
	mux.HandleFunc("POST /admin/generate-key", adminHandler.GenerateKey)
	mux.HandleFunc("GET /admin/stats", adminHandler.Stats)

	// CORS first so preflights never reach the mux, then request IDs, then logging
	handler := LoggingMiddleware(logger)(RequestIDMiddleware()(CORSMiddleware()(mux)))
	return handler
}
