package chi

import (
	"net/http"
	"strings"
	"time"

	chi "github.com/go-chi/chi/v5"

	logger "github.com/shuliangfu/logger"
)

type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	rw.status = statusCode
	rw.ResponseWriter.WriteHeader(statusCode)
}

func (rw *responseWriter) Status() int {
	if rw.status == 0 {
		return http.StatusOK
	}

	return rw.status
}

// Middleware returns a chi middleware that logs one entry per completed
// request: info for success, warn for client errors, error for server
// errors.
func Middleware(cfg Config) func(http.Handler) http.Handler {
	cfg = cfg.withDefaults()

	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			recorder := &responseWriter{ResponseWriter: w}
			start := time.Now()

			next.ServeHTTP(recorder, r)

			latency := time.Since(start)
			status := recorder.Status()

			data := map[string]any{
				"method":             r.Method,
				"path":               r.URL.Path,
				"host":               r.Host,
				"remote_addr":        remoteAddr(r),
				cfg.StatusFieldName:  status,
				cfg.LatencyFieldName: float64(latency) / float64(time.Millisecond),
			}

			if cfg.CaptureRequestID {
				if id := r.Header.Get("X-Request-ID"); id != "" {
					data["request_id"] = id
				}
			}

			for _, header := range cfg.IncludeHeaders {
				if value := r.Header.Get(header); value != "" {
					data["header_"+strings.ToLower(header)] = value
				}
			}

			if extractor := cfg.ContextExtractor; extractor != nil {
				for key, value := range extractor(r) {
					data[key] = value
				}
			}

			cfg.Logger.Log(requestLevel(status), "request completed", data, nil, cfg.Tags...)
		})
	}
}

func requestLevel(status int) logger.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return logger.ErrorLevel
	case status >= http.StatusBadRequest:
		return logger.WarnLevel
	default:
		return logger.InfoLevel
	}
}

// DefaultContextExtractor pulls the matched route pattern, URL parameters,
// and query string from a chi request.
func DefaultContextExtractor(r *http.Request) map[string]any {
	if r == nil {
		return nil
	}

	data := make(map[string]any)

	if routeCtx := chi.RouteContext(r.Context()); routeCtx != nil {
		if pattern := routeCtx.RoutePattern(); pattern != "" {
			data["route"] = pattern
		}

		for i, key := range routeCtx.URLParams.Keys {
			data["param_"+key] = routeCtx.URLParams.Values[i]
		}
	}

	if query := r.URL.RawQuery; query != "" {
		data["query"] = query
	}

	return data
}

func remoteAddr(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		parts := strings.Split(ip, ",")

		return strings.TrimSpace(parts[0])
	}

	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}

	return r.RemoteAddr
}
