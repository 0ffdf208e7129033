package server

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// RequestLogger is a middleware to log HTTP requests. Client errors are
// logged at warn level and server errors at error level.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := &responseWriterWrapper{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(ww, r)

		var event *zerolog.Event
		switch {
		case ww.statusCode >= http.StatusInternalServerError:
			event = log.Error()
		case ww.statusCode >= http.StatusBadRequest:
			event = log.Warn()
		default:
			event = log.Info()
		}

		event.
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.statusCode).
			Int64("request_bytes", r.ContentLength).
			Int("response_bytes", ww.written).
			Str("ip", r.RemoteAddr).
			Dur("duration", time.Since(start)).
			Msg("Request processed")
	})
}

type responseWriterWrapper struct {
	http.ResponseWriter
	statusCode int
	written    int
}

// WriteHeader captures the status code before writing to the underlying response writer.
func (w *responseWriterWrapper) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

// Write counts response bytes.
func (w *responseWriterWrapper) Write(b []byte) (int, error) {
	n, err := w.ResponseWriter.Write(b)
	w.written += n
	return n, err
}

// Routes registers the conversion endpoints and wraps them in RequestLogger.
func (s *ServerContext) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/decode", s.HandleDecode)
	mux.HandleFunc("/api/encode", s.HandleEncode)
	mux.HandleFunc("/healthz", s.HandleHealth)

	return RequestLogger(mux)
}
