package viewer

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

func (s *Server) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.logger.Debug("incoming request",
			"request_id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"url", r.URL.String(),
			slog.Int("status_code", ww.Status()),
			slog.Int("bytes", ww.BytesWritten()),
			"duration", time.Since(start),
		)
	})
}
