package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	applog "bakery/internal/log"
)

// LogRequests tags the request context with its request id and logs every
// completed request. It expects chi's RequestID middleware to run first.
func LogRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ctx := applog.WithAttrs(r.Context(), "request_id", middleware.GetReqID(r.Context()))
		r = r.WithContext(ctx)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		args := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).String(),
		}
		if status >= http.StatusInternalServerError {
			applog.Error(ctx, "request completed", args...)
			return
		}
		applog.Info(ctx, "request completed", args...)
	})
}
