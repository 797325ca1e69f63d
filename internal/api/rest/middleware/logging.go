package middleware

import (
	"net/http"
	"strconv"
	"time"

	chiMiddleware "github.com/go-chi/chi/middleware"
	log "github.com/sirupsen/logrus"

	"github.com/danilovkiri/dk_go_study_helper/internal/metrics"
)

// LogHandle logs every served request with its request ID, user, status and latency.
// It must run after chi's RequestID middleware and before CookieHandle sets the user.
func LogHandle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		var userID string
		next.ServeHTTP(ww, r.WithContext(withUserSink(r.Context(), &userID)))
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		metrics.HTTPRequests.WithLabelValues(r.Method, strconv.Itoa(status)).Inc()
		entry := log.WithFields(log.Fields{
			"request_id": chiMiddleware.GetReqID(r.Context()),
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     status,
			"bytes":      ww.BytesWritten(),
			"latency":    time.Since(start).String(),
		})
		if userID != "" {
			entry = entry.WithField("user", userID)
		}
		if status >= http.StatusInternalServerError {
			entry.Warn("request served")
			return
		}
		entry.Info("request served")
	})
}
