package middleware

import (
	"net/http"
	"runtime/debug"
	"time"

	"vikare/airports/internal/common"
	"vikare/airports/internal/constants"
	"vikare/airports/internal/logging"
	"vikare/airports/internal/metrics"
)

// RecoverMiddleware turns a handler panic into an opaque 500. The panic value
// and stack are logged, never returned to the client.
func RecoverMiddleware(metricsReg *metrics.MetricsRegistry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			initTime := time.Now()
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				if metricsReg != nil {
					metricsReg.PanicsRecoveredTotal.Inc()
				}
				logging.Error("Recovered from handler panic",
					"request_id", GetRequestID(r.Context()),
					"method", r.Method,
					"path", r.URL.Path,
					"panic", rec,
					"stack", string(debug.Stack()),
				)
				common.RespondError(w, initTime, nil, constants.MsgInternalError, http.StatusInternalServerError)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
