package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/2beens/qsdiary/internal/telemetry/metrics"
	"github.com/2beens/qsdiary/internal/users"

	log "github.com/sirupsen/logrus"
)

// PanicRecovery turns a panicking handler into a 500 reply. The panic is
// logged as an error with the route and user, so the sentry hook reports it.
func PanicRecovery(metricsManager *metrics.Manager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			defer func() {
				recovered := recover()
				if recovered == nil {
					return
				}
				if recovered == http.ErrAbortHandler {
					panic(recovered)
				}

				err, ok := recovered.(error)
				if !ok {
					err = fmt.Errorf("%v", recovered)
				}
				userID, _ := users.RequestUserID(req)
				log.WithError(err).WithFields(log.Fields{
					"route":  routeName(req),
					"method": req.Method,
					"user":   userID,
					"stack":  string(debug.Stack()),
				}).Errorf("panic serving %s", req.URL.Path)

				if metricsManager != nil {
					metricsManager.CounterHandleRequestPanic.Inc()
				}
				http.Error(w, "internal error", http.StatusInternalServerError)
			}()

			next.ServeHTTP(w, req)
		})
	}
}
