package middleware

import (
	"net/http"

	"github.com/2beens/qsdiary/internal/users"

	log "github.com/sirupsen/logrus"
)

func LogRequest() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, _ := users.RequestUserID(r)
			log.WithFields(log.Fields{
				"method": r.Method,
				"path":   r.URL.Path,
				"user":   userID,
			}).Tracef(" ====> request [UA: %s]", r.Header.Get("User-Agent"))
			next.ServeHTTP(w, r)
		})
	}
}
