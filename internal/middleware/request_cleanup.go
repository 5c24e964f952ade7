package middleware

import (
	"io"
	"net/http"
)

// maxBodyDrain caps how much of an unread request body is discarded so the
// connection can be reused. Bigger leftovers just get the body closed.
const maxBodyDrain = 256 << 10

// DrainAndCloseRequest discards what the handler left unread of the request
// body, up to maxBodyDrain bytes, and closes it.
func DrainAndCloseRequest() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r)
			if r.Body == nil || r.Body == http.NoBody {
				return
			}
			_, _ = io.CopyN(io.Discard, r.Body, maxBodyDrain)
			_ = r.Body.Close()
		})
	}
}
