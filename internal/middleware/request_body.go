package middleware

import (
	"io"
	"net/http"
)

// MaxRequestBodyBytes is the largest request body a handler gets to read.
const MaxRequestBodyBytes = 1 << 20

// LimitAndDrainBody caps the request body at maxBytes and drains whatever the
// handler left unread, so the connection can be reused.
func LimitAndDrainBody(maxBytes int64) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
			if r.Body != nil {
				_, _ = io.Copy(io.Discard, r.Body)
				_ = r.Body.Close()
			}
		})
	}
}
