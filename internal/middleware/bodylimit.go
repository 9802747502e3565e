package middleware

import "net/http"

// BodyLimit caps the size of JSON request bodies. Oversized bodies make
// the decoder fail, which surfaces as a 400 at the handler. Multipart
// upload routes set their own, larger cap.
func BodyLimit(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}
