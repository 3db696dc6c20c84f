package middleware

import (
	"io"
	"net/http"
)

// DefaultMaxBodyBytes fits any entry payload; bigger bodies are cut off and fail decoding.
const DefaultMaxBodyBytes int64 = 1 << 20

// LimitAndDrainRequest caps the request body at maxBodyBytes, and after the handler is done
// drains what is left of it and closes it, so the connection can be reused.
func LimitAndDrainRequest(maxBodyBytes int64) func(next http.Handler) http.Handler {
	if maxBodyBytes <= 0 {
		maxBodyBytes = DefaultMaxBodyBytes
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body == nil || r.Body == http.NoBody {
				next.ServeHTTP(w, r)
				return
			}

			body := r.Body
			r.Body = http.MaxBytesReader(w, body, maxBodyBytes)
			next.ServeHTTP(w, r)

			_, _ = io.Copy(io.Discard, io.LimitReader(body, maxBodyBytes))
			_ = body.Close()
		})
	}
}
