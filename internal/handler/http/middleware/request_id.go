package middleware

import (
	"net/http"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/sarang-church/groupware-backend-go/internal/handler/http/response"
)

// EchoRequestID copies the id assigned by chi's RequestID middleware onto the
// response so clients can quote it and error bodies can carry it.
func EchoRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := chiMiddleware.GetReqID(r.Context()); id != "" {
			w.Header().Set(response.RequestIDHeader, id)
		}
		next.ServeHTTP(w, r)
	})
}
