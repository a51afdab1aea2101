package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/sarang-church/groupware-backend-go/internal/domain/auth"
	"github.com/sarang-church/groupware-backend-go/internal/handler/http/response"
	"github.com/sarang-church/groupware-backend-go/internal/pkg/jwt"
)

// AuthRequired rejects requests without a valid, unrevoked access token and
// stores the caller in the request context. It runs after jwtauth.Verifier.
func AuthRequired(jwtService jwt.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil || token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			tokenType, ok := claims["type"].(string)
			if tokenType != "access" || !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			raw := jwtauth.TokenFromHeader(r)
			if jwtService.IsTokenRevoked(raw) {
				response.HandleError(w, auth.ErrTokenRevoked)
				return
			}

			caller, err := callerFromClaims(claims)
			if err != nil {
				response.HandleError(w, err)
				return
			}
			caller.Token = raw
			caller.ExpiresAt = token.Expiration().Unix()

			next.ServeHTTP(w, r.WithContext(WithCaller(r.Context(), caller)))
		}
		return http.HandlerFunc(hfn)
	}
}
