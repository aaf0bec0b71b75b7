package auth

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
)

// Middleware returns an HTTP middleware that validates the bearer token on
// every request and places the resulting user claims on the context.
// Requests without a valid token are rejected with 401.
func Middleware(tokens *TokenAuth, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := ExtractTokenFromHeader(r.Header.Get("Authorization"))
			if err != nil {
				unauthorized(w, "Not authorized, no token")
				return
			}

			claims, err := tokens.VerifyToken(token)
			if err != nil {
				logger.Debug().Err(err).Str("path", r.URL.Path).Msg("token verification failed")
				unauthorized(w, "Not authorized, token failed")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserClaims(r.Context(), claims)))
		})
	}
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
