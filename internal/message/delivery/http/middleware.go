package http

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/json"
	"net/http"
	"strings"

	"courier/internal/identity"
	identitymodels "courier/internal/identity/model"
	"courier/pkg/errors"
	"courier/pkg/logger"
)

type contextKey string

const userKey contextKey = "authenticated_user"

// Authenticate resolves an opaque bearer token to a local user. Token
// issuance (the PAKE login ceremony) happens in an external service; this
// system only stores and compares keyed hashes.
func Authenticate(users identity.UserRepository, secret string, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				unauthorized(w)
				return
			}
			token := strings.TrimPrefix(auth, "Bearer ")

			user, err := users.GetUserByTokenHash(r.Context(), TokenHash(token, secret))
			if err != nil || user == nil {
				log.Debug("bearer token rejected", "err", err)
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// TokenHash keys the token under the configured secret so a database leak
// does not leak usable tokens.
func TokenHash(token, secret string) []byte {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(token))
	return mac.Sum(nil)
}

// AuthenticatedUser returns the user placed by Authenticate.
func AuthenticatedUser(ctx context.Context) *identitymodels.User {
	user, _ := ctx.Value(userKey).(*identitymodels.User)
	return user
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": "authentication required",
		"code":  string(errors.CodeUnauthenticated),
	})
}
