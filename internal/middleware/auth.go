package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/yogeshkhant77/Booksy/internal/platform/logger"
	"github.com/yogeshkhant77/Booksy/internal/service"
)

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": "Not authorized"})
}

func forbidden(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": "Admin access required"})
}

// Authenticator verifies the bearer token and attaches the resolved account
// to the request. A valid token whose subject no longer exists is treated
// the same as a missing token.
func Authenticator(auth *service.AuthService, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				unauthorized(w)
				return
			}

			subject, err := auth.Tokens().Verify(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				log.Debugf("token rejected: %v", err)
				unauthorized(w)
				return
			}

			userID, err := primitive.ObjectIDFromHex(subject)
			if err != nil {
				unauthorized(w)
				return
			}

			user, err := auth.GetUser(r.Context(), userID)
			if err != nil {
				unauthorized(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// AdminOnly gates a route on the admin role. Must run after Authenticator.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := UserFromContext(r.Context())
		if user == nil {
			unauthorized(w)
			return
		}
		if !user.IsAdmin() {
			forbidden(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}
