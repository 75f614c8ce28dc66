package transport

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/souqhub/marketplace/application/auth"
	"github.com/souqhub/marketplace/constant"
	"github.com/souqhub/marketplace/utils/errors"
)

// AuthMiddleware returns a middleware that validates JWT sessions using
// AuthApp. Browsing endpoints (search, detail, reference data) stay public.
func AuthMiddleware(authApp auth.AuthApp) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublicPath(r.Method, r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			auth := r.Header.Get("Authorization")
			if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
				writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
				return
			}
			token := strings.TrimPrefix(auth, "Bearer ")

			userID, err := authApp.ValidateToken(r.Context(), token)
			if err != nil {
				writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
				return
			}

			ctx := context.WithValue(r.Context(), constant.UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// isPublicPath defines which endpoints are public (no auth required)
func isPublicPath(method, path string) bool {
	if strings.HasPrefix(path, "/swagger/") {
		return true
	}

	switch path {
	case "/register", "/login", "/otp/send", "/otp/verify":
		return true
	case "/categories", "/governorates", "/exchange-rate", "/convert", "/featured-listings":
		return method == http.MethodGet
	}

	if method == http.MethodGet {
		if path == "/listings" || strings.HasPrefix(path, "/listings/") {
			return true
		}
		if strings.HasPrefix(path, "/governorates/") && strings.HasSuffix(path, "/districts") {
			return true
		}
	}

	return false
}
