package middleware

import (
	"net/http"

	"localbite-be/internal/apperror"
	"localbite-be/internal/auth"
	"localbite-be/internal/logger"

	"go.uber.org/zap"
)

// Auth verifies the access token when one is sent. Requests without a token
// pass through anonymously; handlers decide whether they need a principal.
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := auth.ExtractAccessToken(r)
			if tokenStr == "" {
				next.ServeHTTP(w, r)
				return
			}

			p, err := auth.ParseToken(secret, tokenStr)
			if err != nil {
				logger.FromCtx(r.Context()).Warn("rejected access token", zap.Error(err))
				writeError(w, http.StatusUnauthorized, apperror.KindUnauthenticated, "Invalid or expired token")
				return
			}

			ctx := auth.WithPrincipal(r.Context(), p)
			ctx = logger.WithUserID(ctx, p.UserID.String())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
