package middlew

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"artha-pay/internal/custom_err"
	"artha-pay/internal/models"
	"artha-pay/pkg/response"
)

// TokenValidator реализуется service.AuthService
type TokenValidator interface {
	ValidateToken(tokenString string) (*models.JWTClaims, error)
}

func RequireAuth(auth TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := GetLogger(r.Context())

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				response.WriteJSONError(w, log, http.StatusUnauthorized, "unauthorized", "Authorization header is required")
				return
			}

			scheme, tokenString, ok := strings.Cut(authHeader, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || tokenString == "" {
				log.Warn("invalid authorization header format")
				response.WriteJSONError(w, log, http.StatusUnauthorized, "unauthorized", "Invalid authorization header format")
				return
			}

			claims, err := auth.ValidateToken(tokenString)
			if err != nil {
				switch {
				case errors.Is(err, custom_err.ErrTokenExpired):
					response.WriteJSONError(w, log, http.StatusUnauthorized, "token_expired", "Token has expired")
				case errors.Is(err, custom_err.ErrTokenNotActive):
					response.WriteJSONError(w, log, http.StatusUnauthorized, "token_not_active", "Token not yet active")
				case errors.Is(err, custom_err.ErrInvalidToken):
					response.WriteJSONError(w, log, http.StatusUnauthorized, "invalid_token", "Invalid token")
				default:
					log.Error("failed to validate token", slog.String("error", err.Error()))
					response.WriteJSONError(w, log, http.StatusInternalServerError, "internal_error", "Internal error")
				}
				return
			}

			ctx := WithUser(r.Context(), claims.UserID, claims.Username)
			ctx = context.WithValue(ctx, loggerKey, log.With(slog.String("user_id", claims.UserID.String())))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithUser кладёт пользователя в контекст так же, как RequireAuth.
func WithUser(ctx context.Context, userID uuid.UUID, username string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, usernameKey, username)
}

func GetUserID(ctx context.Context) uuid.UUID {
	userID, ok := ctx.Value(userIDKey).(uuid.UUID)
	if !ok {
		panic("userID not found in context - RequireAuth middleware not applied?")
	}
	return userID
}

func GetUsername(ctx context.Context) string {
	username, _ := ctx.Value(usernameKey).(string)
	return username
}
