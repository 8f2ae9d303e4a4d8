package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"lingo_admin_console/internal/model"
	"lingo_admin_console/internal/webutil"
)

// bearerToken extracts the token from "Authorization: Bearer <token>".
func bearerToken(r *http.Request) (string, *model.AppError) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", model.NewAppError("UNAUTHORIZED", "Authorization header is required", "", model.ErrUnauthorized)
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
		return "", model.NewAppError("UNAUTHORIZED", "Authorization header must be 'Bearer <token>'", "", model.ErrUnauthorized)
	}
	return parts[1], nil
}

// AdminAuthMiddleware accepts HS256 console tokens whose role claim is admin.
// The token subject is stored in the context as the acting admin.
func AdminAuthMiddleware(secretKey, issuer string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := GetLogger(r.Context())

			tokenString, appErr := bearerToken(r)
			if appErr != nil {
				logger.Warn("Admin auth failed", slog.String("reason", appErr.Detail.Message))
				webutil.HandleError(w, logger, appErr)
				return
			}

			opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
			if issuer != "" {
				opts = append(opts, jwt.WithIssuer(issuer))
			}
			claims := &model.AdminClaims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
				return []byte(secretKey), nil
			}, opts...)
			if err != nil || !token.Valid {
				code := "INVALID_TOKEN"
				if errors.Is(err, jwt.ErrTokenExpired) {
					code = "TOKEN_EXPIRED"
				}
				logger.Warn("Admin auth failed: invalid token", slog.Any("error", err))
				webutil.HandleError(w, logger, model.NewAppError(code, "the admin token is invalid", "", model.ErrUnauthorized))
				return
			}

			if claims.Role != model.RoleAdmin {
				logger.Warn("Admin auth failed: role", slog.String("sub", claims.Subject), slog.String("role", claims.Role))
				webutil.HandleError(w, logger, model.NewAppError("FORBIDDEN", "admin role required", "", model.ErrForbidden))
				return
			}

			actor := claims.Subject
			if actor == "" {
				actor = claims.Email
			}
			ctx := context.WithValue(r.Context(), model.ActorKey, actor)
			ctx = WithLogger(ctx, logger.With(slog.String("actor", actor)))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// TokenVerifier checks an end-user ID token and returns its uid.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (string, error)
}

// UserAuthMiddleware authenticates end users with an ID token issued by the
// identity service.
func UserAuthMiddleware(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := GetLogger(r.Context())

			tokenString, appErr := bearerToken(r)
			if appErr != nil {
				logger.Warn("User auth failed", slog.String("reason", appErr.Detail.Message))
				webutil.HandleError(w, logger, appErr)
				return
			}

			uid, err := verifier.VerifyIDToken(r.Context(), tokenString)
			if err != nil || uid == "" {
				logger.Warn("User auth failed: token rejected", slog.Any("error", err))
				webutil.HandleError(w, logger, model.NewAppError("INVALID_TOKEN", "the ID token is invalid", "", model.ErrUnauthorized))
				return
			}

			ctx := context.WithValue(r.Context(), model.UserIDKey, uid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetUserIDFromContext(ctx context.Context) (string, error) {
	uid, ok := ctx.Value(model.UserIDKey).(string)
	if !ok || uid == "" {
		return "", model.NewAppError("UNAUTHORIZED", "no authenticated user in request", "", model.ErrUnauthorized)
	}
	return uid, nil
}

// GetActorFromContext returns the acting admin, or "" outside admin routes.
func GetActorFromContext(ctx context.Context) string {
	actor, _ := ctx.Value(model.ActorKey).(string)
	return actor
}
