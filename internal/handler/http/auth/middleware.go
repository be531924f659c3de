// Package auth guards the /admin API with HS256 JWTs and issues them from
// POST /auth/token.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"helpcenter/internal/handler/http/respond"
)

// RoleAdmin is the only role allowed on /admin routes.
const RoleAdmin = "admin"

type ctxKey string

const ctxUser ctxKey = "user"

var errMissingBearer = errors.New("bearer token is required")

// Authz requires a valid bearer token with the admin role for every request
// it wraps. The secret is read from JWT_SECRET once, when the middleware is built.
func Authz(next http.Handler) http.Handler {
	secret := []byte(os.Getenv("JWT_SECRET"))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, role, err := validateJWT(r.Header.Get("Authorization"), secret)
		if err != nil {
			reason := reasonInvalidToken
			if errors.Is(err, errMissingBearer) {
				reason = reasonMissingToken
			}
			recordAdminDenied(reason, r.Method)
			respond.SafeError(w, http.StatusUnauthorized, fmt.Errorf("unauthorized: %w", err))
			return
		}
		if role != RoleAdmin {
			recordAdminDenied(reasonForbidden, r.Method)
			respond.SafeError(w, http.StatusForbidden, errors.New("forbidden: admin role required"))
			return
		}
		ctx := context.WithValue(r.Context(), ctxUser, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserFromContext returns the subject of the token accepted by Authz.
func UserFromContext(ctx context.Context) string {
	user, _ := ctx.Value(ctxUser).(string)
	return user
}

func validateJWT(authz string, secret []byte) (string, string, error) {
	const prefix = "Bearer "
	if !strings.HasPrefix(authz, prefix) {
		return "", "", errMissingBearer
	}
	if len(secret) == 0 {
		return "", "", errors.New("invalid token")
	}
	tokenString := strings.TrimPrefix(authz, prefix)
	tok, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil || !tok.Valid {
		return "", "", errors.New("invalid token")
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", errors.New("invalid claims")
	}
	if exp, ok := claims["exp"].(float64); !ok || int64(exp) < time.Now().Unix() {
		return "", "", errors.New("invalid token: expired")
	}
	sub, ok := claims["sub"].(string)
	if !ok {
		return "", "", errors.New("invalid sub claim")
	}
	role, ok := claims["role"].(string)
	if !ok {
		return "", "", errors.New("invalid role claim")
	}
	return sub, role, nil
}
