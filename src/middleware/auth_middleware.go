package middleware

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kotakitamaru/FinanceManager-v2/src/util"
)

// ParseTokenFromRequest extracts and validates the bearer token, returning
// its claims if the signature and expiry check out.
func ParseTokenFromRequest(r *http.Request) (jwt.MapClaims, error) {
	tokenString := r.Header.Get("Authorization")
	if tokenString == "" {
		return nil, fmt.Errorf("missing token")
	}

	tokenString = strings.TrimPrefix(tokenString, "Bearer ")

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("invalid signing method")
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})

	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid or expired token")
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token claims")
}

// JWTAuthMiddleware rejects the request outright on any token failure; a
// request is never partially authenticated.
func JWTAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := ParseTokenFromRequest(r)
		if err != nil {
			util.WriteError(w, util.UnauthorizedError(err.Error()))
			return
		}

		id, ok := claims["id"].(float64)
		if !ok {
			util.WriteError(w, util.UnauthorizedError("invalid token claims"))
			return
		}
		email, _ := claims["email"].(string)
		name, _ := claims["name"].(string)

		ctx := context.WithValue(r.Context(), "user_id", int64(id))
		ctx = context.WithValue(ctx, "email", email)
		ctx = context.WithValue(ctx, "name", name)

		r = r.WithContext(ctx)
		next.ServeHTTP(w, r)
	})
}
