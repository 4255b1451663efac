package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestJWTAuthMiddleware(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	validClaims := jwt.MapClaims{
		"id":    float64(42),
		"email": "user@example.com",
		"name":  "Test User",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}

	t.Run("valid token reaches handler with identity in context", func(t *testing.T) {
		var gotUserID int64
		var gotEmail string
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUserID = r.Context().Value("user_id").(int64)
			gotEmail = r.Context().Value("email").(string)
			w.WriteHeader(http.StatusOK)
		})

		r := httptest.NewRequest("GET", "/api/accounts", nil)
		r.Header.Set("Authorization", "Bearer "+signToken(t, "test-secret", validClaims))
		rec := httptest.NewRecorder()

		JWTAuthMiddleware(next).ServeHTTP(rec, r)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, int64(42), gotUserID)
		assert.Equal(t, "user@example.com", gotEmail)
	})

	rejected := []struct {
		name  string
		setup func(r *http.Request)
	}{
		{"missing header", func(r *http.Request) {}},
		{"wrong signature", func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+signToken(t, "other-secret", validClaims))
		}},
		{"expired token", func(r *http.Request) {
			expired := jwt.MapClaims{"id": float64(42), "exp": time.Now().Add(-time.Hour).Unix()}
			r.Header.Set("Authorization", "Bearer "+signToken(t, "test-secret", expired))
		}},
		{"garbage token", func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer not.a.token")
		}},
		{"missing id claim", func(r *http.Request) {
			noID := jwt.MapClaims{"email": "user@example.com", "exp": time.Now().Add(time.Hour).Unix()}
			r.Header.Set("Authorization", "Bearer "+signToken(t, "test-secret", noID))
		}},
	}
	for _, tt := range rejected {
		t.Run(tt.name, func(t *testing.T) {
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Fatal("handler should not be reached")
			})

			r := httptest.NewRequest("GET", "/api/accounts", nil)
			tt.setup(r)
			rec := httptest.NewRecorder()

			JWTAuthMiddleware(next).ServeHTTP(rec, r)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)

			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, false, body["success"])
			assert.Equal(t, "UnauthorizedError", body["error"])
		})
	}
}

func TestParseTokenFromRequestBarePrefix(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	// Tokens are accepted with or without the Bearer prefix.
	token := signToken(t, "test-secret", jwt.MapClaims{
		"id":  float64(1),
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	r := httptest.NewRequest("GET", "/api/accounts", nil)
	r.Header.Set("Authorization", token)

	claims, err := ParseTokenFromRequest(r)
	require.NoError(t, err)
	assert.Equal(t, float64(1), claims["id"])
}
