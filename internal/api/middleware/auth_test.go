package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopLogger struct{}

func (noopLogger) Warn(string, ...interface{}) {}

var testSecret = []byte("test-secret")

func signToken(t *testing.T, method jwt.SigningMethod, claims jwt.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(testSecret)
	require.NoError(t, err)
	return token
}

func callProtected(t *testing.T, authorization string) (*httptest.ResponseRecorder, *AuthClaims) {
	t.Helper()

	var got *AuthClaims
	handler := NewAuth(testSecret, noopLogger{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		require.True(t, ok)
		got = claims
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tickets", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec, got
}

func TestAuth(t *testing.T) {
	token := signToken(t, jwt.SigningMethodHS256, tokenClaims{
		UserID:         7,
		KindergartenID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	rec, claims := callProtected(t, "Bearer "+token)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, claims)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, int64(1), claims.KindergartenID)
}

func TestAuth_Rejects(t *testing.T) {
	tests := []struct {
		name          string
		authorization string
	}{
		{name: "missing header", authorization: ""},
		{name: "not a bearer token", authorization: "Basic dXNlcjpwYXNz"},
		{name: "garbage token", authorization: "Bearer not.a.jwt"},
		{
			name: "expired token",
			authorization: "Bearer " + signTokenHelper(t, tokenClaims{
				UserID:         7,
				KindergartenID: 1,
				RegisteredClaims: jwt.RegisteredClaims{
					ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
				},
			}),
		},
		{
			name: "no kindergarten claim",
			authorization: "Bearer " + signTokenHelper(t, tokenClaims{
				UserID: 7,
				RegisteredClaims: jwt.RegisteredClaims{
					ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
				},
			}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, _ := callProtected(t, tt.authorization)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), "UNAUTHORIZED")
		})
	}
}

func signTokenHelper(t *testing.T, claims tokenClaims) string {
	return signToken(t, jwt.SigningMethodHS256, claims)
}

func TestAuth_RejectsWrongSecret(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		UserID:         7,
		KindergartenID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("other-secret"))
	require.NoError(t, err)

	rec, _ := callProtected(t, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
