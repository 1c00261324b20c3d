package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jw-park/petkinder-backend/internal/api/handlers"
)

type contextKey string

const claimsContextKey contextKey = "auth_claims"

// AuthClaims is the identity a verified token carries: the acting user and
// the kindergarten every query is scoped to.
type AuthClaims struct {
	UserID         int64
	KindergartenID int64
}

// tokenClaims is the JWT payload shape.
type tokenClaims struct {
	UserID         int64 `json:"user_id"`
	KindergartenID int64 `json:"kindergarten_id"`
	jwt.RegisteredClaims
}

// Logger is the logging interface used by the middleware.
type Logger interface {
	Warn(format string, v ...interface{})
}

// NewAuth returns a middleware validating Bearer tokens signed with the
// shared HMAC secret. Tokens are validated here, never minted; issuance
// belongs to the account service.
func NewAuth(secret []byte, log Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := parseToken(r, secret)
			if err != nil {
				log.Warn("%s %s - Unauthorized: %v", r.Method, r.URL.Path, err)
				handlers.RespondError(w, http.StatusUnauthorized, handlers.CodeUnauthorized, "invalid or missing token")
				return
			}

			ctx := context.WithValue(r.Context(), claimsContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func parseToken(r *http.Request, secret []byte) (*AuthClaims, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return nil, errors.New("missing Authorization header")
	}

	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return nil, errors.New("Authorization header is not a Bearer token")
	}

	var claims tokenClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	if claims.KindergartenID <= 0 {
		return nil, errors.New("token carries no kindergarten id")
	}

	return &AuthClaims{
		UserID:         claims.UserID,
		KindergartenID: claims.KindergartenID,
	}, nil
}

// ClaimsFromContext returns the verified identity, or false outside the auth
// middleware.
func ClaimsFromContext(ctx context.Context) (*AuthClaims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(*AuthClaims)
	return claims, ok
}
