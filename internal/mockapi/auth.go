package mockapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dvcrn/hrms-api-client/internal/hr"
)

const (
	RoleAdmin = "admin"
	RoleStaff = "staff"

	tokenIssuer = "hrms-mock-api"
)

// DefaultTokenTTL is how long issued access tokens stay valid.
const DefaultTokenTTL = time.Hour

type accessTokenClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

type contextKey struct{}

var claimsKey contextKey

func claimsFromContext(ctx context.Context) (*accessTokenClaims, bool) {
	c, ok := ctx.Value(claimsKey).(*accessTokenClaims)
	return c, ok
}

// issueToken signs an HS256 access token for u.
func (s *Server) issueToken(u hr.User) (string, error) {
	now := s.now()
	claims := accessTokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			Issuer:    tokenIssuer,
		},
		Role: u.Role,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign JWT: %w", err)
	}
	return signed, nil
}

func bearerToken(h http.Header) (string, error) {
	value := h.Get("Authorization")
	if value == "" {
		return "", errors.New("authorization header is missing")
	}
	parts := strings.Fields(value)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", errors.New("authorization header format must be Bearer {token}")
	}
	return parts[1], nil
}

// requireToken rejects requests without a valid access token and stores the
// token claims in the request context.
func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := bearerToken(r.Header)
		if err != nil {
			respondError(w, r, http.StatusUnauthorized, codeUnauthorized, "unauthorized: "+err.Error(), nil)
			return
		}

		claims := &accessTokenClaims{}
		_, err = jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
			return s.secret, nil
		},
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(tokenIssuer),
			jwt.WithTimeFunc(s.now),
		)
		if err != nil {
			msg := "unauthorized: invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "unauthorized: token expired"
			}
			respondError(w, r, http.StatusUnauthorized, codeUnauthorized, msg, nil)
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey, claims)))
	})
}

// requireAdmin rejects authenticated non-admin users with 403.
func requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsFromContext(r.Context())
		if !ok || claims.Role != RoleAdmin {
			respondError(w, r, http.StatusForbidden, codeForbidden, "You do not have permission to perform this action.", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}
