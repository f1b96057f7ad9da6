// Package jwtmw issues and verifies session assertions and provides the
// Gin middleware that resolves them into the calling user.
package jwtmw

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// TokenTTL is the fixed lifetime of every issued token.
	TokenTTL = 7 * 24 * time.Hour

	tokenIssuer = "feed-backend"
)

// ErrInvalidToken is returned when a token is malformed, badly signed or expired.
var ErrInvalidToken = errors.New("invalid token")

// Claims are the JWT claims carried by a session token.
type Claims struct {
	UserID uint `json:"uid"`
	jwt.RegisteredClaims
}

// Generator issues and verifies HS256 tokens with a process-wide secret.
// It holds no other state and is safe for concurrent use.
type Generator struct {
	secret []byte
	now    func() time.Time
}

// NewGenerator creates a Generator with the provided signing secret.
func NewGenerator(secret string) *Generator {
	return &Generator{
		secret: []byte(secret),
		now:    time.Now,
	}
}

// GenerateToken creates a signed token for userID that expires after TokenTTL.
func (g *Generator) GenerateToken(userID uint) (string, error) {
	if userID == 0 {
		return "", errors.New("invalid user ID")
	}
	if len(g.secret) == 0 {
		return "", errors.New("signing secret is not configured")
	}

	now := g.now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ParseToken verifies tokenStr and returns the user ID it was issued for.
// Every failure is reported as ErrInvalidToken.
func (g *Generator) ParseToken(tokenStr string) (uint, error) {
	if tokenStr == "" || len(g.secret) == 0 {
		return 0, ErrInvalidToken
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return g.secret, nil
	},
		// Only HMAC-SHA256 is accepted; "none" and asymmetric algs are rejected.
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(g.now),
	)
	if err != nil || !token.Valid {
		return 0, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if claims.UserID == 0 || claims.Subject != strconv.FormatUint(uint64(claims.UserID), 10) {
		return 0, fmt.Errorf("%w: subject mismatch", ErrInvalidToken)
	}
	return claims.UserID, nil
}
