// Package utils provides helpers for token issuing and password hashing.
package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken is returned by ParseAccessToken for any token that fails
// signature, algorithm, expiry or claim-shape checks.
var ErrInvalidToken = errors.New("invalid token")

// AccessToken represents a signed JWT access token along with its expiry.
// JTI is the unique token id used to revoke it on logout.
type AccessToken struct {
	Token string
	Exp   time.Time
	JTI   string
}

// RefreshToken represents a long-lived token used to obtain new access
// tokens. Only a SHA-256 hash of Raw is stored.
type RefreshToken struct {
	Raw string
	Exp time.Time
}

// Claims is the identity carried by an access token.
type Claims struct {
	UserID   uint64
	Role     string
	MairieID *uint64
	JTI      string
	Exp      time.Time
}

// NewAccessToken builds and signs an HS256 JWT. The payload carries sub,
// role, mairie_id (omitted for super administrators), jti, exp and iat.
func NewAccessToken(secret string, userID uint64, role string, mairieID *uint64, ttlMin int) (AccessToken, error) {
	now := time.Now().UTC()
	exp := now.Add(time.Duration(ttlMin) * time.Minute)
	jti := uuid.NewString()
	claims := jwt.MapClaims{
		"sub":  fmt.Sprintf("%d", userID),
		"role": role,
		"jti":  jti,
		"exp":  exp.Unix(),
		"iat":  now.Unix(),
	}
	if mairieID != nil {
		claims["mairie_id"] = *mairieID
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp, JTI: jti}, nil
}

// ParseAccessToken verifies raw with secret and extracts its claims.
func ParseAccessToken(secret, raw string) (Claims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !tok.Valid {
		return Claims{}, ErrInvalidToken
	}
	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}

	var out Claims
	sub, err := mc.GetSubject()
	if err != nil || sub == "" {
		return Claims{}, ErrInvalidToken
	}
	if _, err := fmt.Sscanf(sub, "%d", &out.UserID); err != nil || out.UserID == 0 {
		return Claims{}, ErrInvalidToken
	}
	out.Role, _ = mc["role"].(string)
	out.JTI, _ = mc["jti"].(string)
	if v, ok := mc["mairie_id"].(float64); ok && v > 0 {
		id := uint64(v)
		out.MairieID = &id
	}
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		out.Exp = exp.Time
	}
	return out, nil
}

// NewRefreshToken returns a cryptographically secure random token and its
// expiration time, ttlDays from now.
func NewRefreshToken(ttlDays int) (RefreshToken, error) {
	raw, err := randomHex(48) // 96 hex chars
	if err != nil {
		return RefreshToken{}, err
	}
	return RefreshToken{
		Raw: raw,
		Exp: time.Now().UTC().Add(time.Duration(ttlDays) * 24 * time.Hour),
	}, nil
}

// HashRefreshRaw returns the hex SHA-256 of a raw refresh token.
func HashRefreshRaw(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
