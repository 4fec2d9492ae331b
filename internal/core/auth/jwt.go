package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	PurposeAccess = "access"
	PurposeReset  = "pwreset"
)

type Claims struct {
	UID     string `json:"uid"`
	Role    string `json:"role"` // "applicant" / "company" / "admin"
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

// JWTer issues and parses HS256 tokens. The same signer backs both access
// tokens and the time-limited password-reset tokens; Purpose keeps one from
// being replayed as the other.
type JWTer struct {
	Secret   []byte
	Issuer   string
	TTL      time.Duration
	ResetTTL time.Duration
}

func (j *JWTer) Issue(uid, role string) (string, error) {
	return j.sign(uid, role, PurposeAccess, j.TTL)
}

// IssueReset returns a short-lived single-purpose token for password reset.
func (j *JWTer) IssueReset(uid string) (string, error) {
	ttl := j.ResetTTL
	if ttl == 0 {
		ttl = 30 * time.Minute
	}
	return j.sign(uid, "", PurposeReset, ttl)
}

func (j *JWTer) sign(uid, role, purpose string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UID:     uid,
		Role:    role,
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    j.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.Secret)
}

func (j *JWTer) Parse(tokenStr string) (*Claims, error) {
	t, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected alg")
		}
		return j.Secret, nil
	}, jwt.WithIssuer(j.Issuer), jwt.WithLeeway(60*time.Second))

	if err != nil {
		return nil, err
	}
	if c, ok := t.Claims.(*Claims); ok && t.Valid {
		return c, nil
	}
	return nil, errors.New("invalid token")
}

// ParseReset verifies a reset token and returns the user id it was issued
// for. Expired or wrong-purpose tokens fail.
func (j *JWTer) ParseReset(tokenStr string) (string, error) {
	c, err := j.Parse(tokenStr)
	if err != nil {
		return "", err
	}
	if c.Purpose != PurposeReset {
		return "", errors.New("wrong token purpose")
	}
	return c.UID, nil
}
