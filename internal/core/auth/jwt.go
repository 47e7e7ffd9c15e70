package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// PurposeEmailVerify tags one-shot email verification tokens so they are
// never accepted as access credentials.
const PurposeEmailVerify = "email-verify"

type Claims struct {
	UID     string `json:"uid"`
	Role    string `json:"role"` // "client" or "admin"
	Purpose string `json:"pps,omitempty"`
	jwt.RegisteredClaims
}

type JWTer struct {
	Secret []byte
	Issuer string
	TTL    time.Duration // access token validity, 24h in production config
}

func (j *JWTer) Issue(uid, role string) (string, error) {
	return j.sign(Claims{UID: uid, Role: role})
}

// IssueEmailVerification issues the token embedded in the verify-email link.
func (j *JWTer) IssueEmailVerification(uid string) (string, error) {
	return j.sign(Claims{UID: uid, Purpose: PurposeEmailVerify})
}

func (j *JWTer) sign(claims Claims) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Issuer:    j.Issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(j.TTL)),
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

// ParseEmailVerification accepts only tokens issued by IssueEmailVerification.
func (j *JWTer) ParseEmailVerification(tokenStr string) (*Claims, error) {
	c, err := j.Parse(tokenStr)
	if err != nil {
		return nil, err
	}
	if c.Purpose != PurposeEmailVerify {
		return nil, errors.New("not a verification token")
	}
	return c, nil
}
