package identity

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type idTokenClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

type tokenVerifier struct {
	secret   []byte
	issuer   string
	audience string
	now      func() time.Time
}

func newTokenVerifier(secret []byte, issuer, audience string, now func() time.Time) *tokenVerifier {
	return &tokenVerifier{secret: secret, issuer: issuer, audience: audience, now: now}
}

// Verify checks signature, issuer, audience and expiry of an HS256 ID token.
func (v *tokenVerifier) Verify(raw string) (*idTokenClaims, error) {
	if raw == "" {
		return nil, errors.New("empty id token")
	}
	if len(v.secret) == 0 {
		return nil, errors.New("verifier has no signing secret")
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(v.now),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}
	if v.audience != "" {
		opts = append(opts, jwt.WithAudience(v.audience))
	}

	claims := &idTokenClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	if claims.Subject == "" {
		return nil, errors.New("id token has no subject")
	}
	return claims, nil
}
