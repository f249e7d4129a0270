// Package jwt signs and validates the bearer tokens that authorize play for a wallet
package jwt

import (
	"errors"
	"fmt"
	"time"

	jwtgo "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Issuer issues the JWT
const Issuer = "blackjack-server"

// Audience is the intended JWT audience
const Audience = "blackjack-server"

// ErrMissingSecret is returned by NewSigner for an empty secret
var ErrMissingSecret = errors.New("jwt secret is required")

// Signer signs and validates HS256 tokens whose subject is a wallet id
type Signer struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

// NewSigner returns a signer
// A ttl of 0 issues tokens that never expire.
func NewSigner(secret string, ttl time.Duration) (*Signer, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}

	return &Signer{
		key: []byte(secret),
		ttl: ttl,
		now: time.Now,
	}, nil
}

// Sign will sign a JWT for the wallet ID
func (s *Signer) Sign(walletID string) (string, error) {
	now := s.now()
	claims := jwtgo.RegisteredClaims{
		Audience: jwtgo.ClaimStrings{Audience},
		ID:       uuid.New().String(),
		IssuedAt: jwtgo.NewNumericDate(now),
		Issuer:   Issuer,
		Subject:  walletID,
	}

	if s.ttl > 0 {
		claims.ExpiresAt = jwtgo.NewNumericDate(now.Add(s.ttl))
	}

	return jwtgo.NewWithClaims(jwtgo.SigningMethodHS256, claims).SignedString(s.key)
}

// ValidSubject will validate a signed JWT and return its wallet ID
func (s *Signer) ValidSubject(signedString string) (string, error) {
	token, err := jwtgo.ParseWithClaims(signedString, &jwtgo.RegisteredClaims{}, func(token *jwtgo.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwtgo.SigningMethodHMAC); !ok {
			return nil, errors.New("expected HS256 signing method")
		}

		return s.key, nil
	})

	if err != nil {
		return "", err
	}

	if token.Valid {
		if claims, ok := token.Claims.(*jwtgo.RegisteredClaims); ok {
			if !containsAudience(claims.Audience, Audience) {
				return "", errors.New("invalid audience")
			}

			if claims.Issuer != Issuer {
				return "", errors.New("invalid issuer")
			}

			if claims.Subject == "" {
				return "", errors.New("missing subject")
			}

			return claims.Subject, nil
		}

		return "", fmt.Errorf("expected jwt.RegisteredClaims, got %T", token.Claims)
	}

	logrus.Warn("token claims were not valid. did not expect to reach this code")
	return "", errors.New("claims were not valid")
}

func containsAudience(audiences jwtgo.ClaimStrings, target string) bool {
	for _, aud := range audiences {
		if aud == target {
			return true
		}
	}
	return false
}
