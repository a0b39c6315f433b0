package utils

import (
	"time"

	"github.com/chasseuragace/code-sub001/internal/core/domain"
	"github.com/golang-jwt/jwt/v5"
)

// GenerateActorJWT signs an HS256 token carrying the actor's id as subject plus its role and agency.
// The platform's identity service issues these; this mirrors its claim layout.
func GenerateActorJWT(actor domain.Actor, secret string, expiryDuration time.Duration, issuer string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  actor.ID,
		"role": string(actor.Role),
		"iat":  jwt.NewNumericDate(now),
		"nbf":  jwt.NewNumericDate(now),
		"exp":  jwt.NewNumericDate(now.Add(expiryDuration)),
	}
	if actor.AgencyID != "" {
		claims["agency_id"] = actor.AgencyID
	}
	if issuer != "" {
		claims["iss"] = issuer
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
