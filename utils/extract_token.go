package utils

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt"
)

// ExtractAccountFromToken parses a bearer Authorization header and returns
// the account id, account type ("agent" or "counsellor") and issue time from
// its claims. The issue time is zero for tokens minted before it was added.
func ExtractAccountFromToken(authHeader string) (uint, string, time.Time, error) {
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return 0, "", time.Time{}, errors.New("invalid authorization header format")
	}

	tokenString := parts[1]

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return JwtSecret, nil
	})

	if err != nil || !token.Valid {
		return 0, "", time.Time{}, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", time.Time{}, errors.New("invalid token claims")
	}

	userIDFloat, ok := claims["user_id"].(float64)
	if !ok {
		return 0, "", time.Time{}, errors.New("invalid user ID in token")
	}

	accountType, ok := claims["account_type"].(string)
	if !ok {
		accountType = "agent"
	}

	var issuedAt time.Time
	if iatFloat, ok := claims["iat"].(float64); ok {
		issuedAt = time.Unix(int64(iatFloat), 0)
	}

	return uint(userIDFloat), accountType, issuedAt, nil
}
