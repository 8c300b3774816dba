package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims mirrors the token the upstream auth collaborator mints on login.
// The gateway validates the signature and trusts the role flags.
type Claims struct {
	UserID    string `json:"user_id"`
	Fullname  string `json:"fullname"`
	Email     string `json:"email"`
	IsAdmin   bool   `json:"isAdmin"`
	IsManager bool   `json:"isManager"`
	jwt.RegisteredClaims
}

// GenerateToken mints a token with the upstream's claim shape. Used by
// tests and local tooling; production tokens come from the upstream.
func GenerateToken(secret, userID, fullname, email string, isAdmin, isManager bool) (string, error) {
	claims := Claims{
		UserID:    userID,
		Fullname:  fullname,
		Email:     email,
		IsAdmin:   isAdmin,
		IsManager: isManager,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(12 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ValidateToken(secret, tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
