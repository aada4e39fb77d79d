package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
)

const (
	AccessTokenValidity  = time.Hour * 24
	RefreshTokenValidity = time.Hour * 24 * 7
	ResetTokenValidity   = time.Minute * 30
)

// GenerateTokenPair returns a signed access and refresh token for the user.
// The admin claim travels in the token so the middleware can gate admin
// routes without an extra lookup; the services still re-check the stored role
// before any privileged mutation.
func GenerateTokenPair(email string, secret string, isAdmin bool, id uint) (string, string, error) {
	if secret == "" {
		return "", "", errors.New("jwt secret is empty")
	}

	accessClaims := jwt.MapClaims{
		"id":       id,
		"email":    email,
		"is_admin": isAdmin,
		"type":     "access",
		"exp":      time.Now().Add(AccessTokenValidity).Unix(),
	}
	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).SignedString([]byte(secret))
	if err != nil {
		return "", "", err
	}

	refreshClaims := jwt.MapClaims{
		"id":    id,
		"email": email,
		"type":  "refresh",
		"exp":   time.Now().Add(RefreshTokenValidity).Unix(),
	}
	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString([]byte(secret))
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

// ValidateAndGetClaims parses the token and returns its claims if the
// signature and expiry check out.
func ValidateAndGetClaims(tokenString string, secret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// GeneratePasswordResetToken issues a short-lived token embedded in the
// reset link mailed to the user.
func GeneratePasswordResetToken(userID uint, secret string) (string, error) {
	claims := jwt.MapClaims{
		"id":   userID,
		"type": "password_reset",
		"exp":  time.Now().Add(ResetTokenValidity).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ValidatePasswordResetToken returns the user id the reset token was issued
// for.
func ValidatePasswordResetToken(tokenString string, secret string) (uint, error) {
	claims, err := ValidateAndGetClaims(tokenString, secret)
	if err != nil {
		return 0, err
	}
	if claims["type"] != "password_reset" {
		return 0, errors.New("not a password reset token")
	}
	id, ok := claims["id"].(float64)
	if !ok {
		return 0, errors.New("invalid user id in token")
	}
	return uint(id), nil
}
