package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
)

// Identity is what the review endpoints need to know about a caller.
// Tokens are issued by the auth service; this package only verifies them.
type Identity struct {
	UserID     string
	Role       string
	ProviderID string
}

// GenerateToken creates a signed JWT for the given identity. The token
// expires after the specified duration.
func GenerateToken(secret string, id Identity, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":  id.UserID,
		"role": id.Role,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(duration).Unix(),
	}
	if id.ProviderID != "" {
		claims["provider_id"] = id.ProviderID
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// HashToken computes a SHA-256 hash of the token string.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(tokenString, secret string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
}

// ExtractIdentity validates tokenString and reads the caller identity from
// its claims. The "sub" claim is mandatory.
func ExtractIdentity(tokenString, secret string) (*Identity, error) {
	token, err := ValidateToken(tokenString, secret)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, errors.New("token does not contain a valid 'sub' claim")
	}
	role, _ := claims["role"].(string)
	providerID, _ := claims["provider_id"].(string)

	return &Identity{UserID: sub, Role: role, ProviderID: providerID}, nil
}
