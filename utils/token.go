package utils

import (
	"realtime-service/config"

	"github.com/golang-jwt/jwt/v5"
)

// TokenMetadata struct to describe metadata in JWT.
type TokenMetadata struct {
	Id   string
	Role string
	Exp  int64
}

// IsAdmin reports whether the token carries the admin role claim.
func (t *TokenMetadata) IsAdmin() bool {
	return t != nil && t.Role == "admin"
}

func CheckAndExtractTokenMetadata(token string, key string) (*TokenMetadata, error) {
	t, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		return []byte(config.Config(key)), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := t.Claims.(jwt.MapClaims); ok && t.Valid {
		metadata := &TokenMetadata{}
		if id, ok := claims["id"].(string); ok {
			metadata.Id = id
		}
		if role, ok := claims["role"].(string); ok {
			metadata.Role = role
		}
		if exp, ok := claims["exp"].(float64); ok {
			metadata.Exp = int64(exp)
		}
		return metadata, nil
	}

	return nil, err
}
