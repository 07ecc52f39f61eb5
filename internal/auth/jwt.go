package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type JWTMaker struct {
	secret []byte
}

func NewJWTMaker(secret string) *JWTMaker {
	return &JWTMaker{secret: []byte(secret)}
}

// GenerateToken issues a signed session token. Each token carries a fresh
// session id so it can be revoked individually.
func (m *JWTMaker) GenerateToken(userID, email string, ttl time.Duration) (string, *UserClaims, error) {
	sessionID, err := uuid.NewRandom()
	if err != nil {
		return "", nil, fmt.Errorf("generate session id: %w", err)
	}

	claims, err := NewUserClaims(userID, email, ttl, sessionID.String())
	if err != nil {
		return "", nil, err
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return signed, claims, nil
}

func (m *JWTMaker) VerifyToken(tokenStr string) (*UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*UserClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, jwt.ErrTokenUnverifiable
}
