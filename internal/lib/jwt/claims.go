package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CustomClaims описывает содержимое токена.
type CustomClaims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// GenerateToken создает токен для userID со сроком действия now+tokenTTL.
func (j *MakerImpl) GenerateToken(userID string) (string, error) {
	const op = "jwt.GenerateToken"
	now := time.Now()
	claims := CustomClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.tokenTTL)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secretKey)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return token, nil
}

// ParseToken проверяет подпись и срок действия токена и возвращает его claims.
//
// Ошибка всегда оборачивает один из ErrExpiredToken, ErrInvalidSignature, ErrMalformedToken.
func (j *MakerImpl) ParseToken(tokenStr string) (*CustomClaims, error) {
	const op = "jwt.ParseToken"

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	claims := &CustomClaims{}
	token, err := parser.ParseWithClaims(tokenStr, claims, func(_ *jwt.Token) (any, error) {
		return j.secretKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, classify(err), err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidSignature)
	}
	if claims.UserID == "" {
		return nil, fmt.Errorf("%s: %w: missing userId claim", op, ErrMalformedToken)
	}
	return claims, nil
}

// VerifyToken проверяет токен и возвращает идентификатор пользователя.
func (j *MakerImpl) VerifyToken(tokenStr string) (string, error) {
	claims, err := j.ParseToken(tokenStr)
	if err != nil {
		return "", err
	}
	return claims.UserID, nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpiredToken
	case errors.Is(err, jwt.ErrTokenMalformed),
		errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
		return ErrMalformedToken
	default:
		return ErrInvalidSignature
	}
}
