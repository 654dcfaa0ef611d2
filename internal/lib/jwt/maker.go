// Package jwt выпускает и проверяет подписанные JWT с идентификатором пользователя.
//
// Токен несёт единственный собственный claim — userId, подписывается HS256
// общим секретом процесса и живёт tokenTTL (по умолчанию час).
// Смена секрета делает недействительными все выданные токены.
package jwt

import (
	"errors"
	"time"
)

// DefaultTokenTTL — время жизни токена, если в конфиге не задано иное.
const DefaultTokenTTL = time.Hour

// Классы ошибок проверки токена. Возвращаются обёрнутыми, проверять через errors.Is.
var (
	ErrExpiredToken     = errors.New("token has expired")
	ErrInvalidSignature = errors.New("token signature is invalid")
	ErrMalformedToken   = errors.New("token is malformed")
)

// Maker описывает выпуск и проверку токенов.
type Maker interface {
	GenerateToken(userID string) (string, error)
	ParseToken(tokenStr string) (*CustomClaims, error)
	VerifyToken(tokenStr string) (string, error)
}

// MakerImpl реализует Maker на секретном ключе и TTL.
type MakerImpl struct {
	secretKey []byte
	tokenTTL  time.Duration
}

// NewJWTMaker создаёт MakerImpl. Нулевой ttl заменяется на DefaultTokenTTL.
func NewJWTMaker(secretKey string, ttl time.Duration) *MakerImpl {
	if ttl == 0 {
		ttl = DefaultTokenTTL
	}
	return &MakerImpl{
		secretKey: []byte(secretKey),
		tokenTTL:  ttl,
	}
}

// TTL возвращает время жизни выпускаемых токенов.
func (j *MakerImpl) TTL() time.Duration {
	return j.tokenTTL
}
