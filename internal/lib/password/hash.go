// Package password реализует хеширование и проверку паролей на основе bcrypt.
//
// Hasher создает bcrypt-хеш с уникальной солью на каждый вызов,
// Verify сравнивает введённый пароль с сохранённым хешем за постоянное время.
package password

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// maxBcryptLen — предел длины входа bcrypt в байтах.
const maxBcryptLen = 72

// Hasher хеширует пароли с заданной стоимостью bcrypt.
type Hasher struct {
	cost int
}

// NewHasher создает Hasher. Стоимость вне допустимого диапазона bcrypt
// заменяется на bcrypt.DefaultCost (10).
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Cost возвращает используемую стоимость bcrypt.
func (h *Hasher) Cost() int {
	return h.cost
}

// Hash принимает пароль пользователя и возвращает его bcrypt-хеш.
func (h *Hasher) Hash(plaintext string) (string, error) {
	const op = "password.Hash"
	hashed, err := bcrypt.GenerateFromPassword(prepare(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(hashed), nil
}

// Verify возвращает true, если пароль соответствует хешу.
func (h *Hasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), prepare(plaintext)) == nil
}

// prepare сворачивает длинные пароли через SHA-256, иначе bcrypt
// отвергает всё, что длиннее 72 байт.
func prepare(plaintext string) []byte {
	if len(plaintext) <= maxBcryptLen {
		return []byte(plaintext)
	}
	sum := sha256.Sum256([]byte(plaintext))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}
