// Package jwt реализует генерацию и парсинг JWT токенов сервиса.
//
// Maker подписывает токены HS256 одним секретом с фиксированным временем жизни.
// Access- и refresh-токены — это два разных Maker с разными секретами и TTL.
// В subject токена хранится строковый user_uuid, в jti — уникальный
// идентификатор выпуска.
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrTokenExpired токен корректен, но срок его действия истёк.
	ErrTokenExpired = errors.New("token has expired")
	// ErrInvalidToken токен повреждён, подделан или подписан другим ключом.
	ErrInvalidToken = errors.New("invalid token")
)

// Maker описывает контракт выпуска и проверки токенов.
type Maker interface {
	GenerateToken(subject string) (string, error)
	ParseToken(tokenStr string) (*jwt.RegisteredClaims, error)
}

// MakerImpl реализация Maker на HMAC-SHA256.
type MakerImpl struct {
	secretKey string
	tokenTTL  time.Duration
}

// NewMaker создает Maker с заданным секретом и временем жизни токена.
func NewMaker(secretKey string, tokenTTL time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  tokenTTL,
	}
}

// GenerateToken создает JWT токен с заданным subject, подписывая его секретным ключом.
func (j *MakerImpl) GenerateToken(subject string) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(j.tokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

// ParseToken парсит JWT токен, проверяет его подпись и срок действия.
//
// Истёкший токен и подделанный/повреждённый токен различаются:
// первый даёт ErrTokenExpired, второй — ErrInvalidToken.
func (j *MakerImpl) ParseToken(tokenStr string) (*jwt.RegisteredClaims, error) {
	const op = "jwt.ParseToken"
	token, err := jwt.ParseWithClaims(tokenStr, &jwt.RegisteredClaims{},
		func(_ *jwt.Token) (any, error) {
			return []byte(j.secretKey), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%s: %w", op, ErrTokenExpired)
		}
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}
	return claims, nil
}
