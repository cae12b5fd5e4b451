// Package jwt implementa a geração e a validação de tokens JWT com
// claims próprias da aplicação (uid, e-mail e papel do usuário).
package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CustomClaims descreve os dados de sessão carregados no token.
type CustomClaims struct {
	Email                string `json:"email"` // E-mail do usuário autenticado
	Role                 string `json:"role"`  // Papel resolvido no momento da emissão
	jwt.RegisteredClaims        // Claims padrão (Subject carrega o uid)
}

// Maker descreve a interface de emissão e validação de tokens.
type Maker interface {
	GenerateToken(uid, email, role string) (string, error)
	ParseToken(tokenStr string) (*CustomClaims, error)
}

// MakerImpl implementa Maker com chave simétrica HS256 e TTL fixo.
type MakerImpl struct {
	secretKey string
	tokenTTL  time.Duration
}

// NewJWTMaker cria um MakerImpl a partir da chave secreta e do TTL.
func NewJWTMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}

// GenerateToken emite um token assinado para o usuário informado.
func (j *MakerImpl) GenerateToken(uid, email, role string) (string, error) {
	claims := CustomClaims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uid,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(j.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

// ParseToken valida a assinatura e a expiração do token e devolve as claims.
func (j *MakerImpl) ParseToken(tokenStr string) (*CustomClaims, error) {
	const op = "jwt.ParseToken"
	token, err := jwt.ParseWithClaims(tokenStr, &CustomClaims{}, func(_ *jwt.Token) (any, error) {
		return []byte(j.secretKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%s: invalid token", op)
	}
	return claims, nil
}
