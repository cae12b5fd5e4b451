// Package models contém o modelo de domínio da aplicação: perfis de
// usuário, questões, apostilas e concursos, além das estruturas de
// entrada usadas pelos handlers HTTP.
package models

import "time"

// Papéis reconhecidos pela aplicação. Exatamente um papel é
// autoritativo por perfil.
const (
	RoleAdmin     = "admin"
	RoleAssinante = "assinante"
	RoleVisitante = "visitante"
)

// Profile representa o registro de perfil associado a uma identidade.
// O campo PasswordHash nunca é serializado em respostas.
type Profile struct {
	UID                string    `json:"uid"`
	Email              string    `json:"email"`
	PasswordHash       string    `json:"-"`
	Role               string    `json:"role"`
	SubscriptionActive bool      `json:"subscription_active"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// DummyProfileUpdate recebe as alterações de perfil feitas pela tela
// administrativa: papel e situação da assinatura.
type DummyProfileUpdate struct {
	Role               string `json:"role" validate:"required,oneof=admin assinante visitante"`
	SubscriptionActive bool   `json:"subscription_active"`
}

// TokenInfo resume as claims de um token válido para uso nos middlewares.
type TokenInfo struct {
	UID   string
	Email string
	Role  string
}
