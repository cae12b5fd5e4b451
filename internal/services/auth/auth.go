// Package auth contém a lógica de cadastro, autenticação e redefinição
// de senha dos perfis.
package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hbrsolucoes/ponto-simulado/internal/lib/jwt"
	"github.com/hbrsolucoes/ponto-simulado/internal/lib/password"
	"github.com/hbrsolucoes/ponto-simulado/internal/models"
	profilesvc "github.com/hbrsolucoes/ponto-simulado/internal/services/profile"
	"github.com/hbrsolucoes/ponto-simulado/internal/storage/repository"
)

// ErrInvalidCredentials indica e-mail inexistente ou senha incorreta.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ProfileRepository descreve o contrato de perfis usado pelo serviço.
type ProfileRepository interface {
	CreateProfile(ctx context.Context, p models.Profile) (string, error)
	GetProfileByEmail(ctx context.Context, email string) (*models.Profile, error)
	UpdatePasswordHash(ctx context.Context, uid, hash string) error
	CreateResetToken(ctx context.Context, uid, tokenHash string, expiresAt time.Time) error
	ConsumeResetToken(ctx context.Context, tokenHash string) (string, error)
}

// ProfileResolver descreve a resolução de perfil executada no login.
type ProfileResolver interface {
	Resolve(ctx context.Context, uid, email string) (*models.Profile, error)
}

// Publisher publica mensagens de e-mail na fila.
type Publisher interface {
	Publish(exchange, routingKey string, message any) error
}

// LoginResult agrega o resultado de um login bem-sucedido.
type LoginResult struct {
	Token      string
	UID        string
	Role       string
	RedirectTo string
}

// Service implementa cadastro, login, validação de token e redefinição
// de senha.
type Service struct {
	profiles      ProfileRepository
	resolver      ProfileResolver
	jwtMaker      jwt.Maker
	queue         Publisher
	resetTokenTTL time.Duration
	appURL        string
	log           *slog.Logger
}

// New cria o serviço de autenticação.
func New(profiles ProfileRepository, resolver ProfileResolver, jwtMaker jwt.Maker,
	queue Publisher, resetTokenTTL time.Duration, appURL string, log *slog.Logger) *Service {
	return &Service{
		profiles:      profiles,
		resolver:      resolver,
		jwtMaker:      jwtMaker,
		queue:         queue,
		resetTokenTTL: resetTokenTTL,
		appURL:        appURL,
		log:           log,
	}
}

// Register cria a identidade e a linha de perfil com o papel padrão
// visitante e assinatura inativa. Devolve o uid criado.
func (s *Service) Register(ctx context.Context, email, rawPassword string) (string, error) {
	const op = "auth.Register"
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	p := models.Profile{
		Email:              email,
		PasswordHash:       hashed,
		Role:               models.RoleVisitante,
		SubscriptionActive: false,
	}
	uid, err := s.profiles.CreateProfile(ctx, p)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if err := s.queue.Publish("emails", "email.welcome", models.WelcomeEmail{Email: email}); err != nil {
		s.log.Warn("failed to enqueue welcome email", slog.Any("err", err))
	}
	return uid, nil
}

// Login verifica as credenciais, resolve o perfil e emite o token.
// O destino do redirecionamento é derivado do papel resolvido, nunca
// do que o cliente informa.
func (s *Service) Login(ctx context.Context, email, rawPassword string) (*LoginResult, error) {
	const op = "auth.Login"
	stored, err := s.profiles.GetProfileByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := password.CompareHash(stored.PasswordHash, rawPassword); err != nil {
		return nil, ErrInvalidCredentials
	}

	resolved, err := s.resolver.Resolve(ctx, stored.UID, stored.Email)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	token, err := s.jwtMaker.GenerateToken(resolved.UID, resolved.Email, resolved.Role)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &LoginResult{
		Token:      token,
		UID:        resolved.UID,
		Role:       resolved.Role,
		RedirectTo: profilesvc.RedirectFor(resolved.Role),
	}, nil
}

// ValidateToken verifica o token e devolve as claims resumidas.
func (s *Service) ValidateToken(_ context.Context, token string) (*models.TokenInfo, error) {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, err
	}
	return &models.TokenInfo{
		UID:   claims.Subject,
		Email: claims.Email,
		Role:  claims.Role,
	}, nil
}

// ResetPassword solicita a redefinição de senha. A resposta é sempre a
// mesma, exista ou não uma conta para o e-mail informado.
func (s *Service) ResetPassword(ctx context.Context, email string) error {
	const op = "auth.ResetPassword"
	p, err := s.profiles.GetProfileByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			s.log.Info("password reset requested for unknown email")
			return nil
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	token, err := generateResetToken()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	hash := sha256.Sum256([]byte(token))
	expiresAt := time.Now().Add(s.resetTokenTTL)
	if err := s.profiles.CreateResetToken(ctx, p.UID, hex.EncodeToString(hash[:]), expiresAt); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	msg := models.ResetEmail{
		Email:    p.Email,
		ResetURL: fmt.Sprintf("%s/reset-password?token=%s", s.appURL, token),
	}
	if err := s.queue.Publish("emails", "email.reset", msg); err != nil {
		s.log.Error("failed to enqueue reset email", slog.Any("err", err))
	}
	return nil
}

// ConfirmReset troca a senha do perfil dono do token e o invalida.
func (s *Service) ConfirmReset(ctx context.Context, token, newPassword string) error {
	const op = "auth.ConfirmReset"
	hash := sha256.Sum256([]byte(token))
	uid, err := s.profiles.ConsumeResetToken(ctx, hex.EncodeToString(hash[:]))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	hashed, err := password.GetHash(newPassword)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.profiles.UpdatePasswordHash(ctx, uid, hashed); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("password reset completed", slog.String("uid", uid))
	return nil
}

// generateResetToken cria um token aleatório seguro em hex.
func generateResetToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
