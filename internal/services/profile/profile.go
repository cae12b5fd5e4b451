// Package profile implementa a resolução de perfis: a tradução de uma
// identidade autenticada no registro de perfil que carrega o papel e a
// situação da assinatura.
//
// A resolução concentra duas regras de negócio: o e-mail administrativo
// configurado sempre resolve para o papel admin (provisionando a linha
// quando ausente e corrigindo o papel quando divergente), e resoluções
// concorrentes para o mesmo uid compartilham uma única consulta.
package profile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/hbrsolucoes/ponto-simulado/internal/models"
	"github.com/hbrsolucoes/ponto-simulado/internal/storage/repository"
)

// Repository define as operações de perfil usadas pelo resolvedor.
type Repository interface {
	GetProfileByUID(ctx context.Context, uid string) (*models.Profile, error)
	CreateProfile(ctx context.Context, p models.Profile) (string, error)
	UpdateProfileRole(ctx context.Context, uid, role string) error
	ListProfiles(ctx context.Context, limit, offset int) ([]*models.Profile, error)
	UpdateProfileAccess(ctx context.Context, uid, role string, subscriptionActive bool) (int, error)
}

// Cache define as operações de cache usadas pelo resolvedor.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// Service resolve perfis com deduplicação de consultas em voo e cache.
type Service struct {
	repo       Repository
	cache      Cache
	group      singleflight.Group
	adminEmail string
	log        *slog.Logger
}

// New cria o serviço de perfis.
func New(repo Repository, cache Cache, adminEmail string, log *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		cache:      cache,
		adminEmail: adminEmail,
		log:        log,
	}
}

// RedirectFor devolve a rota de destino após a resolução, de acordo
// com o papel do perfil.
func RedirectFor(role string) string {
	switch role {
	case models.RoleAdmin:
		return "/admin"
	case models.RoleAssinante:
		return "/dashboard"
	default:
		return "/visitante"
	}
}

func cacheKey(uid string) string {
	return fmt.Sprintf("profile:%s", uid)
}

// Resolve devolve o perfil da identidade informada.
//
// Quando a linha não existe e o e-mail é o administrativo, o perfil é
// provisionado com papel admin. Quando a linha existe com papel
// divergente para o e-mail administrativo, o papel é corrigido no
// armazenamento antes do retorno. Chamadas concorrentes para o mesmo
// uid compartilham uma única resolução.
func (s *Service) Resolve(ctx context.Context, uid, email string) (*models.Profile, error) {
	var cached models.Profile
	found, err := s.cache.Get(cacheKey(uid), &cached)
	if err != nil {
		s.log.Warn("failed to read profile cache", slog.String("uid", uid), slog.Any("err", err))
	}
	if found {
		return &cached, nil
	}

	v, err, _ := s.group.Do(uid, func() (any, error) {
		return s.resolve(ctx, uid, email)
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.Profile), nil
}

func (s *Service) resolve(ctx context.Context, uid, email string) (*models.Profile, error) {
	const op = "profile.Resolve"

	p, err := s.repo.GetProfileByUID(ctx, uid)
	if errors.Is(err, repository.ErrProfileNotFound) && email == s.adminEmail {
		provisioned := models.Profile{
			Email:              email,
			Role:               models.RoleAdmin,
			SubscriptionActive: true,
		}
		newUID, createErr := s.repo.CreateProfile(ctx, provisioned)
		if createErr != nil {
			return nil, fmt.Errorf("%s: %w", op, createErr)
		}
		s.log.Info("provisioned admin profile", slog.String("uid", newUID))
		p, err = s.repo.GetProfileByUID(ctx, newUID)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if p.Email == s.adminEmail && p.Role != models.RoleAdmin {
		if err := s.repo.UpdateProfileRole(ctx, p.UID, models.RoleAdmin); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		p.Role = models.RoleAdmin
		s.log.Info("corrected admin profile role", slog.String("uid", p.UID))
	}

	if err := s.cache.Set(cacheKey(p.UID), p, time.Minute); err != nil {
		s.log.Warn("failed to cache profile", slog.String("uid", p.UID), slog.Any("err", err))
	}
	return p, nil
}

// List devolve os perfis cadastrados com paginação.
func (s *Service) List(ctx context.Context, limit, offset int) ([]*models.Profile, error) {
	return s.repo.ListProfiles(ctx, limit, offset)
}

// UpdateAccess aplica as alterações administrativas de papel e
// assinatura e invalida o cache do perfil.
func (s *Service) UpdateAccess(ctx context.Context, uid string, req models.DummyProfileUpdate) (int, error) {
	count, err := s.repo.UpdateProfileAccess(ctx, uid, req.Role, req.SubscriptionActive)
	if err != nil {
		return 0, err
	}
	if err := s.cache.Invalidate(cacheKey(uid)); err != nil {
		s.log.Warn("failed to invalidate profile cache", slog.String("uid", uid), slog.Any("err", err))
	}
	return count, nil
}
