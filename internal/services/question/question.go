// Package question contém a lógica de negócio do banco de questões,
// incluindo o cache das listagens.
package question

import (
	"context"
	"log/slog"
	"time"

	"github.com/hbrsolucoes/ponto-simulado/internal/models"
)

// Repository define as operações de questões no armazenamento.
type Repository interface {
	CreateQuestion(ctx context.Context, q models.Question) (int, error)
	ListQuestions(ctx context.Context, search string, limit, offset int) ([]*models.Question, error)
	UpdateQuestion(ctx context.Context, q models.Question, id int) (int, error)
	RemoveQuestion(ctx context.Context, id int) (int, error)
}

// Cache define as operações de cache usadas pelo serviço.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// Service implementa o CRUD de questões com cache da primeira página.
type Service struct {
	repo  Repository
	cache Cache
	log   *slog.Logger
}

// New cria o serviço de questões.
func New(repo Repository, cache Cache, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

const firstPageKey = "questoes:firstpage"

// Create valida e insere uma nova questão, invalidando o cache.
func (s *Service) Create(ctx context.Context, req models.DummyQuestion) (int, error) {
	q := models.Question{
		Statement:     req.Statement,
		Options:       req.Options,
		CorrectOption: req.CorrectOption,
		Category:      req.Category,
		Banca:         req.Banca,
		Active:        req.Active,
	}
	id, err := s.repo.CreateQuestion(ctx, q)
	if err != nil {
		return 0, err
	}
	s.log.Info("created new question", slog.Int("id", id))

	if err := s.cache.Invalidate(firstPageKey); err != nil {
		s.log.Warn("failed to invalidate question cache", slog.Any("err", err))
	}
	return id, nil
}

// List devolve as questões filtradas; a primeira página sem filtro é
// servida do cache quando disponível.
func (s *Service) List(ctx context.Context, search string, limit, offset int) ([]*models.Question, error) {
	cacheable := search == "" && offset == 0

	if cacheable {
		var cached []*models.Question
		found, err := s.cache.Get(firstPageKey, &cached)
		if err != nil {
			s.log.Warn("failed to read question cache", slog.Any("err", err))
		}
		if found && len(cached) >= limit {
			return cached[:limit], nil
		}
	}

	result, err := s.repo.ListQuestions(ctx, search, limit, offset)
	if err != nil {
		return nil, err
	}

	if cacheable {
		if err := s.cache.Set(firstPageKey, result, time.Minute); err != nil {
			s.log.Warn("failed to cache questions", slog.Any("err", err))
		}
	}
	return result, nil
}

// Update atualiza a questão pelo ID e invalida o cache.
func (s *Service) Update(ctx context.Context, req models.DummyQuestion, id int) (int, error) {
	q := models.Question{
		Statement:     req.Statement,
		Options:       req.Options,
		CorrectOption: req.CorrectOption,
		Category:      req.Category,
		Banca:         req.Banca,
		Active:        req.Active,
	}
	count, err := s.repo.UpdateQuestion(ctx, q, id)
	if err != nil {
		return 0, err
	}
	if err := s.cache.Invalidate(firstPageKey); err != nil {
		s.log.Warn("failed to invalidate question cache", slog.Any("err", err))
	}
	return count, nil
}

// Remove apaga a questão pelo ID. A confirmação explícita é exigida na
// borda HTTP; sem ela este método não é chamado.
func (s *Service) Remove(ctx context.Context, id int) (int, error) {
	count, err := s.repo.RemoveQuestion(ctx, id)
	if err != nil {
		return 0, err
	}
	if err := s.cache.Invalidate(firstPageKey); err != nil {
		s.log.Warn("failed to invalidate question cache", slog.Any("err", err))
	}
	s.log.Info("removed question", slog.Int("id", id), slog.Int("count", count))
	return count, nil
}
