// Package concurso contém a lógica de negócio das listagens de
// concursos públicos.
package concurso

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hbrsolucoes/ponto-simulado/internal/models"
)

// ErrInvalidDates indica datas malformadas ou período de inscrição
// invertido na requisição.
var ErrInvalidDates = errors.New("invalid concurso dates")

// Repository define as operações de concursos no armazenamento.
type Repository interface {
	CreateConcurso(ctx context.Context, c models.Concurso) (int, error)
	ListConcursos(ctx context.Context, search string, limit, offset int) ([]*models.Concurso, error)
	UpdateConcurso(ctx context.Context, c models.Concurso, id int) (int, error)
	RemoveConcurso(ctx context.Context, id int) (int, error)
}

// Cache define as operações de cache usadas pelo serviço.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// Service implementa o CRUD de concursos.
type Service struct {
	repo  Repository
	cache Cache
	log   *slog.Logger
}

// New cria o serviço de concursos.
func New(repo Repository, cache Cache, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

const firstPageKey = "concursos:firstpage"

// dateLayout é o formato das datas recebidas nas requisições.
const dateLayout = "02-01-2006"

func fromDummy(req models.DummyConcurso) (models.Concurso, error) {
	inscriptionStart, err := time.Parse(dateLayout, req.InscriptionStart)
	if err != nil {
		return models.Concurso{}, fmt.Errorf("%w: inscription start: %v", ErrInvalidDates, err)
	}
	inscriptionEnd, err := time.Parse(dateLayout, req.InscriptionEnd)
	if err != nil {
		return models.Concurso{}, fmt.Errorf("%w: inscription end: %v", ErrInvalidDates, err)
	}
	if inscriptionEnd.Before(inscriptionStart) {
		return models.Concurso{}, fmt.Errorf("%w: inscription end before start", ErrInvalidDates)
	}

	var examDate *time.Time
	if req.ExamDate != "" {
		parsed, err := time.Parse(dateLayout, req.ExamDate)
		if err != nil {
			return models.Concurso{}, fmt.Errorf("%w: exam date: %v", ErrInvalidDates, err)
		}
		examDate = &parsed
	}

	return models.Concurso{
		Title:            req.Title,
		Organ:            req.Organ,
		Banca:            req.Banca,
		Vacancies:        req.Vacancies,
		Salary:           req.Salary,
		InscriptionStart: inscriptionStart,
		InscriptionEnd:   inscriptionEnd,
		ExamDate:         examDate,
		EditalURL:        req.EditalURL,
		Active:           req.Active,
	}, nil
}

// Create valida as datas e insere um novo concurso.
func (s *Service) Create(ctx context.Context, req models.DummyConcurso) (int, error) {
	c, err := fromDummy(req)
	if err != nil {
		return 0, err
	}
	id, err := s.repo.CreateConcurso(ctx, c)
	if err != nil {
		return 0, err
	}
	s.log.Info("created new concurso", slog.Int("id", id))

	if err := s.cache.Invalidate(firstPageKey); err != nil {
		s.log.Warn("failed to invalidate concurso cache", slog.Any("err", err))
	}
	return id, nil
}

// List devolve os concursos filtrados; a primeira página sem filtro é
// servida do cache quando disponível.
func (s *Service) List(ctx context.Context, search string, limit, offset int) ([]*models.Concurso, error) {
	cacheable := search == "" && offset == 0

	if cacheable {
		var cached []*models.Concurso
		found, err := s.cache.Get(firstPageKey, &cached)
		if err != nil {
			s.log.Warn("failed to read concurso cache", slog.Any("err", err))
		}
		if found && len(cached) >= limit {
			return cached[:limit], nil
		}
	}

	result, err := s.repo.ListConcursos(ctx, search, limit, offset)
	if err != nil {
		return nil, err
	}

	if cacheable {
		if err := s.cache.Set(firstPageKey, result, time.Minute); err != nil {
			s.log.Warn("failed to cache concursos", slog.Any("err", err))
		}
	}
	return result, nil
}

// Update atualiza o concurso pelo ID.
func (s *Service) Update(ctx context.Context, req models.DummyConcurso, id int) (int, error) {
	c, err := fromDummy(req)
	if err != nil {
		return 0, err
	}
	count, err := s.repo.UpdateConcurso(ctx, c, id)
	if err != nil {
		return 0, err
	}
	if err := s.cache.Invalidate(firstPageKey); err != nil {
		s.log.Warn("failed to invalidate concurso cache", slog.Any("err", err))
	}
	return count, nil
}

// Remove apaga o concurso pelo ID.
func (s *Service) Remove(ctx context.Context, id int) (int, error) {
	count, err := s.repo.RemoveConcurso(ctx, id)
	if err != nil {
		return 0, err
	}
	if err := s.cache.Invalidate(firstPageKey); err != nil {
		s.log.Warn("failed to invalidate concurso cache", slog.Any("err", err))
	}
	return count, nil
}
