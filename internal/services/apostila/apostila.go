// Package apostila contém a lógica de negócio das apostilas, incluindo
// o upload em duas fases: gravação do arquivo no armazenamento de
// objetos seguida da persistência do registro. Quando a segunda fase
// falha, o arquivo recém-gravado é removido para não deixar objetos
// órfãos.
package apostila

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/hbrsolucoes/ponto-simulado/internal/models"
)

// Repository define as operações de apostilas no armazenamento.
type Repository interface {
	CreateApostila(ctx context.Context, a models.Apostila) (int, error)
	GetApostila(ctx context.Context, id int) (*models.Apostila, error)
	ListApostilas(ctx context.Context, search string, limit, offset int) ([]*models.Apostila, error)
	UpdateApostila(ctx context.Context, a models.Apostila, id int) (int, error)
	RemoveApostila(ctx context.Context, id int) (int, string, error)
}

// ObjectStore define o armazenamento de arquivos usado no upload.
type ObjectStore interface {
	Put(ctx context.Context, name string, r io.Reader, size int64, contentType string) (string, error)
	Remove(ctx context.Context, name string) error
}

// Cache define as operações de cache usadas pelo serviço.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// Service implementa o CRUD de apostilas e o upload compensado.
type Service struct {
	repo  Repository
	store ObjectStore
	cache Cache
	log   *slog.Logger
}

// New cria o serviço de apostilas.
func New(repo Repository, store ObjectStore, cache Cache, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		store: store,
		cache: cache,
		log:   log,
	}
}

const firstPageKey = "apostilas:firstpage"

// Upload grava o arquivo no armazenamento de objetos e persiste o
// registro da apostila apontando para a URL pública.
//
// A operação não é atômica: quando a inserção falha após a gravação do
// arquivo, o objeto é removido em compensação. A remoção é melhor
// esforço; falhas são registradas para limpeza posterior.
func (s *Service) Upload(ctx context.Context, req models.DummyApostila, filename string,
	file io.Reader, size int64, contentType string) (int, string, error) {
	const op = "apostila.Upload"

	objectName := uuid.New().String() + filepath.Ext(filename)
	fileURL, err := s.store.Put(ctx, objectName, file, size, contentType)
	if err != nil {
		return 0, "", fmt.Errorf("%s: %w", op, err)
	}

	a := models.Apostila{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		FileURL:     fileURL,
		ObjectName:  objectName,
		FileSize:    size,
		Active:      req.Active,
	}
	id, err := s.repo.CreateApostila(ctx, a)
	if err != nil {
		if removeErr := s.store.Remove(ctx, objectName); removeErr != nil {
			s.log.Error("failed to remove orphaned object after insert failure",
				slog.String("object", objectName), slog.Any("err", removeErr))
		}
		return 0, "", fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("uploaded apostila", slog.Int("id", id), slog.String("object", objectName))

	if err := s.cache.Invalidate(firstPageKey); err != nil {
		s.log.Warn("failed to invalidate apostila cache", slog.Any("err", err))
	}
	return id, fileURL, nil
}

// Get devolve a apostila pelo ID.
func (s *Service) Get(ctx context.Context, id int) (*models.Apostila, error) {
	return s.repo.GetApostila(ctx, id)
}

// List devolve as apostilas filtradas; a primeira página sem filtro é
// servida do cache quando disponível.
func (s *Service) List(ctx context.Context, search string, limit, offset int) ([]*models.Apostila, error) {
	cacheable := search == "" && offset == 0

	if cacheable {
		var cached []*models.Apostila
		found, err := s.cache.Get(firstPageKey, &cached)
		if err != nil {
			s.log.Warn("failed to read apostila cache", slog.Any("err", err))
		}
		if found && len(cached) >= limit {
			return cached[:limit], nil
		}
	}

	result, err := s.repo.ListApostilas(ctx, search, limit, offset)
	if err != nil {
		return nil, err
	}

	if cacheable {
		if err := s.cache.Set(firstPageKey, result, time.Minute); err != nil {
			s.log.Warn("failed to cache apostilas", slog.Any("err", err))
		}
	}
	return result, nil
}

// Update atualiza os metadados da apostila pelo ID.
func (s *Service) Update(ctx context.Context, req models.DummyApostila, id int) (int, error) {
	a := models.Apostila{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Active:      req.Active,
	}
	count, err := s.repo.UpdateApostila(ctx, a, id)
	if err != nil {
		return 0, err
	}
	if err := s.cache.Invalidate(firstPageKey); err != nil {
		s.log.Warn("failed to invalidate apostila cache", slog.Any("err", err))
	}
	return count, nil
}

// Remove apaga o registro e o arquivo da apostila. A remoção do
// arquivo é melhor esforço após o registro sair do banco.
func (s *Service) Remove(ctx context.Context, id int) (int, error) {
	count, objectName, err := s.repo.RemoveApostila(ctx, id)
	if err != nil {
		return 0, err
	}
	if count > 0 && objectName != "" {
		if err := s.store.Remove(ctx, objectName); err != nil {
			s.log.Error("failed to remove apostila object",
				slog.String("object", objectName), slog.Any("err", err))
		}
	}
	if err := s.cache.Invalidate(firstPageKey); err != nil {
		s.log.Warn("failed to invalidate apostila cache", slog.Any("err", err))
	}
	return count, nil
}
