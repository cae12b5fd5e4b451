package apostila_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/hbrsolucoes/ponto-simulado/internal/models"
	"github.com/hbrsolucoes/ponto-simulado/internal/services/apostila"
)

type RepoMock struct {
	mock.Mock
}

func (m *RepoMock) CreateApostila(ctx context.Context, a models.Apostila) (int, error) {
	args := m.Called(ctx, a)
	return args.Int(0), args.Error(1)
}

func (m *RepoMock) GetApostila(ctx context.Context, id int) (*models.Apostila, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Apostila), args.Error(1)
}

func (m *RepoMock) ListApostilas(ctx context.Context, search string, limit, offset int) ([]*models.Apostila, error) {
	args := m.Called(ctx, search, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Apostila), args.Error(1)
}

func (m *RepoMock) UpdateApostila(ctx context.Context, a models.Apostila, id int) (int, error) {
	args := m.Called(ctx, a, id)
	return args.Int(0), args.Error(1)
}

func (m *RepoMock) RemoveApostila(ctx context.Context, id int) (int, string, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.String(1), args.Error(2)
}

type StoreMock struct {
	mock.Mock
}

func (m *StoreMock) Put(ctx context.Context, name string, r io.Reader, size int64, contentType string) (string, error) {
	args := m.Called(ctx, name, r, size, contentType)
	return args.String(0), args.Error(1)
}

func (m *StoreMock) Remove(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

type CacheMock struct {
	mock.Mock
}

func (m *CacheMock) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}

func (m *CacheMock) Set(key string, value any, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *CacheMock) Invalidate(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func newCacheStub() *CacheMock {
	c := new(CacheMock)
	c.On("Get", mock.Anything, mock.Anything).Return(false, nil)
	c.On("Set", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	c.On("Invalidate", mock.Anything).Return(nil)
	return c
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(discard{}, nil))
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

func TestApostilaService_Upload(t *testing.T) {
	req := models.DummyApostila{Title: "Direito Constitucional", Category: "direito", Active: true}

	t.Run("upload grava arquivo e persiste registro", func(t *testing.T) {
		repo := new(RepoMock)
		store := new(StoreMock)

		store.On("Put", mock.Anything, mock.MatchedBy(func(name string) bool {
			return strings.HasSuffix(name, ".pdf")
		}), mock.Anything, int64(1024), "application/pdf").
			Return("http://storage/apostilas/obj.pdf", nil).Once()
		repo.On("CreateApostila", mock.Anything, mock.MatchedBy(func(a models.Apostila) bool {
			return a.Title == req.Title &&
				a.FileURL == "http://storage/apostilas/obj.pdf" &&
				a.ObjectName != "" &&
				a.FileSize == 1024
		})).Return(7, nil).Once()

		svc := apostila.New(repo, store, newCacheStub(), discardLogger())

		id, fileURL, err := svc.Upload(context.Background(), req, "material.pdf",
			strings.NewReader("conteudo"), 1024, "application/pdf")
		assert.NoError(t, err)
		assert.Equal(t, 7, id)
		assert.Equal(t, "http://storage/apostilas/obj.pdf", fileURL)

		repo.AssertExpectations(t)
		store.AssertExpectations(t)
	})

	t.Run("falha na insercao remove o objeto gravado", func(t *testing.T) {
		repo := new(RepoMock)
		store := new(StoreMock)

		var uploaded string
		store.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				uploaded = args.String(1)
			}).Return("http://storage/apostilas/obj.pdf", nil).Once()
		repo.On("CreateApostila", mock.Anything, mock.Anything).
			Return(0, errors.New("db error")).Once()
		store.On("Remove", mock.Anything, mock.MatchedBy(func(name string) bool {
			return name == uploaded
		})).Return(nil).Once()

		svc := apostila.New(repo, store, newCacheStub(), discardLogger())

		_, _, err := svc.Upload(context.Background(), req, "material.pdf",
			strings.NewReader("conteudo"), 1024, "application/pdf")
		assert.Error(t, err)

		store.AssertExpectations(t)
	})

	t.Run("falha na gravacao do arquivo nao insere registro", func(t *testing.T) {
		repo := new(RepoMock)
		store := new(StoreMock)

		store.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return("", errors.New("storage down")).Once()

		svc := apostila.New(repo, store, newCacheStub(), discardLogger())

		_, _, err := svc.Upload(context.Background(), req, "material.pdf",
			strings.NewReader("conteudo"), 1024, "application/pdf")
		assert.Error(t, err)

		repo.AssertNotCalled(t, "CreateApostila", mock.Anything, mock.Anything)
	})
}

func TestApostilaService_Remove(t *testing.T) {
	t.Run("remocao apaga registro e arquivo", func(t *testing.T) {
		repo := new(RepoMock)
		store := new(StoreMock)

		repo.On("RemoveApostila", mock.Anything, 7).Return(1, "obj.pdf", nil).Once()
		store.On("Remove", mock.Anything, "obj.pdf").Return(nil).Once()

		svc := apostila.New(repo, store, newCacheStub(), discardLogger())

		count, err := svc.Remove(context.Background(), 7)
		assert.NoError(t, err)
		assert.Equal(t, 1, count)

		repo.AssertExpectations(t)
		store.AssertExpectations(t)
	})

	t.Run("registro inexistente nao toca o armazenamento de objetos", func(t *testing.T) {
		repo := new(RepoMock)
		store := new(StoreMock)

		repo.On("RemoveApostila", mock.Anything, 99).Return(0, "", nil).Once()

		svc := apostila.New(repo, store, newCacheStub(), discardLogger())

		count, err := svc.Remove(context.Background(), 99)
		assert.NoError(t, err)
		assert.Equal(t, 0, count)

		store.AssertNotCalled(t, "Remove", mock.Anything, mock.Anything)
	})

	t.Run("falha ao apagar o arquivo nao falha a remocao", func(t *testing.T) {
		repo := new(RepoMock)
		store := new(StoreMock)

		repo.On("RemoveApostila", mock.Anything, 7).Return(1, "obj.pdf", nil).Once()
		store.On("Remove", mock.Anything, "obj.pdf").Return(errors.New("storage down")).Once()

		svc := apostila.New(repo, store, newCacheStub(), discardLogger())

		count, err := svc.Remove(context.Background(), 7)
		assert.NoError(t, err)
		assert.Equal(t, 1, count)
	})
}
