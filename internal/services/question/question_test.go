package question_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/hbrsolucoes/ponto-simulado/internal/models"
	"github.com/hbrsolucoes/ponto-simulado/internal/services/question"
)

type RepoMock struct {
	mock.Mock
}

func (m *RepoMock) CreateQuestion(ctx context.Context, q models.Question) (int, error) {
	args := m.Called(ctx, q)
	return args.Int(0), args.Error(1)
}

func (m *RepoMock) ListQuestions(ctx context.Context, search string, limit, offset int) ([]*models.Question, error) {
	args := m.Called(ctx, search, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Question), args.Error(1)
}

func (m *RepoMock) UpdateQuestion(ctx context.Context, q models.Question, id int) (int, error) {
	args := m.Called(ctx, q, id)
	return args.Int(0), args.Error(1)
}

func (m *RepoMock) RemoveQuestion(ctx context.Context, id int) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
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

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(discard{}, nil))
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

func sampleQuestions(n int) []*models.Question {
	qs := make([]*models.Question, 0, n)
	for i := range n {
		qs = append(qs, &models.Question{
			ID:        i + 1,
			Statement: "Enunciado",
			Options:   []string{"a", "b", "c", "d", "e"},
			Category:  "direito",
			Banca:     "FGV",
		})
	}
	return qs
}

func TestQuestionService_Create_InvalidatesCache(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)

	req := models.DummyQuestion{
		Statement:     "Enunciado",
		Options:       []string{"a", "b", "c", "d", "e"},
		CorrectOption: 2,
		Category:      "direito",
		Banca:         "FGV",
		Active:        true,
	}
	repo.On("CreateQuestion", mock.Anything, mock.MatchedBy(func(q models.Question) bool {
		return q.Statement == req.Statement && q.CorrectOption == 2
	})).Return(5, nil).Once()
	cache.On("Invalidate", "questoes:firstpage").Return(nil).Once()

	svc := question.New(repo, cache, discardLogger())

	id, err := svc.Create(context.Background(), req)
	assert.NoError(t, err)
	assert.Equal(t, 5, id)

	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestQuestionService_List(t *testing.T) {
	t.Run("primeira pagina sem filtro vem do cache", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		cache.On("Get", "questoes:firstpage", mock.Anything).
			Run(func(args mock.Arguments) {
				out := args.Get(1).(*[]*models.Question)
				*out = sampleQuestions(20)
			}).Return(true, nil).Once()

		svc := question.New(repo, cache, discardLogger())

		got, err := svc.List(context.Background(), "", 10, 0)
		assert.NoError(t, err)
		assert.Len(t, got, 10)

		repo.AssertNotCalled(t, "ListQuestions", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("busca com filtro ignora o cache", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		repo.On("ListQuestions", mock.Anything, "regência", 10, 0).
			Return(sampleQuestions(1), nil).Once()

		svc := question.New(repo, cache, discardLogger())

		got, err := svc.List(context.Background(), "regência", 10, 0)
		assert.NoError(t, err)
		assert.Len(t, got, 1)

		cache.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
		repo.AssertExpectations(t)
	})

	t.Run("cache vazio consulta o banco e preenche", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		cache.On("Get", "questoes:firstpage", mock.Anything).Return(false, nil).Once()
		repo.On("ListQuestions", mock.Anything, "", 10, 0).
			Return(sampleQuestions(3), nil).Once()
		cache.On("Set", "questoes:firstpage", mock.Anything, time.Minute).Return(nil).Once()

		svc := question.New(repo, cache, discardLogger())

		got, err := svc.List(context.Background(), "", 10, 0)
		assert.NoError(t, err)
		assert.Len(t, got, 3)

		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})
}

func TestQuestionService_Remove(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)
	repo.On("RemoveQuestion", mock.Anything, 7).Return(1, nil).Once()
	cache.On("Invalidate", "questoes:firstpage").Return(nil).Once()

	svc := question.New(repo, cache, discardLogger())

	count, err := svc.Remove(context.Background(), 7)
	assert.NoError(t, err)
	assert.Equal(t, 1, count)

	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}
