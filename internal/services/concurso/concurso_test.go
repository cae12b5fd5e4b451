package concurso_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/hbrsolucoes/ponto-simulado/internal/models"
	"github.com/hbrsolucoes/ponto-simulado/internal/services/concurso"
)

type RepoMock struct {
	mock.Mock
}

func (m *RepoMock) CreateConcurso(ctx context.Context, c models.Concurso) (int, error) {
	args := m.Called(ctx, c)
	return args.Int(0), args.Error(1)
}

func (m *RepoMock) ListConcursos(ctx context.Context, search string, limit, offset int) ([]*models.Concurso, error) {
	args := m.Called(ctx, search, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Concurso), args.Error(1)
}

func (m *RepoMock) UpdateConcurso(ctx context.Context, c models.Concurso, id int) (int, error) {
	args := m.Called(ctx, c, id)
	return args.Int(0), args.Error(1)
}

func (m *RepoMock) RemoveConcurso(ctx context.Context, id int) (int, error) {
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

func TestConcursoService_Create(t *testing.T) {
	tests := []struct {
		name       string
		req        models.DummyConcurso
		setupMocks func(r *RepoMock)
		wantID     int
		wantErr    error
	}{
		{
			name: "datas validas criam o concurso",
			req: models.DummyConcurso{
				Title:            "Concurso TRF",
				Organ:            "TRF",
				Banca:            "FGV",
				InscriptionStart: "01-09-2026",
				InscriptionEnd:   "30-09-2026",
				ExamDate:         "15-11-2026",
			},
			setupMocks: func(r *RepoMock) {
				r.On("CreateConcurso", mock.Anything, mock.MatchedBy(func(c models.Concurso) bool {
					return c.Title == "Concurso TRF" &&
						c.InscriptionEnd.After(c.InscriptionStart) &&
						c.ExamDate != nil
				})).Return(3, nil).Once()
			},
			wantID: 3,
		},
		{
			name: "data de prova ausente e aceita",
			req: models.DummyConcurso{
				Title:            "Concurso TJ",
				Organ:            "TJ",
				Banca:            "Cebraspe",
				InscriptionStart: "01-09-2026",
				InscriptionEnd:   "30-09-2026",
			},
			setupMocks: func(r *RepoMock) {
				r.On("CreateConcurso", mock.Anything, mock.MatchedBy(func(c models.Concurso) bool {
					return c.ExamDate == nil
				})).Return(4, nil).Once()
			},
			wantID: 4,
		},
		{
			name: "inscricao encerrando antes de comecar e rejeitada",
			req: models.DummyConcurso{
				Title:            "Concurso TRF",
				InscriptionStart: "30-09-2026",
				InscriptionEnd:   "01-09-2026",
			},
			setupMocks: func(r *RepoMock) {},
			wantErr:    concurso.ErrInvalidDates,
		},
		{
			name: "data malformada e rejeitada",
			req: models.DummyConcurso{
				Title:            "Concurso TRF",
				InscriptionStart: "2026-09-01",
				InscriptionEnd:   "30-09-2026",
			},
			setupMocks: func(r *RepoMock) {},
			wantErr:    concurso.ErrInvalidDates,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			tt.setupMocks(repo)

			svc := concurso.New(repo, newCacheStub(), discardLogger())

			id, err := svc.Create(context.Background(), tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				repo.AssertNotCalled(t, "CreateConcurso", mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantID, id)
			}

			repo.AssertExpectations(t)
		})
	}
}
