package remove_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/hbrsolucoes/ponto-simulado/internal/http/handlers/question/remove"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Remove(ctx context.Context, id int) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(discard{}, nil))
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

func TestRemoveHandler(t *testing.T) {
	tests := []struct {
		name        string
		target      string
		setupMocks  func(s *ServiceMock)
		wantStatus  int
		wantDeleted float64
	}{
		{
			name:   "confirmacao ausente nao exclui nada",
			target: "/questoes/7",
			setupMocks: func(s *ServiceMock) {
			},
			wantStatus:  http.StatusOK,
			wantDeleted: 0,
		},
		{
			name:   "confirm diferente de true nao exclui nada",
			target: "/questoes/7?confirm=yes",
			setupMocks: func(s *ServiceMock) {
			},
			wantStatus:  http.StatusOK,
			wantDeleted: 0,
		},
		{
			name:   "confirm=true executa a exclusao",
			target: "/questoes/7?confirm=true",
			setupMocks: func(s *ServiceMock) {
				s.On("Remove", mock.Anything, 7).Return(1, nil).Once()
			},
			wantStatus:  http.StatusOK,
			wantDeleted: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			tt.setupMocks(svc)

			router := chi.NewRouter()
			router.Delete("/questoes/{id}", remove.New(discardLogger(), svc).ServeHTTP)

			req := httptest.NewRequest(http.MethodDelete, tt.target, nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var body struct {
				Data map[string]any `json:"data"`
			}
			assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantDeleted, body.Data["deleted_count"])

			svc.AssertExpectations(t)
			if tt.wantDeleted == 0 {
				svc.AssertNotCalled(t, "Remove", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestRemoveHandler_InvalidID(t *testing.T) {
	svc := new(ServiceMock)

	router := chi.NewRouter()
	router.Delete("/questoes/{id}", remove.New(discardLogger(), svc).ServeHTTP)

	req := httptest.NewRequest(http.MethodDelete, "/questoes/abc?confirm=true", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "Remove", mock.Anything, mock.Anything)
}
