package middlewarectx_test

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/hbrsolucoes/ponto-simulado/internal/http/middlewarectx"
	"github.com/hbrsolucoes/ponto-simulado/internal/models"
)

type ResolverMock struct {
	mock.Mock
}

func (m *ResolverMock) Resolve(ctx context.Context, uid, email string) (*models.Profile, error) {
	args := m.Called(ctx, uid, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(discard{}, nil))
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name       string
		uid        string
		allowed    []string
		setupMocks func(r *ResolverMock)
		wantStatus int
		wantNext   bool
		wantRole   string
	}{
		{
			name:    "papel permitido libera a requisicao",
			uid:     "uid-1",
			allowed: []string{models.RoleAdmin, models.RoleAssinante},
			setupMocks: func(r *ResolverMock) {
				r.On("Resolve", mock.Anything, "uid-1", "a@example.com").
					Return(&models.Profile{UID: "uid-1", Role: models.RoleAssinante}, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantNext:   true,
			wantRole:   models.RoleAssinante,
		},
		{
			name:    "papel resolvido fora da lista e barrado",
			uid:     "uid-1",
			allowed: []string{models.RoleAdmin},
			setupMocks: func(r *ResolverMock) {
				r.On("Resolve", mock.Anything, "uid-1", "a@example.com").
					Return(&models.Profile{UID: "uid-1", Role: models.RoleVisitante}, nil).Once()
			},
			wantStatus: http.StatusForbidden,
		},
		{
			name:    "perfil sem linha e barrado",
			uid:     "uid-1",
			allowed: []string{models.RoleAdmin},
			setupMocks: func(r *ResolverMock) {
				r.On("Resolve", mock.Anything, "uid-1", "a@example.com").
					Return(nil, errors.New("profile not found")).Once()
			},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "identidade ausente devolve 401",
			uid:        "",
			allowed:    []string{models.RoleAdmin},
			setupMocks: func(r *ResolverMock) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:    "lista vazia libera qualquer perfil resolvido",
			uid:     "uid-1",
			allowed: nil,
			setupMocks: func(r *ResolverMock) {
				r.On("Resolve", mock.Anything, "uid-1", "a@example.com").
					Return(&models.Profile{UID: "uid-1", Role: models.RoleVisitante}, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantNext:   true,
			wantRole:   models.RoleVisitante,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := new(ResolverMock)
			tt.setupMocks(resolver)

			var nextCalled bool
			var gotRole string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				gotRole, _ = r.Context().Value(middlewarectx.Role).(string)
				w.WriteHeader(http.StatusOK)
			})

			mw := middlewarectx.RequireRole(resolver, discardLogger(), tt.allowed...)

			req := httptest.NewRequest(http.MethodGet, "/questoes", nil)
			ctx := req.Context()
			if tt.uid != "" {
				ctx = context.WithValue(ctx, middlewarectx.UserUID, tt.uid)
				ctx = context.WithValue(ctx, middlewarectx.Email, "a@example.com")
			}
			rec := httptest.NewRecorder()

			mw(next).ServeHTTP(rec, req.WithContext(ctx))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantNext, nextCalled)
			if tt.wantNext {
				assert.Equal(t, tt.wantRole, gotRole)
			}

			resolver.AssertExpectations(t)
		})
	}
}
