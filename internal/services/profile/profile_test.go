package profile_test

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/hbrsolucoes/ponto-simulado/internal/models"
	"github.com/hbrsolucoes/ponto-simulado/internal/services/profile"
	"github.com/hbrsolucoes/ponto-simulado/internal/storage/repository"
)

const adminEmail = "hbrcomercialssa@gmail.com"

type ProfileRepoMock struct {
	mock.Mock
}

func (m *ProfileRepoMock) GetProfileByUID(ctx context.Context, uid string) (*models.Profile, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *ProfileRepoMock) CreateProfile(ctx context.Context, p models.Profile) (string, error) {
	args := m.Called(ctx, p)
	return args.String(0), args.Error(1)
}

func (m *ProfileRepoMock) UpdateProfileRole(ctx context.Context, uid, role string) error {
	args := m.Called(ctx, uid, role)
	return args.Error(0)
}

func (m *ProfileRepoMock) ListProfiles(ctx context.Context, limit, offset int) ([]*models.Profile, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Profile), args.Error(1)
}

func (m *ProfileRepoMock) UpdateProfileAccess(ctx context.Context, uid, role string, subscriptionActive bool) (int, error) {
	args := m.Called(ctx, uid, role, subscriptionActive)
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

func newCacheMiss() *CacheMock {
	c := new(CacheMock)
	c.On("Get", mock.Anything, mock.Anything).Return(false, nil)
	c.On("Set", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	return c
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(discard{}, nil))
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

func TestProfileService_Resolve(t *testing.T) {
	tests := []struct {
		name       string
		uid        string
		email      string
		setupMocks func(r *ProfileRepoMock)
		wantRole   string
		wantErr    bool
	}{
		{
			name:  "perfil existente resolve sem efeitos colaterais",
			uid:   "uid-1",
			email: "aluno@example.com",
			setupMocks: func(r *ProfileRepoMock) {
				r.On("GetProfileByUID", mock.Anything, "uid-1").
					Return(&models.Profile{UID: "uid-1", Email: "aluno@example.com", Role: models.RoleAssinante}, nil).Once()
			},
			wantRole: models.RoleAssinante,
		},
		{
			name:  "email administrativo sem linha provisiona perfil admin",
			uid:   "uid-admin",
			email: adminEmail,
			setupMocks: func(r *ProfileRepoMock) {
				r.On("GetProfileByUID", mock.Anything, "uid-admin").
					Return(nil, repository.ErrProfileNotFound).Once()
				r.On("CreateProfile", mock.Anything, mock.MatchedBy(func(p models.Profile) bool {
					return p.Email == adminEmail &&
						p.Role == models.RoleAdmin &&
						p.SubscriptionActive
				})).Return("uid-new", nil).Once()
				r.On("GetProfileByUID", mock.Anything, "uid-new").
					Return(&models.Profile{UID: "uid-new", Email: adminEmail, Role: models.RoleAdmin}, nil).Once()
			},
			wantRole: models.RoleAdmin,
		},
		{
			name:  "email administrativo com papel divergente e corrigido",
			uid:   "uid-adm2",
			email: adminEmail,
			setupMocks: func(r *ProfileRepoMock) {
				r.On("GetProfileByUID", mock.Anything, "uid-adm2").
					Return(&models.Profile{UID: "uid-adm2", Email: adminEmail, Role: models.RoleVisitante}, nil).Once()
				r.On("UpdateProfileRole", mock.Anything, "uid-adm2", models.RoleAdmin).
					Return(nil).Once()
			},
			wantRole: models.RoleAdmin,
		},
		{
			name:  "perfil inexistente de email comum nao e provisionado",
			uid:   "uid-x",
			email: "outro@example.com",
			setupMocks: func(r *ProfileRepoMock) {
				r.On("GetProfileByUID", mock.Anything, "uid-x").
					Return(nil, repository.ErrProfileNotFound).Once()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(ProfileRepoMock)
			tt.setupMocks(repo)

			svc := profile.New(repo, newCacheMiss(), adminEmail, discardLogger())

			got, err := svc.Resolve(context.Background(), tt.uid, tt.email)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantRole, got.Role)
			}

			repo.AssertExpectations(t)
		})
	}
}

func TestProfileService_Resolve_CacheHit(t *testing.T) {
	repo := new(ProfileRepoMock)
	cache := new(CacheMock)
	cache.On("Get", "profile:uid-1", mock.Anything).
		Run(func(args mock.Arguments) {
			p := args.Get(1).(*models.Profile)
			*p = models.Profile{UID: "uid-1", Role: models.RoleAssinante}
		}).Return(true, nil).Once()

	svc := profile.New(repo, cache, adminEmail, discardLogger())

	got, err := svc.Resolve(context.Background(), "uid-1", "aluno@example.com")
	assert.NoError(t, err)
	assert.Equal(t, models.RoleAssinante, got.Role)

	repo.AssertNotCalled(t, "GetProfileByUID", mock.Anything, mock.Anything)
}

func TestProfileService_Resolve_Singleflight(t *testing.T) {
	repo := new(ProfileRepoMock)
	release := make(chan struct{})
	repo.On("GetProfileByUID", mock.Anything, "uid-1").
		Run(func(mock.Arguments) { <-release }).
		Return(&models.Profile{UID: "uid-1", Email: "a@example.com", Role: models.RoleVisitante}, nil).Once()

	svc := profile.New(repo, newCacheMiss(), adminEmail, discardLogger())

	var wg sync.WaitGroup
	start := make(chan struct{})
	for range 5 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			p, err := svc.Resolve(context.Background(), "uid-1", "a@example.com")
			assert.NoError(t, err)
			assert.Equal(t, "uid-1", p.UID)
		}()
	}
	close(start)
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	repo.AssertExpectations(t)
}

func TestProfileService_UpdateAccess(t *testing.T) {
	repo := new(ProfileRepoMock)
	repo.On("UpdateProfileAccess", mock.Anything, "uid-1", models.RoleAssinante, true).
		Return(1, nil).Once()

	cache := new(CacheMock)
	cache.On("Invalidate", "profile:uid-1").Return(nil).Once()

	svc := profile.New(repo, cache, adminEmail, discardLogger())

	count, err := svc.UpdateAccess(context.Background(), "uid-1", models.DummyProfileUpdate{
		Role:               models.RoleAssinante,
		SubscriptionActive: true,
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, count)

	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestRedirectFor(t *testing.T) {
	tests := []struct {
		role string
		want string
	}{
		{models.RoleAdmin, "/admin"},
		{models.RoleAssinante, "/dashboard"},
		{models.RoleVisitante, "/visitante"},
		{"desconhecido", "/visitante"},
	}
	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			assert.Equal(t, tt.want, profile.RedirectFor(tt.role))
		})
	}
}
