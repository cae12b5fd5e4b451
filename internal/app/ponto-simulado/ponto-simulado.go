// Package pontosimulado monta e executa a API do Ponto Simulado.
package pontosimulado

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/hbrsolucoes/ponto-simulado/internal/cache"
	"github.com/hbrsolucoes/ponto-simulado/internal/config"
	"github.com/hbrsolucoes/ponto-simulado/internal/lib/jwt"
	"github.com/hbrsolucoes/ponto-simulado/internal/migrations"
	"github.com/hbrsolucoes/ponto-simulado/internal/obs"
	"github.com/hbrsolucoes/ponto-simulado/internal/rabbitmq"
	apostilaservice "github.com/hbrsolucoes/ponto-simulado/internal/services/apostila"
	authservice "github.com/hbrsolucoes/ponto-simulado/internal/services/auth"
	concursoservice "github.com/hbrsolucoes/ponto-simulado/internal/services/concurso"
	profileservice "github.com/hbrsolucoes/ponto-simulado/internal/services/profile"
	questionservice "github.com/hbrsolucoes/ponto-simulado/internal/services/question"
	"github.com/hbrsolucoes/ponto-simulado/internal/storage/objstore"
	"github.com/hbrsolucoes/ponto-simulado/internal/storage/repository"
)

// App reúne o servidor HTTP e as dependências que precisam ser
// encerradas junto com ele.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
}

// New conecta as dependências externas, monta os serviços e devolve a
// aplicação pronta para Run.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	store, err := objstore.New(ctx, cfg.ObjectStorage)
	if err != nil {
		return nil, err
	}

	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, err
	}
	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetEmailQueues())
	if err != nil {
		return nil, err
	}
	publisher := rabbitmq.NewPublisher(ch)

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	profileService := profileservice.New(db, cacheRedis, cfg.AdminEmail, logger)
	authService := authservice.New(db, profileService, jwtMaker, publisher,
		cfg.ResetTokenTTL, cfg.AppURL, logger)
	questionService := questionservice.New(db, cacheRedis, logger)
	apostilaService := apostilaservice.New(db, store, cacheRedis, logger)
	concursoService := concursoservice.New(db, cacheRedis, logger)

	obs.Init()

	router := chi.NewRouter()
	RegisterRoutes(router, logger, db, &Services{
		Auth:     authService,
		Profile:  profileService,
		Question: questionService,
		Apostila: apostilaService,
		Concurso: concursoService,
	})

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
	}, nil
}

// Run sobe o servidor e espera pelo cancelamento do contexto para um
// desligamento gracioso.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.db.DB.Close()
		return err
	}
}
