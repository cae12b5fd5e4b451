package pontosimulado

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"

	httpSwagger "github.com/swaggo/http-swagger"

	apostilalist "github.com/hbrsolucoes/ponto-simulado/internal/http/handlers/apostila/list"
	apostilaread "github.com/hbrsolucoes/ponto-simulado/internal/http/handlers/apostila/read"
	apostilaremove "github.com/hbrsolucoes/ponto-simulado/internal/http/handlers/apostila/remove"
	apostilaupdate "github.com/hbrsolucoes/ponto-simulado/internal/http/handlers/apostila/update"
	apostilaupload "github.com/hbrsolucoes/ponto-simulado/internal/http/handlers/apostila/upload"
	"github.com/hbrsolucoes/ponto-simulado/internal/http/handlers/auth/confirmreset"
	"github.com/hbrsolucoes/ponto-simulado/internal/http/handlers/auth/login"
	"github.com/hbrsolucoes/ponto-simulado/internal/http/handlers/auth/register"
	"github.com/hbrsolucoes/ponto-simulado/internal/http/handlers/auth/resetpassword"
	concursocreate "github.com/hbrsolucoes/ponto-simulado/internal/http/handlers/concurso/create"
	concursolist "github.com/hbrsolucoes/ponto-simulado/internal/http/handlers/concurso/list"
	concursoremove "github.com/hbrsolucoes/ponto-simulado/internal/http/handlers/concurso/remove"
	concursoupdate "github.com/hbrsolucoes/ponto-simulado/internal/http/handlers/concurso/update"
	"github.com/hbrsolucoes/ponto-simulado/internal/http/handlers/health"
	profilelist "github.com/hbrsolucoes/ponto-simulado/internal/http/handlers/profile/list"
	"github.com/hbrsolucoes/ponto-simulado/internal/http/handlers/profile/me"
	profileupdate "github.com/hbrsolucoes/ponto-simulado/internal/http/handlers/profile/update"
	questioncreate "github.com/hbrsolucoes/ponto-simulado/internal/http/handlers/question/create"
	questionlist "github.com/hbrsolucoes/ponto-simulado/internal/http/handlers/question/list"
	questionremove "github.com/hbrsolucoes/ponto-simulado/internal/http/handlers/question/remove"
	questionupdate "github.com/hbrsolucoes/ponto-simulado/internal/http/handlers/question/update"
	"github.com/hbrsolucoes/ponto-simulado/internal/http/middlewarectx"
	"github.com/hbrsolucoes/ponto-simulado/internal/models"
	"github.com/hbrsolucoes/ponto-simulado/internal/obs"
	apostilaservice "github.com/hbrsolucoes/ponto-simulado/internal/services/apostila"
	authservice "github.com/hbrsolucoes/ponto-simulado/internal/services/auth"
	concursoservice "github.com/hbrsolucoes/ponto-simulado/internal/services/concurso"
	profileservice "github.com/hbrsolucoes/ponto-simulado/internal/services/profile"
	questionservice "github.com/hbrsolucoes/ponto-simulado/internal/services/question"
	"github.com/hbrsolucoes/ponto-simulado/internal/storage/repository"
)

// Services agrupa as camadas de negócio usadas pelas rotas.
type Services struct {
	Auth     *authservice.Service
	Profile  *profileservice.Service
	Question *questionservice.Service
	Apostila *apostilaservice.Service
	Concurso *concursoservice.Service
}

// RegisterRoutes registra todas as rotas da aplicação.
func RegisterRoutes(r chi.Router, logger *slog.Logger, db *repository.Storage, s *Services) {
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		obs.Instrument,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Conteúdo e fluxos abertos
		r.Post("/register", register.New(logger, s.Auth).ServeHTTP)
		r.Post("/login", login.New(logger, s.Auth).ServeHTTP)
		r.Post("/password/reset", resetpassword.New(logger, s.Auth).ServeHTTP)
		r.Post("/password/confirm", confirmreset.New(logger, s.Auth).ServeHTTP)
		r.Get("/concursos", concursolist.New(logger, s.Concurso).ServeHTTP)

		// Grupo autenticado
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(s.Auth, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Get("/me", me.New(logger, s.Profile).ServeHTTP)

			// Conteúdo de estudo: admin e assinante
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequireRole(s.Profile, logger,
					models.RoleAdmin, models.RoleAssinante))
				r.Get("/questoes", questionlist.New(logger, s.Question).ServeHTTP)
				r.Get("/apostilas", apostilalist.New(logger, s.Apostila).ServeHTTP)
				r.Get("/apostilas/{id}", apostilaread.New(logger, s.Apostila).ServeHTTP)
			})

			// Administração
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequireRole(s.Profile, logger, models.RoleAdmin))

				r.Post("/questoes", questioncreate.New(logger, s.Question).ServeHTTP)
				r.Put("/questoes/{id}", questionupdate.New(logger, s.Question).ServeHTTP)
				r.Delete("/questoes/{id}", questionremove.New(logger, s.Question).ServeHTTP)

				r.Post("/apostilas", apostilaupload.New(logger, s.Apostila).ServeHTTP)
				r.Put("/apostilas/{id}", apostilaupdate.New(logger, s.Apostila).ServeHTTP)
				r.Delete("/apostilas/{id}", apostilaremove.New(logger, s.Apostila).ServeHTTP)

				r.Post("/concursos", concursocreate.New(logger, s.Concurso).ServeHTTP)
				r.Put("/concursos/{id}", concursoupdate.New(logger, s.Concurso).ServeHTTP)
				r.Delete("/concursos/{id}", concursoremove.New(logger, s.Concurso).ServeHTTP)

				r.Get("/perfis", profilelist.New(logger, s.Profile).ServeHTTP)
				r.Put("/perfis/{uid}", profileupdate.New(logger, s.Profile).ServeHTTP)
			})
		})
	})

	r.Get("/health", health.New(logger, db).ServeHTTP)
	r.Handle("/metrics", obs.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
