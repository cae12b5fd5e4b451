// Package me implementa a consulta do próprio perfil resolvido.
package me

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/hbrsolucoes/ponto-simulado/internal/http/middlewarectx"
	"github.com/hbrsolucoes/ponto-simulado/internal/http/response"
	"github.com/hbrsolucoes/ponto-simulado/internal/lib/sl"
	"github.com/hbrsolucoes/ponto-simulado/internal/models"
	profilesvc "github.com/hbrsolucoes/ponto-simulado/internal/services/profile"
)

// Service descreve a resolução de perfil na camada de negócio.
type Service interface {
	Resolve(ctx context.Context, uid, email string) (*models.Profile, error)
}

// Handler trata a consulta do próprio perfil.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New cria o Handler com o logger e o serviço informados.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.profile.me"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	uid, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || uid == "" {
		log.Error("user identification missing")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}
	email, _ := r.Context().Value(middlewarectx.Email).(string)

	profile, err := h.service.Resolve(r.Context(), uid, email)
	if err != nil {
		log.Error("failed to resolve profile", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not resolve profile"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"profile":     profile,
		"redirect_to": profilesvc.RedirectFor(profile.Role),
	}))
}
