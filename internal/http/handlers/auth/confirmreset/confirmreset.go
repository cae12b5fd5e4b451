// Package confirmreset implementa a confirmação da redefinição de senha.
package confirmreset

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/hbrsolucoes/ponto-simulado/internal/http/response"
	"github.com/hbrsolucoes/ponto-simulado/internal/lib/sl"
	"github.com/hbrsolucoes/ponto-simulado/internal/storage/repository"
)

// Request — dados de entrada da confirmação.
type Request struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

// Service descreve a confirmação de redefinição na camada de negócio.
type Service interface {
	ConfirmReset(ctx context.Context, token, newPassword string) error
}

// Handler trata a confirmação de redefinição de senha.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New cria o Handler com o logger e o serviço informados.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.confirmreset"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	if err := h.service.ConfirmReset(r.Context(), req.Token, req.Password); err != nil {
		if errors.Is(err, repository.ErrResetTokenInvalid) {
			log.Error("invalid reset token", sl.Err(err))
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error("invalid or expired reset token"))
			return
		}
		log.Error("failed to confirm password reset", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not reset password"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"message": "password updated successfully",
	}))
}
