// Package create implementa o cadastro de concursos.
package create

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/hbrsolucoes/ponto-simulado/internal/http/response"
	"github.com/hbrsolucoes/ponto-simulado/internal/lib/sl"
	"github.com/hbrsolucoes/ponto-simulado/internal/models"
	"github.com/hbrsolucoes/ponto-simulado/internal/services/concurso"
)

// Service descreve o cadastro de concursos na camada de negócio.
type Service interface {
	Create(ctx context.Context, req models.DummyConcurso) (int, error)
}

// Handler trata o cadastro de concursos.
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

// ServeHTTP godoc
// @Summary      Cadastrar concurso
// @Description  Cadastra um novo concurso com período de inscrição
// @Tags         concursos
// @Accept       json
// @Produce      json
// @Param        request body models.DummyConcurso true "Dados do concurso"
// @Success      201 {object} response.Response
// @Failure      400 {object} response.ErrorResponse
// @Failure      422 {object} response.ErrorResponse
// @Failure      500 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /concursos [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.concurso.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyConcurso
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode request"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		validateErr := err.(validator.ValidationErrors)
		log.Error("invalid request", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(validateErr))
		return
	}

	id, err := h.service.Create(r.Context(), req)
	if err != nil {
		if errors.Is(err, concurso.ErrInvalidDates) {
			log.Error("invalid concurso dates", sl.Err(err))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("invalid inscription dates"))
			return
		}
		log.Error("failed to create concurso", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to create concurso"))
		return
	}

	log.Info("concurso created", slog.Int("id", id))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"id": id,
	}))
}
