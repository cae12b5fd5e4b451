// Package update implementa a edição de concursos cadastrados.
package update

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/hbrsolucoes/ponto-simulado/internal/http/response"
	"github.com/hbrsolucoes/ponto-simulado/internal/lib/sl"
	"github.com/hbrsolucoes/ponto-simulado/internal/models"
	"github.com/hbrsolucoes/ponto-simulado/internal/services/concurso"
)

// Service descreve a edição de concursos na camada de negócio.
type Service interface {
	Update(ctx context.Context, req models.DummyConcurso, id int) (int, error)
}

// Handler trata a edição de concursos.
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
// @Summary      Editar concurso
// @Description  Atualiza os dados de um concurso existente
// @Tags         concursos
// @Accept       json
// @Produce      json
// @Param        id      path int                  true "ID do concurso"
// @Param        request body models.DummyConcurso true "Dados do concurso"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.ErrorResponse
// @Failure      422 {object} response.ErrorResponse
// @Failure      500 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /concursos/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.concurso.update"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("invalid concurso id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid concurso id"))
		return
	}

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

	count, err := h.service.Update(r.Context(), req, id)
	if err != nil {
		if errors.Is(err, concurso.ErrInvalidDates) {
			log.Error("invalid concurso dates", sl.Err(err))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("invalid inscription dates"))
			return
		}
		log.Error("failed to update concurso", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to update concurso"))
		return
	}

	log.Info("concurso updated", slog.Int("id", id), slog.Int("updated_count", count))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"updated_count": count,
	}))
}
