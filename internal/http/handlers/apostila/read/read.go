// Package read implementa a consulta de uma apostila pelo ID.
package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/hbrsolucoes/ponto-simulado/internal/http/response"
	"github.com/hbrsolucoes/ponto-simulado/internal/lib/sl"
	"github.com/hbrsolucoes/ponto-simulado/internal/models"
	"github.com/hbrsolucoes/ponto-simulado/internal/storage/repository"
)

// Service descreve a consulta de apostilas na camada de negócio.
type Service interface {
	Get(ctx context.Context, id int) (*models.Apostila, error)
}

// Handler trata a consulta de uma apostila.
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

// ServeHTTP godoc
// @Summary      Consultar apostila
// @Description  Devolve os dados de uma apostila pelo ID
// @Tags         apostilas
// @Produce      json
// @Param        id path int true "ID da apostila"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Failure      500 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /apostilas/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.apostila.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("invalid apostila id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid apostila id"))
		return
	}

	a, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrApostilaNotFound) {
			log.Info("apostila not found", slog.Int("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("apostila not found"))
			return
		}
		log.Error("failed to get apostila", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to get apostila"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"apostila": a,
	}))
}
