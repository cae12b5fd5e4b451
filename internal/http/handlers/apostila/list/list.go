// Package list implementa a listagem paginada de apostilas.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/hbrsolucoes/ponto-simulado/internal/http/response"
	"github.com/hbrsolucoes/ponto-simulado/internal/lib/sl"
	"github.com/hbrsolucoes/ponto-simulado/internal/models"
)

// Service descreve a listagem de apostilas na camada de negócio.
type Service interface {
	List(ctx context.Context, search string, limit, offset int) ([]*models.Apostila, error)
}

// Handler trata a listagem de apostilas.
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
// @Summary      Listar apostilas
// @Description  Lista apostilas com busca por título ou categoria
// @Tags         apostilas
// @Produce      json
// @Param        search query string false "Trecho a buscar"
// @Param        limit  query int    false "Tamanho da página"
// @Param        offset query int    false "Deslocamento"
// @Success      200 {object} response.Response
// @Failure      500 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /apostilas [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.apostila.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	search := r.URL.Query().Get("search")
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 20
	}
	offset, err := strconv.Atoi(r.URL.Query().Get("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}

	res, err := h.service.List(r.Context(), search, limit, offset)
	if err != nil {
		log.Error("failed to list apostilas", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list apostilas"))
		return
	}

	log.Info("list apostilas", slog.Int("count", len(res)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"list_count": len(res),
		"apostilas":  res,
	}))
}
