// Package remove implementa a exclusão de questões. A exclusão só é
// executada quando o cliente envia confirm=true; sem a confirmação a
// requisição não toca o armazenamento.
package remove

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/hbrsolucoes/ponto-simulado/internal/http/response"
	"github.com/hbrsolucoes/ponto-simulado/internal/lib/sl"
)

// Service descreve a exclusão de questões na camada de negócio.
type Service interface {
	Remove(ctx context.Context, id int) (int, error)
}

// Handler trata a exclusão de questões.
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
// @Summary      Excluir questão
// @Description  Exclui uma questão; exige confirm=true na query string
// @Tags         questoes
// @Produce      json
// @Param        id      path  int    true "ID da questão"
// @Param        confirm query string true "Deve ser true para confirmar a exclusão"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.ErrorResponse
// @Failure      500 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /questoes/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.question.remove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("invalid question id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid question id"))
		return
	}

	if r.URL.Query().Get("confirm") != "true" {
		log.Info("delete not confirmed", slog.Int("id", id))
		render.JSON(w, r, response.StatusOKWithData(map[string]any{
			"deleted_count": 0,
			"message":       "confirmation required: retry with confirm=true",
		}))
		return
	}

	count, err := h.service.Remove(r.Context(), id)
	if err != nil {
		log.Error("failed to remove question", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to remove question"))
		return
	}

	log.Info("question removed", slog.Int("id", id), slog.Int("deleted_count", count))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"deleted_count": count,
	}))
}
