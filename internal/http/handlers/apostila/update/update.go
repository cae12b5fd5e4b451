// Package update implementa a edição dos metadados de uma apostila. O
// arquivo em si não é trocado aqui; um novo arquivo exige novo envio.
package update

import (
	"context"
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
)

// Service descreve a edição de apostilas na camada de negócio.
type Service interface {
	Update(ctx context.Context, req models.DummyApostila, id int) (int, error)
}

// Handler trata a edição de apostilas.
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
// @Summary      Editar apostila
// @Description  Atualiza os metadados de uma apostila existente
// @Tags         apostilas
// @Accept       json
// @Produce      json
// @Param        id      path int                  true "ID da apostila"
// @Param        request body models.DummyApostila true "Metadados da apostila"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.ErrorResponse
// @Failure      422 {object} response.ErrorResponse
// @Failure      500 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /apostilas/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.apostila.update"

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

	var req models.DummyApostila
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
		log.Error("failed to update apostila", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to update apostila"))
		return
	}

	log.Info("apostila updated", slog.Int("id", id), slog.Int("updated_count", count))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"updated_count": count,
	}))
}
