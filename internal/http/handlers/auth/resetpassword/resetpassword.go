// Package resetpassword implementa o pedido de redefinição de senha.
//
// A resposta é sempre a mesma, exista ou não uma conta para o e-mail
// informado, para não revelar a existência de cadastros.
package resetpassword

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/hbrsolucoes/ponto-simulado/internal/http/response"
	"github.com/hbrsolucoes/ponto-simulado/internal/lib/sl"
)

// Request — dados de entrada do pedido de redefinição.
type Request struct {
	Email string `json:"email" validate:"required,email"`
}

// Service descreve a operação de redefinição na camada de negócio.
type Service interface {
	ResetPassword(ctx context.Context, email string) error
}

// Handler trata os pedidos de redefinição de senha.
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
	const op = "handlers.auth.resetpassword"

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

	if err := h.service.ResetPassword(r.Context(), req.Email); err != nil {
		log.Error("failed to request password reset", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not request password reset"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"message": "if the email exists, a reset link was sent",
	}))
}
