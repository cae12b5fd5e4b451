// Package register implementa o handler HTTP de cadastro de contas.
package register

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

// Request — dados de entrada do cadastro.
type Request struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// Service descreve a operação de cadastro na camada de negócio.
type Service interface {
	Register(ctx context.Context, email, password string) (string, error)
}

// Handler trata as requisições de cadastro.
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
// @Summary Cadastrar nova conta
// @Description Cria a identidade e o perfil padrão (papel visitante, assinatura inativa).
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Credenciais da nova conta"
// @Success 200 {object} map[string]any "Conta criada"
// @Failure 400 {object} response.ErrorResponse "JSON inválido"
// @Failure 422 {object} response.ErrorResponse "Erro de validação"
// @Failure 500 {object} response.ErrorResponse "Erro interno"
// @Router /register [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"

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

	uid, err := h.service.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		log.Error("registration failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to register user"))
		return
	}

	log.Info("user registered", slog.String("uid", uid))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"uid":     uid,
		"message": "user created successfully",
	}))
}
