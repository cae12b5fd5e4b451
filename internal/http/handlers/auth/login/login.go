// Package login implementa o handler HTTP de autenticação.
//
// O handler decodifica e valida as credenciais e delega o login à
// camada de negócio, que resolve o perfil e emite o token. A resposta
// inclui o destino de redirecionamento derivado do papel resolvido.
package login

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
	"github.com/hbrsolucoes/ponto-simulado/internal/services/auth"
)

// Request — dados de entrada da autenticação.
type Request struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// Service descreve a operação de login na camada de negócio.
type Service interface {
	Login(ctx context.Context, email, password string) (*auth.LoginResult, error)
}

// Handler trata as requisições de autenticação.
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
// @Summary Autenticar usuário
// @Description Autentica por e-mail e senha. Devolve o JWT, o papel resolvido e a rota de destino.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Credenciais do usuário"
// @Success 200 {object} map[string]any "Autenticação bem-sucedida"
// @Failure 400 {object} response.ErrorResponse "JSON inválido"
// @Failure 401 {object} response.ErrorResponse "Credenciais inválidas"
// @Failure 422 {object} response.ErrorResponse "Erro de validação"
// @Failure 500 {object} response.ErrorResponse "Erro interno"
// @Router /login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

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

	result, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			log.Error("invalid credentials", sl.Err(err))
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error("invalid credentials"))
			return
		}
		log.Error("login failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not login"))
		return
	}

	log.Info("login success", slog.String("uid", result.UID), slog.String("role", result.Role))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"token":       result.Token,
		"uid":         result.UID,
		"role":        result.Role,
		"redirect_to": result.RedirectTo,
	}))
}
