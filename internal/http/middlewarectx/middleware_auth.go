// Package middlewarectx contém os middlewares HTTP da aplicação:
// validação de JWT, guarda de rotas por papel e limitação de taxa.
//
// JWTMiddleware verifica o token do cabeçalho Authorization e injeta
// uid, e-mail e papel no contexto; RequireRole resolve o perfil do
// lado do servidor e decide entre autorizar, 401 ou 403.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/hbrsolucoes/ponto-simulado/internal/http/response"
	"github.com/hbrsolucoes/ponto-simulado/internal/lib/sl"
	"github.com/hbrsolucoes/ponto-simulado/internal/models"
)

// Key tipo para as chaves de contexto da requisição.
type Key string

const (
	// UserUID — chave do uid do usuário no contexto
	UserUID Key = "useruid"
	// Email — chave do e-mail do usuário no contexto
	Email Key = "email"
	// Role — chave do papel resolvido no contexto
	Role Key = "role"
)

// TokenService descreve a validação de tokens de sessão.
type TokenService interface {
	ValidateToken(ctx context.Context, token string) (*models.TokenInfo, error)
}

// JWTMiddleware devolve o middleware que valida o JWT do cabeçalho
// Authorization. Com token válido, injeta uid e e-mail no contexto;
// caso contrário responde 401.
func JWTMiddleware(tokens TokenService, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.JWTMiddleware"
			authHeader := r.Header.Get("Authorization")

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			if !strings.HasPrefix(authHeader, "Bearer ") {
				log.Error("missing or invalid authorization header")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("missing or invalid authorization header"))
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			info, err := tokens.ValidateToken(r.Context(), tokenStr)
			if err != nil {
				log.Error("invalid or expired token", sl.Err(err))
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid or expired token"))
				return
			}
			ctx := context.WithValue(r.Context(), UserUID, info.UID)
			ctx = context.WithValue(ctx, Email, info.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
