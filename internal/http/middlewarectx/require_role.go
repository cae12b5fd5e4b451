package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/hbrsolucoes/ponto-simulado/internal/http/response"
	"github.com/hbrsolucoes/ponto-simulado/internal/lib/sl"
	"github.com/hbrsolucoes/ponto-simulado/internal/models"
)

// ProfileResolver descreve a resolução de perfil usada pela guarda.
type ProfileResolver interface {
	Resolve(ctx context.Context, uid, email string) (*models.Profile, error)
}

// RequireRole devolve o middleware que resolve o perfil da identidade
// autenticada e só libera a requisição quando o papel resolvido está
// na lista informada. Lista vazia libera qualquer perfil resolvido.
// O papel gravado no contexto é sempre o resolvido no servidor, nunca
// o informado pelo cliente.
func RequireRole(resolver ProfileResolver, log *slog.Logger, allowed ...string) func(http.Handler) http.Handler {
	allowedSet := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.RequireRole"

			uid, ok := r.Context().Value(UserUID).(string)
			if !ok || uid == "" {
				log.Error("user identification missing")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("user identification missing"))
				return
			}
			email, _ := r.Context().Value(Email).(string)

			profile, err := resolver.Resolve(r.Context(), uid, email)
			if err != nil {
				log.Error("failed to resolve profile", sl.Err(err))
				w.WriteHeader(http.StatusForbidden)
				render.JSON(w, r, response.Error("profile not found"))
				return
			}

			if len(allowedSet) > 0 {
				if _, ok := allowedSet[profile.Role]; !ok {
					log.Error("role not allowed", slog.String("role", profile.Role))
					w.WriteHeader(http.StatusForbidden)
					render.JSON(w, r, response.Error("unauthorized"))
					return
				}
			}

			ctx := context.WithValue(r.Context(), Role, profile.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
