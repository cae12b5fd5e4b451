// Package health expõe a verificação de disponibilidade da API.
package health

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/hbrsolucoes/ponto-simulado/internal/http/response"
	"github.com/hbrsolucoes/ponto-simulado/internal/lib/sl"
	"github.com/hbrsolucoes/ponto-simulado/internal/storage/repository"
)

type Handler struct {
	log *slog.Logger
	db  *repository.Storage
}

func New(log *slog.Logger, db *repository.Storage) *Handler {
	return &Handler{
		log: log,
		db:  db,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.health"

	if err := repository.CheckDatabaseReady(h.db); err != nil {
		h.log.Error("database not ready", slog.String("op", op), sl.Err(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		render.JSON(w, r, response.Error("database not ready"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"status": "ok",
	}))
}
