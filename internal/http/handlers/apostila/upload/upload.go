// Package upload implementa o envio de apostilas em duas etapas: o
// arquivo vai para o armazenamento de objetos e o registro com a URL
// pública é persistido em seguida.
package upload

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/hbrsolucoes/ponto-simulado/internal/http/response"
	"github.com/hbrsolucoes/ponto-simulado/internal/lib/sl"
	"github.com/hbrsolucoes/ponto-simulado/internal/models"
)

// maxUploadSize limita o corpo multipart a 50 MiB.
const maxUploadSize = 50 << 20

// Service descreve o envio de apostilas na camada de negócio.
type Service interface {
	Upload(ctx context.Context, req models.DummyApostila, filename string,
		file io.Reader, size int64, contentType string) (int, string, error)
}

// Handler trata o envio de apostilas.
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
// @Summary      Enviar apostila
// @Description  Envia o arquivo da apostila e cadastra seus metadados
// @Tags         apostilas
// @Accept       multipart/form-data
// @Produce      json
// @Param        file        formData file   true  "Arquivo da apostila"
// @Param        title       formData string true  "Título"
// @Param        description formData string false "Descrição"
// @Param        category    formData string true  "Categoria"
// @Success      201 {object} response.Response
// @Failure      400 {object} response.ErrorResponse
// @Failure      422 {object} response.ErrorResponse
// @Failure      500 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /apostilas [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.apostila.upload"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		log.Error("failed to parse multipart form", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to parse multipart form"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		log.Error("missing file field", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("missing file field"))
		return
	}
	defer file.Close()

	active, _ := strconv.ParseBool(r.FormValue("active"))
	req := models.DummyApostila{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Category:    r.FormValue("category"),
		Active:      active,
	}

	if err := h.validate.Struct(req); err != nil {
		validateErr := err.(validator.ValidationErrors)
		log.Error("invalid request", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(validateErr))
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	id, fileURL, err := h.service.Upload(r.Context(), req, header.Filename, file, header.Size, contentType)
	if err != nil {
		log.Error("failed to upload apostila", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to upload apostila"))
		return
	}

	log.Info("apostila uploaded", slog.Int("id", id), slog.String("file", header.Filename))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"id":       id,
		"file_url": fileURL,
	}))
}
