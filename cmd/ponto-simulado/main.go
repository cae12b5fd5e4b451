// Package main Ponto Simulado API
//
// @title           Ponto Simulado API
// @version         1.0
// @description     API de preparação para concursos públicos: questões, apostilas e concursos
// @termsOfService  http://swagger.io/terms/

// @contact.name   Suporte
// @contact.email  hbrcomercialssa@gmail.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	pontosimulado "github.com/hbrsolucoes/ponto-simulado/internal/app/ponto-simulado"
	"github.com/hbrsolucoes/ponto-simulado/internal/config"
)

func main() {
	cfg := config.MustLoad()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	logger.Info("starting ponto-simulado", slog.String("env", cfg.Env))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := pontosimulado.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize app", slog.Any("err", err))
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("app stopped with error", slog.Any("err", err))
		os.Exit(1)
	}

	logger.Info("ponto-simulado stopped gracefully")
}
