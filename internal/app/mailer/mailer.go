// Package mailer monta e executa o worker de envio de e-mails
// transacionais consumidos do RabbitMQ.
package mailer

import (
	"context"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/hbrsolucoes/ponto-simulado/internal/config"
	"github.com/hbrsolucoes/ponto-simulado/internal/lib/smtp"
	"github.com/hbrsolucoes/ponto-simulado/internal/rabbitmq"
	mailerservice "github.com/hbrsolucoes/ponto-simulado/internal/services/mailer"
)

type App struct {
	conn          *amqp.Connection
	ch            *amqp.Channel
	mailerService *mailerservice.Service
	logger        *slog.Logger
}

func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, err
	}

	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetEmailQueues())
	if err != nil {
		conn.Close()
		return nil, err
	}

	transport := smtp.NewTransport(cfg.SMTP, logger)
	mailerService := mailerservice.New(transport, logger)

	return &App{
		conn:          conn,
		ch:            ch,
		mailerService: mailerService,
		logger:        logger,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	err := rabbitmq.ConsumerMessage(ctx, a.ch, "emails.reset", a.mailerService.SendResetEmail)
	if err != nil {
		a.logger.Error("failed to start emails.reset consumer", slog.Any("err", err))
		return err
	}

	err = rabbitmq.ConsumerMessage(ctx, a.ch, "emails.welcome", a.mailerService.SendWelcomeEmail)
	if err != nil {
		a.logger.Error("failed to start emails.welcome consumer", slog.Any("err", err))
		return err
	}

	<-ctx.Done()
	a.logger.Info("mailer service shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", slog.Any("err", err))
	}

	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", slog.Any("err", err))
	}

	return nil
}
