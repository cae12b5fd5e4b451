// Package mailer consome as filas de e-mail e envia as mensagens
// transacionais por SMTP.
package mailer

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hbrsolucoes/ponto-simulado/internal/lib/sl"
	"github.com/hbrsolucoes/ponto-simulado/internal/lib/smtp"
	"github.com/hbrsolucoes/ponto-simulado/internal/models"
)

// Service envia e-mails transacionais usando o transporte SMTP.
type Service struct {
	transport smtp.TransportInterface
	log       *slog.Logger
}

// New cria o serviço de envio de e-mails.
func New(transport smtp.TransportInterface, log *slog.Logger) *Service {
	return &Service{
		transport: transport,
		log:       log,
	}
}

// SendResetEmail envia o e-mail de redefinição de senha a partir do
// corpo da mensagem da fila.
func (s *Service) SendResetEmail(body []byte) error {
	var message models.ResetEmail
	if err := json.Unmarshal(body, &message); err != nil {
		s.log.Error("failed to unmarshal message body", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	to := []string{message.Email}
	subject := "Redefinição de senha — Ponto Simulado"
	bodyText := fmt.Sprintf("Olá!\n\nRecebemos um pedido para redefinir a senha da sua conta no Ponto Simulado.\n\nPara criar uma nova senha, acesse o link abaixo:\n%s\n\nSe você não fez esse pedido, ignore este e-mail.",
		message.ResetURL)

	return s.sendEmail(to, subject, bodyText)
}

// SendWelcomeEmail envia o e-mail de boas-vindas após o cadastro.
func (s *Service) SendWelcomeEmail(body []byte) error {
	var message models.WelcomeEmail
	if err := json.Unmarshal(body, &message); err != nil {
		s.log.Error("failed to unmarshal message body", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	to := []string{message.Email}
	subject := "Bem-vindo ao Ponto Simulado"
	bodyText := "Olá!\n\nSua conta no Ponto Simulado foi criada com sucesso.\n\nAcesse a área do visitante para conhecer os planos e liberar os simulados e apostilas."

	return s.sendEmail(to, subject, bodyText)
}

func (s *Service) sendEmail(to []string, subject, bodyText string) error {
	msg := strings.Join([]string{
		"From: " + s.transport.GetSMTPUser(),
		"To: " + strings.Join(to, ";"),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		s.log.Error("failed to connect to SMTP server", sl.Err(err))
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Mail(s.transport.GetSMTPUser()); err != nil {
		s.log.Error("failed to set MAIL FROM", sl.Err(err))
		return err
	}

	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			s.log.Error("failed to set RCPT TO", slog.String("recipient", addr), sl.Err(err))
			return err
		}
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("failed to get data writer", sl.Err(err))
		return err
	}

	_, err = wc.Write([]byte(msg))
	if err != nil {
		s.log.Error("failed to write email body", sl.Err(err))
		return err
	}

	if err = wc.Close(); err != nil {
		s.log.Error("failed to close data writer", sl.Err(err))
		return err
	}

	if err = client.Quit(); err != nil {
		s.log.Error("failed to quit SMTP client", sl.Err(err))
		return err
	}

	s.log.Info("email sent successfully", slog.Any("to", to))
	return nil
}
