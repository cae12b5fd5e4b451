// Package smtp fornece o transporte SMTP usado no envio de e-mails
// transacionais (boas-vindas e redefinição de senha).
package smtp

import "io"

// Client abstrai o cliente SMTP para permitir dublês nos testes.
type Client interface {
	Mail(from string) error
	Rcpt(to string) error
	Data() (io.WriteCloser, error)
	Quit() error
	Close() error
}

// TransportInterface abstrai o transporte SMTP.
type TransportInterface interface {
	Connect() (Client, error)
	GetSMTPUser() string
}
