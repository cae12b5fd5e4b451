package models

// ResetEmail é a mensagem publicada na fila de redefinição de senha e
// consumida pelo serviço de envio de e-mails.
type ResetEmail struct {
	Email    string `json:"email"`
	ResetURL string `json:"reset_url"`
}

// WelcomeEmail é a mensagem publicada após um cadastro bem-sucedido.
type WelcomeEmail struct {
	Email string `json:"email"`
}
