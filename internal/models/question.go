package models

import "time"

// Question representa uma questão de simulado com cinco alternativas.
type Question struct {
	ID            int       `json:"id"`
	Statement     string    `json:"statement"`
	Options       []string  `json:"options"`
	CorrectOption int       `json:"correct_option"`
	Category      string    `json:"category"`
	Banca         string    `json:"banca"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// DummyQuestion recebe os dados de criação/edição de uma questão a
// partir do JSON da requisição, antes da validação.
type DummyQuestion struct {
	Statement     string   `json:"statement" validate:"required"`
	Options       []string `json:"options" validate:"required,len=5,dive,required"`
	CorrectOption int      `json:"correct_option" validate:"gte=0,lte=4"`
	Category      string   `json:"category" validate:"required"`
	Banca         string   `json:"banca" validate:"required"`
	Active        bool     `json:"active"`
}
