package models

import "time"

// Concurso representa um edital de concurso público listado no site.
type Concurso struct {
	ID               int        `json:"id"`
	Title            string     `json:"title"`
	Organ            string     `json:"organ"`
	Banca            string     `json:"banca"`
	Vacancies        int        `json:"vacancies"`
	Salary           string     `json:"salary"`
	InscriptionStart time.Time  `json:"inscription_start"`
	InscriptionEnd   time.Time  `json:"inscription_end"`
	ExamDate         *time.Time `json:"exam_date,omitempty"`
	EditalURL        string     `json:"edital_url"`
	Active           bool       `json:"active"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// DummyConcurso recebe os dados de um concurso via JSON. As datas
// chegam como strings no formato 02-01-2006 e são convertidas na
// camada de serviço.
type DummyConcurso struct {
	Title            string `json:"title" validate:"required"`
	Organ            string `json:"organ" validate:"required"`
	Banca            string `json:"banca"`
	Vacancies        int    `json:"vacancies" validate:"gte=0"`
	Salary           string `json:"salary"`
	InscriptionStart string `json:"inscription_start" validate:"required"`
	InscriptionEnd   string `json:"inscription_end" validate:"required"`
	ExamDate         string `json:"exam_date,omitempty" validate:"omitempty"`
	EditalURL        string `json:"edital_url"`
	Active           bool   `json:"active"`
}
