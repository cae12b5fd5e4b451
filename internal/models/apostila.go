package models

import "time"

// Apostila representa um material de estudo com arquivo publicado no
// armazenamento de objetos. FileURL aponta para a URL pública do
// arquivo; ObjectName guarda a chave interna usada na remoção.
type Apostila struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	FileURL     string    `json:"file_url"`
	ObjectName  string    `json:"-"`
	FileSize    int64     `json:"file_size"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DummyApostila recebe os metadados de uma apostila. No upload os
// campos chegam como parte de um formulário multipart junto do arquivo.
type DummyApostila struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Category    string `json:"category" validate:"required"`
	Active      bool   `json:"active"`
}
