// Package repository implementa o armazenamento em PostgreSQL para
// perfis, questões, apostilas, concursos e tokens de redefinição de
// senha.
package repository

import (
	"context"
	"database/sql"
	"fmt"

	// Registro do driver pgx para uso com database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Storage encapsula a conexão com o PostgreSQL e implementa os
// repositórios usados pelos serviços.
type Storage struct {
	DB *sql.DB
}

// New abre a conexão com o PostgreSQL e verifica a disponibilidade.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// CheckDatabaseReady verifica se o esquema mínimo existe.
func CheckDatabaseReady(storage *Storage) error {
	var exists bool
	err := storage.DB.QueryRow(`SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'profiles'
    )`).Scan(&exists)
	if err != nil || !exists {
		return fmt.Errorf("required table profiles missing or query error: %w", err)
	}
	return nil
}
