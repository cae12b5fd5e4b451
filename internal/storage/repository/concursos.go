package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hbrsolucoes/ponto-simulado/internal/models"
)

// CreateConcurso insere um novo concurso e devolve seu ID.
func (s *Storage) CreateConcurso(ctx context.Context, c models.Concurso) (int, error) {
	const op = "storage.CreateConcurso"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO concursos (title, organ, banca, vacancies, salary,
			      inscription_start, inscription_end, exam_date, edital_url, active)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		c.Title, c.Organ, c.Banca, c.Vacancies, c.Salary,
		c.InscriptionStart, c.InscriptionEnd, c.ExamDate, c.EditalURL, c.Active).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListConcursos devolve os concursos com paginação; quando search não é
// vazio, filtra por substring em título, órgão ou banca.
func (s *Storage) ListConcursos(ctx context.Context, search string, limit, offset int) ([]*models.Concurso, error) {
	const op = "storage.ListConcursos"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, organ, banca, vacancies, salary, inscription_start,
			      inscription_end, exam_date, edital_url, active, created_at, updated_at
			  FROM concursos
			  WHERE ($1 = '' OR title ILIKE '%' || $1 || '%'
			      OR organ ILIKE '%' || $1 || '%'
			      OR banca ILIKE '%' || $1 || '%')
			  ORDER BY inscription_end DESC
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, search, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	var result []*models.Concurso
	for rows.Next() {
		var c models.Concurso
		var examDate sql.NullTime
		if err = rows.Scan(&c.ID, &c.Title, &c.Organ, &c.Banca, &c.Vacancies, &c.Salary,
			&c.InscriptionStart, &c.InscriptionEnd, &examDate, &c.EditalURL, &c.Active,
			&c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if examDate.Valid {
			c.ExamDate = &examDate.Time
		}
		result = append(result, &c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateConcurso atualiza o concurso pelo ID e devolve o número de
// linhas afetadas.
func (s *Storage) UpdateConcurso(ctx context.Context, c models.Concurso, id int) (int, error) {
	const op = "storage.UpdateConcurso"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE concursos
			  SET title = $1, organ = $2, banca = $3, vacancies = $4, salary = $5,
			      inscription_start = $6, inscription_end = $7, exam_date = $8,
			      edital_url = $9, active = $10, updated_at = NOW()
			  WHERE id = $11`
	result, err := s.DB.ExecContext(ctx, query,
		c.Title, c.Organ, c.Banca, c.Vacancies, c.Salary,
		c.InscriptionStart, c.InscriptionEnd, c.ExamDate, c.EditalURL, c.Active, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveConcurso apaga o concurso pelo ID e devolve o número de linhas
// removidas.
func (s *Storage) RemoveConcurso(ctx context.Context, id int) (int, error) {
	const op = "storage.RemoveConcurso"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM concursos WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
