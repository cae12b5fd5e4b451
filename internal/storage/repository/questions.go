package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hbrsolucoes/ponto-simulado/internal/models"
)

// CreateQuestion insere uma nova questão e devolve seu ID.
// As alternativas são gravadas como jsonb.
func (s *Storage) CreateQuestion(ctx context.Context, q models.Question) (int, error) {
	const op = "storage.CreateQuestion"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	options, err := json.Marshal(q.Options)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	query := `INSERT INTO questoes (statement, options, correct_option, category, banca, active)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id`
	var newID int
	err = s.DB.QueryRowContext(ctx, query,
		q.Statement, options, q.CorrectOption, q.Category, q.Banca, q.Active).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListQuestions devolve as questões com paginação; quando search não é
// vazio, filtra por substring em enunciado, categoria ou banca.
func (s *Storage) ListQuestions(ctx context.Context, search string, limit, offset int) ([]*models.Question, error) {
	const op = "storage.ListQuestions"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, statement, options, correct_option, category, banca, active,
			      created_at, updated_at
			  FROM questoes
			  WHERE ($1 = '' OR statement ILIKE '%' || $1 || '%'
			      OR category ILIKE '%' || $1 || '%'
			      OR banca ILIKE '%' || $1 || '%')
			  ORDER BY created_at DESC
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, search, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	var result []*models.Question
	for rows.Next() {
		var q models.Question
		var options []byte
		if err = rows.Scan(&q.ID, &q.Statement, &options, &q.CorrectOption,
			&q.Category, &q.Banca, &q.Active, &q.CreatedAt, &q.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if err = json.Unmarshal(options, &q.Options); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &q)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateQuestion atualiza a questão pelo ID e devolve o número de
// linhas afetadas.
func (s *Storage) UpdateQuestion(ctx context.Context, q models.Question, id int) (int, error) {
	const op = "storage.UpdateQuestion"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	options, err := json.Marshal(q.Options)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	query := `UPDATE questoes
			  SET statement = $1, options = $2, correct_option = $3, category = $4,
			      banca = $5, active = $6, updated_at = NOW()
			  WHERE id = $7`
	result, err := s.DB.ExecContext(ctx, query,
		q.Statement, options, q.CorrectOption, q.Category, q.Banca, q.Active, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveQuestion apaga a questão pelo ID e devolve o número de linhas
// removidas.
func (s *Storage) RemoveQuestion(ctx context.Context, id int) (int, error) {
	const op = "storage.RemoveQuestion"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM questoes WHERE id = $1`
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
