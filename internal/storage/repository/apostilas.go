package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hbrsolucoes/ponto-simulado/internal/models"
)

// ErrApostilaNotFound indica que não há apostila com o ID informado.
var ErrApostilaNotFound = errors.New("apostila not found")

// CreateApostila insere uma nova apostila e devolve seu ID.
func (s *Storage) CreateApostila(ctx context.Context, a models.Apostila) (int, error) {
	const op = "storage.CreateApostila"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO apostilas (title, description, category, file_url, object_name,
			      file_size, active)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		a.Title, a.Description, a.Category, a.FileURL, a.ObjectName,
		a.FileSize, a.Active).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListApostilas devolve as apostilas com paginação; quando search não é
// vazio, filtra por substring em título ou categoria.
func (s *Storage) ListApostilas(ctx context.Context, search string, limit, offset int) ([]*models.Apostila, error) {
	const op = "storage.ListApostilas"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, description, category, file_url, object_name, file_size,
			      active, created_at, updated_at
			  FROM apostilas
			  WHERE ($1 = '' OR title ILIKE '%' || $1 || '%'
			      OR category ILIKE '%' || $1 || '%')
			  ORDER BY created_at DESC
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, search, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	var result []*models.Apostila
	for rows.Next() {
		var a models.Apostila
		if err = rows.Scan(&a.ID, &a.Title, &a.Description, &a.Category, &a.FileURL,
			&a.ObjectName, &a.FileSize, &a.Active, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetApostila devolve a apostila pelo ID.
func (s *Storage) GetApostila(ctx context.Context, id int) (*models.Apostila, error) {
	const op = "storage.GetApostila"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, description, category, file_url, object_name, file_size,
			      active, created_at, updated_at
			  FROM apostilas
			  WHERE id = $1`
	a := &models.Apostila{}
	row := s.DB.QueryRowContext(ctx, query, id)
	if err := row.Scan(&a.ID, &a.Title, &a.Description, &a.Category, &a.FileURL,
		&a.ObjectName, &a.FileSize, &a.Active, &a.CreatedAt, &a.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrApostilaNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return a, nil
}

// UpdateApostila atualiza os metadados da apostila pelo ID.
func (s *Storage) UpdateApostila(ctx context.Context, a models.Apostila, id int) (int, error) {
	const op = "storage.UpdateApostila"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE apostilas
			  SET title = $1, description = $2, category = $3, active = $4, updated_at = NOW()
			  WHERE id = $5`
	result, err := s.DB.ExecContext(ctx, query,
		a.Title, a.Description, a.Category, a.Active, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveApostila apaga a apostila pelo ID e devolve a chave do objeto
// associado para remoção no armazenamento.
func (s *Storage) RemoveApostila(ctx context.Context, id int) (int, string, error) {
	const op = "storage.RemoveApostila"
	select {
	case <-ctx.Done():
		return 0, "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var objectName string
	query := `DELETE FROM apostilas WHERE id = $1 RETURNING object_name`
	err := s.DB.QueryRowContext(ctx, query, id).Scan(&objectName)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, "", nil
	}
	if err != nil {
		return 0, "", fmt.Errorf("%s: %w", op, err)
	}
	return 1, objectName, nil
}
