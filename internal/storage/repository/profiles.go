package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hbrsolucoes/ponto-simulado/internal/models"
)

// ErrProfileNotFound indica que não existe linha de perfil para a
// identidade consultada. O resolvedor de perfis depende dessa
// distinção para o caminho de auto-provisionamento.
var ErrProfileNotFound = errors.New("profile not found")

// CreateProfile insere um novo perfil e devolve o uid gerado.
func (s *Storage) CreateProfile(ctx context.Context, p models.Profile) (string, error) {
	const op = "storage.CreateProfile"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newUID string
	query := `INSERT INTO profiles (email, password_hash, role, subscription_active)
			  VALUES ($1, $2, $3, $4)
			  RETURNING uid;`
	if err := s.DB.QueryRowContext(ctx, query,
		p.Email, p.PasswordHash, p.Role, p.SubscriptionActive).Scan(&newUID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newUID, nil
}

// GetProfileByUID devolve o perfil pelo uid ou ErrProfileNotFound.
func (s *Storage) GetProfileByUID(ctx context.Context, uid string) (*models.Profile, error) {
	const op = "storage.GetProfileByUID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, email, password_hash, role, subscription_active, created_at, updated_at
			  FROM profiles
			  WHERE uid = $1`
	p := &models.Profile{}
	row := s.DB.QueryRowContext(ctx, query, uid)
	if err := row.Scan(&p.UID, &p.Email, &p.PasswordHash, &p.Role,
		&p.SubscriptionActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrProfileNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// GetProfileByEmail devolve o perfil pelo e-mail ou ErrProfileNotFound.
func (s *Storage) GetProfileByEmail(ctx context.Context, email string) (*models.Profile, error) {
	const op = "storage.GetProfileByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, email, password_hash, role, subscription_active, created_at, updated_at
			  FROM profiles
			  WHERE email = $1`
	p := &models.Profile{}
	row := s.DB.QueryRowContext(ctx, query, email)
	if err := row.Scan(&p.UID, &p.Email, &p.PasswordHash, &p.Role,
		&p.SubscriptionActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrProfileNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// ListProfiles devolve os perfis cadastrados com paginação.
func (s *Storage) ListProfiles(ctx context.Context, limit, offset int) ([]*models.Profile, error) {
	const op = "storage.ListProfiles"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, email, password_hash, role, subscription_active, created_at, updated_at
			  FROM profiles
			  ORDER BY created_at
			  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	var result []*models.Profile
	for rows.Next() {
		var p models.Profile
		if err = rows.Scan(&p.UID, &p.Email, &p.PasswordHash, &p.Role,
			&p.SubscriptionActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateProfileRole atualiza apenas o papel do perfil.
func (s *Storage) UpdateProfileRole(ctx context.Context, uid, role string) error {
	const op = "storage.UpdateProfileRole"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE profiles
			  SET role = $1, updated_at = NOW()
			  WHERE uid = $2`
	_, err := s.DB.ExecContext(ctx, query, role, uid)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// UpdateProfileAccess atualiza papel e situação da assinatura, como
// feito pela tela administrativa de usuários.
func (s *Storage) UpdateProfileAccess(ctx context.Context, uid, role string, subscriptionActive bool) (int, error) {
	const op = "storage.UpdateProfileAccess"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE profiles
			  SET role = $1, subscription_active = $2, updated_at = NOW()
			  WHERE uid = $3`
	result, err := s.DB.ExecContext(ctx, query, role, subscriptionActive, uid)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// UpdatePasswordHash grava o novo hash de senha do perfil.
func (s *Storage) UpdatePasswordHash(ctx context.Context, uid, hash string) error {
	const op = "storage.UpdatePasswordHash"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE profiles
			  SET password_hash = $1, updated_at = NOW()
			  WHERE uid = $2`
	_, err := s.DB.ExecContext(ctx, query, hash, uid)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
