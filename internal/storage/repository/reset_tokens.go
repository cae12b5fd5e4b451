package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrResetTokenInvalid indica token de redefinição inexistente,
// expirado ou já utilizado.
var ErrResetTokenInvalid = errors.New("reset token invalid")

// CreateResetToken grava o hash de um token de redefinição com prazo
// de validade. Apenas o hash sha256 chega até aqui.
func (s *Storage) CreateResetToken(ctx context.Context, uid, tokenHash string, expiresAt time.Time) error {
	const op = "storage.CreateResetToken"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO password_resets (profile_uid, token_hash, expires_at)
			  VALUES ($1, $2, $3)`
	_, err := s.DB.ExecContext(ctx, query, uid, tokenHash, expiresAt)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ConsumeResetToken marca o token como usado e devolve o uid do perfil
// dono. Tokens expirados ou já usados resultam em ErrResetTokenInvalid.
func (s *Storage) ConsumeResetToken(ctx context.Context, tokenHash string) (string, error) {
	const op = "storage.ConsumeResetToken"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE password_resets
			  SET used_at = NOW()
			  WHERE token_hash = $1
			    AND used_at IS NULL
			    AND expires_at > NOW()
			  RETURNING profile_uid`
	var uid string
	err := s.DB.QueryRowContext(ctx, query, tokenHash).Scan(&uid)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%s: %w", op, ErrResetTokenInvalid)
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return uid, nil
}
