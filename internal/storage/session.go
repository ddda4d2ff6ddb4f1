package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// SaveToken upserts the singleton session row.
func (s *SQLiteStorage) SaveToken(ctx context.Context, token string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	if token == "" {
		return s.DeleteToken(ctx)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO session (id, access_token, updated_at)
		VALUES (1, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			access_token = excluded.access_token,
			updated_at = CURRENT_TIMESTAMP`,
		token)
	if err != nil {
		return fmt.Errorf("failed to save session token: %w", err)
	}
	return nil
}

// LoadToken returns the persisted session token, or empty when none is
// saved.
func (s *SQLiteStorage) LoadToken(ctx context.Context) (string, error) {
	if err := validateContext(ctx); err != nil {
		return "", err
	}

	var token string
	row := s.db.QueryRowContext(ctx, `SELECT access_token FROM session WHERE id = 1`)
	if err := row.Scan(&token); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("failed to load session token: %w", err)
	}
	return token, nil
}

// DeleteToken removes the persisted session.
func (s *SQLiteStorage) DeleteToken(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM session WHERE id = 1`); err != nil {
		return fmt.Errorf("failed to delete session token: %w", err)
	}
	return nil
}
