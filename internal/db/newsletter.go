package db

import (
	"context"
	"fmt"
)

// Subscribe records a newsletter signup. Re-subscribing is a no-op.
func (s *Store) Subscribe(ctx context.Context, email string) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO newsletter_subscribers (email)
		VALUES ($1)
		ON CONFLICT (email) DO NOTHING
	`, email)
	if err != nil {
		return fmt.Errorf("subscribe failed: %w", err)
	}
	return nil
}
