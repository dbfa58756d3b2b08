package repository

import (
	"context"
	"fmt"

	"botrental/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// BlockedUserRepository persists block history rows. Rows are append-only;
// deactivation only rewrites blocked_until.
type BlockedUserRepository struct {
	db *pgxpool.Pool
}

func NewBlockedUserRepository(db *pgxpool.Pool) *BlockedUserRepository {
	return &BlockedUserRepository{db: db}
}

func (r *BlockedUserRepository) Add(ctx context.Context, b *domain.Block) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO blocked_users (user_id, blocked_until, reason, blocked_by)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		b.UserID, b.BlockedUntil, b.Reason, b.BlockedBy,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert block: %w", err)
	}
	return nil
}

func (r *BlockedUserRepository) Update(ctx context.Context, b *domain.Block) error {
	_, err := r.db.Exec(ctx,
		`UPDATE blocked_users SET blocked_until = $1, updated_at = now() WHERE id = $2`,
		b.BlockedUntil, b.ID,
	)
	if err != nil {
		return fmt.Errorf("update block: %w", err)
	}
	return nil
}
