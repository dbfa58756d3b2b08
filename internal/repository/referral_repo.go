package repository

import (
	"context"
	"errors"
	"fmt"

	"botrental/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReferralRepository struct {
	db *pgxpool.Pool
}

func NewReferralRepository(db *pgxpool.Pool) *ReferralRepository {
	return &ReferralRepository{db: db}
}

// LinkWithBonus persists the referrer linkage on the invited user, the
// referral record and the referrer's bonus credit under one transaction. A
// duplicate pair rolls the whole linkage back without error, so the bonus is
// credited at most once per invitee.
func (r *ReferralRepository) LinkWithBonus(ctx context.Context, ref *domain.Referral, bonus int64) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin referral transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx,
		`UPDATE users SET referrer_id = $1, updated_at = now()
		 WHERE id = $2 AND referrer_id IS NULL`,
		ref.ReferrerID, ref.ReferralID,
	)
	if err != nil {
		return fmt.Errorf("assign referrer: %w", err)
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO referrals (referrer_id, referral_id, telegram_id, invited_at, total_bonus)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (referrer_id, referral_id) DO NOTHING
		 RETURNING id, created_at, updated_at`,
		ref.ReferrerID, ref.ReferralID, ref.TelegramID, ref.InvitedAt, ref.TotalBonus,
	).Scan(&ref.ID, &ref.CreatedAt, &ref.UpdatedAt)
	if err != nil {
		// DO NOTHING on a duplicate pair leaves RETURNING empty.
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return fmt.Errorf("insert referral: %w", err)
	}

	_, err = tx.Exec(ctx,
		`UPDATE users
		 SET balance = balance + $1,
		     total_bonus_received = total_bonus_received + $1,
		     updated_at = now()
		 WHERE id = $2`,
		bonus, ref.ReferrerID,
	)
	if err != nil {
		return fmt.Errorf("credit referrer: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit referral transaction: %w", err)
	}
	return nil
}

func (r *ReferralRepository) GetAllByReferrerID(ctx context.Context, referrerID int64) ([]domain.Referral, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, referrer_id, referral_id, telegram_id, invited_at, total_bonus, created_at, updated_at
		 FROM referrals
		 WHERE referrer_id = $1
		 ORDER BY invited_at DESC`,
		referrerID,
	)
	if err != nil {
		return nil, fmt.Errorf("select referrals: %w", err)
	}
	defer rows.Close()

	var referrals []domain.Referral
	for rows.Next() {
		var ref domain.Referral
		if err := rows.Scan(&ref.ID, &ref.ReferrerID, &ref.ReferralID, &ref.TelegramID,
			&ref.InvitedAt, &ref.TotalBonus, &ref.CreatedAt, &ref.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan referral: %w", err)
		}
		referrals = append(referrals, ref)
	}
	return referrals, rows.Err()
}
