package repository

import (
	"context"
	"errors"
	"fmt"

	"botrental/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRepository persists the User aggregate. "Not found" is reported as a
// nil user, never as an error; errors mean transport failure.
type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, telegram_id, balance, role, is_deleted, referrer_id, total_bonus_received, created_at, updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		u          domain.User
		telegramID int64
		balance    int64
		role       string
	)
	if err := row.Scan(
		&u.ID,
		&telegramID,
		&balance,
		&role,
		&u.IsDeleted,
		&u.ReferrerID,
		&u.TotalBonusReceived,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		return nil, err
	}
	u.TelegramID = domain.TelegramID(telegramID)
	u.Balance = domain.Balance(balance)
	u.Role = domain.Role(role)
	return &u, nil
}

func (r *UserRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error) {
	return r.getBy(ctx, `telegram_id`, telegramID)
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.getBy(ctx, `id`, id)
}

func (r *UserRepository) getBy(ctx context.Context, column string, value int64) (*domain.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE `+column+` = $1`, value)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user: %w", err)
	}

	if user.Blocks, err = r.loadBlocks(ctx, user.ID); err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) loadBlocks(ctx context.Context, userID int64) ([]domain.Block, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, blocked_until, reason, blocked_by, created_at, updated_at
		 FROM blocked_users
		 WHERE user_id = $1
		 ORDER BY created_at`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("select blocks: %w", err)
	}
	defer rows.Close()

	var blocks []domain.Block
	for rows.Next() {
		var b domain.Block
		if err := rows.Scan(&b.ID, &b.UserID, &b.BlockedUntil, &b.Reason, &b.BlockedBy,
			&b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan block: %w", err)
		}
		blocks = append(blocks, b)
	}
	return blocks, rows.Err()
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO users (telegram_id, balance, role, referrer_id, total_bonus_received)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		u.TelegramID.Int64(),
		u.Balance.Int64(),
		string(u.Role),
		u.ReferrerID,
		u.TotalBonusReceived,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) Update(ctx context.Context, u *domain.User) error {
	err := r.db.QueryRow(ctx,
		`UPDATE users
		 SET balance = $1, role = $2, is_deleted = $3, referrer_id = $4,
		     total_bonus_received = $5, updated_at = now()
		 WHERE id = $6
		 RETURNING updated_at`,
		u.Balance.Int64(),
		string(u.Role),
		u.IsDeleted,
		u.ReferrerID,
		u.TotalBonusReceived,
		u.ID,
	).Scan(&u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetAll(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("select users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}
