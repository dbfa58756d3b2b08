package repository

import (
	"context"
	"errors"
	"fmt"

	"botrental/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RentalRepository struct {
	db *pgxpool.Pool
}

func NewRentalRepository(db *pgxpool.Pool) *RentalRepository {
	return &RentalRepository{db: db}
}

const rentalColumns = `id, user_id, bot_id, token, rented_until, is_active, created_at, updated_at`

// CreateWithDebit inserts the rental and debits the price from the user's
// balance under one transaction. The user row is locked first, so concurrent
// rentals by the same user serialize and the balance can never go negative.
func (r *RentalRepository) CreateWithDebit(ctx context.Context, rental *domain.Rental, price int64) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin rent transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var balance int64
	err = tx.QueryRow(ctx,
		`SELECT balance FROM users WHERE id = $1 FOR UPDATE`, rental.UserID,
	).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("lock user row: %w", err)
	}

	if balance < price {
		return domain.ErrInsufficientFunds
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO rentals (user_id, bot_id, token, rented_until, is_active)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		rental.UserID, rental.BotID, rental.Token, rental.RentedUntil, rental.IsActive,
	).Scan(&rental.ID, &rental.CreatedAt, &rental.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert rental: %w", err)
	}

	_, err = tx.Exec(ctx,
		`UPDATE users SET balance = balance - $1, updated_at = now() WHERE id = $2`,
		price, rental.UserID,
	)
	if err != nil {
		return fmt.Errorf("debit balance: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit rent transaction: %w", err)
	}
	return nil
}

func (r *RentalRepository) GetByID(ctx context.Context, id int64) (*domain.Rental, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+rentalColumns+` FROM rentals WHERE id = $1`, id)

	var rental domain.Rental
	err := row.Scan(&rental.ID, &rental.UserID, &rental.BotID, &rental.Token,
		&rental.RentedUntil, &rental.IsActive, &rental.CreatedAt, &rental.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select rental: %w", err)
	}
	return &rental, nil
}

func (r *RentalRepository) GetAllByUserID(ctx context.Context, userID int64) ([]domain.Rental, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+rentalColumns+` FROM rentals WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("select rentals: %w", err)
	}
	defer rows.Close()

	var rentals []domain.Rental
	for rows.Next() {
		var rental domain.Rental
		if err := rows.Scan(&rental.ID, &rental.UserID, &rental.BotID, &rental.Token,
			&rental.RentedUntil, &rental.IsActive, &rental.CreatedAt, &rental.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan rental: %w", err)
		}
		rentals = append(rentals, rental)
	}
	return rentals, rows.Err()
}

func (r *RentalRepository) Update(ctx context.Context, rental *domain.Rental) error {
	_, err := r.db.Exec(ctx,
		`UPDATE rentals SET is_active = $1, rented_until = $2, updated_at = now() WHERE id = $3`,
		rental.IsActive, rental.RentedUntil, rental.ID,
	)
	if err != nil {
		return fmt.Errorf("update rental: %w", err)
	}
	return nil
}
