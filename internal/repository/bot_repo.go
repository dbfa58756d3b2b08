package repository

import (
	"context"
	"errors"
	"fmt"

	"botrental/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BotRepository struct {
	db *pgxpool.Pool
}

func NewBotRepository(db *pgxpool.Pool) *BotRepository {
	return &BotRepository{db: db}
}

const botColumns = `id, name, description, price, is_available, is_deleted, created_at, updated_at`

func (r *BotRepository) GetByID(ctx context.Context, id int64) (*domain.Bot, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+botColumns+` FROM bots WHERE id = $1`, id)

	var b domain.Bot
	err := row.Scan(&b.ID, &b.Name, &b.Description, &b.Price, &b.IsAvailable,
		&b.IsDeleted, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select bot: %w", err)
	}
	return &b, nil
}

// GetAllAvailable lists rentable bots.
func (r *BotRepository) GetAllAvailable(ctx context.Context) ([]domain.Bot, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+botColumns+` FROM bots WHERE is_available AND NOT is_deleted ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("select bots: %w", err)
	}
	defer rows.Close()

	var bots []domain.Bot
	for rows.Next() {
		var b domain.Bot
		if err := rows.Scan(&b.ID, &b.Name, &b.Description, &b.Price, &b.IsAvailable,
			&b.IsDeleted, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan bot: %w", err)
		}
		bots = append(bots, b)
	}
	return bots, rows.Err()
}

func (r *BotRepository) Create(ctx context.Context, b *domain.Bot) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO bots (name, description, price, is_available)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		b.Name, b.Description, b.Price, b.IsAvailable,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert bot: %w", err)
	}
	return nil
}

func (r *BotRepository) Update(ctx context.Context, b *domain.Bot) error {
	_, err := r.db.Exec(ctx,
		`UPDATE bots
		 SET name = $1, description = $2, price = $3, is_available = $4,
		     is_deleted = $5, updated_at = now()
		 WHERE id = $6`,
		b.Name, b.Description, b.Price, b.IsAvailable, b.IsDeleted, b.ID,
	)
	if err != nil {
		return fmt.Errorf("update bot: %w", err)
	}
	return nil
}
