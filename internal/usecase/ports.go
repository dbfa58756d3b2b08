package usecase

import (
	"context"

	"botrental/internal/domain"
)

// Persistence contracts consumed by the use cases. All Get* methods report
// absence with a nil result; errors are transport failures.

type UserRepository interface {
	GetByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) error
	Update(ctx context.Context, u *domain.User) error
	GetAll(ctx context.Context) ([]domain.User, error)
}

type BlockedUserRepository interface {
	Add(ctx context.Context, b *domain.Block) error
	Update(ctx context.Context, b *domain.Block) error
}

type ReferralRepository interface {
	LinkWithBonus(ctx context.Context, ref *domain.Referral, bonus int64) error
	GetAllByReferrerID(ctx context.Context, referrerID int64) ([]domain.Referral, error)
}

type BotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Bot, error)
	GetAllAvailable(ctx context.Context) ([]domain.Bot, error)
}

type RentalRepository interface {
	CreateWithDebit(ctx context.Context, rental *domain.Rental, price int64) error
	GetByID(ctx context.Context, id int64) (*domain.Rental, error)
	GetAllByUserID(ctx context.Context, userID int64) ([]domain.Rental, error)
	Update(ctx context.Context, rental *domain.Rental) error
}

// AdminNotifier mirrors administrative actions into the operators' chat.
// Implementations are best-effort and never fail the caller.
type AdminNotifier interface {
	NotifyAdmins(ctx context.Context, text string)
}
