package usecase

import (
	"context"
	"log/slog"
	"time"

	"botrental/internal/cache"
	"botrental/internal/domain"
	"botrental/internal/logger"
	"botrental/internal/service"

	"github.com/google/uuid"
)

// RentalUseCase converts balance into time-bounded bot grants.
type RentalUseCase struct {
	bots    BotRepository
	rentals RentalRepository
	cache   cache.Cache
	log     *slog.Logger
}

func NewRentalUseCase(bots BotRepository, rentals RentalRepository, c cache.Cache) *RentalUseCase {
	return &RentalUseCase{
		bots:    bots,
		rentals: rentals,
		cache:   c,
		log:     logger.With("component", "rental_usecase"),
	}
}

// Rent creates the rental and debits the bot's price in one unit of work.
// token is the opaque access token handed to the bot; generated when empty.
func (uc *RentalUseCase) Rent(ctx context.Context, botID int64, user *domain.User, months int, token string) (*domain.Rental, error) {
	bot, err := uc.bots.GetByID(ctx, botID)
	if err != nil {
		return nil, err
	}
	if bot == nil {
		return nil, domain.ErrBotNotFound
	}
	if !bot.CanBeRented() {
		return nil, domain.ErrBotCannotBeRented
	}

	if token == "" {
		token = uuid.NewString()
	}

	rental, err := domain.NewRental(user.ID, bot.ID, token, months, time.Now())
	if err != nil {
		return nil, err
	}

	// Insert and debit commit together; the repository locks the user row,
	// so a concurrent rental cannot overdraw the balance.
	if err := uc.rentals.CreateWithDebit(ctx, rental, bot.Price); err != nil {
		return nil, err
	}

	// Keep the caller's snapshot consistent with the committed debit.
	_ = user.Withdraw(bot.Price)

	if err := uc.cache.Delete(ctx, service.UserCacheKey(user.TelegramID.Int64())); err != nil {
		uc.log.Warn("profile cache invalidation failed", "user_id", user.ID, "error", err)
	}

	uc.log.Info("bot rented",
		"user_id", user.ID, "bot_id", bot.ID, "months", months, "price", bot.Price)
	return rental, nil
}

// Stop deactivates an owned rental. No refund is issued.
func (uc *RentalUseCase) Stop(ctx context.Context, rentalID int64, user *domain.User) (*domain.Rental, error) {
	rental, err := uc.ownedRental(ctx, rentalID, user)
	if err != nil {
		return nil, err
	}

	if err := rental.Stop(); err != nil {
		return nil, err
	}
	if err := uc.rentals.Update(ctx, rental); err != nil {
		return nil, err
	}

	uc.log.Info("rental stopped", "rental_id", rental.ID, "user_id", user.ID)
	return rental, nil
}

// Start re-activates a stopped rental whose paid window has not ended.
func (uc *RentalUseCase) Start(ctx context.Context, rentalID int64, user *domain.User) (*domain.Rental, error) {
	rental, err := uc.ownedRental(ctx, rentalID, user)
	if err != nil {
		return nil, err
	}

	if err := rental.Start(time.Now()); err != nil {
		return nil, err
	}
	if err := uc.rentals.Update(ctx, rental); err != nil {
		return nil, err
	}

	uc.log.Info("rental started", "rental_id", rental.ID, "user_id", user.ID)
	return rental, nil
}

// ListByUser returns the caller's rentals, newest first.
func (uc *RentalUseCase) ListByUser(ctx context.Context, user *domain.User) ([]domain.Rental, error) {
	return uc.rentals.GetAllByUserID(ctx, user.ID)
}

// AvailableBots lists bots open for rent.
func (uc *RentalUseCase) AvailableBots(ctx context.Context) ([]domain.Bot, error) {
	return uc.bots.GetAllAvailable(ctx)
}

func (uc *RentalUseCase) ownedRental(ctx context.Context, rentalID int64, user *domain.User) (*domain.Rental, error) {
	rental, err := uc.rentals.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if rental == nil {
		return nil, domain.ErrRentalNotFound
	}
	if rental.UserID != user.ID {
		return nil, domain.ErrPermissionDenied
	}
	return rental, nil
}
