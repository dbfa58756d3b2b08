package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"botrental/internal/cache"
	"botrental/internal/domain"
	"botrental/internal/logger"
	"botrental/internal/notify"
	"botrental/internal/service"
)

// AuthUseCase drives the one-time-code login flow: send code, verify code
// (login-or-register), refresh access token.
type AuthUseCase struct {
	users     UserRepository
	referrals ReferralRepository
	codes     *service.CodeService
	tokens    *service.TokenService
	cache     cache.Cache
	sender    notify.Sender
	log       *slog.Logger
}

func NewAuthUseCase(
	users UserRepository,
	referrals ReferralRepository,
	codes *service.CodeService,
	tokens *service.TokenService,
	c cache.Cache,
	sender notify.Sender,
) *AuthUseCase {
	return &AuthUseCase{
		users:     users,
		referrals: referrals,
		codes:     codes,
		tokens:    tokens,
		cache:     c,
		sender:    sender,
		log:       logger.With("component", "auth_usecase"),
	}
}

// SendCode validates the external id and issues a one-time code. refID is
// the inviting user's telegram id, zero when absent. Whether the id belongs
// to a registered user is deliberately not revealed.
func (uc *AuthUseCase) SendCode(ctx context.Context, telegramID, refID int64) error {
	if _, err := domain.NewTelegramID(telegramID); err != nil {
		return err
	}
	return uc.codes.SendCode(ctx, telegramID, refID)
}

// VerifyCode checks the submitted code and either logs the existing user in
// or registers a new one, returning the user with a fresh credential pair.
func (uc *AuthUseCase) VerifyCode(ctx context.Context, telegramID int64, code string) (*domain.User, string, string, error) {
	if err := uc.codes.CheckCode(ctx, telegramID, code); err != nil {
		return nil, "", "", err
	}

	user, err := uc.users.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, "", "", err
	}

	if user == nil {
		if user, err = uc.register(ctx, telegramID); err != nil {
			return nil, "", "", err
		}
	} else {
		uc.log.Info("user logged in", "telegram_id", telegramID)
		uc.sendAsync(telegramID, fmt.Sprintf("You signed in to BotRental at %s.",
			time.Now().Format("02.01.2006 15:04")))
	}

	access, refresh, err := uc.tokens.CreateTokens(telegramID)
	if err != nil {
		return nil, "", "", err
	}
	return user, access, refresh, nil
}

// RefreshAccessToken mints a new access token from a valid refresh token.
func (uc *AuthUseCase) RefreshAccessToken(refreshToken string) (string, error) {
	return uc.tokens.RefreshAccessToken(refreshToken)
}

// ListReferrals returns the users invited by the caller.
func (uc *AuthUseCase) ListReferrals(ctx context.Context, user *domain.User) ([]domain.Referral, error) {
	return uc.referrals.GetAllByReferrerID(ctx, user.ID)
}

func (uc *AuthUseCase) register(ctx context.Context, telegramID int64) (*domain.User, error) {
	user, err := domain.NewUser(telegramID)
	if err != nil {
		return nil, err
	}
	user.AddWelcomeBonus()

	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}
	uc.log.Info("user registered", "telegram_id", telegramID, "user_id", user.ID)

	// Referral linkage is a side effect of registration; its failure never
	// fails the registration itself.
	uc.applyPendingReferral(ctx, user)

	uc.sendAsync(telegramID, "You successfully registered on BotRental and linked your Telegram.")
	return user, nil
}

// applyPendingReferral consumes the referrer id stashed at SendCode time,
// links the two accounts and credits the referrer's bonus.
func (uc *AuthUseCase) applyPendingReferral(ctx context.Context, user *domain.User) {
	refTelegramID, ok := uc.codes.ConsumePendingReferrer(ctx, user.TelegramID.Int64())
	if !ok {
		return
	}

	referrer, err := uc.users.GetByTelegramID(ctx, refTelegramID)
	if err != nil || referrer == nil {
		uc.log.Warn("pending referrer not resolved",
			"referrer_telegram_id", refTelegramID, "error", err)
		return
	}

	if err := user.AssignReferrer(referrer.ID); err != nil {
		uc.log.Warn("referrer assignment rejected",
			"user_id", user.ID, "referrer_id", referrer.ID, "error", err)
		return
	}

	// Linkage, referral row and bonus credit commit together or not at all.
	ref := domain.NewReferral(referrer.ID, user.ID, user.TelegramID.Int64())
	ref.AddBonus(domain.ReferralBonus)
	if err := uc.referrals.LinkWithBonus(ctx, ref, domain.ReferralBonus); err != nil {
		uc.log.Warn("referral linkage not persisted",
			"user_id", user.ID, "referrer_id", referrer.ID, "error", err)
		return
	}

	if err := uc.cache.Delete(ctx, service.UserCacheKey(refTelegramID)); err != nil {
		uc.log.Warn("referrer cache invalidation failed", "referrer_id", referrer.ID, "error", err)
	}

	uc.log.Info("referral linked",
		"referrer_id", referrer.ID, "referral_id", user.ID, "bonus", domain.ReferralBonus)
	uc.sendAsync(refTelegramID, fmt.Sprintf("Your invitee joined BotRental, +%d bonus.", domain.ReferralBonus))
}

func (uc *AuthUseCase) sendAsync(telegramID int64, text string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := uc.sender.Send(ctx, telegramID, text); err != nil {
			uc.log.Warn("notification dropped", "telegram_id", telegramID, "error", err)
		}
	}()
}
