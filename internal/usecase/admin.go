package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"botrental/internal/cache"
	"botrental/internal/domain"
	"botrental/internal/logger"
	"botrental/internal/service"
)

// AdminUseCase executes operator actions on user accounts. Every mutation
// passes through service.Authorize first, and the interesting ones are
// mirrored into the operators' chat.
type AdminUseCase struct {
	users    UserRepository
	blocks   BlockedUserRepository
	cache    cache.Cache
	notifier AdminNotifier
	log      *slog.Logger
}

func NewAdminUseCase(users UserRepository, blocks BlockedUserRepository, c cache.Cache, notifier AdminNotifier) *AdminUseCase {
	return &AdminUseCase{
		users:    users,
		blocks:   blocks,
		cache:    c,
		notifier: notifier,
		log:      logger.With("component", "admin_usecase"),
	}
}

// BlockUser puts a timed block on the target. A self-block attempt is
// rejected and reported to the operators.
func (uc *AdminUseCase) BlockUser(ctx context.Context, actor *domain.User, targetTelegramID int64, days int, reason string) (*domain.User, error) {
	target, err := uc.target(ctx, targetTelegramID)
	if err != nil {
		return nil, err
	}
	if err := service.Authorize(actor, service.ActionBlockUser, target); err != nil {
		if errors.Is(err, domain.ErrSelfBlock) {
			uc.notify(ctx, fmt.Sprintf("⚠️ admin %d tried to block themselves", actor.TelegramID.Int64()))
		}
		return nil, err
	}

	block, err := target.Block(days, reason, actor.ID)
	if err != nil {
		return nil, err
	}
	if err := uc.blocks.Add(ctx, block); err != nil {
		return nil, err
	}

	uc.notify(ctx, fmt.Sprintf("🚫 user %d blocked for %d day(s) by admin %d: %s",
		target.TelegramID.Int64(), days, actor.TelegramID.Int64(), reason))
	uc.log.Info("user blocked",
		"target_id", target.ID, "admin_id", actor.ID, "days", days)
	return target, nil
}

// UnblockUser lifts the target's active block.
func (uc *AdminUseCase) UnblockUser(ctx context.Context, actor *domain.User, targetTelegramID int64) (*domain.User, error) {
	target, err := uc.target(ctx, targetTelegramID)
	if err != nil {
		return nil, err
	}
	if err := service.Authorize(actor, service.ActionUnblockUser, target); err != nil {
		return nil, err
	}

	block, err := target.Unblock()
	if err != nil {
		return nil, err
	}
	if err := uc.blocks.Update(ctx, block); err != nil {
		return nil, err
	}

	uc.notify(ctx, fmt.Sprintf("✅ user %d unblocked by admin %d",
		target.TelegramID.Int64(), actor.TelegramID.Int64()))
	uc.log.Info("user unblocked", "target_id", target.ID, "admin_id", actor.ID)
	return target, nil
}

// Deposit credits the target's balance.
func (uc *AdminUseCase) Deposit(ctx context.Context, actor *domain.User, targetTelegramID, amount int64) (*domain.User, error) {
	target, err := uc.target(ctx, targetTelegramID)
	if err != nil {
		return nil, err
	}
	if err := service.Authorize(actor, service.ActionDepositMoney, target); err != nil {
		return nil, err
	}

	if err := target.Deposit(amount); err != nil {
		return nil, err
	}
	if err := uc.users.Update(ctx, target); err != nil {
		return nil, err
	}
	uc.invalidate(ctx, target)

	uc.notify(ctx, fmt.Sprintf("💰 %d deposited to user %d by admin %d",
		amount, target.TelegramID.Int64(), actor.TelegramID.Int64()))
	uc.log.Info("balance deposited",
		"target_id", target.ID, "admin_id", actor.ID, "amount", amount)
	return target, nil
}

// Withdraw debits the target's balance.
func (uc *AdminUseCase) Withdraw(ctx context.Context, actor *domain.User, targetTelegramID, amount int64) (*domain.User, error) {
	target, err := uc.target(ctx, targetTelegramID)
	if err != nil {
		return nil, err
	}
	if err := service.Authorize(actor, service.ActionWithdrawMoney, target); err != nil {
		return nil, err
	}

	if err := target.Withdraw(amount); err != nil {
		return nil, err
	}
	if err := uc.users.Update(ctx, target); err != nil {
		return nil, err
	}
	uc.invalidate(ctx, target)

	uc.notify(ctx, fmt.Sprintf("💸 %d withdrawn from user %d by admin %d",
		amount, target.TelegramID.Int64(), actor.TelegramID.Int64()))
	uc.log.Info("balance withdrawn",
		"target_id", target.ID, "admin_id", actor.ID, "amount", amount)
	return target, nil
}

// DeleteUser soft-deletes the target. Admin and dev accounts, and the actor
// themselves, are protected by the policy check.
func (uc *AdminUseCase) DeleteUser(ctx context.Context, actor *domain.User, targetTelegramID int64) error {
	target, err := uc.target(ctx, targetTelegramID)
	if err != nil {
		return err
	}
	if err := service.Authorize(actor, service.ActionDeleteUser, target); err != nil {
		return err
	}

	if err := target.Delete(); err != nil {
		return err
	}
	if err := uc.users.Update(ctx, target); err != nil {
		return err
	}
	uc.invalidate(ctx, target)

	uc.notify(ctx, fmt.Sprintf("🗑 user %d deleted by admin %d",
		target.TelegramID.Int64(), actor.TelegramID.Int64()))
	uc.log.Info("user deleted", "target_id", target.ID, "admin_id", actor.ID)
	return nil
}

// ChangeRole sets the target's role. Dev accounts keep their role.
func (uc *AdminUseCase) ChangeRole(ctx context.Context, actor *domain.User, targetTelegramID int64, role domain.Role) (*domain.User, error) {
	if !role.Valid() {
		return nil, domain.ErrInvalidRole
	}
	target, err := uc.target(ctx, targetTelegramID)
	if err != nil {
		return nil, err
	}
	if err := service.Authorize(actor, service.ActionChangeRole, target); err != nil {
		return nil, err
	}

	target.ChangeRole(role)
	if err := uc.users.Update(ctx, target); err != nil {
		return nil, err
	}
	uc.invalidate(ctx, target)

	uc.notify(ctx, fmt.Sprintf("🔑 user %d role set to %s by admin %d",
		target.TelegramID.Int64(), role, actor.TelegramID.Int64()))
	uc.log.Info("role changed",
		"target_id", target.ID, "admin_id", actor.ID, "role", role)
	return target, nil
}

// ListUsers returns every account, deleted ones included.
func (uc *AdminUseCase) ListUsers(ctx context.Context, actor *domain.User) ([]domain.User, error) {
	if err := service.Authorize(actor, service.ActionListUsers, nil); err != nil {
		return nil, err
	}
	return uc.users.GetAll(ctx)
}

// GetUser returns one account by primary key.
func (uc *AdminUseCase) GetUser(ctx context.Context, actor *domain.User, targetTelegramID int64) (*domain.User, error) {
	if err := service.Authorize(actor, service.ActionListUsers, nil); err != nil {
		return nil, err
	}
	return uc.target(ctx, targetTelegramID)
}

func (uc *AdminUseCase) target(ctx context.Context, telegramID int64) (*domain.User, error) {
	target, err := uc.users.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, domain.ErrUserNotFound
	}
	return target, nil
}

// invalidate drops the target's cached profile so the next read sees the
// committed state.
func (uc *AdminUseCase) invalidate(ctx context.Context, target *domain.User) {
	if err := uc.cache.Delete(ctx, service.UserCacheKey(target.TelegramID.Int64())); err != nil {
		uc.log.Warn("profile cache invalidation failed", "user_id", target.ID, "error", err)
	}
}

func (uc *AdminUseCase) notify(ctx context.Context, text string) {
	if uc.notifier == nil {
		return
	}
	uc.notifier.NotifyAdmins(ctx, text)
}
