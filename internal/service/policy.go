package service

import "botrental/internal/domain"

// AdminAction names an administrative capability.
type AdminAction string

const (
	ActionBlockUser     AdminAction = "block_user"
	ActionUnblockUser   AdminAction = "unblock_user"
	ActionDepositMoney  AdminAction = "deposit_money"
	ActionWithdrawMoney AdminAction = "withdraw_money"
	ActionDeleteUser    AdminAction = "delete_user"
	ActionChangeRole    AdminAction = "change_role"
	ActionListUsers     AdminAction = "list_users"
)

// Authorize is the single capability check every administrative use case
// runs. target is nil for list-style actions.
func Authorize(actor *domain.User, action AdminAction, target *domain.User) error {
	if actor == nil || (actor.Role != domain.RoleAdmin && actor.Role != domain.RoleDev) {
		return domain.ErrPermissionDenied
	}
	if target == nil {
		return nil
	}

	self := actor.ID == target.ID

	switch action {
	case ActionBlockUser:
		if self {
			return domain.ErrSelfBlock
		}
	case ActionDeleteUser:
		if self {
			return domain.ErrPermissionDenied
		}
		// Admin and dev accounts are never deleted through this path.
		if target.Role == domain.RoleAdmin || target.Role == domain.RoleDev {
			return domain.ErrPermissionDenied
		}
	case ActionChangeRole:
		if self {
			return domain.ErrPermissionDenied
		}
		if target.Role == domain.RoleDev {
			return domain.ErrPermissionDenied
		}
	}
	return nil
}
