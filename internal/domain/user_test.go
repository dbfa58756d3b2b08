package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	u, err := NewUser(12345)
	require.NoError(t, err)
	assert.Equal(t, int64(12345), u.TelegramID.Int64())
	assert.Equal(t, RoleUser, u.Role)
	assert.Equal(t, int64(0), u.Balance.Int64())

	_, err = NewUser(0)
	assert.ErrorIs(t, err, ErrInvalidTelegramID)

	_, err = NewUser(-5)
	assert.ErrorIs(t, err, ErrInvalidTelegramID)
}

func TestUserWelcomeBonus(t *testing.T) {
	u, err := NewUser(1)
	require.NoError(t, err)

	u.AddWelcomeBonus()
	assert.Equal(t, WelcomeBonus, u.Balance.Int64())
}

func TestUserDepositWithdraw(t *testing.T) {
	u, _ := NewUser(1)
	require.NoError(t, u.Deposit(1000))
	require.NoError(t, u.Withdraw(400))
	assert.Equal(t, int64(600), u.Balance.Int64())

	err := u.Withdraw(601)
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.Equal(t, int64(600), u.Balance.Int64(), "failed withdraw must not change balance")

	assert.ErrorIs(t, u.Deposit(-1), ErrInvalidAmount)
	assert.ErrorIs(t, u.Withdraw(-1), ErrInvalidAmount)
}

func TestUserBlockLifecycle(t *testing.T) {
	u, _ := NewUser(1)
	u.ID = 7

	block, err := u.Block(3, "spam", 99)
	require.NoError(t, err)
	assert.True(t, u.IsBlocked())
	assert.Equal(t, int64(7), block.UserID)
	assert.Equal(t, int64(99), block.BlockedBy)

	// A second active block is rejected.
	_, err = u.Block(1, "again", 99)
	assert.ErrorIs(t, err, ErrAlreadyBlocked)

	lifted, err := u.Unblock()
	require.NoError(t, err)
	assert.False(t, u.IsBlocked())
	assert.False(t, lifted.IsActive(time.Now()))

	_, err = u.Unblock()
	assert.ErrorIs(t, err, ErrActiveBlockNotFound)

	// Blocking again after the lift is allowed.
	_, err = u.Block(1, "relapse", 99)
	require.NoError(t, err)
	assert.True(t, u.IsBlocked())
}

func TestUserBlockDuration(t *testing.T) {
	u, _ := NewUser(1)

	_, err := u.Block(0, "", 1)
	assert.ErrorIs(t, err, ErrInvalidBlockDuration)

	block, err := u.Block(2, "", 1)
	require.NoError(t, err)
	expected := time.Now().AddDate(0, 0, 2)
	assert.WithinDuration(t, expected, block.BlockedUntil, time.Minute)
}

func TestUserAssignReferrer(t *testing.T) {
	u, _ := NewUser(1)
	u.ID = 10

	assert.ErrorIs(t, u.AssignReferrer(10), ErrSelfReferral)

	require.NoError(t, u.AssignReferrer(20))
	require.NotNil(t, u.ReferrerID)
	assert.Equal(t, int64(20), *u.ReferrerID)

	// Write-once.
	assert.ErrorIs(t, u.AssignReferrer(30), ErrReferrerAlreadyAssigned)
	assert.Equal(t, int64(20), *u.ReferrerID)
}

func TestUserReferralBonus(t *testing.T) {
	u, _ := NewUser(1)
	u.AddReferralBonus()
	u.AddReferralBonus()

	assert.Equal(t, 2*ReferralBonus, u.Balance.Int64())
	assert.Equal(t, 2*ReferralBonus, u.TotalBonusReceived)
}

func TestUserDelete(t *testing.T) {
	u, _ := NewUser(1)

	require.NoError(t, u.Delete())
	assert.True(t, u.IsDeleted)
	assert.ErrorIs(t, u.Delete(), ErrUserDeleted)
}

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleUser.Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.True(t, RoleDev.Valid())
	assert.False(t, Role("root").Valid())
}
