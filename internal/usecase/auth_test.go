package usecase

import (
	"context"
	"testing"
	"time"

	"botrental/internal/cache"
	"botrental/internal/domain"
	"botrental/internal/service"

	"github.com/alicebob/miniredis/v2"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authFixture struct {
	uc        *AuthUseCase
	users     *fakeUserRepo
	referrals *fakeReferralRepo
	tokens    *service.TokenService
	mr        *miniredis.Miniredis
}

func newAuthUCFixture(t *testing.T) *authFixture {
	t.Helper()
	mr := miniredis.RunT(t)
	c := cache.NewRedisWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))

	users := newFakeUserRepo()
	referrals := &fakeReferralRepo{users: users}
	sender := &fakeSender{}
	codes := service.NewCodeService(c, sender, 300*time.Second)
	tokens := service.NewTokenService("a", "r", 15*time.Minute, 30*24*time.Hour)

	return &authFixture{
		uc:        NewAuthUseCase(users, referrals, codes, tokens, c, sender),
		users:     users,
		referrals: referrals,
		tokens:    tokens,
		mr:        mr,
	}
}

func TestSendCodeValidatesTelegramID(t *testing.T) {
	f := newAuthUCFixture(t)
	ctx := context.Background()

	assert.ErrorIs(t, f.uc.SendCode(ctx, 0, 0), domain.ErrInvalidTelegramID)
	assert.ErrorIs(t, f.uc.SendCode(ctx, -1, 0), domain.ErrInvalidTelegramID)
	assert.NoError(t, f.uc.SendCode(ctx, 111, 0))
}

func TestVerifyCodeRegistersNewUser(t *testing.T) {
	f := newAuthUCFixture(t)
	ctx := context.Background()

	require.NoError(t, f.uc.SendCode(ctx, 111, 0))
	code, err := f.mr.Get("111:code")
	require.NoError(t, err)

	user, access, refresh, err := f.uc.VerifyCode(ctx, 111, code)
	require.NoError(t, err)

	assert.Equal(t, int64(111), user.TelegramID.Int64())
	assert.Equal(t, domain.WelcomeBonus, user.Balance.Int64())
	assert.Equal(t, domain.RoleUser, user.Role)

	tgID, err := f.tokens.VerifyAccessToken(access)
	require.NoError(t, err)
	assert.Equal(t, int64(111), tgID)
	tgID, err = f.tokens.VerifyRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, int64(111), tgID)
}

func TestVerifyCodeLogsExistingUserIn(t *testing.T) {
	f := newAuthUCFixture(t)
	ctx := context.Background()

	existing, _ := domain.NewUser(111)
	require.NoError(t, existing.Deposit(5000))
	f.users.add(existing)

	require.NoError(t, f.uc.SendCode(ctx, 111, 0))
	code, err := f.mr.Get("111:code")
	require.NoError(t, err)

	user, _, _, err := f.uc.VerifyCode(ctx, 111, code)
	require.NoError(t, err)

	// The existing account, not a fresh one with a welcome bonus.
	assert.Equal(t, existing.ID, user.ID)
	assert.Equal(t, int64(5000), user.Balance.Int64())
}

func TestVerifyCodeWrongCode(t *testing.T) {
	f := newAuthUCFixture(t)
	ctx := context.Background()

	require.NoError(t, f.uc.SendCode(ctx, 111, 0))

	_, _, _, err := f.uc.VerifyCode(ctx, 111, "wrong!")
	assert.ErrorIs(t, err, domain.ErrInvalidCode)

	// No account was created on the failed attempt.
	u, _ := f.users.GetByTelegramID(ctx, 111)
	assert.Nil(t, u)
}

func TestVerifyCodeAppliesReferral(t *testing.T) {
	f := newAuthUCFixture(t)
	ctx := context.Background()

	referrer, _ := domain.NewUser(222)
	f.users.add(referrer)
	f.mr.Set(service.UserCacheKey(222), "{}")

	require.NoError(t, f.uc.SendCode(ctx, 111, 222))
	code, err := f.mr.Get("111:code")
	require.NoError(t, err)

	user, _, _, err := f.uc.VerifyCode(ctx, 111, code)
	require.NoError(t, err)

	require.NotNil(t, user.ReferrerID)
	assert.Equal(t, referrer.ID, *user.ReferrerID)

	// Referral row written with the bonus.
	require.Len(t, f.referrals.rows, 1)
	assert.Equal(t, referrer.ID, f.referrals.rows[0].ReferrerID)
	assert.Equal(t, user.ID, f.referrals.rows[0].ReferralID)
	assert.Equal(t, domain.ReferralBonus, f.referrals.rows[0].TotalBonus)

	// Referrer credited and their cached profile invalidated.
	storedReferrer, _ := f.users.GetByID(ctx, referrer.ID)
	assert.Equal(t, domain.ReferralBonus, storedReferrer.Balance.Int64())
	assert.Equal(t, domain.ReferralBonus, storedReferrer.TotalBonusReceived)
	assert.False(t, f.mr.Exists(service.UserCacheKey(222)))
}

func TestVerifyCodeUnknownReferrerIgnored(t *testing.T) {
	f := newAuthUCFixture(t)
	ctx := context.Background()

	require.NoError(t, f.uc.SendCode(ctx, 111, 999))
	code, err := f.mr.Get("111:code")
	require.NoError(t, err)

	// Registration succeeds; the dangling referral is dropped.
	user, _, _, err := f.uc.VerifyCode(ctx, 111, code)
	require.NoError(t, err)
	assert.Nil(t, user.ReferrerID)
	assert.Empty(t, f.referrals.rows)
}

func TestVerifyCodeReferralOnlyOnRegistration(t *testing.T) {
	f := newAuthUCFixture(t)
	ctx := context.Background()

	referrer, _ := domain.NewUser(222)
	f.users.add(referrer)
	existing, _ := domain.NewUser(111)
	f.users.add(existing)

	require.NoError(t, f.uc.SendCode(ctx, 111, 222))
	code, err := f.mr.Get("111:code")
	require.NoError(t, err)

	user, _, _, err := f.uc.VerifyCode(ctx, 111, code)
	require.NoError(t, err)

	// Login path: the stash is not applied to an existing account.
	assert.Nil(t, user.ReferrerID)
	assert.Empty(t, f.referrals.rows)
}

func TestRefreshAccessToken(t *testing.T) {
	f := newAuthUCFixture(t)
	ctx := context.Background()

	require.NoError(t, f.uc.SendCode(ctx, 111, 0))
	code, err := f.mr.Get("111:code")
	require.NoError(t, err)

	_, _, refresh, err := f.uc.VerifyCode(ctx, 111, code)
	require.NoError(t, err)

	access, err := f.uc.RefreshAccessToken(refresh)
	require.NoError(t, err)

	tgID, err := f.tokens.VerifyAccessToken(access)
	require.NoError(t, err)
	assert.Equal(t, int64(111), tgID)
}
