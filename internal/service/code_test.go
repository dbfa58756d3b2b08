package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"botrental/internal/cache"
	"botrental/internal/domain"

	"github.com/alicebob/miniredis/v2"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	mu       sync.Mutex
	messages []string
	fail     bool
}

func (s *recordingSender) Send(_ context.Context, _ int64, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return assert.AnError
	}
	s.messages = append(s.messages, text)
	return nil
}

func newCodeFixture(t *testing.T) (*CodeService, *miniredis.Miniredis, *recordingSender) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := cache.NewRedisWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	sender := &recordingSender{}
	return NewCodeService(c, sender, 300*time.Second), mr, sender
}

func TestSendCodeCachesSixDigits(t *testing.T) {
	svc, mr, _ := newCodeFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.SendCode(ctx, 111, 0))

	code, err := mr.Get("111:code")
	require.NoError(t, err)
	assert.Len(t, code, 6)

	ttl := mr.TTL("111:code")
	assert.Equal(t, 300*time.Second, ttl)

	// No referrer given, nothing stashed.
	assert.False(t, mr.Exists("111:referral"))
}

func TestSendCodeRateLimited(t *testing.T) {
	svc, _, _ := newCodeFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.SendCode(ctx, 111, 0))
	err := svc.SendCode(ctx, 111, 0)
	assert.ErrorIs(t, err, domain.ErrTooManyCodeRequests)
}

func TestSendCodeAfterExpiry(t *testing.T) {
	svc, mr, _ := newCodeFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.SendCode(ctx, 111, 0))
	mr.FastForward(301 * time.Second)
	require.NoError(t, svc.SendCode(ctx, 111, 0))
}

func TestSendCodeStashesReferrer(t *testing.T) {
	svc, mr, _ := newCodeFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.SendCode(ctx, 111, 222))

	raw, err := mr.Get("111:referral")
	require.NoError(t, err)
	assert.Equal(t, "222", raw)

	refID, ok := svc.ConsumePendingReferrer(ctx, 111)
	require.True(t, ok)
	assert.Equal(t, int64(222), refID)

	// Consumed means gone.
	_, ok = svc.ConsumePendingReferrer(ctx, 111)
	assert.False(t, ok)
}

func TestCheckCodeSingleUse(t *testing.T) {
	svc, mr, _ := newCodeFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.SendCode(ctx, 111, 0))
	code, err := mr.Get("111:code")
	require.NoError(t, err)

	require.NoError(t, svc.CheckCode(ctx, 111, code))

	// Second use fails just like a wrong code.
	err = svc.CheckCode(ctx, 111, code)
	assert.ErrorIs(t, err, domain.ErrInvalidCode)
}

func TestCheckCodeWrongAndAbsentIndistinguishable(t *testing.T) {
	svc, _, _ := newCodeFixture(t)
	ctx := context.Background()

	absentErr := svc.CheckCode(ctx, 999, "000000")

	require.NoError(t, svc.SendCode(ctx, 111, 0))
	wrongErr := svc.CheckCode(ctx, 111, "no")

	assert.ErrorIs(t, absentErr, domain.ErrInvalidCode)
	assert.ErrorIs(t, wrongErr, domain.ErrInvalidCode)
	assert.Equal(t, absentErr.Error(), wrongErr.Error())
}

func TestSendCodeKeepsCodeOnDeliveryFailure(t *testing.T) {
	mr := miniredis.RunT(t)
	c := cache.NewRedisWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	sender := &recordingSender{fail: true}
	svc := NewCodeService(c, sender, 300*time.Second)
	ctx := context.Background()

	require.NoError(t, svc.SendCode(ctx, 111, 0))
	assert.True(t, mr.Exists("111:code"))
}
