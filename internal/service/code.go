package service

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strconv"
	"time"

	"botrental/internal/cache"
	"botrental/internal/domain"
	"botrental/internal/logger"
	"botrental/internal/notify"
)

// CodeService issues and verifies one-time numeric codes delivered through
// Telegram. A pending code doubles as the re-send rate limit; both the code
// and a stashed referrer id expire by TTL.
type CodeService struct {
	cache  cache.Cache
	sender notify.Sender
	ttl    time.Duration
	log    *slog.Logger
}

func NewCodeService(c cache.Cache, sender notify.Sender, ttl time.Duration) *CodeService {
	return &CodeService{
		cache:  c,
		sender: sender,
		ttl:    ttl,
		log:    logger.With("component", "code_service"),
	}
}

func codeKey(telegramID int64) string     { return fmt.Sprintf("%d:code", telegramID) }
func referralKey(telegramID int64) string { return fmt.Sprintf("%d:referral", telegramID) }

// SendCode generates and caches a 6-digit code and dispatches it out-of-band.
// A code already pending for the id means the caller is re-sending too soon.
// refID, when non-zero, is stashed to be consumed only if registration later
// succeeds.
func (s *CodeService) SendCode(ctx context.Context, telegramID int64, refID int64) error {
	if _, exists, err := s.cache.Get(ctx, codeKey(telegramID)); err != nil {
		return err
	} else if exists {
		return domain.ErrTooManyCodeRequests
	}

	// Leading zeros allowed.
	code := fmt.Sprintf("%06d", rand.Intn(1000000))

	if err := s.cache.SetWithTTL(ctx, codeKey(telegramID), code, s.ttl); err != nil {
		return err
	}

	if refID > 0 {
		if err := s.cache.SetWithTTL(ctx, referralKey(telegramID), strconv.FormatInt(refID, 10), s.ttl); err != nil {
			return err
		}
	}

	// Delivery must not block or fail the caller; the cached code is kept
	// even if dispatch fails, bounded by TTL.
	go func() {
		sendCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.sender.Send(sendCtx, telegramID, "Your confirmation code: "+code); err != nil {
			s.log.Error("code delivery failed", "telegram_id", telegramID, "error", err)
		}
	}()

	s.log.Info("confirmation code issued", "telegram_id", telegramID)
	return nil
}

// CheckCode verifies a submitted code. An absent and a mismatched code are
// indistinguishable to the caller. The code is single use: it is deleted
// before success is reported.
func (s *CodeService) CheckCode(ctx context.Context, telegramID int64, submitted string) error {
	cached, exists, err := s.cache.Get(ctx, codeKey(telegramID))
	if err != nil {
		return err
	}
	if !exists || cached != submitted {
		s.log.Warn("code check failed", "telegram_id", telegramID)
		return domain.ErrInvalidCode
	}

	if err := s.cache.Delete(ctx, codeKey(telegramID)); err != nil {
		return err
	}

	s.log.Info("code check passed", "telegram_id", telegramID)
	return nil
}

// ConsumePendingReferrer pops the referrer id stashed by SendCode, if any.
func (s *CodeService) ConsumePendingReferrer(ctx context.Context, telegramID int64) (int64, bool) {
	raw, exists, err := s.cache.Get(ctx, referralKey(telegramID))
	if err != nil || !exists {
		return 0, false
	}

	refID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || refID <= 0 {
		return 0, false
	}

	if err := s.cache.Delete(ctx, referralKey(telegramID)); err != nil {
		s.log.Warn("pending referrer cleanup failed", "telegram_id", telegramID, "error", err)
	}
	return refID, true
}
