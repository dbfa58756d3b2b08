package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"botrental/internal/cache"
	"botrental/internal/domain"
	"botrental/internal/logger"
)

// UserReader is the slice of the user repository auth resolution needs.
type UserReader interface {
	GetByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error)
}

// UserCacheKey is the profile cache key for a telegram id. Mutations that
// change cached fields delete this key; everything else rides out the TTL.
func UserCacheKey(telegramID int64) string {
	return fmt.Sprintf("user:%d", telegramID)
}

// AuthService resolves the calling user from an access credential, reading
// through the profile cache to avoid a repository hit per request.
type AuthService struct {
	users  UserReader
	tokens *TokenService
	cache  cache.Cache
	ttl    time.Duration
	log    *slog.Logger
}

func NewAuthService(users UserReader, tokens *TokenService, c cache.Cache, ttl time.Duration) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		cache:  c,
		ttl:    ttl,
		log:    logger.With("component", "auth_service"),
	}
}

// GetCurrentUser verifies the access token and returns the subject's profile.
// Cache staleness is bounded by the TTL; role and block changes may lag by
// that window.
func (s *AuthService) GetCurrentUser(ctx context.Context, token string) (*domain.User, error) {
	telegramID, err := s.tokens.VerifyAccessToken(token)
	if err != nil {
		return nil, err
	}

	key := UserCacheKey(telegramID)
	if raw, exists, cacheErr := s.cache.Get(ctx, key); cacheErr != nil {
		s.log.Warn("profile cache read failed", "telegram_id", telegramID, "error", cacheErr)
	} else if exists {
		var user domain.User
		if err := json.Unmarshal([]byte(raw), &user); err == nil {
			return &user, nil
		}
		s.log.Error("corrupt cached profile dropped", "telegram_id", telegramID)
		_ = s.cache.Delete(ctx, key)
	}

	user, err := s.users.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	if payload, err := json.Marshal(user); err == nil {
		if err := s.cache.SetWithTTL(ctx, key, string(payload), s.ttl); err != nil {
			s.log.Warn("profile cache write failed", "telegram_id", telegramID, "error", err)
		}
	}

	return user, nil
}

// AuthenticateUser looks a user up by external identity, bypassing the cache.
func (s *AuthService) AuthenticateUser(ctx context.Context, telegramID int64) (*domain.User, error) {
	user, err := s.users.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}
