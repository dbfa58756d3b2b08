package service

import (
	"errors"
	"strconv"
	"time"

	"botrental/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

type sessionClaims struct {
	Type string `json:"type"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies signed session credentials. Access and
// refresh tokens are signed with independent secrets, so one can never stand
// in for the other even if the type claim were forged.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewTokenService(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *TokenService {
	return &TokenService{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// CreateTokens issues an access/refresh pair bound to the same subject.
func (s *TokenService) CreateTokens(telegramID int64) (access, refresh string, err error) {
	access, err = s.createToken(telegramID, tokenTypeAccess, s.accessSecret, s.accessTTL)
	if err != nil {
		return "", "", err
	}
	refresh, err = s.createToken(telegramID, tokenTypeRefresh, s.refreshSecret, s.refreshTTL)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func (s *TokenService) createToken(telegramID int64, tokenType string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		Type: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(telegramID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// VerifyAccessToken returns the subject telegram id of a valid access token.
func (s *TokenService) VerifyAccessToken(token string) (int64, error) {
	return s.verifyToken(token, tokenTypeAccess, s.accessSecret)
}

// VerifyRefreshToken returns the subject telegram id of a valid refresh token.
func (s *TokenService) VerifyRefreshToken(token string) (int64, error) {
	return s.verifyToken(token, tokenTypeRefresh, s.refreshSecret)
}

func (s *TokenService) verifyToken(token, expectedType string, secret []byte) (int64, error) {
	var claims sessionClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrIncorrectToken
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, domain.ErrTokenExpired
		}
		return 0, domain.ErrIncorrectToken
	}
	if !parsed.Valid || claims.Type != expectedType {
		return 0, domain.ErrIncorrectToken
	}

	telegramID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || telegramID <= 0 {
		return 0, domain.ErrIncorrectToken
	}
	return telegramID, nil
}

// RefreshAccessToken re-issues a fresh access token for the refresh token's
// subject. The refresh token itself is not rotated.
func (s *TokenService) RefreshAccessToken(refreshToken string) (string, error) {
	telegramID, err := s.VerifyRefreshToken(refreshToken)
	if err != nil {
		return "", err
	}
	return s.createToken(telegramID, tokenTypeAccess, s.accessSecret, s.accessTTL)
}
